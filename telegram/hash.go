package telegram

import (
	"encoding/binary"
	"hash"
	"hash/fnv"
	"math"
)

// hasher accumulates the identity fields of an entity into an FNV-1a sum.
// Every write is terminated with a separator byte so adjacent fields cannot
// collide by concatenation.
type hasher struct {
	h hash.Hash64
}

func newHasher() *hasher {
	return &hasher{h: fnv.New64a()}
}

func (h *hasher) bytes(b []byte) {
	h.h.Write(b)
	h.h.Write([]byte{0xff})
}

func (h *hasher) str(s string) {
	h.bytes([]byte(s))
}

func (h *hasher) uint64(v uint64) {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], v)
	h.bytes(buf[:])
}

func (h *hasher) int64(v int64) {
	h.uint64(uint64(v))
}

func (h *hasher) int(v int) {
	h.int64(int64(v))
}

func (h *hasher) float64(v float64) {
	h.uint64(math.Float64bits(v))
}

func (h *hasher) bool(v bool) {
	if v {
		h.bytes([]byte{1})
	} else {
		h.bytes([]byte{0})
	}
}

func (h *hasher) sum() uint64 {
	return h.h.Sum64()
}
