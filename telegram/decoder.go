package telegram

import "time"

// Decoder turns raw Bot API JSON payloads into typed entities. It is the
// single place decoding behavior is configured; today that is the location
// timestamps are rendered in. The zero-configuration decoder uses UTC, which
// matches the wire format.
//
// A Decoder is immutable and safe for concurrent use.
type Decoder struct {
	loc *time.Location
}

// DecoderOption configures a Decoder.
type DecoderOption func(*Decoder)

// WithLocation makes the decoder render unix timestamps in loc instead of
// UTC. A nil loc is ignored.
func WithLocation(loc *time.Location) DecoderOption {
	return func(d *Decoder) {
		if loc != nil {
			d.loc = loc
		}
	}
}

// NewDecoder returns a decoder with the given options applied.
func NewDecoder(opts ...DecoderOption) *Decoder {
	d := &Decoder{loc: time.UTC}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// location reports the location timestamps are decoded into.
func (d *Decoder) location() *time.Location {
	return d.loc
}

// time converts unix seconds into the decoder's location.
func (d *Decoder) time(sec int64) time.Time {
	return time.Unix(sec, 0).In(d.loc)
}
