package telegram

import "encoding/json"

// StickerType is the Bot API sticker kind.
type StickerType string

const (
	StickerTypeRegular     StickerType = "regular"
	StickerTypeMask        StickerType = "mask"
	StickerTypeCustomEmoji StickerType = "custom_emoji"
)

// Sticker represents a Telegram sticker. The Bot API identifies stickers by
// file_unique_id, which is stable across bots; equality and hashing use only
// that field.
type Sticker struct {
	fileID       string
	fileUniqueID string
	width        int
	height       int
	isAnimated   bool
	isVideo      bool
	stickerType  StickerType
	emoji        string
	setName      string
	fileSize     int64
	extra        map[string]any
	hash         uint64
}

// StickerOpts holds the optional Sticker fields.
type StickerOpts struct {
	Emoji    string
	SetName  string
	FileSize int64
}

// NewSticker builds a sticker from its required fields. opts may be nil.
func NewSticker(fileID, fileUniqueID string, width, height int, isAnimated, isVideo bool, stickerType StickerType, opts *StickerOpts) *Sticker {
	s := &Sticker{
		fileID:       fileID,
		fileUniqueID: fileUniqueID,
		width:        width,
		height:       height,
		isAnimated:   isAnimated,
		isVideo:      isVideo,
		stickerType:  stickerType,
	}
	if opts != nil {
		s.emoji = opts.Emoji
		s.setName = opts.SetName
		s.fileSize = opts.FileSize
	}
	h := newHasher()
	h.str("sticker")
	h.str(fileUniqueID)
	s.hash = h.sum()
	return s
}

func (s *Sticker) FileID() string       { return s.fileID }
func (s *Sticker) FileUniqueID() string { return s.fileUniqueID }
func (s *Sticker) Width() int           { return s.width }
func (s *Sticker) Height() int          { return s.height }
func (s *Sticker) IsAnimated() bool     { return s.isAnimated }
func (s *Sticker) IsVideo() bool        { return s.isVideo }
func (s *Sticker) Type() StickerType    { return s.stickerType }
func (s *Sticker) Emoji() string        { return s.emoji }
func (s *Sticker) SetName() string      { return s.setName }
func (s *Sticker) FileSize() int64      { return s.fileSize }

// Extra returns the unknown keys carried by the payload this sticker was
// decoded from.
func (s *Sticker) Extra() map[string]any { return copyExtra(s.extra) }

// Equal reports whether both values name the same file.
func (s *Sticker) Equal(other *Sticker) bool {
	if s == nil || other == nil {
		return s == other
	}
	return s.fileUniqueID == other.fileUniqueID
}

// Hash is consistent with Equal.
func (s *Sticker) Hash() uint64 { return s.hash }

// MarshalJSON encodes the sticker as a Bot API Sticker object.
func (s *Sticker) MarshalJSON() ([]byte, error) {
	type wire struct {
		FileID       string      `json:"file_id"`
		FileUniqueID string      `json:"file_unique_id"`
		Type         StickerType `json:"type"`
		Width        int         `json:"width"`
		Height       int         `json:"height"`
		IsAnimated   bool        `json:"is_animated"`
		IsVideo      bool        `json:"is_video"`
		Emoji        string      `json:"emoji,omitempty"`
		SetName      string      `json:"set_name,omitempty"`
		FileSize     int64       `json:"file_size,omitempty"`
	}
	data, err := json.Marshal(wire{
		FileID:       s.fileID,
		FileUniqueID: s.fileUniqueID,
		Type:         s.stickerType,
		Width:        s.width,
		Height:       s.height,
		IsAnimated:   s.isAnimated,
		IsVideo:      s.isVideo,
		Emoji:        s.emoji,
		SetName:      s.setName,
		FileSize:     s.fileSize,
	})
	if err != nil {
		return nil, err
	}
	return mergeExtra(data, s.extra)
}

// Sticker decodes a Bot API Sticker object.
func (d *Decoder) Sticker(data []byte) (*Sticker, error) {
	obj, err := parseObject(data)
	if err != nil {
		return nil, err
	}
	return decodeSticker(d, obj)
}

func decodeSticker(_ *Decoder, obj rawObject) (*Sticker, error) {
	const entity = "Sticker"
	var (
		fileID       string
		fileUniqueID string
		stickerType  StickerType
		width        int
		height       int
		isAnimated   bool
		isVideo      bool
	)
	if err := obj.require(entity, "file_id", &fileID); err != nil {
		return nil, err
	}
	if err := obj.require(entity, "file_unique_id", &fileUniqueID); err != nil {
		return nil, err
	}
	if err := obj.require(entity, "type", &stickerType); err != nil {
		return nil, err
	}
	if err := obj.require(entity, "width", &width); err != nil {
		return nil, err
	}
	if err := obj.require(entity, "height", &height); err != nil {
		return nil, err
	}
	if err := obj.require(entity, "is_animated", &isAnimated); err != nil {
		return nil, err
	}
	if err := obj.require(entity, "is_video", &isVideo); err != nil {
		return nil, err
	}
	opts := &StickerOpts{}
	if err := obj.optional(entity, "emoji", &opts.Emoji); err != nil {
		return nil, err
	}
	if err := obj.optional(entity, "set_name", &opts.SetName); err != nil {
		return nil, err
	}
	if err := obj.optional(entity, "file_size", &opts.FileSize); err != nil {
		return nil, err
	}
	s := NewSticker(fileID, fileUniqueID, width, height, isAnimated, isVideo, stickerType, opts)
	s.extra = obj.extra()
	return s, nil
}
