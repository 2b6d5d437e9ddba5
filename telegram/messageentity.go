package telegram

import "encoding/json"

// MessageEntityType is the kind of special entity a MessageEntity marks in a
// text.
type MessageEntityType string

const (
	MessageEntityMention     MessageEntityType = "mention"
	MessageEntityHashtag     MessageEntityType = "hashtag"
	MessageEntityURL         MessageEntityType = "url"
	MessageEntityBold        MessageEntityType = "bold"
	MessageEntityItalic      MessageEntityType = "italic"
	MessageEntityCode        MessageEntityType = "code"
	MessageEntityPre         MessageEntityType = "pre"
	MessageEntityTextLink    MessageEntityType = "text_link"
	MessageEntityTextMention MessageEntityType = "text_mention"
)

// MessageEntity marks one special span inside a text. Identity is the
// (type, offset, length) triple.
type MessageEntity struct {
	entityType MessageEntityType
	offset     int
	length     int
	url        string
	user       *User
	language   string
	extra      map[string]any
	hash       uint64
}

// MessageEntityOpts holds the optional MessageEntity fields.
type MessageEntityOpts struct {
	URL      string
	User     *User
	Language string
}

// NewMessageEntity builds a message entity. opts may be nil.
func NewMessageEntity(entityType MessageEntityType, offset, length int, opts *MessageEntityOpts) *MessageEntity {
	e := &MessageEntity{entityType: entityType, offset: offset, length: length}
	if opts != nil {
		e.url = opts.URL
		e.user = opts.User
		e.language = opts.Language
	}
	h := newHasher()
	h.str("message_entity")
	h.str(string(entityType))
	h.int(offset)
	h.int(length)
	e.hash = h.sum()
	return e
}

func (e *MessageEntity) Type() MessageEntityType { return e.entityType }
func (e *MessageEntity) Offset() int             { return e.offset }
func (e *MessageEntity) Length() int             { return e.length }
func (e *MessageEntity) URL() string             { return e.url }
func (e *MessageEntity) User() *User             { return e.user }
func (e *MessageEntity) Language() string        { return e.language }

// Extra returns the unknown keys carried by the payload this entity was
// decoded from.
func (e *MessageEntity) Extra() map[string]any { return copyExtra(e.extra) }

// Equal compares type, offset and length.
func (e *MessageEntity) Equal(other *MessageEntity) bool {
	if e == nil || other == nil {
		return e == other
	}
	return e.entityType == other.entityType && e.offset == other.offset && e.length == other.length
}

// Hash is consistent with Equal.
func (e *MessageEntity) Hash() uint64 { return e.hash }

// MarshalJSON encodes the entity as a Bot API MessageEntity object.
func (e *MessageEntity) MarshalJSON() ([]byte, error) {
	type wire struct {
		Type     MessageEntityType `json:"type"`
		Offset   int               `json:"offset"`
		Length   int               `json:"length"`
		URL      string            `json:"url,omitempty"`
		User     *User             `json:"user,omitempty"`
		Language string            `json:"language,omitempty"`
	}
	data, err := json.Marshal(wire{
		Type:     e.entityType,
		Offset:   e.offset,
		Length:   e.length,
		URL:      e.url,
		User:     e.user,
		Language: e.language,
	})
	if err != nil {
		return nil, err
	}
	return mergeExtra(data, e.extra)
}

// MessageEntity decodes a Bot API MessageEntity object.
func (d *Decoder) MessageEntity(data []byte) (*MessageEntity, error) {
	obj, err := parseObject(data)
	if err != nil {
		return nil, err
	}
	return decodeMessageEntity(d, obj)
}

func decodeMessageEntity(d *Decoder, obj rawObject) (*MessageEntity, error) {
	const entity = "MessageEntity"
	var (
		entityType MessageEntityType
		offset     int
		length     int
	)
	if err := obj.require(entity, "type", &entityType); err != nil {
		return nil, err
	}
	if err := obj.require(entity, "offset", &offset); err != nil {
		return nil, err
	}
	if err := obj.require(entity, "length", &length); err != nil {
		return nil, err
	}
	opts := &MessageEntityOpts{}
	if err := obj.optional(entity, "url", &opts.URL); err != nil {
		return nil, err
	}
	if err := obj.optional(entity, "language", &opts.Language); err != nil {
		return nil, err
	}
	if userObj, ok, err := obj.object(entity, "user"); err != nil {
		return nil, err
	} else if ok {
		user, err := decodeUser(d, userObj)
		if err != nil {
			return nil, err
		}
		opts.User = user
	}
	e := NewMessageEntity(entityType, offset, length, opts)
	e.extra = obj.extra()
	return e, nil
}
