package telegram

import "encoding/json"

// InputMessageContent is the content of a message to be sent as the result of
// an inline query. It is a closed set; InputTextMessageContent is the member
// this package currently models.
type InputMessageContent interface {
	json.Marshaler
	// EqualContent compares against another content value of any concrete
	// kind; different kinds are never equal.
	EqualContent(other InputMessageContent) bool
	// Hash is consistent with EqualContent.
	Hash() uint64

	inputMessageContent()
}

// InputTextMessageContent is a text message to send in place of an inline
// result. Identity is the message text.
type InputTextMessageContent struct {
	messageText string
	parseMode   ParseMode
	entities    []*MessageEntity
	extra       map[string]any
	hash        uint64
}

// InputTextMessageContentOpts holds the optional fields.
type InputTextMessageContentOpts struct {
	ParseMode ParseMode
	Entities  []*MessageEntity
}

// NewInputTextMessageContent builds a text content. opts may be nil.
func NewInputTextMessageContent(messageText string, opts *InputTextMessageContentOpts) *InputTextMessageContent {
	c := &InputTextMessageContent{messageText: messageText}
	if opts != nil {
		c.parseMode = opts.ParseMode
		c.entities = copyEntities(opts.Entities)
	}
	h := newHasher()
	h.str("input_text_message_content")
	h.str(messageText)
	c.hash = h.sum()
	return c
}

func copyEntities(entities []*MessageEntity) []*MessageEntity {
	if entities == nil {
		return nil
	}
	out := make([]*MessageEntity, len(entities))
	copy(out, entities)
	return out
}

func (c *InputTextMessageContent) MessageText() string  { return c.messageText }
func (c *InputTextMessageContent) ParseMode() ParseMode { return c.parseMode }

// Entities returns a copy of the formatting entities in order.
func (c *InputTextMessageContent) Entities() []*MessageEntity { return copyEntities(c.entities) }

// Extra returns the unknown keys carried by the payload this content was
// decoded from.
func (c *InputTextMessageContent) Extra() map[string]any { return copyExtra(c.extra) }

// Equal compares the message text.
func (c *InputTextMessageContent) Equal(other *InputTextMessageContent) bool {
	if c == nil || other == nil {
		return c == other
	}
	return c.messageText == other.messageText
}

// EqualContent implements InputMessageContent.
func (c *InputTextMessageContent) EqualContent(other InputMessageContent) bool {
	o, ok := other.(*InputTextMessageContent)
	if !ok {
		return false
	}
	return c.Equal(o)
}

// Hash is consistent with Equal.
func (c *InputTextMessageContent) Hash() uint64 { return c.hash }

func (c *InputTextMessageContent) inputMessageContent() {}

// MarshalJSON encodes the content as a Bot API InputTextMessageContent
// object.
func (c *InputTextMessageContent) MarshalJSON() ([]byte, error) {
	type wire struct {
		MessageText string           `json:"message_text"`
		ParseMode   string           `json:"parse_mode,omitempty"`
		Entities    []*MessageEntity `json:"entities,omitempty"`
	}
	data, err := json.Marshal(wire{
		MessageText: c.messageText,
		ParseMode:   c.parseMode.wire(),
		Entities:    c.entities,
	})
	if err != nil {
		return nil, err
	}
	return mergeExtra(data, c.extra)
}

// InputTextMessageContent decodes a Bot API InputTextMessageContent object.
func (d *Decoder) InputTextMessageContent(data []byte) (*InputTextMessageContent, error) {
	obj, err := parseObject(data)
	if err != nil {
		return nil, err
	}
	return decodeInputTextMessageContent(d, obj)
}

func decodeInputTextMessageContent(d *Decoder, obj rawObject) (*InputTextMessageContent, error) {
	const entity = "InputTextMessageContent"
	var messageText string
	if err := obj.require(entity, "message_text", &messageText); err != nil {
		return nil, err
	}
	opts := &InputTextMessageContentOpts{}
	var parseMode string
	if err := obj.optional(entity, "parse_mode", &parseMode); err != nil {
		return nil, err
	}
	opts.ParseMode = ParseMode(parseMode)
	if entityObjs, ok, err := obj.objects(entity, "entities"); err != nil {
		return nil, err
	} else if ok {
		entities := make([]*MessageEntity, 0, len(entityObjs))
		for _, entityObj := range entityObjs {
			e, err := decodeMessageEntity(d, entityObj)
			if err != nil {
				return nil, err
			}
			entities = append(entities, e)
		}
		opts.Entities = entities
	}
	c := NewInputTextMessageContent(messageText, opts)
	c.extra = obj.extra()
	return c, nil
}
