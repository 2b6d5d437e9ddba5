package telegram

import "encoding/json"

// ChatType is the kind of chat a Chat object describes.
type ChatType string

const (
	ChatTypePrivate    ChatType = "private"
	ChatTypeGroup      ChatType = "group"
	ChatTypeSupergroup ChatType = "supergroup"
	ChatTypeChannel    ChatType = "channel"
)

// Chat represents a Telegram chat. Like User, its Bot API identity is the
// numeric id alone.
type Chat struct {
	id       int64
	chatType ChatType
	title    string
	username string
	extra    map[string]any
	hash     uint64
}

// ChatOpts holds the optional Chat fields.
type ChatOpts struct {
	Title    string
	Username string
}

// NewChat builds a chat from its required fields. opts may be nil.
func NewChat(id int64, chatType ChatType, opts *ChatOpts) *Chat {
	c := &Chat{id: id, chatType: chatType}
	if opts != nil {
		c.title = opts.Title
		c.username = opts.Username
	}
	h := newHasher()
	h.str("chat")
	h.int64(id)
	c.hash = h.sum()
	return c
}

func (c *Chat) ID() int64      { return c.id }
func (c *Chat) Type() ChatType { return c.chatType }
func (c *Chat) Title() string  { return c.title }
func (c *Chat) Username() string {
	return c.username
}

// Extra returns the unknown keys carried by the payload this chat was decoded
// from.
func (c *Chat) Extra() map[string]any { return copyExtra(c.extra) }

// Equal reports whether both values refer to the same chat.
func (c *Chat) Equal(other *Chat) bool {
	if c == nil || other == nil {
		return c == other
	}
	return c.id == other.id
}

// Hash is consistent with Equal.
func (c *Chat) Hash() uint64 { return c.hash }

// MarshalJSON encodes the chat as a Bot API Chat object.
func (c *Chat) MarshalJSON() ([]byte, error) {
	type wire struct {
		ID       int64    `json:"id"`
		Type     ChatType `json:"type"`
		Title    string   `json:"title,omitempty"`
		Username string   `json:"username,omitempty"`
	}
	data, err := json.Marshal(wire{
		ID:       c.id,
		Type:     c.chatType,
		Title:    c.title,
		Username: c.username,
	})
	if err != nil {
		return nil, err
	}
	return mergeExtra(data, c.extra)
}

// Chat decodes a Bot API Chat object.
func (d *Decoder) Chat(data []byte) (*Chat, error) {
	obj, err := parseObject(data)
	if err != nil {
		return nil, err
	}
	return decodeChat(d, obj)
}

func decodeChat(_ *Decoder, obj rawObject) (*Chat, error) {
	const entity = "Chat"
	var (
		id       int64
		chatType ChatType
	)
	if err := obj.require(entity, "id", &id); err != nil {
		return nil, err
	}
	if err := obj.require(entity, "type", &chatType); err != nil {
		return nil, err
	}
	opts := &ChatOpts{}
	if err := obj.optional(entity, "title", &opts.Title); err != nil {
		return nil, err
	}
	if err := obj.optional(entity, "username", &opts.Username); err != nil {
		return nil, err
	}
	c := NewChat(id, chatType, opts)
	c.extra = obj.extra()
	return c, nil
}
