package telegram

import "encoding/json"

// User represents a Telegram user or bot. Identity on the Bot API side is the
// numeric id, so equality and hashing consider only that field.
type User struct {
	id           int64
	isBot        bool
	firstName    string
	lastName     string
	username     string
	languageCode string
	extra        map[string]any
	hash         uint64
}

// UserOpts holds the optional User fields.
type UserOpts struct {
	LastName     string
	Username     string
	LanguageCode string
}

// NewUser builds a user from its required fields. opts may be nil.
func NewUser(id int64, firstName string, isBot bool, opts *UserOpts) *User {
	u := &User{id: id, firstName: firstName, isBot: isBot}
	if opts != nil {
		u.lastName = opts.LastName
		u.username = opts.Username
		u.languageCode = opts.LanguageCode
	}
	h := newHasher()
	h.str("user")
	h.int64(id)
	u.hash = h.sum()
	return u
}

func (u *User) ID() int64            { return u.id }
func (u *User) IsBot() bool          { return u.isBot }
func (u *User) FirstName() string    { return u.firstName }
func (u *User) LastName() string     { return u.lastName }
func (u *User) Username() string     { return u.username }
func (u *User) LanguageCode() string { return u.languageCode }

// Extra returns the unknown keys carried by the payload this user was decoded
// from.
func (u *User) Extra() map[string]any { return copyExtra(u.extra) }

// Equal reports whether both users refer to the same Telegram account.
func (u *User) Equal(other *User) bool {
	if u == nil || other == nil {
		return u == other
	}
	return u.id == other.id
}

// Hash is consistent with Equal.
func (u *User) Hash() uint64 { return u.hash }

// MarshalJSON encodes the user as a Bot API User object.
func (u *User) MarshalJSON() ([]byte, error) {
	type wire struct {
		ID           int64  `json:"id"`
		IsBot        bool   `json:"is_bot"`
		FirstName    string `json:"first_name"`
		LastName     string `json:"last_name,omitempty"`
		Username     string `json:"username,omitempty"`
		LanguageCode string `json:"language_code,omitempty"`
	}
	data, err := json.Marshal(wire{
		ID:           u.id,
		IsBot:        u.isBot,
		FirstName:    u.firstName,
		LastName:     u.lastName,
		Username:     u.username,
		LanguageCode: u.languageCode,
	})
	if err != nil {
		return nil, err
	}
	return mergeExtra(data, u.extra)
}

// User decodes a Bot API User object.
func (d *Decoder) User(data []byte) (*User, error) {
	obj, err := parseObject(data)
	if err != nil {
		return nil, err
	}
	return decodeUser(d, obj)
}

func decodeUser(_ *Decoder, obj rawObject) (*User, error) {
	const entity = "User"
	var (
		id        int64
		isBot     bool
		firstName string
	)
	if err := obj.require(entity, "id", &id); err != nil {
		return nil, err
	}
	if err := obj.require(entity, "is_bot", &isBot); err != nil {
		return nil, err
	}
	if err := obj.require(entity, "first_name", &firstName); err != nil {
		return nil, err
	}
	opts := &UserOpts{}
	if err := obj.optional(entity, "last_name", &opts.LastName); err != nil {
		return nil, err
	}
	if err := obj.optional(entity, "username", &opts.Username); err != nil {
		return nil, err
	}
	if err := obj.optional(entity, "language_code", &opts.LanguageCode); err != nil {
		return nil, err
	}
	u := NewUser(id, firstName, isBot, opts)
	u.extra = obj.extra()
	return u, nil
}
