package telegram

import (
	"encoding/json"
	"fmt"
	"time"
)

// BusinessBotRightsFlags lists the capabilities a bot can hold in a managed
// business account. The zero value grants nothing.
type BusinessBotRightsFlags struct {
	CanReply                   bool
	CanReadMessages            bool
	CanDeleteSentMessages      bool
	CanDeleteAllMessages       bool
	CanEditName                bool
	CanEditBio                 bool
	CanEditProfilePhoto        bool
	CanEditUsername            bool
	CanChangeGiftSettings      bool
	CanViewGiftsAndStars       bool
	CanConvertGiftsToStars     bool
	CanTransferAndUpgradeGifts bool
	CanTransferStars           bool
	CanManageStories           bool
}

// BusinessBotRights describes the rights of a bot connected to a business
// account. Equality and hashing cover every flag.
type BusinessBotRights struct {
	flags BusinessBotRightsFlags
	extra map[string]any
	hash  uint64
}

// NewBusinessBotRights builds a rights set from its flags.
func NewBusinessBotRights(flags BusinessBotRightsFlags) *BusinessBotRights {
	r := &BusinessBotRights{flags: flags}
	h := newHasher()
	h.str("business_bot_rights")
	for _, f := range []bool{
		flags.CanReply,
		flags.CanReadMessages,
		flags.CanDeleteSentMessages,
		flags.CanDeleteAllMessages,
		flags.CanEditName,
		flags.CanEditBio,
		flags.CanEditProfilePhoto,
		flags.CanEditUsername,
		flags.CanChangeGiftSettings,
		flags.CanViewGiftsAndStars,
		flags.CanConvertGiftsToStars,
		flags.CanTransferAndUpgradeGifts,
		flags.CanTransferStars,
		flags.CanManageStories,
	} {
		h.bool(f)
	}
	r.hash = h.sum()
	return r
}

// Flags returns a copy of the full flag set.
func (r *BusinessBotRights) Flags() BusinessBotRightsFlags { return r.flags }

func (r *BusinessBotRights) CanReply() bool              { return r.flags.CanReply }
func (r *BusinessBotRights) CanReadMessages() bool       { return r.flags.CanReadMessages }
func (r *BusinessBotRights) CanDeleteSentMessages() bool { return r.flags.CanDeleteSentMessages }
func (r *BusinessBotRights) CanDeleteAllMessages() bool  { return r.flags.CanDeleteAllMessages }
func (r *BusinessBotRights) CanEditName() bool           { return r.flags.CanEditName }
func (r *BusinessBotRights) CanEditBio() bool            { return r.flags.CanEditBio }
func (r *BusinessBotRights) CanEditProfilePhoto() bool   { return r.flags.CanEditProfilePhoto }
func (r *BusinessBotRights) CanEditUsername() bool       { return r.flags.CanEditUsername }
func (r *BusinessBotRights) CanChangeGiftSettings() bool { return r.flags.CanChangeGiftSettings }
func (r *BusinessBotRights) CanViewGiftsAndStars() bool  { return r.flags.CanViewGiftsAndStars }
func (r *BusinessBotRights) CanConvertGiftsToStars() bool {
	return r.flags.CanConvertGiftsToStars
}
func (r *BusinessBotRights) CanTransferAndUpgradeGifts() bool {
	return r.flags.CanTransferAndUpgradeGifts
}
func (r *BusinessBotRights) CanTransferStars() bool { return r.flags.CanTransferStars }
func (r *BusinessBotRights) CanManageStories() bool { return r.flags.CanManageStories }

// Extra returns the unknown keys carried by the payload this rights set was
// decoded from.
func (r *BusinessBotRights) Extra() map[string]any { return copyExtra(r.extra) }

// Equal compares every flag.
func (r *BusinessBotRights) Equal(other *BusinessBotRights) bool {
	if r == nil || other == nil {
		return r == other
	}
	return r.flags == other.flags
}

// Hash is consistent with Equal.
func (r *BusinessBotRights) Hash() uint64 { return r.hash }

// MarshalJSON encodes the rights as a Bot API BusinessBotRights object.
// Following the Bot API convention, flags that are false are absent.
func (r *BusinessBotRights) MarshalJSON() ([]byte, error) {
	type wire struct {
		CanReply                   bool `json:"can_reply,omitempty"`
		CanReadMessages            bool `json:"can_read_messages,omitempty"`
		CanDeleteSentMessages      bool `json:"can_delete_sent_messages,omitempty"`
		CanDeleteAllMessages       bool `json:"can_delete_all_messages,omitempty"`
		CanEditName                bool `json:"can_edit_name,omitempty"`
		CanEditBio                 bool `json:"can_edit_bio,omitempty"`
		CanEditProfilePhoto        bool `json:"can_edit_profile_photo,omitempty"`
		CanEditUsername            bool `json:"can_edit_username,omitempty"`
		CanChangeGiftSettings      bool `json:"can_change_gift_settings,omitempty"`
		CanViewGiftsAndStars       bool `json:"can_view_gifts_and_stars,omitempty"`
		CanConvertGiftsToStars     bool `json:"can_convert_gifts_to_stars,omitempty"`
		CanTransferAndUpgradeGifts bool `json:"can_transfer_and_upgrade_gifts,omitempty"`
		CanTransferStars           bool `json:"can_transfer_stars,omitempty"`
		CanManageStories           bool `json:"can_manage_stories,omitempty"`
	}
	data, err := json.Marshal(wire(r.flags))
	if err != nil {
		return nil, err
	}
	return mergeExtra(data, r.extra)
}

// BusinessBotRights decodes a Bot API BusinessBotRights object.
func (d *Decoder) BusinessBotRights(data []byte) (*BusinessBotRights, error) {
	obj, err := parseObject(data)
	if err != nil {
		return nil, err
	}
	return decodeBusinessBotRights(d, obj)
}

func decodeBusinessBotRights(_ *Decoder, obj rawObject) (*BusinessBotRights, error) {
	const entity = "BusinessBotRights"
	var flags BusinessBotRightsFlags
	for key, dst := range map[string]*bool{
		"can_reply":                      &flags.CanReply,
		"can_read_messages":              &flags.CanReadMessages,
		"can_delete_sent_messages":       &flags.CanDeleteSentMessages,
		"can_delete_all_messages":        &flags.CanDeleteAllMessages,
		"can_edit_name":                  &flags.CanEditName,
		"can_edit_bio":                   &flags.CanEditBio,
		"can_edit_profile_photo":         &flags.CanEditProfilePhoto,
		"can_edit_username":              &flags.CanEditUsername,
		"can_change_gift_settings":       &flags.CanChangeGiftSettings,
		"can_view_gifts_and_stars":       &flags.CanViewGiftsAndStars,
		"can_convert_gifts_to_stars":     &flags.CanConvertGiftsToStars,
		"can_transfer_and_upgrade_gifts": &flags.CanTransferAndUpgradeGifts,
		"can_transfer_stars":             &flags.CanTransferStars,
		"can_manage_stories":             &flags.CanManageStories,
	} {
		if err := obj.optional(entity, key, dst); err != nil {
			return nil, err
		}
	}
	r := NewBusinessBotRights(flags)
	r.extra = obj.extra()
	return r, nil
}

// BusinessConnection describes the connection of the bot with a business
// account. Identity covers id, user, user_chat_id, date, is_enabled and
// rights.
type BusinessConnection struct {
	id         string
	user       *User
	userChatID int64
	date       time.Time
	isEnabled  bool
	rights     *BusinessBotRights
	extra      map[string]any
	hash       uint64
}

// BusinessConnectionOpts holds the optional fields.
type BusinessConnectionOpts struct {
	Rights *BusinessBotRights
}

// NewBusinessConnection builds a connection from its required fields. opts
// may be nil.
func NewBusinessConnection(id string, user *User, userChatID int64, date time.Time, isEnabled bool, opts *BusinessConnectionOpts) *BusinessConnection {
	c := &BusinessConnection{
		id:         id,
		user:       user,
		userChatID: userChatID,
		date:       date,
		isEnabled:  isEnabled,
	}
	if opts != nil {
		c.rights = opts.Rights
	}
	h := newHasher()
	h.str("business_connection")
	h.str(id)
	if user != nil {
		h.uint64(user.Hash())
	}
	h.int64(userChatID)
	h.int64(date.Unix())
	h.bool(isEnabled)
	if c.rights != nil {
		h.uint64(c.rights.Hash())
	}
	c.hash = h.sum()
	return c
}

func (c *BusinessConnection) ID() string                 { return c.id }
func (c *BusinessConnection) User() *User                { return c.user }
func (c *BusinessConnection) UserChatID() int64          { return c.userChatID }
func (c *BusinessConnection) Date() time.Time            { return c.date }
func (c *BusinessConnection) IsEnabled() bool            { return c.isEnabled }
func (c *BusinessConnection) Rights() *BusinessBotRights { return c.rights }

// Extra returns the unknown keys carried by the payload this connection was
// decoded from.
func (c *BusinessConnection) Extra() map[string]any { return copyExtra(c.extra) }

// Equal compares every identity field. Dates compare as instants, so the
// same moment in different locations is equal.
func (c *BusinessConnection) Equal(other *BusinessConnection) bool {
	if c == nil || other == nil {
		return c == other
	}
	return c.id == other.id &&
		c.user.Equal(other.user) &&
		c.userChatID == other.userChatID &&
		c.date.Equal(other.date) &&
		c.isEnabled == other.isEnabled &&
		equalRights(c.rights, other.rights)
}

func equalRights(a, b *BusinessBotRights) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(b)
}

// Hash is consistent with Equal.
func (c *BusinessConnection) Hash() uint64 { return c.hash }

// MarshalJSON encodes the connection as a Bot API BusinessConnection object,
// with the date as unix seconds.
func (c *BusinessConnection) MarshalJSON() ([]byte, error) {
	type wire struct {
		ID         string             `json:"id"`
		User       *User              `json:"user"`
		UserChatID int64              `json:"user_chat_id"`
		Date       int64              `json:"date"`
		IsEnabled  bool               `json:"is_enabled"`
		Rights     *BusinessBotRights `json:"rights,omitempty"`
	}
	data, err := json.Marshal(wire{
		ID:         c.id,
		User:       c.user,
		UserChatID: c.userChatID,
		Date:       c.date.Unix(),
		IsEnabled:  c.isEnabled,
		Rights:     c.rights,
	})
	if err != nil {
		return nil, err
	}
	return mergeExtra(data, c.extra)
}

// BusinessConnection decodes a Bot API BusinessConnection object. The date
// is rendered in the decoder's location.
func (d *Decoder) BusinessConnection(data []byte) (*BusinessConnection, error) {
	obj, err := parseObject(data)
	if err != nil {
		return nil, err
	}
	return decodeBusinessConnection(d, obj)
}

func decodeBusinessConnection(d *Decoder, obj rawObject) (*BusinessConnection, error) {
	const entity = "BusinessConnection"
	var (
		id         string
		userChatID int64
		dateSec    int64
		isEnabled  bool
	)
	if err := obj.require(entity, "id", &id); err != nil {
		return nil, err
	}
	userObj, ok, err := obj.object(entity, "user")
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s.user", ErrMissingField, entity)
	}
	user, err := decodeUser(d, userObj)
	if err != nil {
		return nil, err
	}
	if err := obj.require(entity, "user_chat_id", &userChatID); err != nil {
		return nil, err
	}
	if err := obj.require(entity, "date", &dateSec); err != nil {
		return nil, err
	}
	if err := obj.require(entity, "is_enabled", &isEnabled); err != nil {
		return nil, err
	}
	opts := &BusinessConnectionOpts{}
	if rightsObj, ok, err := obj.object(entity, "rights"); err != nil {
		return nil, err
	} else if ok {
		rights, err := decodeBusinessBotRights(d, rightsObj)
		if err != nil {
			return nil, err
		}
		opts.Rights = rights
	}
	c := NewBusinessConnection(id, user, userChatID, d.time(dateSec), isEnabled, opts)
	c.extra = obj.extra()
	return c, nil
}

// BusinessMessagesDeleted notifies about messages deleted from a connected
// business account. The message-id sequence is copied on construction and on
// read and keeps its order.
type BusinessMessagesDeleted struct {
	businessConnectionID string
	chat                 *Chat
	messageIDs           []int64
	extra                map[string]any
	hash                 uint64
}

// NewBusinessMessagesDeleted builds a deletion notice.
func NewBusinessMessagesDeleted(businessConnectionID string, chat *Chat, messageIDs []int64) *BusinessMessagesDeleted {
	m := &BusinessMessagesDeleted{
		businessConnectionID: businessConnectionID,
		chat:                 chat,
		messageIDs:           copyInt64s(messageIDs),
	}
	h := newHasher()
	h.str("business_messages_deleted")
	h.str(businessConnectionID)
	if chat != nil {
		h.uint64(chat.Hash())
	}
	for _, id := range m.messageIDs {
		h.int64(id)
	}
	m.hash = h.sum()
	return m
}

func copyInt64s(ids []int64) []int64 {
	if ids == nil {
		return nil
	}
	out := make([]int64, len(ids))
	copy(out, ids)
	return out
}

func (m *BusinessMessagesDeleted) BusinessConnectionID() string { return m.businessConnectionID }
func (m *BusinessMessagesDeleted) Chat() *Chat                  { return m.chat }

// MessageIDs returns a copy of the deleted message ids in payload order.
func (m *BusinessMessagesDeleted) MessageIDs() []int64 { return copyInt64s(m.messageIDs) }

// Extra returns the unknown keys carried by the payload this notice was
// decoded from.
func (m *BusinessMessagesDeleted) Extra() map[string]any { return copyExtra(m.extra) }

// Equal compares connection id, chat and the ordered message-id sequence.
func (m *BusinessMessagesDeleted) Equal(other *BusinessMessagesDeleted) bool {
	if m == nil || other == nil {
		return m == other
	}
	if m.businessConnectionID != other.businessConnectionID || !m.chat.Equal(other.chat) {
		return false
	}
	if len(m.messageIDs) != len(other.messageIDs) {
		return false
	}
	for i, id := range m.messageIDs {
		if id != other.messageIDs[i] {
			return false
		}
	}
	return true
}

// Hash is consistent with Equal.
func (m *BusinessMessagesDeleted) Hash() uint64 { return m.hash }

// MarshalJSON encodes the notice as a Bot API BusinessMessagesDeleted object.
func (m *BusinessMessagesDeleted) MarshalJSON() ([]byte, error) {
	type wire struct {
		BusinessConnectionID string  `json:"business_connection_id"`
		Chat                 *Chat   `json:"chat"`
		MessageIDs           []int64 `json:"message_ids"`
	}
	ids := m.messageIDs
	if ids == nil {
		ids = []int64{}
	}
	data, err := json.Marshal(wire{
		BusinessConnectionID: m.businessConnectionID,
		Chat:                 m.chat,
		MessageIDs:           ids,
	})
	if err != nil {
		return nil, err
	}
	return mergeExtra(data, m.extra)
}

// BusinessMessagesDeleted decodes a Bot API BusinessMessagesDeleted object.
func (d *Decoder) BusinessMessagesDeleted(data []byte) (*BusinessMessagesDeleted, error) {
	obj, err := parseObject(data)
	if err != nil {
		return nil, err
	}
	return decodeBusinessMessagesDeleted(d, obj)
}

func decodeBusinessMessagesDeleted(d *Decoder, obj rawObject) (*BusinessMessagesDeleted, error) {
	const entity = "BusinessMessagesDeleted"
	var (
		businessConnectionID string
		messageIDs           []int64
	)
	if err := obj.require(entity, "business_connection_id", &businessConnectionID); err != nil {
		return nil, err
	}
	chatObj, ok, err := obj.object(entity, "chat")
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s.chat", ErrMissingField, entity)
	}
	chat, err := decodeChat(d, chatObj)
	if err != nil {
		return nil, err
	}
	if err := obj.require(entity, "message_ids", &messageIDs); err != nil {
		return nil, err
	}
	m := NewBusinessMessagesDeleted(businessConnectionID, chat, messageIDs)
	m.extra = obj.extra()
	return m, nil
}

// BusinessIntro is the intro shown on an empty chat with a business account.
// Every field is optional on the Bot API side.
type BusinessIntro struct {
	title   string
	message string
	sticker *Sticker
	extra   map[string]any
	hash    uint64
}

// NewBusinessIntro builds an intro. sticker may be nil.
func NewBusinessIntro(title, message string, sticker *Sticker) *BusinessIntro {
	i := &BusinessIntro{title: title, message: message, sticker: sticker}
	h := newHasher()
	h.str("business_intro")
	h.str(title)
	h.str(message)
	if sticker != nil {
		h.uint64(sticker.Hash())
	}
	i.hash = h.sum()
	return i
}

func (i *BusinessIntro) Title() string     { return i.title }
func (i *BusinessIntro) Message() string   { return i.message }
func (i *BusinessIntro) Sticker() *Sticker { return i.sticker }

// Extra returns the unknown keys carried by the payload this intro was
// decoded from.
func (i *BusinessIntro) Extra() map[string]any { return copyExtra(i.extra) }

// Equal compares title, message and sticker.
func (i *BusinessIntro) Equal(other *BusinessIntro) bool {
	if i == nil || other == nil {
		return i == other
	}
	return i.title == other.title && i.message == other.message && i.sticker.Equal(other.sticker)
}

// Hash is consistent with Equal.
func (i *BusinessIntro) Hash() uint64 { return i.hash }

// MarshalJSON encodes the intro as a Bot API BusinessIntro object.
func (i *BusinessIntro) MarshalJSON() ([]byte, error) {
	type wire struct {
		Title   string   `json:"title,omitempty"`
		Message string   `json:"message,omitempty"`
		Sticker *Sticker `json:"sticker,omitempty"`
	}
	data, err := json.Marshal(wire{Title: i.title, Message: i.message, Sticker: i.sticker})
	if err != nil {
		return nil, err
	}
	return mergeExtra(data, i.extra)
}

// BusinessIntro decodes a Bot API BusinessIntro object.
func (d *Decoder) BusinessIntro(data []byte) (*BusinessIntro, error) {
	obj, err := parseObject(data)
	if err != nil {
		return nil, err
	}
	return decodeBusinessIntro(d, obj)
}

func decodeBusinessIntro(d *Decoder, obj rawObject) (*BusinessIntro, error) {
	const entity = "BusinessIntro"
	var title, message string
	if err := obj.optional(entity, "title", &title); err != nil {
		return nil, err
	}
	if err := obj.optional(entity, "message", &message); err != nil {
		return nil, err
	}
	var sticker *Sticker
	if stickerObj, ok, err := obj.object(entity, "sticker"); err != nil {
		return nil, err
	} else if ok {
		sticker, err = decodeSticker(d, stickerObj)
		if err != nil {
			return nil, err
		}
	}
	i := NewBusinessIntro(title, message, sticker)
	i.extra = obj.extra()
	return i, nil
}

// BusinessLocation is the location of a business account.
type BusinessLocation struct {
	address  string
	location *Location
	extra    map[string]any
	hash     uint64
}

// NewBusinessLocation builds a business location. location may be nil.
func NewBusinessLocation(address string, location *Location) *BusinessLocation {
	l := &BusinessLocation{address: address, location: location}
	h := newHasher()
	h.str("business_location")
	h.str(address)
	if location != nil {
		h.uint64(location.Hash())
	}
	l.hash = h.sum()
	return l
}

func (l *BusinessLocation) Address() string     { return l.address }
func (l *BusinessLocation) Location() *Location { return l.location }

// Extra returns the unknown keys carried by the payload this location was
// decoded from.
func (l *BusinessLocation) Extra() map[string]any { return copyExtra(l.extra) }

// Equal compares address and location.
func (l *BusinessLocation) Equal(other *BusinessLocation) bool {
	if l == nil || other == nil {
		return l == other
	}
	return l.address == other.address && l.location.Equal(other.location)
}

// Hash is consistent with Equal.
func (l *BusinessLocation) Hash() uint64 { return l.hash }

// MarshalJSON encodes the value as a Bot API BusinessLocation object.
func (l *BusinessLocation) MarshalJSON() ([]byte, error) {
	type wire struct {
		Address  string    `json:"address"`
		Location *Location `json:"location,omitempty"`
	}
	data, err := json.Marshal(wire{Address: l.address, Location: l.location})
	if err != nil {
		return nil, err
	}
	return mergeExtra(data, l.extra)
}

// BusinessLocation decodes a Bot API BusinessLocation object.
func (d *Decoder) BusinessLocation(data []byte) (*BusinessLocation, error) {
	obj, err := parseObject(data)
	if err != nil {
		return nil, err
	}
	return decodeBusinessLocation(d, obj)
}

func decodeBusinessLocation(d *Decoder, obj rawObject) (*BusinessLocation, error) {
	const entity = "BusinessLocation"
	var address string
	if err := obj.require(entity, "address", &address); err != nil {
		return nil, err
	}
	var location *Location
	if locationObj, ok, err := obj.object(entity, "location"); err != nil {
		return nil, err
	} else if ok {
		location, err = decodeLocation(d, locationObj)
		if err != nil {
			return nil, err
		}
	}
	l := NewBusinessLocation(address, location)
	l.extra = obj.extra()
	return l, nil
}

// Opening hours express minutes counted from Monday 00:00 of the business's
// week, so a full week spans [0, 7*24*60).
const (
	minutesPerHour = 60
	minutesPerDay  = 24 * minutesPerHour
	minutesPerWeek = 7 * minutesPerDay
)

// WeekTime is a minute-of-week offset broken into day of week (0 = Monday),
// hour and minute.
type WeekTime struct {
	Day    int
	Hour   int
	Minute int
}

func weekTime(minute int) WeekTime {
	return WeekTime{
		Day:    minute / minutesPerDay,
		Hour:   (minute % minutesPerDay) / minutesPerHour,
		Minute: minute % minutesPerHour,
	}
}

// BusinessOpeningHoursInterval is one time window a business is open,
// expressed in raw minute offsets from week start. Offsets are documented to
// fit one week (opening below 7*24*60, closing below 8*24*60) but are not
// range-checked. The broken-down opening and closing times are derived once
// at construction; reads return that stored value.
type BusinessOpeningHoursInterval struct {
	openingMinute int
	closingMinute int
	openingTime   WeekTime
	closingTime   WeekTime
	extra         map[string]any
	hash          uint64
}

// NewBusinessOpeningHoursInterval builds an interval from minute offsets.
func NewBusinessOpeningHoursInterval(openingMinute, closingMinute int) *BusinessOpeningHoursInterval {
	i := &BusinessOpeningHoursInterval{
		openingMinute: openingMinute,
		closingMinute: closingMinute,
		openingTime:   weekTime(openingMinute),
		closingTime:   weekTime(closingMinute),
	}
	h := newHasher()
	h.str("business_opening_hours_interval")
	h.int(openingMinute)
	h.int(closingMinute)
	i.hash = h.sum()
	return i
}

func (i *BusinessOpeningHoursInterval) OpeningMinute() int { return i.openingMinute }
func (i *BusinessOpeningHoursInterval) ClosingMinute() int { return i.closingMinute }

// OpeningTime is the opening minute broken into (day, hour, minute).
func (i *BusinessOpeningHoursInterval) OpeningTime() WeekTime { return i.openingTime }

// ClosingTime is the closing minute broken into (day, hour, minute).
func (i *BusinessOpeningHoursInterval) ClosingTime() WeekTime { return i.closingTime }

// Extra returns the unknown keys carried by the payload this interval was
// decoded from.
func (i *BusinessOpeningHoursInterval) Extra() map[string]any { return copyExtra(i.extra) }

// Equal compares both minute offsets.
func (i *BusinessOpeningHoursInterval) Equal(other *BusinessOpeningHoursInterval) bool {
	if i == nil || other == nil {
		return i == other
	}
	return i.openingMinute == other.openingMinute && i.closingMinute == other.closingMinute
}

// Hash is consistent with Equal.
func (i *BusinessOpeningHoursInterval) Hash() uint64 { return i.hash }

// MarshalJSON encodes the interval as a Bot API BusinessOpeningHoursInterval
// object.
func (i *BusinessOpeningHoursInterval) MarshalJSON() ([]byte, error) {
	type wire struct {
		OpeningMinute int `json:"opening_minute"`
		ClosingMinute int `json:"closing_minute"`
	}
	data, err := json.Marshal(wire{OpeningMinute: i.openingMinute, ClosingMinute: i.closingMinute})
	if err != nil {
		return nil, err
	}
	return mergeExtra(data, i.extra)
}

// BusinessOpeningHoursInterval decodes a Bot API BusinessOpeningHoursInterval
// object.
func (d *Decoder) BusinessOpeningHoursInterval(data []byte) (*BusinessOpeningHoursInterval, error) {
	obj, err := parseObject(data)
	if err != nil {
		return nil, err
	}
	return decodeBusinessOpeningHoursInterval(d, obj)
}

func decodeBusinessOpeningHoursInterval(_ *Decoder, obj rawObject) (*BusinessOpeningHoursInterval, error) {
	const entity = "BusinessOpeningHoursInterval"
	var openingMinute, closingMinute int
	if err := obj.require(entity, "opening_minute", &openingMinute); err != nil {
		return nil, err
	}
	if err := obj.require(entity, "closing_minute", &closingMinute); err != nil {
		return nil, err
	}
	i := NewBusinessOpeningHoursInterval(openingMinute, closingMinute)
	i.extra = obj.extra()
	return i, nil
}

// BusinessOpeningHours is the opening-hours schedule of a business account:
// a timezone name plus an ordered, immutable interval sequence.
type BusinessOpeningHours struct {
	timeZoneName string
	openingHours []*BusinessOpeningHoursInterval
	extra        map[string]any
	hash         uint64
}

// NewBusinessOpeningHours builds a schedule. The interval slice is copied.
func NewBusinessOpeningHours(timeZoneName string, openingHours []*BusinessOpeningHoursInterval) *BusinessOpeningHours {
	o := &BusinessOpeningHours{
		timeZoneName: timeZoneName,
		openingHours: copyIntervals(openingHours),
	}
	h := newHasher()
	h.str("business_opening_hours")
	h.str(timeZoneName)
	for _, interval := range o.openingHours {
		h.uint64(interval.Hash())
	}
	o.hash = h.sum()
	return o
}

func copyIntervals(intervals []*BusinessOpeningHoursInterval) []*BusinessOpeningHoursInterval {
	if intervals == nil {
		return nil
	}
	out := make([]*BusinessOpeningHoursInterval, len(intervals))
	copy(out, intervals)
	return out
}

func (o *BusinessOpeningHours) TimeZoneName() string { return o.timeZoneName }

// OpeningHours returns a copy of the interval sequence in payload order.
func (o *BusinessOpeningHours) OpeningHours() []*BusinessOpeningHoursInterval {
	return copyIntervals(o.openingHours)
}

// Extra returns the unknown keys carried by the payload this schedule was
// decoded from.
func (o *BusinessOpeningHours) Extra() map[string]any { return copyExtra(o.extra) }

// Equal compares the timezone name and the ordered interval sequence.
func (o *BusinessOpeningHours) Equal(other *BusinessOpeningHours) bool {
	if o == nil || other == nil {
		return o == other
	}
	if o.timeZoneName != other.timeZoneName || len(o.openingHours) != len(other.openingHours) {
		return false
	}
	for i, interval := range o.openingHours {
		if !interval.Equal(other.openingHours[i]) {
			return false
		}
	}
	return true
}

// Hash is consistent with Equal.
func (o *BusinessOpeningHours) Hash() uint64 { return o.hash }

// MarshalJSON encodes the schedule as a Bot API BusinessOpeningHours object.
func (o *BusinessOpeningHours) MarshalJSON() ([]byte, error) {
	type wire struct {
		TimeZoneName string                          `json:"time_zone_name"`
		OpeningHours []*BusinessOpeningHoursInterval `json:"opening_hours"`
	}
	intervals := o.openingHours
	if intervals == nil {
		intervals = []*BusinessOpeningHoursInterval{}
	}
	data, err := json.Marshal(wire{TimeZoneName: o.timeZoneName, OpeningHours: intervals})
	if err != nil {
		return nil, err
	}
	return mergeExtra(data, o.extra)
}

// BusinessOpeningHours decodes a Bot API BusinessOpeningHours object.
func (d *Decoder) BusinessOpeningHours(data []byte) (*BusinessOpeningHours, error) {
	obj, err := parseObject(data)
	if err != nil {
		return nil, err
	}
	return decodeBusinessOpeningHours(d, obj)
}

func decodeBusinessOpeningHours(d *Decoder, obj rawObject) (*BusinessOpeningHours, error) {
	const entity = "BusinessOpeningHours"
	var timeZoneName string
	if err := obj.require(entity, "time_zone_name", &timeZoneName); err != nil {
		return nil, err
	}
	intervalObjs, ok, err := obj.objects(entity, "opening_hours")
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s.opening_hours", ErrMissingField, entity)
	}
	intervals := make([]*BusinessOpeningHoursInterval, 0, len(intervalObjs))
	for _, intervalObj := range intervalObjs {
		interval, err := decodeBusinessOpeningHoursInterval(d, intervalObj)
		if err != nil {
			return nil, err
		}
		intervals = append(intervals, interval)
	}
	o := NewBusinessOpeningHours(timeZoneName, intervals)
	o.extra = obj.extra()
	return o, nil
}
