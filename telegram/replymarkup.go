package telegram

import (
	"encoding/json"
	"fmt"
)

// InlineKeyboardButton is one button of an inline keyboard. Exactly one of
// the optional action fields should be set; the Bot API documents but does
// not enforce this, and neither does this package.
type InlineKeyboardButton struct {
	text              string
	url               string
	callbackData      string
	switchInlineQuery string
	extra             map[string]any
	hash              uint64
}

// InlineKeyboardButtonOpts holds the optional button fields.
type InlineKeyboardButtonOpts struct {
	URL               string
	CallbackData      string
	SwitchInlineQuery string
}

// NewInlineKeyboardButton builds a button with the given label. opts may be
// nil.
func NewInlineKeyboardButton(text string, opts *InlineKeyboardButtonOpts) *InlineKeyboardButton {
	b := &InlineKeyboardButton{text: text}
	if opts != nil {
		b.url = opts.URL
		b.callbackData = opts.CallbackData
		b.switchInlineQuery = opts.SwitchInlineQuery
	}
	h := newHasher()
	h.str("inline_keyboard_button")
	h.str(text)
	h.str(b.url)
	h.str(b.callbackData)
	h.str(b.switchInlineQuery)
	b.hash = h.sum()
	return b
}

func (b *InlineKeyboardButton) Text() string              { return b.text }
func (b *InlineKeyboardButton) URL() string               { return b.url }
func (b *InlineKeyboardButton) CallbackData() string      { return b.callbackData }
func (b *InlineKeyboardButton) SwitchInlineQuery() string { return b.switchInlineQuery }

// Extra returns the unknown keys carried by the payload this button was
// decoded from.
func (b *InlineKeyboardButton) Extra() map[string]any { return copyExtra(b.extra) }

// Equal compares the label and every action field.
func (b *InlineKeyboardButton) Equal(other *InlineKeyboardButton) bool {
	if b == nil || other == nil {
		return b == other
	}
	return b.text == other.text &&
		b.url == other.url &&
		b.callbackData == other.callbackData &&
		b.switchInlineQuery == other.switchInlineQuery
}

// Hash is consistent with Equal.
func (b *InlineKeyboardButton) Hash() uint64 { return b.hash }

// MarshalJSON encodes the button as a Bot API InlineKeyboardButton object.
func (b *InlineKeyboardButton) MarshalJSON() ([]byte, error) {
	type wire struct {
		Text              string `json:"text"`
		URL               string `json:"url,omitempty"`
		CallbackData      string `json:"callback_data,omitempty"`
		SwitchInlineQuery string `json:"switch_inline_query,omitempty"`
	}
	data, err := json.Marshal(wire{
		Text:              b.text,
		URL:               b.url,
		CallbackData:      b.callbackData,
		SwitchInlineQuery: b.switchInlineQuery,
	})
	if err != nil {
		return nil, err
	}
	return mergeExtra(data, b.extra)
}

func decodeInlineKeyboardButton(_ *Decoder, obj rawObject) (*InlineKeyboardButton, error) {
	const entity = "InlineKeyboardButton"
	var text string
	if err := obj.require(entity, "text", &text); err != nil {
		return nil, err
	}
	opts := &InlineKeyboardButtonOpts{}
	if err := obj.optional(entity, "url", &opts.URL); err != nil {
		return nil, err
	}
	if err := obj.optional(entity, "callback_data", &opts.CallbackData); err != nil {
		return nil, err
	}
	if err := obj.optional(entity, "switch_inline_query", &opts.SwitchInlineQuery); err != nil {
		return nil, err
	}
	b := NewInlineKeyboardButton(text, opts)
	b.extra = obj.extra()
	return b, nil
}

// InlineKeyboardMarkup is an inline keyboard attached to a message: an
// ordered grid of button rows. The grid is copied on construction and on
// read, so neither the caller's slice nor the stored one can be mutated
// through the other.
type InlineKeyboardMarkup struct {
	keyboard [][]*InlineKeyboardButton
	extra    map[string]any
	hash     uint64
}

// NewInlineKeyboardMarkup builds a keyboard from button rows.
func NewInlineKeyboardMarkup(keyboard [][]*InlineKeyboardButton) *InlineKeyboardMarkup {
	m := &InlineKeyboardMarkup{keyboard: copyKeyboard(keyboard)}
	h := newHasher()
	h.str("inline_keyboard_markup")
	for _, row := range m.keyboard {
		for _, button := range row {
			h.uint64(button.Hash())
		}
		h.str("/") // row boundary
	}
	m.hash = h.sum()
	return m
}

func copyKeyboard(keyboard [][]*InlineKeyboardButton) [][]*InlineKeyboardButton {
	if keyboard == nil {
		return nil
	}
	out := make([][]*InlineKeyboardButton, len(keyboard))
	for i, row := range keyboard {
		out[i] = make([]*InlineKeyboardButton, len(row))
		copy(out[i], row)
	}
	return out
}

// InlineKeyboard returns a copy of the button grid in row order.
func (m *InlineKeyboardMarkup) InlineKeyboard() [][]*InlineKeyboardButton {
	return copyKeyboard(m.keyboard)
}

// Extra returns the unknown keys carried by the payload this keyboard was
// decoded from.
func (m *InlineKeyboardMarkup) Extra() map[string]any { return copyExtra(m.extra) }

// Equal compares the grids element-wise.
func (m *InlineKeyboardMarkup) Equal(other *InlineKeyboardMarkup) bool {
	if m == nil || other == nil {
		return m == other
	}
	if len(m.keyboard) != len(other.keyboard) {
		return false
	}
	for i, row := range m.keyboard {
		if len(row) != len(other.keyboard[i]) {
			return false
		}
		for j, button := range row {
			if !button.Equal(other.keyboard[i][j]) {
				return false
			}
		}
	}
	return true
}

// Hash is consistent with Equal.
func (m *InlineKeyboardMarkup) Hash() uint64 { return m.hash }

// MarshalJSON encodes the keyboard as a Bot API InlineKeyboardMarkup object.
func (m *InlineKeyboardMarkup) MarshalJSON() ([]byte, error) {
	type wire struct {
		InlineKeyboard [][]*InlineKeyboardButton `json:"inline_keyboard"`
	}
	keyboard := m.keyboard
	if keyboard == nil {
		keyboard = [][]*InlineKeyboardButton{}
	}
	data, err := json.Marshal(wire{InlineKeyboard: keyboard})
	if err != nil {
		return nil, err
	}
	return mergeExtra(data, m.extra)
}

// InlineKeyboardMarkup decodes a Bot API InlineKeyboardMarkup object.
func (d *Decoder) InlineKeyboardMarkup(data []byte) (*InlineKeyboardMarkup, error) {
	obj, err := parseObject(data)
	if err != nil {
		return nil, err
	}
	return decodeInlineKeyboardMarkup(d, obj)
}

func decodeInlineKeyboardMarkup(d *Decoder, obj rawObject) (*InlineKeyboardMarkup, error) {
	const entity = "InlineKeyboardMarkup"
	raw, ok := obj["inline_keyboard"]
	if !ok {
		return nil, fmt.Errorf("%w: %s.inline_keyboard", ErrMissingField, entity)
	}
	delete(obj, "inline_keyboard")
	var rows []json.RawMessage
	if err := json.Unmarshal(raw, &rows); err != nil {
		return nil, err
	}
	keyboard := make([][]*InlineKeyboardButton, 0, len(rows))
	for _, rowRaw := range rows {
		var buttons []json.RawMessage
		if err := json.Unmarshal(rowRaw, &buttons); err != nil {
			return nil, err
		}
		row := make([]*InlineKeyboardButton, 0, len(buttons))
		for _, buttonRaw := range buttons {
			buttonObj, err := parseObject(buttonRaw)
			if err != nil {
				return nil, err
			}
			button, err := decodeInlineKeyboardButton(d, buttonObj)
			if err != nil {
				return nil, err
			}
			row = append(row, button)
		}
		keyboard = append(keyboard, row)
	}
	m := NewInlineKeyboardMarkup(keyboard)
	m.extra = obj.extra()
	return m, nil
}
