package telegram

import (
	"encoding/json"
	"fmt"
	"time"
)

// InlineQueryResultType is the wire value of an inline query result's "type"
// field.
type InlineQueryResultType string

const (
	InlineQueryResultTypeVoice InlineQueryResultType = "voice"
)

// Inline query result ids must be 1-64 bytes. Documented bounds; this package
// does not enforce them.
const (
	MinInlineQueryResultIDLength = 1
	MaxInlineQueryResultIDLength = 64
)

// InlineQueryResult is implemented by every inline query result entity.
type InlineQueryResult interface {
	json.Marshaler
	Type() InlineQueryResultType
	ID() string
}

// InlineQueryResultVoice is a link to a voice recording in an .ogg container
// encoded with OPUS. By default the recording is sent by the user; an
// InputMessageContent sends a message with the given content instead.
//
// Results are identified by their id alone, matching how the Bot API
// deduplicates answers to one inline query.
type InlineQueryResultVoice struct {
	id                  string
	voiceURL            string
	title               string
	caption             string
	parseMode           ParseMode
	captionEntities     []*MessageEntity
	voiceDuration       TimePeriod
	replyMarkup         *InlineKeyboardMarkup
	inputMessageContent InputMessageContent
	extra               map[string]any
	hash                uint64
}

// InlineQueryResultVoiceOpts holds the optional fields.
type InlineQueryResultVoiceOpts struct {
	Caption         string
	ParseMode       ParseMode
	CaptionEntities []*MessageEntity
	// VoiceDuration is the recording duration. Build it with Period;
	// Seconds is accepted for callers that still hold plain second counts.
	VoiceDuration       TimePeriod
	ReplyMarkup         *InlineKeyboardMarkup
	InputMessageContent InputMessageContent
}

// NewInlineQueryResultVoice builds a voice result from its required fields.
// opts may be nil.
func NewInlineQueryResultVoice(id, voiceURL, title string, opts *InlineQueryResultVoiceOpts) *InlineQueryResultVoice {
	r := &InlineQueryResultVoice{id: id, voiceURL: voiceURL, title: title}
	if opts != nil {
		r.caption = opts.Caption
		r.parseMode = opts.ParseMode
		r.captionEntities = copyEntities(opts.CaptionEntities)
		r.voiceDuration = opts.VoiceDuration
		r.replyMarkup = opts.ReplyMarkup
		r.inputMessageContent = opts.InputMessageContent
	}
	h := newHasher()
	h.str(string(InlineQueryResultTypeVoice))
	h.str(id)
	r.hash = h.sum()
	return r
}

// Type is always InlineQueryResultTypeVoice.
func (r *InlineQueryResultVoice) Type() InlineQueryResultType { return InlineQueryResultTypeVoice }

func (r *InlineQueryResultVoice) ID() string           { return r.id }
func (r *InlineQueryResultVoice) VoiceURL() string     { return r.voiceURL }
func (r *InlineQueryResultVoice) Title() string        { return r.title }
func (r *InlineQueryResultVoice) Caption() string      { return r.caption }
func (r *InlineQueryResultVoice) ParseMode() ParseMode { return r.parseMode }

// CaptionEntities returns a copy of the caption formatting entities in order.
func (r *InlineQueryResultVoice) CaptionEntities() []*MessageEntity {
	return copyEntities(r.captionEntities)
}

// VoiceDuration is the recording duration as supplied, normalized internally
// to a duration. See TimePeriod for the legacy plain-seconds behavior.
func (r *InlineQueryResultVoice) VoiceDuration() TimePeriod { return r.voiceDuration }

func (r *InlineQueryResultVoice) ReplyMarkup() *InlineKeyboardMarkup { return r.replyMarkup }

func (r *InlineQueryResultVoice) InputMessageContent() InputMessageContent {
	return r.inputMessageContent
}

// Extra returns the unknown keys carried by the payload this result was
// decoded from.
func (r *InlineQueryResultVoice) Extra() map[string]any { return copyExtra(r.extra) }

// Equal compares result ids.
func (r *InlineQueryResultVoice) Equal(other *InlineQueryResultVoice) bool {
	if r == nil || other == nil {
		return r == other
	}
	return r.id == other.id
}

// Hash is consistent with Equal.
func (r *InlineQueryResultVoice) Hash() uint64 { return r.hash }

// MarshalJSON encodes the result as a Bot API InlineQueryResultVoice object.
func (r *InlineQueryResultVoice) MarshalJSON() ([]byte, error) {
	type wire struct {
		Type                InlineQueryResultType `json:"type"`
		ID                  string                `json:"id"`
		VoiceURL            string                `json:"voice_url"`
		Title               string                `json:"title"`
		Caption             string                `json:"caption,omitempty"`
		ParseMode           string                `json:"parse_mode,omitempty"`
		CaptionEntities     []*MessageEntity      `json:"caption_entities,omitempty"`
		VoiceDuration       int64                 `json:"voice_duration,omitempty"`
		ReplyMarkup         *InlineKeyboardMarkup `json:"reply_markup,omitempty"`
		InputMessageContent InputMessageContent   `json:"input_message_content,omitempty"`
	}
	w := wire{
		Type:            InlineQueryResultTypeVoice,
		ID:              r.id,
		VoiceURL:        r.voiceURL,
		Title:           r.title,
		Caption:         r.caption,
		ParseMode:       r.parseMode.wire(),
		CaptionEntities: r.captionEntities,
		ReplyMarkup:     r.replyMarkup,
	}
	if !r.voiceDuration.IsZero() {
		w.VoiceDuration = r.voiceDuration.wireSeconds()
	}
	if r.inputMessageContent != nil {
		w.InputMessageContent = r.inputMessageContent
	}
	data, err := json.Marshal(w)
	if err != nil {
		return nil, err
	}
	return mergeExtra(data, r.extra)
}

// InlineQueryResultVoice decodes a Bot API InlineQueryResultVoice object. The
// "type" field, if present, must be "voice".
func (d *Decoder) InlineQueryResultVoice(data []byte) (*InlineQueryResultVoice, error) {
	obj, err := parseObject(data)
	if err != nil {
		return nil, err
	}
	return decodeInlineQueryResultVoice(d, obj)
}

func decodeInlineQueryResultVoice(d *Decoder, obj rawObject) (*InlineQueryResultVoice, error) {
	const entity = "InlineQueryResultVoice"
	var resultType InlineQueryResultType
	if err := obj.optional(entity, "type", &resultType); err != nil {
		return nil, err
	}
	if resultType != "" && resultType != InlineQueryResultTypeVoice {
		return nil, fmt.Errorf("%s: unexpected type %q", entity, resultType)
	}
	var id, voiceURL, title string
	if err := obj.require(entity, "id", &id); err != nil {
		return nil, err
	}
	if err := obj.require(entity, "voice_url", &voiceURL); err != nil {
		return nil, err
	}
	if err := obj.require(entity, "title", &title); err != nil {
		return nil, err
	}
	opts := &InlineQueryResultVoiceOpts{}
	if err := obj.optional(entity, "caption", &opts.Caption); err != nil {
		return nil, err
	}
	var parseMode string
	if err := obj.optional(entity, "parse_mode", &parseMode); err != nil {
		return nil, err
	}
	opts.ParseMode = ParseMode(parseMode)
	if entityObjs, ok, err := obj.objects(entity, "caption_entities"); err != nil {
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
		opts.CaptionEntities = entities
	}
	var duration int64
	hasDuration := false
	if raw, ok := obj["voice_duration"]; ok {
		delete(obj, "voice_duration")
		if err := json.Unmarshal(raw, &duration); err != nil {
			return nil, fmt.Errorf("%s.voice_duration: %w", entity, err)
		}
		hasDuration = true
	}
	if hasDuration {
		opts.VoiceDuration = Period(time.Duration(duration) * time.Second)
	}
	if markupObj, ok, err := obj.object(entity, "reply_markup"); err != nil {
		return nil, err
	} else if ok {
		markup, err := decodeInlineKeyboardMarkup(d, markupObj)
		if err != nil {
			return nil, err
		}
		opts.ReplyMarkup = markup
	}
	if contentObj, ok, err := obj.object(entity, "input_message_content"); err != nil {
		return nil, err
	} else if ok {
		content, err := decodeInputTextMessageContent(d, contentObj)
		if err != nil {
			return nil, err
		}
		opts.InputMessageContent = content
	}
	r := NewInlineQueryResultVoice(id, voiceURL, title, opts)
	r.extra = obj.extra()
	return r, nil
}
