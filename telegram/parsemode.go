package telegram

// ParseMode selects how Telegram parses formatting in captions and message
// texts. The zero value means "not set", which on the sending side lets a
// higher layer substitute its default. ParseModeNone explicitly requests no
// formatting; like the zero value it is absent from the wire form, but
// accessors preserve the distinction.
type ParseMode string

const (
	ParseModeMarkdownV2 ParseMode = "MarkdownV2"
	ParseModeHTML       ParseMode = "HTML"
	ParseModeMarkdown   ParseMode = "Markdown"

	// ParseModeNone marks formatting as explicitly disabled rather than
	// left to defaults.
	ParseModeNone ParseMode = "none"
)

// wire is the encoded form; the none marker and the unset zero value both
// serialize to absent.
func (m ParseMode) wire() string {
	if m == ParseModeNone {
		return ""
	}
	return string(m)
}
