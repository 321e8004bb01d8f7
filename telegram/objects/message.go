package objects

import (
	"html"
	"strconv"
	"strings"
	"unicode/utf16"
)

// Message is a chat message.
type Message struct{ *Object }

func AsMessage(o *Object) *Message { return wrap(o, func(o *Object) *Message { return &Message{o} }) }

// NewMessage hydrates a decoded message.
func NewMessage(fields map[string]any) *Message { return AsMessage(Hydrate(KindMessage, fields)) }

func (m *Message) MessageID() int64         { return m.GetInt64("message_id") }
func (m *Message) From() *User              { return AsUser(m.GetObject("from")) }
func (m *Message) Chat() *Chat              { return AsChat(m.GetObject("chat")) }
func (m *Message) Date() int64              { return m.GetInt64("date") }
func (m *Message) EditDate() int64          { return m.GetInt64("edit_date") }
func (m *Message) Text() string             { return m.GetString("text") }
func (m *Message) Caption() string          { return m.GetString("caption") }
func (m *Message) ReplyToMessage() *Message { return AsMessage(m.GetObject("reply_to_message")) }
func (m *Message) PinnedMessage() *Message  { return AsMessage(m.GetObject("pinned_message")) }
func (m *Message) ForwardFrom() *User       { return AsUser(m.GetObject("forward_from")) }
func (m *Message) ForwardFromChat() *Chat   { return AsChat(m.GetObject("forward_from_chat")) }
func (m *Message) Audio() *Audio            { return AsAudio(m.GetObject("audio")) }
func (m *Message) Document() *Document      { return AsDocument(m.GetObject("document")) }
func (m *Message) Animation() *Animation    { return AsAnimation(m.GetObject("animation")) }
func (m *Message) Game() *Game              { return AsGame(m.GetObject("game")) }
func (m *Message) Sticker() *Sticker        { return AsSticker(m.GetObject("sticker")) }
func (m *Message) Video() *Video            { return AsVideo(m.GetObject("video")) }
func (m *Message) Voice() *Voice            { return AsVoice(m.GetObject("voice")) }
func (m *Message) VideoNote() *VideoNote    { return AsVideoNote(m.GetObject("video_note")) }
func (m *Message) Contact() *Contact        { return AsContact(m.GetObject("contact")) }
func (m *Message) Location() *Location      { return AsLocation(m.GetObject("location")) }
func (m *Message) Venue() *Venue            { return AsVenue(m.GetObject("venue")) }
func (m *Message) Poll() *Poll              { return AsPoll(m.GetObject("poll")) }
func (m *Message) Invoice() *Invoice        { return AsInvoice(m.GetObject("invoice")) }
func (m *Message) LeftChatMember() *User    { return AsUser(m.GetObject("left_chat_member")) }

func (m *Message) SuccessfulPayment() *SuccessfulPayment {
	return AsSuccessfulPayment(m.GetObject("successful_payment"))
}

func (m *Message) Photo() []*PhotoSize        { return wrapList(m.GetObjects("photo"), AsPhotoSize) }
func (m *Message) NewChatPhoto() []*PhotoSize { return wrapList(m.GetObjects("new_chat_photo"), AsPhotoSize) }
func (m *Message) NewChatMembers() []*User    { return wrapList(m.GetObjects("new_chat_members"), AsUser) }
func (m *Message) Entities() []*MessageEntity { return wrapList(m.GetObjects("entities"), AsMessageEntity) }

func (m *Message) CaptionEntities() []*MessageEntity {
	return wrapList(m.GetObjects("caption_entities"), AsMessageEntity)
}

// messageTypes lists the fields that identify a message's content, in
// detection order. Animation messages also carry a document field and are
// reported as documents.
var messageTypes = []string{
	"text",
	"audio",
	"document",
	"photo",
	"sticker",
	"video",
	"voice",
	"video_note",
	"contact",
	"location",
	"venue",
	"poll",
	"new_chat_member",
	"new_chat_members",
	"left_chat_member",
	"new_chat_title",
	"new_chat_photo",
	"delete_chat_photo",
	"group_chat_created",
	"supergroup_chat_created",
	"channel_chat_created",
	"migrate_to_chat_id",
	"migrate_from_chat_id",
	"pinned_message",
	"invoice",
	"successful_payment",
}

// DetectType returns the content type of the message, or "" if none of the
// known content fields is set.
func (m *Message) DetectType() string {
	return detect(m.Object, messageTypes)
}

// IsType reports whether the message carries the given content field.
func (m *Message) IsType(t string) bool {
	return m.Has(strings.ToLower(t)) || m.DetectType() == t
}

// FileID returns the file_id of the message's media, picking the largest
// size for photos.
func (m *Message) FileID() string {
	switch {
	case m.Audio() != nil:
		return m.Audio().FileID()
	case m.Document() != nil:
		return m.Document().FileID()
	case len(m.NewChatPhoto()) > 0:
		p := m.NewChatPhoto()
		return p[len(p)-1].FileID()
	case len(m.Photo()) > 0:
		p := m.Photo()
		return p[len(p)-1].FileID()
	case m.Sticker() != nil:
		return m.Sticker().FileID()
	case m.Video() != nil:
		return m.Video().FileID()
	case m.Voice() != nil:
		return m.Voice().FileID()
	case m.VideoNote() != nil:
		return m.VideoNote().FileID()
	}
	return ""
}

// EntityText returns the part of the text covered by the entity.
func (m *Message) EntityText(e *MessageEntity) string {
	return utf16Slice(m.Text(), e.Offset(), e.Length())
}

// CaptionEntityText returns the part of the caption covered by the entity.
func (m *Message) CaptionEntityText(e *MessageEntity) string {
	return utf16Slice(m.Caption(), e.Offset(), e.Length())
}

func (m *Message) HasHTMLEntity() bool  { return anyHTML(m.Entities()) }
func (m *Message) HasHTMLCaption() bool { return anyHTML(m.CaptionEntities()) }

// HTML renders the text with its formatting entities as Telegram HTML.
func (m *Message) HTML() string { return renderHTML(m.Text(), m.Entities()) }

// CaptionHTML renders the caption with its formatting entities.
func (m *Message) CaptionHTML() string { return renderHTML(m.Caption(), m.CaptionEntities()) }

func anyHTML(entities []*MessageEntity) bool {
	for _, e := range entities {
		if e.IsHTMLEntity() {
			return true
		}
	}
	return false
}

func renderHTML(text string, entities []*MessageEntity) string {
	units := utf16.Encode([]rune(text))
	var sb strings.Builder
	last := 0
	for _, e := range entities {
		start := clamp(e.Offset(), last, len(units))
		end := clamp(e.Offset()+e.Length(), start, len(units))
		sb.WriteString(html.EscapeString(decodeUnits(units[last:start])))
		inner := html.EscapeString(decodeUnits(units[start:end]))
		last = end

		switch e.Type() {
		case "bold":
			sb.WriteString("<b>" + inner + "</b>")
		case "italic":
			sb.WriteString("<i>" + inner + "</i>")
		case "code":
			sb.WriteString("<code>" + inner + "</code>")
		case "pre":
			sb.WriteString("<pre>" + inner + "</pre>")
		case "text_link":
			sb.WriteString(`<a href="` + html.EscapeString(e.URL()) + `">` + inner + "</a>")
		case "text_mention":
			id := int64(0)
			if u := e.User(); u != nil {
				id = u.ID()
			}
			sb.WriteString(`<a href="tg://user?id=` + strconv.FormatInt(id, 10) + `">` + inner + "</a>")
		default:
			sb.WriteString(inner)
		}
	}
	sb.WriteString(html.EscapeString(decodeUnits(units[last:])))
	return sb.String()
}

// utf16Slice cuts s by UTF-16 code unit offsets, the unit entity offsets
// are expressed in.
func utf16Slice(s string, offset, length int) string {
	units := utf16.Encode([]rune(s))
	start := clamp(offset, 0, len(units))
	end := clamp(offset+length, start, len(units))
	return decodeUnits(units[start:end])
}

func decodeUnits(u []uint16) string { return string(utf16.Decode(u)) }

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}

func detect(o *Object, types []string) string {
	for _, t := range types {
		if o.Has(t) {
			return t
		}
	}
	return ""
}
