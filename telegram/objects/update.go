package objects

import "strings"

// Update is an incoming update, from getUpdates or a webhook.
type Update struct{ *Object }

func AsUpdate(o *Object) *Update { return wrap(o, func(o *Object) *Update { return &Update{o} }) }

// NewUpdate hydrates a decoded update.
func NewUpdate(fields map[string]any) *Update { return AsUpdate(Hydrate(KindUpdate, fields)) }

func (u *Update) UpdateID() int64               { return u.GetInt64("update_id") }
func (u *Update) Message() *Message             { return AsMessage(u.GetObject("message")) }
func (u *Update) EditedMessage() *Message       { return AsMessage(u.GetObject("edited_message")) }
func (u *Update) ChannelPost() *Message         { return AsMessage(u.GetObject("channel_post")) }
func (u *Update) EditedChannelPost() *Message   { return AsMessage(u.GetObject("edited_channel_post")) }
func (u *Update) InlineQuery() *InlineQuery     { return AsInlineQuery(u.GetObject("inline_query")) }
func (u *Update) CallbackQuery() *CallbackQuery { return AsCallbackQuery(u.GetObject("callback_query")) }
func (u *Update) ShippingQuery() *ShippingQuery { return AsShippingQuery(u.GetObject("shipping_query")) }
func (u *Update) Poll() *Poll                   { return AsPoll(u.GetObject("poll")) }

func (u *Update) ChosenInlineResult() *ChosenInlineResult {
	return AsChosenInlineResult(u.GetObject("chosen_inline_result"))
}

func (u *Update) PreCheckoutQuery() *PreCheckoutQuery {
	return AsPreCheckoutQuery(u.GetObject("pre_checkout_query"))
}

var updateTypes = []string{
	"message",
	"edited_message",
	"channel_post",
	"edited_channel_post",
	"inline_query",
	"chosen_inline_result",
	"callback_query",
	"shipping_query",
	"pre_checkout_query",
	"poll",
}

// DetectType returns which payload the update carries, or "".
func (u *Update) DetectType() string {
	return detect(u.Object, updateTypes)
}

// IsType reports whether the update carries the given payload.
func (u *Update) IsType(t string) bool {
	return u.Has(strings.ToLower(t)) || u.DetectType() == t
}

// RelatedMessage returns the message the update is about: the message or
// channel post itself, or the message a callback query is attached to.
func (u *Update) RelatedMessage() *Message {
	for _, field := range []string{"message", "edited_message", "channel_post", "edited_channel_post"} {
		if m := AsMessage(u.GetObject(field)); m != nil {
			return m
		}
	}
	if q := u.CallbackQuery(); q != nil {
		return q.Message()
	}
	return nil
}

// Chat returns the chat of the related message.
func (u *Update) Chat() *Chat {
	if m := u.RelatedMessage(); m != nil {
		return m.Chat()
	}
	return nil
}

// From returns the user that triggered the update.
func (u *Update) From() *User {
	if m := u.RelatedMessage(); m != nil && u.CallbackQuery() == nil {
		return m.From()
	}
	for _, field := range []string{"inline_query", "chosen_inline_result", "callback_query", "shipping_query", "pre_checkout_query"} {
		if o := u.GetObject(field); o != nil {
			return AsUser(o.GetObject("from"))
		}
	}
	return nil
}
