package objects

func wrap[T any](o *Object, f func(*Object) *T) *T {
	if o == nil {
		return nil
	}
	return f(o)
}

func wrapList[T any](list []*Object, f func(*Object) *T) []*T {
	if list == nil {
		return nil
	}
	out := make([]*T, len(list))
	for i, o := range list {
		out[i] = f(o)
	}
	return out
}

// fileRef holds the fields shared by every downloadable object.
type fileRef struct{ *Object }

func (f fileRef) FileID() string       { return f.GetString("file_id") }
func (f fileRef) FileUniqueID() string { return f.GetString("file_unique_id") }
func (f fileRef) FileSize() int64      { return f.GetInt64("file_size") }

// Thumb is nil for kinds without a thumbnail relation.
func (f fileRef) Thumb() *PhotoSize { return AsPhotoSize(f.GetObject("thumb")) }

// User is a Telegram user or bot.
type User struct{ *Object }

func AsUser(o *Object) *User { return wrap(o, func(o *Object) *User { return &User{o} }) }

func (u *User) ID() int64            { return u.GetInt64("id") }
func (u *User) IsBot() bool          { return u.GetBool("is_bot") }
func (u *User) FirstName() string    { return u.GetString("first_name") }
func (u *User) LastName() string     { return u.GetString("last_name") }
func (u *User) Username() string     { return u.GetString("username") }
func (u *User) LanguageCode() string { return u.GetString("language_code") }

// Chat is a private chat, group, supergroup or channel.
type Chat struct{ *Object }

func AsChat(o *Object) *Chat { return wrap(o, func(o *Object) *Chat { return &Chat{o} }) }

func (c *Chat) ID() int64                 { return c.GetInt64("id") }
func (c *Chat) Type() string              { return c.GetString("type") }
func (c *Chat) Title() string             { return c.GetString("title") }
func (c *Chat) Username() string          { return c.GetString("username") }
func (c *Chat) Photo() *ChatPhoto         { return AsChatPhoto(c.GetObject("photo")) }
func (c *Chat) PinnedMessage() *Message   { return AsMessage(c.GetObject("pinned_message")) }
func (c *Chat) IsPrivate() bool           { return c.Type() == "private" }
func (c *Chat) InviteLink() string        { return c.GetString("invite_link") }
func (c *Chat) StickerSetName() string    { return c.GetString("sticker_set_name") }
func (c *Chat) Description() string       { return c.GetString("description") }
func (c *Chat) CanSetStickerSet() bool    { return c.GetBool("can_set_sticker_set") }
func (c *Chat) AllMembersAreAdmins() bool { return c.GetBool("all_members_are_administrators") }

type ChatPhoto struct{ *Object }

func AsChatPhoto(o *Object) *ChatPhoto { return wrap(o, func(o *Object) *ChatPhoto { return &ChatPhoto{o} }) }

func (p *ChatPhoto) SmallFileID() string { return p.GetString("small_file_id") }
func (p *ChatPhoto) BigFileID() string   { return p.GetString("big_file_id") }

// MessageEntity marks a special span of a message text, offsets in UTF-16
// code units.
type MessageEntity struct{ *Object }

func AsMessageEntity(o *Object) *MessageEntity {
	return wrap(o, func(o *Object) *MessageEntity { return &MessageEntity{o} })
}

func (e *MessageEntity) Type() string { return e.GetString("type") }
func (e *MessageEntity) Offset() int  { return int(e.GetInt64("offset")) }
func (e *MessageEntity) Length() int  { return int(e.GetInt64("length")) }
func (e *MessageEntity) URL() string  { return e.GetString("url") }
func (e *MessageEntity) User() *User  { return AsUser(e.GetObject("user")) }
func (e *MessageEntity) IsHTMLEntity() bool {
	switch e.Type() {
	case "bold", "italic", "code", "pre", "text_link", "text_mention":
		return true
	}
	return false
}

type PhotoSize struct{ fileRef }

func AsPhotoSize(o *Object) *PhotoSize {
	return wrap(o, func(o *Object) *PhotoSize { return &PhotoSize{fileRef{o}} })
}

func (p *PhotoSize) Width() int  { return int(p.GetInt64("width")) }
func (p *PhotoSize) Height() int { return int(p.GetInt64("height")) }

type Audio struct{ fileRef }

func AsAudio(o *Object) *Audio { return wrap(o, func(o *Object) *Audio { return &Audio{fileRef{o}} }) }

func (a *Audio) Duration() int     { return int(a.GetInt64("duration")) }
func (a *Audio) Performer() string { return a.GetString("performer") }
func (a *Audio) Title() string     { return a.GetString("title") }
func (a *Audio) MimeType() string  { return a.GetString("mime_type") }

type Document struct{ fileRef }

func AsDocument(o *Object) *Document {
	return wrap(o, func(o *Object) *Document { return &Document{fileRef{o}} })
}

func (d *Document) FileName() string { return d.GetString("file_name") }
func (d *Document) MimeType() string { return d.GetString("mime_type") }

// Animation is a GIF or soundless H.264 video. It carries every Document
// field.
type Animation struct{ Document }

func AsAnimation(o *Object) *Animation {
	return wrap(o, func(o *Object) *Animation { return &Animation{Document{fileRef{o}}} })
}

func (a *Animation) Width() int    { return int(a.GetInt64("width")) }
func (a *Animation) Height() int   { return int(a.GetInt64("height")) }
func (a *Animation) Duration() int { return int(a.GetInt64("duration")) }

type Video struct{ fileRef }

func AsVideo(o *Object) *Video { return wrap(o, func(o *Object) *Video { return &Video{fileRef{o}} }) }

func (v *Video) Width() int       { return int(v.GetInt64("width")) }
func (v *Video) Height() int      { return int(v.GetInt64("height")) }
func (v *Video) Duration() int    { return int(v.GetInt64("duration")) }
func (v *Video) MimeType() string { return v.GetString("mime_type") }

type Voice struct{ fileRef }

func AsVoice(o *Object) *Voice { return wrap(o, func(o *Object) *Voice { return &Voice{fileRef{o}} }) }

func (v *Voice) Duration() int    { return int(v.GetInt64("duration")) }
func (v *Voice) MimeType() string { return v.GetString("mime_type") }

type VideoNote struct{ fileRef }

func AsVideoNote(o *Object) *VideoNote {
	return wrap(o, func(o *Object) *VideoNote { return &VideoNote{fileRef{o}} })
}

func (v *VideoNote) Length() int   { return int(v.GetInt64("length")) }
func (v *VideoNote) Duration() int { return int(v.GetInt64("duration")) }

type Contact struct{ *Object }

func AsContact(o *Object) *Contact { return wrap(o, func(o *Object) *Contact { return &Contact{o} }) }

func (c *Contact) PhoneNumber() string { return c.GetString("phone_number") }
func (c *Contact) FirstName() string   { return c.GetString("first_name") }
func (c *Contact) UserID() int64       { return c.GetInt64("user_id") }

type Location struct{ *Object }

func AsLocation(o *Object) *Location { return wrap(o, func(o *Object) *Location { return &Location{o} }) }

func (l *Location) Latitude() float64  { return l.GetFloat64("latitude") }
func (l *Location) Longitude() float64 { return l.GetFloat64("longitude") }

type Venue struct{ *Object }

func AsVenue(o *Object) *Venue { return wrap(o, func(o *Object) *Venue { return &Venue{o} }) }

func (v *Venue) Location() *Location { return AsLocation(v.GetObject("location")) }
func (v *Venue) Title() string       { return v.GetString("title") }
func (v *Venue) Address() string     { return v.GetString("address") }

type Poll struct{ *Object }

func AsPoll(o *Object) *Poll { return wrap(o, func(o *Object) *Poll { return &Poll{o} }) }

func (p *Poll) ID() string             { return p.GetString("id") }
func (p *Poll) Question() string       { return p.GetString("question") }
func (p *Poll) Options() []*PollOption { return wrapList(p.GetObjects("options"), AsPollOption) }
func (p *Poll) IsClosed() bool         { return p.GetBool("is_closed") }

type PollOption struct{ *Object }

func AsPollOption(o *Object) *PollOption {
	return wrap(o, func(o *Object) *PollOption { return &PollOption{o} })
}

func (p *PollOption) Text() string    { return p.GetString("text") }
func (p *PollOption) VoterCount() int { return int(p.GetInt64("voter_count")) }

type Sticker struct{ fileRef }

func AsSticker(o *Object) *Sticker { return wrap(o, func(o *Object) *Sticker { return &Sticker{fileRef{o}} }) }

func (s *Sticker) Emoji() string               { return s.GetString("emoji") }
func (s *Sticker) SetName() string             { return s.GetString("set_name") }
func (s *Sticker) MaskPosition() *MaskPosition { return AsMaskPosition(s.GetObject("mask_position")) }

type StickerSet struct{ *Object }

func AsStickerSet(o *Object) *StickerSet {
	return wrap(o, func(o *Object) *StickerSet { return &StickerSet{o} })
}

func (s *StickerSet) Name() string         { return s.GetString("name") }
func (s *StickerSet) Title() string        { return s.GetString("title") }
func (s *StickerSet) IsMasks() bool        { return s.GetBool("is_masks") }
func (s *StickerSet) Stickers() []*Sticker { return wrapList(s.GetObjects("stickers"), AsSticker) }

type MaskPosition struct{ *Object }

func AsMaskPosition(o *Object) *MaskPosition {
	return wrap(o, func(o *Object) *MaskPosition { return &MaskPosition{o} })
}

func (m *MaskPosition) Point() string   { return m.GetString("point") }
func (m *MaskPosition) XShift() float64 { return m.GetFloat64("x_shift") }
func (m *MaskPosition) YShift() float64 { return m.GetFloat64("y_shift") }
func (m *MaskPosition) Scale() float64  { return m.GetFloat64("scale") }

// Zoom is the scale field under its historical name.
func (m *MaskPosition) Zoom() float64 {
	if m.Has("zoom") {
		return m.GetFloat64("zoom")
	}
	return m.Scale()
}

// File is a file ready to be downloaded.
type File struct{ fileRef }

func AsFile(o *Object) *File { return wrap(o, func(o *Object) *File { return &File{fileRef{o}} }) }

func (f *File) FilePath() string { return f.GetString("file_path") }

// URL returns the download link for the file. It embeds the bot token.
func (f *File) URL(token string) string {
	return FileBaseURL + "/bot" + token + "/" + f.FilePath()
}

// FileBaseURL is the host files are downloaded from.
var FileBaseURL = "https://api.telegram.org/file"

type UserProfilePhotos struct{ *Object }

func AsUserProfilePhotos(o *Object) *UserProfilePhotos {
	return wrap(o, func(o *Object) *UserProfilePhotos { return &UserProfilePhotos{o} })
}

func (u *UserProfilePhotos) TotalCount() int { return int(u.GetInt64("total_count")) }

// Photos returns each profile photo as its list of sizes.
func (u *UserProfilePhotos) Photos() [][]*PhotoSize {
	rows := u.GetObjectRows("photos")
	if rows == nil {
		if flat := u.GetObjects("photos"); flat != nil {
			rows = [][]*Object{flat}
		}
	}
	out := make([][]*PhotoSize, len(rows))
	for i, row := range rows {
		out[i] = wrapList(row, AsPhotoSize)
	}
	return out
}

type ChatMember struct{ *Object }

func AsChatMember(o *Object) *ChatMember {
	return wrap(o, func(o *Object) *ChatMember { return &ChatMember{o} })
}

func (m *ChatMember) User() *User    { return AsUser(m.GetObject("user")) }
func (m *ChatMember) Status() string { return m.GetString("status") }
func (m *ChatMember) IsAdmin() bool {
	s := m.Status()
	return s == "creator" || s == "administrator"
}

type WebhookInfo struct{ *Object }

func AsWebhookInfo(o *Object) *WebhookInfo {
	return wrap(o, func(o *Object) *WebhookInfo { return &WebhookInfo{o} })
}

func (w *WebhookInfo) URL() string                { return w.GetString("url") }
func (w *WebhookInfo) HasCustomCertificate() bool { return w.GetBool("has_custom_certificate") }
func (w *WebhookInfo) PendingUpdateCount() int    { return int(w.GetInt64("pending_update_count")) }
func (w *WebhookInfo) LastErrorMessage() string   { return w.GetString("last_error_message") }

// ResponseParameters explains why a request failed.
type ResponseParameters struct{ *Object }

func AsResponseParameters(o *Object) *ResponseParameters {
	return wrap(o, func(o *Object) *ResponseParameters { return &ResponseParameters{o} })
}

func (p *ResponseParameters) RetryAfter() int        { return int(p.GetInt64("retry_after")) }
func (p *ResponseParameters) MigrateToChatID() int64 { return p.GetInt64("migrate_to_chat_id") }

type CallbackQuery struct{ *Object }

func AsCallbackQuery(o *Object) *CallbackQuery {
	return wrap(o, func(o *Object) *CallbackQuery { return &CallbackQuery{o} })
}

func (q *CallbackQuery) ID() string        { return q.GetString("id") }
func (q *CallbackQuery) From() *User       { return AsUser(q.GetObject("from")) }
func (q *CallbackQuery) Message() *Message { return AsMessage(q.GetObject("message")) }
func (q *CallbackQuery) Data() string      { return q.GetString("data") }

type InlineQuery struct{ *Object }

func AsInlineQuery(o *Object) *InlineQuery {
	return wrap(o, func(o *Object) *InlineQuery { return &InlineQuery{o} })
}

func (q *InlineQuery) ID() string    { return q.GetString("id") }
func (q *InlineQuery) From() *User   { return AsUser(q.GetObject("from")) }
func (q *InlineQuery) Query() string { return q.GetString("query") }

type ChosenInlineResult struct{ *Object }

func AsChosenInlineResult(o *Object) *ChosenInlineResult {
	return wrap(o, func(o *Object) *ChosenInlineResult { return &ChosenInlineResult{o} })
}

func (r *ChosenInlineResult) ResultID() string { return r.GetString("result_id") }
func (r *ChosenInlineResult) From() *User      { return AsUser(r.GetObject("from")) }
func (r *ChosenInlineResult) Query() string    { return r.GetString("query") }

type Game struct{ *Object }

func AsGame(o *Object) *Game { return wrap(o, func(o *Object) *Game { return &Game{o} }) }

func (g *Game) Title() string         { return g.GetString("title") }
func (g *Game) Photo() []*PhotoSize   { return wrapList(g.GetObjects("photo"), AsPhotoSize) }
func (g *Game) Animation() *Animation { return AsAnimation(g.GetObject("animation")) }

type GameHighScore struct{ *Object }

func AsGameHighScore(o *Object) *GameHighScore {
	return wrap(o, func(o *Object) *GameHighScore { return &GameHighScore{o} })
}

func (s *GameHighScore) Position() int { return int(s.GetInt64("position")) }
func (s *GameHighScore) User() *User   { return AsUser(s.GetObject("user")) }
func (s *GameHighScore) Score() int    { return int(s.GetInt64("score")) }

type Invoice struct{ *Object }

func AsInvoice(o *Object) *Invoice { return wrap(o, func(o *Object) *Invoice { return &Invoice{o} }) }

func (i *Invoice) Currency() string   { return i.GetString("currency") }
func (i *Invoice) TotalAmount() int64 { return i.GetInt64("total_amount") }

type SuccessfulPayment struct{ *Object }

func AsSuccessfulPayment(o *Object) *SuccessfulPayment {
	return wrap(o, func(o *Object) *SuccessfulPayment { return &SuccessfulPayment{o} })
}

func (p *SuccessfulPayment) Currency() string       { return p.GetString("currency") }
func (p *SuccessfulPayment) TotalAmount() int64     { return p.GetInt64("total_amount") }
func (p *SuccessfulPayment) InvoicePayload() string { return p.GetString("invoice_payload") }
func (p *SuccessfulPayment) OrderInfo() *OrderInfo  { return AsOrderInfo(p.GetObject("order_info")) }

type OrderInfo struct{ *Object }

func AsOrderInfo(o *Object) *OrderInfo { return wrap(o, func(o *Object) *OrderInfo { return &OrderInfo{o} }) }

func (i *OrderInfo) Name() string  { return i.GetString("name") }
func (i *OrderInfo) Email() string { return i.GetString("email") }
func (i *OrderInfo) ShippingAddress() *ShippingAddress {
	return AsShippingAddress(i.GetObject("shipping_address"))
}

type ShippingAddress struct{ *Object }

func AsShippingAddress(o *Object) *ShippingAddress {
	return wrap(o, func(o *Object) *ShippingAddress { return &ShippingAddress{o} })
}

func (a *ShippingAddress) CountryCode() string { return a.GetString("country_code") }
func (a *ShippingAddress) City() string        { return a.GetString("city") }
func (a *ShippingAddress) PostCode() string    { return a.GetString("post_code") }

type ShippingQuery struct{ *Object }

func AsShippingQuery(o *Object) *ShippingQuery {
	return wrap(o, func(o *Object) *ShippingQuery { return &ShippingQuery{o} })
}

func (q *ShippingQuery) ID() string  { return q.GetString("id") }
func (q *ShippingQuery) From() *User { return AsUser(q.GetObject("from")) }
func (q *ShippingQuery) ShippingAddress() *ShippingAddress {
	return AsShippingAddress(q.GetObject("shipping_address"))
}

type PreCheckoutQuery struct{ *Object }

func AsPreCheckoutQuery(o *Object) *PreCheckoutQuery {
	return wrap(o, func(o *Object) *PreCheckoutQuery { return &PreCheckoutQuery{o} })
}

func (q *PreCheckoutQuery) ID() string            { return q.GetString("id") }
func (q *PreCheckoutQuery) From() *User           { return AsUser(q.GetObject("from")) }
func (q *PreCheckoutQuery) Currency() string      { return q.GetString("currency") }
func (q *PreCheckoutQuery) TotalAmount() int64    { return q.GetInt64("total_amount") }
func (q *PreCheckoutQuery) OrderInfo() *OrderInfo { return AsOrderInfo(q.GetObject("order_info")) }

// Unknown carries the result of a method this package does not model. A
// result that is not a JSON object is stored under the "result" field.
type Unknown struct{ *Object }

// NewUnknown wraps an arbitrary decoded result.
func NewUnknown(result any) *Unknown {
	if m, ok := result.(map[string]any); ok {
		return &Unknown{Hydrate(KindUnknown, m)}
	}
	return &Unknown{Hydrate(KindUnknown, map[string]any{"result": result})}
}

// Result returns the wrapped value for non-object results.
func (u *Unknown) Result() any {
	v, _ := u.Get("result")
	return v
}
