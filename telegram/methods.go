package telegram

import (
	"context"

	"github.com/edouard/tgbind/telegram/objects"
	"github.com/edouard/tgbind/telegram/transport"
)

var (
	decodeMessage  = DecodeObject(objects.KindMessage, objects.AsMessage)
	decodeMessages = DecodeList(objects.KindMessage, objects.AsMessage)
	decodeFile     = DecodeObject(objects.KindFile, objects.AsFile)
)

func sendsMessage(method string, fileFields ...string) Endpoint[*objects.Message] {
	return Endpoint[*objects.Message]{Method: method, FileFields: fileFields, decode: decodeMessage}
}

func returnsBool(method string, fileFields ...string) Endpoint[bool] {
	return Endpoint[bool]{Method: method, FileFields: fileFields, decode: DecodeBool}
}

func editsMessage(method string) Endpoint[*objects.Message] {
	return Endpoint[*objects.Message]{Method: method, decode: decodeEdited}
}

// Messages.
var (
	MethodGetMe = Endpoint[*objects.User]{Method: "getMe", decode: DecodeObject(objects.KindUser, objects.AsUser)}

	MethodSendMessage    = sendsMessage("sendMessage")
	MethodForwardMessage = sendsMessage("forwardMessage")
	MethodSendPhoto      = sendsMessage("sendPhoto", "photo")
	MethodSendAudio      = sendsMessage("sendAudio", "audio", "thumb")
	MethodSendDocument   = sendsMessage("sendDocument", "document", "thumb")
	MethodSendVideo      = sendsMessage("sendVideo", "video", "thumb")
	MethodSendAnimation  = sendsMessage("sendAnimation", "animation", "thumb")
	MethodSendVoice      = sendsMessage("sendVoice", "voice")
	MethodSendVideoNote  = sendsMessage("sendVideoNote", "video_note", "thumb")
	MethodSendLocation   = sendsMessage("sendLocation")
	MethodSendVenue      = sendsMessage("sendVenue")
	MethodSendContact    = sendsMessage("sendContact")
	MethodSendPoll       = sendsMessage("sendPoll")
	MethodSendSticker    = sendsMessage("sendSticker", "sticker")
	MethodSendGame       = sendsMessage("sendGame")
	MethodSendInvoice    = sendsMessage("sendInvoice")

	MethodSendMediaGroup = Endpoint[[]*objects.Message]{
		Method:  "sendMediaGroup",
		prepare: prepareMediaGroup,
		decode:  decodeMessages,
	}

	MethodEditMessageLiveLocation = editsMessage("editMessageLiveLocation")
	MethodStopMessageLiveLocation = editsMessage("stopMessageLiveLocation")
	MethodEditMessageText         = editsMessage("editMessageText")
	MethodEditMessageCaption      = editsMessage("editMessageCaption")
	MethodEditMessageReplyMarkup  = editsMessage("editMessageReplyMarkup")
	MethodSetGameScore            = editsMessage("setGameScore")

	MethodStopPoll = Endpoint[*objects.Poll]{Method: "stopPoll", decode: DecodeObject(objects.KindPoll, objects.AsPoll)}

	MethodSendChatAction = Endpoint[bool]{Method: "sendChatAction", validate: validateChatAction, decode: DecodeBool}
	MethodDeleteMessage  = returnsBool("deleteMessage")
)

// Users, files and chats.
var (
	MethodGetUserProfilePhotos = Endpoint[*objects.UserProfilePhotos]{
		Method: "getUserProfilePhotos",
		decode: DecodeObject(objects.KindUserProfilePhotos, objects.AsUserProfilePhotos),
	}
	MethodGetFile = Endpoint[*objects.File]{Method: "getFile", decode: decodeFile}

	MethodKickChatMember       = returnsBool("kickChatMember")
	MethodUnbanChatMember      = returnsBool("unbanChatMember")
	MethodRestrictChatMember   = returnsBool("restrictChatMember")
	MethodPromoteChatMember    = returnsBool("promoteChatMember")
	MethodLeaveChat            = returnsBool("leaveChat")
	MethodSetChatPhoto         = returnsBool("setChatPhoto", "photo")
	MethodDeleteChatPhoto      = returnsBool("deleteChatPhoto")
	MethodSetChatTitle         = returnsBool("setChatTitle")
	MethodSetChatDescription   = returnsBool("setChatDescription")
	MethodPinChatMessage       = returnsBool("pinChatMessage")
	MethodUnpinChatMessage     = returnsBool("unpinChatMessage")
	MethodSetChatStickerSet    = returnsBool("setChatStickerSet")
	MethodDeleteChatStickerSet = returnsBool("deleteChatStickerSet")

	MethodExportChatInviteLink = Endpoint[string]{Method: "exportChatInviteLink", decode: DecodeString}
	MethodGetChat              = Endpoint[*objects.Chat]{Method: "getChat", decode: DecodeObject(objects.KindChat, objects.AsChat)}

	MethodGetChatAdministrators = Endpoint[[]*objects.ChatMember]{
		Method: "getChatAdministrators",
		decode: DecodeList(objects.KindChatMember, objects.AsChatMember),
	}

	MethodGetChatMembersCount = Endpoint[int64]{Method: "getChatMembersCount", decode: DecodeInt}
	MethodGetChatMember       = Endpoint[*objects.ChatMember]{
		Method: "getChatMember",
		decode: DecodeObject(objects.KindChatMember, objects.AsChatMember),
	}
)

// Queries, stickers, games, payments.
var (
	MethodAnswerCallbackQuery    = returnsBool("answerCallbackQuery")
	MethodAnswerInlineQuery      = returnsBool("answerInlineQuery")
	MethodAnswerShippingQuery    = returnsBool("answerShippingQuery")
	MethodAnswerPreCheckoutQuery = returnsBool("answerPreCheckoutQuery")

	MethodGetStickerSet = Endpoint[*objects.StickerSet]{
		Method: "getStickerSet",
		decode: DecodeObject(objects.KindStickerSet, objects.AsStickerSet),
	}
	MethodUploadStickerFile       = Endpoint[*objects.File]{Method: "uploadStickerFile", FileFields: []string{"png_sticker"}, decode: decodeFile}
	MethodCreateNewStickerSet     = returnsBool("createNewStickerSet", "png_sticker")
	MethodAddStickerToSet         = returnsBool("addStickerToSet", "png_sticker")
	MethodSetStickerPositionInSet = returnsBool("setStickerPositionInSet")
	MethodDeleteStickerFromSet    = returnsBool("deleteStickerFromSet")

	MethodGetGameHighScores = Endpoint[[]*objects.GameHighScore]{
		Method: "getGameHighScores",
		decode: DecodeList(objects.KindGameHighScore, objects.AsGameHighScore),
	}
)

// Updates and webhooks.
var (
	MethodSetWebhook = Endpoint[bool]{
		Method:     "setWebhook",
		FileFields: []string{"certificate"},
		validate:   validateWebhook,
		decode:     DecodeBool,
	}
	MethodDeleteWebhook  = returnsBool("deleteWebhook")
	MethodGetWebhookInfo = Endpoint[*objects.WebhookInfo]{
		Method: "getWebhookInfo",
		decode: DecodeObject(objects.KindWebhookInfo, objects.AsWebhookInfo),
	}
	MethodGetUpdates = Endpoint[[]*objects.Update]{
		Method: "getUpdates",
		decode: DecodeList(objects.KindUpdate, objects.AsUpdate),
	}
)

func prepareMediaGroup(ctx context.Context, c *Client, p Params) (Params, []transport.Part, error) {
	media, ok := p["media"]
	if !ok {
		return p, nil, nil
	}
	encoded, parts, err := c.extractAttachments(ctx, "sendMediaGroup", media)
	if err != nil {
		if _, isFile := err.(*FileError); isFile {
			return nil, nil, err
		}
		return nil, nil, invalidParam("sendMediaGroup", "media", err.Error())
	}
	p["media"] = encoded
	return p, parts, nil
}

// GetMe returns the bot's own user.
func (c *Client) GetMe(ctx context.Context, opts ...CallOption) (*objects.User, error) {
	return Invoke(ctx, c, MethodGetMe, nil, opts...)
}

// SendMessage sends a text message.
func (c *Client) SendMessage(ctx context.Context, p Params, opts ...CallOption) (*objects.Message, error) {
	return Invoke(ctx, c, MethodSendMessage, p, opts...)
}

// ForwardMessage forwards a message from one chat to another.
func (c *Client) ForwardMessage(ctx context.Context, p Params, opts ...CallOption) (*objects.Message, error) {
	return Invoke(ctx, c, MethodForwardMessage, p, opts...)
}

// SendPhoto sends a photo. The photo parameter may be a file_id, a URL, a
// local path, an io.Reader or an inputfile.File.
func (c *Client) SendPhoto(ctx context.Context, p Params, opts ...CallOption) (*objects.Message, error) {
	return Invoke(ctx, c, MethodSendPhoto, p, opts...)
}

// SendAudio sends an audio file to be shown in the music player.
func (c *Client) SendAudio(ctx context.Context, p Params, opts ...CallOption) (*objects.Message, error) {
	return Invoke(ctx, c, MethodSendAudio, p, opts...)
}

// SendDocument sends a general file.
func (c *Client) SendDocument(ctx context.Context, p Params, opts ...CallOption) (*objects.Message, error) {
	return Invoke(ctx, c, MethodSendDocument, p, opts...)
}

// SendVideo sends a video.
func (c *Client) SendVideo(ctx context.Context, p Params, opts ...CallOption) (*objects.Message, error) {
	return Invoke(ctx, c, MethodSendVideo, p, opts...)
}

// SendAnimation sends a GIF or a silent video.
func (c *Client) SendAnimation(ctx context.Context, p Params, opts ...CallOption) (*objects.Message, error) {
	return Invoke(ctx, c, MethodSendAnimation, p, opts...)
}

// SendVoice sends a voice note.
func (c *Client) SendVoice(ctx context.Context, p Params, opts ...CallOption) (*objects.Message, error) {
	return Invoke(ctx, c, MethodSendVoice, p, opts...)
}

// SendVideoNote sends a round video message.
func (c *Client) SendVideoNote(ctx context.Context, p Params, opts ...CallOption) (*objects.Message, error) {
	return Invoke(ctx, c, MethodSendVideoNote, p, opts...)
}

// SendMediaGroup sends an album. The media parameter is a list of
// *objects.InputMedia or maps; descriptors whose media is a stream or a
// local file are uploaded as attachments.
func (c *Client) SendMediaGroup(ctx context.Context, p Params, opts ...CallOption) ([]*objects.Message, error) {
	return Invoke(ctx, c, MethodSendMediaGroup, p, opts...)
}

// SendLocation sends a point on the map.
func (c *Client) SendLocation(ctx context.Context, p Params, opts ...CallOption) (*objects.Message, error) {
	return Invoke(ctx, c, MethodSendLocation, p, opts...)
}

// EditMessageLiveLocation returns a nil message when an inline message was
// edited.
func (c *Client) EditMessageLiveLocation(ctx context.Context, p Params, opts ...CallOption) (*objects.Message, error) {
	return Invoke(ctx, c, MethodEditMessageLiveLocation, p, opts...)
}

// StopMessageLiveLocation stops updating a live location.
// It returns a nil message for an inline message.
func (c *Client) StopMessageLiveLocation(ctx context.Context, p Params, opts ...CallOption) (*objects.Message, error) {
	return Invoke(ctx, c, MethodStopMessageLiveLocation, p, opts...)
}

// SendVenue sends information about a venue.
func (c *Client) SendVenue(ctx context.Context, p Params, opts ...CallOption) (*objects.Message, error) {
	return Invoke(ctx, c, MethodSendVenue, p, opts...)
}

// SendContact sends a phone contact.
func (c *Client) SendContact(ctx context.Context, p Params, opts ...CallOption) (*objects.Message, error) {
	return Invoke(ctx, c, MethodSendContact, p, opts...)
}

// SendPoll sends a native poll.
func (c *Client) SendPoll(ctx context.Context, p Params, opts ...CallOption) (*objects.Message, error) {
	return Invoke(ctx, c, MethodSendPoll, p, opts...)
}

// StopPoll closes a poll sent by the bot and returns its final state.
func (c *Client) StopPoll(ctx context.Context, p Params, opts ...CallOption) (*objects.Poll, error) {
	return Invoke(ctx, c, MethodStopPoll, p, opts...)
}

// SendChatAction rejects actions outside ChatActions without sending.
func (c *Client) SendChatAction(ctx context.Context, p Params, opts ...CallOption) (bool, error) {
	return Invoke(ctx, c, MethodSendChatAction, p, opts...)
}

// GetUserProfilePhotos lists a user's profile pictures.
func (c *Client) GetUserProfilePhotos(ctx context.Context, p Params, opts ...CallOption) (*objects.UserProfilePhotos, error) {
	return Invoke(ctx, c, MethodGetUserProfilePhotos, p, opts...)
}

// GetFile prepares a file for download. See objects.File.URL.
func (c *Client) GetFile(ctx context.Context, p Params, opts ...CallOption) (*objects.File, error) {
	return Invoke(ctx, c, MethodGetFile, p, opts...)
}

// KickChatMember bans a user from a group, supergroup or channel.
func (c *Client) KickChatMember(ctx context.Context, p Params, opts ...CallOption) (bool, error) {
	return Invoke(ctx, c, MethodKickChatMember, p, opts...)
}

// UnbanChatMember lifts a ban.
func (c *Client) UnbanChatMember(ctx context.Context, p Params, opts ...CallOption) (bool, error) {
	return Invoke(ctx, c, MethodUnbanChatMember, p, opts...)
}

// RestrictChatMember changes what a supergroup member may do.
func (c *Client) RestrictChatMember(ctx context.Context, p Params, opts ...CallOption) (bool, error) {
	return Invoke(ctx, c, MethodRestrictChatMember, p, opts...)
}

// PromoteChatMember grants or revokes administrator rights.
func (c *Client) PromoteChatMember(ctx context.Context, p Params, opts ...CallOption) (bool, error) {
	return Invoke(ctx, c, MethodPromoteChatMember, p, opts...)
}

// LeaveChat makes the bot leave a chat.
func (c *Client) LeaveChat(ctx context.Context, p Params, opts ...CallOption) (bool, error) {
	return Invoke(ctx, c, MethodLeaveChat, p, opts...)
}

// ExportChatInviteLink generates a new invite link and returns it.
func (c *Client) ExportChatInviteLink(ctx context.Context, p Params, opts ...CallOption) (string, error) {
	return Invoke(ctx, c, MethodExportChatInviteLink, p, opts...)
}

// SetChatPhoto uploads a new chat photo.
func (c *Client) SetChatPhoto(ctx context.Context, p Params, opts ...CallOption) (bool, error) {
	return Invoke(ctx, c, MethodSetChatPhoto, p, opts...)
}

// DeleteChatPhoto removes the chat photo.
func (c *Client) DeleteChatPhoto(ctx context.Context, p Params, opts ...CallOption) (bool, error) {
	return Invoke(ctx, c, MethodDeleteChatPhoto, p, opts...)
}

// SetChatTitle renames a chat.
func (c *Client) SetChatTitle(ctx context.Context, p Params, opts ...CallOption) (bool, error) {
	return Invoke(ctx, c, MethodSetChatTitle, p, opts...)
}

// SetChatDescription changes the chat description.
func (c *Client) SetChatDescription(ctx context.Context, p Params, opts ...CallOption) (bool, error) {
	return Invoke(ctx, c, MethodSetChatDescription, p, opts...)
}

// PinChatMessage pins a message.
func (c *Client) PinChatMessage(ctx context.Context, p Params, opts ...CallOption) (bool, error) {
	return Invoke(ctx, c, MethodPinChatMessage, p, opts...)
}

// UnpinChatMessage unpins the pinned message.
func (c *Client) UnpinChatMessage(ctx context.Context, p Params, opts ...CallOption) (bool, error) {
	return Invoke(ctx, c, MethodUnpinChatMessage, p, opts...)
}

// GetChat returns up to date information about a chat.
func (c *Client) GetChat(ctx context.Context, p Params, opts ...CallOption) (*objects.Chat, error) {
	return Invoke(ctx, c, MethodGetChat, p, opts...)
}

// GetChatAdministrators lists the administrators of a chat, bots excluded.
func (c *Client) GetChatAdministrators(ctx context.Context, p Params, opts ...CallOption) ([]*objects.ChatMember, error) {
	return Invoke(ctx, c, MethodGetChatAdministrators, p, opts...)
}

// GetChatMembersCount returns the number of members in a chat.
func (c *Client) GetChatMembersCount(ctx context.Context, p Params, opts ...CallOption) (int64, error) {
	return Invoke(ctx, c, MethodGetChatMembersCount, p, opts...)
}

// GetChatMember returns one member of a chat.
func (c *Client) GetChatMember(ctx context.Context, p Params, opts ...CallOption) (*objects.ChatMember, error) {
	return Invoke(ctx, c, MethodGetChatMember, p, opts...)
}

// SetChatStickerSet sets the group sticker set of a supergroup.
func (c *Client) SetChatStickerSet(ctx context.Context, p Params, opts ...CallOption) (bool, error) {
	return Invoke(ctx, c, MethodSetChatStickerSet, p, opts...)
}

// DeleteChatStickerSet removes the group sticker set of a supergroup.
func (c *Client) DeleteChatStickerSet(ctx context.Context, p Params, opts ...CallOption) (bool, error) {
	return Invoke(ctx, c, MethodDeleteChatStickerSet, p, opts...)
}

// AnswerCallbackQuery answers a callback query from an inline keyboard.
func (c *Client) AnswerCallbackQuery(ctx context.Context, p Params, opts ...CallOption) (bool, error) {
	return Invoke(ctx, c, MethodAnswerCallbackQuery, p, opts...)
}

// EditMessageText edits the text of a message.
// It returns a nil message for an inline message.
func (c *Client) EditMessageText(ctx context.Context, p Params, opts ...CallOption) (*objects.Message, error) {
	return Invoke(ctx, c, MethodEditMessageText, p, opts...)
}

// EditMessageCaption edits the caption of a message.
// It returns a nil message for an inline message.
func (c *Client) EditMessageCaption(ctx context.Context, p Params, opts ...CallOption) (*objects.Message, error) {
	return Invoke(ctx, c, MethodEditMessageCaption, p, opts...)
}

// EditMessageReplyMarkup edits the inline keyboard of a message.
// It returns a nil message for an inline message.
func (c *Client) EditMessageReplyMarkup(ctx context.Context, p Params, opts ...CallOption) (*objects.Message, error) {
	return Invoke(ctx, c, MethodEditMessageReplyMarkup, p, opts...)
}

// DeleteMessage deletes a message.
func (c *Client) DeleteMessage(ctx context.Context, p Params, opts ...CallOption) (bool, error) {
	return Invoke(ctx, c, MethodDeleteMessage, p, opts...)
}

// AnswerInlineQuery sends results; a results slice is JSON-encoded.
func (c *Client) AnswerInlineQuery(ctx context.Context, p Params, opts ...CallOption) (bool, error) {
	return Invoke(ctx, c, MethodAnswerInlineQuery, p, opts...)
}

// SendSticker sends a .webp sticker.
func (c *Client) SendSticker(ctx context.Context, p Params, opts ...CallOption) (*objects.Message, error) {
	return Invoke(ctx, c, MethodSendSticker, p, opts...)
}

// GetStickerSet returns a sticker set by name.
func (c *Client) GetStickerSet(ctx context.Context, p Params, opts ...CallOption) (*objects.StickerSet, error) {
	return Invoke(ctx, c, MethodGetStickerSet, p, opts...)
}

// UploadStickerFile uploads a .png file for later use in sticker sets.
func (c *Client) UploadStickerFile(ctx context.Context, p Params, opts ...CallOption) (*objects.File, error) {
	return Invoke(ctx, c, MethodUploadStickerFile, p, opts...)
}

// CreateNewStickerSet creates a sticker set owned by a user.
func (c *Client) CreateNewStickerSet(ctx context.Context, p Params, opts ...CallOption) (bool, error) {
	return Invoke(ctx, c, MethodCreateNewStickerSet, p, opts...)
}

// AddStickerToSet adds a sticker to a set created by the bot.
func (c *Client) AddStickerToSet(ctx context.Context, p Params, opts ...CallOption) (bool, error) {
	return Invoke(ctx, c, MethodAddStickerToSet, p, opts...)
}

// SetStickerPositionInSet moves a sticker within its set.
func (c *Client) SetStickerPositionInSet(ctx context.Context, p Params, opts ...CallOption) (bool, error) {
	return Invoke(ctx, c, MethodSetStickerPositionInSet, p, opts...)
}

// DeleteStickerFromSet removes a sticker from a set created by the bot.
func (c *Client) DeleteStickerFromSet(ctx context.Context, p Params, opts ...CallOption) (bool, error) {
	return Invoke(ctx, c, MethodDeleteStickerFromSet, p, opts...)
}

// SendGame sends a game.
func (c *Client) SendGame(ctx context.Context, p Params, opts ...CallOption) (*objects.Message, error) {
	return Invoke(ctx, c, MethodSendGame, p, opts...)
}

// SetGameScore returns a nil message when an inline message was edited.
func (c *Client) SetGameScore(ctx context.Context, p Params, opts ...CallOption) (*objects.Message, error) {
	return Invoke(ctx, c, MethodSetGameScore, p, opts...)
}

// GetGameHighScores returns the high score table around a user.
func (c *Client) GetGameHighScores(ctx context.Context, p Params, opts ...CallOption) ([]*objects.GameHighScore, error) {
	return Invoke(ctx, c, MethodGetGameHighScores, p, opts...)
}

// SendInvoice sends an invoice.
func (c *Client) SendInvoice(ctx context.Context, p Params, opts ...CallOption) (*objects.Message, error) {
	return Invoke(ctx, c, MethodSendInvoice, p, opts...)
}

// AnswerShippingQuery replies to a shipping query.
func (c *Client) AnswerShippingQuery(ctx context.Context, p Params, opts ...CallOption) (bool, error) {
	return Invoke(ctx, c, MethodAnswerShippingQuery, p, opts...)
}

// AnswerPreCheckoutQuery confirms or rejects a checkout.
func (c *Client) AnswerPreCheckoutQuery(ctx context.Context, p Params, opts ...CallOption) (bool, error) {
	return Invoke(ctx, c, MethodAnswerPreCheckoutQuery, p, opts...)
}

// SetWebhook requires an HTTPS url; anything else fails without a request.
func (c *Client) SetWebhook(ctx context.Context, p Params, opts ...CallOption) (bool, error) {
	return Invoke(ctx, c, MethodSetWebhook, p, opts...)
}

// DeleteWebhook removes the webhook so getUpdates can be used again.
func (c *Client) DeleteWebhook(ctx context.Context, opts ...CallOption) (bool, error) {
	return Invoke(ctx, c, MethodDeleteWebhook, nil, opts...)
}

// GetWebhookInfo returns the current webhook status.
func (c *Client) GetWebhookInfo(ctx context.Context, opts ...CallOption) (*objects.WebhookInfo, error) {
	return Invoke(ctx, c, MethodGetWebhookInfo, nil, opts...)
}

// GetUpdates fetches incoming updates with long polling.
// See Poller for a loop that tracks the offset.
func (c *Client) GetUpdates(ctx context.Context, p Params, opts ...CallOption) ([]*objects.Update, error) {
	return Invoke(ctx, c, MethodGetUpdates, p, opts...)
}
