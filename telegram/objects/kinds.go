package objects

// Declared kinds. Relations are wired in init because several kinds refer to
// themselves or to each other.
var (
	KindUnknown            = &Kind{Name: "Unknown"}
	KindUpdate             = &Kind{Name: "Update"}
	KindMessage            = &Kind{Name: "Message"}
	KindUser               = &Kind{Name: "User"}
	KindChat               = &Kind{Name: "Chat"}
	KindChatPhoto          = &Kind{Name: "ChatPhoto"}
	KindMessageEntity      = &Kind{Name: "MessageEntity"}
	KindPhotoSize          = &Kind{Name: "PhotoSize"}
	KindAudio              = &Kind{Name: "Audio"}
	KindDocument           = &Kind{Name: "Document"}
	KindAnimation          = &Kind{Name: "Animation"}
	KindVideo              = &Kind{Name: "Video"}
	KindVoice              = &Kind{Name: "Voice"}
	KindVideoNote          = &Kind{Name: "VideoNote"}
	KindContact            = &Kind{Name: "Contact"}
	KindLocation           = &Kind{Name: "Location"}
	KindVenue              = &Kind{Name: "Venue"}
	KindPoll               = &Kind{Name: "Poll"}
	KindPollOption         = &Kind{Name: "PollOption"}
	KindSticker            = &Kind{Name: "Sticker"}
	KindStickerSet         = &Kind{Name: "StickerSet"}
	KindMaskPosition       = &Kind{Name: "MaskPosition"}
	KindFile               = &Kind{Name: "File"}
	KindUserProfilePhotos  = &Kind{Name: "UserProfilePhotos"}
	KindChatMember         = &Kind{Name: "ChatMember"}
	KindWebhookInfo        = &Kind{Name: "WebhookInfo"}
	KindResponseParameters = &Kind{Name: "ResponseParameters"}
	KindCallbackQuery      = &Kind{Name: "CallbackQuery"}
	KindInlineQuery        = &Kind{Name: "InlineQuery"}
	KindChosenInlineResult = &Kind{Name: "ChosenInlineResult"}
	KindGame               = &Kind{Name: "Game"}
	KindGameHighScore      = &Kind{Name: "GameHighScore"}
	KindInvoice            = &Kind{Name: "Invoice"}
	KindSuccessfulPayment  = &Kind{Name: "SuccessfulPayment"}
	KindOrderInfo          = &Kind{Name: "OrderInfo"}
	KindShippingAddress    = &Kind{Name: "ShippingAddress"}
	KindShippingQuery      = &Kind{Name: "ShippingQuery"}
	KindPreCheckoutQuery   = &Kind{Name: "PreCheckoutQuery"}
	KindInputMedia         = &Kind{Name: "InputMedia"}
)

var registry = map[string]*Kind{}

func relate(k *Kind, rel map[string]*Kind) {
	k.relations = rel
	registry[k.Name] = k
}

func init() {
	relate(KindUnknown, nil)
	relate(KindUpdate, map[string]*Kind{
		"message":              KindMessage,
		"edited_message":       KindMessage,
		"channel_post":         KindMessage,
		"edited_channel_post":  KindMessage,
		"inline_query":         KindInlineQuery,
		"chosen_inline_result": KindChosenInlineResult,
		"callback_query":       KindCallbackQuery,
		"shipping_query":       KindShippingQuery,
		"pre_checkout_query":   KindPreCheckoutQuery,
		"poll":                 KindPoll,
	})
	relate(KindMessage, map[string]*Kind{
		"from":               KindUser,
		"chat":               KindChat,
		"forward_from":       KindUser,
		"forward_from_chat":  KindChat,
		"reply_to_message":   KindMessage,
		"entities":           KindMessageEntity,
		"caption_entities":   KindMessageEntity,
		"audio":              KindAudio,
		"document":           KindDocument,
		"animation":          KindAnimation,
		"game":               KindGame,
		"photo":              KindPhotoSize,
		"sticker":            KindSticker,
		"video":              KindVideo,
		"voice":              KindVoice,
		"video_note":         KindVideoNote,
		"contact":            KindContact,
		"location":           KindLocation,
		"venue":              KindVenue,
		"poll":               KindPoll,
		"new_chat_members":   KindUser,
		"new_chat_member":    KindUser,
		"left_chat_member":   KindUser,
		"new_chat_photo":     KindPhotoSize,
		"pinned_message":     KindMessage,
		"invoice":            KindInvoice,
		"successful_payment": KindSuccessfulPayment,
	})
	relate(KindUser, nil)
	relate(KindChat, map[string]*Kind{
		"photo":          KindChatPhoto,
		"pinned_message": KindMessage,
	})
	relate(KindChatPhoto, nil)
	relate(KindMessageEntity, map[string]*Kind{"user": KindUser})
	relate(KindPhotoSize, nil)
	relate(KindAudio, map[string]*Kind{"thumb": KindPhotoSize})
	relate(KindDocument, map[string]*Kind{"thumb": KindPhotoSize})
	relate(KindAnimation, map[string]*Kind{"thumb": KindPhotoSize})
	relate(KindVideo, map[string]*Kind{"thumb": KindPhotoSize})
	relate(KindVoice, nil)
	relate(KindVideoNote, map[string]*Kind{"thumb": KindPhotoSize})
	relate(KindContact, nil)
	relate(KindLocation, nil)
	relate(KindVenue, map[string]*Kind{"location": KindLocation})
	relate(KindPoll, map[string]*Kind{"options": KindPollOption})
	relate(KindPollOption, nil)
	relate(KindSticker, map[string]*Kind{
		"thumb":         KindPhotoSize,
		"mask_position": KindMaskPosition,
	})
	relate(KindStickerSet, map[string]*Kind{"stickers": KindSticker})
	relate(KindMaskPosition, nil)
	relate(KindFile, nil)
	relate(KindUserProfilePhotos, map[string]*Kind{"photos": KindPhotoSize})
	relate(KindChatMember, map[string]*Kind{"user": KindUser})
	relate(KindWebhookInfo, nil)
	relate(KindResponseParameters, nil)
	relate(KindCallbackQuery, map[string]*Kind{
		"from":    KindUser,
		"message": KindMessage,
	})
	relate(KindInlineQuery, map[string]*Kind{
		"from":     KindUser,
		"location": KindLocation,
	})
	relate(KindChosenInlineResult, map[string]*Kind{
		"from":     KindUser,
		"location": KindLocation,
	})
	relate(KindGame, map[string]*Kind{
		"photo":         KindPhotoSize,
		"text_entities": KindMessageEntity,
		"animation":     KindAnimation,
	})
	relate(KindGameHighScore, map[string]*Kind{"user": KindUser})
	relate(KindInvoice, nil)
	relate(KindSuccessfulPayment, map[string]*Kind{"order_info": KindOrderInfo})
	relate(KindOrderInfo, map[string]*Kind{"shipping_address": KindShippingAddress})
	relate(KindShippingAddress, nil)
	relate(KindShippingQuery, map[string]*Kind{
		"from":             KindUser,
		"shipping_address": KindShippingAddress,
	})
	relate(KindPreCheckoutQuery, map[string]*Kind{
		"from":       KindUser,
		"order_info": KindOrderInfo,
	})
	relate(KindInputMedia, nil)
}

// KindByName looks a declared kind up by name, e.g. "StickerSet".
func KindByName(name string) (*Kind, bool) {
	k, ok := registry[name]
	return k, ok
}
