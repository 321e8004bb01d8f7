package telegram

import (
	"errors"
	"strings"
)

// Best-effort classification of API errors by their description. The
// descriptions are English text chosen by the server, not a stable contract;
// matching is case-insensitive.

// IsUserBlocked reports whether the user blocked the bot or deleted their
// account.
func IsUserBlocked(err error) bool {
	return descriptionContains(err, "blocked", "user is deactivated")
}

// IsBotKicked reports whether the bot was removed from the chat.
func IsBotKicked(err error) bool {
	return descriptionContains(err, "bot was kicked")
}

// IsBotBlockedOrKicked reports whether the chat is no longer reachable by
// the bot.
func IsBotBlockedOrKicked(err error) bool {
	return IsUserBlocked(err) || IsBotKicked(err)
}

// IsChatNotFound reports whether the target chat does not exist.
func IsChatNotFound(err error) bool {
	return descriptionContains(err, "chat not found")
}

// IsInvalidFileID reports whether a file_id was rejected.
func IsInvalidFileID(err error) bool {
	return descriptionContains(err, "wrong file identifier")
}

// IsMessageNotModified reports an edit that left the message unchanged.
func IsMessageNotModified(err error) bool {
	return descriptionContains(err, "message is not modified")
}

// IsTooManyRequests reports a flood-control rejection. RetryAfter gives the
// wait.
func IsTooManyRequests(err error) bool {
	var re *ResponseError
	if errors.As(err, &re) && re.Code == 429 {
		return true
	}
	return descriptionContains(err, "too many requests")
}

// RetryAfter returns the retry hint in seconds carried by err, or 0.
func RetryAfter(err error) int {
	var re *ResponseError
	if errors.As(err, &re) {
		return re.RetryAfter()
	}
	return 0
}

// MigrateToChatID returns the supergroup a group moved to, or 0.
func MigrateToChatID(err error) int64 {
	var re *ResponseError
	if errors.As(err, &re) {
		return re.MigrateToChatID()
	}
	return 0
}

func descriptionContains(err error, needles ...string) bool {
	var re *ResponseError
	if !errors.As(err, &re) {
		return false
	}
	desc := strings.ToLower(re.Description)
	for _, n := range needles {
		if strings.Contains(desc, n) {
			return true
		}
	}
	return false
}
