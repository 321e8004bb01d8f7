package telegram

import (
	"errors"
	"fmt"
	"testing"
)

func apiError(code int, desc string) error {
	return &ResponseError{Code: code, Description: desc}
}

func TestCauseHelpers(t *testing.T) {
	tests := []struct {
		name  string
		err   error
		check func(error) bool
		want  bool
	}{
		{"blocked", apiError(403, "Forbidden: bot was blocked by the user"), IsUserBlocked, true},
		{"deactivated", apiError(403, "Forbidden: user is deactivated"), IsUserBlocked, true},
		{"kicked", apiError(403, "Forbidden: bot was kicked from the supergroup chat"), IsBotKicked, true},
		{"kicked counts as unreachable", apiError(403, "Forbidden: bot was kicked from the group chat"), IsBotBlockedOrKicked, true},
		{"chat not found", apiError(400, "Bad Request: chat not found"), IsChatNotFound, true},
		{"case insensitive", apiError(400, "Bad Request: CHAT NOT FOUND"), IsChatNotFound, true},
		{"wrong file id", apiError(400, "Bad Request: wrong file identifier/HTTP URL specified"), IsInvalidFileID, true},
		{"not modified", apiError(400, "Bad Request: message is not modified"), IsMessageNotModified, true},
		{"flood by code", apiError(429, "Too Many Requests: retry after 5"), IsTooManyRequests, true},
		{"flood by text", apiError(400, "Too Many Requests. Retry after 1000"), IsTooManyRequests, true},
		{"wrapped", fmt.Errorf("broadcast: %w", apiError(403, "Forbidden: bot was blocked by the user")), IsUserBlocked, true},
		{"other error", apiError(400, "Bad Request: message text is empty"), IsChatNotFound, false},
		{"not an api error", errors.New("chat not found"), IsChatNotFound, false},
		{"nil", nil, IsUserBlocked, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.check(tt.err); got != tt.want {
				t.Errorf("got %v, want %v for %v", got, tt.want, tt.err)
			}
		})
	}
}

func TestRetryAfter_notAPIError(t *testing.T) {
	if got := RetryAfter(errors.New("x")); got != 0 {
		t.Errorf("RetryAfter = %d, want 0", got)
	}
	if got := MigrateToChatID(nil); got != 0 {
		t.Errorf("MigrateToChatID = %d, want 0", got)
	}
}
