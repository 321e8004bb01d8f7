package telegram

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/edouard/tgbind/internal/platform"
	"github.com/edouard/tgbind/telegram/objects"
)

// DefaultPollTimeout is the long polling timeout, in seconds, sent with
// getUpdates when the poller has none.
const DefaultPollTimeout = 30

// Replaceable for testing.
var (
	pollBackoff = platform.Backoff{
		MaxAttempts: 3,
		BaseDelay:   2 * time.Second,
		MaxDelay:    30 * time.Second,
		Retryable:   retryablePoll,
	}
	// pollPause is how long Run waits after a failed round before polling again.
	pollPause = 5 * time.Second
)

// Poller receives updates with getUpdates long polling and tracks the offset
// so every update is delivered once.
type Poller struct {
	client *Client

	// Timeout is the long polling timeout in seconds.
	Timeout int
	// AllowedUpdates restricts the update types Telegram sends. Empty means
	// the server default.
	AllowedUpdates []string
	// AllowedChats drops updates from any other chat when non-empty. Updates
	// without a chat are dropped too.
	AllowedChats map[int64]bool

	offset int64
}

// NewPoller creates a poller reading updates through c.
func NewPoller(c *Client) *Poller {
	return &Poller{client: c, Timeout: DefaultPollTimeout}
}

// Offset is the id of the next update the poller will ask for.
func (p *Poller) Offset() int64 { return p.offset }

// SetOffset moves the offset, e.g. to resume from a saved position.
func (p *Poller) SetOffset(offset int64) { p.offset = offset }

// Poll performs a single getUpdates round, retrying transient failures, and
// returns the updates that pass the chat filter.
func (p *Poller) Poll(ctx context.Context) ([]*objects.Update, error) {
	params := Params{"timeout": p.Timeout}
	if p.offset > 0 {
		params["offset"] = p.offset
	}
	if len(p.AllowedUpdates) > 0 {
		params["allowed_updates"] = p.AllowedUpdates
	}

	// The HTTP timeout has to outlast the long poll.
	timeout := time.Duration(p.Timeout)*time.Second + 5*time.Second

	var updates []*objects.Update
	err := pollBackoff.Do(ctx, func(int) error {
		var err error
		updates, err = p.client.GetUpdates(ctx, params, CallTimeout(timeout), CallAsync(false))
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("telegram: poll: %w", err)
	}

	kept := updates[:0]
	for _, u := range updates {
		if id := u.UpdateID(); id >= p.offset {
			p.offset = id + 1
		}
		if !p.allowed(u) {
			slog.Warn("dropped update from a chat outside the allow list",
				"component", "telegram",
				"operation", "poll",
				"update_id", u.UpdateID(),
				"chat_id", chatID(u),
			)
			continue
		}
		kept = append(kept, u)
	}
	return kept, nil
}

// Run polls until ctx is done, sending every update on out. A failed round
// is logged and retried after a pause; Run only returns ctx's error.
func (p *Poller) Run(ctx context.Context, out chan<- *objects.Update) error {
	slog.Info("poller started", "component", "telegram", "operation", "poll_start")
	defer slog.Info("poller stopped", "component", "telegram", "operation", "poll_stop")

	for {
		updates, err := p.Poll(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			slog.Error("poll failed after retries", "component", "telegram", "operation", "poll", "error", err)
			select {
			case <-time.After(pollPause):
			case <-ctx.Done():
				return ctx.Err()
			}
			continue
		}

		for _, u := range updates {
			select {
			case out <- u:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}
}

func (p *Poller) allowed(u *objects.Update) bool {
	if len(p.AllowedChats) == 0 {
		return true
	}
	return p.AllowedChats[chatID(u)]
}

func chatID(u *objects.Update) int64 {
	if chat := u.Chat(); chat != nil {
		return chat.ID()
	}
	return 0
}

// retryablePoll reports whether a failed getUpdates round is worth repeating:
// network failures, malformed bodies (a proxy error page), 429 and 5xx.
func retryablePoll(err error) bool {
	var te *TransportError
	if errors.As(err, &te) {
		return true
	}
	if errors.Is(err, ErrMalformedResponse) {
		return true
	}
	var re *ResponseError
	if errors.As(err, &re) {
		return re.Code == 429 || re.Code >= 500
	}
	return false
}
