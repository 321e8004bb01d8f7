package platform

import (
	"context"
	"errors"
	"log/slog"
	"time"
)

// retryHinter is implemented by errors that carry a server-side wait, such
// as flood-control rejections.
type retryHinter interface {
	RetryAfter() int
}

// Backoff describes how a failing operation is repeated.
type Backoff struct {
	MaxAttempts int
	BaseDelay   time.Duration
	// MaxDelay caps the exponential delay. A server hint may exceed it.
	MaxDelay time.Duration
	// Retryable decides whether an error is worth another attempt. Nil
	// retries every error.
	Retryable func(error) bool
}

// sleep is a package-level variable for testability.
var sleep = func(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Do calls fn until it succeeds, the error is not retryable, or attempts run
// out. Between attempts it waits BaseDelay * 2^attempt, or the error's own
// RetryAfter hint (in seconds) when that is longer. fn is never called when
// MaxAttempts <= 0.
func (b Backoff) Do(ctx context.Context, fn func(attempt int) error) error {
	var lastErr error
	for attempt := range b.MaxAttempts {
		lastErr = fn(attempt)
		if lastErr == nil {
			return nil
		}
		if b.Retryable != nil && !b.Retryable(lastErr) {
			return lastErr
		}
		if attempt == b.MaxAttempts-1 {
			break
		}

		delay := b.delay(attempt, lastErr)
		slog.Warn("retrying after failure",
			"component", "platform",
			"operation", "retry",
			"attempt", attempt+1,
			"max_attempts", b.MaxAttempts,
			"delay", delay,
			"error", lastErr,
		)
		if err := sleep(ctx, delay); err != nil {
			return err
		}
	}
	return lastErr
}

func (b Backoff) delay(attempt int, err error) time.Duration {
	d := b.BaseDelay * (1 << attempt)
	if b.MaxDelay > 0 && d > b.MaxDelay {
		d = b.MaxDelay
	}
	var hinted retryHinter
	if errors.As(err, &hinted) {
		if hint := time.Duration(hinted.RetryAfter()) * time.Second; hint > d {
			d = hint
		}
	}
	return d
}
