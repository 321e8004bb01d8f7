package telegram

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync/atomic"
	"testing"
	"time"

	"github.com/edouard/tgbind/internal/platform"
	"github.com/edouard/tgbind/telegram/objects"
	"github.com/edouard/tgbind/telegram/transport"
)

func fastPollRetries(t *testing.T) {
	t.Helper()
	origBackoff, origPause := pollBackoff, pollPause
	pollBackoff = platform.Backoff{MaxAttempts: 3, BaseDelay: time.Millisecond, Retryable: retryablePoll}
	pollPause = time.Millisecond
	t.Cleanup(func() { pollBackoff, pollPause = origBackoff, origPause })
}

func TestNewPoller(t *testing.T) {
	c := newTestClient(t, &stubTransport{})
	p := NewPoller(c)
	if p.Timeout != DefaultPollTimeout {
		t.Errorf("Timeout = %d, want %d", p.Timeout, DefaultPollTimeout)
	}
	if p.Offset() != 0 {
		t.Errorf("Offset = %d, want 0", p.Offset())
	}
}

func TestPoller_Poll(t *testing.T) {
	rounds := []string{
		`{"ok":true,"result":[
			{"update_id":100,"message":{"message_id":1,"date":1,"chat":{"id":111,"type":"private"},"text":"hello"}},
			{"update_id":101,"message":{"message_id":2,"date":1,"chat":{"id":999,"type":"private"},"text":"spam"}}
		]}`,
		`{"ok":true,"result":[]}`,
	}
	stub := &stubTransport{respond: func(req *transport.Request) (*transport.Result, error) {
		body := rounds[0]
		rounds = rounds[1:]
		return okResult(body), nil
	}}
	p := NewPoller(newTestClient(t, stub))
	p.Timeout = 10
	p.AllowedUpdates = []string{"message"}
	p.AllowedChats = map[int64]bool{111: true}

	updates, err := p.Poll(context.Background())
	if err != nil {
		t.Fatalf("Poll: %v", err)
	}
	if len(updates) != 1 || updates[0].UpdateID() != 100 {
		t.Fatalf("updates = %v, want only update 100", updates)
	}
	if p.Offset() != 102 {
		t.Errorf("Offset = %d, want 102 (dropped updates still advance it)", p.Offset())
	}

	req := stub.last()
	if req.Method != "getUpdates" {
		t.Errorf("method = %q, want getUpdates", req.Method)
	}
	if got := req.Form.Get("timeout"); got != "10" {
		t.Errorf("timeout = %q, want 10", got)
	}
	if req.Form.Has("offset") {
		t.Errorf("first round sent offset %q", req.Form.Get("offset"))
	}
	if got := req.Form.Get("allowed_updates"); got != `["message"]` {
		t.Errorf("allowed_updates = %q", got)
	}
	if req.Timeout != 15*time.Second {
		t.Errorf("HTTP timeout = %v, want 15s", req.Timeout)
	}

	if _, err := p.Poll(context.Background()); err != nil {
		t.Fatalf("second Poll: %v", err)
	}
	if got := stub.last().Form.Get("offset"); got != "102" {
		t.Errorf("second round offset = %q, want 102", got)
	}
}

func TestPoller_Poll_retriesTransientFailures(t *testing.T) {
	fastPollRetries(t)
	var calls atomic.Int32
	stub := &stubTransport{respond: func(*transport.Request) (*transport.Result, error) {
		switch calls.Add(1) {
		case 1:
			return nil, errors.New("connection reset by peer")
		case 2:
			return &transport.Result{StatusCode: http.StatusBadGateway, Header: http.Header{},
				Body: []byte(`{"ok":false,"error_code":502,"description":"Bad Gateway"}`)}, nil
		}
		return okResult(`{"ok":true,"result":[{"update_id":7}]}`), nil
	}}
	p := NewPoller(newTestClient(t, stub))

	updates, err := p.Poll(context.Background())
	if err != nil {
		t.Fatalf("Poll: %v", err)
	}
	if len(updates) != 1 {
		t.Errorf("updates = %d, want 1", len(updates))
	}
	if n := calls.Load(); n != 3 {
		t.Errorf("calls = %d, want 3", n)
	}
}

func TestPoller_Poll_permanentFailure(t *testing.T) {
	fastPollRetries(t)
	stub := &stubTransport{respond: func(*transport.Request) (*transport.Result, error) {
		return &transport.Result{StatusCode: http.StatusUnauthorized, Header: http.Header{},
			Body: []byte(`{"ok":false,"error_code":401,"description":"Unauthorized"}`)}, nil
	}}
	p := NewPoller(newTestClient(t, stub))

	_, err := p.Poll(context.Background())
	var re *ResponseError
	if !errors.As(err, &re) || re.Code != 401 {
		t.Fatalf("err = %v, want a 401 ResponseError", err)
	}
	if n := stub.count(); n != 1 {
		t.Errorf("calls = %d, want 1", n)
	}
}

func TestPoller_Run(t *testing.T) {
	fastPollRetries(t)
	var calls atomic.Int32
	stub := &stubTransport{respond: func(*transport.Request) (*transport.Result, error) {
		switch calls.Add(1) {
		case 1:
			return okResult(`{"ok":true,"result":[{"update_id":1,"message":{"message_id":1,"date":1,"chat":{"id":5,"type":"private"}}}]}`), nil
		case 2, 3, 4:
			return nil, errors.New("network down")
		case 5:
			return okResult(`{"ok":true,"result":[{"update_id":2,"message":{"message_id":2,"date":1,"chat":{"id":5,"type":"private"}}}]}`), nil
		}
		return okResult(`{"ok":true,"result":[]}`), nil
	}}
	p := NewPoller(newTestClient(t, stub))

	ctx, cancel := context.WithCancel(context.Background())
	out := make(chan *objects.Update)
	done := make(chan error, 1)
	go func() { done <- p.Run(ctx, out) }()

	for want := int64(1); want <= 2; want++ {
		select {
		case u := <-out:
			if u.UpdateID() != want {
				t.Errorf("update_id = %d, want %d", u.UpdateID(), want)
			}
		case <-time.After(2 * time.Second):
			t.Fatalf("timed out waiting for update %d", want)
		}
	}

	cancel()
	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Run = %v, want context.Canceled", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not stop after cancel")
	}
}

func TestRetryablePoll(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"transport", &TransportError{Method: "getUpdates", Err: errors.New("eof")}, true},
		{"flood", &ResponseError{Code: 429}, true},
		{"server", &ResponseError{Code: 500}, true},
		{"conflict", &ResponseError{Code: 409, Description: "Conflict: terminated by other getUpdates request"}, false},
		{"malformed", newMalformedError(nil, nil), true},
		{"wrapped malformed", fmt.Errorf("telegram: poll: %w", newMalformedError(nil, nil)), true},
		{"other", errors.New("boom"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := retryablePoll(tt.err); got != tt.want {
				t.Errorf("retryablePoll = %v, want %v", got, tt.want)
			}
		})
	}
}
