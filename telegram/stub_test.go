package telegram

import (
	"context"
	"io"
	"net/http"
	"sync"
	"testing"

	"github.com/edouard/tgbind/telegram/transport"
)

// stubTransport records every request and answers from respond, or with
// {"ok":true,"result":true} when respond is nil.
type stubTransport struct {
	mu      sync.Mutex
	sent    []*transport.Request
	bodies  map[string][]byte
	respond func(*transport.Request) (*transport.Result, error)
	// hold keeps async requests pending until release is called.
	hold bool
	held []heldResult
}

type heldResult struct {
	f   *transport.Future
	res *transport.Result
	err error
}

func (s *stubTransport) Send(_ context.Context, req *transport.Request) transport.Pending {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sent = append(s.sent, req)

	// Drain file parts like a real transport would.
	for _, p := range req.Parts {
		if r, ok := p.Contents.(io.Reader); ok {
			data, _ := io.ReadAll(r)
			if s.bodies == nil {
				s.bodies = map[string][]byte{}
			}
			s.bodies[p.Name] = data
		}
	}

	res, err := s.answer(req)
	if req.Async && s.hold {
		f := transport.NewFuture()
		s.held = append(s.held, heldResult{f: f, res: res, err: err})
		return f
	}
	req.Close()
	return transport.Resolved(res, err)
}

func (s *stubTransport) answer(req *transport.Request) (*transport.Result, error) {
	if s.respond != nil {
		return s.respond(req)
	}
	return okResult(`{"ok":true,"result":true}`), nil
}

// release settles every held request.
func (s *stubTransport) release() {
	s.mu.Lock()
	held := s.held
	s.held = nil
	s.mu.Unlock()
	for _, h := range held {
		h.f.Resolve(h.res, h.err)
	}
}

func (s *stubTransport) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sent)
}

func (s *stubTransport) last() *transport.Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.sent) == 0 {
		return nil
	}
	return s.sent[len(s.sent)-1]
}

func okResult(body string) *transport.Result {
	return &transport.Result{StatusCode: http.StatusOK, Body: []byte(body), Header: http.Header{}}
}

func newTestClient(t *testing.T, tr transport.Transport, opts ...Option) *Client {
	t.Helper()
	c, err := New("123:TEST", append([]Option{WithTransport(tr)}, opts...)...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return c
}

// countingPending counts how often the transport result is awaited.
type countingPending struct {
	*transport.Future
	mu    sync.Mutex
	waits int
}

func (p *countingPending) Wait() (*transport.Result, error) {
	p.mu.Lock()
	p.waits++
	p.mu.Unlock()
	return p.Future.Wait()
}
