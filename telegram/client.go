// Package telegram is a client for the Telegram Bot API.
//
// Calls are described by Endpoint values and submitted through a Client,
// either synchronously (Invoke, and the Client convenience methods) or
// asynchronously (Submit with the client or the call in async mode). Results
// are hydrated into the typed views of package objects.
package telegram

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/edouard/tgbind/telegram/inputfile"
	"github.com/edouard/tgbind/telegram/transport"
)

const (
	// DefaultBaseURL is the public Bot API server.
	DefaultBaseURL = "https://api.telegram.org"

	DefaultTimeout        = 60 * time.Second
	DefaultConnectTimeout = 10 * time.Second
)

// Client sends Bot API calls. Settings are meant to be changed by a single
// owner; submitting, draining and hook registration are safe for concurrent
// use.
type Client struct {
	token          string
	baseURL        string
	transport      transport.Transport
	resolver       inputfile.Resolver
	async          bool
	timeout        time.Duration
	connectTimeout time.Duration

	mu          sync.Mutex
	pending     map[*Response]struct{}
	onSending   func(*Request)
	onFulfilled func(*Response, time.Duration)
	onRejected  func(*Response, time.Duration)
}

// New creates a client. When token is empty it is looked up in the
// environment (TELEGRAM_BOT_TOKEN unless WithTokenEnv says otherwise), then
// in the WithDotEnv files, then in the WithTokenSource source.
func New(token string, opts ...Option) (*Client, error) {
	o := &options{
		baseURL:        DefaultBaseURL,
		timeout:        DefaultTimeout,
		connectTimeout: DefaultConnectTimeout,
		tokenEnv:       DefaultTokenEnv,
	}
	for _, opt := range opts {
		opt(o)
	}

	if token == "" {
		var err error
		token, err = resolveToken(context.Background(), o)
		if err != nil {
			return nil, err
		}
	}
	if token == "" {
		return nil, fmt.Errorf("telegram: new client: %w (set %s)", ErrNoToken, o.tokenEnv)
	}

	tr := o.transport
	if tr == nil {
		tr = transport.NewHTTP()
	}

	return &Client{
		token:          token,
		baseURL:        strings.TrimRight(o.baseURL, "/"),
		transport:      tr,
		resolver:       inputfile.Resolver{Root: o.uploadRoot},
		async:          o.async,
		timeout:        o.timeout,
		connectTimeout: o.connectTimeout,
		pending:        make(map[*Response]struct{}),
	}, nil
}

// Token returns the default bot token.
func (c *Client) Token() string { return c.token }

// SetToken replaces the default bot token.
func (c *Client) SetToken(token string) { c.token = token }

// IsAsync reports whether calls are submitted asynchronously by default.
func (c *Client) IsAsync() bool { return c.async }

// SetAsync switches the default mode. Switching to synchronous mode drains
// the calls still in flight; their errors are returned joined.
func (c *Client) SetAsync(async bool) error {
	c.async = async
	if !async {
		return c.Drain()
	}
	return nil
}

func (c *Client) Timeout() time.Duration        { return c.timeout }
func (c *Client) SetTimeout(d time.Duration)    { c.timeout = d }
func (c *Client) ConnectTimeout() time.Duration { return c.connectTimeout }

func (c *Client) SetConnectTimeout(d time.Duration) { c.connectTimeout = d }

// OnSending registers a hook called with every request before it is sent.
// A nil hook clears it.
func (c *Client) OnSending(fn func(*Request)) {
	c.mu.Lock()
	c.onSending = fn
	c.mu.Unlock()
}

// OnFulfilled registers a hook called once for every successful call, with
// the time between sending and resolution.
func (c *Client) OnFulfilled(fn func(*Response, time.Duration)) {
	c.mu.Lock()
	c.onFulfilled = fn
	c.mu.Unlock()
}

// OnRejected registers a hook called once for every failed call.
func (c *Client) OnRejected(fn func(*Response, time.Duration)) {
	c.mu.Lock()
	c.onRejected = fn
	c.mu.Unlock()
}

// Pending returns the number of asynchronous calls not yet drained: those
// still in flight and those that failed.
func (c *Client) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.pending)
}

// Drain waits for every asynchronous call in flight and empties the pending
// set. Failures are logged and returned joined; each Deferred still reports
// its own error on Get.
func (c *Client) Drain() error {
	c.mu.Lock()
	waiting := make([]*Response, 0, len(c.pending))
	for r := range c.pending {
		waiting = append(waiting, r)
	}
	clear(c.pending)
	c.mu.Unlock()

	var errs []error
	for _, r := range waiting {
		if err := r.Err(); err != nil {
			slog.Warn("async call failed",
				"component", "telegram",
				"operation", "drain",
				"method", r.request.Method,
				"error", err,
			)
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Close drains the client.
func (c *Client) Close() error {
	return c.Drain()
}

func (c *Client) callConfig(opts []CallOption) callConfig {
	cfg := callConfig{
		async:          c.async,
		timeout:        c.timeout,
		connectTimeout: c.connectTimeout,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// send hands a built request to the transport and wraps the pending result.
func (c *Client) send(ctx context.Context, req *Request) *Response {
	c.mu.Lock()
	hook := c.onSending
	c.mu.Unlock()
	if hook != nil {
		hook(req)
	}

	slog.Debug("sending telegram API call",
		"component", "telegram",
		"operation", req.Method,
		"async", req.Async,
		"multipart", req.IsMultipart(),
	)

	resp := newResponse(c, req, c.transport.Send(ctx, req.wire))
	if !req.Async {
		return resp.Wait()
	}

	c.mu.Lock()
	c.pending[resp] = struct{}{}
	c.mu.Unlock()
	go func() {
		<-resp.pending.Done()
		resp.Wait()
	}()
	return resp
}

// settled is called exactly once per response, when it resolves. Failed
// calls stay in the pending set until drained.
func (c *Client) settled(r *Response, elapsed time.Duration) {
	c.mu.Lock()
	hook := c.onFulfilled
	if r.err == nil {
		delete(c.pending, r)
	} else {
		hook = c.onRejected
	}
	c.mu.Unlock()
	if hook != nil {
		hook(r, elapsed)
	}
}
