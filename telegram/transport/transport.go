// Package transport defines the HTTP collaborator the Bot API client submits
// requests through, and ships a net/http implementation of it.
package transport

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"
)

// Part is one field of a multipart body. Contents is either a string (plain
// form field) or an io.Reader (file part).
type Part struct {
	Name     string
	Contents any
	Filename string
}

// IsFile reports whether the part carries a stream.
func (p Part) IsFile() bool {
	_, ok := p.Contents.(io.Reader)
	return ok
}

// Request is a transport-ready Bot API call.
type Request struct {
	// Method is the API method name, used for logging only.
	Method string
	URL    string
	Header http.Header

	// Form is sent url-encoded unless Multipart is set, in which case Parts
	// carries every field.
	Form      url.Values
	Parts     []Part
	Multipart bool

	Async          bool
	Timeout        time.Duration
	ConnectTimeout time.Duration

	closeOnce sync.Once
	closeErr  error
}

// Close closes every stream part that implements io.Closer. Safe to call
// more than once; only the first call closes.
func (r *Request) Close() error {
	r.closeOnce.Do(func() {
		var errs []error
		for _, p := range r.Parts {
			if c, ok := p.Contents.(io.Closer); ok {
				if err := c.Close(); err != nil {
					errs = append(errs, err)
				}
			}
		}
		r.closeErr = errors.Join(errs...)
	})
	return r.closeErr
}

// Result is a settled HTTP exchange. Non-2xx statuses are results, not errors.
type Result struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// Pending is a result that may not have settled yet.
type Pending interface {
	// Wait blocks until the exchange settles.
	Wait() (*Result, error)
	// Done is closed once the exchange has settled.
	Done() <-chan struct{}
}

// Transport submits requests. Send must not turn non-2xx statuses into
// errors; it returns a Pending that is already settled unless req.Async.
type Transport interface {
	Send(ctx context.Context, req *Request) Pending
}

// Future is a Pending settled exactly once by Resolve.
type Future struct {
	done chan struct{}
	once sync.Once
	res  *Result
	err  error
}

// NewFuture returns an unsettled Future.
func NewFuture() *Future {
	return &Future{done: make(chan struct{})}
}

// Resolved returns a Future already settled with res and err.
func Resolved(res *Result, err error) *Future {
	f := NewFuture()
	f.Resolve(res, err)
	return f
}

// Resolve settles the future. Later calls are ignored.
func (f *Future) Resolve(res *Result, err error) {
	f.once.Do(func() {
		f.res, f.err = res, err
		close(f.done)
	})
}

// Wait blocks until Resolve has been called.
func (f *Future) Wait() (*Result, error) {
	<-f.done
	return f.res, f.err
}

// Done is closed once the future settles.
func (f *Future) Done() <-chan struct{} {
	return f.done
}
