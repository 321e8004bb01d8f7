package telegram

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/edouard/tgbind/telegram/transport"
)

// Response is the envelope of one API call. It resolves the pending
// transport result on first access; every accessor after that returns the
// same memoized values.
type Response struct {
	request *Request
	pending transport.Pending
	client  *Client
	sentAt  time.Time

	once         sync.Once
	result       *transport.Result
	transportErr error
	body         []byte
	decoded      map[string]any
	err          error
}

func newResponse(c *Client, req *Request, pending transport.Pending) *Response {
	return &Response{request: req, pending: pending, client: c, sentAt: time.Now()}
}

// Wait blocks until the response has been resolved and classified.
func (r *Response) Wait() *Response {
	r.once.Do(r.resolve)
	return r
}

// Ready reports whether the transport has settled, without blocking.
func (r *Response) Ready() bool {
	select {
	case <-r.pending.Done():
		return true
	default:
		return false
	}
}

func (r *Response) resolve() {
	r.result, r.transportErr = r.pending.Wait()
	if r.result != nil {
		r.body = r.result.Body
	}
	r.decoded = decodeBody(r.body)
	r.err = r.classify()

	if r.request != nil && r.request.wire != nil {
		r.request.wire.Close()
	}

	elapsed := time.Since(r.sentAt)
	method := ""
	if r.request != nil {
		method = r.request.Method
	}
	if r.err != nil {
		slog.Debug("telegram API call failed",
			"component", "telegram",
			"operation", method,
			"elapsed", elapsed,
			"error", r.err,
		)
	} else {
		slog.Debug("telegram API call succeeded",
			"component", "telegram",
			"operation", method,
			"elapsed", elapsed,
		)
	}

	if r.client != nil {
		r.client.settled(r, elapsed)
	}
}

// classify builds the error for the settled exchange, or nil on success.
func (r *Response) classify() error {
	method := ""
	if r.request != nil {
		method = r.request.Method
	}
	if r.transportErr != nil {
		return &TransportError{Method: method, Err: r.transportErr}
	}
	ok, hasOK := r.decoded["ok"]
	if !hasOK {
		return newMalformedError(r, r.decoded)
	}
	if ok != true {
		return newResponseError(r, r.decoded)
	}
	if res, has := r.decoded["result"]; !has || res == nil {
		return newMalformedError(r, r.decoded)
	}
	return nil
}

// decodeBody parses a JSON object body. Anything else decodes to an empty map.
func decodeBody(body []byte) map[string]any {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return map[string]any{}
	}
	m, ok := v.(map[string]any)
	if !ok {
		return map[string]any{}
	}
	return m
}

// Body returns the raw response body, empty after a transport failure.
func (r *Response) Body() []byte {
	r.Wait()
	return r.body
}

// DecodedBody returns the body decoded as a JSON object. It is empty when
// the body is not a JSON object.
func (r *Response) DecodedBody() map[string]any {
	r.Wait()
	return r.decoded
}

// IsError reports whether the call failed at any layer.
func (r *Response) IsError() bool {
	r.Wait()
	return r.err != nil
}

// Err returns the typed error of the call: *TransportError,
// *ResponseError, or nil.
func (r *Response) Err() error {
	r.Wait()
	return r.err
}

// Result returns the "result" member of the body, or the error.
func (r *Response) Result() (any, error) {
	r.Wait()
	if r.err != nil {
		return nil, r.err
	}
	return r.decoded["result"], nil
}

// StatusCode returns the HTTP status, or 0 after a transport failure.
func (r *Response) StatusCode() int {
	r.Wait()
	if r.result == nil {
		return 0
	}
	return r.result.StatusCode
}

// Header returns the HTTP response headers.
func (r *Response) Header() http.Header {
	r.Wait()
	if r.result == nil {
		return nil
	}
	return r.result.Header
}

// Request returns the request this response answers.
func (r *Response) Request() *Request { return r.request }

// TransportErr returns the underlying transport failure, if any.
func (r *Response) TransportErr() error {
	r.Wait()
	return r.transportErr
}
