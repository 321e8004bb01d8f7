package telegram

import (
	"errors"
	"fmt"
	"strings"

	"github.com/edouard/tgbind/telegram/objects"
)

// Sentinel errors.
var (
	ErrNoToken           = errors.New("telegram: no bot token")
	ErrMalformedResponse = errors.New("telegram: malformed response")
)

const (
	// defaultErrorCode is used when an error body has no error_code.
	defaultErrorCode = -1
	// malformedErrorCode marks a body that is not a valid API envelope.
	malformedErrorCode = -2
	// malformedRetryAfter is the retry hint attached to malformed responses.
	malformedRetryAfter = 5

	defaultErrorDescription   = "Unknown error from API."
	malformedErrorDescription = "Malformed response from API."
)

// ResponseError is an error reported by the Bot API, or a body that could
// not be read as an API envelope (see ErrMalformedResponse).
type ResponseError struct {
	Code        int
	Description string
	Parameters  *objects.ResponseParameters
	// Data is the decoded body.
	Data       map[string]any
	StatusCode int

	malformed bool
	response  *Response
}

func (e *ResponseError) Error() string {
	return fmt.Sprintf("telegram: %s: %d %s", e.method(), e.Code, e.Description)
}

// Is matches ErrMalformedResponse for malformed bodies.
func (e *ResponseError) Is(target error) bool {
	return target == ErrMalformedResponse && e.malformed
}

// Response returns the envelope the error was read from.
func (e *ResponseError) Response() *Response { return e.response }

// RetryAfter is the number of seconds to wait before repeating the request,
// or 0 when the API gave no hint.
func (e *ResponseError) RetryAfter() int {
	if e.Parameters == nil {
		return 0
	}
	return e.Parameters.RetryAfter()
}

// MigrateToChatID is the supergroup id a group has been migrated to, or 0.
func (e *ResponseError) MigrateToChatID() int64 {
	if e.Parameters == nil {
		return 0
	}
	return e.Parameters.MigrateToChatID()
}

func (e *ResponseError) method() string {
	if e.response != nil && e.response.request != nil {
		return e.response.request.Method
	}
	return "response"
}

// newResponseError builds the error for a decoded error body.
func newResponseError(r *Response, data map[string]any) *ResponseError {
	body := objects.New(objects.KindUnknown, data)
	e := &ResponseError{
		Code:        defaultErrorCode,
		Description: defaultErrorDescription,
		Data:        data,
		response:    r,
	}
	if r != nil && r.result != nil {
		e.StatusCode = r.result.StatusCode
	}
	if body.Has("error_code") {
		e.Code = int(body.GetInt64("error_code"))
	}
	if d := body.GetString("description"); d != "" {
		e.Description = d
	}
	if p, ok := data["parameters"].(map[string]any); ok {
		e.Parameters = objects.AsResponseParameters(objects.New(objects.KindResponseParameters, p))
	}
	return e
}

// newMalformedError builds the error for a body that is not an envelope.
func newMalformedError(r *Response, data map[string]any) *ResponseError {
	e := &ResponseError{
		Code:        malformedErrorCode,
		Description: malformedErrorDescription,
		Data:        data,
		Parameters: objects.AsResponseParameters(objects.New(objects.KindResponseParameters, map[string]any{
			"retry_after": malformedRetryAfter,
		})),
		malformed: true,
		response:  r,
	}
	if r != nil && r.result != nil {
		e.StatusCode = r.result.StatusCode
	}
	return e
}

// TransportError is a failure below the API: network, timeout, or a
// request that could not be written. No response body exists.
type TransportError struct {
	Method string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("telegram: %s: transport: %v", e.Method, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// FileError is returned when a file parameter cannot be opened.
type FileError struct {
	Method string
	Field  string
	Err    error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("telegram: %s: %s: %v", e.Method, e.Field, e.Err)
}

func (e *FileError) Unwrap() error { return e.Err }

// ValidationError reports parameters rejected before any request was sent.
type ValidationError struct {
	Method string
	// Fields maps each offending parameter to a human-readable reason.
	Fields map[string]string
	Err    error
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for _, name := range sortedKeys(e.Fields) {
		msgs = append(msgs, name+": "+e.Fields[name])
	}
	return fmt.Sprintf("telegram: %s: invalid parameters: %s", e.Method, strings.Join(msgs, "; "))
}

func (e *ValidationError) Unwrap() error { return e.Err }

func invalidParam(method, field, reason string) *ValidationError {
	return &ValidationError{Method: method, Fields: map[string]string{field: reason}}
}
