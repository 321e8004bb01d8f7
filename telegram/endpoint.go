package telegram

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/edouard/tgbind/telegram/objects"
	"github.com/edouard/tgbind/telegram/transport"
)

// Endpoint describes one API method: its name, which parameters may carry
// uploads, the checks run before sending, and how the result is decoded.
type Endpoint[T any] struct {
	Method     string
	FileFields []string

	// validate rejects parameters before any network I/O.
	validate func(Params) error
	// prepare rewrites parameters and may add multipart attachments.
	prepare func(ctx context.Context, c *Client, p Params) (Params, []transport.Part, error)
	decode  func(result any) (T, error)
	// detectFiles treats every io.Reader or inputfile.File parameter as a
	// file field. Used by the generic fallback.
	detectFiles bool
}

// Submit validates and sends a call. In synchronous mode the returned
// Deferred is already resolved; in asynchronous mode it resolves in the
// background and the call joins the client's pending set.
//
// Validation, token and file errors are returned here, before any request
// is sent. File parameters are opened during Submit.
func Submit[T any](ctx context.Context, c *Client, ep Endpoint[T], params Params, opts ...CallOption) (*Deferred[T], error) {
	if ep.validate != nil {
		if err := ep.validate(params); err != nil {
			return nil, err
		}
	}

	var attachments []transport.Part
	if ep.prepare != nil {
		var err error
		params, attachments, err = ep.prepare(ctx, c, params.clone())
		if err != nil {
			return nil, err
		}
	}

	fileFields := ep.FileFields
	if ep.detectFiles {
		fileFields = fileFieldsOf(params)
	}

	req, err := c.buildRequest(ctx, ep.Method, params, fileFields, attachments, c.callConfig(opts))
	if err != nil {
		return nil, err
	}

	resp := c.send(ctx, req)
	return &Deferred[T]{
		resp: resp,
		decode: func(r *Response) (T, error) {
			res, _ := r.Result()
			v, err := ep.decode(res)
			if err != nil {
				var zero T
				return zero, fmt.Errorf("telegram: %s: decode result: %w", ep.Method, err)
			}
			return v, nil
		},
	}, nil
}

// Invoke sends a call and waits for its result.
func Invoke[T any](ctx context.Context, c *Client, ep Endpoint[T], params Params, opts ...CallOption) (T, error) {
	d, err := Submit(ctx, c, ep, params, opts...)
	if err != nil {
		var zero T
		return zero, err
	}
	return d.Get()
}

// NewEndpoint declares an endpoint for a method this package does not model.
func NewEndpoint[T any](method string, decode func(result any) (T, error), fileFields ...string) Endpoint[T] {
	return Endpoint[T]{Method: method, FileFields: fileFields, decode: decode}
}

func unexpected(want string, v any) error {
	return fmt.Errorf("%w: result is %T, want %s", ErrMalformedResponse, v, want)
}

// DecodeObject hydrates an object result and wraps it in a typed view.
func DecodeObject[T any](kind *objects.Kind, as func(*objects.Object) *T) func(any) (*T, error) {
	return func(v any) (*T, error) {
		m, ok := v.(map[string]any)
		if !ok {
			return nil, unexpected("object", v)
		}
		return as(objects.Hydrate(kind, m)), nil
	}
}

// DecodeList hydrates an array result.
func DecodeList[T any](kind *objects.Kind, as func(*objects.Object) *T) func(any) ([]*T, error) {
	return func(v any) ([]*T, error) {
		list, ok := v.([]any)
		if !ok {
			return nil, unexpected("array", v)
		}
		out := make([]*T, 0, len(list))
		for _, e := range list {
			out = append(out, as(objects.Hydrate(kind, e)))
		}
		return out, nil
	}
}

// DecodeBool reads a boolean result.
func DecodeBool(v any) (bool, error) {
	b, ok := v.(bool)
	if !ok {
		return false, unexpected("bool", v)
	}
	return b, nil
}

// DecodeInt reads an integer result.
func DecodeInt(v any) (int64, error) {
	switch x := v.(type) {
	case json.Number:
		return x.Int64()
	case float64:
		return int64(x), nil
	case string:
		return strconv.ParseInt(x, 10, 64)
	}
	return 0, unexpected("integer", v)
}

// DecodeString reads a string result.
func DecodeString(v any) (string, error) {
	s, ok := v.(string)
	if !ok {
		return "", unexpected("string", v)
	}
	return s, nil
}

// decodeEdited reads the result of edit methods: the edited message, or
// true (nil message) when an inline message was edited.
func decodeEdited(v any) (*objects.Message, error) {
	if v == true {
		return nil, nil
	}
	return DecodeObject(objects.KindMessage, objects.AsMessage)(v)
}

// decodeUnknown wraps any result.
func decodeUnknown(v any) (*objects.Unknown, error) {
	return objects.NewUnknown(v), nil
}
