package telegram

import (
	"context"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/edouard/tgbind/telegram/objects"
)

// GenericEndpoint describes a method by name only. A "get<Name>" method whose
// Name is a known kind hydrates its result to that kind; every other result
// is an Unknown object, with non-object results stored under "result".
//
// Parameters holding an io.Reader or an inputfile.File are uploaded.
func GenericEndpoint(method string) Endpoint[*objects.Object] {
	kind := kindForMethod(method)
	return Endpoint[*objects.Object]{
		Method:      method,
		detectFiles: true,
		decode: func(v any) (*objects.Object, error) {
			if m, ok := v.(map[string]any); ok && kind != nil {
				return objects.Hydrate(kind, m), nil
			}
			return objects.NewUnknown(v).Object, nil
		},
	}
}

func kindForMethod(method string) *objects.Kind {
	name, ok := strings.CutPrefix(method, "get")
	if !ok || name == "" {
		return nil
	}
	r, size := utf8.DecodeRuneInString(name)
	kind, ok := objects.KindByName(string(unicode.ToUpper(r)) + name[size:])
	if !ok || kind == objects.KindUnknown {
		return nil
	}
	return kind
}

// Call sends any method verbatim and waits for its result. See
// GenericEndpoint for how the result is typed.
func (c *Client) Call(ctx context.Context, method string, p Params, opts ...CallOption) (*objects.Object, error) {
	return Invoke(ctx, c, GenericEndpoint(method), p, opts...)
}

// CallDeferred is Call through Submit: in asynchronous mode it returns before
// the call completes.
func (c *Client) CallDeferred(ctx context.Context, method string, p Params, opts ...CallOption) (*Deferred[*objects.Object], error) {
	return Submit(ctx, c, GenericEndpoint(method), p, opts...)
}
