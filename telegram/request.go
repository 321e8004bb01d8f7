package telegram

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"slices"
	"strconv"
	"time"

	"github.com/edouard/tgbind/telegram/inputfile"
	"github.com/edouard/tgbind/telegram/objects"
	"github.com/edouard/tgbind/telegram/transport"
)

// Request is one API call, built once and sent once.
type Request struct {
	Method string
	Token  string
	// Params holds the parameters as they are sent: file fields resolved,
	// media lists serialized, token override removed.
	Params      Params
	FileFields  []string
	Attachments []transport.Part

	Async          bool
	Timeout        time.Duration
	ConnectTimeout time.Duration

	wire *transport.Request
}

// Wire returns the transport-level request.
func (r *Request) Wire() *transport.Request { return r.wire }

// IsMultipart reports whether the request carries file parts.
func (r *Request) IsMultipart() bool { return r.wire != nil && r.wire.Multipart }

// buildRequest turns a method and its parameters into a transport-ready
// request. File fields are opened here; on error every stream opened so far
// is closed.
func (c *Client) buildRequest(ctx context.Context, method string, params Params, fileFields []string, attachments []transport.Part, cfg callConfig) (*Request, error) {
	params = params.clone()

	token := cfg.token
	if raw, ok := params[TokenParam]; ok {
		delete(params, TokenParam)
		s, isString := raw.(string)
		if !isString || s == "" {
			closeParts(attachments)
			return nil, invalidParam(method, TokenParam, "must be a non-empty string")
		}
		token = s
	}
	if token == "" {
		token = c.token
	}
	if token == "" {
		closeParts(attachments)
		return nil, fmt.Errorf("telegram: %s: %w", method, ErrNoToken)
	}

	var parts []transport.Part
	for _, field := range fileFields {
		v, ok := params[field]
		if !ok {
			continue
		}
		content, isFile, err := c.resolver.Resolve(ctx, v)
		if err != nil {
			closeParts(parts)
			closeParts(attachments)
			return nil, &FileError{Method: method, Field: field, Err: err}
		}
		if !isFile {
			continue
		}
		if content.IsStream() {
			parts = append(parts, transport.Part{Name: field, Contents: content.Reader, Filename: content.Filename})
			delete(params, field)
			continue
		}
		params[field] = content.Ref
	}

	form := url.Values{}
	for _, k := range sortedKeys(params) {
		s, ok, err := encodeValue(params[k])
		if err != nil {
			closeParts(parts)
			closeParts(attachments)
			return nil, invalidParam(method, k, "cannot be encoded: "+err.Error())
		}
		if ok {
			form.Set(k, s)
		}
	}

	wire := &transport.Request{
		Method:         method,
		URL:            c.baseURL + "/bot" + token + "/" + method,
		Form:           form,
		Async:          cfg.async,
		Timeout:        cfg.timeout,
		ConnectTimeout: cfg.connectTimeout,
	}
	if len(parts) > 0 || len(attachments) > 0 {
		wire.Multipart = true
		for _, k := range sortedKeys(form) {
			wire.Parts = append(wire.Parts, transport.Part{Name: k, Contents: form.Get(k)})
		}
		wire.Parts = append(wire.Parts, parts...)
		wire.Parts = append(wire.Parts, attachments...)
	}

	sent := make(Params, len(form)+len(parts))
	for k := range form {
		sent[k] = form.Get(k)
	}
	for _, p := range parts {
		sent[p.Name] = p.Contents
	}

	return &Request{
		Method:         method,
		Token:          token,
		Params:         sent,
		FileFields:     slices.Clone(fileFields),
		Attachments:    attachments,
		Async:          cfg.async,
		Timeout:        cfg.timeout,
		ConnectTimeout: cfg.connectTimeout,
		wire:           wire,
	}, nil
}

// extractAttachments moves embedded uploads out of a media group list. Each
// descriptor whose media resolves to a stream becomes a part named
// "file<i>" and its media field is rewritten to "attach://file<i>". The
// rewritten list is returned JSON-encoded. Caller descriptors are not
// modified.
func (c *Client) extractAttachments(ctx context.Context, method string, media any) (string, []transport.Part, error) {
	items, ok := mediaItems(media)
	if !ok {
		s, _, err := encodeValue(media)
		return s, nil, err
	}

	var parts []transport.Part
	out := make([]*objects.InputMedia, len(items))
	for i, item := range items {
		m := item.Clone()
		out[i] = m
		content, isFile, err := c.resolver.Resolve(ctx, m.Media())
		if err != nil {
			closeParts(parts)
			return "", nil, &FileError{Method: method, Field: "media[" + strconv.Itoa(i) + "]", Err: err}
		}
		if !isFile || !content.IsStream() {
			continue
		}
		name := "file" + strconv.Itoa(i)
		m.Set("media", "attach://"+name)
		parts = append(parts, transport.Part{Name: name, Contents: content.Reader, Filename: content.Filename})
	}

	data, err := json.Marshal(out)
	if err != nil {
		closeParts(parts)
		return "", nil, err
	}
	return string(data), parts, nil
}

// mediaItems reads a media group parameter as descriptors.
func mediaItems(v any) ([]*objects.InputMedia, bool) {
	switch x := v.(type) {
	case []*objects.InputMedia:
		return x, true
	case []map[string]any:
		items := make([]*objects.InputMedia, len(x))
		for i, m := range x {
			items[i] = objects.AsInputMedia(m)
		}
		return items, true
	case []any:
		items := make([]*objects.InputMedia, len(x))
		for i, e := range x {
			switch d := e.(type) {
			case *objects.InputMedia:
				items[i] = d
			case map[string]any:
				items[i] = objects.AsInputMedia(d)
			default:
				return nil, false
			}
		}
		return items, true
	}
	return nil, false
}

func closeParts(parts []transport.Part) {
	for _, p := range parts {
		if c, ok := p.Contents.(io.Closer); ok {
			c.Close()
		}
	}
}

// fileFieldsOf lists the parameters holding uploads, for methods without a
// declared set.
func fileFieldsOf(p Params) []string {
	var fields []string
	for _, k := range sortedKeys(p) {
		switch p[k].(type) {
		case io.Reader, inputfile.File:
			fields = append(fields, k)
		}
	}
	return fields
}
