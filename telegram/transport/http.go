package transport

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net"
	"net/http"
	"path/filepath"
	"strings"
	"time"
)

// httpDo is a package-level variable for testability.
var httpDo = func(client *http.Client, req *http.Request) (*http.Response, error) {
	return client.Do(req)
}

// dialContext is a package-level variable for testability.
var dialContext = func(d *net.Dialer, ctx context.Context, network, addr string) (net.Conn, error) {
	return d.DialContext(ctx, network, addr)
}

type connectTimeoutKey struct{}

// HTTP is the default Transport, backed by net/http.
type HTTP struct {
	// Client performs the exchange. Connect timeouts are only honored when
	// the client's transport dials through DialContext (see NewHTTP).
	Client *http.Client

	// Header is merged into every request. Request headers win.
	Header http.Header
}

// NewHTTP returns an HTTP transport whose dialer honors per-request connect
// timeouts.
func NewHTTP() *HTTP {
	base := &net.Dialer{KeepAlive: 30 * time.Second}
	tr := http.DefaultTransport.(*http.Transport).Clone()
	tr.DialContext = func(ctx context.Context, network, addr string) (net.Conn, error) {
		d := *base
		if v, ok := ctx.Value(connectTimeoutKey{}).(time.Duration); ok && v > 0 {
			d.Timeout = v
		}
		return dialContext(&d, ctx, network, addr)
	}
	return &HTTP{Client: &http.Client{Transport: tr}}
}

// Send performs the exchange, in the background when req.Async is set.
func (t *HTTP) Send(ctx context.Context, req *Request) Pending {
	f := NewFuture()
	if req.Async {
		go func() { f.Resolve(t.do(ctx, req)) }()
		return f
	}
	f.Resolve(t.do(ctx, req))
	return f
}

func (t *HTTP) do(ctx context.Context, req *Request) (*Result, error) {
	defer req.Close()

	if req.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, req.Timeout)
		defer cancel()
	}
	if req.ConnectTimeout > 0 {
		ctx = context.WithValue(ctx, connectTimeoutKey{}, req.ConnectTimeout)
	}

	slog.Debug("telegram API POST",
		"component", "transport",
		"operation", req.Method,
		"multipart", req.Multipart,
		"async", req.Async,
	)

	body, contentType := encodeBody(req)
	hreq, err := http.NewRequestWithContext(ctx, http.MethodPost, req.URL, body)
	if err != nil {
		return nil, fmt.Errorf("%s: new request: %w", req.Method, err)
	}
	for k, vs := range t.Header {
		for _, v := range vs {
			hreq.Header.Add(k, v)
		}
	}
	for k, vs := range req.Header {
		hreq.Header[k] = vs
	}
	hreq.Header.Set("Content-Type", contentType)

	client := t.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := httpDo(client, hreq)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", req.Method, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%s: read body: %w", req.Method, err)
	}

	return &Result{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       respBody,
	}, nil
}

// encodeBody returns the request body and its content type.
func encodeBody(req *Request) (io.Reader, string) {
	if !req.Multipart {
		return strings.NewReader(req.Form.Encode()), "application/x-www-form-urlencoded"
	}

	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)
	go func() {
		pw.CloseWithError(writeParts(mw, req.Parts))
	}()
	return pr, mw.FormDataContentType()
}

func writeParts(mw *multipart.Writer, parts []Part) error {
	for _, p := range parts {
		switch c := p.Contents.(type) {
		case io.Reader:
			name := p.Filename
			if name == "" {
				name = readerName(c, p.Name)
			}
			w, err := mw.CreateFormFile(p.Name, name)
			if err != nil {
				return fmt.Errorf("multipart: create %s: %w", p.Name, err)
			}
			if _, err := io.Copy(w, c); err != nil {
				return fmt.Errorf("multipart: copy %s: %w", p.Name, err)
			}
		case string:
			if err := mw.WriteField(p.Name, c); err != nil {
				return fmt.Errorf("multipart: write %s: %w", p.Name, err)
			}
		default:
			if err := mw.WriteField(p.Name, fmt.Sprint(c)); err != nil {
				return fmt.Errorf("multipart: write %s: %w", p.Name, err)
			}
		}
	}
	return mw.Close()
}

// readerName uses the base name of named readers such as *os.File.
func readerName(r io.Reader, fallback string) string {
	if n, ok := r.(interface{ Name() string }); ok && n.Name() != "" {
		return filepath.Base(n.Name())
	}
	return fallback
}
