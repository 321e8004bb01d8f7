package telegram

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestDownload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/bot123:TEST/getFile":
			r.ParseForm()
			if got := r.PostForm.Get("file_id"); got != "AgADphoto" {
				t.Errorf("file_id = %q", got)
			}
			io.WriteString(w, `{"ok":true,"result":{"file_id":"AgADphoto","file_unique_id":"u","file_size":5,"file_path":"photos/file_1.jpg"}}`)
		case "/file/bot123:TEST/photos/file_1.jpg":
			io.WriteString(w, "JPEG!")
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	c, err := New("123:TEST", WithBaseURL(srv.URL))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	var buf bytes.Buffer
	f, n, err := c.Download(context.Background(), "AgADphoto", &buf)
	if err != nil {
		t.Fatalf("Download: %v", err)
	}
	if n != 5 || buf.String() != "JPEG!" {
		t.Errorf("downloaded %d bytes %q, want 5 bytes JPEG!", n, buf.String())
	}
	if f.FilePath() != "photos/file_1.jpg" {
		t.Errorf("FilePath = %q", f.FilePath())
	}
}

func TestDownload_errors(t *testing.T) {
	tests := []struct {
		name    string
		getFile string
		status  int
		wantErr error
	}{
		{"no path", `{"ok":true,"result":{"file_id":"big","file_unique_id":"u"}}`, http.StatusOK, ErrNoFilePath},
		{"gone", `{"ok":true,"result":{"file_id":"x","file_unique_id":"u","file_path":"docs/a.pdf"}}`, http.StatusNotFound, nil},
		{"api error", `{"ok":false,"error_code":400,"description":"Bad Request: invalid file_id"}`, http.StatusOK, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.Method == http.MethodGet {
					w.WriteHeader(tt.status)
					return
				}
				io.WriteString(w, tt.getFile)
			}))
			defer srv.Close()

			c, _ := New("123:TEST", WithBaseURL(srv.URL))
			_, n, err := c.Download(context.Background(), "x", io.Discard)
			if err == nil {
				t.Fatal("expected error")
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("err = %v, want %v", err, tt.wantErr)
			}
			if n != 0 {
				t.Errorf("bytes = %d, want 0", n)
			}
		})
	}
}

func TestDownload_transportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"ok":true,"result":{"file_id":"x","file_unique_id":"u","file_path":"a.txt"}}`)
	}))
	defer srv.Close()

	orig := downloadDo
	downloadDo = func(*http.Request) (*http.Response, error) { return nil, errors.New("connection refused") }
	defer func() { downloadDo = orig }()

	c, _ := New("123:TEST", WithBaseURL(srv.URL))
	_, _, err := c.Download(context.Background(), "x", io.Discard)
	var te *TransportError
	if !errors.As(err, &te) || te.Method != "download" {
		t.Errorf("err = %v, want a download TransportError", err)
	}
}
