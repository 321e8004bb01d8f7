// Package inputfile describes the upload sources a file-bearing Bot API
// parameter accepts.
package inputfile

import (
	"bytes"
	"context"
	"crypto/rand"
	"fmt"
	"io"
	"math/big"
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

// File is an openable file reference.
type File interface {
	// Open yields either a stream to upload or a plain string reference
	// (remote URL or file_id) that the API fetches itself.
	Open(ctx context.Context) (Content, error)
}

// Content is an opened File. Exactly one of Reader and Ref is set.
type Content struct {
	Reader   io.Reader
	Filename string
	Ref      string
}

// IsStream reports whether the content must travel as a multipart file part.
func (c Content) IsStream() bool { return c.Reader != nil }

// Replaceable for testing.
var (
	osOpen = func(name string) (io.ReadCloser, error) { return os.Open(name) }
	osStat = os.Stat
)

// Path references a local file.
type Path string

// Open opens the file for reading.
func (p Path) Open(context.Context) (Content, error) {
	f, err := osOpen(string(p))
	if err != nil {
		return Content{}, fmt.Errorf("inputfile: open %s: %w", string(p), err)
	}
	return Content{Reader: f, Filename: filepath.Base(string(p))}, nil
}

// Bytes is an in-memory upload.
type Bytes struct {
	Data []byte
	// Name is the filename sent with the part. A random one is generated
	// when empty.
	Name string
}

// Open wraps the buffer in a reader.
func (b Bytes) Open(context.Context) (Content, error) {
	name := b.Name
	if name == "" {
		name = randomName(16)
	}
	return Content{Reader: bytes.NewReader(b.Data), Filename: name}, nil
}

// Reader uploads an existing stream.
type Reader struct {
	R    io.Reader
	Name string
}

// Open returns the stream as is.
func (r Reader) Open(context.Context) (Content, error) {
	return Content{Reader: r.R, Filename: r.Name}, nil
}

// URL references a remote HTTP(S) file that the API downloads itself.
type URL string

// Open returns the URL unchanged.
func (u URL) Open(context.Context) (Content, error) {
	return Content{Ref: string(u)}, nil
}

// ID references a file already stored on the platform.
type ID string

// Open returns the identifier unchanged.
func (id ID) Open(context.Context) (Content, error) {
	return Content{Ref: string(id)}, nil
}

// IsURL reports whether s is an absolute http, https or ftp URL.
func IsURL(s string) bool {
	u, err := url.Parse(s)
	if err != nil || u.Host == "" {
		return false
	}
	switch strings.ToLower(u.Scheme) {
	case "http", "https", "ftp":
		return true
	}
	return false
}

// IsReadableFile reports whether s names an existing regular file.
func IsReadableFile(s string) bool {
	if s == "" || strings.ContainsRune(s, 0) {
		return false
	}
	info, err := osStat(s)
	return err == nil && info.Mode().IsRegular()
}

const alnum = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

func randomName(n int) string {
	var sb strings.Builder
	max := big.NewInt(int64(len(alnum)))
	for range n {
		i, err := rand.Int(rand.Reader, max)
		if err != nil {
			sb.WriteByte('x')
			continue
		}
		sb.WriteByte(alnum[i.Int64()])
	}
	return sb.String()
}
