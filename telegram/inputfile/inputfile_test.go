package inputfile

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/service/s3"
)

func writeTemp(t *testing.T, name, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(p, []byte(body), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return p
}

func TestResolve_normalization(t *testing.T) {
	local := writeTemp(t, "photo.png", "png bytes")
	ctx := context.Background()

	t.Run("readable path opens a stream", func(t *testing.T) {
		c, ok, err := Resolver{}.Resolve(ctx, local)
		if err != nil || !ok {
			t.Fatalf("Resolve = ok %v, err %v", ok, err)
		}
		if !c.IsStream() {
			t.Fatal("expected stream")
		}
		defer c.Reader.(io.Closer).Close()
		data, _ := io.ReadAll(c.Reader)
		if string(data) != "png bytes" {
			t.Errorf("content = %q, want %q", data, "png bytes")
		}
		if c.Filename != "photo.png" {
			t.Errorf("Filename = %q, want photo.png", c.Filename)
		}
	})

	t.Run("url passes through", func(t *testing.T) {
		c, ok, err := Resolver{}.Resolve(ctx, "https://example.com/cat.jpg")
		if err != nil || !ok {
			t.Fatalf("Resolve = ok %v, err %v", ok, err)
		}
		if c.IsStream() || c.Ref != "https://example.com/cat.jpg" {
			t.Errorf("Content = %+v, want URL ref", c)
		}
	})

	t.Run("file id passes through", func(t *testing.T) {
		c, _, err := Resolver{}.Resolve(ctx, "AgADBAADr6cxG")
		if err != nil {
			t.Fatalf("Resolve: %v", err)
		}
		if c.IsStream() || c.Ref != "AgADBAADr6cxG" {
			t.Errorf("Content = %+v, want id ref", c)
		}
	})

	t.Run("reader passes through", func(t *testing.T) {
		r := strings.NewReader("x")
		c, _, _ := Resolver{}.Resolve(ctx, r)
		if c.Reader != r {
			t.Error("reader was not passed through")
		}
	})

	t.Run("non file values are not references", func(t *testing.T) {
		for _, v := range []any{nil, 42, map[string]any{"a": 1}} {
			if _, ok, _ := (Resolver{}).Resolve(ctx, v); ok {
				t.Errorf("Resolve(%v) ok = true, want false", v)
			}
		}
	})
}

func TestResolve_explicitPathMissing(t *testing.T) {
	_, ok, err := Resolver{}.Resolve(context.Background(), Path("/nonexistent/file.bin"))
	if !ok {
		t.Fatal("ok = false, want true")
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("error = %v, want not exist", err)
	}
}

func TestResolve_rootGuard(t *testing.T) {
	root := t.TempDir()
	outside := writeTemp(t, "secret.txt", "s")

	_, _, err := Resolver{Root: root}.Resolve(context.Background(), outside)
	if !errors.Is(err, ErrOutsideRoot) {
		t.Fatalf("error = %v, want ErrOutsideRoot", err)
	}

	inside := filepath.Join(root, "ok.txt")
	os.WriteFile(inside, []byte("ok"), 0644)
	c, _, err := Resolver{Root: root}.Resolve(context.Background(), inside)
	if err != nil {
		t.Fatalf("Resolve inside root: %v", err)
	}
	c.Reader.(io.Closer).Close()
}

func TestBytes_randomName(t *testing.T) {
	c, err := Bytes{Data: []byte("abc")}.Open(context.Background())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if len(c.Filename) != 16 {
		t.Errorf("Filename length = %d, want 16", len(c.Filename))
	}
	for _, r := range c.Filename {
		if !strings.ContainsRune(alnum, r) {
			t.Errorf("Filename %q has non alphanumeric rune %q", c.Filename, r)
		}
	}

	named, _ := Bytes{Data: []byte("abc"), Name: "a.txt"}.Open(context.Background())
	if named.Filename != "a.txt" {
		t.Errorf("Filename = %q, want a.txt", named.Filename)
	}
}

func TestIsURL(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"https://example.com/a.png", true},
		{"http://example.com", true},
		{"ftp://files.example.com/x", true},
		{"file:///etc/passwd", false},
		{"AgADBAADr6cxG", false},
		{"/tmp/photo.png", false},
	}
	for _, tt := range tests {
		if got := IsURL(tt.in); got != tt.want {
			t.Errorf("IsURL(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

type fakeS3 struct {
	input *s3.GetObjectInput
	err   error
}

func (f *fakeS3) GetObjectWithContext(_ aws.Context, in *s3.GetObjectInput, _ ...request.Option) (*s3.GetObjectOutput, error) {
	f.input = in
	if f.err != nil {
		return nil, f.err
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(strings.NewReader("from s3"))}, nil
}

func TestS3Object_Open(t *testing.T) {
	client := &fakeS3{}
	c, err := S3Object{Client: client, Bucket: "media", Key: "clips/intro.mp4"}.Open(context.Background())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if aws.StringValue(client.input.Bucket) != "media" || aws.StringValue(client.input.Key) != "clips/intro.mp4" {
		t.Errorf("input = %v", client.input)
	}
	if c.Filename != "intro.mp4" {
		t.Errorf("Filename = %q, want intro.mp4", c.Filename)
	}
	data, _ := io.ReadAll(c.Reader)
	if string(data) != "from s3" {
		t.Errorf("body = %q", data)
	}

	client.err = errors.New("NoSuchKey")
	if _, err := (S3Object{Client: client, Bucket: "b", Key: "k"}).Open(context.Background()); err == nil {
		t.Fatal("expected error")
	}
}

func TestParseS3URI(t *testing.T) {
	b, k, ok := ParseS3URI("s3://media/clips/intro.mp4")
	if !ok || b != "media" || k != "clips/intro.mp4" {
		t.Errorf("ParseS3URI = %q, %q, %v", b, k, ok)
	}
	for _, bad := range []string{"media/clips", "s3://media", "s3:///key"} {
		if _, _, ok := ParseS3URI(bad); ok {
			t.Errorf("ParseS3URI(%q) ok = true, want false", bad)
		}
	}
}
