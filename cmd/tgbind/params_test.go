package main

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/service/s3"

	"github.com/edouard/tgbind/internal/config"
	"github.com/edouard/tgbind/telegram"
	"github.com/edouard/tgbind/telegram/inputfile"
)

type fakeS3 struct {
	objects map[string]string
	gets    []string
}

func (f *fakeS3) GetObjectWithContext(_ aws.Context, in *s3.GetObjectInput, _ ...request.Option) (*s3.GetObjectOutput, error) {
	loc := aws.StringValue(in.Bucket) + "/" + aws.StringValue(in.Key)
	f.gets = append(f.gets, loc)
	body, found := f.objects[loc]
	if !found {
		return nil, errors.New("NoSuchKey: the specified key does not exist")
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(strings.NewReader(body))}, nil
}

func stubS3(t *testing.T, objects map[string]string) (*fakeS3, *config.S3) {
	t.Helper()
	fake := &fakeS3{objects: objects}
	var seen config.S3
	orig := newS3Client
	newS3Client = func(cfg config.S3) (inputfile.S3Getter, error) {
		seen = cfg
		return fake, nil
	}
	t.Cleanup(func() { newS3Client = orig })
	return fake, &seen
}

func TestSendDocument_s3(t *testing.T) {
	t.Setenv(telegram.DefaultTokenEnv, testToken)
	fake, seen := stubS3(t, map[string]string{"reports/2024/daily.csv": "day,total\n1,10\n"})
	api := newFakeAPI(t, func(apiCall) (int, string) {
		return ok(`{"message_id":3,"date":1,"chat":{"id":-100,"type":"channel"}}`)
	})
	cfg := writeConfig(t, map[string]any{
		"default_bot": "main",
		"bots": map[string]any{"main": map[string]any{
			"base_url": api.URL,
			"s3":       map[string]any{"region": "eu-west-3", "endpoint": "http://minio.local:9000"},
		}},
	})

	code, _, stderr := runCLI(t, "", "--config", cfg, "send", "document", "-100", "s3://reports/2024/daily.csv")
	if code != 0 {
		t.Fatalf("exit code = %d, stderr = %s", code, stderr)
	}
	if len(fake.gets) != 1 || fake.gets[0] != "reports/2024/daily.csv" {
		t.Errorf("S3 gets = %v", fake.gets)
	}
	if seen.Region != "eu-west-3" || seen.Endpoint != "http://minio.local:9000" {
		t.Errorf("S3 settings = %+v", *seen)
	}
	if got := api.recorded()[0].files["document"]; got != "daily.csv:day,total\n1,10\n" {
		t.Errorf("document part = %q", got)
	}
}

func TestSendDocument_s3Missing(t *testing.T) {
	t.Setenv(telegram.DefaultTokenEnv, testToken)
	stubS3(t, nil)
	api := newFakeAPI(t, func(apiCall) (int, string) { return ok(`true`) })
	cfg := profileConfig(t, api.URL)

	code, _, stderr := runCLI(t, "", "--config", cfg, "send", "document", "1", "s3://reports/none.csv")
	if code != 1 || !strings.Contains(stderr, "NoSuchKey") {
		t.Errorf("exit code = %d, stderr = %q", code, stderr)
	}
	if n := len(api.recorded()); n != 0 {
		t.Errorf("API called %d times, want 0", n)
	}
}

func TestParseParams(t *testing.T) {
	stubS3(t, map[string]string{})
	a := newApp(strings.NewReader(""), io.Discard, io.Discard)
	a.cfg = &config.Config{}

	photo := filepath.Join(t.TempDir(), "cat.jpg")
	if err := os.WriteFile(photo, []byte("jpeg"), 0o644); err != nil {
		t.Fatal(err)
	}

	p, err := a.parseParams([]string{
		"chat_id=42",
		"text=a=b",
		"disable_notification:=true",
		"reply_markup:={\"inline_keyboard\":[]}",
		"photo=@" + photo,
		"video=@s3://media/clip.mp4",
		"document=@https://example.com/cat.jpg",
		"sticker=@CAACAgIAAxkBAAE",
	})
	if err != nil {
		t.Fatalf("parseParams: %v", err)
	}
	if p["chat_id"] != "42" || p["text"] != "a=b" {
		t.Errorf("plain values = %v, %v", p["chat_id"], p["text"])
	}
	if p["disable_notification"] != true {
		t.Errorf("disable_notification = %#v, want true", p["disable_notification"])
	}
	if _, isMap := p["reply_markup"].(map[string]any); !isMap {
		t.Errorf("reply_markup = %#v, want a decoded object", p["reply_markup"])
	}
	if p["photo"] != inputfile.Path(photo) {
		t.Errorf("photo = %#v, want a path", p["photo"])
	}
	if p["document"] != "https://example.com/cat.jpg" {
		t.Errorf("document = %#v, want the URL passed through", p["document"])
	}
	if p["sticker"] != "CAACAgIAAxkBAAE" {
		t.Errorf("sticker = %#v, want the file id passed through", p["sticker"])
	}
	obj, isS3 := p["video"].(inputfile.S3Object)
	if !isS3 || obj.Bucket != "media" || obj.Key != "clip.mp4" {
		t.Errorf("video = %#v, want an S3 object", p["video"])
	}

	for _, bad := range []string{"s3=@s3://bucket-only", "x"} {
		if _, err := a.parseParams([]string{bad}); err == nil {
			t.Errorf("%q: expected error", bad)
		}
	}
}
