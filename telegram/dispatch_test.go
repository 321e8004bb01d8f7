package telegram

import (
	"context"
	"strings"
	"testing"

	"github.com/edouard/tgbind/telegram/inputfile"
	"github.com/edouard/tgbind/telegram/objects"
	"github.com/edouard/tgbind/telegram/transport"
)

func TestCall_kinds(t *testing.T) {
	bodies := map[string]string{
		"getChat":             `{"ok":true,"result":{"id":-100,"type":"supergroup","pinned_message":{"message_id":3,"text":"rules"}}}`,
		"getStickerSet":       `{"ok":true,"result":{"name":"pack","stickers":[{"file_id":"s1"},{"file_id":"s2"}]}}`,
		"getMyCommands":       `{"ok":true,"result":[{"command":"start"}]}`,
		"logOut":              `{"ok":true,"result":true}`,
		"setMyCommands":       `{"ok":true,"result":{"custom":"value"}}`,
		"getChatMembersCount": `{"ok":true,"result":12}`,
	}
	tr := &stubTransport{respond: func(req *transport.Request) (*transport.Result, error) {
		method := req.URL[strings.LastIndex(req.URL, "/")+1:]
		return okResult(bodies[method]), nil
	}}
	c := newTestClient(t, tr)
	ctx := context.Background()

	chat, err := c.Call(ctx, "getChat", Params{"chat_id": -100})
	if err != nil {
		t.Fatalf("Call(getChat): %v", err)
	}
	if chat.Kind() != objects.KindChat {
		t.Errorf("kind = %v, want Chat", chat.Kind())
	}
	if got := objects.AsChat(chat).PinnedMessage().Text(); got != "rules" {
		t.Errorf("pinned text = %q, want rules", got)
	}

	set, err := c.Call(ctx, "getStickerSet", Params{"name": "pack"})
	if err != nil {
		t.Fatalf("Call(getStickerSet): %v", err)
	}
	if got := len(objects.AsStickerSet(set).Stickers()); got != 2 {
		t.Errorf("stickers = %d, want 2", got)
	}

	cmds, err := c.Call(ctx, "getMyCommands", nil)
	if err != nil {
		t.Fatalf("Call(getMyCommands): %v", err)
	}
	if cmds.Kind() != objects.KindUnknown {
		t.Errorf("kind = %v, want Unknown", cmds.Kind())
	}
	if list, ok := cmds.Get("result"); !ok || len(list.([]any)) != 1 {
		t.Errorf("result = %v, want one command", list)
	}

	out, err := c.Call(ctx, "logOut", nil)
	if err != nil {
		t.Fatalf("Call(logOut): %v", err)
	}
	if v, _ := out.Get("result"); v != true {
		t.Errorf("result = %v, want true", v)
	}

	custom, err := c.Call(ctx, "setMyCommands", nil)
	if err != nil {
		t.Fatalf("Call(setMyCommands): %v", err)
	}
	if got := custom.GetString("custom"); got != "value" {
		t.Errorf("custom = %q, want value", got)
	}

	count, err := c.Call(ctx, "getChatMembersCount", nil)
	if err != nil {
		t.Fatalf("Call(getChatMembersCount): %v", err)
	}
	if got := count.GetInt64("result"); got != 12 {
		t.Errorf("result = %d, want 12", got)
	}
}

func TestCall_detectsUploads(t *testing.T) {
	tr := &stubTransport{}
	c := newTestClient(t, tr)

	_, err := c.Call(context.Background(), "setChatPhoto", Params{
		"chat_id": 1,
		"photo":   inputfile.Bytes{Data: []byte("png"), Name: "p.png"},
		"caption": "new photo",
	})
	if err != nil {
		t.Fatalf("Call: %v", err)
	}
	req := tr.last()
	if !req.Multipart {
		t.Fatal("request is not multipart")
	}
	if got := string(tr.bodies["photo"]); got != "png" {
		t.Errorf("photo = %q, want png", got)
	}
	if _, ok := tr.bodies["caption"]; ok {
		t.Error("plain string parameter was uploaded")
	}
}

func TestKindForMethod(t *testing.T) {
	tests := []struct {
		method string
		want   *objects.Kind
	}{
		{"getChat", objects.KindChat},
		{"getWebhookInfo", objects.KindWebhookInfo},
		{"getUserProfilePhotos", objects.KindUserProfilePhotos},
		{"getFile", objects.KindFile},
		{"getUnknown", nil},
		{"getUpdates", nil},
		{"get", nil},
		{"sendChat", nil},
	}
	for _, tt := range tests {
		if got := kindForMethod(tt.method); got != tt.want {
			t.Errorf("kindForMethod(%q) = %v, want %v", tt.method, got, tt.want)
		}
	}
}
