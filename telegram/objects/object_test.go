package objects

import (
	"encoding/json"
	"strconv"
	"strings"
	"testing"
)

func decode(t *testing.T, s string) map[string]any {
	t.Helper()
	dec := json.NewDecoder(strings.NewReader(s))
	dec.UseNumber()
	var m map[string]any
	if err := dec.Decode(&m); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return m
}

func TestHydrate_listRelationKeepsOrder(t *testing.T) {
	raw := decode(t, `{"name":"animals","title":"funny animals","is_masks":true,
		"stickers":[{"file_id":"a"},{"file_id":"b"},{"file_id":"c"}]}`)

	set := AsStickerSet(Hydrate(KindStickerSet, raw))
	stickers := set.Stickers()
	if len(stickers) != 3 {
		t.Fatalf("len(stickers) = %d, want 3", len(stickers))
	}
	for i, want := range []string{"a", "b", "c"} {
		if stickers[i].Kind() != KindSticker {
			t.Errorf("stickers[%d] kind = %s, want Sticker", i, stickers[i].Kind())
		}
		if got := stickers[i].FileID(); got != want {
			t.Errorf("stickers[%d].FileID() = %q, want %q", i, got, want)
		}
	}
	if !set.IsMasks() || set.Title() != "funny animals" {
		t.Errorf("scalar fields lost: %v", set.Map())
	}
}

func TestHydrate_indexKeyedMapIsList(t *testing.T) {
	raw := map[string]any{
		"options": map[string]any{
			"1": map[string]any{"text": "No"},
			"0": map[string]any{"text": "Yes"},
		},
	}
	opts := AsPoll(Hydrate(KindPoll, raw)).Options()
	if len(opts) != 2 || opts[0].Text() != "Yes" || opts[1].Text() != "No" {
		t.Fatalf("options = %v", opts)
	}
}

func TestHydrate_emptyListStaysList(t *testing.T) {
	o := Hydrate(KindPoll, map[string]any{"options": []any{}})
	list := o.GetObjects("options")
	if list == nil || len(list) != 0 {
		t.Fatalf("options = %#v, want empty list", o.GetOr("options", nil))
	}
}

func TestHydrate_recursiveDepth(t *testing.T) {
	const depth = 25
	raw := map[string]any{"message_id": json.Number("0"), "text": "leaf"}
	for i := 1; i <= depth; i++ {
		raw = map[string]any{
			"message_id":       json.Number(strconv.Itoa(i)),
			"reply_to_message": raw,
		}
	}

	m := NewMessage(raw)
	for i := 0; i < depth; i++ {
		next := m.ReplyToMessage()
		if next == nil {
			t.Fatalf("reply chain ends at depth %d, want %d", i, depth)
		}
		if next.Kind() != KindMessage {
			t.Fatalf("depth %d kind = %s, want Message", i+1, next.Kind())
		}
		m = next
	}
	if m.Text() != "leaf" {
		t.Errorf("leaf text = %q, want leaf", m.Text())
	}
	if m.ReplyToMessage() != nil {
		t.Error("leaf has a reply, want nil")
	}
}

func TestHydrate_scalarRelationStaysRaw(t *testing.T) {
	o := Hydrate(KindMessage, map[string]any{"chat": "not an object", "unknown_field": 7})
	if v, _ := o.Get("chat"); v != "not an object" {
		t.Errorf("chat = %v, want raw string", v)
	}
	if AsMessage(o).Chat() != nil {
		t.Error("Chat() should be nil for a raw scalar")
	}
	if v, ok := o.Get("unknown_field"); !ok || v != 7 {
		t.Errorf("unknown_field = %v, %v", v, ok)
	}
}

func TestHydrate_nonMapInput(t *testing.T) {
	for _, raw := range []any{nil, "x", 3.5, []any{1}} {
		o := Hydrate(KindUser, raw)
		if o == nil || o.Len() != 0 {
			t.Errorf("Hydrate(%v) = %v, want empty object", raw, o)
		}
	}
}

func TestObject_propertyBag(t *testing.T) {
	o := Hydrate(KindMaskPosition, decode(t, `{"point":"eyes","x_shift":-1.0,"y_shift":1.0,"zoom":2.0}`))

	if v, ok := o.Prop("XShift"); !ok || v.(json.Number).String() != "-1.0" {
		t.Errorf("Prop(XShift) = %v, %v", v, ok)
	}
	if got := o.GetOr("missing", "fallback"); got != "fallback" {
		t.Errorf("GetOr = %v, want fallback", got)
	}
	mp := AsMaskPosition(o)
	if mp.Zoom() != 2.0 || mp.Point() != "eyes" || mp.YShift() != 1.0 {
		t.Errorf("mask position = %v", mp.Map())
	}
}

func TestSnakeCase(t *testing.T) {
	tests := map[string]string{
		"MessageId":       "message_id",
		"MessageID":       "message_id",
		"XShift":          "x_shift",
		"IsBot":           "is_bot",
		"text":            "text",
		"NewChatPhoto":    "new_chat_photo",
		"MigrateToChatID": "migrate_to_chat_id",
	}
	for in, want := range tests {
		if got := SnakeCase(in); got != want {
			t.Errorf("SnakeCase(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestObject_MarshalJSON(t *testing.T) {
	m := NewMessage(decode(t, `{"message_id":5,"chat":{"id":9},"entities":[{"type":"bold","offset":0,"length":1}]}`))
	data, err := json.Marshal(m.Object)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	back := decode(t, string(data))
	if back["message_id"].(json.Number).String() != "5" {
		t.Errorf("message_id = %v", back["message_id"])
	}
	if _, ok := back["entities"].([]any); !ok {
		t.Errorf("entities = %T, want list", back["entities"])
	}
}

func TestKindByName(t *testing.T) {
	k, ok := KindByName("StickerSet")
	if !ok || k != KindStickerSet {
		t.Fatalf("KindByName(StickerSet) = %v, %v", k, ok)
	}
	if _, ok := KindByName("Me"); ok {
		t.Error("KindByName(Me) ok = true, want false")
	}
	if target, _ := KindMessage.Relation("reply_to_message"); target != KindMessage {
		t.Errorf("reply_to_message relation = %v, want Message", target)
	}
}

func TestUserProfilePhotos_rows(t *testing.T) {
	p := AsUserProfilePhotos(Hydrate(KindUserProfilePhotos, decode(t,
		`{"total_count":2,"photos":[[{"file_id":"a1"},{"file_id":"a2"}],[{"file_id":"b1"}]]}`)))
	rows := p.Photos()
	if len(rows) != 2 || len(rows[0]) != 2 || rows[1][0].FileID() != "b1" {
		t.Fatalf("Photos() = %v", rows)
	}
}

func TestHydrate_mixedListStaysRaw(t *testing.T) {
	tests := []struct {
		name   string
		photos string
	}{
		{"object and row", `[{"file_id":"a"},[{"file_id":"b"}]]`},
		{"object and scalar", `[{"file_id":"a"},"b"]`},
		{"scalars", `["a","b"]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := decode(t, `{"total_count":2,"photos":`+tt.photos+`}`)
			o := Hydrate(KindUserProfilePhotos, raw)
			got, _ := json.Marshal(o.GetOr("photos", nil))
			if string(got) != tt.photos {
				t.Errorf("photos = %s, want %s unchanged", got, tt.photos)
			}
			if rows := AsUserProfilePhotos(o).Photos(); len(rows) != 0 {
				t.Errorf("Photos() = %v, want none for a mixed list", rows)
			}
		})
	}
}

func TestNewUnknown(t *testing.T) {
	if u := NewUnknown(true); u.Result() != true {
		t.Errorf("Result() = %v, want true", u.Result())
	}
	u := NewUnknown(map[string]any{"ok": "yes"})
	if u.GetString("ok") != "yes" {
		t.Errorf("ok = %q", u.GetString("ok"))
	}
}

func TestInputMedia_SetAndClone(t *testing.T) {
	m := NewInputMedia("photo", "AgAD", map[string]any{"caption": "hi"})
	c := m.Clone()
	c.Set("media", "attach://file0")
	if m.Media() != "AgAD" {
		t.Errorf("original media = %v, want AgAD", m.Media())
	}
	if c.Media() != "attach://file0" || c.GetString("caption") != "hi" || c.Type() != "photo" {
		t.Errorf("clone = %v", c.Map())
	}
}
