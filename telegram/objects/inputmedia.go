package objects

import "maps"

// InputMedia describes one item of a media group. Unlike response objects it
// is built by the caller and may be modified until it is sent.
//
// The media field holds a file_id or URL string, an io.Reader, an
// inputfile.File, or a local path; the request builder moves streams into
// multipart attachments and rewrites media to an attach:// reference.
type InputMedia struct{ *Object }

// NewInputMedia builds a media descriptor of the given type ("photo",
// "video", ...).
func NewInputMedia(mediaType string, media any, fields map[string]any) *InputMedia {
	f := make(map[string]any, len(fields)+2)
	maps.Copy(f, fields)
	f["type"] = mediaType
	f["media"] = media
	return &InputMedia{Hydrate(KindInputMedia, f)}
}

// AsInputMedia wraps an existing map descriptor.
func AsInputMedia(fields map[string]any) *InputMedia {
	return &InputMedia{Hydrate(KindInputMedia, fields)}
}

func (m *InputMedia) Type() string { return m.GetString("type") }

// Media returns the media field as given.
func (m *InputMedia) Media() any {
	v, _ := m.Get("media")
	return v
}

// Set overwrites a field.
func (m *InputMedia) Set(name string, value any) {
	m.fields[name] = value
}

// Clone returns an independent copy, so a descriptor can be rewritten for
// one request without touching the caller's value.
func (m *InputMedia) Clone() *InputMedia {
	return &InputMedia{&Object{kind: KindInputMedia, fields: maps.Clone(m.fields)}}
}
