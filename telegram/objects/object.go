// Package objects hydrates decoded Bot API JSON into typed value objects.
//
// Every object owns one field map. Fields declared as relations on the
// object's Kind are replaced by hydrated *Object values (or ordered slices of
// them); every other field is kept exactly as decoded, so fields this package
// does not model stay reachable through Get and Prop.
package objects

import (
	"encoding/json"
	"slices"
	"strconv"
	"strings"
	"unicode"
)

// Kind names an object type and declares its relations: field name to the
// kind the field hydrates into.
type Kind struct {
	Name      string
	relations map[string]*Kind
}

// Relation returns the kind a field hydrates into.
func (k *Kind) Relation(field string) (*Kind, bool) {
	if k == nil {
		return nil, false
	}
	target, ok := k.relations[field]
	return target, ok
}

// Relations returns the declared relation field names, sorted.
func (k *Kind) Relations() []string {
	names := make([]string, 0, len(k.relations))
	for name := range k.relations {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

func (k *Kind) String() string { return k.Name }

// Object is a hydrated Bot API value.
type Object struct {
	kind   *Kind
	fields map[string]any
}

// Hydrate builds an object of the given kind from a decoded JSON value.
// It never fails: a value that is not a JSON object yields an empty object,
// and relation fields whose value is neither a list nor an object stay raw.
func Hydrate(kind *Kind, raw any) *Object {
	if kind == nil {
		kind = KindUnknown
	}
	if o, ok := raw.(*Object); ok {
		return &Object{kind: kind, fields: o.fields}
	}
	m, _ := raw.(map[string]any)
	fields := make(map[string]any, len(m))
	for name, v := range m {
		if target, ok := kind.relations[name]; ok {
			fields[name] = hydrateRelation(target, v)
			continue
		}
		fields[name] = v
	}
	return &Object{kind: kind, fields: fields}
}

func hydrateRelation(target *Kind, v any) any {
	switch x := v.(type) {
	case *Object:
		return x
	case []*Object:
		return x
	}
	if items, ok := asList(v); ok {
		switch shapeOf(items) {
		case shapeRows:
			rows := make([][]*Object, len(items))
			for i, item := range items {
				row, _ := asList(item)
				rows[i] = hydrateList(target, row)
			}
			return rows
		case shapeObjects:
			return hydrateList(target, items)
		}
		// Mixed or scalar items would lose data, so they stay raw.
		return v
	}
	if m, ok := v.(map[string]any); ok {
		return Hydrate(target, m)
	}
	return v
}

type listShape int

const (
	shapeMixed listShape = iota
	shapeObjects
	shapeRows
)

// shapeOf classifies list items: all objects, all lists, or anything else.
// An empty list counts as a list of objects.
func shapeOf(items []any) listShape {
	lists, objects := 0, 0
	for _, item := range items {
		if _, ok := asList(item); ok {
			lists++
			continue
		}
		switch item.(type) {
		case map[string]any, *Object:
			objects++
		}
	}
	switch {
	case objects == len(items):
		return shapeObjects
	case lists == len(items):
		return shapeRows
	}
	return shapeMixed
}

func hydrateList(target *Kind, items []any) []*Object {
	out := make([]*Object, len(items))
	for i, item := range items {
		out[i] = Hydrate(target, item)
	}
	return out
}

// asList reports whether v is list-shaped: a JSON array, or an object whose
// keys are exactly "0".."n-1".
func asList(v any) ([]any, bool) {
	switch x := v.(type) {
	case []any:
		return x, true
	case []map[string]any:
		items := make([]any, len(x))
		for i, m := range x {
			items[i] = m
		}
		return items, true
	case map[string]any:
		if len(x) == 0 {
			return nil, false
		}
		items := make([]any, len(x))
		for i := range len(x) {
			item, ok := x[strconv.Itoa(i)]
			if !ok {
				return nil, false
			}
			items[i] = item
		}
		return items, true
	}
	return nil, false
}

// New hydrates a caller-supplied map, typically for input-only objects.
func New(kind *Kind, fields map[string]any) *Object {
	return Hydrate(kind, fields)
}

// Kind returns the object's kind.
func (o *Object) Kind() *Kind {
	if o == nil {
		return KindUnknown
	}
	return o.kind
}

// Get returns the field value and whether it is set.
func (o *Object) Get(name string) (any, bool) {
	if o == nil {
		return nil, false
	}
	v, ok := o.fields[name]
	return v, ok
}

// GetOr returns the field value, or def when the field is unset.
func (o *Object) GetOr(name string, def any) any {
	if v, ok := o.Get(name); ok {
		return v
	}
	return def
}

// Has reports whether the field is set.
func (o *Object) Has(name string) bool {
	_, ok := o.Get(name)
	return ok
}

// Prop looks a field up by its camel-case name: Prop("MessageId") reads
// "message_id".
func (o *Object) Prop(name string) (any, bool) {
	return o.Get(SnakeCase(name))
}

// Keys returns the set field names, sorted.
func (o *Object) Keys() []string {
	if o == nil {
		return nil
	}
	keys := make([]string, 0, len(o.fields))
	for k := range o.fields {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// Len returns the number of set fields.
func (o *Object) Len() int {
	if o == nil {
		return 0
	}
	return len(o.fields)
}

// GetString returns a string field, or "" when unset or not a string.
func (o *Object) GetString(name string) string {
	v, _ := o.Get(name)
	switch x := v.(type) {
	case string:
		return x
	case json.Number:
		return x.String()
	}
	return ""
}

// GetInt64 returns a numeric field as int64. Numeric strings are parsed.
func (o *Object) GetInt64(name string) int64 {
	v, _ := o.Get(name)
	return toInt64(v)
}

// GetFloat64 returns a numeric field as float64.
func (o *Object) GetFloat64(name string) float64 {
	v, _ := o.Get(name)
	switch x := v.(type) {
	case float64:
		return x
	case float32:
		return float64(x)
	case int:
		return float64(x)
	case int64:
		return float64(x)
	case json.Number:
		f, _ := x.Float64()
		return f
	case string:
		f, _ := strconv.ParseFloat(x, 64)
		return f
	}
	return 0
}

// GetBool returns a boolean field, false when unset.
func (o *Object) GetBool(name string) bool {
	v, _ := o.Get(name)
	b, _ := v.(bool)
	return b
}

// GetObject returns a hydrated single-object field, or nil.
func (o *Object) GetObject(name string) *Object {
	v, _ := o.Get(name)
	obj, _ := v.(*Object)
	return obj
}

// GetObjects returns a hydrated list field, or nil.
func (o *Object) GetObjects(name string) []*Object {
	v, _ := o.Get(name)
	list, _ := v.([]*Object)
	return list
}

// GetObjectRows returns a hydrated list-of-lists field, such as
// UserProfilePhotos.photos.
func (o *Object) GetObjectRows(name string) [][]*Object {
	v, _ := o.Get(name)
	rows, _ := v.([][]*Object)
	return rows
}

// Map returns the object as plain decoded JSON, relations included.
func (o *Object) Map() map[string]any {
	if o == nil {
		return nil
	}
	out := make(map[string]any, len(o.fields))
	for k, v := range o.fields {
		out[k] = plain(v)
	}
	return out
}

func plain(v any) any {
	switch x := v.(type) {
	case *Object:
		return x.Map()
	case []*Object:
		items := make([]any, len(x))
		for i, item := range x {
			items[i] = item.Map()
		}
		return items
	case [][]*Object:
		rows := make([]any, len(x))
		for i, row := range x {
			rows[i] = plain(row)
		}
		return rows
	}
	return v
}

// MarshalJSON encodes the object back to its wire form.
func (o *Object) MarshalJSON() ([]byte, error) {
	if o == nil {
		return []byte("null"), nil
	}
	return json.Marshal(o.Map())
}

func toInt64(v any) int64 {
	switch x := v.(type) {
	case int64:
		return x
	case int:
		return int64(x)
	case int32:
		return int64(x)
	case float64:
		return int64(x)
	case json.Number:
		if n, err := x.Int64(); err == nil {
			return n
		}
		f, _ := x.Float64()
		return int64(f)
	case string:
		n, _ := strconv.ParseInt(x, 10, 64)
		return n
	}
	return 0
}

// SnakeCase converts a camel-case accessor name to its wire field name:
// "MessageId" and "MessageID" both become "message_id".
func SnakeCase(name string) string {
	runes := []rune(name)
	var sb strings.Builder
	for i, r := range runes {
		if unicode.IsUpper(r) {
			if i > 0 {
				prev := runes[i-1]
				nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
				if unicode.IsLower(prev) || unicode.IsDigit(prev) || (unicode.IsUpper(prev) && nextLower) {
					sb.WriteByte('_')
				}
			}
			sb.WriteRune(unicode.ToLower(r))
			continue
		}
		sb.WriteRune(r)
	}
	return sb.String()
}
