package telegram

import (
	"encoding/json"
	"fmt"
	"maps"
	"reflect"
	"slices"
	"strconv"

	"github.com/gorilla/schema"
)

// Params are the parameters of one API call, keyed by wire name.
//
// Values may be strings, numbers, booleans, io.Readers or inputfile.Files
// (for file parameters), or any JSON-encodable value (reply_markup, media
// lists, objects) which is sent as a JSON string.
type Params map[string]any

// TokenParam overrides the client token for one call. It is removed from the
// parameters before they are sent.
const TokenParam = "_AccessToken_"

func (p Params) clone() Params {
	if p == nil {
		return Params{}
	}
	return maps.Clone(p)
}

var paramsEncoder = schema.NewEncoder()

func init() {
	paramsEncoder.SetAliasTag("json")
	jsonField := func(v reflect.Value) string {
		data, err := json.Marshal(v.Interface())
		if err != nil {
			return ""
		}
		return string(data)
	}
	paramsEncoder.RegisterEncoder(map[string]any{}, jsonField)
	paramsEncoder.RegisterEncoder([]any{}, jsonField)
	paramsEncoder.RegisterEncoder([][]InlineKeyboardButton{}, jsonField)
	paramsEncoder.RegisterEncoder(InlineKeyboardMarkup{}, jsonField)
}

// ParamsFrom encodes a struct with json-tagged fields into Params. Use the
// omitempty option on optional fields so zero values are not sent.
func ParamsFrom(v any) (Params, error) {
	values := map[string][]string{}
	if err := paramsEncoder.Encode(v, values); err != nil {
		return nil, fmt.Errorf("telegram: encode params: %w", err)
	}
	p := make(Params, len(values))
	for k, vs := range values {
		if len(vs) == 1 {
			p[k] = vs[0]
			continue
		}
		p[k] = vs
	}
	return p, nil
}

// InlineKeyboardButton is one button of an inline keyboard.
type InlineKeyboardButton struct {
	Text         string `json:"text"`
	URL          string `json:"url,omitempty"`
	CallbackData string `json:"callback_data,omitempty"`
}

// InlineKeyboardMarkup is a reply_markup value.
type InlineKeyboardMarkup struct {
	InlineKeyboard [][]InlineKeyboardButton `json:"inline_keyboard"`
}

// encodeValue renders a non-file parameter as its wire string. ok is false
// for nil values, which are not sent.
func encodeValue(v any) (s string, ok bool, err error) {
	switch x := v.(type) {
	case nil:
		return "", false, nil
	case string:
		return x, true, nil
	case []byte:
		return string(x), true, nil
	case bool:
		return strconv.FormatBool(x), true, nil
	case int:
		return strconv.Itoa(x), true, nil
	case int32:
		return strconv.FormatInt(int64(x), 10), true, nil
	case int64:
		return strconv.FormatInt(x, 10), true, nil
	case uint:
		return strconv.FormatUint(uint64(x), 10), true, nil
	case uint64:
		return strconv.FormatUint(x, 10), true, nil
	case float32:
		return strconv.FormatFloat(float64(x), 'f', -1, 32), true, nil
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64), true, nil
	case json.Number:
		return x.String(), true, nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return "", false, err
	}
	return string(data), true, nil
}

func sortedKeys[V any](m map[string]V) []string {
	return slices.Sorted(maps.Keys(m))
}
