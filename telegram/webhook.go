package telegram

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/edouard/tgbind/telegram/objects"
)

// maxUpdateSize bounds the webhook body read by WebhookUpdate.
const maxUpdateSize = 1 << 20

// ParseUpdate decodes one webhook update body. Invalid JSON is an error; a
// valid body that is not a JSON object yields an empty update.
func ParseUpdate(r io.Reader) (*objects.Update, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("telegram: parse update: %w", err)
	}
	return objects.AsUpdate(objects.Hydrate(objects.KindUpdate, v)), nil
}

// WebhookUpdate decodes the update carried by an incoming webhook request.
func (c *Client) WebhookUpdate(r *http.Request) (*objects.Update, error) {
	defer r.Body.Close()
	return ParseUpdate(io.LimitReader(r.Body, maxUpdateSize))
}
