package telegram

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

func init() {
	validate.RegisterValidation("https", func(fl validator.FieldLevel) bool {
		u, err := url.Parse(fl.Field().String())
		return err == nil && strings.EqualFold(u.Scheme, "https")
	})
}

// ChatActions lists the values sendChatAction accepts.
var ChatActions = []string{
	"typing",
	"upload_photo",
	"record_video",
	"upload_video",
	"record_audio",
	"upload_audio",
	"upload_document",
	"find_location",
	"record_video_note",
	"upload_video_note",
}

type chatActionRule struct {
	Action string `validate:"required,oneof=typing upload_photo record_video upload_video record_audio upload_audio upload_document find_location record_video_note upload_video_note"`
}

type webhookRule struct {
	URL string `validate:"required,url,https"`
}

// checkStruct runs the validator and maps its errors to wire field names.
func checkStruct(method string, rule any, names map[string]string) error {
	err := validate.Struct(rule)
	if err == nil {
		return nil
	}
	var valErrs validator.ValidationErrors
	if !errors.As(err, &valErrs) {
		return &ValidationError{Method: method, Fields: map[string]string{"params": err.Error()}, Err: err}
	}
	fields := make(map[string]string, len(valErrs))
	for _, fe := range valErrs {
		name := names[fe.Field()]
		if name == "" {
			name = fe.Field()
		}
		fields[name] = formatValidationError(fe)
	}
	return &ValidationError{Method: method, Fields: fields, Err: err}
}

// formatValidationError converts a validator.FieldError to a human-readable message.
func formatValidationError(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "required"
	case "url":
		return "invalid URL"
	case "https":
		return "invalid URL, should be an HTTPS URL"
	case "oneof":
		return "must be one of: " + strings.Join(strings.Fields(fe.Param()), ", ")
	default:
		if fe.Param() != "" {
			return fmt.Sprintf("failed %s=%s validation", fe.Tag(), fe.Param())
		}
		return fmt.Sprintf("failed %s validation", fe.Tag())
	}
}

func validateChatAction(p Params) error {
	action, _ := p["action"].(string)
	return checkStruct("sendChatAction", chatActionRule{Action: action}, map[string]string{"Action": "action"})
}

func validateWebhook(p Params) error {
	raw, ok := p["url"]
	if !ok {
		return invalidParam("setWebhook", "url", "required")
	}
	u, ok := raw.(string)
	if !ok {
		return invalidParam("setWebhook", "url", "must be a string")
	}
	return checkStruct("setWebhook", webhookRule{URL: u}, map[string]string{"URL": "url"})
}
