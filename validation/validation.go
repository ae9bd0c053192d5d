package validation

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// messages holds the texts shown by the forms, keyed by "<json field>.<tag>".
var messages = map[string]string{
	"name.required":         "Event name is required",
	"date.eventdate":        "Invalid date",
	"location.required":     "Location is required",
	"description.min":       "Description must be at least 10 characters",
	"availableTickets.gte":  "Must have at least 1 ticket available",
	"maxPerPerson.gte":      "Maximum tickets per person must be 1 or more",
	"price.gte":             "Price must be 0 or more",
	"tickets.gte":           "must be a positive number",
	"idempotencyKey.replay": "was already used for a different booking",
}

// New returns a validator reporting fields by their JSON names.
func New() *validator.Validate {
	validate := validator.New()

	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return validate
}

// Fields maps every failed field to its message. ok is false when err does
// not come from struct validation.
func Fields(err error) (fields map[string]string, ok bool) {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return nil, false
	}

	fields = make(map[string]string, len(validationErrors))
	for _, fieldErr := range validationErrors {
		fields[fieldErr.Field()] = Message(fieldErr.Field(), fieldErr.Tag(), fieldErr.Param())
	}

	return fields, true
}

// Message returns the text for a field failing the given rule.
func Message(field, tag, param string) string {
	if msg, ok := messages[field+"."+tag]; ok {
		return msg
	}

	switch tag {
	case "required":
		return "is required"
	case "gt":
		return "must be greater than " + param
	case "email":
		return "must be a valid email"
	default:
		return "failed on " + tag
	}
}
