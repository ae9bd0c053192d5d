package entity

import (
	"time"

	"github.com/go-playground/validator/v10"

	"eventtickets/validation"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validation.New()
	if err := v.RegisterValidation("eventdate", IsEventDate); err != nil {
		panic(err)
	}
	return v
}

// IsEventDate accepts a non-zero time or a string ParseEventDate understands.
func IsEventDate(fl validator.FieldLevel) bool {
	switch value := fl.Field().Interface().(type) {
	case time.Time:
		return !value.IsZero()
	case string:
		_, ok := ParseEventDate(value)
		return ok
	default:
		return false
	}
}

func validateStruct(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	fields, ok := validation.Fields(err)
	if !ok {
		return err
	}
	return &ValidationError{Fields: fields}
}
