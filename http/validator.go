package http

import (
	"github.com/go-playground/validator/v10"

	"eventtickets/entity"
	"eventtickets/validation"
)

type requestValidator struct {
	validate *validator.Validate
}

func newRequestValidator() *requestValidator {
	validate := validation.New()
	if err := validate.RegisterValidation("eventdate", entity.IsEventDate); err != nil {
		panic(err)
	}

	return &requestValidator{validate: validate}
}

func (v *requestValidator) Validate(i any) error {
	return v.validate.Struct(i)
}

func (v *requestValidator) IsUUID(value string) bool {
	return v.validate.Var(value, "required,uuid") == nil
}

// fieldErrors maps every failed field to the message shown by the form.
func fieldErrors(err error) (map[string]string, bool) {
	return validation.Fields(err)
}
