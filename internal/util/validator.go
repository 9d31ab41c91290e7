package util

import (
	"github.com/go-playground/validator/v10"
)

func NewValidator() *validator.Validate {
	validate := validator.New()
	validate.RegisterValidation("grade", grade)

	return validate
}

// grade accepts the empty string so optional grade filters validate without
// an extra omitempty tag at every use site.
func grade(fl validator.FieldLevel) bool {
	val := fl.Field().String()
	if val == "" {
		return true
	}
	return val == "A" || val == "B" || val == "C" || val == "D" || val == "F"
}
