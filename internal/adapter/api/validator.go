package api

import (
	"github.com/go-playground/validator/v10"

	"b2bmarket/internal/domain/rules"
)

// CustomValidator plugs the domain validator into Echo's c.Validate.
type CustomValidator struct {
	validator *validator.Validate
}

func NewValidator() *CustomValidator {
	return &CustomValidator{
		validator: rules.Validator(),
	}
}

func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
