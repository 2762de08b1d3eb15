// Package rules holds the marketplace's pure rules: form validation, derived
// display values, and the enquiry and seller-status state transitions. Nothing
// here touches the document store.
package rules

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"b2bmarket/internal/domain/entity"
	apperrors "b2bmarket/pkg/errors"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report fields by their JSON names so messages match the request body.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	v.RegisterValidation("category", func(fl validator.FieldLevel) bool {
		return entity.IsCategory(fl.Field().String())
	})

	return v
}

// Validator exposes the configured instance so the HTTP layer binds with the
// same tags and messages.
func Validator() *validator.Validate {
	return validate
}

// Struct validates v against its tags and converts failures into a
// Validation error.
func Struct(v interface{}) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		return apperrors.FromValidator(ve)
	}
	return apperrors.BadRequest("Invalid input data", err)
}
