package errors

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

// FromValidator turns struct-tag failures into a Validation error whose
// message is the first failing field and whose Fields hold all of them.
func FromValidator(errs validator.ValidationErrors) *AppError {
	fields := make(map[string]string, len(errs))
	message := "Invalid input data"
	for i, fe := range errs {
		msg := fieldMessage(fe)
		if i == 0 {
			message = msg
		}
		if _, seen := fields[fe.Field()]; !seen {
			fields[fe.Field()] = msg
		}
	}
	return Validation(message, fields)
}

func fieldMessage(fe validator.FieldError) string {
	field := fe.Field()
	param := fe.Param()

	switch fe.Tag() {
	case "required", "notblank":
		return field + " is required"
	case "min":
		return field + " must be at least " + param + " characters"
	case "max":
		return field + " must be at most " + param + " characters"
	case "gte":
		return field + " must be a non-negative number"
	case "oneof":
		return field + " must be one of: " + strings.ReplaceAll(param, "'", "")
	case "email":
		return field + " must be a valid email address"
	case "category":
		return field + " must be one of the listed categories"
	default:
		return field + " is invalid"
	}
}
