package errors

import (
	"errors"
	"fmt"
	"net/http"
)

const (
	CodeValidation         = "VALIDATION_ERROR"
	CodeNotFound           = "NOT_FOUND"
	CodeUnauthorized       = "UNAUTHORIZED"
	CodeForbidden          = "FORBIDDEN"
	CodeConflict           = "CONFLICT"
	CodeInvalidTransition  = "INVALID_TRANSITION"
	CodeSellerUnavailable  = "SELLER_UNAVAILABLE"
	CodeRemoteOperation    = "REMOTE_OPERATION_FAILED"
	CodeInternal           = "INTERNAL_ERROR"
	CodeTooManyRequests    = "TOO_MANY_REQUESTS"
	CodeDuplicateAccount   = "AUTH_DUPLICATE_ACCOUNT"
	CodeWeakCredential     = "AUTH_WEAK_CREDENTIAL"
	CodeInvalidEmail       = "AUTH_INVALID_EMAIL"
	CodeInvalidCredentials = "AUTH_INVALID_CREDENTIALS"
	CodeAuthRateLimited    = "AUTH_TOO_MANY_REQUESTS"
)

// RemoteFailureMessage is what users see for any failed call into the
// document store or identity provider. They retry by repeating the action.
const RemoteFailureMessage = "Something went wrong. Please try again."

type AppError struct {
	Code    string
	Message string
	Status  int
	Err     error
	// Fields holds per-field messages for validation failures.
	Fields map[string]string
}

func (e *AppError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func New(code string, message string, status int, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Status:  status,
		Err:     err,
	}
}

// Validation reports malformed or missing input. It is raised before any
// remote call is made.
func Validation(message string, fields map[string]string) *AppError {
	return &AppError{
		Code:    CodeValidation,
		Message: message,
		Status:  http.StatusBadRequest,
		Fields:  fields,
	}
}

// FieldError is a Validation error for a single field.
func FieldError(field, message string) *AppError {
	return Validation(message, map[string]string{field: message})
}

func NotFound(resource string, err error) *AppError {
	return &AppError{
		Code:    CodeNotFound,
		Message: fmt.Sprintf("%s not found", resource),
		Status:  http.StatusNotFound,
		Err:     err,
	}
}

func BadRequest(message string, err error) *AppError {
	return &AppError{
		Code:    CodeValidation,
		Message: message,
		Status:  http.StatusBadRequest,
		Err:     err,
	}
}

func Unauthorized(message string, err error) *AppError {
	return &AppError{
		Code:    CodeUnauthorized,
		Message: message,
		Status:  http.StatusUnauthorized,
		Err:     err,
	}
}

func Forbidden(message string, err error) *AppError {
	return &AppError{
		Code:    CodeForbidden,
		Message: message,
		Status:  http.StatusForbidden,
		Err:     err,
	}
}

func Conflict(message string) *AppError {
	return &AppError{
		Code:    CodeConflict,
		Message: message,
		Status:  http.StatusConflict,
	}
}

func InvalidTransition(message string) *AppError {
	return &AppError{
		Code:    CodeInvalidTransition,
		Message: message,
		Status:  http.StatusConflict,
	}
}

func SellerUnavailable() *AppError {
	return &AppError{
		Code:    CodeSellerUnavailable,
		Message: "This seller is not accepting enquiries right now",
		Status:  http.StatusConflict,
	}
}

// Remote wraps any failure of the document store or identity provider.
// The operation is kept for logs only; the user sees a generic message.
func Remote(op string, err error) *AppError {
	return &AppError{
		Code:    CodeRemoteOperation,
		Message: RemoteFailureMessage,
		Status:  http.StatusBadGateway,
		Err:     fmt.Errorf("%s: %w", op, err),
	}
}

func Internal(message string, err error) *AppError {
	return &AppError{
		Code:    CodeInternal,
		Message: message,
		Status:  http.StatusInternalServerError,
		Err:     err,
	}
}

func TooManyRequests(message string) *AppError {
	return &AppError{
		Code:    CodeTooManyRequests,
		Message: message,
		Status:  http.StatusTooManyRequests,
	}
}

func DuplicateAccount(err error) *AppError {
	return &AppError{
		Code:    CodeDuplicateAccount,
		Message: "This email is already registered. Please sign in instead.",
		Status:  http.StatusConflict,
		Err:     err,
	}
}

func WeakCredential(err error) *AppError {
	return &AppError{
		Code:    CodeWeakCredential,
		Message: "Password should be at least 6 characters.",
		Status:  http.StatusBadRequest,
		Err:     err,
	}
}

func InvalidEmail(err error) *AppError {
	return &AppError{
		Code:    CodeInvalidEmail,
		Message: "Please enter a valid email address.",
		Status:  http.StatusBadRequest,
		Err:     err,
	}
}

func InvalidCredentials(err error) *AppError {
	return &AppError{
		Code:    CodeInvalidCredentials,
		Message: "Invalid email or password.",
		Status:  http.StatusUnauthorized,
		Err:     err,
	}
}

func AuthRateLimited(err error) *AppError {
	return &AppError{
		Code:    CodeAuthRateLimited,
		Message: "Too many failed attempts. Please try again later.",
		Status:  http.StatusTooManyRequests,
		Err:     err,
	}
}

func Is(err error, code string) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}

func IsValidation(err error) bool {
	return Is(err, CodeValidation)
}

func IsRemote(err error) bool {
	return Is(err, CodeRemoteOperation)
}

func IsNotFound(err error) bool {
	return Is(err, CodeNotFound)
}

// IsAuth reports whether err is one of the AuthError sub-kinds.
func IsAuth(err error) bool {
	var appErr *AppError
	if !errors.As(err, &appErr) {
		return false
	}
	switch appErr.Code {
	case CodeDuplicateAccount, CodeWeakCredential, CodeInvalidEmail,
		CodeInvalidCredentials, CodeAuthRateLimited, CodeUnauthorized:
		return true
	}
	return false
}
