package rules

import (
	"strings"
	"unicode/utf8"

	"b2bmarket/internal/domain/entity"
	apperrors "b2bmarket/pkg/errors"
)

const (
	MinPasswordLength = 6
	MinNameLength     = 2
)

type RequirementInput struct {
	ProductNeeded string `json:"productNeeded" validate:"notblank"`
	Quantity      string `json:"quantity"`
	Location      string `json:"location"`
	Timeline      string `json:"timeline"`
	Description   string `json:"description"`
}

func ValidateRequirement(in RequirementInput) error {
	return Struct(in)
}

// ApplyRequirement copies a validated form onto r. Interest starts empty.
func ApplyRequirement(in RequirementInput, r *entity.BuyerRequirement) {
	r.ProductNeeded = strings.TrimSpace(in.ProductNeeded)
	r.Quantity = strings.TrimSpace(in.Quantity)
	r.Location = strings.TrimSpace(in.Location)
	r.Timeline = strings.TrimSpace(in.Timeline)
	r.Description = strings.TrimSpace(in.Description)
	r.InterestedSellers = []string{}
}

type EnquiryInput struct {
	ProductID   string             `json:"productId" validate:"notblank"`
	Message     string             `json:"message" validate:"notblank"`
	IntentLevel entity.IntentLevel `json:"intentLevel" validate:"omitempty,oneof=urgent bulk exploring"`
}

func ValidateEnquiry(in EnquiryInput) error {
	return Struct(in)
}

type RegistrationInput struct {
	Email    string          `json:"email"`
	Password string          `json:"password"`
	Name     string          `json:"name"`
	Role     entity.UserRole `json:"role"`
}

// ValidateRegistration applies the signup policy. Email and password
// problems are reported as their auth sub-kinds so the form can show the
// provider's wording.
func ValidateRegistration(in RegistrationInput) error {
	if !ValidEmail(in.Email) {
		return apperrors.InvalidEmail(nil)
	}
	if len(in.Password) < MinPasswordLength {
		return apperrors.WeakCredential(nil)
	}
	if utf8.RuneCountInString(strings.TrimSpace(in.Name)) < MinNameLength {
		return apperrors.FieldError("name", "Name must be at least 2 characters")
	}
	if !in.Role.Valid() {
		return apperrors.FieldError("role", "role must be one of: buyer seller")
	}
	return nil
}

func ValidateLogin(email, password string) error {
	if !ValidEmail(email) {
		return apperrors.InvalidEmail(nil)
	}
	if password == "" {
		return apperrors.FieldError("password", "password is required")
	}
	return nil
}

func ValidEmail(email string) bool {
	return validate.Var(strings.TrimSpace(email), "required,email") == nil
}

// NormalizeEmail is the form of an address used for storage and lookups.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// MaxImageBytes bounds product image uploads.
const MaxImageBytes = 5 << 20

var imageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

func ValidateImage(contentType string, size int64) error {
	if !imageTypes[contentType] {
		return apperrors.FieldError("image", "image must be a JPEG, PNG, GIF or WebP file")
	}
	if size <= 0 || size > MaxImageBytes {
		return apperrors.FieldError("image", "image must be at most 5 MB")
	}
	return nil
}
