package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"b2bmarket/internal/domain/entity"
	apperrors "b2bmarket/pkg/errors"
)

func TestValidateRegistration(t *testing.T) {
	ok := RegistrationInput{Email: "a@b.co", Password: "secret1", Name: "Asha", Role: entity.RoleSeller}
	assert.NoError(t, ValidateRegistration(ok))

	tests := []struct {
		name string
		edit func(*RegistrationInput)
		code string
	}{
		{"bad email", func(r *RegistrationInput) { r.Email = "not-an-email" }, apperrors.CodeInvalidEmail},
		{"short password", func(r *RegistrationInput) { r.Password = "12345" }, apperrors.CodeWeakCredential},
		{"short name", func(r *RegistrationInput) { r.Name = " A " }, apperrors.CodeValidation},
		{"unknown role", func(r *RegistrationInput) { r.Role = "admin" }, apperrors.CodeValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := ok
			tt.edit(&in)
			err := ValidateRegistration(in)
			assert.True(t, apperrors.Is(err, tt.code), "got %v", err)
		})
	}
}

func TestValidateLogin(t *testing.T) {
	assert.NoError(t, ValidateLogin("a@b.co", "x"))
	assert.True(t, apperrors.Is(ValidateLogin("nope", "x"), apperrors.CodeInvalidEmail))
	assert.True(t, apperrors.IsValidation(ValidateLogin("a@b.co", "")))
}

func TestValidateRequirement(t *testing.T) {
	assert.NoError(t, ValidateRequirement(RequirementInput{ProductNeeded: "Steel coils"}))

	err := ValidateRequirement(RequirementInput{ProductNeeded: "  ", Quantity: "10 tons"})
	fields := fieldOf(t, err)
	assert.Contains(t, fields, "productNeeded")
}

func TestApplyRequirementStartsWithNoInterest(t *testing.T) {
	r := &entity.BuyerRequirement{}
	ApplyRequirement(RequirementInput{ProductNeeded: " Steel "}, r)
	assert.Equal(t, "Steel", r.ProductNeeded)
	assert.NotNil(t, r.InterestedSellers)
	assert.Empty(t, r.InterestedSellers)
}

func TestValidateEnquiry(t *testing.T) {
	assert.NoError(t, ValidateEnquiry(EnquiryInput{ProductID: "p1", Message: "Need 50 units"}))

	fields := fieldOf(t, ValidateEnquiry(EnquiryInput{ProductID: "p1", Message: " "}))
	assert.Contains(t, fields, "message")

	fields = fieldOf(t, ValidateEnquiry(EnquiryInput{ProductID: "p1", Message: "hi", IntentLevel: "someday"}))
	assert.Contains(t, fields, "intentLevel")
}

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "asha@example.com", NormalizeEmail("  Asha@Example.com "))
}

func TestValidateImage(t *testing.T) {
	assert.NoError(t, ValidateImage("image/png", 1024))
	assert.True(t, apperrors.IsValidation(ValidateImage("application/pdf", 1024)))
	assert.True(t, apperrors.IsValidation(ValidateImage("image/png", MaxImageBytes+1)))
	assert.True(t, apperrors.IsValidation(ValidateImage("image/png", 0)))
}
