package rules

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"b2bmarket/internal/domain/entity"
	apperrors "b2bmarket/pkg/errors"
)

func TestOpenEnquiryDefaults(t *testing.T) {
	p := &entity.Product{ID: "p1", Name: "Lathe", SellerID: "s1"}
	buyer := &entity.UserProfile{ID: "b1", Name: "Ravi", Role: entity.RoleBuyer}

	e := OpenEnquiry(EnquiryInput{ProductID: "p1", Message: " Need 5 "}, p, buyer)

	assert.Equal(t, entity.EnquiryPending, e.Status)
	assert.Equal(t, entity.IntentExploring, e.IntentLevel)
	assert.Equal(t, "Lathe", e.ProductName)
	assert.Equal(t, "s1", e.SellerID)
	assert.Equal(t, "Need 5", e.Message)
	assert.Nil(t, e.RespondedAt)
}

func TestRespond(t *testing.T) {
	now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	e := &entity.Enquiry{Status: entity.EnquiryPending}

	require.NoError(t, Respond(e, now))
	assert.Equal(t, entity.EnquiryResponded, e.Status)
	require.NotNil(t, e.RespondedAt)
	assert.True(t, e.RespondedAt.Equal(now))

	err := Respond(e, now.Add(time.Hour))
	assert.True(t, apperrors.Is(err, apperrors.CodeInvalidTransition))
	assert.True(t, e.RespondedAt.Equal(now))

	closed := &entity.Enquiry{Status: entity.EnquiryClosed}
	assert.True(t, apperrors.Is(Respond(closed, now), apperrors.CodeInvalidTransition))
	assert.Nil(t, closed.RespondedAt)
}

func TestClose(t *testing.T) {
	for _, from := range []entity.EnquiryStatus{entity.EnquiryPending, entity.EnquiryResponded} {
		e := &entity.Enquiry{Status: from}
		require.NoError(t, Close(e, entity.ClosureDealClosed))
		assert.Equal(t, entity.EnquiryClosed, e.Status)
		assert.Equal(t, entity.ClosureDealClosed, e.ClosureReason)
	}

	e := &entity.Enquiry{Status: entity.EnquiryClosed, ClosureReason: entity.ClosureNoResponse}
	assert.True(t, apperrors.Is(Close(e, entity.ClosureDealClosed), apperrors.CodeInvalidTransition))
	assert.Equal(t, entity.ClosureNoResponse, e.ClosureReason)

	pending := &entity.Enquiry{Status: entity.EnquiryPending}
	assert.True(t, apperrors.IsValidation(Close(pending, "changed_mind")))
	assert.Equal(t, entity.EnquiryPending, pending.Status)
}

func TestSetSellerStatus(t *testing.T) {
	seller := &entity.UserProfile{Role: entity.RoleSeller, SellerStatus: entity.SellerAvailable}
	for _, s := range []entity.SellerStatus{entity.SellerUnavailable, entity.SellerDelayed, entity.SellerAvailable} {
		require.NoError(t, SetSellerStatus(seller, s))
		assert.Equal(t, s, seller.SellerStatus)
	}

	assert.True(t, apperrors.IsValidation(SetSellerStatus(seller, "busy")))

	buyer := &entity.UserProfile{Role: entity.RoleBuyer}
	assert.True(t, apperrors.Is(SetSellerStatus(buyer, entity.SellerDelayed), apperrors.CodeForbidden))
	assert.Empty(t, buyer.SellerStatus)
}

func TestNewProfile(t *testing.T) {
	seller := NewProfile("u1", RegistrationInput{Email: "S@X.io", Name: " Sam ", Role: entity.RoleSeller})
	assert.Equal(t, "s@x.io", seller.Email)
	assert.Equal(t, "Sam", seller.Name)
	assert.Equal(t, entity.SellerAvailable, seller.SellerStatus)

	buyer := NewProfile("u2", RegistrationInput{Email: "b@x.io", Name: "Bo", Role: entity.RoleBuyer})
	assert.Empty(t, buyer.SellerStatus)
}
