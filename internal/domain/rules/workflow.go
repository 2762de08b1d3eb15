package rules

import (
	"strings"
	"time"

	"b2bmarket/internal/domain/entity"
	apperrors "b2bmarket/pkg/errors"
)

// OpenEnquiry builds a new pending enquiry from a validated form. Product
// name and seller are copied from the product.
func OpenEnquiry(in EnquiryInput, p *entity.Product, buyer *entity.UserProfile) *entity.Enquiry {
	intent := in.IntentLevel
	if intent == "" {
		intent = entity.IntentExploring
	}
	return &entity.Enquiry{
		ProductID:   p.ID,
		ProductName: p.Name,
		BuyerID:     buyer.ID,
		BuyerName:   buyer.Name,
		SellerID:    p.SellerID,
		Message:     strings.TrimSpace(in.Message),
		IntentLevel: intent,
		Status:      entity.EnquiryPending,
	}
}

// Respond moves a pending enquiry to responded and stamps RespondedAt.
// Responding twice is rejected rather than ignored so the seller sees that
// nothing changed.
func Respond(e *entity.Enquiry, at time.Time) error {
	switch e.Status {
	case entity.EnquiryPending:
		t := at
		e.Status = entity.EnquiryResponded
		e.RespondedAt = &t
		return nil
	case entity.EnquiryResponded:
		return apperrors.InvalidTransition("Enquiry has already been responded to")
	case entity.EnquiryClosed:
		return apperrors.InvalidTransition("Enquiry is closed")
	}
	return apperrors.InvalidTransition("Enquiry has an unknown status")
}

func ValidateClosureReason(reason entity.ClosureReason) error {
	if !reason.Valid() {
		return apperrors.FieldError("closureReason", "closureReason must be one of: deal_closed not_interested no_response")
	}
	return nil
}

// Close ends an enquiry with the buyer's reason. Closed is terminal.
func Close(e *entity.Enquiry, reason entity.ClosureReason) error {
	if err := ValidateClosureReason(reason); err != nil {
		return err
	}
	switch e.Status {
	case entity.EnquiryPending, entity.EnquiryResponded:
		e.Status = entity.EnquiryClosed
		e.ClosureReason = reason
		return nil
	case entity.EnquiryClosed:
		return apperrors.InvalidTransition("Enquiry is already closed")
	}
	return apperrors.InvalidTransition("Enquiry has an unknown status")
}

// SetSellerStatus changes a seller's availability. Any status may follow
// any other.
func SetSellerStatus(u *entity.UserProfile, status entity.SellerStatus) error {
	if !u.IsSeller() {
		return apperrors.Forbidden("Only sellers have an availability status", nil)
	}
	if !status.Valid() {
		return apperrors.FieldError("status", "status must be one of: available delayed unavailable")
	}
	u.SellerStatus = status
	return nil
}

// NewProfile is the users/{id} record written at signup.
func NewProfile(uid string, in RegistrationInput) *entity.UserProfile {
	u := &entity.UserProfile{
		ID:    uid,
		Email: NormalizeEmail(in.Email),
		Name:  strings.TrimSpace(in.Name),
		Role:  in.Role,
	}
	if in.Role == entity.RoleSeller {
		u.SellerStatus = entity.SellerAvailable
	}
	return u
}
