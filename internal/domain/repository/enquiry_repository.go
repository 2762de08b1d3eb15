package repository

import (
	"context"

	"b2bmarket/internal/domain/entity"
	"b2bmarket/internal/infrastructure/live"
)

type EnquiryFilter struct {
	SellerID string
	BuyerID  string
}

type EnquiryRepository interface {
	Create(ctx context.Context, enquiry *entity.Enquiry) error
	GetByID(ctx context.Context, id string) (*entity.Enquiry, error)
	List(ctx context.Context, filter EnquiryFilter) ([]*entity.Enquiry, error)
	// UpdateStatus writes status, closureReason and respondedAt only while
	// the stored status is still from. Otherwise it returns INVALID_TRANSITION
	// and writes nothing.
	UpdateStatus(ctx context.Context, enquiry *entity.Enquiry, from entity.EnquiryStatus) error
	Watch(ctx context.Context, filter EnquiryFilter, h live.Handler[*entity.Enquiry]) *live.Subscription
}
