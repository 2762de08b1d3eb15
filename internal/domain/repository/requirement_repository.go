package repository

import (
	"context"

	"b2bmarket/internal/domain/entity"
	"b2bmarket/internal/infrastructure/live"
)

type RequirementFilter struct {
	BuyerID string
}

type RequirementRepository interface {
	Create(ctx context.Context, requirement *entity.BuyerRequirement) error
	GetByID(ctx context.Context, id string) (*entity.BuyerRequirement, error)
	List(ctx context.Context, filter RequirementFilter) ([]*entity.BuyerRequirement, error)
	// AddInterestedSeller is an atomic set union on interestedSellers.
	// Adding the same seller twice leaves one entry.
	AddInterestedSeller(ctx context.Context, id, sellerID string) error
	Delete(ctx context.Context, id string) error
	Watch(ctx context.Context, filter RequirementFilter, h live.Handler[*entity.BuyerRequirement]) *live.Subscription
}
