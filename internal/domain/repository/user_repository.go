package repository

import (
	"context"

	"b2bmarket/internal/domain/entity"
	"b2bmarket/internal/infrastructure/live"
)

type UserRepository interface {
	// Create writes users/{user.ID}. The id comes from the identity provider.
	Create(ctx context.Context, user *entity.UserProfile) error
	GetByID(ctx context.Context, id string) (*entity.UserProfile, error)
	GetByEmail(ctx context.Context, email string) (*entity.UserProfile, error)
	UpdateSellerStatus(ctx context.Context, id string, status entity.SellerStatus) error
	// Watch delivers the profile as a one-item snapshot, or an empty one
	// while the document does not exist.
	Watch(ctx context.Context, id string, h live.Handler[*entity.UserProfile]) *live.Subscription
}
