package repository

import (
	"context"

	"b2bmarket/internal/domain/entity"
	"b2bmarket/internal/infrastructure/live"
)

// ProductFilter holds equality predicates. Empty fields match everything.
type ProductFilter struct {
	Category string
	SellerID string
}

// ProductRepository stores products. List and Watch return newest first.
type ProductRepository interface {
	// Create assigns the id and the server creation time to product.
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	List(ctx context.Context, filter ProductFilter) ([]*entity.Product, error)
	// Update writes the seller-editable fields of an existing product.
	Update(ctx context.Context, product *entity.Product) error
	Delete(ctx context.Context, id string) error
	Watch(ctx context.Context, filter ProductFilter, h live.Handler[*entity.Product]) *live.Subscription
}
