package repository

import (
	"context"

	"cloud.google.com/go/firestore"

	"b2bmarket/internal/domain/entity"
	"b2bmarket/internal/domain/repository"
	"b2bmarket/internal/infrastructure/live"
	"b2bmarket/pkg/errors"
)

type firestoreProductRepository struct {
	client *firestore.Client
}

func NewFirestoreProductRepository(client *firestore.Client) repository.ProductRepository {
	return &firestoreProductRepository{
		client: client,
	}
}

var decodeProduct = decodeWithID(func(p *entity.Product, id string) { p.ID = id })

func (r *firestoreProductRepository) Create(ctx context.Context, product *entity.Product) error {
	ref := r.client.Collection(productsCollection).NewDoc()

	wr, err := ref.Create(ctx, product)
	if err != nil {
		return remoteError("create product", "Product", ref.ID, err)
	}

	product.ID = ref.ID
	product.CreatedAt = wr.UpdateTime
	return nil
}

func (r *firestoreProductRepository) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	doc, err := r.client.Collection(productsCollection).Doc(id).Get(ctx)
	if err != nil {
		return nil, remoteError("get product", "Product", id, err)
	}

	product, err := decodeProduct(doc)
	if err != nil {
		return nil, errors.Internal("Failed to parse product data", err)
	}
	return product, nil
}

func (r *firestoreProductRepository) query(filter repository.ProductFilter) firestore.Query {
	query := r.client.Collection(productsCollection).Query
	if filter.Category != "" {
		query = query.Where("category", "==", filter.Category)
	}
	if filter.SellerID != "" {
		query = query.Where("sellerId", "==", filter.SellerID)
	}
	return query.OrderBy("createdAt", firestore.Desc)
}

func (r *firestoreProductRepository) List(ctx context.Context, filter repository.ProductFilter) ([]*entity.Product, error) {
	products, err := collect(r.query(filter).Documents(ctx), decodeProduct)
	if err != nil {
		return nil, remoteError("list products", "Product", filter.SellerID, err)
	}
	return products, nil
}

func (r *firestoreProductRepository) Update(ctx context.Context, product *entity.Product) error {
	updates := []firestore.Update{
		{Path: "name", Value: product.Name},
		{Path: "category", Value: product.Category},
		{Path: "description", Value: product.Description},
		{Path: "priceType", Value: string(product.PriceType)},
		{Path: "price", Value: optionalFloat(product.Price)},
		{Path: "priceMin", Value: optionalFloat(product.PriceMin)},
		{Path: "priceMax", Value: optionalFloat(product.PriceMax)},
		{Path: "sellerName", Value: product.SellerName},
		{Path: "sellerStatus", Value: string(product.SellerStatus)},
	}
	if product.Image != "" {
		updates = append(updates, firestore.Update{Path: "image", Value: product.Image})
	} else {
		updates = append(updates, firestore.Update{Path: "image", Value: firestore.Delete})
	}

	if _, err := r.client.Collection(productsCollection).Doc(product.ID).Update(ctx, updates); err != nil {
		return remoteError("update product", "Product", product.ID, err)
	}
	return nil
}

func (r *firestoreProductRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.client.Collection(productsCollection).Doc(id).Delete(ctx, firestore.Exists); err != nil {
		return remoteError("delete product", "Product", id, err)
	}
	return nil
}

func (r *firestoreProductRepository) Watch(ctx context.Context, filter repository.ProductFilter, h live.Handler[*entity.Product]) *live.Subscription {
	return watchQuery(ctx, r.query(filter), "watch products", decodeProduct, h)
}
