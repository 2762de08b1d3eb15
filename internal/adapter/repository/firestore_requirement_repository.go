package repository

import (
	"context"

	"cloud.google.com/go/firestore"

	"b2bmarket/internal/domain/entity"
	"b2bmarket/internal/domain/repository"
	"b2bmarket/internal/infrastructure/live"
	"b2bmarket/pkg/errors"
)

type firestoreRequirementRepository struct {
	client *firestore.Client
}

func NewFirestoreRequirementRepository(client *firestore.Client) repository.RequirementRepository {
	return &firestoreRequirementRepository{
		client: client,
	}
}

var decodeRequirement = decodeWithID(func(r *entity.BuyerRequirement, id string) { r.ID = id })

func (r *firestoreRequirementRepository) Create(ctx context.Context, requirement *entity.BuyerRequirement) error {
	if requirement.InterestedSellers == nil {
		requirement.InterestedSellers = []string{}
	}
	ref := r.client.Collection(requirementsCollection).NewDoc()

	wr, err := ref.Create(ctx, requirement)
	if err != nil {
		return remoteError("create requirement", "Requirement", ref.ID, err)
	}

	requirement.ID = ref.ID
	requirement.CreatedAt = wr.UpdateTime
	return nil
}

func (r *firestoreRequirementRepository) GetByID(ctx context.Context, id string) (*entity.BuyerRequirement, error) {
	doc, err := r.client.Collection(requirementsCollection).Doc(id).Get(ctx)
	if err != nil {
		return nil, remoteError("get requirement", "Requirement", id, err)
	}

	requirement, err := decodeRequirement(doc)
	if err != nil {
		return nil, errors.Internal("Failed to parse requirement data", err)
	}
	return requirement, nil
}

func (r *firestoreRequirementRepository) query(filter repository.RequirementFilter) firestore.Query {
	query := r.client.Collection(requirementsCollection).Query
	if filter.BuyerID != "" {
		query = query.Where("buyerId", "==", filter.BuyerID)
	}
	return query.OrderBy("createdAt", firestore.Desc)
}

func (r *firestoreRequirementRepository) List(ctx context.Context, filter repository.RequirementFilter) ([]*entity.BuyerRequirement, error) {
	requirements, err := collect(r.query(filter).Documents(ctx), decodeRequirement)
	if err != nil {
		return nil, remoteError("list requirements", "Requirement", filter.BuyerID, err)
	}
	return requirements, nil
}

// AddInterestedSeller never reads the document first. Concurrent sellers
// are merged by the server.
func (r *firestoreRequirementRepository) AddInterestedSeller(ctx context.Context, id, sellerID string) error {
	_, err := r.client.Collection(requirementsCollection).Doc(id).Update(ctx, []firestore.Update{
		{Path: "interestedSellers", Value: firestore.ArrayUnion(sellerID)},
	})
	if err != nil {
		return remoteError("add interested seller", "Requirement", id, err)
	}
	return nil
}

func (r *firestoreRequirementRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.client.Collection(requirementsCollection).Doc(id).Delete(ctx, firestore.Exists); err != nil {
		return remoteError("delete requirement", "Requirement", id, err)
	}
	return nil
}

func (r *firestoreRequirementRepository) Watch(ctx context.Context, filter repository.RequirementFilter, h live.Handler[*entity.BuyerRequirement]) *live.Subscription {
	return watchQuery(ctx, r.query(filter), "watch requirements", decodeRequirement, h)
}
