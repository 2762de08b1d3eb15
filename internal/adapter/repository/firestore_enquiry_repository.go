package repository

import (
	"context"

	"cloud.google.com/go/firestore"

	"b2bmarket/internal/domain/entity"
	"b2bmarket/internal/domain/repository"
	"b2bmarket/internal/infrastructure/live"
	"b2bmarket/pkg/errors"
)

type firestoreEnquiryRepository struct {
	client *firestore.Client
}

func NewFirestoreEnquiryRepository(client *firestore.Client) repository.EnquiryRepository {
	return &firestoreEnquiryRepository{
		client: client,
	}
}

var decodeEnquiry = decodeWithID(func(e *entity.Enquiry, id string) { e.ID = id })

func (r *firestoreEnquiryRepository) Create(ctx context.Context, enquiry *entity.Enquiry) error {
	ref := r.client.Collection(enquiriesCollection).NewDoc()

	wr, err := ref.Create(ctx, enquiry)
	if err != nil {
		return remoteError("create enquiry", "Enquiry", ref.ID, err)
	}

	enquiry.ID = ref.ID
	enquiry.CreatedAt = wr.UpdateTime
	return nil
}

func (r *firestoreEnquiryRepository) GetByID(ctx context.Context, id string) (*entity.Enquiry, error) {
	doc, err := r.client.Collection(enquiriesCollection).Doc(id).Get(ctx)
	if err != nil {
		return nil, remoteError("get enquiry", "Enquiry", id, err)
	}

	enquiry, err := decodeEnquiry(doc)
	if err != nil {
		return nil, errors.Internal("Failed to parse enquiry data", err)
	}
	return enquiry, nil
}

func (r *firestoreEnquiryRepository) query(filter repository.EnquiryFilter) firestore.Query {
	query := r.client.Collection(enquiriesCollection).Query
	if filter.SellerID != "" {
		query = query.Where("sellerId", "==", filter.SellerID)
	}
	if filter.BuyerID != "" {
		query = query.Where("buyerId", "==", filter.BuyerID)
	}
	return query.OrderBy("createdAt", firestore.Desc)
}

func (r *firestoreEnquiryRepository) List(ctx context.Context, filter repository.EnquiryFilter) ([]*entity.Enquiry, error) {
	enquiries, err := collect(r.query(filter).Documents(ctx), decodeEnquiry)
	if err != nil {
		return nil, remoteError("list enquiries", "Enquiry", filter.SellerID+filter.BuyerID, err)
	}
	return enquiries, nil
}

func (r *firestoreEnquiryRepository) UpdateStatus(ctx context.Context, enquiry *entity.Enquiry, from entity.EnquiryStatus) error {
	updates := []firestore.Update{
		{Path: "status", Value: string(enquiry.Status)},
	}
	if enquiry.ClosureReason != "" {
		updates = append(updates, firestore.Update{Path: "closureReason", Value: string(enquiry.ClosureReason)})
	}
	if enquiry.RespondedAt != nil {
		updates = append(updates, firestore.Update{Path: "respondedAt", Value: *enquiry.RespondedAt})
	}

	ref := r.client.Collection(enquiriesCollection).Doc(enquiry.ID)
	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		doc, err := tx.Get(ref)
		if err != nil {
			return err
		}

		current, err := decodeEnquiry(doc)
		if err != nil {
			return errors.Internal("Failed to parse enquiry data", err)
		}
		if current.Status != from {
			return staleTransition(current.Status)
		}

		return tx.Update(ref, updates)
	})
	if err != nil {
		if errors.Is(err, errors.CodeInvalidTransition) || errors.Is(err, errors.CodeInternal) {
			return err
		}
		return remoteError("update enquiry", "Enquiry", enquiry.ID, err)
	}
	return nil
}

func staleTransition(current entity.EnquiryStatus) error {
	return errors.InvalidTransition("Enquiry is now " + current.Label() + ", please refresh")
}

func (r *firestoreEnquiryRepository) Watch(ctx context.Context, filter repository.EnquiryFilter, h live.Handler[*entity.Enquiry]) *live.Subscription {
	return watchQuery(ctx, r.query(filter), "watch enquiries", decodeEnquiry, h)
}
