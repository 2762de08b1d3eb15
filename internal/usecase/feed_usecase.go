package usecase

import (
	"context"

	"b2bmarket/internal/domain/entity"
	"b2bmarket/internal/domain/repository"
	"b2bmarket/internal/domain/rules"
	"b2bmarket/internal/infrastructure/live"
	"b2bmarket/pkg/errors"
)

// Feed names accepted over the WebSocket.
const (
	FeedProducts          = "products"
	FeedMyProducts        = "my-products"
	FeedEnquiriesReceived = "enquiries-received"
	FeedEnquiriesSent     = "enquiries-sent"
	FeedRequirements      = "requirements"
	FeedMyRequirements    = "my-requirements"
	FeedProfile           = "profile"
)

// FeedUpdate is one pushed frame.
type FeedUpdate struct {
	Type    string      `json:"type"`
	Feed    string      `json:"feed"`
	Items   interface{} `json:"items"`
	Loading bool        `json:"loading"`
	Error   string      `json:"error,omitempty"`
}

// Feed is a started-or-stopped live view.
type Feed interface {
	Start()
	Stop()
}

type FeedUseCase struct {
	productRepo     repository.ProductRepository
	enquiryRepo     repository.EnquiryRepository
	requirementRepo repository.RequirementRepository
	userRepo        repository.UserRepository
	products        *ProductUseCase
}

func NewFeedUseCase(
	productRepo repository.ProductRepository,
	enquiryRepo repository.EnquiryRepository,
	requirementRepo repository.RequirementRepository,
	userRepo repository.UserRepository,
	products *ProductUseCase,
) *FeedUseCase {
	return &FeedUseCase{
		productRepo:     productRepo,
		enquiryRepo:     enquiryRepo,
		requirementRepo: requirementRepo,
		userRepo:        userRepo,
		products:        products,
	}
}

func update[T any, V any](feed string, st ViewState[T], view func([]T) V) FeedUpdate {
	u := FeedUpdate{Type: "snapshot", Feed: feed, Loading: st.Loading}
	if st.Err != nil {
		u.Error = errors.RemoteFailureMessage
		return u
	}
	u.Items = view(st.Items)
	return u
}

// Open builds, but does not start, the named feed for session. Every state
// change is passed to push.
func (uc *FeedUseCase) Open(ctx context.Context, session *Session, name string, push func(FeedUpdate)) (Feed, error) {
	switch name {
	case FeedProducts:
		return uc.productFeed(ctx, name, repository.ProductFilter{}, push), nil

	case FeedMyProducts:
		if err := session.RequireRole(entity.RoleSeller); err != nil {
			return nil, err
		}
		return uc.productFeed(ctx, name, repository.ProductFilter{SellerID: session.UID}, push), nil

	case FeedEnquiriesReceived:
		if err := session.RequireRole(entity.RoleSeller); err != nil {
			return nil, err
		}
		return uc.enquiryFeed(ctx, name, repository.EnquiryFilter{SellerID: session.UID}, rules.SortByIntent, push), nil

	case FeedEnquiriesSent:
		if err := session.RequireRole(entity.RoleBuyer); err != nil {
			return nil, err
		}
		return uc.enquiryFeed(ctx, name, repository.EnquiryFilter{BuyerID: session.UID}, nil, push), nil

	case FeedRequirements:
		return uc.requirementFeed(ctx, name, repository.RequirementFilter{}, session.UID, push), nil

	case FeedMyRequirements:
		if err := session.RequireRole(entity.RoleBuyer); err != nil {
			return nil, err
		}
		return uc.requirementFeed(ctx, name, repository.RequirementFilter{BuyerID: session.UID}, session.UID, push), nil

	case FeedProfile:
		uid := session.UID
		return NewLiveView(ctx,
			func(ctx context.Context, h live.Handler[*entity.UserProfile]) *live.Subscription {
				return uc.userRepo.Watch(ctx, uid, h)
			},
			nil,
			func(st ViewState[*entity.UserProfile]) {
				push(update(name, st, func(items []*entity.UserProfile) []*entity.UserProfile { return items }))
			},
		), nil
	}
	return nil, errors.FieldError("feed", "Unknown feed "+name)
}

func (uc *FeedUseCase) productFeed(ctx context.Context, name string, filter repository.ProductFilter, push func(FeedUpdate)) *LiveView[*entity.Product] {
	return NewLiveView(ctx,
		func(ctx context.Context, h live.Handler[*entity.Product]) *live.Subscription {
			return uc.productRepo.Watch(ctx, filter, h)
		},
		nil,
		func(st ViewState[*entity.Product]) {
			push(update(name, st, uc.products.Views))
		},
	)
}

func (uc *FeedUseCase) enquiryFeed(ctx context.Context, name string, filter repository.EnquiryFilter, transform func([]*entity.Enquiry) []*entity.Enquiry, push func(FeedUpdate)) *LiveView[*entity.Enquiry] {
	return NewLiveView(ctx,
		func(ctx context.Context, h live.Handler[*entity.Enquiry]) *live.Subscription {
			return uc.enquiryRepo.Watch(ctx, filter, h)
		},
		transform,
		func(st ViewState[*entity.Enquiry]) {
			push(update(name, st, NewEnquiryViews))
		},
	)
}

func (uc *FeedUseCase) requirementFeed(ctx context.Context, name string, filter repository.RequirementFilter, viewerID string, push func(FeedUpdate)) *LiveView[*entity.BuyerRequirement] {
	return NewLiveView(ctx,
		func(ctx context.Context, h live.Handler[*entity.BuyerRequirement]) *live.Subscription {
			return uc.requirementRepo.Watch(ctx, filter, h)
		},
		nil,
		func(st ViewState[*entity.BuyerRequirement]) {
			push(update(name, st, func(items []*entity.BuyerRequirement) []RequirementView {
				return NewRequirementViews(items, viewerID)
			}))
		},
	)
}
