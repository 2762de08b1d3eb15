package usecase

import (
	"context"
	"time"

	"b2bmarket/internal/domain/entity"
	"b2bmarket/internal/domain/repository"
	"b2bmarket/internal/domain/rules"
	"b2bmarket/pkg/errors"
)

type EnquiryUseCase struct {
	enquiryRepo repository.EnquiryRepository
	productRepo repository.ProductRepository
	inflight    *InFlight
	now         func() time.Time
}

func NewEnquiryUseCase(enquiryRepo repository.EnquiryRepository, productRepo repository.ProductRepository, inflight *InFlight) *EnquiryUseCase {
	return &EnquiryUseCase{
		enquiryRepo: enquiryRepo,
		productRepo: productRepo,
		inflight:    inflight,
		now:         time.Now,
	}
}

// EnquiryView adds display labels.
type EnquiryView struct {
	*entity.Enquiry
	IntentLabel        string `json:"intentLabel"`
	IntentDescription  string `json:"intentDescription"`
	StatusLabel        string `json:"statusLabel"`
	ClosureLabel       string `json:"closureLabel,omitempty"`
	ClosureDescription string `json:"closureDescription,omitempty"`
}

func NewEnquiryView(e *entity.Enquiry) EnquiryView {
	return EnquiryView{
		Enquiry:            e,
		IntentLabel:        e.IntentLevel.Label(),
		IntentDescription:  e.IntentLevel.Description(),
		StatusLabel:        e.Status.Label(),
		ClosureLabel:       e.ClosureReason.Label(),
		ClosureDescription: e.ClosureReason.Description(),
	}
}

func NewEnquiryViews(enquiries []*entity.Enquiry) []EnquiryView {
	views := make([]EnquiryView, len(enquiries))
	for i, e := range enquiries {
		views[i] = NewEnquiryView(e)
	}
	return views
}

// Send opens a pending enquiry from a buyer to the product's seller.
func (uc *EnquiryUseCase) Send(ctx context.Context, session *Session, input rules.EnquiryInput) (*entity.Enquiry, error) {
	if err := session.RequireRole(entity.RoleBuyer); err != nil {
		return nil, err
	}
	if err := rules.ValidateEnquiry(input); err != nil {
		return nil, err
	}

	done, err := uc.inflight.Begin(session.UID, "send-enquiry:"+input.ProductID)
	if err != nil {
		return nil, err
	}
	defer done()

	product, err := uc.productRepo.GetByID(ctx, input.ProductID)
	if err != nil {
		return nil, err
	}
	if err := rules.CheckCanEnquire(product); err != nil {
		return nil, err
	}

	enquiry := rules.OpenEnquiry(input, product, session.Profile)
	if err := uc.enquiryRepo.Create(ctx, enquiry); err != nil {
		return nil, err
	}
	return enquiry, nil
}

func (uc *EnquiryUseCase) Respond(ctx context.Context, session *Session, id string) (*entity.Enquiry, error) {
	if err := session.RequireRole(entity.RoleSeller); err != nil {
		return nil, err
	}

	done, err := uc.inflight.Begin(session.UID, "respond-enquiry:"+id)
	if err != nil {
		return nil, err
	}
	defer done()

	enquiry, err := uc.enquiryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if enquiry.SellerID != session.UID {
		return nil, errors.Forbidden("You can only respond to enquiries sent to you", nil)
	}

	from := enquiry.Status
	if err := rules.Respond(enquiry, uc.now()); err != nil {
		return nil, err
	}
	if err := uc.enquiryRepo.UpdateStatus(ctx, enquiry, from); err != nil {
		return nil, err
	}
	return enquiry, nil
}

// Close records the buyer's closure feedback.
func (uc *EnquiryUseCase) Close(ctx context.Context, session *Session, id string, reason entity.ClosureReason) (*entity.Enquiry, error) {
	if err := session.RequireRole(entity.RoleBuyer); err != nil {
		return nil, err
	}
	if err := rules.ValidateClosureReason(reason); err != nil {
		return nil, err
	}

	done, err := uc.inflight.Begin(session.UID, "close-enquiry:"+id)
	if err != nil {
		return nil, err
	}
	defer done()

	enquiry, err := uc.enquiryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if enquiry.BuyerID != session.UID {
		return nil, errors.Forbidden("You can only close your own enquiries", nil)
	}

	from := enquiry.Status
	if err := rules.Close(enquiry, reason); err != nil {
		return nil, err
	}
	if err := uc.enquiryRepo.UpdateStatus(ctx, enquiry, from); err != nil {
		return nil, err
	}
	return enquiry, nil
}

// ListForSeller is newest first, then ordered by intent.
func (uc *EnquiryUseCase) ListForSeller(ctx context.Context, sellerID string) ([]*entity.Enquiry, error) {
	enquiries, err := uc.enquiryRepo.List(ctx, repository.EnquiryFilter{SellerID: sellerID})
	if err != nil {
		return nil, err
	}
	return rules.SortByIntent(enquiries), nil
}

func (uc *EnquiryUseCase) ListForBuyer(ctx context.Context, buyerID string) ([]*entity.Enquiry, error) {
	return uc.enquiryRepo.List(ctx, repository.EnquiryFilter{BuyerID: buyerID})
}
