package usecase

import (
	"context"

	"b2bmarket/internal/domain/entity"
	"b2bmarket/internal/domain/repository"
	"b2bmarket/internal/domain/rules"
	"b2bmarket/pkg/errors"
)

type RequirementUseCase struct {
	requirementRepo repository.RequirementRepository
	inflight        *InFlight
}

func NewRequirementUseCase(requirementRepo repository.RequirementRepository, inflight *InFlight) *RequirementUseCase {
	return &RequirementUseCase{
		requirementRepo: requirementRepo,
		inflight:        inflight,
	}
}

// RequirementView is a requirement as seen by one account.
type RequirementView struct {
	*entity.BuyerRequirement
	InterestCount     int  `json:"interestCount"`
	AlreadyInterested bool `json:"alreadyInterested"`
}

func NewRequirementView(r *entity.BuyerRequirement, viewerID string) RequirementView {
	return RequirementView{
		BuyerRequirement:  r,
		InterestCount:     len(r.InterestedSellers),
		AlreadyInterested: AlreadyInterested(r, viewerID),
	}
}

func NewRequirementViews(requirements []*entity.BuyerRequirement, viewerID string) []RequirementView {
	views := make([]RequirementView, len(requirements))
	for i, r := range requirements {
		views[i] = NewRequirementView(r, viewerID)
	}
	return views
}

// AlreadyInterested drives the disabled "Already Interested" state.
func AlreadyInterested(r *entity.BuyerRequirement, sellerID string) bool {
	return !rules.CanShowInterest(r, sellerID)
}

func (uc *RequirementUseCase) Post(ctx context.Context, session *Session, input rules.RequirementInput) (*entity.BuyerRequirement, error) {
	if err := session.RequireRole(entity.RoleBuyer); err != nil {
		return nil, err
	}
	if err := rules.ValidateRequirement(input); err != nil {
		return nil, err
	}

	done, err := uc.inflight.Begin(session.UID, "post-requirement")
	if err != nil {
		return nil, err
	}
	defer done()

	requirement := &entity.BuyerRequirement{
		BuyerID:   session.UID,
		BuyerName: session.Profile.Name,
	}
	rules.ApplyRequirement(input, requirement)

	if err := uc.requirementRepo.Create(ctx, requirement); err != nil {
		return nil, err
	}
	return requirement, nil
}

func (uc *RequirementUseCase) ListAll(ctx context.Context) ([]*entity.BuyerRequirement, error) {
	return uc.requirementRepo.List(ctx, repository.RequirementFilter{})
}

func (uc *RequirementUseCase) ListForBuyer(ctx context.Context, buyerID string) ([]*entity.BuyerRequirement, error) {
	return uc.requirementRepo.List(ctx, repository.RequirementFilter{BuyerID: buyerID})
}

// ShowInterest adds the seller to the requirement. Repeating it is a no-op.
func (uc *RequirementUseCase) ShowInterest(ctx context.Context, session *Session, id string) error {
	if err := session.RequireRole(entity.RoleSeller); err != nil {
		return err
	}

	done, err := uc.inflight.Begin(session.UID, "show-interest:"+id)
	if err != nil {
		return err
	}
	defer done()

	return uc.requirementRepo.AddInterestedSeller(ctx, id, session.UID)
}

func (uc *RequirementUseCase) Delete(ctx context.Context, session *Session, id string) error {
	if err := session.RequireRole(entity.RoleBuyer); err != nil {
		return err
	}

	done, err := uc.inflight.Begin(session.UID, "delete-requirement:"+id)
	if err != nil {
		return err
	}
	defer done()

	requirement, err := uc.requirementRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if requirement.BuyerID != session.UID {
		return errors.Forbidden("You can only delete your own requirements", nil)
	}
	return uc.requirementRepo.Delete(ctx, id)
}
