package usecase

import (
	"context"

	"b2bmarket/internal/domain/entity"
	"b2bmarket/internal/domain/repository"
	"b2bmarket/internal/domain/rules"
)

type UserUseCase struct {
	userRepo repository.UserRepository
}

func NewUserUseCase(userRepo repository.UserRepository) *UserUseCase {
	return &UserUseCase{
		userRepo: userRepo,
	}
}

// PublicProfile is what other accounts see.
type PublicProfile struct {
	ID                string              `json:"id"`
	Name              string              `json:"name"`
	Role              entity.UserRole     `json:"role"`
	SellerStatus      entity.SellerStatus `json:"sellerStatus,omitempty"`
	SellerStatusLabel string              `json:"sellerStatusLabel,omitempty"`
}

func NewPublicProfile(u *entity.UserProfile) PublicProfile {
	p := PublicProfile{ID: u.ID, Name: u.Name, Role: u.Role}
	if u.IsSeller() {
		p.SellerStatus = u.CurrentSellerStatus()
		p.SellerStatusLabel = p.SellerStatus.Label()
	}
	return p
}

func (uc *UserUseCase) GetProfile(ctx context.Context, id string) (*entity.UserProfile, error) {
	return uc.userRepo.GetByID(ctx, id)
}

// UpdateSellerStatus is last-write-wins. Existing products keep the status
// they were listed with.
func (uc *UserUseCase) UpdateSellerStatus(ctx context.Context, session *Session, status entity.SellerStatus) (*entity.UserProfile, error) {
	if err := session.RequireRole(entity.RoleSeller); err != nil {
		return nil, err
	}

	profile := session.Profile.Clone()
	if err := rules.SetSellerStatus(profile, status); err != nil {
		return nil, err
	}

	if err := uc.userRepo.UpdateSellerStatus(ctx, profile.ID, status); err != nil {
		return nil, err
	}

	session.Profile = profile
	return profile, nil
}
