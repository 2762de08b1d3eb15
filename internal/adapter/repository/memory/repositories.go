package memory

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"b2bmarket/internal/domain/entity"
	"b2bmarket/internal/domain/repository"
	"b2bmarket/internal/infrastructure/live"
	"b2bmarket/pkg/errors"
)

type productRepository struct {
	store *Store
	t     *table[*entity.Product]
}

func matchProduct(f repository.ProductFilter) func(*entity.Product) bool {
	return func(p *entity.Product) bool {
		return (f.Category == "" || p.Category == f.Category) &&
			(f.SellerID == "" || p.SellerID == f.SellerID)
	}
}

func (r *productRepository) Create(ctx context.Context, product *entity.Product) error {
	if err := r.store.check("create product", product.SellerID); err != nil {
		return err
	}
	product.CreatedAt = r.store.timestamp()
	product.ID = uuid.NewString()
	r.t.insert(product.ID, product)
	return nil
}

func (r *productRepository) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	if err := r.store.check("get product", id); err != nil {
		return nil, err
	}
	return r.t.get(id)
}

func (r *productRepository) List(ctx context.Context, filter repository.ProductFilter) ([]*entity.Product, error) {
	if err := r.store.check("list products", filter.SellerID); err != nil {
		return nil, err
	}
	return r.t.query(matchProduct(filter)), nil
}

func (r *productRepository) Update(ctx context.Context, product *entity.Product) error {
	if err := r.store.check("update product", product.ID); err != nil {
		return err
	}
	next := product.Clone()
	return r.t.mutate(product.ID, func(p *entity.Product) {
		p.Name = next.Name
		p.Category = next.Category
		p.Description = next.Description
		p.PriceType = next.PriceType
		p.Price, p.PriceMin, p.PriceMax = next.Price, next.PriceMin, next.PriceMax
		p.SellerName = next.SellerName
		p.SellerStatus = next.SellerStatus
		p.Image = next.Image
	})
}

func (r *productRepository) Delete(ctx context.Context, id string) error {
	if err := r.store.check("delete product", id); err != nil {
		return err
	}
	return r.t.remove(id)
}

func (r *productRepository) Watch(ctx context.Context, filter repository.ProductFilter, h live.Handler[*entity.Product]) *live.Subscription {
	return r.t.watch(ctx, "watch products", matchProduct(filter), h)
}

type enquiryRepository struct {
	store *Store
	t     *table[*entity.Enquiry]
}

func matchEnquiry(f repository.EnquiryFilter) func(*entity.Enquiry) bool {
	return func(e *entity.Enquiry) bool {
		return (f.SellerID == "" || e.SellerID == f.SellerID) &&
			(f.BuyerID == "" || e.BuyerID == f.BuyerID)
	}
}

func (r *enquiryRepository) Create(ctx context.Context, enquiry *entity.Enquiry) error {
	if err := r.store.check("create enquiry", enquiry.BuyerID); err != nil {
		return err
	}
	enquiry.CreatedAt = r.store.timestamp()
	enquiry.ID = uuid.NewString()
	r.t.insert(enquiry.ID, enquiry)
	return nil
}

func (r *enquiryRepository) GetByID(ctx context.Context, id string) (*entity.Enquiry, error) {
	if err := r.store.check("get enquiry", id); err != nil {
		return nil, err
	}
	return r.t.get(id)
}

func (r *enquiryRepository) List(ctx context.Context, filter repository.EnquiryFilter) ([]*entity.Enquiry, error) {
	if err := r.store.check("list enquiries", filter.SellerID+filter.BuyerID); err != nil {
		return nil, err
	}
	return r.t.query(matchEnquiry(filter)), nil
}

func (r *enquiryRepository) UpdateStatus(ctx context.Context, enquiry *entity.Enquiry, from entity.EnquiryStatus) error {
	if err := r.store.check("update enquiry", enquiry.ID); err != nil {
		return err
	}
	next := enquiry.Clone()
	return r.t.mutateIf(enquiry.ID, func(e *entity.Enquiry) error {
		if e.Status != from {
			return errors.InvalidTransition("Enquiry is now " + e.Status.Label() + ", please refresh")
		}
		e.Status = next.Status
		if next.ClosureReason != "" {
			e.ClosureReason = next.ClosureReason
		}
		if next.RespondedAt != nil {
			e.RespondedAt = next.RespondedAt
		}
		return nil
	})
}

func (r *enquiryRepository) Watch(ctx context.Context, filter repository.EnquiryFilter, h live.Handler[*entity.Enquiry]) *live.Subscription {
	return r.t.watch(ctx, "watch enquiries", matchEnquiry(filter), h)
}

type requirementRepository struct {
	store *Store
	t     *table[*entity.BuyerRequirement]
}

func matchRequirement(f repository.RequirementFilter) func(*entity.BuyerRequirement) bool {
	return func(r *entity.BuyerRequirement) bool {
		return f.BuyerID == "" || r.BuyerID == f.BuyerID
	}
}

func (r *requirementRepository) Create(ctx context.Context, requirement *entity.BuyerRequirement) error {
	if err := r.store.check("create requirement", requirement.BuyerID); err != nil {
		return err
	}
	if requirement.InterestedSellers == nil {
		requirement.InterestedSellers = []string{}
	}
	requirement.CreatedAt = r.store.timestamp()
	requirement.ID = uuid.NewString()
	r.t.insert(requirement.ID, requirement)
	return nil
}

func (r *requirementRepository) GetByID(ctx context.Context, id string) (*entity.BuyerRequirement, error) {
	if err := r.store.check("get requirement", id); err != nil {
		return nil, err
	}
	return r.t.get(id)
}

func (r *requirementRepository) List(ctx context.Context, filter repository.RequirementFilter) ([]*entity.BuyerRequirement, error) {
	if err := r.store.check("list requirements", filter.BuyerID); err != nil {
		return nil, err
	}
	return r.t.query(matchRequirement(filter)), nil
}

// AddInterestedSeller is a union under the table lock, the same guarantee
// ArrayUnion gives on the server.
func (r *requirementRepository) AddInterestedSeller(ctx context.Context, id, sellerID string) error {
	if err := r.store.check("add interested seller", id); err != nil {
		return err
	}
	return r.t.mutate(id, func(req *entity.BuyerRequirement) {
		if !req.HasInterestFrom(sellerID) {
			req.InterestedSellers = append(req.InterestedSellers, sellerID)
		}
	})
}

func (r *requirementRepository) Delete(ctx context.Context, id string) error {
	if err := r.store.check("delete requirement", id); err != nil {
		return err
	}
	return r.t.remove(id)
}

func (r *requirementRepository) Watch(ctx context.Context, filter repository.RequirementFilter, h live.Handler[*entity.BuyerRequirement]) *live.Subscription {
	return r.t.watch(ctx, "watch requirements", matchRequirement(filter), h)
}

type userRepository struct {
	store *Store
	t     *table[*entity.UserProfile]
}

func (r *userRepository) Create(ctx context.Context, user *entity.UserProfile) error {
	if err := r.store.check("create user", user.ID); err != nil {
		return err
	}
	user.CreatedAt = r.store.timestamp()
	r.t.insert(user.ID, user)
	return nil
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*entity.UserProfile, error) {
	if err := r.store.check("get user", id); err != nil {
		return nil, err
	}
	return r.t.get(id)
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*entity.UserProfile, error) {
	if err := r.store.check("get user by email", email); err != nil {
		return nil, err
	}
	users := r.t.query(func(u *entity.UserProfile) bool {
		return strings.EqualFold(u.Email, email)
	})
	if len(users) == 0 {
		return nil, errors.NotFound("User", nil)
	}
	return users[0], nil
}

func (r *userRepository) UpdateSellerStatus(ctx context.Context, id string, status entity.SellerStatus) error {
	if err := r.store.check("update seller status", id); err != nil {
		return err
	}
	return r.t.mutate(id, func(u *entity.UserProfile) {
		u.SellerStatus = status
	})
}

func (r *userRepository) Watch(ctx context.Context, id string, h live.Handler[*entity.UserProfile]) *live.Subscription {
	return r.t.watch(ctx, "watch user", func(u *entity.UserProfile) bool { return u.ID == id }, h)
}
