package usecase

import (
	"context"
	"io"
	"net/http"

	"b2bmarket/internal/domain/entity"
	"b2bmarket/internal/domain/repository"
	"b2bmarket/internal/domain/rules"
	"b2bmarket/internal/domain/service"
	"b2bmarket/pkg/errors"
	"b2bmarket/pkg/logger"
)

type ProductUseCase struct {
	productRepo repository.ProductRepository
	files       service.FileUploadService
	prices      *rules.PriceFormatter
	inflight    *InFlight
}

// NewProductUseCase builds the product workflows. files may be nil, in
// which case image uploads are refused.
func NewProductUseCase(
	productRepo repository.ProductRepository,
	files service.FileUploadService,
	prices *rules.PriceFormatter,
	inflight *InFlight,
) *ProductUseCase {
	return &ProductUseCase{
		productRepo: productRepo,
		files:       files,
		prices:      prices,
		inflight:    inflight,
	}
}

// ProductView is a product with its derived display values.
type ProductView struct {
	*entity.Product
	PriceDisplay      string `json:"priceDisplay,omitempty"`
	PriceTypeLabel    string `json:"priceTypeLabel"`
	SellerStatusLabel string `json:"sellerStatusLabel"`
	CanEnquire        bool   `json:"canEnquire"`
}

func (uc *ProductUseCase) View(p *entity.Product) ProductView {
	line, _ := uc.prices.Display(p)
	return ProductView{
		Product:           p,
		PriceDisplay:      line,
		PriceTypeLabel:    p.PriceType.Label(),
		SellerStatusLabel: p.SellerStatus.OrDefault().Label(),
		CanEnquire:        rules.CanEnquire(p),
	}
}

func (uc *ProductUseCase) Views(products []*entity.Product) []ProductView {
	views := make([]ProductView, len(products))
	for i, p := range products {
		views[i] = uc.View(p)
	}
	return views
}

type ProductQuery struct {
	Category string
	SellerID string
	Search   string
}

func (uc *ProductUseCase) Categories() []string {
	return entity.Categories
}

func (uc *ProductUseCase) Get(ctx context.Context, id string) (*entity.Product, error) {
	return uc.productRepo.GetByID(ctx, id)
}

func (uc *ProductUseCase) List(ctx context.Context, q ProductQuery) ([]*entity.Product, error) {
	if q.Category != "" && !entity.IsCategory(q.Category) {
		return nil, errors.FieldError("category", "category must be one of the listed categories")
	}

	products, err := uc.productRepo.List(ctx, repository.ProductFilter{
		Category: q.Category,
		SellerID: q.SellerID,
	})
	if err != nil {
		return nil, err
	}

	if q.Search == "" {
		return products, nil
	}
	matched := make([]*entity.Product, 0, len(products))
	for _, p := range products {
		if rules.MatchesSearch(p, q.Search) {
			matched = append(matched, p)
		}
	}
	return matched, nil
}

// Create lists a product under the seller's current name and status.
func (uc *ProductUseCase) Create(ctx context.Context, session *Session, input rules.ProductInput) (*entity.Product, error) {
	if err := session.RequireRole(entity.RoleSeller); err != nil {
		return nil, err
	}
	if err := rules.ValidateProduct(input); err != nil {
		return nil, err
	}

	done, err := uc.inflight.Begin(session.UID, "create-product")
	if err != nil {
		return nil, err
	}
	defer done()

	product := &entity.Product{
		SellerID:     session.UID,
		SellerName:   session.Profile.Name,
		SellerStatus: session.Profile.CurrentSellerStatus(),
	}
	rules.ApplyProduct(input, product)

	if err := uc.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

func (uc *ProductUseCase) owned(ctx context.Context, session *Session, id string) (*entity.Product, error) {
	if err := session.RequireRole(entity.RoleSeller); err != nil {
		return nil, err
	}
	product, err := uc.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product.SellerID != session.UID {
		return nil, errors.Forbidden("You can only manage your own products", nil)
	}
	return product, nil
}

// Update rewrites the listing and refreshes the seller snapshot.
func (uc *ProductUseCase) Update(ctx context.Context, session *Session, id string, input rules.ProductInput) (*entity.Product, error) {
	if err := session.RequireRole(entity.RoleSeller); err != nil {
		return nil, err
	}
	if err := rules.ValidateProduct(input); err != nil {
		return nil, err
	}

	done, err := uc.inflight.Begin(session.UID, "update-product:"+id)
	if err != nil {
		return nil, err
	}
	defer done()

	product, err := uc.owned(ctx, session, id)
	if err != nil {
		return nil, err
	}

	rules.ApplyProduct(input, product)
	product.SellerName = session.Profile.Name
	product.SellerStatus = session.Profile.CurrentSellerStatus()

	if err := uc.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

func (uc *ProductUseCase) Delete(ctx context.Context, session *Session, id string) error {
	if err := session.RequireRole(entity.RoleSeller); err != nil {
		return err
	}

	done, err := uc.inflight.Begin(session.UID, "delete-product:"+id)
	if err != nil {
		return err
	}
	defer done()

	product, err := uc.owned(ctx, session, id)
	if err != nil {
		return err
	}

	if err := uc.productRepo.Delete(ctx, id); err != nil {
		return err
	}

	if product.Image != "" && uc.files != nil {
		if err := uc.files.DeleteFile(ctx, product.Image); err != nil {
			logger.Warn("Failed to delete image for product %s: %v", id, err)
		}
	}
	return nil
}

func (uc *ProductUseCase) UploadImage(ctx context.Context, session *Session, id string, file io.Reader, contentType string, size int64) (*entity.Product, error) {
	if uc.files == nil {
		return nil, errors.New("STORAGE_UNAVAILABLE", "Image uploads are not configured", http.StatusServiceUnavailable, nil)
	}
	if err := session.RequireRole(entity.RoleSeller); err != nil {
		return nil, err
	}
	if err := rules.ValidateImage(contentType, size); err != nil {
		return nil, err
	}

	done, err := uc.inflight.Begin(session.UID, "upload-image:"+id)
	if err != nil {
		return nil, err
	}
	defer done()

	product, err := uc.owned(ctx, session, id)
	if err != nil {
		return nil, err
	}

	url, err := uc.files.UploadFile(ctx, file, contentType, "products/"+id)
	if err != nil {
		return nil, err
	}

	previous := product.Image
	product.Image = url
	if err := uc.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}

	if previous != "" {
		if err := uc.files.DeleteFile(ctx, previous); err != nil {
			logger.Warn("Failed to delete previous image for product %s: %v", id, err)
		}
	}
	return product, nil
}
