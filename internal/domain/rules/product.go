package rules

import (
	"math"
	"strings"

	"b2bmarket/internal/domain/entity"
	apperrors "b2bmarket/pkg/errors"
)

// ProductInput is the add/edit product form.
type ProductInput struct {
	Name        string           `json:"name" validate:"notblank,max=100"`
	Category    string           `json:"category" validate:"notblank,category"`
	PriceType   entity.PriceType `json:"priceType" validate:"required,oneof=exact range negotiable"`
	Price       *float64         `json:"price,omitempty"`
	PriceMin    *float64         `json:"priceMin,omitempty"`
	PriceMax    *float64         `json:"priceMax,omitempty"`
	Description string           `json:"description" validate:"notblank,max=1000"`
}

// ValidateProduct checks the form and the price invariant: exact and
// negotiable listings carry only price, range listings carry only
// priceMin and priceMax, with priceMin <= priceMax.
func ValidateProduct(in ProductInput) error {
	if err := Struct(in); err != nil {
		return err
	}
	return validatePrice(in.PriceType, in.Price, in.PriceMin, in.PriceMax)
}

func validatePrice(t entity.PriceType, price, min, max *float64) error {
	switch t {
	case entity.PriceExact, entity.PriceNegotiable:
		if !validAmount(price) {
			return apperrors.FieldError("price", "Please enter a price.")
		}
		if min != nil || max != nil {
			return apperrors.FieldError("priceMin", "priceMin and priceMax are only used with a price range")
		}
	case entity.PriceRange:
		if !validAmount(min) {
			return apperrors.FieldError("priceMin", "Please enter min and max price.")
		}
		if !validAmount(max) {
			return apperrors.FieldError("priceMax", "Please enter min and max price.")
		}
		if price != nil {
			return apperrors.FieldError("price", "price is not used with a price range")
		}
		if *min > *max {
			return apperrors.FieldError("priceMax", "priceMax must not be less than priceMin")
		}
	default:
		return apperrors.FieldError("priceType", "priceType must be one of: exact range negotiable")
	}
	return nil
}

func validAmount(v *float64) bool {
	return v != nil && !math.IsNaN(*v) && !math.IsInf(*v, 0) && *v >= 0
}

// ApplyProduct copies a validated form onto p, trimming text and keeping
// only the price fields that belong to the price type.
func ApplyProduct(in ProductInput, p *entity.Product) {
	p.Name = strings.TrimSpace(in.Name)
	p.Category = in.Category
	p.Description = strings.TrimSpace(in.Description)
	p.PriceType = in.PriceType
	p.Price, p.PriceMin, p.PriceMax = nil, nil, nil

	if in.PriceType == entity.PriceRange {
		p.PriceMin = entity.Float(*in.PriceMin)
		p.PriceMax = entity.Float(*in.PriceMax)
		return
	}
	p.Price = entity.Float(*in.Price)
}
