package rules

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"b2bmarket/internal/domain/entity"
	apperrors "b2bmarket/pkg/errors"
)

func validProduct() ProductInput {
	return ProductInput{
		Name:        "CNC Lathe",
		Category:    "Industrial Machinery",
		PriceType:   entity.PriceExact,
		Price:       entity.Float(2500),
		Description: "Heavy duty lathe",
	}
}

func fieldOf(t *testing.T, err error) map[string]string {
	t.Helper()
	require.Error(t, err)
	require.True(t, apperrors.IsValidation(err), "expected validation error, got %v", err)
	appErr := err.(*apperrors.AppError)
	return appErr.Fields
}

func TestValidateProductAccepts(t *testing.T) {
	in := validProduct()
	assert.NoError(t, ValidateProduct(in))

	in.PriceType = entity.PriceRange
	in.Price = nil
	in.PriceMin = entity.Float(15000)
	in.PriceMax = entity.Float(45000)
	assert.NoError(t, ValidateProduct(in))

	in = validProduct()
	in.PriceType = entity.PriceNegotiable
	in.Price = entity.Float(0)
	assert.NoError(t, ValidateProduct(in))
}

func TestValidateProductRequiredText(t *testing.T) {
	tests := []struct {
		name  string
		edit  func(*ProductInput)
		field string
	}{
		{"blank name", func(p *ProductInput) { p.Name = "   " }, "name"},
		{"long name", func(p *ProductInput) { p.Name = strings.Repeat("a", 101) }, "name"},
		{"blank description", func(p *ProductInput) { p.Description = "" }, "description"},
		{"long description", func(p *ProductInput) { p.Description = strings.Repeat("a", 1001) }, "description"},
		{"unknown category", func(p *ProductInput) { p.Category = "Toys" }, "category"},
		{"unknown price type", func(p *ProductInput) { p.PriceType = "auction" }, "priceType"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validProduct()
			tt.edit(&in)
			fields := fieldOf(t, ValidateProduct(in))
			assert.Contains(t, fields, tt.field)
		})
	}
}

func TestValidateProductPriceRules(t *testing.T) {
	tests := []struct {
		name  string
		edit  func(*ProductInput)
		field string
	}{
		{"exact without price", func(p *ProductInput) { p.Price = nil }, "price"},
		{"negative price", func(p *ProductInput) { p.Price = entity.Float(-1) }, "price"},
		{"NaN price", func(p *ProductInput) { p.Price = entity.Float(math.NaN()) }, "price"},
		{"infinite price", func(p *ProductInput) { p.Price = entity.Float(math.Inf(1)) }, "price"},
		{"exact with range fields", func(p *ProductInput) { p.PriceMin = entity.Float(1) }, "priceMin"},
		{"range with only price", func(p *ProductInput) { p.PriceType = entity.PriceRange }, "priceMin"},
		{"range missing max", func(p *ProductInput) {
			p.PriceType = entity.PriceRange
			p.Price = nil
			p.PriceMin = entity.Float(10)
		}, "priceMax"},
		{"range min above max", func(p *ProductInput) {
			p.PriceType = entity.PriceRange
			p.Price = nil
			p.PriceMin = entity.Float(50)
			p.PriceMax = entity.Float(10)
		}, "priceMax"},
		{"range also carrying price", func(p *ProductInput) {
			p.PriceType = entity.PriceRange
			p.PriceMin = entity.Float(10)
			p.PriceMax = entity.Float(20)
		}, "price"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validProduct()
			tt.edit(&in)
			fields := fieldOf(t, ValidateProduct(in))
			assert.Contains(t, fields, tt.field)
		})
	}
}

func TestApplyProductKeepsOnlyMatchingPriceFields(t *testing.T) {
	p := &entity.Product{
		Price: entity.Float(99),
	}
	in := validProduct()
	in.Name = "  Lathe  "
	in.PriceType = entity.PriceRange
	in.Price = nil
	in.PriceMin = entity.Float(10)
	in.PriceMax = entity.Float(20)

	ApplyProduct(in, p)

	assert.Equal(t, "Lathe", p.Name)
	assert.Nil(t, p.Price)
	assert.Equal(t, 10.0, *p.PriceMin)
	assert.Equal(t, 20.0, *p.PriceMax)
}
