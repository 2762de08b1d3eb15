package entity

import (
	"time"
)

// Product is a seller's listing. SellerStatus is a copy of the seller's
// availability taken when the listing was last written; it is not kept in
// sync with later status changes.
type Product struct {
	ID           string       `json:"id" firestore:"-"`
	Name         string       `json:"name" firestore:"name"`
	Category     string       `json:"category" firestore:"category"`
	SellerID     string       `json:"sellerId" firestore:"sellerId"`
	SellerName   string       `json:"sellerName" firestore:"sellerName"`
	SellerStatus SellerStatus `json:"sellerStatus" firestore:"sellerStatus"`
	PriceType    PriceType    `json:"priceType" firestore:"priceType"`
	Price        *float64     `json:"price,omitempty" firestore:"price,omitempty"`
	PriceMin     *float64     `json:"priceMin,omitempty" firestore:"priceMin,omitempty"`
	PriceMax     *float64     `json:"priceMax,omitempty" firestore:"priceMax,omitempty"`
	Description  string       `json:"description" firestore:"description"`
	Image        string       `json:"image,omitempty" firestore:"image,omitempty"`
	CreatedAt    time.Time    `json:"createdAt" firestore:"createdAt,serverTimestamp"`
}

func (p *Product) Clone() *Product {
	if p == nil {
		return nil
	}
	cp := *p
	cp.Price = cloneFloat(p.Price)
	cp.PriceMin = cloneFloat(p.PriceMin)
	cp.PriceMax = cloneFloat(p.PriceMax)
	return &cp
}

func cloneFloat(f *float64) *float64 {
	if f == nil {
		return nil
	}
	v := *f
	return &v
}

// Float is a convenience for building optional price fields.
func Float(v float64) *float64 {
	return &v
}
