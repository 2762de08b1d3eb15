package entity

import (
	"time"
)

// BuyerRequirement is an open sourcing request visible to every seller.
// InterestedSellers only ever grows, and only through an atomic set union.
type BuyerRequirement struct {
	ID                string    `json:"id" firestore:"-"`
	BuyerID           string    `json:"buyerId" firestore:"buyerId"`
	BuyerName         string    `json:"buyerName" firestore:"buyerName"`
	ProductNeeded     string    `json:"productNeeded" firestore:"productNeeded"`
	Quantity          string    `json:"quantity" firestore:"quantity"`
	Location          string    `json:"location" firestore:"location"`
	Timeline          string    `json:"timeline" firestore:"timeline"`
	Description       string    `json:"description" firestore:"description"`
	InterestedSellers []string  `json:"interestedSellers" firestore:"interestedSellers"`
	CreatedAt         time.Time `json:"createdAt" firestore:"createdAt,serverTimestamp"`
}

func (r *BuyerRequirement) Clone() *BuyerRequirement {
	if r == nil {
		return nil
	}
	cp := *r
	cp.InterestedSellers = append([]string{}, r.InterestedSellers...)
	return &cp
}

func (r *BuyerRequirement) HasInterestFrom(sellerID string) bool {
	for _, id := range r.InterestedSellers {
		if id == sellerID {
			return true
		}
	}
	return false
}
