package entity

import (
	"time"
)

// Enquiry is a buyer's message to one seller about one product. ProductName
// and SellerID are copied from the product when the enquiry is sent.
type Enquiry struct {
	ID            string        `json:"id" firestore:"-"`
	ProductID     string        `json:"productId" firestore:"productId"`
	ProductName   string        `json:"productName" firestore:"productName"`
	BuyerID       string        `json:"buyerId" firestore:"buyerId"`
	BuyerName     string        `json:"buyerName" firestore:"buyerName"`
	SellerID      string        `json:"sellerId" firestore:"sellerId"`
	Message       string        `json:"message" firestore:"message"`
	IntentLevel   IntentLevel   `json:"intentLevel" firestore:"intentLevel"`
	Status        EnquiryStatus `json:"status" firestore:"status"`
	ClosureReason ClosureReason `json:"closureReason,omitempty" firestore:"closureReason,omitempty"`
	CreatedAt     time.Time     `json:"createdAt" firestore:"createdAt,serverTimestamp"`
	RespondedAt   *time.Time    `json:"respondedAt,omitempty" firestore:"respondedAt,omitempty"`
}

func (e *Enquiry) Clone() *Enquiry {
	if e == nil {
		return nil
	}
	cp := *e
	if e.RespondedAt != nil {
		t := *e.RespondedAt
		cp.RespondedAt = &t
	}
	return &cp
}
