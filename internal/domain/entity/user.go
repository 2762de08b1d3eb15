package entity

import (
	"time"
)

// UserProfile is the account record stored at users/{id}. Role is fixed at
// signup. SellerStatus is only stored for sellers.
type UserProfile struct {
	ID           string       `json:"id" firestore:"-"`
	Email        string       `json:"email" firestore:"email"`
	Name         string       `json:"name" firestore:"name"`
	Role         UserRole     `json:"role" firestore:"role"`
	SellerStatus SellerStatus `json:"sellerStatus,omitempty" firestore:"sellerStatus,omitempty"`
	CreatedAt    time.Time    `json:"createdAt" firestore:"createdAt,serverTimestamp"`
}

func (u *UserProfile) IsSeller() bool {
	return u != nil && u.Role == RoleSeller
}

func (u *UserProfile) IsBuyer() bool {
	return u != nil && u.Role == RoleBuyer
}

// CurrentSellerStatus is the seller's status with the default applied. It is
// empty for buyers.
func (u *UserProfile) CurrentSellerStatus() SellerStatus {
	if !u.IsSeller() {
		return ""
	}
	return u.SellerStatus.OrDefault()
}

func (u *UserProfile) Clone() *UserProfile {
	if u == nil {
		return nil
	}
	cp := *u
	return &cp
}
