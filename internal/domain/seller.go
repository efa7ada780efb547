package domain

import (
	"errors"
	"fmt"
)

const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

var ErrInvalidTransition = errors.New("invalid approval transition")

type Seller struct {
	ID               int64  `db:"id" json:"id"`
	UserID           int64  `db:"user_id" json:"userId"`
	FirebaseUID      string `db:"firebase_uid" json:"firebaseUid"`
	Email            string `db:"email" json:"email"`
	Name             string `db:"name" json:"name"`
	StoreName        string `db:"store_name" json:"storeName"`
	StoreDescription string `db:"store_description" json:"storeDescription"`
	GSTNumber        string `db:"gst_number" json:"gstNumber"`
	Address          string `db:"address" json:"address"`
	PhoneNumber      string `db:"phone_number" json:"phoneNumber"`
	ApprovalStatus   string `db:"approval_status" json:"approvalStatus"`
	RejectionReason  string `db:"rejection_reason" json:"rejectionReason,omitempty"`
	CreatedAt        string `db:"created_at" json:"createdAt"`
	UpdatedAt        string `db:"updated_at" json:"updatedAt"`
}

func (s *Seller) Approved() bool { return s != nil && s.ApprovalStatus == StatusApproved }

// StoreProfile is the applicant-supplied part of a seller row.
type StoreProfile struct {
	StoreName        string
	StoreDescription string
	GSTNumber        string
	Address          string
	PhoneNumber      string
}

// pending -> approved|rejected is an admin decision; rejected -> pending is a reapplication.
var transitions = map[string][]string{
	StatusPending:  {StatusApproved, StatusRejected},
	StatusRejected: {StatusPending},
}

// CheckTransition reports ErrInvalidTransition unless from -> to is allowed.
func CheckTransition(from, to string) error {
	for _, next := range transitions[from] {
		if next == to {
			return nil
		}
	}
	return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
}
