package entity

import (
	"time"

	"github.com/google/uuid"
)

// ApprovalStatus is the moderation state shared by vendors and products.
type ApprovalStatus string

const (
	// ApprovalPending means the record awaits an admin decision.
	ApprovalPending ApprovalStatus = "PENDING"
	// ApprovalApproved means an admin approved the record.
	ApprovalApproved ApprovalStatus = "APPROVED"
	// ApprovalRejected means an admin rejected the record.
	ApprovalRejected ApprovalStatus = "REJECTED"
)

// IsValid checks if the ApprovalStatus is a valid value.
func (s ApprovalStatus) IsValid() bool {
	switch s {
	case ApprovalPending, ApprovalApproved, ApprovalRejected:
		return true
	default:
		return false
	}
}

// Vendor is the shop profile owned by exactly one VENDOR user.
// It starts PENDING and only an admin may change its status.
type Vendor struct {
	ID        uuid.UUID
	UserID    uuid.UUID // Owning user, 1:1.
	ShopName  string
	Status    ApprovalStatus
	CreatedAt time.Time
	UpdatedAt time.Time

	// Flattened owner fields for listings, populated on joined reads.
	OwnerName  string
	OwnerEmail string
}
