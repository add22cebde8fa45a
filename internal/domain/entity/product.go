package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product is a catalog item exclusively owned by its vendor.
// Any vendor edit resets Status to PENDING and hides the product until an
// admin re-approves it.
type Product struct {
	ID          uuid.UUID
	VendorID    uuid.UUID
	Title       string
	Description string
	Price       decimal.Decimal // Always > 0.
	Stock       int             // Never negative.
	Status      ApprovalStatus
	IsVisible   bool
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// Flattened vendor field for public listings, populated on joined reads.
	ShopName string
}

// IsPurchasable reports whether the product may appear in public listings
// and be ordered.
func (p *Product) IsPurchasable() bool {
	return p.Status == ApprovalApproved && p.IsVisible
}
