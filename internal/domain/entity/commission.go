package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CommissionRatePercent is the platform's cut, fixed for all transactions.
const CommissionRatePercent = 10

// commissionRate is the fractional form of CommissionRatePercent.
var commissionRate = decimal.New(CommissionRatePercent, -2)

// Commission is the immutable revenue-split record created once per order
// line item, atomically with its order. It references the line item but is
// owned independently so it survives for audit purposes.
// Invariant: CommissionAmount + VendorEarning == the line total exactly.
type Commission struct {
	ID               uuid.UUID
	OrderID          uuid.UUID // Denormalized for date-range settlement queries.
	OrderItemID      uuid.UUID
	VendorID         uuid.UUID
	CommissionRate   decimal.Decimal // Stored as a percentage, e.g. 10.
	CommissionAmount decimal.Decimal
	VendorEarning    decimal.Decimal
	CreatedAt        time.Time
}

// SplitLineTotal computes the platform/vendor split for a line total.
// The commission is rounded half away from zero to 2 decimal places and the
// vendor earning is the exact remainder, so the two always sum to lineTotal.
func SplitLineTotal(lineTotal decimal.Decimal) (commissionAmount, vendorEarning decimal.Decimal) {
	commissionAmount = lineTotal.Mul(commissionRate).Round(2)
	vendorEarning = lineTotal.Sub(commissionAmount)

	return commissionAmount, vendorEarning
}
