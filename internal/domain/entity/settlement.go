package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SettlementStatus is the payout state of a settlement.
type SettlementStatus string

const (
	SettlementPending SettlementStatus = "PENDING"
	SettlementPaid    SettlementStatus = "PAID"
)

// Settlement is a point-in-time payout snapshot over a vendor's commission
// records in a period. It is not a running ledger: the underlying commissions
// are not marked consumed, so avoiding overlapping periods is the operator's
// responsibility.
type Settlement struct {
	ID              uuid.UUID
	VendorID        uuid.UUID
	GrossSales      decimal.Decimal // Sum of line totals in the period.
	CommissionTotal decimal.Decimal // Platform cut over the period.
	Amount          decimal.Decimal // Net payable, sum of vendor earnings.
	PeriodFrom      time.Time
	PeriodTo        time.Time
	Status          SettlementStatus
	GeneratedAt     time.Time
	PaidAt          *time.Time

	// Flattened vendor field for admin listings.
	ShopName string
}
