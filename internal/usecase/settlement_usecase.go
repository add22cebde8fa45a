package usecase

import (
	"context"
	"time"

	"marketplace/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// GenerateSettlementInput defines the payout period to aggregate. Both ends
// are inclusive.
type GenerateSettlementInput struct {
	VendorID uuid.UUID
	From     time.Time
	To       time.Time
}

// EarningDetail is one commission row in a vendor's earnings report.
type EarningDetail struct {
	ID            string          `json:"id"`
	OrderID       string          `json:"orderId"`
	VendorEarning decimal.Decimal `json:"amount"`
	Date          time.Time       `json:"date"`
}

// VendorEarnings is the vendor-facing earnings report over a period.
type VendorEarnings struct {
	Summary struct {
		TotalEarnings decimal.Decimal `json:"totalEarnings"`
	} `json:"summary"`
	Details []EarningDetail `json:"details"`
}

// SettlementUsecase aggregates commission records into payout snapshots and
// tracks their payment state. It never mutates the underlying commissions,
// so generating overlapping periods is possible and is the operator's
// responsibility to avoid.
type SettlementUsecase interface {
	// GenerateSettlement sums a vendor's earnings over [from, to] inclusive
	// and persists a PENDING settlement snapshot.
	GenerateSettlement(ctx context.Context, input *GenerateSettlementInput) (*entity.Settlement, error)

	// MarkSettlementPaid transitions PENDING → PAID and stamps paidAt.
	// Paying an already-paid settlement is rejected.
	MarkSettlementPaid(ctx context.Context, id uuid.UUID) (*entity.Settlement, error)

	// ListSettlements returns all settlements newest-first.
	ListSettlements(ctx context.Context) ([]*entity.Settlement, error)

	// GetVendorEarnings builds the vendor-facing earnings report over
	// [from, to] inclusive.
	GetVendorEarnings(ctx context.Context, vendorID uuid.UUID, from, to time.Time) (*VendorEarnings, error)
}
