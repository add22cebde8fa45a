package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CommissionModel mirrors the 'commissions' table. Rows are written once by
// the order engine and never updated.
type CommissionModel struct {
	ID               uuid.UUID       `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	OrderID          uuid.UUID       `gorm:"type:uuid;not null;index"`
	OrderItemID      uuid.UUID       `gorm:"type:uuid;not null;unique"`
	VendorID         uuid.UUID       `gorm:"type:uuid;not null;index:idx_commissions_vendor_created"`
	CommissionRate   decimal.Decimal `gorm:"type:decimal(5,2);not null"`
	CommissionAmount decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	VendorEarning    decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	CreatedAt        time.Time       `gorm:"index:idx_commissions_vendor_created"`
}

// TableName explicitly sets the table name for GORM.
func (CommissionModel) TableName() string {
	return "commissions"
}
