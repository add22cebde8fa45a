package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SettlementModel mirrors the 'settlements' table.
type SettlementModel struct {
	ID              uuid.UUID       `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	VendorID        uuid.UUID       `gorm:"type:uuid;not null;index"`
	GrossSales      decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	CommissionTotal decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Amount          decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	PeriodFrom      time.Time       `gorm:"not null"`
	PeriodTo        time.Time       `gorm:"not null"`
	Status          string          `gorm:"type:varchar(20);not null;default:'PENDING'"`
	GeneratedAt     time.Time       `gorm:"not null"`
	PaidAt          *time.Time

	Vendor *VendorModel `gorm:"foreignKey:VendorID"`
}

// TableName explicitly sets the table name for GORM.
func (SettlementModel) TableName() string {
	return "settlements"
}
