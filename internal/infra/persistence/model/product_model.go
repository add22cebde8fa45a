package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductModel mirrors the 'products' table.
type ProductModel struct {
	ID          uuid.UUID       `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	VendorID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	Title       string          `gorm:"type:varchar(255);not null"`
	Description string          `gorm:"type:text"`
	Price       decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Stock       int             `gorm:"not null;check:stock >= 0"`
	Status      string          `gorm:"type:varchar(20);not null;default:'PENDING';index"`
	IsVisible   bool            `gorm:"not null;default:false"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Vendor *VendorModel `gorm:"foreignKey:VendorID"`
}

// TableName explicitly sets the table name for GORM.
func (ProductModel) TableName() string {
	return "products"
}
