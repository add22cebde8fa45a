package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderModel mirrors the 'orders' table.
type OrderModel struct {
	ID          uuid.UUID       `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	CustomerID  uuid.UUID       `gorm:"type:uuid;not null;index"`
	TotalAmount decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Status      string          `gorm:"type:varchar(20);not null;default:'PLACED'"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Items []OrderItemModel `gorm:"foreignKey:OrderID"`
}

// TableName explicitly sets the table name for GORM.
func (OrderModel) TableName() string {
	return "orders"
}

// OrderItemModel mirrors the 'order_items' table. UnitPrice is a snapshot of
// the product price at purchase time.
type OrderItemModel struct {
	ID        uuid.UUID       `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	OrderID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID uuid.UUID       `gorm:"type:uuid;not null"`
	VendorID  uuid.UUID       `gorm:"type:uuid;not null;index"`
	Qty       int             `gorm:"not null;check:qty > 0"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	LineTotal decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	CreatedAt time.Time

	Product *ProductModel `gorm:"foreignKey:ProductID"`
}

// TableName explicitly sets the table name for GORM.
func (OrderItemModel) TableName() string {
	return "order_items"
}
