package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderStatus is the fulfilment state of an order.
type OrderStatus string

const (
	OrderPlaced    OrderStatus = "PLACED"
	OrderShipped   OrderStatus = "SHIPPED"
	OrderDelivered OrderStatus = "DELIVERED"
	OrderCancelled OrderStatus = "CANCELLED"
)

// Order is created atomically by the order engine and is immutable afterwards.
// TotalAmount equals the sum of its line totals at creation time.
type Order struct {
	ID          uuid.UUID
	CustomerID  uuid.UUID
	TotalAmount decimal.Decimal
	Status      OrderStatus
	Items       []OrderItem
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// OrderItem is a purchase line created with its order and never mutated.
// UnitPrice is a point-in-time snapshot of the product price; later product
// price changes do not affect it. VendorID is denormalized from the product
// so per-vendor revenue queries need no join through the catalog.
type OrderItem struct {
	ID        uuid.UUID
	OrderID   uuid.UUID
	ProductID uuid.UUID
	VendorID  uuid.UUID
	Qty       int
	UnitPrice decimal.Decimal
	LineTotal decimal.Decimal // Qty × UnitPrice.
	CreatedAt time.Time

	// Flattened product title for order history views.
	ProductTitle string
}
