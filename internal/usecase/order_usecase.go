package usecase

import (
	"context"

	"marketplace/internal/domain/entity"

	"github.com/google/uuid"
)

// OrderItemInput is one requested purchase line.
type OrderItemInput struct {
	ProductID string `json:"productId" validate:"required,uuid"`
	Qty       int    `json:"qty" validate:"required,gt=0"`
}

// PlaceOrderInput defines a purchase request. Items are processed in input
// order.
type PlaceOrderInput struct {
	CustomerID uuid.UUID        `json:"-"`
	Items      []OrderItemInput `json:"items" validate:"required,min=1,dive"`
}

// OrderUsecase is the transactional core of the marketplace: it validates a
// requested purchase, mutates stock, creates the order with its line items
// and derives the commission split — all atomically.
type OrderUsecase interface {
	// PlaceOrder executes the purchase transaction. Either the full order
	// (with all line items and commission records) is persisted, or nothing is.
	PlaceOrder(ctx context.Context, input *PlaceOrderInput) (*entity.Order, error)

	// GetOrdersForCustomer returns the customer's orders newest-first with
	// line items and product titles attached.
	GetOrdersForCustomer(ctx context.Context, customerID uuid.UUID) ([]*entity.Order, error)
}
