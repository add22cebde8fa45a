package repository

import (
	"context"

	"marketplace/internal/domain/entity"
	"marketplace/internal/errors"

	"github.com/google/uuid"
)

// ErrOrderNotFound is returned when no order matches the lookup.
var ErrOrderNotFound = errors.New("order not found")

// OrderRepository persists orders and their line items.
type OrderRepository interface {
	// Create persists an order together with all of its line items.
	Create(ctx context.Context, order *entity.Order) error

	// FindByCustomer returns a customer's orders newest-first, line items
	// attached with product titles.
	FindByCustomer(ctx context.Context, customerID uuid.UUID) ([]*entity.Order, error)
}
