package repository

import (
	"context"

	"marketplace/internal/domain/entity"
	"marketplace/internal/errors"

	"github.com/google/uuid"
)

// ErrProductNotFound is returned when no product matches the lookup.
var ErrProductNotFound = errors.New("product not found")

// ErrStockExhausted is returned when a guarded stock decrement would drive
// stock negative.
var ErrStockExhausted = errors.New("stock exhausted")

// ProductRepository persists catalog products.
type ProductRepository interface {
	// Create persists a new product.
	Create(ctx context.Context, product *entity.Product) error

	// FindByID retrieves a product by ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Product, error)

	// FindByIDForUpdate retrieves a product by ID and takes a row-level write
	// lock on it for the duration of the surrounding transaction. Only
	// meaningful inside TransactionManager.Execute.
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.Product, error)

	// DecrementStock atomically subtracts qty from the product's stock.
	// Returns ErrStockExhausted when stock < qty, leaving stock untouched.
	DecrementStock(ctx context.Context, id uuid.UUID, qty int) error

	// ListPublic returns purchasable products (approved and visible) with
	// shop names attached.
	ListPublic(ctx context.Context) ([]*entity.Product, error)

	// ListByVendor returns all products owned by a vendor.
	ListByVendor(ctx context.Context, vendorID uuid.UUID) ([]*entity.Product, error)

	// List returns products with shop names attached, optionally filtered by
	// moderation status (nil means all).
	List(ctx context.Context, status *entity.ApprovalStatus) ([]*entity.Product, error)

	// Update persists changes to an existing product.
	Update(ctx context.Context, product *entity.Product) error

	// UpdateModeration sets status and visibility in one write and returns
	// the updated product.
	UpdateModeration(ctx context.Context, id uuid.UUID, status entity.ApprovalStatus, visible bool) (*entity.Product, error)

	// SetVisibility toggles visibility only and returns the updated product.
	SetVisibility(ctx context.Context, id uuid.UUID, visible bool) (*entity.Product, error)

	// Delete removes a vendor-owned product. Returns ErrProductNotFound when
	// the product does not exist or belongs to another vendor.
	Delete(ctx context.Context, id, vendorID uuid.UUID) error
}
