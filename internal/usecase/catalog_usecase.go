package usecase

import (
	"context"

	"marketplace/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AddProductInput defines the data a vendor submits to list a new product.
type AddProductInput struct {
	VendorID    uuid.UUID       `json:"-"`
	Title       string          `json:"title" validate:"required,min=1"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price" validate:"required"`
	Stock       int             `json:"stock" validate:"gte=0"`
}

// UpdateProductInput defines a partial product edit. Nil fields are left
// unchanged. Any accepted edit resets the product's moderation state.
type UpdateProductInput struct {
	ProductID   uuid.UUID        `json:"-"`
	VendorID    uuid.UUID        `json:"-"`
	Title       *string          `json:"title" validate:"omitempty,min=1"`
	Description *string          `json:"description"`
	Price       *decimal.Decimal `json:"price"`
	Stock       *int             `json:"stock" validate:"omitempty,gte=0"`
}

// CatalogUsecase covers the public storefront and the vendor's own catalog
// management.
type CatalogUsecase interface {
	// ListPublicProducts returns purchasable products with shop names.
	ListPublicProducts(ctx context.Context) ([]*entity.Product, error)

	// GetVendorProfile returns the vendor profile owned by a user.
	GetVendorProfile(ctx context.Context, userID uuid.UUID) (*entity.Vendor, error)

	// ListVendorProducts returns all products owned by a vendor, regardless
	// of moderation state.
	ListVendorProducts(ctx context.Context, vendorID uuid.UUID) ([]*entity.Product, error)

	// AddProduct lists a new product. It starts PENDING and hidden.
	AddProduct(ctx context.Context, input *AddProductInput) (*entity.Product, error)

	// UpdateProduct applies a vendor edit. The product returns to PENDING and
	// is hidden until re-approved.
	UpdateProduct(ctx context.Context, input *UpdateProductInput) (*entity.Product, error)

	// DeleteProduct removes a vendor-owned product.
	DeleteProduct(ctx context.Context, productID, vendorID uuid.UUID) error
}
