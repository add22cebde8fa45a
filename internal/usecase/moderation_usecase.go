package usecase

import (
	"context"

	"marketplace/internal/domain/entity"

	"github.com/google/uuid"
)

// ModerationUsecase covers the admin-facing approval workflow. Each
// transition is a distinct typed operation; there is no generic
// status-setting endpoint.
type ModerationUsecase interface {
	// ListVendors returns vendors with owner details, optionally filtered by
	// moderation status.
	ListVendors(ctx context.Context, status *entity.ApprovalStatus) ([]*entity.Vendor, error)

	// ApproveVendor transitions a vendor to APPROVED.
	ApproveVendor(ctx context.Context, id uuid.UUID) (*entity.Vendor, error)

	// RejectVendor transitions a vendor to REJECTED.
	RejectVendor(ctx context.Context, id uuid.UUID) (*entity.Vendor, error)

	// ListProducts returns products with shop names, optionally filtered by
	// moderation status.
	ListProducts(ctx context.Context, status *entity.ApprovalStatus) ([]*entity.Product, error)

	// ApproveProduct transitions a product to APPROVED and makes it visible.
	ApproveProduct(ctx context.Context, id uuid.UUID) (*entity.Product, error)

	// RejectProduct transitions a product to REJECTED and hides it.
	RejectProduct(ctx context.Context, id uuid.UUID) (*entity.Product, error)

	// SetProductVisibility toggles visibility independently of status. Only
	// meaningful once the product is approved.
	SetProductVisibility(ctx context.Context, id uuid.UUID, visible bool) (*entity.Product, error)
}
