package repository

import (
	"context"

	"marketplace/internal/domain/entity"
	"marketplace/internal/errors"

	"github.com/google/uuid"
)

// ErrVendorNotFound is returned when no vendor matches the lookup.
var ErrVendorNotFound = errors.New("vendor not found")

// VendorRepository persists vendor shop profiles.
type VendorRepository interface {
	// Create persists a new vendor profile.
	Create(ctx context.Context, vendor *entity.Vendor) error

	// FindByID retrieves a vendor by ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Vendor, error)

	// FindByUserID retrieves the vendor profile owned by a user.
	FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.Vendor, error)

	// List returns vendors with owner name/email attached, optionally
	// filtered by moderation status (nil means all).
	List(ctx context.Context, status *entity.ApprovalStatus) ([]*entity.Vendor, error)

	// UpdateStatus sets the moderation status and returns the updated vendor.
	UpdateStatus(ctx context.Context, id uuid.UUID, status entity.ApprovalStatus) (*entity.Vendor, error)
}
