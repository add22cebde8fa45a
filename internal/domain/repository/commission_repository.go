package repository

import (
	"context"
	"time"

	"marketplace/internal/domain/entity"

	"github.com/google/uuid"
)

// CommissionRepository persists the immutable revenue-split records.
type CommissionRepository interface {
	// Create persists a new commission record.
	Create(ctx context.Context, commission *entity.Commission) error

	// FindByVendorInRange returns a vendor's commissions whose creation time
	// falls within [from, to], both ends inclusive.
	FindByVendorInRange(ctx context.Context, vendorID uuid.UUID, from, to time.Time) ([]*entity.Commission, error)
}
