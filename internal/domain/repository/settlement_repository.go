package repository

import (
	"context"

	"marketplace/internal/domain/entity"
	"marketplace/internal/errors"

	"github.com/google/uuid"
)

// ErrSettlementNotFound is returned when no settlement matches the lookup.
var ErrSettlementNotFound = errors.New("settlement not found")

// SettlementRepository persists payout snapshots.
type SettlementRepository interface {
	// Create persists a new settlement.
	Create(ctx context.Context, settlement *entity.Settlement) error

	// FindByID retrieves a settlement by ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Settlement, error)

	// List returns all settlements newest-first with shop names attached.
	List(ctx context.Context) ([]*entity.Settlement, error)

	// Update persists changes to an existing settlement.
	Update(ctx context.Context, settlement *entity.Settlement) error
}
