package entity

import (
	"time"

	"github.com/google/uuid"
)

// RefreshToken represents a login session. Only the SHA-256 hash of the
// opaque token is stored.
type RefreshToken struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	TokenHash string
	ExpiresAt time.Time
	CreatedAt time.Time
}
