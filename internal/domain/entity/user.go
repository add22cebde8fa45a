package entity

import (
	"time"

	"github.com/google/uuid"
)

// User is the core account entity. Its role is fixed at registration and
// never changes afterwards.
type User struct {
	ID           uuid.UUID // The unique identifier for the user.
	Email        string    // The user's login identifier, unique across the system.
	Name         string    // The user's display name.
	PasswordHash string    // bcrypt hash of the user's password. Never serialized.
	Role         Role      // ADMIN, VENDOR or CUSTOMER.
	Vendor       *Vendor   // The vendor profile. Nil unless Role is VENDOR.
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
