// Package repository defines the persistence contracts the domain depends on.
package repository

import (
	"context"

	"marketplace/internal/domain/entity"
	"marketplace/internal/errors"

	"github.com/google/uuid"
)

// ErrUserNotFound is returned when no user matches the lookup.
var ErrUserNotFound = errors.New("user not found")

// ErrDuplicateEmail is returned when a create would violate email uniqueness.
var ErrDuplicateEmail = errors.New("email already registered")

// UserRepository persists user accounts.
type UserRepository interface {
	// Create persists a new user. Returns ErrDuplicateEmail when the email
	// is already registered.
	Create(ctx context.Context, user *entity.User) error

	// FindByID retrieves a user by ID, with the vendor profile attached when
	// one exists.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)

	// FindByEmail retrieves a user by email, with the vendor profile attached
	// when one exists.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
}
