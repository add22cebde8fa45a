package repository

import (
	"context"

	"marketplace/internal/domain/entity"
	"marketplace/internal/errors"

	"github.com/google/uuid"
)

// ErrRefreshTokenNotFound is returned when no refresh token matches the lookup.
var ErrRefreshTokenNotFound = errors.New("refresh token not found")

// ErrRefreshTokenExpired is returned when the matched token has expired.
var ErrRefreshTokenExpired = errors.New("refresh token expired")

// RefreshTokenRepository persists login sessions.
type RefreshTokenRepository interface {
	// Create persists a new refresh token.
	Create(ctx context.Context, token *entity.RefreshToken) error

	// FindByHash retrieves a non-expired refresh token by its stored hash.
	FindByHash(ctx context.Context, tokenHash string) (*entity.RefreshToken, error)

	// DeleteByHash removes a refresh token, ending its session.
	DeleteByHash(ctx context.Context, tokenHash string) error

	// DeleteByUserID removes all of a user's refresh tokens.
	DeleteByUserID(ctx context.Context, userID uuid.UUID) error
}
