package service

import (
	"time"

	"marketplace/internal/domain/entity"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims defines the custom claims carried by the access token. VendorID is
// set only for VENDOR users so vendor-facing operations can resolve the shop
// without an extra lookup.
type Claims struct {
	UserID   uuid.UUID   `json:"userId"`
	Role     entity.Role `json:"role"`
	VendorID *uuid.UUID  `json:"vendorId,omitempty"`
	Type     string      `json:"type"` // "access" or "refresh"
	jwt.RegisteredClaims
}

// TokenService defines the interface for generating and validating JWTs.
// This abstracts the details of token creation from the use cases.
type TokenService interface {
	// GenerateTokens creates a new access token and refresh token for a given user.
	GenerateTokens(userID uuid.UUID, role entity.Role, vendorID *uuid.UUID) (accessToken string, refreshToken string, err error)

	// ValidateAccessToken checks the validity of an access token string.
	ValidateAccessToken(tokenString string) (*Claims, error)

	// ValidateRefreshToken checks the validity of a refresh token string.
	ValidateRefreshToken(tokenString string) (*Claims, error)

	// GetRefreshTokenDuration returns the configured duration for refresh tokens.
	GetRefreshTokenDuration() time.Duration
}
