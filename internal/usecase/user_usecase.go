// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"marketplace/internal/domain/entity"
)

// --- Input DTOs ---

// RegisterInput defines the data required to register a new account.
// ShopName is required when Role is VENDOR and ignored otherwise.
type RegisterInput struct {
	Name     string `json:"name" validate:"required,min=2"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Role     string `json:"role" validate:"required,oneof=VENDOR CUSTOMER"`
	ShopName string `json:"shopName" validate:"omitempty,min=1"`
}

// LoginInput defines the data required to log in.
type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RefreshTokenInput carries the opaque refresh token for rotation.
type RefreshTokenInput struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

// LogoutInput carries the refresh token whose session should end.
type LogoutInput struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

// --- Output DTOs ---

// RegisterOutput returns the newly created user's ID.
type RegisterOutput struct {
	UserID string `json:"userId"`
}

// LoginOutput returns the issued tokens plus a user summary.
type LoginOutput struct {
	Token        string       `json:"token"`
	RefreshToken string       `json:"refreshToken"`
	User         *UserSummary `json:"user"`
}

// UserSummary is the public shape of a logged-in user.
type UserSummary struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Role         string  `json:"role"`
	VendorStatus *string `json:"vendorStatus,omitempty"`
}

// RefreshTokenOutput returns the rotated token pair.
type RefreshTokenOutput struct {
	Token        string `json:"token"`
	RefreshToken string `json:"refreshToken"`
}

// UserUsecase defines the interface for account and credential operations.
// This is the contract that the delivery layer depends on.
type UserUsecase interface {
	Register(ctx context.Context, input *RegisterInput) (*RegisterOutput, error)
	Login(ctx context.Context, input *LoginInput) (*LoginOutput, error)
	RefreshToken(ctx context.Context, input *RefreshTokenInput) (*RefreshTokenOutput, error)
	Logout(ctx context.Context, input *LogoutInput) error
}

// NewUserSummary flattens a user entity into its public summary shape.
func NewUserSummary(user *entity.User) *UserSummary {
	summary := &UserSummary{
		ID:   user.ID.String(),
		Name: user.Name,
		Role: user.Role.String(),
	}
	if user.Vendor != nil {
		status := string(user.Vendor.Status)
		summary.VendorStatus = &status
	}

	return summary
}
