// Package validator adapts go-playground/validator to Echo's Validator interface.
package validator

import (
	domainerrors "marketplace/internal/domain/errors"

	"github.com/go-playground/validator/v10"
)

// CustomValidator wraps a validator.Validate instance for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// New creates a CustomValidator ready to be assigned to echo.Echo.Validator.
func New() *CustomValidator {
	return &CustomValidator{validator: validator.New()}
}

// Validate checks the struct's validate tags and maps failures onto the
// application's validation error so they render with the standard envelope.
func (cv *CustomValidator) Validate(i any) error {
	if err := cv.validator.Struct(i); err != nil {
		return domainerrors.ErrValidationFailed.WithDetails(err.Error())
	}

	return nil
}
