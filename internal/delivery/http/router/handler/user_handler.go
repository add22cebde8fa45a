package handler

import (
	"log/slog"
	"net/http"

	"marketplace/internal/delivery/http/response"
	"marketplace/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// UserHandler holds dependencies for account and credential handlers.
type UserHandler struct {
	uc     usecase.UserUsecase
	logger *slog.Logger
}

// NewUserHandler is the constructor for UserHandler, injected by Fx.
func NewUserHandler(uc usecase.UserUsecase, logger *slog.Logger) *UserHandler {
	return &UserHandler{
		uc:     uc,
		logger: logger,
	}
}

// Register handles account registration for customers and vendors.
func (h *UserHandler) Register(c echo.Context) error {
	input := new(usecase.RegisterInput)
	if err := c.Bind(input); err != nil {
		return response.BindingError(c, "VALIDATION_FAILED", "Invalid registration input")
	}
	if err := c.Validate(input); err != nil {
		return err
	}

	output, err := h.uc.Register(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, output, "User registered successfully")
}

// Login handles the credential check and token issuance.
func (h *UserHandler) Login(c echo.Context) error {
	input := new(usecase.LoginInput)
	if err := c.Bind(input); err != nil {
		return response.BindingError(c, "VALIDATION_FAILED", "Invalid login input")
	}
	if err := c.Validate(input); err != nil {
		return err
	}

	output, err := h.uc.Login(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, output, "Login successful")
}

// RefreshToken rotates a refresh token into a new token pair.
func (h *UserHandler) RefreshToken(c echo.Context) error {
	input := new(usecase.RefreshTokenInput)
	if err := c.Bind(input); err != nil {
		return response.BindingError(c, "VALIDATION_FAILED", "Invalid refresh token input")
	}
	if err := c.Validate(input); err != nil {
		return err
	}

	output, err := h.uc.RefreshToken(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, output, "Token refreshed successfully")
}

// Logout ends the session identified by the refresh token.
func (h *UserHandler) Logout(c echo.Context) error {
	input := new(usecase.LogoutInput)
	if err := c.Bind(input); err != nil {
		return response.BindingError(c, "VALIDATION_FAILED", "Invalid logout input")
	}
	if err := c.Validate(input); err != nil {
		return err
	}

	if err := h.uc.Logout(c.Request().Context(), input); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Logout successful")
}
