package middleware

import (
	"strings"

	"marketplace/internal/delivery/http/response"
	"marketplace/internal/domain/entity"
	"marketplace/internal/domain/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// Context keys set by Authenticate for downstream handlers.
const (
	ContextUserID   = "userID"
	ContextRole     = "role"
	ContextVendorID = "vendorID"
)

// AuthMiddleware provides middleware for JWT authentication and authorization.
type AuthMiddleware struct {
	tokenSvc service.TokenService
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(tokenSvc service.TokenService) *AuthMiddleware {
	return &AuthMiddleware{tokenSvc: tokenSvc}
}

// Authenticate validates the bearer access token and stores the caller's
// identity on the request context.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get("Authorization")
		if authHeader == "" {
			return response.Unauthorized(c, "UNAUTHENTICATED", "Authorization header is missing")
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			return response.Unauthorized(c, "UNAUTHENTICATED", "Invalid token format, must be Bearer token")
		}

		claims, err := m.tokenSvc.ValidateAccessToken(tokenString)
		if err != nil {
			return response.Unauthorized(c, "UNAUTHENTICATED", "Invalid or expired token")
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextRole, claims.Role)
		if claims.VendorID != nil {
			c.Set(ContextVendorID, *claims.VendorID)
		}

		return next(c)
	}
}

// RequireRole is a middleware factory that checks the caller holds a role.
// It must be used AFTER the Authenticate middleware.
func (m *AuthMiddleware) RequireRole(requiredRole entity.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, ok := c.Get(ContextRole).(entity.Role)
			if !ok {
				return response.Forbidden(c, "FORBIDDEN", "Permission denied: role information missing")
			}

			if role != requiredRole {
				return response.Forbidden(c, "FORBIDDEN", "Permission denied: require '"+requiredRole.String()+"' role")
			}

			return next(c)
		}
	}
}

// UserID returns the authenticated user's ID from the context.
func UserID(c echo.Context) (uuid.UUID, bool) {
	id, ok := c.Get(ContextUserID).(uuid.UUID)

	return id, ok
}

// VendorID returns the authenticated vendor's shop ID from the context.
// Present only for VENDOR callers.
func VendorID(c echo.Context) (uuid.UUID, bool) {
	id, ok := c.Get(ContextVendorID).(uuid.UUID)

	return id, ok
}
