package handler

import (
	"log/slog"
	"net/http"

	"marketplace/internal/delivery/http/response"
	"marketplace/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// CatalogHandler serves the public storefront.
type CatalogHandler struct {
	uc     usecase.CatalogUsecase
	logger *slog.Logger
}

// NewCatalogHandler is the constructor for CatalogHandler, injected by Fx.
func NewCatalogHandler(uc usecase.CatalogUsecase, logger *slog.Logger) *CatalogHandler {
	return &CatalogHandler{
		uc:     uc,
		logger: logger,
	}
}

// ListPublicProducts returns approved, visible products with shop names.
func (h *CatalogHandler) ListPublicProducts(c echo.Context) error {
	products, err := h.uc.ListPublicProducts(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toProductResponseList(products), "")
}
