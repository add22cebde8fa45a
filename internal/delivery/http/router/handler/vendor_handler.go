package handler

import (
	"log/slog"
	"net/http"

	"marketplace/internal/delivery/http/middleware"
	"marketplace/internal/delivery/http/response"
	domainerrors "marketplace/internal/domain/errors"
	"marketplace/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// VendorHandler serves the vendor's own shop: profile, catalog and earnings.
type VendorHandler struct {
	catalogUC    usecase.CatalogUsecase
	settlementUC usecase.SettlementUsecase
	logger       *slog.Logger
}

// NewVendorHandler is the constructor for VendorHandler, injected by Fx.
func NewVendorHandler(
	catalogUC usecase.CatalogUsecase,
	settlementUC usecase.SettlementUsecase,
	logger *slog.Logger,
) *VendorHandler {
	return &VendorHandler{
		catalogUC:    catalogUC,
		settlementUC: settlementUC,
		logger:       logger,
	}
}

// vendorID resolves the caller's shop ID, preferring the token claim and
// falling back to a profile lookup.
func (h *VendorHandler) vendorID(c echo.Context) (uuid.UUID, error) {
	if id, ok := middleware.VendorID(c); ok {
		return id, nil
	}

	userID, ok := middleware.UserID(c)
	if !ok {
		return uuid.Nil, domainerrors.ErrUnauthenticated
	}

	vendor, err := h.catalogUC.GetVendorProfile(c.Request().Context(), userID)
	if err != nil {
		return uuid.Nil, err
	}

	return vendor.ID, nil
}

// Me returns the caller's vendor profile.
func (h *VendorHandler) Me(c echo.Context) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return response.Unauthorized(c, "UNAUTHENTICATED", "Missing authenticated user")
	}

	vendor, err := h.catalogUC.GetVendorProfile(c.Request().Context(), userID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toVendorResponse(vendor), "")
}

// ListProducts returns the caller's whole catalog, all moderation states.
func (h *VendorHandler) ListProducts(c echo.Context) error {
	vendorID, err := h.vendorID(c)
	if err != nil {
		return errors.WithStack(err)
	}

	products, err := h.catalogUC.ListVendorProducts(c.Request().Context(), vendorID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toProductResponseList(products), "")
}

// AddProduct lists a new product for the caller's shop.
func (h *VendorHandler) AddProduct(c echo.Context) error {
	input := new(usecase.AddProductInput)
	if err := c.Bind(input); err != nil {
		return response.BindingError(c, "VALIDATION_FAILED", "Invalid product input")
	}
	if err := c.Validate(input); err != nil {
		return err
	}

	vendorID, err := h.vendorID(c)
	if err != nil {
		return errors.WithStack(err)
	}
	input.VendorID = vendorID

	product, err := h.catalogUC.AddProduct(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, toProductResponse(product), "Product created successfully")
}

// UpdateProduct applies a partial edit to a caller-owned product.
func (h *VendorHandler) UpdateProduct(c echo.Context) error {
	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BindingError(c, "VALIDATION_FAILED", "Invalid product id")
	}

	input := new(usecase.UpdateProductInput)
	if err := c.Bind(input); err != nil {
		return response.BindingError(c, "VALIDATION_FAILED", "Invalid product input")
	}
	if err := c.Validate(input); err != nil {
		return err
	}

	vendorID, err := h.vendorID(c)
	if err != nil {
		return errors.WithStack(err)
	}
	input.ProductID = productID
	input.VendorID = vendorID

	product, err := h.catalogUC.UpdateProduct(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toProductResponse(product), "Product updated successfully")
}

// DeleteProduct removes a caller-owned product.
func (h *VendorHandler) DeleteProduct(c echo.Context) error {
	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BindingError(c, "VALIDATION_FAILED", "Invalid product id")
	}

	vendorID, err := h.vendorID(c)
	if err != nil {
		return errors.WithStack(err)
	}

	if err := h.catalogUC.DeleteProduct(c.Request().Context(), productID, vendorID); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Product deleted successfully")
}

// Earnings returns the caller's earnings report over ?from&to.
func (h *VendorHandler) Earnings(c echo.Context) error {
	from, to, err := parsePeriod(c.QueryParam("from"), c.QueryParam("to"))
	if err != nil {
		return errors.WithStack(err)
	}

	vendorID, err := h.vendorID(c)
	if err != nil {
		return errors.WithStack(err)
	}

	report, err := h.settlementUC.GetVendorEarnings(c.Request().Context(), vendorID, from, to)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, report, "")
}
