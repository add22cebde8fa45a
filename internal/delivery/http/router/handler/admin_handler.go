package handler

import (
	"log/slog"
	"net/http"

	"marketplace/internal/delivery/http/response"
	"marketplace/internal/domain/entity"
	domainerrors "marketplace/internal/domain/errors"
	"marketplace/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// AdminHandler serves the moderation and settlement back office.
type AdminHandler struct {
	moderationUC usecase.ModerationUsecase
	settlementUC usecase.SettlementUsecase
	logger       *slog.Logger
}

// NewAdminHandler is the constructor for AdminHandler, injected by Fx.
func NewAdminHandler(
	moderationUC usecase.ModerationUsecase,
	settlementUC usecase.SettlementUsecase,
	logger *slog.Logger,
) *AdminHandler {
	return &AdminHandler{
		moderationUC: moderationUC,
		settlementUC: settlementUC,
		logger:       logger,
	}
}

// statusFilter parses the optional ?status query parameter.
func statusFilter(c echo.Context) (*entity.ApprovalStatus, error) {
	raw := c.QueryParam("status")
	if raw == "" {
		return nil, nil
	}

	status := entity.ApprovalStatus(raw)
	if !status.IsValid() {
		return nil, domainerrors.ErrValidationFailed.WithDetails("unknown status: " + raw)
	}

	return &status, nil
}

func pathID(c echo.Context) (uuid.UUID, error) {
	return uuid.Parse(c.Param("id"))
}

// ListVendors returns vendors with owner details, optionally filtered by
// ?status.
func (h *AdminHandler) ListVendors(c echo.Context) error {
	status, err := statusFilter(c)
	if err != nil {
		return errors.WithStack(err)
	}

	vendors, err := h.moderationUC.ListVendors(c.Request().Context(), status)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toVendorResponseList(vendors), "")
}

// ApproveVendor transitions a vendor to APPROVED.
func (h *AdminHandler) ApproveVendor(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return response.BindingError(c, "VALIDATION_FAILED", "Invalid vendor id")
	}

	vendor, err := h.moderationUC.ApproveVendor(c.Request().Context(), id)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toVendorResponse(vendor), "Vendor approved")
}

// RejectVendor transitions a vendor to REJECTED.
func (h *AdminHandler) RejectVendor(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return response.BindingError(c, "VALIDATION_FAILED", "Invalid vendor id")
	}

	vendor, err := h.moderationUC.RejectVendor(c.Request().Context(), id)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toVendorResponse(vendor), "Vendor rejected")
}

// ListProducts returns products across all vendors, optionally filtered by
// ?status.
func (h *AdminHandler) ListProducts(c echo.Context) error {
	status, err := statusFilter(c)
	if err != nil {
		return errors.WithStack(err)
	}

	products, err := h.moderationUC.ListProducts(c.Request().Context(), status)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toProductResponseList(products), "")
}

// ApproveProduct transitions a product to APPROVED and makes it visible.
func (h *AdminHandler) ApproveProduct(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return response.BindingError(c, "VALIDATION_FAILED", "Invalid product id")
	}

	product, err := h.moderationUC.ApproveProduct(c.Request().Context(), id)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toProductResponse(product), "Product approved")
}

// RejectProduct transitions a product to REJECTED and hides it.
func (h *AdminHandler) RejectProduct(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return response.BindingError(c, "VALIDATION_FAILED", "Invalid product id")
	}

	product, err := h.moderationUC.RejectProduct(c.Request().Context(), id)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toProductResponse(product), "Product rejected")
}

type setVisibilityRequest struct {
	IsVisible *bool `json:"isVisible" validate:"required"`
}

// SetProductVisibility toggles a product's listing visibility.
func (h *AdminHandler) SetProductVisibility(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return response.BindingError(c, "VALIDATION_FAILED", "Invalid product id")
	}

	req := new(setVisibilityRequest)
	if err := c.Bind(req); err != nil {
		return response.BindingError(c, "VALIDATION_FAILED", "Invalid visibility input")
	}
	if err := c.Validate(req); err != nil {
		return err
	}

	product, err := h.moderationUC.SetProductVisibility(c.Request().Context(), id, *req.IsVisible)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toProductResponse(product), "Product visibility updated")
}

type generateSettlementRequest struct {
	VendorID string `json:"vendorId" validate:"required,uuid"`
	From     string `json:"from" validate:"required"`
	To       string `json:"to" validate:"required"`
}

// GenerateSettlement snapshots a vendor's earnings over a period into a
// PENDING settlement.
func (h *AdminHandler) GenerateSettlement(c echo.Context) error {
	req := new(generateSettlementRequest)
	if err := c.Bind(req); err != nil {
		return response.BindingError(c, "VALIDATION_FAILED", "Invalid settlement input")
	}
	if err := c.Validate(req); err != nil {
		return err
	}

	vendorID, err := uuid.Parse(req.VendorID)
	if err != nil {
		return response.BindingError(c, "VALIDATION_FAILED", "Invalid vendor id")
	}

	from, to, err := parsePeriod(req.From, req.To)
	if err != nil {
		return errors.WithStack(err)
	}

	settlement, err := h.settlementUC.GenerateSettlement(c.Request().Context(), &usecase.GenerateSettlementInput{
		VendorID: vendorID,
		From:     from,
		To:       to,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toSettlementResponse(settlement), "Settlement generated")
}

// ListSettlements returns all settlements newest-first.
func (h *AdminHandler) ListSettlements(c echo.Context) error {
	settlements, err := h.settlementUC.ListSettlements(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toSettlementResponseList(settlements), "")
}

// MarkSettlementPaid transitions a settlement to PAID.
func (h *AdminHandler) MarkSettlementPaid(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return response.BindingError(c, "VALIDATION_FAILED", "Invalid settlement id")
	}

	settlement, err := h.settlementUC.MarkSettlementPaid(c.Request().Context(), id)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toSettlementResponse(settlement), "Settlement marked as paid")
}
