package handler

import (
	"log/slog"
	"net/http"

	"marketplace/internal/delivery/http/middleware"
	"marketplace/internal/delivery/http/response"
	"marketplace/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// OrderHandler serves customer purchase operations.
type OrderHandler struct {
	uc     usecase.OrderUsecase
	logger *slog.Logger
}

// NewOrderHandler is the constructor for OrderHandler, injected by Fx.
func NewOrderHandler(uc usecase.OrderUsecase, logger *slog.Logger) *OrderHandler {
	return &OrderHandler{
		uc:     uc,
		logger: logger,
	}
}

// PlaceOrder handles the atomic purchase request.
func (h *OrderHandler) PlaceOrder(c echo.Context) error {
	input := new(usecase.PlaceOrderInput)
	if err := c.Bind(input); err != nil {
		return response.BindingError(c, "VALIDATION_FAILED", "Invalid order input")
	}
	if err := c.Validate(input); err != nil {
		return err
	}

	customerID, ok := middleware.UserID(c)
	if !ok {
		return response.Unauthorized(c, "UNAUTHENTICATED", "Missing authenticated user")
	}
	input.CustomerID = customerID

	order, err := h.uc.PlaceOrder(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, toOrderResponse(order), "Order placed successfully")
}

// MyOrders returns the caller's order history newest-first.
func (h *OrderHandler) MyOrders(c echo.Context) error {
	customerID, ok := middleware.UserID(c)
	if !ok {
		return response.Unauthorized(c, "UNAUTHENTICATED", "Missing authenticated user")
	}

	orders, err := h.uc.GetOrdersForCustomer(c.Request().Context(), customerID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toOrderResponseList(orders), "")
}
