// Package impl contains the concrete usecase services.
package impl

import (
	"context"
	"fmt"
	"log/slog"

	"marketplace/internal/domain/entity"
	domainerrors "marketplace/internal/domain/errors"
	"marketplace/internal/domain/repository"
	"marketplace/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// orderService implements the OrderUsecase interface.
type orderService struct {
	txManager repository.TransactionManager
	orderRepo repository.OrderRepository
	logger    *slog.Logger
}

// NewOrderService is the constructor for orderService.
func NewOrderService(
	txManager repository.TransactionManager,
	orderRepo repository.OrderRepository,
	logger *slog.Logger,
) usecase.OrderUsecase {
	return &orderService{
		txManager: txManager,
		orderRepo: orderRepo,
		logger:    logger,
	}
}

// requestLine is a parsed purchase request line.
type requestLine struct {
	productID uuid.UUID
	qty       int
}

// PlaceOrder executes the purchase transaction. All stock checks and
// decrements, the order with its line items, and the commission records
// happen inside one database transaction; any failure rolls everything back.
// Product rows are locked in input order, which serializes concurrent orders
// touching the same product so stock can never be oversold.
func (srv *orderService) PlaceOrder(ctx context.Context, input *usecase.PlaceOrderInput) (*entity.Order, error) {
	if len(input.Items) == 0 {
		return nil, domainerrors.ErrEmptyOrder
	}

	// Parse everything up front so malformed input fails before any write.
	lines := make([]requestLine, 0, len(input.Items))
	for _, item := range input.Items {
		productID, err := uuid.Parse(item.ProductID)
		if err != nil {
			return nil, domainerrors.ErrValidationFailed.WithDetails(fmt.Sprintf("invalid product id %q", item.ProductID))
		}
		if item.Qty <= 0 {
			return nil, domainerrors.ErrValidationFailed.WithDetails("qty must be a positive integer")
		}
		lines = append(lines, requestLine{productID: productID, qty: item.Qty})
	}

	var placed *entity.Order

	err := srv.txManager.Execute(ctx, func(repos repository.RepositoryFactory) error {
		productRepo := repos.NewProductRepository()
		orderRepo := repos.NewOrderRepository()
		commissionRepo := repos.NewCommissionRepository()

		totalAmount := decimal.Zero
		items := make([]entity.OrderItem, 0, len(lines))

		for _, line := range lines {
			// The row lock is held until commit or rollback; a concurrent
			// order on the same product blocks here.
			product, err := productRepo.FindByIDForUpdate(ctx, line.productID)
			if err != nil {
				if errors.Is(err, repository.ErrProductNotFound) {
					return domainerrors.ErrProductNotFound.WithDetails(fmt.Sprintf("product %s not found", line.productID))
				}

				return errors.Wrap(err, "failed to load product for order")
			}

			if !product.IsPurchasable() {
				return domainerrors.ErrProductUnavailable.WithDetails(fmt.Sprintf("product %q is not available", product.Title))
			}

			if product.Stock < line.qty {
				return domainerrors.ErrInsufficientStock.WithDetails(fmt.Sprintf("insufficient stock for %q", product.Title))
			}

			// Guarded write: the WHERE stock >= qty clause keeps stock
			// non-negative even if the lock assumption were ever violated.
			if err := productRepo.DecrementStock(ctx, product.ID, line.qty); err != nil {
				if errors.Is(err, repository.ErrStockExhausted) {
					return domainerrors.ErrInsufficientStock.WithDetails(fmt.Sprintf("insufficient stock for %q", product.Title))
				}

				return errors.Wrap(err, "failed to decrement stock")
			}

			unitPrice := product.Price
			lineTotal := unitPrice.Mul(decimal.NewFromInt(int64(line.qty)))
			totalAmount = totalAmount.Add(lineTotal)

			items = append(items, entity.OrderItem{
				ProductID:    product.ID,
				VendorID:     product.VendorID,
				Qty:          line.qty,
				UnitPrice:    unitPrice,
				LineTotal:    lineTotal,
				ProductTitle: product.Title,
			})
		}

		order := &entity.Order{
			CustomerID:  input.CustomerID,
			TotalAmount: totalAmount,
			Status:      entity.OrderPlaced,
			Items:       items,
		}

		if err := orderRepo.Create(ctx, order); err != nil {
			return errors.Wrap(err, "failed to create order")
		}

		// Exactly one commission per persisted line item, split with the
		// pinned rounding policy.
		for i := range order.Items {
			item := &order.Items[i]
			commissionAmount, vendorEarning := entity.SplitLineTotal(item.LineTotal)

			commission := &entity.Commission{
				OrderID:          order.ID,
				OrderItemID:      item.ID,
				VendorID:         item.VendorID,
				CommissionRate:   decimal.NewFromInt(entity.CommissionRatePercent),
				CommissionAmount: commissionAmount,
				VendorEarning:    vendorEarning,
			}
			if err := commissionRepo.Create(ctx, commission); err != nil {
				return errors.Wrap(err, "failed to create commission record")
			}
		}

		placed = order

		return nil
	})

	if err != nil {
		srv.logger.Warn("Order placement failed",
			"customerID", input.CustomerID,
			"items", len(input.Items),
			"error", err.Error(),
		)

		return nil, err
	}

	srv.logger.Info("Order placed",
		"orderID", placed.ID,
		"customerID", placed.CustomerID,
		"total", placed.TotalAmount.String(),
	)

	return placed, nil
}

// GetOrdersForCustomer returns the customer's orders newest-first.
func (srv *orderService) GetOrdersForCustomer(ctx context.Context, customerID uuid.UUID) ([]*entity.Order, error) {
	orders, err := srv.orderRepo.FindByCustomer(ctx, customerID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to fetch customer orders")
	}

	return orders, nil
}
