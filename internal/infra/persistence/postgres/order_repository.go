package postgres

import (
	"context"

	"marketplace/internal/domain/entity"
	"marketplace/internal/domain/repository"
	"marketplace/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// orderRepository implements the domain.OrderRepository interface using GORM.
type orderRepository struct {
	db *gorm.DB
}

// NewOrderRepository is the constructor for orderRepository.
func NewOrderRepository(db *gorm.DB) repository.OrderRepository {
	return &orderRepository{db: db}
}

// Create persists an order with its line items in one GORM create; the
// association insert shares the surrounding transaction.
func (repo *orderRepository) Create(ctx context.Context, order *entity.Order) error {
	orderM := fromOrderDomain(order)

	if err := repo.db.WithContext(ctx).Create(orderM).Error; err != nil {
		return errors.Wrap(err, "failed to create order")
	}

	// Propagate the generated IDs back so commission rows can reference
	// the persisted line items.
	order.ID = orderM.ID
	order.CreatedAt = orderM.CreatedAt
	order.UpdatedAt = orderM.UpdatedAt
	for i := range orderM.Items {
		order.Items[i].ID = orderM.Items[i].ID
		order.Items[i].OrderID = orderM.Items[i].OrderID
		order.Items[i].CreatedAt = orderM.Items[i].CreatedAt
	}

	return nil
}

// FindByCustomer returns a customer's orders newest-first with line items
// and product titles attached.
func (repo *orderRepository) FindByCustomer(ctx context.Context, customerID uuid.UUID) ([]*entity.Order, error) {
	var orderMs []model.OrderModel
	err := repo.db.WithContext(ctx).
		Preload("Items").
		Preload("Items.Product").
		Where("customer_id = ?", customerID).
		Order("created_at DESC").
		Find(&orderMs).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list customer orders")
	}

	orders := make([]*entity.Order, 0, len(orderMs))
	for i := range orderMs {
		orders = append(orders, toOrderDomain(&orderMs[i]))
	}

	return orders, nil
}

func toOrderDomain(m *model.OrderModel) *entity.Order {
	order := &entity.Order{
		ID:          m.ID,
		CustomerID:  m.CustomerID,
		TotalAmount: m.TotalAmount,
		Status:      entity.OrderStatus(m.Status),
		Items:       make([]entity.OrderItem, 0, len(m.Items)),
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
	for i := range m.Items {
		itemM := &m.Items[i]
		item := entity.OrderItem{
			ID:        itemM.ID,
			OrderID:   itemM.OrderID,
			ProductID: itemM.ProductID,
			VendorID:  itemM.VendorID,
			Qty:       itemM.Qty,
			UnitPrice: itemM.UnitPrice,
			LineTotal: itemM.LineTotal,
			CreatedAt: itemM.CreatedAt,
		}
		if itemM.Product != nil {
			item.ProductTitle = itemM.Product.Title
		}
		order.Items = append(order.Items, item)
	}

	return order
}

func fromOrderDomain(order *entity.Order) *model.OrderModel {
	orderM := &model.OrderModel{
		ID:          order.ID,
		CustomerID:  order.CustomerID,
		TotalAmount: order.TotalAmount,
		Status:      string(order.Status),
		Items:       make([]model.OrderItemModel, 0, len(order.Items)),
	}
	for i := range order.Items {
		item := &order.Items[i]
		orderM.Items = append(orderM.Items, model.OrderItemModel{
			ID:        item.ID,
			ProductID: item.ProductID,
			VendorID:  item.VendorID,
			Qty:       item.Qty,
			UnitPrice: item.UnitPrice,
			LineTotal: item.LineTotal,
		})
	}

	return orderM
}
