package handler

import (
	"time"

	"marketplace/internal/domain/entity"

	"github.com/shopspring/decimal"
)

// Response DTOs returned by the handlers. Entities are never serialized
// directly so the wire shape stays stable and hashes never leak.

// VendorResponse is the public shape of a vendor profile.
type VendorResponse struct {
	ID         string    `json:"id"`
	ShopName   string    `json:"shopName"`
	Status     string    `json:"status"`
	OwnerName  string    `json:"ownerName,omitempty"`
	OwnerEmail string    `json:"ownerEmail,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}

func toVendorResponse(vendor *entity.Vendor) *VendorResponse {
	return &VendorResponse{
		ID:         vendor.ID.String(),
		ShopName:   vendor.ShopName,
		Status:     string(vendor.Status),
		OwnerName:  vendor.OwnerName,
		OwnerEmail: vendor.OwnerEmail,
		CreatedAt:  vendor.CreatedAt,
	}
}

func toVendorResponseList(vendors []*entity.Vendor) []*VendorResponse {
	out := make([]*VendorResponse, 0, len(vendors))
	for _, vendor := range vendors {
		out = append(out, toVendorResponse(vendor))
	}

	return out
}

// ProductResponse is the public shape of a catalog product.
type ProductResponse struct {
	ID          string          `json:"id"`
	VendorID    string          `json:"vendorId"`
	Title       string          `json:"title"`
	Description string          `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock"`
	Status      string          `json:"status"`
	IsVisible   bool            `json:"isVisible"`
	ShopName    string          `json:"shopName,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

func toProductResponse(product *entity.Product) *ProductResponse {
	return &ProductResponse{
		ID:          product.ID.String(),
		VendorID:    product.VendorID.String(),
		Title:       product.Title,
		Description: product.Description,
		Price:       product.Price,
		Stock:       product.Stock,
		Status:      string(product.Status),
		IsVisible:   product.IsVisible,
		ShopName:    product.ShopName,
		CreatedAt:   product.CreatedAt,
		UpdatedAt:   product.UpdatedAt,
	}
}

func toProductResponseList(products []*entity.Product) []*ProductResponse {
	out := make([]*ProductResponse, 0, len(products))
	for _, product := range products {
		out = append(out, toProductResponse(product))
	}

	return out
}

// OrderItemResponse is one purchase line inside an order.
type OrderItemResponse struct {
	ID           string          `json:"id"`
	ProductID    string          `json:"productId"`
	ProductTitle string          `json:"productTitle,omitempty"`
	VendorID     string          `json:"vendorId"`
	Qty          int             `json:"qty"`
	UnitPrice    decimal.Decimal `json:"unitPrice"`
	LineTotal    decimal.Decimal `json:"lineTotal"`
}

// OrderResponse is the public shape of an order.
type OrderResponse struct {
	ID          string              `json:"id"`
	TotalAmount decimal.Decimal     `json:"totalAmount"`
	Status      string              `json:"status"`
	Items       []OrderItemResponse `json:"items"`
	CreatedAt   time.Time           `json:"createdAt"`
}

func toOrderResponse(order *entity.Order) *OrderResponse {
	out := &OrderResponse{
		ID:          order.ID.String(),
		TotalAmount: order.TotalAmount,
		Status:      string(order.Status),
		Items:       make([]OrderItemResponse, 0, len(order.Items)),
		CreatedAt:   order.CreatedAt,
	}
	for i := range order.Items {
		item := &order.Items[i]
		out.Items = append(out.Items, OrderItemResponse{
			ID:           item.ID.String(),
			ProductID:    item.ProductID.String(),
			ProductTitle: item.ProductTitle,
			VendorID:     item.VendorID.String(),
			Qty:          item.Qty,
			UnitPrice:    item.UnitPrice,
			LineTotal:    item.LineTotal,
		})
	}

	return out
}

func toOrderResponseList(orders []*entity.Order) []*OrderResponse {
	out := make([]*OrderResponse, 0, len(orders))
	for _, order := range orders {
		out = append(out, toOrderResponse(order))
	}

	return out
}

// SettlementResponse is the public shape of a payout snapshot.
type SettlementResponse struct {
	ID              string          `json:"id"`
	VendorID        string          `json:"vendorId"`
	ShopName        string          `json:"shopName,omitempty"`
	GrossSales      decimal.Decimal `json:"grossSales"`
	CommissionTotal decimal.Decimal `json:"commissionTotal"`
	Amount          decimal.Decimal `json:"amount"`
	PeriodFrom      time.Time       `json:"periodFrom"`
	PeriodTo        time.Time       `json:"periodTo"`
	Status          string          `json:"status"`
	GeneratedAt     time.Time       `json:"generatedAt"`
	PaidAt          *time.Time      `json:"paidAt,omitempty"`
}

func toSettlementResponse(settlement *entity.Settlement) *SettlementResponse {
	return &SettlementResponse{
		ID:              settlement.ID.String(),
		VendorID:        settlement.VendorID.String(),
		ShopName:        settlement.ShopName,
		GrossSales:      settlement.GrossSales,
		CommissionTotal: settlement.CommissionTotal,
		Amount:          settlement.Amount,
		PeriodFrom:      settlement.PeriodFrom,
		PeriodTo:        settlement.PeriodTo,
		Status:          string(settlement.Status),
		GeneratedAt:     settlement.GeneratedAt,
		PaidAt:          settlement.PaidAt,
	}
}

func toSettlementResponseList(settlements []*entity.Settlement) []*SettlementResponse {
	out := make([]*SettlementResponse, 0, len(settlements))
	for _, settlement := range settlements {
		out = append(out, toSettlementResponse(settlement))
	}

	return out
}
