package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "PENDING"
	OrderStatusConfirmed OrderStatus = "CONFIRMED"
	OrderStatusCancelled OrderStatus = "CANCELLED"
)

// ParseOrderStatus maps a wire-level status label to an OrderStatus.
func ParseOrderStatus(s string) (OrderStatus, error) {
	switch OrderStatus(s) {
	case OrderStatusPending, OrderStatusConfirmed, OrderStatusCancelled:
		return OrderStatus(s), nil
	default:
		return "", &ValidationError{Message: "unknown order status: " + s}
	}
}

type Order struct {
	ID          string
	TotalAmount decimal.Decimal
	TotalItems  int
	Status      OrderStatus
	Items       []OrderItem
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// OrderItem captures the product price at order-creation time. The snapshot
// is never recomputed from live catalog data.
type OrderItem struct {
	ProductID string
	Quantity  int
	Price     decimal.Decimal
}

// Product is a catalog record as returned by the product-catalog service.
type Product struct {
	ID    string
	Name  string
	Price decimal.Decimal
}
