package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// RequestLine is a single (product, quantity) pair from a create request.
type RequestLine struct {
	ProductID string
	Quantity  int
}

// Totals is the result of aggregating request lines against validated
// catalog records.
type Totals struct {
	Amount decimal.Decimal
	Items  int
	Lines  []OrderItem
}

// Aggregate computes order totals from request lines and the validated
// product map. Every line must resolve to a validated product; a miss means
// the caller skipped validation and is reported as ErrInconsistentProductData.
func Aggregate(lines []RequestLine, products map[string]Product) (Totals, error) {
	if len(lines) == 0 {
		return Totals{}, &ValidationError{Message: "order must contain at least one item"}
	}

	totals := Totals{
		Amount: decimal.Zero,
		Lines:  make([]OrderItem, 0, len(lines)),
	}
	for _, line := range lines {
		if line.Quantity <= 0 {
			return Totals{}, &ValidationError{Message: fmt.Sprintf("quantity for product %s must be positive", line.ProductID)}
		}
		product, ok := products[line.ProductID]
		if !ok {
			return Totals{}, fmt.Errorf("%w: no price for product %s", ErrInconsistentProductData, line.ProductID)
		}

		qty := decimal.NewFromInt(int64(line.Quantity))
		totals.Amount = totals.Amount.Add(product.Price.Mul(qty))
		totals.Items += line.Quantity
		totals.Lines = append(totals.Lines, OrderItem{
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
			Price:     product.Price,
		})
	}
	return totals, nil
}

// EnrichedItem is an order line joined with the product name looked up at
// read time. Names are never stored with the order.
type EnrichedItem struct {
	ProductID string
	Name      string
	Quantity  int
	Price     decimal.Decimal
}

// OrderDetail is an order with its lines enriched with product names.
type OrderDetail struct {
	ID          string
	TotalAmount decimal.Decimal
	TotalItems  int
	Status      OrderStatus
	Items       []EnrichedItem
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Enrich joins order lines with product names from a validation result.
// Prices always come from the stored snapshot, not from the catalog records.
func Enrich(order Order, products map[string]Product) OrderDetail {
	detail := OrderDetail{
		ID:          order.ID,
		TotalAmount: order.TotalAmount,
		TotalItems:  order.TotalItems,
		Status:      order.Status,
		Items:       make([]EnrichedItem, 0, len(order.Items)),
		CreatedAt:   order.CreatedAt,
		UpdatedAt:   order.UpdatedAt,
	}
	for _, item := range order.Items {
		detail.Items = append(detail.Items, EnrichedItem{
			ProductID: item.ProductID,
			Name:      products[item.ProductID].Name,
			Quantity:  item.Quantity,
			Price:     item.Price,
		})
	}
	return detail
}
