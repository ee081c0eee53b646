package port

import (
	"context"

	"github.com/Nest-Microservices-MFY/orders-microservice/internal/core/domain"
)

// OrderRepository is the persistence boundary for orders. A nil status
// filter means "all statuses".
type OrderRepository interface {
	// CreateOrder persists the order header and every item atomically.
	CreateOrder(ctx context.Context, order domain.Order) error

	// GetByID loads an order with its items. Returns domain.NotFoundError
	// when the id does not resolve.
	GetByID(ctx context.Context, id string) (*domain.Order, error)

	// UpdateStatus persists a status change on a single order.
	UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) error

	// CountByStatus counts orders, optionally filtered by status.
	CountByStatus(ctx context.Context, status *domain.OrderStatus) (int, error)

	// ListByStatus returns order headers only; items are not loaded for
	// list views.
	ListByStatus(ctx context.Context, status *domain.OrderStatus, offset, limit int) ([]domain.Order, error)
}
