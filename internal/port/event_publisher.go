package port

import (
	"context"

	"github.com/Nest-Microservices-MFY/orders-microservice/internal/core/domain"
)

// EventPublisher emits order lifecycle events to the message bus. Publishing
// is best-effort from the caller's point of view: failures are logged, never
// surfaced to the client.
type EventPublisher interface {
	PublishOrderCreated(ctx context.Context, order domain.Order) error
	PublishStatusChanged(ctx context.Context, order domain.Order, previous domain.OrderStatus) error
}
