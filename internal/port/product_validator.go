package port

import (
	"context"

	"github.com/Nest-Microservices-MFY/orders-microservice/internal/core/domain"
)

// ProductValidator resolves product ids against the product-catalog service.
// Implementations must return a record for every requested id or fail:
// missing ids surface as domain.ProductNotFoundError, transport faults as
// domain.ErrUpstreamUnavailable.
type ProductValidator interface {
	Validate(ctx context.Context, ids []string) (map[string]domain.Product, error)
}
