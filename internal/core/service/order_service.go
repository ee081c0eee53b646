package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Nest-Microservices-MFY/orders-microservice/internal/core/domain"
	"github.com/Nest-Microservices-MFY/orders-microservice/internal/port"
)

// OrderService orchestrates order creation, retrieval and status changes.
// It holds no cross-request state; every method is safe for concurrent use.
type OrderService struct {
	repo      port.OrderRepository
	validator port.ProductValidator
	cache     port.CacheRepository
	events    port.EventPublisher
	logger    *zap.Logger
}

func NewOrderService(
	repo port.OrderRepository,
	validator port.ProductValidator,
	cache port.CacheRepository,
	events port.EventPublisher,
	logger *zap.Logger,
) *OrderService {
	return &OrderService{
		repo:      repo,
		validator: validator,
		cache:     cache,
		events:    events,
		logger:    logger,
	}
}

type CreateOrderRequest struct {
	Items          []domain.RequestLine
	IdempotencyKey string
}

// OrderPage is the result of a paginated list query.
type OrderPage struct {
	Total    int
	Page     int
	LastPage int
	Status   *domain.OrderStatus
	Data     []domain.Order
}

// Create validates the referenced products against the catalog, computes
// totals from the returned prices, and persists the order atomically.
// Any failure aborts the whole operation; nothing partial is persisted.
func (s *OrderService) Create(ctx context.Context, req CreateOrderRequest) (*domain.OrderDetail, error) {
	if err := validateCreateRequest(req); err != nil {
		return nil, err
	}

	if req.IdempotencyKey != "" {
		ok, err := s.cache.SetIdempotency(ctx, req.IdempotencyKey)
		if err != nil {
			return nil, fmt.Errorf("idempotency check failed: %w", err)
		}
		if !ok {
			return nil, domain.ErrDuplicateRequest
		}
	}

	detail, err := s.create(ctx, req)
	if err != nil && req.IdempotencyKey != "" {
		// The order was not created; free the key so the caller may retry.
		if releaseErr := s.cache.ReleaseIdempotency(ctx, req.IdempotencyKey); releaseErr != nil {
			s.logger.Error("failed to release idempotency key",
				zap.String("key", req.IdempotencyKey),
				zap.Error(releaseErr))
		}
	}
	return detail, err
}

func (s *OrderService) create(ctx context.Context, req CreateOrderRequest) (*domain.OrderDetail, error) {
	products, err := s.validator.Validate(ctx, distinctProductIDs(req.Items))
	if err != nil {
		return nil, err
	}

	// Never persist after a cancelled validation phase.
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	totals, err := domain.Aggregate(req.Items, products)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	order := domain.Order{
		ID:          uuid.New().String(),
		TotalAmount: totals.Amount,
		TotalItems:  totals.Items,
		Status:      domain.OrderStatusPending,
		Items:       totals.Lines,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.CreateOrder(ctx, order); err != nil {
		return nil, err
	}

	s.logger.Info("order created",
		zap.String("order_id", order.ID),
		zap.String("total_amount", order.TotalAmount.String()),
		zap.Int("total_items", order.TotalItems))

	if err := s.events.PublishOrderCreated(ctx, order); err != nil {
		// Eventual consistency: the order is persisted, the event is not.
		s.logger.Error("failed to publish order created event",
			zap.String("order_id", order.ID),
			zap.Error(err))
	}

	// Names come from the validation result obtained above, never from a
	// second catalog call.
	detail := domain.Enrich(order, products)
	return &detail, nil
}

// FindAll returns a page of order headers, optionally filtered by status.
func (s *OrderService) FindAll(ctx context.Context, page, limit int, status *domain.OrderStatus) (*OrderPage, error) {
	total, err := s.repo.CountByStatus(ctx, status)
	if err != nil {
		return nil, err
	}

	window, err := domain.Paginate(total, limit, page)
	if err != nil {
		return nil, err
	}

	result := &OrderPage{
		Total:    total,
		Page:     page,
		LastPage: window.LastPage,
		Status:   status,
		Data:     []domain.Order{},
	}
	if total == 0 {
		return result, nil
	}

	orders, err := s.repo.ListByStatus(ctx, status, window.Offset, limit)
	if err != nil {
		return nil, err
	}
	result.Data = orders
	return result, nil
}

// FindOne loads an order and enriches its items with current product names.
// Prices stay the stored snapshots from creation time.
func (s *OrderService) FindOne(ctx context.Context, id string) (*domain.OrderDetail, error) {
	order, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	ids := make([]domain.RequestLine, 0, len(order.Items))
	for _, item := range order.Items {
		ids = append(ids, domain.RequestLine{ProductID: item.ProductID})
	}
	products, err := s.validator.Validate(ctx, distinctProductIDs(ids))
	if err != nil {
		return nil, err
	}

	detail := domain.Enrich(*order, products)
	return &detail, nil
}

// ChangeStatus applies a status transition. A same-status request is a
// no-op that performs no persistence write.
func (s *OrderService) ChangeStatus(ctx context.Context, id string, status domain.OrderStatus) (*domain.Order, error) {
	order, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	changed, err := domain.Transition(order.Status, status)
	if err != nil {
		return nil, err
	}
	if !changed {
		return order, nil
	}

	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}

	previous := order.Status
	order.Status = status
	order.UpdatedAt = time.Now().UTC()

	s.logger.Info("order status changed",
		zap.String("order_id", order.ID),
		zap.String("from", string(previous)),
		zap.String("to", string(status)))

	if err := s.events.PublishStatusChanged(ctx, *order, previous); err != nil {
		s.logger.Error("failed to publish status changed event",
			zap.String("order_id", order.ID),
			zap.Error(err))
	}

	return order, nil
}

func validateCreateRequest(req CreateOrderRequest) error {
	if len(req.Items) == 0 {
		return &domain.ValidationError{Message: "order must contain at least one item"}
	}
	for _, line := range req.Items {
		if line.ProductID == "" {
			return &domain.ValidationError{Message: "product id is required"}
		}
		if line.Quantity <= 0 {
			return &domain.ValidationError{Message: fmt.Sprintf("quantity for product %s must be positive", line.ProductID)}
		}
	}
	return nil
}

// distinctProductIDs deduplicates ids preserving first-seen order.
func distinctProductIDs(lines []domain.RequestLine) []string {
	seen := make(map[string]struct{}, len(lines))
	ids := make([]string, 0, len(lines))
	for _, line := range lines {
		if _, ok := seen[line.ProductID]; ok {
			continue
		}
		seen[line.ProductID] = struct{}{}
		ids = append(ids, line.ProductID)
	}
	return ids
}
