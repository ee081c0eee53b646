package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/Nest-Microservices-MFY/orders-microservice/internal/core/domain"
	"github.com/Nest-Microservices-MFY/orders-microservice/internal/core/service"
)

const (
	defaultPage  = 1
	defaultLimit = 10
	maxLimit     = 100
)

type OrderHandler struct {
	orderService *service.OrderService
	logger       *zap.Logger
}

func NewOrderHandler(orderService *service.OrderService, logger *zap.Logger) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
		logger:       logger,
	}
}

func (h *OrderHandler) RegisterRoutes(router gin.IRouter) {
	orders := router.Group("/api/v1/orders")
	{
		orders.POST("", h.CreateOrder)
		orders.GET("", h.ListOrders)
		orders.GET("/:id", h.GetOrder)
		orders.PATCH("/:id/status", h.ChangeStatus)
	}
}

type createOrderItem struct {
	ProductID string `json:"product_id" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required,gt=0"`
}

type createOrderRequest struct {
	Items          []createOrderItem `json:"items" binding:"required,min=1,dive"`
	IdempotencyKey string            `json:"idempotency_key"`
}

type orderItemResponse struct {
	ProductID string          `json:"product_id"`
	Name      string          `json:"name,omitempty"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
}

type orderResponse struct {
	ID          string              `json:"id"`
	TotalAmount decimal.Decimal     `json:"total_amount"`
	TotalItems  int                 `json:"total_items"`
	Status      string              `json:"status"`
	Items       []orderItemResponse `json:"items,omitempty"`
	CreatedAt   string              `json:"created_at"`
	UpdatedAt   string              `json:"updated_at"`
}

type listMetadata struct {
	Total    int    `json:"total"`
	Page     int    `json:"page"`
	LastPage int    `json:"last_page"`
	Status   string `json:"status,omitempty"`
}

type listOrdersResponse struct {
	Data []orderResponse `json:"data"`
	Meta listMetadata    `json:"metadata"`
}

type changeStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

func detailToResponse(detail *domain.OrderDetail) orderResponse {
	items := make([]orderItemResponse, 0, len(detail.Items))
	for _, item := range detail.Items {
		items = append(items, orderItemResponse{
			ProductID: item.ProductID,
			Name:      item.Name,
			Quantity:  item.Quantity,
			Price:     item.Price,
		})
	}
	return orderResponse{
		ID:          detail.ID,
		TotalAmount: detail.TotalAmount,
		TotalItems:  detail.TotalItems,
		Status:      string(detail.Status),
		Items:       items,
		CreatedAt:   detail.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		UpdatedAt:   detail.UpdatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

func orderToResponse(order domain.Order) orderResponse {
	return orderResponse{
		ID:          order.ID,
		TotalAmount: order.TotalAmount,
		TotalItems:  order.TotalItems,
		Status:      string(order.Status),
		CreatedAt:   order.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		UpdatedAt:   order.UpdatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

func (h *OrderHandler) CreateOrder(c *gin.Context) {
	var req createOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"code":    "VALIDATION_FAILED",
			"message": "invalid request body: " + err.Error(),
		})
		return
	}

	lines := make([]domain.RequestLine, 0, len(req.Items))
	for _, item := range req.Items {
		lines = append(lines, domain.RequestLine{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		})
	}

	// Body field wins; the header is the fallback for clients that prefer it.
	key := req.IdempotencyKey
	if key == "" {
		key = c.GetHeader("Idempotency-Key")
	}

	detail, err := h.orderService.Create(c.Request.Context(), service.CreateOrderRequest{
		Items:          lines,
		IdempotencyKey: key,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, detailToResponse(detail))
}

func (h *OrderHandler) ListOrders(c *gin.Context) {
	page, err := queryInt(c, "page", defaultPage)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": "VALIDATION_FAILED", "message": "page must be an integer"})
		return
	}
	limit, err := queryInt(c, "limit", defaultLimit)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": "VALIDATION_FAILED", "message": "limit must be an integer"})
		return
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	var status *domain.OrderStatus
	if raw := c.Query("status"); raw != "" {
		parsed, err := domain.ParseOrderStatus(raw)
		if err != nil {
			h.respondError(c, err)
			return
		}
		status = &parsed
	}

	result, err := h.orderService.FindAll(c.Request.Context(), page, limit, status)
	if err != nil {
		h.respondError(c, err)
		return
	}

	data := make([]orderResponse, 0, len(result.Data))
	for _, order := range result.Data {
		data = append(data, orderToResponse(order))
	}

	meta := listMetadata{
		Total:    result.Total,
		Page:     result.Page,
		LastPage: result.LastPage,
	}
	if result.Status != nil {
		meta.Status = string(*result.Status)
	}

	c.JSON(http.StatusOK, listOrdersResponse{Data: data, Meta: meta})
}

func (h *OrderHandler) GetOrder(c *gin.Context) {
	detail, err := h.orderService.FindOne(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, detailToResponse(detail))
}

func (h *OrderHandler) ChangeStatus(c *gin.Context) {
	var req changeStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"code":    "VALIDATION_FAILED",
			"message": "invalid request body: " + err.Error(),
		})
		return
	}

	status, err := domain.ParseOrderStatus(req.Status)
	if err != nil {
		h.respondError(c, err)
		return
	}

	order, err := h.orderService.ChangeStatus(c.Request.Context(), c.Param("id"), status)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, orderToResponse(*order))
}

// respondError maps domain errors to HTTP status codes. Unknown errors are
// logged and reported as a generic 500 so internals never leak to clients.
func (h *OrderHandler) respondError(c *gin.Context, err error) {
	var (
		validation *domain.ValidationError
		notFound   *domain.NotFoundError
		products   *domain.ProductNotFoundError
		outOfRange *domain.PageOutOfRangeError
		forbidden  *domain.ForbiddenTransitionError
	)

	switch {
	case errors.As(err, &validation):
		c.JSON(http.StatusBadRequest, gin.H{"code": "VALIDATION_FAILED", "message": validation.Message})
	case errors.As(err, &products):
		c.JSON(http.StatusBadRequest, gin.H{
			"code":    "PRODUCTS_NOT_FOUND",
			"message": products.Error(),
			"ids":     products.IDs,
		})
	case errors.As(err, &notFound):
		c.JSON(http.StatusNotFound, gin.H{"code": "ORDER_NOT_FOUND", "message": notFound.Error()})
	case errors.As(err, &outOfRange):
		c.JSON(http.StatusBadRequest, gin.H{
			"code":           "PAGE_OUT_OF_RANGE",
			"message":        outOfRange.Error(),
			"requested_page": outOfRange.RequestedPage,
			"last_page":      outOfRange.LastPage,
		})
	case errors.As(err, &forbidden):
		c.JSON(http.StatusConflict, gin.H{"code": "FORBIDDEN_TRANSITION", "message": forbidden.Error()})
	case errors.Is(err, domain.ErrDuplicateRequest):
		c.JSON(http.StatusConflict, gin.H{"code": "DUPLICATE_REQUEST", "message": "request already processed"})
	case errors.Is(err, domain.ErrUpstreamUnavailable):
		c.JSON(http.StatusBadGateway, gin.H{"code": "CATALOG_UNAVAILABLE", "message": "product catalog unavailable"})
	case errors.Is(err, domain.ErrStorageUnavailable):
		c.JSON(http.StatusServiceUnavailable, gin.H{"code": "STORAGE_UNAVAILABLE", "message": "storage unavailable"})
	default:
		h.logger.Error("unhandled error", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"code": "INTERNAL", "message": "internal server error"})
	}
}

func queryInt(c *gin.Context, name string, fallback int) (int, error) {
	raw := c.Query(name)
	if raw == "" {
		return fallback, nil
	}
	return strconv.Atoi(raw)
}
