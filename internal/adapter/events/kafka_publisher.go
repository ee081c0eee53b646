package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"

	"github.com/Nest-Microservices-MFY/orders-microservice/internal/core/domain"
)

const (
	TopicOrderEvents = "order-events"

	EventOrderCreated  = "order.created"
	EventStatusChanged = "order.status.changed"
)

type OrderItemPayload struct {
	ProductID string          `json:"product_id"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
}

type OrderCreatedEvent struct {
	EventID     string             `json:"event_id"`
	EventType   string             `json:"event_type"`
	OrderID     string             `json:"order_id"`
	TotalAmount decimal.Decimal    `json:"total_amount"`
	TotalItems  int                `json:"total_items"`
	Status      string             `json:"status"`
	Items       []OrderItemPayload `json:"items"`
	Timestamp   time.Time          `json:"timestamp"`
}

type StatusChangedEvent struct {
	EventID        string    `json:"event_id"`
	EventType      string    `json:"event_type"`
	OrderID        string    `json:"order_id"`
	PreviousStatus string    `json:"previous_status"`
	Status         string    `json:"status"`
	Timestamp      time.Time `json:"timestamp"`
}

// KafkaPublisher writes order lifecycle events to a single topic, keyed by
// order id so events for one order stay in partition order.
type KafkaPublisher struct {
	writer *kafka.Writer
}

func NewKafkaPublisher(brokers []string, topic string) *KafkaPublisher {
	writer := &kafka.Writer{
		Addr:     kafka.TCP(brokers...),
		Topic:    topic,
		Balancer: &kafka.LeastBytes{},
	}
	return &KafkaPublisher{writer: writer}
}

func (p *KafkaPublisher) PublishOrderCreated(ctx context.Context, order domain.Order) error {
	items := make([]OrderItemPayload, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, OrderItemPayload{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     item.Price,
		})
	}

	event := OrderCreatedEvent{
		EventID:     uuid.New().String(),
		EventType:   EventOrderCreated,
		OrderID:     order.ID,
		TotalAmount: order.TotalAmount,
		TotalItems:  order.TotalItems,
		Status:      string(order.Status),
		Items:       items,
		Timestamp:   time.Now().UTC(),
	}
	return p.publish(ctx, order.ID, event)
}

func (p *KafkaPublisher) PublishStatusChanged(ctx context.Context, order domain.Order, previous domain.OrderStatus) error {
	event := StatusChangedEvent{
		EventID:        uuid.New().String(),
		EventType:      EventStatusChanged,
		OrderID:        order.ID,
		PreviousStatus: string(previous),
		Status:         string(order.Status),
		Timestamp:      time.Now().UTC(),
	}
	return p.publish(ctx, order.ID, event)
}

func (p *KafkaPublisher) publish(ctx context.Context, key string, event any) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(key),
		Value: data,
	}); err != nil {
		return fmt.Errorf("write message: %w", err)
	}
	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}
