package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/bookhaven/order-service/internal/domains/orders/domain"
	"github.com/bookhaven/order-service/internal/domains/orders/ports"
)

var _ ports.EventPublisher = (*Publisher)(nil)

// DefaultTopic carries order-accepted announcements.
const DefaultTopic = "order-accepted"

// orderAcceptedMessage is the wire shape consumed by downstream services.
type orderAcceptedMessage struct {
	OrderID   int64     `json:"orderId"`
	ISBN      string    `json:"isbn"`
	Quantity  int       `json:"quantity"`
	Timestamp time.Time `json:"timestamp"`
}

// Publisher announces accepted orders on a Kafka topic, keyed by ISBN.
type Publisher struct {
	writer *kafka.Writer
}

// NewPublisher builds a publisher for the given brokers and topic.
func NewPublisher(brokers []string, topic string) (*Publisher, error) {
	if len(brokers) == 0 {
		return nil, errors.New("at least one kafka broker is required")
	}
	if topic == "" {
		topic = DefaultTopic
	}
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
	}
	return &Publisher{writer: writer}, nil
}

// OrderAccepted publishes one message per accepted order. The caller treats
// failures as best-effort; this method only reports them.
func (p *Publisher) OrderAccepted(ctx context.Context, order *domain.Order) error {
	if p == nil || p.writer == nil {
		return errors.New("kafka publisher not configured")
	}
	if order == nil {
		return errors.New("order is nil")
	}
	value, err := json.Marshal(orderAcceptedMessage{
		OrderID:   order.ID,
		ISBN:      order.ISBN,
		Quantity:  order.Quantity,
		Timestamp: time.Now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("encode order accepted message: %w", err)
	}
	message := kafka.Message{
		Key:   []byte(order.ISBN),
		Value: value,
		Time:  time.Now(),
	}
	if err := p.writer.WriteMessages(ctx, message); err != nil {
		return fmt.Errorf("publish order accepted message: %w", err)
	}
	return nil
}

// Close flushes and releases the underlying writer.
func (p *Publisher) Close() error {
	if p == nil || p.writer == nil {
		return nil
	}
	return p.writer.Close()
}
