package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/rl1809/ecoscene/internal/core/domain"
)

const EventOrderPlaced = "order.placed"

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// OrderPlacedEvent is the payload written for every persisted order.
type OrderPlacedEvent struct {
	Type       string       `json:"type"`
	OccurredAt time.Time    `json:"occurred_at"`
	Order      domain.Order `json:"order"`
}

type KafkaPublisher struct {
	writer messageWriter
}

func NewKafkaWriter(brokers []string, topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		AllowAutoTopicCreation: true,
	}
}

func NewKafkaPublisher(w messageWriter) *KafkaPublisher {
	return &KafkaPublisher{writer: w}
}

// PublishOrderPlaced keys the message by user so a user's orders stay on one
// partition.
func (p *KafkaPublisher) PublishOrderPlaced(ctx context.Context, order domain.Order) error {
	payload, err := json.Marshal(OrderPlacedEvent{
		Type:       EventOrderPlaced,
		OccurredAt: time.Now().UTC(),
		Order:      order,
	})
	if err != nil {
		return fmt.Errorf("encode order event: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(order.UserID),
		Value: payload,
		Headers: []kafka.Header{
			{Key: "event", Value: []byte(EventOrderPlaced)},
			{Key: "order_id", Value: []byte(order.ID)},
		},
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("write order event: %w", err)
	}
	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

// NoopPublisher drops events. It is used when no brokers are configured.
type NoopPublisher struct{}

func (NoopPublisher) PublishOrderPlaced(ctx context.Context, order domain.Order) error {
	return nil
}
