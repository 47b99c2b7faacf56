// Package kafka publishes shipment lifecycle events to a Kafka topic.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/Shopify/sarama"

	"github.com/jgayfer/solidus/internal/core/domain/model/shipment"
)

// shippedEvent is the wire format of a shipment shipped announcement.
type shippedEvent struct {
	ShipmentID     string     `json:"shipment_id"`
	Number         string     `json:"number"`
	OrderID        string     `json:"order_id"`
	TrackingNumber string     `json:"tracking_number,omitempty"`
	ShippedAt      *time.Time `json:"shipped_at,omitempty"`
}

// Notifier implements ShipmentNotifier on top of a Sarama sync producer.
// Events are published after the owning transaction commits; publish failures
// are the caller's to log, never to roll back on.
type Notifier struct {
	producer sarama.SyncProducer
	topic    string
}

// NewNotifier creates a notifier publishing to the given topic.
func NewNotifier(brokers []string, topic string) (*Notifier, error) {
	config := sarama.NewConfig()
	config.Producer.RequiredAcks = sarama.WaitForAll
	config.Producer.Retry.Max = 10
	config.Producer.Retry.Backoff = 500 * time.Millisecond
	config.Producer.Timeout = 5 * time.Second
	config.Producer.Return.Successes = true

	producer, err := sarama.NewSyncProducer(brokers, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create Kafka producer: %w", err)
	}

	return &Notifier{producer: producer, topic: topic}, nil
}

// OnShipped announces that the shipment has shipped. Shipments flagged to
// suppress notification are skipped silently.
func (n *Notifier) OnShipped(_ context.Context, aggregate *shipment.Shipment) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	if aggregate.SuppressNotification() {
		return nil
	}

	event := shippedEvent{
		ShipmentID:     aggregate.ID().String(),
		Number:         aggregate.Number(),
		OrderID:        aggregate.OrderID().String(),
		TrackingNumber: aggregate.TrackingNumber(),
		ShippedAt:      aggregate.ShippedAt(),
	}
	value, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to encode shipped event: %w", err)
	}

	msg := &sarama.ProducerMessage{
		Topic: n.topic,
		Key:   sarama.StringEncoder(aggregate.ID().String()),
		Value: sarama.ByteEncoder(value),
	}

	partition, offset, err := n.producer.SendMessage(msg)
	if err != nil {
		return fmt.Errorf("failed to publish shipped event: %w", err)
	}

	slog.Debug("published shipped event",
		"shipment_id", event.ShipmentID,
		"topic", n.topic,
		"partition", partition,
		"offset", offset)
	return nil
}

// Close shuts down the underlying producer.
func (n *Notifier) Close() error {
	return n.producer.Close()
}
