// Package kafka publishes notifications to a Kafka topic for consumers outside the
// service (kitchen displays, analytics).
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"restaurant/internal/core/ports"

	"github.com/segmentio/kafka-go"
)

const writeTimeout = 10 * time.Second

// MessageWriter is the part of *kafka.Writer the publisher uses.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Publisher writes every notification as a JSON message keyed by its channel, so the
// notifications of one session or waiter stay ordered within a partition.
type Publisher struct {
	writer MessageWriter
}

// NewPublisher creates a publisher writing to topic through the broker at brokers.
func NewPublisher(brokers, topic string) *Publisher {
	return NewPublisherWithWriter(&kafka.Writer{
		Addr:     kafka.TCP(brokers),
		Topic:    topic,
		Balancer: &kafka.Hash{},
	})
}

// NewPublisherWithWriter creates a publisher over an existing writer.
func NewPublisherWithWriter(writer MessageWriter) *Publisher {
	return &Publisher{writer: writer}
}

// Notify writes n as JSON keyed by its channel.
func (p *Publisher) Notify(ctx context.Context, n ports.Notification) error {
	value, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("marshal notification: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()

	msg := kafka.Message{
		Key:   []byte(n.Channel),
		Value: value,
		Headers: []kafka.Header{
			{Key: "event-type", Value: []byte(n.EventType)},
		},
	}
	if err = p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("publish %s to kafka: %w", n.EventType, err)
	}
	return nil
}

// Close flushes and closes the writer.
func (p *Publisher) Close() error {
	if p.writer != nil {
		return p.writer.Close()
	}
	return nil
}
