// Package kafka provides the message-broker adapters for the telemetry
// stream: a producer used by the ingestion path and a consumer worker that
// persists accepted readings.
package kafka

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/segmentio/kafka-go"
)

// Producer implements ports.EventProducer on top of a long-lived kafka
// writer. One Producer serves the whole process; the writer is safe for
// concurrent use and batches writes internally.
type Producer struct {
	writer *kafka.Writer
	logger *slog.Logger
}

// NewProducer creates a producer connected to the given brokers. The topic
// is chosen per publish, so one producer can serve multiple streams.
func NewProducer(brokers []string, logger *slog.Logger) *Producer {
	return &Producer{
		writer: &kafka.Writer{
			Addr:                   kafka.TCP(brokers...),
			Balancer:               &kafka.LeastBytes{},
			AllowAutoTopicCreation: true,
		},
		logger: logger.With("component", "kafka_producer"),
	}
}

// Publish serializes payload as JSON and writes it to topic, using key as
// the partitioning key so events with the same key stay ordered.
func (p *Producer) Publish(ctx context.Context, topic string, key string, payload any) error {
	value, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	err = p.writer.WriteMessages(ctx, kafka.Message{
		Topic: topic,
		Key:   []byte(key),
		Value: value,
	})
	if err != nil {
		p.logger.ErrorContext(ctx, "Failed to publish event", "topic", topic, "key", key, "error", err)
		return err
	}

	p.logger.DebugContext(ctx, "Event published", "topic", topic, "key", key)
	return nil
}

// Close flushes pending writes and releases broker connections.
func (p *Producer) Close() error {
	return p.writer.Close()
}
