package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"iotstream/internal/core/application/usecases/commands"
	"iotstream/internal/core/domain/model/telemetry"
	"iotstream/internal/core/ports"

	"github.com/segmentio/kafka-go"
)

// Consumer reads accepted readings from the telemetry topic and persists
// them. It is the only writer on the ingestion path; the HTTP layer never
// touches storage directly.
type Consumer struct {
	reader     *kafka.Reader
	repository ports.ReadingRepository
	logger     *slog.Logger
}

// NewConsumer creates a consumer in the given consumer group. Multiple
// instances in one group share partitions and never double-persist an event.
func NewConsumer(brokers []string, topic string, groupID string, repository ports.ReadingRepository, logger *slog.Logger) *Consumer {
	return &Consumer{
		reader: kafka.NewReader(kafka.ReaderConfig{
			Brokers: brokers,
			Topic:   topic,
			GroupID: groupID,
		}),
		repository: repository,
		logger:     logger.With("component", "kafka_consumer"),
	}
}

// Run consumes events until ctx is cancelled or the reader is closed.
// Malformed events and persistence failures are logged and skipped; one bad
// event never stalls the stream.
func (c *Consumer) Run(ctx context.Context) error {
	c.logger.InfoContext(ctx, "Consumer started", "topic", c.reader.Config().Topic)

	for {
		message, err := c.reader.ReadMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, kafka.ErrGroupClosed) {
				c.logger.InfoContext(ctx, "Consumer stopped")
				return nil
			}
			return err
		}

		c.handleMessage(ctx, message)
	}
}

// handleMessage decodes and persists one event.
func (c *Consumer) handleMessage(ctx context.Context, message kafka.Message) {
	var event commands.ReadingIngestedEvent
	if err := json.Unmarshal(message.Value, &event); err != nil {
		c.logger.WarnContext(ctx, "Skipping malformed event",
			"partition", message.Partition, "offset", message.Offset, "error", err)
		return
	}

	reading, err := telemetry.NewReading(
		event.DeviceID,
		event.ReadingValue,
		event.ReadingType,
		event.Unit,
		event.BatteryLevel,
		event.RawData,
	)
	if err != nil {
		c.logger.WarnContext(ctx, "Skipping invalid event",
			"event_id", event.EventID, "error", err)
		return
	}

	if err := c.repository.Add(ctx, reading); err != nil {
		c.logger.ErrorContext(ctx, "Failed to persist reading",
			"event_id", event.EventID, "device_id", event.DeviceID, "error", err)
		return
	}

	c.logger.DebugContext(ctx, "Reading persisted",
		"event_id", event.EventID, "device_id", event.DeviceID)
}

// Close shuts the reader down and releases its group membership.
func (c *Consumer) Close() error {
	return c.reader.Close()
}
