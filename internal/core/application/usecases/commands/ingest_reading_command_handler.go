package commands

import (
	"context"
	"time"

	"iotstream/internal/core/ports"
	"iotstream/internal/pkg/metrics"

	"github.com/google/uuid"
)

// ReadingIngestedEvent is the broker payload produced for each accepted
// reading. The consumer worker deserializes this envelope and persists the
// reading.
type ReadingIngestedEvent struct {
	EventID      string    `json:"event_id"`
	DeviceID     string    `json:"device_id"`
	ReadingValue float64   `json:"reading_value"`
	ReadingType  string    `json:"reading_type"`
	Unit         string    `json:"unit"`
	BatteryLevel *float64  `json:"battery_level,omitempty"`
	RawData      *string   `json:"raw_data,omitempty"`
	IngestedAt   time.Time `json:"ingested_at"`
}

// IngestReadingCommandHandler publishes accepted readings to the message
// broker. Persistence happens asynchronously in the consumer worker; a
// successful Handle means the broker accepted the event, nothing more.
//
// Example:
//
//	handler := NewIngestReadingCommandHandler(producer, "iot_stream_v1")
//	cmd, _ := NewIngestReadingCommand("thermo-42", 21.5, "temperature", "C", nil, nil)
//
//	eventID, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return fmt.Errorf("ingestion failed: %w", err)
//	}
type IngestReadingCommandHandler struct {
	producer ports.EventProducer
	topic    string
}

// NewIngestReadingCommandHandler creates a handler that publishes readings to
// the given topic through producer.
func NewIngestReadingCommandHandler(producer ports.EventProducer, topic string) IngestReadingCommandHandler {
	return IngestReadingCommandHandler{
		producer: producer,
		topic:    topic,
	}
}

// Handle publishes the reading to the broker, keyed by device id so that
// readings from one device stay ordered within a partition. Returns the
// generated event id on success. The ingestion counter moves only when the
// broker accepts the event.
func (h IngestReadingCommandHandler) Handle(ctx context.Context, cmd IngestReadingCommand) (string, error) {
	if err := cmd.Validate(); err != nil {
		return "", err
	}

	reading := cmd.Reading()
	event := ReadingIngestedEvent{
		EventID:      uuid.NewString(),
		DeviceID:     reading.DeviceID(),
		ReadingValue: reading.Value(),
		ReadingType:  reading.ReadingType(),
		Unit:         reading.Unit(),
		BatteryLevel: reading.BatteryLevel(),
		RawData:      reading.RawData(),
		IngestedAt:   time.Now().UTC(),
	}

	if err := h.producer.Publish(ctx, h.topic, reading.DeviceID(), event); err != nil {
		return "", err
	}

	metrics.TelemetryPointsTotal.Inc()
	return event.EventID, nil
}
