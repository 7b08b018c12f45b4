// Package commands contains write operations that mutate system state.
// Implements the Command pattern for write operations in the CQRS
// architecture. Commands validate their input on construction and are
// processed by dedicated handlers.
package commands

import (
	"errors"

	"iotstream/internal/core/domain/model/telemetry"
	"iotstream/internal/pkg/guard"
)

var (
	ErrIngestReadingCommandIsNotConstructed = errors.New(
		"IngestReadingCommand must be created via NewIngestReadingCommand constructor",
	)
)

// IngestReadingCommand represents a request to accept one sensor reading into
// the stream. Carries a fully validated reading; invalid telemetry never
// reaches the broker.
//
// Example:
//
//	cmd, err := NewIngestReadingCommand("thermo-42", 21.5, "temperature", "C", nil, nil)
//	if err != nil {
//	    return fmt.Errorf("invalid reading: %w", err)
//	}
//
//	handler := NewIngestReadingCommandHandler(producer, "iot_stream_v1")
//	eventID, err := handler.Handle(ctx, cmd)
type IngestReadingCommand struct { //nolint:recvcheck //using for validation
	reading telemetry.Reading

	guard guard.ConstructorGuard
}

// NewIngestReadingCommand creates an ingestion command from raw reading
// fields. Validation rules live on the telemetry.Reading value object.
func NewIngestReadingCommand(
	deviceID string,
	readingValue float64,
	readingType string,
	unit string,
	batteryLevel *float64,
	rawData *string,
) (IngestReadingCommand, error) {
	reading, err := telemetry.NewReading(deviceID, readingValue, readingType, unit, batteryLevel, rawData)
	if err != nil {
		return IngestReadingCommand{}, err
	}

	return IngestReadingCommand{
		reading: reading,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrIngestReadingCommandIsNotConstructed if validation fails.
func (c IngestReadingCommand) Validate() error {
	return c.guard.Validate(ErrIngestReadingCommandIsNotConstructed)
}

// Reading returns the validated reading carried by the command.
func (c IngestReadingCommand) Reading() telemetry.Reading {
	return c.reading
}
