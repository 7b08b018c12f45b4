package ports

import "context"

// EventProducer defines the contract for handing events to the message
// broker. If Publish returns nil the event has been accepted by the broker
// for durable delivery; the caller must not assume it has been consumed or
// persisted downstream.
type EventProducer interface {
	// Publish serializes payload and sends it to topic, using key as the
	// partitioning key. Any transport, serialization or broker-rejection
	// failure is returned as an error and never reaches consumers.
	Publish(ctx context.Context, topic string, key string, payload any) error
}
