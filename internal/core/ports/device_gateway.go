package ports

import "context"

// DeviceGateway defines the contract for fetching the current value of a
// device during a polling run. Implementations talk to external device APIs
// or gateways; the scheduler only requires that a fetch honors context
// cancellation.
type DeviceGateway interface {
	// Fetch retrieves one data point for the given device.
	Fetch(ctx context.Context, deviceID string) (float64, error)
}
