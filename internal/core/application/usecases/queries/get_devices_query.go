package queries

import (
	"errors"
	"time"

	"iotstream/internal/pkg/guard"
)

var (
	ErrGetDevicesQueryIsNotConstructed = errors.New(
		"GetDevicesQuery must be created via NewGetDevicesQuery constructor",
	)
)

// GetDevicesQuery retrieves the set of devices that have produced at least
// one stored reading. Used by the device overview endpoint and by the gauge
// refresh job.
type GetDevicesQuery struct {
	guard guard.ConstructorGuard
}

// NewGetDevicesQuery creates a query to retrieve all known devices.
// This is a parameterless query that fetches the complete device list.
func NewGetDevicesQuery() GetDevicesQuery {
	return GetDevicesQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetDevicesQueryIsNotConstructed if validation fails.
func (q GetDevicesQuery) Validate() error {
	return q.guard.Validate(ErrGetDevicesQueryIsNotConstructed)
}

// DeviceResponse represents one known device in the read model.
type DeviceResponse struct {
	DeviceID     string
	ReadingCount int64
	LastSeen     time.Time
}
