package queries

import (
	"errors"

	"iotstream/internal/pkg/errs"
	"iotstream/internal/pkg/guard"
)

var (
	ErrGetLatestReadingQueryIsNotConstructed = errors.New(
		"GetLatestReadingQuery must be created via NewGetLatestReadingQuery constructor",
	)
)

// GetLatestReadingQuery retrieves the most recent reading for one device,
// optionally restricted to readings in a specific unit.
//
// Example:
//
//	query, err := NewGetLatestReadingQuery("thermo-42", "C")
//	if err != nil {
//	    return fmt.Errorf("invalid query: %w", err)
//	}
//
//	latest, err := handler.Handle(ctx, query)
type GetLatestReadingQuery struct { //nolint:recvcheck //using for validation
	deviceID string
	unit     string

	guard guard.ConstructorGuard
}

// NewGetLatestReadingQuery creates a latest-reading query for the device.
// Unit may be empty to accept readings in any unit.
func NewGetLatestReadingQuery(deviceID string, unit string) (GetLatestReadingQuery, error) {
	if deviceID == "" {
		return GetLatestReadingQuery{}, errs.NewValueIsRequiredError("deviceId")
	}

	return GetLatestReadingQuery{
		deviceID: deviceID,
		unit:     unit,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetLatestReadingQueryIsNotConstructed if validation fails.
func (q GetLatestReadingQuery) Validate() error {
	return q.guard.Validate(ErrGetLatestReadingQueryIsNotConstructed)
}

// DeviceID returns the device whose latest reading is requested.
func (q GetLatestReadingQuery) DeviceID() string {
	return q.deviceID
}

// Unit returns the unit filter, or the empty string for any unit.
func (q GetLatestReadingQuery) Unit() string {
	return q.unit
}
