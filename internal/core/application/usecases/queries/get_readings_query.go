// Package queries contains read operations for retrieving system state.
// Implements the Query pattern for read operations in the CQRS architecture.
// Queries read the sensor-reading store directly and return read models
// shaped for their specific use case.
package queries

import (
	"errors"
	"time"

	"iotstream/internal/pkg/errs"
	"iotstream/internal/pkg/guard"
)

var (
	ErrGetReadingsQueryIsNotConstructed = errors.New(
		"GetReadingsQuery must be created via NewGetReadingsQuery constructor",
	)
)

const (
	defaultReadingsLimit = 100
	maxReadingsLimit     = 1000
)

// GetReadingsQuery retrieves a page of stored sensor readings, newest first,
// optionally filtered to one device.
//
// Example:
//
//	query, err := NewGetReadingsQuery(0, 50, "thermo-42")
//	if err != nil {
//	    return fmt.Errorf("invalid page: %w", err)
//	}
//
//	readings, err := handler.Handle(ctx, query)
type GetReadingsQuery struct { //nolint:recvcheck //using for validation
	skip     int
	limit    int
	deviceID string

	guard guard.ConstructorGuard
}

// NewGetReadingsQuery creates a paged readings query. A zero limit falls back
// to the default page size; deviceID may be empty to return all devices.
func NewGetReadingsQuery(skip int, limit int, deviceID string) (GetReadingsQuery, error) {
	if skip < 0 {
		return GetReadingsQuery{}, errs.NewValueIsOutOfRangeError("skip", skip, 0, int(^uint(0)>>1))
	}
	if limit < 0 || limit > maxReadingsLimit {
		return GetReadingsQuery{}, errs.NewValueIsOutOfRangeError("limit", limit, 0, maxReadingsLimit)
	}
	if limit == 0 {
		limit = defaultReadingsLimit
	}

	return GetReadingsQuery{
		skip:     skip,
		limit:    limit,
		deviceID: deviceID,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetReadingsQueryIsNotConstructed if validation fails.
func (q GetReadingsQuery) Validate() error {
	return q.guard.Validate(ErrGetReadingsQueryIsNotConstructed)
}

// Skip returns the number of readings to skip.
func (q GetReadingsQuery) Skip() int {
	return q.skip
}

// Limit returns the page size.
func (q GetReadingsQuery) Limit() int {
	return q.limit
}

// DeviceID returns the device filter, or the empty string for all devices.
func (q GetReadingsQuery) DeviceID() string {
	return q.deviceID
}

// ReadingResponse represents one stored sensor reading in the read model.
type ReadingResponse struct {
	ID           int64
	DeviceID     string
	ReadingValue float64
	ReadingType  string
	Unit         string
	BatteryLevel *float64
	RawData      *string
	Timestamp    time.Time
}
