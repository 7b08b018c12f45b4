package queries

import (
	"errors"
	"time"

	"iotstream/internal/pkg/errs"
	"iotstream/internal/pkg/guard"
)

var (
	ErrGetRollingAverageQueryIsNotConstructed = errors.New(
		"GetRollingAverageQuery must be created via NewGetRollingAverageQuery constructor",
	)
)

const maxRollingWindowMinutes = 24 * 60

// GetRollingAverageQuery computes the average reading value for one device
// over a trailing time window.
//
// Example:
//
//	query, err := NewGetRollingAverageQuery("thermo-42", 15)
//	if err != nil {
//	    return fmt.Errorf("invalid window: %w", err)
//	}
//
//	average, err := handler.Handle(ctx, query)
type GetRollingAverageQuery struct { //nolint:recvcheck //using for validation
	deviceID      string
	windowMinutes int

	guard guard.ConstructorGuard
}

// NewGetRollingAverageQuery creates a rolling-average query. The window is
// expressed in whole minutes and capped at 24 hours.
func NewGetRollingAverageQuery(deviceID string, windowMinutes int) (GetRollingAverageQuery, error) {
	if deviceID == "" {
		return GetRollingAverageQuery{}, errs.NewValueIsRequiredError("deviceId")
	}
	if windowMinutes <= 0 || windowMinutes > maxRollingWindowMinutes {
		return GetRollingAverageQuery{}, errs.NewValueIsOutOfRangeError(
			"windowMinutes", windowMinutes, 1, maxRollingWindowMinutes)
	}

	return GetRollingAverageQuery{
		deviceID:      deviceID,
		windowMinutes: windowMinutes,
		guard:         guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetRollingAverageQueryIsNotConstructed if validation fails.
func (q GetRollingAverageQuery) Validate() error {
	return q.guard.Validate(ErrGetRollingAverageQueryIsNotConstructed)
}

// DeviceID returns the device whose average is requested.
func (q GetRollingAverageQuery) DeviceID() string {
	return q.deviceID
}

// WindowMinutes returns the trailing window length in minutes.
func (q GetRollingAverageQuery) WindowMinutes() int {
	return q.windowMinutes
}

// Window returns the trailing window length as a duration.
func (q GetRollingAverageQuery) Window() time.Duration {
	return time.Duration(q.windowMinutes) * time.Minute
}

// RollingAverageResponse represents the rolling-average read model.
// SampleCount tells the caller how many readings contributed; a zero count
// means the device produced nothing in the window and Average is zero.
type RollingAverageResponse struct {
	DeviceID      string
	WindowMinutes int
	Average       float64
	SampleCount   int64
}
