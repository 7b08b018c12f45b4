package queries

import (
	"context"
	"time"

	"gorm.io/gorm"
)

// GetRollingAverageQueryHandler computes trailing-window averages from the
// database.
type GetRollingAverageQueryHandler struct {
	db *gorm.DB
}

// NewGetRollingAverageQueryHandler creates a handler for rolling-average
// queries.
func NewGetRollingAverageQueryHandler(db *gorm.DB) GetRollingAverageQueryHandler {
	return GetRollingAverageQueryHandler{db: db}
}

// Handle executes the query. A device with no readings in the window yields
// a zero average and a zero sample count rather than an error.
func (h GetRollingAverageQueryHandler) Handle(
	ctx context.Context,
	query GetRollingAverageQuery,
) (*RollingAverageResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	since := time.Now().UTC().Add(-query.Window())

	var result struct {
		Average     *float64
		SampleCount int64
	}
	err := h.db.WithContext(ctx).Raw(`
		SELECT
			AVG(reading_value) AS average,
			COUNT(*) AS sample_count
		FROM sensor_readings
		WHERE device_id = ? AND timestamp >= ?
	`, query.DeviceID(), since).Scan(&result).Error
	if err != nil {
		return nil, err
	}

	response := &RollingAverageResponse{
		DeviceID:      query.DeviceID(),
		WindowMinutes: query.WindowMinutes(),
		SampleCount:   result.SampleCount,
	}
	if result.Average != nil {
		response.Average = *result.Average
	}

	return response, nil
}
