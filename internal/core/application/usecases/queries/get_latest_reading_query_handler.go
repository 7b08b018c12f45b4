package queries

import (
	"context"
	"database/sql"
	"errors"

	"iotstream/internal/pkg/errs"

	"gorm.io/gorm"
)

// GetLatestReadingQueryHandler retrieves the most recent reading for a
// device from the database.
type GetLatestReadingQueryHandler struct {
	db *gorm.DB
}

// NewGetLatestReadingQueryHandler creates a handler for latest-reading
// retrieval.
func NewGetLatestReadingQueryHandler(db *gorm.DB) GetLatestReadingQueryHandler {
	return GetLatestReadingQueryHandler{db: db}
}

// Handle executes the query. Returns ObjectNotFoundError when the device has
// no stored readings matching the filter.
func (h GetLatestReadingQueryHandler) Handle(
	ctx context.Context,
	query GetLatestReadingQuery,
) (*ReadingResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	sqlText := `
		SELECT
			id,
			device_id,
			reading_value,
			reading_type,
			unit,
			battery_level,
			raw_data,
			timestamp
		FROM sensor_readings
		WHERE device_id = ?
	`
	args := []any{query.DeviceID()}
	if query.Unit() != "" {
		sqlText += ` AND unit = ?`
		args = append(args, query.Unit())
	}
	sqlText += ` ORDER BY timestamp DESC, id DESC LIMIT 1`

	var reading ReadingResponse
	row := h.db.WithContext(ctx).Raw(sqlText, args...).Row()
	err := row.Scan(
		&reading.ID,
		&reading.DeviceID,
		&reading.ReadingValue,
		&reading.ReadingType,
		&reading.Unit,
		&reading.BatteryLevel,
		&reading.RawData,
		&reading.Timestamp,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errs.NewObjectNotFoundError("deviceId", query.DeviceID())
		}
		return nil, err
	}

	return &reading, nil
}
