package queries

import (
	"context"
	"database/sql"
	"errors"

	"iotstream/internal/pkg/errs"

	"gorm.io/gorm"
)

// GetReadingByIDQueryHandler retrieves one stored reading from the database.
type GetReadingByIDQueryHandler struct {
	db *gorm.DB
}

// NewGetReadingByIDQueryHandler creates a handler for single-reading
// retrieval.
func NewGetReadingByIDQueryHandler(db *gorm.DB) GetReadingByIDQueryHandler {
	return GetReadingByIDQueryHandler{db: db}
}

// Handle executes the query. Returns ObjectNotFoundError when no reading
// with the given id exists.
func (h GetReadingByIDQueryHandler) Handle(
	ctx context.Context,
	query GetReadingByIDQuery,
) (*ReadingResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	var reading ReadingResponse
	row := h.db.WithContext(ctx).Raw(`
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
		WHERE id = ?
	`, query.ReadingID()).Row()

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
			return nil, errs.NewObjectNotFoundError("readingId", query.ReadingID())
		}
		return nil, err
	}

	return &reading, nil
}
