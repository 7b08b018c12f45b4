package queries

import (
	"context"

	"gorm.io/gorm"
)

// GetReadingsQueryHandler retrieves stored readings from the database.
// Uses direct SQL queries for optimal read performance in the CQRS pattern.
//
// Example:
//
//	handler := NewGetReadingsQueryHandler(db)
//	query, _ := NewGetReadingsQuery(0, 50, "")
//
//	readings, err := handler.Handle(ctx, query)
//	if err != nil {
//	    log.Printf("Failed to get readings: %v", err)
//	    return err
//	}
type GetReadingsQueryHandler struct {
	db *gorm.DB
}

// NewGetReadingsQueryHandler creates a handler for paged reading retrieval.
// Requires a GORM database connection for query execution.
func NewGetReadingsQueryHandler(db *gorm.DB) GetReadingsQueryHandler {
	return GetReadingsQueryHandler{db: db}
}

// Handle executes the query and returns readings ordered newest first.
func (h GetReadingsQueryHandler) Handle(
	ctx context.Context,
	query GetReadingsQuery,
) ([]ReadingResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	readings := make([]ReadingResponse, 0)

	sql := `
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
	`
	args := make([]any, 0, 3)
	if query.DeviceID() != "" {
		sql += ` WHERE device_id = ?`
		args = append(args, query.DeviceID())
	}
	sql += ` ORDER BY timestamp DESC, id DESC LIMIT ? OFFSET ?`
	args = append(args, query.Limit(), query.Skip())

	rows, err := h.db.WithContext(ctx).Raw(sql, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var reading ReadingResponse
		err = rows.Scan(
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
			return nil, err
		}
		readings = append(readings, reading)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return readings, nil
}
