package queries

import (
	"context"

	"gorm.io/gorm"
)

// GetDevicesQueryHandler retrieves the known-device overview from the
// database.
//
// Example:
//
//	handler := NewGetDevicesQueryHandler(db)
//	query := NewGetDevicesQuery()
//
//	devices, err := handler.Handle(ctx, query)
//	if err != nil {
//	    log.Printf("Failed to get devices: %v", err)
//	    return err
//	}
//
//	fmt.Printf("Tracking %d devices\n", len(devices))
type GetDevicesQueryHandler struct {
	db *gorm.DB
}

// NewGetDevicesQueryHandler creates a handler for device overview queries.
// Requires a GORM database connection for query execution.
func NewGetDevicesQueryHandler(db *gorm.DB) GetDevicesQueryHandler {
	return GetDevicesQueryHandler{db: db}
}

// Handle executes the query to retrieve all known devices.
// Returns one entry per device with its reading count and last-seen time,
// sorted by device id.
func (h GetDevicesQueryHandler) Handle(
	ctx context.Context,
	query GetDevicesQuery,
) ([]DeviceResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	devices := make([]DeviceResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			device_id,
			COUNT(*) AS reading_count,
			MAX(timestamp) AS last_seen
		FROM sensor_readings
		GROUP BY device_id
		ORDER BY device_id
	`).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var device DeviceResponse
		err = rows.Scan(
			&device.DeviceID,
			&device.ReadingCount,
			&device.LastSeen,
		)
		if err != nil {
			return nil, err
		}
		devices = append(devices, device)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return devices, nil
}
