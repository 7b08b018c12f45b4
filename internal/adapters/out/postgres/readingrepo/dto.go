// Package readingrepo provides data transfer objects and mapping functions
// for sensor reading persistence. Implements the repository pattern for the
// telemetry domain, handling the conversion between domain values and
// database representations.
package readingrepo

import (
	"time"

	"iotstream/internal/core/domain/model/telemetry"
)

// ReadingDTO represents the database structure for persisting sensor
// readings. Indexed by device and timestamp for the time-window queries the
// read side runs.
type ReadingDTO struct {
	ID           int64  `gorm:"primaryKey;autoIncrement"`
	DeviceID     string `gorm:"type:varchar(50);index:idx_readings_device_ts,priority:1"`
	ReadingValue float64
	ReadingType  string `gorm:"type:varchar(50)"`
	Unit         string `gorm:"type:varchar(20)"`
	BatteryLevel *float64
	RawData      *string
	Timestamp    time.Time `gorm:"index:idx_readings_device_ts,priority:2"`
}

// TableName specifies the database table name for sensor readings.
// Overrides GORM's default naming convention to use "sensor_readings".
func (ReadingDTO) TableName() string {
	return "sensor_readings"
}

// fromDomain converts a validated reading to its database representation,
// stamping it with the given ingestion time.
func fromDomain(reading telemetry.Reading, timestamp time.Time) ReadingDTO {
	return ReadingDTO{
		DeviceID:     reading.DeviceID(),
		ReadingValue: reading.Value(),
		ReadingType:  reading.ReadingType(),
		Unit:         reading.Unit(),
		BatteryLevel: reading.BatteryLevel(),
		RawData:      reading.RawData(),
		Timestamp:    timestamp,
	}
}

// toStored converts a database DTO to the stored-reading read model.
func toStored(dto ReadingDTO) *telemetry.StoredReading {
	return &telemetry.StoredReading{
		ID:           dto.ID,
		DeviceID:     dto.DeviceID,
		ReadingValue: dto.ReadingValue,
		ReadingType:  dto.ReadingType,
		Unit:         dto.Unit,
		BatteryLevel: dto.BatteryLevel,
		RawData:      dto.RawData,
		Timestamp:    dto.Timestamp,
	}
}
