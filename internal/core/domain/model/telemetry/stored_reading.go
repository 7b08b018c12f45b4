package telemetry

import "time"

// StoredReading is the read model for a persisted sensor reading. Unlike
// Reading it carries the storage-assigned identifier and timestamp and is
// reconstructed from the database rather than validated on construction.
type StoredReading struct {
	ID           int64
	DeviceID     string
	ReadingValue float64
	ReadingType  string
	Unit         string
	BatteryLevel *float64
	RawData      *string
	Timestamp    time.Time
}
