package ports

import (
	"context"

	"iotstream/internal/core/domain/model/telemetry"
)

// ReadingPatch carries the optional field updates for a stored reading.
// Nil fields are left unchanged.
type ReadingPatch struct {
	DeviceID     *string
	ReadingValue *float64
	ReadingType  *string
	Unit         *string
	BatteryLevel *float64
	RawData      *string
}

// IsEmpty reports whether the patch changes nothing.
func (p ReadingPatch) IsEmpty() bool {
	return p.DeviceID == nil && p.ReadingValue == nil && p.ReadingType == nil &&
		p.Unit == nil && p.BatteryLevel == nil && p.RawData == nil
}

// ReadingRepository defines the persistence contract for sensor readings.
// The ingestion path never touches it directly; readings reach storage
// through the broker consumer. The CRUD surface uses it for mutations.
type ReadingRepository interface {
	// Add persists a new validated reading, stamping it with the current
	// time.
	Add(ctx context.Context, reading telemetry.Reading) error

	// Update applies a patch to the stored reading with the given id and
	// returns the updated record. Returns ObjectNotFoundError if no such
	// reading exists.
	Update(ctx context.Context, id int64, patch ReadingPatch) (*telemetry.StoredReading, error)

	// Delete removes the stored reading with the given id.
	// Returns ObjectNotFoundError if no such reading exists.
	Delete(ctx context.Context, id int64) error
}
