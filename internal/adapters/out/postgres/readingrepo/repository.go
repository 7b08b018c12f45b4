package readingrepo

import (
	"context"
	"errors"
	"time"

	"iotstream/internal/core/domain/model/telemetry"
	"iotstream/internal/core/ports"
	"iotstream/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormReadingRepository implements ReadingRepository using GORM.
type GormReadingRepository struct {
	db *gorm.DB
}

// NewGormReadingRepository creates a new GORM reading repository.
func NewGormReadingRepository(db *gorm.DB) *GormReadingRepository {
	return &GormReadingRepository{db: db}
}

// Add persists a new reading, stamping it with the current UTC time.
func (r *GormReadingRepository) Add(ctx context.Context, reading telemetry.Reading) error {
	if err := reading.Validate(); err != nil {
		return err
	}

	dto := fromDomain(reading, time.Now().UTC())
	return r.db.WithContext(ctx).Create(&dto).Error
}

// Update applies the patch to the stored reading with the given id and
// returns the updated record. Only patched columns change.
func (r *GormReadingRepository) Update(
	ctx context.Context,
	id int64,
	patch ports.ReadingPatch,
) (*telemetry.StoredReading, error) {
	updates := make(map[string]any)
	if patch.DeviceID != nil {
		updates["device_id"] = *patch.DeviceID
	}
	if patch.ReadingValue != nil {
		updates["reading_value"] = *patch.ReadingValue
	}
	if patch.ReadingType != nil {
		updates["reading_type"] = *patch.ReadingType
	}
	if patch.Unit != nil {
		updates["unit"] = *patch.Unit
	}
	if patch.BatteryLevel != nil {
		updates["battery_level"] = *patch.BatteryLevel
	}
	if patch.RawData != nil {
		updates["raw_data"] = *patch.RawData
	}

	result := r.db.WithContext(ctx).Model(&ReadingDTO{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, errs.NewObjectNotFoundError("readingId", id)
	}

	var dto ReadingDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("readingId", id)
		}
		return nil, err
	}

	return toStored(dto), nil
}

// Delete removes the stored reading with the given id.
func (r *GormReadingRepository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&ReadingDTO{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("readingId", id)
	}

	return nil
}
