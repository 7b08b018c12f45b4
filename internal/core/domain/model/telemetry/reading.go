package telemetry

import (
	"errors"

	"iotstream/internal/pkg/errs"
	"iotstream/internal/pkg/guard"
)

// ErrReadingIsNotConstructed is returned when a Reading instance was not
// created through the NewReading factory method.
var ErrReadingIsNotConstructed = errors.New("Reading must be created via NewReading constructor")

const maxDeviceIDLength = 50

// Reading is a validated sensor reading as submitted by a device or gateway.
// It is the payload published to the broker on ingestion and persisted by the
// consumer worker.
//
// Reading follows these invariants:
//   - Device ID is non-empty and at most 50 characters
//   - Reading type and unit are non-empty
//   - Battery level, when present, is within [0, 100]
type Reading struct { //nolint:recvcheck //using for validation
	deviceID     string
	readingValue float64
	readingType  string
	unit         string
	batteryLevel *float64
	rawData      *string

	guard guard.ConstructorGuard
}

// NewReading creates a validated Reading.
//
// Parameters:
//   - deviceID: IoT device identifier (1..50 characters)
//   - readingValue: the measured value
//   - readingType: kind of measurement, e.g. "temperature"
//   - unit: unit of measurement, e.g. "C"
//   - batteryLevel: optional device battery percentage in [0, 100]
//   - rawData: optional raw sensor payload
func NewReading(
	deviceID string,
	readingValue float64,
	readingType string,
	unit string,
	batteryLevel *float64,
	rawData *string,
) (Reading, error) {
	reading := Reading{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		reading.setDeviceID(deviceID),
		reading.setValue(readingValue),
		reading.setReadingType(readingType),
		reading.setUnit(unit),
		reading.setBatteryLevel(batteryLevel),
		reading.setRawData(rawData),
	); err != nil {
		return Reading{}, err
	}

	return reading, nil
}

// Validate ensures the reading was created through the constructor.
func (r Reading) Validate() error {
	return r.guard.Validate(ErrReadingIsNotConstructed)
}

// DeviceID returns the identifier of the device that produced the reading.
func (r Reading) DeviceID() string {
	return r.deviceID
}

// Value returns the measured value.
func (r Reading) Value() float64 {
	return r.readingValue
}

// ReadingType returns the kind of measurement, e.g. "temperature".
func (r Reading) ReadingType() string {
	return r.readingType
}

// Unit returns the unit of measurement, e.g. "C".
func (r Reading) Unit() string {
	return r.unit
}

// BatteryLevel returns the device battery percentage, or nil if the device
// did not report one.
func (r Reading) BatteryLevel() *float64 {
	return r.batteryLevel
}

// RawData returns the raw sensor payload, or nil if none was submitted.
func (r Reading) RawData() *string {
	return r.rawData
}

func (r *Reading) setDeviceID(deviceID string) error {
	if deviceID == "" {
		return errs.NewValueIsRequiredError("deviceId")
	}
	if len(deviceID) > maxDeviceIDLength {
		return errs.NewValueIsOutOfRangeError("deviceId length", len(deviceID), 1, maxDeviceIDLength)
	}
	r.deviceID = deviceID
	return nil
}

func (r *Reading) setValue(value float64) error {
	r.readingValue = value
	return nil
}

func (r *Reading) setReadingType(readingType string) error {
	if readingType == "" {
		return errs.NewValueIsRequiredError("readingType")
	}
	r.readingType = readingType
	return nil
}

func (r *Reading) setUnit(unit string) error {
	if unit == "" {
		return errs.NewValueIsRequiredError("unit")
	}
	r.unit = unit
	return nil
}

func (r *Reading) setBatteryLevel(batteryLevel *float64) error {
	if batteryLevel != nil && (*batteryLevel < 0 || *batteryLevel > 100) {
		return errs.NewValueIsOutOfRangeError("batteryLevel", *batteryLevel, 0, 100)
	}
	r.batteryLevel = batteryLevel
	return nil
}

func (r *Reading) setRawData(rawData *string) error {
	r.rawData = rawData
	return nil
}
