package commands

import (
	"errors"

	"iotstream/internal/core/ports"
	"iotstream/internal/pkg/errs"
	"iotstream/internal/pkg/guard"
)

var (
	ErrUpdateReadingCommandIsNotConstructed = errors.New(
		"UpdateReadingCommand must be created via NewUpdateReadingCommand constructor",
	)
	ErrPatchIsEmpty = errors.New("at least one field must be provided for update")
)

// UpdateReadingCommand represents a request to modify a stored reading.
// Only the fields present in the patch are changed; nil fields keep their
// stored value.
//
// Example:
//
//	value := 22.8
//	cmd, err := NewUpdateReadingCommand(17, ports.ReadingPatch{ReadingValue: &value})
//	if err != nil {
//	    return fmt.Errorf("invalid update: %w", err)
//	}
type UpdateReadingCommand struct { //nolint:recvcheck //using for validation
	readingID int64
	patch     ports.ReadingPatch

	guard guard.ConstructorGuard
}

// NewUpdateReadingCommand creates a command to patch the stored reading with
// the given id. The patch must change at least one field, and present fields
// obey the same rules as on ingestion.
func NewUpdateReadingCommand(readingID int64, patch ports.ReadingPatch) (UpdateReadingCommand, error) {
	command := UpdateReadingCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setReadingID(readingID),
		command.setPatch(patch),
	); err != nil {
		return UpdateReadingCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrUpdateReadingCommandIsNotConstructed if validation fails.
func (c UpdateReadingCommand) Validate() error {
	return c.guard.Validate(ErrUpdateReadingCommandIsNotConstructed)
}

// ReadingID returns the identifier of the reading to update.
func (c UpdateReadingCommand) ReadingID() int64 {
	return c.readingID
}

// Patch returns the field updates to apply.
func (c UpdateReadingCommand) Patch() ports.ReadingPatch {
	return c.patch
}

func (c *UpdateReadingCommand) setReadingID(readingID int64) error {
	if readingID <= 0 {
		return errs.NewValueIsInvalidError("readingId")
	}

	c.readingID = readingID
	return nil
}

func (c *UpdateReadingCommand) setPatch(patch ports.ReadingPatch) error {
	if patch.IsEmpty() {
		return ErrPatchIsEmpty
	}
	if patch.DeviceID != nil && *patch.DeviceID == "" {
		return errs.NewValueIsRequiredError("deviceId")
	}
	if patch.ReadingType != nil && *patch.ReadingType == "" {
		return errs.NewValueIsRequiredError("readingType")
	}
	if patch.Unit != nil && *patch.Unit == "" {
		return errs.NewValueIsRequiredError("unit")
	}
	if patch.BatteryLevel != nil && (*patch.BatteryLevel < 0 || *patch.BatteryLevel > 100) {
		return errs.NewValueIsOutOfRangeError("batteryLevel", *patch.BatteryLevel, 0, 100)
	}

	c.patch = patch
	return nil
}
