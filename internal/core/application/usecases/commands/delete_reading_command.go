package commands

import (
	"errors"

	"iotstream/internal/pkg/errs"
	"iotstream/internal/pkg/guard"
)

var (
	ErrDeleteReadingCommandIsNotConstructed = errors.New(
		"DeleteReadingCommand must be created via NewDeleteReadingCommand constructor",
	)
)

// DeleteReadingCommand represents a request to remove a stored reading.
type DeleteReadingCommand struct { //nolint:recvcheck //using for validation
	readingID int64

	guard guard.ConstructorGuard
}

// NewDeleteReadingCommand creates a command to delete the stored reading with
// the given id.
func NewDeleteReadingCommand(readingID int64) (DeleteReadingCommand, error) {
	command := DeleteReadingCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := command.setReadingID(readingID); err != nil {
		return DeleteReadingCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrDeleteReadingCommandIsNotConstructed if validation fails.
func (c DeleteReadingCommand) Validate() error {
	return c.guard.Validate(ErrDeleteReadingCommandIsNotConstructed)
}

// ReadingID returns the identifier of the reading to delete.
func (c DeleteReadingCommand) ReadingID() int64 {
	return c.readingID
}

func (c *DeleteReadingCommand) setReadingID(readingID int64) error {
	if readingID <= 0 {
		return errs.NewValueIsInvalidError("readingId")
	}

	c.readingID = readingID
	return nil
}
