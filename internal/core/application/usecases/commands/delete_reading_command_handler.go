package commands

import (
	"context"

	"iotstream/internal/core/ports"
)

// DeleteReadingCommandHandler removes stored readings.
type DeleteReadingCommandHandler struct {
	readingRepository ports.ReadingRepository
}

// NewDeleteReadingCommandHandler creates a handler for reading deletion.
func NewDeleteReadingCommandHandler(readingRepository ports.ReadingRepository) DeleteReadingCommandHandler {
	return DeleteReadingCommandHandler{
		readingRepository: readingRepository,
	}
}

// Handle deletes the reading. Propagates ObjectNotFoundError from the
// repository when the reading does not exist.
func (h DeleteReadingCommandHandler) Handle(ctx context.Context, cmd DeleteReadingCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return h.readingRepository.Delete(ctx, cmd.ReadingID())
}
