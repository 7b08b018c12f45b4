package commands

import (
	"context"

	"iotstream/internal/core/domain/model/telemetry"
	"iotstream/internal/core/ports"
)

// UpdateReadingCommandHandler applies partial updates to stored readings.
//
// Example:
//
//	handler := NewUpdateReadingCommandHandler(repo)
//	value := 22.8
//	cmd, _ := NewUpdateReadingCommand(17, ports.ReadingPatch{ReadingValue: &value})
//
//	updated, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return fmt.Errorf("update failed: %w", err)
//	}
type UpdateReadingCommandHandler struct {
	readingRepository ports.ReadingRepository
}

// NewUpdateReadingCommandHandler creates a handler for reading updates.
func NewUpdateReadingCommandHandler(readingRepository ports.ReadingRepository) UpdateReadingCommandHandler {
	return UpdateReadingCommandHandler{
		readingRepository: readingRepository,
	}
}

// Handle applies the patch and returns the updated stored reading.
// Propagates ObjectNotFoundError from the repository when the reading does
// not exist.
func (h UpdateReadingCommandHandler) Handle(ctx context.Context, cmd UpdateReadingCommand) (*telemetry.StoredReading, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	return h.readingRepository.Update(ctx, cmd.ReadingID(), cmd.Patch())
}
