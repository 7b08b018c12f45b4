package queries

import (
	"errors"

	"iotstream/internal/pkg/errs"
	"iotstream/internal/pkg/guard"
)

var (
	ErrGetReadingByIDQueryIsNotConstructed = errors.New(
		"GetReadingByIDQuery must be created via NewGetReadingByIDQuery constructor",
	)
)

// GetReadingByIDQuery retrieves one stored reading by its identifier.
type GetReadingByIDQuery struct { //nolint:recvcheck //using for validation
	readingID int64

	guard guard.ConstructorGuard
}

// NewGetReadingByIDQuery creates a query for a single stored reading.
func NewGetReadingByIDQuery(readingID int64) (GetReadingByIDQuery, error) {
	if readingID <= 0 {
		return GetReadingByIDQuery{}, errs.NewValueIsInvalidError("readingId")
	}

	return GetReadingByIDQuery{
		readingID: readingID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetReadingByIDQueryIsNotConstructed if validation fails.
func (q GetReadingByIDQuery) Validate() error {
	return q.guard.Validate(ErrGetReadingByIDQueryIsNotConstructed)
}

// ReadingID returns the identifier of the reading to retrieve.
func (q GetReadingByIDQuery) ReadingID() int64 {
	return q.readingID
}
