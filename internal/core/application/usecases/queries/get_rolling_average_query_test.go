package queries_test

import (
	"testing"
	"time"

	"iotstream/internal/core/application/usecases/queries"
	"iotstream/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGetRollingAverageQuery(t *testing.T) {
	t.Run("valid_window", func(t *testing.T) {
		query, err := queries.NewGetRollingAverageQuery("thermo-42", 15)

		require.NoError(t, err)
		require.NoError(t, query.Validate())
		assert.Equal(t, "thermo-42", query.DeviceID())
		assert.Equal(t, 15, query.WindowMinutes())
		assert.Equal(t, 15*time.Minute, query.Window())
	})

	t.Run("empty_device_id", func(t *testing.T) {
		_, err := queries.NewGetRollingAverageQuery("", 15)

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("non_positive_window", func(t *testing.T) {
		_, err := queries.NewGetRollingAverageQuery("thermo-42", 0)

		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})

	t.Run("window_over_a_day", func(t *testing.T) {
		_, err := queries.NewGetRollingAverageQuery("thermo-42", 24*60+1)

		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})

	t.Run("zero_value_fails_validation", func(t *testing.T) {
		var query queries.GetRollingAverageQuery

		require.ErrorIs(t, query.Validate(), queries.ErrGetRollingAverageQueryIsNotConstructed)
	})
}

func TestNewGetLatestReadingQuery(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		query, err := queries.NewGetLatestReadingQuery("thermo-42", "C")

		require.NoError(t, err)
		assert.Equal(t, "thermo-42", query.DeviceID())
		assert.Equal(t, "C", query.Unit())
	})

	t.Run("unit_is_optional", func(t *testing.T) {
		query, err := queries.NewGetLatestReadingQuery("thermo-42", "")

		require.NoError(t, err)
		assert.Empty(t, query.Unit())
	})

	t.Run("empty_device_id", func(t *testing.T) {
		_, err := queries.NewGetLatestReadingQuery("", "")

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})
}

func TestNewGetReadingByIDQuery(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		query, err := queries.NewGetReadingByIDQuery(17)

		require.NoError(t, err)
		assert.Equal(t, int64(17), query.ReadingID())
	})

	t.Run("non_positive_id", func(t *testing.T) {
		_, err := queries.NewGetReadingByIDQuery(0)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}
