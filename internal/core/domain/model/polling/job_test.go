package polling_test

import (
	"errors"
	"testing"
	"time"

	"iotstream/internal/core/domain/model/polling"
	"iotstream/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewJob(t *testing.T) {
	t.Run("creates_job_in_created_status", func(t *testing.T) {
		job, err := polling.NewJob("poll_1", []string{"d1", "d2"}, 5)

		require.NoError(t, err)
		require.NoError(t, job.Validate())
		assert.Equal(t, "poll_1", job.ID())
		assert.Equal(t, []string{"d1", "d2"}, job.DeviceIDs())
		assert.Equal(t, 5, job.IntervalSeconds())
		assert.Equal(t, 5*time.Second, job.Interval())
		assert.Equal(t, polling.Created, job.Status())
		assert.False(t, job.CreatedAt().IsZero())
		assert.True(t, job.LastRun().IsZero())
		assert.True(t, job.LastCompleted().IsZero())
		assert.Zero(t, job.DataPointsFetched())
		assert.Empty(t, job.LastError())
	})

	t.Run("rejects_empty_id", func(t *testing.T) {
		_, err := polling.NewJob("", []string{"d1"}, 5)

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("rejects_empty_device_list", func(t *testing.T) {
		_, err := polling.NewJob("poll_1", nil, 5)

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("rejects_blank_device_id", func(t *testing.T) {
		_, err := polling.NewJob("poll_1", []string{"d1", ""}, 5)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("rejects_non_positive_interval", func(t *testing.T) {
		for _, interval := range []int{0, -1} {
			_, err := polling.NewJob("poll_1", []string{"d1"}, interval)
			require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		}
	})

	t.Run("device_list_is_immutable", func(t *testing.T) {
		devices := []string{"d1", "d2"}
		job, err := polling.NewJob("poll_1", devices, 5)
		require.NoError(t, err)

		devices[0] = "mutated"
		assert.Equal(t, []string{"d1", "d2"}, job.DeviceIDs())

		snapshot := job.DeviceIDs()
		snapshot[1] = "mutated"
		assert.Equal(t, []string{"d1", "d2"}, job.DeviceIDs())
	})
}

func TestJob_Validate(t *testing.T) {
	t.Run("zero_value_job_is_rejected", func(t *testing.T) {
		var job polling.Job

		require.ErrorIs(t, job.Validate(), polling.ErrJobIsNotConstructed)
	})

	t.Run("nil_job_is_rejected", func(t *testing.T) {
		var job *polling.Job

		require.ErrorIs(t, job.Validate(), polling.ErrJobIsNotConstructed)
	})
}

func TestJob_RunCycle(t *testing.T) {
	t.Run("successful_run_records_timestamps_and_points", func(t *testing.T) {
		job, err := polling.NewJob("poll_1", []string{"d1", "d2"}, 1)
		require.NoError(t, err)

		started := time.Now()
		require.NoError(t, job.StartRun(started))
		assert.Equal(t, polling.Running, job.Status())
		assert.Equal(t, started, job.LastRun())

		finished := started.Add(200 * time.Millisecond)
		require.NoError(t, job.CompleteRun(finished, 2))
		assert.Equal(t, polling.Completed, job.Status())
		assert.Equal(t, finished, job.LastCompleted())
		assert.Equal(t, 2, job.DataPointsFetched())
	})

	t.Run("failed_run_records_error_and_schedule_survives", func(t *testing.T) {
		job, err := polling.NewJob("poll_1", []string{"d1"}, 1)
		require.NoError(t, err)

		require.NoError(t, job.StartRun(time.Now()))
		require.NoError(t, job.FailRun(errors.New("gateway timeout")))

		assert.Equal(t, polling.Failed, job.Status())
		assert.Equal(t, "gateway timeout", job.LastError())

		// The next run is still allowed after a failure.
		require.NoError(t, job.StartRun(time.Now()))
		assert.Equal(t, polling.Running, job.Status())
	})

	t.Run("completed_run_clears_retained_error", func(t *testing.T) {
		job, err := polling.NewJob("poll_1", []string{"d1"}, 1)
		require.NoError(t, err)

		require.NoError(t, job.StartRun(time.Now()))
		require.NoError(t, job.FailRun(errors.New("gateway timeout")))
		require.NoError(t, job.StartRun(time.Now()))
		require.NoError(t, job.CompleteRun(time.Now(), 1))

		assert.Empty(t, job.LastError())
	})

	t.Run("timestamps_never_move_backwards", func(t *testing.T) {
		job, err := polling.NewJob("poll_1", []string{"d1"}, 1)
		require.NoError(t, err)

		later := time.Now().Add(time.Hour)
		require.NoError(t, job.StartRun(later))
		require.NoError(t, job.CompleteRun(later, 1))

		earlier := time.Now()
		require.NoError(t, job.StartRun(earlier))
		assert.Equal(t, later, job.LastRun())

		require.NoError(t, job.CompleteRun(earlier, 1))
		assert.Equal(t, later, job.LastCompleted())
	})
}

func TestJob_MarkDeleted(t *testing.T) {
	t.Run("deleted_job_admits_no_further_runs", func(t *testing.T) {
		job, err := polling.NewJob("poll_1", []string{"d1"}, 1)
		require.NoError(t, err)

		require.NoError(t, job.MarkDeleted())
		assert.Equal(t, polling.Deleted, job.Status())

		require.Error(t, job.StartRun(time.Now()))
		require.Error(t, job.MarkDeleted())
	})
}

func TestJob_Clone(t *testing.T) {
	t.Run("clone_is_independent_of_original", func(t *testing.T) {
		job, err := polling.NewJob("poll_1", []string{"d1"}, 1)
		require.NoError(t, err)

		clone := job.Clone()
		require.NoError(t, job.StartRun(time.Now()))

		assert.Equal(t, polling.Created, clone.Status())
		assert.Equal(t, polling.Running, job.Status())
		assert.Equal(t, job.ID(), clone.ID())
	})
}
