package jobs_test

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"iotstream/internal/core/domain/model/polling"
	"iotstream/internal/jobs"
	"iotstream/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_NewJob(t *testing.T) {
	t.Run("assigns_sequential_ids", func(t *testing.T) {
		registry := jobs.NewRegistry()

		first, err := registry.NewJob([]string{"d1"}, 5)
		require.NoError(t, err)
		second, err := registry.NewJob([]string{"d2"}, 5)
		require.NoError(t, err)

		assert.Equal(t, "poll_1", first.ID())
		assert.Equal(t, "poll_2", second.ID())
		assert.Equal(t, 2, registry.Len())
	})

	t.Run("invalid_config_does_not_consume_an_id", func(t *testing.T) {
		registry := jobs.NewRegistry()

		_, err := registry.NewJob(nil, 5)
		require.Error(t, err)

		job, err := registry.NewJob([]string{"d1"}, 5)
		require.NoError(t, err)
		assert.Equal(t, "poll_1", job.ID())
	})

	t.Run("ids_are_unique_and_increasing_under_concurrent_creation", func(t *testing.T) {
		registry := jobs.NewRegistry()
		const creators = 20
		const jobsPerCreator = 25

		var wg sync.WaitGroup
		for i := 0; i < creators; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for j := 0; j < jobsPerCreator; j++ {
					_, err := registry.NewJob([]string{"d1"}, 5)
					assert.NoError(t, err)
				}
			}()
		}
		wg.Wait()

		snapshot := registry.List()
		require.Len(t, snapshot, creators*jobsPerCreator)

		seen := make(map[string]bool, len(snapshot))
		numbers := make([]int, 0, len(snapshot))
		for _, job := range snapshot {
			require.False(t, seen[job.ID()], "duplicate id %s", job.ID())
			seen[job.ID()] = true

			n, err := strconv.Atoi(strings.TrimPrefix(job.ID(), "poll_"))
			require.NoError(t, err)
			numbers = append(numbers, n)
		}

		sort.Ints(numbers)
		for i, n := range numbers {
			assert.Equal(t, i+1, n)
		}
	})
}

func TestRegistry_Get(t *testing.T) {
	t.Run("returns_snapshot", func(t *testing.T) {
		registry := jobs.NewRegistry()
		created, err := registry.NewJob([]string{"d1", "d2"}, 10)
		require.NoError(t, err)

		got, err := registry.Get(created.ID())
		require.NoError(t, err)
		assert.Equal(t, created.ID(), got.ID())
		assert.Equal(t, []string{"d1", "d2"}, got.DeviceIDs())
		assert.Equal(t, polling.Created, got.Status())
	})

	t.Run("missing_id_signals_not_found", func(t *testing.T) {
		registry := jobs.NewRegistry()

		_, err := registry.Get("poll_404")
		require.ErrorIs(t, err, errs.ErrObjectNotFound)
	})

	t.Run("snapshot_is_isolated_from_later_mutation", func(t *testing.T) {
		registry := jobs.NewRegistry()
		created, err := registry.NewJob([]string{"d1"}, 10)
		require.NoError(t, err)

		snapshot, err := registry.Get(created.ID())
		require.NoError(t, err)

		require.NoError(t, registry.StartRun(created.ID(), time.Now()))
		assert.Equal(t, polling.Created, snapshot.Status())
	})
}

func TestRegistry_RunTransitions(t *testing.T) {
	t.Run("full_run_cycle", func(t *testing.T) {
		registry := jobs.NewRegistry()
		job, err := registry.NewJob([]string{"d1", "d2"}, 1)
		require.NoError(t, err)

		require.NoError(t, registry.StartRun(job.ID(), time.Now()))
		require.NoError(t, registry.CompleteRun(job.ID(), time.Now(), 2))

		got, err := registry.Get(job.ID())
		require.NoError(t, err)
		assert.Equal(t, polling.Completed, got.Status())
		assert.Equal(t, 2, got.DataPointsFetched())
		assert.False(t, got.LastRun().IsZero())
		assert.False(t, got.LastCompleted().IsZero())
	})

	t.Run("failed_run_retains_error", func(t *testing.T) {
		registry := jobs.NewRegistry()
		job, err := registry.NewJob([]string{"d1"}, 1)
		require.NoError(t, err)

		require.NoError(t, registry.StartRun(job.ID(), time.Now()))
		require.NoError(t, registry.FailRun(job.ID(), errors.New("gateway timeout")))

		got, err := registry.Get(job.ID())
		require.NoError(t, err)
		assert.Equal(t, polling.Failed, got.Status())
		assert.Equal(t, "gateway timeout", got.LastError())
	})

	t.Run("writes_against_removed_entry_signal_not_found", func(t *testing.T) {
		registry := jobs.NewRegistry()
		job, err := registry.NewJob([]string{"d1"}, 1)
		require.NoError(t, err)
		require.NoError(t, registry.MarkDeletedAndRemove(job.ID()))

		require.ErrorIs(t, registry.StartRun(job.ID(), time.Now()), errs.ErrObjectNotFound)
		require.ErrorIs(t, registry.CompleteRun(job.ID(), time.Now(), 1), errs.ErrObjectNotFound)
		require.ErrorIs(t, registry.FailRun(job.ID(), errors.New("x")), errs.ErrObjectNotFound)
	})
}

func TestRegistry_IsLive(t *testing.T) {
	registry := jobs.NewRegistry()
	job, err := registry.NewJob([]string{"d1"}, 1)
	require.NoError(t, err)

	assert.True(t, registry.IsLive(job.ID()))
	assert.False(t, registry.IsLive("poll_404"))

	require.NoError(t, registry.MarkDeletedAndRemove(job.ID()))
	assert.False(t, registry.IsLive(job.ID()))
}

func TestRegistry_MarkDeletedAndRemove(t *testing.T) {
	t.Run("removes_entry", func(t *testing.T) {
		registry := jobs.NewRegistry()
		job, err := registry.NewJob([]string{"d1"}, 1)
		require.NoError(t, err)

		require.NoError(t, registry.MarkDeletedAndRemove(job.ID()))
		assert.Zero(t, registry.Len())

		_, err = registry.Get(job.ID())
		require.ErrorIs(t, err, errs.ErrObjectNotFound)
	})

	t.Run("concurrent_deletes_exactly_one_succeeds", func(t *testing.T) {
		registry := jobs.NewRegistry()
		job, err := registry.NewJob([]string{"d1"}, 1)
		require.NoError(t, err)

		const deleters = 10
		results := make(chan error, deleters)
		var wg sync.WaitGroup
		for i := 0; i < deleters; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				results <- registry.MarkDeletedAndRemove(job.ID())
			}()
		}
		wg.Wait()
		close(results)

		succeeded := 0
		for err := range results {
			if err == nil {
				succeeded++
			} else {
				require.ErrorIs(t, err, errs.ErrObjectNotFound)
			}
		}
		assert.Equal(t, 1, succeeded)
		assert.Zero(t, registry.Len())
	})
}

func TestRegistry_Clear(t *testing.T) {
	registry := jobs.NewRegistry()
	for i := 0; i < 3; i++ {
		_, err := registry.NewJob([]string{fmt.Sprintf("d%d", i)}, 1)
		require.NoError(t, err)
	}

	assert.Equal(t, 3, registry.Clear())
	assert.Zero(t, registry.Len())
	assert.Empty(t, registry.List())

	// Identifier assignment continues, it is never reset.
	job, err := registry.NewJob([]string{"d1"}, 1)
	require.NoError(t, err)
	assert.Equal(t, "poll_4", job.ID())
}
