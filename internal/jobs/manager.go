package jobs

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"iotstream/internal/core/domain/model/polling"
	"iotstream/internal/core/ports"
	"iotstream/internal/pkg/metrics"
)

// handle is the concurrency control object for one job's scheduler loop.
// It is owned by the Manager, never persisted, and destroyed when the job is
// deleted or the loop exits.
type handle struct {
	cancel context.CancelFunc
	done   chan struct{}
}

// Manager bridges external requests to registry mutation and scheduler-loop
// lifecycle. It owns the handle map and guards the compound
// create/delete/delete-all sequences with its own mutex so that handle
// registration and registry insertion become visible to concurrent callers
// together or not at all.
//
// Lock ordering is always Manager.mu before the registry's internal lock;
// scheduler loops take only the registry lock.
type Manager struct {
	registry *Registry
	executor *Executor
	logger   *slog.Logger

	mu      sync.Mutex
	handles map[string]*handle

	baseCtx    context.Context
	baseCancel context.CancelFunc
}

// NewManager creates a polling-job manager. Scheduler loops poll devices
// through gateway, pausing fetchSpacing between devices within a run.
func NewManager(registry *Registry, gateway ports.DeviceGateway, fetchSpacing time.Duration, logger *slog.Logger) *Manager {
	baseCtx, baseCancel := context.WithCancel(context.Background())
	return &Manager{
		registry:   registry,
		executor:   NewExecutor(registry, gateway, fetchSpacing, logger),
		logger:     logger.With("component", "polling_job_manager"),
		handles:    make(map[string]*handle),
		baseCtx:    baseCtx,
		baseCancel: baseCancel,
	}
}

// Create registers a new polling job and spawns its scheduler loop. The
// returned snapshot has status Created; the first run happens inside the
// loop, not synchronously during creation.
func (m *Manager) Create(deviceIDs []string, intervalSeconds int) (*polling.Job, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	job, err := m.registry.NewJob(deviceIDs, intervalSeconds)
	if err != nil {
		return nil, err
	}

	loopCtx, cancel := context.WithCancel(m.baseCtx)
	h := &handle{cancel: cancel, done: make(chan struct{})}
	m.handles[job.ID()] = h

	go m.runLoop(loopCtx, h, job.ID(), job.DeviceIDs(), job.Interval())

	metrics.PollingJobsActive.Set(float64(m.registry.Len()))
	m.logger.Info("Polling job started",
		"job_id", job.ID(), "devices", job.DeviceIDs(), "interval", job.Interval())
	return job, nil
}

// List returns a snapshot of all current jobs.
func (m *Manager) List() []*polling.Job {
	return m.registry.List()
}

// Get returns a snapshot of one job, or ObjectNotFoundError.
func (m *Manager) Get(id string) (*polling.Job, error) {
	return m.registry.Get(id)
}

// Delete marks the job deleted, cancels its scheduler loop and removes both
// the registry entry and the handle in one locked sequence. The cancellation
// itself is asynchronous: the loop may still be mid-sleep or mid-run when
// Delete returns, but it self-terminates at its next checkpoint and can
// never write back into the removed entry.
//
// A concurrent second Delete for the same id observes the entry already
// absent, returns ObjectNotFoundError and cancels nothing.
func (m *Manager) Delete(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.registry.MarkDeletedAndRemove(id); err != nil {
		return err
	}

	if h, ok := m.handles[id]; ok {
		h.cancel()
		delete(m.handles, id)
	}

	metrics.PollingJobsActive.Set(float64(m.registry.Len()))
	m.logger.Info("Polling job deleted", "job_id", id)
	return nil
}

// DeleteAll cancels every outstanding loop, clears the handle map and clears
// the registry as a single locked operation, and returns how many jobs were
// removed.
func (m *Manager) DeleteAll() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, h := range m.handles {
		h.cancel()
	}
	m.handles = make(map[string]*handle)
	removed := m.registry.Clear()

	metrics.PollingJobsActive.Set(0)
	m.logger.Info("All polling jobs deleted", "count", removed)
	return removed
}

// Shutdown cancels every scheduler loop without mutating the registry and
// waits for the loops to unwind, bounded by ctx. Used on process shutdown.
func (m *Manager) Shutdown(ctx context.Context) error {
	m.baseCancel()

	m.mu.Lock()
	handles := make([]*handle, 0, len(m.handles))
	for _, h := range m.handles {
		handles = append(handles, h)
	}
	m.mu.Unlock()

	for _, h := range handles {
		select {
		case <-h.done:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return nil
}

// runLoop is the long-lived scheduler loop for one job. Once per iteration
// it checks the registry for liveness, invokes the executor, then sleeps for
// the job's interval. Cancellation during the sleep or during device
// processing unwinds the loop promptly; a failed run only logs and waits for
// the next interval.
func (m *Manager) runLoop(ctx context.Context, h *handle, jobID string, deviceIDs []string, interval time.Duration) {
	logger := m.logger.With("job_id", jobID)
	defer close(h.done)
	defer m.releaseHandle(jobID, h)

	for {
		if !m.registry.IsLive(jobID) {
			logger.Info("Polling job was deleted, stopping execution")
			return
		}

		if err := m.executor.Execute(ctx, jobID, deviceIDs); err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				logger.Info("Polling job cancelled")
				return
			}
			// Keep the schedule alive: wait one interval and retry rather
			// than dying silently.
			logger.Error("Unexpected error in polling job", "error", err)
		}

		select {
		case <-ctx.Done():
			logger.Info("Polling job cancelled")
			return
		case <-time.After(interval):
		}
	}
}

// releaseHandle drops the loop's handle if it is still the registered one.
// Covers loops that exit on their own after observing a deleted entry; a
// Delete that already swapped the map is left untouched.
func (m *Manager) releaseHandle(jobID string, h *handle) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if current, ok := m.handles[jobID]; ok && current == h {
		delete(m.handles, jobID)
	}
}
