package jobs

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"iotstream/internal/core/ports"
	"iotstream/internal/pkg/errs"
)

// Executor performs one round of device polling for a job and records the
// outcome in the registry. It holds no per-job state; the registry is the
// single source of truth.
type Executor struct {
	registry *Registry
	gateway  ports.DeviceGateway
	logger   *slog.Logger

	// fetchSpacing is the pause between per-device fetches within a run,
	// a cancellable suspension point.
	fetchSpacing time.Duration
}

// NewExecutor creates an executor that polls devices through gateway and
// writes run outcomes into registry.
func NewExecutor(registry *Registry, gateway ports.DeviceGateway, fetchSpacing time.Duration, logger *slog.Logger) *Executor {
	return &Executor{
		registry:     registry,
		gateway:      gateway,
		logger:       logger.With("component", "polling_executor"),
		fetchSpacing: fetchSpacing,
	}
}

// Execute runs one polling round for the given job.
//
// The job is marked Running before any device is fetched. If every device
// fetch succeeds the job is marked Completed with the number of data points;
// if any fetch fails the whole run is marked Failed and the remaining
// devices are skipped. Either way the schedule continues - run failures are
// never fatal to the loop.
//
// Cancellation between device fetches or during a fetch unwinds the run
// without recording a Failed status; the returned context error tells the
// loop to exit. Every status write re-checks existence inside the registry
// lock, so a run racing a delete can never resurrect a removed entry.
func (e *Executor) Execute(ctx context.Context, jobID string, deviceIDs []string) error {
	if err := e.registry.StartRun(jobID, time.Now()); err != nil {
		// Deleted or removed concurrently; nothing to do.
		if errors.Is(err, errs.ErrObjectNotFound) || errors.Is(err, errs.ErrValueIsInvalid) {
			return nil
		}
		return err
	}

	fetched := 0
	for _, deviceID := range deviceIDs {
		if err := ctx.Err(); err != nil {
			return err
		}

		value, err := e.gateway.Fetch(ctx, deviceID)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return err
			}

			e.logger.ErrorContext(ctx, "Polling run failed",
				"job_id", jobID, "device_id", deviceID, "error", err)
			if failErr := e.registry.FailRun(jobID, err); failErr != nil && !errors.Is(failErr, errs.ErrObjectNotFound) {
				e.logger.ErrorContext(ctx, "Failed to record run failure", "job_id", jobID, "error", failErr)
			}
			return nil
		}

		fetched++
		e.logger.DebugContext(ctx, "Fetched reading",
			"job_id", jobID, "device_id", deviceID, "value", value)

		if e.fetchSpacing > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(e.fetchSpacing):
			}
		}
	}

	if err := e.registry.CompleteRun(jobID, time.Now(), fetched); err != nil && !errors.Is(err, errs.ErrObjectNotFound) {
		return err
	}
	return nil
}
