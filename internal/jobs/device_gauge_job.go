package jobs

import (
	"context"
	"log/slog"

	"iotstream/internal/core/application/usecases/queries"
	"iotstream/internal/pkg/metrics"

	"github.com/robfig/cron/v3"
)

// DeviceGaugeJob periodically refreshes the devices_tracked gauge from the
// set of distinct devices with persisted readings.
type DeviceGaugeJob struct {
	handler queries.GetDevicesQueryHandler
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewDeviceGaugeJob creates the gauge refresh job.
// Uses GetDevicesQueryHandler to count tracked devices every 30 seconds.
func NewDeviceGaugeJob(handler queries.GetDevicesQueryHandler, logger *slog.Logger) *DeviceGaugeJob {
	return &DeviceGaugeJob{
		handler: handler,
		cron:    cron.New(),
		logger:  logger.With("component", "device_gauge_job"),
	}
}

// Start begins the gauge refresh job.
func (j *DeviceGaugeJob) Start() error {
	_, err := j.cron.AddFunc("@every 30s", func() {
		ctx := context.Background()

		devices, err := j.handler.Handle(ctx, queries.NewGetDevicesQuery())
		if err != nil {
			j.logger.ErrorContext(ctx, "Device gauge refresh failed", "error", err)
			return
		}

		metrics.DevicesTracked.Set(float64(len(devices)))
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Device gauge job started (refreshing every 30 seconds)")
	return nil
}

// Stop stops the gauge refresh job.
func (j *DeviceGaugeJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Device gauge job stopped")
}
