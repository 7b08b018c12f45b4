// Package metrics defines the Prometheus instruments exposed by the IoT
// stream engine. Instruments are registered with the default registry via
// promauto and served by the /metrics endpoint.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// TelemetryPointsTotal counts sensor readings accepted by the ingestion
	// endpoint, i.e. readings successfully handed to the broker. It is not
	// incremented on publish failure.
	TelemetryPointsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "telemetry_points_total",
			Help: "Total number of telemetry data points accepted for processing",
		},
	)

	// PollingJobsActive tracks the current size of the polling-job registry.
	// Updated on every create, delete and delete-all.
	PollingJobsActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "polling_jobs_active",
			Help: "Number of active polling jobs",
		},
	)

	// DevicesTracked reflects the number of distinct devices with persisted
	// readings. Refreshed periodically by the device gauge job.
	DevicesTracked = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "devices_tracked",
			Help: "Number of devices being tracked",
		},
	)

	// HTTPRequestsTotal counts HTTP requests by method and path.
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint"},
	)

	// HTTPRequestDuration observes request handling time in seconds by
	// method and path.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)
)
