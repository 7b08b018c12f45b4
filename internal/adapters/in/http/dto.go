package http

import (
	"time"

	"iotstream/internal/core/application/usecases/queries"
	"iotstream/internal/core/domain/model/polling"
)

// ErrorResponse is the uniform error body returned by every endpoint.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// IngestRequest is the wire format for submitting one sensor reading.
type IngestRequest struct {
	DeviceID     string   `json:"device_id"`
	ReadingValue float64  `json:"reading_value"`
	ReadingType  string   `json:"reading_type"`
	Unit         string   `json:"unit"`
	BatteryLevel *float64 `json:"battery_level,omitempty"`
	RawData      *string  `json:"raw_data,omitempty"`
}

// IngestResponse acknowledges that a reading was accepted into the stream.
// Acceptance means the broker has the event; persistence happens
// asynchronously.
type IngestResponse struct {
	Status  string `json:"status"`
	EventID string `json:"event_id"`
}

// ReadingResponse is the wire format for one stored reading.
type ReadingResponse struct {
	ID           int64     `json:"id"`
	DeviceID     string    `json:"device_id"`
	ReadingValue float64   `json:"reading_value"`
	ReadingType  string    `json:"reading_type"`
	Unit         string    `json:"unit"`
	BatteryLevel *float64  `json:"battery_level,omitempty"`
	RawData      *string   `json:"raw_data,omitempty"`
	Timestamp    time.Time `json:"timestamp"`
}

// UpdateReadingRequest carries a partial update for a stored reading.
// Absent fields keep their stored values.
type UpdateReadingRequest struct {
	DeviceID     *string  `json:"device_id,omitempty"`
	ReadingValue *float64 `json:"reading_value,omitempty"`
	ReadingType  *string  `json:"reading_type,omitempty"`
	Unit         *string  `json:"unit,omitempty"`
	BatteryLevel *float64 `json:"battery_level,omitempty"`
	RawData      *string  `json:"raw_data,omitempty"`
}

// DeviceResponse is the wire format for one known device.
type DeviceResponse struct {
	DeviceID     string    `json:"device_id"`
	ReadingCount int64     `json:"reading_count"`
	LastSeen     time.Time `json:"last_seen"`
}

// RollingAverageResponse is the wire format for a trailing-window average.
type RollingAverageResponse struct {
	DeviceID      string  `json:"device_id"`
	WindowMinutes int     `json:"window_minutes"`
	Average       float64 `json:"average"`
	SampleCount   int64   `json:"sample_count"`
}

// CreatePollRequest is the wire format for registering a polling job.
type CreatePollRequest struct {
	DeviceIDs       []string `json:"device_ids"`
	IntervalSeconds int      `json:"interval_seconds"`
}

// PollJobResponse is the wire format for one polling job.
type PollJobResponse struct {
	JobID             string     `json:"job_id"`
	DeviceIDs         []string   `json:"device_ids"`
	IntervalSeconds   int        `json:"interval_seconds"`
	Status            string     `json:"status"`
	CreatedAt         time.Time  `json:"created_at"`
	LastRun           *time.Time `json:"last_run,omitempty"`
	LastCompleted     *time.Time `json:"last_completed,omitempty"`
	DataPointsFetched int        `json:"data_points_fetched"`
	LastError         string     `json:"last_error,omitempty"`
}

// DeleteAllJobsResponse reports how many polling jobs were removed.
type DeleteAllJobsResponse struct {
	Deleted int `json:"deleted"`
}

func toReadingResponse(reading queries.ReadingResponse) ReadingResponse {
	return ReadingResponse{
		ID:           reading.ID,
		DeviceID:     reading.DeviceID,
		ReadingValue: reading.ReadingValue,
		ReadingType:  reading.ReadingType,
		Unit:         reading.Unit,
		BatteryLevel: reading.BatteryLevel,
		RawData:      reading.RawData,
		Timestamp:    reading.Timestamp,
	}
}

func toPollJobResponse(job *polling.Job) PollJobResponse {
	response := PollJobResponse{
		JobID:             job.ID(),
		DeviceIDs:         job.DeviceIDs(),
		IntervalSeconds:   job.IntervalSeconds(),
		Status:            job.Status().String(),
		CreatedAt:         job.CreatedAt(),
		DataPointsFetched: job.DataPointsFetched(),
		LastError:         job.LastError(),
	}
	if lastRun := job.LastRun(); !lastRun.IsZero() {
		response.LastRun = &lastRun
	}
	if lastCompleted := job.LastCompleted(); !lastCompleted.IsZero() {
		response.LastCompleted = &lastCompleted
	}
	return response
}
