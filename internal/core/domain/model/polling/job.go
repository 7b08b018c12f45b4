package polling

import (
	"errors"
	"fmt"
	"time"

	"iotstream/internal/pkg/errs"
)

var (
	// ErrJobIsNotConstructed is returned when a Job instance was not created
	// through the NewJob factory method.
	ErrJobIsNotConstructed = errors.New("Job must be created via NewJob constructor")
)

// Job represents one recurring device-polling task. It is the aggregate
// mutated by the scheduler loop (status, timestamps, counts) and by the job
// manager (deletion marker).
//
// Job follows these invariants:
//   - ID, device list and interval are immutable after creation
//   - The device list is non-empty and the interval is positive
//   - Status transitions follow the rules defined on Status
//   - Timestamps are monotonically non-decreasing once set
//   - Can only be created through the NewJob constructor
//
// Job is not safe for concurrent use by itself; the registry serializes all
// access under its lock.
type Job struct {
	// id is the registry-assigned identifier ("poll_<n>")
	id string

	// deviceIDs is the ordered set of devices polled on each run
	deviceIDs []string

	// interval is the wait time between runs
	interval time.Duration

	// status is the current lifecycle state
	status Status

	createdAt     time.Time
	lastRun       time.Time
	lastCompleted time.Time

	// dataPointsFetched is the device count of the last completed run
	dataPointsFetched int

	// lastError holds the most recent run failure message. It is cleared
	// when a later run completes successfully.
	lastError string

	// isConstructed ensures the job was created via NewJob
	isConstructed bool
}

// NewJob creates a new Job in Created status. This is the only way to create
// a valid Job, ensuring the identifier, device list and interval invariants
// hold for the job's whole lifetime.
//
// Parameters:
//   - id: registry-assigned identifier (must be non-empty)
//   - deviceIDs: devices to poll (must be non-empty, no blank entries)
//   - intervalSeconds: wait between runs (must be positive)
func NewJob(id string, deviceIDs []string, intervalSeconds int) (*Job, error) {
	job := &Job{
		status:        Created,
		createdAt:     time.Now(),
		isConstructed: true,
	}

	if err := errors.Join(
		job.setID(id),
		job.setDeviceIDs(deviceIDs),
		job.setInterval(intervalSeconds),
	); err != nil {
		return nil, err
	}

	return job, nil
}

// Validate ensures the Job instance was properly constructed through NewJob.
func (j *Job) Validate() error {
	if j == nil || !j.isConstructed {
		return ErrJobIsNotConstructed
	}
	return nil
}

// ID returns the job's identifier.
func (j *Job) ID() string {
	return j.id
}

// DeviceIDs returns a copy of the job's device list.
func (j *Job) DeviceIDs() []string {
	ids := make([]string, len(j.deviceIDs))
	copy(ids, j.deviceIDs)
	return ids
}

// Interval returns the wait time between runs.
func (j *Job) Interval() time.Duration {
	return j.interval
}

// IntervalSeconds returns the configured interval in whole seconds, as it
// appears on the wire.
func (j *Job) IntervalSeconds() int {
	return int(j.interval / time.Second)
}

// Status returns the current lifecycle state.
func (j *Job) Status() Status {
	return j.status
}

// CreatedAt returns the creation timestamp.
func (j *Job) CreatedAt() time.Time {
	return j.createdAt
}

// LastRun returns the start time of the most recent run, or the zero time if
// the job has never run.
func (j *Job) LastRun() time.Time {
	return j.lastRun
}

// LastCompleted returns the finish time of the most recent successful run, or
// the zero time if no run has completed.
func (j *Job) LastCompleted() time.Time {
	return j.lastCompleted
}

// DataPointsFetched returns the number of data points collected by the last
// completed run.
func (j *Job) DataPointsFetched() int {
	return j.dataPointsFetched
}

// LastError returns the most recent run failure message, or the empty string.
func (j *Job) LastError() string {
	return j.lastError
}

// StartRun transitions the job to Running and records the run start time.
// Timestamps never move backwards even if the caller's clock does.
func (j *Job) StartRun(now time.Time) error {
	newStatus, err := j.status.Run()
	if err != nil {
		return err
	}

	j.status = newStatus
	if now.After(j.lastRun) {
		j.lastRun = now
	}
	return nil
}

// CompleteRun transitions the job to Completed, records the completion time
// and the number of data points fetched, and clears any retained error from a
// previous failed run.
func (j *Job) CompleteRun(now time.Time, dataPoints int) error {
	newStatus, err := j.status.Complete()
	if err != nil {
		return err
	}

	j.status = newStatus
	if now.After(j.lastCompleted) {
		j.lastCompleted = now
	}
	j.dataPointsFetched = dataPoints
	j.lastError = ""
	return nil
}

// FailRun transitions the job to Failed and records the failure message.
// The message is retained until the next successful run overwrites it.
func (j *Job) FailRun(cause error) error {
	newStatus, err := j.status.Fail()
	if err != nil {
		return err
	}

	j.status = newStatus
	if cause != nil {
		j.lastError = cause.Error()
	}
	return nil
}

// MarkDeleted transitions the job to Deleted. The scheduler loop observes
// this status and terminates at its next checkpoint.
func (j *Job) MarkDeleted() error {
	newStatus, err := j.status.Delete()
	if err != nil {
		return err
	}

	j.status = newStatus
	return nil
}

// Clone returns a deep copy of the job. The registry hands out clones so that
// snapshots taken under the lock cannot be mutated by concurrent runs.
func (j *Job) Clone() *Job {
	clone := *j
	clone.deviceIDs = make([]string, len(j.deviceIDs))
	copy(clone.deviceIDs, j.deviceIDs)
	return &clone
}

func (j *Job) setID(id string) error {
	if id == "" {
		return errs.NewValueIsRequiredError("id")
	}
	j.id = id
	return nil
}

func (j *Job) setDeviceIDs(deviceIDs []string) error {
	if len(deviceIDs) == 0 {
		return errs.NewValueIsRequiredError("deviceIDs")
	}
	for i, deviceID := range deviceIDs {
		if deviceID == "" {
			return errs.NewValueIsInvalidErrorWithCause("deviceIDs", fmt.Errorf("device id at index %d is empty", i))
		}
	}
	j.deviceIDs = make([]string, len(deviceIDs))
	copy(j.deviceIDs, deviceIDs)
	return nil
}

func (j *Job) setInterval(intervalSeconds int) error {
	if intervalSeconds <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("interval", fmt.Errorf("%d is not greater than 0", intervalSeconds))
	}
	j.interval = time.Duration(intervalSeconds) * time.Second
	return nil
}
