package polling

import (
	"fmt"

	"iotstream/internal/pkg/errs"
)

// Status represents the lifecycle state of a polling job.
// It implements a state machine with defined transitions so a job's state
// always reflects what its scheduler loop is doing.
//
// State transitions:
//
//	Created ──> Running ──> Completed ──┐
//	                 │                  │
//	                 └──> Failed ───────┤
//	                 ^                  │
//	                 └──────────────────┘
//	          (next run re-enters Running)
//
//	any state ──> Deleted (terminal, side-channel via job deletion)
//
// A job never regresses to Created once it has run, and Deleted admits no
// further transitions.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Created is the initial status assigned when a job is registered.
	// The job's first run has not started yet.
	Created

	// Running indicates a run is currently executing for the job.
	Running

	// Completed indicates the most recent run finished successfully.
	// The scheduler re-enters Running on the next interval.
	Completed

	// Failed indicates the most recent run raised an error.
	// Failure is non-fatal to the schedule; the next run still happens.
	Failed

	// Deleted marks the job for removal. The scheduler loop observes this
	// status (or the absence of the registry entry) and terminates.
	Deleted
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "unknown",
		Created:   "created",
		Running:   "running",
		Completed: "completed",
		Failed:    "failed",
		Deleted:   "deleted",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Created:   "created",
		Running:   "running",
		Completed: "completed",
		Failed:    "failed",
		Deleted:   "deleted",
	}
}

// Validate checks if the Status value is one of the defined lifecycle states.
// Unknown (0) and out-of-range values are invalid.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the lowercase wire name of the status ("created", "running",
// ...). It implements fmt.Stringer and is safe on any value, returning
// "unknown" for invalid ones.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// IsTerminal reports whether no further transitions are allowed.
// Only Deleted is terminal; Completed and Failed re-enter Running on the next
// scheduled run.
func (s Status) IsTerminal() bool {
	return s == Deleted
}

// Run transitions the status to Running at the start of a scheduled run.
//
// Valid transitions:
//   - Created -> Running (first run)
//   - Completed -> Running (next interval)
//   - Failed -> Running (retry by continuation)
//   - Running -> Running (a new run superseding a stale marker)
//
// Deleted jobs cannot run again.
func (s Status) Run() (Status, error) {
	if s == Deleted || s == Unknown {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to start a run", s.String()),
		)
	}

	return Running, nil
}

// Complete transitions the status to Completed when a run finishes
// successfully. Only a Running job can complete.
func (s Status) Complete() (Status, error) {
	if s != Running {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to complete a run", s.String()),
		)
	}

	return Completed, nil
}

// Fail transitions the status to Failed when a run raises an error.
// Only a Running job can fail; failure does not stop the schedule.
func (s Status) Fail() (Status, error) {
	if s != Running {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to fail a run", s.String()),
		)
	}

	return Failed, nil
}

// Delete transitions the status to Deleted. Allowed from every valid state;
// deleting an already deleted job is rejected so callers can detect double
// deletion.
func (s Status) Delete() (Status, error) {
	if s == Deleted || s == Unknown {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to delete", s.String()),
		)
	}

	return Deleted, nil
}
