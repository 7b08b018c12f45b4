package jobs

import (
	"fmt"
	"sync"
	"time"

	"iotstream/internal/core/domain/model/polling"
	"iotstream/internal/pkg/errs"
)

// Registry is the authoritative in-memory store of polling-job state. A
// single mutex linearizes every read-modify-write sequence, and every
// mutation re-checks existence inside the lock because the entry may have
// been deleted concurrently by another caller.
//
// The registry hands out clones, never live aggregates: a snapshot obtained
// from Get or List cannot be mutated by a scheduler loop running in another
// goroutine.
type Registry struct {
	mu      sync.Mutex
	jobs    map[string]*polling.Job
	counter int
}

// NewRegistry creates an empty job registry.
func NewRegistry() *Registry {
	return &Registry{
		jobs: make(map[string]*polling.Job),
	}
}

// NewJob assigns the next identifier ("poll_<n>", strictly increasing),
// creates a job in Created status and inserts it. Returns a snapshot of the
// inserted job.
func (r *Registry) NewJob(deviceIDs []string, intervalSeconds int) (*polling.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := fmt.Sprintf("poll_%d", r.counter+1)
	job, err := polling.NewJob(id, deviceIDs, intervalSeconds)
	if err != nil {
		return nil, err
	}

	r.counter++
	r.jobs[id] = job
	return job.Clone(), nil
}

// Get returns a snapshot of the job with the given id.
func (r *Registry) Get(id string) (*polling.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	job, ok := r.jobs[id]
	if !ok {
		return nil, errs.NewObjectNotFoundError("jobId", id)
	}
	return job.Clone(), nil
}

// List returns a point-in-time snapshot of all jobs, including ones whose
// last run failed. Iteration order is unspecified.
func (r *Registry) List() []*polling.Job {
	r.mu.Lock()
	defer r.mu.Unlock()

	snapshot := make([]*polling.Job, 0, len(r.jobs))
	for _, job := range r.jobs {
		snapshot = append(snapshot, job.Clone())
	}
	return snapshot
}

// Len returns the current number of registered jobs.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.jobs)
}

// IsLive reports whether the job exists and has not been marked deleted.
// Scheduler loops call this at the top of every iteration to decide whether
// to keep running.
func (r *Registry) IsLive(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	job, ok := r.jobs[id]
	return ok && job.Status() != polling.Deleted
}

// StartRun transitions the job to Running and records the run start time.
// Returns ObjectNotFoundError if the job was deleted in the meantime.
func (r *Registry) StartRun(id string, now time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	job, ok := r.jobs[id]
	if !ok {
		return errs.NewObjectNotFoundError("jobId", id)
	}
	return job.StartRun(now)
}

// CompleteRun transitions the job to Completed, recording the completion
// time and the number of data points fetched. Returns ObjectNotFoundError if
// the job was deleted in the meantime.
func (r *Registry) CompleteRun(id string, now time.Time, dataPoints int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	job, ok := r.jobs[id]
	if !ok {
		return errs.NewObjectNotFoundError("jobId", id)
	}
	return job.CompleteRun(now, dataPoints)
}

// FailRun transitions the job to Failed and records the failure message.
// Returns ObjectNotFoundError if the job was deleted in the meantime.
func (r *Registry) FailRun(id string, cause error) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	job, ok := r.jobs[id]
	if !ok {
		return errs.NewObjectNotFoundError("jobId", id)
	}
	return job.FailRun(cause)
}

// MarkDeletedAndRemove marks the job deleted and removes it from the
// registry in one locked step. Returns ObjectNotFoundError if the job is
// already gone, so a concurrent second delete is a detectable no-op.
func (r *Registry) MarkDeletedAndRemove(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	job, ok := r.jobs[id]
	if !ok {
		return errs.NewObjectNotFoundError("jobId", id)
	}

	if err := job.MarkDeleted(); err != nil {
		return err
	}
	delete(r.jobs, id)
	return nil
}

// Clear removes every job and returns how many were removed. Identifier
// assignment is not reset; ids stay strictly increasing for the lifetime of
// the registry.
func (r *Registry) Clear() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	removed := len(r.jobs)
	r.jobs = make(map[string]*polling.Job)
	return removed
}
