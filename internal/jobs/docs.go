// Package jobs provides the polling-job subsystem of the IoT stream engine.
//
// # Components
//
// 1. Registry - mutex-guarded in-memory store of polling-job state, the
// single source of truth for job lifecycle
// 2. Manager - creates, lists, retrieves and cancels jobs; owns the handle
// map binding each job to its scheduler loop
// 3. Executor - performs one round of device polling and records the
// outcome in the registry
// 4. DeviceGaugeJob - cron-based refresh of the devices_tracked gauge
//
// # Lifecycle
//
// A creation request inserts a job into the registry and spawns one
// scheduler goroutine bound to a cancellable handle. The loop repeatedly
// invokes the executor at the job's interval until the registry entry is
// gone or its handle is cancelled. Deleting a job marks it deleted, cancels
// the handle and removes both the entry and the handle under the manager's
// lock; the loop observes this at its next checkpoint and unwinds.
//
// # Error Handling
//
// - A failed run marks the job Failed and retains the error message; the
// schedule continues on the next interval
// - Unexpected loop errors are logged and retried after one interval
// - Cancellation exits the loop without recording a Failed status
package jobs
