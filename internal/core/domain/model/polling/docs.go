// Package polling contains the domain model for recurring device-polling
// jobs: the Job aggregate and its Status state machine.
//
// A Job describes one user-requested recurring collection task over a set of
// devices. The jobs subsystem (internal/jobs) owns the registry of jobs and
// the scheduler loops that drive them through the Status transitions; this
// package only enforces the rules those transitions must follow.
package polling
