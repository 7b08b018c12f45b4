// Package errs provides standardized error types for the IoT stream engine.
// It implements a consistent pattern for error creation, formatting, and
// unwrapping that is used throughout the application.
//
// Each error type follows the same shape:
//   - A sentinel error variable (e.g. ErrObjectNotFound)
//   - A struct type carrying error details
//   - Constructor functions with and without cause
//   - Error() for formatting, Unwrap() for errors.Is support
//
// Handlers at the HTTP boundary rely on errors.Is against the sentinels to
// map failures to status codes (ErrObjectNotFound -> 404, validation
// failures -> 400).
package errs
