// Package telemetry contains the domain model for sensor readings flowing
// through the ingestion path.
package telemetry
