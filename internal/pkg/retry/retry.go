// Package retry provides a bounded-retry initialization wrapper for
// dependencies that must be available before the process starts serving
// traffic.
package retry

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// InitFunc performs one initialization attempt against a dependent resource.
type InitFunc func(ctx context.Context) error

// InitWithRetry attempts fn up to maxAttempts times, waiting wait between
// attempts. The last error is returned once all attempts are exhausted;
// callers treat that as fatal and abort startup.
func InitWithRetry(ctx context.Context, name string, fn InitFunc, maxAttempts uint64, wait time.Duration, logger *slog.Logger) error {
	if maxAttempts == 0 {
		return fmt.Errorf("init %s: maxAttempts must be positive", name)
	}

	attempt := 0
	operation := func() error {
		attempt++
		if err := fn(ctx); err != nil {
			logger.WarnContext(ctx, "Initialization attempt failed",
				"dependency", name, "attempt", attempt, "error", err)
			return err
		}
		return nil
	}

	bo := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewConstantBackOff(wait), maxAttempts-1),
		ctx,
	)

	if err := backoff.Retry(operation, bo); err != nil {
		return fmt.Errorf("failed to initialize %s after %d attempts: %w", name, attempt, err)
	}

	logger.InfoContext(ctx, "Dependency initialized", "dependency", name, "attempts", attempt)
	return nil
}
