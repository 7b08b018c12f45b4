package ratelimit_test

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"iotstream/internal/pkg/ratelimit"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLimiter_WithoutBackend(t *testing.T) {
	logger := slog.New(slog.DiscardHandler)

	t.Run("allow_fails_open_without_client", func(t *testing.T) {
		limiter := ratelimit.NewLimiter(nil, 100, time.Minute, logger)

		assert.True(t, limiter.Allow(context.Background(), "client-1"))
	})

	t.Run("ping_fails_without_client", func(t *testing.T) {
		limiter := ratelimit.NewLimiter(nil, 100, time.Minute, logger)

		require.Error(t, limiter.Ping(context.Background()))
	})
}
