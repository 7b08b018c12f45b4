package http_test

import (
	"log/slog"
	gohttp "net/http"
	"net/http/httptest"
	"testing"
	"time"

	httpadapter "iotstream/internal/adapters/in/http"
	"iotstream/internal/pkg/ratelimit"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func newEchoWithOK(middleware ...echo.MiddlewareFunc) *echo.Echo {
	e := echo.New()
	e.Use(middleware...)
	handler := func(c echo.Context) error { return c.NoContent(gohttp.StatusOK) }
	e.GET("/health", handler)
	e.GET("/telemetry/poll", handler)
	return e
}

func TestRateLimit_FailsOpenWithoutBackend(t *testing.T) {
	// A limiter with no Redis client allows everything.
	limiter := ratelimit.NewLimiter(nil, 1, time.Minute, slog.New(slog.DiscardHandler))
	e := newEchoWithOK(httpadapter.RateLimit(limiter))

	for i := 0; i < 5; i++ {
		req := httptest.NewRequest(gohttp.MethodGet, "/telemetry/poll", nil)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		assert.Equal(t, gohttp.StatusOK, rec.Code)
	}
}

func TestRateLimit_SkipsProbePaths(t *testing.T) {
	limiter := ratelimit.NewLimiter(nil, 1, time.Minute, slog.New(slog.DiscardHandler))
	e := newEchoWithOK(httpadapter.RateLimit(limiter))

	req := httptest.NewRequest(gohttp.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, gohttp.StatusOK, rec.Code)
}

func TestSecurityHeaders(t *testing.T) {
	e := newEchoWithOK(httpadapter.SecurityHeaders())

	req := httptest.NewRequest(gohttp.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", rec.Header().Get("X-Frame-Options"))
	assert.Equal(t, "no-store", rec.Header().Get("Cache-Control"))
}

func TestRequestMetrics_DoesNotInterfereWithResponses(t *testing.T) {
	e := newEchoWithOK(httpadapter.RequestMetrics())

	req := httptest.NewRequest(gohttp.MethodGet, "/telemetry/poll", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, gohttp.StatusOK, rec.Code)
}
