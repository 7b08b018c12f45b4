package http

import (
	"net/http"
	"time"

	"iotstream/internal/pkg/metrics"
	"iotstream/internal/pkg/ratelimit"

	"github.com/labstack/echo/v4"
)

// RequestMetrics records the request counter and latency histogram for every
// handled request, labeled by method and route pattern rather than raw path
// so that parameterized routes stay bounded in cardinality.
func RequestMetrics() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)

			endpoint := c.Path()
			if endpoint == "" {
				endpoint = "unmatched"
			}

			metrics.HTTPRequestsTotal.WithLabelValues(c.Request().Method, endpoint).Inc()
			metrics.HTTPRequestDuration.WithLabelValues(c.Request().Method, endpoint).
				Observe(time.Since(start).Seconds())
			return err
		}
	}
}

// probePaths are exempt from rate limiting so orchestrator health checks and
// scrapers are never throttled.
var probePaths = map[string]bool{
	"/health":  true,
	"/ready":   true,
	"/metrics": true,
}

// RateLimit rejects requests over the per-client budget with 429. Clients
// are identified by their API key when present, falling back to the remote
// address.
func RateLimit(limiter *ratelimit.Limiter) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if probePaths[c.Request().URL.Path] {
				return next(c)
			}

			clientID := c.RealIP()
			if key, ok := bearerToken(c.Request().Header.Get(echo.HeaderAuthorization)); ok {
				clientID = key
			}

			if !limiter.Allow(c.Request().Context(), clientID) {
				return c.JSON(http.StatusTooManyRequests, ErrorResponse{
					Code:    http.StatusTooManyRequests,
					Message: "Rate limit exceeded",
				})
			}

			return next(c)
		}
	}
}

// SecurityHeaders sets conservative response headers on every request.
func SecurityHeaders() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			h := c.Response().Header()
			h.Set("X-Content-Type-Options", "nosniff")
			h.Set("X-Frame-Options", "DENY")
			h.Set("Cache-Control", "no-store")
			return next(c)
		}
	}
}
