package http

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

// Role is the permission level bound to an API key. Levels are ordered:
// admin implies write, write implies read.
type Role int

const (
	RoleRead Role = iota + 1
	RoleWrite
	RoleAdmin
)

// ParseRole converts a configured role name to a Role. Unknown names map to
// zero, which no request can satisfy.
func ParseRole(name string) Role {
	switch strings.ToLower(name) {
	case "read":
		return RoleRead
	case "write":
		return RoleWrite
	case "admin":
		return RoleAdmin
	default:
		return 0
	}
}

// APIKeyAuth authenticates requests by bearer API key and enforces the
// permission level each route requires. Keys and their roles come from
// configuration; there is no user store.
type APIKeyAuth struct {
	keys map[string]Role
}

// NewAPIKeyAuth creates an authenticator from a key-to-role map.
func NewAPIKeyAuth(keys map[string]Role) *APIKeyAuth {
	return &APIKeyAuth{keys: keys}
}

// Require returns middleware that rejects requests without a valid API key
// (401) or with a key below the required level (403).
func (a *APIKeyAuth) Require(required Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			key, ok := bearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
			if !ok {
				return c.JSON(http.StatusUnauthorized, ErrorResponse{
					Code:    http.StatusUnauthorized,
					Message: "Missing or malformed API key",
				})
			}

			role, known := a.keys[key]
			if !known {
				return c.JSON(http.StatusUnauthorized, ErrorResponse{
					Code:    http.StatusUnauthorized,
					Message: "Invalid API key",
				})
			}

			if role < required {
				return c.JSON(http.StatusForbidden, ErrorResponse{
					Code:    http.StatusForbidden,
					Message: "Insufficient permissions",
				})
			}

			return next(c)
		}
	}
}

func bearerToken(header string) (string, bool) {
	const prefix = "Bearer "
	if len(header) <= len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return "", false
	}
	return header[len(prefix):], true
}
