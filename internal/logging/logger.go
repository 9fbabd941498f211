// Package logging builds the process-wide structured logger and the
// per-request log context. Every log line is a JSON object with a fixed
// field set so downstream log storage can index on them.
package logging

import (
	"log/slog"
	"os"

	"github.com/labstack/echo/v4"
)

// Context keys shared with the middleware chain.
const (
	ContextKeyRequestID = "request_id"
	ContextKeyUser      = "user"
	ContextKeyUserID    = "user_id"
)

// New returns a JSON slog logger writing to stdout. Debug level is
// enabled outside prod.
func New(env string) *slog.Logger {
	level := slog.LevelInfo
	if env != "prod" {
		level = slog.LevelDebug
	}
	h := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	return slog.New(h).With("service", "items-api")
}

// RequestAttrs builds the fixed request-context attribute set: request
// id, method, path, status, resolved user id, client address and user
// agent. Fields that are unknown at log time are emitted empty rather
// than omitted, keeping the record shape constant.
func RequestAttrs(c echo.Context, status int) []any {
	reqID, _ := c.Get(ContextKeyRequestID).(string)
	var userID uint64
	if v, ok := c.Get(ContextKeyUserID).(uint64); ok {
		userID = v
	}
	r := c.Request()
	return []any{
		"request_id", reqID,
		"method", r.Method,
		"path", r.URL.Path,
		"status", status,
		"user_id", userID,
		"ip", c.RealIP(),
		"user_agent", r.UserAgent(),
	}
}
