// Package context carries request-scoped values, the request ID and a
// request-bound logger, between the delivery layer and the services.
package context

import (
	"context"
	"log/slog"

	"github.com/labstack/echo/v4"
)

// contextKey is a private key type so values set here cannot collide with
// other packages.
type contextKey string

const (
	keyRequestID contextKey = "request_id"
	keyLogger    contextKey = "logger"
)

// HeaderXRequestID is the HTTP header the request ID travels in.
const HeaderXRequestID = "X-Request-Id"

// SetRequestID stores the request ID on the echo context.
func SetRequestID(c echo.Context, requestID string) {
	c.Set(string(keyRequestID), requestID)
}

// WithRequestID returns a context carrying the request ID.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, keyRequestID, requestID)
}

// WithLogger returns a context carrying a request-scoped logger.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, keyLogger, logger)
}

// GetLogger returns the request-scoped logger, or nil when the context
// carries none.
func GetLogger(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(keyLogger).(*slog.Logger); ok {
		return logger
	}

	return nil
}

// GetLoggerOrDefault returns the request-scoped logger, falling back to the
// given logger when the context carries none.
func GetLoggerOrDefault(ctx context.Context, fallback *slog.Logger) *slog.Logger {
	if logger := GetLogger(ctx); logger != nil {
		return logger
	}

	return fallback
}
