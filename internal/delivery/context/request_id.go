// Package context carries the request id and the request-scoped logger from
// the HTTP edge down into the usecases and the capture jobs they start.
package context

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// HeaderXRequestID is read from incoming requests and echoed on responses.
const HeaderXRequestID = "X-Request-Id"

type key int

const (
	requestIDKey key = iota
	loggerKey
)

// echo.Context stores values by string
const echoRequestIDKey = "request_id"

// GetRequestID returns the id the middleware stored on c, or a fresh one.
func GetRequestID(c echo.Context) string {
	if id, ok := c.Get(echoRequestIDKey).(string); ok && id != "" {
		return id
	}

	return uuid.New().String()
}

func SetRequestID(c echo.Context, requestID string) {
	c.Set(echoRequestIDKey, requestID)
}

// GetRequestIDFromContext returns "" when ctx has no request id.
func GetRequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)

	return id
}

func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

// GetLogger returns nil when ctx has no logger.
func GetLogger(ctx context.Context) *slog.Logger {
	logger, _ := ctx.Value(loggerKey).(*slog.Logger)

	return logger
}

func GetLoggerOrDefault(ctx context.Context, fallback *slog.Logger) *slog.Logger {
	if logger := GetLogger(ctx); logger != nil {
		return logger
	}

	return fallback
}

func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// Detach keeps the request id and logger of ctx but none of its deadline or
// cancellation. Work that outlives the request (a capture job) starts from it.
func Detach(ctx context.Context) context.Context {
	detached := context.Background()
	if id := GetRequestIDFromContext(ctx); id != "" {
		detached = WithRequestID(detached, id)
	}
	if logger := GetLogger(ctx); logger != nil {
		detached = WithLogger(detached, logger)
	}

	return detached
}
