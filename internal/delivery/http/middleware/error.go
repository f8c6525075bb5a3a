// Package middleware holds echo middleware specific to the HTTP API.
package middleware

import (
	"log/slog"
	"net/http"

	"routereel/internal/delivery/http/response"
	domainerrors "routereel/internal/domain/errors"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// ErrorMiddleware turns every error that reaches echo into the JSON envelope.
type ErrorMiddleware struct {
	logger *slog.Logger
}

func NewErrorMiddleware(logger *slog.Logger) *ErrorMiddleware {
	return &ErrorMiddleware{logger: logger}
}

// HandleHTTPError is installed as echo's HTTPErrorHandler. Domain errors keep
// their code, echo errors (unknown route, wrong method) map to an HTTP_ERROR
// envelope and anything else is logged and hidden behind INTERNAL_ERROR.
func (m *ErrorMiddleware) HandleHTTPError(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	req := c.Request()
	logger := m.logger.With(
		slog.String("method", req.Method),
		slog.String("path", req.URL.Path),
	)

	var appErr domainerrors.AppError
	var httpErr *echo.HTTPError

	switch {
	case errors.As(err, &appErr):
		if appErr.HTTPCode() >= http.StatusInternalServerError {
			logger.Error("Request failed", slog.Any("error", err))
		}
		_ = response.HandleAppError(c, appErr)

	case errors.As(err, &httpErr) && httpErr.Code == http.StatusNotFound:
		_ = response.HandleAppError(c, domainerrors.ErrNotFound)

	case errors.As(err, &httpErr):
		message := http.StatusText(httpErr.Code)
		if msg, ok := httpErr.Message.(string); ok {
			message = msg
		}
		_ = response.Error(c, httpErr.Code, "HTTP_ERROR", message, nil)

	default:
		logger.Error("Unhandled error", slog.Any("error", err))
		_ = response.HandleAppError(c, domainerrors.ErrInternalError)
	}
}
