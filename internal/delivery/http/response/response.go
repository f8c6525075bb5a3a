// Package response writes the JSON envelope shared by every endpoint:
// {"data": ..., "meta": {...}} on success, {"error": ..., "meta": {...}} otherwise.
package response

import (
	"net/http"

	deliverycontext "routereel/internal/delivery/context"
	domainerrors "routereel/internal/domain/errors"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

const (
	codeInvalidInput    = "INVALID_INPUT"
	codeValidationError = "VALIDATION_ERROR"
)

type SuccessResponse struct {
	Data any       `json:"data"`
	Meta *MetaInfo `json:"meta"`
}

type ErrorResponse struct {
	Error *ErrorInfo `json:"error"`
	Meta  *MetaInfo  `json:"meta"`
}

// ErrorInfo is the error half of the envelope. Details are only sent for
// client errors.
type ErrorInfo struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

type MetaInfo struct {
	RequestID string `json:"request_id"`
}

func meta(c echo.Context) *MetaInfo {
	return &MetaInfo{RequestID: deliverycontext.GetRequestID(c)}
}

// Success wraps data in the envelope.
func Success(c echo.Context, statusCode int, data any) error {
	return c.JSON(statusCode, SuccessResponse{Data: data, Meta: meta(c)})
}

// Error writes an error envelope, dropping details on 5xx.
func Error(c echo.Context, statusCode int, code, message string, details any) error {
	info := &ErrorInfo{Code: code, Message: message}
	if statusCode < http.StatusInternalServerError {
		info.Details = details
	}

	return c.JSON(statusCode, ErrorResponse{Error: info, Meta: meta(c)})
}

// BindingError answers a body or query that could not be decoded.
func BindingError(c echo.Context, message string) error {
	return Error(c, http.StatusBadRequest, codeInvalidInput, message, nil)
}

// ValidationError answers a decoded request that failed its validate tags.
func ValidationError(c echo.Context, err error) error {
	return Error(c, http.StatusBadRequest, codeValidationError, err.Error(), nil)
}

// HandleAppError writes domain errors. Anything else is returned with a
// stack for the central error handler.
func HandleAppError(c echo.Context, err error) error {
	var appErr domainerrors.AppError
	if !errors.As(err, &appErr) {
		return errors.WithStack(err)
	}

	var details any
	if d := appErr.Details(); d != "" {
		details = d
	}

	return Error(c, appErr.HTTPCode(), appErr.ErrorCode(), appErr.Message(), details)
}
