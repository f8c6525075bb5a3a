package errors

import (
	"net/http"

	"routereel/internal/errors"
)

// AppError defines the interface for application-specific errors
type AppError interface {
	error
	HTTPCode() int     // HTTP status code
	ErrorCode() string // Business error code
	Message() string   // User-friendly error message
	Details() string   // Detailed error information (optional)
}

// BaseError is a basic error structure that implements the AppError interface
type BaseError struct {
	httpCode  int
	errorCode string
	message   string
	details   string
}

// NewBaseError creates a new base error
func NewBaseError(httpCode int, errorCode, message, details string) *BaseError {
	return &BaseError{
		httpCode:  httpCode,
		errorCode: errorCode,
		message:   message,
		details:   details,
	}
}

// Error implements the error interface
func (e *BaseError) Error() string {
	if e.details != "" {
		return e.message + ": " + e.details
	}

	return e.message
}

// Is matches any BaseError carrying the same business error code, so that a
// copy produced by WithDetails still matches its predefined sentinel.
func (e *BaseError) Is(target error) bool {
	other, ok := target.(*BaseError)
	if !ok {
		return false
	}

	return other.errorCode == e.errorCode
}

// WrapMessage wraps the error with additional context message
func (e *BaseError) WrapMessage(message string) error {
	return errors.Wrap(e, message)
}

// HTTPCode returns the HTTP status code
func (e *BaseError) HTTPCode() int {
	return e.httpCode
}

// ErrorCode returns the business error code
func (e *BaseError) ErrorCode() string {
	return e.errorCode
}

// Message returns the user-friendly error message
func (e *BaseError) Message() string {
	return e.message
}

// Details returns detailed error information
func (e *BaseError) Details() string {
	return e.details
}

// WithDetails adds detailed error information
func (e *BaseError) WithDetails(details string) *BaseError {
	return &BaseError{
		httpCode:  e.httpCode,
		errorCode: e.errorCode,
		message:   e.message,
		details:   details,
	}
}

// Predefined error types
var (
	// Route-related errors
	ErrRouteNotFound = NewBaseError(
		http.StatusNotFound,
		"ROUTE_NOT_FOUND",
		"尚未建立路線",
		"",
	)

	ErrWaypointNotFound = NewBaseError(
		http.StatusNotFound,
		"WAYPOINT_NOT_FOUND",
		"找不到該航點",
		"",
	)

	ErrSegmentNotFound = NewBaseError(
		http.StatusNotFound,
		"SEGMENT_NOT_FOUND",
		"找不到該路段",
		"",
	)

	ErrInvalidReorder = NewBaseError(
		http.StatusBadRequest,
		"INVALID_REORDER",
		"無效的航點排序位置",
		"",
	)

	ErrInvalidPath = NewBaseError(
		http.StatusBadRequest,
		"INVALID_PATH",
		"路徑至少需要兩個座標點",
		"",
	)

	ErrInvalidPathNode = NewBaseError(
		http.StatusBadRequest,
		"INVALID_PATH_NODE",
		"只能移除路徑中間的節點",
		"",
	)

	ErrInvalidTransportMode = NewBaseError(
		http.StatusBadRequest,
		"INVALID_TRANSPORT_MODE",
		"不支援的交通方式",
		"",
	)

	ErrInvalidRoute = NewBaseError(
		http.StatusBadRequest,
		"INVALID_ROUTE",
		"路線結構不一致",
		"",
	)

	// Playback-related errors
	ErrEmptyRoute = NewBaseError(
		http.StatusConflict,
		"EMPTY_ROUTE",
		"路線沒有任何路段可播放",
		"",
	)

	ErrInvalidSpeed = NewBaseError(
		http.StatusBadRequest,
		"INVALID_SPEED",
		"播放速度必須大於零",
		"",
	)

	ErrInvalidDuration = NewBaseError(
		http.StatusBadRequest,
		"INVALID_DURATION",
		"播放時長必須大於零",
		"",
	)

	ErrInvalidProgress = NewBaseError(
		http.StatusBadRequest,
		"INVALID_PROGRESS",
		"播放進度必須介於 0 與 1 之間",
		"",
	)

	// Capture-related errors
	ErrCaptureInProgress = NewBaseError(
		http.StatusConflict,
		"CAPTURE_IN_PROGRESS",
		"已有錄製正在進行",
		"",
	)

	ErrCaptureNotRunning = NewBaseError(
		http.StatusNotFound,
		"CAPTURE_NOT_RUNNING",
		"目前沒有錄製",
		"",
	)

	ErrNoSurface = NewBaseError(
		http.StatusServiceUnavailable,
		"NO_SURFACE",
		"沒有可用的繪圖畫布",
		"",
	)

	ErrUnsupportedEncoder = NewBaseError(
		http.StatusServiceUnavailable,
		"UNSUPPORTED_ENCODER",
		"不支援的影片編碼器",
		"",
	)

	ErrCaptureTimeout = NewBaseError(
		http.StatusGatewayTimeout,
		"CAPTURE_TIMEOUT",
		"錄製逾時",
		"",
	)

	// Document-related errors
	ErrDocumentNotFound = NewBaseError(
		http.StatusNotFound,
		"DOCUMENT_NOT_FOUND",
		"找不到該路線文件",
		"",
	)

	ErrInvalidDocument = NewBaseError(
		http.StatusBadRequest,
		"INVALID_DOCUMENT",
		"無法解析路線文件",
		"",
	)

	ErrUnsupportedFormat = NewBaseError(
		http.StatusBadRequest,
		"UNSUPPORTED_FORMAT",
		"不支援的檔案格式",
		"",
	)

	ErrArtifactNotFound = NewBaseError(
		http.StatusNotFound,
		"ARTIFACT_NOT_FOUND",
		"找不到該影片檔案",
		"",
	)

	// Validation-related errors
	ErrValidationFailed = NewBaseError(
		http.StatusBadRequest,
		"VALIDATION_FAILED",
		"輸入資料驗證失敗",
		"",
	)

	// General errors
	ErrInternalError = NewBaseError(
		http.StatusInternalServerError,
		"INTERNAL_ERROR",
		"系統內部錯誤",
		"",
	)

	ErrNotFound = NewBaseError(
		http.StatusNotFound,
		"NOT_FOUND",
		"找不到該資源",
		"",
	)
)

// StorageError represents a blob storage failure, implementing the AppError interface
type StorageError struct {
	err     error
	details string
}

// NewStorageError creates a storage-related error
func NewStorageError(err error, details string) AppError {
	return &StorageError{
		err:     err,
		details: details,
	}
}

// Error implements the error interface
func (e *StorageError) Error() string {
	return errors.Wrap(e.err, "storage operation failed").Error()
}

// Unwrap exposes the underlying driver error
func (e *StorageError) Unwrap() error {
	return e.err
}

// HTTPCode returns the HTTP status code
func (e *StorageError) HTTPCode() int {
	return http.StatusInternalServerError
}

// ErrorCode returns the business error code
func (e *StorageError) ErrorCode() string {
	return "STORAGE_FAILED"
}

// Message returns the user-friendly error message
func (e *StorageError) Message() string {
	return "儲存空間操作失敗"
}

// Details returns detailed error information
func (e *StorageError) Details() string {
	return e.details
}
