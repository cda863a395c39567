package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a unique error code for stable testing
type ErrorCode string

// Error codes for different error categories
const (
	// General errors
	ErrUnknown      ErrorCode = "UNKNOWN"
	ErrInternal     ErrorCode = "INTERNAL"
	ErrInvalidInput ErrorCode = "INVALID_INPUT"
	ErrNotFound     ErrorCode = "NOT_FOUND"

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigParse ErrorCode = "CONFIG_PARSE"

	// Dataset errors. These are the only process-fatal ones.
	ErrDatasetLoad ErrorCode = "DATASET_LOAD"
	ErrCoresDBLoad ErrorCode = "CORES_DB_LOAD"

	// Per-file cache errors
	ErrDownload     ErrorCode = "DOWNLOAD"
	ErrHashMismatch ErrorCode = "HASH_MISMATCH"
	ErrZipExtract   ErrorCode = "ZIP_EXTRACT"

	// Build errors
	ErrBuildExecute      ErrorCode = "BUILD_EXECUTE"
	ErrToolProvision     ErrorCode = "TOOL_PROVISION"
	ErrContractViolation ErrorCode = "CONTRACT_VIOLATION"

	// FileSystem errors
	ErrFileAccess ErrorCode = "FILE_ACCESS"
	ErrFileWrite  ErrorCode = "FILE_WRITE"
	ErrDirCreate  ErrorCode = "DIR_CREATE"
)

// ArcError represents a structured error with code and details
type ArcError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *ArcError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *ArcError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *ArcError) Is(target error) bool {
	var targetErr *ArcError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

func build(err error, code ErrorCode, message string) *ArcError {
	return &ArcError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// New creates an ArcError with the given code and message.
func New(code ErrorCode, message string) *ArcError {
	return build(nil, code, message)
}

func Newf(code ErrorCode, format string, args ...interface{}) *ArcError {
	return build(nil, code, fmt.Sprintf(format, args...))
}

// Wrap attaches code and message to err. It returns nil for a nil err.
func Wrap(err error, code ErrorCode, message string) *ArcError {
	if err == nil {
		return nil
	}
	return build(err, code, message)
}

func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *ArcError {
	if err == nil {
		return nil
	}
	return build(err, code, fmt.Sprintf(format, args...))
}

// WithDetail adds a detail to the error
func (e *ArcError) WithDetail(key string, value interface{}) *ArcError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var arcErr *ArcError
	if errors.As(err, &arcErr) {
		return arcErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not an ArcError
func GetErrorCode(err error) ErrorCode {
	var arcErr *ArcError
	if errors.As(err, &arcErr) {
		return arcErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not an ArcError
func GetErrorDetails(err error) map[string]interface{} {
	var arcErr *ArcError
	if errors.As(err, &arcErr) {
		return arcErr.Details
	}
	return nil
}

// IsFatal reports whether err must terminate the process. Only failures to
// load the foundational datasets qualify.
func IsFatal(err error) bool {
	switch GetErrorCode(err) {
	case ErrDatasetLoad, ErrCoresDBLoad:
		return true
	}
	return false
}
