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
	ErrUnknown       ErrorCode = "UNKNOWN"
	ErrInternal      ErrorCode = "INTERNAL"
	ErrInvalidInput  ErrorCode = "INVALID_INPUT"
	ErrNotFound      ErrorCode = "NOT_FOUND"
	ErrAlreadyExists ErrorCode = "ALREADY_EXISTS"

	// Context building errors
	ErrParse  ErrorCode = "PARSE_ERROR"
	ErrConfig ErrorCode = "CONFIG_ERROR"

	// Rendering errors
	ErrTemplateNotFound ErrorCode = "TEMPLATE_NOT_FOUND"
	ErrUndefined        ErrorCode = "UNDEFINED_VARIABLE"
	ErrFilter           ErrorCode = "FILTER_ERROR"
	ErrRender           ErrorCode = "RENDER_ERROR"

	// Extension errors
	ErrExtensionLoad ErrorCode = "EXTENSION_LOAD"

	// Tool configuration errors
	ErrConfigLoad ErrorCode = "CONFIG_LOAD"
)

// J2Error represents a structured error with code and details
type J2Error struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *J2Error) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *J2Error) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *J2Error) Is(target error) bool {
	var targetErr *J2Error
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new J2Error with the given code and message
func New(code ErrorCode, message string) *J2Error {
	return &J2Error{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new J2Error with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *J2Error {
	return &J2Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a J2Error
func Wrap(err error, code ErrorCode, message string) *J2Error {
	if err == nil {
		return nil
	}
	return &J2Error{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *J2Error {
	if err == nil {
		return nil
	}
	return &J2Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *J2Error) WithDetail(key string, value interface{}) *J2Error {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var j2Err *J2Error
	if errors.As(err, &j2Err) {
		return j2Err.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a J2Error
func GetErrorCode(err error) ErrorCode {
	var j2Err *J2Error
	if errors.As(err, &j2Err) {
		return j2Err.Code
	}
	return ErrUnknown
}
