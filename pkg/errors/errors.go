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
	ErrUnknown        ErrorCode = "UNKNOWN"
	ErrInternal       ErrorCode = "INTERNAL"
	ErrInvalidInput   ErrorCode = "INVALID_INPUT"
	ErrNotFound       ErrorCode = "NOT_FOUND"
	ErrAlreadyExists  ErrorCode = "ALREADY_EXISTS"
	ErrNotImplemented ErrorCode = "NOT_IMPLEMENTED"

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigParse ErrorCode = "CONFIG_PARSE"
	ErrConfigValid ErrorCode = "CONFIG_INVALID"

	// Host environment errors
	ErrHostEnvironment ErrorCode = "HOST_ENVIRONMENT"
	ErrHookInstall     ErrorCode = "HOOK_INSTALL"

	// Module errors
	ErrModuleLoad           ErrorCode = "MODULE_LOAD"
	ErrModuleDefinitions    ErrorCode = "MODULE_DEFINITIONS"
	ErrCapabilityMismatch   ErrorCode = "CAPABILITY_MISMATCH"
	ErrPlatformIncompatible ErrorCode = "PLATFORM_INCOMPATIBLE"

	// FileSystem errors
	ErrFileAccess ErrorCode = "FILE_ACCESS"
	ErrFileWrite  ErrorCode = "FILE_WRITE"
	ErrDirCreate  ErrorCode = "DIR_CREATE"
)

// ModstrapError represents a structured error with code and details
type ModstrapError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *ModstrapError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *ModstrapError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *ModstrapError) Is(target error) bool {
	var targetErr *ModstrapError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new ModstrapError with the given code and message
func New(code ErrorCode, message string) *ModstrapError {
	return &ModstrapError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new ModstrapError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *ModstrapError {
	return &ModstrapError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a ModstrapError
func Wrap(err error, code ErrorCode, message string) *ModstrapError {
	if err == nil {
		return nil
	}
	return &ModstrapError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *ModstrapError {
	if err == nil {
		return nil
	}
	return &ModstrapError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *ModstrapError) WithDetail(key string, value interface{}) *ModstrapError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// WithDetails adds multiple details to the error
func (e *ModstrapError) WithDetails(details map[string]interface{}) *ModstrapError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	for k, v := range details {
		e.Details[k] = v
	}
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var modErr *ModstrapError
	if errors.As(err, &modErr) {
		return modErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a ModstrapError
func GetErrorCode(err error) ErrorCode {
	var modErr *ModstrapError
	if errors.As(err, &modErr) {
		return modErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a ModstrapError
func GetErrorDetails(err error) map[string]interface{} {
	var modErr *ModstrapError
	if errors.As(err, &modErr) {
		return modErr.Details
	}
	return nil
}
