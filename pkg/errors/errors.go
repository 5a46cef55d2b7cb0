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
	ErrUnknown         ErrorCode = "UNKNOWN"
	ErrInternal        ErrorCode = "INTERNAL"
	ErrInvalidArgument ErrorCode = "INVALID_ARGUMENT"
	ErrNotFound        ErrorCode = "NOT_FOUND"
	ErrAlreadyExists   ErrorCode = "ALREADY_EXISTS"

	// Registration warnings. These never abort a registration pass; they are
	// attached to log events so callers can filter on them.
	ErrDuplicateStory ErrorCode = "DUPLICATE_STORY"
	ErrMissingModule  ErrorCode = "MISSING_MODULE"

	// Addon errors
	ErrAddonNotFound ErrorCode = "ADDON_NOT_FOUND"

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigParse ErrorCode = "CONFIG_PARSE"
	ErrConfigValid ErrorCode = "CONFIG_INVALID"

	// Export errors
	ErrExportFormat ErrorCode = "EXPORT_FORMAT"
	ErrExportWrite  ErrorCode = "EXPORT_WRITE"
)

// StoryregError represents a structured error with code and details
type StoryregError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *StoryregError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *StoryregError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *StoryregError) Is(target error) bool {
	var targetErr *StoryregError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new StoryregError with the given code and message
func New(code ErrorCode, message string) *StoryregError {
	return &StoryregError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new StoryregError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *StoryregError {
	return &StoryregError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a StoryregError
func Wrap(err error, code ErrorCode, message string) *StoryregError {
	if err == nil {
		return nil
	}
	return &StoryregError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *StoryregError {
	if err == nil {
		return nil
	}
	return &StoryregError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *StoryregError) WithDetail(key string, value interface{}) *StoryregError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// WithDetails adds multiple details to the error
func (e *StoryregError) WithDetails(details map[string]interface{}) *StoryregError {
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
	var storyErr *StoryregError
	if errors.As(err, &storyErr) {
		return storyErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a StoryregError
func GetErrorCode(err error) ErrorCode {
	var storyErr *StoryregError
	if errors.As(err, &storyErr) {
		return storyErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a StoryregError
func GetErrorDetails(err error) map[string]interface{} {
	var storyErr *StoryregError
	if errors.As(err, &storyErr) {
		return storyErr.Details
	}
	return nil
}
