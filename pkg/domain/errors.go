// Package domain holds the error taxonomy shared by every service layer.
// Handlers translate these errors into HTTP responses through pkg/response.
package domain

import (
	"errors"
	"fmt"
)

// ErrorCode classifies an AppError for transport mapping.
type ErrorCode string

const (
	CodeValidation    ErrorCode = "VALIDATION_ERROR"
	CodeNotFound      ErrorCode = "NOT_FOUND"
	CodeConflict      ErrorCode = "CONFLICT"
	CodeInvalidState  ErrorCode = "INVALID_STATE"
	CodeUpstream      ErrorCode = "UPSTREAM_ERROR"
	CodeUnauthorized  ErrorCode = "UNAUTHORIZED"
	CodeRateLimited   ErrorCode = "RATE_LIMITED"
	CodeConfiguration ErrorCode = "CONFIGURATION_ERROR"
	CodeInternal      ErrorCode = "INTERNAL_ERROR"
)

// AppError is a classified error carrying a client-safe message.
type AppError struct {
	Code    ErrorCode
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error { return e.Err }

// NewValidationError reports invalid caller input.
func NewValidationError(message string) *AppError {
	return &AppError{Code: CodeValidation, Message: message}
}

// NewNotFoundError reports a missing resource.
func NewNotFoundError(resource, id string) *AppError {
	return &AppError{Code: CodeNotFound, Message: fmt.Sprintf("%s %s not found", resource, id)}
}

// NewConflictError reports a write that lost a race or duplicates existing data.
func NewConflictError(message string) *AppError {
	return &AppError{Code: CodeConflict, Message: message}
}

// NewInvalidStateError reports a transition the current state does not allow.
func NewInvalidStateError(from, to string) *AppError {
	return &AppError{Code: CodeInvalidState, Message: fmt.Sprintf("cannot transition from %s to %s", from, to)}
}

// NewUpstreamError wraps a failure of a third-party service.
func NewUpstreamError(service string, err error) *AppError {
	return &AppError{Code: CodeUpstream, Message: service + " request failed", Err: err}
}

// NewConfigurationError reports missing or invalid server configuration.
func NewConfigurationError(message string) *AppError {
	return &AppError{Code: CodeConfiguration, Message: message}
}

// NewUnauthorizedError reports rejected credentials.
func NewUnauthorizedError(message string, err error) *AppError {
	return &AppError{Code: CodeUnauthorized, Message: message, Err: err}
}

// NewRateLimitedError reports an exhausted quota.
func NewRateLimitedError(message string, err error) *AppError {
	return &AppError{Code: CodeRateLimited, Message: message, Err: err}
}

// CodeOf returns the code of the first AppError in err's chain, or CodeInternal.
func CodeOf(err error) ErrorCode {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return CodeInternal
}

// IsNotFound reports whether err carries CodeNotFound.
func IsNotFound(err error) bool { return CodeOf(err) == CodeNotFound }

// IsValidation reports whether err carries CodeValidation.
func IsValidation(err error) bool { return CodeOf(err) == CodeValidation }
