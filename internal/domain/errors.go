package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors used across all layers.
var (
	ErrNotFound       = errors.New("not found")
	ErrAlreadyExists  = errors.New("already exists")
	ErrValidation     = errors.New("validation error")
	ErrUnauthorized   = errors.New("unauthorized")
	ErrForbidden      = errors.New("forbidden")
	ErrConflict       = errors.New("conflict")
	ErrSafetyRejected = errors.New("content rejected by safety review")
	ErrProvider       = errors.New("ai provider error")
	ErrPersistence    = errors.New("persistence error")
	ErrNotSupported   = errors.New("not supported")
)

// FieldError describes a validation error for a specific field.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError contains a list of field-level validation errors.
type ValidationError struct {
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Errors) == 1 {
		return fmt.Sprintf("validation: %s: %s", e.Errors[0].Field, e.Errors[0].Message)
	}
	return fmt.Sprintf("validation: %d errors", len(e.Errors))
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// NewValidationError creates a ValidationError for a single field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Errors: []FieldError{{Field: field, Message: message}},
	}
}

// NewValidationErrors creates a ValidationError from multiple field errors.
func NewValidationErrors(errs []FieldError) *ValidationError {
	return &ValidationError{Errors: errs}
}

// ErrorCode is the closed set of categories an upstream AI failure is mapped to.
type ErrorCode string

const (
	CodeRateLimitExceeded ErrorCode = "RATE_LIMIT_EXCEEDED"
	CodeOperationTimeout  ErrorCode = "OPERATION_TIMEOUT"
	CodeNetworkError      ErrorCode = "NETWORK_ERROR"
	CodeInvalidRequest    ErrorCode = "INVALID_REQUEST"
	CodeUnknownError      ErrorCode = "UNKNOWN_ERROR"
)

func (c ErrorCode) String() string { return string(c) }

// Retryable reports whether a failure of this category is worth another attempt.
func (c ErrorCode) Retryable() bool {
	switch c {
	case CodeRateLimitExceeded, CodeOperationTimeout, CodeNetworkError:
		return true
	}
	return false
}

// ProviderError is an upstream AI failure normalized to a stable code.
// Provider-specific detail stays in Err and is only ever logged.
type ProviderError struct {
	Code      ErrorCode
	Model     string
	Retryable bool
	Err       error
}

// NewProviderError builds a ProviderError whose retryable flag follows the code.
func NewProviderError(code ErrorCode, model string, err error) *ProviderError {
	return &ProviderError{
		Code:      code,
		Model:     model,
		Retryable: code.Retryable(),
		Err:       err,
	}
}

func (e *ProviderError) Error() string {
	if e.Model == "" {
		return fmt.Sprintf("provider %s: %v", e.Code, e.Err)
	}
	return fmt.Sprintf("provider %s (model %s): %v", e.Code, e.Model, e.Err)
}

func (e *ProviderError) Unwrap() []error { return []error{ErrProvider, e.Err} }

// SafetyRejectionError is returned when generated content fails the safety review.
type SafetyRejectionError struct {
	Flags       []string
	Suggestions []string
	Confidence  float64
}

func (e *SafetyRejectionError) Error() string {
	return fmt.Sprintf("content rejected by safety review: %d flags", len(e.Flags))
}

func (e *SafetyRejectionError) Unwrap() error { return ErrSafetyRejected }

// PersistenceError wraps a storage failure that happened after content was approved.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persist %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() []error { return []error{ErrPersistence, e.Err} }
