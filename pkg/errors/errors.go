package errors

import (
	"errors"
	"fmt"
)

// ErrorType represents the type of error
type ErrorType string

const (
	// ErrorTypeMalformed represents source data that could not be parsed
	ErrorTypeMalformed ErrorType = "malformed"
	// ErrorTypeTimeout represents a field extractor that ran out of time
	ErrorTypeTimeout ErrorType = "timeout"
	// ErrorTypePanic represents a field extractor that panicked
	ErrorTypePanic ErrorType = "panic"
	// ErrorTypeEnvironment represents a missing page accessor or store
	ErrorTypeEnvironment ErrorType = "environment"
	// ErrorTypeStore represents a failing persistent store call
	ErrorTypeStore ErrorType = "store"
	// ErrorTypeValidation represents invalid input
	ErrorTypeValidation ErrorType = "validation"
)

var (
	// ErrPageUnavailable is returned when the page accessor cannot produce content
	ErrPageUnavailable = errors.New("page state unavailable")
	// ErrStoreUnavailable is returned when monitoring runs without a store
	ErrStoreUnavailable = errors.New("persistent store unavailable")
	// ErrNotInteractive is returned by pages that cannot dispatch activations
	ErrNotInteractive = errors.New("page does not support activation")
)

// ExtractionError represents a failure inside the extraction pipeline
type ExtractionError struct {
	Type    ErrorType
	Field   string
	Message string
	Err     error
}

// Error implements the error interface
func (e *ExtractionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %s - %v", e.Type, e.Field, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s: %s", e.Type, e.Field, e.Message)
}

// Unwrap returns the underlying error
func (e *ExtractionError) Unwrap() error {
	return e.Err
}

// New creates a new ExtractionError
func New(errType ErrorType, field, message string, err error) *ExtractionError {
	return &ExtractionError{
		Type:    errType,
		Field:   field,
		Message: message,
		Err:     err,
	}
}

// NewMalformed creates a new malformed-data error
func NewMalformed(field, message string, err error) *ExtractionError {
	return New(ErrorTypeMalformed, field, message, err)
}

// NewTimeout creates a new timeout error
func NewTimeout(field string, err error) *ExtractionError {
	return New(ErrorTypeTimeout, field, "extractor did not finish in time", err)
}

// NewPanic creates a new error for a recovered panic
func NewPanic(field string, recovered interface{}) *ExtractionError {
	return New(ErrorTypePanic, field, fmt.Sprintf("recovered: %v", recovered), nil)
}

// NewEnvironment creates a new environment error
func NewEnvironment(field, message string, err error) *ExtractionError {
	return New(ErrorTypeEnvironment, field, message, err)
}

// NewValidation creates a new validation error
func NewValidation(field, message string) *ExtractionError {
	return New(ErrorTypeValidation, field, message, nil)
}

// IsType reports whether err carries an ExtractionError of the given type
func IsType(err error, errType ErrorType) bool {
	var ee *ExtractionError
	if errors.As(err, &ee) {
		return ee.Type == errType
	}
	return false
}
