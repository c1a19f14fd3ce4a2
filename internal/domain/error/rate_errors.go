// Package error defines domain-specific errors for the treasury application.
package error

import "errors"

// Commission rate domain errors.
var (
	// ErrRateNotFound is returned when a rate record is not found.
	ErrRateNotFound = errors.New("commission rate not found")

	// ErrRateOutOfBounds is returned when a rate is outside [0, 1].
	ErrRateOutOfBounds = errors.New("commission rate must be between 0 and 1")

	// ErrRateIntervalOverlap is returned when a new effective interval
	// intersects an existing one for the same PSP.
	ErrRateIntervalOverlap = errors.New("effective interval overlaps an existing rate")

	// ErrRateIntervalInverted is returned when effective_until precedes effective_from.
	ErrRateIntervalInverted = errors.New("effective_until precedes effective_from")
)

// RateErrorCode defines error codes for commission rate errors.
// Format: RATE-XXYYYY where XX is category and YYYY is specific error.
type RateErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeRateNotFound         RateErrorCode = "RATE-010001"
	ErrCodeRateOutOfBounds      RateErrorCode = "RATE-010002"
	ErrCodeRateIntervalOverlap  RateErrorCode = "RATE-010003"
	ErrCodeRateIntervalInverted RateErrorCode = "RATE-010004"

	// Dependency failures (02XXXX)
	ErrCodeRateStorageFailure RateErrorCode = "RATE-020001"
)

// RateError represents a commission rate error with code and message.
type RateError struct {
	Code    RateErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *RateError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *RateError) Unwrap() error {
	return e.Err
}

// NewRateError creates a new RateError with the given code and message.
func NewRateError(code RateErrorCode, message string, err error) *RateError {
	return &RateError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
