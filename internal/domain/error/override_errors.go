// Package error defines domain-specific errors for the treasury application.
package error

import "errors"

// Override domain errors. Validation failures are rejected at the
// administration boundary and never reach the calculator.
var (
	// ErrInvalidOverrideKind is returned when the override kind is not one of
	// allocation, devir or kasa_top.
	ErrInvalidOverrideKind = errors.New("invalid override kind")

	// ErrInvalidOverrideAmount is returned when the amount is not a finite
	// decimal within the accepted magnitude.
	ErrInvalidOverrideAmount = errors.New("invalid override amount")

	// ErrInvalidOverrideDate is returned when the override date is malformed
	// or outside the accepted range.
	ErrInvalidOverrideDate = errors.New("invalid override date")

	// ErrOverrideNotFound is returned when an override is not found.
	ErrOverrideNotFound = errors.New("override not found")
)

// Alias domain errors.
var (
	// ErrAliasNotFound is returned when a PSP alias is not found.
	ErrAliasNotFound = errors.New("PSP alias not found")

	// ErrAliasAlreadyExists is returned when a raw identifier already maps to
	// a canonical PSP.
	ErrAliasAlreadyExists = errors.New("PSP alias already exists")

	// ErrEmptyIdentifier is returned when a raw or canonical identifier is blank.
	ErrEmptyIdentifier = errors.New("identifier cannot be empty")
)

// OverrideErrorCode defines error codes for override errors.
// Format: OVR-XXYYYY where XX is category and YYYY is specific error.
type OverrideErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidOverrideKind   OverrideErrorCode = "OVR-010001"
	ErrCodeInvalidOverrideAmount OverrideErrorCode = "OVR-010002"
	ErrCodeInvalidOverrideDate   OverrideErrorCode = "OVR-010003"
	ErrCodeOverrideNotFound      OverrideErrorCode = "OVR-010004"
	ErrCodeAliasNotFound         OverrideErrorCode = "OVR-010005"
	ErrCodeAliasAlreadyExists    OverrideErrorCode = "OVR-010006"
	ErrCodeEmptyIdentifier       OverrideErrorCode = "OVR-010007"
)

// OverrideError represents an override or alias error with code and message.
type OverrideError struct {
	Code    OverrideErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *OverrideError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *OverrideError) Unwrap() error {
	return e.Err
}

// NewOverrideError creates a new OverrideError with the given code and message.
func NewOverrideError(code OverrideErrorCode, message string, err error) *OverrideError {
	return &OverrideError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
