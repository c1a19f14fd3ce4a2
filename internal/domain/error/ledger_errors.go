// Package error defines domain-specific errors for the treasury application.
package error

import "errors"

// Ledger domain errors.
var (
	// ErrInvalidDateRange is returned when a computation range is empty or reversed.
	ErrInvalidDateRange = errors.New("invalid date range")

	// ErrUnknownPSP is returned when a PSP name resolves to no canonical PSP and no data.
	ErrUnknownPSP = errors.New("unknown PSP")

	// ErrLedgerDependencyFailure is returned when a storage dependency fails
	// mid-range. The whole PSP range aborts: substituting defaults would
	// permanently corrupt the carry-over chain.
	ErrLedgerDependencyFailure = errors.New("ledger dependency failure")

	// ErrPartialPersistence is returned when ComputedDevir rows could not be
	// committed atomically for a PSP range.
	ErrPartialPersistence = errors.New("computed devir rows not committed")

	// ErrInvalidFeedRecord is returned when an imported feed record fails validation.
	ErrInvalidFeedRecord = errors.New("invalid feed record")
)

// LedgerErrorCode defines error codes for ledger errors.
// Format: LGR-XXYYYY where XX is category and YYYY is specific error.
type LedgerErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidDateRange  LedgerErrorCode = "LGR-010001"
	ErrCodeUnknownPSP        LedgerErrorCode = "LGR-010002"
	ErrCodeInvalidFeedRecord LedgerErrorCode = "LGR-010003"

	// Dependency failures (02XXXX)
	ErrCodeLedgerDependencyFailure LedgerErrorCode = "LGR-020001"
	ErrCodePartialPersistence      LedgerErrorCode = "LGR-020002"
	ErrCodeRateLimited             LedgerErrorCode = "LGR-020003"
)

// LedgerError represents a ledger error with code and message.
type LedgerError struct {
	Code    LedgerErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *LedgerError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *LedgerError) Unwrap() error {
	return e.Err
}

// NewLedgerError creates a new LedgerError with the given code and message.
func NewLedgerError(code LedgerErrorCode, message string, err error) *LedgerError {
	return &LedgerError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
