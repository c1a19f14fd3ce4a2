package valueobject

import "time"

// WarningKind classifies non-fatal conditions surfaced in a result envelope.
type WarningKind string

const (
	// WarningConfigurationGap means no commission rate was configured for a
	// PSP on a date. Untracked PSPs legitimately have zero commission, so the
	// run continues with rate 0.
	WarningConfigurationGap WarningKind = "configuration_gap"

	// WarningConsistency means a post-hoc check found computed daily totals
	// that do not sum to a stored monthly total beyond tolerance.
	WarningConsistency WarningKind = "consistency"
)

// Warning is a recoverable condition reported alongside results. It never
// blocks the response.
type Warning struct {
	Kind    WarningKind
	PSPName string
	Date    time.Time
	Message string
}
