package valueobject

import "github.com/shopspring/decimal"

// LedgerConfig contains the tolerances and bounds used by the reconciliation
// engine and the override administration boundary.
type LedgerConfig struct {
	// DevirWriteTolerance: a stored ComputedDevir is only rewritten when the
	// new value differs by more than this.
	DevirWriteTolerance decimal.Decimal // 0.01

	// ConsistencyTolerance for the monthly vs. daily totals check.
	ConsistencyTolerance decimal.Decimal // 0.01

	// MaxOverrideMagnitude caps the absolute value an override may carry.
	MaxOverrideMagnitude decimal.Decimal
}

// DefaultLedgerConfig returns the default engine configuration.
func DefaultLedgerConfig() LedgerConfig {
	return LedgerConfig{
		DevirWriteTolerance:  decimal.NewFromFloat(0.01),
		ConsistencyTolerance: decimal.NewFromFloat(0.01),
		MaxOverrideMagnitude: decimal.New(1, 13), // 10^13
	}
}

// WithinDevirTolerance reports whether a stored devir and a newly computed
// one are close enough to skip the write.
func (c LedgerConfig) WithinDevirTolerance(stored, computed decimal.Decimal) bool {
	return stored.Sub(computed).Abs().LessThanOrEqual(c.DevirWriteTolerance)
}
