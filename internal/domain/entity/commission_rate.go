package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CommissionRate represents an effective-dated commission rate for a PSP.
// For a given PSP, effective intervals must not overlap: at most one record
// is active for any date. A nil EffectiveUntil means the rate is open-ended.
type CommissionRate struct {
	ID             uuid.UUID
	PSPName        string // Canonical PSP name
	Rate           decimal.Decimal
	EffectiveFrom  time.Time
	EffectiveUntil *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// NewCommissionRate creates a new CommissionRate entity.
func NewCommissionRate(pspName string, rate decimal.Decimal, effectiveFrom time.Time, effectiveUntil *time.Time) *CommissionRate {
	now := time.Now().UTC()

	return &CommissionRate{
		ID:             uuid.New(),
		PSPName:        pspName,
		Rate:           rate,
		EffectiveFrom:  effectiveFrom,
		EffectiveUntil: effectiveUntil,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

// Covers reports whether the rate is effective on the given date.
func (r *CommissionRate) Covers(date time.Time) bool {
	if date.Before(r.EffectiveFrom) {
		return false
	}
	if r.EffectiveUntil != nil && date.After(*r.EffectiveUntil) {
		return false
	}
	return true
}

// Overlaps reports whether two effective intervals for the same PSP intersect.
func (r *CommissionRate) Overlaps(other *CommissionRate) bool {
	if other.EffectiveUntil != nil && r.EffectiveFrom.After(*other.EffectiveUntil) {
		return false
	}
	if r.EffectiveUntil != nil && other.EffectiveFrom.After(*r.EffectiveUntil) {
		return false
	}
	return true
}

// LegacyRate is the single static fallback rate for a PSP with no date range.
// It applies whenever no effective-dated record covers the requested date.
type LegacyRate struct {
	PSPName   string
	Rate      decimal.Decimal
	UpdatedAt time.Time
}
