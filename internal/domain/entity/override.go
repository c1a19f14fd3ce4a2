package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OverrideKind identifies which computed value a manual override replaces.
type OverrideKind string

const (
	// OverrideKindAllocation is an externally entered withdrawal from the
	// PSP's balance (TAHS TUTARI). There is no computed alternative; every
	// allocation value lives in the override store.
	OverrideKindAllocation OverrideKind = "allocation"

	// OverrideKindDevir replaces the computed carry-in. Only meaningful on
	// the first day of a month.
	OverrideKindDevir OverrideKind = "devir"

	// OverrideKindKasaTop replaces the computed closing balance for one day.
	OverrideKindKasaTop OverrideKind = "kasa_top"
)

// IsValid reports whether the kind is one of the three known override kinds.
func (k OverrideKind) IsValid() bool {
	switch k {
	case OverrideKindAllocation, OverrideKindDevir, OverrideKindKasaTop:
		return true
	}
	return false
}

// Override is a manually entered correction keyed by (canonical PSP, date).
type Override struct {
	ID        uuid.UUID
	PSPName   string
	Date      time.Time
	Kind      OverrideKind
	Amount    decimal.Decimal
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewOverride creates a new Override entity.
func NewOverride(pspName string, date time.Time, kind OverrideKind, amount decimal.Decimal) *Override {
	now := time.Now().UTC()

	return &Override{
		ID:        uuid.New(),
		PSPName:   pspName,
		Date:      date,
		Kind:      kind,
		Amount:    amount,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
