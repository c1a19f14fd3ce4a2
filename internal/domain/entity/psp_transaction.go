// Package entity defines the core business entities for the treasury domain.
package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionKind represents the normalized direction of a PSP transaction.
type TransactionKind string

const (
	TransactionKindDeposit    TransactionKind = "deposit"
	TransactionKindWithdrawal TransactionKind = "withdrawal"
	TransactionKindUnknown    TransactionKind = "unknown"
)

// depositCategories and withdrawalCategories list the accepted raw category
// synonyms coming from the upstream transaction feed.
var depositCategories = map[string]struct{}{
	"DEP":        {},
	"DEPOSIT":    {},
	"INVESTMENT": {},
}

var withdrawalCategories = map[string]struct{}{
	"WD":         {},
	"WITHDRAW":   {},
	"WITHDRAWAL": {},
}

// NormalizeCategory maps a raw feed category to a TransactionKind.
// Unrecognized categories return TransactionKindUnknown; callers fall back
// to the sign of the amount for those (legacy data compatibility).
func NormalizeCategory(raw string) TransactionKind {
	category := strings.ToUpper(strings.TrimSpace(raw))
	if _, ok := depositCategories[category]; ok {
		return TransactionKindDeposit
	}
	if _, ok := withdrawalCategories[category]; ok {
		return TransactionKindWithdrawal
	}
	return TransactionKindUnknown
}

// PSPTransaction represents a single raw record from the transaction feed.
type PSPTransaction struct {
	ID               uuid.UUID
	PSPIdentifier    string // Raw account identifier, resolved to a canonical PSP before aggregation
	Date             time.Time
	Category         string
	Amount           decimal.Decimal
	SettlementAmount *decimal.Decimal // Settlement-currency amount (e.g. TRY-converted), optional
	Currency         string
	CreatedAt        time.Time
}

// NewPSPTransaction creates a new PSPTransaction entity.
func NewPSPTransaction(
	pspIdentifier string,
	date time.Time,
	category string,
	amount decimal.Decimal,
	settlementAmount *decimal.Decimal,
	currency string,
) *PSPTransaction {
	return &PSPTransaction{
		ID:               uuid.New(),
		PSPIdentifier:    pspIdentifier,
		Date:             date,
		Category:         category,
		Amount:           amount,
		SettlementAmount: settlementAmount,
		Currency:         currency,
		CreatedAt:        time.Now().UTC(),
	}
}

// Kind returns the normalized direction of the transaction, falling back to
// the sign of the amount when the category is unrecognized.
func (t *PSPTransaction) Kind() TransactionKind {
	kind := NormalizeCategory(t.Category)
	if kind != TransactionKindUnknown {
		return kind
	}
	if t.Amount.IsNegative() {
		return TransactionKindWithdrawal
	}
	return TransactionKindDeposit
}
