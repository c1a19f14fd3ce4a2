package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// TetherPSP is the canonical PSP representing the firm's own internal cash
// position. It is hard-excluded from commission and allocation logic and
// always aggregated on raw (unconverted) amounts.
const TetherPSP = "TETHER"

// DailyAggregate holds per-(PSP, date) totals reduced from raw transactions.
// Withdrawals are a non-negative magnitude; sign semantics are resolved by
// the recurrence calculator, not here. A zero-valued DailyAggregate stands in
// for days without transactions.
type DailyAggregate struct {
	PSPName          string
	Date             time.Time
	Deposits         decimal.Decimal
	Withdrawals      decimal.Decimal
	TransactionCount int
}

// DailyLedgerRow is the computed ledger output for one (PSP, date).
type DailyLedgerRow struct {
	PSPName          string
	Date             time.Time
	Deposits         decimal.Decimal
	Withdrawals      decimal.Decimal
	Total            decimal.Decimal // deposits - withdrawals
	Commission       decimal.Decimal // deposits * rate, never on withdrawals
	Net              decimal.Decimal // total - commission
	Allocation       decimal.Decimal
	DevirIn          decimal.Decimal // carry-over into this day
	KasaTop          decimal.Decimal // closing balance
	TransactionCount int
	IsLastDayOfMonth bool
}

// ComputedDevir is the persisted carry-in audit record for a (PSP, date).
// It keeps repeated runs idempotent and anchors recomputation after upstream
// transaction data for earlier months has been pruned.
type ComputedDevir struct {
	PSPName   string
	Date      time.Time
	Amount    decimal.Decimal
	UpdatedAt time.Time
}

// MonthlySummary folds a PSP's ordered daily rows into month-level totals.
type MonthlySummary struct {
	PSPName          string
	Year             int
	Month            time.Month
	OpeningDevir     decimal.Decimal // first row's carry-in
	ClosingDevir     decimal.Decimal // last row's kasa_top - allocation
	TotalDeposits    decimal.Decimal
	TotalWithdrawals decimal.Decimal
	TotalCommission  decimal.Decimal
	TotalNet         decimal.Decimal
	TotalAllocation  decimal.Decimal
	DailyRows        []*DailyLedgerRow // nil when daily detail was not requested
}
