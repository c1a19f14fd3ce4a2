// Package ledger contains the daily ledger reconciliation use cases.
package ledger

import (
	"github.com/shopspring/decimal"

	"github.com/psp-treasury/backend/internal/domain/entity"
	"github.com/psp-treasury/backend/internal/domain/valueobject"
)

// aggregateDaily reduces raw transactions into per-day totals for one
// canonical PSP. Transactions from every raw identifier aliased to the PSP
// are merged here, before the recurrence runs, so aliased identifiers
// produce a single row stream.
//
// The amount used is the settlement-currency amount when available, else the
// raw amount. TETHER always uses the raw amount. Withdrawals are accumulated
// as non-negative magnitudes; the calculator resolves sign semantics.
func aggregateDaily(pspName string, transactions []*entity.PSPTransaction) map[valueobject.DayKey]entity.DailyAggregate {
	aggregates := make(map[valueobject.DayKey]entity.DailyAggregate, len(transactions))

	for _, tx := range transactions {
		day := valueobject.DayKeyOf(tx.Date)

		agg, ok := aggregates[day]
		if !ok {
			agg = entity.DailyAggregate{
				PSPName:     pspName,
				Date:        day.Time(),
				Deposits:    decimal.Zero,
				Withdrawals: decimal.Zero,
			}
		}

		amount := settlementAmount(pspName, tx)

		switch tx.Kind() {
		case entity.TransactionKindDeposit:
			agg.Deposits = agg.Deposits.Add(amount.Abs())
		case entity.TransactionKindWithdrawal:
			agg.Withdrawals = agg.Withdrawals.Add(amount.Abs())
		}
		agg.TransactionCount++

		aggregates[day] = agg
	}

	return aggregates
}

// settlementAmount picks the amount a transaction contributes to the ledger.
func settlementAmount(pspName string, tx *entity.PSPTransaction) decimal.Decimal {
	if pspName == entity.TetherPSP {
		return tx.Amount
	}
	if tx.SettlementAmount != nil {
		return *tx.SettlementAmount
	}
	return tx.Amount
}

// emptyAggregate is the stand-in for days without transactions. Every date
// in a range is visited, transactions or not: skipping empty dates would
// break the DEVIR chain.
func emptyAggregate(pspName string, day valueobject.DayKey) entity.DailyAggregate {
	return entity.DailyAggregate{
		PSPName:     pspName,
		Date:        day.Time(),
		Deposits:    decimal.Zero,
		Withdrawals: decimal.Zero,
	}
}
