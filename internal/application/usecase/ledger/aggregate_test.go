package ledger

import (
	"testing"
	"time"

	"github.com/psp-treasury/backend/internal/domain/entity"
	"github.com/psp-treasury/backend/internal/domain/valueobject"
)

func TestAggregateDaily_CategorySynonyms(t *testing.T) {
	date := day(2025, time.January, 1)
	transactions := []*entity.PSPTransaction{
		entity.NewPSPTransaction("A", date, "DEP", dec("10"), nil, "TRY"),
		entity.NewPSPTransaction("A", date, "deposit", dec("20"), nil, "TRY"),
		entity.NewPSPTransaction("A", date, " Investment ", dec("30"), nil, "TRY"),
		entity.NewPSPTransaction("A", date, "WD", dec("5"), nil, "TRY"),
		entity.NewPSPTransaction("A", date, "withdraw", dec("6"), nil, "TRY"),
		entity.NewPSPTransaction("A", date, "WITHDRAWAL", dec("7"), nil, "TRY"),
	}

	aggregates := aggregateDaily("A", transactions)
	agg := aggregates[valueobject.DayKeyOf(date)]

	assertDecimal(t, "Deposits", agg.Deposits, dec("60"))
	assertDecimal(t, "Withdrawals", agg.Withdrawals, dec("18"))
	if agg.TransactionCount != 6 {
		t.Errorf("TransactionCount = %d, want 6", agg.TransactionCount)
	}
}

func TestAggregateDaily_SignFallbackForUnknownCategory(t *testing.T) {
	date := day(2025, time.January, 1)
	transactions := []*entity.PSPTransaction{
		entity.NewPSPTransaction("A", date, "TRANSFER", dec("100"), nil, "TRY"),
		entity.NewPSPTransaction("A", date, "TRANSFER", dec("-40"), nil, "TRY"),
	}

	agg := aggregateDaily("A", transactions)[valueobject.DayKeyOf(date)]

	assertDecimal(t, "Deposits", agg.Deposits, dec("100"))
	// Negative amounts accumulate as positive withdrawal magnitudes.
	assertDecimal(t, "Withdrawals", agg.Withdrawals, dec("40"))
}

func TestAggregateDaily_NegativeCategorizedAmountsUseMagnitude(t *testing.T) {
	date := day(2025, time.January, 1)
	// Some feeds report withdrawals as negative even when categorized.
	transactions := []*entity.PSPTransaction{
		entity.NewPSPTransaction("A", date, "WD", dec("-50"), nil, "TRY"),
		entity.NewPSPTransaction("A", date, "WD", dec("25"), nil, "TRY"),
	}

	agg := aggregateDaily("A", transactions)[valueobject.DayKeyOf(date)]
	assertDecimal(t, "Withdrawals", agg.Withdrawals, dec("75"))
}

func TestAggregateDaily_SettlementAmountPreferred(t *testing.T) {
	date := day(2025, time.January, 1)
	settlement := dec("3450")
	transactions := []*entity.PSPTransaction{
		entity.NewPSPTransaction("A", date, "DEPOSIT", dec("100"), &settlement, "USD"),
		entity.NewPSPTransaction("A", date, "DEPOSIT", dec("100"), nil, "TRY"),
	}

	agg := aggregateDaily("A", transactions)[valueobject.DayKeyOf(date)]
	assertDecimal(t, "Deposits", agg.Deposits, dec("3550"))
}

func TestAggregateDaily_TetherIgnoresSettlementAmount(t *testing.T) {
	date := day(2025, time.January, 1)
	settlement := dec("3450")
	transactions := []*entity.PSPTransaction{
		entity.NewPSPTransaction("TETHER", date, "DEPOSIT", dec("100"), &settlement, "USDT"),
	}

	agg := aggregateDaily(entity.TetherPSP, transactions)[valueobject.DayKeyOf(date)]
	assertDecimal(t, "Deposits", agg.Deposits, dec("100"))
}

func TestAggregateDaily_GroupsByCalendarDay(t *testing.T) {
	transactions := []*entity.PSPTransaction{
		entity.NewPSPTransaction("A", time.Date(2025, time.January, 1, 9, 30, 0, 0, time.UTC), "DEP", dec("10"), nil, "TRY"),
		entity.NewPSPTransaction("A", time.Date(2025, time.January, 1, 23, 59, 0, 0, time.UTC), "DEP", dec("20"), nil, "TRY"),
		entity.NewPSPTransaction("A", time.Date(2025, time.January, 2, 0, 0, 1, 0, time.UTC), "DEP", dec("40"), nil, "TRY"),
	}

	aggregates := aggregateDaily("A", transactions)
	if len(aggregates) != 2 {
		t.Fatalf("expected 2 day buckets, got %d", len(aggregates))
	}

	jan1 := aggregates[valueobject.DayKey{Year: 2025, Month: time.January, Day: 1}]
	jan2 := aggregates[valueobject.DayKey{Year: 2025, Month: time.January, Day: 2}]
	assertDecimal(t, "jan1.Deposits", jan1.Deposits, dec("30"))
	assertDecimal(t, "jan2.Deposits", jan2.Deposits, dec("40"))
}
