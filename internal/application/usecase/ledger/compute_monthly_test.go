package ledger

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/psp-treasury/backend/internal/domain/entity"
	domainerror "github.com/psp-treasury/backend/internal/domain/error"
	"github.com/psp-treasury/backend/internal/domain/valueobject"
)

func newMonthlyUseCase(env *testEnv) *ComputeMonthlyUseCase {
	return NewComputeMonthlyUseCase(env.useCase)
}

func TestComputeMonthly_SummarizesFullMonth(t *testing.T) {
	env := newTestEnv()
	env.rateResolver.rates["A"] = dec("0.05")
	env.txRepo.transactions = []*entity.PSPTransaction{
		depositTx("A", day(2025, time.January, 1), "1000"),
		depositTx("A", day(2025, time.January, 3), "500"),
		withdrawalTx("A", day(2025, time.January, 20), "200"),
	}
	env.addOverride("A", day(2025, time.January, 1), entity.OverrideKindAllocation, "200")

	output, err := newMonthlyUseCase(env).Execute(context.Background(), ComputeMonthlyInput{
		PSPName: "A",
		Year:    2025,
		Month:   time.January,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	s := output.Summary
	if s.PSPName != "A" || s.Year != 2025 || s.Month != time.January {
		t.Errorf("summary header = %s %d-%s", s.PSPName, s.Year, s.Month)
	}
	assertDecimal(t, "TotalDeposits", s.TotalDeposits, dec("1500"))
	assertDecimal(t, "TotalWithdrawals", s.TotalWithdrawals, dec("200"))
	assertDecimal(t, "TotalCommission", s.TotalCommission, dec("75"))
	assertDecimal(t, "TotalNet", s.TotalNet, dec("1225"))
	assertDecimal(t, "TotalAllocation", s.TotalAllocation, dec("200"))

	// No prior history: the month opens with an unknown (zero) carry-in.
	assertDecimal(t, "OpeningDevir", s.OpeningDevir, dec("0"))
	// Closing carry-out: last kasa_top minus last allocation. The whole
	// month's net less the one allocation withheld along the way.
	assertDecimal(t, "ClosingDevir", s.ClosingDevir, dec("1025"))

	if s.DailyRows != nil {
		t.Error("daily rows must be omitted unless requested")
	}
	if len(output.Warnings) != 0 {
		t.Errorf("expected a clean month, got warnings: %v", output.Warnings)
	}
}

func TestComputeMonthly_IncludeDaily(t *testing.T) {
	env := newTestEnv()
	env.rateResolver.rates["A"] = dec("0")
	env.txRepo.transactions = []*entity.PSPTransaction{
		depositTx("A", day(2025, time.February, 10), "100"),
	}

	output, err := newMonthlyUseCase(env).Execute(context.Background(), ComputeMonthlyInput{
		PSPName:      "A",
		Year:         2025,
		Month:        time.February,
		IncludeDaily: true,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(output.Summary.DailyRows) != 28 {
		t.Errorf("expected 28 daily rows for February 2025, got %d", len(output.Summary.DailyRows))
	}
}

func TestComputeMonthly_InvalidMonth(t *testing.T) {
	env := newTestEnv()
	uc := newMonthlyUseCase(env)

	cases := []struct {
		name  string
		year  int
		month time.Month
	}{
		{"month zero", 2025, 0},
		{"month thirteen", 2025, 13},
		{"year out of range", 1900, time.January},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := uc.Execute(context.Background(), ComputeMonthlyInput{
				PSPName: "A",
				Year:    tc.year,
				Month:   tc.month,
			})
			if !errors.Is(err, domainerror.ErrInvalidDateRange) {
				t.Errorf("expected ErrInvalidDateRange, got %v", err)
			}
		})
	}
}

func TestConsistencyCheck_FlagsBrokenChain(t *testing.T) {
	uc := NewComputeMonthlyUseCase(nil)
	rows := []*entity.DailyLedgerRow{
		{PSPName: "A", Date: day(2025, time.January, 1), KasaTop: dec("100"), Allocation: dec("0"), DevirIn: dec("0")},
		{PSPName: "A", Date: day(2025, time.January, 2), KasaTop: dec("100"), Allocation: dec("0"), DevirIn: dec("250")},
		{PSPName: "A", Date: day(2025, time.January, 3), KasaTop: dec("100"), Allocation: dec("0"), DevirIn: dec("100")},
	}

	warnings := uc.consistencyCheck(rows)
	if len(warnings) != 1 {
		t.Fatalf("expected 1 warning, got %d", len(warnings))
	}
	if warnings[0].Kind != valueobject.WarningConsistency {
		t.Errorf("warning kind = %s", warnings[0].Kind)
	}
	if !warnings[0].Date.Equal(day(2025, time.January, 2)) {
		t.Errorf("warning date = %s", warnings[0].Date)
	}
}

func TestConsistencyCheck_SkipsMonthStarts(t *testing.T) {
	uc := NewComputeMonthlyUseCase(nil)
	// A devir override legitimately restarts the chain on the 1st.
	rows := []*entity.DailyLedgerRow{
		{PSPName: "A", Date: day(2025, time.January, 31), KasaTop: dec("100"), Allocation: dec("0"), DevirIn: dec("100")},
		{PSPName: "A", Date: day(2025, time.February, 1), KasaTop: dec("9999"), Allocation: dec("0"), DevirIn: dec("9999")},
	}

	if warnings := uc.consistencyCheck(rows); len(warnings) != 0 {
		t.Errorf("expected no warnings at a month boundary, got %v", warnings)
	}
}

func TestConsistencyCheck_ToleratesRoundingDrift(t *testing.T) {
	uc := NewComputeMonthlyUseCase(nil)
	rows := []*entity.DailyLedgerRow{
		{PSPName: "A", Date: day(2025, time.January, 2), KasaTop: dec("100"), Allocation: dec("0"), DevirIn: dec("0")},
		{PSPName: "A", Date: day(2025, time.January, 3), KasaTop: dec("100.005"), Allocation: dec("0"), DevirIn: dec("100.005")},
	}

	if warnings := uc.consistencyCheck(rows); len(warnings) != 0 {
		t.Errorf("drift within tolerance must not warn, got %v", warnings)
	}
}
