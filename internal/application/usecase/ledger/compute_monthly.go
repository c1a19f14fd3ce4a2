package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/psp-treasury/backend/internal/domain/entity"
	domainerror "github.com/psp-treasury/backend/internal/domain/error"
	"github.com/psp-treasury/backend/internal/domain/valueobject"
)

// ComputeMonthlyInput represents the input for a monthly summary.
type ComputeMonthlyInput struct {
	PSPName string
	Year    int
	Month   time.Month

	// IncludeDaily controls whether the per-day row list is returned.
	// Omitting it keeps response payloads small.
	IncludeDaily bool
}

// ComputeMonthlyOutput represents the monthly result envelope.
type ComputeMonthlyOutput struct {
	Summary  *entity.MonthlySummary
	Warnings []valueobject.Warning
}

// ComputeMonthlyUseCase folds one month of daily rows into month-level totals.
type ComputeMonthlyUseCase struct {
	computeRange *ComputeRangeUseCase
	config       valueobject.LedgerConfig
}

// NewComputeMonthlyUseCase creates a new ComputeMonthlyUseCase instance.
func NewComputeMonthlyUseCase(computeRange *ComputeRangeUseCase) *ComputeMonthlyUseCase {
	return &ComputeMonthlyUseCase{
		computeRange: computeRange,
		config:       valueobject.DefaultLedgerConfig(),
	}
}

// Execute computes the monthly ledger summary for a PSP.
func (uc *ComputeMonthlyUseCase) Execute(ctx context.Context, input ComputeMonthlyInput) (*ComputeMonthlyOutput, error) {
	if input.Month < time.January || input.Month > time.December || input.Year < 2000 || input.Year > 2100 {
		return nil, domainerror.NewLedgerError(
			domainerror.ErrCodeInvalidDateRange,
			fmt.Sprintf("invalid month %d-%02d", input.Year, input.Month),
			domainerror.ErrInvalidDateRange,
		)
	}

	first := time.Date(input.Year, input.Month, 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)

	rangeOutput, err := uc.computeRange.Execute(ctx, ComputeRangeInput{
		PSPName: input.PSPName,
		Start:   first,
		End:     last,
	})
	if err != nil {
		return nil, err
	}

	summary := summarizeMonth(input.Year, input.Month, rangeOutput.Rows, input.IncludeDaily)

	warnings := rangeOutput.Warnings
	warnings = append(warnings, uc.consistencyCheck(rangeOutput.Rows)...)

	return &ComputeMonthlyOutput{
		Summary:  summary,
		Warnings: warnings,
	}, nil
}

// summarizeMonth folds ordered daily rows into a MonthlySummary.
func summarizeMonth(year int, month time.Month, rows []*entity.DailyLedgerRow, includeDaily bool) *entity.MonthlySummary {
	summary := &entity.MonthlySummary{
		Year:             year,
		Month:            month,
		OpeningDevir:     decimal.Zero,
		ClosingDevir:     decimal.Zero,
		TotalDeposits:    decimal.Zero,
		TotalWithdrawals: decimal.Zero,
		TotalCommission:  decimal.Zero,
		TotalNet:         decimal.Zero,
		TotalAllocation:  decimal.Zero,
	}
	if len(rows) == 0 {
		return summary
	}

	summary.PSPName = rows[0].PSPName
	summary.OpeningDevir = rows[0].DevirIn

	for _, row := range rows {
		summary.TotalDeposits = summary.TotalDeposits.Add(row.Deposits)
		summary.TotalWithdrawals = summary.TotalWithdrawals.Add(row.Withdrawals)
		summary.TotalCommission = summary.TotalCommission.Add(row.Commission)
		summary.TotalNet = summary.TotalNet.Add(row.Net)
		summary.TotalAllocation = summary.TotalAllocation.Add(row.Allocation)
	}

	lastRow := rows[len(rows)-1]
	summary.ClosingDevir = lastRow.KasaTop.Sub(lastRow.Allocation)

	if includeDaily {
		summary.DailyRows = rows
	}
	return summary
}

// consistencyCheck verifies the carry-over chain across consecutive rows.
// Days that legitimately restart the chain (month starts, where a devir
// override may apply) are skipped. Violations are reported alongside the
// result; they never block the response.
func (uc *ComputeMonthlyUseCase) consistencyCheck(rows []*entity.DailyLedgerRow) []valueobject.Warning {
	var warnings []valueobject.Warning
	for i := 1; i < len(rows); i++ {
		curr := rows[i]
		if curr.Date.Day() == 1 {
			continue
		}
		prev := rows[i-1]
		expected := prev.KasaTop.Sub(prev.Allocation)
		if curr.DevirIn.Sub(expected).Abs().GreaterThan(uc.config.ConsistencyTolerance) {
			warnings = append(warnings, valueobject.Warning{
				Kind:    valueobject.WarningConsistency,
				PSPName: curr.PSPName,
				Date:    curr.Date,
				Message: fmt.Sprintf("carry-in %s does not match prior closing %s", curr.DevirIn, expected),
			})
		}
	}
	return warnings
}
