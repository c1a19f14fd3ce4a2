package ledger

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/psp-treasury/backend/internal/application/adapter"
	"github.com/psp-treasury/backend/internal/application/usecase/alias"
	"github.com/psp-treasury/backend/internal/domain/entity"
	domainerror "github.com/psp-treasury/backend/internal/domain/error"
	"github.com/psp-treasury/backend/internal/domain/valueobject"
)

// PriorState is the running value carried into a range: the previous day's
// closing balance and that day's allocation.
type PriorState struct {
	KasaTop    decimal.Decimal
	Allocation decimal.Decimal
}

// ComputeRangeInput represents the input for a range computation.
type ComputeRangeInput struct {
	PSPName string
	Start   time.Time
	End     time.Time

	// Prior, when set, seeds the recurrence explicitly. When nil, the stored
	// ComputedDevir for the range's first day (if any) supplies the opening
	// carry-in, which keeps recomputation stable after earlier months'
	// transactions have been pruned.
	Prior *PriorState

	// SkipPersist computes without staging ComputedDevir rows. Used when a
	// caller re-runs the recurrence over already-reconciled data.
	SkipPersist bool
}

// ComputeRangeOutput represents the result envelope of a range computation.
type ComputeRangeOutput struct {
	Rows     []*entity.DailyLedgerRow
	Warnings []valueobject.Warning
}

// ComputeRangeUseCase walks a PSP's date range in chronological order,
// applying the carry-over recurrence and override precedence to produce one
// ledger row per calendar day.
type ComputeRangeUseCase struct {
	transactionRepo adapter.TransactionRepository
	overrideRepo    adapter.OverrideRepository
	devirRepo       adapter.ComputedDevirRepository
	rateResolver    adapter.RateResolver
	aliasResolver   *alias.Resolver
	config          valueobject.LedgerConfig
}

// NewComputeRangeUseCase creates a new ComputeRangeUseCase instance.
func NewComputeRangeUseCase(
	transactionRepo adapter.TransactionRepository,
	overrideRepo adapter.OverrideRepository,
	devirRepo adapter.ComputedDevirRepository,
	rateResolver adapter.RateResolver,
	aliasResolver *alias.Resolver,
) *ComputeRangeUseCase {
	return &ComputeRangeUseCase{
		transactionRepo: transactionRepo,
		overrideRepo:    overrideRepo,
		devirRepo:       devirRepo,
		rateResolver:    rateResolver,
		aliasResolver:   aliasResolver,
		config:          valueobject.DefaultLedgerConfig(),
	}
}

// Execute computes the daily ledger rows for the inclusive date range.
//
// The recurrence is strictly sequential: every date is visited exactly once
// in ascending order, zero-transaction days included. All inputs are
// bulk-fetched before the loop. Any storage failure aborts the whole PSP
// range; nothing is persisted for a partial range.
func (uc *ComputeRangeUseCase) Execute(ctx context.Context, input ComputeRangeInput) (*ComputeRangeOutput, error) {
	start := valueobject.DayKeyOf(input.Start)
	end := valueobject.DayKeyOf(input.End)
	if end.Time().Before(start.Time()) {
		return nil, domainerror.NewLedgerError(
			domainerror.ErrCodeInvalidDateRange,
			"end date precedes start date",
			domainerror.ErrInvalidDateRange,
		)
	}

	table, err := uc.aliasResolver.Load(ctx)
	if err != nil {
		return nil, uc.dependencyFailure("failed to load alias table", err)
	}
	pspName := table.Canonical(input.PSPName)

	inputs, err := uc.fetchInputs(ctx, table, pspName, start, end)
	if err != nil {
		return nil, err
	}

	prior, priorKnown, err := uc.resolvePrior(ctx, input, pspName, start)
	if err != nil {
		return nil, err
	}

	output := &ComputeRangeOutput{}
	var staged []*entity.ComputedDevir
	gapWarned := false

	for day := start; !day.Time().After(end.Time()); day = day.Next() {
		agg, ok := inputs.aggregates[day]
		if !ok {
			agg = emptyAggregate(pspName, day)
		}

		rate, warning, err := uc.rateResolver.Rate(ctx, pspName, day)
		if err != nil {
			return nil, uc.dependencyFailure("rate resolution failed", err)
		}
		if warning != nil && !gapWarned {
			output.Warnings = append(output.Warnings, *warning)
			gapWarned = true
		}

		total := agg.Deposits.Sub(agg.Withdrawals)
		commission := agg.Deposits.Mul(rate) // deposits only, never withdrawals
		net := total.Sub(commission)

		allocation := decimal.Zero
		if pspName != entity.TetherPSP {
			if v, ok := inputs.allocations[day]; ok {
				allocation = v
			}
		}

		devirIn := decimal.Zero
		devirFromOverride := false
		if override, ok := inputs.devirOverrides[day]; ok && day.IsFirstDayOfMonth() {
			devirIn = override
			devirFromOverride = true
		} else if priorKnown {
			devirIn = prior.KasaTop.Sub(prior.Allocation)
		}

		// Allocation is deliberately delayed by one day: it never reduces the
		// same day's closing balance, only the next day's carry-in.
		kasaTop := devirIn.Add(net)
		if override, ok := inputs.kasaOverrides[day]; ok {
			// The manual value replaces the computed one and propagates
			// forward as the next iteration's prior.
			kasaTop = override
		}

		row := &entity.DailyLedgerRow{
			PSPName:          pspName,
			Date:             day.Time(),
			Deposits:         agg.Deposits,
			Withdrawals:      agg.Withdrawals,
			Total:            total,
			Commission:       commission,
			Net:              net,
			Allocation:       allocation,
			DevirIn:          devirIn,
			KasaTop:          kasaTop,
			TransactionCount: agg.TransactionCount,
			IsLastDayOfMonth: day.IsLastDayOfMonth(),
		}
		output.Rows = append(output.Rows, row)

		// Audit anchor: a computed (non-override) carry-in on a day with
		// activity, or any month close so the chain survives
		// zero-transaction month boundaries.
		if (!devirFromOverride && agg.TransactionCount > 0) || day.IsLastDayOfMonth() {
			staged = append(staged, &entity.ComputedDevir{
				PSPName: pspName,
				Date:    day.Time(),
				Amount:  devirIn,
			})
		}

		prior = PriorState{KasaTop: kasaTop, Allocation: allocation}
		priorKnown = true
	}

	if !input.SkipPersist && len(staged) > 0 {
		if err := uc.devirRepo.UpsertBatch(ctx, pspName, staged, uc.config.DevirWriteTolerance); err != nil {
			return nil, domainerror.NewLedgerError(
				domainerror.ErrCodePartialPersistence,
				"failed to commit computed devir rows",
				err,
			)
		}
	}

	return output, nil
}

// rangeInputs holds the pre-indexed lookups for one PSP's range, built once
// per computation instead of per day.
type rangeInputs struct {
	aggregates     map[valueobject.DayKey]entity.DailyAggregate
	allocations    map[valueobject.DayKey]decimal.Decimal
	devirOverrides map[valueobject.DayKey]decimal.Decimal
	kasaOverrides  map[valueobject.DayKey]decimal.Decimal
}

// fetchInputs bulk-loads transactions and overrides for the full range.
func (uc *ComputeRangeUseCase) fetchInputs(
	ctx context.Context,
	table *alias.Table,
	pspName string,
	start, end valueobject.DayKey,
) (*rangeInputs, error) {
	transactions, err := uc.transactionRepo.FindByIdentifiersAndRange(
		ctx, table.RawIdentifiers(pspName), start.Time(), end.Time(),
	)
	if err != nil {
		return nil, uc.dependencyFailure("failed to load transactions", err)
	}

	inputs := &rangeInputs{
		aggregates: aggregateDaily(pspName, transactions),
	}

	inputs.allocations, err = uc.overrideIndex(ctx, pspName, entity.OverrideKindAllocation, start, end)
	if err != nil {
		return nil, err
	}
	inputs.devirOverrides, err = uc.overrideIndex(ctx, pspName, entity.OverrideKindDevir, start, end)
	if err != nil {
		return nil, err
	}
	inputs.kasaOverrides, err = uc.overrideIndex(ctx, pspName, entity.OverrideKindKasaTop, start, end)
	if err != nil {
		return nil, err
	}
	return inputs, nil
}

// overrideIndex builds the per-day lookup for one override kind.
func (uc *ComputeRangeUseCase) overrideIndex(
	ctx context.Context,
	pspName string,
	kind entity.OverrideKind,
	start, end valueobject.DayKey,
) (map[valueobject.DayKey]decimal.Decimal, error) {
	overrides, err := uc.overrideRepo.FindByPSPAndRange(ctx, pspName, kind, start.Time(), end.Time())
	if err != nil {
		return nil, uc.dependencyFailure("failed to load overrides", err)
	}

	index := make(map[valueobject.DayKey]decimal.Decimal, len(overrides))
	for _, o := range overrides {
		index[valueobject.DayKeyOf(o.Date)] = o.Amount
	}
	return index, nil
}

// resolvePrior determines the carry-in seed for the range's first day.
func (uc *ComputeRangeUseCase) resolvePrior(
	ctx context.Context,
	input ComputeRangeInput,
	pspName string,
	start valueobject.DayKey,
) (PriorState, bool, error) {
	if input.Prior != nil {
		return *input.Prior, true, nil
	}

	stored, err := uc.devirRepo.Find(ctx, pspName, start.Time())
	if err != nil {
		return PriorState{}, false, uc.dependencyFailure("failed to load stored devir", err)
	}
	if stored == nil {
		return PriorState{}, false, nil
	}
	return PriorState{KasaTop: stored.Amount, Allocation: decimal.Zero}, true, nil
}

func (uc *ComputeRangeUseCase) dependencyFailure(message string, err error) error {
	return domainerror.NewLedgerError(
		domainerror.ErrCodeLedgerDependencyFailure,
		message,
		err,
	)
}
