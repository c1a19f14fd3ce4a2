package ledger

import (
	"context"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/psp-treasury/backend/internal/application/adapter"
	"github.com/psp-treasury/backend/internal/application/usecase/alias"
	"github.com/psp-treasury/backend/internal/domain/entity"
	"github.com/psp-treasury/backend/internal/domain/valueobject"
)

// defaultWorkers bounds the pool when the caller gives no size. One worker
// holds roughly one DB connection, so the injector sizes the pool from the
// configured connection pool.
const defaultWorkers = 4

// ReconcileBatchInput represents the input for a bulk reconciliation run.
type ReconcileBatchInput struct {
	// PSPNames limits the run to these canonical PSPs. Empty means every PSP
	// present in the transaction feed.
	PSPNames []string
	Start    time.Time
	End      time.Time
	Workers  int
}

// PSPOutcome is the per-PSP result of a batch run. A failed PSP carries an
// error and no rows; other PSPs in the same batch still return results.
type PSPOutcome struct {
	PSPName  string
	Rows     []*entity.DailyLedgerRow
	Warnings []valueobject.Warning
	Err      error
}

// ReconcileBatchOutput represents the result of a bulk reconciliation run.
type ReconcileBatchOutput struct {
	Outcomes  map[string]*PSPOutcome
	Succeeded int
	Failed    int
}

// ReconcileBatchUseCase runs the range computation across many PSPs.
//
// Within one PSP the recurrence is inherently sequential; across PSPs it is
// embarrassingly parallel, so PSPs are distributed over a bounded worker
// pool. Cancellation is cooperative and checked at PSP boundaries only: a
// PSP mid-recurrence runs to completion so its ComputedDevir rows are never
// left half-written.
type ReconcileBatchUseCase struct {
	computeRange    *ComputeRangeUseCase
	transactionRepo adapter.TransactionRepository
	aliasResolver   *alias.Resolver
	workers         int
}

// NewReconcileBatchUseCase creates a new ReconcileBatchUseCase instance.
func NewReconcileBatchUseCase(
	computeRange *ComputeRangeUseCase,
	transactionRepo adapter.TransactionRepository,
	aliasResolver *alias.Resolver,
	workers int,
) *ReconcileBatchUseCase {
	if workers <= 0 {
		workers = defaultWorkers
	}
	return &ReconcileBatchUseCase{
		computeRange:    computeRange,
		transactionRepo: transactionRepo,
		aliasResolver:   aliasResolver,
		workers:         workers,
	}
}

// Execute reconciles every requested PSP over the date range.
func (uc *ReconcileBatchUseCase) Execute(ctx context.Context, input ReconcileBatchInput) (*ReconcileBatchOutput, error) {
	pspNames, err := uc.resolvePSPs(ctx, input.PSPNames)
	if err != nil {
		return nil, err
	}

	workers := input.Workers
	if workers <= 0 {
		workers = uc.workers
	}
	if workers > len(pspNames) && len(pspNames) > 0 {
		workers = len(pspNames)
	}

	jobs := make(chan string)
	outcomes := make(map[string]*PSPOutcome, len(pspNames))
	var mu sync.Mutex
	var wg sync.WaitGroup

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for pspName := range jobs {
				// PSP boundary: the only cancellation checkpoint. Keep
				// draining so the producer never blocks on a dead worker.
				if ctx.Err() != nil {
					continue
				}
				outcome := uc.reconcileOne(ctx, pspName, input.Start, input.End)
				mu.Lock()
				outcomes[pspName] = outcome
				mu.Unlock()
			}
		}()
	}

	for _, pspName := range pspNames {
		jobs <- pspName
	}
	close(jobs)
	wg.Wait()

	output := &ReconcileBatchOutput{Outcomes: outcomes}
	for _, outcome := range outcomes {
		if outcome.Err != nil {
			output.Failed++
		} else {
			output.Succeeded++
		}
	}

	slog.Info("Batch reconciliation finished",
		"psps", len(pspNames),
		"succeeded", output.Succeeded,
		"failed", output.Failed,
	)
	return output, nil
}

// reconcileOne computes a single PSP's range, isolating its failure.
func (uc *ReconcileBatchUseCase) reconcileOne(ctx context.Context, pspName string, start, end time.Time) *PSPOutcome {
	result, err := uc.computeRange.Execute(ctx, ComputeRangeInput{
		PSPName: pspName,
		Start:   start,
		End:     end,
	})
	if err != nil {
		slog.Error("PSP reconciliation failed", "psp", pspName, "error", err)
		return &PSPOutcome{PSPName: pspName, Err: err}
	}

	return &PSPOutcome{
		PSPName:  pspName,
		Rows:     result.Rows,
		Warnings: result.Warnings,
	}
}

// resolvePSPs expands the requested PSP list, or derives the full canonical
// set from the feed when none was given.
func (uc *ReconcileBatchUseCase) resolvePSPs(ctx context.Context, requested []string) ([]string, error) {
	table, err := uc.aliasResolver.Load(ctx)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	var pspNames []string
	add := func(name string) {
		canonical := table.Canonical(name)
		if _, ok := seen[canonical]; !ok {
			seen[canonical] = struct{}{}
			pspNames = append(pspNames, canonical)
		}
	}

	if len(requested) > 0 {
		for _, name := range requested {
			add(name)
		}
		return pspNames, nil
	}

	identifiers, err := uc.transactionRepo.ListIdentifiers(ctx)
	if err != nil {
		return nil, err
	}
	for _, identifier := range identifiers {
		add(identifier)
	}
	sort.Strings(pspNames)
	return pspNames, nil
}
