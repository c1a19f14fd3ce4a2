// Package ledger contains the daily ledger reconciliation use cases.
package ledger

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/psp-treasury/backend/internal/domain/entity"
	"github.com/psp-treasury/backend/internal/domain/valueobject"
)

var errStorageDown = errors.New("storage unreachable")

// fakeTransactionRepo is an in-memory adapter.TransactionRepository.
type fakeTransactionRepo struct {
	transactions []*entity.PSPTransaction
	fail         bool
}

func (f *fakeTransactionRepo) FindByIdentifiersAndRange(
	_ context.Context,
	rawIdentifiers []string,
	start time.Time,
	end time.Time,
) ([]*entity.PSPTransaction, error) {
	if f.fail {
		return nil, errStorageDown
	}
	wanted := make(map[string]struct{}, len(rawIdentifiers))
	for _, id := range rawIdentifiers {
		wanted[id] = struct{}{}
	}
	var result []*entity.PSPTransaction
	for _, tx := range f.transactions {
		if _, ok := wanted[tx.PSPIdentifier]; !ok {
			continue
		}
		if tx.Date.Before(start) || tx.Date.After(end) {
			continue
		}
		result = append(result, tx)
	}
	return result, nil
}

func (f *fakeTransactionRepo) BulkCreate(_ context.Context, transactions []*entity.PSPTransaction) error {
	if f.fail {
		return errStorageDown
	}
	f.transactions = append(f.transactions, transactions...)
	return nil
}

func (f *fakeTransactionRepo) ListIdentifiers(_ context.Context) ([]string, error) {
	if f.fail {
		return nil, errStorageDown
	}
	seen := make(map[string]struct{})
	var identifiers []string
	for _, tx := range f.transactions {
		if _, ok := seen[tx.PSPIdentifier]; !ok {
			seen[tx.PSPIdentifier] = struct{}{}
			identifiers = append(identifiers, tx.PSPIdentifier)
		}
	}
	return identifiers, nil
}

// fakeOverrideRepo is an in-memory adapter.OverrideRepository.
type fakeOverrideRepo struct {
	overrides []*entity.Override
	fail      bool
}

func (f *fakeOverrideRepo) Upsert(_ context.Context, override *entity.Override) error {
	if f.fail {
		return errStorageDown
	}
	for i, existing := range f.overrides {
		if existing.PSPName == override.PSPName && existing.Kind == override.Kind && existing.Date.Equal(override.Date) {
			f.overrides[i] = override
			return nil
		}
	}
	f.overrides = append(f.overrides, override)
	return nil
}

func (f *fakeOverrideRepo) Delete(_ context.Context, pspName string, date time.Time, kind entity.OverrideKind) error {
	for i, existing := range f.overrides {
		if existing.PSPName == pspName && existing.Kind == kind && existing.Date.Equal(date) {
			f.overrides = append(f.overrides[:i], f.overrides[i+1:]...)
			return nil
		}
	}
	return nil
}

func (f *fakeOverrideRepo) FindByPSPAndRange(
	_ context.Context,
	pspName string,
	kind entity.OverrideKind,
	start time.Time,
	end time.Time,
) ([]*entity.Override, error) {
	if f.fail {
		return nil, errStorageDown
	}
	var result []*entity.Override
	for _, o := range f.overrides {
		if o.PSPName != pspName || o.Kind != kind {
			continue
		}
		if o.Date.Before(start) || o.Date.After(end) {
			continue
		}
		result = append(result, o)
	}
	return result, nil
}

// fakeDevirRepo is an in-memory adapter.ComputedDevirRepository recording
// every batch commit.
type fakeDevirRepo struct {
	mu      sync.Mutex
	stored  map[string]*entity.ComputedDevir
	commits int
	fail    bool
}

func newFakeDevirRepo() *fakeDevirRepo {
	return &fakeDevirRepo{stored: make(map[string]*entity.ComputedDevir)}
}

func devirKey(pspName string, date time.Time) string {
	return pspName + "|" + date.Format("2006-01-02")
}

func (f *fakeDevirRepo) Find(_ context.Context, pspName string, date time.Time) (*entity.ComputedDevir, error) {
	if f.fail {
		return nil, errStorageDown
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.stored[devirKey(pspName, date)], nil
}

func (f *fakeDevirRepo) UpsertBatch(
	_ context.Context,
	pspName string,
	rows []*entity.ComputedDevir,
	tolerance decimal.Decimal,
) error {
	if f.fail {
		return errStorageDown
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.commits++
	for _, row := range rows {
		key := devirKey(pspName, row.Date)
		if existing, ok := f.stored[key]; ok && existing.Amount.Sub(row.Amount).Abs().LessThanOrEqual(tolerance) {
			continue
		}
		f.stored[key] = row
	}
	return nil
}

// fakeRateResolver is a configurable adapter.RateResolver.
type fakeRateResolver struct {
	rates      map[string]decimal.Decimal // keyed by PSP, flat over time
	warnFor    map[string]struct{}
	failFor    map[string]struct{}
	rateLookup func(pspName string, day valueobject.DayKey) decimal.Decimal
}

func newFakeRateResolver() *fakeRateResolver {
	return &fakeRateResolver{
		rates:   make(map[string]decimal.Decimal),
		warnFor: make(map[string]struct{}),
		failFor: make(map[string]struct{}),
	}
}

func (f *fakeRateResolver) Rate(_ context.Context, pspName string, day valueobject.DayKey) (decimal.Decimal, *valueobject.Warning, error) {
	if _, ok := f.failFor[pspName]; ok {
		return decimal.Zero, nil, errStorageDown
	}
	if pspName == entity.TetherPSP {
		return decimal.Zero, nil, nil
	}
	if f.rateLookup != nil {
		return f.rateLookup(pspName, day), nil, nil
	}
	if rate, ok := f.rates[pspName]; ok {
		return rate, nil, nil
	}
	if _, ok := f.warnFor[pspName]; ok {
		return decimal.Zero, &valueobject.Warning{
			Kind:    valueobject.WarningConfigurationGap,
			PSPName: pspName,
			Date:    day.Time(),
			Message: "no commission rate configured",
		}, nil
	}
	return decimal.Zero, nil, nil
}

// fakeAliasRepo is an in-memory adapter.AliasRepository.
type fakeAliasRepo struct {
	aliases []*entity.PSPAlias
	fail    bool
}

func (f *fakeAliasRepo) Create(_ context.Context, alias *entity.PSPAlias) error {
	if f.fail {
		return errStorageDown
	}
	f.aliases = append(f.aliases, alias)
	return nil
}

func (f *fakeAliasRepo) Delete(_ context.Context, rawIdentifier string) error {
	for i, a := range f.aliases {
		if a.RawIdentifier == rawIdentifier {
			f.aliases = append(f.aliases[:i], f.aliases[i+1:]...)
			return nil
		}
	}
	return nil
}

func (f *fakeAliasRepo) FindAll(_ context.Context) ([]*entity.PSPAlias, error) {
	if f.fail {
		return nil, errStorageDown
	}
	return f.aliases, nil
}

// day builds a UTC midnight date for tests.
func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

// dec parses a decimal literal, panicking on malformed test data.
func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// depositTx builds a deposit feed record for tests.
func depositTx(psp string, date time.Time, amount string) *entity.PSPTransaction {
	return entity.NewPSPTransaction(psp, date, "DEPOSIT", dec(amount), nil, "TRY")
}

// withdrawalTx builds a withdrawal feed record for tests.
func withdrawalTx(psp string, date time.Time, amount string) *entity.PSPTransaction {
	return entity.NewPSPTransaction(psp, date, "WD", dec(amount), nil, "TRY")
}
