// Package override contains manual correction use cases.
package override

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/psp-treasury/backend/internal/domain/entity"
	domainerror "github.com/psp-treasury/backend/internal/domain/error"
)

var errStorageDown = errors.New("storage unreachable")

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
	if f.fail {
		return errStorageDown
	}
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
		if o.PSPName != pspName || o.Kind != kind || o.Date.Before(start) || o.Date.After(end) {
			continue
		}
		result = append(result, o)
	}
	return result, nil
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestUpsertOverride_Success(t *testing.T) {
	repo := &fakeOverrideRepo{}
	uc := NewUpsertOverrideUseCase(repo)

	output, err := uc.Execute(context.Background(), UpsertOverrideInput{
		PSPName: " acme ",
		Date:    time.Date(2025, time.January, 5, 14, 30, 0, 0, time.UTC),
		Kind:    entity.OverrideKindAllocation,
		Amount:  dec("250"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if output.Override.PSPName != "ACME" {
		t.Errorf("PSPName = %q, want ACME (normalized)", output.Override.PSPName)
	}
	// The clock component is discarded; overrides are keyed by calendar day.
	want := time.Date(2025, time.January, 5, 0, 0, 0, 0, time.UTC)
	if !output.Override.Date.Equal(want) {
		t.Errorf("Date = %s, want %s", output.Override.Date, want)
	}
	if len(repo.overrides) != 1 {
		t.Fatalf("expected 1 stored override, got %d", len(repo.overrides))
	}
}

func TestUpsertOverride_ReplacesSameKey(t *testing.T) {
	repo := &fakeOverrideRepo{}
	uc := NewUpsertOverrideUseCase(repo)
	input := UpsertOverrideInput{
		PSPName: "ACME",
		Date:    time.Date(2025, time.January, 5, 0, 0, 0, 0, time.UTC),
		Kind:    entity.OverrideKindKasaTop,
		Amount:  dec("100"),
	}

	if _, err := uc.Execute(context.Background(), input); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	input.Amount = dec("175")
	if _, err := uc.Execute(context.Background(), input); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(repo.overrides) != 1 {
		t.Fatalf("expected the second upsert to replace, got %d records", len(repo.overrides))
	}
	if !repo.overrides[0].Amount.Equal(dec("175")) {
		t.Errorf("Amount = %s, want 175", repo.overrides[0].Amount)
	}
}

func TestUpsertOverride_Validation(t *testing.T) {
	uc := NewUpsertOverrideUseCase(&fakeOverrideRepo{})
	valid := UpsertOverrideInput{
		PSPName: "ACME",
		Date:    time.Date(2025, time.January, 5, 0, 0, 0, 0, time.UTC),
		Kind:    entity.OverrideKindDevir,
		Amount:  dec("100"),
	}

	cases := []struct {
		name   string
		mutate func(*UpsertOverrideInput)
		want   error
	}{
		{"blank psp", func(i *UpsertOverrideInput) { i.PSPName = "  " }, domainerror.ErrEmptyIdentifier},
		{"unknown kind", func(i *UpsertOverrideInput) { i.Kind = "bonus" }, domainerror.ErrInvalidOverrideKind},
		{"amount too large", func(i *UpsertOverrideInput) { i.Amount = dec("20000000000000") }, domainerror.ErrInvalidOverrideAmount},
		{"amount too negative", func(i *UpsertOverrideInput) { i.Amount = dec("-20000000000000") }, domainerror.ErrInvalidOverrideAmount},
		{"date before window", func(i *UpsertOverrideInput) { i.Date = time.Date(1999, 12, 31, 0, 0, 0, 0, time.UTC) }, domainerror.ErrInvalidOverrideDate},
		{"date after window", func(i *UpsertOverrideInput) { i.Date = time.Date(2100, 1, 2, 0, 0, 0, 0, time.UTC) }, domainerror.ErrInvalidOverrideDate},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			input := valid
			tc.mutate(&input)
			_, err := uc.Execute(context.Background(), input)
			if !errors.Is(err, tc.want) {
				t.Errorf("expected %v, got %v", tc.want, err)
			}
		})
	}

	// Negative amounts within the magnitude bound are legitimate corrections.
	input := valid
	input.Amount = dec("-500")
	if _, err := uc.Execute(context.Background(), input); err != nil {
		t.Errorf("negative amount: unexpected error: %v", err)
	}
}

func TestListOverrides_FiltersByKindAndRange(t *testing.T) {
	repo := &fakeOverrideRepo{}
	jan5 := time.Date(2025, time.January, 5, 0, 0, 0, 0, time.UTC)
	jan10 := time.Date(2025, time.January, 10, 0, 0, 0, 0, time.UTC)
	feb1 := time.Date(2025, time.February, 1, 0, 0, 0, 0, time.UTC)
	repo.overrides = []*entity.Override{
		entity.NewOverride("ACME", jan5, entity.OverrideKindAllocation, dec("10")),
		entity.NewOverride("ACME", jan10, entity.OverrideKindKasaTop, dec("20")),
		entity.NewOverride("ACME", feb1, entity.OverrideKindAllocation, dec("30")),
		entity.NewOverride("OTHER", jan5, entity.OverrideKindAllocation, dec("40")),
	}
	uc := NewListOverridesUseCase(repo)

	output, err := uc.Execute(context.Background(), ListOverridesInput{
		PSPName: "acme",
		Kind:    entity.OverrideKindAllocation,
		Start:   time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC),
		End:     time.Date(2025, time.January, 31, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(output.Overrides) != 1 {
		t.Fatalf("expected 1 override, got %d", len(output.Overrides))
	}
	if !output.Overrides[0].Amount.Equal(dec("10")) {
		t.Errorf("Amount = %s, want 10", output.Overrides[0].Amount)
	}
}

func TestListOverrides_RejectsUnknownKind(t *testing.T) {
	uc := NewListOverridesUseCase(&fakeOverrideRepo{})

	_, err := uc.Execute(context.Background(), ListOverridesInput{PSPName: "ACME", Kind: "bonus"})
	if !errors.Is(err, domainerror.ErrInvalidOverrideKind) {
		t.Errorf("expected ErrInvalidOverrideKind, got %v", err)
	}
}

func TestDeleteOverride(t *testing.T) {
	repo := &fakeOverrideRepo{}
	jan5 := time.Date(2025, time.January, 5, 0, 0, 0, 0, time.UTC)
	repo.overrides = []*entity.Override{
		entity.NewOverride("ACME", jan5, entity.OverrideKindAllocation, dec("10")),
	}
	uc := NewDeleteOverrideUseCase(repo)

	err := uc.Execute(context.Background(), DeleteOverrideInput{
		PSPName: "acme",
		Date:    jan5,
		Kind:    entity.OverrideKindAllocation,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(repo.overrides) != 0 {
		t.Errorf("expected the override to be removed, %d remain", len(repo.overrides))
	}

	if err := uc.Execute(context.Background(), DeleteOverrideInput{PSPName: "ACME", Date: jan5, Kind: "bonus"}); !errors.Is(err, domainerror.ErrInvalidOverrideKind) {
		t.Errorf("expected ErrInvalidOverrideKind, got %v", err)
	}
}
