package rate

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/psp-treasury/backend/internal/domain/entity"
	domainerror "github.com/psp-treasury/backend/internal/domain/error"
)

func TestSetLegacyRate_Upserts(t *testing.T) {
	repo := newFakeRateRepo()
	cache := newFakeRateCache()
	uc := NewSetLegacyRateUseCase(repo, NewResolver(repo, cache))

	if _, err := uc.Execute(context.Background(), SetLegacyRateInput{PSPName: "acme", Rate: dec("0.03")}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	output, err := uc.Execute(context.Background(), SetLegacyRateInput{PSPName: "ACME", Rate: dec("0.04")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !output.Rate.Rate.Equal(dec("0.04")) {
		t.Errorf("Rate = %s, want 0.04", output.Rate.Rate)
	}
	stored, err := repo.FindLegacyRate(context.Background(), "ACME")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !stored.Rate.Equal(dec("0.04")) {
		t.Errorf("stored rate = %s, want the replaced value 0.04", stored.Rate)
	}
	if len(cache.invalidated) != 2 {
		t.Errorf("expected cache invalidation per write, got %v", cache.invalidated)
	}
}

func TestSetLegacyRate_Validation(t *testing.T) {
	repo := newFakeRateRepo()
	uc := NewSetLegacyRateUseCase(repo, NewResolver(repo, newFakeRateCache()))

	if _, err := uc.Execute(context.Background(), SetLegacyRateInput{PSPName: " ", Rate: dec("0.03")}); !errors.Is(err, domainerror.ErrEmptyIdentifier) {
		t.Errorf("expected ErrEmptyIdentifier, got %v", err)
	}
	if _, err := uc.Execute(context.Background(), SetLegacyRateInput{PSPName: "ACME", Rate: dec("1.5")}); !errors.Is(err, domainerror.ErrRateOutOfBounds) {
		t.Errorf("expected ErrRateOutOfBounds, got %v", err)
	}
}

func TestListRates_ScheduleAndFallback(t *testing.T) {
	repo := newFakeRateRepo()
	repo.rates = []*entity.CommissionRate{
		entity.NewCommissionRate("ACME", dec("0.05"), day(2025, time.January, 1), until(day(2025, time.June, 30))),
		entity.NewCommissionRate("ACME", dec("0.07"), day(2025, time.July, 1), nil),
		entity.NewCommissionRate("OTHER", dec("0.01"), day(2025, time.January, 1), nil),
	}
	repo.legacy["ACME"] = &entity.LegacyRate{PSPName: "ACME", Rate: dec("0.03")}
	uc := NewListRatesUseCase(repo)

	output, err := uc.Execute(context.Background(), ListRatesInput{PSPName: "acme"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(output.Rates) != 2 {
		t.Errorf("expected 2 schedule records, got %d", len(output.Rates))
	}
	if output.LegacyRate == nil || !output.LegacyRate.Rate.Equal(dec("0.03")) {
		t.Errorf("LegacyRate = %v, want 0.03", output.LegacyRate)
	}
}

func TestListRates_NoLegacyConfigured(t *testing.T) {
	uc := NewListRatesUseCase(newFakeRateRepo())

	output, err := uc.Execute(context.Background(), ListRatesInput{PSPName: "ACME"})
	if err != nil {
		t.Fatalf("a missing legacy rate is not an error: %v", err)
	}
	if output.LegacyRate != nil {
		t.Errorf("LegacyRate = %v, want nil", output.LegacyRate)
	}
}
