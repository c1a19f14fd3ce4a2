package rate

import (
	"context"
	"errors"
	"fmt"

	"github.com/psp-treasury/backend/internal/application/adapter"
	"github.com/psp-treasury/backend/internal/domain/entity"
	domainerror "github.com/psp-treasury/backend/internal/domain/error"
)

// ListRatesInput represents the input for listing a PSP's rate schedule.
type ListRatesInput struct {
	PSPName string
}

// ListRatesOutput represents a PSP's full rate configuration.
type ListRatesOutput struct {
	Rates      []*entity.CommissionRate
	LegacyRate *entity.LegacyRate // nil when no fallback is configured
}

// ListRatesUseCase retrieves a PSP's effective-dated schedule and fallback.
type ListRatesUseCase struct {
	rateRepo adapter.RateRepository
}

// NewListRatesUseCase creates a new ListRatesUseCase instance.
func NewListRatesUseCase(rateRepo adapter.RateRepository) *ListRatesUseCase {
	return &ListRatesUseCase{
		rateRepo: rateRepo,
	}
}

// Execute lists the rate schedule for a PSP.
func (uc *ListRatesUseCase) Execute(ctx context.Context, input ListRatesInput) (*ListRatesOutput, error) {
	pspName := entity.NormalizePSPIdentifier(input.PSPName)

	rates, err := uc.rateRepo.FindByPSP(ctx, pspName)
	if err != nil {
		return nil, fmt.Errorf("failed to list rates: %w", err)
	}

	legacy, err := uc.rateRepo.FindLegacyRate(ctx, pspName)
	if err != nil && !errors.Is(err, domainerror.ErrRateNotFound) {
		return nil, fmt.Errorf("failed to load legacy rate: %w", err)
	}

	return &ListRatesOutput{
		Rates:      rates,
		LegacyRate: legacy,
	}, nil
}
