package rate

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/psp-treasury/backend/internal/application/adapter"
	"github.com/psp-treasury/backend/internal/domain/entity"
	domainerror "github.com/psp-treasury/backend/internal/domain/error"
)

// SetLegacyRateInput represents the input for setting a PSP's static fallback rate.
type SetLegacyRateInput struct {
	PSPName string
	Rate    decimal.Decimal
}

// SetLegacyRateOutput represents the output of a legacy rate upsert.
type SetLegacyRateOutput struct {
	Rate *entity.LegacyRate
}

// SetLegacyRateUseCase upserts the static fallback rate for a PSP.
type SetLegacyRateUseCase struct {
	rateRepo adapter.RateRepository
	resolver *Resolver
}

// NewSetLegacyRateUseCase creates a new SetLegacyRateUseCase instance.
func NewSetLegacyRateUseCase(rateRepo adapter.RateRepository, resolver *Resolver) *SetLegacyRateUseCase {
	return &SetLegacyRateUseCase{
		rateRepo: rateRepo,
		resolver: resolver,
	}
}

// Execute upserts the legacy rate and invalidates the PSP's cache entries.
func (uc *SetLegacyRateUseCase) Execute(ctx context.Context, input SetLegacyRateInput) (*SetLegacyRateOutput, error) {
	pspName := entity.NormalizePSPIdentifier(input.PSPName)
	if pspName == "" {
		return nil, domainerror.NewOverrideError(
			domainerror.ErrCodeEmptyIdentifier,
			"PSP name cannot be empty",
			domainerror.ErrEmptyIdentifier,
		)
	}

	if err := validateRateBounds(input.Rate); err != nil {
		return nil, err
	}

	legacy := &entity.LegacyRate{
		PSPName:   pspName,
		Rate:      input.Rate,
		UpdatedAt: time.Now().UTC(),
	}
	if err := uc.rateRepo.UpsertLegacyRate(ctx, legacy); err != nil {
		return nil, fmt.Errorf("failed to upsert legacy rate: %w", err)
	}

	if err := uc.resolver.InvalidateCache(ctx, pspName); err != nil {
		return nil, fmt.Errorf("failed to invalidate rate cache: %w", err)
	}

	return &SetLegacyRateOutput{Rate: legacy}, nil
}
