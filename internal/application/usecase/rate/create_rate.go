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

// CreateRateInput represents the input for creating an effective-dated rate.
type CreateRateInput struct {
	PSPName        string
	Rate           decimal.Decimal
	EffectiveFrom  time.Time
	EffectiveUntil *time.Time // nil means open-ended
}

// CreateRateOutput represents the output of rate creation.
type CreateRateOutput struct {
	Rate *entity.CommissionRate
}

// CreateRateUseCase handles creation of effective-dated commission rates.
type CreateRateUseCase struct {
	rateRepo adapter.RateRepository
	resolver *Resolver
}

// NewCreateRateUseCase creates a new CreateRateUseCase instance.
func NewCreateRateUseCase(rateRepo adapter.RateRepository, resolver *Resolver) *CreateRateUseCase {
	return &CreateRateUseCase{
		rateRepo: rateRepo,
		resolver: resolver,
	}
}

// Execute performs the rate creation. Intervals for one PSP must not overlap:
// at most one record may be active for any date.
func (uc *CreateRateUseCase) Execute(ctx context.Context, input CreateRateInput) (*CreateRateOutput, error) {
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

	if input.EffectiveUntil != nil && input.EffectiveUntil.Before(input.EffectiveFrom) {
		return nil, domainerror.NewRateError(
			domainerror.ErrCodeRateIntervalInverted,
			"effective_until must not precede effective_from",
			domainerror.ErrRateIntervalInverted,
		)
	}

	candidate := entity.NewCommissionRate(pspName, input.Rate, input.EffectiveFrom, input.EffectiveUntil)

	existing, err := uc.rateRepo.FindByPSP(ctx, pspName)
	if err != nil {
		return nil, fmt.Errorf("failed to load existing rates: %w", err)
	}
	for _, record := range existing {
		if candidate.Overlaps(record) {
			return nil, domainerror.NewRateError(
				domainerror.ErrCodeRateIntervalOverlap,
				fmt.Sprintf("interval overlaps rate effective from %s", record.EffectiveFrom.Format("2006-01-02")),
				domainerror.ErrRateIntervalOverlap,
			)
		}
	}

	if err := uc.rateRepo.Create(ctx, candidate); err != nil {
		return nil, fmt.Errorf("failed to create rate: %w", err)
	}

	if err := uc.resolver.InvalidateCache(ctx, pspName); err != nil {
		return nil, fmt.Errorf("failed to invalidate rate cache: %w", err)
	}

	return &CreateRateOutput{Rate: candidate}, nil
}

// validateRateBounds checks that a commission rate lies in [0, 1].
func validateRateBounds(rate decimal.Decimal) error {
	if rate.IsNegative() || rate.GreaterThan(decimal.NewFromInt(1)) {
		return domainerror.NewRateError(
			domainerror.ErrCodeRateOutOfBounds,
			"commission rate must be between 0 and 1",
			domainerror.ErrRateOutOfBounds,
		)
	}
	return nil
}
