package override

import (
	"context"
	"fmt"
	"time"

	"github.com/psp-treasury/backend/internal/application/adapter"
	"github.com/psp-treasury/backend/internal/domain/entity"
	domainerror "github.com/psp-treasury/backend/internal/domain/error"
)

// ListOverridesInput represents the input for listing a PSP's overrides.
type ListOverridesInput struct {
	PSPName string
	Kind    entity.OverrideKind
	Start   time.Time
	End     time.Time
}

// ListOverridesOutput represents the output of listing overrides.
type ListOverridesOutput struct {
	Overrides []*entity.Override
}

// ListOverridesUseCase retrieves overrides of one kind for a (PSP, range).
type ListOverridesUseCase struct {
	overrideRepo adapter.OverrideRepository
}

// NewListOverridesUseCase creates a new ListOverridesUseCase instance.
func NewListOverridesUseCase(overrideRepo adapter.OverrideRepository) *ListOverridesUseCase {
	return &ListOverridesUseCase{
		overrideRepo: overrideRepo,
	}
}

// Execute lists overrides.
func (uc *ListOverridesUseCase) Execute(ctx context.Context, input ListOverridesInput) (*ListOverridesOutput, error) {
	if !input.Kind.IsValid() {
		return nil, domainerror.NewOverrideError(
			domainerror.ErrCodeInvalidOverrideKind,
			fmt.Sprintf("unknown override kind %q", input.Kind),
			domainerror.ErrInvalidOverrideKind,
		)
	}

	overrides, err := uc.overrideRepo.FindByPSPAndRange(
		ctx,
		entity.NormalizePSPIdentifier(input.PSPName),
		input.Kind,
		input.Start,
		input.End,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list overrides: %w", err)
	}

	return &ListOverridesOutput{Overrides: overrides}, nil
}
