package override

import (
	"context"
	"fmt"
	"time"

	"github.com/psp-treasury/backend/internal/application/adapter"
	"github.com/psp-treasury/backend/internal/domain/entity"
	domainerror "github.com/psp-treasury/backend/internal/domain/error"
	"github.com/psp-treasury/backend/internal/domain/valueobject"
)

// DeleteOverrideInput represents the input for removing a manual correction.
type DeleteOverrideInput struct {
	PSPName string
	Date    time.Time
	Kind    entity.OverrideKind
}

// DeleteOverrideUseCase removes a stored override.
type DeleteOverrideUseCase struct {
	overrideRepo adapter.OverrideRepository
}

// NewDeleteOverrideUseCase creates a new DeleteOverrideUseCase instance.
func NewDeleteOverrideUseCase(overrideRepo adapter.OverrideRepository) *DeleteOverrideUseCase {
	return &DeleteOverrideUseCase{
		overrideRepo: overrideRepo,
	}
}

// Execute performs the override deletion.
func (uc *DeleteOverrideUseCase) Execute(ctx context.Context, input DeleteOverrideInput) error {
	if !input.Kind.IsValid() {
		return domainerror.NewOverrideError(
			domainerror.ErrCodeInvalidOverrideKind,
			fmt.Sprintf("unknown override kind %q", input.Kind),
			domainerror.ErrInvalidOverrideKind,
		)
	}

	day := valueobject.DayKeyOf(input.Date)
	if err := uc.overrideRepo.Delete(ctx, entity.NormalizePSPIdentifier(input.PSPName), day.Time(), input.Kind); err != nil {
		return err
	}
	return nil
}
