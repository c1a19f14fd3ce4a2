package alias

import (
	"context"
	"fmt"

	"github.com/psp-treasury/backend/internal/application/adapter"
	"github.com/psp-treasury/backend/internal/domain/entity"
)

// ListAliasesOutput represents the output of listing alias mappings.
type ListAliasesOutput struct {
	Aliases []*entity.PSPAlias
}

// ListAliasesUseCase retrieves every alias mapping.
type ListAliasesUseCase struct {
	aliasRepo adapter.AliasRepository
}

// NewListAliasesUseCase creates a new ListAliasesUseCase instance.
func NewListAliasesUseCase(aliasRepo adapter.AliasRepository) *ListAliasesUseCase {
	return &ListAliasesUseCase{
		aliasRepo: aliasRepo,
	}
}

// Execute lists all aliases.
func (uc *ListAliasesUseCase) Execute(ctx context.Context) (*ListAliasesOutput, error) {
	aliases, err := uc.aliasRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list aliases: %w", err)
	}
	return &ListAliasesOutput{Aliases: aliases}, nil
}
