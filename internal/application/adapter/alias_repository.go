package adapter

import (
	"context"

	"github.com/psp-treasury/backend/internal/domain/entity"
)

// AliasRepository defines the interface for canonical PSP alias persistence.
type AliasRepository interface {
	// Create persists a new alias mapping.
	// Returns domain ErrAliasAlreadyExists when the raw identifier is taken.
	Create(ctx context.Context, alias *entity.PSPAlias) error

	// Delete removes the alias for a raw identifier.
	// Returns domain ErrAliasNotFound when nothing was stored.
	Delete(ctx context.Context, rawIdentifier string) error

	// FindAll retrieves every alias mapping.
	FindAll(ctx context.Context) ([]*entity.PSPAlias, error)
}
