// Package alias contains canonical PSP alias use cases.
package alias

import (
	"context"
	"fmt"

	"github.com/psp-treasury/backend/internal/application/adapter"
	"github.com/psp-treasury/backend/internal/domain/entity"
)

// Table is an immutable snapshot of the alias map, built once per
// computation batch and shared read-only across workers.
type Table struct {
	canonicalByRaw map[string]string
	rawByCanonical map[string][]string
}

// Canonical resolves a raw identifier to its canonical PSP name. Unmapped
// identifiers are their own canonical name.
func (t *Table) Canonical(rawIdentifier string) string {
	raw := entity.NormalizePSPIdentifier(rawIdentifier)
	if canonical, ok := t.canonicalByRaw[raw]; ok {
		return canonical
	}
	return raw
}

// RawIdentifiers returns every raw identifier aliased to a canonical PSP,
// always including the canonical name itself so that feeds already keyed by
// the display name are picked up.
func (t *Table) RawIdentifiers(canonicalName string) []string {
	canonical := entity.NormalizePSPIdentifier(canonicalName)
	identifiers := []string{canonical}
	for _, raw := range t.rawByCanonical[canonical] {
		if raw != canonical {
			identifiers = append(identifiers, raw)
		}
	}
	return identifiers
}

// Resolver loads the alias table from storage.
type Resolver struct {
	aliasRepo adapter.AliasRepository
}

// NewResolver creates a new Resolver instance.
func NewResolver(aliasRepo adapter.AliasRepository) *Resolver {
	return &Resolver{
		aliasRepo: aliasRepo,
	}
}

// Load builds a snapshot of the current alias map.
func (r *Resolver) Load(ctx context.Context) (*Table, error) {
	aliases, err := r.aliasRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load PSP aliases: %w", err)
	}

	table := &Table{
		canonicalByRaw: make(map[string]string, len(aliases)),
		rawByCanonical: make(map[string][]string),
	}
	for _, a := range aliases {
		table.canonicalByRaw[a.RawIdentifier] = a.CanonicalName
		table.rawByCanonical[a.CanonicalName] = append(table.rawByCanonical[a.CanonicalName], a.RawIdentifier)
	}
	return table, nil
}
