package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// PSPAlias maps a raw PSP account identifier to a canonical display name.
// Several raw identifiers may alias to one canonical PSP; their rows are
// merged before summarization.
type PSPAlias struct {
	ID            uuid.UUID
	RawIdentifier string
	CanonicalName string
	CreatedAt     time.Time
}

// NewPSPAlias creates a new PSPAlias entity with normalized identifiers.
func NewPSPAlias(rawIdentifier, canonicalName string) *PSPAlias {
	return &PSPAlias{
		ID:            uuid.New(),
		RawIdentifier: NormalizePSPIdentifier(rawIdentifier),
		CanonicalName: NormalizePSPIdentifier(canonicalName),
		CreatedAt:     time.Now().UTC(),
	}
}

// NormalizePSPIdentifier trims and upper-cases a PSP identifier so that
// lookups are insensitive to feed formatting.
func NormalizePSPIdentifier(identifier string) string {
	return strings.ToUpper(strings.TrimSpace(identifier))
}
