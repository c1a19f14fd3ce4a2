package dto

import (
	"github.com/psp-treasury/backend/internal/domain/entity"
)

// CreateAliasRequestDTO represents the request for POST /aliases.
type CreateAliasRequestDTO struct {
	RawIdentifier string `json:"raw_identifier" binding:"required"`
	CanonicalName string `json:"canonical_name" binding:"required"`
}

// AliasResponseDTO represents an alias mapping in responses.
type AliasResponseDTO struct {
	RawIdentifier string `json:"raw_identifier"`
	CanonicalName string `json:"canonical_name"`
}

// ListAliasesResponseDTO represents the response for GET /aliases.
type ListAliasesResponseDTO struct {
	Aliases []AliasResponseDTO `json:"aliases"`
}

// ToAliasResponseDTO converts a domain PSPAlias to its DTO.
func ToAliasResponseDTO(alias *entity.PSPAlias) AliasResponseDTO {
	return AliasResponseDTO{
		RawIdentifier: alias.RawIdentifier,
		CanonicalName: alias.CanonicalName,
	}
}
