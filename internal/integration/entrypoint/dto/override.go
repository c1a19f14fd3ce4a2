package dto

import (
	"github.com/psp-treasury/backend/internal/domain/entity"
)

// UpsertOverrideRequestDTO represents the request for PUT /overrides.
type UpsertOverrideRequestDTO struct {
	PSPName string `json:"psp_name" binding:"required"`
	Date    string `json:"date" binding:"required"`
	Kind    string `json:"kind" binding:"required"`
	Amount  string `json:"amount" binding:"required"`
}

// OverrideResponseDTO represents a stored override in responses.
type OverrideResponseDTO struct {
	PSPName string `json:"psp_name"`
	Date    string `json:"date"`
	Kind    string `json:"kind"`
	Amount  string `json:"amount"`
}

// ListOverridesResponseDTO represents the response for GET /overrides.
type ListOverridesResponseDTO struct {
	Overrides []OverrideResponseDTO `json:"overrides"`
}

// ToOverrideResponseDTO converts a domain Override to its DTO.
func ToOverrideResponseDTO(override *entity.Override) OverrideResponseDTO {
	return OverrideResponseDTO{
		PSPName: override.PSPName,
		Date:    override.Date.Format(DateLayout),
		Kind:    string(override.Kind),
		Amount:  override.Amount.String(),
	}
}
