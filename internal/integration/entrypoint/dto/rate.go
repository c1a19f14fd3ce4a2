package dto

import (
	"github.com/psp-treasury/backend/internal/domain/entity"
)

// CreateRateRequestDTO represents the request for POST /rates.
type CreateRateRequestDTO struct {
	PSPName        string  `json:"psp_name" binding:"required"`
	Rate           string  `json:"rate" binding:"required"`
	EffectiveFrom  string  `json:"effective_from" binding:"required"`
	EffectiveUntil *string `json:"effective_until"`
}

// UpdateRateRequestDTO represents the request for PATCH /rates/:id.
// Absent fields are left unchanged; clear_until makes the interval open-ended.
type UpdateRateRequestDTO struct {
	Rate           *string `json:"rate"`
	EffectiveFrom  *string `json:"effective_from"`
	EffectiveUntil *string `json:"effective_until"`
	ClearUntil     bool    `json:"clear_until"`
}

// RateResponseDTO represents an effective-dated rate in responses.
type RateResponseDTO struct {
	ID             string  `json:"id"`
	PSPName        string  `json:"psp_name"`
	Rate           string  `json:"rate"`
	EffectiveFrom  string  `json:"effective_from"`
	EffectiveUntil *string `json:"effective_until,omitempty"`
}

// SetLegacyRateRequestDTO represents the request for PUT /rates/legacy.
type SetLegacyRateRequestDTO struct {
	PSPName string `json:"psp_name" binding:"required"`
	Rate    string `json:"rate" binding:"required"`
}

// LegacyRateResponseDTO represents the static fallback rate in responses.
type LegacyRateResponseDTO struct {
	PSPName string `json:"psp_name"`
	Rate    string `json:"rate"`
}

// ListRatesResponseDTO represents the response for GET /rates.
type ListRatesResponseDTO struct {
	Rates      []RateResponseDTO      `json:"rates"`
	LegacyRate *LegacyRateResponseDTO `json:"legacy_rate,omitempty"`
}

// ToRateResponseDTO converts a domain CommissionRate to its DTO.
func ToRateResponseDTO(rate *entity.CommissionRate) RateResponseDTO {
	response := RateResponseDTO{
		ID:            rate.ID.String(),
		PSPName:       rate.PSPName,
		Rate:          rate.Rate.String(),
		EffectiveFrom: rate.EffectiveFrom.Format(DateLayout),
	}
	if rate.EffectiveUntil != nil {
		formatted := rate.EffectiveUntil.Format(DateLayout)
		response.EffectiveUntil = &formatted
	}
	return response
}

// ToLegacyRateResponseDTO converts a domain LegacyRate to its DTO.
func ToLegacyRateResponseDTO(rate *entity.LegacyRate) *LegacyRateResponseDTO {
	if rate == nil {
		return nil
	}
	return &LegacyRateResponseDTO{
		PSPName: rate.PSPName,
		Rate:    rate.Rate.String(),
	}
}
