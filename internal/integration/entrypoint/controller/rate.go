package controller

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/psp-treasury/backend/internal/application/usecase/rate"
	domainerror "github.com/psp-treasury/backend/internal/domain/error"
	"github.com/psp-treasury/backend/internal/integration/entrypoint/dto"
)

// RateController handles commission rate administration endpoints.
type RateController struct {
	createRateUseCase    *rate.CreateRateUseCase
	updateRateUseCase    *rate.UpdateRateUseCase
	listRatesUseCase     *rate.ListRatesUseCase
	setLegacyRateUseCase *rate.SetLegacyRateUseCase
}

// NewRateController creates a new rate controller instance.
func NewRateController(
	createRateUseCase *rate.CreateRateUseCase,
	updateRateUseCase *rate.UpdateRateUseCase,
	listRatesUseCase *rate.ListRatesUseCase,
	setLegacyRateUseCase *rate.SetLegacyRateUseCase,
) *RateController {
	return &RateController{
		createRateUseCase:    createRateUseCase,
		updateRateUseCase:    updateRateUseCase,
		listRatesUseCase:     listRatesUseCase,
		setLegacyRateUseCase: setLegacyRateUseCase,
	}
}

// Create handles POST /rates requests.
func (c *RateController) Create(ctx *gin.Context) {
	var request dto.CreateRateRequestDTO
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid request body", Details: err.Error()})
		return
	}

	rateValue, err := decimal.NewFromString(request.Rate)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid rate " + request.Rate})
		return
	}
	effectiveFrom, err := parseDate(request.EffectiveFrom)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}
	var effectiveUntil *time.Time
	if request.EffectiveUntil != nil {
		parsed, err := parseDate(*request.EffectiveUntil)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
			return
		}
		effectiveUntil = &parsed
	}

	output, err := c.createRateUseCase.Execute(ctx.Request.Context(), rate.CreateRateInput{
		PSPName:        request.PSPName,
		Rate:           rateValue,
		EffectiveFrom:  effectiveFrom,
		EffectiveUntil: effectiveUntil,
	})
	if err != nil {
		c.handleRateError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToRateResponseDTO(output.Rate))
}

// Update handles PATCH /rates/:id requests.
func (c *RateController) Update(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid rate ID"})
		return
	}

	var request dto.UpdateRateRequestDTO
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid request body", Details: err.Error()})
		return
	}

	input := rate.UpdateRateInput{ID: id, ClearUntil: request.ClearUntil}
	if request.Rate != nil {
		rateValue, err := decimal.NewFromString(*request.Rate)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid rate " + *request.Rate})
			return
		}
		input.Rate = &rateValue
	}
	if request.EffectiveFrom != nil {
		parsed, err := parseDate(*request.EffectiveFrom)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
			return
		}
		input.EffectiveFrom = &parsed
	}
	if request.EffectiveUntil != nil {
		parsed, err := parseDate(*request.EffectiveUntil)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
			return
		}
		input.EffectiveUntil = &parsed
	}

	output, err := c.updateRateUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleRateError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToRateResponseDTO(output.Rate))
}

// List handles GET /rates requests.
func (c *RateController) List(ctx *gin.Context) {
	pspName := ctx.Query("psp")
	if pspName == "" {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "psp query parameter is required"})
		return
	}

	output, err := c.listRatesUseCase.Execute(ctx.Request.Context(), rate.ListRatesInput{PSPName: pspName})
	if err != nil {
		c.handleRateError(ctx, err)
		return
	}

	rates := make([]dto.RateResponseDTO, len(output.Rates))
	for i, record := range output.Rates {
		rates[i] = dto.ToRateResponseDTO(record)
	}
	ctx.JSON(http.StatusOK, dto.ListRatesResponseDTO{
		Rates:      rates,
		LegacyRate: dto.ToLegacyRateResponseDTO(output.LegacyRate),
	})
}

// SetLegacy handles PUT /rates/legacy requests.
func (c *RateController) SetLegacy(ctx *gin.Context) {
	var request dto.SetLegacyRateRequestDTO
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid request body", Details: err.Error()})
		return
	}

	rateValue, err := decimal.NewFromString(request.Rate)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid rate " + request.Rate})
		return
	}

	output, err := c.setLegacyRateUseCase.Execute(ctx.Request.Context(), rate.SetLegacyRateInput{
		PSPName: request.PSPName,
		Rate:    rateValue,
	})
	if err != nil {
		c.handleRateError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToLegacyRateResponseDTO(output.Rate))
}

// handleRateError maps rate domain errors to HTTP status codes.
func (c *RateController) handleRateError(ctx *gin.Context, err error) {
	var rateErr *domainerror.RateError
	if errors.As(err, &rateErr) {
		status := http.StatusInternalServerError
		switch rateErr.Code {
		case domainerror.ErrCodeRateOutOfBounds, domainerror.ErrCodeRateIntervalInverted:
			status = http.StatusBadRequest
		case domainerror.ErrCodeRateIntervalOverlap:
			status = http.StatusConflict
		case domainerror.ErrCodeRateNotFound:
			status = http.StatusNotFound
		case domainerror.ErrCodeRateStorageFailure:
			status = http.StatusServiceUnavailable
		}
		ctx.JSON(status, dto.ErrorResponse{Error: rateErr.Message, Code: string(rateErr.Code)})
		return
	}

	var overrideErr *domainerror.OverrideError
	if errors.As(err, &overrideErr) {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: overrideErr.Message, Code: string(overrideErr.Code)})
		return
	}

	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Internal server error"})
}
