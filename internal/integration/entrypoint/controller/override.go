package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/psp-treasury/backend/internal/application/usecase/override"
	"github.com/psp-treasury/backend/internal/domain/entity"
	domainerror "github.com/psp-treasury/backend/internal/domain/error"
	"github.com/psp-treasury/backend/internal/integration/entrypoint/dto"
)

// OverrideController handles manual correction endpoints.
type OverrideController struct {
	upsertOverrideUseCase *override.UpsertOverrideUseCase
	listOverridesUseCase  *override.ListOverridesUseCase
	deleteOverrideUseCase *override.DeleteOverrideUseCase
}

// NewOverrideController creates a new override controller instance.
func NewOverrideController(
	upsertOverrideUseCase *override.UpsertOverrideUseCase,
	listOverridesUseCase *override.ListOverridesUseCase,
	deleteOverrideUseCase *override.DeleteOverrideUseCase,
) *OverrideController {
	return &OverrideController{
		upsertOverrideUseCase: upsertOverrideUseCase,
		listOverridesUseCase:  listOverridesUseCase,
		deleteOverrideUseCase: deleteOverrideUseCase,
	}
}

// Upsert handles PUT /overrides requests.
func (c *OverrideController) Upsert(ctx *gin.Context) {
	var request dto.UpsertOverrideRequestDTO
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid request body", Details: err.Error()})
		return
	}

	date, err := parseDate(request.Date)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}
	amount, err := decimal.NewFromString(request.Amount)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid amount " + request.Amount})
		return
	}

	output, err := c.upsertOverrideUseCase.Execute(ctx.Request.Context(), override.UpsertOverrideInput{
		PSPName: request.PSPName,
		Date:    date,
		Kind:    entity.OverrideKind(request.Kind),
		Amount:  amount,
	})
	if err != nil {
		c.handleOverrideError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToOverrideResponseDTO(output.Override))
}

// List handles GET /overrides requests.
func (c *OverrideController) List(ctx *gin.Context) {
	pspName := ctx.Query("psp")
	if pspName == "" {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "psp query parameter is required"})
		return
	}
	start, err := parseDate(ctx.Query("start"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}
	end, err := parseDate(ctx.Query("end"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}

	output, err := c.listOverridesUseCase.Execute(ctx.Request.Context(), override.ListOverridesInput{
		PSPName: pspName,
		Kind:    entity.OverrideKind(ctx.Query("kind")),
		Start:   start,
		End:     end,
	})
	if err != nil {
		c.handleOverrideError(ctx, err)
		return
	}

	overrides := make([]dto.OverrideResponseDTO, len(output.Overrides))
	for i, record := range output.Overrides {
		overrides[i] = dto.ToOverrideResponseDTO(record)
	}
	ctx.JSON(http.StatusOK, dto.ListOverridesResponseDTO{Overrides: overrides})
}

// Delete handles DELETE /overrides requests.
func (c *OverrideController) Delete(ctx *gin.Context) {
	pspName := ctx.Query("psp")
	if pspName == "" {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "psp query parameter is required"})
		return
	}
	date, err := parseDate(ctx.Query("date"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}

	err = c.deleteOverrideUseCase.Execute(ctx.Request.Context(), override.DeleteOverrideInput{
		PSPName: pspName,
		Date:    date,
		Kind:    entity.OverrideKind(ctx.Query("kind")),
	})
	if err != nil {
		c.handleOverrideError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// handleOverrideError maps override domain errors to HTTP status codes.
func (c *OverrideController) handleOverrideError(ctx *gin.Context, err error) {
	var overrideErr *domainerror.OverrideError
	if errors.As(err, &overrideErr) {
		status := http.StatusBadRequest
		if overrideErr.Code == domainerror.ErrCodeOverrideNotFound {
			status = http.StatusNotFound
		}
		ctx.JSON(status, dto.ErrorResponse{Error: overrideErr.Message, Code: string(overrideErr.Code)})
		return
	}

	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Internal server error"})
}
