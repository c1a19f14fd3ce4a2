package controller

import (
	"errors"
	"net/http"
	"sort"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/psp-treasury/backend/internal/application/usecase/ledger"
	domainerror "github.com/psp-treasury/backend/internal/domain/error"
	"github.com/psp-treasury/backend/internal/integration/entrypoint/dto"
)

// LedgerController handles daily ledger computation endpoints.
type LedgerController struct {
	computeRangeUseCase   *ledger.ComputeRangeUseCase
	computeMonthlyUseCase *ledger.ComputeMonthlyUseCase
	reconcileBatchUseCase *ledger.ReconcileBatchUseCase
}

// NewLedgerController creates a new ledger controller instance.
func NewLedgerController(
	computeRangeUseCase *ledger.ComputeRangeUseCase,
	computeMonthlyUseCase *ledger.ComputeMonthlyUseCase,
	reconcileBatchUseCase *ledger.ReconcileBatchUseCase,
) *LedgerController {
	return &LedgerController{
		computeRangeUseCase:   computeRangeUseCase,
		computeMonthlyUseCase: computeMonthlyUseCase,
		reconcileBatchUseCase: reconcileBatchUseCase,
	}
}

// GetDaily handles GET /ledger/daily requests.
func (c *LedgerController) GetDaily(ctx *gin.Context) {
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

	output, err := c.computeRangeUseCase.Execute(ctx.Request.Context(), ledger.ComputeRangeInput{
		PSPName: pspName,
		Start:   start,
		End:     end,
	})
	if err != nil {
		c.handleLedgerError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ComputeRangeResponseDTO{
		Rows:     dto.ToDailyRowDTOs(output.Rows),
		Warnings: dto.ToWarningDTOs(output.Warnings),
	})
}

// GetMonthly handles GET /ledger/monthly requests.
func (c *LedgerController) GetMonthly(ctx *gin.Context) {
	pspName := ctx.Query("psp")
	if pspName == "" {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "psp query parameter is required"})
		return
	}
	year, err := strconv.Atoi(ctx.Query("year"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "year query parameter must be an integer"})
		return
	}
	month, err := strconv.Atoi(ctx.Query("month"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "month query parameter must be an integer"})
		return
	}
	includeDaily := ctx.Query("include_daily") == "true"

	output, err := c.computeMonthlyUseCase.Execute(ctx.Request.Context(), ledger.ComputeMonthlyInput{
		PSPName:      pspName,
		Year:         year,
		Month:        time.Month(month),
		IncludeDaily: includeDaily,
	})
	if err != nil {
		c.handleLedgerError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToMonthlySummaryResponseDTO(output.Summary, output.Warnings))
}

// ReconcileBatch handles POST /ledger/reconcile requests.
func (c *LedgerController) ReconcileBatch(ctx *gin.Context) {
	var request dto.ReconcileBatchRequestDTO
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid request body", Details: err.Error()})
		return
	}
	start, err := parseDate(request.Start)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}
	end, err := parseDate(request.End)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}

	output, err := c.reconcileBatchUseCase.Execute(ctx.Request.Context(), ledger.ReconcileBatchInput{
		PSPNames: request.PSPNames,
		Start:    start,
		End:      end,
		Workers:  request.Workers,
	})
	if err != nil {
		c.handleLedgerError(ctx, err)
		return
	}

	outcomes := make([]dto.PSPOutcomeDTO, 0, len(output.Outcomes))
	for _, outcome := range output.Outcomes {
		outcomeDTO := dto.PSPOutcomeDTO{
			PSPName:  outcome.PSPName,
			RowCount: len(outcome.Rows),
			Warnings: dto.ToWarningDTOs(outcome.Warnings),
		}
		if outcome.Err != nil {
			outcomeDTO.Error = outcome.Err.Error()
		}
		outcomes = append(outcomes, outcomeDTO)
	}
	sort.Slice(outcomes, func(i, j int) bool { return outcomes[i].PSPName < outcomes[j].PSPName })

	ctx.JSON(http.StatusOK, dto.ReconcileBatchResponseDTO{
		Outcomes:  outcomes,
		Succeeded: output.Succeeded,
		Failed:    output.Failed,
	})
}

// handleLedgerError maps ledger domain errors to HTTP status codes.
func (c *LedgerController) handleLedgerError(ctx *gin.Context, err error) {
	var ledgerErr *domainerror.LedgerError
	if errors.As(err, &ledgerErr) {
		status := http.StatusInternalServerError
		switch ledgerErr.Code {
		case domainerror.ErrCodeInvalidDateRange, domainerror.ErrCodeInvalidFeedRecord:
			status = http.StatusBadRequest
		case domainerror.ErrCodeUnknownPSP:
			status = http.StatusNotFound
		case domainerror.ErrCodeLedgerDependencyFailure, domainerror.ErrCodePartialPersistence:
			status = http.StatusServiceUnavailable
		}
		ctx.JSON(status, dto.ErrorResponse{
			Error: ledgerErr.Message,
			Code:  string(ledgerErr.Code),
		})
		return
	}

	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Internal server error"})
}
