package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/psp-treasury/backend/internal/application/usecase/ledger"
	"github.com/psp-treasury/backend/internal/integration/entrypoint/dto"
)

// TransactionController handles transaction feed endpoints.
type TransactionController struct {
	importUseCase *ledger.ImportTransactionsUseCase
	ledgerErrors  *LedgerController
}

// NewTransactionController creates a new transaction controller instance.
func NewTransactionController(importUseCase *ledger.ImportTransactionsUseCase, ledgerController *LedgerController) *TransactionController {
	return &TransactionController{
		importUseCase: importUseCase,
		ledgerErrors:  ledgerController,
	}
}

// Import handles POST /transactions/import requests.
func (c *TransactionController) Import(ctx *gin.Context) {
	var request dto.ImportTransactionsRequestDTO
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid request body", Details: err.Error()})
		return
	}

	records := make([]ledger.FeedRecord, 0, len(request.Transactions))
	for _, item := range request.Transactions {
		date, err := parseDate(item.Date)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
			return
		}
		amount, err := decimal.NewFromString(item.Amount)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid amount " + item.Amount})
			return
		}

		record := ledger.FeedRecord{
			PSPIdentifier: item.PSPIdentifier,
			Date:          date,
			Category:      item.Category,
			Amount:        amount,
			Currency:      item.Currency,
		}
		if item.SettlementAmount != nil {
			settlement, err := decimal.NewFromString(*item.SettlementAmount)
			if err != nil {
				ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid settlement_amount " + *item.SettlementAmount})
				return
			}
			record.SettlementAmount = &settlement
		}
		records = append(records, record)
	}

	output, err := c.importUseCase.Execute(ctx.Request.Context(), ledger.ImportTransactionsInput{Records: records})
	if err != nil {
		c.ledgerErrors.handleLedgerError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ImportTransactionsResponseDTO{Imported: output.Imported})
}
