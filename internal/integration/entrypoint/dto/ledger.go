package dto

import (
	"github.com/psp-treasury/backend/internal/domain/entity"
	"github.com/psp-treasury/backend/internal/domain/valueobject"
)

// DailyRowDTO represents one computed ledger row. Monetary values are
// decimal strings to avoid float rounding on the wire.
type DailyRowDTO struct {
	PSPName          string `json:"psp_name"`
	Date             string `json:"date"`
	Deposits         string `json:"deposits"`
	Withdrawals      string `json:"withdrawals"`
	Total            string `json:"total"`
	Commission       string `json:"commission"`
	Net              string `json:"net"`
	Allocation       string `json:"allocation"`
	DevirIn          string `json:"devir_in"`
	KasaTop          string `json:"kasa_top"`
	TransactionCount int    `json:"transaction_count"`
	IsLastDayOfMonth bool   `json:"is_last_day_of_month"`
}

// WarningDTO represents a non-fatal computation warning.
type WarningDTO struct {
	Kind    string `json:"kind"`
	PSPName string `json:"psp_name"`
	Date    string `json:"date"`
	Message string `json:"message"`
}

// ComputeRangeResponseDTO represents the response for GET /ledger/daily.
type ComputeRangeResponseDTO struct {
	Rows     []DailyRowDTO `json:"rows"`
	Warnings []WarningDTO  `json:"warnings,omitempty"`
}

// MonthlySummaryResponseDTO represents the response for GET /ledger/monthly.
type MonthlySummaryResponseDTO struct {
	PSPName          string        `json:"psp_name"`
	Year             int           `json:"year"`
	Month            int           `json:"month"`
	OpeningDevir     string        `json:"opening_devir"`
	ClosingDevir     string        `json:"closing_devir"`
	TotalDeposits    string        `json:"total_deposits"`
	TotalWithdrawals string        `json:"total_withdrawals"`
	TotalCommission  string        `json:"total_commission"`
	TotalNet         string        `json:"total_net"`
	TotalAllocation  string        `json:"total_allocation"`
	DailyRows        []DailyRowDTO `json:"daily_rows,omitempty"`
	Warnings         []WarningDTO  `json:"warnings,omitempty"`
}

// ReconcileBatchRequestDTO represents the request for POST /ledger/reconcile.
type ReconcileBatchRequestDTO struct {
	PSPNames []string `json:"psp_names"`
	Start    string   `json:"start" binding:"required"`
	End      string   `json:"end" binding:"required"`
	Workers  int      `json:"workers"`
}

// PSPOutcomeDTO represents one PSP's result in a batch run.
type PSPOutcomeDTO struct {
	PSPName  string       `json:"psp_name"`
	RowCount int          `json:"row_count"`
	Warnings []WarningDTO `json:"warnings,omitempty"`
	Error    string       `json:"error,omitempty"`
}

// ReconcileBatchResponseDTO represents the response for POST /ledger/reconcile.
type ReconcileBatchResponseDTO struct {
	Outcomes  []PSPOutcomeDTO `json:"outcomes"`
	Succeeded int             `json:"succeeded"`
	Failed    int             `json:"failed"`
}

// FeedRecordDTO represents one raw feed record in an import request.
type FeedRecordDTO struct {
	PSPIdentifier    string  `json:"psp_identifier" binding:"required"`
	Date             string  `json:"date" binding:"required"`
	Category         string  `json:"category"`
	Amount           string  `json:"amount" binding:"required"`
	SettlementAmount *string `json:"settlement_amount"`
	Currency         string  `json:"currency"`
}

// ImportTransactionsRequestDTO represents the request for POST /transactions/import.
type ImportTransactionsRequestDTO struct {
	Transactions []FeedRecordDTO `json:"transactions" binding:"required"`
}

// ImportTransactionsResponseDTO represents the response for POST /transactions/import.
type ImportTransactionsResponseDTO struct {
	Imported int `json:"imported"`
}

// ToDailyRowDTO converts a domain ledger row to its DTO.
func ToDailyRowDTO(row *entity.DailyLedgerRow) DailyRowDTO {
	return DailyRowDTO{
		PSPName:          row.PSPName,
		Date:             row.Date.Format(DateLayout),
		Deposits:         row.Deposits.String(),
		Withdrawals:      row.Withdrawals.String(),
		Total:            row.Total.String(),
		Commission:       row.Commission.String(),
		Net:              row.Net.String(),
		Allocation:       row.Allocation.String(),
		DevirIn:          row.DevirIn.String(),
		KasaTop:          row.KasaTop.String(),
		TransactionCount: row.TransactionCount,
		IsLastDayOfMonth: row.IsLastDayOfMonth,
	}
}

// ToDailyRowDTOs converts a slice of domain ledger rows.
func ToDailyRowDTOs(rows []*entity.DailyLedgerRow) []DailyRowDTO {
	result := make([]DailyRowDTO, len(rows))
	for i, row := range rows {
		result[i] = ToDailyRowDTO(row)
	}
	return result
}

// ToWarningDTO converts a domain warning to its DTO.
func ToWarningDTO(warning valueobject.Warning) WarningDTO {
	return WarningDTO{
		Kind:    string(warning.Kind),
		PSPName: warning.PSPName,
		Date:    warning.Date.Format(DateLayout),
		Message: warning.Message,
	}
}

// ToWarningDTOs converts a slice of domain warnings.
func ToWarningDTOs(warnings []valueobject.Warning) []WarningDTO {
	if len(warnings) == 0 {
		return nil
	}
	result := make([]WarningDTO, len(warnings))
	for i, warning := range warnings {
		result[i] = ToWarningDTO(warning)
	}
	return result
}

// ToMonthlySummaryResponseDTO converts a domain monthly summary to its DTO.
func ToMonthlySummaryResponseDTO(summary *entity.MonthlySummary, warnings []valueobject.Warning) MonthlySummaryResponseDTO {
	response := MonthlySummaryResponseDTO{
		PSPName:          summary.PSPName,
		Year:             summary.Year,
		Month:            int(summary.Month),
		OpeningDevir:     summary.OpeningDevir.String(),
		ClosingDevir:     summary.ClosingDevir.String(),
		TotalDeposits:    summary.TotalDeposits.String(),
		TotalWithdrawals: summary.TotalWithdrawals.String(),
		TotalCommission:  summary.TotalCommission.String(),
		TotalNet:         summary.TotalNet.String(),
		TotalAllocation:  summary.TotalAllocation.String(),
		Warnings:         ToWarningDTOs(warnings),
	}
	if summary.DailyRows != nil {
		response.DailyRows = ToDailyRowDTOs(summary.DailyRows)
	}
	return response
}
