package steps

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/cucumber/godog"
	"github.com/shopspring/decimal"
)

// registerLedgerSteps registers treasury domain setup and assertion steps.
func registerLedgerSteps(ctx *godog.ScenarioContext) {
	ctx.Step(`^the commission rate for "([^"]*)" is "([^"]*)" effective from "([^"]*)"$`, theCommissionRateIs)
	ctx.Step(`^the legacy rate for "([^"]*)" is "([^"]*)"$`, theLegacyRateIs)
	ctx.Step(`^an? "([^"]*)" override for "([^"]*)" on "([^"]*)" of "([^"]*)"$`, anOverrideFor)
	ctx.Step(`^the alias "([^"]*)" maps to "([^"]*)"$`, theAliasMapsTo)
	ctx.Step(`^the following transactions are imported:$`, theFollowingTransactionsAreImported)
	ctx.Step(`^the response should have (\d+) rows$`, theResponseShouldHaveRows)
	ctx.Step(`^the daily row for "([^"]*)" should have "([^"]*)" equal to "([^"]*)"$`, theDailyRowShouldHave)
}

func (tc *TestContext) seed(endpoint, method string, payload interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal seed payload: %w", err)
	}
	if err := tc.doRequest(method, endpoint, bytes.NewReader(body)); err != nil {
		return err
	}
	if tc.response.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("seed request %s %s failed with %d: %s", method, endpoint, tc.response.StatusCode, string(tc.responseBody))
	}
	return nil
}

func theCommissionRateIs(ctx context.Context, pspName, rate, effectiveFrom string) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	return tc.seed("/api/v1/rates", http.MethodPost, map[string]string{
		"psp_name":       pspName,
		"rate":           rate,
		"effective_from": effectiveFrom,
	})
}

func theLegacyRateIs(ctx context.Context, pspName, rate string) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	return tc.seed("/api/v1/rates/legacy", http.MethodPut, map[string]string{
		"psp_name": pspName,
		"rate":     rate,
	})
}

func anOverrideFor(ctx context.Context, kind, pspName, date, amount string) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	return tc.seed("/api/v1/overrides", http.MethodPut, map[string]string{
		"psp_name": pspName,
		"date":     date,
		"kind":     kind,
		"amount":   amount,
	})
}

func theAliasMapsTo(ctx context.Context, rawIdentifier, canonicalName string) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	return tc.seed("/api/v1/aliases", http.MethodPost, map[string]string{
		"raw_identifier": rawIdentifier,
		"canonical_name": canonicalName,
	})
}

func theFollowingTransactionsAreImported(ctx context.Context, table *godog.Table) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	if len(table.Rows) < 2 {
		return fmt.Errorf("transaction table needs a header row and at least one data row")
	}

	header := make([]string, len(table.Rows[0].Cells))
	for i, cell := range table.Rows[0].Cells {
		header[i] = cell.Value
	}

	transactions := make([]map[string]string, 0, len(table.Rows)-1)
	for _, row := range table.Rows[1:] {
		record := make(map[string]string, len(header))
		for i, cell := range row.Cells {
			if cell.Value != "" {
				record[header[i]] = cell.Value
			}
		}
		transactions = append(transactions, record)
	}

	return tc.seed("/api/v1/transactions/import", http.MethodPost, map[string]interface{}{
		"transactions": transactions,
	})
}

func (tc *TestContext) dailyRows() ([]map[string]interface{}, error) {
	var data struct {
		Rows []map[string]interface{} `json:"rows"`
	}
	if err := json.Unmarshal(tc.responseBody, &data); err != nil {
		return nil, fmt.Errorf("failed to parse response JSON: %w", err)
	}
	return data.Rows, nil
}

func theResponseShouldHaveRows(ctx context.Context, expected int) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	rows, err := tc.dailyRows()
	if err != nil {
		return err
	}
	if len(rows) != expected {
		return fmt.Errorf("expected %d rows, got %d. Body: %s", expected, len(rows), string(tc.responseBody))
	}
	return nil
}

func theDailyRowShouldHave(ctx context.Context, date, field, expected string) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	rows, err := tc.dailyRows()
	if err != nil {
		return err
	}
	for _, row := range rows {
		if row["date"] == date {
			value, ok := row[field]
			if !ok {
				return fmt.Errorf("field '%s' not found in row for %s", field, date)
			}
			return decimalFieldEquals(field, value, expected)
		}
	}
	return fmt.Errorf("no row found for date %s. Body: %s", date, string(tc.responseBody))
}

// decimalFieldEquals compares a JSON value against an expected amount
// numerically, so "950", "950.0" and "950.00" all match.
func decimalFieldEquals(field string, value interface{}, expected string) error {
	actual, err := decimal.NewFromString(fmt.Sprintf("%v", value))
	if err != nil {
		return fmt.Errorf("field '%s' value '%v' is not a number", field, value)
	}
	want, err := decimal.NewFromString(expected)
	if err != nil {
		return fmt.Errorf("expected value '%s' is not a number", expected)
	}
	if !actual.Equal(want) {
		return fmt.Errorf("field '%s' expected %s, got %s", field, want, actual)
	}
	return nil
}
