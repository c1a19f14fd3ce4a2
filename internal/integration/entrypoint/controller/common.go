package controller

import (
	"fmt"
	"time"

	"github.com/psp-treasury/backend/internal/integration/entrypoint/dto"
)

// parseDate parses a calendar date in the wire format.
func parseDate(value string) (time.Time, error) {
	date, err := time.Parse(dto.DateLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected %s", value, dto.DateLayout)
	}
	return date, nil
}
