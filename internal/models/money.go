package models

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// AmountPlaces is the number of fractional digits monetary fields are rounded to.
const AmountPlaces = 2

// ParseAmount reads a Debit or Credit field. Surrounding whitespace is ignored,
// a blank field is zero, and the value is rounded half away from zero to
// AmountPlaces decimals.
func ParseAmount(raw string) (decimal.Decimal, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount string '%s': %w", raw, err)
	}
	return d.Round(AmountPlaces), nil
}

// FormatAmount renders d with exactly AmountPlaces fractional digits.
func FormatAmount(d decimal.Decimal) string {
	return d.StringFixed(AmountPlaces)
}
