// Package core holds the domain model of the budgeting client and the
// pure aggregation functions computed over it.
package core

import (
	"strings"

	"github.com/shopspring/decimal"
)

// DefaultCurrency is assumed whenever the user leaves the currency blank.
const DefaultCurrency = "USD"

func init() {
	// The API exchanges amounts as plain JSON numbers.
	decimal.MarshalJSONWithoutQuotes = true
}

// ParseAmount converts user input into a positive decimal amount.
//
// It accepts both dot (12.34) and comma (12,34) decimal separators.
// Returns ErrInvalidAmount for empty input, malformed numbers, and
// values that are zero or negative.
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, ErrInvalidAmount
	}
	// Normalize decimal comma to dot
	s = strings.ReplaceAll(s, ",", ".")
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, ErrInvalidAmount
	}
	if !d.IsPositive() {
		return decimal.Zero, ErrInvalidAmount
	}
	return d, nil
}

// NormalizeCurrency upper-cases a currency code and falls back to
// DefaultCurrency for blank input.
func NormalizeCurrency(s string) string {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "" {
		return DefaultCurrency
	}
	return s
}

// FormatAmount renders an amount with two decimal places for display,
// e.g. "USD 1200.50". Calculations always stay on decimal.Decimal.
func FormatAmount(d decimal.Decimal, currency string) string {
	return NormalizeCurrency(currency) + " " + d.StringFixed(2)
}
