package domain

import "strings"

// DefaultBaseCurrency is the currency every stored amount is normalized into.
const DefaultBaseCurrency = "PLN"

// NormalizeCurrencyCode trims and upper-cases value, returning fallback when nothing is left.
func NormalizeCurrencyCode(value, fallback string) string {
	code := strings.ToUpper(strings.TrimSpace(value))
	if code == "" {
		return strings.ToUpper(strings.TrimSpace(fallback))
	}
	return code
}
