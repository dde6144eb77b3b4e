package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExchangeRate is one row of the rate table: how many base units one unit of CurrencyCode is worth.
type ExchangeRate struct {
	CurrencyCode string          `json:"currencyCode"`
	RateToBase   decimal.Decimal `json:"rateToBase"`
	FetchedAt    time.Time       `json:"fetchedAt"`
}

// RateSnapshot is the last successfully fetched rate table, kept outside the database
// so the service can recover when the rate source is unreachable.
type RateSnapshot struct {
	FetchedAt time.Time
	Rates     map[string]decimal.Decimal
}

// IsFresh reports whether the snapshot is at most ttl old at now.
func (s RateSnapshot) IsFresh(now time.Time, ttl time.Duration) bool {
	if s.FetchedAt.IsZero() {
		return false
	}
	return now.Sub(s.FetchedAt) <= ttl
}

// ToExchangeRates flattens the snapshot into rate rows, forcing base to exactly 1.
// The base entry is written after the source rates so a bogus source value cannot win.
func (s RateSnapshot) ToExchangeRates(baseCurrency string) []ExchangeRate {
	rates := make([]ExchangeRate, 0, len(s.Rates)+1)
	for code, rate := range s.Rates {
		if code == baseCurrency {
			continue
		}
		rates = append(rates, ExchangeRate{CurrencyCode: code, RateToBase: rate, FetchedAt: s.FetchedAt})
	}
	rates = append(rates, ExchangeRate{CurrencyCode: baseCurrency, RateToBase: decimal.NewFromInt(1), FetchedAt: s.FetchedAt})
	return rates
}
