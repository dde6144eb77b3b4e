package dto

import (
	"time"

	"github.com/Aquaier/Savoo/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ListRatesParams defines query parameters for listing exchange rates.
type ListRatesParams struct {
	Refresh bool `form:"refresh"`
}

// ExchangeRateResponse defines one row of the rate table.
type ExchangeRateResponse struct {
	CurrencyCode string          `json:"currencyCode"`
	RateToBase   decimal.Decimal `json:"rateToBase"`
	FetchedAt    time.Time       `json:"fetchedAt"`
}

// ListRatesResponse wraps the rate table with its base currency.
type ListRatesResponse struct {
	BaseCurrency string                 `json:"baseCurrency"`
	Rates        []ExchangeRateResponse `json:"rates"`
}

// ToListRatesResponse converts rate rows to the API response
func ToListRatesResponse(base string, rates []domain.ExchangeRate) ListRatesResponse {
	resp := ListRatesResponse{BaseCurrency: base, Rates: make([]ExchangeRateResponse, len(rates))}
	for i, r := range rates {
		resp.Rates[i] = ExchangeRateResponse{CurrencyCode: r.CurrencyCode, RateToBase: r.RateToBase, FetchedAt: r.FetchedAt}
	}
	return resp
}

// ConvertParams defines query parameters for a one-off conversion.
type ConvertParams struct {
	Amount string `form:"amount" binding:"required,numeric"`
	From   string `form:"from" binding:"required,currency"`
	To     string `form:"to" binding:"required,currency"`
}

// ConvertResponse is the result of a conversion.
type ConvertResponse struct {
	Amount          decimal.Decimal `json:"amount"`
	From            string          `json:"from"`
	To              string          `json:"to"`
	ConvertedAmount decimal.Decimal `json:"convertedAmount"`
}
