package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExchangeRate is a row of the exchange_rates table: base-currency units per one unit of CurrencyCode.
type ExchangeRate struct {
	CurrencyCode string          `db:"currency_code"`
	RateToBase   decimal.Decimal `db:"rate_to_base"`
	FetchedAt    time.Time       `db:"fetched_at"`
}
