package services

import (
	"context"

	"github.com/Aquaier/Savoo/internal/core/domain"
	"github.com/shopspring/decimal"
)

// RateProviderSvc keeps the rate table in sync with the rate source.
type RateProviderSvc interface {
	// RefreshRates never fails; on trouble it falls back to the cache or leaves the table alone.
	RefreshRates(ctx context.Context, force bool)
}

// ConversionSvc converts monetary amounts between currencies through the base currency.
type ConversionSvc interface {
	BaseCurrency() string
	// RateToBase returns base units per unit of currency. Unknown currencies convert at 1.
	RateToBase(ctx context.Context, currency string) (decimal.Decimal, error)
	Convert(ctx context.Context, amount decimal.Decimal, from, to string) (decimal.Decimal, error)
	// ConvertNullable treats a missing amount as zero.
	ConvertNullable(ctx context.Context, amount decimal.NullDecimal, from, to string) (decimal.Decimal, error)
	ToBase(ctx context.Context, amount decimal.Decimal, currency string) (decimal.Decimal, error)
	FromBase(ctx context.Context, amount decimal.Decimal, currency string) (decimal.Decimal, error)
}

// CurrencySvcFacade is what the currency endpoints need.
type CurrencySvcFacade interface {
	ConversionSvc
	RateProviderSvc
	ListRates(ctx context.Context, refresh bool) ([]domain.ExchangeRate, error)
}
