package repositories

import (
	"context"

	"github.com/Aquaier/Savoo/internal/core/domain"
)

// ExchangeRateReader defines read operations for exchange rate data
type ExchangeRateReader interface {
	// FindExchangeRate returns the stored rate for a currency code, or apperrors.ErrNotFound.
	FindExchangeRate(ctx context.Context, currencyCode string) (*domain.ExchangeRate, error)
	// ListExchangeRates returns every stored rate ordered by currency code.
	ListExchangeRates(ctx context.Context) ([]domain.ExchangeRate, error)
}

// ExchangeRateWriter defines write operations for exchange rate data
type ExchangeRateWriter interface {
	// ReplaceExchangeRates atomically swaps the whole table for rates.
	ReplaceExchangeRates(ctx context.Context, rates []domain.ExchangeRate) error
}

// ExchangeRateRepositoryFacade combines all exchange rate-related repository interfaces
type ExchangeRateRepositoryFacade interface {
	ExchangeRateReader
	ExchangeRateWriter
}
