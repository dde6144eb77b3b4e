package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Aquaier/Savoo/internal/apperrors"
	"github.com/Aquaier/Savoo/internal/core/domain"
	portsrepo "github.com/Aquaier/Savoo/internal/core/ports/repositories"
	portssvc "github.com/Aquaier/Savoo/internal/core/ports/services"
	"github.com/shopspring/decimal"
)

// currencyService converts amounts through the base currency using the rate table.
type currencyService struct {
	BaseService
	rateRepo     portsrepo.ExchangeRateReader
	provider     portssvc.RateProviderSvc
	baseCurrency string
}

// NewCurrencyService creates the conversion service.
func NewCurrencyService(rateRepo portsrepo.ExchangeRateReader, provider portssvc.RateProviderSvc, baseCurrency string) portssvc.CurrencySvcFacade {
	return &currencyService{
		rateRepo:     rateRepo,
		provider:     provider,
		baseCurrency: domain.NormalizeCurrencyCode(baseCurrency, domain.DefaultBaseCurrency),
	}
}

var _ portssvc.CurrencySvcFacade = (*currencyService)(nil)

func (s *currencyService) BaseCurrency() string {
	return s.baseCurrency
}

func (s *currencyService) RefreshRates(ctx context.Context, force bool) {
	s.provider.RefreshRates(ctx, force)
}

// RateToBase returns base units per unit of currency. The base currency is 1 without
// touching the table. A currency missing from the table also converts at 1 so a gap
// in the rate source never blocks a request.
func (s *currencyService) RateToBase(ctx context.Context, currency string) (decimal.Decimal, error) {
	code := domain.NormalizeCurrencyCode(currency, s.baseCurrency)
	if code == s.baseCurrency {
		return decimal.NewFromInt(1), nil
	}

	s.provider.RefreshRates(ctx, false)

	rate, err := s.rateRepo.FindExchangeRate(ctx, code)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			s.LogDebug(ctx, "No exchange rate for currency, using 1", slog.String("currency", code))
			return decimal.NewFromInt(1), nil
		}
		return decimal.Zero, fmt.Errorf("looking up exchange rate for %s: %w", code, err)
	}
	return rate.RateToBase, nil
}

func (s *currencyService) Convert(ctx context.Context, amount decimal.Decimal, from, to string) (decimal.Decimal, error) {
	fromCode := domain.NormalizeCurrencyCode(from, s.baseCurrency)
	toCode := domain.NormalizeCurrencyCode(to, s.baseCurrency)
	if fromCode == toCode {
		return amount, nil
	}

	fromRate, err := s.RateToBase(ctx, fromCode)
	if err != nil {
		return decimal.Zero, err
	}
	inBase := amount.Mul(fromRate)
	if toCode == s.baseCurrency {
		return inBase, nil
	}

	toRate, err := s.RateToBase(ctx, toCode)
	if err != nil {
		return decimal.Zero, err
	}
	if toRate.IsZero() {
		s.LogWarn(ctx, "Zero exchange rate for target currency, returning base amount", slog.String("currency", toCode))
		return inBase, nil
	}
	return inBase.Div(toRate), nil
}

func (s *currencyService) ConvertNullable(ctx context.Context, amount decimal.NullDecimal, from, to string) (decimal.Decimal, error) {
	if !amount.Valid {
		return decimal.Zero, nil
	}
	return s.Convert(ctx, amount.Decimal, from, to)
}

func (s *currencyService) ToBase(ctx context.Context, amount decimal.Decimal, currency string) (decimal.Decimal, error) {
	return s.Convert(ctx, amount, currency, s.baseCurrency)
}

func (s *currencyService) FromBase(ctx context.Context, amount decimal.Decimal, currency string) (decimal.Decimal, error) {
	return s.Convert(ctx, amount, s.baseCurrency, currency)
}

// ListRates returns the current rate table, forcing a live refresh first when asked.
func (s *currencyService) ListRates(ctx context.Context, refresh bool) ([]domain.ExchangeRate, error) {
	s.provider.RefreshRates(ctx, refresh)
	rates, err := s.rateRepo.ListExchangeRates(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list exchange rates")
		return nil, fmt.Errorf("listing exchange rates: %w", err)
	}
	return rates, nil
}
