package services

import (
	"context"

	"github.com/Aquaier/Savoo/internal/core/domain"
	"github.com/shopspring/decimal"
)

// Outbound ports implemented by adapters under internal/adapters.
//
//go:generate mockgen -destination=mocks/mock_external_services.go -source=external_services.go

// RateSource fetches the latest rate table from an external provider.
// Rates are quoted as base-currency units per one unit of the keyed currency.
type RateSource interface {
	FetchRates(ctx context.Context) (map[string]decimal.Decimal, error)
}

// RateCacheStore persists the last successful rate table outside the database.
type RateCacheStore interface {
	// Load returns the cached snapshot; any error means there is no usable cache.
	Load(ctx context.Context) (*domain.RateSnapshot, error)
	Save(ctx context.Context, snapshot domain.RateSnapshot) error
}

// BudgetNotifier delivers a budget alert to the user.
type BudgetNotifier interface {
	NotifyBudget(ctx context.Context, n domain.BudgetNotification) error
}
