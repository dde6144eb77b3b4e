package repositories

import (
	"context"
	"time"

	"github.com/Aquaier/Savoo/internal/core/domain"
)

// ReportingRepositoryFacade defines the aggregate queries behind the dashboard and exports.
type ReportingRepositoryFacade interface {
	// SumByTypeAndCurrency totals income and expense rows in [from, to] per type and currency.
	SumByTypeAndCurrency(ctx context.Context, userID string, from, to time.Time) ([]domain.CurrencyTotal, error)
	// SumExpensesByCategory totals expense rows in [from, to] per category and currency.
	SumExpensesByCategory(ctx context.Context, userID string, from, to time.Time) ([]domain.CategoryCurrencyTotal, error)
	// ListExportRows returns transactions in [from, to] joined with category and budget names, oldest first.
	ListExportRows(ctx context.Context, userID string, from, to time.Time) ([]domain.ExportRow, error)
}
