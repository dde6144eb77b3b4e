package pgsql

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Aquaier/Savoo/internal/core/domain"
	portsrepo "github.com/Aquaier/Savoo/internal/core/ports/repositories"
	"github.com/Aquaier/Savoo/internal/models"
	"github.com/Aquaier/Savoo/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// reportingRepository implements the ReportingRepositoryFacade interface
type reportingRepository struct {
	BaseRepository
}

// newReportingRepository creates a new reporting repository
func newReportingRepository(db *pgxpool.Pool) portsrepo.ReportingRepositoryFacade {
	return &reportingRepository{
		BaseRepository: BaseRepository{Pool: db},
	}
}

// The base column sums converted amounts; legacy sums raw amounts of rows that were
// never converted, left for the caller to convert from their currency.
const currencyTotalsSelect = `
	COALESCE(SUM(t.converted_amount), 0) AS base,
	COALESCE(SUM(t.amount) FILTER (WHERE t.converted_amount IS NULL), 0) AS legacy`

// SumByTypeAndCurrency totals income and expense rows in [from, to] per type and currency.
func (r *reportingRepository) SumByTypeAndCurrency(ctx context.Context, userID string, from, to time.Time) ([]domain.CurrencyTotal, error) {
	query := `
		SELECT t.type, t.currency,` + currencyTotalsSelect + `
		FROM transactions t
		WHERE t.user_id = $1
			AND t.type IN ('income', 'expense')
			AND t.occurred_on BETWEEN $2 AND $3
		GROUP BY t.type, t.currency
	`
	rows, err := r.Pool.Query(ctx, query, userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query totals: %w", err)
	}
	defer rows.Close()

	var totals []domain.CurrencyTotal
	for rows.Next() {
		var (
			t       domain.CurrencyTotal
			txnType string
		)
		if err := rows.Scan(&txnType, &t.Currency, &t.Base, &t.Legacy); err != nil {
			return nil, fmt.Errorf("failed to scan totals row: %w", err)
		}
		t.Type = domain.TransactionType(txnType)
		t.Currency = strings.TrimSpace(t.Currency)
		totals = append(totals, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating totals rows: %w", err)
	}
	return totals, nil
}

// SumExpensesByCategory totals expense rows in [from, to] per category and currency.
func (r *reportingRepository) SumExpensesByCategory(ctx context.Context, userID string, from, to time.Time) ([]domain.CategoryCurrencyTotal, error) {
	query := `
		SELECT t.category_id, COALESCE(c.name, '') AS category_name, COALESCE(c.color, '') AS color,
			t.currency,` + currencyTotalsSelect + `
		FROM transactions t
		LEFT JOIN categories c ON c.category_id = t.category_id
		WHERE t.user_id = $1
			AND t.type = 'expense'
			AND t.occurred_on BETWEEN $2 AND $3
		GROUP BY t.category_id, c.name, c.color, t.currency
	`
	rows, err := r.Pool.Query(ctx, query, userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query category totals: %w", err)
	}
	defer rows.Close()

	var totals []domain.CategoryCurrencyTotal
	for rows.Next() {
		t := domain.CategoryCurrencyTotal{CurrencyTotal: domain.CurrencyTotal{Type: domain.TransactionExpense}}
		if err := rows.Scan(&t.CategoryID, &t.CategoryName, &t.Color, &t.Currency, &t.Base, &t.Legacy); err != nil {
			return nil, fmt.Errorf("failed to scan category totals row: %w", err)
		}
		t.Currency = strings.TrimSpace(t.Currency)
		totals = append(totals, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating category totals rows: %w", err)
	}
	return totals, nil
}

type exportRow struct {
	models.Transaction
	CategoryName string `db:"category_name"`
	BudgetName   string `db:"budget_name"`
}

// ListExportRows returns transactions in [from, to] joined with category and budget names, oldest first.
func (r *reportingRepository) ListExportRows(ctx context.Context, userID string, from, to time.Time) ([]domain.ExportRow, error) {
	query := `
		SELECT t.transaction_id, t.user_id, t.category_id, t.budget_id, t.type, t.kind, t.amount, t.currency,
			t.converted_amount, t.note, t.occurred_on, t.created_at, t.last_updated_at,
			COALESCE(c.name, '') AS category_name, COALESCE(b.name, '') AS budget_name
		FROM transactions t
		LEFT JOIN categories c ON c.category_id = t.category_id
		LEFT JOIN budgets b ON b.budget_id = t.budget_id
		WHERE t.user_id = $1 AND t.occurred_on BETWEEN $2 AND $3
		ORDER BY t.occurred_on ASC, t.created_at ASC
	`
	rows, err := r.Pool.Query(ctx, query, userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query export rows: %w", err)
	}
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[exportRow])
	if err != nil {
		return nil, fmt.Errorf("failed to scan export rows: %w", err)
	}

	out := make([]domain.ExportRow, len(ms))
	for i, m := range ms {
		out[i] = domain.ExportRow{Transaction: mapping.ToDomainTransaction(m.Transaction), CategoryName: m.CategoryName, BudgetName: m.BudgetName}
	}
	return out, nil
}
