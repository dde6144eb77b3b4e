package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/Aquaier/Savoo/internal/core/domain"
	portsrepo "github.com/Aquaier/Savoo/internal/core/ports/repositories"
	"github.com/Aquaier/Savoo/internal/models"
	"github.com/Aquaier/Savoo/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const budgetColumns = `budget_id, user_id, category_id, name, limit_amount, period, budget_type,
	start_date, end_date, last_notified_at, created_at, last_updated_at`

// PgxBudgetRepository stores spending limits.
type PgxBudgetRepository struct {
	BaseRepository
}

func newPgxBudgetRepository(db *pgxpool.Pool) *PgxBudgetRepository {
	return &PgxBudgetRepository{BaseRepository: BaseRepository{Pool: db}}
}

var _ portsrepo.BudgetRepositoryFacade = (*PgxBudgetRepository)(nil)

func (r *PgxBudgetRepository) FindBudgetByID(ctx context.Context, userID, budgetID string) (*domain.Budget, error) {
	rows, err := r.Pool.Query(ctx,
		`SELECT `+budgetColumns+` FROM budgets WHERE budget_id = $1 AND user_id = $2`, budgetID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query budget: %w", err)
	}
	m, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[models.Budget])
	if err != nil {
		return nil, wrapNotFound(err, "budget "+budgetID)
	}
	budget := mapping.ToDomainBudget(m)
	return &budget, nil
}

func (r *PgxBudgetRepository) list(ctx context.Context, query string, args ...any) ([]domain.Budget, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list budgets: %w", err)
	}
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Budget])
	if err != nil {
		return nil, fmt.Errorf("failed to scan budgets: %w", err)
	}
	return mapping.ToDomainBudgetSlice(ms), nil
}

func (r *PgxBudgetRepository) ListBudgets(ctx context.Context, userID string) ([]domain.Budget, error) {
	return r.list(ctx, `SELECT `+budgetColumns+` FROM budgets WHERE user_id = $1 ORDER BY created_at DESC`, userID)
}

// ListRecentBudgets returns the user's most recently created budgets.
func (r *PgxBudgetRepository) ListRecentBudgets(ctx context.Context, userID string, limit int) ([]domain.Budget, error) {
	return r.list(ctx, `SELECT `+budgetColumns+` FROM budgets WHERE user_id = $1 ORDER BY created_at DESC LIMIT $2`, userID, limit)
}

func (r *PgxBudgetRepository) SaveBudget(ctx context.Context, budget domain.Budget) error {
	m := mapping.ToModelBudget(budget)
	_, err := r.Pool.Exec(ctx, `
		INSERT INTO budgets (`+budgetColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		m.BudgetID, m.UserID, m.CategoryID, m.Name, m.LimitAmount, m.Period, m.BudgetType,
		m.StartDate, m.EndDate, m.LastNotifiedAt, m.CreatedAt, m.LastUpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to save budget: %w", err)
	}
	return nil
}

func (r *PgxBudgetRepository) UpdateBudget(ctx context.Context, budget domain.Budget) error {
	m := mapping.ToModelBudget(budget)
	tag, err := r.Pool.Exec(ctx, `
		UPDATE budgets
		SET category_id = $1, name = $2, limit_amount = $3, period = $4, budget_type = $5,
		    start_date = $6, end_date = $7, last_updated_at = $8
		WHERE budget_id = $9 AND user_id = $10`,
		m.CategoryID, m.Name, m.LimitAmount, m.Period, m.BudgetType,
		m.StartDate, m.EndDate, m.LastUpdatedAt, m.BudgetID, m.UserID)
	if err != nil {
		return fmt.Errorf("failed to update budget: %w", err)
	}
	return expectOneRow(tag, "budget "+m.BudgetID)
}

func (r *PgxBudgetRepository) DeleteBudget(ctx context.Context, userID, budgetID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM budgets WHERE budget_id = $1 AND user_id = $2`, budgetID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete budget: %w", err)
	}
	return expectOneRow(tag, "budget "+budgetID)
}

// ClaimBudgetNotification stamps last_notified_at unless another request already did so
// on or after dayStart. The conditional UPDATE makes concurrent claims race-free.
func (r *PgxBudgetRepository) ClaimBudgetNotification(ctx context.Context, budgetID string, at, dayStart time.Time) (bool, error) {
	tag, err := r.Pool.Exec(ctx, `
		UPDATE budgets SET last_notified_at = $1
		WHERE budget_id = $2 AND (last_notified_at IS NULL OR last_notified_at < $3)`,
		at, budgetID, dayStart)
	if err != nil {
		return false, fmt.Errorf("failed to claim budget notification: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}
