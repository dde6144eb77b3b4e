package pgsql

import (
	"context"
	"fmt"

	"github.com/Aquaier/Savoo/internal/apperrors"
	"github.com/Aquaier/Savoo/internal/core/domain"
	portsrepo "github.com/Aquaier/Savoo/internal/core/ports/repositories"
	"github.com/Aquaier/Savoo/internal/models"
	"github.com/Aquaier/Savoo/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const budgetTypeColumns = `budget_type_id, user_id, name, created_at`

// PgxBudgetTypeRepository stores the per-user budget type catalogue.
type PgxBudgetTypeRepository struct {
	BaseRepository
}

func newPgxBudgetTypeRepository(db *pgxpool.Pool) *PgxBudgetTypeRepository {
	return &PgxBudgetTypeRepository{BaseRepository: BaseRepository{Pool: db}}
}

var _ portsrepo.BudgetTypeRepositoryFacade = (*PgxBudgetTypeRepository)(nil)

func (r *PgxBudgetTypeRepository) ListBudgetTypes(ctx context.Context, userID string) ([]domain.BudgetType, error) {
	rows, err := r.Pool.Query(ctx,
		`SELECT `+budgetTypeColumns+` FROM budget_types WHERE user_id = $1 ORDER BY created_at DESC, name`,
		userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query budget types: %w", err)
	}
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.BudgetType])
	if err != nil {
		return nil, fmt.Errorf("failed to scan budget types: %w", err)
	}
	return mapping.ToDomainBudgetTypeSlice(ms), nil
}

func (r *PgxBudgetTypeRepository) FindBudgetTypeByName(ctx context.Context, userID, name string) (*domain.BudgetType, error) {
	rows, err := r.Pool.Query(ctx,
		`SELECT `+budgetTypeColumns+` FROM budget_types WHERE user_id = $1 AND name = $2`,
		userID, name)
	if err != nil {
		return nil, fmt.Errorf("failed to query budget type: %w", err)
	}
	m, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[models.BudgetType])
	if err != nil {
		return nil, wrapNotFound(err, "budget type "+name)
	}
	budgetType := mapping.ToDomainBudgetType(m)
	return &budgetType, nil
}

func (r *PgxBudgetTypeRepository) SaveBudgetType(ctx context.Context, budgetType domain.BudgetType) error {
	m := mapping.ToModelBudgetType(budgetType)
	_, err := r.Pool.Exec(ctx,
		`INSERT INTO budget_types (`+budgetTypeColumns+`) VALUES ($1, $2, $3, $4)`,
		m.BudgetTypeID, m.UserID, m.Name, m.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("budget type %q: %w", m.Name, apperrors.ErrDuplicate)
		}
		return fmt.Errorf("failed to save budget type: %w", err)
	}
	return nil
}

func (r *PgxBudgetTypeRepository) DeleteBudgetType(ctx context.Context, userID, budgetTypeID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM budget_types WHERE budget_type_id = $1 AND user_id = $2`, budgetTypeID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete budget type: %w", err)
	}
	return expectOneRow(tag, "budget type "+budgetTypeID)
}
