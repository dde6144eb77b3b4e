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
	"github.com/shopspring/decimal"
)

const goalColumns = `goal_id, user_id, name, target_amount, current_amount, deadline, category_id,
	is_active, created_at, last_updated_at`

const contributionColumns = `contribution_id, goal_id, amount, note, created_at`

// PgxSavingsGoalRepository stores goals and their contributions. The running total on
// savings_goals is only changed inside a transaction together with the contribution rows.
type PgxSavingsGoalRepository struct {
	BaseRepository
}

func newPgxSavingsGoalRepository(db *pgxpool.Pool) *PgxSavingsGoalRepository {
	return &PgxSavingsGoalRepository{BaseRepository: BaseRepository{Pool: db}}
}

var _ portsrepo.SavingsGoalRepositoryWithTx = (*PgxSavingsGoalRepository)(nil)

func collectOneGoal(rows pgx.Rows, goalID string) (*domain.SavingsGoal, error) {
	m, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[models.SavingsGoal])
	if err != nil {
		return nil, wrapNotFound(err, "savings goal "+goalID)
	}
	goal := mapping.ToDomainSavingsGoal(m)
	return &goal, nil
}

func (r *PgxSavingsGoalRepository) FindGoalByID(ctx context.Context, userID, goalID string) (*domain.SavingsGoal, error) {
	rows, err := r.Pool.Query(ctx,
		`SELECT `+goalColumns+` FROM savings_goals WHERE goal_id = $1 AND user_id = $2`, goalID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query savings goal: %w", err)
	}
	return collectOneGoal(rows, goalID)
}

func (r *PgxSavingsGoalRepository) ListGoals(ctx context.Context, userID string) ([]domain.SavingsGoal, error) {
	rows, err := r.Pool.Query(ctx,
		`SELECT `+goalColumns+` FROM savings_goals WHERE user_id = $1 ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list savings goals: %w", err)
	}
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.SavingsGoal])
	if err != nil {
		return nil, fmt.Errorf("failed to scan savings goals: %w", err)
	}
	goals := make([]domain.SavingsGoal, len(ms))
	for i, m := range ms {
		goals[i] = mapping.ToDomainSavingsGoal(m)
	}
	return goals, nil
}

func (r *PgxSavingsGoalRepository) ListContributions(ctx context.Context, goalID string) ([]domain.SavingsGoalContribution, error) {
	rows, err := r.Pool.Query(ctx,
		`SELECT `+contributionColumns+` FROM savings_goal_contributions WHERE goal_id = $1 ORDER BY created_at DESC`, goalID)
	if err != nil {
		return nil, fmt.Errorf("failed to list contributions: %w", err)
	}
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.SavingsGoalContribution])
	if err != nil {
		return nil, fmt.Errorf("failed to scan contributions: %w", err)
	}
	contributions := make([]domain.SavingsGoalContribution, len(ms))
	for i, m := range ms {
		contributions[i] = mapping.ToDomainContribution(m)
	}
	return contributions, nil
}

// ContributionTotals returns per-goal contribution sums keyed by goal ID.
func (r *PgxSavingsGoalRepository) ContributionTotals(ctx context.Context, goalIDs []string) (map[string]portsrepo.ContributionTotal, error) {
	totals := make(map[string]portsrepo.ContributionTotal, len(goalIDs))
	if len(goalIDs) == 0 {
		return totals, nil
	}
	rows, err := r.Pool.Query(ctx, `
		SELECT goal_id, COALESCE(SUM(amount), 0), COUNT(*)
		FROM savings_goal_contributions
		WHERE goal_id = ANY($1)
		GROUP BY goal_id`, goalIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to sum contributions: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			goalID string
			sum    decimal.Decimal
			count  int
		)
		if err := rows.Scan(&goalID, &sum, &count); err != nil {
			return nil, fmt.Errorf("failed to scan contribution totals: %w", err)
		}
		totals[goalID] = portsrepo.ContributionTotal{Sum: sum, Count: count}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating contribution totals: %w", err)
	}
	return totals, nil
}

func (r *PgxSavingsGoalRepository) SaveGoalInTx(ctx context.Context, tx pgx.Tx, goal domain.SavingsGoal) error {
	m := mapping.ToModelSavingsGoal(goal)
	_, err := tx.Exec(ctx, `
		INSERT INTO savings_goals (`+goalColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		m.GoalID, m.UserID, m.Name, m.TargetAmount, m.CurrentAmount, m.Deadline, m.CategoryID,
		m.IsActive, m.CreatedAt, m.LastUpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to save savings goal: %w", err)
	}
	return nil
}

// UpdateGoal changes the descriptive fields of a goal. The running total is not touched.
func (r *PgxSavingsGoalRepository) UpdateGoal(ctx context.Context, goal domain.SavingsGoal) error {
	m := mapping.ToModelSavingsGoal(goal)
	tag, err := r.Pool.Exec(ctx, `
		UPDATE savings_goals
		SET name = $1, target_amount = $2, deadline = $3, category_id = $4, is_active = $5, last_updated_at = $6
		WHERE goal_id = $7 AND user_id = $8`,
		m.Name, m.TargetAmount, m.Deadline, m.CategoryID, m.IsActive, m.LastUpdatedAt, m.GoalID, m.UserID)
	if err != nil {
		return fmt.Errorf("failed to update savings goal: %w", err)
	}
	return expectOneRow(tag, "savings goal "+m.GoalID)
}

func (r *PgxSavingsGoalRepository) DeleteGoal(ctx context.Context, userID, goalID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM savings_goals WHERE goal_id = $1 AND user_id = $2`, goalID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete savings goal: %w", err)
	}
	return expectOneRow(tag, "savings goal "+goalID)
}

// FindGoalForUpdate loads and row-locks a goal inside tx.
func (r *PgxSavingsGoalRepository) FindGoalForUpdate(ctx context.Context, tx pgx.Tx, userID, goalID string) (*domain.SavingsGoal, error) {
	rows, err := tx.Query(ctx,
		`SELECT `+goalColumns+` FROM savings_goals WHERE goal_id = $1 AND user_id = $2 FOR UPDATE`, goalID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to lock savings goal: %w", err)
	}
	return collectOneGoal(rows, goalID)
}

func (r *PgxSavingsGoalRepository) UpdateGoalAmountInTx(ctx context.Context, tx pgx.Tx, goalID string, amount decimal.Decimal, at time.Time) error {
	tag, err := tx.Exec(ctx,
		`UPDATE savings_goals SET current_amount = $1, last_updated_at = $2 WHERE goal_id = $3`,
		amount, at, goalID)
	if err != nil {
		return fmt.Errorf("failed to update savings goal amount: %w", err)
	}
	return expectOneRow(tag, "savings goal "+goalID)
}

func (r *PgxSavingsGoalRepository) FindContributionForUpdate(ctx context.Context, tx pgx.Tx, goalID, contributionID string) (*domain.SavingsGoalContribution, error) {
	rows, err := tx.Query(ctx, `
		SELECT `+contributionColumns+` FROM savings_goal_contributions
		WHERE contribution_id = $1 AND goal_id = $2 FOR UPDATE`, contributionID, goalID)
	if err != nil {
		return nil, fmt.Errorf("failed to lock contribution: %w", err)
	}
	m, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[models.SavingsGoalContribution])
	if err != nil {
		return nil, wrapNotFound(err, "contribution "+contributionID)
	}
	c := mapping.ToDomainContribution(m)
	return &c, nil
}

func (r *PgxSavingsGoalRepository) SaveContributionInTx(ctx context.Context, tx pgx.Tx, c domain.SavingsGoalContribution) error {
	m := mapping.ToModelContribution(c)
	_, err := tx.Exec(ctx, `
		INSERT INTO savings_goal_contributions (`+contributionColumns+`)
		VALUES ($1, $2, $3, $4, $5)`,
		m.ContributionID, m.GoalID, m.Amount, m.Note, m.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to save contribution: %w", err)
	}
	return nil
}

func (r *PgxSavingsGoalRepository) UpdateContributionInTx(ctx context.Context, tx pgx.Tx, c domain.SavingsGoalContribution) error {
	tag, err := tx.Exec(ctx,
		`UPDATE savings_goal_contributions SET amount = $1, note = $2 WHERE contribution_id = $3 AND goal_id = $4`,
		c.Amount, c.Note, c.ContributionID, c.GoalID)
	if err != nil {
		return fmt.Errorf("failed to update contribution: %w", err)
	}
	return expectOneRow(tag, "contribution "+c.ContributionID)
}

func (r *PgxSavingsGoalRepository) DeleteContributionInTx(ctx context.Context, tx pgx.Tx, goalID, contributionID string) error {
	tag, err := tx.Exec(ctx,
		`DELETE FROM savings_goal_contributions WHERE contribution_id = $1 AND goal_id = $2`, contributionID, goalID)
	if err != nil {
		return fmt.Errorf("failed to delete contribution: %w", err)
	}
	return expectOneRow(tag, "contribution "+contributionID)
}
