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

const recurringColumns = `recurring_id, user_id, category_id, type, amount, currency, note, frequency,
	start_date, next_occurrence, end_date, last_generated, created_at, last_updated_at`

// PgxRecurringRepository stores recurring transaction templates.
type PgxRecurringRepository struct {
	BaseRepository
}

func newPgxRecurringRepository(db *pgxpool.Pool) *PgxRecurringRepository {
	return &PgxRecurringRepository{BaseRepository: BaseRepository{Pool: db}}
}

var _ portsrepo.RecurringRepositoryWithTx = (*PgxRecurringRepository)(nil)

func collectRecurring(rows pgx.Rows) ([]domain.RecurringTransaction, error) {
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.RecurringTransaction])
	if err != nil {
		return nil, fmt.Errorf("failed to scan recurring transactions: %w", err)
	}
	return mapping.ToDomainRecurringSlice(ms), nil
}

func (r *PgxRecurringRepository) FindRecurringByID(ctx context.Context, userID, recurringID string) (*domain.RecurringTransaction, error) {
	rows, err := r.Pool.Query(ctx,
		`SELECT `+recurringColumns+` FROM recurring_transactions WHERE recurring_id = $1 AND user_id = $2`,
		recurringID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query recurring transaction: %w", err)
	}
	m, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[models.RecurringTransaction])
	if err != nil {
		return nil, wrapNotFound(err, "recurring transaction "+recurringID)
	}
	rec := mapping.ToDomainRecurring(m)
	return &rec, nil
}

func (r *PgxRecurringRepository) ListRecurring(ctx context.Context, userID string) ([]domain.RecurringTransaction, error) {
	rows, err := r.Pool.Query(ctx,
		`SELECT `+recurringColumns+` FROM recurring_transactions WHERE user_id = $1 ORDER BY next_occurrence`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list recurring transactions: %w", err)
	}
	return collectRecurring(rows)
}

func (r *PgxRecurringRepository) SaveRecurring(ctx context.Context, rec domain.RecurringTransaction) error {
	m := mapping.ToModelRecurring(rec)
	_, err := r.Pool.Exec(ctx, `
		INSERT INTO recurring_transactions (`+recurringColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
		m.RecurringID, m.UserID, m.CategoryID, m.Type, m.Amount, m.Currency, m.Note, m.Frequency,
		m.StartDate, m.NextOccurrence, m.EndDate, m.LastGenerated, m.CreatedAt, m.LastUpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to save recurring transaction: %w", err)
	}
	return nil
}

func (r *PgxRecurringRepository) UpdateRecurring(ctx context.Context, rec domain.RecurringTransaction) error {
	m := mapping.ToModelRecurring(rec)
	tag, err := r.Pool.Exec(ctx, `
		UPDATE recurring_transactions
		SET category_id = $1, type = $2, amount = $3, currency = $4, note = $5, frequency = $6,
		    start_date = $7, next_occurrence = $8, end_date = $9, last_updated_at = $10
		WHERE recurring_id = $11 AND user_id = $12`,
		m.CategoryID, m.Type, m.Amount, m.Currency, m.Note, m.Frequency,
		m.StartDate, m.NextOccurrence, m.EndDate, m.LastUpdatedAt, m.RecurringID, m.UserID)
	if err != nil {
		return fmt.Errorf("failed to update recurring transaction: %w", err)
	}
	return expectOneRow(tag, "recurring transaction "+m.RecurringID)
}

func (r *PgxRecurringRepository) DeleteRecurring(ctx context.Context, userID, recurringID string) error {
	tag, err := r.Pool.Exec(ctx,
		`DELETE FROM recurring_transactions WHERE recurring_id = $1 AND user_id = $2`, recurringID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete recurring transaction: %w", err)
	}
	return expectOneRow(tag, "recurring transaction "+recurringID)
}

// ListDueRecurringForUpdate row-locks every recurrence of the user due on or before today.
// Concurrent materializations of the same user serialize on these locks.
func (r *PgxRecurringRepository) ListDueRecurringForUpdate(ctx context.Context, tx pgx.Tx, userID string, today time.Time) ([]domain.RecurringTransaction, error) {
	rows, err := tx.Query(ctx, `
		SELECT `+recurringColumns+` FROM recurring_transactions
		WHERE user_id = $1 AND next_occurrence <= $2
		  AND (end_date IS NULL OR next_occurrence <= end_date)
		ORDER BY next_occurrence
		FOR UPDATE`, userID, today)
	if err != nil {
		return nil, fmt.Errorf("failed to list due recurring transactions: %w", err)
	}
	return collectRecurring(rows)
}

func (r *PgxRecurringRepository) AdvanceRecurringInTx(ctx context.Context, tx pgx.Tx, recurringID string, next time.Time, lastGenerated *time.Time) error {
	tag, err := tx.Exec(ctx, `
		UPDATE recurring_transactions
		SET next_occurrence = $1, last_generated = COALESCE($2, last_generated), last_updated_at = NOW()
		WHERE recurring_id = $3`, next, lastGenerated, recurringID)
	if err != nil {
		return fmt.Errorf("failed to advance recurring transaction: %w", err)
	}
	return expectOneRow(tag, "recurring transaction "+recurringID)
}
