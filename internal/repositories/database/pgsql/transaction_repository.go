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

const transactionColumns = `transaction_id, user_id, category_id, budget_id, type, kind, amount, currency,
	converted_amount, note, occurred_on, created_at, last_updated_at`

const insertTransaction = `
	INSERT INTO transactions (` + transactionColumns + `)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`

// PgxTransactionRepository stores income, expense and transfer rows.
type PgxTransactionRepository struct {
	BaseRepository
}

func newPgxTransactionRepository(db *pgxpool.Pool) *PgxTransactionRepository {
	return &PgxTransactionRepository{BaseRepository: BaseRepository{Pool: db}}
}

var _ portsrepo.TransactionRepositoryFacade = (*PgxTransactionRepository)(nil)

func transactionArgs(m models.Transaction) []any {
	return []any{
		m.TransactionID, m.UserID, m.CategoryID, m.BudgetID, m.Type, m.Kind, m.Amount, m.Currency,
		m.ConvertedAmount, m.Note, m.OccurredOn, m.CreatedAt, m.LastUpdatedAt,
	}
}

func collectTransactions(rows pgx.Rows) ([]domain.Transaction, error) {
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Transaction])
	if err != nil {
		return nil, fmt.Errorf("failed to scan transactions: %w", err)
	}
	return mapping.ToDomainTransactionSlice(ms), nil
}

func (r *PgxTransactionRepository) FindTransactionByID(ctx context.Context, userID, transactionID string) (*domain.Transaction, error) {
	rows, err := r.Pool.Query(ctx,
		`SELECT `+transactionColumns+` FROM transactions WHERE transaction_id = $1 AND user_id = $2`,
		transactionID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query transaction: %w", err)
	}
	m, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[models.Transaction])
	if err != nil {
		return nil, wrapNotFound(err, "transaction "+transactionID)
	}
	txn := mapping.ToDomainTransaction(m)
	return &txn, nil
}

// ListTransactions returns the user's transactions newest first, honoring the keyset cursor in filter.
func (r *PgxTransactionRepository) ListTransactions(ctx context.Context, userID string, filter domain.TransactionFilter) ([]domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE user_id = $1`
	args := []any{userID}
	argNum := 2

	if filter.From != nil {
		query += fmt.Sprintf(" AND occurred_on >= $%d", argNum)
		args = append(args, *filter.From)
		argNum++
	}
	if filter.To != nil {
		query += fmt.Sprintf(" AND occurred_on <= $%d", argNum)
		args = append(args, *filter.To)
		argNum++
	}
	if filter.Type != nil {
		query += fmt.Sprintf(" AND type = $%d", argNum)
		args = append(args, string(*filter.Type))
		argNum++
	}
	if filter.CategoryID != nil {
		query += fmt.Sprintf(" AND category_id = $%d", argNum)
		args = append(args, *filter.CategoryID)
		argNum++
	}
	if filter.AfterDate != nil && filter.AfterCreatedAt != nil {
		query += fmt.Sprintf(" AND (occurred_on, created_at) < ($%d, $%d)", argNum, argNum+1)
		args = append(args, *filter.AfterDate, *filter.AfterCreatedAt)
		argNum += 2
	}

	query += " ORDER BY occurred_on DESC, created_at DESC"
	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", argNum)
		args = append(args, filter.Limit)
	}

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	return collectTransactions(rows)
}

// ListExpensesBetween returns expense transactions whose occurred_on lies in [from, to].
func (r *PgxTransactionRepository) ListExpensesBetween(ctx context.Context, userID string, from, to time.Time) ([]domain.Transaction, error) {
	rows, err := r.Pool.Query(ctx, `
		SELECT `+transactionColumns+` FROM transactions
		WHERE user_id = $1 AND type = 'expense' AND occurred_on BETWEEN $2 AND $3
		ORDER BY occurred_on`,
		userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	return collectTransactions(rows)
}

func (r *PgxTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction) error {
	if _, err := r.Pool.Exec(ctx, insertTransaction, transactionArgs(mapping.ToModelTransaction(txn))...); err != nil {
		return fmt.Errorf("failed to save transaction: %w", err)
	}
	return nil
}

// SaveTransactionsInTx inserts a batch of transactions using an open database transaction.
func (r *PgxTransactionRepository) SaveTransactionsInTx(ctx context.Context, tx pgx.Tx, txns []domain.Transaction) error {
	if len(txns) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for _, txn := range txns {
		batch.Queue(insertTransaction, transactionArgs(mapping.ToModelTransaction(txn))...)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("failed to save transactions: %w", err)
	}
	return nil
}

func (r *PgxTransactionRepository) UpdateTransaction(ctx context.Context, txn domain.Transaction) error {
	m := mapping.ToModelTransaction(txn)
	tag, err := r.Pool.Exec(ctx, `
		UPDATE transactions
		SET category_id = $1, budget_id = $2, type = $3, kind = $4, amount = $5, currency = $6,
		    converted_amount = $7, note = $8, occurred_on = $9, last_updated_at = $10
		WHERE transaction_id = $11 AND user_id = $12`,
		m.CategoryID, m.BudgetID, m.Type, m.Kind, m.Amount, m.Currency,
		m.ConvertedAmount, m.Note, m.OccurredOn, m.LastUpdatedAt,
		m.TransactionID, m.UserID)
	if err != nil {
		return fmt.Errorf("failed to update transaction: %w", err)
	}
	return expectOneRow(tag, "transaction "+m.TransactionID)
}

func (r *PgxTransactionRepository) DeleteTransaction(ctx context.Context, userID, transactionID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM transactions WHERE transaction_id = $1 AND user_id = $2`, transactionID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}
	return expectOneRow(tag, "transaction "+transactionID)
}
