package repositories

import (
	"context"
	"time"

	"github.com/Aquaier/Savoo/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// RecurringReader defines read operations for recurring transaction data
type RecurringReader interface {
	FindRecurringByID(ctx context.Context, userID, recurringID string) (*domain.RecurringTransaction, error)
	ListRecurring(ctx context.Context, userID string) ([]domain.RecurringTransaction, error)
}

// RecurringWriter defines write operations for recurring transaction data
type RecurringWriter interface {
	SaveRecurring(ctx context.Context, r domain.RecurringTransaction) error
	UpdateRecurring(ctx context.Context, r domain.RecurringTransaction) error
	DeleteRecurring(ctx context.Context, userID, recurringID string) error

	// ListDueRecurringForUpdate row-locks every recurrence of the user due on or before today.
	ListDueRecurringForUpdate(ctx context.Context, tx pgx.Tx, userID string, today time.Time) ([]domain.RecurringTransaction, error)
	AdvanceRecurringInTx(ctx context.Context, tx pgx.Tx, recurringID string, next time.Time, lastGenerated *time.Time) error
}

// RecurringRepositoryFacade combines all recurring transaction-related repository interfaces
type RecurringRepositoryFacade interface {
	RecurringReader
	RecurringWriter
}

// RecurringRepositoryWithTx extends RecurringRepositoryFacade with transaction capabilities
type RecurringRepositoryWithTx interface {
	RecurringRepositoryFacade
	TransactionManager
}
