package repositories

import (
	"context"
	"time"

	"github.com/Aquaier/Savoo/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// TransactionReader defines read operations for transaction data
type TransactionReader interface {
	FindTransactionByID(ctx context.Context, userID, transactionID string) (*domain.Transaction, error)
	// ListTransactions returns the user's transactions newest first, honoring the keyset cursor in filter.
	ListTransactions(ctx context.Context, userID string, filter domain.TransactionFilter) ([]domain.Transaction, error)
	// ListExpensesBetween returns expense transactions whose occurred_on lies in [from, to].
	ListExpensesBetween(ctx context.Context, userID string, from, to time.Time) ([]domain.Transaction, error)
}

// TransactionWriter defines write operations for transaction data
type TransactionWriter interface {
	SaveTransaction(ctx context.Context, txn domain.Transaction) error
	// SaveTransactionsInTx inserts a batch of transactions using an open database transaction.
	SaveTransactionsInTx(ctx context.Context, tx pgx.Tx, txns []domain.Transaction) error
	UpdateTransaction(ctx context.Context, txn domain.Transaction) error
	DeleteTransaction(ctx context.Context, userID, transactionID string) error
}

// TransactionRepositoryFacade combines all transaction-related repository interfaces
type TransactionRepositoryFacade interface {
	TransactionReader
	TransactionWriter
}
