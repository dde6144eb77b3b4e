package pgsql

import (
	portsrepo "github.com/Aquaier/Savoo/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider wires every Postgres-backed repository onto one pool.
func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		ExchangeRateRepo: NewPgxExchangeRateRepository(dbPool),
		UserRepo:         newPgxUserRepository(dbPool),
		CategoryRepo:     newPgxCategoryRepository(dbPool),
		TransactionRepo:  newPgxTransactionRepository(dbPool),
		BudgetRepo:       newPgxBudgetRepository(dbPool),
		BudgetTypeRepo:   newPgxBudgetTypeRepository(dbPool),
		SavingsGoalRepo:  newPgxSavingsGoalRepository(dbPool),
		RecurringRepo:    newPgxRecurringRepository(dbPool),
		ReportingRepo:    newReportingRepository(dbPool),
	}
}
