package repositories

import (
	"context"
	"time"

	"github.com/Aquaier/Savoo/internal/core/domain"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// ContributionTotal is the sum and count of a goal's contributions.
type ContributionTotal struct {
	Sum   decimal.Decimal
	Count int
}

// SavingsGoalReader defines read operations for savings goal data
type SavingsGoalReader interface {
	FindGoalByID(ctx context.Context, userID, goalID string) (*domain.SavingsGoal, error)
	ListGoals(ctx context.Context, userID string) ([]domain.SavingsGoal, error)
	ListContributions(ctx context.Context, goalID string) ([]domain.SavingsGoalContribution, error)
	// ContributionTotals returns per-goal contribution sums keyed by goal ID.
	ContributionTotals(ctx context.Context, goalIDs []string) (map[string]ContributionTotal, error)
}

// SavingsGoalWriter defines write operations for savings goal data
type SavingsGoalWriter interface {
	SaveGoalInTx(ctx context.Context, tx pgx.Tx, goal domain.SavingsGoal) error
	// UpdateGoal changes the descriptive fields of a goal. The running total is not touched.
	UpdateGoal(ctx context.Context, goal domain.SavingsGoal) error
	DeleteGoal(ctx context.Context, userID, goalID string) error

	// FindGoalForUpdate loads and row-locks a goal inside tx.
	FindGoalForUpdate(ctx context.Context, tx pgx.Tx, userID, goalID string) (*domain.SavingsGoal, error)
	UpdateGoalAmountInTx(ctx context.Context, tx pgx.Tx, goalID string, amount decimal.Decimal, at time.Time) error

	FindContributionForUpdate(ctx context.Context, tx pgx.Tx, goalID, contributionID string) (*domain.SavingsGoalContribution, error)
	SaveContributionInTx(ctx context.Context, tx pgx.Tx, c domain.SavingsGoalContribution) error
	UpdateContributionInTx(ctx context.Context, tx pgx.Tx, c domain.SavingsGoalContribution) error
	DeleteContributionInTx(ctx context.Context, tx pgx.Tx, goalID, contributionID string) error
}

// SavingsGoalRepositoryFacade combines all savings goal-related repository interfaces
type SavingsGoalRepositoryFacade interface {
	SavingsGoalReader
	SavingsGoalWriter
}

// SavingsGoalRepositoryWithTx extends SavingsGoalRepositoryFacade with transaction capabilities
type SavingsGoalRepositoryWithTx interface {
	SavingsGoalRepositoryFacade
	TransactionManager
}
