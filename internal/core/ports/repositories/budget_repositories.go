package repositories

import (
	"context"
	"time"

	"github.com/Aquaier/Savoo/internal/core/domain"
)

// BudgetReader defines read operations for budget data
type BudgetReader interface {
	FindBudgetByID(ctx context.Context, userID, budgetID string) (*domain.Budget, error)
	ListBudgets(ctx context.Context, userID string) ([]domain.Budget, error)
	// ListRecentBudgets returns the user's most recently created budgets.
	ListRecentBudgets(ctx context.Context, userID string, limit int) ([]domain.Budget, error)
}

// BudgetWriter defines write operations for budget data
type BudgetWriter interface {
	SaveBudget(ctx context.Context, budget domain.Budget) error
	UpdateBudget(ctx context.Context, budget domain.Budget) error
	DeleteBudget(ctx context.Context, userID, budgetID string) error
	// ClaimBudgetNotification stamps last_notified_at with at unless the budget was
	// already notified on or after dayStart. It reports whether this call won the claim.
	ClaimBudgetNotification(ctx context.Context, budgetID string, at, dayStart time.Time) (bool, error)
}

// BudgetRepositoryFacade combines all budget-related repository interfaces
type BudgetRepositoryFacade interface {
	BudgetReader
	BudgetWriter
}
