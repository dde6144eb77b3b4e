package repositories

import (
	"context"

	"github.com/Aquaier/Savoo/internal/core/domain"
)

// BudgetTypeReader defines read operations for budget type data
type BudgetTypeReader interface {
	// ListBudgetTypes returns the user's budget types, newest first.
	ListBudgetTypes(ctx context.Context, userID string) ([]domain.BudgetType, error)
	FindBudgetTypeByName(ctx context.Context, userID, name string) (*domain.BudgetType, error)
}

// BudgetTypeWriter defines write operations for budget type data
type BudgetTypeWriter interface {
	// SaveBudgetType inserts a budget type; a name the user already has yields apperrors.ErrDuplicate.
	SaveBudgetType(ctx context.Context, budgetType domain.BudgetType) error
	DeleteBudgetType(ctx context.Context, userID, budgetTypeID string) error
}

// BudgetTypeRepositoryFacade combines all budget type-related repository interfaces
type BudgetTypeRepositoryFacade interface {
	BudgetTypeReader
	BudgetTypeWriter
}
