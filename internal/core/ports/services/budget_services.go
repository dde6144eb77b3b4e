package services

import (
	"context"

	"github.com/Aquaier/Savoo/internal/core/domain"
	"github.com/Aquaier/Savoo/internal/dto"
)

// BudgetAggregatorSvc derives spend and utilization for budgets.
type BudgetAggregatorSvc interface {
	// ComputeBudgetStats aggregates expenses per budget and renders them in displayCurrency.
	ComputeBudgetStats(ctx context.Context, budgets []domain.Budget, expenses []domain.Transaction, displayCurrency string) ([]domain.BudgetStats, error)
	// MaybeNotify alerts at most once per calendar day for a budget over its threshold.
	MaybeNotify(ctx context.Context, stats domain.BudgetStats) (bool, error)
}

// BudgetReaderSvc defines read operations for budgets
type BudgetReaderSvc interface {
	GetBudget(ctx context.Context, userID, budgetID, currency string) (*domain.BudgetStats, error)
	ListBudgets(ctx context.Context, userID, currency string) ([]domain.BudgetStats, error)
}

// BudgetWriterSvc defines write operations for budgets
type BudgetWriterSvc interface {
	CreateBudget(ctx context.Context, userID string, req dto.CreateBudgetRequest) (*domain.Budget, error)
	UpdateBudget(ctx context.Context, userID, budgetID string, req dto.UpdateBudgetRequest) (*domain.Budget, error)
	DeleteBudget(ctx context.Context, userID, budgetID string) error
}

// BudgetSvcFacade combines all budget-related service interfaces
type BudgetSvcFacade interface {
	BudgetAggregatorSvc
	BudgetReaderSvc
	BudgetWriterSvc
}
