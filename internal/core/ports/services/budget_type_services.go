package services

import (
	"context"

	"github.com/Aquaier/Savoo/internal/core/domain"
	"github.com/Aquaier/Savoo/internal/dto"
)

// BudgetTypeSvcFacade defines operations on the user's budget type catalogue
type BudgetTypeSvcFacade interface {
	ListBudgetTypes(ctx context.Context, userID string) ([]domain.BudgetType, error)
	CreateBudgetType(ctx context.Context, userID string, req dto.CreateBudgetTypeRequest) (*domain.BudgetType, error)
	DeleteBudgetType(ctx context.Context, userID, budgetTypeID string) error
}
