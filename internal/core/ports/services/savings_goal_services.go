package services

import (
	"context"

	"github.com/Aquaier/Savoo/internal/core/domain"
	"github.com/Aquaier/Savoo/internal/dto"
)

// SavingsGoalReaderSvc defines read operations for savings goals
type SavingsGoalReaderSvc interface {
	GetGoal(ctx context.Context, userID, goalID, currency string) (*domain.SavingsGoalProgress, error)
	ListGoals(ctx context.Context, userID, currency string) ([]domain.SavingsGoalProgress, error)
	ListContributions(ctx context.Context, userID, goalID string) ([]domain.SavingsGoalContribution, error)
}

// SavingsGoalWriterSvc defines write operations for savings goals
type SavingsGoalWriterSvc interface {
	CreateGoal(ctx context.Context, userID string, req dto.CreateSavingsGoalRequest) (*domain.SavingsGoal, error)
	UpdateGoal(ctx context.Context, userID, goalID string, req dto.UpdateSavingsGoalRequest) (*domain.SavingsGoal, error)
	DeleteGoal(ctx context.Context, userID, goalID string) error
}

// ContributionSvc moves a goal's saved amount through contributions.
type ContributionSvc interface {
	AddContribution(ctx context.Context, userID, goalID string, req dto.ContributionRequest) (*domain.SavingsGoalContribution, error)
	UpdateContribution(ctx context.Context, userID, goalID, contributionID string, req dto.ContributionRequest) (*domain.SavingsGoalContribution, error)
	DeleteContribution(ctx context.Context, userID, goalID, contributionID string) error
}

// SavingsGoalSvcFacade combines all savings goal-related service interfaces
type SavingsGoalSvcFacade interface {
	SavingsGoalReaderSvc
	SavingsGoalWriterSvc
	ContributionSvc
}
