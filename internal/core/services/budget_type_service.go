package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/Aquaier/Savoo/internal/apperrors"
	"github.com/Aquaier/Savoo/internal/core/domain"
	portsrepo "github.com/Aquaier/Savoo/internal/core/ports/repositories"
	portssvc "github.com/Aquaier/Savoo/internal/core/ports/services"
	"github.com/Aquaier/Savoo/internal/dto"
	"github.com/google/uuid"
)

type budgetTypeService struct {
	BaseService
	budgetTypeRepo portsrepo.BudgetTypeRepositoryFacade
}

// NewBudgetTypeService creates a new budget type service.
func NewBudgetTypeService(budgetTypeRepo portsrepo.BudgetTypeRepositoryFacade) portssvc.BudgetTypeSvcFacade {
	return &budgetTypeService{budgetTypeRepo: budgetTypeRepo}
}

var _ portssvc.BudgetTypeSvcFacade = (*budgetTypeService)(nil)

func (s *budgetTypeService) ListBudgetTypes(ctx context.Context, userID string) ([]domain.BudgetType, error) {
	types, err := s.budgetTypeRepo.ListBudgetTypes(ctx, userID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list budget types", slog.String("user_id", userID))
		return nil, err
	}
	return types, nil
}

func (s *budgetTypeService) CreateBudgetType(ctx context.Context, userID string, req dto.CreateBudgetTypeRequest) (*domain.BudgetType, error) {
	name := domain.NormalizeBudgetTypeName(req.Name)
	if !domain.ValidBudgetTypeName(name) {
		return nil, apperrors.NewValidationError(
			fmt.Sprintf("name must be at least %d characters", domain.MinBudgetTypeNameLength))
	}

	budgetType := domain.BudgetType{
		BudgetTypeID: uuid.NewString(),
		UserID:       userID,
		Name:         name,
		CreatedAt:    time.Now(),
	}
	if err := s.budgetTypeRepo.SaveBudgetType(ctx, budgetType); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, apperrors.NewAppError(http.StatusConflict, "budget type already exists", err)
		}
		s.LogError(ctx, err, "Failed to save budget type", slog.String("user_id", userID))
		return nil, err
	}
	s.LogInfo(ctx, "Budget type created",
		slog.String("user_id", userID),
		slog.String("budget_type", name))
	return &budgetType, nil
}

// DeleteBudgetType removes a catalogue entry. Budgets already labelled with it keep the label.
func (s *budgetTypeService) DeleteBudgetType(ctx context.Context, userID, budgetTypeID string) error {
	if err := s.budgetTypeRepo.DeleteBudgetType(ctx, userID, budgetTypeID); err != nil {
		s.LogError(ctx, err, "Failed to delete budget type", slog.String("budget_type_id", budgetTypeID))
		return err
	}
	return nil
}
