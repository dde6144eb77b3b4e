package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Aquaier/Savoo/internal/apperrors"
	"github.com/Aquaier/Savoo/internal/core/domain"
	portsrepo "github.com/Aquaier/Savoo/internal/core/ports/repositories"
	portssvc "github.com/Aquaier/Savoo/internal/core/ports/services"
	"github.com/Aquaier/Savoo/internal/dto"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// savingsGoalService keeps each goal's saved amount equal to the sum of its contributions.
type savingsGoalService struct {
	BaseService
	goalRepo     portsrepo.SavingsGoalRepositoryWithTx
	categoryRepo portsrepo.CategoryReader
	converter    portssvc.ConversionSvc
	userSvc      portssvc.UserReaderSvc
	now          Clock
}

// SavingsGoalServiceOption configures the savings goal service
type SavingsGoalServiceOption func(*savingsGoalService)

// WithSavingsGoalClock overrides the time source.
func WithSavingsGoalClock(now Clock) SavingsGoalServiceOption {
	return func(s *savingsGoalService) { s.now = now }
}

// NewSavingsGoalService creates a new savings goal service.
func NewSavingsGoalService(
	goalRepo portsrepo.SavingsGoalRepositoryWithTx,
	categoryRepo portsrepo.CategoryReader,
	converter portssvc.ConversionSvc,
	userSvc portssvc.UserReaderSvc,
	options ...SavingsGoalServiceOption,
) portssvc.SavingsGoalSvcFacade {
	svc := &savingsGoalService{
		goalRepo:     goalRepo,
		categoryRepo: categoryRepo,
		converter:    converter,
		userSvc:      userSvc,
		now:          time.Now,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.SavingsGoalSvcFacade = (*savingsGoalService)(nil)

func (s *savingsGoalService) inTx(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := s.goalRepo.Begin(ctx)
	if err != nil {
		return err
	}
	defer s.goalRepo.Rollback(ctx, tx) // no-op once committed

	if err := fn(tx); err != nil {
		return err
	}
	return s.goalRepo.Commit(ctx, tx)
}

// toBase converts an amount given in currency, or the user's default currency, to base.
func (s *savingsGoalService) toBase(ctx context.Context, userID string, amount decimal.Decimal, currency string) (decimal.Decimal, error) {
	inputCurrency, err := s.userSvc.DisplayCurrency(ctx, userID, currency)
	if err != nil {
		return decimal.Zero, err
	}
	return s.converter.ToBase(ctx, amount, inputCurrency)
}

func (s *savingsGoalService) CreateGoal(ctx context.Context, userID string, req dto.CreateSavingsGoalRequest) (*domain.SavingsGoal, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apperrors.NewValidationError("name is required")
	}
	if !req.TargetAmount.IsPositive() {
		return nil, apperrors.NewValidationError("targetAmount must be greater than zero")
	}
	opening := decimal.Zero
	if req.CurrentAmount != nil {
		if req.CurrentAmount.IsNegative() {
			return nil, apperrors.NewValidationError("currentAmount cannot be negative")
		}
		opening = *req.CurrentAmount
	}
	deadline, err := parseOptionalDate("deadline", req.Deadline)
	if err != nil {
		return nil, err
	}
	categoryID := nonEmpty(req.CategoryID)
	if err := requireOwnedCategory(ctx, s.categoryRepo, userID, categoryID); err != nil {
		return nil, err
	}

	target, err := s.toBase(ctx, userID, req.TargetAmount, req.Currency)
	if err != nil {
		return nil, err
	}
	openingBase, err := s.toBase(ctx, userID, opening, req.Currency)
	if err != nil {
		return nil, err
	}

	now := s.now()
	goal := domain.SavingsGoal{
		GoalID:       uuid.NewString(),
		UserID:       userID,
		Name:         name,
		TargetAmount: target,
		Deadline:     deadline,
		CategoryID:   categoryID,
		IsActive:     true,
		AuditFields:  domain.AuditFields{CreatedAt: now, LastUpdatedAt: now},
	}

	err = s.inTx(ctx, func(tx pgx.Tx) error {
		if !openingBase.IsPositive() {
			return s.goalRepo.SaveGoalInTx(ctx, tx, goal)
		}
		goal.ApplyContribution(openingBase)
		if err := s.goalRepo.SaveGoalInTx(ctx, tx, goal); err != nil {
			return err
		}
		return s.goalRepo.SaveContributionInTx(ctx, tx, domain.SavingsGoalContribution{
			ContributionID: uuid.NewString(),
			GoalID:         goal.GoalID,
			Amount:         openingBase,
			Note:           domain.OpeningContributionNote,
			CreatedAt:      now,
		})
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to create savings goal", slog.String("user_id", userID))
		return nil, err
	}

	s.LogInfo(ctx, "Savings goal created successfully",
		slog.String("goal_id", goal.GoalID),
		slog.String("user_id", userID))
	return &goal, nil
}

func (s *savingsGoalService) UpdateGoal(ctx context.Context, userID, goalID string, req dto.UpdateSavingsGoalRequest) (*domain.SavingsGoal, error) {
	goal, err := s.goalRepo.FindGoalByID(ctx, userID, goalID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, apperrors.NewValidationError("name cannot be empty")
		}
		goal.Name = name
	}
	if req.TargetAmount != nil {
		if !req.TargetAmount.IsPositive() {
			return nil, apperrors.NewValidationError("targetAmount must be greater than zero")
		}
		if goal.TargetAmount, err = s.toBase(ctx, userID, *req.TargetAmount, req.Currency); err != nil {
			return nil, err
		}
	}
	if req.Deadline != nil {
		if goal.Deadline, err = parseOptionalDate("deadline", req.Deadline); err != nil {
			return nil, err
		}
	}
	if req.CategoryID != nil {
		categoryID := nonEmpty(req.CategoryID)
		if err := requireOwnedCategory(ctx, s.categoryRepo, userID, categoryID); err != nil {
			return nil, err
		}
		goal.CategoryID = categoryID
	}
	if req.IsActive != nil {
		goal.IsActive = *req.IsActive
	}
	goal.LastUpdatedAt = s.now()

	if err := s.goalRepo.UpdateGoal(ctx, *goal); err != nil {
		s.LogError(ctx, err, "Failed to update savings goal", slog.String("goal_id", goalID))
		return nil, err
	}
	return goal, nil
}

func (s *savingsGoalService) DeleteGoal(ctx context.Context, userID, goalID string) error {
	if err := s.goalRepo.DeleteGoal(ctx, userID, goalID); err != nil {
		s.LogError(ctx, err, "Failed to delete savings goal", slog.String("goal_id", goalID))
		return err
	}
	s.LogInfo(ctx, "Savings goal deleted successfully", slog.String("goal_id", goalID))
	return nil
}

func (s *savingsGoalService) AddContribution(ctx context.Context, userID, goalID string, req dto.ContributionRequest) (*domain.SavingsGoalContribution, error) {
	if !req.Amount.IsPositive() {
		return nil, apperrors.NewValidationError("amount must be greater than zero")
	}
	amount, err := s.toBase(ctx, userID, req.Amount, req.Currency)
	if err != nil {
		return nil, err
	}

	now := s.now()
	contribution := domain.SavingsGoalContribution{
		ContributionID: uuid.NewString(),
		GoalID:         goalID,
		Amount:         amount,
		Note:           strings.TrimSpace(req.Note),
		CreatedAt:      now,
	}
	err = s.inTx(ctx, func(tx pgx.Tx) error {
		goal, err := s.goalRepo.FindGoalForUpdate(ctx, tx, userID, goalID)
		if err != nil {
			return err
		}
		goal.ApplyContribution(amount)
		if err := s.goalRepo.SaveContributionInTx(ctx, tx, contribution); err != nil {
			return err
		}
		return s.goalRepo.UpdateGoalAmountInTx(ctx, tx, goalID, goal.CurrentAmount, now)
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to add contribution", slog.String("goal_id", goalID))
		return nil, err
	}
	return &contribution, nil
}

func (s *savingsGoalService) UpdateContribution(ctx context.Context, userID, goalID, contributionID string, req dto.ContributionRequest) (*domain.SavingsGoalContribution, error) {
	if !req.Amount.IsPositive() {
		return nil, apperrors.NewValidationError("amount must be greater than zero")
	}
	amount, err := s.toBase(ctx, userID, req.Amount, req.Currency)
	if err != nil {
		return nil, err
	}

	var updated domain.SavingsGoalContribution
	err = s.inTx(ctx, func(tx pgx.Tx) error {
		goal, err := s.goalRepo.FindGoalForUpdate(ctx, tx, userID, goalID)
		if err != nil {
			return err
		}
		existing, err := s.goalRepo.FindContributionForUpdate(ctx, tx, goalID, contributionID)
		if err != nil {
			return err
		}
		goal.AdjustContribution(existing.Amount, amount)

		updated = *existing
		updated.Amount = amount
		updated.Note = strings.TrimSpace(req.Note)
		if err := s.goalRepo.UpdateContributionInTx(ctx, tx, updated); err != nil {
			return err
		}
		return s.goalRepo.UpdateGoalAmountInTx(ctx, tx, goalID, goal.CurrentAmount, s.now())
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to update contribution",
			slog.String("goal_id", goalID),
			slog.String("contribution_id", contributionID))
		return nil, err
	}
	return &updated, nil
}

func (s *savingsGoalService) DeleteContribution(ctx context.Context, userID, goalID, contributionID string) error {
	err := s.inTx(ctx, func(tx pgx.Tx) error {
		goal, err := s.goalRepo.FindGoalForUpdate(ctx, tx, userID, goalID)
		if err != nil {
			return err
		}
		existing, err := s.goalRepo.FindContributionForUpdate(ctx, tx, goalID, contributionID)
		if err != nil {
			return err
		}
		goal.RemoveContribution(existing.Amount)
		if err := s.goalRepo.DeleteContributionInTx(ctx, tx, goalID, contributionID); err != nil {
			return err
		}
		return s.goalRepo.UpdateGoalAmountInTx(ctx, tx, goalID, goal.CurrentAmount, s.now())
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to delete contribution",
			slog.String("goal_id", goalID),
			slog.String("contribution_id", contributionID))
		return err
	}
	return nil
}

func (s *savingsGoalService) ListContributions(ctx context.Context, userID, goalID string) ([]domain.SavingsGoalContribution, error) {
	if _, err := s.goalRepo.FindGoalByID(ctx, userID, goalID); err != nil {
		return nil, err
	}
	return s.goalRepo.ListContributions(ctx, goalID)
}

func (s *savingsGoalService) GetGoal(ctx context.Context, userID, goalID, currency string) (*domain.SavingsGoalProgress, error) {
	goal, err := s.goalRepo.FindGoalByID(ctx, userID, goalID)
	if err != nil {
		return nil, err
	}
	progress, err := s.progress(ctx, userID, []domain.SavingsGoal{*goal}, currency)
	if err != nil {
		return nil, err
	}
	return &progress[0], nil
}

func (s *savingsGoalService) ListGoals(ctx context.Context, userID, currency string) ([]domain.SavingsGoalProgress, error) {
	goals, err := s.goalRepo.ListGoals(ctx, userID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list savings goals", slog.String("user_id", userID))
		return nil, err
	}
	return s.progress(ctx, userID, goals, currency)
}

// progress renders goals in the display currency. Percentages come from base amounts.
func (s *savingsGoalService) progress(ctx context.Context, userID string, goals []domain.SavingsGoal, currency string) ([]domain.SavingsGoalProgress, error) {
	out := make([]domain.SavingsGoalProgress, 0, len(goals))
	if len(goals) == 0 {
		return out, nil
	}
	display, err := s.userSvc.DisplayCurrency(ctx, userID, currency)
	if err != nil {
		return nil, err
	}

	ids := make([]string, len(goals))
	for i, g := range goals {
		ids[i] = g.GoalID
	}
	totals, err := s.goalRepo.ContributionTotals(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("summing contributions: %w", err)
	}

	for _, g := range goals {
		total := totals[g.GoalID]
		p := domain.SavingsGoalProgress{
			Goal:              g,
			Contributed:       total.Sum,
			ContributionCount: total.Count,
			ProgressPercent:   g.ProgressPercent(),
			Currency:          display,
		}
		conversions := []struct {
			amount decimal.Decimal
			dst    *decimal.Decimal
		}{
			{g.TargetAmount, &p.TargetDisplay},
			{g.CurrentAmount, &p.CurrentDisplay},
			{g.Remaining(), &p.RemainingDisplay},
			{total.Sum, &p.ContributedDisplay},
		}
		for _, c := range conversions {
			if *c.dst, err = s.converter.FromBase(ctx, c.amount, display); err != nil {
				return nil, fmt.Errorf("converting goal %s: %w", g.GoalID, err)
			}
		}
		out = append(out, p)
	}
	return out, nil
}
