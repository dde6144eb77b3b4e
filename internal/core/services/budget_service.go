package services

import (
	"context"
	"errors"
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
	"github.com/shopspring/decimal"
)

// budgetService derives budget spend from expense transactions and raises threshold alerts.
type budgetService struct {
	BaseService
	budgetRepo   portsrepo.BudgetRepositoryFacade
	txnRepo      portsrepo.TransactionReader
	categoryRepo portsrepo.CategoryReader
	budgetTypes  portsrepo.BudgetTypeReader
	converter    portssvc.ConversionSvc
	userSvc      portssvc.UserReaderSvc
	materializer portssvc.RecurringMaterializerSvc
	notifier     portssvc.BudgetNotifier
	threshold    decimal.Decimal
	loc          *time.Location
	now          Clock
}

// BudgetServiceOption configures the budget service
type BudgetServiceOption func(*budgetService)

// WithBudgetNotifier sets where threshold alerts are delivered.
func WithBudgetNotifier(notifier portssvc.BudgetNotifier) BudgetServiceOption {
	return func(s *budgetService) { s.notifier = notifier }
}

// WithBudgetTypes makes budgets accept only the default type or one from the
// user's budget type catalogue.
func WithBudgetTypes(reader portsrepo.BudgetTypeReader) BudgetServiceOption {
	return func(s *budgetService) { s.budgetTypes = reader }
}

// WithBudgetMaterializer makes reads generate due recurring transactions first.
func WithBudgetMaterializer(m portssvc.RecurringMaterializerSvc) BudgetServiceOption {
	return func(s *budgetService) { s.materializer = m }
}

// WithBudgetAlertThreshold sets the utilization ratio that triggers an alert.
func WithBudgetAlertThreshold(threshold decimal.Decimal) BudgetServiceOption {
	return func(s *budgetService) { s.threshold = threshold }
}

// WithBudgetTimezone sets the zone used to decide what "today" is.
func WithBudgetTimezone(loc *time.Location) BudgetServiceOption {
	return func(s *budgetService) { s.loc = loc }
}

// WithBudgetClock overrides the time source.
func WithBudgetClock(now Clock) BudgetServiceOption {
	return func(s *budgetService) { s.now = now }
}

// NewBudgetService creates a new budget service.
func NewBudgetService(
	budgetRepo portsrepo.BudgetRepositoryFacade,
	txnRepo portsrepo.TransactionReader,
	categoryRepo portsrepo.CategoryReader,
	converter portssvc.ConversionSvc,
	userSvc portssvc.UserReaderSvc,
	options ...BudgetServiceOption,
) portssvc.BudgetSvcFacade {
	svc := &budgetService{
		budgetRepo:   budgetRepo,
		txnRepo:      txnRepo,
		categoryRepo: categoryRepo,
		converter:    converter,
		userSvc:      userSvc,
		threshold:    domain.DefaultAlertThreshold,
		loc:          time.UTC,
		now:          time.Now,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.BudgetSvcFacade = (*budgetService)(nil)

func (s *budgetService) today() time.Time {
	return domain.TruncateToDate(s.now(), s.loc)
}

// ComputeBudgetStats aggregates the expenses that fall in each budget's window.
// Transactions linked to the budget count first; when none of them add up to
// anything and the budget has a category, unlinked expenses of that category
// are used instead.
func (s *budgetService) ComputeBudgetStats(ctx context.Context, budgets []domain.Budget, expenses []domain.Transaction, displayCurrency string) ([]domain.BudgetStats, error) {
	today := s.today()
	display := domain.NormalizeCurrencyCode(displayCurrency, s.converter.BaseCurrency())

	baseAmounts := make([]*decimal.Decimal, len(expenses))
	baseAmount := func(i int) (decimal.Decimal, error) {
		if baseAmounts[i] != nil {
			return *baseAmounts[i], nil
		}
		t := expenses[i]
		amount := t.ConvertedAmount.Decimal
		if !t.ConvertedAmount.Valid {
			converted, err := s.converter.ToBase(ctx, t.Amount, t.Currency)
			if err != nil {
				return decimal.Zero, err
			}
			amount = converted
		}
		baseAmounts[i] = &amount
		return amount, nil
	}

	stats := make([]domain.BudgetStats, 0, len(budgets))
	for _, b := range budgets {
		start, end := b.Window(today)

		matched, fallback := decimal.Zero, decimal.Zero
		matchedCount, fallbackCount := 0, 0
		for i, t := range expenses {
			if t.Type != domain.TransactionExpense {
				continue
			}
			if !domain.Covers(start, end, domain.TruncateToDate(t.OccurredOn, time.UTC)) {
				continue
			}
			linked := t.BudgetID != nil && *t.BudgetID == b.BudgetID
			legacy := t.BudgetID == nil && b.CategoryID != nil && t.CategoryID != nil && *t.CategoryID == *b.CategoryID
			if !linked && !legacy {
				continue
			}
			amount, err := baseAmount(i)
			if err != nil {
				s.LogError(ctx, err, "Failed to convert transaction to base currency",
					slog.String("transaction_id", t.TransactionID))
				return nil, fmt.Errorf("converting transaction %s: %w", t.TransactionID, err)
			}
			if linked {
				matched = matched.Add(amount)
				matchedCount++
			} else {
				fallback = fallback.Add(amount)
				fallbackCount++
			}
		}

		spent, count := matched, matchedCount
		if matched.IsZero() && b.CategoryID != nil {
			spent, count = fallback, fallbackCount
		}

		limitDisplay, err := s.converter.FromBase(ctx, b.LimitAmount, display)
		if err != nil {
			return nil, fmt.Errorf("converting limit of budget %s: %w", b.BudgetID, err)
		}
		spentDisplay, err := s.converter.FromBase(ctx, spent, display)
		if err != nil {
			return nil, fmt.Errorf("converting spend of budget %s: %w", b.BudgetID, err)
		}

		st := domain.BudgetStats{
			Budget:           b,
			SpentAmountBase:  spent,
			TransactionCount: count,
			LimitDisplay:     limitDisplay,
			SpentDisplay:     spentDisplay,
			Remaining:        limitDisplay.Sub(spentDisplay),
			Currency:         display,
			WindowStart:      start,
			WindowEnd:        end,
		}
		if !limitDisplay.IsZero() {
			u := spentDisplay.Div(limitDisplay)
			st.Utilization = &u
		}

		// A failed alert never fails the read.
		notified, err := s.MaybeNotify(ctx, st)
		if err != nil {
			s.LogWarn(ctx, "Budget notification check failed",
				slog.String("budget_id", b.BudgetID),
				slog.String("error", err.Error()))
		}
		if notified {
			at := s.now()
			st.Budget.LastNotifiedAt = &at
		}
		stats = append(stats, st)
	}
	return stats, nil
}

// MaybeNotify alerts when the budget's displayed utilization crosses the threshold. The
// last_notified_at stamp is claimed before the notifier runs, so concurrent
// callers on the same day produce a single alert; if delivery then fails, that
// day's alert is dropped.
func (s *budgetService) MaybeNotify(ctx context.Context, stats domain.BudgetStats) (bool, error) {
	b := stats.Budget
	if !stats.CrossesThreshold(s.threshold) {
		return false, nil
	}
	now := s.now()
	if b.NotifiedOn(now, s.loc) {
		return false, nil
	}

	claimed, err := s.budgetRepo.ClaimBudgetNotification(ctx, b.BudgetID, now, domain.StartOfDay(now, s.loc))
	if err != nil {
		return false, fmt.Errorf("claiming notification for budget %s: %w", b.BudgetID, err)
	}
	if !claimed {
		return false, nil
	}

	n := domain.NewBudgetNotification(b, b.LimitAmount, stats.SpentAmountBase, now)
	if s.notifier != nil {
		if err := s.notifier.NotifyBudget(ctx, n); err != nil {
			s.LogError(ctx, err, "Failed to deliver budget notification",
				slog.String("budget_id", b.BudgetID))
			return true, nil
		}
	}
	s.LogInfo(ctx, "Budget notification sent",
		slog.String("budget_id", b.BudgetID),
		slog.Bool("exceeded", n.Exceeded),
		slog.String("percent_used", n.PercentUsed.String()))
	return true, nil
}

func (s *budgetService) materialize(ctx context.Context, userID string) {
	if s.materializer == nil {
		return
	}
	if _, err := s.materializer.Materialize(ctx, userID); err != nil {
		s.LogWarn(ctx, "Failed to materialize recurring transactions",
			slog.String("user_id", userID),
			slog.String("error", err.Error()))
	}
}

func (s *budgetService) statsFor(ctx context.Context, userID string, budgets []domain.Budget, currency string) ([]domain.BudgetStats, error) {
	if len(budgets) == 0 {
		return []domain.BudgetStats{}, nil
	}
	display, err := s.userSvc.DisplayCurrency(ctx, userID, currency)
	if err != nil {
		return nil, err
	}

	today := s.today()
	from, to := budgets[0].Window(today)
	for _, b := range budgets[1:] {
		start, end := b.Window(today)
		if start.Before(from) {
			from = start
		}
		if end.After(to) {
			to = end
		}
	}

	expenses, err := s.txnRepo.ListExpensesBetween(ctx, userID, from, to)
	if err != nil {
		s.LogError(ctx, err, "Failed to list expenses for budgets", slog.String("user_id", userID))
		return nil, fmt.Errorf("listing expenses: %w", err)
	}
	return s.ComputeBudgetStats(ctx, budgets, expenses, display)
}

func (s *budgetService) GetBudget(ctx context.Context, userID, budgetID, currency string) (*domain.BudgetStats, error) {
	s.materialize(ctx, userID)

	budget, err := s.budgetRepo.FindBudgetByID(ctx, userID, budgetID)
	if err != nil {
		return nil, err
	}
	stats, err := s.statsFor(ctx, userID, []domain.Budget{*budget}, currency)
	if err != nil {
		return nil, err
	}
	return &stats[0], nil
}

func (s *budgetService) ListBudgets(ctx context.Context, userID, currency string) ([]domain.BudgetStats, error) {
	s.materialize(ctx, userID)

	budgets, err := s.budgetRepo.ListBudgets(ctx, userID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list budgets", slog.String("user_id", userID))
		return nil, err
	}
	return s.statsFor(ctx, userID, budgets, currency)
}

// limitToBase converts a limit given in currency (or the user's default) to the base currency.
func (s *budgetService) limitToBase(ctx context.Context, userID string, limit decimal.Decimal, currency string) (decimal.Decimal, error) {
	if !limit.IsPositive() {
		return decimal.Zero, apperrors.NewValidationError("limitAmount must be greater than zero")
	}
	inputCurrency, err := s.userSvc.DisplayCurrency(ctx, userID, currency)
	if err != nil {
		return decimal.Zero, err
	}
	return s.converter.ToBase(ctx, limit, inputCurrency)
}

func validateWindow(start, end *time.Time) error {
	if start != nil && end != nil && end.Before(*start) {
		return apperrors.NewValidationError("endDate must not be before startDate")
	}
	return nil
}

// resolveBudgetType lower-cases a budget type label, falling back to the default.
func (s *budgetService) resolveBudgetType(ctx context.Context, userID, raw string) (string, error) {
	budgetType := domain.NormalizeBudgetTypeName(raw)
	if budgetType == "" || budgetType == domain.DefaultBudgetType {
		return domain.DefaultBudgetType, nil
	}
	if s.budgetTypes == nil {
		return budgetType, nil
	}
	if _, err := s.budgetTypes.FindBudgetTypeByName(ctx, userID, budgetType); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return "", apperrors.NewValidationError(fmt.Sprintf("budget type %q does not exist", budgetType))
		}
		return "", fmt.Errorf("looking up budget type: %w", err)
	}
	return budgetType, nil
}

func (s *budgetService) CreateBudget(ctx context.Context, userID string, req dto.CreateBudgetRequest) (*domain.Budget, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apperrors.NewValidationError("name is required")
	}
	categoryID := nonEmpty(req.CategoryID)
	if err := requireOwnedCategory(ctx, s.categoryRepo, userID, categoryID); err != nil {
		return nil, err
	}
	start, err := parseOptionalDate("startDate", req.StartDate)
	if err != nil {
		return nil, err
	}
	end, err := parseOptionalDate("endDate", req.EndDate)
	if err != nil {
		return nil, err
	}
	if err := validateWindow(start, end); err != nil {
		return nil, err
	}
	limit, err := s.limitToBase(ctx, userID, req.LimitAmount, req.Currency)
	if err != nil {
		return nil, err
	}

	period := domain.BudgetPeriod(req.Period)
	if req.Period == "" {
		period = domain.BudgetPeriodMonthly
	}
	budgetType, err := s.resolveBudgetType(ctx, userID, req.BudgetType)
	if err != nil {
		return nil, err
	}

	now := s.now()
	budget := domain.Budget{
		BudgetID:    uuid.NewString(),
		UserID:      userID,
		CategoryID:  categoryID,
		Name:        name,
		LimitAmount: limit,
		Period:      period,
		BudgetType:  budgetType,
		StartDate:   start,
		EndDate:     end,
		AuditFields: domain.AuditFields{CreatedAt: now, LastUpdatedAt: now},
	}
	if err := s.budgetRepo.SaveBudget(ctx, budget); err != nil {
		s.LogError(ctx, err, "Failed to save budget", slog.String("user_id", userID))
		return nil, err
	}

	s.LogInfo(ctx, "Budget created successfully",
		slog.String("budget_id", budget.BudgetID),
		slog.String("user_id", userID))
	return &budget, nil
}

func (s *budgetService) UpdateBudget(ctx context.Context, userID, budgetID string, req dto.UpdateBudgetRequest) (*domain.Budget, error) {
	budget, err := s.budgetRepo.FindBudgetByID(ctx, userID, budgetID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, apperrors.NewValidationError("name cannot be empty")
		}
		budget.Name = name
	}
	if req.CategoryID != nil {
		categoryID := nonEmpty(req.CategoryID)
		if err := requireOwnedCategory(ctx, s.categoryRepo, userID, categoryID); err != nil {
			return nil, err
		}
		budget.CategoryID = categoryID
	}
	if req.Period != nil {
		budget.Period = domain.BudgetPeriod(*req.Period)
	}
	if req.BudgetType != nil {
		if budget.BudgetType, err = s.resolveBudgetType(ctx, userID, *req.BudgetType); err != nil {
			return nil, err
		}
	}
	if req.StartDate != nil {
		if budget.StartDate, err = parseOptionalDate("startDate", req.StartDate); err != nil {
			return nil, err
		}
	}
	if req.EndDate != nil {
		if budget.EndDate, err = parseOptionalDate("endDate", req.EndDate); err != nil {
			return nil, err
		}
	}
	if err := validateWindow(budget.StartDate, budget.EndDate); err != nil {
		return nil, err
	}
	if req.LimitAmount != nil {
		if budget.LimitAmount, err = s.limitToBase(ctx, userID, *req.LimitAmount, req.Currency); err != nil {
			return nil, err
		}
	}
	budget.LastUpdatedAt = s.now()

	if err := s.budgetRepo.UpdateBudget(ctx, *budget); err != nil {
		s.LogError(ctx, err, "Failed to update budget", slog.String("budget_id", budgetID))
		return nil, err
	}
	s.LogInfo(ctx, "Budget updated successfully", slog.String("budget_id", budgetID))
	return budget, nil
}

func (s *budgetService) DeleteBudget(ctx context.Context, userID, budgetID string) error {
	if err := s.budgetRepo.DeleteBudget(ctx, userID, budgetID); err != nil {
		s.LogError(ctx, err, "Failed to delete budget", slog.String("budget_id", budgetID))
		return err
	}
	s.LogInfo(ctx, "Budget deleted successfully", slog.String("budget_id", budgetID))
	return nil
}
