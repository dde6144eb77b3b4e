package services

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"time"

	"github.com/Aquaier/Savoo/internal/apperrors"
	"github.com/Aquaier/Savoo/internal/core/domain"
	portsrepo "github.com/Aquaier/Savoo/internal/core/ports/repositories"
	portssvc "github.com/Aquaier/Savoo/internal/core/ports/services"
	"github.com/Aquaier/Savoo/internal/dto"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

const (
	topCategoryCount  = 5
	recentBudgetCount = 3
)

// exportOpenEnd bounds an export with no end date.
var exportOpenEnd = time.Date(9999, 12, 31, 0, 0, 0, 0, time.UTC)

// reportingService implements the dashboard and export operations
type reportingService struct {
	BaseService
	reportingRepo portsrepo.ReportingRepositoryFacade
	budgetRepo    portsrepo.BudgetReader
	converter     portssvc.ConversionSvc
	userSvc       portssvc.UserReaderSvc
	materializer  portssvc.RecurringMaterializerSvc
	loc           *time.Location
	now           Clock
}

// ReportingServiceOption is a functional option for configuring the reporting service
type ReportingServiceOption func(*reportingService)

// WithReportingMaterializer makes reports generate due recurring transactions first.
func WithReportingMaterializer(m portssvc.RecurringMaterializerSvc) ReportingServiceOption {
	return func(s *reportingService) { s.materializer = m }
}

// WithReportingTimezone sets the zone used to decide what "today" is.
func WithReportingTimezone(loc *time.Location) ReportingServiceOption {
	return func(s *reportingService) { s.loc = loc }
}

// WithReportingClock overrides the time source.
func WithReportingClock(now Clock) ReportingServiceOption {
	return func(s *reportingService) { s.now = now }
}

// NewReportingService creates a new reporting service with the provided options
func NewReportingService(
	reportingRepo portsrepo.ReportingRepositoryFacade,
	budgetRepo portsrepo.BudgetReader,
	converter portssvc.ConversionSvc,
	userSvc portssvc.UserReaderSvc,
	options ...ReportingServiceOption,
) portssvc.ReportingSvcFacade {
	svc := &reportingService{
		reportingRepo: reportingRepo,
		budgetRepo:    budgetRepo,
		converter:     converter,
		userSvc:       userSvc,
		loc:           time.UTC,
		now:           time.Now,
	}

	for _, option := range options {
		option(svc)
	}

	return svc
}

// Ensure reportingService implements the ReportingSvcFacade interface
var _ portssvc.ReportingSvcFacade = (*reportingService)(nil)

func (s *reportingService) materialize(ctx context.Context, userID string) {
	if s.materializer == nil {
		return
	}
	if _, err := s.materializer.Materialize(ctx, userID); err != nil {
		s.LogWarn(ctx, "Failed to materialize recurring transactions",
			slog.String("user_id", userID),
			slog.String("error", err.Error()))
	}
}

func (s *reportingService) dashboardRange(params dto.DashboardParams) (domain.SummaryPeriod, time.Time, time.Time, error) {
	today := domain.TruncateToDate(s.now(), s.loc)
	period := domain.SummaryPeriod(params.Period)
	if period == "" {
		period = domain.PeriodMonthly
	}

	if from, to, ok := period.Range(today); ok {
		return period, from, to, nil
	}
	if period != domain.PeriodCustom {
		return "", time.Time{}, time.Time{}, apperrors.NewValidationError("period must be weekly, monthly, yearly or custom")
	}

	from, to := domain.MonthBounds(today)
	to = today
	if parsed, err := parseOptionalDate("from", &params.From); err != nil {
		return "", time.Time{}, time.Time{}, err
	} else if parsed != nil {
		from = *parsed
	}
	if parsed, err := parseOptionalDate("to", &params.To); err != nil {
		return "", time.Time{}, time.Time{}, err
	} else if parsed != nil {
		to = *parsed
	}
	if to.Before(from) {
		return "", time.Time{}, time.Time{}, apperrors.NewValidationError("to must not be before from")
	}
	return period, from, to, nil
}

// GetDashboard summarises income, expense and spending by category over the period.
func (s *reportingService) GetDashboard(ctx context.Context, userID string, params dto.DashboardParams) (*domain.DashboardSummary, error) {
	period, from, to, err := s.dashboardRange(params)
	if err != nil {
		return nil, err
	}
	display, err := s.userSvc.DisplayCurrency(ctx, userID, params.Currency)
	if err != nil {
		return nil, err
	}

	s.materialize(ctx, userID)

	var (
		totals     []domain.CurrencyTotal
		categories []domain.CategoryCurrencyTotal
		budgets    []domain.Budget
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		totals, err = s.reportingRepo.SumByTypeAndCurrency(gctx, userID, from, to)
		return err
	})
	g.Go(func() error {
		var err error
		categories, err = s.reportingRepo.SumExpensesByCategory(gctx, userID, from, to)
		return err
	})
	g.Go(func() error {
		var err error
		budgets, err = s.budgetRepo.ListRecentBudgets(gctx, userID, recentBudgetCount)
		return err
	})
	if err := g.Wait(); err != nil {
		s.LogError(ctx, err, "Failed to load dashboard data", slog.String("user_id", userID))
		return nil, fmt.Errorf("failed to load dashboard data: %w", err)
	}

	incomeBase, expenseBase := decimal.Zero, decimal.Zero
	for _, t := range totals {
		base, err := s.totalToBase(ctx, t)
		if err != nil {
			return nil, err
		}
		switch t.Type {
		case domain.TransactionIncome:
			incomeBase = incomeBase.Add(base)
		case domain.TransactionExpense:
			expenseBase = expenseBase.Add(base)
		}
	}

	summary := &domain.DashboardSummary{
		Period:        period,
		From:          from,
		To:            to,
		Currency:      display,
		TopCategories: []domain.CategorySpend{},
		RecentBudgets: []domain.BudgetLimit{},
	}
	if summary.TotalIncome, err = s.converter.FromBase(ctx, incomeBase, display); err != nil {
		return nil, err
	}
	if summary.TotalExpense, err = s.converter.FromBase(ctx, expenseBase, display); err != nil {
		return nil, err
	}
	if summary.NetSavings, err = s.converter.FromBase(ctx, incomeBase.Sub(expenseBase), display); err != nil {
		return nil, err
	}

	top, err := s.topCategories(ctx, categories)
	if err != nil {
		return nil, err
	}
	for _, c := range top {
		if c.Amount, err = s.converter.FromBase(ctx, c.Amount, display); err != nil {
			return nil, err
		}
		summary.TopCategories = append(summary.TopCategories, c)
	}

	for _, b := range budgets {
		limit, err := s.converter.FromBase(ctx, b.LimitAmount, display)
		if err != nil {
			return nil, err
		}
		summary.RecentBudgets = append(summary.RecentBudgets, domain.BudgetLimit{BudgetID: b.BudgetID, Name: b.Name, Limit: limit})
	}

	s.LogDebug(ctx, "Dashboard summary generated",
		slog.String("user_id", userID),
		slog.String("period", string(period)),
		slog.String("currency", display))
	return summary, nil
}

// totalToBase adds the converted part of a total to its legacy part converted from
// the row currency.
func (s *reportingService) totalToBase(ctx context.Context, t domain.CurrencyTotal) (decimal.Decimal, error) {
	if t.Legacy.IsZero() {
		return t.Base, nil
	}
	legacy, err := s.converter.ToBase(ctx, t.Legacy, t.Currency)
	if err != nil {
		return decimal.Zero, err
	}
	return t.Base.Add(legacy), nil
}

// topCategories merges per-currency category totals and returns the largest, still in base units.
func (s *reportingService) topCategories(ctx context.Context, rows []domain.CategoryCurrencyTotal) ([]domain.CategorySpend, error) {
	index := make(map[string]int)
	var merged []domain.CategorySpend
	for _, row := range rows {
		base, err := s.totalToBase(ctx, row.CurrencyTotal)
		if err != nil {
			return nil, err
		}
		key := ""
		if row.CategoryID != nil {
			key = *row.CategoryID
		}
		if i, ok := index[key]; ok {
			merged[i].Amount = merged[i].Amount.Add(base)
			continue
		}
		index[key] = len(merged)
		merged = append(merged, domain.CategorySpend{
			CategoryID:   row.CategoryID,
			CategoryName: row.CategoryName,
			Color:        row.Color,
			Amount:       base,
		})
	}

	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].Amount.GreaterThan(merged[j].Amount)
	})
	if len(merged) > topCategoryCount {
		merged = merged[:topCategoryCount]
	}
	return merged, nil
}

// ExportTransactionsCSV writes one row per transaction, oldest first.
func (s *reportingService) ExportTransactionsCSV(ctx context.Context, userID string, params dto.ExportParams, w io.Writer) error {
	from, to := time.Time{}, exportOpenEnd
	if parsed, err := parseOptionalDate("from", &params.From); err != nil {
		return err
	} else if parsed != nil {
		from = *parsed
	}
	if parsed, err := parseOptionalDate("to", &params.To); err != nil {
		return err
	} else if parsed != nil {
		to = *parsed
	}
	if to.Before(from) {
		return apperrors.NewValidationError("to must not be before from")
	}

	display, err := s.userSvc.DisplayCurrency(ctx, userID, params.Currency)
	if err != nil {
		return err
	}

	s.materialize(ctx, userID)

	rows, err := s.reportingRepo.ListExportRows(ctx, userID, from, to)
	if err != nil {
		s.LogError(ctx, err, "Failed to load export rows", slog.String("user_id", userID))
		return fmt.Errorf("failed to load export rows: %w", err)
	}

	writer := csv.NewWriter(w)
	header := []string{"Date", "Type", "Category", "Amount", "Currency", fmt.Sprintf("Amount (%s)", display), "Note"}
	if err := writer.Write(header); err != nil {
		return err
	}
	for _, row := range rows {
		amount, err := displayAmount(ctx, s.converter, row.Transaction, display)
		if err != nil {
			return err
		}
		category := row.CategoryName
		if category == "" {
			category = "-"
		}
		record := []string{
			row.OccurredOn.Format(domain.DateLayout),
			string(row.Type),
			category,
			row.Amount.StringFixed(2),
			row.Currency,
			amount.StringFixed(2),
			row.Note,
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to write csv: %w", err)
	}

	s.LogInfo(ctx, "Transactions exported",
		slog.String("user_id", userID),
		slog.Int("row_count", len(rows)))
	return nil
}
