package services

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strconv"
	"time"

	"github.com/Aquaier/Savoo/internal/core/domain"
	portsrepo "github.com/Aquaier/Savoo/internal/core/ports/repositories"
	portssvc "github.com/Aquaier/Savoo/internal/core/ports/services"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// sectionMarker opens every block of the all-data export.
const sectionMarker = "SECTION"

// DataExportSources are the readers the all-data export pulls from.
type DataExportSources struct {
	Categories   portsrepo.CategoryReader
	BudgetTypes  portsrepo.BudgetTypeReader
	Budgets      portsrepo.BudgetReader
	SavingsGoals portsrepo.SavingsGoalReader
	Recurring    portsrepo.RecurringReader
	Reporting    portsrepo.ReportingRepositoryFacade
}

type dataExportService struct {
	BaseService
	sources      DataExportSources
	converter    portssvc.ConversionSvc
	userSvc      portssvc.UserReaderSvc
	materializer portssvc.RecurringMaterializerSvc
}

// DataExportServiceOption configures the data export service
type DataExportServiceOption func(*dataExportService)

// WithDataExportMaterializer makes the export generate due recurring transactions first.
func WithDataExportMaterializer(m portssvc.RecurringMaterializerSvc) DataExportServiceOption {
	return func(s *dataExportService) { s.materializer = m }
}

// NewDataExportService creates the all-data export service.
func NewDataExportService(
	sources DataExportSources,
	converter portssvc.ConversionSvc,
	userSvc portssvc.UserReaderSvc,
	options ...DataExportServiceOption,
) portssvc.DataExportSvcFacade {
	svc := &dataExportService{sources: sources, converter: converter, userSvc: userSvc}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.DataExportSvcFacade = (*dataExportService)(nil)

// userData is everything the export writes, loaded up front so a read failure
// never leaves a half-written document.
type userData struct {
	categories    []domain.Category
	budgetTypes   []domain.BudgetType
	budgets       []domain.Budget
	goals         []domain.SavingsGoal
	contributions []domain.SavingsGoalContribution
	recurring     []domain.RecurringTransaction
	transactions  []domain.ExportRow
}

func (s *dataExportService) load(ctx context.Context, userID string) (*userData, error) {
	var data userData
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		data.categories, err = s.sources.Categories.ListCategories(gctx, userID, nil)
		return err
	})
	g.Go(func() error {
		var err error
		data.budgetTypes, err = s.sources.BudgetTypes.ListBudgetTypes(gctx, userID)
		return err
	})
	g.Go(func() error {
		var err error
		data.budgets, err = s.sources.Budgets.ListBudgets(gctx, userID)
		return err
	})
	g.Go(func() error {
		goals, err := s.sources.SavingsGoals.ListGoals(gctx, userID)
		if err != nil {
			return err
		}
		data.goals = goals
		for _, goal := range goals {
			cs, err := s.sources.SavingsGoals.ListContributions(gctx, goal.GoalID)
			if err != nil {
				return err
			}
			data.contributions = append(data.contributions, cs...)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		data.recurring, err = s.sources.Recurring.ListRecurring(gctx, userID)
		return err
	})
	g.Go(func() error {
		var err error
		data.transactions, err = s.sources.Reporting.ListExportRows(gctx, userID, time.Time{}, exportOpenEnd)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.SliceStable(data.categories, func(i, j int) bool { return data.categories[i].CreatedAt.Before(data.categories[j].CreatedAt) })
	sort.SliceStable(data.budgetTypes, func(i, j int) bool { return data.budgetTypes[i].CreatedAt.Before(data.budgetTypes[j].CreatedAt) })
	sort.SliceStable(data.budgets, func(i, j int) bool { return data.budgets[i].CreatedAt.Before(data.budgets[j].CreatedAt) })
	sort.SliceStable(data.goals, func(i, j int) bool { return data.goals[i].CreatedAt.Before(data.goals[j].CreatedAt) })
	sort.SliceStable(data.contributions, func(i, j int) bool {
		return data.contributions[i].CreatedAt.Before(data.contributions[j].CreatedAt)
	})
	sort.SliceStable(data.recurring, func(i, j int) bool { return data.recurring[i].CreatedAt.Before(data.recurring[j].CreatedAt) })
	return &data, nil
}

func (s *dataExportService) ExportAllDataCSV(ctx context.Context, userID string, w io.Writer) error {
	user, err := s.userSvc.GetUserByID(ctx, userID)
	if err != nil {
		return err
	}
	display := domain.NormalizeCurrencyCode(user.DefaultCurrency, s.converter.BaseCurrency())

	if s.materializer != nil {
		if _, err := s.materializer.Materialize(ctx, userID); err != nil {
			s.LogWarn(ctx, "Failed to materialize recurring transactions",
				slog.String("user_id", userID),
				slog.String("error", err.Error()))
		}
	}

	data, err := s.load(ctx, userID)
	if err != nil {
		s.LogError(ctx, err, "Failed to load user data for export", slog.String("user_id", userID))
		return fmt.Errorf("failed to load user data: %w", err)
	}

	money := func(base decimal.Decimal) (string, error) {
		amount, err := s.converter.FromBase(ctx, base, display)
		if err != nil {
			return "", err
		}
		return amount.StringFixed(2), nil
	}

	sections := make([]exportSection, 0, 8)
	sections = append(sections, userSection(user, display))
	sections = append(sections, categorySection(data.categories), budgetTypeSection(data.budgetTypes))

	budgets := exportSection{
		name:   "budgets",
		header: []string{"id", "name", "limit_amount", "period", "budget_type", "category_id", "start_date", "end_date", "created_at"},
	}
	for _, b := range data.budgets {
		limit, err := money(b.LimitAmount)
		if err != nil {
			return err
		}
		budgets.rows = append(budgets.rows, []string{
			b.BudgetID, b.Name, limit, string(b.Period), b.BudgetType, optionalString(b.CategoryID),
			optionalDate(b.StartDate), optionalDate(b.EndDate), timestamp(b.CreatedAt),
		})
	}

	goals := exportSection{
		name:   "savings_goals",
		header: []string{"id", "name", "target_amount", "current_amount", "deadline", "category_id", "is_active", "created_at", "updated_at"},
	}
	for _, g := range data.goals {
		target, err := money(g.TargetAmount)
		if err != nil {
			return err
		}
		current, err := money(g.CurrentAmount)
		if err != nil {
			return err
		}
		goals.rows = append(goals.rows, []string{
			g.GoalID, g.Name, target, current, optionalDate(g.Deadline), optionalString(g.CategoryID),
			strconv.FormatBool(g.IsActive), timestamp(g.CreatedAt), timestamp(g.LastUpdatedAt),
		})
	}

	contributions := exportSection{
		name:   "contributions",
		header: []string{"id", "goal_id", "amount", "note", "created_at"},
	}
	for _, c := range data.contributions {
		amount, err := money(c.Amount)
		if err != nil {
			return err
		}
		contributions.rows = append(contributions.rows, []string{c.ContributionID, c.GoalID, amount, c.Note, timestamp(c.CreatedAt)})
	}

	transactions := exportSection{
		name: "transactions",
		header: []string{
			"id", "occurred_on", "type", "amount", "currency", "converted_amount_" + display,
			"category_id", "category_name", "budget_id", "budget_name", "note", "kind", "created_at",
		},
	}
	for _, row := range data.transactions {
		converted, err := displayAmount(ctx, s.converter, row.Transaction, display)
		if err != nil {
			return err
		}
		transactions.rows = append(transactions.rows, []string{
			row.TransactionID, row.OccurredOn.Format(domain.DateLayout), string(row.Type), row.Amount.StringFixed(2),
			domain.NormalizeCurrencyCode(row.Currency, display), converted.StringFixed(2),
			optionalString(row.CategoryID), row.CategoryName, optionalString(row.BudgetID), row.BudgetName,
			row.Note, row.Kind, timestamp(row.CreatedAt),
		})
	}

	sections = append(sections, budgets, goals, contributions, recurringSection(data.recurring, display), transactions)

	writer := csv.NewWriter(w)
	for i, section := range sections {
		if i > 0 {
			if err := writer.Write(nil); err != nil {
				return err
			}
		}
		if err := section.write(writer); err != nil {
			return err
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to write csv: %w", err)
	}

	s.LogInfo(ctx, "User data exported",
		slog.String("user_id", userID),
		slog.Int("transaction_count", len(data.transactions)))
	return nil
}

// exportSection is one block of the all-data export: a marker row, an optional
// header and the data rows.
type exportSection struct {
	name   string
	header []string
	rows   [][]string
}

func (sec exportSection) write(w *csv.Writer) error {
	if err := w.Write([]string{sectionMarker, sec.name}); err != nil {
		return err
	}
	if sec.header != nil {
		if err := w.Write(sec.header); err != nil {
			return err
		}
	}
	for _, row := range sec.rows {
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

// userSection lists the profile as key and value rows.
func userSection(u *domain.User, display string) exportSection {
	income := "0"
	if u.MonthlyIncome.Valid {
		income = u.MonthlyIncome.Decimal.StringFixed(2)
	}
	return exportSection{
		name: "user",
		rows: [][]string{
			{"email", u.Email},
			{"display_name", u.DisplayName},
			{"default_currency", display},
			{"monthly_income", income},
			{"monthly_income_currency", domain.NormalizeCurrencyCode(u.MonthlyIncomeCurrency, display)},
		},
	}
}

func categorySection(categories []domain.Category) exportSection {
	sec := exportSection{name: "categories", header: []string{"id", "name", "type", "color", "icon_url", "created_at"}}
	for _, c := range categories {
		sec.rows = append(sec.rows, []string{c.CategoryID, c.Name, string(c.Type), c.Color, c.IconURL, timestamp(c.CreatedAt)})
	}
	return sec
}

func budgetTypeSection(types []domain.BudgetType) exportSection {
	sec := exportSection{name: "budget_types", header: []string{"id", "name", "created_at"}}
	for _, t := range types {
		sec.rows = append(sec.rows, []string{t.BudgetTypeID, t.Name, timestamp(t.CreatedAt)})
	}
	return sec
}

// recurringSection keeps recurring amounts in their own currency.
func recurringSection(rules []domain.RecurringTransaction, display string) exportSection {
	sec := exportSection{
		name: "recurring",
		header: []string{
			"id", "category_id", "type", "amount", "currency", "note", "frequency",
			"start_date", "next_occurrence", "end_date", "last_generated", "created_at",
		},
	}
	for _, r := range rules {
		sec.rows = append(sec.rows, []string{
			r.RecurringID, optionalString(r.CategoryID), string(r.Type), r.Amount.StringFixed(2),
			domain.NormalizeCurrencyCode(r.Currency, display), r.Note, string(r.Frequency),
			r.StartDate.Format(domain.DateLayout), r.NextOccurrence.Format(domain.DateLayout),
			optionalDate(r.EndDate), optionalDate(r.LastGenerated), timestamp(r.CreatedAt),
		})
	}
	return sec
}

func optionalString(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}

func optionalDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(domain.DateLayout)
}

func timestamp(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
