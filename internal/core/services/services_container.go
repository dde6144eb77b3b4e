package services

import (
	portsrepo "github.com/Aquaier/Savoo/internal/core/ports/repositories"
	portssvc "github.com/Aquaier/Savoo/internal/core/ports/services"
	"github.com/Aquaier/Savoo/internal/platform/config"
)

// Adapters bundles the outbound ports the services talk to.
type Adapters struct {
	RateSource portssvc.RateSource
	RateCache  portssvc.RateCacheStore
	Notifier   portssvc.BudgetNotifier
}

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, adapters Adapters) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// The currency engine comes first; everything that stores money depends on it.
	provider := NewRateProvider(
		repos.ExchangeRateRepo,
		adapters.RateSource,
		adapters.RateCache,
		cfg.BaseCurrency,
		WithRateCacheTTL(cfg.RatesCacheTTL),
		WithRateFetchTimeout(cfg.RatesFetchTimeout),
		WithRateRetryBackoff(cfg.RatesRetryBackoff),
	)
	container.Currency = NewCurrencyService(repos.ExchangeRateRepo, provider, cfg.BaseCurrency)

	container.Category = NewCategoryService(repos.CategoryRepo)
	container.User = NewUserService(repos.UserRepo, container.Category, cfg.BaseCurrency)
	container.Token = NewTokenService(cfg)

	container.Recurring = NewRecurringService(
		repos.RecurringRepo,
		repos.TransactionRepo,
		repos.CategoryRepo,
		container.Currency,
		container.User,
		WithRecurringTimezone(cfg.Timezone),
	)

	container.Transaction = NewTransactionService(
		repos.TransactionRepo,
		repos.CategoryRepo,
		repos.BudgetRepo,
		container.Currency,
		container.User,
		WithTransactionMaterializer(container.Recurring),
	)

	container.BudgetType = NewBudgetTypeService(repos.BudgetTypeRepo)

	container.Budget = NewBudgetService(
		repos.BudgetRepo,
		repos.TransactionRepo,
		repos.CategoryRepo,
		container.Currency,
		container.User,
		WithBudgetTypes(repos.BudgetTypeRepo),
		WithBudgetNotifier(adapters.Notifier),
		WithBudgetMaterializer(container.Recurring),
		WithBudgetAlertThreshold(cfg.BudgetAlertThreshold),
		WithBudgetTimezone(cfg.Timezone),
	)

	container.SavingsGoal = NewSavingsGoalService(
		repos.SavingsGoalRepo,
		repos.CategoryRepo,
		container.Currency,
		container.User,
	)

	container.Reporting = NewReportingService(
		repos.ReportingRepo,
		repos.BudgetRepo,
		container.Currency,
		container.User,
		WithReportingMaterializer(container.Recurring),
		WithReportingTimezone(cfg.Timezone),
	)

	container.DataExport = NewDataExportService(
		DataExportSources{
			Categories:   repos.CategoryRepo,
			BudgetTypes:  repos.BudgetTypeRepo,
			Budgets:      repos.BudgetRepo,
			SavingsGoals: repos.SavingsGoalRepo,
			Recurring:    repos.RecurringRepo,
			Reporting:    repos.ReportingRepo,
		},
		container.Currency,
		container.User,
		WithDataExportMaterializer(container.Recurring),
	)

	return container
}
