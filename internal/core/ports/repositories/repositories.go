package repositories

// RepositoryProvider holds all repository interfaces needed by services.
type RepositoryProvider struct {
	ExchangeRateRepo ExchangeRateRepositoryFacade
	UserRepo         UserRepositoryFacade
	CategoryRepo     CategoryRepositoryFacade
	TransactionRepo  TransactionRepositoryFacade
	BudgetRepo       BudgetRepositoryFacade
	BudgetTypeRepo   BudgetTypeRepositoryFacade
	SavingsGoalRepo  SavingsGoalRepositoryWithTx
	RecurringRepo    RecurringRepositoryWithTx
	ReportingRepo    ReportingRepositoryFacade
}
