package handlers_test

import (
	"context"
	"io"
	"time"

	"github.com/Aquaier/Savoo/internal/core/domain"
	portssvc "github.com/Aquaier/Savoo/internal/core/ports/services"
	"github.com/Aquaier/Savoo/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// --- Mock UserService ---
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserService) DisplayCurrency(ctx context.Context, userID, requested string) (string, error) {
	args := m.Called(ctx, userID, requested)
	return args.String(0), args.Error(1)
}
func (m *MockUserService) Register(ctx context.Context, req dto.RegisterRequest) (*domain.User, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserService) UpdateProfile(ctx context.Context, userID string, req dto.UpdateProfileRequest) (*domain.User, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserService) AuthenticateUser(ctx context.Context, email, password string) (*domain.User, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserService) VerifySecurityAnswer(ctx context.Context, req dto.ForgotPasswordVerifyRequest) (string, time.Time, error) {
	args := m.Called(ctx, req)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}
func (m *MockUserService) ResetPassword(ctx context.Context, req dto.ResetPasswordRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}

var _ portssvc.UserSvcFacade = (*MockUserService)(nil)

// --- Mock TokenService ---
type MockTokenService struct {
	mock.Mock
}

func (m *MockTokenService) GenerateAccessToken(ctx context.Context, user *domain.User) (string, time.Time, error) {
	args := m.Called(ctx, user)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}

var _ portssvc.TokenSvcFacade = (*MockTokenService)(nil)

// --- Mock TransactionService ---
type MockTransactionService struct {
	mock.Mock
}

func (m *MockTransactionService) GetTransaction(ctx context.Context, userID, transactionID string) (*domain.Transaction, error) {
	args := m.Called(ctx, userID, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}
func (m *MockTransactionService) ListTransactions(ctx context.Context, userID string, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error) {
	args := m.Called(ctx, userID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListTransactionsResponse), args.Error(1)
}
func (m *MockTransactionService) CreateTransaction(ctx context.Context, userID string, req dto.CreateTransactionRequest) (*domain.Transaction, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}
func (m *MockTransactionService) UpdateTransaction(ctx context.Context, userID, transactionID string, req dto.UpdateTransactionRequest) (*domain.Transaction, error) {
	args := m.Called(ctx, userID, transactionID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}
func (m *MockTransactionService) DeleteTransaction(ctx context.Context, userID, transactionID string) error {
	return m.Called(ctx, userID, transactionID).Error(0)
}

var _ portssvc.TransactionSvcFacade = (*MockTransactionService)(nil)

// --- Mock BudgetService ---
type MockBudgetService struct {
	mock.Mock
}

func (m *MockBudgetService) ComputeBudgetStats(ctx context.Context, budgets []domain.Budget, expenses []domain.Transaction, displayCurrency string) ([]domain.BudgetStats, error) {
	args := m.Called(ctx, budgets, expenses, displayCurrency)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BudgetStats), args.Error(1)
}
func (m *MockBudgetService) MaybeNotify(ctx context.Context, stats domain.BudgetStats) (bool, error) {
	args := m.Called(ctx, stats)
	return args.Bool(0), args.Error(1)
}
func (m *MockBudgetService) GetBudget(ctx context.Context, userID, budgetID, currency string) (*domain.BudgetStats, error) {
	args := m.Called(ctx, userID, budgetID, currency)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BudgetStats), args.Error(1)
}
func (m *MockBudgetService) ListBudgets(ctx context.Context, userID, currency string) ([]domain.BudgetStats, error) {
	args := m.Called(ctx, userID, currency)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BudgetStats), args.Error(1)
}
func (m *MockBudgetService) CreateBudget(ctx context.Context, userID string, req dto.CreateBudgetRequest) (*domain.Budget, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Budget), args.Error(1)
}
func (m *MockBudgetService) UpdateBudget(ctx context.Context, userID, budgetID string, req dto.UpdateBudgetRequest) (*domain.Budget, error) {
	args := m.Called(ctx, userID, budgetID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Budget), args.Error(1)
}
func (m *MockBudgetService) DeleteBudget(ctx context.Context, userID, budgetID string) error {
	return m.Called(ctx, userID, budgetID).Error(0)
}

var _ portssvc.BudgetSvcFacade = (*MockBudgetService)(nil)

// --- Mock SavingsGoalService ---
type MockSavingsGoalService struct {
	mock.Mock
}

func (m *MockSavingsGoalService) GetGoal(ctx context.Context, userID, goalID, currency string) (*domain.SavingsGoalProgress, error) {
	args := m.Called(ctx, userID, goalID, currency)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SavingsGoalProgress), args.Error(1)
}
func (m *MockSavingsGoalService) ListGoals(ctx context.Context, userID, currency string) ([]domain.SavingsGoalProgress, error) {
	args := m.Called(ctx, userID, currency)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SavingsGoalProgress), args.Error(1)
}
func (m *MockSavingsGoalService) ListContributions(ctx context.Context, userID, goalID string) ([]domain.SavingsGoalContribution, error) {
	args := m.Called(ctx, userID, goalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SavingsGoalContribution), args.Error(1)
}
func (m *MockSavingsGoalService) CreateGoal(ctx context.Context, userID string, req dto.CreateSavingsGoalRequest) (*domain.SavingsGoal, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SavingsGoal), args.Error(1)
}
func (m *MockSavingsGoalService) UpdateGoal(ctx context.Context, userID, goalID string, req dto.UpdateSavingsGoalRequest) (*domain.SavingsGoal, error) {
	args := m.Called(ctx, userID, goalID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SavingsGoal), args.Error(1)
}
func (m *MockSavingsGoalService) DeleteGoal(ctx context.Context, userID, goalID string) error {
	return m.Called(ctx, userID, goalID).Error(0)
}
func (m *MockSavingsGoalService) AddContribution(ctx context.Context, userID, goalID string, req dto.ContributionRequest) (*domain.SavingsGoalContribution, error) {
	args := m.Called(ctx, userID, goalID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SavingsGoalContribution), args.Error(1)
}
func (m *MockSavingsGoalService) UpdateContribution(ctx context.Context, userID, goalID, contributionID string, req dto.ContributionRequest) (*domain.SavingsGoalContribution, error) {
	args := m.Called(ctx, userID, goalID, contributionID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SavingsGoalContribution), args.Error(1)
}
func (m *MockSavingsGoalService) DeleteContribution(ctx context.Context, userID, goalID, contributionID string) error {
	return m.Called(ctx, userID, goalID, contributionID).Error(0)
}

var _ portssvc.SavingsGoalSvcFacade = (*MockSavingsGoalService)(nil)

// --- Mock CurrencyService ---
type MockCurrencyService struct {
	mock.Mock
}

func (m *MockCurrencyService) BaseCurrency() string {
	return m.Called().String(0)
}
func (m *MockCurrencyService) RateToBase(ctx context.Context, currency string) (decimal.Decimal, error) {
	args := m.Called(ctx, currency)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}
func (m *MockCurrencyService) Convert(ctx context.Context, amount decimal.Decimal, from, to string) (decimal.Decimal, error) {
	args := m.Called(ctx, amount, from, to)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}
func (m *MockCurrencyService) ConvertNullable(ctx context.Context, amount decimal.NullDecimal, from, to string) (decimal.Decimal, error) {
	args := m.Called(ctx, amount, from, to)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}
func (m *MockCurrencyService) ToBase(ctx context.Context, amount decimal.Decimal, currency string) (decimal.Decimal, error) {
	args := m.Called(ctx, amount, currency)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}
func (m *MockCurrencyService) FromBase(ctx context.Context, amount decimal.Decimal, currency string) (decimal.Decimal, error) {
	args := m.Called(ctx, amount, currency)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}
func (m *MockCurrencyService) RefreshRates(ctx context.Context, force bool) {
	m.Called(ctx, force)
}
func (m *MockCurrencyService) ListRates(ctx context.Context, refresh bool) ([]domain.ExchangeRate, error) {
	args := m.Called(ctx, refresh)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ExchangeRate), args.Error(1)
}

var _ portssvc.CurrencySvcFacade = (*MockCurrencyService)(nil)

// --- Mock ReportingService ---
type MockReportingService struct {
	mock.Mock
}

func (m *MockReportingService) GetDashboard(ctx context.Context, userID string, params dto.DashboardParams) (*domain.DashboardSummary, error) {
	args := m.Called(ctx, userID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DashboardSummary), args.Error(1)
}
func (m *MockReportingService) ExportTransactionsCSV(ctx context.Context, userID string, params dto.ExportParams, w io.Writer) error {
	args := m.Called(ctx, userID, params, w)
	if csv := args.String(1); csv != "" {
		_, _ = io.WriteString(w, csv)
	}
	return args.Error(0)
}

var _ portssvc.ReportingSvcFacade = (*MockReportingService)(nil)

// --- Mock BudgetTypeService ---
type MockBudgetTypeService struct {
	mock.Mock
}

func (m *MockBudgetTypeService) ListBudgetTypes(ctx context.Context, userID string) ([]domain.BudgetType, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BudgetType), args.Error(1)
}
func (m *MockBudgetTypeService) CreateBudgetType(ctx context.Context, userID string, req dto.CreateBudgetTypeRequest) (*domain.BudgetType, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BudgetType), args.Error(1)
}
func (m *MockBudgetTypeService) DeleteBudgetType(ctx context.Context, userID, budgetTypeID string) error {
	args := m.Called(ctx, userID, budgetTypeID)
	return args.Error(0)
}

var _ portssvc.BudgetTypeSvcFacade = (*MockBudgetTypeService)(nil)

// --- Mock DataExportService ---
type MockDataExportService struct {
	mock.Mock
}

func (m *MockDataExportService) ExportAllDataCSV(ctx context.Context, userID string, w io.Writer) error {
	args := m.Called(ctx, userID, w)
	if csv := args.String(1); csv != "" {
		_, _ = io.WriteString(w, csv)
	}
	return args.Error(0)
}

var _ portssvc.DataExportSvcFacade = (*MockDataExportService)(nil)
