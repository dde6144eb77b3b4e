package handlers_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Aquaier/Savoo/internal/apperrors"
	"github.com/Aquaier/Savoo/internal/core/domain"
	portssvc "github.com/Aquaier/Savoo/internal/core/ports/services"
	"github.com/Aquaier/Savoo/internal/dto"
	"github.com/Aquaier/Savoo/internal/handlers"
	"github.com/Aquaier/Savoo/internal/middleware"
	"github.com/Aquaier/Savoo/internal/platform/config"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

const testJWTSecret = "test-secret-for-handler-tests"

type HandlersTestSuite struct {
	suite.Suite
	router       *gin.Engine
	userSvc      *MockUserService
	tokenSvc     *MockTokenService
	txnSvc       *MockTransactionService
	budgetSvc    *MockBudgetService
	goalSvc      *MockSavingsGoalService
	currencySvc  *MockCurrencyService
	reportingSvc *MockReportingService
	typeSvc      *MockBudgetTypeService
	exportSvc    *MockDataExportService
	userID       string
	token        string
}

func TestHandlers(t *testing.T) {
	suite.Run(t, new(HandlersTestSuite))
}

func (s *HandlersTestSuite) generateTestToken(userID string) string {
	claims := jwt.RegisteredClaims{
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testJWTSecret))
	s.Require().NoError(err)
	return signed
}

func (s *HandlersTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.userSvc = new(MockUserService)
	s.tokenSvc = new(MockTokenService)
	s.txnSvc = new(MockTransactionService)
	s.budgetSvc = new(MockBudgetService)
	s.goalSvc = new(MockSavingsGoalService)
	s.currencySvc = new(MockCurrencyService)
	s.reportingSvc = new(MockReportingService)
	s.typeSvc = new(MockBudgetTypeService)
	s.exportSvc = new(MockDataExportService)

	container := &portssvc.ServiceContainer{
		User:        s.userSvc,
		Token:       s.tokenSvc,
		Transaction: s.txnSvc,
		Budget:      s.budgetSvc,
		SavingsGoal: s.goalSvc,
		Currency:    s.currencySvc,
		Reporting:   s.reportingSvc,
		BudgetType:  s.typeSvc,
		DataExport:  s.exportSvc,
	}
	cfg := &config.Config{JWTSecret: testJWTSecret, IsProduction: true}

	s.router = gin.New()
	s.router.Use(middleware.StructuredLoggingMiddleware(slog.New(slog.NewTextHandler(io.Discard, nil))))
	s.Require().NoError(handlers.RegisterRoutes(s.router, cfg, container))

	s.userID = uuid.NewString()
	s.token = s.generateTestToken(s.userID)
}

func (s *HandlersTestSuite) TearDownTest() {
	s.userSvc.AssertExpectations(s.T())
	s.tokenSvc.AssertExpectations(s.T())
	s.txnSvc.AssertExpectations(s.T())
	s.budgetSvc.AssertExpectations(s.T())
	s.goalSvc.AssertExpectations(s.T())
	s.currencySvc.AssertExpectations(s.T())
	s.reportingSvc.AssertExpectations(s.T())
	s.typeSvc.AssertExpectations(s.T())
	s.exportSvc.AssertExpectations(s.T())
}

func (s *HandlersTestSuite) do(method, path string, body any, authed bool) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		s.Require().NoError(err)
		reader = bytes.NewReader(payload)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if authed {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *HandlersTestSuite) decode(w *httptest.ResponseRecorder, out any) {
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), out), w.Body.String())
}

func (s *HandlersTestSuite) TestHealth() {
	w := s.do(http.MethodGet, "/health", nil, false)
	s.Equal(http.StatusOK, w.Code)
	s.Equal("OK", w.Body.String())
}

func (s *HandlersTestSuite) TestProtectedRouteRequiresToken() {
	w := s.do(http.MethodGet, "/api/v1/budgets", nil, false)
	s.Equal(http.StatusUnauthorized, w.Code)
}

func (s *HandlersTestSuite) TestRegister() {
	user := &domain.User{UserID: s.userID, Email: "ala@example.com", DefaultCurrency: "EUR", Role: domain.RoleUser}
	expires := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)
	s.userSvc.On("Register", mock.Anything, dto.RegisterRequest{Email: "ala@example.com", Password: "sup3rsecret", DefaultCurrency: "eur"}).
		Return(user, nil).Once()
	s.tokenSvc.On("GenerateAccessToken", mock.Anything, user).Return("signed-token", expires, nil).Once()

	w := s.do(http.MethodPost, "/api/v1/auth/register", map[string]string{
		"email": "ala@example.com", "password": "sup3rsecret", "defaultCurrency": "eur",
	}, false)

	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	var resp dto.LoginResponse
	s.decode(w, &resp)
	s.Equal("signed-token", resp.Token)
	s.Equal("EUR", resp.User.DefaultCurrency)
	s.True(expires.Equal(resp.ExpiresAt))
}

func (s *HandlersTestSuite) TestRegister_Duplicate() {
	s.userSvc.On("Register", mock.Anything, mock.Anything).Return(nil, apperrors.ErrDuplicate).Once()

	w := s.do(http.MethodPost, "/api/v1/auth/register", map[string]string{"email": "ala@example.com", "password": "sup3rsecret"}, false)
	s.Equal(http.StatusConflict, w.Code)
}

func (s *HandlersTestSuite) TestRegister_InvalidBody() {
	tests := []struct {
		name string
		body map[string]string
	}{
		{name: "bad currency", body: map[string]string{"email": "ala@example.com", "password": "sup3rsecret", "defaultCurrency": "EURO"}},
		{name: "short password", body: map[string]string{"email": "ala@example.com", "password": "short"}},
		{name: "bad email", body: map[string]string{"email": "not-an-email", "password": "sup3rsecret"}},
	}
	for _, tt := range tests {
		s.Run(tt.name, func() {
			w := s.do(http.MethodPost, "/api/v1/auth/register", tt.body, false)
			s.Equal(http.StatusBadRequest, w.Code)
		})
	}
}

func (s *HandlersTestSuite) TestLogin_WrongPassword() {
	s.userSvc.On("AuthenticateUser", mock.Anything, "ala@example.com", "nope").
		Return(nil, apperrors.NewAppError(http.StatusUnauthorized, "invalid credentials", nil)).Once()

	w := s.do(http.MethodPost, "/api/v1/auth/login", map[string]string{"email": "ala@example.com", "password": "nope"}, false)
	s.Equal(http.StatusUnauthorized, w.Code)
	s.Contains(w.Body.String(), "Invalid email or password")
}

func (s *HandlersTestSuite) TestCreateTransaction() {
	categoryID := uuid.NewString()
	txn := &domain.Transaction{
		TransactionID:   uuid.NewString(),
		UserID:          s.userID,
		CategoryID:      &categoryID,
		Type:            domain.TransactionExpense,
		Amount:          decimal.RequireFromString("100"),
		Currency:        "EUR",
		ConvertedAmount: decimal.NewNullDecimal(decimal.RequireFromString("430")),
		OccurredOn:      time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
	}
	s.txnSvc.On("CreateTransaction", mock.Anything, s.userID, mock.MatchedBy(func(req dto.CreateTransactionRequest) bool {
		return req.Amount.Equal(decimal.NewFromInt(100)) && req.Currency == "EUR" && *req.CategoryID == categoryID
	})).Return(txn, nil).Once()

	w := s.do(http.MethodPost, "/api/v1/transactions", map[string]any{
		"categoryID": categoryID, "type": "expense", "amount": 100, "currency": "EUR", "occurredOn": "2024-03-15",
	}, true)

	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	var resp dto.TransactionResponse
	s.decode(w, &resp)
	s.Equal("2024-03-15", resp.OccurredOn)
	s.Require().NotNil(resp.ConvertedAmount)
	s.True(resp.ConvertedAmount.Equal(decimal.NewFromInt(430)))
}

func (s *HandlersTestSuite) TestCreateTransaction_BadDate() {
	w := s.do(http.MethodPost, "/api/v1/transactions", map[string]any{
		"type": "expense", "amount": 100, "occurredOn": "15/03/2024",
	}, true)
	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *HandlersTestSuite) TestGetTransaction_NotFound() {
	s.txnSvc.On("GetTransaction", mock.Anything, s.userID, "missing").
		Return(nil, apperrors.NewNotFoundError("transaction missing")).Once()

	w := s.do(http.MethodGet, "/api/v1/transactions/missing", nil, true)
	s.Equal(http.StatusNotFound, w.Code)
}

func (s *HandlersTestSuite) TestListTransactions_DefaultsAndToken() {
	next := "opaque-token"
	s.txnSvc.On("ListTransactions", mock.Anything, s.userID, dto.ListTransactionsParams{Limit: 50, Currency: "USD", NextToken: "abc"}).
		Return(&dto.ListTransactionsResponse{Transactions: []dto.TransactionResponse{}, NextToken: &next}, nil).Once()

	w := s.do(http.MethodGet, "/api/v1/transactions?currency=USD&nextToken=abc", nil, true)

	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	var resp dto.ListTransactionsResponse
	s.decode(w, &resp)
	s.Require().NotNil(resp.NextToken)
	s.Equal(next, *resp.NextToken)
}

func (s *HandlersTestSuite) TestDeleteTransaction_InternalErrorIsHidden() {
	s.txnSvc.On("DeleteTransaction", mock.Anything, s.userID, "t-1").Return(io.ErrUnexpectedEOF).Once()

	w := s.do(http.MethodDelete, "/api/v1/transactions/t-1", nil, true)
	s.Equal(http.StatusInternalServerError, w.Code)
	s.NotContains(w.Body.String(), "unexpected EOF")
}

func (s *HandlersTestSuite) budgetStats(id string) *domain.BudgetStats {
	utilization := decimal.RequireFromString("0.95")
	return &domain.BudgetStats{
		Budget:           domain.Budget{BudgetID: id, UserID: s.userID, Name: "Groceries", Period: domain.BudgetPeriodMonthly},
		TransactionCount: 3,
		LimitDisplay:     decimal.NewFromInt(1000),
		SpentDisplay:     decimal.NewFromInt(950),
		Remaining:        decimal.NewFromInt(50),
		Utilization:      &utilization,
		Currency:         "PLN",
		WindowStart:      time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		WindowEnd:        time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC),
	}
}

func (s *HandlersTestSuite) TestCreateBudget_ReturnsStats() {
	budgetID := uuid.NewString()
	s.budgetSvc.On("CreateBudget", mock.Anything, s.userID, mock.AnythingOfType("dto.CreateBudgetRequest")).
		Return(&domain.Budget{BudgetID: budgetID}, nil).Once()
	s.budgetSvc.On("GetBudget", mock.Anything, s.userID, budgetID, "").Return(s.budgetStats(budgetID), nil).Once()

	w := s.do(http.MethodPost, "/api/v1/budgets", map[string]any{"name": "Groceries", "limitAmount": "1000"}, true)

	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	var resp dto.BudgetResponse
	s.decode(w, &resp)
	s.Equal(budgetID, resp.BudgetID)
	s.Equal("2024-03-01", resp.StartDate)
	s.Equal(3, resp.TransactionCount)
	s.Require().NotNil(resp.Utilization)
	s.True(resp.Utilization.Equal(decimal.RequireFromString("0.95")))
}

func (s *HandlersTestSuite) TestListBudgets_DisplayCurrency() {
	s.budgetSvc.On("ListBudgets", mock.Anything, s.userID, "usd").
		Return([]domain.BudgetStats{*s.budgetStats("b-1"), *s.budgetStats("b-2")}, nil).Once()

	w := s.do(http.MethodGet, "/api/v1/budgets?currency=usd", nil, true)

	s.Require().Equal(http.StatusOK, w.Code)
	var resp []dto.BudgetResponse
	s.decode(w, &resp)
	s.Len(resp, 2)
}

func (s *HandlersTestSuite) TestBudgetValidationErrorFromService() {
	s.budgetSvc.On("UpdateBudget", mock.Anything, s.userID, "b-1", mock.Anything).
		Return(nil, apperrors.NewValidationError("limit must be positive")).Once()

	w := s.do(http.MethodPatch, "/api/v1/budgets/b-1", map[string]any{"limitAmount": -5}, true)
	s.Equal(http.StatusBadRequest, w.Code)
	s.Contains(w.Body.String(), "limit must be positive")
}

func (s *HandlersTestSuite) TestSavingsGoalContributions() {
	s.goalSvc.On("AddContribution", mock.Anything, s.userID, "g-1", mock.MatchedBy(func(req dto.ContributionRequest) bool {
		return req.Amount.Equal(decimal.RequireFromString("250.50")) && req.Currency == "EUR"
	})).Return(&domain.SavingsGoalContribution{ContributionID: "c-1", GoalID: "g-1", Amount: decimal.RequireFromString("1077.15")}, nil).Once()
	s.goalSvc.On("DeleteContribution", mock.Anything, s.userID, "g-1", "c-1").Return(nil).Once()

	w := s.do(http.MethodPost, "/api/v1/savings-goals/g-1/contributions", map[string]any{"amount": "250.50", "currency": "EUR"}, true)
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	var resp dto.ContributionResponse
	s.decode(w, &resp)
	s.Equal("c-1", resp.ContributionID)

	w = s.do(http.MethodDelete, "/api/v1/savings-goals/g-1/contributions/c-1", nil, true)
	s.Equal(http.StatusNoContent, w.Code)
}

func (s *HandlersTestSuite) TestGetSavingsGoal() {
	percent := decimal.NewFromInt(40)
	s.goalSvc.On("GetGoal", mock.Anything, s.userID, "g-1", "EUR").Return(&domain.SavingsGoalProgress{
		Goal:            domain.SavingsGoal{GoalID: "g-1", Name: "Bike", IsActive: true},
		TargetDisplay:   decimal.NewFromInt(1000),
		CurrentDisplay:  decimal.NewFromInt(400),
		ProgressPercent: &percent,
		Currency:        "EUR",
	}, nil).Once()

	w := s.do(http.MethodGet, "/api/v1/savings-goals/g-1?currency=EUR", nil, true)

	s.Require().Equal(http.StatusOK, w.Code)
	var resp dto.SavingsGoalResponse
	s.decode(w, &resp)
	s.Equal("Bike", resp.Name)
	s.True(resp.CurrentAmount.Equal(decimal.NewFromInt(400)))
}

func (s *HandlersTestSuite) TestConvert() {
	s.currencySvc.On("Convert", mock.Anything, decimal.RequireFromString("100"), "EUR", "USD").
		Return(decimal.RequireFromString("107.5"), nil).Once()

	w := s.do(http.MethodGet, "/api/v1/currencies/convert?amount=100&from=eur&to=usd", nil, true)

	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	var resp dto.ConvertResponse
	s.decode(w, &resp)
	s.Equal("EUR", resp.From)
	s.Equal("USD", resp.To)
	s.True(resp.ConvertedAmount.Equal(decimal.RequireFromString("107.5")))
}

func (s *HandlersTestSuite) TestConvert_InvalidParams() {
	tests := []string{
		"/api/v1/currencies/convert?amount=abc&from=EUR&to=USD",
		"/api/v1/currencies/convert?amount=1&from=EURO&to=USD",
		"/api/v1/currencies/convert?amount=1&from=EUR",
	}
	for _, path := range tests {
		w := s.do(http.MethodGet, path, nil, true)
		s.Equal(http.StatusBadRequest, w.Code, path)
	}
}

func (s *HandlersTestSuite) TestListRates_Refresh() {
	fetched := time.Date(2024, 3, 15, 8, 0, 0, 0, time.UTC)
	s.currencySvc.On("ListRates", mock.Anything, true).Return([]domain.ExchangeRate{
		{CurrencyCode: "EUR", RateToBase: decimal.RequireFromString("4.30"), FetchedAt: fetched},
		{CurrencyCode: "PLN", RateToBase: decimal.NewFromInt(1), FetchedAt: fetched},
	}, nil).Once()
	s.currencySvc.On("BaseCurrency").Return("PLN").Once()

	w := s.do(http.MethodGet, "/api/v1/currencies/rates?refresh=true", nil, true)

	s.Require().Equal(http.StatusOK, w.Code)
	var resp dto.ListRatesResponse
	s.decode(w, &resp)
	s.Equal("PLN", resp.BaseCurrency)
	s.Len(resp.Rates, 2)
}

func (s *HandlersTestSuite) TestDashboard() {
	s.reportingSvc.On("GetDashboard", mock.Anything, s.userID, dto.DashboardParams{Period: "weekly", Currency: "USD"}).
		Return(&domain.DashboardSummary{Period: domain.PeriodWeekly, Currency: "USD", TotalIncome: decimal.NewFromInt(1250)}, nil).Once()

	w := s.do(http.MethodGet, "/api/v1/reports/dashboard?period=weekly&currency=USD", nil, true)

	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	var summary domain.DashboardSummary
	s.decode(w, &summary)
	s.True(summary.TotalIncome.Equal(decimal.NewFromInt(1250)))
}

func (s *HandlersTestSuite) TestDashboard_UnknownPeriod() {
	w := s.do(http.MethodGet, "/api/v1/reports/dashboard?period=daily", nil, true)
	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *HandlersTestSuite) TestExportCSV() {
	csvBody := "Date,Type,Category,Amount,Currency,Amount (PLN),Note\n2024-03-01,income,Salary,5000.00,PLN,5000.00,salary\n"
	s.reportingSvc.On("ExportTransactionsCSV", mock.Anything, s.userID, dto.ExportParams{From: "2024-03-01"}, mock.Anything).
		Return(nil, csvBody).Once()

	w := s.do(http.MethodGet, "/api/v1/reports/transactions.csv?from=2024-03-01", nil, true)

	s.Require().Equal(http.StatusOK, w.Code)
	s.Equal("text/csv; charset=utf-8", w.Header().Get("Content-Type"))
	s.Contains(w.Header().Get("Content-Disposition"), "attachment; filename=\"transactions_")
	s.Equal(csvBody, w.Body.String())
}

func (s *HandlersTestSuite) TestExportCSV_ValidationError() {
	s.reportingSvc.On("ExportTransactionsCSV", mock.Anything, s.userID, mock.Anything, mock.Anything).
		Return(apperrors.NewValidationError("to must not be before from"), "").Once()

	w := s.do(http.MethodGet, "/api/v1/reports/transactions.csv?from=2024-03-02&to=2024-03-01", nil, true)
	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *HandlersTestSuite) TestExportAllData() {
	csvBody := "SECTION,user\nemail,ala@example.com\n"
	s.exportSvc.On("ExportAllDataCSV", mock.Anything, s.userID, mock.Anything).Return(nil, csvBody).Once()

	w := s.do(http.MethodGet, "/api/v1/reports/all-data.csv", nil, true)

	s.Require().Equal(http.StatusOK, w.Code)
	s.Equal("text/csv; charset=utf-8", w.Header().Get("Content-Type"))
	s.Contains(w.Header().Get("Content-Disposition"), "attachment; filename=\"savoo_export_")
	s.Equal(csvBody, w.Body.String())
}

func (s *HandlersTestSuite) TestExportAllData_FailureIsHidden() {
	s.exportSvc.On("ExportAllDataCSV", mock.Anything, s.userID, mock.Anything).
		Return(errors.New("pool closed"), "").Once()

	w := s.do(http.MethodGet, "/api/v1/reports/all-data.csv", nil, true)

	s.Equal(http.StatusInternalServerError, w.Code)
	s.NotContains(w.Body.String(), "pool closed")
}

func (s *HandlersTestSuite) TestBudgetTypes_ListAndCreate() {
	created := time.Date(2024, 4, 1, 9, 0, 0, 0, time.UTC)
	household := domain.BudgetType{BudgetTypeID: "bt-1", UserID: s.userID, Name: "household", CreatedAt: created}
	s.typeSvc.On("ListBudgetTypes", mock.Anything, s.userID).Return([]domain.BudgetType{household}, nil).Once()
	s.typeSvc.On("CreateBudgetType", mock.Anything, s.userID, dto.CreateBudgetTypeRequest{Name: "Household"}).
		Return(&household, nil).Once()

	w := s.do(http.MethodGet, "/api/v1/budget-types", nil, true)
	s.Require().Equal(http.StatusOK, w.Code)
	var list []dto.BudgetTypeResponse
	s.decode(w, &list)
	s.Require().Len(list, 1)
	s.Equal("household", list[0].Name)

	w = s.do(http.MethodPost, "/api/v1/budget-types", map[string]string{"name": "Household"}, true)
	s.Require().Equal(http.StatusCreated, w.Code)
	var resp dto.BudgetTypeResponse
	s.decode(w, &resp)
	s.Equal("bt-1", resp.BudgetTypeID)
}

func (s *HandlersTestSuite) TestBudgetTypes_Duplicate() {
	s.typeSvc.On("CreateBudgetType", mock.Anything, s.userID, dto.CreateBudgetTypeRequest{Name: "food"}).
		Return(nil, apperrors.NewAppError(http.StatusConflict, "budget type already exists", apperrors.ErrDuplicate)).Once()

	w := s.do(http.MethodPost, "/api/v1/budget-types", map[string]string{"name": "food"}, true)
	s.Equal(http.StatusConflict, w.Code)
}

func (s *HandlersTestSuite) TestBudgetTypes_MissingName() {
	w := s.do(http.MethodPost, "/api/v1/budget-types", map[string]string{}, true)
	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *HandlersTestSuite) TestBudgetTypes_DeleteNotFound() {
	s.typeSvc.On("DeleteBudgetType", mock.Anything, s.userID, "bt-9").
		Return(apperrors.NewNotFoundError("budget type bt-9")).Once()

	w := s.do(http.MethodDelete, "/api/v1/budget-types/bt-9", nil, true)
	s.Equal(http.StatusNotFound, w.Code)
}

func (s *HandlersTestSuite) TestSecurityQuestions() {
	w := s.do(http.MethodGet, "/api/v1/auth/security-questions", nil, false)
	s.Require().Equal(http.StatusOK, w.Code)

	var questions []dto.SecurityQuestionResponse
	s.decode(w, &questions)
	s.Len(questions, len(domain.SecurityQuestions))
	for _, q := range questions {
		s.Equal(domain.SecurityQuestions[q.Key], q.Prompt)
	}
}

func (s *HandlersTestSuite) TestForgotPassword_Verify() {
	expires := time.Date(2030, 1, 1, 0, 15, 0, 0, time.UTC)
	req := dto.ForgotPasswordVerifyRequest{Email: "ala@example.com", SecurityQuestion: "pet_name", SecurityAnswer: "Burek"}
	s.userSvc.On("VerifySecurityAnswer", mock.Anything, req).Return("raw-token", expires, nil).Once()

	w := s.do(http.MethodPost, "/api/v1/auth/forgot-password/verify", req, false)

	s.Require().Equal(http.StatusOK, w.Code)
	var resp dto.ForgotPasswordVerifyResponse
	s.decode(w, &resp)
	s.Equal("raw-token", resp.ResetToken)
	s.True(expires.Equal(resp.ExpiresAt))
}

func (s *HandlersTestSuite) TestForgotPassword_WrongAnswer() {
	req := dto.ForgotPasswordVerifyRequest{Email: "ala@example.com", SecurityQuestion: "pet_name", SecurityAnswer: "Azor"}
	s.userSvc.On("VerifySecurityAnswer", mock.Anything, req).
		Return("", time.Time{}, apperrors.NewValidationError("security answer does not match")).Once()

	w := s.do(http.MethodPost, "/api/v1/auth/forgot-password/verify", req, false)
	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *HandlersTestSuite) TestForgotPassword_Reset() {
	req := dto.ResetPasswordRequest{
		Email: "ala@example.com", ResetToken: "raw-token", NewPassword: "n3wpassword", ConfirmPassword: "n3wpassword",
	}
	s.userSvc.On("ResetPassword", mock.Anything, req).Return(nil).Once()

	w := s.do(http.MethodPost, "/api/v1/auth/forgot-password/reset", req, false)
	s.Equal(http.StatusNoContent, w.Code)
}

func (s *HandlersTestSuite) TestForgotPassword_ResetShortPassword() {
	w := s.do(http.MethodPost, "/api/v1/auth/forgot-password/reset", map[string]string{
		"email": "ala@example.com", "resetToken": "raw-token", "newPassword": "short", "confirmPassword": "short",
	}, false)
	s.Equal(http.StatusBadRequest, w.Code)
}
