package services_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/Aquaier/Savoo/internal/apperrors"
	"github.com/Aquaier/Savoo/internal/core/domain"
	portssvc "github.com/Aquaier/Savoo/internal/core/ports/services"
	"github.com/Aquaier/Savoo/internal/core/services"
	"github.com/Aquaier/Savoo/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type TransactionServiceTestSuite struct {
	suite.Suite
	rates        *memoryRateRepo
	txns         *memoryTxnRepo
	materializer *MockMaterializer
	clock        *fakeClock
	svc          portssvc.TransactionSvcFacade
}

func (s *TransactionServiceTestSuite) SetupTest() {
	s.rates = newMemoryRateRepo(map[string]string{"PLN": "1", "EUR": "4.30", "USD": "4.00"})
	s.txns = &memoryTxnRepo{}
	s.materializer = new(MockMaterializer)
	s.materializer.On("Materialize", mock.Anything, testUserID).Return(0, nil).Maybe()
	s.clock = &fakeClock{now: time.Date(2024, 4, 2, 8, 0, 0, 0, time.UTC)}

	converter := services.NewCurrencyService(s.rates, noopRateProvider{}, "PLN")
	budgets := newMemoryBudgetRepo(
		domain.Budget{BudgetID: "mine", UserID: testUserID},
		domain.Budget{BudgetID: "theirs", UserID: "user-2"},
	)
	categories := &stubCategoryReader{owned: map[string]string{"food": testUserID, "foreign": "user-2"}}
	s.svc = services.NewTransactionService(s.txns, categories, budgets, converter,
		stubUserReader{defaultCurrency: "PLN"},
		services.WithTransactionMaterializer(s.materializer),
		services.WithTransactionClock(s.clock.Now),
	)
}

func TestTransactionServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TransactionServiceTestSuite))
}

func (s *TransactionServiceTestSuite) create(req dto.CreateTransactionRequest) *domain.Transaction {
	txn, err := s.svc.CreateTransaction(context.Background(), testUserID, req)
	s.Require().NoError(err)
	s.clock.Advance(time.Second)
	return txn
}

func (s *TransactionServiceTestSuite) TestCreateStoresBaseAmount() {
	txn := s.create(dto.CreateTransactionRequest{
		Type: "expense", Amount: dec("100"), Currency: "eur", CategoryID: strPtr("food"), OccurredOn: "2024-04-01",
	})
	s.Equal("EUR", txn.Currency)
	s.Equal(domain.DefaultTransactionKind, txn.Kind)
	s.Require().True(txn.ConvertedAmount.Valid)
	s.True(txn.ConvertedAmount.Decimal.Equal(dec("430")))
	s.Equal(day(2024, 4, 1), txn.OccurredOn)
}

func (s *TransactionServiceTestSuite) TestCreateDefaultsToUserCurrency() {
	txn := s.create(dto.CreateTransactionRequest{Type: "income", Amount: dec("2500"), OccurredOn: "2024-04-01"})
	s.Equal("PLN", txn.Currency)
	s.True(txn.ConvertedAmount.Decimal.Equal(dec("2500")))
}

func (s *TransactionServiceTestSuite) TestUnknownCurrencyConvertsAtOne() {
	txn := s.create(dto.CreateTransactionRequest{Type: "income", Amount: dec("10"), Currency: "CHF", OccurredOn: "2024-04-01"})
	s.True(txn.ConvertedAmount.Decimal.Equal(dec("10")))
}

func (s *TransactionServiceTestSuite) TestCreateValidation() {
	tests := []struct {
		name string
		req  dto.CreateTransactionRequest
	}{
		{name: "expense without category or budget", req: dto.CreateTransactionRequest{Type: "expense", Amount: dec("1"), OccurredOn: "2024-04-01"}},
		{name: "foreign category", req: dto.CreateTransactionRequest{Type: "expense", Amount: dec("1"), CategoryID: strPtr("foreign"), OccurredOn: "2024-04-01"}},
		{name: "foreign budget", req: dto.CreateTransactionRequest{Type: "expense", Amount: dec("1"), BudgetID: strPtr("theirs"), OccurredOn: "2024-04-01"}},
		{name: "zero amount", req: dto.CreateTransactionRequest{Type: "income", Amount: decimal.Zero, OccurredOn: "2024-04-01"}},
		{name: "bad type", req: dto.CreateTransactionRequest{Type: "gift", Amount: dec("1"), OccurredOn: "2024-04-01"}},
		{name: "bad date", req: dto.CreateTransactionRequest{Type: "income", Amount: dec("1"), OccurredOn: "04/01/2024"}},
	}
	for _, tt := range tests {
		s.Run(tt.name, func() {
			_, err := s.svc.CreateTransaction(context.Background(), testUserID, tt.req)
			s.ErrorIs(err, apperrors.ErrValidation)
		})
	}
	s.Empty(s.txns.txns)
}

func (s *TransactionServiceTestSuite) TestUpdateReconvertsOnlyWhenMoneyChanges() {
	ctx := context.Background()
	txn := s.create(dto.CreateTransactionRequest{
		Type: "expense", Amount: dec("10"), Currency: "USD", BudgetID: strPtr("mine"), OccurredOn: "2024-04-01",
	})
	s.True(txn.ConvertedAmount.Decimal.Equal(dec("40")))

	// Rates move; a note edit keeps the stored base amount.
	s.Require().NoError(s.rates.ReplaceExchangeRates(ctx, []domain.ExchangeRate{{CurrencyCode: "USD", RateToBase: dec("5")}}))

	note := "coffee"
	updated, err := s.svc.UpdateTransaction(ctx, testUserID, txn.TransactionID, dto.UpdateTransactionRequest{Note: &note})
	s.Require().NoError(err)
	s.Equal("coffee", updated.Note)
	s.True(updated.ConvertedAmount.Decimal.Equal(dec("40")))

	amount := dec("20")
	updated, err = s.svc.UpdateTransaction(ctx, testUserID, txn.TransactionID, dto.UpdateTransactionRequest{Amount: &amount})
	s.Require().NoError(err)
	s.True(updated.ConvertedAmount.Decimal.Equal(dec("80")))

	_, err = s.svc.UpdateTransaction(ctx, "user-2", txn.TransactionID, dto.UpdateTransactionRequest{Note: &note})
	s.ErrorIs(err, apperrors.ErrNotFound)
}

func (s *TransactionServiceTestSuite) TestListPagesNewestFirst() {
	ctx := context.Background()
	for i := 1; i <= 5; i++ {
		s.create(dto.CreateTransactionRequest{
			Type: "income", Amount: dec(fmt.Sprintf("%d", i*43)), OccurredOn: fmt.Sprintf("2024-03-%02d", i),
		})
	}

	var seen []string
	token := ""
	for page := 0; page < 3; page++ {
		resp, err := s.svc.ListTransactions(ctx, testUserID, dto.ListTransactionsParams{Limit: 2, NextToken: token, Currency: "EUR"})
		s.Require().NoError(err)
		for _, t := range resp.Transactions {
			seen = append(seen, t.OccurredOn)
			s.Equal("EUR", t.DisplayCurrency)
		}
		if page < 2 {
			s.Require().NotNil(resp.NextToken)
			token = *resp.NextToken
		} else {
			s.Nil(resp.NextToken)
		}
	}
	s.Equal([]string{"2024-03-05", "2024-03-04", "2024-03-03", "2024-03-02", "2024-03-01"}, seen)
	s.materializer.AssertCalled(s.T(), "Materialize", mock.Anything, testUserID)
}

func (s *TransactionServiceTestSuite) TestListDisplayAmounts() {
	ctx := context.Background()
	s.create(dto.CreateTransactionRequest{Type: "income", Amount: dec("43"), OccurredOn: "2024-03-01"})
	s.create(dto.CreateTransactionRequest{Type: "income", Amount: dec("7"), Currency: "EUR", OccurredOn: "2024-03-02"})
	s.txns.txns = append(s.txns.txns, domain.Transaction{
		TransactionID: "legacy", UserID: testUserID, Type: domain.TransactionIncome,
		Amount: dec("10"), Currency: "USD", OccurredOn: day(2024, 3, 3),
	})

	resp, err := s.svc.ListTransactions(ctx, testUserID, dto.ListTransactionsParams{Limit: 10, Currency: "EUR"})
	s.Require().NoError(err)
	s.Require().Len(resp.Transactions, 3)

	byID := map[string]dto.TransactionResponse{}
	for _, t := range resp.Transactions {
		byID[t.OccurredOn] = t
	}
	s.True(byID["2024-03-01"].DisplayAmount.Equal(dec("10")))
	s.True(byID["2024-03-02"].DisplayAmount.Equal(dec("7")), "same currency shows the recorded amount")
	s.Nil(byID["2024-03-03"].ConvertedAmount)
	s.True(byID["2024-03-03"].DisplayAmount.Sub(dec("9.3023255813953488")).Abs().LessThan(dec("0.0000001")))
}

func (s *TransactionServiceTestSuite) TestListFiltersAndBadToken() {
	ctx := context.Background()
	s.create(dto.CreateTransactionRequest{Type: "income", Amount: dec("1"), OccurredOn: "2024-03-01"})
	s.create(dto.CreateTransactionRequest{Type: "expense", Amount: dec("2"), CategoryID: strPtr("food"), OccurredOn: "2024-03-10"})
	s.create(dto.CreateTransactionRequest{Type: "expense", Amount: dec("3"), BudgetID: strPtr("mine"), OccurredOn: "2024-03-20"})

	resp, err := s.svc.ListTransactions(ctx, testUserID, dto.ListTransactionsParams{Type: "expense", From: "2024-03-05", To: "2024-03-15"})
	s.Require().NoError(err)
	s.Require().Len(resp.Transactions, 1)
	s.True(resp.Transactions[0].Amount.Equal(dec("2")))

	_, err = s.svc.ListTransactions(ctx, testUserID, dto.ListTransactionsParams{NextToken: "%%%"})
	s.ErrorIs(err, apperrors.ErrValidation)
}

func (s *TransactionServiceTestSuite) TestDelete() {
	ctx := context.Background()
	txn := s.create(dto.CreateTransactionRequest{Type: "income", Amount: dec("1"), OccurredOn: "2024-03-01"})

	s.ErrorIs(s.svc.DeleteTransaction(ctx, "user-2", txn.TransactionID), apperrors.ErrNotFound)
	s.Require().NoError(s.svc.DeleteTransaction(ctx, testUserID, txn.TransactionID))
	_, err := s.svc.GetTransaction(ctx, testUserID, txn.TransactionID)
	s.ErrorIs(err, apperrors.ErrNotFound)
}
