package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Aquaier/Savoo/internal/apperrors"
	"github.com/Aquaier/Savoo/internal/core/domain"
	portsrepo "github.com/Aquaier/Savoo/internal/core/ports/repositories"
	portssvc "github.com/Aquaier/Savoo/internal/core/ports/services"
	"github.com/Aquaier/Savoo/internal/core/services"
	"github.com/Aquaier/Savoo/internal/dto"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// MockRecurringRepository is a mock implementation of portsrepo.RecurringRepositoryWithTx
type MockRecurringRepository struct {
	mock.Mock
}

func (m *MockRecurringRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(pgx.Tx), args.Error(1)
}

func (m *MockRecurringRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	return m.Called(ctx, tx).Error(0)
}

func (m *MockRecurringRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	return m.Called(ctx, tx).Error(0)
}

func (m *MockRecurringRepository) FindRecurringByID(ctx context.Context, userID, recurringID string) (*domain.RecurringTransaction, error) {
	args := m.Called(ctx, userID, recurringID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RecurringTransaction), args.Error(1)
}

func (m *MockRecurringRepository) ListRecurring(ctx context.Context, userID string) ([]domain.RecurringTransaction, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RecurringTransaction), args.Error(1)
}

func (m *MockRecurringRepository) SaveRecurring(ctx context.Context, r domain.RecurringTransaction) error {
	return m.Called(ctx, r).Error(0)
}

func (m *MockRecurringRepository) UpdateRecurring(ctx context.Context, r domain.RecurringTransaction) error {
	return m.Called(ctx, r).Error(0)
}

func (m *MockRecurringRepository) DeleteRecurring(ctx context.Context, userID, recurringID string) error {
	return m.Called(ctx, userID, recurringID).Error(0)
}

func (m *MockRecurringRepository) ListDueRecurringForUpdate(ctx context.Context, tx pgx.Tx, userID string, today time.Time) ([]domain.RecurringTransaction, error) {
	args := m.Called(ctx, tx, userID, today)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RecurringTransaction), args.Error(1)
}

func (m *MockRecurringRepository) AdvanceRecurringInTx(ctx context.Context, tx pgx.Tx, recurringID string, next time.Time, lastGenerated *time.Time) error {
	return m.Called(ctx, tx, recurringID, next, lastGenerated).Error(0)
}

// failingTxnWriter rejects every batch insert.
type failingTxnWriter struct {
	memoryTxnRepo
}

func (f *failingTxnWriter) SaveTransactionsInTx(context.Context, pgx.Tx, []domain.Transaction) error {
	return errors.New("insert failed")
}

type RecurringServiceTestSuite struct {
	suite.Suite
	repo  *MockRecurringRepository
	txns  *memoryTxnRepo
	clock *fakeClock
	svc   portssvc.RecurringSvcFacade
}

func (s *RecurringServiceTestSuite) SetupTest() {
	s.repo = new(MockRecurringRepository)
	s.txns = &memoryTxnRepo{}
	s.clock = &fakeClock{now: time.Date(2024, 4, 2, 18, 0, 0, 0, time.UTC)}
	s.svc = s.newService(s.txns)
}

func (s *RecurringServiceTestSuite) newService(writer portsrepo.TransactionWriter) portssvc.RecurringSvcFacade {
	rates := newMemoryRateRepo(map[string]string{"PLN": "1", "EUR": "4.30"})
	converter := services.NewCurrencyService(rates, noopRateProvider{}, "PLN")
	categories := &stubCategoryReader{owned: map[string]string{"rent": testUserID}}
	return services.NewRecurringService(s.repo, writer, categories, converter,
		stubUserReader{defaultCurrency: "PLN"}, services.WithRecurringClock(s.clock.Now))
}

func TestRecurringServiceTestSuite(t *testing.T) {
	suite.Run(t, new(RecurringServiceTestSuite))
}

func (s *RecurringServiceTestSuite) TestMaterializeGeneratesEveryDueOccurrence() {
	ctx := context.Background()
	today := day(2024, 4, 2)
	end := day(2024, 3, 10)
	due := []domain.RecurringTransaction{
		{
			RecurringID: "rent", UserID: testUserID, CategoryID: strPtr("rent"), Type: domain.TransactionExpense,
			Amount: dec("100"), Currency: "EUR", Frequency: domain.FrequencyMonthly,
			StartDate: day(2024, 1, 31), NextOccurrence: day(2024, 1, 31),
		},
		{
			RecurringID: "gym", UserID: testUserID, CategoryID: strPtr("rent"), Type: domain.TransactionExpense,
			Amount: dec("20"), Currency: "PLN", Frequency: domain.FrequencyWeekly,
			StartDate: day(2024, 3, 1), NextOccurrence: day(2024, 3, 1), EndDate: &end,
		},
	}
	lastRent, lastGym := day(2024, 3, 29), day(2024, 3, 8)

	s.repo.On("Begin", ctx).Return(nil, nil).Once()
	s.repo.On("ListDueRecurringForUpdate", ctx, nil, testUserID, today).Return(due, nil).Once()
	s.repo.On("AdvanceRecurringInTx", ctx, nil, "rent", day(2024, 4, 29), &lastRent).Return(nil).Once()
	s.repo.On("AdvanceRecurringInTx", ctx, nil, "gym", day(2024, 3, 15), &lastGym).Return(nil).Once()
	s.repo.On("Commit", ctx, nil).Return(nil).Once()
	s.repo.On("Rollback", ctx, nil).Return(nil).Once()

	created, err := s.svc.Materialize(ctx, testUserID)
	s.Require().NoError(err)
	s.Equal(5, created)
	s.repo.AssertExpectations(s.T())

	var rentDays []time.Time
	for _, t := range s.txns.txns {
		s.Equal(services.RecurringTransactionKind, t.Kind)
		if t.Currency == "EUR" {
			rentDays = append(rentDays, t.OccurredOn)
			s.True(t.ConvertedAmount.Decimal.Equal(dec("430")))
		}
	}
	s.Equal([]time.Time{day(2024, 1, 31), day(2024, 2, 29), day(2024, 3, 29)}, rentDays)
}

func (s *RecurringServiceTestSuite) TestMaterializeNothingDue() {
	ctx := context.Background()
	s.repo.On("Begin", ctx).Return(nil, nil).Once()
	s.repo.On("ListDueRecurringForUpdate", ctx, nil, testUserID, mock.Anything).Return([]domain.RecurringTransaction{}, nil).Once()
	s.repo.On("Commit", ctx, nil).Return(nil).Once()
	s.repo.On("Rollback", ctx, nil).Return(nil).Once()

	created, err := s.svc.Materialize(ctx, testUserID)
	s.Require().NoError(err)
	s.Zero(created)
	s.repo.AssertNotCalled(s.T(), "AdvanceRecurringInTx", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *RecurringServiceTestSuite) TestMaterializeRollsBackOnInsertFailure() {
	ctx := context.Background()
	svc := s.newService(&failingTxnWriter{})
	due := []domain.RecurringTransaction{{
		RecurringID: "salary", UserID: testUserID, Type: domain.TransactionIncome, Amount: dec("5000"),
		Currency: "PLN", Frequency: domain.FrequencyMonthly, NextOccurrence: day(2024, 3, 10),
	}}
	s.repo.On("Begin", ctx).Return(nil, nil).Once()
	s.repo.On("ListDueRecurringForUpdate", ctx, nil, testUserID, mock.Anything).Return(due, nil).Once()
	s.repo.On("Rollback", ctx, nil).Return(nil).Once()

	_, err := svc.Materialize(ctx, testUserID)
	s.Require().Error(err)
	s.repo.AssertNotCalled(s.T(), "Commit", mock.Anything, mock.Anything)
	s.repo.AssertNotCalled(s.T(), "AdvanceRecurringInTx", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *RecurringServiceTestSuite) TestCreateRecurring() {
	ctx := context.Background()
	s.repo.On("SaveRecurring", ctx, mock.MatchedBy(func(r domain.RecurringTransaction) bool {
		return r.NextOccurrence.Equal(day(2024, 5, 1)) && r.Currency == "PLN" && r.Frequency == domain.FrequencyMonthly
	})).Return(nil).Once()

	r, err := s.svc.CreateRecurring(ctx, testUserID, dto.CreateRecurringRequest{
		CategoryID: strPtr("rent"), Type: "expense", Amount: dec("1500"), Frequency: "monthly", StartDate: "2024-05-01",
	})
	s.Require().NoError(err)
	s.Equal(testUserID, r.UserID)
	s.repo.AssertExpectations(s.T())
}

func (s *RecurringServiceTestSuite) TestCreateRecurringValidation() {
	tests := []struct {
		name string
		req  dto.CreateRecurringRequest
	}{
		{name: "expense without category", req: dto.CreateRecurringRequest{Type: "expense", Amount: dec("1"), Frequency: "weekly", StartDate: "2024-05-01"}},
		{name: "unknown frequency", req: dto.CreateRecurringRequest{Type: "income", Amount: dec("1"), Frequency: "hourly", StartDate: "2024-05-01"}},
		{name: "end before start", req: dto.CreateRecurringRequest{Type: "income", Amount: dec("1"), Frequency: "daily", StartDate: "2024-05-01", EndDate: strPtr("2024-04-01")}},
		{name: "foreign category", req: dto.CreateRecurringRequest{CategoryID: strPtr("nope"), Type: "expense", Amount: dec("1"), Frequency: "daily", StartDate: "2024-05-01"}},
	}
	for _, tt := range tests {
		s.Run(tt.name, func() {
			_, err := s.svc.CreateRecurring(context.Background(), testUserID, tt.req)
			s.ErrorIs(err, apperrors.ErrValidation)
		})
	}
	s.repo.AssertNotCalled(s.T(), "SaveRecurring", mock.Anything, mock.Anything)
}

func (s *RecurringServiceTestSuite) TestUpdateRecurring() {
	ctx := context.Background()
	existing := &domain.RecurringTransaction{
		RecurringID: "r-1", UserID: testUserID, Type: domain.TransactionIncome, Amount: dec("10"),
		Currency: "PLN", Frequency: domain.FrequencyWeekly, StartDate: day(2024, 1, 1), NextOccurrence: day(2024, 4, 8),
	}
	s.repo.On("FindRecurringByID", ctx, testUserID, "r-1").Return(existing, nil).Once()
	s.repo.On("UpdateRecurring", ctx, mock.Anything).Return(nil).Once()

	freq := "monthly"
	next := "2024-05-01"
	r, err := s.svc.UpdateRecurring(ctx, testUserID, "r-1", dto.UpdateRecurringRequest{Frequency: &freq, NextOccurrence: &next})
	s.Require().NoError(err)
	s.Equal(domain.FrequencyMonthly, r.Frequency)
	s.Equal(day(2024, 5, 1), r.NextOccurrence)
}
