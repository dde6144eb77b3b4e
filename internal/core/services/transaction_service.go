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
	"github.com/Aquaier/Savoo/internal/utils/pagination"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// transactionService records transactions with their base-currency value.
type transactionService struct {
	BaseService
	txnRepo      portsrepo.TransactionRepositoryFacade
	categoryRepo portsrepo.CategoryReader
	budgetRepo   portsrepo.BudgetReader
	converter    portssvc.ConversionSvc
	userSvc      portssvc.UserReaderSvc
	materializer portssvc.RecurringMaterializerSvc
	now          Clock
}

// TransactionServiceOption configures the transaction service
type TransactionServiceOption func(*transactionService)

// WithTransactionMaterializer makes listings generate due recurring transactions first.
func WithTransactionMaterializer(m portssvc.RecurringMaterializerSvc) TransactionServiceOption {
	return func(s *transactionService) { s.materializer = m }
}

// WithTransactionClock overrides the time source.
func WithTransactionClock(now Clock) TransactionServiceOption {
	return func(s *transactionService) { s.now = now }
}

// NewTransactionService creates a new transaction service.
func NewTransactionService(
	txnRepo portsrepo.TransactionRepositoryFacade,
	categoryRepo portsrepo.CategoryReader,
	budgetRepo portsrepo.BudgetReader,
	converter portssvc.ConversionSvc,
	userSvc portssvc.UserReaderSvc,
	options ...TransactionServiceOption,
) portssvc.TransactionSvcFacade {
	svc := &transactionService{
		txnRepo:      txnRepo,
		categoryRepo: categoryRepo,
		budgetRepo:   budgetRepo,
		converter:    converter,
		userSvc:      userSvc,
		now:          time.Now,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.TransactionSvcFacade = (*transactionService)(nil)

func (s *transactionService) requireOwnedBudget(ctx context.Context, userID string, budgetID *string) error {
	if budgetID == nil {
		return nil
	}
	if _, err := s.budgetRepo.FindBudgetByID(ctx, userID, *budgetID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.NewValidationError("budget does not exist")
		}
		return fmt.Errorf("looking up budget: %w", err)
	}
	return nil
}

// validate checks the fields shared by create and update and the links to the user's rows.
func (s *transactionService) validate(ctx context.Context, txn *domain.Transaction) error {
	if !txn.Type.IsValid() {
		return apperrors.NewValidationError("type must be income, expense or transfer")
	}
	if !txn.Amount.IsPositive() {
		return apperrors.NewValidationError("amount must be greater than zero")
	}
	if txn.Type == domain.TransactionExpense && txn.CategoryID == nil && txn.BudgetID == nil {
		return apperrors.NewValidationError("an expense needs a category or a budget")
	}
	if err := requireOwnedCategory(ctx, s.categoryRepo, txn.UserID, txn.CategoryID); err != nil {
		return err
	}
	return s.requireOwnedBudget(ctx, txn.UserID, txn.BudgetID)
}

func (s *transactionService) convert(ctx context.Context, txn *domain.Transaction) error {
	converted, err := s.converter.ToBase(ctx, txn.Amount, txn.Currency)
	if err != nil {
		return fmt.Errorf("converting to base currency: %w", err)
	}
	txn.ConvertedAmount = decimal.NewNullDecimal(converted)
	return nil
}

func (s *transactionService) CreateTransaction(ctx context.Context, userID string, req dto.CreateTransactionRequest) (*domain.Transaction, error) {
	occurredOn, err := domain.ParseDate(req.OccurredOn)
	if err != nil {
		return nil, apperrors.NewValidationError("occurredOn must be a YYYY-MM-DD date")
	}
	currency, err := s.userSvc.DisplayCurrency(ctx, userID, req.Currency)
	if err != nil {
		return nil, err
	}
	kind := strings.TrimSpace(req.Kind)
	if kind == "" {
		kind = domain.DefaultTransactionKind
	}

	now := s.now()
	txn := domain.Transaction{
		TransactionID: uuid.NewString(),
		UserID:        userID,
		CategoryID:    nonEmpty(req.CategoryID),
		BudgetID:      nonEmpty(req.BudgetID),
		Type:          domain.TransactionType(req.Type),
		Kind:          kind,
		Amount:        req.Amount,
		Currency:      currency,
		Note:          strings.TrimSpace(req.Note),
		OccurredOn:    occurredOn,
		AuditFields:   domain.AuditFields{CreatedAt: now, LastUpdatedAt: now},
	}
	if err := s.validate(ctx, &txn); err != nil {
		return nil, err
	}
	if err := s.convert(ctx, &txn); err != nil {
		return nil, err
	}

	if err := s.txnRepo.SaveTransaction(ctx, txn); err != nil {
		s.LogError(ctx, err, "Failed to save transaction", slog.String("user_id", userID))
		return nil, err
	}
	s.LogInfo(ctx, "Transaction created successfully",
		slog.String("transaction_id", txn.TransactionID),
		slog.String("user_id", userID))
	return &txn, nil
}

func (s *transactionService) GetTransaction(ctx context.Context, userID, transactionID string) (*domain.Transaction, error) {
	return s.txnRepo.FindTransactionByID(ctx, userID, transactionID)
}

func (s *transactionService) UpdateTransaction(ctx context.Context, userID, transactionID string, req dto.UpdateTransactionRequest) (*domain.Transaction, error) {
	txn, err := s.txnRepo.FindTransactionByID(ctx, userID, transactionID)
	if err != nil {
		return nil, err
	}

	reconvert := !txn.ConvertedAmount.Valid
	if req.CategoryID != nil {
		txn.CategoryID = nonEmpty(req.CategoryID)
	}
	if req.BudgetID != nil {
		txn.BudgetID = nonEmpty(req.BudgetID)
	}
	if req.Type != nil {
		txn.Type = domain.TransactionType(*req.Type)
	}
	if req.Kind != nil {
		txn.Kind = strings.TrimSpace(*req.Kind)
		if txn.Kind == "" {
			txn.Kind = domain.DefaultTransactionKind
		}
	}
	if req.Amount != nil {
		txn.Amount = *req.Amount
		reconvert = true
	}
	if req.Currency != nil {
		txn.Currency = domain.NormalizeCurrencyCode(*req.Currency, txn.Currency)
		reconvert = true
	}
	if req.Note != nil {
		txn.Note = strings.TrimSpace(*req.Note)
	}
	if req.OccurredOn != nil {
		if txn.OccurredOn, err = domain.ParseDate(*req.OccurredOn); err != nil {
			return nil, apperrors.NewValidationError("occurredOn must be a YYYY-MM-DD date")
		}
	}

	if err := s.validate(ctx, txn); err != nil {
		return nil, err
	}
	if reconvert {
		if err := s.convert(ctx, txn); err != nil {
			return nil, err
		}
	}
	txn.LastUpdatedAt = s.now()

	if err := s.txnRepo.UpdateTransaction(ctx, *txn); err != nil {
		s.LogError(ctx, err, "Failed to update transaction", slog.String("transaction_id", transactionID))
		return nil, err
	}
	return txn, nil
}

func (s *transactionService) DeleteTransaction(ctx context.Context, userID, transactionID string) error {
	if err := s.txnRepo.DeleteTransaction(ctx, userID, transactionID); err != nil {
		s.LogError(ctx, err, "Failed to delete transaction", slog.String("transaction_id", transactionID))
		return err
	}
	s.LogInfo(ctx, "Transaction deleted successfully", slog.String("transaction_id", transactionID))
	return nil
}

func buildTransactionFilter(params dto.ListTransactionsParams) (domain.TransactionFilter, error) {
	filter := domain.TransactionFilter{Limit: params.Limit}
	if filter.Limit <= 0 {
		filter.Limit = 50
	}
	for _, f := range []struct {
		field string
		value string
		dst   **time.Time
	}{
		{"from", params.From, &filter.From},
		{"to", params.To, &filter.To},
	} {
		parsed, err := parseOptionalDate(f.field, &f.value)
		if err != nil {
			return filter, err
		}
		*f.dst = parsed
	}
	if params.Type != "" {
		t := domain.TransactionType(params.Type)
		filter.Type = &t
	}
	if params.CategoryID != "" {
		c := params.CategoryID
		filter.CategoryID = &c
	}
	if params.NextToken != "" {
		afterDate, afterCreated, err := pagination.DecodeToken(params.NextToken)
		if err != nil {
			return filter, apperrors.NewValidationError("nextToken is invalid")
		}
		filter.AfterDate, filter.AfterCreatedAt = &afterDate, &afterCreated
	}
	return filter, nil
}

// ListTransactions returns one page, newest first, with each amount also shown in
// the display currency.
func (s *transactionService) ListTransactions(ctx context.Context, userID string, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error) {
	filter, err := buildTransactionFilter(params)
	if err != nil {
		return nil, err
	}
	display, err := s.userSvc.DisplayCurrency(ctx, userID, params.Currency)
	if err != nil {
		return nil, err
	}

	if s.materializer != nil {
		if _, err := s.materializer.Materialize(ctx, userID); err != nil {
			s.LogWarn(ctx, "Failed to materialize recurring transactions",
				slog.String("user_id", userID),
				slog.String("error", err.Error()))
		}
	}

	pageSize := filter.Limit
	filter.Limit = pageSize + 1
	txns, err := s.txnRepo.ListTransactions(ctx, userID, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to list transactions", slog.String("user_id", userID))
		return nil, err
	}

	resp := &dto.ListTransactionsResponse{Transactions: make([]dto.TransactionResponse, 0, len(txns))}
	if len(txns) > pageSize {
		txns = txns[:pageSize]
		last := txns[len(txns)-1]
		token := pagination.EncodeToken(last.OccurredOn, last.CreatedAt)
		resp.NextToken = &token
	}

	for i := range txns {
		item := dto.ToTransactionResponse(&txns[i])
		amount, err := displayAmount(ctx, s.converter, txns[i], display)
		if err != nil {
			return nil, err
		}
		item.DisplayAmount = &amount
		item.DisplayCurrency = display
		resp.Transactions = append(resp.Transactions, item)
	}
	return resp, nil
}
