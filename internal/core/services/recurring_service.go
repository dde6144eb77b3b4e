package services

import (
	"context"
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

// RecurringTransactionKind is the kind stamped on transactions generated from a schedule.
const RecurringTransactionKind = "recurring"

type recurringService struct {
	BaseService
	recurringRepo portsrepo.RecurringRepositoryWithTx
	txnRepo       portsrepo.TransactionWriter
	categoryRepo  portsrepo.CategoryReader
	converter     portssvc.ConversionSvc
	userSvc       portssvc.UserReaderSvc
	loc           *time.Location
	now           Clock
}

// RecurringServiceOption configures the recurring transaction service
type RecurringServiceOption func(*recurringService)

// WithRecurringTimezone sets the zone used to decide what "today" is.
func WithRecurringTimezone(loc *time.Location) RecurringServiceOption {
	return func(s *recurringService) { s.loc = loc }
}

// WithRecurringClock overrides the time source.
func WithRecurringClock(now Clock) RecurringServiceOption {
	return func(s *recurringService) { s.now = now }
}

// NewRecurringService creates a new recurring transaction service.
func NewRecurringService(
	recurringRepo portsrepo.RecurringRepositoryWithTx,
	txnRepo portsrepo.TransactionWriter,
	categoryRepo portsrepo.CategoryReader,
	converter portssvc.ConversionSvc,
	userSvc portssvc.UserReaderSvc,
	options ...RecurringServiceOption,
) portssvc.RecurringSvcFacade {
	svc := &recurringService{
		recurringRepo: recurringRepo,
		txnRepo:       txnRepo,
		categoryRepo:  categoryRepo,
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

var _ portssvc.RecurringSvcFacade = (*recurringService)(nil)

// Materialize writes one transaction per due occurrence and advances each schedule,
// all in a single database transaction. The schedules are row-locked, so two
// concurrent calls never generate the same occurrence twice.
func (s *recurringService) Materialize(ctx context.Context, userID string) (int, error) {
	today := domain.TruncateToDate(s.now(), s.loc)

	tx, err := s.recurringRepo.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer s.recurringRepo.Rollback(ctx, tx)

	due, err := s.recurringRepo.ListDueRecurringForUpdate(ctx, tx, userID, today)
	if err != nil {
		return 0, fmt.Errorf("listing due recurring transactions: %w", err)
	}

	created := 0
	for _, r := range due {
		dates, next := r.DueDates(today)
		if len(dates) == 0 {
			continue
		}
		base, err := s.converter.ToBase(ctx, r.Amount, r.Currency)
		if err != nil {
			return 0, fmt.Errorf("converting recurring transaction %s: %w", r.RecurringID, err)
		}

		now := s.now()
		txns := make([]domain.Transaction, 0, len(dates))
		for _, d := range dates {
			txns = append(txns, domain.Transaction{
				TransactionID:   uuid.NewString(),
				UserID:          r.UserID,
				CategoryID:      r.CategoryID,
				Type:            r.Type,
				Kind:            RecurringTransactionKind,
				Amount:          r.Amount,
				Currency:        r.Currency,
				ConvertedAmount: decimal.NewNullDecimal(base),
				Note:            r.Note,
				OccurredOn:      d,
				AuditFields:     domain.AuditFields{CreatedAt: now, LastUpdatedAt: now},
			})
		}
		if err := s.txnRepo.SaveTransactionsInTx(ctx, tx, txns); err != nil {
			return 0, fmt.Errorf("saving generated transactions: %w", err)
		}
		last := dates[len(dates)-1]
		if err := s.recurringRepo.AdvanceRecurringInTx(ctx, tx, r.RecurringID, next, &last); err != nil {
			return 0, fmt.Errorf("advancing recurring transaction %s: %w", r.RecurringID, err)
		}
		created += len(txns)
	}

	if err := s.recurringRepo.Commit(ctx, tx); err != nil {
		return 0, err
	}
	if created > 0 {
		s.LogInfo(ctx, "Recurring transactions materialized",
			slog.String("user_id", userID),
			slog.Int("created", created))
	}
	return created, nil
}

func validateRecurring(r *domain.RecurringTransaction) error {
	if !r.Type.IsValid() {
		return apperrors.NewValidationError("type must be income, expense or transfer")
	}
	if !r.Amount.IsPositive() {
		return apperrors.NewValidationError("amount must be greater than zero")
	}
	if !r.Frequency.IsValid() {
		return apperrors.NewValidationError("frequency is not supported")
	}
	if r.Type == domain.TransactionExpense && r.CategoryID == nil {
		return apperrors.NewValidationError("a recurring expense needs a category")
	}
	if r.EndDate != nil && r.EndDate.Before(r.StartDate) {
		return apperrors.NewValidationError("endDate must not be before startDate")
	}
	return nil
}

func (s *recurringService) CreateRecurring(ctx context.Context, userID string, req dto.CreateRecurringRequest) (*domain.RecurringTransaction, error) {
	start, err := domain.ParseDate(req.StartDate)
	if err != nil {
		return nil, apperrors.NewValidationError("startDate must be a YYYY-MM-DD date")
	}
	end, err := parseOptionalDate("endDate", req.EndDate)
	if err != nil {
		return nil, err
	}
	currency, err := s.userSvc.DisplayCurrency(ctx, userID, req.Currency)
	if err != nil {
		return nil, err
	}

	now := s.now()
	r := domain.RecurringTransaction{
		RecurringID:    uuid.NewString(),
		UserID:         userID,
		CategoryID:     nonEmpty(req.CategoryID),
		Type:           domain.TransactionType(req.Type),
		Amount:         req.Amount,
		Currency:       currency,
		Note:           strings.TrimSpace(req.Note),
		Frequency:      domain.Frequency(req.Frequency),
		StartDate:      start,
		NextOccurrence: start,
		EndDate:        end,
		AuditFields:    domain.AuditFields{CreatedAt: now, LastUpdatedAt: now},
	}
	if err := validateRecurring(&r); err != nil {
		return nil, err
	}
	if err := requireOwnedCategory(ctx, s.categoryRepo, userID, r.CategoryID); err != nil {
		return nil, err
	}

	if err := s.recurringRepo.SaveRecurring(ctx, r); err != nil {
		s.LogError(ctx, err, "Failed to save recurring transaction", slog.String("user_id", userID))
		return nil, err
	}
	s.LogInfo(ctx, "Recurring transaction created successfully",
		slog.String("recurring_id", r.RecurringID),
		slog.String("frequency", string(r.Frequency)))
	return &r, nil
}

func (s *recurringService) GetRecurring(ctx context.Context, userID, recurringID string) (*domain.RecurringTransaction, error) {
	return s.recurringRepo.FindRecurringByID(ctx, userID, recurringID)
}

func (s *recurringService) ListRecurring(ctx context.Context, userID string) ([]domain.RecurringTransaction, error) {
	return s.recurringRepo.ListRecurring(ctx, userID)
}

func (s *recurringService) UpdateRecurring(ctx context.Context, userID, recurringID string, req dto.UpdateRecurringRequest) (*domain.RecurringTransaction, error) {
	r, err := s.recurringRepo.FindRecurringByID(ctx, userID, recurringID)
	if err != nil {
		return nil, err
	}

	if req.CategoryID != nil {
		r.CategoryID = nonEmpty(req.CategoryID)
		if err := requireOwnedCategory(ctx, s.categoryRepo, userID, r.CategoryID); err != nil {
			return nil, err
		}
	}
	if req.Amount != nil {
		r.Amount = *req.Amount
	}
	if req.Currency != nil {
		r.Currency = domain.NormalizeCurrencyCode(*req.Currency, r.Currency)
	}
	if req.Note != nil {
		r.Note = strings.TrimSpace(*req.Note)
	}
	if req.Frequency != nil {
		r.Frequency = domain.Frequency(*req.Frequency)
	}
	if req.NextOccurrence != nil {
		next, err := domain.ParseDate(*req.NextOccurrence)
		if err != nil {
			return nil, apperrors.NewValidationError("nextOccurrence must be a YYYY-MM-DD date")
		}
		r.NextOccurrence = next
	}
	if req.EndDate != nil {
		if r.EndDate, err = parseOptionalDate("endDate", req.EndDate); err != nil {
			return nil, err
		}
	}
	if err := validateRecurring(r); err != nil {
		return nil, err
	}
	r.LastUpdatedAt = s.now()

	if err := s.recurringRepo.UpdateRecurring(ctx, *r); err != nil {
		s.LogError(ctx, err, "Failed to update recurring transaction", slog.String("recurring_id", recurringID))
		return nil, err
	}
	return r, nil
}

func (s *recurringService) DeleteRecurring(ctx context.Context, userID, recurringID string) error {
	if err := s.recurringRepo.DeleteRecurring(ctx, userID, recurringID); err != nil {
		s.LogError(ctx, err, "Failed to delete recurring transaction", slog.String("recurring_id", recurringID))
		return err
	}
	return nil
}
