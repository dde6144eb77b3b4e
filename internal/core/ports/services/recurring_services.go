package services

import (
	"context"

	"github.com/Aquaier/Savoo/internal/core/domain"
	"github.com/Aquaier/Savoo/internal/dto"
)

// RecurringMaterializerSvc turns due recurring templates into transactions.
type RecurringMaterializerSvc interface {
	// Materialize inserts every due occurrence for the user and returns how many were created.
	Materialize(ctx context.Context, userID string) (int, error)
}

// RecurringSvcFacade combines all recurring transaction-related service interfaces
type RecurringSvcFacade interface {
	RecurringMaterializerSvc
	CreateRecurring(ctx context.Context, userID string, req dto.CreateRecurringRequest) (*domain.RecurringTransaction, error)
	GetRecurring(ctx context.Context, userID, recurringID string) (*domain.RecurringTransaction, error)
	ListRecurring(ctx context.Context, userID string) ([]domain.RecurringTransaction, error)
	UpdateRecurring(ctx context.Context, userID, recurringID string, req dto.UpdateRecurringRequest) (*domain.RecurringTransaction, error)
	DeleteRecurring(ctx context.Context, userID, recurringID string) error
}
