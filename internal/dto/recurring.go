package dto

import (
	"time"

	"github.com/Aquaier/Savoo/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateRecurringRequest defines the payload for scheduling a recurring transaction.
type CreateRecurringRequest struct {
	CategoryID *string         `json:"categoryID" binding:"omitempty,uuid"`
	Type       string          `json:"type" binding:"required,oneof=income expense transfer"`
	Amount     decimal.Decimal `json:"amount" binding:"required"`
	Currency   string          `json:"currency" binding:"omitempty,currency"`
	Note       string          `json:"note" binding:"omitempty,max=500"`
	Frequency  string          `json:"frequency" binding:"required,oneof=daily weekly monthly quarterly yearly"`
	StartDate  string          `json:"startDate" binding:"required,datetime=2006-01-02"`
	EndDate    *string         `json:"endDate" binding:"omitempty,datetime=2006-01-02"`
}

// UpdateRecurringRequest defines the recurring transaction fields that may change.
type UpdateRecurringRequest struct {
	CategoryID     *string          `json:"categoryID" binding:"omitempty,uuid"`
	Amount         *decimal.Decimal `json:"amount"`
	Currency       *string          `json:"currency" binding:"omitempty,currency"`
	Note           *string          `json:"note" binding:"omitempty,max=500"`
	Frequency      *string          `json:"frequency" binding:"omitempty,oneof=daily weekly monthly quarterly yearly"`
	NextOccurrence *string          `json:"nextOccurrence" binding:"omitempty,datetime=2006-01-02"`
	EndDate        *string          `json:"endDate" binding:"omitempty,datetime=2006-01-02"`
}

// RecurringResponse defines the recurring transaction data returned by the API.
type RecurringResponse struct {
	RecurringID    string          `json:"recurringID"`
	CategoryID     *string         `json:"categoryID,omitempty"`
	Type           string          `json:"type"`
	Amount         decimal.Decimal `json:"amount"`
	Currency       string          `json:"currency"`
	Note           string          `json:"note"`
	Frequency      string          `json:"frequency"`
	StartDate      string          `json:"startDate"`
	NextOccurrence string          `json:"nextOccurrence"`
	EndDate        *string         `json:"endDate,omitempty"`
	LastGenerated  *string         `json:"lastGenerated,omitempty"`
}

func datePtr(t time.Time) *string {
	s := t.Format(domain.DateLayout)
	return &s
}

// ToRecurringResponse converts a domain.RecurringTransaction to its DTO
func ToRecurringResponse(r *domain.RecurringTransaction) RecurringResponse {
	resp := RecurringResponse{
		RecurringID:    r.RecurringID,
		CategoryID:     r.CategoryID,
		Type:           string(r.Type),
		Amount:         r.Amount,
		Currency:       r.Currency,
		Note:           r.Note,
		Frequency:      string(r.Frequency),
		StartDate:      r.StartDate.Format(domain.DateLayout),
		NextOccurrence: r.NextOccurrence.Format(domain.DateLayout),
	}
	if r.EndDate != nil {
		resp.EndDate = datePtr(*r.EndDate)
	}
	if r.LastGenerated != nil {
		resp.LastGenerated = datePtr(*r.LastGenerated)
	}
	return resp
}

// ToListRecurringResponse converts recurring transactions to DTOs
func ToListRecurringResponse(rs []domain.RecurringTransaction) []RecurringResponse {
	resp := make([]RecurringResponse, len(rs))
	for i := range rs {
		resp[i] = ToRecurringResponse(&rs[i])
	}
	return resp
}
