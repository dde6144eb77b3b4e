package dto

import (
	"time"

	"github.com/Aquaier/Savoo/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateTransactionRequest defines the payload for recording a transaction.
type CreateTransactionRequest struct {
	CategoryID *string         `json:"categoryID" binding:"omitempty,uuid"`
	BudgetID   *string         `json:"budgetID" binding:"omitempty,uuid"`
	Type       string          `json:"type" binding:"required,oneof=income expense transfer"`
	Kind       string          `json:"kind" binding:"omitempty,max=50"`
	Amount     decimal.Decimal `json:"amount" binding:"required"`
	Currency   string          `json:"currency" binding:"omitempty,currency"`
	Note       string          `json:"note" binding:"omitempty,max=500"`
	OccurredOn string          `json:"occurredOn" binding:"required,datetime=2006-01-02"`
}

// UpdateTransactionRequest defines the transaction fields that may change.
type UpdateTransactionRequest struct {
	CategoryID *string          `json:"categoryID" binding:"omitempty,uuid"`
	BudgetID   *string          `json:"budgetID" binding:"omitempty,uuid"`
	Type       *string          `json:"type" binding:"omitempty,oneof=income expense transfer"`
	Kind       *string          `json:"kind" binding:"omitempty,max=50"`
	Amount     *decimal.Decimal `json:"amount"`
	Currency   *string          `json:"currency" binding:"omitempty,currency"`
	Note       *string          `json:"note" binding:"omitempty,max=500"`
	OccurredOn *string          `json:"occurredOn" binding:"omitempty,datetime=2006-01-02"`
}

// ListTransactionsParams defines query parameters for listing transactions.
type ListTransactionsParams struct {
	From       string `form:"from" binding:"omitempty,datetime=2006-01-02"`
	To         string `form:"to" binding:"omitempty,datetime=2006-01-02"`
	Type       string `form:"type" binding:"omitempty,oneof=income expense transfer"`
	CategoryID string `form:"categoryID" binding:"omitempty,uuid"`
	Currency   string `form:"currency" binding:"omitempty,currency"`
	Limit      int    `form:"limit,default=50" binding:"min=1,max=500"`
	NextToken  string `form:"nextToken"`
}

// TransactionResponse defines the transaction data returned by the API.
type TransactionResponse struct {
	TransactionID   string           `json:"transactionID"`
	CategoryID      *string          `json:"categoryID,omitempty"`
	BudgetID        *string          `json:"budgetID,omitempty"`
	Type            string           `json:"type"`
	Kind            string           `json:"kind"`
	Amount          decimal.Decimal  `json:"amount"`
	Currency        string           `json:"currency"`
	ConvertedAmount *decimal.Decimal `json:"convertedAmount,omitempty"`
	DisplayAmount   *decimal.Decimal `json:"displayAmount,omitempty"`
	DisplayCurrency string           `json:"displayCurrency,omitempty"`
	Note            string           `json:"note"`
	OccurredOn      string           `json:"occurredOn"`
	CreatedAt       time.Time        `json:"createdAt"`
}

// ListTransactionsResponse wraps a page of transactions.
type ListTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	NextToken    *string               `json:"nextToken,omitempty"`
}

// ToTransactionResponse converts a domain.Transaction to TransactionResponse DTO
func ToTransactionResponse(t *domain.Transaction) TransactionResponse {
	resp := TransactionResponse{
		TransactionID: t.TransactionID,
		CategoryID:    t.CategoryID,
		BudgetID:      t.BudgetID,
		Type:          string(t.Type),
		Kind:          t.Kind,
		Amount:        t.Amount,
		Currency:      t.Currency,
		Note:          t.Note,
		OccurredOn:    t.OccurredOn.Format(domain.DateLayout),
		CreatedAt:     t.CreatedAt,
	}
	if t.ConvertedAmount.Valid {
		converted := t.ConvertedAmount.Decimal
		resp.ConvertedAmount = &converted
	}
	return resp
}
