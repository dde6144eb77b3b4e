package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType classifies the direction of money movement.
type TransactionType string

const (
	TransactionIncome   TransactionType = "income"
	TransactionExpense  TransactionType = "expense"
	TransactionTransfer TransactionType = "transfer"
)

// IsValid reports whether t is one of the known transaction types.
func (t TransactionType) IsValid() bool {
	switch t {
	case TransactionIncome, TransactionExpense, TransactionTransfer:
		return true
	}
	return false
}

// Transaction is a single income, expense or transfer recorded by a user.
// Amount is in Currency; ConvertedAmount is the same value in the base currency,
// computed when the row is written. Legacy rows may have no converted amount.
type Transaction struct {
	TransactionID   string              `json:"transactionID"`
	UserID          string              `json:"userID"`
	CategoryID      *string             `json:"categoryID,omitempty"`
	BudgetID        *string             `json:"budgetID,omitempty"`
	Type            TransactionType     `json:"type"`
	Kind            string              `json:"kind"`
	Amount          decimal.Decimal     `json:"amount"`
	Currency        string              `json:"currency"`
	ConvertedAmount decimal.NullDecimal `json:"convertedAmount"`
	Note            string              `json:"note"`
	OccurredOn      time.Time           `json:"occurredOn"`
	AuditFields
}

// DefaultTransactionKind is stored when the caller does not name a kind.
const DefaultTransactionKind = "general"

// TransactionFilter narrows a transaction listing.
type TransactionFilter struct {
	From       *time.Time
	To         *time.Time
	Type       *TransactionType
	CategoryID *string
	Limit      int
	// Keyset cursor: rows strictly older than (AfterDate, AfterCreatedAt).
	AfterDate      *time.Time
	AfterCreatedAt *time.Time
}
