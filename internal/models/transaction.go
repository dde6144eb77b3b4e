package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is a row of the transactions table.
// ConvertedAmount is NULL for rows written before base amounts were stored.
type Transaction struct {
	TransactionID   string              `db:"transaction_id"`
	UserID          string              `db:"user_id"`
	CategoryID      *string             `db:"category_id"`
	BudgetID        *string             `db:"budget_id"`
	Type            string              `db:"type"`
	Kind            string              `db:"kind"`
	Amount          decimal.Decimal     `db:"amount"`
	Currency        string              `db:"currency"`
	ConvertedAmount decimal.NullDecimal `db:"converted_amount"`
	Note            string              `db:"note"`
	OccurredOn      time.Time           `db:"occurred_on"`
	AuditFields
}
