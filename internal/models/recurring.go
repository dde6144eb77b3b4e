package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// RecurringTransaction is a row of the recurring_transactions table.
type RecurringTransaction struct {
	RecurringID    string          `db:"recurring_id"`
	UserID         string          `db:"user_id"`
	CategoryID     *string         `db:"category_id"`
	Type           string          `db:"type"`
	Amount         decimal.Decimal `db:"amount"`
	Currency       string          `db:"currency"`
	Note           string          `db:"note"`
	Frequency      string          `db:"frequency"`
	StartDate      time.Time       `db:"start_date"`
	NextOccurrence time.Time       `db:"next_occurrence"`
	EndDate        *time.Time      `db:"end_date"`
	LastGenerated  *time.Time      `db:"last_generated"`
	AuditFields
}
