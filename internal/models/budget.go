package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Budget is a row of the budgets table. LimitAmount is stored in the base currency.
type Budget struct {
	BudgetID       string          `db:"budget_id"`
	UserID         string          `db:"user_id"`
	CategoryID     *string         `db:"category_id"`
	Name           string          `db:"name"`
	LimitAmount    decimal.Decimal `db:"limit_amount"`
	Period         string          `db:"period"`
	BudgetType     string          `db:"budget_type"`
	StartDate      *time.Time      `db:"start_date"`
	EndDate        *time.Time      `db:"end_date"`
	LastNotifiedAt *time.Time      `db:"last_notified_at"`
	AuditFields
}
