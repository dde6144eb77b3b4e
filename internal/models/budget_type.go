package models

import "time"

// BudgetType is a row of the budget_types table.
type BudgetType struct {
	BudgetTypeID string    `db:"budget_type_id"`
	UserID       string    `db:"user_id"`
	Name         string    `db:"name"`
	CreatedAt    time.Time `db:"created_at"`
}
