package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// SavingsGoal is a row of the savings_goals table. Amounts are in the base currency.
type SavingsGoal struct {
	GoalID        string          `db:"goal_id"`
	UserID        string          `db:"user_id"`
	Name          string          `db:"name"`
	TargetAmount  decimal.Decimal `db:"target_amount"`
	CurrentAmount decimal.Decimal `db:"current_amount"`
	Deadline      *time.Time      `db:"deadline"`
	CategoryID    *string         `db:"category_id"`
	IsActive      bool            `db:"is_active"`
	AuditFields
}

// SavingsGoalContribution is a row of the savings_goal_contributions table.
type SavingsGoalContribution struct {
	ContributionID string          `db:"contribution_id"`
	GoalID         string          `db:"goal_id"`
	Amount         decimal.Decimal `db:"amount"`
	Note           string          `db:"note"`
	CreatedAt      time.Time       `db:"created_at"`
}
