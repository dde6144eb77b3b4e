package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// SavingsGoal tracks progress toward a target. Amounts are in the base currency and
// CurrentAmount is the running total of the goal's contributions.
type SavingsGoal struct {
	GoalID        string          `json:"goalID"`
	UserID        string          `json:"userID"`
	Name          string          `json:"name"`
	TargetAmount  decimal.Decimal `json:"targetAmount"`
	CurrentAmount decimal.Decimal `json:"currentAmount"`
	Deadline      *time.Time      `json:"deadline,omitempty"`
	CategoryID    *string         `json:"categoryID,omitempty"`
	IsActive      bool            `json:"isActive"`
	AuditFields
}

// ApplyContribution adds a newly recorded contribution.
func (g *SavingsGoal) ApplyContribution(amount decimal.Decimal) {
	g.CurrentAmount = g.CurrentAmount.Add(amount)
}

// AdjustContribution moves the total by the difference between the new and old contribution.
func (g *SavingsGoal) AdjustContribution(oldAmount, newAmount decimal.Decimal) {
	g.CurrentAmount = g.CurrentAmount.Add(newAmount.Sub(oldAmount))
}

// RemoveContribution subtracts a deleted contribution, never going below zero.
func (g *SavingsGoal) RemoveContribution(amount decimal.Decimal) {
	g.CurrentAmount = decimal.Max(g.CurrentAmount.Sub(amount), decimal.Zero)
}

// Remaining is what is left to save, floored at zero.
func (g SavingsGoal) Remaining() decimal.Decimal {
	return decimal.Max(g.TargetAmount.Sub(g.CurrentAmount), decimal.Zero)
}

// ProgressPercent returns current/target as a percentage rounded to two places,
// or nil when the target is not positive.
func (g SavingsGoal) ProgressPercent() *decimal.Decimal {
	if !g.TargetAmount.IsPositive() {
		return nil
	}
	p := g.CurrentAmount.Div(g.TargetAmount).Mul(decimal.NewFromInt(100)).Round(2)
	return &p
}

// SavingsGoalContribution is a single deposit toward a goal, in the base currency.
type SavingsGoalContribution struct {
	ContributionID string          `json:"contributionID"`
	GoalID         string          `json:"goalID"`
	Amount         decimal.Decimal `json:"amount"`
	Note           string          `json:"note"`
	CreatedAt      time.Time       `json:"createdAt"`
}

// OpeningContributionNote marks the contribution recorded for a goal's starting balance.
const OpeningContributionNote = "opening balance"

// SavingsGoalProgress is a goal rendered in a display currency.
type SavingsGoalProgress struct {
	Goal               SavingsGoal      `json:"goal"`
	Contributed        decimal.Decimal  `json:"contributed"`
	ContributionCount  int              `json:"contributionCount"`
	TargetDisplay      decimal.Decimal  `json:"targetDisplay"`
	CurrentDisplay     decimal.Decimal  `json:"currentDisplay"`
	RemainingDisplay   decimal.Decimal  `json:"remainingDisplay"`
	ContributedDisplay decimal.Decimal  `json:"contributedDisplay"`
	ProgressPercent    *decimal.Decimal `json:"progressPercent,omitempty"`
	Currency           string           `json:"currency"`
}
