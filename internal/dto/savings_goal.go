package dto

import (
	"time"

	"github.com/Aquaier/Savoo/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateSavingsGoalRequest defines the payload for creating a savings goal.
// Amounts are in Currency, or the user's default currency when omitted.
type CreateSavingsGoalRequest struct {
	Name          string           `json:"name" binding:"required,max=100"`
	TargetAmount  decimal.Decimal  `json:"targetAmount" binding:"required"`
	CurrentAmount *decimal.Decimal `json:"currentAmount"`
	Currency      string           `json:"currency" binding:"omitempty,currency"`
	Deadline      *string          `json:"deadline" binding:"omitempty,datetime=2006-01-02"`
	CategoryID    *string          `json:"categoryID" binding:"omitempty,uuid"`
}

// UpdateSavingsGoalRequest defines the goal fields that may change. The saved
// amount only moves through contributions.
type UpdateSavingsGoalRequest struct {
	Name         *string          `json:"name" binding:"omitempty,max=100"`
	TargetAmount *decimal.Decimal `json:"targetAmount"`
	Currency     string           `json:"currency" binding:"omitempty,currency"`
	Deadline     *string          `json:"deadline" binding:"omitempty,datetime=2006-01-02"`
	CategoryID   *string          `json:"categoryID" binding:"omitempty,uuid"`
	IsActive     *bool            `json:"isActive"`
}

// ContributionRequest defines the payload for adding or changing a contribution.
type ContributionRequest struct {
	Amount   decimal.Decimal `json:"amount" binding:"required"`
	Currency string          `json:"currency" binding:"omitempty,currency"`
	Note     string          `json:"note" binding:"omitempty,max=500"`
}

// SavingsGoalResponse defines a goal and its progress in the display currency.
type SavingsGoalResponse struct {
	GoalID            string           `json:"goalID"`
	Name              string           `json:"name"`
	Currency          string           `json:"currency"`
	TargetAmount      decimal.Decimal  `json:"targetAmount"`
	CurrentAmount     decimal.Decimal  `json:"currentAmount"`
	RemainingAmount   decimal.Decimal  `json:"remainingAmount"`
	ContributedAmount decimal.Decimal  `json:"contributedAmount"`
	ContributionCount int              `json:"contributionCount"`
	ProgressPercent   *decimal.Decimal `json:"progressPercent,omitempty"`
	Deadline          *string          `json:"deadline,omitempty"`
	CategoryID        *string          `json:"categoryID,omitempty"`
	IsActive          bool             `json:"isActive"`
}

// ToSavingsGoalResponse converts domain.SavingsGoalProgress to SavingsGoalResponse DTO
func ToSavingsGoalResponse(p *domain.SavingsGoalProgress) SavingsGoalResponse {
	resp := SavingsGoalResponse{
		GoalID:            p.Goal.GoalID,
		Name:              p.Goal.Name,
		Currency:          p.Currency,
		TargetAmount:      p.TargetDisplay,
		CurrentAmount:     p.CurrentDisplay,
		RemainingAmount:   p.RemainingDisplay,
		ContributedAmount: p.ContributedDisplay,
		ContributionCount: p.ContributionCount,
		ProgressPercent:   p.ProgressPercent,
		CategoryID:        p.Goal.CategoryID,
		IsActive:          p.Goal.IsActive,
	}
	if p.Goal.Deadline != nil {
		d := p.Goal.Deadline.Format(domain.DateLayout)
		resp.Deadline = &d
	}
	return resp
}

// ToListSavingsGoalResponse converts a slice of progress views to DTOs
func ToListSavingsGoalResponse(progress []domain.SavingsGoalProgress) []SavingsGoalResponse {
	resp := make([]SavingsGoalResponse, len(progress))
	for i := range progress {
		resp[i] = ToSavingsGoalResponse(&progress[i])
	}
	return resp
}

// ContributionResponse defines a contribution returned by the API, in the base currency.
type ContributionResponse struct {
	ContributionID string          `json:"contributionID"`
	GoalID         string          `json:"goalID"`
	Amount         decimal.Decimal `json:"amount"`
	Note           string          `json:"note"`
	CreatedAt      time.Time       `json:"createdAt"`
}

// ToContributionResponse converts a domain contribution to its DTO
func ToContributionResponse(c *domain.SavingsGoalContribution) ContributionResponse {
	return ContributionResponse{
		ContributionID: c.ContributionID,
		GoalID:         c.GoalID,
		Amount:         c.Amount,
		Note:           c.Note,
		CreatedAt:      c.CreatedAt,
	}
}

// ToListContributionResponse converts contributions to DTOs
func ToListContributionResponse(cs []domain.SavingsGoalContribution) []ContributionResponse {
	resp := make([]ContributionResponse, len(cs))
	for i := range cs {
		resp[i] = ToContributionResponse(&cs[i])
	}
	return resp
}
