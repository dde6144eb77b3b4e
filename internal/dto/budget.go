package dto

import (
	"github.com/Aquaier/Savoo/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateBudgetRequest defines the payload for creating a budget. LimitAmount is
// expressed in Currency, or the user's default currency when omitted.
type CreateBudgetRequest struct {
	Name        string          `json:"name" binding:"required,max=100"`
	LimitAmount decimal.Decimal `json:"limitAmount" binding:"required"`
	Currency    string          `json:"currency" binding:"omitempty,currency"`
	CategoryID  *string         `json:"categoryID" binding:"omitempty,uuid"`
	Period      string          `json:"period" binding:"omitempty,oneof=weekly monthly quarterly custom"`
	BudgetType  string          `json:"budgetType" binding:"omitempty,max=50"`
	StartDate   *string         `json:"startDate" binding:"omitempty,datetime=2006-01-02"`
	EndDate     *string         `json:"endDate" binding:"omitempty,datetime=2006-01-02"`
}

// UpdateBudgetRequest defines the budget fields that may change.
type UpdateBudgetRequest struct {
	Name        *string          `json:"name" binding:"omitempty,max=100"`
	LimitAmount *decimal.Decimal `json:"limitAmount"`
	Currency    string           `json:"currency" binding:"omitempty,currency"`
	CategoryID  *string          `json:"categoryID" binding:"omitempty,uuid"`
	Period      *string          `json:"period" binding:"omitempty,oneof=weekly monthly quarterly custom"`
	BudgetType  *string          `json:"budgetType" binding:"omitempty,max=50"`
	StartDate   *string          `json:"startDate" binding:"omitempty,datetime=2006-01-02"`
	EndDate     *string          `json:"endDate" binding:"omitempty,datetime=2006-01-02"`
}

// BudgetResponse defines a budget with its derived spend in the display currency.
type BudgetResponse struct {
	BudgetID         string           `json:"budgetID"`
	Name             string           `json:"name"`
	CategoryID       *string          `json:"categoryID,omitempty"`
	Period           string           `json:"period"`
	BudgetType       string           `json:"budgetType"`
	StartDate        string           `json:"startDate"`
	EndDate          string           `json:"endDate"`
	Currency         string           `json:"currency"`
	LimitAmount      decimal.Decimal  `json:"limitAmount"`
	SpentAmount      decimal.Decimal  `json:"spentAmount"`
	Remaining        decimal.Decimal  `json:"remaining"`
	Utilization      *decimal.Decimal `json:"utilization,omitempty"`
	TransactionCount int              `json:"transactionCount"`
}

// ToBudgetResponse converts domain.BudgetStats to BudgetResponse DTO
func ToBudgetResponse(s *domain.BudgetStats) BudgetResponse {
	return BudgetResponse{
		BudgetID:         s.Budget.BudgetID,
		Name:             s.Budget.Name,
		CategoryID:       s.Budget.CategoryID,
		Period:           string(s.Budget.Period),
		BudgetType:       s.Budget.BudgetType,
		StartDate:        s.WindowStart.Format(domain.DateLayout),
		EndDate:          s.WindowEnd.Format(domain.DateLayout),
		Currency:         s.Currency,
		LimitAmount:      s.LimitDisplay,
		SpentAmount:      s.SpentDisplay,
		Remaining:        s.Remaining,
		Utilization:      s.Utilization,
		TransactionCount: s.TransactionCount,
	}
}

// ToListBudgetResponse converts a slice of domain.BudgetStats to BudgetResponse DTOs
func ToListBudgetResponse(stats []domain.BudgetStats) []BudgetResponse {
	resp := make([]BudgetResponse, len(stats))
	for i := range stats {
		resp[i] = ToBudgetResponse(&stats[i])
	}
	return resp
}
