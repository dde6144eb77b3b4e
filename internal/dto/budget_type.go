package dto

import (
	"time"

	"github.com/Aquaier/Savoo/internal/core/domain"
)

// CreateBudgetTypeRequest defines the payload for adding a budget type.
type CreateBudgetTypeRequest struct {
	Name string `json:"name" binding:"required,max=50"`
}

// BudgetTypeResponse defines the budget type data returned by the API.
type BudgetTypeResponse struct {
	BudgetTypeID string    `json:"budgetTypeID"`
	Name         string    `json:"name"`
	CreatedAt    time.Time `json:"createdAt"`
}

// ToBudgetTypeResponse converts a domain.BudgetType to BudgetTypeResponse DTO
func ToBudgetTypeResponse(t *domain.BudgetType) BudgetTypeResponse {
	return BudgetTypeResponse{BudgetTypeID: t.BudgetTypeID, Name: t.Name, CreatedAt: t.CreatedAt}
}

// ToListBudgetTypeResponse converts a slice of domain.BudgetType to BudgetTypeResponse DTOs
func ToListBudgetTypeResponse(types []domain.BudgetType) []BudgetTypeResponse {
	resp := make([]BudgetTypeResponse, len(types))
	for i := range types {
		resp[i] = ToBudgetTypeResponse(&types[i])
	}
	return resp
}
