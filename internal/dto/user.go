package dto

import (
	"time"

	"github.com/Aquaier/Savoo/internal/core/domain"
	"github.com/shopspring/decimal"
)

// UpdateProfileRequest defines the profile fields a user may change.
// Pointers distinguish omitted fields from zero values.
type UpdateProfileRequest struct {
	DisplayName           *string          `json:"displayName" binding:"omitempty,max=100"`
	DefaultCurrency       *string          `json:"defaultCurrency" binding:"omitempty,currency"`
	MonthlyIncome         *decimal.Decimal `json:"monthlyIncome"`
	MonthlyIncomeCurrency *string          `json:"monthlyIncomeCurrency" binding:"omitempty,currency"`
}

// UserResponse defines the user data returned by the API.
type UserResponse struct {
	UserID                string           `json:"userID"`
	Email                 string           `json:"email"`
	DisplayName           string           `json:"displayName"`
	DefaultCurrency       string           `json:"defaultCurrency"`
	MonthlyIncome         *decimal.Decimal `json:"monthlyIncome,omitempty"`
	MonthlyIncomeCurrency string           `json:"monthlyIncomeCurrency"`
	Role                  string           `json:"role"`
	CreatedAt             time.Time        `json:"createdAt"`
	LastLoginAt           *time.Time       `json:"lastLoginAt,omitempty"`
}

// ToUserResponse converts a domain.User to UserResponse DTO
func ToUserResponse(u *domain.User) UserResponse {
	resp := UserResponse{
		UserID:                u.UserID,
		Email:                 u.Email,
		DisplayName:           u.DisplayName,
		DefaultCurrency:       u.DefaultCurrency,
		MonthlyIncomeCurrency: u.MonthlyIncomeCurrency,
		Role:                  string(u.Role),
		CreatedAt:             u.CreatedAt,
		LastLoginAt:           u.LastLoginAt,
	}
	if u.MonthlyIncome.Valid {
		income := u.MonthlyIncome.Decimal
		resp.MonthlyIncome = &income
	}
	return resp
}
