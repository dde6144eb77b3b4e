package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// UserRole controls access to administrative endpoints.
type UserRole string

const (
	RoleUser  UserRole = "user"
	RoleAdmin UserRole = "admin"
)

// User is an account holder. DefaultCurrency is the display currency for every read.
type User struct {
	UserID                string              `json:"userID"`
	Email                 string              `json:"email"`
	PasswordHash          string              `json:"-"`
	DisplayName           string              `json:"displayName"`
	DefaultCurrency       string              `json:"defaultCurrency"`
	MonthlyIncome         decimal.NullDecimal `json:"monthlyIncome"`
	MonthlyIncomeCurrency string              `json:"monthlyIncomeCurrency"`
	Role                  UserRole            `json:"role"`
	LastLoginAt           *time.Time          `json:"lastLoginAt,omitempty"`
	SecurityQuestion      string              `json:"securityQuestion,omitempty"`
	SecurityAnswerHash    string              `json:"-"`
	ResetTokenHash        string              `json:"-"`
	ResetTokenExpiresAt   *time.Time          `json:"-"`
	AuditFields
}
