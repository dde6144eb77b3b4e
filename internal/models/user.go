package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// User is a row of the users table.
type User struct {
	UserID                string              `db:"user_id"`
	Email                 string              `db:"email"`
	PasswordHash          string              `db:"password_hash"`
	DisplayName           string              `db:"display_name"`
	DefaultCurrency       string              `db:"default_currency"`
	MonthlyIncome         decimal.NullDecimal `db:"monthly_income"`
	MonthlyIncomeCurrency string              `db:"monthly_income_currency"`
	Role                  string              `db:"role"`
	LastLoginAt           *time.Time          `db:"last_login_at"`
	SecurityQuestion      string              `db:"security_question"`
	SecurityAnswerHash    string              `db:"security_answer_hash"`
	ResetTokenHash        string              `db:"reset_token_hash"`
	ResetTokenExpiresAt   *time.Time          `db:"reset_token_expires_at"`
	AuditFields
}
