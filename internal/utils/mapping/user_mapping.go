package mapping

import (
	"github.com/Aquaier/Savoo/internal/core/domain"
	"github.com/Aquaier/Savoo/internal/models"
)

// ToModelUser converts a domain User to a model User
func ToModelUser(d domain.User) models.User {
	return models.User{
		UserID:                d.UserID,
		Email:                 d.Email,
		PasswordHash:          d.PasswordHash,
		DisplayName:           d.DisplayName,
		DefaultCurrency:       d.DefaultCurrency,
		MonthlyIncome:         d.MonthlyIncome,
		MonthlyIncomeCurrency: d.MonthlyIncomeCurrency,
		Role:                  string(d.Role),
		LastLoginAt:           d.LastLoginAt,
		SecurityQuestion:      d.SecurityQuestion,
		SecurityAnswerHash:    d.SecurityAnswerHash,
		ResetTokenHash:        d.ResetTokenHash,
		ResetTokenExpiresAt:   d.ResetTokenExpiresAt,
		AuditFields:           ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainUser converts a model User to a domain User
func ToDomainUser(m models.User) domain.User {
	return domain.User{
		UserID:                m.UserID,
		Email:                 m.Email,
		PasswordHash:          m.PasswordHash,
		DisplayName:           m.DisplayName,
		DefaultCurrency:       m.DefaultCurrency,
		MonthlyIncome:         m.MonthlyIncome,
		MonthlyIncomeCurrency: m.MonthlyIncomeCurrency,
		Role:                  domain.UserRole(m.Role),
		LastLoginAt:           m.LastLoginAt,
		SecurityQuestion:      m.SecurityQuestion,
		SecurityAnswerHash:    m.SecurityAnswerHash,
		ResetTokenHash:        m.ResetTokenHash,
		ResetTokenExpiresAt:   m.ResetTokenExpiresAt,
		AuditFields:           ToDomainAuditFields(m.AuditFields),
	}
}
