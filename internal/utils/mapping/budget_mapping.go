package mapping

import (
	"github.com/Aquaier/Savoo/internal/core/domain"
	"github.com/Aquaier/Savoo/internal/models"
)

// ToModelBudget converts a domain Budget to a model Budget
func ToModelBudget(d domain.Budget) models.Budget {
	return models.Budget{
		BudgetID:       d.BudgetID,
		UserID:         d.UserID,
		CategoryID:     d.CategoryID,
		Name:           d.Name,
		LimitAmount:    d.LimitAmount,
		Period:         string(d.Period),
		BudgetType:     d.BudgetType,
		StartDate:      d.StartDate,
		EndDate:        d.EndDate,
		LastNotifiedAt: d.LastNotifiedAt,
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainBudget converts a model Budget to a domain Budget
func ToDomainBudget(m models.Budget) domain.Budget {
	return domain.Budget{
		BudgetID:       m.BudgetID,
		UserID:         m.UserID,
		CategoryID:     m.CategoryID,
		Name:           m.Name,
		LimitAmount:    m.LimitAmount,
		Period:         domain.BudgetPeriod(m.Period),
		BudgetType:     m.BudgetType,
		StartDate:      m.StartDate,
		EndDate:        m.EndDate,
		LastNotifiedAt: m.LastNotifiedAt,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainBudgetSlice converts a slice of model Budgets to domain Budgets
func ToDomainBudgetSlice(ms []models.Budget) []domain.Budget {
	ds := make([]domain.Budget, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainBudget(m)
	}
	return ds
}
