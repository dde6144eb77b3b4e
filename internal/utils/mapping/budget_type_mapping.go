package mapping

import (
	"github.com/Aquaier/Savoo/internal/core/domain"
	"github.com/Aquaier/Savoo/internal/models"
)

func ToModelBudgetType(d domain.BudgetType) models.BudgetType {
	return models.BudgetType{
		BudgetTypeID: d.BudgetTypeID,
		UserID:       d.UserID,
		Name:         d.Name,
		CreatedAt:    d.CreatedAt,
	}
}

func ToDomainBudgetType(m models.BudgetType) domain.BudgetType {
	return domain.BudgetType{
		BudgetTypeID: m.BudgetTypeID,
		UserID:       m.UserID,
		Name:         m.Name,
		CreatedAt:    m.CreatedAt,
	}
}

// ToDomainBudgetTypeSlice converts budget type rows to domain values.
func ToDomainBudgetTypeSlice(ms []models.BudgetType) []domain.BudgetType {
	ds := make([]domain.BudgetType, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainBudgetType(m)
	}
	return ds
}
