package mapping

import (
	"github.com/Aquaier/Savoo/internal/core/domain"
	"github.com/Aquaier/Savoo/internal/models"
)

// ToModelSavingsGoal converts a domain SavingsGoal to a model SavingsGoal
func ToModelSavingsGoal(d domain.SavingsGoal) models.SavingsGoal {
	return models.SavingsGoal{
		GoalID:        d.GoalID,
		UserID:        d.UserID,
		Name:          d.Name,
		TargetAmount:  d.TargetAmount,
		CurrentAmount: d.CurrentAmount,
		Deadline:      d.Deadline,
		CategoryID:    d.CategoryID,
		IsActive:      d.IsActive,
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainSavingsGoal converts a model SavingsGoal to a domain SavingsGoal
func ToDomainSavingsGoal(m models.SavingsGoal) domain.SavingsGoal {
	return domain.SavingsGoal{
		GoalID:        m.GoalID,
		UserID:        m.UserID,
		Name:          m.Name,
		TargetAmount:  m.TargetAmount,
		CurrentAmount: m.CurrentAmount,
		Deadline:      m.Deadline,
		CategoryID:    m.CategoryID,
		IsActive:      m.IsActive,
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelContribution converts a domain contribution to its model
func ToModelContribution(d domain.SavingsGoalContribution) models.SavingsGoalContribution {
	return models.SavingsGoalContribution(d)
}

// ToDomainContribution converts a model contribution to its domain form
func ToDomainContribution(m models.SavingsGoalContribution) domain.SavingsGoalContribution {
	return domain.SavingsGoalContribution(m)
}
