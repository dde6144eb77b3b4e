package mapping

import (
	"strings"

	"github.com/Aquaier/Savoo/internal/core/domain"
	"github.com/Aquaier/Savoo/internal/models"
)

// ToModelRecurring converts a domain RecurringTransaction to its model
func ToModelRecurring(d domain.RecurringTransaction) models.RecurringTransaction {
	return models.RecurringTransaction{
		RecurringID:    d.RecurringID,
		UserID:         d.UserID,
		CategoryID:     d.CategoryID,
		Type:           string(d.Type),
		Amount:         d.Amount,
		Currency:       d.Currency,
		Note:           d.Note,
		Frequency:      string(d.Frequency),
		StartDate:      d.StartDate,
		NextOccurrence: d.NextOccurrence,
		EndDate:        d.EndDate,
		LastGenerated:  d.LastGenerated,
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainRecurring converts a model RecurringTransaction to its domain form
func ToDomainRecurring(m models.RecurringTransaction) domain.RecurringTransaction {
	return domain.RecurringTransaction{
		RecurringID:    m.RecurringID,
		UserID:         m.UserID,
		CategoryID:     m.CategoryID,
		Type:           domain.TransactionType(m.Type),
		Amount:         m.Amount,
		Currency:       strings.TrimSpace(m.Currency),
		Note:           m.Note,
		Frequency:      domain.Frequency(m.Frequency),
		StartDate:      m.StartDate,
		NextOccurrence: m.NextOccurrence,
		EndDate:        m.EndDate,
		LastGenerated:  m.LastGenerated,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainRecurringSlice converts a slice of model recurring transactions
func ToDomainRecurringSlice(ms []models.RecurringTransaction) []domain.RecurringTransaction {
	ds := make([]domain.RecurringTransaction, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainRecurring(m)
	}
	return ds
}
