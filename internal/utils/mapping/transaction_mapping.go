package mapping

import (
	"strings"

	"github.com/Aquaier/Savoo/internal/core/domain"
	"github.com/Aquaier/Savoo/internal/models"
)

// ToModelTransaction converts a domain Transaction to a model Transaction
func ToModelTransaction(d domain.Transaction) models.Transaction {
	return models.Transaction{
		TransactionID:   d.TransactionID,
		UserID:          d.UserID,
		CategoryID:      d.CategoryID,
		BudgetID:        d.BudgetID,
		Type:            string(d.Type),
		Kind:            d.Kind,
		Amount:          d.Amount,
		Currency:        d.Currency,
		ConvertedAmount: d.ConvertedAmount,
		Note:            d.Note,
		OccurredOn:      d.OccurredOn,
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainTransaction converts a model Transaction to a domain Transaction
func ToDomainTransaction(m models.Transaction) domain.Transaction {
	return domain.Transaction{
		TransactionID:   m.TransactionID,
		UserID:          m.UserID,
		CategoryID:      m.CategoryID,
		BudgetID:        m.BudgetID,
		Type:            domain.TransactionType(m.Type),
		Kind:            m.Kind,
		Amount:          m.Amount,
		Currency:        strings.TrimSpace(m.Currency),
		ConvertedAmount: m.ConvertedAmount,
		Note:            m.Note,
		OccurredOn:      m.OccurredOn,
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainTransactionSlice converts a slice of model Transactions to domain Transactions
func ToDomainTransactionSlice(ms []models.Transaction) []domain.Transaction {
	ds := make([]domain.Transaction, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainTransaction(m)
	}
	return ds
}
