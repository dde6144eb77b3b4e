package services

import (
	"context"
	"io"
)

// DataExportSvcFacade exports everything stored for a user
type DataExportSvcFacade interface {
	// ExportAllDataCSV writes the user's profile, categories, budget types, budgets,
	// savings goals, contributions, recurring rules and transactions to w as one CSV
	// document. Money stored in the base currency is rendered in the user's default currency.
	ExportAllDataCSV(ctx context.Context, userID string, w io.Writer) error
}
