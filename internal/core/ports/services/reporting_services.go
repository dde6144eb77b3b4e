package services

import (
	"context"
	"io"

	"github.com/Aquaier/Savoo/internal/core/domain"
	"github.com/Aquaier/Savoo/internal/dto"
)

// ReportingSvcFacade defines the dashboard and export operations
type ReportingSvcFacade interface {
	GetDashboard(ctx context.Context, userID string, params dto.DashboardParams) (*domain.DashboardSummary, error)
	// ExportTransactionsCSV writes the user's transactions in the range to w as CSV.
	ExportTransactionsCSV(ctx context.Context, userID string, params dto.ExportParams, w io.Writer) error
}
