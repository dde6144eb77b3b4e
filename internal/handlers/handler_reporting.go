package handlers

import (
	"bytes"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	portssvc "github.com/Aquaier/Savoo/internal/core/ports/services"
	"github.com/Aquaier/Savoo/internal/dto"
	"github.com/Aquaier/Savoo/internal/middleware"
	"github.com/gin-gonic/gin"
)

// reportingHandler handles HTTP requests for the dashboard and exports.
type reportingHandler struct {
	reportingService  portssvc.ReportingSvcFacade
	dataExportService portssvc.DataExportSvcFacade
	now               func() time.Time
}

func newReportingHandler(rs portssvc.ReportingSvcFacade, ds portssvc.DataExportSvcFacade) *reportingHandler {
	return &reportingHandler{reportingService: rs, dataExportService: ds, now: time.Now}
}

// registerReportingRoutes registers routes related to reporting.
func registerReportingRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingSvcFacade, dataExportService portssvc.DataExportSvcFacade) {
	h := newReportingHandler(reportingService, dataExportService)

	reports := rg.Group("/reports")
	{
		reports.GET("/dashboard", h.getDashboard)
		reports.GET("/transactions.csv", h.exportTransactions)
		reports.GET("/all-data.csv", h.exportAllData)
	}
}

// getDashboard godoc
// @Summary Dashboard summary
// @Description Income, expense, net savings, top expense categories and recent budgets for a period, in the display currency
// @Tags reports
// @Produce json
// @Param period query string false "weekly, monthly, yearly or custom" default(monthly)
// @Param from query string false "Custom period start (YYYY-MM-DD)"
// @Param to query string false "Custom period end (YYYY-MM-DD)"
// @Param currency query string false "Display currency"
// @Success 200 {object} domain.DashboardSummary
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /reports/dashboard [get]
func (h *reportingHandler) getDashboard(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}
	var params dto.DashboardParams
	if !bindQuery(c, logger, &params) {
		return
	}

	summary, err := h.reportingService.GetDashboard(c.Request.Context(), userID, params)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to build dashboard")
		return
	}
	c.JSON(http.StatusOK, summary)
}

// exportTransactions godoc
// @Summary Export transactions as CSV
// @Tags reports
// @Produce text/csv
// @Param from query string false "Start date (YYYY-MM-DD)"
// @Param to query string false "End date (YYYY-MM-DD)"
// @Param currency query string false "Display currency"
// @Success 200 {string} string "CSV file"
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /reports/transactions.csv [get]
func (h *reportingHandler) exportTransactions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}
	var params dto.ExportParams
	if !bindQuery(c, logger, &params) {
		return
	}

	// Buffered so a failure halfway through still yields a proper error status.
	var buf bytes.Buffer
	if err := h.reportingService.ExportTransactionsCSV(c.Request.Context(), userID, params, &buf); err != nil {
		respondServiceError(c, logger, err, "Failed to export transactions")
		return
	}

	filename := fmt.Sprintf("transactions_%s.csv", h.now().Format("20060102"))
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	logger.Info("Transactions exported", slog.Int("bytes", buf.Len()))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

// exportAllData godoc
// @Summary Export all user data as CSV
// @Description Profile, categories, budget types, budgets, savings goals, contributions, recurring rules and transactions in one sectioned CSV document. Stored base amounts are rendered in the user's default currency.
// @Tags reports
// @Produce text/csv
// @Success 200 {string} string "CSV file"
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /reports/all-data.csv [get]
func (h *reportingHandler) exportAllData(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := h.dataExportService.ExportAllDataCSV(c.Request.Context(), userID, &buf); err != nil {
		respondServiceError(c, logger, err, "Failed to export user data")
		return
	}

	filename := fmt.Sprintf("savoo_export_%s.csv", h.now().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	logger.Info("User data exported", slog.Int("bytes", buf.Len()))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}
