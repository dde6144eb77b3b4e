package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// SummaryPeriod selects the window a dashboard summary covers.
type SummaryPeriod string

const (
	PeriodWeekly  SummaryPeriod = "weekly"
	PeriodMonthly SummaryPeriod = "monthly"
	PeriodYearly  SummaryPeriod = "yearly"
	PeriodCustom  SummaryPeriod = "custom"
)

// Range resolves the period to an inclusive date range ending today.
// Custom periods must supply their own bounds.
func (p SummaryPeriod) Range(today time.Time) (time.Time, time.Time, bool) {
	switch p {
	case PeriodWeekly:
		return today.AddDate(0, 0, -6), today, true
	case PeriodMonthly, "":
		start, _ := MonthBounds(today)
		return start, today, true
	case PeriodYearly:
		return time.Date(today.Year(), 1, 1, 0, 0, 0, 0, time.UTC), today, true
	}
	return time.Time{}, time.Time{}, false
}

// CurrencyTotal is a sum of transaction amounts grouped by currency. Base is the sum of
// converted amounts where present; Legacy is the raw sum for rows with no converted amount.
type CurrencyTotal struct {
	Type     TransactionType
	Currency string
	Base     decimal.Decimal
	Legacy   decimal.Decimal
}

// CategoryCurrencyTotal is a CurrencyTotal scoped to a category.
type CategoryCurrencyTotal struct {
	CategoryID   *string
	CategoryName string
	Color        string
	CurrencyTotal
}

// CategorySpend is one entry of the dashboard's top-category list.
type CategorySpend struct {
	CategoryID   *string         `json:"categoryID,omitempty"`
	CategoryName string          `json:"categoryName"`
	Color        string          `json:"color"`
	Amount       decimal.Decimal `json:"amount"`
}

// BudgetLimit is one of the recently created budgets listed on the dashboard.
type BudgetLimit struct {
	BudgetID string          `json:"budgetID"`
	Name     string          `json:"name"`
	Limit    decimal.Decimal `json:"limit"`
}

// DashboardSummary aggregates a user's finances over a period in a display currency.
type DashboardSummary struct {
	Period        SummaryPeriod   `json:"period"`
	From          time.Time       `json:"from"`
	To            time.Time       `json:"to"`
	Currency      string          `json:"currency"`
	TotalIncome   decimal.Decimal `json:"totalIncome"`
	TotalExpense  decimal.Decimal `json:"totalExpense"`
	NetSavings    decimal.Decimal `json:"netSavings"`
	TopCategories []CategorySpend `json:"topCategories"`
	RecentBudgets []BudgetLimit   `json:"recentBudgets"`
}

// ExportRow is a transaction joined with its category and budget names for CSV export.
type ExportRow struct {
	Transaction
	CategoryName string
	BudgetName   string
}
