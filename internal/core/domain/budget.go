package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// BudgetPeriod is informational; the effective window comes from the start and end dates.
type BudgetPeriod string

const (
	BudgetPeriodWeekly    BudgetPeriod = "weekly"
	BudgetPeriodMonthly   BudgetPeriod = "monthly"
	BudgetPeriodQuarterly BudgetPeriod = "quarterly"
	BudgetPeriodCustom    BudgetPeriod = "custom"
)

// IsValid reports whether p is one of the known periods.
func (p BudgetPeriod) IsValid() bool {
	switch p {
	case BudgetPeriodWeekly, BudgetPeriodMonthly, BudgetPeriodQuarterly, BudgetPeriodCustom:
		return true
	}
	return false
}

// DefaultBudgetType is used when a budget is created without a type label.
const DefaultBudgetType = "custom"

// DefaultAlertThreshold is the utilization ratio at which a budget alert fires.
var DefaultAlertThreshold = decimal.RequireFromString("0.9")

// Budget is a spending limit expressed in the base currency.
type Budget struct {
	BudgetID       string          `json:"budgetID"`
	UserID         string          `json:"userID"`
	CategoryID     *string         `json:"categoryID,omitempty"`
	Name           string          `json:"name"`
	LimitAmount    decimal.Decimal `json:"limitAmount"`
	Period         BudgetPeriod    `json:"period"`
	BudgetType     string          `json:"budgetType"`
	StartDate      *time.Time      `json:"startDate,omitempty"`
	EndDate        *time.Time      `json:"endDate,omitempty"`
	LastNotifiedAt *time.Time      `json:"lastNotifiedAt,omitempty"`
	AuditFields
}

// Window returns the inclusive date range the budget covers. Missing bounds
// default to the first and last day of the month containing today.
func (b Budget) Window(today time.Time) (time.Time, time.Time) {
	monthStart, monthEnd := MonthBounds(today)
	start, end := monthStart, monthEnd
	if b.StartDate != nil {
		start = TruncateToDate(*b.StartDate, time.UTC)
	}
	if b.EndDate != nil {
		end = TruncateToDate(*b.EndDate, time.UTC)
	}
	return start, end
}

// Covers reports whether the calendar day falls inside the inclusive window.
func Covers(start, end, day time.Time) bool {
	return !day.Before(start) && !day.After(end)
}

// NotifiedOn reports whether the budget's last notification was stamped on the same
// calendar day as today, evaluated in loc.
func (b Budget) NotifiedOn(today time.Time, loc *time.Location) bool {
	if b.LastNotifiedAt == nil {
		return false
	}
	return TruncateToDate(*b.LastNotifiedAt, loc).Equal(TruncateToDate(today, loc))
}

// ShouldAlert reports whether spent against limit crosses the alert threshold.
// A non-positive limit never alerts.
func ShouldAlert(limit, spent, threshold decimal.Decimal) bool {
	if !limit.IsPositive() {
		return false
	}
	if spent.GreaterThan(limit) {
		return true
	}
	return spent.Div(limit).GreaterThanOrEqual(threshold)
}

// BudgetStats is the derived view of a budget for one request.
type BudgetStats struct {
	Budget           Budget           `json:"budget"`
	SpentAmountBase  decimal.Decimal  `json:"spentAmountBase"`
	TransactionCount int              `json:"transactionCount"`
	LimitDisplay     decimal.Decimal  `json:"limitDisplay"`
	SpentDisplay     decimal.Decimal  `json:"spentDisplay"`
	Remaining        decimal.Decimal  `json:"remaining"`
	Utilization      *decimal.Decimal `json:"utilization,omitempty"`
	Currency         string           `json:"currency"`
	WindowStart      time.Time        `json:"windowStart"`
	WindowEnd        time.Time        `json:"windowEnd"`
}

// CrossesThreshold applies ShouldAlert to the displayed limit and spend. A
// non-positive stored limit never alerts.
func (st BudgetStats) CrossesThreshold(threshold decimal.Decimal) bool {
	return st.Budget.LimitAmount.IsPositive() && ShouldAlert(st.LimitDisplay, st.SpentDisplay, threshold)
}

// BudgetNotification is emitted when a budget crosses its alert threshold.
type BudgetNotification struct {
	BudgetID    string          `json:"budgetID"`
	UserID      string          `json:"userID"`
	BudgetName  string          `json:"budgetName"`
	LimitBase   decimal.Decimal `json:"limitBase"`
	SpentBase   decimal.Decimal `json:"spentBase"`
	Exceeded    bool            `json:"exceeded"`
	PercentUsed decimal.Decimal `json:"percentUsed"`
	Message     string          `json:"message"`
	NotifiedAt  time.Time       `json:"notifiedAt"`
}

// NewBudgetNotification builds the alert payload for a budget whose base spend
// crossed the threshold.
func NewBudgetNotification(b Budget, limit, spent decimal.Decimal, at time.Time) BudgetNotification {
	n := BudgetNotification{
		BudgetID:   b.BudgetID,
		UserID:     b.UserID,
		BudgetName: b.Name,
		LimitBase:  limit,
		SpentBase:  spent,
		Exceeded:   spent.GreaterThan(limit),
		NotifiedAt: at,
	}
	if limit.IsPositive() {
		n.PercentUsed = spent.Div(limit).Mul(decimal.NewFromInt(100)).Round(0)
	}
	if n.Exceeded {
		n.Message = "Budget exceeded: spent " + spent.StringFixed(2) + " of " + limit.StringFixed(2) + "."
	} else {
		n.Message = "Budget reached " + n.PercentUsed.String() + "% of its limit. Remaining " + limit.Sub(spent).StringFixed(2) + "."
	}
	return n
}
