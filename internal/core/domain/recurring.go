package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Frequency is how often a recurring transaction repeats.
type Frequency string

const (
	FrequencyDaily     Frequency = "daily"
	FrequencyWeekly    Frequency = "weekly"
	FrequencyMonthly   Frequency = "monthly"
	FrequencyQuarterly Frequency = "quarterly"
	FrequencyYearly    Frequency = "yearly"
)

// IsValid reports whether f is one of the known frequencies.
func (f Frequency) IsValid() bool {
	switch f {
	case FrequencyDaily, FrequencyWeekly, FrequencyMonthly, FrequencyQuarterly, FrequencyYearly:
		return true
	}
	return false
}

// Next returns the occurrence after day.
func (f Frequency) Next(day time.Time) time.Time {
	switch f {
	case FrequencyDaily:
		return day.AddDate(0, 0, 1)
	case FrequencyWeekly:
		return day.AddDate(0, 0, 7)
	case FrequencyMonthly:
		return AddMonths(day, 1)
	case FrequencyQuarterly:
		return AddMonths(day, 3)
	case FrequencyYearly:
		return AddMonths(day, 12)
	}
	return day.AddDate(0, 0, 30)
}

// AddMonths shifts day by months, clamping the day-of-month to the target month's length
// (Jan 31 + 1 month is Feb 28 or 29, not Mar 3).
func AddMonths(day time.Time, months int) time.Time {
	first := time.Date(day.Year(), day.Month(), 1, 0, 0, 0, 0, day.Location()).AddDate(0, months, 0)
	lastDay := first.AddDate(0, 1, -1).Day()
	d := day.Day()
	if d > lastDay {
		d = lastDay
	}
	return time.Date(first.Year(), first.Month(), d, day.Hour(), day.Minute(), day.Second(), day.Nanosecond(), day.Location())
}

// RecurringTransaction is a template that materializes into transactions on schedule.
type RecurringTransaction struct {
	RecurringID    string          `json:"recurringID"`
	UserID         string          `json:"userID"`
	CategoryID     *string         `json:"categoryID,omitempty"`
	Type           TransactionType `json:"type"`
	Amount         decimal.Decimal `json:"amount"`
	Currency       string          `json:"currency"`
	Note           string          `json:"note"`
	Frequency      Frequency       `json:"frequency"`
	StartDate      time.Time       `json:"startDate"`
	NextOccurrence time.Time       `json:"nextOccurrence"`
	EndDate        *time.Time      `json:"endDate,omitempty"`
	LastGenerated  *time.Time      `json:"lastGenerated,omitempty"`
	AuditFields
}

// DueDates lists every occurrence from NextOccurrence up to and including today,
// bounded by EndDate, and returns the occurrence that follows the last one.
func (r RecurringTransaction) DueDates(today time.Time) ([]time.Time, time.Time) {
	var due []time.Time
	next := r.NextOccurrence
	for !next.After(today) && (r.EndDate == nil || !next.After(*r.EndDate)) {
		due = append(due, next)
		next = r.Frequency.Next(next)
	}
	return due, next
}
