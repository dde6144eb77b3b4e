package domain

import (
	"strings"
	"time"
	"unicode/utf8"
)

// MinBudgetTypeNameLength is the shortest budget type name accepted.
const MinBudgetTypeNameLength = 2

// BudgetType is a user-defined label budgets are grouped by. Names are stored
// lower-cased and are unique per user.
type BudgetType struct {
	BudgetTypeID string    `json:"budgetTypeID"`
	UserID       string    `json:"userID"`
	Name         string    `json:"name"`
	CreatedAt    time.Time `json:"createdAt"`
}

// NormalizeBudgetTypeName trims and lower-cases a budget type name.
func NormalizeBudgetTypeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// ValidBudgetTypeName reports whether a normalized name is long enough to store.
func ValidBudgetTypeName(name string) bool {
	return utf8.RuneCountInString(name) >= MinBudgetTypeNameLength
}
