package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// BudgetPeriodType describes how a budget window was chosen.
type BudgetPeriodType string

const (
	Monthly BudgetPeriodType = "MONTHLY"
	Weekly  BudgetPeriodType = "WEEKLY"
	Custom  BudgetPeriodType = "CUSTOM"
)

// BudgetItem is a per-category spending limit within a budget.
// Categories are free-form labels, so the label itself is the key.
type BudgetItem struct {
	Category    string          `json:"category"`
	LimitAmount decimal.Decimal `json:"limitAmount"`
}

// Budget is a named spending plan over a date window with an alert
// threshold and optional per-category limits.
// Invariant: StartDate <= EndDate, enforced at creation; report
// generation degrades a degenerate window to zero totals rather than
// failing (see utils/budgeting).
type Budget struct {
	BudgetID              string           `json:"budgetID"` // Primary Key (UUID)
	UserID                string           `json:"userID"`   // Owning user
	Name                  string           `json:"name"`
	PeriodType            BudgetPeriodType `json:"periodType"`
	StartDate             time.Time        `json:"startDate"`
	EndDate               time.Time        `json:"endDate"`
	CurrencyCode          string           `json:"currencyCode"`
	AlertThresholdPercent int              `json:"alertThresholdPercent"` // 1-100
	Items                 []BudgetItem     `json:"items"`
	AuditFields
}

// LimitFor returns the per-category limit for the given category label,
// or false when the budget carries no item for it.
func (b Budget) LimitFor(category string) (decimal.Decimal, bool) {
	for _, item := range b.Items {
		if item.Category == category {
			return item.LimitAmount, true
		}
	}
	return decimal.Zero, false
}
