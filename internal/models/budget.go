package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// BudgetPeriodType mirrors domain.BudgetPeriodType for DB storage.
type BudgetPeriodType string

const (
	Monthly BudgetPeriodType = "MONTHLY"
	Weekly  BudgetPeriodType = "WEEKLY"
	Custom  BudgetPeriodType = "CUSTOM"
)

// Budget is the persistence representation of a spending plan.
// Items live in the budget_items table and are loaded alongside.
type Budget struct {
	BudgetID              string           `db:"budget_id"`
	UserID                string           `db:"user_id"`
	Name                  string           `db:"name"`
	PeriodType            BudgetPeriodType `db:"period_type"`
	StartDate             time.Time        `db:"start_date"`
	EndDate               time.Time        `db:"end_date"`
	CurrencyCode          string           `db:"currency_code"`
	AlertThresholdPercent int              `db:"alert_threshold_percent"`
	AuditFields
}

// BudgetItem is the persistence representation of a per-category limit.
type BudgetItem struct {
	BudgetID    string          `db:"budget_id"`
	Category    string          `db:"category"`
	LimitAmount decimal.Decimal `db:"limit_amount"`
}
