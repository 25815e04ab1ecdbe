package domain

import (
	"github.com/shopspring/decimal"
)

// AccountActivity is the derived view of a single account: its current
// balance plus income/expenditure totals over the full transaction set.
type AccountActivity struct {
	AccountID        string          `json:"accountID"`
	CurrentBalance   decimal.Decimal `json:"currentBalance"`
	TotalIncome      decimal.Decimal `json:"totalIncome"`
	TotalExpenditure decimal.Decimal `json:"totalExpenditure"`
	TransactionCount int             `json:"transactionCount"`
	SkippedCount     int             `json:"skippedCount"` // Records with a non-canonical type
}

// AccountSummary pairs an account with its derived activity and the
// currency reference data used for display formatting. Currency is nil
// when the code has no reference row.
type AccountSummary struct {
	Account  Account
	Activity AccountActivity
	Currency *Currency
}

// CategorySpend is the accumulated expenditure for one category within
// one account, plus whether the budget's alert threshold was crossed.
type CategorySpend struct {
	Total          decimal.Decimal `json:"total"`
	AlertTriggered bool            `json:"alertTriggered"`
}

// AccountSpend groups a single account's expenditure within a budget
// window by category. Category totals always sum to Total exactly.
type AccountSpend struct {
	Total      decimal.Decimal           `json:"total"`
	Categories map[string]*CategorySpend `json:"categories"`
}

// BudgetReport is the derived, never-persisted aggregation of
// expenditure against a budget. SpentByAccount is keyed by the
// account's display name as resolved at computation time.
// SkippedTransactions counts records excluded for a dangling account
// reference or a non-canonical type; they are surfaced here instead of
// being silently dropped or misbucketed.
type BudgetReport struct {
	TotalSpent          decimal.Decimal          `json:"totalSpent"`
	SpentByAccount      map[string]*AccountSpend `json:"spentByAccount"`
	SkippedTransactions int                      `json:"skippedTransactions"`
}
