package services

import (
	"context"

	"github.com/fintrackhq/fintrack-backend/internal/core/domain"
)

// ReportingSvc defines the derived read models computed from persisted
// accounts, transactions and budgets. Both reports are recomputed fresh
// on every call; nothing derived is ever stored.
type ReportingSvc interface {
	// AccountSummary derives the current balance and activity totals
	// for one of the user's accounts.
	AccountSummary(ctx context.Context, accountID string, userID string) (*domain.AccountSummary, error)

	// BudgetReport aggregates the user's expenditure against a budget's
	// window, grouped by account and category, with per-category alert
	// flags. The budget definition is returned alongside the report.
	BudgetReport(ctx context.Context, budgetID string, userID string) (*domain.Budget, *domain.BudgetReport, error)
}
