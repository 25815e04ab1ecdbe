// Package budgeting holds the pure balance and budget-aggregation
// calculations. Nothing here performs I/O or mutates its inputs, so the
// functions are safe to call from any goroutine and always produce the
// same output for the same input.
package budgeting

import (
	"time"

	"github.com/fintrackhq/fintrack-backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// ComputeAccountBalance derives an account's current balance and
// income/expenditure totals from the full transaction set.
// Only transactions whose AccountID matches the account contribute.
// Balance = InitialBalance + totalIncome - totalExpenditure, summed
// with decimal arithmetic so repeated recomputation never drifts.
// Transactions carrying a non-canonical type are excluded from both
// totals and reported via SkippedCount.
func ComputeAccountBalance(account domain.Account, transactions []domain.Transaction) domain.AccountActivity {
	activity := domain.AccountActivity{
		AccountID:        account.AccountID,
		TotalIncome:      decimal.Zero,
		TotalExpenditure: decimal.Zero,
	}

	for _, txn := range transactions {
		if txn.AccountID != account.AccountID {
			continue
		}
		switch txn.Type {
		case domain.Income:
			activity.TotalIncome = activity.TotalIncome.Add(txn.Amount)
			activity.TransactionCount++
		case domain.Expenditure:
			activity.TotalExpenditure = activity.TotalExpenditure.Add(txn.Amount)
			activity.TransactionCount++
		default:
			activity.SkippedCount++
		}
	}

	activity.CurrentBalance = account.InitialBalance.Add(activity.TotalIncome).Sub(activity.TotalExpenditure)
	return activity
}

// ComputeBudgetReport aggregates expenditure transactions inside the
// budget's date window by account and category, evaluating the alert
// threshold per category where the budget defines a limit.
//
// Grouping is keyed by the account's display name as resolved from the
// accounts slice at call time; a renamed account reports under its
// current name. Transactions referencing an unknown account, or
// carrying a non-canonical type, are excluded from every bucket and
// counted in SkippedTransactions. A degenerate window (start after end)
// yields an empty report with zero totals.
func ComputeBudgetReport(accounts []domain.Account, transactions []domain.Transaction, budget domain.Budget) domain.BudgetReport {
	report := domain.BudgetReport{
		TotalSpent:     decimal.Zero,
		SpentByAccount: make(map[string]*domain.AccountSpend),
	}

	if budget.StartDate.After(budget.EndDate) {
		return report
	}

	accountsByID := make(map[string]domain.Account, len(accounts))
	for _, acc := range accounts {
		accountsByID[acc.AccountID] = acc
	}

	for _, txn := range transactions {
		if !txn.Type.IsCanonical() {
			report.SkippedTransactions++
			continue
		}
		if txn.Type != domain.Expenditure {
			continue
		}
		if !withinWindow(txn.Date, budget.StartDate, budget.EndDate) {
			continue
		}

		account, ok := accountsByID[txn.AccountID]
		if !ok {
			// Dangling reference: never merged into a wrong bucket.
			report.SkippedTransactions++
			continue
		}

		spend, ok := report.SpentByAccount[account.Name]
		if !ok {
			spend = &domain.AccountSpend{
				Total:      decimal.Zero,
				Categories: make(map[string]*domain.CategorySpend),
			}
			report.SpentByAccount[account.Name] = spend
		}

		category, ok := spend.Categories[txn.Category]
		if !ok {
			category = &domain.CategorySpend{Total: decimal.Zero}
			spend.Categories[txn.Category] = category
		}

		category.Total = category.Total.Add(txn.Amount)
		spend.Total = spend.Total.Add(txn.Amount)
		report.TotalSpent = report.TotalSpent.Add(txn.Amount)
	}

	threshold := decimal.NewFromInt(int64(budget.AlertThresholdPercent))
	for _, spend := range report.SpentByAccount {
		for categoryName, category := range spend.Categories {
			if limit, ok := budget.LimitFor(categoryName); ok {
				category.AlertTriggered = EvaluateAlert(category.Total, limit, threshold)
			}
		}
	}

	return report
}

// EvaluateAlert reports whether spend has reached the alert threshold
// percentage of the category limit. A zero or negative limit never
// triggers; the comparison is cross-multiplied so no division (and no
// division rounding) takes place.
func EvaluateAlert(categoryTotal, categoryLimit, alertThresholdPercent decimal.Decimal) bool {
	if categoryLimit.LessThanOrEqual(decimal.Zero) {
		return false
	}
	// total/limit*100 >= threshold  <=>  total*100 >= threshold*limit
	return categoryTotal.Mul(hundred).GreaterThanOrEqual(alertThresholdPercent.Mul(categoryLimit))
}

// withinWindow reports whether date falls in [start, end], inclusive on
// both ends. Inputs are calendar dates carried as midnight timestamps.
func withinWindow(date, start, end time.Time) bool {
	return !date.Before(start) && !date.After(end)
}
