package dto

import (
	"github.com/fintrackhq/fintrack-backend/internal/core/domain"
	"github.com/fintrackhq/fintrack-backend/internal/utils"
	"github.com/shopspring/decimal"
)

// AccountSummaryResponse is the derived view of a single account.
// The *Display fields carry the amount truncated to the currency's
// minor units for presentation; the decimal fields keep full precision.
type AccountSummaryResponse struct {
	AccountID             string          `json:"accountID"`
	Name                  string          `json:"name"`
	CurrencyCode          string          `json:"currencyCode"`
	CurrentBalance        decimal.Decimal `json:"currentBalance"`
	CurrentBalanceDisplay string          `json:"currentBalanceDisplay,omitempty"`
	TotalIncome           decimal.Decimal `json:"totalIncome"`
	TotalExpenditure      decimal.Decimal `json:"totalExpenditure"`
	TransactionCount      int             `json:"transactionCount"`
	SkippedCount          int             `json:"skippedCount,omitempty"`
}

// CategorySpendResponse mirrors one category bucket of a budget report.
type CategorySpendResponse struct {
	Total          decimal.Decimal `json:"total"`
	AlertTriggered bool            `json:"alertTriggered"`
}

// AccountSpendResponse mirrors one account bucket of a budget report.
type AccountSpendResponse struct {
	Total      decimal.Decimal                  `json:"total"`
	Categories map[string]CategorySpendResponse `json:"categories"`
}

// BudgetReportResponse is the budget report as consumed by the client:
// the budget definition plus spend grouped by current account name and
// category, with per-category alert flags and a count of records that
// were excluded for data-quality reasons.
type BudgetReportResponse struct {
	Budget              BudgetResponse                  `json:"budget"`
	TotalSpent          decimal.Decimal                 `json:"totalSpent"`
	SpentByAccount      map[string]AccountSpendResponse `json:"spentByAccount"`
	SkippedTransactions int                             `json:"skippedTransactions"`
}

// ToAccountSummaryResponse converts a derived account summary to its DTO.
func ToAccountSummaryResponse(summary *domain.AccountSummary) AccountSummaryResponse {
	res := AccountSummaryResponse{
		AccountID:        summary.Account.AccountID,
		Name:             summary.Account.Name,
		CurrencyCode:     summary.Account.CurrencyCode,
		CurrentBalance:   summary.Activity.CurrentBalance,
		TotalIncome:      summary.Activity.TotalIncome,
		TotalExpenditure: summary.Activity.TotalExpenditure,
		TransactionCount: summary.Activity.TransactionCount,
		SkippedCount:     summary.Activity.SkippedCount,
	}
	if summary.Currency != nil {
		res.CurrentBalanceDisplay = utils.FormatWithCurrencyPrecision(summary.Activity.CurrentBalance, *summary.Currency)
	}
	return res
}

// ToBudgetReportResponse converts a derived budget report to its DTO.
func ToBudgetReportResponse(budget *domain.Budget, report *domain.BudgetReport) BudgetReportResponse {
	spentByAccount := make(map[string]AccountSpendResponse, len(report.SpentByAccount))
	for accountName, spend := range report.SpentByAccount {
		categories := make(map[string]CategorySpendResponse, len(spend.Categories))
		for categoryName, category := range spend.Categories {
			categories[categoryName] = CategorySpendResponse{
				Total:          category.Total,
				AlertTriggered: category.AlertTriggered,
			}
		}
		spentByAccount[accountName] = AccountSpendResponse{
			Total:      spend.Total,
			Categories: categories,
		}
	}
	return BudgetReportResponse{
		Budget:              ToBudgetResponse(budget),
		TotalSpent:          report.TotalSpent,
		SpentByAccount:      spentByAccount,
		SkippedTransactions: report.SkippedTransactions,
	}
}
