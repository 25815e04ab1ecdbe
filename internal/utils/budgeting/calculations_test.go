package budgeting_test

import (
	"testing"
	"time"

	"github.com/fintrackhq/fintrack-backend/internal/core/domain"
	"github.com/fintrackhq/fintrack-backend/internal/utils/budgeting"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(value string) time.Time {
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		panic(err)
	}
	return t
}

func dec(value string) decimal.Decimal {
	return decimal.RequireFromString(value)
}

func txn(accountID string, txnType domain.TransactionType, category, amount, day string) domain.Transaction {
	return domain.Transaction{
		TransactionID: accountID + "-" + category + "-" + day,
		AccountID:     accountID,
		Type:          txnType,
		Category:      category,
		Amount:        dec(amount),
		CurrencyCode:  "BHD",
		Date:          date(day),
	}
}

func TestComputeAccountBalance_NoTransactions(t *testing.T) {
	account := domain.Account{AccountID: "acc-1", Name: "Main", InitialBalance: dec("100.000")}

	activity := budgeting.ComputeAccountBalance(account, nil)

	assert.True(t, activity.CurrentBalance.Equal(account.InitialBalance),
		"balance must equal initial balance exactly, got %s", activity.CurrentBalance)
	assert.True(t, activity.TotalIncome.IsZero())
	assert.True(t, activity.TotalExpenditure.IsZero())
	assert.Zero(t, activity.TransactionCount)
}

func TestComputeAccountBalance_IncomeAndExpenditure(t *testing.T) {
	// initialBalance 100.000, income 50.000, expenditure 30.000 -> 120.000
	account := domain.Account{AccountID: "acc-1", Name: "Main", InitialBalance: dec("100.000")}
	transactions := []domain.Transaction{
		txn("acc-1", domain.Income, "Salary", "50.000", "2024-01-05"),
		txn("acc-1", domain.Expenditure, "Groceries", "30.000", "2024-01-10"),
	}

	activity := budgeting.ComputeAccountBalance(account, transactions)

	assert.True(t, activity.CurrentBalance.Equal(dec("120.000")), "got %s", activity.CurrentBalance)
	assert.True(t, activity.TotalIncome.Equal(dec("50.000")))
	assert.True(t, activity.TotalExpenditure.Equal(dec("30.000")))
	assert.Equal(t, 2, activity.TransactionCount)
	assert.Zero(t, activity.SkippedCount)
}

func TestComputeAccountBalance_FilterIsolation(t *testing.T) {
	accountA := domain.Account{AccountID: "acc-a", Name: "A", InitialBalance: decimal.Zero}
	transactions := []domain.Transaction{
		txn("acc-a", domain.Income, "Salary", "10", "2024-01-01"),
		txn("acc-b", domain.Income, "Salary", "999", "2024-01-01"),
		txn("acc-b", domain.Expenditure, "Petrol", "999", "2024-01-02"),
	}

	activity := budgeting.ComputeAccountBalance(accountA, transactions)

	assert.True(t, activity.CurrentBalance.Equal(dec("10")))
	assert.Equal(t, 1, activity.TransactionCount)
}

func TestComputeAccountBalance_AdditiveConsistency(t *testing.T) {
	// Many small decimal amounts must not drift: balance must equal
	// initial + income - expenditure exactly on every recomputation.
	account := domain.Account{AccountID: "acc-1", Name: "Main", InitialBalance: dec("0.001")}
	var transactions []domain.Transaction
	for i := 0; i < 500; i++ {
		transactions = append(transactions,
			txn("acc-1", domain.Income, "Interest Income", "0.001", "2024-03-01"),
			txn("acc-1", domain.Expenditure, "Groceries", "0.003", "2024-03-02"),
		)
	}

	first := budgeting.ComputeAccountBalance(account, transactions)
	second := budgeting.ComputeAccountBalance(account, transactions)

	expected := account.InitialBalance.Add(first.TotalIncome).Sub(first.TotalExpenditure)
	assert.True(t, first.CurrentBalance.Equal(expected))
	assert.True(t, first.CurrentBalance.Equal(dec("-0.999")), "got %s", first.CurrentBalance)
	assert.Equal(t, first, second, "recomputation must be byte-identical")
}

func TestComputeAccountBalance_NonCanonicalTypeSkipped(t *testing.T) {
	account := domain.Account{AccountID: "acc-1", Name: "Main", InitialBalance: dec("50")}
	transactions := []domain.Transaction{
		txn("acc-1", domain.Income, "Salary", "10", "2024-01-01"),
		txn("acc-1", domain.TransactionType("income"), "Salary", "999", "2024-01-01"),
		txn("acc-1", domain.TransactionType("transfer"), "Other", "999", "2024-01-01"),
	}

	activity := budgeting.ComputeAccountBalance(account, transactions)

	assert.True(t, activity.CurrentBalance.Equal(dec("60")), "got %s", activity.CurrentBalance)
	assert.Equal(t, 1, activity.TransactionCount)
	assert.Equal(t, 2, activity.SkippedCount)
}

func TestComputeBudgetReport_WindowFiltering(t *testing.T) {
	// January window: the February transaction is excluded entirely.
	accounts := []domain.Account{{AccountID: "acc-1", Name: "Main"}}
	transactions := []domain.Transaction{
		txn("acc-1", domain.Expenditure, "Groceries", "40", "2024-01-15"),
		txn("acc-1", domain.Expenditure, "Groceries", "999", "2024-02-01"),
	}
	budget := domain.Budget{
		StartDate:             date("2024-01-01"),
		EndDate:               date("2024-01-31"),
		AlertThresholdPercent: 80,
	}

	report := budgeting.ComputeBudgetReport(accounts, transactions, budget)

	assert.True(t, report.TotalSpent.Equal(dec("40")), "got %s", report.TotalSpent)
	require.Contains(t, report.SpentByAccount, "Main")
	assert.True(t, report.SpentByAccount["Main"].Total.Equal(dec("40")))
	assert.Zero(t, report.SkippedTransactions)
}

func TestComputeBudgetReport_WindowBoundariesInclusive(t *testing.T) {
	accounts := []domain.Account{{AccountID: "acc-1", Name: "Main"}}
	transactions := []domain.Transaction{
		txn("acc-1", domain.Expenditure, "Rent Expense", "10", "2024-01-01"),
		txn("acc-1", domain.Expenditure, "Rent Expense", "20", "2024-01-31"),
		txn("acc-1", domain.Expenditure, "Rent Expense", "999", "2023-12-31"),
	}
	budget := domain.Budget{StartDate: date("2024-01-01"), EndDate: date("2024-01-31")}

	report := budgeting.ComputeBudgetReport(accounts, transactions, budget)

	assert.True(t, report.TotalSpent.Equal(dec("30")), "got %s", report.TotalSpent)
}

func TestComputeBudgetReport_GroupsByAccountAndCategory(t *testing.T) {
	accounts := []domain.Account{
		{AccountID: "acc-main", Name: "Main"},
		{AccountID: "acc-sav", Name: "Savings"},
	}
	transactions := []domain.Transaction{
		txn("acc-main", domain.Expenditure, "Utilities Bill", "25", "2024-01-10"),
		txn("acc-sav", domain.Expenditure, "Utilities Bill", "25", "2024-01-11"),
	}
	budget := domain.Budget{StartDate: date("2024-01-01"), EndDate: date("2024-01-31")}

	report := budgeting.ComputeBudgetReport(accounts, transactions, budget)

	require.Contains(t, report.SpentByAccount, "Main")
	require.Contains(t, report.SpentByAccount, "Savings")
	assert.True(t, report.SpentByAccount["Main"].Total.Equal(dec("25")))
	assert.True(t, report.SpentByAccount["Savings"].Total.Equal(dec("25")))
	assert.True(t, report.TotalSpent.Equal(dec("50")))
}

func TestComputeBudgetReport_SumsAreConsistent(t *testing.T) {
	accounts := []domain.Account{
		{AccountID: "acc-1", Name: "Main"},
		{AccountID: "acc-2", Name: "Savings"},
	}
	transactions := []domain.Transaction{
		txn("acc-1", domain.Expenditure, "Groceries", "12.345", "2024-01-02"),
		txn("acc-1", domain.Expenditure, "Groceries", "7.655", "2024-01-03"),
		txn("acc-1", domain.Expenditure, "Petrol", "30.500", "2024-01-04"),
		txn("acc-2", domain.Expenditure, "Internet Bill", "22.000", "2024-01-05"),
		txn("acc-1", domain.Income, "Salary", "500.000", "2024-01-06"), // income never counts as spend
	}
	budget := domain.Budget{StartDate: date("2024-01-01"), EndDate: date("2024-01-31")}

	report := budgeting.ComputeBudgetReport(accounts, transactions, budget)

	accountSum := decimal.Zero
	for _, spend := range report.SpentByAccount {
		categorySum := decimal.Zero
		for _, category := range spend.Categories {
			categorySum = categorySum.Add(category.Total)
		}
		assert.True(t, categorySum.Equal(spend.Total),
			"category totals %s must sum to account total %s", categorySum, spend.Total)
		accountSum = accountSum.Add(spend.Total)
	}
	assert.True(t, accountSum.Equal(report.TotalSpent),
		"account totals %s must sum to grand total %s", accountSum, report.TotalSpent)
	assert.True(t, report.TotalSpent.Equal(dec("72.500")))
}

func TestComputeBudgetReport_DanglingReferenceFlagged(t *testing.T) {
	accounts := []domain.Account{{AccountID: "acc-1", Name: "Main"}}
	transactions := []domain.Transaction{
		txn("acc-1", domain.Expenditure, "Groceries", "15", "2024-01-10"),
		txn("acc-gone", domain.Expenditure, "Groceries", "999", "2024-01-10"),
	}
	budget := domain.Budget{StartDate: date("2024-01-01"), EndDate: date("2024-01-31")}

	report := budgeting.ComputeBudgetReport(accounts, transactions, budget)

	assert.True(t, report.TotalSpent.Equal(dec("15")))
	assert.Len(t, report.SpentByAccount, 1)
	assert.Equal(t, 1, report.SkippedTransactions)
}

func TestComputeBudgetReport_DegenerateWindow(t *testing.T) {
	accounts := []domain.Account{{AccountID: "acc-1", Name: "Main"}}
	transactions := []domain.Transaction{
		txn("acc-1", domain.Expenditure, "Groceries", "40", "2024-01-15"),
	}
	budget := domain.Budget{StartDate: date("2024-02-01"), EndDate: date("2024-01-01")}

	report := budgeting.ComputeBudgetReport(accounts, transactions, budget)

	assert.True(t, report.TotalSpent.IsZero())
	assert.Empty(t, report.SpentByAccount)
}

func TestComputeBudgetReport_UsesResolvedAccountName(t *testing.T) {
	// The report must reflect the account's current display name, not
	// whatever it was called when the transaction was recorded.
	accounts := []domain.Account{{AccountID: "acc-1", Name: "Renamed Checking"}}
	transactions := []domain.Transaction{
		txn("acc-1", domain.Expenditure, "Groceries", "40", "2024-01-15"),
	}
	budget := domain.Budget{StartDate: date("2024-01-01"), EndDate: date("2024-01-31")}

	report := budgeting.ComputeBudgetReport(accounts, transactions, budget)

	require.Contains(t, report.SpentByAccount, "Renamed Checking")
}

func TestComputeBudgetReport_AlertsFromItemLimits(t *testing.T) {
	accounts := []domain.Account{{AccountID: "acc-1", Name: "Main"}}
	transactions := []domain.Transaction{
		txn("acc-1", domain.Expenditure, "Groceries", "80", "2024-01-10"),
		txn("acc-1", domain.Expenditure, "Petrol", "10", "2024-01-11"),
		txn("acc-1", domain.Expenditure, "Internet Bill", "500", "2024-01-12"),
	}
	budget := domain.Budget{
		StartDate:             date("2024-01-01"),
		EndDate:               date("2024-01-31"),
		AlertThresholdPercent: 80,
		Items: []domain.BudgetItem{
			{Category: "Groceries", LimitAmount: dec("100")}, // 80% -> at threshold
			{Category: "Petrol", LimitAmount: dec("100")},    // 10% -> below
			// Internet Bill has no limit: no alert, no fault.
		},
	}

	report := budgeting.ComputeBudgetReport(accounts, transactions, budget)

	spend := report.SpentByAccount["Main"]
	require.NotNil(t, spend)
	assert.True(t, spend.Categories["Groceries"].AlertTriggered)
	assert.False(t, spend.Categories["Petrol"].AlertTriggered)
	assert.False(t, spend.Categories["Internet Bill"].AlertTriggered)
}

func TestEvaluateAlert(t *testing.T) {
	tests := []struct {
		name      string
		total     string
		limit     string
		threshold string
		want      bool
	}{
		{"exactly at threshold", "80", "100", "80", true},
		{"just below threshold", "79.999", "100", "80", false},
		{"above threshold", "95", "100", "80", true},
		{"over limit", "150", "100", "100", true},
		{"zero limit never triggers", "500", "0", "80", false},
		{"negative limit never triggers", "500", "-10", "80", false},
		{"zero spend", "0", "100", "1", false},
		{"fractional limit", "2.4", "3", "80", true}, // 2.4/3 = 80%
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := budgeting.EvaluateAlert(dec(tt.total), dec(tt.limit), dec(tt.threshold))
			assert.Equal(t, tt.want, got)
		})
	}
}
