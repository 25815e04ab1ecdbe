package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/fintrackhq/fintrack-backend/internal/apperrors"
	"github.com/fintrackhq/fintrack-backend/internal/core/domain"
	portsrepo "github.com/fintrackhq/fintrack-backend/internal/core/ports/repositories"
	portssvc "github.com/fintrackhq/fintrack-backend/internal/core/ports/services"
	"github.com/fintrackhq/fintrack-backend/internal/utils/budgeting"
)

// reportingService implements the ReportingSvc interface. It only
// orchestrates data access; every calculation lives in the pure
// budgeting package so reports stay deterministic and trivially
// testable.
type reportingService struct {
	BaseService
	accountRepo     portsrepo.AccountRepository
	transactionRepo portsrepo.TransactionRepository
	budgetRepo      portsrepo.BudgetRepository
	currencyRepo    portsrepo.CurrencyReader
}

// ReportingServiceOption is a functional option for configuring the reporting service.
type ReportingServiceOption func(*reportingService)

// WithReportingCurrencyRepository adds currency reference data so
// summaries can carry display-formatted amounts.
func WithReportingCurrencyRepository(repo portsrepo.CurrencyReader) ReportingServiceOption {
	return func(s *reportingService) {
		s.currencyRepo = repo
	}
}

// NewReportingService creates a new reporting service with the provided options.
func NewReportingService(
	accountRepo portsrepo.AccountRepository,
	transactionRepo portsrepo.TransactionRepository,
	budgetRepo portsrepo.BudgetRepository,
	options ...ReportingServiceOption,
) portssvc.ReportingSvc {
	svc := &reportingService{
		accountRepo:     accountRepo,
		transactionRepo: transactionRepo,
		budgetRepo:      budgetRepo,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

// Ensure reportingService implements the ReportingSvc interface.
var _ portssvc.ReportingSvc = (*reportingService)(nil)

// AccountSummary derives the current balance and activity totals for
// one account from its full transaction history.
func (s *reportingService) AccountSummary(ctx context.Context, accountID string, userID string) (*domain.AccountSummary, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find account for summary",
				slog.String("account_id", accountID))
		}
		return nil, err
	}
	if account.UserID != userID {
		return nil, apperrors.ErrNotFound
	}

	transactions, err := s.transactionRepo.ListTransactionsByAccount(ctx, userID, accountID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list transactions for summary",
			slog.String("account_id", accountID))
		return nil, fmt.Errorf("failed to list transactions for account %s: %w", accountID, err)
	}

	activity := budgeting.ComputeAccountBalance(*account, transactions)

	summary := &domain.AccountSummary{
		Account:  *account,
		Activity: activity,
	}

	// Reference data is best-effort: a missing currency row only costs
	// the display formatting, never the summary itself.
	if s.currencyRepo != nil {
		if currency, err := s.currencyRepo.FindCurrencyByCode(ctx, account.CurrencyCode); err == nil {
			summary.Currency = currency
		} else if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogDebug(ctx, "Currency lookup failed for summary",
				slog.String("currency_code", account.CurrencyCode),
				slog.String("error", err.Error()))
		}
	}

	s.LogInfo(ctx, "Account summary computed",
		slog.String("account_id", accountID),
		slog.Int("transaction_count", activity.TransactionCount),
		slog.Int("skipped_count", activity.SkippedCount))
	return summary, nil
}

// BudgetReport aggregates the user's expenditure against the budget's
// window, grouped by the accounts' current display names.
func (s *reportingService) BudgetReport(ctx context.Context, budgetID string, userID string) (*domain.Budget, *domain.BudgetReport, error) {
	budget, err := s.budgetRepo.FindBudgetByID(ctx, budgetID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find budget for report",
				slog.String("budget_id", budgetID))
		}
		return nil, nil, err
	}
	if budget.UserID != userID {
		return nil, nil, apperrors.ErrNotFound
	}

	// The full sets go to the calculation: window filtering, type
	// screening and dangling-reference detection are its contract, so
	// pre-filtering in SQL would hide the anomalies it must count.
	accounts, err := s.accountRepo.ListAccounts(ctx, userID, 0, 0)
	if err != nil {
		s.LogError(ctx, err, "Failed to list accounts for report",
			slog.String("budget_id", budgetID))
		return nil, nil, fmt.Errorf("failed to list accounts: %w", err)
	}

	transactions, err := s.transactionRepo.ListTransactions(ctx, userID, portsrepo.TransactionListFilter{})
	if err != nil {
		s.LogError(ctx, err, "Failed to list transactions for report",
			slog.String("budget_id", budgetID))
		return nil, nil, fmt.Errorf("failed to list transactions: %w", err)
	}

	report := budgeting.ComputeBudgetReport(accounts, transactions, *budget)

	s.LogInfo(ctx, "Budget report computed",
		slog.String("budget_id", budgetID),
		slog.String("total_spent", report.TotalSpent.String()),
		slog.Int("account_buckets", len(report.SpentByAccount)),
		slog.Int("skipped_transactions", report.SkippedTransactions))
	return budget, &report, nil
}
