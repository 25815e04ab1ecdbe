package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/fintrackhq/fintrack-backend/internal/apperrors"
	"github.com/fintrackhq/fintrack-backend/internal/core/domain"
	portsrepo "github.com/fintrackhq/fintrack-backend/internal/core/ports/repositories"
	portssvc "github.com/fintrackhq/fintrack-backend/internal/core/ports/services"
	"github.com/fintrackhq/fintrack-backend/internal/core/services"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type ReportingServiceTestSuite struct {
	suite.Suite
	mockAccountRepo  *MockAccountRepository
	mockTxnRepo      *MockTransactionRepository
	mockBudgetRepo   *MockBudgetRepository
	mockCurrencyRepo *MockCurrencyRepository
	service          portssvc.ReportingSvc

	userID string
}

func (suite *ReportingServiceTestSuite) SetupTest() {
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.mockTxnRepo = new(MockTransactionRepository)
	suite.mockBudgetRepo = new(MockBudgetRepository)
	suite.mockCurrencyRepo = new(MockCurrencyRepository)
	suite.service = services.NewReportingService(
		suite.mockAccountRepo,
		suite.mockTxnRepo,
		suite.mockBudgetRepo,
		services.WithReportingCurrencyRepository(suite.mockCurrencyRepo),
	)
	suite.userID = uuid.NewString()
}

func (suite *ReportingServiceTestSuite) txn(accountID string, txnType domain.TransactionType, amount string, date time.Time) domain.Transaction {
	return domain.Transaction{
		TransactionID: uuid.NewString(),
		UserID:        suite.userID,
		AccountID:     accountID,
		Type:          txnType,
		Category:      "Misc",
		Amount:        decimal.RequireFromString(amount),
		Date:          date,
	}
}

func (suite *ReportingServiceTestSuite) TestAccountSummary_BalanceFromHistory() {
	ctx := context.Background()
	account := &domain.Account{
		AccountID:      uuid.NewString(),
		UserID:         suite.userID,
		Name:           "Main",
		InitialBalance: decimal.NewFromInt(100),
		CurrencyCode:   "USD",
	}
	day := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	history := []domain.Transaction{
		suite.txn(account.AccountID, domain.Income, "50", day),
		suite.txn(account.AccountID, domain.Expenditure, "30", day),
	}
	usd := &domain.Currency{CurrencyCode: "USD", Symbol: "$", Precision: 2}

	suite.mockAccountRepo.On("FindAccountByID", ctx, account.AccountID).Return(account, nil).Once()
	suite.mockTxnRepo.On("ListTransactionsByAccount", ctx, suite.userID, account.AccountID).Return(history, nil).Once()
	suite.mockCurrencyRepo.On("FindCurrencyByCode", ctx, "USD").Return(usd, nil).Once()

	summary, err := suite.service.AccountSummary(ctx, account.AccountID, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(summary)
	suite.True(decimal.NewFromInt(120).Equal(summary.Activity.CurrentBalance))
	suite.True(decimal.NewFromInt(50).Equal(summary.Activity.TotalIncome))
	suite.True(decimal.NewFromInt(30).Equal(summary.Activity.TotalExpenditure))
	suite.Equal(2, summary.Activity.TransactionCount)
	suite.Require().NotNil(summary.Currency)
	suite.Equal(int64(2), int64(summary.Currency.Precision))
	suite.mockAccountRepo.AssertExpectations(suite.T())
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *ReportingServiceTestSuite) TestAccountSummary_MissingCurrencyIsNotFatal() {
	ctx := context.Background()
	account := &domain.Account{
		AccountID:    uuid.NewString(),
		UserID:       suite.userID,
		CurrencyCode: "ZZZ",
	}

	suite.mockAccountRepo.On("FindAccountByID", ctx, account.AccountID).Return(account, nil).Once()
	suite.mockTxnRepo.On("ListTransactionsByAccount", ctx, suite.userID, account.AccountID).Return([]domain.Transaction{}, nil).Once()
	suite.mockCurrencyRepo.On("FindCurrencyByCode", ctx, "ZZZ").Return(nil, apperrors.ErrNotFound).Once()

	summary, err := suite.service.AccountSummary(ctx, account.AccountID, suite.userID)

	suite.Require().NoError(err)
	suite.Nil(summary.Currency)
	suite.True(summary.Activity.CurrentBalance.IsZero())
}

func (suite *ReportingServiceTestSuite) TestAccountSummary_ForeignOwnerHidden() {
	ctx := context.Background()
	foreign := &domain.Account{AccountID: uuid.NewString(), UserID: uuid.NewString()}

	suite.mockAccountRepo.On("FindAccountByID", ctx, foreign.AccountID).Return(foreign, nil).Once()

	summary, err := suite.service.AccountSummary(ctx, foreign.AccountID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.Nil(summary)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "ListTransactionsByAccount")
}

func (suite *ReportingServiceTestSuite) TestBudgetReport_AggregatesWindowedSpending() {
	ctx := context.Background()
	account := domain.Account{AccountID: uuid.NewString(), UserID: suite.userID, Name: "Main"}
	budget := &domain.Budget{
		BudgetID:              uuid.NewString(),
		UserID:                suite.userID,
		Name:                  "March",
		StartDate:             time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		EndDate:               time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC),
		AlertThresholdPercent: 80,
	}

	inside := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	outside := time.Date(2024, 4, 2, 0, 0, 0, 0, time.UTC)
	history := []domain.Transaction{
		suite.txn(account.AccountID, domain.Expenditure, "40", inside),
		suite.txn(account.AccountID, domain.Expenditure, "25", outside),
		suite.txn(account.AccountID, domain.Income, "500", inside),
	}

	suite.mockBudgetRepo.On("FindBudgetByID", ctx, budget.BudgetID).Return(budget, nil).Once()
	suite.mockAccountRepo.On("ListAccounts", ctx, suite.userID, 0, 0).Return([]domain.Account{account}, nil).Once()
	suite.mockTxnRepo.On("ListTransactions", ctx, suite.userID, portsrepo.TransactionListFilter{}).Return(history, nil).Once()

	gotBudget, report, err := suite.service.BudgetReport(ctx, budget.BudgetID, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(budget, gotBudget)
	suite.Require().NotNil(report)
	suite.True(decimal.NewFromInt(40).Equal(report.TotalSpent))
	suite.Require().Contains(report.SpentByAccount, "Main")
	suite.True(decimal.NewFromInt(40).Equal(report.SpentByAccount["Main"].Total))
	suite.Zero(report.SkippedTransactions)
	suite.mockBudgetRepo.AssertExpectations(suite.T())
}

func (suite *ReportingServiceTestSuite) TestBudgetReport_ForeignOwnerHidden() {
	ctx := context.Background()
	foreign := &domain.Budget{BudgetID: uuid.NewString(), UserID: uuid.NewString()}

	suite.mockBudgetRepo.On("FindBudgetByID", ctx, foreign.BudgetID).Return(foreign, nil).Once()

	gotBudget, report, err := suite.service.BudgetReport(ctx, foreign.BudgetID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.Nil(gotBudget)
	suite.Nil(report)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "ListAccounts")
}

func (suite *ReportingServiceTestSuite) TestBudgetReport_DanglingReferenceCounted() {
	ctx := context.Background()
	account := domain.Account{AccountID: uuid.NewString(), UserID: suite.userID, Name: "Main"}
	budget := &domain.Budget{
		BudgetID:              uuid.NewString(),
		UserID:                suite.userID,
		StartDate:             time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		EndDate:               time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC),
		AlertThresholdPercent: 80,
	}
	inside := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	history := []domain.Transaction{
		suite.txn(account.AccountID, domain.Expenditure, "10", inside),
		suite.txn(uuid.NewString(), domain.Expenditure, "99", inside),
	}

	suite.mockBudgetRepo.On("FindBudgetByID", ctx, budget.BudgetID).Return(budget, nil).Once()
	suite.mockAccountRepo.On("ListAccounts", ctx, suite.userID, 0, 0).Return([]domain.Account{account}, nil).Once()
	suite.mockTxnRepo.On("ListTransactions", ctx, suite.userID, mock.AnythingOfType("repositories.TransactionListFilter")).Return(history, nil).Once()

	_, report, err := suite.service.BudgetReport(ctx, budget.BudgetID, suite.userID)

	suite.Require().NoError(err)
	suite.True(decimal.NewFromInt(10).Equal(report.TotalSpent))
	suite.Equal(1, report.SkippedTransactions)
}

func TestReportingServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ReportingServiceTestSuite))
}
