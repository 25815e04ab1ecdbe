package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/fintrackhq/fintrack-backend/internal/apperrors"
	"github.com/fintrackhq/fintrack-backend/internal/core/domain"
	portssvc "github.com/fintrackhq/fintrack-backend/internal/core/ports/services"
	"github.com/fintrackhq/fintrack-backend/internal/core/services"
	"github.com/fintrackhq/fintrack-backend/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type BudgetServiceTestSuite struct {
	suite.Suite
	mockRepo *MockBudgetRepository
	service  portssvc.BudgetSvcFacade

	userID string
}

func (suite *BudgetServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockBudgetRepository)
	suite.service = services.NewBudgetService(suite.mockRepo)
	suite.userID = uuid.NewString()
}

func (suite *BudgetServiceTestSuite) validRequest() dto.CreateBudgetRequest {
	return dto.CreateBudgetRequest{
		Name:                  "March Groceries",
		PeriodType:            domain.Monthly,
		StartDate:             "2024-03-01",
		EndDate:               "2024-03-31",
		CurrencyCode:          "USD",
		AlertThresholdPercent: 80,
		Items: []dto.BudgetItemRequest{
			{Category: "Food", LimitAmount: "300"},
			{Category: "Transport", LimitAmount: "120.50"},
		},
	}
}

func (suite *BudgetServiceTestSuite) TestCreateBudget_Success() {
	ctx := context.Background()

	suite.mockRepo.On("SaveBudget", ctx, mock.AnythingOfType("domain.Budget")).Return(nil).Once()

	budget, err := suite.service.CreateBudget(ctx, suite.validRequest(), suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(budget)
	suite.NotEmpty(budget.BudgetID)
	suite.Equal(suite.userID, budget.UserID)
	suite.Equal(80, budget.AlertThresholdPercent)
	suite.Len(budget.Items, 2)
	suite.True(budget.StartDate.Equal(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)))
	limit, ok := budget.LimitFor("Transport")
	suite.True(ok)
	suite.True(decimal.RequireFromString("120.50").Equal(limit))
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *BudgetServiceTestSuite) TestCreateBudget_InvertedWindowRejected() {
	ctx := context.Background()
	req := suite.validRequest()
	req.StartDate = "2024-04-01"
	req.EndDate = "2024-03-01"

	budget, err := suite.service.CreateBudget(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Nil(budget)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveBudget")
}

func (suite *BudgetServiceTestSuite) TestCreateBudget_DuplicateCategoryRejected() {
	ctx := context.Background()
	req := suite.validRequest()
	req.Items = []dto.BudgetItemRequest{
		{Category: "Food", LimitAmount: "300"},
		{Category: "Food", LimitAmount: "100"},
	}

	budget, err := suite.service.CreateBudget(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Nil(budget)
}

func (suite *BudgetServiceTestSuite) TestCreateBudget_MalformedLimitRejected() {
	ctx := context.Background()
	req := suite.validRequest()
	req.Items = []dto.BudgetItemRequest{{Category: "Food", LimitAmount: "lots"}}

	budget, err := suite.service.CreateBudget(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Nil(budget)
}

func (suite *BudgetServiceTestSuite) TestUpdateBudget_ReplacesItems() {
	ctx := context.Background()
	budgetID := uuid.NewString()
	existing := &domain.Budget{
		BudgetID:              budgetID,
		UserID:                suite.userID,
		Name:                  "March",
		StartDate:             time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		EndDate:               time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC),
		AlertThresholdPercent: 80,
		Items:                 []domain.BudgetItem{{Category: "Food", LimitAmount: decimal.NewFromInt(300)}},
	}
	newItems := []dto.BudgetItemRequest{{Category: "Rent", LimitAmount: "900"}}

	suite.mockRepo.On("FindBudgetByID", ctx, budgetID).Return(existing, nil).Once()
	suite.mockRepo.On("UpdateBudget", ctx, mock.MatchedBy(func(b domain.Budget) bool {
		return len(b.Items) == 1 && b.Items[0].Category == "Rent"
	})).Return(nil).Once()

	updated, err := suite.service.UpdateBudget(ctx, budgetID, dto.UpdateBudgetRequest{Items: &newItems}, suite.userID)

	suite.Require().NoError(err)
	suite.Len(updated.Items, 1)
	suite.Equal("Rent", updated.Items[0].Category)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *BudgetServiceTestSuite) TestUpdateBudget_WindowStaysOrdered() {
	ctx := context.Background()
	budgetID := uuid.NewString()
	existing := &domain.Budget{
		BudgetID:  budgetID,
		UserID:    suite.userID,
		StartDate: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC),
	}
	badStart := "2024-05-01"

	suite.mockRepo.On("FindBudgetByID", ctx, budgetID).Return(existing, nil).Once()

	updated, err := suite.service.UpdateBudget(ctx, budgetID, dto.UpdateBudgetRequest{StartDate: &badStart}, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Nil(updated)
	suite.mockRepo.AssertNotCalled(suite.T(), "UpdateBudget")
}

func (suite *BudgetServiceTestSuite) TestGetBudgetByID_ForeignOwnerHidden() {
	ctx := context.Background()
	budgetID := uuid.NewString()
	foreign := &domain.Budget{BudgetID: budgetID, UserID: uuid.NewString()}

	suite.mockRepo.On("FindBudgetByID", ctx, budgetID).Return(foreign, nil).Once()

	budget, err := suite.service.GetBudgetByID(ctx, budgetID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.Nil(budget)
}

func (suite *BudgetServiceTestSuite) TestDeleteBudget_Success() {
	ctx := context.Background()
	budgetID := uuid.NewString()
	existing := &domain.Budget{BudgetID: budgetID, UserID: suite.userID}

	suite.mockRepo.On("FindBudgetByID", ctx, budgetID).Return(existing, nil).Once()
	suite.mockRepo.On("DeleteBudget", ctx, budgetID, suite.userID).Return(nil).Once()

	err := suite.service.DeleteBudget(ctx, budgetID, suite.userID)

	suite.Require().NoError(err)
	suite.mockRepo.AssertExpectations(suite.T())
}

func TestBudgetServiceTestSuite(t *testing.T) {
	suite.Run(t, new(BudgetServiceTestSuite))
}
