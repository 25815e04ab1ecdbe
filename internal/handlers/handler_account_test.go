package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/fintrackhq/fintrack-backend/internal/apperrors"
	"github.com/fintrackhq/fintrack-backend/internal/core/domain"
	portssvc "github.com/fintrackhq/fintrack-backend/internal/core/ports/services"
	"github.com/fintrackhq/fintrack-backend/internal/dto"
	"github.com/fintrackhq/fintrack-backend/internal/handlers"
	"github.com/fintrackhq/fintrack-backend/internal/platform/config"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock AccountService ---
type MockAccountService struct {
	mock.Mock
}

func (m *MockAccountService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest, userID string) (*domain.Account, error) {
	args := m.Called(ctx, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) GetAccountByID(ctx context.Context, accountID string, userID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) ListAccounts(ctx context.Context, userID string, limit int, offset int) ([]domain.Account, error) {
	args := m.Called(ctx, userID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountService) UpdateAccount(ctx context.Context, accountID string, req dto.UpdateAccountRequest, userID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) DeleteAccount(ctx context.Context, accountID string, userID string) error {
	args := m.Called(ctx, accountID, userID)
	return args.Error(0)
}

// Ensure mock implements the interface
var _ portssvc.AccountSvcFacade = (*MockAccountService)(nil)

// --- Mock ReportingService ---
type MockReportingService struct {
	mock.Mock
}

func (m *MockReportingService) AccountSummary(ctx context.Context, accountID string, userID string) (*domain.AccountSummary, error) {
	args := m.Called(ctx, accountID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AccountSummary), args.Error(1)
}

func (m *MockReportingService) BudgetReport(ctx context.Context, budgetID string, userID string) (*domain.Budget, *domain.BudgetReport, error) {
	args := m.Called(ctx, budgetID, userID)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*domain.Budget), args.Get(1).(*domain.BudgetReport), args.Error(2)
}

// Ensure mock implements the interface
var _ portssvc.ReportingSvc = (*MockReportingService)(nil)

// --- Test Suite ---
type AccountHandlerTestSuite struct {
	suite.Suite
	router               *gin.Engine
	mockAccountService   *MockAccountService
	mockReportingService *MockReportingService
	jwtSecret            string
}

// generateTestToken creates a dummy JWT for testing.
func (suite *AccountHandlerTestSuite) generateTestToken(userID string) string {
	claims := jwt.RegisteredClaims{
		Issuer:    "fintrack-test",
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(1 * time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedString, err := token.SignedString([]byte(suite.jwtSecret))
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return signedString
}

func (suite *AccountHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"

	suite.mockAccountService = new(MockAccountService)
	suite.mockReportingService = new(MockReportingService)

	cfg := &config.Config{
		JWTSecret:    suite.jwtSecret,
		IsProduction: true, // skip swagger registration
	}
	services := &portssvc.ServiceContainer{
		Account:   suite.mockAccountService,
		Reporting: suite.mockReportingService,
	}
	handlers.RegisterRoutes(suite.router, cfg, services)
}

func (suite *AccountHandlerTestSuite) performRequest(method, path, token string, body any) *httptest.ResponseRecorder {
	var reqBody *bytes.Buffer
	if body != nil {
		jsonBody, err := json.Marshal(body)
		suite.Require().NoError(err)
		reqBody = bytes.NewBuffer(jsonBody)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req, err := http.NewRequest(method, path, reqBody)
	suite.Require().NoError(err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

// --- Test Cases ---

func (suite *AccountHandlerTestSuite) TestCreateAccount_Success() {
	userID := uuid.NewString()
	token := suite.generateTestToken(userID)

	reqBody := dto.CreateAccountRequest{
		Name:           "Main Checking",
		AccountType:    domain.Check,
		AccountNumber:  "100200300",
		InitialBalance: "250.75",
		CurrencyCode:   "USD",
	}
	created := &domain.Account{
		AccountID:      uuid.NewString(),
		UserID:         userID,
		Name:           reqBody.Name,
		AccountType:    reqBody.AccountType,
		AccountNumber:  reqBody.AccountNumber,
		InitialBalance: decimal.RequireFromString("250.75"),
		CurrencyCode:   "USD",
	}

	suite.mockAccountService.On("CreateAccount", mock.Anything, reqBody, userID).Return(created, nil).Once()

	w := suite.performRequest(http.MethodPost, "/api/v1/accounts", token, reqBody)

	suite.Equal(http.StatusCreated, w.Code)
	var res dto.AccountResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &res))
	suite.Equal(created.AccountID, res.AccountID)
	suite.Equal("Main Checking", res.Name)
	suite.mockAccountService.AssertExpectations(suite.T())
}

func (suite *AccountHandlerTestSuite) TestCreateAccount_MissingToken() {
	w := suite.performRequest(http.MethodPost, "/api/v1/accounts", "", dto.CreateAccountRequest{})

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockAccountService.AssertNotCalled(suite.T(), "CreateAccount")
}

func (suite *AccountHandlerTestSuite) TestCreateAccount_BadAccountType() {
	userID := uuid.NewString()
	token := suite.generateTestToken(userID)

	w := suite.performRequest(http.MethodPost, "/api/v1/accounts", token, map[string]string{
		"name":          "Broken",
		"accountType":   "WALLET",
		"accountNumber": "1",
		"currencyCode":  "USD",
	})

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockAccountService.AssertNotCalled(suite.T(), "CreateAccount")
}

func (suite *AccountHandlerTestSuite) TestGetAccount_NotFound() {
	userID := uuid.NewString()
	token := suite.generateTestToken(userID)
	accountID := uuid.NewString()

	suite.mockAccountService.On("GetAccountByID", mock.Anything, accountID, userID).Return(nil, apperrors.ErrNotFound).Once()

	w := suite.performRequest(http.MethodGet, "/api/v1/accounts/"+accountID, token, nil)

	suite.Equal(http.StatusNotFound, w.Code)
	suite.mockAccountService.AssertExpectations(suite.T())
}

func (suite *AccountHandlerTestSuite) TestGetAccountSummary_Success() {
	userID := uuid.NewString()
	token := suite.generateTestToken(userID)
	accountID := uuid.NewString()

	summary := &domain.AccountSummary{
		Account: domain.Account{
			AccountID:    accountID,
			UserID:       userID,
			Name:         "Main",
			CurrencyCode: "BHD",
		},
		Activity: domain.AccountActivity{
			AccountID:        accountID,
			CurrentBalance:   decimal.RequireFromString("120.5005"),
			TotalIncome:      decimal.NewFromInt(150),
			TotalExpenditure: decimal.RequireFromString("29.4995"),
			TransactionCount: 4,
		},
		Currency: &domain.Currency{CurrencyCode: "BHD", Symbol: "BD", Precision: 3},
	}

	suite.mockReportingService.On("AccountSummary", mock.Anything, accountID, userID).Return(summary, nil).Once()

	w := suite.performRequest(http.MethodGet, "/api/v1/accounts/"+accountID+"/summary", token, nil)

	suite.Equal(http.StatusOK, w.Code)
	var res dto.AccountSummaryResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &res))
	suite.Equal(accountID, res.AccountID)
	suite.True(decimal.RequireFromString("120.5005").Equal(res.CurrentBalance))
	suite.Equal("120.501", res.CurrentBalanceDisplay)
	suite.Equal(4, res.TransactionCount)
	suite.mockReportingService.AssertExpectations(suite.T())
}

func (suite *AccountHandlerTestSuite) TestDeleteAccount_NoContent() {
	userID := uuid.NewString()
	token := suite.generateTestToken(userID)
	accountID := uuid.NewString()

	suite.mockAccountService.On("DeleteAccount", mock.Anything, accountID, userID).Return(nil).Once()

	w := suite.performRequest(http.MethodDelete, "/api/v1/accounts/"+accountID, token, nil)

	suite.Equal(http.StatusNoContent, w.Code)
	suite.mockAccountService.AssertExpectations(suite.T())
}

func TestAccountHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(AccountHandlerTestSuite))
}
