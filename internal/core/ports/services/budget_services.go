package services

import (
	"context"

	"github.com/fintrackhq/fintrack-backend/internal/core/domain"
	"github.com/fintrackhq/fintrack-backend/internal/dto"
)

// BudgetReaderSvc defines read operations for budget data.
type BudgetReaderSvc interface {
	// GetBudgetByID retrieves a specific budget owned by the user.
	GetBudgetByID(ctx context.Context, budgetID string, userID string) (*domain.Budget, error)

	// ListBudgets retrieves a paginated list of the user's budgets.
	ListBudgets(ctx context.Context, userID string, limit int, offset int) ([]domain.Budget, error)
}

// BudgetWriterSvc defines write operations for budget data.
type BudgetWriterSvc interface {
	// CreateBudget persists a new budget with its items.
	CreateBudget(ctx context.Context, req dto.CreateBudgetRequest, userID string) (*domain.Budget, error)

	// UpdateBudget updates an existing budget and replaces its items.
	UpdateBudget(ctx context.Context, budgetID string, req dto.UpdateBudgetRequest, userID string) (*domain.Budget, error)

	// DeleteBudget removes a budget and its items.
	DeleteBudget(ctx context.Context, budgetID string, userID string) error
}

// BudgetSvcFacade combines all budget-related service interfaces.
type BudgetSvcFacade interface {
	BudgetReaderSvc
	BudgetWriterSvc
}
