package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/fintrackhq/fintrack-backend/internal/apperrors"
	"github.com/fintrackhq/fintrack-backend/internal/core/domain"
	portsrepo "github.com/fintrackhq/fintrack-backend/internal/core/ports/repositories"
	portssvc "github.com/fintrackhq/fintrack-backend/internal/core/ports/services"
	"github.com/fintrackhq/fintrack-backend/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// budgetServiceImpl implements the BudgetSvcFacade interface.
type budgetServiceImpl struct {
	BaseService
	budgetRepo   portsrepo.BudgetRepository
	currencyRepo portsrepo.CurrencyReader
}

// BudgetServiceOption is a functional option for configuring the budget service.
type BudgetServiceOption func(*budgetServiceImpl)

// WithBudgetCurrencyRepository adds currency reference data for
// validating the currency code on new budgets.
func WithBudgetCurrencyRepository(repo portsrepo.CurrencyReader) BudgetServiceOption {
	return func(s *budgetServiceImpl) {
		s.currencyRepo = repo
	}
}

// NewBudgetService creates a new budget service with the provided options.
func NewBudgetService(repo portsrepo.BudgetRepository, options ...BudgetServiceOption) portssvc.BudgetSvcFacade {
	svc := &budgetServiceImpl{
		budgetRepo: repo,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

// Ensure budgetServiceImpl implements the BudgetSvcFacade interface.
var _ portssvc.BudgetSvcFacade = (*budgetServiceImpl)(nil)

func (s *budgetServiceImpl) CreateBudget(ctx context.Context, req dto.CreateBudgetRequest, userID string) (*domain.Budget, error) {
	if s.currencyRepo != nil {
		if _, err := s.currencyRepo.FindCurrencyByCode(ctx, req.CurrencyCode); err != nil {
			s.LogError(ctx, err, "Invalid currency code",
				slog.String("currency_code", req.CurrencyCode))
			return nil, fmt.Errorf("invalid currency code: %w", err)
		}
	}

	startDate, endDate, err := parseBudgetWindow(req.StartDate, req.EndDate)
	if err != nil {
		return nil, err
	}

	items, err := toBudgetItems(req.Items)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	budget := domain.Budget{
		BudgetID:              uuid.NewString(),
		UserID:                userID,
		Name:                  req.Name,
		PeriodType:            req.PeriodType,
		StartDate:             startDate,
		EndDate:               endDate,
		CurrencyCode:          req.CurrencyCode,
		AlertThresholdPercent: req.AlertThresholdPercent,
		Items:                 items,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.budgetRepo.SaveBudget(ctx, budget); err != nil {
		s.LogError(ctx, err, "Failed to save budget",
			slog.String("budget_id", budget.BudgetID))
		return nil, err
	}

	s.LogInfo(ctx, "Budget created successfully",
		slog.String("budget_id", budget.BudgetID),
		slog.Int("item_count", len(budget.Items)))
	return &budget, nil
}

func (s *budgetServiceImpl) GetBudgetByID(ctx context.Context, budgetID string, userID string) (*domain.Budget, error) {
	budget, err := s.budgetRepo.FindBudgetByID(ctx, budgetID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find budget by ID",
				slog.String("budget_id", budgetID))
		}
		return nil, err
	}

	if budget.UserID != userID {
		return nil, apperrors.ErrNotFound
	}
	return budget, nil
}

func (s *budgetServiceImpl) ListBudgets(ctx context.Context, userID string, limit int, offset int) ([]domain.Budget, error) {
	budgets, err := s.budgetRepo.ListBudgets(ctx, userID, limit, offset)
	if err != nil {
		s.LogError(ctx, err, "Failed to list budgets")
		return nil, fmt.Errorf("failed to list budgets: %w", err)
	}
	if budgets == nil {
		return []domain.Budget{}, nil
	}
	return budgets, nil
}

func (s *budgetServiceImpl) UpdateBudget(ctx context.Context, budgetID string, req dto.UpdateBudgetRequest, userID string) (*domain.Budget, error) {
	budget, err := s.GetBudgetByID(ctx, budgetID, userID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		budget.Name = *req.Name
	}
	if req.StartDate != nil {
		startDate, err := time.Parse(dto.DateLayout, *req.StartDate)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid start date %q", apperrors.ErrValidation, *req.StartDate)
		}
		budget.StartDate = startDate
	}
	if req.EndDate != nil {
		endDate, err := time.Parse(dto.DateLayout, *req.EndDate)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid end date %q", apperrors.ErrValidation, *req.EndDate)
		}
		budget.EndDate = endDate
	}
	if budget.StartDate.After(budget.EndDate) {
		return nil, fmt.Errorf("%w: start date must not be after end date", apperrors.ErrValidation)
	}
	if req.AlertThresholdPercent != nil {
		budget.AlertThresholdPercent = *req.AlertThresholdPercent
	}
	if req.Items != nil {
		items, err := toBudgetItems(*req.Items)
		if err != nil {
			return nil, err
		}
		budget.Items = items
	}
	budget.LastUpdatedAt = time.Now()
	budget.LastUpdatedBy = userID

	if err := s.budgetRepo.UpdateBudget(ctx, *budget); err != nil {
		s.LogError(ctx, err, "Failed to update budget",
			slog.String("budget_id", budgetID))
		return nil, err
	}

	s.LogInfo(ctx, "Budget updated successfully",
		slog.String("budget_id", budgetID))
	return budget, nil
}

func (s *budgetServiceImpl) DeleteBudget(ctx context.Context, budgetID string, userID string) error {
	if _, err := s.GetBudgetByID(ctx, budgetID, userID); err != nil {
		return err
	}

	if err := s.budgetRepo.DeleteBudget(ctx, budgetID, userID); err != nil {
		s.LogError(ctx, err, "Failed to delete budget",
			slog.String("budget_id", budgetID))
		return err
	}

	s.LogInfo(ctx, "Budget deleted",
		slog.String("budget_id", budgetID))
	return nil
}

// parseBudgetWindow parses and orders the budget window. The binding
// layer already rejects start > end on create; this keeps the invariant
// even for callers bypassing DTO validation.
func parseBudgetWindow(start, end string) (time.Time, time.Time, error) {
	startDate, err := time.Parse(dto.DateLayout, start)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: invalid start date %q", apperrors.ErrValidation, start)
	}
	endDate, err := time.Parse(dto.DateLayout, end)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: invalid end date %q", apperrors.ErrValidation, end)
	}
	if startDate.After(endDate) {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: start date must not be after end date", apperrors.ErrValidation)
	}
	return startDate, endDate, nil
}

// toBudgetItems converts item requests, rejecting duplicate categories
// and unparseable or negative limits. Limits are strict where amounts
// are lenient: a silently zeroed limit would disable its alert.
func toBudgetItems(reqs []dto.BudgetItemRequest) ([]domain.BudgetItem, error) {
	items := make([]domain.BudgetItem, 0, len(reqs))
	seen := make(map[string]struct{}, len(reqs))
	for _, req := range reqs {
		if _, dup := seen[req.Category]; dup {
			return nil, fmt.Errorf("%w: duplicate budget item for category %q", apperrors.ErrValidation, req.Category)
		}
		seen[req.Category] = struct{}{}

		limit, err := decimal.NewFromString(req.LimitAmount)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid limit amount %q for category %q", apperrors.ErrValidation, req.LimitAmount, req.Category)
		}
		if limit.IsNegative() {
			return nil, fmt.Errorf("%w: limit amount must not be negative for category %q", apperrors.ErrValidation, req.Category)
		}
		items = append(items, domain.BudgetItem{Category: req.Category, LimitAmount: limit})
	}
	return items, nil
}
