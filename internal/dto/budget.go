package dto

import (
	"time"

	"github.com/fintrackhq/fintrack-backend/internal/core/domain"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// BudgetItemRequest is a per-category limit line within a budget request.
type BudgetItemRequest struct {
	Category    string `json:"category" binding:"required"`
	LimitAmount string `json:"limitAmount" binding:"required"`
}

// CreateBudgetRequest defines the data needed to create a budget.
// Dates are calendar dates; the budgetdaterange struct validation
// rejects StartDate > EndDate at the door, so the engine's degenerate
// window handling only ever sees dirty pre-existing data.
type CreateBudgetRequest struct {
	Name                  string                  `json:"name" binding:"required"`
	PeriodType            domain.BudgetPeriodType `json:"periodType" binding:"required,oneof=MONTHLY WEEKLY CUSTOM"`
	StartDate             string                  `json:"startDate" binding:"required,datetime=2006-01-02"`
	EndDate               string                  `json:"endDate" binding:"required,datetime=2006-01-02"`
	CurrencyCode          string                  `json:"currencyCode" binding:"required,uppercase,len=3"`
	AlertThresholdPercent int                     `json:"alertThresholdPercent" binding:"required,min=1,max=100"`
	Items                 []BudgetItemRequest     `json:"items" binding:"dive"`
}

// UpdateBudgetRequest defines the data allowed for updating a budget.
// A non-nil Items slice replaces the item set wholesale.
type UpdateBudgetRequest struct {
	Name                  *string              `json:"name"`
	StartDate             *string              `json:"startDate" binding:"omitempty,datetime=2006-01-02"`
	EndDate               *string              `json:"endDate" binding:"omitempty,datetime=2006-01-02"`
	AlertThresholdPercent *int                 `json:"alertThresholdPercent" binding:"omitempty,min=1,max=100"`
	Items                 *[]BudgetItemRequest `json:"items" binding:"omitempty,dive"`
}

// ListBudgetsParams defines query parameters for listing budgets.
type ListBudgetsParams struct {
	Limit  int `form:"limit,default=20" binding:"min=1,max=100"`
	Offset int `form:"offset,default=0" binding:"min=0"`
}

// BudgetItemResponse mirrors a budget line item.
type BudgetItemResponse struct {
	Category    string          `json:"category"`
	LimitAmount decimal.Decimal `json:"limitAmount"`
}

// BudgetResponse defines the data returned for a budget.
type BudgetResponse struct {
	BudgetID              string                  `json:"budgetID"`
	Name                  string                  `json:"name"`
	PeriodType            domain.BudgetPeriodType `json:"periodType"`
	StartDate             string                  `json:"startDate"`
	EndDate               string                  `json:"endDate"`
	CurrencyCode          string                  `json:"currencyCode"`
	AlertThresholdPercent int                     `json:"alertThresholdPercent"`
	Items                 []BudgetItemResponse    `json:"items"`
	CreatedAt             time.Time               `json:"createdAt"`
	LastUpdatedAt         time.Time               `json:"lastUpdatedAt"`
}

// ListBudgetsResponse wraps the list of budgets.
type ListBudgetsResponse struct {
	Budgets []BudgetResponse `json:"budgets"`
}

// ToBudgetResponse converts a domain.Budget to BudgetResponse DTO.
func ToBudgetResponse(b *domain.Budget) BudgetResponse {
	items := make([]BudgetItemResponse, len(b.Items))
	for i, item := range b.Items {
		items[i] = BudgetItemResponse{Category: item.Category, LimitAmount: item.LimitAmount}
	}
	return BudgetResponse{
		BudgetID:              b.BudgetID,
		Name:                  b.Name,
		PeriodType:            b.PeriodType,
		StartDate:             b.StartDate.Format(DateLayout),
		EndDate:               b.EndDate.Format(DateLayout),
		CurrencyCode:          b.CurrencyCode,
		AlertThresholdPercent: b.AlertThresholdPercent,
		Items:                 items,
		CreatedAt:             b.CreatedAt,
		LastUpdatedAt:         b.LastUpdatedAt,
	}
}

// ToListBudgetsResponse converts a slice of domain.Budget to the list DTO.
func ToListBudgetsResponse(budgets []domain.Budget) ListBudgetsResponse {
	res := ListBudgetsResponse{Budgets: make([]BudgetResponse, len(budgets))}
	for i, b := range budgets {
		res.Budgets[i] = ToBudgetResponse(&b)
	}
	return res
}

// RegisterBudgetValidations installs the struct-level budget date-range
// check on gin's binding validator. Call once at startup.
func RegisterBudgetValidations() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterStructValidation(validateBudgetDateRange, CreateBudgetRequest{})
	}
}

func validateBudgetDateRange(sl validator.StructLevel) {
	req := sl.Current().Interface().(CreateBudgetRequest)
	start, errStart := time.Parse(DateLayout, req.StartDate)
	end, errEnd := time.Parse(DateLayout, req.EndDate)
	if errStart != nil || errEnd != nil {
		return // the datetime tag reports format errors
	}
	if start.After(end) {
		sl.ReportError(req.EndDate, "endDate", "EndDate", "budgetdaterange", "")
	}
}
