package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/fintrackhq/fintrack-backend/internal/apperrors"
	"github.com/fintrackhq/fintrack-backend/internal/core/domain"
	portsrepo "github.com/fintrackhq/fintrack-backend/internal/core/ports/repositories"
	"github.com/fintrackhq/fintrack-backend/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxBudgetRepository struct {
	BaseRepository
}

// newPgxBudgetRepository creates a new repository for budget data.
func newPgxBudgetRepository(pool *pgxpool.Pool) portsrepo.BudgetRepository {
	return &PgxBudgetRepository{BaseRepository{Pool: pool}}
}

// Ensure PgxBudgetRepository implements portsrepo.BudgetRepository
var _ portsrepo.BudgetRepository = (*PgxBudgetRepository)(nil)

func toModelBudget(d domain.Budget) models.Budget {
	return models.Budget{
		BudgetID:              d.BudgetID,
		UserID:                d.UserID,
		Name:                  d.Name,
		PeriodType:            models.BudgetPeriodType(d.PeriodType),
		StartDate:             d.StartDate,
		EndDate:               d.EndDate,
		CurrencyCode:          d.CurrencyCode,
		AlertThresholdPercent: d.AlertThresholdPercent,
		AuditFields: models.AuditFields{
			CreatedAt:     d.CreatedAt,
			CreatedBy:     d.CreatedBy,
			LastUpdatedAt: d.LastUpdatedAt,
			LastUpdatedBy: d.LastUpdatedBy,
		},
	}
}

func toDomainBudget(m models.Budget, items []models.BudgetItem) domain.Budget {
	domainItems := make([]domain.BudgetItem, len(items))
	for i, item := range items {
		domainItems[i] = domain.BudgetItem{
			Category:    item.Category,
			LimitAmount: item.LimitAmount,
		}
	}
	return domain.Budget{
		BudgetID:              m.BudgetID,
		UserID:                m.UserID,
		Name:                  m.Name,
		PeriodType:            domain.BudgetPeriodType(m.PeriodType),
		StartDate:             m.StartDate,
		EndDate:               m.EndDate,
		CurrencyCode:          m.CurrencyCode,
		AlertThresholdPercent: m.AlertThresholdPercent,
		Items:                 domainItems,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

const budgetColumns = `budget_id, user_id, name, period_type, start_date, end_date, currency_code, alert_threshold_percent, created_at, created_by, last_updated_at, last_updated_by`

func scanBudget(row pgx.Row) (models.Budget, error) {
	var m models.Budget
	err := row.Scan(
		&m.BudgetID,
		&m.UserID,
		&m.Name,
		&m.PeriodType,
		&m.StartDate,
		&m.EndDate,
		&m.CurrencyCode,
		&m.AlertThresholdPercent,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// SaveBudget inserts a budget and its items in a single transaction.
func (r *PgxBudgetRepository) SaveBudget(ctx context.Context, budget domain.Budget) error {
	modelBudget := toModelBudget(budget)

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	query := `
		INSERT INTO budgets (` + budgetColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err = tx.Exec(ctx, query,
		modelBudget.BudgetID,
		modelBudget.UserID,
		modelBudget.Name,
		modelBudget.PeriodType,
		modelBudget.StartDate,
		modelBudget.EndDate,
		modelBudget.CurrencyCode,
		modelBudget.AlertThresholdPercent,
		modelBudget.CreatedAt,
		modelBudget.CreatedBy,
		modelBudget.LastUpdatedAt,
		modelBudget.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			if pgErr.Code == "23505" { // Unique violation
				return fmt.Errorf("%w: budget with ID %s already exists", apperrors.ErrDuplicate, modelBudget.BudgetID)
			}
		}
		return fmt.Errorf("failed to save budget %s: %w", modelBudget.BudgetID, err)
	}

	if err := insertBudgetItems(ctx, tx, budget.BudgetID, budget.Items); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

func insertBudgetItems(ctx context.Context, tx pgx.Tx, budgetID string, items []domain.BudgetItem) error {
	query := `
		INSERT INTO budget_items (budget_id, category, limit_amount)
		VALUES ($1, $2, $3);
	`
	for _, item := range items {
		if _, err := tx.Exec(ctx, query, budgetID, item.Category, item.LimitAmount); err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) {
				if pgErr.Code == "23505" { // Unique violation
					return fmt.Errorf("%w: duplicate budget item for category %q", apperrors.ErrDuplicate, item.Category)
				}
			}
			return fmt.Errorf("failed to save budget item %q: %w", item.Category, err)
		}
	}
	return nil
}

// FindBudgetByID retrieves a budget with its items.
func (r *PgxBudgetRepository) FindBudgetByID(ctx context.Context, budgetID string) (*domain.Budget, error) {
	query := `SELECT ` + budgetColumns + ` FROM budgets WHERE budget_id = $1;`

	modelBudget, err := scanBudget(r.Pool.QueryRow(ctx, query, budgetID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find budget %s: %w", budgetID, err)
	}

	items, err := r.findBudgetItems(ctx, budgetID)
	if err != nil {
		return nil, err
	}

	domainBudget := toDomainBudget(modelBudget, items)
	return &domainBudget, nil
}

func (r *PgxBudgetRepository) findBudgetItems(ctx context.Context, budgetID string) ([]models.BudgetItem, error) {
	query := `
		SELECT budget_id, category, limit_amount
		FROM budget_items
		WHERE budget_id = $1
		ORDER BY category ASC;
	`
	rows, err := r.Pool.Query(ctx, query, budgetID)
	if err != nil {
		return nil, fmt.Errorf("failed to list budget items for %s: %w", budgetID, err)
	}
	defer rows.Close()

	var items []models.BudgetItem
	for rows.Next() {
		var item models.BudgetItem
		if err := rows.Scan(&item.BudgetID, &item.Category, &item.LimitAmount); err != nil {
			return nil, fmt.Errorf("failed to scan budget item row: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating budget item rows: %w", err)
	}
	return items, nil
}

// ListBudgets retrieves the user's budgets with their items. A
// non-positive limit means no limit.
func (r *PgxBudgetRepository) ListBudgets(ctx context.Context, userID string, limit int, offset int) ([]domain.Budget, error) {
	query := `
		SELECT ` + budgetColumns + `
		FROM budgets
		WHERE user_id = $1
		ORDER BY start_date DESC, created_at DESC
	`
	args := []any{userID}
	if limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
		args = append(args, limit, offset)
	}

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list budgets: %w", err)
	}
	defer rows.Close()

	var modelBudgets []models.Budget
	for rows.Next() {
		m, err := scanBudget(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan budget row: %w", err)
		}
		modelBudgets = append(modelBudgets, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating budget rows: %w", err)
	}

	budgets := make([]domain.Budget, 0, len(modelBudgets))
	for _, m := range modelBudgets {
		items, err := r.findBudgetItems(ctx, m.BudgetID)
		if err != nil {
			return nil, err
		}
		budgets = append(budgets, toDomainBudget(m, items))
	}
	return budgets, nil
}

// UpdateBudget updates a budget and replaces its items atomically.
func (r *PgxBudgetRepository) UpdateBudget(ctx context.Context, budget domain.Budget) error {
	modelBudget := toModelBudget(budget)

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	query := `
		UPDATE budgets
		SET name = $2, period_type = $3, start_date = $4, end_date = $5, alert_threshold_percent = $6, last_updated_at = $7, last_updated_by = $8
		WHERE budget_id = $1;
	`
	tag, err := tx.Exec(ctx, query,
		modelBudget.BudgetID,
		modelBudget.Name,
		modelBudget.PeriodType,
		modelBudget.StartDate,
		modelBudget.EndDate,
		modelBudget.AlertThresholdPercent,
		modelBudget.LastUpdatedAt,
		modelBudget.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update budget %s: %w", modelBudget.BudgetID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	if _, err := tx.Exec(ctx, `DELETE FROM budget_items WHERE budget_id = $1;`, budget.BudgetID); err != nil {
		return fmt.Errorf("failed to clear budget items for %s: %w", budget.BudgetID, err)
	}
	if err := insertBudgetItems(ctx, tx, budget.BudgetID, budget.Items); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// DeleteBudget removes the user's budget; items go with it via cascade.
func (r *PgxBudgetRepository) DeleteBudget(ctx context.Context, budgetID string, userID string) error {
	query := `DELETE FROM budgets WHERE budget_id = $1 AND user_id = $2;`

	tag, err := r.Pool.Exec(ctx, query, budgetID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete budget %s: %w", budgetID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
