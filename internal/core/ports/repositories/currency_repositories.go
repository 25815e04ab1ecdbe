package repositories

import (
	"context"

	"github.com/fintrackhq/fintrack-backend/internal/core/domain"
)

// CurrencyReader defines read operations for currency reference data.
type CurrencyReader interface {
	FindCurrencyByCode(ctx context.Context, currencyCode string) (*domain.Currency, error)
	ListCurrencies(ctx context.Context) ([]domain.Currency, error)
}

// CurrencyRepository defines the full persistence operations for Currencies.
type CurrencyRepository interface {
	CurrencyReader
	SaveCurrency(ctx context.Context, currency domain.Currency) error
}
