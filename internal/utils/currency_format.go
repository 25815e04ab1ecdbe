package utils

import (
	"github.com/fintrackhq/fintrack-backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// FormatWithCurrencyPrecision formats an amount with the display
// precision of the given currency, e.g. 12.3456 BHD (precision 3)
// renders as "12.346". Truncation to minor units happens only here, at
// presentation; accumulation always keeps full precision.
func FormatWithCurrencyPrecision(amount decimal.Decimal, currency domain.Currency) string {
	return amount.StringFixed(int32(currency.Precision))
}

// FormatWithPrecision formats an amount with the given precision when
// only the precision value is at hand.
func FormatWithPrecision(amount decimal.Decimal, precision int) string {
	return amount.StringFixed(int32(precision))
}
