package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType indicates whether a transaction adds to or draws from
// an account. Amounts are stored non-negative; the sign is carried by
// the type, not the value.
type TransactionType string

const (
	Income      TransactionType = "INCOME"
	Expenditure TransactionType = "EXPENDITURE"
)

// IsCanonical reports whether t is one of the two recognized type tags.
// Anything else is treated downstream as an anomaly, never silently
// misclassified.
func (t TransactionType) IsCanonical() bool {
	return t == Income || t == Expenditure
}

// NormalizeTransactionType maps the casing variants that appear in
// upstream data ("income", "Income", "EXPENDITURE", ...) onto the
// canonical tags. The second return value is false when the input
// matches neither type.
func NormalizeTransactionType(raw string) (TransactionType, bool) {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case string(Income):
		return Income, true
	case string(Expenditure):
		return Expenditure, true
	}
	return TransactionType(raw), false
}

// Transaction is a single dated income or expenditure record linked to
// exactly one account.
type Transaction struct {
	TransactionID string          `json:"transactionID"` // Primary Key (UUID)
	UserID        string          `json:"userID"`        // Owning user
	AccountID     string          `json:"accountID"`     // FK -> Account.accountID
	Type          TransactionType `json:"type"`          // INCOME or EXPENDITURE
	Category      string          `json:"category"`      // Free-form label
	Amount        decimal.Decimal `json:"amount"`        // Non-negative
	CurrencyCode  string          `json:"currencyCode"`
	Description   string          `json:"description"`
	Date          time.Time       `json:"date"` // Calendar date of the transaction
	AuditFields
}
