package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType mirrors domain.TransactionType for DB storage.
type TransactionType string

const (
	Income      TransactionType = "INCOME"
	Expenditure TransactionType = "EXPENDITURE"
)

// Transaction is the persistence representation of a single income or
// expenditure record.
type Transaction struct {
	TransactionID string          `db:"transaction_id"`
	UserID        string          `db:"user_id"`
	AccountID     string          `db:"account_id"`
	Type          TransactionType `db:"type"`
	Category      string          `db:"category"`
	Amount        decimal.Decimal `db:"amount"`
	CurrencyCode  string          `db:"currency_code"`
	Description   string          `db:"description"`
	Date          time.Time       `db:"date"`
	AuditFields
}
