package models

import (
	"github.com/shopspring/decimal"
)

// AccountType mirrors domain.AccountType for DB storage.
type AccountType string

const (
	Check   AccountType = "CHECK"
	Savings AccountType = "SAVINGS"
	Salary  AccountType = "SALARY"
)

// Account is the persistence representation of a financial account.
type Account struct {
	AccountID      string          `db:"account_id"`
	UserID         string          `db:"user_id"`
	Name           string          `db:"name"`
	AccountType    AccountType     `db:"account_type"`
	AccountNumber  string          `db:"account_number"`
	InitialBalance decimal.Decimal `db:"initial_balance"`
	CurrencyCode   string          `db:"currency_code"`
	AuditFields
}
