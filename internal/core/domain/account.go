package domain

import (
	"github.com/shopspring/decimal"
)

// AccountType classifies an account for presentation purposes.
// It carries no weight in any balance calculation.
type AccountType string

const (
	Check   AccountType = "CHECK"
	Savings AccountType = "SAVINGS"
	Salary  AccountType = "SALARY"
)

// Account represents a named store of funds owned by a single user.
// InitialBalance is the balance recorded before any tracked transaction
// history; it is fixed at creation and never mutated by transaction
// activity. The current balance is always derived (see utils/budgeting).
type Account struct {
	AccountID      string          `json:"accountID"`      // Primary Key (UUID)
	UserID         string          `json:"userID"`         // Owning user (JWT subject)
	Name           string          `json:"name"`           // User-defined display name
	AccountType    AccountType     `json:"accountType"`    // CHECK, SAVINGS or SALARY
	AccountNumber  string          `json:"accountNumber"`  // External account number (opaque)
	InitialBalance decimal.Decimal `json:"initialBalance"` // Baseline, not a running total
	CurrencyCode   string          `json:"currencyCode"`   // FK -> currencies.code
	AuditFields
}
