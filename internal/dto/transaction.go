package dto

import (
	"time"

	"github.com/fintrackhq/fintrack-backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// DateLayout is the calendar-date format used on the wire.
const DateLayout = "2006-01-02"

// CreateTransactionRequest defines the data needed to record a
// transaction. Type accepts the upstream casing variants ("income",
// "Expenditure", ...) and is canonicalized by the service; Amount is
// parsed leniently (missing/malformed -> zero).
type CreateTransactionRequest struct {
	AccountID   string `json:"accountID" binding:"required"`
	Type        string `json:"type" binding:"required"`
	Category    string `json:"category" binding:"required"`
	Amount      string `json:"amount"`
	Description string `json:"description"`
	Date        string `json:"date" binding:"required,datetime=2006-01-02"`
}

// UpdateTransactionRequest defines the data allowed for updating a
// transaction. Pointers distinguish absent fields from zero values.
type UpdateTransactionRequest struct {
	Type        *string `json:"type"`
	Category    *string `json:"category"`
	Amount      *string `json:"amount"`
	Description *string `json:"description"`
	Date        *string `json:"date" binding:"omitempty,datetime=2006-01-02"`
}

// ListTransactionsParams defines query parameters for listing
// transactions. From/To are inclusive calendar dates.
type ListTransactionsParams struct {
	AccountID string `form:"accountID"`
	Type      string `form:"type"`
	From      string `form:"from" binding:"omitempty,datetime=2006-01-02"`
	To        string `form:"to" binding:"omitempty,datetime=2006-01-02"`
	Limit     int    `form:"limit,default=50" binding:"min=1,max=500"`
	Offset    int    `form:"offset,default=0" binding:"min=0"`
}

// TransactionResponse defines the data returned for a transaction.
type TransactionResponse struct {
	TransactionID string                 `json:"transactionID"`
	AccountID     string                 `json:"accountID"`
	Type          domain.TransactionType `json:"type"`
	Category      string                 `json:"category"`
	Amount        decimal.Decimal        `json:"amount"`
	CurrencyCode  string                 `json:"currencyCode"`
	Description   string                 `json:"description"`
	Date          string                 `json:"date"`
	CreatedAt     time.Time              `json:"createdAt"`
	LastUpdatedAt time.Time              `json:"lastUpdatedAt"`
}

// ListTransactionsResponse wraps the list of transactions.
type ListTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
}

// ToTransactionResponse converts a domain.Transaction to its DTO.
func ToTransactionResponse(txn *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		TransactionID: txn.TransactionID,
		AccountID:     txn.AccountID,
		Type:          txn.Type,
		Category:      txn.Category,
		Amount:        txn.Amount,
		CurrencyCode:  txn.CurrencyCode,
		Description:   txn.Description,
		Date:          txn.Date.Format(DateLayout),
		CreatedAt:     txn.CreatedAt,
		LastUpdatedAt: txn.LastUpdatedAt,
	}
}

// ToListTransactionsResponse converts a slice of transactions to the list DTO.
func ToListTransactionsResponse(txns []domain.Transaction) ListTransactionsResponse {
	res := ListTransactionsResponse{Transactions: make([]TransactionResponse, len(txns))}
	for i, txn := range txns {
		res.Transactions[i] = ToTransactionResponse(&txn)
	}
	return res
}
