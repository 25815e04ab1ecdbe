package repositories

import (
	"context"
	"time"

	"github.com/fintrackhq/fintrack-backend/internal/core/domain"
)

// TransactionListFilter narrows ListTransactions. Nil/zero values mean
// "no constraint"; date bounds are inclusive.
type TransactionListFilter struct {
	AccountID string
	Type      domain.TransactionType
	From      *time.Time
	To        *time.Time
	Limit     int
	Offset    int
}

// TransactionRepository defines the persistence operations for Transactions.
type TransactionRepository interface {
	SaveTransaction(ctx context.Context, txn domain.Transaction) error
	FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error)
	ListTransactions(ctx context.Context, userID string, filter TransactionListFilter) ([]domain.Transaction, error)
	ListTransactionsByAccount(ctx context.Context, userID string, accountID string) ([]domain.Transaction, error)
	UpdateTransaction(ctx context.Context, txn domain.Transaction) error
	DeleteTransaction(ctx context.Context, transactionID string, userID string) error
}
