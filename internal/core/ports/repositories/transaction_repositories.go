package repositories

import (
	"context"

	"github.com/treeledger/treeledger/internal/core/domain"
)

// TransactionReader defines read operations for transaction and movement data.
type TransactionReader interface {
	// FindTransactionByID retrieves a transaction with its movements and tags.
	FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error)

	// FindTransactionsByAccountID retrieves all transactions that have at
	// least one movement on the given account, with their full movement sets,
	// ordered by (date, transaction id).
	FindTransactionsByAccountID(ctx context.Context, accountID string) ([]domain.Transaction, error)

	// HasMovementsForAccount reports whether any movement references the account.
	HasMovementsForAccount(ctx context.Context, accountID string) (bool, error)
}

// TransactionWriter defines write operations for transaction data. All writes
// are atomic over the transaction row, its tags and its movements: a partial
// write is never observable.
type TransactionWriter interface {
	// SaveTransaction persists a new transaction together with its movements
	// and tags in one unit of work.
	SaveTransaction(ctx context.Context, txn domain.Transaction) error

	// UpdateTransaction updates the transaction row and replaces its entire
	// movement and tag sets in one unit of work.
	UpdateTransaction(ctx context.Context, txn domain.Transaction) error

	// DeleteTransaction removes the transaction, its movements and its tags.
	DeleteTransaction(ctx context.Context, transactionID string) error
}

// TransactionRepositoryFacade combines all transaction-related repository interfaces.
type TransactionRepositoryFacade interface {
	TransactionReader
	TransactionWriter
}
