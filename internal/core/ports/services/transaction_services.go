package services

import (
	"context"

	"github.com/treeledger/treeledger/internal/core/domain"
	"github.com/treeledger/treeledger/internal/dto"
)

// TransactionSvcFacade defines ledger mutation operations. Every write is
// validated (zero-sum at the transaction date, at least two distinct
// accounts, movements allowed on every account) and persisted atomically.
type TransactionSvcFacade interface {
	// CreateTransaction validates the movement specs and persists the
	// transaction with its movements as one unit.
	CreateTransaction(ctx context.Context, req dto.CreateTransactionRequest) (*domain.Transaction, error)

	// GetTransactionByID retrieves a transaction with its movements and tags.
	GetTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error)

	// UpdateTransaction replaces the transaction's fields and full movement
	// set, re-running validation against the new set and date.
	UpdateTransaction(ctx context.Context, transactionID string, req dto.UpdateTransactionRequest) (*domain.Transaction, error)

	// DeleteTransaction removes a transaction and all its movements.
	DeleteTransaction(ctx context.Context, transactionID string) error
}
