package services

import (
	"context"

	"github.com/treeledger/treeledger/internal/core/domain"
)

// JournalSvcFacade builds per-account balance histories.
type JournalSvcFacade interface {
	// GetJournal returns the ordered balance history of one account,
	// recomputed on demand from its transactions.
	GetJournal(ctx context.Context, accountID string) (*domain.Journal, error)
}
