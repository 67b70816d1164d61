package services

import (
	"context"
	"fmt"

	"github.com/treeledger/treeledger/internal/core/domain"
	portsrepo "github.com/treeledger/treeledger/internal/core/ports/repositories"
	portssvc "github.com/treeledger/treeledger/internal/core/ports/services"
)

// journalService builds per-account balance histories on demand. The running
// fold seeds from the journal's initial balance, so the first entry already
// includes it.
type journalService struct {
	BaseService
	txnReader  portsrepo.TransactionReader
	accountSvc portssvc.AccountReaderSvc
}

// NewJournalService creates a new JournalService.
func NewJournalService(txnReader portsrepo.TransactionReader, accountSvc portssvc.AccountReaderSvc) portssvc.JournalSvcFacade {
	return &journalService{
		txnReader:  txnReader,
		accountSvc: accountSvc,
	}
}

var _ portssvc.JournalSvcFacade = (*journalService)(nil)

// GetJournal returns the ordered balance history of one account.
func (s *journalService) GetJournal(ctx context.Context, accountID string) (*domain.Journal, error) {
	account, err := s.accountSvc.GetAccountByID(ctx, accountID)
	if err != nil {
		return nil, err
	}

	transactions, err := s.txnReader.FindTransactionsByAccountID(ctx, accountID)
	if err != nil {
		s.LogError(ctx, err, "Failed to fetch transactions for journal", "account_id", accountID)
		return nil, fmt.Errorf("failed to fetch transactions for account %s: %w", accountID, err)
	}

	journal := domain.NewJournal(*account, domain.NewBalance(), transactions)

	s.LogDebug(ctx, "Journal built", "account_id", accountID, "transactions", len(transactions))
	return &journal, nil
}
