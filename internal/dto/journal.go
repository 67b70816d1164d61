package dto

import (
	"time"

	"github.com/treeledger/treeledger/internal/core/domain"
)

// JournalEntryResponse is one step of an account's balance history: the
// balance after the named transaction.
type JournalEntryResponse struct {
	TransactionID string          `json:"transactionID"`
	Date          time.Time       `json:"date"`
	Description   string          `json:"description"`
	Balance       []MoneyResponse `json:"balance"`
}

// JournalResponse is the serialized balance history of one account.
type JournalResponse struct {
	AccountID      string                 `json:"accountID"`
	InitialBalance []MoneyResponse        `json:"initialBalance"`
	Entries        []JournalEntryResponse `json:"entries"`
}

// ToJournalResponse converts a domain journal to its response DTO.
func ToJournalResponse(j *domain.Journal) JournalResponse {
	balances := j.Balances()
	entries := make([]JournalEntryResponse, len(j.Transactions))
	for i, txn := range j.Transactions {
		entries[i] = JournalEntryResponse{
			TransactionID: txn.TransactionID,
			Date:          txn.Date,
			Description:   txn.Description,
			Balance:       ToBalanceResponse(balances[i]),
		}
	}
	return JournalResponse{
		AccountID:      j.Account.AccountID,
		InitialBalance: ToBalanceResponse(j.InitialBalance),
		Entries:        entries,
	}
}
