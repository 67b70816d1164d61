package domain

import "time"

// TransactionTag is a free-form (name, value) annotation on a transaction.
type TransactionTag struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Transaction is an atomic, zero-sum group of movements dated at a single
// instant. Movements only exist as part of a transaction; updates replace
// the whole movement set and re-validate it.
type Transaction struct {
	TransactionID string           `json:"transactionID"` // Primary Key (UUID)
	Description   string           `json:"description"`
	Date          time.Time        `json:"date"`
	Reference     string           `json:"reference"` // Optional external reference
	Tags          []TransactionTag `json:"tags"`
	Movements     []Movement       `json:"movements"`
	AuditFields
}

// MovementsForAccount returns the movements of this transaction that touch
// the given account.
func (t Transaction) MovementsForAccount(accountID string) []Movement {
	var result []Movement
	for _, m := range t.Movements {
		if m.AccountID == accountID {
			result = append(result, m)
		}
	}
	return result
}

// Movement is a single account-scoped credit or debit of Money. The amount is
// signed: credits are negative, debits positive.
type Movement struct {
	MovementID    string `json:"movementID"` // Primary Key (UUID)
	TransactionID string `json:"transactionID"`
	AccountID     string `json:"accountID"`
	Money         Money  `json:"money"`
	Comment       string `json:"comment"`
	AuditFields
}

// MovementSpec is the transient input used to create or replace a
// transaction's movements. It is never persisted on its own.
type MovementSpec struct {
	AccountID string `json:"accountID"`
	Money     Money  `json:"money"`
	Comment   string `json:"comment"`
}
