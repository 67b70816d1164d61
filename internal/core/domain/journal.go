package domain

import "sort"

// Journal is the derived balance history of one account: the ordered sequence
// of balances after each transaction touching the account. It is recomputed
// on demand and never persisted.
type Journal struct {
	Account        Account       `json:"account"`
	InitialBalance Balance       `json:"initialBalance"`
	Transactions   []Transaction `json:"transactions"`
}

// NewJournal builds a journal view, ordering transactions by (date, id).
func NewJournal(account Account, initialBalance Balance, transactions []Transaction) Journal {
	sorted := make([]Transaction, len(transactions))
	copy(sorted, transactions)
	sort.Slice(sorted, func(i, j int) bool {
		if !sorted[i].Date.Equal(sorted[j].Date) {
			return sorted[i].Date.Before(sorted[j].Date)
		}
		return sorted[i].TransactionID < sorted[j].TransactionID
	})
	return Journal{Account: account, InitialBalance: initialBalance, Transactions: sorted}
}

// Balances returns one Balance per transaction: the running total of the
// account's movements after that transaction. The fold seeds from
// InitialBalance, so the first entry already includes it.
func (j Journal) Balances() []Balance {
	balances := make([]Balance, 0, len(j.Transactions))
	running := j.InitialBalance
	for _, txn := range j.Transactions {
		for _, m := range txn.MovementsForAccount(j.Account.AccountID) {
			running = running.AddMoney(m.Money)
		}
		balances = append(balances, running)
	}
	return balances
}

// BalanceBefore returns the account balance immediately before the given
// transaction: InitialBalance plus all transactions strictly ordered earlier.
func (j Journal) BalanceBefore(txn Transaction) Balance {
	running := j.InitialBalance
	for _, t := range j.Transactions {
		before := t.Date.Before(txn.Date) ||
			(t.Date.Equal(txn.Date) && t.TransactionID < txn.TransactionID)
		if !before {
			break
		}
		for _, m := range t.MovementsForAccount(j.Account.AccountID) {
			running = running.AddMoney(m.Money)
		}
	}
	return running
}
