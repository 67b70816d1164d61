package domain

import (
	"fmt"
	"sort"
)

// AccountTree is an in-memory index over a set of accounts with nested-set
// bounds. It answers subtree queries in O(n) scans with O(1) containment
// tests, and caches descendant lookups per instance.
//
// The tree is a read view: it must be rebuilt (or Invalidate called on a
// fresh load) after any structural mutation of the underlying accounts.
type AccountTree struct {
	byID     map[string]Account
	accounts []Account

	descendants map[string][]string
}

// NewAccountTree builds a tree index from a snapshot of accounts.
func NewAccountTree(accounts []Account) *AccountTree {
	sorted := make([]Account, len(accounts))
	copy(sorted, accounts)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Left < sorted[j].Left })

	byID := make(map[string]Account, len(sorted))
	for _, a := range sorted {
		byID[a.AccountID] = a
	}
	return &AccountTree{
		byID:        byID,
		accounts:    sorted,
		descendants: map[string][]string{},
	}
}

// Get returns the account with the given ID.
func (t *AccountTree) Get(accountID string) (Account, bool) {
	a, ok := t.byID[accountID]
	return a, ok
}

// Accounts returns all indexed accounts ordered by their left bound.
func (t *AccountTree) Accounts() []Account {
	return t.accounts
}

// DescendantIDs returns the IDs of all accounts whose bounds are contained in
// the given account's bounds, optionally including the account itself.
// Results are cached per tree instance; Invalidate drops the cache.
func (t *AccountTree) DescendantIDs(accountID string, includeSelf bool) ([]string, error) {
	root, ok := t.byID[accountID]
	if !ok {
		return nil, fmt.Errorf("account %s not in tree", accountID)
	}

	ids, cached := t.descendants[accountID]
	if !cached {
		ids = make([]string, 0)
		for _, a := range t.accounts {
			if root.Contains(a) {
				ids = append(ids, a.AccountID)
			}
		}
		t.descendants[accountID] = ids
	}

	if includeSelf {
		return ids, nil
	}
	filtered := make([]string, 0, len(ids))
	for _, id := range ids {
		if id != accountID {
			filtered = append(filtered, id)
		}
	}
	return filtered, nil
}

// Invalidate drops all cached descendant lookups.
func (t *AccountTree) Invalidate() {
	t.descendants = map[string][]string{}
}
