package domain

// AccountType is a capability record describing what an account may do.
// Types are fixed at account creation and never change afterwards.
type AccountType struct {
	Name               string `json:"name"`
	ChildrenAllowed    bool   `json:"childrenAllowed"`
	MovementsAllowed   bool   `json:"movementsAllowed"`
	NewAccountsAllowed bool   `json:"newAccountsAllowed"`
}

// Built-in account types.
var (
	// TypeRoot is the single tree root: children only, no movements.
	TypeRoot = AccountType{Name: "ROOT", ChildrenAllowed: true, MovementsAllowed: false, NewAccountsAllowed: true}
	// TypeBranch groups other accounts and may carry movements of its own.
	TypeBranch = AccountType{Name: "BRANCH", ChildrenAllowed: true, MovementsAllowed: true, NewAccountsAllowed: true}
	// TypeLeaf carries movements only.
	TypeLeaf = AccountType{Name: "LEAF", ChildrenAllowed: false, MovementsAllowed: true, NewAccountsAllowed: false}
)

// AccountTypeByName resolves a built-in account type from its name.
func AccountTypeByName(name string) (AccountType, bool) {
	switch name {
	case TypeRoot.Name:
		return TypeRoot, true
	case TypeBranch.Name:
		return TypeBranch, true
	case TypeLeaf.Name:
		return TypeLeaf, true
	}
	return AccountType{}, false
}

// Account is a node in the account tree. The tree uses nested-set numbering:
// for any two accounts A and B, B descends from A iff
// A.Left <= B.Left && B.Right <= A.Right.
type Account struct {
	AccountID       string      `json:"accountID"` // Primary Key (UUID)
	Name            string      `json:"name"`      // Globally unique
	Type            AccountType `json:"type"`
	ParentAccountID *string     `json:"parentAccountID"` // nil only for the root
	Description     string      `json:"description"`
	Left            int         `json:"left"`
	Right           int         `json:"right"`
	Depth           int         `json:"depth"`
	AuditFields
}

// IsRoot reports whether the account is the tree root.
func (a Account) IsRoot() bool {
	return a.ParentAccountID == nil
}

// Contains reports whether other is a descendant of a (or a itself),
// using nested-set interval containment.
func (a Account) Contains(other Account) bool {
	return a.Left <= other.Left && other.Right <= a.Right
}
