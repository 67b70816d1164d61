package services

import "errors"

// Validation failures the ledger reports to callers. All are recoverable:
// handlers map them to client errors with enough detail to correct the input.
var (
	ErrUnbalancedMovements        = errors.New("transaction movements do not sum to zero at the transaction date")
	ErrSingleAccountTransaction   = errors.New("transaction must involve at least two distinct accounts")
	ErrAccountMovementsNotAllowed = errors.New("account type does not allow movements")
	ErrParentChildNotAllowed      = errors.New("parent account type does not allow child accounts")
	ErrNullParent                 = errors.New("account requires a parent")
	ErrAccountHasChildren         = errors.New("account still has child accounts")
	ErrAccountHasMovements        = errors.New("account still has movements")
	ErrUnknownCurrency            = errors.New("currency has no known price for conversion")
	ErrNotEnoughData              = errors.New("no price at or before the requested date")
	ErrAccountNotFound            = errors.New("account not found")
)
