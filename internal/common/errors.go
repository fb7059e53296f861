// Package common provides shared utilities and types used across the application.
package common

import (
	"errors"
	"fmt"

	"github.com/moneta-app/moneta/internal/model"
)

// Ledger errors. Every failure is a rejected operation the caller can retry
// with corrected input; none of these is fatal.
var (
	// ErrNotFound means a referenced entity id does not exist.
	ErrNotFound = errors.New("not found")
	// ErrDuplicateID means an insert reused an existing id.
	ErrDuplicateID = errors.New("duplicate id")
	// ErrInvalidAmount means an amount failed to parse or was not positive.
	ErrInvalidAmount = errors.New("invalid amount")
	// ErrInvalidTransfer means a transfer was missing its destination or
	// named the same account on both sides.
	ErrInvalidTransfer = errors.New("invalid transfer")
	// ErrCategoryKindMismatch means the category's kind does not match the
	// transaction type (expense category for expenses, income for income).
	ErrCategoryKindMismatch = errors.New("category kind mismatch")
	// ErrMissingName means a name was empty where one is required.
	ErrMissingName = errors.New("missing name")
	// ErrLastAccount means the operation would remove the sole remaining
	// account. The ledger always keeps at least one.
	ErrLastAccount = errors.New("cannot remove the last account")
	// ErrReservedCategory means the target is one of the synthetic
	// categories the engine owns (transfer, adjustments, the overflow tile).
	ErrReservedCategory = errors.New("reserved category")
)

// ReconciliationRequiredError signals that an account edit changed the
// balance and the caller has not yet chosen what to do about it. It is a
// control-flow signal, not a failure: nothing has been mutated, and the edit
// stays suspended until ReconcileBalance or CancelReconciliation resolves it.
type ReconciliationRequiredError struct {
	AccountID string
	Diff      model.Money // requested minus current
}

func (e *ReconciliationRequiredError) Error() string {
	return fmt.Sprintf("account %s: balance change of %s needs reconciliation", e.AccountID, e.Diff)
}

// IsReconciliationRequired unwraps err into the reconciliation signal, if
// that is what it is.
func IsReconciliationRequired(err error) (*ReconciliationRequiredError, bool) {
	var rr *ReconciliationRequiredError
	if errors.As(err, &rr) {
		return rr, true
	}
	return nil, false
}
