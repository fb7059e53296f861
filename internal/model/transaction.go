package model

import (
	"time"

	"github.com/google/uuid"
)

// TransactionType encodes the direction of a money movement. Amounts are
// always positive; the type alone decides which balances move and how.
type TransactionType string

const (
	// TypeExpense removes Amount from the account.
	TypeExpense TransactionType = "expense"
	// TypeIncome adds Amount to the account.
	TypeIncome TransactionType = "income"
	// TypeTransfer moves Amount from AccountID to ToAccountID.
	TypeTransfer TransactionType = "transfer"
	// TypeAdjustment documents a manual balance correction. Its direction is
	// carried by the adjustment category, never by the amount's sign.
	TypeAdjustment TransactionType = "adjustment"
)

// Transaction is a single recorded money movement.
type Transaction struct {
	ID          string          `json:"id"`
	Amount      Money           `json:"amount"`
	CategoryID  string          `json:"categoryId"`
	AccountID   string          `json:"accountId"`
	ToAccountID string          `json:"toAccountId,omitempty"`
	Date        time.Time       `json:"date"`
	Note        string          `json:"note,omitempty"`
	Type        TransactionType `json:"type"`
}

// NewID returns a collision-resistant entity id.
func NewID() string {
	return uuid.NewString()
}
