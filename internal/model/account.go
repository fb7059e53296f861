package model

// AccountKind classifies an account for net-wealth reporting.
type AccountKind string

const (
	// AccountKindRegular is an everyday spending account.
	AccountKindRegular AccountKind = "regular"
	// AccountKindSavings is a savings account; counts toward assets.
	AccountKindSavings AccountKind = "savings"
	// AccountKindDebt is a liability. Its balance is stored signed like any
	// other account but presented as a magnitude.
	AccountKindDebt AccountKind = "debt"
)

// Account holds money. Balance is the current signed amount; every recorded
// transaction moves it by exactly the transaction amount.
type Account struct {
	ID      string      `json:"id"`
	Name    string      `json:"name"`
	Balance Money       `json:"balance"`
	Icon    string      `json:"icon"`
	Color   string      `json:"color"`
	Kind    AccountKind `json:"kind"`
}
