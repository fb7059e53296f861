package model

// CategoryKind indicates whether a category classifies expenses or income.
type CategoryKind string

const (
	// CategoryKindExpense marks categories for money going out.
	CategoryKindExpense CategoryKind = "expense"
	// CategoryKindIncome marks categories for money coming in.
	CategoryKindIncome CategoryKind = "income"
)

// Reserved category ids. These are synthesized by the ledger engine and are
// never listed, edited, or deleted through category management.
const (
	// CategoryIDTransfer tags transactions that move money between accounts.
	CategoryIDTransfer = "transfer"
	// CategoryIDAdjustmentIn tags balance corrections that raise a balance.
	CategoryIDAdjustmentIn = "adjustment-in"
	// CategoryIDAdjustmentOut tags balance corrections that lower a balance.
	CategoryIDAdjustmentOut = "adjustment-out"
	// CategoryIDOverflow is the fixed "more" tile shown at the end of the
	// expense grid. It is a UI affordance, not a financial category.
	CategoryIDOverflow = "more"
)

// Category groups transactions for reporting. Kind is fixed at creation;
// edits may only touch name, icon and color.
type Category struct {
	ID    string       `json:"id"`
	Name  string       `json:"name"`
	Icon  string       `json:"icon"`
	Color string       `json:"color"`
	Kind  CategoryKind `json:"kind"`
}

// IsReservedCategoryID reports whether id names one of the synthetic
// categories owned by the engine.
func IsReservedCategoryID(id string) bool {
	switch id {
	case CategoryIDTransfer, CategoryIDAdjustmentIn, CategoryIDAdjustmentOut, CategoryIDOverflow:
		return true
	}
	return false
}
