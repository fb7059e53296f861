package storage

import "github.com/moneta-app/moneta/internal/model"

// SeedSnapshot is the starter state for a fresh ledger: a standard set of
// expense and income categories, the overflow tile pinned to the end of the
// expense grid, and two empty regular accounts.
func SeedSnapshot() model.Snapshot {
	return model.Snapshot{
		Version: model.SnapshotVersion,
		Accounts: []model.Account{
			{ID: "acc-card", Name: "Card", Balance: model.Money{}, Icon: "CreditCard", Color: "#6366f1", Kind: model.AccountKindRegular},
			{ID: "acc-cash", Name: "Cash", Balance: model.Money{}, Icon: "Wallet", Color: "#10b981", Kind: model.AccountKindRegular},
		},
		Categories: []model.Category{
			{ID: "cat-groceries", Name: "Groceries", Icon: "ShoppingBasket", Color: "#3b82f6", Kind: model.CategoryKindExpense},
			{ID: "cat-transport", Name: "Transport", Icon: "Bus", Color: "#f59e0b", Kind: model.CategoryKindExpense},
			{ID: "cat-leisure", Name: "Leisure", Icon: "Ticket", Color: "#ec4899", Kind: model.CategoryKindExpense},
			{ID: "cat-restaurants", Name: "Restaurants", Icon: "Utensils", Color: "#6366f1", Kind: model.CategoryKindExpense},
			{ID: "cat-health", Name: "Health", Icon: "Heart", Color: "#10b981", Kind: model.CategoryKindExpense},
			{ID: "cat-gifts", Name: "Gifts", Icon: "Gift", Color: "#ef4444", Kind: model.CategoryKindExpense},
			{ID: "cat-family", Name: "Family", Icon: "Smile", Color: "#a855f7", Kind: model.CategoryKindExpense},
			{ID: "cat-shopping", Name: "Shopping", Icon: "ShoppingBag", Color: "#94a3b8", Kind: model.CategoryKindExpense},
			{ID: "cat-pets", Name: "Pets", Icon: "PawPrint", Color: "#f97316", Kind: model.CategoryKindExpense},
			{ID: "cat-education", Name: "Education", Icon: "GraduationCap", Color: "#94a3b8", Kind: model.CategoryKindExpense},
			{ID: "cat-travel", Name: "Travel", Icon: "Plane", Color: "#14b8a6", Kind: model.CategoryKindExpense},
			{ID: model.CategoryIDOverflow, Name: "More...", Icon: "ChevronDown", Color: "#94a3b8", Kind: model.CategoryKindExpense},
			{ID: "cat-salary", Name: "Salary", Icon: "Wallet", Color: "#22c55e", Kind: model.CategoryKindIncome},
			{ID: "cat-bonus", Name: "Bonus", Icon: "TrendingUp", Color: "#0ea5e9", Kind: model.CategoryKindIncome},
		},
		Transactions: []model.Transaction{},
	}
}
