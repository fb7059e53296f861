package ledger_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moneta-app/moneta/internal/common"
	"github.com/moneta-app/moneta/internal/ledger"
	"github.com/moneta-app/moneta/internal/model"
	"github.com/moneta-app/moneta/internal/testutil"
)

func TestRecordExpenseAndIncome(t *testing.T) {
	tests := []struct {
		name        string
		txType      model.TransactionType
		categoryID  string
		wantBalance int64
	}{
		{name: "expense debits the account", txType: model.TypeExpense, categoryID: "groceries", wantBalance: 800_00},
		{name: "income credits the account", txType: model.TypeIncome, categoryID: "salary", wantBalance: 1200_00},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			store, engine := testutil.NewLedger(t).
				WithAccount("a", "Card", 1000_00).
				WithAccount("b", "Cash", 0).
				WithCategory("groceries", "Groceries", model.CategoryKindExpense).
				WithCategory("salary", "Salary", model.CategoryKindIncome).
				Build()

			tx, err := engine.RecordTransaction(ctx, tt.txType, model.Money{Cents: 200_00}, "a", tt.categoryID, "", "")
			require.NoError(t, err)

			assert.Equal(t, tt.txType, tx.Type)
			assert.Equal(t, int64(200_00), tx.Amount.Cents)
			assert.Equal(t, tt.categoryID, tx.CategoryID)

			a, _ := store.AccountByID("a")
			assert.Equal(t, tt.wantBalance, a.Balance.Cents, "exactly one balance changes by exactly the amount")

			b, _ := store.AccountByID("b")
			assert.Equal(t, int64(0), b.Balance.Cents, "other accounts stay untouched")

			require.Len(t, store.Transactions(nil), 1)
		})
	}
}

func TestRecordTransferMovesBothBalancesTogether(t *testing.T) {
	ctx := context.Background()
	store, engine := testutil.NewLedger(t).
		WithAccount("a", "Card", 1000_00).
		WithAccount("b", "Cash", 50_00).
		Build()

	tx, err := engine.RecordTransaction(ctx, model.TypeTransfer, model.Money{Cents: 300_00}, "a", "", "b", "")
	require.NoError(t, err)

	assert.Equal(t, model.CategoryIDTransfer, tx.CategoryID)
	assert.Equal(t, "b", tx.ToAccountID)

	a, _ := store.AccountByID("a")
	b, _ := store.AccountByID("b")
	assert.Equal(t, int64(700_00), a.Balance.Cents)
	assert.Equal(t, int64(350_00), b.Balance.Cents)
}

func TestRecordTransactionRejections(t *testing.T) {
	tests := []struct {
		name       string
		txType     model.TransactionType
		cents      int64
		accountID  string
		categoryID string
		toID       string
		wantErr    error
	}{
		{name: "zero amount", txType: model.TypeExpense, cents: 0, accountID: "a", categoryID: "groceries", wantErr: common.ErrInvalidAmount},
		{name: "negative amount", txType: model.TypeExpense, cents: -100, accountID: "a", categoryID: "groceries", wantErr: common.ErrInvalidAmount},
		{name: "unknown account", txType: model.TypeExpense, cents: 100, accountID: "ghost", categoryID: "groceries", wantErr: common.ErrNotFound},
		{name: "unknown category", txType: model.TypeExpense, cents: 100, accountID: "a", categoryID: "ghost", wantErr: common.ErrNotFound},
		{name: "expense with income category", txType: model.TypeExpense, cents: 100, accountID: "a", categoryID: "salary", wantErr: common.ErrCategoryKindMismatch},
		{name: "income with expense category", txType: model.TypeIncome, cents: 100, accountID: "a", categoryID: "groceries", wantErr: common.ErrCategoryKindMismatch},
		{name: "transfer without destination", txType: model.TypeTransfer, cents: 100, accountID: "a", wantErr: common.ErrInvalidTransfer},
		{name: "transfer to itself", txType: model.TypeTransfer, cents: 100, accountID: "a", toID: "a", wantErr: common.ErrInvalidTransfer},
		{name: "transfer to unknown account", txType: model.TypeTransfer, cents: 100, accountID: "a", toID: "ghost", wantErr: common.ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			store, engine := testutil.NewLedger(t).
				WithAccount("a", "Card", 1000_00).
				WithAccount("b", "Cash", 0).
				WithCategory("groceries", "Groceries", model.CategoryKindExpense).
				WithCategory("salary", "Salary", model.CategoryKindIncome).
				Build()

			_, err := engine.RecordTransaction(ctx, tt.txType, model.Money{Cents: tt.cents}, tt.accountID, tt.categoryID, tt.toID, "")
			require.ErrorIs(t, err, tt.wantErr)

			// A rejected operation commits nothing.
			a, _ := store.AccountByID("a")
			b, _ := store.AccountByID("b")
			assert.Equal(t, int64(1000_00), a.Balance.Cents)
			assert.Equal(t, int64(0), b.Balance.Cents)
			assert.Empty(t, store.Transactions(nil))
		})
	}
}

func TestEditAccountCreate(t *testing.T) {
	ctx := context.Background()
	store, engine := testutil.NewLedger(t).
		WithAccount("a", "Card", 0).
		Build()

	account, err := engine.EditAccount(ctx, ledger.AccountEdit{
		Name:    "Vacation fund",
		Balance: model.Money{Cents: 2500_00},
		Kind:    model.AccountKindSavings,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, account.ID)
	assert.Equal(t, int64(2500_00), account.Balance.Cents)

	assert.Empty(t, store.Transactions(nil), "creating an account never generates a transaction")

	_, err = engine.EditAccount(ctx, ledger.AccountEdit{Name: "   "})
	require.ErrorIs(t, err, common.ErrMissingName)
}

func TestEditAccountWithoutBalanceChange(t *testing.T) {
	ctx := context.Background()
	store, engine := testutil.NewLedger(t).
		WithAccount("a", "Card", 500_00).
		Build()

	account, err := engine.EditAccount(ctx, ledger.AccountEdit{
		ID:      "a",
		Name:    "Debit card",
		Balance: model.Money{Cents: 500_00},
		Icon:    "CreditCard",
		Kind:    model.AccountKindRegular,
	})
	require.NoError(t, err)
	assert.Equal(t, "Debit card", account.Name)
	assert.Empty(t, store.Transactions(nil))
}

func TestEditAccountSuspendsOnBalanceChange(t *testing.T) {
	ctx := context.Background()
	store, engine := testutil.NewLedger(t).
		WithAccount("a", "Card", 500_00).
		Build()

	_, err := engine.EditAccount(ctx, ledger.AccountEdit{
		ID:      "a",
		Name:    "Card",
		Balance: model.Money{Cents: 600_00},
		Kind:    model.AccountKindRegular,
	})
	rr, ok := common.IsReconciliationRequired(err)
	require.True(t, ok, "balance change must signal reconciliation")
	assert.Equal(t, "a", rr.AccountID)
	assert.Equal(t, int64(100_00), rr.Diff.Cents)

	// Nothing mutated while suspended.
	a, _ := store.AccountByID("a")
	assert.Equal(t, int64(500_00), a.Balance.Cents)
	assert.Empty(t, store.Transactions(nil))
}

func TestEditAccountReplaceBalanceDirectly(t *testing.T) {
	ctx := context.Background()
	store, engine := testutil.NewLedger(t).
		WithAccount("a", "Card", 500_00).
		Build()

	account, err := engine.EditAccount(ctx, ledger.AccountEdit{
		ID:             "a",
		Name:           "Card",
		Balance:        model.Money{Cents: 600_00},
		Kind:           model.AccountKindRegular,
		ReplaceBalance: true,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(600_00), account.Balance.Cents)
	assert.Empty(t, store.Transactions(nil))

	a, _ := store.AccountByID("a")
	assert.Equal(t, int64(600_00), a.Balance.Cents)
}

func TestReconcileBalance(t *testing.T) {
	tests := []struct {
		name           string
		requestedCents int64
		mode           ledger.ReconcileMode
		wantTxCount    int
		wantCategoryID string
		wantAmount     int64
	}{
		{
			name:           "replace writes balance and no transaction",
			requestedCents: 600_00,
			mode:           ledger.ReconcileReplace,
			wantTxCount:    0,
		},
		{
			name:           "adjustment up records income-direction correction",
			requestedCents: 600_00,
			mode:           ledger.ReconcileRecordAdjustment,
			wantTxCount:    1,
			wantCategoryID: model.CategoryIDAdjustmentIn,
			wantAmount:     100_00,
		},
		{
			name:           "adjustment down records expense-direction correction",
			requestedCents: 320_00,
			mode:           ledger.ReconcileRecordAdjustment,
			wantTxCount:    1,
			wantCategoryID: model.CategoryIDAdjustmentOut,
			wantAmount:     180_00,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			store, engine := testutil.NewLedger(t).
				WithAccount("a", "Card", 500_00).
				Build()

			_, err := engine.EditAccount(ctx, ledger.AccountEdit{
				ID:      "a",
				Name:    "Card",
				Balance: model.Money{Cents: tt.requestedCents},
				Kind:    model.AccountKindRegular,
			})
			_, ok := common.IsReconciliationRequired(err)
			require.True(t, ok)

			account, err := engine.ReconcileBalance(ctx, "a", tt.mode)
			require.NoError(t, err)
			assert.Equal(t, tt.requestedCents, account.Balance.Cents, "stored balance always equals the requested value")

			txs := store.Transactions(nil)
			require.Len(t, txs, tt.wantTxCount)
			if tt.wantTxCount > 0 {
				tx := txs[0]
				assert.Equal(t, model.TypeAdjustment, tx.Type)
				assert.Equal(t, tt.wantCategoryID, tx.CategoryID)
				assert.Equal(t, tt.wantAmount, tx.Amount.Cents)
				assert.Equal(t, "balance correction", tx.Note)
				assert.Equal(t, "a", tx.AccountID)
			}

			// Both modes are terminal: a second reconcile finds nothing pending.
			_, err = engine.ReconcileBalance(ctx, "a", tt.mode)
			require.ErrorIs(t, err, common.ErrNotFound)
		})
	}
}

func TestCancelReconciliation(t *testing.T) {
	ctx := context.Background()
	store, engine := testutil.NewLedger(t).
		WithAccount("a", "Card", 500_00).
		Build()

	_, err := engine.EditAccount(ctx, ledger.AccountEdit{
		ID:      "a",
		Name:    "Renamed",
		Balance: model.Money{Cents: 999_99},
		Kind:    model.AccountKindRegular,
	})
	_, ok := common.IsReconciliationRequired(err)
	require.True(t, ok)

	engine.CancelReconciliation("a")

	a, _ := store.AccountByID("a")
	assert.Equal(t, "Card", a.Name, "cancelled edit leaves the account unmodified")
	assert.Equal(t, int64(500_00), a.Balance.Cents)

	_, err = engine.ReconcileBalance(ctx, "a", ledger.ReconcileReplace)
	require.ErrorIs(t, err, common.ErrNotFound)
}

func TestDeleteAccountKeepsHistory(t *testing.T) {
	ctx := context.Background()
	store, engine := testutil.NewLedger(t).
		WithAccount("a", "Card", 1000_00).
		WithAccount("b", "Cash", 0).
		WithCategory("groceries", "Groceries", model.CategoryKindExpense).
		Build()

	_, err := engine.RecordTransaction(ctx, model.TypeExpense, model.Money{Cents: 50_00}, "a", "groceries", "", "")
	require.NoError(t, err)

	require.NoError(t, engine.DeleteAccount(ctx, "a"))

	_, ok := store.AccountByID("a")
	assert.False(t, ok)
	txs := store.Transactions(nil)
	require.Len(t, txs, 1, "historical transactions survive account deletion")
	assert.Equal(t, "a", txs[0].AccountID, "the orphaned reference is retained unchanged")
}

func TestDeleteLastAccountFails(t *testing.T) {
	ctx := context.Background()
	store, engine := testutil.NewLedger(t).
		WithAccount("a", "Card", 1000_00).
		Build()

	err := engine.DeleteAccount(ctx, "a")
	require.ErrorIs(t, err, common.ErrLastAccount)
	assert.Len(t, store.Accounts(nil), 1)
}

func TestSaveCategory(t *testing.T) {
	ctx := context.Background()
	store, engine := testutil.NewLedger(t).
		WithAccount("a", "Card", 0).
		WithCategory("groceries", "Groceries", model.CategoryKindExpense).
		Build()

	created, err := engine.SaveCategory(ctx, ledger.CategoryEdit{
		Name: "Utilities",
		Kind: model.CategoryKindExpense,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)

	updated, err := engine.SaveCategory(ctx, ledger.CategoryEdit{
		ID:   created.ID,
		Name: "Bills",
		Kind: model.CategoryKindIncome, // must be ignored
	})
	require.NoError(t, err)
	assert.Equal(t, "Bills", updated.Name)
	assert.Equal(t, model.CategoryKindExpense, updated.Kind, "kind is immutable after creation")

	_, err = engine.SaveCategory(ctx, ledger.CategoryEdit{ID: created.ID, Name: ""})
	require.ErrorIs(t, err, common.ErrMissingName)

	got, ok := store.CategoryByID(created.ID)
	require.True(t, ok)
	assert.Equal(t, "Bills", got.Name)
}

func TestReservedCategoriesAreProtected(t *testing.T) {
	ctx := context.Background()
	store, engine := testutil.NewLedger(t).
		WithAccount("a", "Card", 0).
		WithCategory(model.CategoryIDOverflow, "More...", model.CategoryKindExpense).
		WithCategory("groceries", "Groceries", model.CategoryKindExpense).
		Build()

	_, err := engine.SaveCategory(ctx, ledger.CategoryEdit{ID: model.CategoryIDOverflow, Name: "Hijacked"})
	require.ErrorIs(t, err, common.ErrReservedCategory)

	err = engine.DeleteCategory(ctx, model.CategoryIDOverflow)
	require.ErrorIs(t, err, common.ErrReservedCategory)

	err = engine.DeleteCategory(ctx, model.CategoryIDTransfer)
	require.ErrorIs(t, err, common.ErrReservedCategory)

	editable := engine.EditableCategories(model.CategoryKindExpense)
	require.Len(t, editable, 1, "overflow tile is excluded from the editable list")
	assert.Equal(t, "groceries", editable[0].ID)

	_, ok := store.CategoryByID(model.CategoryIDOverflow)
	assert.True(t, ok, "the tile itself is still stored")
}

func TestEverySuccessfulMutationPersists(t *testing.T) {
	ctx := context.Background()
	saver := &testutil.RecordingSaver{}
	_, engine := testutil.NewLedger(t).
		WithAccount("a", "Card", 1000_00).
		WithAccount("b", "Cash", 0).
		WithCategory("groceries", "Groceries", model.CategoryKindExpense).
		WithSaver(saver).
		Build()

	_, err := engine.RecordTransaction(ctx, model.TypeExpense, model.Money{Cents: 100}, "a", "groceries", "", "")
	require.NoError(t, err)
	assert.Equal(t, 1, saver.Count())

	// A suspended edit saves nothing; resolving it saves once.
	_, err = engine.EditAccount(ctx, ledger.AccountEdit{ID: "a", Name: "Card", Balance: model.Money{Cents: 42}, Kind: model.AccountKindRegular})
	_, ok := common.IsReconciliationRequired(err)
	require.True(t, ok)
	assert.Equal(t, 1, saver.Count())

	_, err = engine.ReconcileBalance(ctx, "a", ledger.ReconcileReplace)
	require.NoError(t, err)
	assert.Equal(t, 2, saver.Count())

	// Rejected operations save nothing.
	_, err = engine.RecordTransaction(ctx, model.TypeExpense, model.Money{Cents: 100}, "ghost", "groceries", "", "")
	require.Error(t, err)
	assert.Equal(t, 2, saver.Count())
}

func TestPersistenceFailureIsSwallowed(t *testing.T) {
	ctx := context.Background()
	saver := &testutil.RecordingSaver{Err: errors.New("disk full")}
	store, engine := testutil.NewLedger(t).
		WithAccount("a", "Card", 1000_00).
		WithCategory("groceries", "Groceries", model.CategoryKindExpense).
		WithSaver(saver).
		Build()

	_, err := engine.RecordTransaction(ctx, model.TypeExpense, model.Money{Cents: 100_00}, "a", "groceries", "", "")
	require.NoError(t, err, "a failing saver never surfaces to the caller")

	a, _ := store.AccountByID("a")
	assert.Equal(t, int64(900_00), a.Balance.Cents, "in-memory state stays authoritative")
}

// The end-to-end scenario from the product notes: spend, transfer, then fix
// the balance by hand and keep history consistent.
func TestLedgerScenario(t *testing.T) {
	ctx := context.Background()
	store, engine := testutil.NewLedger(t).
		WithAccount("A", "Card", 1000_00).
		WithAccount("B", "Cash", 0).
		WithCategory("groceries", "Groceries", model.CategoryKindExpense).
		Build()

	_, err := engine.RecordTransaction(ctx, model.TypeExpense, model.Money{Cents: 200_00}, "A", "groceries", "", "")
	require.NoError(t, err)
	a, _ := store.AccountByID("A")
	require.Equal(t, int64(800_00), a.Balance.Cents)

	_, err = engine.RecordTransaction(ctx, model.TypeTransfer, model.Money{Cents: 300_00}, "A", "", "B", "")
	require.NoError(t, err)
	a, _ = store.AccountByID("A")
	b, _ := store.AccountByID("B")
	require.Equal(t, int64(500_00), a.Balance.Cents)
	require.Equal(t, int64(300_00), b.Balance.Cents)

	_, err = engine.EditAccount(ctx, ledger.AccountEdit{
		ID:      "A",
		Name:    "Card",
		Balance: model.Money{Cents: 600_00},
		Kind:    model.AccountKindRegular,
	})
	rr, ok := common.IsReconciliationRequired(err)
	require.True(t, ok)
	require.Equal(t, int64(100_00), rr.Diff.Cents)

	a, err = engine.ReconcileBalance(ctx, "A", ledger.ReconcileRecordAdjustment)
	require.NoError(t, err)
	require.Equal(t, int64(600_00), a.Balance.Cents)

	txs := store.Transactions(nil)
	require.Len(t, txs, 3)
	adj := txs[0]
	require.Equal(t, model.TypeAdjustment, adj.Type)
	require.Equal(t, int64(100_00), adj.Amount.Cents)
	require.Equal(t, model.CategoryIDAdjustmentIn, adj.CategoryID, "positive diff carries income direction")
}
