package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moneta-app/moneta/internal/common"
	"github.com/moneta-app/moneta/internal/model"
)

func TestStoreAccountIDUniqueness(t *testing.T) {
	store := NewStore()

	require.NoError(t, store.InsertAccount(model.Account{ID: "a1", Name: "Card"}))
	err := store.InsertAccount(model.Account{ID: "a1", Name: "Other"})
	require.ErrorIs(t, err, common.ErrDuplicateID)
	assert.Len(t, store.Accounts(nil), 1)
}

func TestStoreLastAccountDeletion(t *testing.T) {
	store := NewStore()
	require.NoError(t, store.InsertAccount(model.Account{ID: "a1", Name: "Card"}))

	err := store.DeleteAccount("a1")
	require.ErrorIs(t, err, common.ErrLastAccount)
	assert.Len(t, store.Accounts(nil), 1, "store must be unchanged after a rejected delete")

	require.NoError(t, store.InsertAccount(model.Account{ID: "a2", Name: "Cash"}))
	require.NoError(t, store.DeleteAccount("a1"))
	assert.Len(t, store.Accounts(nil), 1)
}

func TestStoreTransactionsNewestFirst(t *testing.T) {
	store := NewStore()

	require.NoError(t, store.PrependTransaction(model.Transaction{ID: "t1"}))
	require.NoError(t, store.PrependTransaction(model.Transaction{ID: "t2"}))
	require.NoError(t, store.PrependTransaction(model.Transaction{ID: "t3"}))

	txs := store.Transactions(nil)
	require.Len(t, txs, 3)
	assert.Equal(t, "t3", txs[0].ID)
	assert.Equal(t, "t1", txs[2].ID)

	err := store.PrependTransaction(model.Transaction{ID: "t2"})
	require.ErrorIs(t, err, common.ErrDuplicateID)
}

func TestStoreInsertCategoryKeepsOverflowLast(t *testing.T) {
	store := NewStore()
	require.NoError(t, store.InsertCategory(model.Category{ID: "c1", Name: "Groceries", Kind: model.CategoryKindExpense}))
	require.NoError(t, store.InsertCategory(model.Category{ID: model.CategoryIDOverflow, Name: "More...", Kind: model.CategoryKindExpense}))

	require.NoError(t, store.InsertCategory(model.Category{ID: "c2", Name: "Transport", Kind: model.CategoryKindExpense}))

	cats := store.Categories(nil)
	require.Len(t, cats, 3)
	assert.Equal(t, model.CategoryIDOverflow, cats[len(cats)-1].ID, "overflow tile stays last")
	assert.Equal(t, "c2", cats[1].ID)
}

func TestStoreSnapshotRoundTrip(t *testing.T) {
	store := NewStore()
	require.NoError(t, store.InsertAccount(model.Account{ID: "a1", Name: "Card", Balance: model.Money{Cents: 100_00}}))
	require.NoError(t, store.InsertCategory(model.Category{ID: "c1", Name: "Groceries", Kind: model.CategoryKindExpense}))
	require.NoError(t, store.PrependTransaction(model.Transaction{ID: "t1", Type: model.TypeExpense}))

	snap := store.Snapshot()
	assert.Equal(t, model.SnapshotVersion, snap.Version)

	restored := NewStore()
	restored.Restore(snap)
	assert.Equal(t, store.Accounts(nil), restored.Accounts(nil))
	assert.Equal(t, store.Categories(nil), restored.Categories(nil))
	assert.Equal(t, store.Transactions(nil), restored.Transactions(nil))

	// Snapshot copies must not alias store internals.
	snap.Accounts[0].Name = "mutated"
	got, ok := store.AccountByID("a1")
	require.True(t, ok)
	assert.Equal(t, "Card", got.Name)
}

func TestStoreFilters(t *testing.T) {
	store := NewStore()
	require.NoError(t, store.InsertAccount(model.Account{ID: "a1", Kind: model.AccountKindRegular}))
	require.NoError(t, store.InsertAccount(model.Account{ID: "a2", Kind: model.AccountKindSavings}))
	require.NoError(t, store.InsertAccount(model.Account{ID: "a3", Kind: model.AccountKindDebt}))

	savings := store.Accounts(func(a model.Account) bool { return a.Kind == model.AccountKindSavings })
	require.Len(t, savings, 1)
	assert.Equal(t, "a2", savings[0].ID)
}
