package ledger

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/moneta-app/moneta/internal/common"
	"github.com/moneta-app/moneta/internal/model"
)

// adjustmentNote is the fixed note on synthetic balance-correction
// transactions.
const adjustmentNote = "balance correction"

// SnapshotSaver persists the entity snapshot after each mutation. Failures
// are logged and swallowed: the in-memory ledger stays authoritative for the
// session even when a save fails.
type SnapshotSaver interface {
	Save(ctx context.Context, snap model.Snapshot) error
}

// ReconcileMode says how to resolve a suspended balance edit.
type ReconcileMode string

const (
	// ReconcileReplace overwrites the stored balance; no transaction is
	// created, history simply diverges from the old number.
	ReconcileReplace ReconcileMode = "replace"
	// ReconcileRecordAdjustment writes the requested balance and records an
	// adjustment transaction documenting the difference.
	ReconcileRecordAdjustment ReconcileMode = "record-adjustment"
)

// AccountEdit carries the requested fields for EditAccount. ID empty means
// create. ReplaceBalance skips the reconciliation protocol and overwrites
// the balance directly.
type AccountEdit struct {
	ID             string
	Name           string
	Balance        model.Money
	Icon           string
	Color          string
	Kind           model.AccountKind
	ReplaceBalance bool
}

// pendingEdit is an account edit suspended on a balance change, waiting for
// the caller to pick a reconcile mode.
type pendingEdit struct {
	edit AccountEdit
	diff model.Money
}

// Engine applies commands to the store. Every operation is atomic: it
// validates first and mutates only on success, so no reader ever observes a
// partial application.
type Engine struct {
	store   *Store
	saver   SnapshotSaver
	now     func() time.Time
	newID   func() string
	pending map[string]pendingEdit
}

// Option tweaks engine construction; used by tests to pin time and ids.
type Option func(*Engine)

// WithClock overrides the engine's time source.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithIDGenerator overrides the engine's id source.
func WithIDGenerator(gen func() string) Option {
	return func(e *Engine) { e.newID = gen }
}

// NewEngine creates an engine over the given store. saver may be nil, in
// which case mutations are not persisted.
func NewEngine(store *Store, saver SnapshotSaver, opts ...Option) *Engine {
	e := &Engine{
		store:   store,
		saver:   saver,
		now:     time.Now,
		newID:   model.NewID,
		pending: make(map[string]pendingEdit),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Store exposes the underlying entity store for reading.
func (e *Engine) Store() *Store {
	return e.store
}

// persist snapshots the store after a successful mutation. Persistence
// failure never rolls back in-memory state and never reaches the caller.
func (e *Engine) persist(ctx context.Context) {
	if e.saver == nil {
		return
	}
	if err := e.saver.Save(ctx, e.store.Snapshot()); err != nil {
		common.LogError(err, "snapshot save failed; in-memory ledger remains authoritative", nil)
	}
}

// RecordTransaction validates and records a money movement, mutating the
// affected balances. For transfers both balance updates happen as one unit.
func (e *Engine) RecordTransaction(ctx context.Context, txType model.TransactionType, amount model.Money, accountID, categoryID, toAccountID, note string) (model.Transaction, error) {
	if !amount.IsPositive() {
		return model.Transaction{}, fmt.Errorf("%w: amount must be positive", common.ErrInvalidAmount)
	}

	account, ok := e.store.AccountByID(accountID)
	if !ok {
		return model.Transaction{}, fmt.Errorf("account %s: %w", accountID, common.ErrNotFound)
	}

	tx := model.Transaction{
		ID:        e.newID(),
		Amount:    amount,
		AccountID: accountID,
		Date:      e.now(),
		Note:      note,
		Type:      txType,
	}

	switch txType {
	case model.TypeExpense, model.TypeIncome:
		cat, ok := e.store.CategoryByID(categoryID)
		if !ok {
			return model.Transaction{}, fmt.Errorf("category %s: %w", categoryID, common.ErrNotFound)
		}
		wantKind := model.CategoryKindExpense
		if txType == model.TypeIncome {
			wantKind = model.CategoryKindIncome
		}
		if cat.Kind != wantKind {
			return model.Transaction{}, fmt.Errorf("category %q is %s, transaction is %s: %w", cat.Name, cat.Kind, txType, common.ErrCategoryKindMismatch)
		}
		tx.CategoryID = categoryID

		if txType == model.TypeExpense {
			account.Balance = account.Balance.Sub(amount)
		} else {
			account.Balance = account.Balance.Add(amount)
		}
		if err := e.store.PrependTransaction(tx); err != nil {
			return model.Transaction{}, err
		}
		if err := e.store.UpdateAccount(account); err != nil {
			return model.Transaction{}, err
		}

	case model.TypeTransfer:
		if toAccountID == "" || toAccountID == accountID {
			return model.Transaction{}, fmt.Errorf("%w: transfer needs a distinct destination account", common.ErrInvalidTransfer)
		}
		dest, ok := e.store.AccountByID(toAccountID)
		if !ok {
			return model.Transaction{}, fmt.Errorf("account %s: %w", toAccountID, common.ErrNotFound)
		}
		tx.CategoryID = model.CategoryIDTransfer
		tx.ToAccountID = toAccountID

		account.Balance = account.Balance.Sub(amount)
		dest.Balance = dest.Balance.Add(amount)
		if err := e.store.PrependTransaction(tx); err != nil {
			return model.Transaction{}, err
		}
		if err := e.store.UpdateAccount(account); err != nil {
			return model.Transaction{}, err
		}
		if err := e.store.UpdateAccount(dest); err != nil {
			return model.Transaction{}, err
		}

	default:
		return model.Transaction{}, fmt.Errorf("transaction type %q is not recordable directly", txType)
	}

	e.persist(ctx)
	common.LogDebug("recorded transaction", common.Fields{"type": txType, "amount": amount, "account": accountID})
	return tx, nil
}

// EditAccount creates or updates an account.
//
// On create (edit.ID empty) the balance is taken as given and no transaction
// is generated. On update, a changed balance suspends the edit and returns a
// ReconciliationRequiredError carrying requested minus current; nothing is
// mutated until the caller resolves the edit with ReconcileBalance or
// CancelReconciliation. Setting edit.ReplaceBalance skips the protocol and
// overwrites directly.
func (e *Engine) EditAccount(ctx context.Context, edit AccountEdit) (model.Account, error) {
	if strings.TrimSpace(edit.Name) == "" {
		return model.Account{}, fmt.Errorf("account name: %w", common.ErrMissingName)
	}

	if edit.ID == "" {
		account := model.Account{
			ID:      e.newID(),
			Name:    edit.Name,
			Balance: edit.Balance,
			Icon:    edit.Icon,
			Color:   edit.Color,
			Kind:    edit.Kind,
		}
		if err := e.store.InsertAccount(account); err != nil {
			return model.Account{}, err
		}
		e.persist(ctx)
		return account, nil
	}

	current, ok := e.store.AccountByID(edit.ID)
	if !ok {
		return model.Account{}, fmt.Errorf("account %s: %w", edit.ID, common.ErrNotFound)
	}

	if current.Balance != edit.Balance && !edit.ReplaceBalance {
		diff := edit.Balance.Sub(current.Balance)
		e.pending[edit.ID] = pendingEdit{edit: edit, diff: diff}
		return model.Account{}, &common.ReconciliationRequiredError{AccountID: edit.ID, Diff: diff}
	}

	updated := e.applyEdit(current, edit)
	if err := e.store.UpdateAccount(updated); err != nil {
		return model.Account{}, err
	}
	delete(e.pending, edit.ID)
	e.persist(ctx)
	return updated, nil
}

// ReconcileBalance resolves an edit suspended by EditAccount. Replace mode
// just writes the requested balance. Record-adjustment mode additionally
// records one adjustment transaction whose amount is the magnitude of the
// difference, direction encoded by the adjustment category. Either way the
// requested balance is written verbatim, so the stored balance and the
// documented adjustment agree by construction.
func (e *Engine) ReconcileBalance(ctx context.Context, accountID string, mode ReconcileMode) (model.Account, error) {
	pend, ok := e.pending[accountID]
	if !ok {
		return model.Account{}, fmt.Errorf("account %s has no suspended balance edit: %w", accountID, common.ErrNotFound)
	}
	current, ok := e.store.AccountByID(accountID)
	if !ok {
		return model.Account{}, fmt.Errorf("account %s: %w", accountID, common.ErrNotFound)
	}

	switch mode {
	case ReconcileReplace:
		// No transaction; history silently diverges from the old number.

	case ReconcileRecordAdjustment:
		categoryID := model.CategoryIDAdjustmentIn
		if pend.diff.Cents < 0 {
			categoryID = model.CategoryIDAdjustmentOut
		}
		tx := model.Transaction{
			ID:         e.newID(),
			Amount:     pend.diff.Abs(),
			CategoryID: categoryID,
			AccountID:  accountID,
			Date:       e.now(),
			Note:       adjustmentNote,
			Type:       model.TypeAdjustment,
		}
		if err := e.store.PrependTransaction(tx); err != nil {
			return model.Account{}, err
		}

	default:
		return model.Account{}, fmt.Errorf("unknown reconcile mode %q", mode)
	}

	updated := e.applyEdit(current, pend.edit)
	if err := e.store.UpdateAccount(updated); err != nil {
		return model.Account{}, err
	}
	delete(e.pending, accountID)
	e.persist(ctx)
	common.LogDebug("reconciled balance", common.Fields{"account": accountID, "mode": mode, "diff": pend.diff})
	return updated, nil
}

// CancelReconciliation abandons a suspended balance edit, leaving the
// account untouched.
func (e *Engine) CancelReconciliation(accountID string) {
	delete(e.pending, accountID)
}

// applyEdit overlays the requested fields onto an account. The requested
// balance is written as-is; direction bookkeeping lives in the adjustment
// transaction, not here.
func (e *Engine) applyEdit(current model.Account, edit AccountEdit) model.Account {
	current.Name = edit.Name
	current.Balance = edit.Balance
	current.Icon = edit.Icon
	current.Color = edit.Color
	current.Kind = edit.Kind
	return current
}

// DeleteAccount removes an account. Its historical transactions are kept
// unchanged; readers render the dangling reference as a deleted-account
// placeholder.
func (e *Engine) DeleteAccount(ctx context.Context, id string) error {
	if err := e.store.DeleteAccount(id); err != nil {
		return err
	}
	delete(e.pending, id)
	e.persist(ctx)
	return nil
}

// CategoryEdit carries the requested fields for SaveCategory. ID empty
// means create. Kind is only honored on create; it is immutable afterward.
type CategoryEdit struct {
	ID    string
	Name  string
	Icon  string
	Color string
	Kind  model.CategoryKind
}

// SaveCategory creates or updates a category. Reserved categories (the
// transfer and adjustment synthetics and the overflow tile) are not
// editable. A category's kind never changes after creation.
func (e *Engine) SaveCategory(ctx context.Context, edit CategoryEdit) (model.Category, error) {
	if strings.TrimSpace(edit.Name) == "" {
		return model.Category{}, fmt.Errorf("category name: %w", common.ErrMissingName)
	}

	if edit.ID == "" {
		cat := model.Category{
			ID:    e.newID(),
			Name:  edit.Name,
			Icon:  edit.Icon,
			Color: edit.Color,
			Kind:  edit.Kind,
		}
		if err := e.store.InsertCategory(cat); err != nil {
			return model.Category{}, err
		}
		e.persist(ctx)
		return cat, nil
	}

	if model.IsReservedCategoryID(edit.ID) {
		return model.Category{}, fmt.Errorf("category %s: %w", edit.ID, common.ErrReservedCategory)
	}
	current, ok := e.store.CategoryByID(edit.ID)
	if !ok {
		return model.Category{}, fmt.Errorf("category %s: %w", edit.ID, common.ErrNotFound)
	}

	current.Name = edit.Name
	current.Icon = edit.Icon
	current.Color = edit.Color
	if err := e.store.UpdateCategory(current); err != nil {
		return model.Category{}, err
	}
	e.persist(ctx)
	return current, nil
}

// DeleteCategory removes a category. Reserved categories are refused.
// Transactions that referenced the category are kept as-is.
func (e *Engine) DeleteCategory(ctx context.Context, id string) error {
	if model.IsReservedCategoryID(id) {
		return fmt.Errorf("category %s: %w", id, common.ErrReservedCategory)
	}
	if err := e.store.DeleteCategory(id); err != nil {
		return err
	}
	e.persist(ctx)
	return nil
}

// EditableCategories lists the categories of the given kind that category
// management may show: the overflow tile and synthetics are excluded by
// construction.
func (e *Engine) EditableCategories(kind model.CategoryKind) []model.Category {
	return e.store.Categories(func(c model.Category) bool {
		return c.Kind == kind && !model.IsReservedCategoryID(c.ID)
	})
}
