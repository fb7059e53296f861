// Package testutil provides builders for seeded ledgers in tests.
package testutil

import (
	"context"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/moneta-app/moneta/internal/ledger"
	"github.com/moneta-app/moneta/internal/model"
)

// RecordingSaver captures every snapshot the engine persists, so tests can
// assert on save-after-mutation behavior. Err, when set, is returned from
// Save to exercise the swallow-and-log contract.
type RecordingSaver struct {
	mu    sync.Mutex
	Saves []model.Snapshot
	Err   error
}

// Save implements ledger.SnapshotSaver.
func (r *RecordingSaver) Save(_ context.Context, snap model.Snapshot) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	r.Saves = append(r.Saves, snap)
	return nil
}

// Count returns how many snapshots were saved.
func (r *RecordingSaver) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.Saves)
}

// LedgerBuilder assembles a store and engine with deterministic time and ids.
type LedgerBuilder struct {
	t        *testing.T
	accounts []model.Account
	cats     []model.Category
	now      time.Time
	saver    ledger.SnapshotSaver
}

// NewLedger starts a builder. The default clock is pinned to
// 2024-03-15T12:00:00Z.
func NewLedger(t *testing.T) *LedgerBuilder {
	t.Helper()
	return &LedgerBuilder{
		t:   t,
		now: time.Date(2024, time.March, 15, 12, 0, 0, 0, time.UTC),
	}
}

// WithAccount seeds a regular account.
func (b *LedgerBuilder) WithAccount(id, name string, balanceCents int64) *LedgerBuilder {
	b.accounts = append(b.accounts, model.Account{
		ID:      id,
		Name:    name,
		Balance: model.Money{Cents: balanceCents},
		Kind:    model.AccountKindRegular,
	})
	return b
}

// WithAccountKind seeds an account of the given kind.
func (b *LedgerBuilder) WithAccountKind(id, name string, balanceCents int64, kind model.AccountKind) *LedgerBuilder {
	b.accounts = append(b.accounts, model.Account{
		ID:      id,
		Name:    name,
		Balance: model.Money{Cents: balanceCents},
		Kind:    kind,
	})
	return b
}

// WithCategory seeds a category.
func (b *LedgerBuilder) WithCategory(id, name string, kind model.CategoryKind) *LedgerBuilder {
	b.cats = append(b.cats, model.Category{ID: id, Name: name, Kind: kind})
	return b
}

// WithClock pins the engine clock.
func (b *LedgerBuilder) WithClock(now time.Time) *LedgerBuilder {
	b.now = now
	return b
}

// WithSaver attaches a snapshot saver.
func (b *LedgerBuilder) WithSaver(saver ledger.SnapshotSaver) *LedgerBuilder {
	b.saver = saver
	return b
}

// Build returns the seeded store and engine. Engine ids are sequential
// ("id-1", "id-2", ...) for stable assertions.
func (b *LedgerBuilder) Build() (*ledger.Store, *ledger.Engine) {
	b.t.Helper()

	store := ledger.NewStore()
	for _, a := range b.accounts {
		if err := store.InsertAccount(a); err != nil {
			b.t.Fatalf("failed to seed account %s: %v", a.ID, err)
		}
	}
	for _, c := range b.cats {
		if err := store.InsertCategory(c); err != nil {
			b.t.Fatalf("failed to seed category %s: %v", c.ID, err)
		}
	}

	seq := 0
	engine := ledger.NewEngine(store, b.saver,
		ledger.WithClock(func() time.Time { return b.now }),
		ledger.WithIDGenerator(func() string {
			seq++
			return "id-" + strconv.Itoa(seq)
		}),
	)
	return store, engine
}
