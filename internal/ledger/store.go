// Package ledger holds the entity store and the engine that mutates it.
// The store is the single source of truth for accounts, categories and
// transactions; the engine is its sole mutator and enforces every balance
// invariant. Reporting code only ever reads.
package ledger

import (
	"fmt"

	"github.com/moneta-app/moneta/internal/common"
	"github.com/moneta-app/moneta/internal/model"
)

// Store is the in-memory entity collection. It is owned by a single logical
// thread (the command loop); it does no locking of its own.
type Store struct {
	accounts     []model.Account
	categories   []model.Category
	transactions []model.Transaction
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{}
}

// Restore replaces the store's contents with the snapshot's.
func (s *Store) Restore(snap model.Snapshot) {
	s.accounts = append([]model.Account(nil), snap.Accounts...)
	s.categories = append([]model.Category(nil), snap.Categories...)
	s.transactions = append([]model.Transaction(nil), snap.Transactions...)
}

// Snapshot copies the store's contents into a persistable snapshot.
func (s *Store) Snapshot() model.Snapshot {
	return model.Snapshot{
		Version:      model.SnapshotVersion,
		Accounts:     append([]model.Account(nil), s.accounts...),
		Categories:   append([]model.Category(nil), s.categories...),
		Transactions: append([]model.Transaction(nil), s.transactions...),
	}
}

// InsertAccount appends an account, enforcing id uniqueness.
func (s *Store) InsertAccount(a model.Account) error {
	if _, ok := s.AccountByID(a.ID); ok {
		return fmt.Errorf("account %s: %w", a.ID, common.ErrDuplicateID)
	}
	s.accounts = append(s.accounts, a)
	return nil
}

// UpdateAccount replaces the stored account with the same id.
func (s *Store) UpdateAccount(a model.Account) error {
	for i := range s.accounts {
		if s.accounts[i].ID == a.ID {
			s.accounts[i] = a
			return nil
		}
	}
	return fmt.Errorf("account %s: %w", a.ID, common.ErrNotFound)
}

// DeleteAccount removes the account with the given id. The last remaining
// account cannot be removed: transaction recording must stay possible.
func (s *Store) DeleteAccount(id string) error {
	if len(s.accounts) <= 1 {
		return common.ErrLastAccount
	}
	for i := range s.accounts {
		if s.accounts[i].ID == id {
			s.accounts = append(s.accounts[:i], s.accounts[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("account %s: %w", id, common.ErrNotFound)
}

// AccountByID looks up an account.
func (s *Store) AccountByID(id string) (model.Account, bool) {
	for _, a := range s.accounts {
		if a.ID == id {
			return a, true
		}
	}
	return model.Account{}, false
}

// Accounts returns all accounts in insertion order, optionally filtered.
func (s *Store) Accounts(filter func(model.Account) bool) []model.Account {
	out := make([]model.Account, 0, len(s.accounts))
	for _, a := range s.accounts {
		if filter == nil || filter(a) {
			out = append(out, a)
		}
	}
	return out
}

// InsertCategory appends a category, enforcing id uniqueness. When the
// overflow tile is present the new category is inserted just before it so
// the tile stays last.
func (s *Store) InsertCategory(c model.Category) error {
	if _, ok := s.CategoryByID(c.ID); ok {
		return fmt.Errorf("category %s: %w", c.ID, common.ErrDuplicateID)
	}
	for i := range s.categories {
		if s.categories[i].ID == model.CategoryIDOverflow && s.categories[i].Kind == c.Kind {
			s.categories = append(s.categories[:i], append([]model.Category{c}, s.categories[i:]...)...)
			return nil
		}
	}
	s.categories = append(s.categories, c)
	return nil
}

// UpdateCategory replaces the stored category with the same id.
func (s *Store) UpdateCategory(c model.Category) error {
	for i := range s.categories {
		if s.categories[i].ID == c.ID {
			s.categories[i] = c
			return nil
		}
	}
	return fmt.Errorf("category %s: %w", c.ID, common.ErrNotFound)
}

// DeleteCategory removes the category with the given id.
func (s *Store) DeleteCategory(id string) error {
	for i := range s.categories {
		if s.categories[i].ID == id {
			s.categories = append(s.categories[:i], s.categories[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("category %s: %w", id, common.ErrNotFound)
}

// CategoryByID looks up a category.
func (s *Store) CategoryByID(id string) (model.Category, bool) {
	for _, c := range s.categories {
		if c.ID == id {
			return c, true
		}
	}
	return model.Category{}, false
}

// Categories returns all categories in insertion order, optionally filtered.
func (s *Store) Categories(filter func(model.Category) bool) []model.Category {
	out := make([]model.Category, 0, len(s.categories))
	for _, c := range s.categories {
		if filter == nil || filter(c) {
			out = append(out, c)
		}
	}
	return out
}

// PrependTransaction inserts a transaction at the head of the list; the
// store keeps transactions newest first.
func (s *Store) PrependTransaction(t model.Transaction) error {
	for _, existing := range s.transactions {
		if existing.ID == t.ID {
			return fmt.Errorf("transaction %s: %w", t.ID, common.ErrDuplicateID)
		}
	}
	s.transactions = append([]model.Transaction{t}, s.transactions...)
	return nil
}

// Transactions returns all transactions newest first, optionally filtered.
func (s *Store) Transactions(filter func(model.Transaction) bool) []model.Transaction {
	out := make([]model.Transaction, 0, len(s.transactions))
	for _, t := range s.transactions {
		if filter == nil || filter(t) {
			out = append(out, t)
		}
	}
	return out
}
