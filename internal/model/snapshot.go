// Package model defines the ledger's entity types: accounts, categories,
// transactions, exact-cents money, and the persisted snapshot layout.
package model

// SnapshotVersion is the current snapshot schema version. Loading a snapshot
// with an older version reseeds rather than migrates.
const SnapshotVersion = 1

// Snapshot is the full persisted state of the ledger: every account,
// category and transaction, with transactions ordered newest first.
type Snapshot struct {
	Version      int           `json:"version"`
	Accounts     []Account     `json:"accounts"`
	Categories   []Category    `json:"categories"`
	Transactions []Transaction `json:"transactions"`
}
