// Package storage persists the ledger snapshot. The whole entity set is one
// versioned JSON blob stored under a fixed key in a local SQLite database;
// loading an absent, stale or unreadable snapshot falls back to the seed.
package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/moneta-app/moneta/internal/common"
	"github.com/moneta-app/moneta/internal/model"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// snapshotKey is the fixed storage key for the ledger snapshot.
const snapshotKey = "money_tracker_state_v1"

// SnapshotStore persists ledger snapshots in SQLite.
type SnapshotStore struct {
	db   *sql.DB
	path string
}

// NewSnapshotStore opens (creating if needed) the snapshot database at path.
// ":memory:" gives an ephemeral store for tests.
func NewSnapshotStore(path string) (*SnapshotStore, error) {
	if path == "" {
		return nil, fmt.Errorf("snapshot database path cannot be empty")
	}

	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite doesn't benefit from multiple connections.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &SnapshotStore{db: db, path: path}, nil
}

// Migrate creates the snapshot table when missing.
func (s *SnapshotStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS snapshots (
			key        TEXT PRIMARY KEY,
			version    INTEGER NOT NULL,
			payload    BLOB NOT NULL,
			updated_at TIMESTAMP NOT NULL
		)`)
	if err != nil {
		return fmt.Errorf("failed to create snapshots table: %w", err)
	}
	return nil
}

// Close closes the database connection.
func (s *SnapshotStore) Close() error {
	return s.db.Close()
}

// Load returns the persisted snapshot, or the seed snapshot when nothing
// usable is stored: no row, an older version, or a payload that no longer
// decodes. Older versions reseed rather than migrate.
func (s *SnapshotStore) Load(ctx context.Context) (model.Snapshot, error) {
	var (
		version int
		payload []byte
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT version, payload FROM snapshots WHERE key = ?`, snapshotKey,
	).Scan(&version, &payload)
	if errors.Is(err, sql.ErrNoRows) {
		common.LogDebug("no saved snapshot, seeding", nil)
		return SeedSnapshot(), nil
	}
	if err != nil {
		return model.Snapshot{}, fmt.Errorf("failed to load snapshot: %w", err)
	}

	if version < model.SnapshotVersion {
		slog.Info("snapshot version is older than current, reseeding", "stored", version, "current", model.SnapshotVersion)
		return SeedSnapshot(), nil
	}

	var snap model.Snapshot
	if err := json.Unmarshal(payload, &snap); err != nil {
		common.LogError(err, "stored snapshot is unreadable, reseeding", nil)
		return SeedSnapshot(), nil
	}
	return snap, nil
}

// Save upserts the snapshot under the fixed key.
func (s *SnapshotStore) Save(ctx context.Context, snap model.Snapshot) error {
	payload, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO snapshots (key, version, payload, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			version = excluded.version,
			payload = excluded.payload,
			updated_at = excluded.updated_at`,
		snapshotKey, snap.Version, payload, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to save snapshot: %w", err)
	}

	common.LogDebug("saved snapshot", common.Fields{
		"accounts":     len(snap.Accounts),
		"categories":   len(snap.Categories),
		"transactions": len(snap.Transactions),
	})
	return nil
}
