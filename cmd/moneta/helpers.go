package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/moneta-app/moneta/internal/config"
	"github.com/moneta-app/moneta/internal/ledger"
	"github.com/moneta-app/moneta/internal/model"
	"github.com/moneta-app/moneta/internal/period"
	"github.com/moneta-app/moneta/internal/storage"
)

// openLedger loads the snapshot and assembles the store and engine. Every
// command goes through here; the returned close func must run before exit so
// the final snapshot lands.
func openLedger(ctx context.Context) (*ledger.Engine, func(), error) {
	dbPath := viper.GetString("database.path")
	if dbPath == "" {
		dbPath = config.DefaultDatabasePath
	}
	dbPath = config.ExpandPath(dbPath)

	snapStore, err := storage.NewSnapshotStore(dbPath)
	if err != nil {
		return nil, nil, err
	}
	if err := snapStore.Migrate(ctx); err != nil {
		_ = snapStore.Close()
		return nil, nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	snap, err := snapStore.Load(ctx)
	if err != nil {
		_ = snapStore.Close()
		return nil, nil, err
	}

	store := ledger.NewStore()
	store.Restore(snap)
	engine := ledger.NewEngine(store, snapStore)

	return engine, func() { _ = snapStore.Close() }, nil
}

// currencySymbol returns the configured display currency.
func currencySymbol() string {
	return viper.GetString("currency")
}

// accountLabel resolves an account id for display, tolerating references to
// deleted accounts.
func accountLabel(store *ledger.Store, id string) string {
	if a, ok := store.AccountByID(id); ok {
		return a.Name
	}
	return "(deleted account)"
}

// categoryLabel resolves a category id for display, including the synthetic
// transfer and adjustment categories.
func categoryLabel(store *ledger.Store, id string) string {
	switch id {
	case model.CategoryIDTransfer:
		return "Transfer"
	case model.CategoryIDAdjustmentIn, model.CategoryIDAdjustmentOut:
		return "Balance correction"
	}
	if c, ok := store.CategoryByID(id); ok {
		return c.Name
	}
	return "(deleted category)"
}

// addPeriodFlags registers the shared period selection flags.
func addPeriodFlags(cmd *cobra.Command) {
	cmd.Flags().String("period", "month", "reporting period (month, year, last-year, custom)")
	cmd.Flags().String("anchor", "", "anchor date YYYY-MM-DD (default: today)")
	cmd.Flags().Int("offset", 0, "shift the period by N months or years")
	cmd.Flags().String("from", "", "custom period start YYYY-MM-DD")
	cmd.Flags().String("to", "", "custom period end YYYY-MM-DD")
}

// selectorFromFlags resolves the period flags into a Selector.
func selectorFromFlags(cmd *cobra.Command) (period.Selector, error) {
	kindStr, _ := cmd.Flags().GetString("period")
	kind, err := period.ParseKind(kindStr)
	if err != nil {
		return period.Selector{}, err
	}

	if kind == period.Custom {
		fromStr, _ := cmd.Flags().GetString("from")
		toStr, _ := cmd.Flags().GetString("to")
		var from, to time.Time
		if fromStr != "" {
			if from, err = time.ParseInLocation("2006-01-02", fromStr, time.Local); err != nil {
				return period.Selector{}, fmt.Errorf("invalid --from date: %w", err)
			}
		}
		if toStr != "" {
			if to, err = time.ParseInLocation("2006-01-02", toStr, time.Local); err != nil {
				return period.Selector{}, fmt.Errorf("invalid --to date: %w", err)
			}
		}
		return period.NewCustomSelector(from, to), nil
	}

	anchor := time.Now()
	if anchorStr, _ := cmd.Flags().GetString("anchor"); anchorStr != "" {
		if anchor, err = time.ParseInLocation("2006-01-02", anchorStr, time.Local); err != nil {
			return period.Selector{}, fmt.Errorf("invalid --anchor date: %w", err)
		}
	}

	sel := period.NewSelector(kind, anchor)
	if offset, _ := cmd.Flags().GetInt("offset"); offset != 0 {
		sel = sel.Shift(offset)
	}
	return sel, nil
}
