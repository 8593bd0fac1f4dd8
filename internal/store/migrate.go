package store

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"
)

// RunMigrations ensures the index table exists. Safe to call on every
// startup.
func RunMigrations(ctx context.Context, db *bun.DB) error {
	if _, err := db.NewCreateTable().
		Model((*Record)(nil)).
		IfNotExists().
		Exec(ctx); err != nil {
		return fmt.Errorf("store: create documents table: %w", err)
	}
	return nil
}
