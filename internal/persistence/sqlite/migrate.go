package sqlite

import (
	"context"
	"database/sql"
	"fmt"
)

// Migrate brings the schema to len(steps) using PRAGMA user_version. Step i
// moves the schema from version i to i+1. All pending steps run in one
// transaction.
func Migrate(ctx context.Context, db *sql.DB, steps []string) (from int, err error) {
	if err := db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&from); err != nil {
		return 0, fmt.Errorf("read schema version: %w", err)
	}
	if from > len(steps) {
		return from, fmt.Errorf("schema version %d is newer than this build (%d)", from, len(steps))
	}
	if from == len(steps) {
		return from, nil
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return from, err
	}
	defer func() { _ = tx.Rollback() }()

	for v := from; v < len(steps); v++ {
		if _, err := tx.ExecContext(ctx, steps[v]); err != nil {
			return from, fmt.Errorf("migrate to version %d: %w", v+1, err)
		}
	}
	// PRAGMA does not take bound parameters
	if _, err := tx.ExecContext(ctx, fmt.Sprintf("PRAGMA user_version = %d", len(steps))); err != nil {
		return from, fmt.Errorf("set schema version: %w", err)
	}
	return from, tx.Commit()
}
