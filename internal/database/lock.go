package database

import (
	"context"
	"database/sql"
	"fmt"
	"hash/fnv"
)

// LockKey hashes the parts into a pg_advisory_xact_lock key.
func LockKey(parts ...string) int64 {
	h := fnv.New64a()

	for i, p := range parts {
		if i > 0 {
			h.Write([]byte{0})
		}

		h.Write([]byte(p))
	}

	return int64(h.Sum64())
}

// BeginLocked opens a transaction holding the advisory lock for key until it
// commits or rolls back.
func BeginLocked(ctx context.Context, db *sql.DB, key int64) (*sql.Tx, error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}

	if _, err := tx.ExecContext(ctx, "SELECT pg_advisory_xact_lock($1)", key); err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("acquiring advisory lock: %w", err)
	}

	return tx, nil
}
