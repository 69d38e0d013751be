package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	holdingStore "github.com/MrJamesThe3rd/folio/internal/holding/store"
	ledgerStore "github.com/MrJamesThe3rd/folio/internal/ledger/store"
	"github.com/MrJamesThe3rd/folio/internal/performance"
	"github.com/MrJamesThe3rd/folio/internal/transaction"
	txStore "github.com/MrJamesThe3rd/folio/internal/transaction/store"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// LoadBook reads holdings, transactions and ledger inside one read-only
// REPEATABLE READ transaction.
func (s *Store) LoadBook(ctx context.Context, userID uuid.UUID) (*performance.Book, error) {
	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true})
	if err != nil {
		return nil, fmt.Errorf("beginning snapshot: %w", err)
	}
	defer tx.Rollback()

	holdings, err := holdingStore.List(ctx, tx, userID)
	if err != nil {
		return nil, err
	}

	txs, err := txStore.List(ctx, tx, transaction.ListFilter{UserID: &userID})
	if err != nil {
		return nil, err
	}

	entries, err := ledgerStore.List(ctx, tx, userID)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("closing snapshot: %w", err)
	}

	return &performance.Book{Holdings: holdings, Transactions: txs, Entries: entries}, nil
}
