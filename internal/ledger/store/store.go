package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/folio/internal/database"
	"github.com/MrJamesThe3rd/folio/internal/ledger"
)

// Querier is satisfied by *sql.DB and *sql.Tx.
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

const selectEntryColumns = `id, user_id, entry_type, amount, entry_date, transaction_id, note, created_at`

func scanEntry(s scanner) (*ledger.Entry, error) {
	var e ledger.Entry

	var typeStr string

	if err := s.Scan(&e.ID, &e.UserID, &typeStr, &e.Amount, &e.Date, &e.TransactionID, &e.Note, &e.CreatedAt); err != nil {
		return nil, err
	}

	e.Type = ledger.Type(typeStr)
	e.Date = e.Date.UTC()

	return &e, nil
}

// List returns a user's entries in ledger order.
func List(ctx context.Context, q Querier, userID uuid.UUID) ([]*ledger.Entry, error) {
	query := `SELECT ` + selectEntryColumns + `
		FROM cash_ledger
		WHERE user_id = $1
		ORDER BY entry_date ASC, id ASC`

	rows, err := q.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("listing ledger entries: %w", err)
	}
	defer rows.Close()

	var entries []*ledger.Entry

	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning ledger entry: %w", err)
		}

		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating ledger rows: %w", err)
	}

	return entries, nil
}

// UpsertFlow writes a settlement entry keyed by its transaction. The row keeps
// its original id so its place among same-day entries does not move.
func UpsertFlow(ctx context.Context, q Querier, e *ledger.Entry) error {
	if e.TransactionID == nil {
		return fmt.Errorf("upserting flow: %s entry without transaction", e.Type)
	}

	query := `
		INSERT INTO cash_ledger (user_id, entry_type, amount, entry_date, transaction_id, note, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
		ON CONFLICT (transaction_id) DO UPDATE
		SET entry_type = EXCLUDED.entry_type, amount = EXCLUDED.amount, entry_date = EXCLUDED.entry_date
		RETURNING id, created_at
	`

	err := q.QueryRowContext(ctx, query,
		e.UserID,
		e.Type,
		e.Amount,
		e.Date,
		*e.TransactionID,
		e.Note,
	).Scan(&e.ID, &e.CreatedAt)
	if err != nil {
		return fmt.Errorf("upserting flow: %w", err)
	}

	return nil
}

func DeleteFlow(ctx context.Context, q Querier, transactionID uuid.UUID) error {
	if _, err := q.ExecContext(ctx, `DELETE FROM cash_ledger WHERE transaction_id = $1`, transactionID); err != nil {
		return fmt.Errorf("deleting flow: %w", err)
	}

	return nil
}

func (s *Store) ListEntries(ctx context.Context, userID uuid.UUID) ([]*ledger.Entry, error) {
	return List(ctx, s.db, userID)
}

func (s *Store) GetEntry(ctx context.Context, id int64) (*ledger.Entry, error) {
	query := `SELECT ` + selectEntryColumns + ` FROM cash_ledger WHERE id = $1`

	e, err := scanEntry(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ledger.ErrNotFound
		}

		return nil, fmt.Errorf("getting ledger entry: %w", err)
	}

	return e, nil
}

// LockKey is the advisory lock serializing external flows of one user.
func LockKey(userID uuid.UUID) int64 {
	return database.LockKey("cash_ledger", userID.String())
}

type userTx struct {
	tx *sql.Tx
}

func (s *Store) BeginUser(ctx context.Context, userID uuid.UUID) (ledger.UserTx, error) {
	tx, err := database.BeginLocked(ctx, s.db, LockKey(userID))
	if err != nil {
		return nil, fmt.Errorf("beginning ledger tx: %w", err)
	}

	return &userTx{tx: tx}, nil
}

func (u *userTx) Commit() error   { return u.tx.Commit() }
func (u *userTx) Rollback() error { return u.tx.Rollback() }

func (u *userTx) ListEntries(ctx context.Context, userID uuid.UUID) ([]*ledger.Entry, error) {
	return List(ctx, u.tx, userID)
}

func (u *userTx) CreateEntry(ctx context.Context, e *ledger.Entry) error {
	query := `
		INSERT INTO cash_ledger (user_id, entry_type, amount, entry_date, note, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		RETURNING id, created_at
	`

	err := u.tx.QueryRowContext(ctx, query, e.UserID, e.Type, e.Amount, e.Date, e.Note).Scan(&e.ID, &e.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating ledger entry: %w", err)
	}

	return nil
}

func (u *userTx) DeleteEntry(ctx context.Context, id int64) error {
	query := `DELETE FROM cash_ledger WHERE id = $1 AND transaction_id IS NULL`

	res, err := u.tx.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("deleting ledger entry: %w", err)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ledger.ErrNotFound
	}

	return nil
}
