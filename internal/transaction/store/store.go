package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/folio/internal/transaction"
)

// Querier is satisfied by *sql.DB and *sql.Tx so the same statements run
// inside the portfolio unit of work.
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

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// SelectColumns is the column list ScanTransaction expects, aliased on t.
const SelectColumns = `
	t.id, t.seq, t.holding_id, t.type, t.quantity, t.price, t.date, t.notes, t.created_at, t.updated_at
`

// ScanTransaction reads a row selected with SelectColumns.
func ScanTransaction(s scanner) (*transaction.Transaction, error) {
	var tx transaction.Transaction

	var typeStr string

	if err := s.Scan(
		&tx.ID, &tx.Seq, &tx.HoldingID, &typeStr, &tx.Quantity, &tx.Price, &tx.Date, &tx.Notes,
		&tx.CreatedAt, &tx.UpdatedAt,
	); err != nil {
		return nil, err
	}

	tx.Type = transaction.Type(typeStr)
	tx.Date = tx.Date.UTC()

	return &tx, nil
}

func Insert(ctx context.Context, q Querier, tx *transaction.Transaction) error {
	query := `
		INSERT INTO transactions (holding_id, type, quantity, price, date, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
		RETURNING id, seq, created_at
	`

	err := q.QueryRowContext(ctx, query,
		tx.HoldingID,
		tx.Type,
		tx.Quantity,
		tx.Price,
		tx.Date,
		tx.Notes,
	).Scan(&tx.ID, &tx.Seq, &tx.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating transaction: %w", err)
	}

	return nil
}

// Update rewrites the mutable fields. Seq is kept so same-day ordering
// survives edits.
func Update(ctx context.Context, q Querier, tx *transaction.Transaction) error {
	query := `
		UPDATE transactions
		SET type = $1, quantity = $2, price = $3, date = $4, notes = $5, updated_at = NOW()
		WHERE id = $6
		RETURNING updated_at
	`

	err := q.QueryRowContext(ctx, query,
		tx.Type,
		tx.Quantity,
		tx.Price,
		tx.Date,
		tx.Notes,
		tx.ID,
	).Scan(&tx.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return transaction.ErrNotFound
		}

		return fmt.Errorf("updating transaction: %w", err)
	}

	return nil
}

// Delete removes the row. Its lot matches and ledger entry go with it via
// ON DELETE CASCADE.
func Delete(ctx context.Context, q Querier, id uuid.UUID) error {
	res, err := q.ExecContext(ctx, `DELETE FROM transactions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting transaction: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting transaction: %w", err)
	}

	if n == 0 {
		return transaction.ErrNotFound
	}

	return nil
}

func Get(ctx context.Context, q Querier, id uuid.UUID) (*transaction.Transaction, error) {
	query := `SELECT ` + SelectColumns + ` FROM transactions t WHERE t.id = $1`

	tx, err := ScanTransaction(q.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, transaction.ErrNotFound
		}

		return nil, fmt.Errorf("getting transaction: %w", err)
	}

	return tx, nil
}

// List returns the transactions matching filter in processing order.
func List(ctx context.Context, q Querier, filter transaction.ListFilter) ([]*transaction.Transaction, error) {
	query := `SELECT ` + SelectColumns + `
		FROM transactions t
		JOIN holdings h ON h.id = t.holding_id
		WHERE TRUE`

	var args []any

	argIdx := 1

	if filter.UserID != nil {
		query += fmt.Sprintf(" AND h.user_id = $%d", argIdx)

		args = append(args, *filter.UserID)
		argIdx++
	}

	if filter.HoldingID != nil {
		query += fmt.Sprintf(" AND t.holding_id = $%d", argIdx)

		args = append(args, *filter.HoldingID)
		argIdx++
	}

	if filter.StartDate != nil {
		query += fmt.Sprintf(" AND t.date >= $%d", argIdx)

		args = append(args, *filter.StartDate)
		argIdx++
	}

	if filter.EndDate != nil {
		query += fmt.Sprintf(" AND t.date <= $%d", argIdx)

		args = append(args, *filter.EndDate)
	}

	query += " ORDER BY t.date ASC, t.seq ASC"

	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing transactions: %w", err)
	}
	defer rows.Close()

	var txs []*transaction.Transaction

	for rows.Next() {
		tx, err := ScanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning transaction: %w", err)
		}

		txs = append(txs, tx)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating transaction rows: %w", err)
	}

	return txs, nil
}

func (s *Store) GetTransaction(ctx context.Context, id uuid.UUID) (*transaction.Transaction, error) {
	return Get(ctx, s.db, id)
}

func (s *Store) ListTransactions(ctx context.Context, filter transaction.ListFilter) ([]*transaction.Transaction, error) {
	return List(ctx, s.db, filter)
}
