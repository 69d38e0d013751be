package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/folio/internal/database"
	"github.com/MrJamesThe3rd/folio/internal/holding"
	holdingStore "github.com/MrJamesThe3rd/folio/internal/holding/store"
	"github.com/MrJamesThe3rd/folio/internal/ledger"
	ledgerStore "github.com/MrJamesThe3rd/folio/internal/ledger/store"
	"github.com/MrJamesThe3rd/folio/internal/lot"
	"github.com/MrJamesThe3rd/folio/internal/portfolio"
	"github.com/MrJamesThe3rd/folio/internal/transaction"
	txStore "github.com/MrJamesThe3rd/folio/internal/transaction/store"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) GetHolding(ctx context.Context, id uuid.UUID) (*holding.Holding, error) {
	return holdingStore.Get(ctx, s.db, id)
}

func (s *Store) GetTransaction(ctx context.Context, id uuid.UUID) (*transaction.Transaction, error) {
	return txStore.Get(ctx, s.db, id)
}

func (s *Store) ListTransactions(ctx context.Context, holdingID uuid.UUID) ([]*transaction.Transaction, error) {
	return txStore.List(ctx, s.db, transaction.ListFilter{HoldingID: &holdingID})
}

func (s *Store) ListMatches(ctx context.Context, holdingID uuid.UUID) ([]lot.Match, error) {
	return listMatches(ctx, s.db, holdingID)
}

// LockKey is the advisory lock serializing writers of one holding.
func LockKey(holdingID uuid.UUID) int64 {
	return database.LockKey("holding", holdingID.String())
}

type holdingTx struct {
	tx *sql.Tx
}

func (s *Store) BeginHolding(ctx context.Context, holdingID uuid.UUID) (portfolio.HoldingTx, error) {
	tx, err := database.BeginLocked(ctx, s.db, LockKey(holdingID))
	if err != nil {
		return nil, fmt.Errorf("beginning holding tx: %w", err)
	}

	return &holdingTx{tx: tx}, nil
}

func (h *holdingTx) Commit() error   { return h.tx.Commit() }
func (h *holdingTx) Rollback() error { return h.tx.Rollback() }

func (h *holdingTx) GetTransaction(ctx context.Context, id uuid.UUID) (*transaction.Transaction, error) {
	return txStore.Get(ctx, h.tx, id)
}

func (h *holdingTx) CreateTransaction(ctx context.Context, tx *transaction.Transaction) error {
	return txStore.Insert(ctx, h.tx, tx)
}

func (h *holdingTx) UpdateTransaction(ctx context.Context, tx *transaction.Transaction) error {
	return txStore.Update(ctx, h.tx, tx)
}

func (h *holdingTx) DeleteTransaction(ctx context.Context, id uuid.UUID) error {
	return txStore.Delete(ctx, h.tx, id)
}

func (h *holdingTx) ListTransactions(ctx context.Context, holdingID uuid.UUID) ([]*transaction.Transaction, error) {
	return txStore.List(ctx, h.tx, transaction.ListFilter{HoldingID: &holdingID})
}

func (h *holdingTx) UpsertTransactionFlow(ctx context.Context, e *ledger.Entry) error {
	return ledgerStore.UpsertFlow(ctx, h.tx, e)
}

func (h *holdingTx) DeleteTransactionFlow(ctx context.Context, transactionID uuid.UUID) error {
	return ledgerStore.DeleteFlow(ctx, h.tx, transactionID)
}

// ReplaceMatches swaps the holding's whole match set.
func (h *holdingTx) ReplaceMatches(ctx context.Context, holdingID uuid.UUID, matches []lot.Match) error {
	if _, err := h.tx.ExecContext(ctx, `DELETE FROM lot_matches WHERE holding_id = $1`, holdingID); err != nil {
		return fmt.Errorf("clearing lot matches: %w", err)
	}

	query := `
		INSERT INTO lot_matches (
			holding_id, position, sell_transaction_id, buy_transaction_id, quantity,
			buy_price, sell_price, realized_pnl, buy_date, sell_date
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	for i, m := range matches {
		_, err := h.tx.ExecContext(ctx, query,
			holdingID, i, m.SellID, m.BuyID, m.Quantity,
			m.BuyPrice, m.SellPrice, m.Realized, m.BuyDate, m.SellDate,
		)
		if err != nil {
			return fmt.Errorf("inserting lot match %d: %w", i, err)
		}
	}

	return nil
}

func (h *holdingTx) DeleteHolding(ctx context.Context, holdingID uuid.UUID) error {
	if _, err := h.tx.ExecContext(ctx, `DELETE FROM holdings WHERE id = $1`, holdingID); err != nil {
		return fmt.Errorf("deleting holding: %w", err)
	}

	return nil
}

// ListMatchesByUser returns every persisted match of the user's holdings.
func (s *Store) ListMatchesByUser(ctx context.Context, userID uuid.UUID) ([]lot.Match, error) {
	query := `SELECT ` + selectMatchColumns + `
		FROM lot_matches m
		JOIN holdings h ON h.id = m.holding_id
		WHERE h.user_id = $1
		ORDER BY h.symbol ASC, m.position ASC`

	return queryMatches(ctx, s.db, query, userID)
}

const selectMatchColumns = `
	m.holding_id, m.sell_transaction_id, m.buy_transaction_id, m.quantity,
	m.buy_price, m.sell_price, m.realized_pnl, m.buy_date, m.sell_date
`

func listMatches(ctx context.Context, q txStore.Querier, holdingID uuid.UUID) ([]lot.Match, error) {
	query := `SELECT ` + selectMatchColumns + `
		FROM lot_matches m
		WHERE m.holding_id = $1
		ORDER BY m.position ASC`

	return queryMatches(ctx, q, query, holdingID)
}

func queryMatches(ctx context.Context, q txStore.Querier, query string, args ...any) ([]lot.Match, error) {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing lot matches: %w", err)
	}
	defer rows.Close()

	var matches []lot.Match

	for rows.Next() {
		var m lot.Match
		if err := rows.Scan(
			&m.HoldingID, &m.SellID, &m.BuyID, &m.Quantity,
			&m.BuyPrice, &m.SellPrice, &m.Realized, &m.BuyDate, &m.SellDate,
		); err != nil {
			return nil, fmt.Errorf("scanning lot match: %w", err)
		}

		m.BuyDate = m.BuyDate.UTC()
		m.SellDate = m.SellDate.UTC()
		matches = append(matches, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating lot match rows: %w", err)
	}

	return matches, nil
}
