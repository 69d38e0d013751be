package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/MrJamesThe3rd/folio/internal/holding"
)

const uniqueViolation = "23505"

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// Querier is satisfied by *sql.DB and *sql.Tx.
type Querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type scanner interface {
	Scan(dest ...any) error
}

const selectHoldingColumns = `id, user_id, symbol, name, exchange, created_at`

func scanHolding(s scanner) (*holding.Holding, error) {
	var h holding.Holding
	if err := s.Scan(&h.ID, &h.UserID, &h.Symbol, &h.Name, &h.Exchange, &h.CreatedAt); err != nil {
		return nil, err
	}

	return &h, nil
}

func (s *Store) CreateHolding(ctx context.Context, h *holding.Holding) error {
	query := `
		INSERT INTO holdings (user_id, symbol, name, exchange, created_at)
		VALUES ($1, $2, $3, $4, NOW())
		RETURNING id, created_at
	`

	err := s.db.QueryRowContext(ctx, query, h.UserID, h.Symbol, h.Name, h.Exchange).Scan(&h.ID, &h.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return holding.ErrDuplicate
		}

		return fmt.Errorf("creating holding: %w", err)
	}

	return nil
}

func (s *Store) GetHolding(ctx context.Context, id uuid.UUID) (*holding.Holding, error) {
	return Get(ctx, s.db, id)
}

func Get(ctx context.Context, q Querier, id uuid.UUID) (*holding.Holding, error) {
	query := `SELECT ` + selectHoldingColumns + ` FROM holdings WHERE id = $1`

	h, err := scanHolding(q.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, holding.ErrNotFound
		}

		return nil, fmt.Errorf("getting holding: %w", err)
	}

	return h, nil
}

func (s *Store) FindBySymbol(ctx context.Context, userID uuid.UUID, symbol string) (*holding.Holding, error) {
	query := `SELECT ` + selectHoldingColumns + ` FROM holdings WHERE user_id = $1 AND symbol = $2`

	h, err := scanHolding(s.db.QueryRowContext(ctx, query, userID, symbol))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, holding.ErrNotFound
		}

		return nil, fmt.Errorf("finding holding: %w", err)
	}

	return h, nil
}

func (s *Store) ListHoldings(ctx context.Context, userID uuid.UUID) ([]*holding.Holding, error) {
	return List(ctx, s.db, userID)
}

// List returns the user's holdings ordered by symbol.
func List(ctx context.Context, q Querier, userID uuid.UUID) ([]*holding.Holding, error) {
	query := `SELECT ` + selectHoldingColumns + ` FROM holdings WHERE user_id = $1 ORDER BY symbol ASC`

	rows, err := q.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("listing holdings: %w", err)
	}
	defer rows.Close()

	var holdings []*holding.Holding

	for rows.Next() {
		h, err := scanHolding(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning holding: %w", err)
		}

		holdings = append(holdings, h)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating holding rows: %w", err)
	}

	return holdings, nil
}
