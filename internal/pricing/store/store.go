package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/MrJamesThe3rd/folio/internal/pricing"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) PriceOnOrBefore(ctx context.Context, instrument string, date time.Time) (*pricing.Close, error) {
	query := `
		SELECT instrument, trade_date, close, source
		FROM daily_prices
		WHERE instrument = $1 AND trade_date <= $2
		ORDER BY trade_date DESC
		LIMIT 1
	`

	var c pricing.Close

	err := s.db.QueryRowContext(ctx, query, instrument, date).Scan(&c.Instrument, &c.Date, &c.Price, &c.Source)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, pricing.ErrNotFound
		}

		return nil, fmt.Errorf("getting close: %w", err)
	}

	c.Date = c.Date.UTC()

	return &c, nil
}

// InsertCloses adds the closes in one transaction, skipping pairs that
// already exist.
func (s *Store) InsertCloses(ctx context.Context, closes []pricing.Close) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO daily_prices (instrument, trade_date, close, source, fetched_at)
		VALUES ($1, $2, $3, $4, NOW())
		ON CONFLICT (instrument, trade_date) DO NOTHING
	`

	var inserted int

	for _, c := range closes {
		res, err := tx.ExecContext(ctx, query, c.Instrument, c.Date, c.Price, c.Source)
		if err != nil {
			return 0, fmt.Errorf("inserting close %s %s: %w", c.Instrument, c.Date.Format(time.DateOnly), err)
		}

		n, err := res.RowsAffected()
		if err != nil {
			return 0, fmt.Errorf("inserting close: %w", err)
		}

		inserted += int(n)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing transaction: %w", err)
	}

	return inserted, nil
}
