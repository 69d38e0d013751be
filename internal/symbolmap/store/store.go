package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MrJamesThe3rd/folio/internal/symbolmap"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) FindMatch(ctx context.Context, raw string) (string, error) {
	query := `
		SELECT symbol
		FROM symbol_mappings
		WHERE $1 ILIKE '%' || raw_pattern || '%'
		ORDER BY LENGTH(raw_pattern) DESC, created_at DESC
		LIMIT 1
	`

	var symbol string

	err := s.db.QueryRowContext(ctx, query, raw).Scan(&symbol)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", nil
		}

		return "", fmt.Errorf("finding match: %w", err)
	}

	return symbol, nil
}

// SaveMapping inserts the mapping or repoints an existing pattern.
func (s *Store) SaveMapping(ctx context.Context, m symbolmap.Mapping) error {
	query := `
		INSERT INTO symbol_mappings (raw_pattern, symbol, created_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (raw_pattern) DO UPDATE SET symbol = EXCLUDED.symbol
	`

	if _, err := s.db.ExecContext(ctx, query, m.RawPattern, m.Symbol); err != nil {
		return fmt.Errorf("saving mapping: %w", err)
	}

	return nil
}

func (s *Store) ListMappings(ctx context.Context) ([]symbolmap.Mapping, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT raw_pattern, symbol FROM symbol_mappings ORDER BY raw_pattern`)
	if err != nil {
		return nil, fmt.Errorf("listing mappings: %w", err)
	}
	defer rows.Close()

	var mappings []symbolmap.Mapping

	for rows.Next() {
		var m symbolmap.Mapping
		if err := rows.Scan(&m.RawPattern, &m.Symbol); err != nil {
			return nil, fmt.Errorf("scanning mapping: %w", err)
		}

		mappings = append(mappings, m)
	}

	return mappings, rows.Err()
}
