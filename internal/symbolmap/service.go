package symbolmap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/MrJamesThe3rd/folio/internal/holding"
)

var ErrInvalid = errors.New("invalid symbol mapping")

// Mapping rewrites broker instrument names containing RawPattern to Symbol.
type Mapping struct {
	RawPattern string
	Symbol     string
}

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=symbolmap
type Repository interface {
	// FindMatch returns the symbol of the longest pattern contained in raw,
	// or "" when nothing matches.
	FindMatch(ctx context.Context, raw string) (string, error)
	SaveMapping(ctx context.Context, m Mapping) error
	ListMappings(ctx context.Context) ([]Mapping, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// seriesSuffixes are exchange series markers that tradebooks append to the
// trading symbol.
var seriesSuffixes = []string{"-EQ", "-BE", "-BZ", "-SM", " EQ", " BE"}

// Suggest resolves a raw broker instrument name to a symbol. A learned
// mapping wins; otherwise the name is normalized and stripped of its series
// suffix.
func (s *Service) Suggest(ctx context.Context, raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("%w: empty instrument name", ErrInvalid)
	}

	symbol, err := s.repo.FindMatch(ctx, raw)
	if err != nil {
		return "", fmt.Errorf("finding mapping for %q: %w", raw, err)
	}

	if symbol != "" {
		return symbol, nil
	}

	return stripSeries(holding.NormalizeSymbol(raw)), nil
}

// Learn remembers that names containing rawPattern refer to symbol.
func (s *Service) Learn(ctx context.Context, rawPattern, symbol string) error {
	m := Mapping{
		RawPattern: strings.TrimSpace(rawPattern),
		Symbol:     holding.NormalizeSymbol(symbol),
	}

	if m.RawPattern == "" || m.Symbol == "" {
		return fmt.Errorf("%w: raw_pattern and symbol are required", ErrInvalid)
	}

	if err := s.repo.SaveMapping(ctx, m); err != nil {
		return fmt.Errorf("saving mapping: %w", err)
	}

	slog.Info("symbol mapping learned", "raw_pattern", m.RawPattern, "symbol", m.Symbol)

	return nil
}

func (s *Service) List(ctx context.Context) ([]Mapping, error) {
	return s.repo.ListMappings(ctx)
}

func stripSeries(symbol string) string {
	for _, suffix := range seriesSuffixes {
		if trimmed, ok := strings.CutSuffix(symbol, suffix); ok && trimmed != "" {
			return strings.TrimSpace(trimmed)
		}
	}

	return symbol
}
