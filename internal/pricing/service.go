package pricing

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/MrJamesThe3rd/folio/internal/calendar"
	"github.com/MrJamesThe3rd/folio/internal/holding"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=pricing
type Repository interface {
	PriceOnOrBefore(ctx context.Context, instrument string, date time.Time) (*Close, error)
	InsertCloses(ctx context.Context, closes []Close) (int, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) PriceOnOrBefore(ctx context.Context, instrument string, date time.Time) (*Close, error) {
	return s.repo.PriceOnOrBefore(ctx, holding.NormalizeSymbol(instrument), calendar.Day(date))
}

// Record stores closes that are not yet known. Existing (instrument, date)
// pairs keep their first value. It returns how many closes were new.
func (s *Service) Record(ctx context.Context, closes []Close) (int, error) {
	normalized := make([]Close, 0, len(closes))

	for i, c := range closes {
		c.Instrument = holding.NormalizeSymbol(c.Instrument)

		switch {
		case c.Instrument == "":
			return 0, fmt.Errorf("%w: close %d has no instrument", ErrInvalid, i)
		case c.Date.IsZero():
			return 0, fmt.Errorf("%w: close %d has no date", ErrInvalid, i)
		case c.Price.IsNegative():
			return 0, fmt.Errorf("%w: close %d has a negative price", ErrInvalid, i)
		}

		c.Date = calendar.Day(c.Date)
		normalized = append(normalized, c)
	}

	if len(normalized) == 0 {
		return 0, nil
	}

	n, err := s.repo.InsertCloses(ctx, normalized)
	if err != nil {
		return 0, fmt.Errorf("insert closes: %w", err)
	}

	slog.Info("recorded closes", "received", len(normalized), "inserted", n)

	return n, nil
}
