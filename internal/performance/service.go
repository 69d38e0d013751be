package performance

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/folio/internal/calendar"
	"github.com/MrJamesThe3rd/folio/internal/ledger"
	"github.com/MrJamesThe3rd/folio/internal/lot"
	"github.com/MrJamesThe3rd/folio/internal/pricing"
	"github.com/MrJamesThe3rd/folio/internal/transaction"
)

// maxSeriesDays bounds Series so one request cannot price years of days.
const maxSeriesDays = 366

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=performance
type Repository interface {
	// LoadBook reads the user's holdings, transactions and ledger from one
	// snapshot, so a concurrent recompute is either fully visible or not.
	LoadBook(ctx context.Context, userID uuid.UUID) (*Book, error)
}

type Service struct {
	repo   Repository
	prices pricing.Source
}

func NewService(repo Repository, prices pricing.Source) *Service {
	return &Service{repo: repo, prices: prices}
}

func (s *Service) Gain(ctx context.Context, userID uuid.UUID, start, end time.Time) (*Gain, error) {
	book, err := s.repo.LoadBook(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load book: %w", err)
	}

	return ComputeGain(ctx, s.prices, book, calendar.Day(start), calendar.Day(end))
}

// WindowedGain is Gain over the canonical window of tf ending on end.
func (s *Service) WindowedGain(ctx context.Context, userID uuid.UUID, tf Timeframe, end time.Time) (*Gain, error) {
	if _, err := ParseTimeframe(string(tf)); err != nil {
		return nil, err
	}

	end = calendar.Day(end)

	g, err := s.Gain(ctx, userID, tf.Start(end), end)
	if err != nil {
		return nil, err
	}

	g.Timeframe = tf

	return g, nil
}

func (s *Service) Valuation(ctx context.Context, userID uuid.UUID, t time.Time) (*Valuation, error) {
	book, err := s.repo.LoadBook(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load book: %w", err)
	}

	return Value(ctx, s.prices, book, calendar.Day(t))
}

// Point is one day of the value series.
type Point struct {
	Date     time.Time
	Holdings decimal.NullDecimal
	Cash     decimal.Decimal
	Total    decimal.NullDecimal
}

// Series values the portfolio on every day in [from, to].
func (s *Service) Series(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]Point, error) {
	from, to = calendar.Day(from), calendar.Day(to)

	if to.Before(from) {
		return nil, fmt.Errorf("%w: %s is after %s", ErrInvalidWindow, from.Format(time.DateOnly), to.Format(time.DateOnly))
	}

	if to.Sub(from) > maxSeriesDays*24*time.Hour {
		return nil, fmt.Errorf("%w: series longer than %d days", ErrInvalidWindow, maxSeriesDays)
	}

	book, err := s.repo.LoadBook(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load book: %w", err)
	}

	var points []Point

	for d := from; !d.After(to); d = calendar.AddDays(d, 1) {
		v, err := Value(ctx, s.prices, book, d)
		if err != nil {
			return nil, err
		}

		points = append(points, Point{Date: d, Holdings: v.Holdings, Cash: v.Cash, Total: v.Total})
	}

	return points, nil
}

// CashSummary breaks the cash position down for the cash widgets.
type CashSummary struct {
	AsOf         time.Time
	Balance      decimal.Decimal
	NetDeposited decimal.Decimal
	Deployed     decimal.Decimal
	Realized     decimal.Decimal
}

// CashSummary reports available cash, net external capital, the cost basis
// still invested in open lots and realized P&L, all as of asOf.
func (s *Service) CashSummary(ctx context.Context, userID uuid.UUID, asOf time.Time) (*CashSummary, error) {
	asOf = calendar.Day(asOf)

	book, err := s.repo.LoadBook(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load book: %w", err)
	}

	cs := &CashSummary{
		AsOf:         asOf,
		Balance:      ledger.BalanceAsOf(book.Entries, asOf),
		NetDeposited: ledger.NetExternalFlow(book.Entries, time.Time{}, asOf),
		Deployed:     decimal.Zero,
		Realized:     decimal.Zero,
	}

	byHolding := map[uuid.UUID][]*transaction.Transaction{}

	for _, tx := range book.Transactions {
		if !tx.Date.After(asOf) {
			byHolding[tx.HoldingID] = append(byHolding[tx.HoldingID], tx)
		}
	}

	for _, h := range book.Holdings {
		res, err := lot.Recompute(h.ID, byHolding[h.ID], lot.FIFO{})
		if err != nil {
			return nil, fmt.Errorf("recompute %s: %w", h.Symbol, err)
		}

		cs.Deployed = cs.Deployed.Add(res.CostBasis())
		cs.Realized = cs.Realized.Add(res.TotalRealized())
	}

	return cs, nil
}
