package export

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/folio/internal/calendar"
	"github.com/MrJamesThe3rd/folio/internal/holding"
	"github.com/MrJamesThe3rd/folio/internal/lot"
	"github.com/MrJamesThe3rd/folio/internal/money"
	"github.com/MrJamesThe3rd/folio/internal/pricing"
	"github.com/MrJamesThe3rd/folio/internal/transaction"
)

// Row is one line of the lot reconciliation: a matched slice of a buy lot and
// a sell, or an open lot when SellDate is zero.
type Row struct {
	HoldingID    uuid.UUID
	Symbol       string
	BuyDate      time.Time
	BuyQuantity  int64
	BuyPrice     decimal.Decimal
	SellDate     time.Time
	SellQuantity int64
	SellPrice    decimal.Decimal
	Realized     decimal.Decimal
	LastPrice    decimal.NullDecimal
}

func (r Row) Open() bool {
	return r.SellDate.IsZero()
}

type Options struct {
	End time.Time
	// WindowDays keeps rows overlapping (End - WindowDays, End]. Zero keeps
	// all history.
	WindowDays int
}

// Service builds lot reconciliation reports.
type Service struct {
	holdings     *holding.Service
	transactions *transaction.Service
	prices       pricing.Source
}

func NewService(holdings *holding.Service, transactions *transaction.Service, prices pricing.Source) *Service {
	return &Service{
		holdings:     holdings,
		transactions: transactions,
		prices:       prices,
	}
}

// Lots replays every holding of the user up to opts.End and returns the
// matched slices and the lots still open at that date.
func (s *Service) Lots(ctx context.Context, userID uuid.UUID, opts Options) ([]Row, error) {
	end := calendar.Day(opts.End)

	holdings, err := s.holdings.List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("listing holdings: %w", err)
	}

	txs, err := s.transactions.List(ctx, transaction.ListFilter{UserID: &userID, EndDate: &end})
	if err != nil {
		return nil, fmt.Errorf("listing transactions: %w", err)
	}

	byHolding := make(map[uuid.UUID][]*transaction.Transaction)
	for _, tx := range txs {
		byHolding[tx.HoldingID] = append(byHolding[tx.HoldingID], tx)
	}

	var rows []Row

	for _, h := range holdings {
		hTxs := byHolding[h.ID]
		if len(hTxs) == 0 {
			continue
		}

		res, err := lot.Recompute(h.ID, hTxs, lot.FIFO{})
		if err != nil {
			return nil, fmt.Errorf("replaying %s: %w", h.Symbol, err)
		}

		last, err := s.lastPrice(ctx, h.Symbol, end)
		if err != nil {
			return nil, err
		}

		for _, m := range res.Matches {
			rows = append(rows, Row{
				HoldingID:    h.ID,
				Symbol:       h.Symbol,
				BuyDate:      m.BuyDate,
				BuyQuantity:  m.Quantity,
				BuyPrice:     m.BuyPrice,
				SellDate:     m.SellDate,
				SellQuantity: m.Quantity,
				SellPrice:    m.SellPrice,
				Realized:     m.Realized,
				LastPrice:    last,
			})
		}

		for _, l := range res.Open {
			rows = append(rows, Row{
				HoldingID:   h.ID,
				Symbol:      h.Symbol,
				BuyDate:     l.Date,
				BuyQuantity: l.Remaining,
				BuyPrice:    l.Price,
				LastPrice:   last,
			})
		}
	}

	if opts.WindowDays > 0 {
		start := calendar.AddDays(end, -opts.WindowDays)
		rows = slices.DeleteFunc(rows, func(r Row) bool {
			return !r.Open() && r.SellDate.Before(start)
		})
	}

	slices.SortStableFunc(rows, func(a, b Row) int {
		if c := a.BuyDate.Compare(b.BuyDate); c != 0 {
			return c
		}

		if c := strings.Compare(a.Symbol, b.Symbol); c != 0 {
			return c
		}

		if a.Open() != b.Open() {
			if a.Open() {
				return 1
			}

			return -1
		}

		return a.SellDate.Compare(b.SellDate)
	})

	return rows, nil
}

func (s *Service) lastPrice(ctx context.Context, symbol string, end time.Time) (decimal.NullDecimal, error) {
	c, err := s.prices.PriceOnOrBefore(ctx, symbol, end)
	if errors.Is(err, pricing.ErrNotFound) {
		return decimal.NullDecimal{}, nil
	}

	if err != nil {
		return decimal.NullDecimal{}, fmt.Errorf("pricing %s: %w", symbol, err)
	}

	return decimal.NewNullDecimal(c.Price), nil
}

// Markdown renders rows as a table with amounts in currency.
func Markdown(rows []Row, currency string) string {
	var sb strings.Builder

	sb.WriteString("| Buy date | Stock | Qty | Buy price | Sell date | Sell price | Realized | Last price |\n")
	sb.WriteString("|---|---|---:|---:|---|---:|---:|---:|\n")

	total := decimal.Zero

	for _, r := range rows {
		sellDate, sellPrice, realized := "open", "", ""
		if !r.Open() {
			sellDate = calendar.Format(r.SellDate)
			sellPrice = money.Format(r.SellPrice, currency)
			realized = money.Signed(r.Realized, currency)
			total = total.Add(r.Realized)
		}

		last := "n/a"
		if r.LastPrice.Valid {
			last = money.Format(r.LastPrice.Decimal, currency)
		}

		fmt.Fprintf(&sb, "| %s | %s | %d | %s | %s | %s | %s | %s |\n",
			calendar.Format(r.BuyDate), r.Symbol, r.BuyQuantity, money.Format(r.BuyPrice, currency),
			sellDate, sellPrice, realized, last)
	}

	fmt.Fprintf(&sb, "\n**Realized in report:** %s\n", money.Signed(total, currency))

	return sb.String()
}
