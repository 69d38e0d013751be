package performance

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/folio/internal/ledger"
	"github.com/MrJamesThe3rd/folio/internal/pricing"
)

var hundred = decimal.NewFromInt(100)

// Gain is the cash-flow adjusted result over (Start, End]. Amount is invalid
// when either valuation is; Percent is also invalid when the capital base
// V(start) + NetCashFlow is zero.
type Gain struct {
	Timeframe      Timeframe
	Start          time.Time
	End            time.Time
	ValuationStart *Valuation
	ValuationEnd   *Valuation
	NetCashFlow    decimal.Decimal
	Amount         decimal.NullDecimal
	Percent        decimal.NullDecimal
	Unvalued       []Unvalued
}

// ComputeGain values the book at both ends of (start, end] and nets out the
// external cash that entered or left in between. The empty window (d, d],
// which a monthly window ending on the 1st produces, has a zero gain.
func ComputeGain(ctx context.Context, src pricing.Source, book *Book, start, end time.Time) (*Gain, error) {
	if start.After(end) {
		return nil, fmt.Errorf("%w: start %s is after end %s",
			ErrInvalidWindow, start.Format(time.DateOnly), end.Format(time.DateOnly))
	}

	vs, err := Value(ctx, src, book, start)
	if err != nil {
		return nil, err
	}

	ve, err := Value(ctx, src, book, end)
	if err != nil {
		return nil, err
	}

	g := &Gain{
		Start:          start,
		End:            end,
		ValuationStart: vs,
		ValuationEnd:   ve,
		NetCashFlow:    ledger.NetExternalFlow(book.Entries, start, end),
		Unvalued:       append(append([]Unvalued(nil), vs.Unvalued...), ve.Unvalued...),
	}

	if !vs.Total.Valid || !ve.Total.Valid {
		return g, nil
	}

	amount := ve.Total.Decimal.Sub(vs.Total.Decimal).Sub(g.NetCashFlow)
	g.Amount = decimal.NewNullDecimal(amount)

	base := vs.Total.Decimal.Add(g.NetCashFlow)
	if !base.IsZero() {
		g.Percent = decimal.NewNullDecimal(amount.Div(base).Mul(hundred))
	}

	return g, nil
}
