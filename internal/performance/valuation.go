package performance

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/folio/internal/holding"
	"github.com/MrJamesThe3rd/folio/internal/ledger"
	"github.com/MrJamesThe3rd/folio/internal/pricing"
	"github.com/MrJamesThe3rd/folio/internal/transaction"
)

// Book is everything a valuation reads, loaded from one consistent snapshot.
type Book struct {
	Holdings     []*holding.Holding
	Transactions []*transaction.Transaction
	Entries      []*ledger.Entry
}

// Unvalued names a position that has no close on or before Date.
type Unvalued struct {
	HoldingID  uuid.UUID
	Instrument string
	Date       time.Time
}

type Position struct {
	HoldingID  uuid.UUID
	Instrument string
	Quantity   int64
	Price      decimal.NullDecimal
	PriceDate  time.Time
	Value      decimal.NullDecimal
}

// Valuation is the portfolio value on one day. Holdings and Total are invalid
// when any open position is unvalued.
type Valuation struct {
	Date      time.Time
	Positions []Position
	Holdings  decimal.NullDecimal
	Cash      decimal.Decimal
	Total     decimal.NullDecimal
	Unvalued  []Unvalued
}

// QuantityAsOf nets BUY and SELL quantities of a holding dated on or before t.
func QuantityAsOf(txs []*transaction.Transaction, holdingID uuid.UUID, t time.Time) int64 {
	var q int64

	for _, tx := range txs {
		if tx.HoldingID != holdingID || tx.Date.After(t) {
			continue
		}

		switch tx.Type {
		case transaction.TypeBuy:
			q += tx.Quantity
		case transaction.TypeSell:
			q -= tx.Quantity
		}
	}

	return q
}

// Value prices every open position of the book on t and adds the cash
// balance. Missing closes are reported, not treated as zero.
func Value(ctx context.Context, src pricing.Source, book *Book, t time.Time) (*Valuation, error) {
	v := &Valuation{
		Date: t,
		Cash: ledger.BalanceAsOf(book.Entries, t),
	}

	holdings := decimal.Zero

	for _, h := range book.Holdings {
		q := QuantityAsOf(book.Transactions, h.ID, t)
		if q == 0 {
			continue
		}

		pos := Position{HoldingID: h.ID, Instrument: h.Symbol, Quantity: q}

		c, err := src.PriceOnOrBefore(ctx, h.Symbol, t)
		switch {
		case errors.Is(err, pricing.ErrNotFound):
			v.Unvalued = append(v.Unvalued, Unvalued{HoldingID: h.ID, Instrument: h.Symbol, Date: t})
		case err != nil:
			return nil, fmt.Errorf("pricing %s on %s: %w", h.Symbol, t.Format(time.DateOnly), err)
		default:
			value := c.Price.Mul(decimal.NewFromInt(q))
			pos.Price = decimal.NewNullDecimal(c.Price)
			pos.PriceDate = c.Date
			pos.Value = decimal.NewNullDecimal(value)
			holdings = holdings.Add(value)
		}

		v.Positions = append(v.Positions, pos)
	}

	if len(v.Unvalued) == 0 {
		v.Holdings = decimal.NewNullDecimal(holdings)
		v.Total = decimal.NewNullDecimal(holdings.Add(v.Cash))
	}

	return v, nil
}
