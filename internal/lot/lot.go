// Package lot matches sells against open buy lots and derives realized P&L.
//
// Recompute is a pure function of a holding's transaction list. Callers
// persist its Result as a whole or not at all.
package lot

import (
	"bytes"
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/folio/internal/transaction"
)

// Lot is the open remainder of one BUY transaction.
type Lot struct {
	BuyID     uuid.UUID
	Date      time.Time
	Quantity  int64
	Remaining int64
	Price     decimal.Decimal
}

// Match is one slice of a sell consumed from one lot.
type Match struct {
	HoldingID uuid.UUID
	SellID    uuid.UUID
	BuyID     uuid.UUID
	Quantity  int64
	BuyPrice  decimal.Decimal
	SellPrice decimal.Decimal
	Realized  decimal.Decimal
	BuyDate   time.Time
	SellDate  time.Time
}

// Sale aggregates the matches of one SELL transaction.
type Sale struct {
	SellID   uuid.UUID
	Date     time.Time
	Quantity int64
	Proceeds decimal.Decimal
	Cost     decimal.Decimal
	Realized decimal.Decimal
}

type Result struct {
	HoldingID uuid.UUID
	Matches   []Match
	Open      []Lot
	Sales     []Sale
}

// RealizedFor returns the realized P&L of a sell, false if it is not a sell
// of this holding.
func (r *Result) RealizedFor(sellID uuid.UUID) (decimal.Decimal, bool) {
	for _, s := range r.Sales {
		if s.SellID == sellID {
			return s.Realized, true
		}
	}

	return decimal.Zero, false
}

func (r *Result) TotalRealized() decimal.Decimal {
	total := decimal.Zero
	for _, m := range r.Matches {
		total = total.Add(m.Realized)
	}

	return total
}

func (r *Result) OpenQuantity() int64 {
	var q int64
	for _, l := range r.Open {
		q += l.Remaining
	}

	return q
}

// CostBasis is the purchase cost of the open lots.
func (r *Result) CostBasis() decimal.Decimal {
	total := decimal.Zero
	for _, l := range r.Open {
		total = total.Add(l.Price.Mul(decimal.NewFromInt(l.Remaining)))
	}

	return total
}

// Sort orders transactions by date, then insertion sequence. The ID is a last
// resort for unsaved transactions that share a zero Seq.
func Sort(txs []*transaction.Transaction) {
	slices.SortStableFunc(txs, func(a, b *transaction.Transaction) int {
		switch {
		case a.Before(b):
			return -1
		case b.Before(a):
			return 1
		}

		return bytes.Compare(a.ID[:], b.ID[:])
	})
}

// Recompute replays every transaction of one holding and returns the full set
// of matches and open lots. On oversell nothing is returned.
func Recompute(holdingID uuid.UUID, txs []*transaction.Transaction, strategy Strategy) (*Result, error) {
	if strategy == nil {
		strategy = FIFO{}
	}

	ordered := slices.Clone(txs)

	for _, tx := range ordered {
		if err := transaction.Validate(tx); err != nil {
			return nil, err
		}

		if tx.HoldingID != holdingID {
			return nil, &transaction.ValidationError{
				TransactionID: tx.ID,
				Field:         "holding_id",
				Reason:        fmt.Sprintf("belongs to %s, not %s", tx.HoldingID, holdingID),
			}
		}
	}

	Sort(ordered)

	res := &Result{HoldingID: holdingID}

	var open []Lot

	for _, tx := range ordered {
		switch tx.Type {
		case transaction.TypeBuy:
			open = append(open, Lot{
				BuyID:     tx.ID,
				Date:      tx.Date,
				Quantity:  tx.Quantity,
				Remaining: tx.Quantity,
				Price:     tx.Price,
			})

		case transaction.TypeSell:
			var err error

			open, err = sell(res, open, tx, strategy)
			if err != nil {
				return nil, err
			}
		}
	}

	res.Open = open

	return res, nil
}

func sell(res *Result, open []Lot, tx *transaction.Transaction, strategy Strategy) ([]Lot, error) {
	var available int64
	for _, l := range open {
		available += l.Remaining
	}

	if tx.Quantity > available {
		return nil, &OversellError{
			HoldingID:     res.HoldingID,
			TransactionID: tx.ID,
			Date:          tx.Date,
			Requested:     tx.Quantity,
			Available:     available,
		}
	}

	sale := Sale{SellID: tx.ID, Date: tx.Date, Quantity: tx.Quantity, Cost: decimal.Zero, Realized: decimal.Zero}
	remaining := tx.Quantity

	for _, idx := range strategy.Order(open, tx) {
		if remaining == 0 {
			break
		}

		if idx < 0 || idx >= len(open) {
			return nil, fmt.Errorf("lot strategy returned index %d for %d open lots", idx, len(open))
		}

		l := &open[idx]
		if l.Remaining == 0 {
			continue
		}

		q := min(remaining, l.Remaining)
		qty := decimal.NewFromInt(q)
		realized := tx.Price.Sub(l.Price).Mul(qty)

		res.Matches = append(res.Matches, Match{
			HoldingID: res.HoldingID,
			SellID:    tx.ID,
			BuyID:     l.BuyID,
			Quantity:  q,
			BuyPrice:  l.Price,
			SellPrice: tx.Price,
			Realized:  realized,
			BuyDate:   l.Date,
			SellDate:  tx.Date,
		})

		sale.Cost = sale.Cost.Add(l.Price.Mul(qty))
		sale.Realized = sale.Realized.Add(realized)
		l.Remaining -= q
		remaining -= q
	}

	if remaining > 0 {
		return nil, &OversellError{
			HoldingID:     res.HoldingID,
			TransactionID: tx.ID,
			Date:          tx.Date,
			Requested:     tx.Quantity,
			Available:     available,
		}
	}

	sale.Proceeds = tx.Value()
	res.Sales = append(res.Sales, sale)

	return slices.DeleteFunc(open, func(l Lot) bool { return l.Remaining == 0 }), nil
}
