// Package portfolio applies transaction changes to a holding and regenerates
// its derived state (lot matches and cash settlements) in the same unit of
// work.
package portfolio

import (
	"fmt"
	"hash/fnv"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/folio/internal/lot"
	"github.com/MrJamesThe3rd/folio/internal/transaction"
)

type Op string

const (
	OpCreate Op = "create"
	OpUpdate Op = "update"
	OpDelete Op = "delete"
)

// Change is one user edit. For OpCreate Transaction carries the new trade and
// is filled with its stored ID and Seq on success. For OpUpdate it carries the
// ID and the new field values. For OpDelete only the ID is read.
type Change struct {
	Op          Op
	UserID      uuid.UUID
	Transaction *transaction.Transaction
}

// Summary is the derived state of one holding after its last recompute.
// Published summaries are shared; callers must not modify them.
type Summary struct {
	HoldingID    uuid.UUID
	OpenQuantity int64
	CostBasis    decimal.Decimal
	AverageCost  decimal.Decimal
	Realized     decimal.Decimal
	Sales        []lot.Sale
	Open         []lot.Lot
	ComputedAt   time.Time
	// Version identifies the transaction history the summary was computed
	// from. A published summary is served only while storage still matches it.
	Version uint64
}

func newSummary(res *lot.Result, version uint64) *Summary {
	s := &Summary{
		Version:      version,
		HoldingID:    res.HoldingID,
		OpenQuantity: res.OpenQuantity(),
		CostBasis:    res.CostBasis(),
		AverageCost:  decimal.Zero,
		Realized:     res.TotalRealized(),
		Sales:        res.Sales,
		Open:         res.Open,
		ComputedAt:   time.Now().UTC(),
	}

	if s.OpenQuantity > 0 {
		s.AverageCost = s.CostBasis.Div(decimal.NewFromInt(s.OpenQuantity))
	}

	return s
}

// historyVersion hashes the fields of txs that lot matching reads, in ledger
// order, so writes from any process change it.
func historyVersion(txs []*transaction.Transaction) uint64 {
	ordered := slices.Clone(txs)
	lot.Sort(ordered)

	h := fnv.New64a()
	for _, tx := range ordered {
		fmt.Fprintf(h, "%s|%d|%s|%d|%s|%s\n",
			tx.ID, tx.Seq, tx.Type, tx.Quantity, tx.Price.String(), tx.Date.Format(time.DateOnly))
	}

	return h.Sum64()
}
