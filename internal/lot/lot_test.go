package lot_test

import (
	"math/rand/v2"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/folio/internal/lot"
	"github.com/MrJamesThe3rd/folio/internal/transaction"
)

var holdingID = uuid.MustParse("6f1c2a9e-0d6b-4b8e-9a57-1f7f0b8f3a10")

func day(n int) time.Time {
	return time.Date(2024, 1, n, 0, 0, 0, 0, time.UTC)
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

type builder struct {
	seq int64
	txs []*transaction.Transaction
}

func (b *builder) add(typ transaction.Type, qty int64, price string, date time.Time) *transaction.Transaction {
	b.seq++
	tx := &transaction.Transaction{
		ID:        uuid.New(),
		Seq:       b.seq,
		HoldingID: holdingID,
		Type:      typ,
		Quantity:  qty,
		Price:     dec(price),
		Date:      date,
	}
	b.txs = append(b.txs, tx)

	return tx
}

func (b *builder) buy(qty int64, price string, date time.Time) *transaction.Transaction {
	return b.add(transaction.TypeBuy, qty, price, date)
}

func (b *builder) sell(qty int64, price string, date time.Time) *transaction.Transaction {
	return b.add(transaction.TypeSell, qty, price, date)
}

func TestRecompute_FIFOAcrossTwoLots(t *testing.T) {
	var b builder

	first := b.buy(100, "10", day(1))
	second := b.buy(50, "12", day(2))
	s := b.sell(120, "15", day(3))

	res, err := lot.Recompute(holdingID, b.txs, lot.FIFO{})
	require.NoError(t, err)

	require.Len(t, res.Matches, 2)

	assert.Equal(t, first.ID, res.Matches[0].BuyID)
	assert.Equal(t, s.ID, res.Matches[0].SellID)
	assert.Equal(t, int64(100), res.Matches[0].Quantity)
	assert.True(t, dec("500").Equal(res.Matches[0].Realized))

	assert.Equal(t, second.ID, res.Matches[1].BuyID)
	assert.Equal(t, int64(20), res.Matches[1].Quantity)
	assert.True(t, dec("60").Equal(res.Matches[1].Realized))

	require.Len(t, res.Open, 1)
	assert.Equal(t, second.ID, res.Open[0].BuyID)
	assert.Equal(t, int64(30), res.Open[0].Remaining)
	assert.Equal(t, int64(50), res.Open[0].Quantity)
	assert.True(t, dec("12").Equal(res.Open[0].Price))

	realized, ok := res.RealizedFor(s.ID)
	require.True(t, ok)
	assert.True(t, dec("560").Equal(realized))
	assert.True(t, dec("560").Equal(res.TotalRealized()))
	assert.Equal(t, int64(30), res.OpenQuantity())
	assert.True(t, dec("360").Equal(res.CostBasis()))

	require.Len(t, res.Sales, 1)
	assert.True(t, dec("1800").Equal(res.Sales[0].Proceeds))
	assert.True(t, dec("1240").Equal(res.Sales[0].Cost))
}

func TestRecompute_OversellWithoutBuys(t *testing.T) {
	var b builder

	s := b.sell(10, "50", day(1))

	res, err := lot.Recompute(holdingID, b.txs, lot.FIFO{})
	require.ErrorIs(t, err, lot.ErrOversell)
	assert.Nil(t, res)

	var oerr *lot.OversellError
	require.ErrorAs(t, err, &oerr)
	assert.Equal(t, holdingID, oerr.HoldingID)
	assert.Equal(t, s.ID, oerr.TransactionID)
	assert.Equal(t, day(1), oerr.Date)
	assert.Equal(t, int64(10), oerr.Requested)
	assert.Equal(t, int64(0), oerr.Available)
}

func TestRecompute_OversellJudgedAtPosition(t *testing.T) {
	var b builder

	b.buy(10, "10", day(1))
	s := b.sell(15, "12", day(2))
	// A later buy does not cover an earlier sell.
	b.buy(10, "11", day(3))

	_, err := lot.Recompute(holdingID, b.txs, nil)

	var oerr *lot.OversellError
	require.ErrorAs(t, err, &oerr)
	assert.Equal(t, s.ID, oerr.TransactionID)
	assert.Equal(t, int64(10), oerr.Available)
}

func TestRecompute_SameDayOrderedBySeq(t *testing.T) {
	var b builder

	// Inserted sell first, buy second, same date: the sell comes first and oversells.
	b.sell(5, "10", day(1))
	b.buy(5, "10", day(1))

	_, err := lot.Recompute(holdingID, b.txs, nil)
	assert.ErrorIs(t, err, lot.ErrOversell)

	var ok builder

	buy := ok.buy(5, "10", day(1))
	ok.sell(5, "9", day(1))

	res, err := lot.Recompute(holdingID, ok.txs, nil)
	require.NoError(t, err)
	require.Len(t, res.Matches, 1)
	assert.Equal(t, buy.ID, res.Matches[0].BuyID)
	assert.True(t, dec("-5").Equal(res.Matches[0].Realized))
	assert.Empty(t, res.Open)
}

func TestSort_DateThenSeqThenID(t *testing.T) {
	var b builder

	late := b.buy(1, "10", day(3))
	first := b.buy(1, "10", day(1))
	second := b.sell(1, "10", day(1))

	low := &transaction.Transaction{ID: uuid.MustParse("00000000-0000-0000-0000-000000000001"), Date: day(2)}
	high := &transaction.Transaction{ID: uuid.MustParse("00000000-0000-0000-0000-000000000002"), Date: day(2)}

	txs := []*transaction.Transaction{late, high, second, low, first}
	lot.Sort(txs)

	assert.Equal(t, []*transaction.Transaction{first, second, low, high, late}, txs)
}

func TestRecompute_InputOrderDoesNotMatter(t *testing.T) {
	var b builder

	b.buy(10, "100", day(1))
	b.buy(10, "110", day(2))
	b.sell(5, "120", day(3))
	b.buy(3, "90", day(3))
	b.sell(12, "130", day(4))
	b.sell(6, "80", day(5))

	want, err := lot.Recompute(holdingID, b.txs, nil)
	require.NoError(t, err)

	shuffled := append([]*transaction.Transaction(nil), b.txs...)
	rand.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })

	got, err := lot.Recompute(holdingID, shuffled, nil)
	require.NoError(t, err)

	assert.Equal(t, want, got)

	again, err := lot.Recompute(holdingID, b.txs, nil)
	require.NoError(t, err)
	assert.Equal(t, want, again)
}

func TestRecompute_MatchInvariants(t *testing.T) {
	var b builder

	b.buy(7, "10", day(1))
	b.buy(13, "11", day(2))
	b.sell(9, "12", day(3))
	b.buy(4, "9", day(4))
	b.sell(11, "10", day(5))
	b.sell(2, "15", day(6))

	res, err := lot.Recompute(holdingID, b.txs, nil)
	require.NoError(t, err)

	sold := map[uuid.UUID]int64{}
	consumed := map[uuid.UUID]int64{}

	for _, m := range res.Matches {
		assert.Positive(t, m.Quantity)
		assert.True(t, m.SellPrice.Sub(m.BuyPrice).Mul(decimal.NewFromInt(m.Quantity)).Equal(m.Realized))

		sold[m.SellID] += m.Quantity
		consumed[m.BuyID] += m.Quantity
	}

	var bought, open int64

	for _, tx := range b.txs {
		switch tx.Type {
		case transaction.TypeSell:
			assert.Equal(t, tx.Quantity, sold[tx.ID], "sell %s", tx.ID)
		case transaction.TypeBuy:
			assert.LessOrEqual(t, consumed[tx.ID], tx.Quantity)
			bought += tx.Quantity
		}
	}

	for _, l := range res.Open {
		assert.Equal(t, l.Quantity-consumed[l.BuyID], l.Remaining)
		open += l.Remaining
	}

	assert.Equal(t, bought-22, open)
	assert.Equal(t, open, res.OpenQuantity())
}

func TestRecompute_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(tx *transaction.Transaction)
	}{
		{name: "ZeroQuantity", mutate: func(tx *transaction.Transaction) { tx.Quantity = 0 }},
		{name: "NegativePrice", mutate: func(tx *transaction.Transaction) { tx.Price = dec("-1") }},
		{name: "OtherHolding", mutate: func(tx *transaction.Transaction) { tx.HoldingID = uuid.New() }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var b builder

			tt.mutate(b.buy(1, "1", day(1)))

			res, err := lot.Recompute(holdingID, b.txs, nil)
			assert.ErrorIs(t, err, transaction.ErrInvalid)
			assert.Nil(t, res)
		})
	}
}

func TestRecompute_DoesNotReorderCallerSlice(t *testing.T) {
	var b builder

	late := b.buy(1, "1", day(5))
	b.buy(1, "1", day(1))

	_, err := lot.Recompute(holdingID, b.txs, nil)
	require.NoError(t, err)
	assert.Equal(t, late, b.txs[0])
}

// lifo takes the newest lot first.
type lifo struct{}

func (lifo) Order(open []lot.Lot, _ *transaction.Transaction) []int {
	order := make([]int, 0, len(open))
	for i := len(open) - 1; i >= 0; i-- {
		order = append(order, i)
	}

	return order
}

func TestRecompute_PluggableStrategy(t *testing.T) {
	var b builder

	first := b.buy(100, "10", day(1))
	second := b.buy(50, "12", day(2))
	b.sell(120, "15", day(3))

	res, err := lot.Recompute(holdingID, b.txs, lifo{})
	require.NoError(t, err)

	require.Len(t, res.Matches, 2)
	assert.Equal(t, second.ID, res.Matches[0].BuyID)
	assert.Equal(t, int64(50), res.Matches[0].Quantity)
	assert.Equal(t, first.ID, res.Matches[1].BuyID)
	assert.Equal(t, int64(70), res.Matches[1].Quantity)

	require.Len(t, res.Open, 1)
	assert.Equal(t, first.ID, res.Open[0].BuyID)
	assert.Equal(t, int64(30), res.Open[0].Remaining)
}

type badStrategy struct{}

func (badStrategy) Order([]lot.Lot, *transaction.Transaction) []int { return []int{7} }

func TestRecompute_StrategyOutOfRange(t *testing.T) {
	var b builder

	b.buy(1, "1", day(1))
	b.sell(1, "1", day(2))

	_, err := lot.Recompute(holdingID, b.txs, badStrategy{})
	require.Error(t, err)
	assert.NotErrorIs(t, err, lot.ErrOversell)
}

func TestResult_RealizedForUnknownSell(t *testing.T) {
	res, err := lot.Recompute(holdingID, nil, nil)
	require.NoError(t, err)

	_, ok := res.RealizedFor(uuid.New())
	assert.False(t, ok)
	assert.True(t, res.TotalRealized().IsZero())
	assert.True(t, res.CostBasis().IsZero())
}
