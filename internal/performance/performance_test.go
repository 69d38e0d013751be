package performance_test

import (
	"context"
	"errors"
	"slices"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/folio/internal/holding"
	"github.com/MrJamesThe3rd/folio/internal/ledger"
	"github.com/MrJamesThe3rd/folio/internal/performance"
	"github.com/MrJamesThe3rd/folio/internal/pricing"
	"github.com/MrJamesThe3rd/folio/internal/transaction"
)

var userID = uuid.MustParse("5b1f9a3e-8c2d-4f6a-b7e1-3d4c5b6a7f80")

func day(n int) time.Time {
	return time.Date(2024, 7, n, 0, 0, 0, 0, time.UTC)
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// closes is a carry-forward price source over fixed daily closes.
type closes map[string]map[time.Time]decimal.Decimal

func (c closes) PriceOnOrBefore(_ context.Context, instrument string, date time.Time) (*pricing.Close, error) {
	var best time.Time

	for d := range c[instrument] {
		if !d.After(date) && d.After(best) {
			best = d
		}
	}

	if best.IsZero() {
		return nil, pricing.ErrNotFound
	}

	return &pricing.Close{Instrument: instrument, Date: best, Price: c[instrument][best]}, nil
}

type failingSource struct{}

func (failingSource) PriceOnOrBefore(context.Context, string, time.Time) (*pricing.Close, error) {
	return nil, errors.New("connection reset")
}

type bookBuilder struct {
	book    performance.Book
	seq     int64
	entryID int64
}

func (b *bookBuilder) holding(symbol string) uuid.UUID {
	h := &holding.Holding{ID: uuid.New(), UserID: userID, Symbol: symbol}
	b.book.Holdings = append(b.book.Holdings, h)

	return h.ID
}

func (b *bookBuilder) trade(holdingID uuid.UUID, typ transaction.Type, qty int64, price string, date time.Time) {
	b.seq++
	tx := &transaction.Transaction{
		ID: uuid.New(), Seq: b.seq, HoldingID: holdingID, Type: typ, Quantity: qty, Price: dec(price), Date: date,
	}
	b.book.Transactions = append(b.book.Transactions, tx)

	flow := ledger.FlowFor(userID, tx)
	b.entryID++
	flow.ID = b.entryID
	b.book.Entries = append(b.book.Entries, flow)
}

func (b *bookBuilder) cash(typ ledger.Type, amount string, date time.Time) {
	b.entryID++
	b.book.Entries = append(b.book.Entries, &ledger.Entry{ID: b.entryID, UserID: userID, Type: typ, Amount: dec(amount), Date: date})
}

func TestParseTimeframe(t *testing.T) {
	end := day(17)

	tests := []struct {
		in        string
		wantStart time.Time
		wantErr   bool
	}{
		{in: "daily", wantStart: day(16)},
		{in: "Weekly", wantStart: day(10)},
		{in: "monthly", wantStart: day(1)},
		{in: "yearly", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			tf, err := performance.ParseTimeframe(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, performance.ErrInvalidWindow)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantStart, tf.Start(end))
		})
	}
}

func TestComputeGain_EmptyWindow(t *testing.T) {
	var b bookBuilder

	hid := b.holding("INFY")
	b.cash(ledger.TypeInitDeposit, "1000", day(1))
	b.trade(hid, transaction.TypeBuy, 10, "100", day(1))

	g, err := performance.ComputeGain(context.Background(), closes{"INFY": {day(1): dec("100")}}, &b.book, performance.Monthly.Start(day(1)), day(1))
	require.NoError(t, err)

	assert.Equal(t, day(1), g.Start)
	assert.Equal(t, day(1), g.End)
	require.True(t, g.Amount.Valid)
	assert.True(t, g.Amount.Decimal.IsZero())
	require.True(t, g.Percent.Valid)
	assert.True(t, g.Percent.Decimal.IsZero())

	var empty bookBuilder

	g, err = performance.ComputeGain(context.Background(), closes{}, &empty.book, day(1), day(1))
	require.NoError(t, err)
	require.True(t, g.Amount.Valid)
	assert.True(t, g.Amount.Decimal.IsZero())
	assert.False(t, g.Percent.Valid)
}

func TestComputeGain_ReversedWindow(t *testing.T) {
	var b bookBuilder

	_, err := performance.ComputeGain(context.Background(), closes{}, &b.book, day(5), day(4))
	assert.ErrorIs(t, err, performance.ErrInvalidWindow)
}

func TestQuantityAsOf(t *testing.T) {
	var b bookBuilder

	hid := b.holding("INFY")
	other := b.holding("TCS")
	b.trade(hid, transaction.TypeBuy, 10, "1", day(1))
	b.trade(hid, transaction.TypeSell, 4, "1", day(3))
	b.trade(other, transaction.TypeBuy, 99, "1", day(1))
	b.trade(hid, transaction.TypeBuy, 2, "1", day(5))

	txs := b.book.Transactions
	assert.Equal(t, int64(0), performance.QuantityAsOf(txs, hid, day(1).AddDate(0, 0, -1)))
	assert.Equal(t, int64(10), performance.QuantityAsOf(txs, hid, day(2)))
	assert.Equal(t, int64(6), performance.QuantityAsOf(txs, hid, day(3)))
	assert.Equal(t, int64(8), performance.QuantityAsOf(txs, hid, day(30)))
}

func TestWindowedGain_WeeklyWithDeposit(t *testing.T) {
	var b bookBuilder

	hid := b.holding("RELIANCE")
	b.cash(ledger.TypeInitDeposit, "100000", day(1))
	b.trade(hid, transaction.TypeBuy, 1000, "100", day(1))
	b.cash(ledger.TypeDeposit, "5000", day(12))

	prices := closes{"RELIANCE": {day(1): dec("100"), day(8): dec("100"), day(15): dec("103")}}

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := performance.NewMockRepository(ctrl)
	repo.EXPECT().LoadBook(gomock.Any(), userID).Return(&b.book, nil)

	g, err := performance.NewService(repo, prices).WindowedGain(context.Background(), userID, performance.Weekly, day(15))
	require.NoError(t, err)

	assert.Equal(t, performance.Weekly, g.Timeframe)
	assert.Equal(t, day(8), g.Start)
	assert.Equal(t, day(15), g.End)
	assert.True(t, dec("100000").Equal(g.ValuationStart.Total.Decimal))
	assert.True(t, dec("108000").Equal(g.ValuationEnd.Total.Decimal))
	assert.True(t, dec("5000").Equal(g.NetCashFlow))

	require.True(t, g.Amount.Valid)
	assert.True(t, dec("3000").Equal(g.Amount.Decimal))

	require.True(t, g.Percent.Valid)
	assert.Equal(t, "2.86", g.Percent.Decimal.StringFixed(2))
	assert.Empty(t, g.Unvalued)
}

func TestValue_CarriesForwardOverGap(t *testing.T) {
	var b bookBuilder

	hid := b.holding("INFY")
	b.cash(ledger.TypeDeposit, "10000", day(1))
	b.trade(hid, transaction.TypeBuy, 10, "1500", day(1))

	prices := closes{"INFY": {day(1): dec("1500"), day(12): dec("1550")}}

	v, err := performance.Value(context.Background(), prices, &b.book, day(14))
	require.NoError(t, err)

	assert.Empty(t, v.Unvalued)
	require.Len(t, v.Positions, 1)
	assert.Equal(t, day(12), v.Positions[0].PriceDate)
	assert.True(t, dec("15500").Equal(v.Holdings.Decimal))
	assert.True(t, dec("-5000").Equal(v.Cash))
	assert.True(t, dec("10500").Equal(v.Total.Decimal))
}

func TestGain_UnvaluedIsUndefined(t *testing.T) {
	var b bookBuilder

	listed := b.holding("INFY")
	unlisted := b.holding("NEWCO")
	b.cash(ledger.TypeDeposit, "10000", day(1))
	b.trade(listed, transaction.TypeBuy, 10, "100", day(1))
	b.trade(unlisted, transaction.TypeBuy, 10, "50", day(5))

	prices := closes{"INFY": {day(1): dec("100")}}

	g, err := performance.ComputeGain(context.Background(), prices, &b.book, day(3), day(10))
	require.NoError(t, err)

	assert.True(t, g.ValuationStart.Total.Valid)
	assert.False(t, g.ValuationEnd.Total.Valid)
	assert.False(t, g.ValuationEnd.Holdings.Valid)
	assert.False(t, g.Amount.Valid)
	assert.False(t, g.Percent.Valid)

	require.Len(t, g.Unvalued, 1)
	assert.Equal(t, unlisted, g.Unvalued[0].HoldingID)
	assert.Equal(t, "NEWCO", g.Unvalued[0].Instrument)
	assert.Equal(t, day(10), g.Unvalued[0].Date)
}

func TestGain_ZeroBaseIsUndefinedPercent(t *testing.T) {
	var b bookBuilder

	g, err := performance.ComputeGain(context.Background(), closes{}, &b.book, day(1), day(2))
	require.NoError(t, err)

	require.True(t, g.Amount.Valid)
	assert.True(t, g.Amount.Decimal.IsZero())
	assert.False(t, g.Percent.Valid)
}

func TestGain_ClosedPositionNeedsNoPrice(t *testing.T) {
	var b bookBuilder

	hid := b.holding("DELISTED")
	b.cash(ledger.TypeDeposit, "1000", day(1))
	b.trade(hid, transaction.TypeBuy, 10, "50", day(1))
	b.trade(hid, transaction.TypeSell, 10, "60", day(2))

	g, err := performance.ComputeGain(context.Background(), closes{}, &b.book, day(3), day(4))
	require.NoError(t, err)

	assert.Empty(t, g.Unvalued)
	assert.True(t, dec("1100").Equal(g.ValuationEnd.Total.Decimal))
}

func TestGain_FlatPricesEqualTradeDelta(t *testing.T) {
	var b bookBuilder

	hid := b.holding("ITC")
	b.cash(ledger.TypeInitDeposit, "6000", day(1))
	b.trade(hid, transaction.TypeBuy, 10, "100", day(1))

	// Inside the window, at a flat mark of 100.
	b.trade(hid, transaction.TypeBuy, 5, "90", day(5))
	b.trade(hid, transaction.TypeSell, 3, "110", day(6))
	b.trade(hid, transaction.TypeSell, 4, "95", day(7))

	flat := map[time.Time]decimal.Decimal{}
	for d := 1; d <= 10; d++ {
		flat[day(d)] = dec("100")
	}

	g, err := performance.ComputeGain(context.Background(), closes{"ITC": flat}, &b.book, day(2), day(9))
	require.NoError(t, err)

	// 5×(100−90) + 3×(110−100) + 4×(95−100)
	require.True(t, g.Amount.Valid)
	assert.True(t, dec("60").Equal(g.Amount.Decimal), "got %s", g.Amount.Decimal)
	assert.True(t, g.NetCashFlow.IsZero())
}

func TestGain_SourceErrorPropagates(t *testing.T) {
	var b bookBuilder

	hid := b.holding("INFY")
	b.trade(hid, transaction.TypeBuy, 1, "1", day(1))

	_, err := performance.ComputeGain(context.Background(), failingSource{}, &b.book, day(1), day(2))
	assert.ErrorContains(t, err, "connection reset")
}

func TestService_Series(t *testing.T) {
	var b bookBuilder

	hid := b.holding("INFY")
	b.cash(ledger.TypeDeposit, "1000", day(1))
	b.trade(hid, transaction.TypeBuy, 10, "50", day(2))

	prices := closes{"INFY": {day(2): dec("50"), day(4): dec("55")}}

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := performance.NewMockRepository(ctrl)
	repo.EXPECT().LoadBook(gomock.Any(), userID).Return(&b.book, nil)

	points, err := performance.NewService(repo, prices).Series(context.Background(), userID, day(1), day(5))
	require.NoError(t, err)
	require.Len(t, points, 5)

	totals := make([]string, 0, len(points))
	for _, p := range points {
		require.True(t, p.Total.Valid)
		totals = append(totals, p.Total.Decimal.String())
	}

	assert.Equal(t, []string{"1000", "1000", "1000", "1050", "1050"}, totals)
	assert.True(t, slices.IsSortedFunc(points, func(a, b performance.Point) int { return a.Date.Compare(b.Date) }))
}

func TestService_SeriesBounds(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc := performance.NewService(performance.NewMockRepository(ctrl), closes{})

	_, err := svc.Series(context.Background(), userID, day(5), day(1))
	assert.ErrorIs(t, err, performance.ErrInvalidWindow)

	_, err = svc.Series(context.Background(), userID, day(1), day(1).AddDate(2, 0, 0))
	assert.ErrorIs(t, err, performance.ErrInvalidWindow)
}

func TestService_CashSummary(t *testing.T) {
	var b bookBuilder

	hid := b.holding("INFY")
	b.cash(ledger.TypeInitDeposit, "10000", day(1))
	b.trade(hid, transaction.TypeBuy, 100, "10", day(2))
	b.trade(hid, transaction.TypeBuy, 50, "12", day(3))
	b.trade(hid, transaction.TypeSell, 120, "15", day(4))
	b.cash(ledger.TypeWithdrawal, "-500", day(5))
	b.trade(hid, transaction.TypeSell, 30, "20", day(9))

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := performance.NewMockRepository(ctrl)
	repo.EXPECT().LoadBook(gomock.Any(), userID).Return(&b.book, nil)

	cs, err := performance.NewService(repo, closes{}).CashSummary(context.Background(), userID, day(6))
	require.NoError(t, err)

	// 10000 − 1000 − 600 + 1800 − 500
	assert.True(t, dec("9700").Equal(cs.Balance))
	assert.True(t, dec("9500").Equal(cs.NetDeposited))
	assert.True(t, dec("360").Equal(cs.Deployed))
	assert.True(t, dec("560").Equal(cs.Realized))
}

func TestService_LoadBookError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := performance.NewMockRepository(ctrl)
	repo.EXPECT().LoadBook(gomock.Any(), userID).Return(nil, errors.New("db down"))

	_, err := performance.NewService(repo, closes{}).Gain(context.Background(), userID, day(1), day(2))
	assert.ErrorContains(t, err, "db down")
}
