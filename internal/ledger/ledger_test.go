package ledger_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/folio/internal/ledger"
	"github.com/MrJamesThe3rd/folio/internal/transaction"
)

var userID = uuid.MustParse("2d0c1c57-5b5e-4f3e-8a62-0f51c7a3d9b4")

func day(n int) time.Time {
	return time.Date(2024, 3, n, 0, 0, 0, 0, time.UTC)
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func entry(id int64, typ ledger.Type, amount string, date time.Time) *ledger.Entry {
	return &ledger.Entry{ID: id, UserID: userID, Type: typ, Amount: dec(amount), Date: date}
}

func sampleLedger() []*ledger.Entry {
	return []*ledger.Entry{
		entry(5, ledger.TypeSellCredit, "300", day(4)),
		entry(1, ledger.TypeInitDeposit, "1000", day(1)),
		entry(3, ledger.TypeBuyDebit, "-700", day(2)),
		entry(2, ledger.TypeDeposit, "500", day(2)),
		entry(4, ledger.TypeWithdrawal, "-200", day(3)),
		entry(6, ledger.TypeDeposit, "50", day(6)),
	}
}

func TestBalanceAsOf(t *testing.T) {
	entries := sampleLedger()

	tests := []struct {
		date time.Time
		want string
	}{
		{date: day(1).AddDate(0, 0, -1), want: "0"},
		{date: day(1), want: "1000"},
		{date: day(2), want: "800"},
		{date: day(3), want: "600"},
		{date: day(5), want: "900"},
		{date: day(30), want: "950"},
	}

	for _, tt := range tests {
		t.Run(tt.date.Format(time.DateOnly), func(t *testing.T) {
			assert.True(t, dec(tt.want).Equal(ledger.BalanceAsOf(entries, tt.date)),
				"got %s", ledger.BalanceAsOf(entries, tt.date))
		})
	}
}

func TestBalanceAsOf_DifferenceIsWindowSum(t *testing.T) {
	entries := sampleLedger()

	for d1 := 0; d1 <= 7; d1++ {
		for d2 := d1 + 1; d2 <= 7; d2++ {
			start, end := day(1).AddDate(0, 0, d1-1), day(1).AddDate(0, 0, d2-1)

			window := decimal.Zero
			for _, e := range entries {
				if e.Date.After(start) && !e.Date.After(end) {
					window = window.Add(e.Amount)
				}
			}

			diff := ledger.BalanceAsOf(entries, end).Sub(ledger.BalanceAsOf(entries, start))
			assert.True(t, window.Equal(diff), "(%s, %s]", start.Format(time.DateOnly), end.Format(time.DateOnly))
		}
	}
}

func TestNetExternalFlow(t *testing.T) {
	entries := sampleLedger()

	assert.True(t, dec("300").Equal(ledger.NetExternalFlow(entries, day(1), day(3))))
	assert.True(t, dec("1300").Equal(ledger.NetExternalFlow(entries, day(1).AddDate(0, 0, -1), day(3))))
	assert.True(t, ledger.NetExternalFlow(entries, day(3), day(5)).IsZero())
	assert.True(t, dec("50").Equal(ledger.NetExternalFlow(entries, day(5), day(6))))
}

func TestRunning_OrdersByDateThenID(t *testing.T) {
	lines := ledger.Running(sampleLedger())

	var ids []int64
	for _, l := range lines {
		ids = append(ids, l.Entry.ID)
	}

	assert.Equal(t, []int64{1, 2, 3, 4, 5, 6}, ids)
	assert.True(t, dec("1500").Equal(lines[1].Balance))
	assert.True(t, dec("950").Equal(lines[5].Balance))
}

func TestFlowFor(t *testing.T) {
	tx := &transaction.Transaction{
		ID:       uuid.New(),
		Type:     transaction.TypeBuy,
		Quantity: 10,
		Price:    dec("100"),
		Date:     day(2),
	}

	buy := ledger.FlowFor(userID, tx)
	assert.Equal(t, ledger.TypeBuyDebit, buy.Type)
	assert.True(t, dec("-1000").Equal(buy.Amount))
	assert.Equal(t, tx.ID, *buy.TransactionID)
	assert.Equal(t, day(2), buy.Date)

	tx.Type = transaction.TypeSell
	tx.Price = dec("12.5")

	sell := ledger.FlowFor(userID, tx)
	assert.Equal(t, ledger.TypeSellCredit, sell.Type)
	assert.True(t, dec("125").Equal(sell.Amount))
}

func TestType_External(t *testing.T) {
	assert.True(t, ledger.TypeInitDeposit.External())
	assert.True(t, ledger.TypeDeposit.External())
	assert.True(t, ledger.TypeWithdrawal.External())
	assert.False(t, ledger.TypeBuyDebit.External())
	assert.False(t, ledger.TypeSellCredit.External())
	assert.True(t, ledger.TypeSellCredit.Valid())
	assert.False(t, ledger.Type("FEE").Valid())
}

func TestInsufficientBalanceError(t *testing.T) {
	err := &ledger.InsufficientBalanceError{UserID: userID, Date: day(2), Balance: dec("-500")}

	require.ErrorIs(t, err, ledger.ErrInsufficientBalance)
	assert.Contains(t, err.Error(), "2024-03-02")
	assert.Contains(t, err.Error(), "-500.00")
}
