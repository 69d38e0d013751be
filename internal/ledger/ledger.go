// Package ledger keeps the per-user cash ledger: external deposits and
// withdrawals plus one settlement entry per trade.
package ledger

import (
	"cmp"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/folio/internal/transaction"
)

type Type string

const (
	TypeInitDeposit Type = "INIT_DEPOSIT"
	TypeDeposit     Type = "DEPOSIT"
	TypeWithdrawal  Type = "WITHDRAWAL"
	TypeBuyDebit    Type = "BUY_DEBIT"
	TypeSellCredit  Type = "SELL_CREDIT"
)

// External reports whether entries of this type are user capital movements
// rather than trade settlement.
func (t Type) External() bool {
	return t == TypeInitDeposit || t == TypeDeposit || t == TypeWithdrawal
}

func (t Type) Valid() bool {
	return t.External() || t == TypeBuyDebit || t == TypeSellCredit
}

// Entry is one signed cash movement. ID is the insertion sequence and orders
// entries that share a Date.
type Entry struct {
	ID            int64
	UserID        uuid.UUID
	Type          Type
	Amount        decimal.Decimal
	Date          time.Time
	TransactionID *uuid.UUID
	Note          string
	CreatedAt     time.Time
}

// Line is an entry with the running balance right after it.
type Line struct {
	Entry   *Entry
	Balance decimal.Decimal
}

// Sort orders entries by (Date, ID).
func Sort(entries []*Entry) {
	slices.SortStableFunc(entries, func(a, b *Entry) int {
		if c := a.Date.Compare(b.Date); c != 0 {
			return c
		}

		return cmp.Compare(a.ID, b.ID)
	})
}

// Running returns the entries in ledger order with their running balances.
func Running(entries []*Entry) []Line {
	ordered := slices.Clone(entries)
	Sort(ordered)

	return runningInOrder(ordered)
}

// BalanceAsOf sums every entry dated on or before date.
func BalanceAsOf(entries []*Entry, date time.Time) decimal.Decimal {
	balance := decimal.Zero

	for _, e := range entries {
		if !e.Date.After(date) {
			balance = balance.Add(e.Amount)
		}
	}

	return balance
}

// NetExternalFlow sums external entries dated in (start, end]. INIT_DEPOSIT
// counts as external capital alongside DEPOSIT and WITHDRAWAL, deliberately
// departing from treating opening capital as part of the starting value.
func NetExternalFlow(entries []*Entry, start, end time.Time) decimal.Decimal {
	net := decimal.Zero

	for _, e := range entries {
		if e.Type.External() && e.Date.After(start) && !e.Date.After(end) {
			net = net.Add(e.Amount)
		}
	}

	return net
}

// FlowFor builds the settlement entry a trade implies: a debit of
// quantity × price for a BUY, a credit for a SELL.
func FlowFor(userID uuid.UUID, tx *transaction.Transaction) *Entry {
	e := &Entry{
		UserID:        userID,
		Date:          tx.Date,
		TransactionID: &tx.ID,
		Amount:        tx.Value(),
		Type:          TypeSellCredit,
	}

	if tx.Type == transaction.TypeBuy {
		e.Type = TypeBuyDebit
		e.Amount = e.Amount.Neg()
	}

	return e
}
