package ledger

import (
	"slices"

	"github.com/shopspring/decimal"
)

// checkBalance compares the running balances of a ledger before and after a
// change. It fails when a pending withdrawal ends negative, or when an
// existing entry whose balance was non-negative now ends negative. Balances
// that were already negative, which trades may produce, are left alone, so a
// deposit smaller than the shortfall is still accepted.
func checkBalance(before, after []*Entry, pending *Entry) error {
	was := make(map[int64]decimal.Decimal, len(before))
	for _, l := range runningInOrder(before) {
		was[l.Entry.ID] = l.Balance
	}

	for _, l := range runningInOrder(after) {
		if !l.Balance.IsNegative() {
			continue
		}

		if l.Entry == pending {
			if pending.Type != TypeWithdrawal {
				continue
			}

			return &InsufficientBalanceError{UserID: l.Entry.UserID, Date: l.Entry.Date, Balance: l.Balance}
		}

		if prev, ok := was[l.Entry.ID]; ok && !prev.IsNegative() {
			return &InsufficientBalanceError{
				UserID:  l.Entry.UserID,
				EntryID: l.Entry.ID,
				Date:    l.Entry.Date,
				Balance: l.Balance,
			}
		}
	}

	return nil
}

// runningInOrder is Running for a slice already in ledger order.
func runningInOrder(entries []*Entry) []Line {
	lines := make([]Line, len(entries))
	balance := decimal.Zero

	for i, e := range entries {
		balance = balance.Add(e.Amount)
		lines[i] = Line{Entry: e, Balance: balance}
	}

	return lines
}

// appendAfterSameDay inserts e after every entry dated on or before it.
func appendAfterSameDay(ordered []*Entry, e *Entry) []*Entry {
	idx := slices.IndexFunc(ordered, func(o *Entry) bool { return o.Date.After(e.Date) })
	if idx < 0 {
		idx = len(ordered)
	}

	return slices.Insert(slices.Clone(ordered), idx, e)
}

func without(ordered []*Entry, id int64) []*Entry {
	return slices.DeleteFunc(slices.Clone(ordered), func(e *Entry) bool { return e.ID == id })
}
