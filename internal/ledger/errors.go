package ledger

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrNotFound            = errors.New("ledger entry not found")
	ErrInvalid             = errors.New("invalid cash flow")
	ErrNotExternal         = errors.New("ledger entry is a trade settlement")
	ErrInsufficientBalance = errors.New("insufficient balance")
)

// InsufficientBalanceError is returned when a withdrawal or a deletion would
// drive the running balance below zero. EntryID is zero for an entry that was
// never stored.
type InsufficientBalanceError struct {
	UserID  uuid.UUID
	EntryID int64
	Date    time.Time
	Balance decimal.Decimal
}

func (e *InsufficientBalanceError) Error() string {
	return fmt.Sprintf("insufficient balance: user %s, running balance on %s would be %s",
		e.UserID, e.Date.Format(time.DateOnly), e.Balance.StringFixed(2))
}

func (e *InsufficientBalanceError) Unwrap() error { return ErrInsufficientBalance }
