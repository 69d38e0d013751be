package transaction

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Type is the side of a trade.
type Type string

const (
	TypeBuy  Type = "BUY"
	TypeSell Type = "SELL"
)

func (t Type) Valid() bool { return t == TypeBuy || t == TypeSell }

// Transaction is a single BUY or SELL of one holding. Seq is assigned by the
// store on insert and breaks ties between transactions on the same Date.
type Transaction struct {
	ID        uuid.UUID
	Seq       int64
	HoldingID uuid.UUID
	Type      Type
	Quantity  int64
	Price     decimal.Decimal
	Date      time.Time
	Notes     string
	CreatedAt time.Time
	UpdatedAt *time.Time
}

// Value is quantity × price.
func (t *Transaction) Value() decimal.Decimal {
	return t.Price.Mul(decimal.NewFromInt(t.Quantity))
}

// Before reports whether t sorts ahead of o in processing order.
func (t *Transaction) Before(o *Transaction) bool {
	if !t.Date.Equal(o.Date) {
		return t.Date.Before(o.Date)
	}

	return t.Seq < o.Seq
}
