// Package pricing answers "what was the last close on or before this day".
// Closes are written by the market-data collaborator and never change once
// stored.
package pricing

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrNotFound = errors.New("no close on or before date")
	ErrInvalid  = errors.New("invalid close")
)

// Close is one daily closing price. Date is the trading day it was recorded
// for, which may precede the day it was looked up for.
type Close struct {
	Instrument string
	Date       time.Time
	Price      decimal.Decimal
	Source     string
}

// Source is the lookup the valuation engine depends on.
type Source interface {
	PriceOnOrBefore(ctx context.Context, instrument string, date time.Time) (*Close, error)
}
