package lot

import "github.com/MrJamesThe3rd/folio/internal/transaction"

// Strategy decides which open lots a sell consumes first. Order returns
// indexes into open; lots are consumed in that order until the sell is
// filled.
type Strategy interface {
	Order(open []Lot, sell *transaction.Transaction) []int
}

// FIFO consumes the oldest lot first.
type FIFO struct{}

func (FIFO) Order(open []Lot, _ *transaction.Transaction) []int {
	order := make([]int, len(open))
	for i := range open {
		order[i] = i
	}

	return order
}
