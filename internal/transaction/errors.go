package transaction

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var (
	ErrNotFound = errors.New("transaction not found")
	ErrInvalid  = errors.New("invalid transaction")
)

// ValidationError names the offending field of a rejected transaction.
type ValidationError struct {
	TransactionID uuid.UUID
	Field         string
	Reason        string
}

func (e *ValidationError) Error() string {
	if e.TransactionID == uuid.Nil {
		return fmt.Sprintf("invalid transaction: %s %s", e.Field, e.Reason)
	}

	return fmt.Sprintf("invalid transaction %s: %s %s", e.TransactionID, e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error { return ErrInvalid }

// Validate checks the fields every stored transaction must satisfy.
func Validate(tx *Transaction) error {
	invalid := func(field, reason string) error {
		return &ValidationError{TransactionID: tx.ID, Field: field, Reason: reason}
	}

	switch {
	case tx.HoldingID == uuid.Nil:
		return invalid("holding_id", "is required")
	case !tx.Type.Valid():
		return invalid("type", fmt.Sprintf("must be BUY or SELL, got %q", tx.Type))
	case tx.Quantity <= 0:
		return invalid("quantity", "must be positive")
	case tx.Price.IsNegative():
		return invalid("price", "must not be negative")
	case tx.Date.IsZero():
		return invalid("date", "is required")
	}

	return nil
}
