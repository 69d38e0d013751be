package lot

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

var ErrOversell = errors.New("oversell")

// OversellError reports a sell larger than the open quantity at its position
// in the holding's history.
type OversellError struct {
	HoldingID     uuid.UUID
	TransactionID uuid.UUID
	Date          time.Time
	Requested     int64
	Available     int64
}

func (e *OversellError) Error() string {
	return fmt.Sprintf("oversell: holding %s, transaction %s on %s sells %d but only %d open",
		e.HoldingID, e.TransactionID, e.Date.Format(time.DateOnly), e.Requested, e.Available)
}

func (e *OversellError) Unwrap() error { return ErrOversell }
