package performance

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MrJamesThe3rd/folio/internal/calendar"
)

var ErrInvalidWindow = errors.New("invalid window")

type Timeframe string

const (
	Daily   Timeframe = "daily"
	Weekly  Timeframe = "weekly"
	Monthly Timeframe = "monthly"
)

func ParseTimeframe(s string) (Timeframe, error) {
	switch tf := Timeframe(strings.ToLower(strings.TrimSpace(s))); tf {
	case Daily, Weekly, Monthly:
		return tf, nil
	}

	return "", fmt.Errorf("%w: unknown timeframe %q", ErrInvalidWindow, s)
}

// Start returns the exclusive start of the window ending on end.
func (tf Timeframe) Start(end time.Time) time.Time {
	end = calendar.Day(end)

	switch tf {
	case Daily:
		return calendar.AddDays(end, -1)
	case Weekly:
		return calendar.AddDays(end, -7)
	case Monthly:
		return calendar.FirstOfMonth(end)
	}

	return end
}
