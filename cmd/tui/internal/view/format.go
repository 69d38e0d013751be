package view

import (
	"context"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/folio/internal/calendar"
	"github.com/MrJamesThe3rd/folio/internal/money"
)

const dbTimeout = 5 * time.Second

var (
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("46"))
	faintStyle   = lipgloss.NewStyle().Faint(true)
)

func (s Session) Money(amount decimal.Decimal) string {
	return money.Format(amount, s.Currency)
}

// Signed renders gains and losses with an explicit sign, colored by direction.
func (s Session) Signed(amount decimal.Decimal) string {
	out := money.Signed(amount, s.Currency)

	switch {
	case amount.IsPositive():
		return successStyle.Render(out)
	case amount.IsNegative():
		return errorStyle.Render(out)
	}

	return out
}

func (s Session) NullMoney(amount decimal.NullDecimal) string {
	if !amount.Valid {
		return "n/a"
	}

	return s.Money(amount.Decimal)
}

// FormatDate formats a time.Time into YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return calendar.Format(t)
}

// DbCtx returns a context with a standard timeout for database operations.
func DbCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), dbTimeout)
}
