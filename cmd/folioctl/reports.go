package main

import (
	"context"
	"flag"
	"fmt"
	"strings"
	"time"

	"github.com/google/subcommands"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/folio/internal/calendar"
	"github.com/MrJamesThe3rd/folio/internal/export"
	"github.com/MrJamesThe3rd/folio/internal/holding"
	holdingStore "github.com/MrJamesThe3rd/folio/internal/holding/store"
	"github.com/MrJamesThe3rd/folio/internal/money"
	"github.com/MrJamesThe3rd/folio/internal/performance"
	performanceStore "github.com/MrJamesThe3rd/folio/internal/performance/store"
	"github.com/MrJamesThe3rd/folio/internal/pricing"
	pricingStore "github.com/MrJamesThe3rd/folio/internal/pricing/store"
	"github.com/MrJamesThe3rd/folio/internal/transaction"
	txStore "github.com/MrJamesThe3rd/folio/internal/transaction/store"
)

type reportCmd struct {
	date   string
	window int
}

func (*reportCmd) Name() string     { return "report" }
func (*reportCmd) Synopsis() string { return "display the lot reconciliation report" }
func (*reportCmd) Usage() string {
	return `folioctl report [-d <date>] [-w <days>]

  Lists every FIFO lot as of the date: the sold part of each buy next to the
  sell that consumed it, and what remains open, with the last known close.
`
}

func (c *reportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", "", "Report date (defaults to today)")
	f.IntVar(&c.window, "w", 0, "Only lots bought or sold in the last n days")
}

func (c *reportCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	end, ok := parseDay(c.date)
	if !ok {
		return subcommands.ExitUsageError
	}

	a, err := openApp()
	if err != nil {
		fail("%v", err)
		return subcommands.ExitFailure
	}
	defer a.Close()

	owner, err := a.owner()
	if err != nil {
		fail("%v", err)
		return subcommands.ExitUsageError
	}

	svc := export.NewService(
		holding.NewService(holdingStore.New(a.db)),
		transaction.NewService(txStore.New(a.db)),
		pricing.NewService(pricingStore.New(a.db)),
	)

	rows, err := svc.Lots(ctx, owner, export.Options{End: end, WindowDays: c.window})
	if err != nil {
		fail("%v", err)
		return subcommands.ExitFailure
	}

	printMarkdown(export.Markdown(rows, a.cfg.App.Currency))

	return subcommands.ExitSuccess
}

type gainCmd struct {
	date      string
	start     string
	timeframe string
}

func (*gainCmd) Name() string     { return "gain" }
func (*gainCmd) Synopsis() string { return "display the portfolio gain over a window" }
func (*gainCmd) Usage() string {
	return `folioctl gain [-d <end>] [-t daily|weekly|monthly | -s <start>]

  Values the portfolio, cash included, at both ends of the window and reports
  the gain net of deposits and withdrawals made inside it.
`
}

func (c *gainCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", "", "End of the window (defaults to today)")
	f.StringVar(&c.start, "s", "", "Start of a custom window")
	f.StringVar(&c.timeframe, "t", "weekly", "Canonical window ending on -d, ignored with -s")
}

func (c *gainCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	end, ok := parseDay(c.date)
	if !ok {
		return subcommands.ExitUsageError
	}

	a, err := openApp()
	if err != nil {
		fail("%v", err)
		return subcommands.ExitFailure
	}
	defer a.Close()

	owner, err := a.owner()
	if err != nil {
		fail("%v", err)
		return subcommands.ExitUsageError
	}

	svc := performance.NewService(performanceStore.New(a.db), pricing.NewService(pricingStore.New(a.db)))

	var g *performance.Gain

	if c.start != "" {
		start, ok := parseDay(c.start)
		if !ok {
			return subcommands.ExitUsageError
		}

		g, err = svc.Gain(ctx, owner, start, end)
	} else {
		tf, perr := performance.ParseTimeframe(c.timeframe)
		if perr != nil {
			fail("%v", perr)
			return subcommands.ExitUsageError
		}

		g, err = svc.WindowedGain(ctx, owner, tf, end)
	}

	if err != nil {
		fail("%v", err)
		return subcommands.ExitFailure
	}

	printMarkdown(gainMarkdown(g, a.cfg.App.Currency))

	return subcommands.ExitSuccess
}

func parseDay(s string) (t time.Time, ok bool) {
	if s == "" {
		return calendar.Today(), true
	}

	t, err := calendar.Parse(s)
	if err != nil {
		fail("invalid date %q, expected YYYY-MM-DD", s)
		return t, false
	}

	return t, true
}

func gainMarkdown(g *performance.Gain, currency string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Gain %s to %s\n\n", calendar.Format(g.Start), calendar.Format(g.End))

	b.WriteString("| | Start | End |\n|---|---:|---:|\n")
	fmt.Fprintf(&b, "| Holdings | %s | %s |\n", nullMoney(g.ValuationStart.Holdings, currency), nullMoney(g.ValuationEnd.Holdings, currency))
	fmt.Fprintf(&b, "| Cash | %s | %s |\n", money.Format(g.ValuationStart.Cash, currency), money.Format(g.ValuationEnd.Cash, currency))
	fmt.Fprintf(&b, "| **Total** | %s | %s |\n\n", nullMoney(g.ValuationStart.Total, currency), nullMoney(g.ValuationEnd.Total, currency))

	fmt.Fprintf(&b, "**Net cash flow:** %s\n\n", money.Signed(g.NetCashFlow, currency))

	if g.Amount.Valid {
		fmt.Fprintf(&b, "**Gain:** %s (%s)\n", money.Signed(g.Amount.Decimal, currency), money.Percent(g.Percent))
	} else {
		b.WriteString("**Gain:** n/a\n")
	}

	if len(g.Unvalued) > 0 {
		b.WriteString("\nNo close on or before the day for:\n\n")

		for _, u := range g.Unvalued {
			fmt.Fprintf(&b, "- %s on %s\n", u.Instrument, calendar.Format(u.Date))
		}
	}

	return b.String()
}

func nullMoney(d decimal.NullDecimal, currency string) string {
	if !d.Valid {
		return "n/a"
	}

	return money.Format(d.Decimal, currency)
}
