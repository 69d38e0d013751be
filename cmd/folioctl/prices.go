package main

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/folio/internal/calendar"
	"github.com/MrJamesThe3rd/folio/internal/pricing"
	pricingStore "github.com/MrJamesThe3rd/folio/internal/pricing/store"
)

type closeCmd struct {
	date   string
	source string
}

func (*closeCmd) Name() string     { return "close" }
func (*closeCmd) Synopsis() string { return "record a daily closing price" }
func (*closeCmd) Usage() string {
	return `folioctl close [-d <date>] [-source <name>] <instrument> <price>

  Records the closing price of an instrument for one trading day. A close that
  is already stored for that day is left unchanged.

Usage Examples:
$ folioctl close -d 2024-07-05 INFY 1612.40
`
}

func (c *closeCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", "", "Trading day (defaults to today)")
	f.StringVar(&c.source, "source", "manual", "Where the price came from")
}

func (c *closeCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	if f.NArg() != 2 {
		fail("expected <instrument> <price>")
		return subcommands.ExitUsageError
	}

	date := calendar.Today()
	if c.date != "" {
		d, err := calendar.Parse(c.date)
		if err != nil {
			fail("invalid date %q", c.date)
			return subcommands.ExitUsageError
		}

		date = d
	}

	price, err := decimal.NewFromString(f.Arg(1))
	if err != nil {
		fail("invalid price %q", f.Arg(1))
		return subcommands.ExitUsageError
	}

	a, err := openApp()
	if err != nil {
		fail("%v", err)
		return subcommands.ExitFailure
	}
	defer a.Close()

	n, err := pricing.NewService(pricingStore.New(a.db)).Record(ctx, []pricing.Close{{
		Instrument: f.Arg(0),
		Date:       date,
		Price:      price,
		Source:     c.source,
	}})
	if err != nil {
		fail("%v", err)
		return subcommands.ExitFailure
	}

	if n == 0 {
		fmt.Printf("%s already has a close on %s\n", f.Arg(0), calendar.Format(date))
		return subcommands.ExitSuccess
	}

	fmt.Printf("recorded %s %s on %s\n", f.Arg(0), price, calendar.Format(date))

	return subcommands.ExitSuccess
}
