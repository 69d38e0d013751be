package main

import (
	"context"
	"flag"
	"fmt"
	"time"

	"github.com/google/subcommands"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/folio/internal/database"
	"github.com/MrJamesThe3rd/folio/internal/holding"
	holdingStore "github.com/MrJamesThe3rd/folio/internal/holding/store"
	"github.com/MrJamesThe3rd/folio/internal/http/auth"
	"github.com/MrJamesThe3rd/folio/internal/portfolio"
	portfolioStore "github.com/MrJamesThe3rd/folio/internal/portfolio/store"
)

type migrateCmd struct{}

func (*migrateCmd) Name() string     { return "migrate" }
func (*migrateCmd) Synopsis() string { return "apply pending database migrations" }
func (*migrateCmd) Usage() string {
	return `folioctl migrate

  Applies every migration embedded in the binary that the database has not
  seen yet.
`
}

func (*migrateCmd) SetFlags(*flag.FlagSet) {}

func (*migrateCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	a, err := openApp()
	if err != nil {
		fail("%v", err)
		return subcommands.ExitFailure
	}
	defer a.Close()

	if err := database.Migrate(a.db); err != nil {
		fail("%v", err)
		return subcommands.ExitFailure
	}

	return subcommands.ExitSuccess
}

type recomputeCmd struct {
	holdingID string
}

func (*recomputeCmd) Name() string { return "recompute" }
func (*recomputeCmd) Synopsis() string {
	return "rebuild lot matches and settlements from transactions"
}
func (*recomputeCmd) Usage() string {
	return `folioctl recompute [-holding <id>]

  Rebuilds the FIFO lot matches and the cash settlement entries of every
  holding owned by FOLIO_USER_ID, or of a single holding. Stops at the first
  holding whose history oversells.
`
}

func (c *recomputeCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.holdingID, "holding", "", "Holding to recompute. All holdings by default.")
}

func (c *recomputeCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	a, err := openApp()
	if err != nil {
		fail("%v", err)
		return subcommands.ExitFailure
	}
	defer a.Close()

	portfolioSvc := portfolio.NewService(portfolioStore.New(a.db))

	var ids []uuid.UUID

	if c.holdingID != "" {
		id, err := uuid.Parse(c.holdingID)
		if err != nil {
			fail("invalid holding id %q", c.holdingID)
			return subcommands.ExitUsageError
		}

		ids = append(ids, id)
	} else {
		owner, err := a.owner()
		if err != nil {
			fail("%v", err)
			return subcommands.ExitUsageError
		}

		hs, err := holding.NewService(holdingStore.New(a.db)).List(ctx, owner)
		if err != nil {
			fail("listing holdings: %v", err)
			return subcommands.ExitFailure
		}

		for _, h := range hs {
			ids = append(ids, h.ID)
		}
	}

	for _, id := range ids {
		sum, err := portfolioSvc.Recompute(ctx, id)
		if err != nil {
			fail("recomputing %s: %v", id, err)
			return subcommands.ExitFailure
		}

		fmt.Printf("%s  open %d  realized %s\n", id, sum.OpenQuantity, sum.Realized.StringFixed(2))
	}

	return subcommands.ExitSuccess
}

type tokenCmd struct {
	ttl time.Duration
}

func (*tokenCmd) Name() string     { return "token" }
func (*tokenCmd) Synopsis() string { return "issue an API bearer token for FOLIO_USER_ID" }
func (*tokenCmd) Usage() string {
	return `folioctl token [-ttl <duration>]

  Signs a bearer token for the API with AUTH_SECRET. The token's subject is
  FOLIO_USER_ID.
`
}

func (c *tokenCmd) SetFlags(f *flag.FlagSet) {
	f.DurationVar(&c.ttl, "ttl", 24*time.Hour, "How long the token stays valid")
}

func (c *tokenCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	a, err := openApp()
	if err != nil {
		fail("%v", err)
		return subcommands.ExitFailure
	}
	defer a.Close()

	if a.cfg.Auth.Secret == "" {
		fail("AUTH_SECRET is not set")
		return subcommands.ExitUsageError
	}

	owner, err := a.owner()
	if err != nil {
		fail("%v", err)
		return subcommands.ExitUsageError
	}

	token, err := auth.Issue([]byte(a.cfg.Auth.Secret), owner, c.ttl)
	if err != nil {
		fail("%v", err)
		return subcommands.ExitFailure
	}

	fmt.Println(token)

	return subcommands.ExitSuccess
}
