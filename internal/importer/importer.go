package importer

import (
	"context"
	"io"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/folio/internal/holding"
	"github.com/MrJamesThe3rd/folio/internal/importer/tradebook"
	"github.com/MrJamesThe3rd/folio/internal/portfolio"
	"github.com/MrJamesThe3rd/folio/internal/transaction"
)

//go:generate mockgen -source=importer.go -destination=importer_mock.go -package=importer
type Parser interface {
	Parse(r io.Reader) ([]tradebook.Trade, error)
}

type Holdings interface {
	Ensure(ctx context.Context, userID uuid.UUID, symbol string) (*holding.Holding, error)
}

type Symbols interface {
	Suggest(ctx context.Context, raw string) (string, error)
}

type Transactions interface {
	List(ctx context.Context, filter transaction.ListFilter) ([]*transaction.Transaction, error)
}

type Applier interface {
	ApplyTransaction(ctx context.Context, ch portfolio.Change) (*portfolio.Summary, error)
}

// Status is the outcome of one tradebook row.
type Status string

const (
	StatusNew       Status = "new"
	StatusDuplicate Status = "duplicate"
	StatusImported  Status = "imported"
	StatusFailed    Status = "failed"
)

// Line is one trade of an import with the symbol it resolved to.
type Line struct {
	Trade       tradebook.Trade
	Symbol      string
	Status      Status
	Transaction *transaction.Transaction
	Err         error
}

type Result struct {
	Lines []Line
}

func (r *Result) Count(s Status) int {
	n := 0

	for _, l := range r.Lines {
		if l.Status == s {
			n++
		}
	}

	return n
}
