package importer

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/folio/internal/importer/tradebook"
	"github.com/MrJamesThe3rd/folio/internal/portfolio"
	"github.com/MrJamesThe3rd/folio/internal/transaction"
)

// refPrefix marks the broker reference in a transaction's notes so a second
// upload of the same tradebook is recognized.
const refPrefix = "broker ref "

type Service struct {
	parser       Parser
	holdings     Holdings
	symbols      Symbols
	transactions Transactions
	portfolio    Applier
}

func NewService(parser Parser, holdings Holdings, symbols Symbols, transactions Transactions, portfolio Applier) *Service {
	return &Service{
		parser:       parser,
		holdings:     holdings,
		symbols:      symbols,
		transactions: transactions,
		portfolio:    portfolio,
	}
}

// Preview parses the tradebook and resolves symbols without writing anything.
// Trades already imported under the same broker reference are marked
// duplicate.
func (s *Service) Preview(ctx context.Context, userID uuid.UUID, r io.Reader) (*Result, error) {
	trades, err := s.parser.Parse(r)
	if err != nil {
		return nil, err
	}

	existing, err := s.importedRefs(ctx, userID)
	if err != nil {
		return nil, err
	}

	res := &Result{Lines: make([]Line, 0, len(trades))}

	for _, t := range trades {
		symbol, err := s.symbols.Suggest(ctx, t.Instrument)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", t.Row, err)
		}

		line := Line{Trade: t, Symbol: symbol, Status: StatusNew}
		if t.Ref != "" && existing[t.Ref] {
			line.Status = StatusDuplicate
		}

		res.Lines = append(res.Lines, line)
	}

	return res, nil
}

// Import applies every new trade in chronological order through the
// portfolio engine. A rejected trade (an oversell, say) is reported on its
// line and the rest continue.
func (s *Service) Import(ctx context.Context, userID uuid.UUID, r io.Reader) (*Result, error) {
	res, err := s.Preview(ctx, userID, r)
	if err != nil {
		return nil, err
	}

	for i := range res.Lines {
		line := &res.Lines[i]
		if line.Status != StatusNew {
			continue
		}

		tx, err := s.apply(ctx, userID, line)
		if err != nil {
			line.Status = StatusFailed
			line.Err = err

			slog.Warn("tradebook row rejected", "user_id", userID, "row", line.Trade.Row, "symbol", line.Symbol, "error", err)

			continue
		}

		line.Status = StatusImported
		line.Transaction = tx
	}

	slog.Info("tradebook imported",
		"user_id", userID,
		"imported", res.Count(StatusImported),
		"duplicates", res.Count(StatusDuplicate),
		"failed", res.Count(StatusFailed),
	)

	return res, nil
}

func (s *Service) apply(ctx context.Context, userID uuid.UUID, line *Line) (*transaction.Transaction, error) {
	h, err := s.holdings.Ensure(ctx, userID, line.Symbol)
	if err != nil {
		return nil, fmt.Errorf("ensuring holding %s: %w", line.Symbol, err)
	}

	t := line.Trade
	tx := &transaction.Transaction{
		HoldingID: h.ID,
		Type:      t.Type,
		Quantity:  t.Quantity,
		Price:     t.Price,
		Date:      t.Date,
	}

	if t.Ref != "" {
		tx.Notes = refPrefix + t.Ref
	}

	if _, err := s.portfolio.ApplyTransaction(ctx, portfolio.Change{Op: portfolio.OpCreate, UserID: userID, Transaction: tx}); err != nil {
		return nil, err
	}

	return tx, nil
}

func (s *Service) importedRefs(ctx context.Context, userID uuid.UUID) (map[string]bool, error) {
	txs, err := s.transactions.List(ctx, transaction.ListFilter{UserID: &userID})
	if err != nil {
		return nil, fmt.Errorf("listing transactions: %w", err)
	}

	refs := make(map[string]bool)

	for _, tx := range txs {
		if ref, ok := strings.CutPrefix(tx.Notes, refPrefix); ok {
			refs[ref] = true
		}
	}

	return refs, nil
}

var _ Parser = (*tradebook.Parser)(nil)
