package portfolio

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/folio/internal/holding"
	"github.com/MrJamesThe3rd/folio/internal/ledger"
	"github.com/MrJamesThe3rd/folio/internal/lock"
	"github.com/MrJamesThe3rd/folio/internal/lot"
	"github.com/MrJamesThe3rd/folio/internal/sanitize"
	"github.com/MrJamesThe3rd/folio/internal/transaction"
)

var ErrUnknownOp = errors.New("unknown change operation")

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=portfolio
type Repository interface {
	GetHolding(ctx context.Context, id uuid.UUID) (*holding.Holding, error)
	GetTransaction(ctx context.Context, id uuid.UUID) (*transaction.Transaction, error)
	ListTransactions(ctx context.Context, holdingID uuid.UUID) ([]*transaction.Transaction, error)
	ListMatches(ctx context.Context, holdingID uuid.UUID) ([]lot.Match, error)

	// BeginHolding opens a unit of work holding the holding's write lock.
	BeginHolding(ctx context.Context, holdingID uuid.UUID) (HoldingTx, error)
}

// HoldingTx is the unit of work for one holding. It also writes the holding's
// cash settlements, so it satisfies ledger.FlowWriter.
type HoldingTx interface {
	GetTransaction(ctx context.Context, id uuid.UUID) (*transaction.Transaction, error)
	CreateTransaction(ctx context.Context, tx *transaction.Transaction) error
	UpdateTransaction(ctx context.Context, tx *transaction.Transaction) error
	DeleteTransaction(ctx context.Context, id uuid.UUID) error
	ListTransactions(ctx context.Context, holdingID uuid.UUID) ([]*transaction.Transaction, error)
	ReplaceMatches(ctx context.Context, holdingID uuid.UUID, matches []lot.Match) error
	UpsertTransactionFlow(ctx context.Context, e *ledger.Entry) error
	DeleteTransactionFlow(ctx context.Context, transactionID uuid.UUID) error
	DeleteHolding(ctx context.Context, holdingID uuid.UUID) error
	Commit() error
	Rollback() error
}

type Service struct {
	repo      Repository
	strategy  lot.Strategy
	holdings  *lock.Keyed[uuid.UUID]
	snapshots sync.Map // uuid.UUID -> *atomic.Pointer[Summary]
}

func NewService(repo Repository) *Service {
	return &Service{
		repo:     repo,
		strategy: lot.FIFO{},
		holdings: lock.NewKeyed[uuid.UUID](),
	}
}

// ApplyTransaction stores the change and rebuilds the holding's lot matches
// and settlements with it. Nothing is written when any step fails, including
// an oversell anywhere in the holding's history.
func (s *Service) ApplyTransaction(ctx context.Context, ch Change) (*Summary, error) {
	if ch.Transaction == nil {
		return nil, &transaction.ValidationError{Field: "transaction", Reason: "is required"}
	}

	holdingID, err := s.resolveHolding(ctx, ch)
	if err != nil {
		return nil, err
	}

	h, err := s.ownedHolding(ctx, ch.UserID, holdingID)
	if err != nil {
		return nil, err
	}

	unlock := s.holdings.Lock(holdingID)
	defer unlock()

	htx, err := s.repo.BeginHolding(ctx, holdingID)
	if err != nil {
		return nil, fmt.Errorf("begin holding update: %w", err)
	}
	defer htx.Rollback()

	if err := s.mutate(ctx, htx, h, ch); err != nil {
		return nil, err
	}

	sum, err := s.rebuild(ctx, htx, h)
	if err != nil {
		return nil, err
	}

	if err := htx.Commit(); err != nil {
		return nil, fmt.Errorf("commit holding update: %w", err)
	}

	s.publish(sum)

	slog.Info("transaction applied",
		"op", ch.Op,
		"holding_id", holdingID,
		"transaction_id", ch.Transaction.ID,
		"open_quantity", sum.OpenQuantity,
		"realized", sum.Realized.StringFixed(2),
	)

	return sum, nil
}

// resolveHolding finds the holding a change belongs to. Updates never move a
// transaction to another holding.
func (s *Service) resolveHolding(ctx context.Context, ch Change) (uuid.UUID, error) {
	switch ch.Op {
	case OpCreate:
		if err := transaction.Validate(ch.Transaction); err != nil {
			return uuid.Nil, err
		}

		return ch.Transaction.HoldingID, nil

	case OpUpdate, OpDelete:
		existing, err := s.repo.GetTransaction(ctx, ch.Transaction.ID)
		if err != nil {
			return uuid.Nil, err
		}

		if ch.Op == OpUpdate {
			ch.Transaction.HoldingID = existing.HoldingID
			if err := transaction.Validate(ch.Transaction); err != nil {
				return uuid.Nil, err
			}
		}

		return existing.HoldingID, nil
	}

	return uuid.Nil, fmt.Errorf("%w: %q", ErrUnknownOp, ch.Op)
}

func (s *Service) ownedHolding(ctx context.Context, userID, holdingID uuid.UUID) (*holding.Holding, error) {
	h, err := s.repo.GetHolding(ctx, holdingID)
	if err != nil {
		return nil, err
	}

	if h.UserID != userID {
		return nil, holding.ErrNotFound
	}

	return h, nil
}

func (s *Service) mutate(ctx context.Context, htx HoldingTx, h *holding.Holding, ch Change) error {
	tx := ch.Transaction
	tx.Notes = sanitize.Text(tx.Notes)

	switch ch.Op {
	case OpCreate:
		if err := htx.CreateTransaction(ctx, tx); err != nil {
			return fmt.Errorf("create transaction: %w", err)
		}

	case OpUpdate:
		current, err := htx.GetTransaction(ctx, tx.ID)
		if err != nil {
			return err
		}

		if current.HoldingID != h.ID {
			return transaction.ErrNotFound
		}

		tx.Seq = current.Seq
		tx.CreatedAt = current.CreatedAt

		if err := htx.UpdateTransaction(ctx, tx); err != nil {
			return fmt.Errorf("update transaction: %w", err)
		}

	case OpDelete:
		if err := ledger.RemoveTransactionFlow(ctx, htx, tx.ID); err != nil {
			return err
		}

		if err := htx.DeleteTransaction(ctx, tx.ID); err != nil {
			return fmt.Errorf("delete transaction: %w", err)
		}
	}

	return nil
}

// rebuild recomputes the holding from its stored transactions and rewrites
// matches and settlements inside htx.
func (s *Service) rebuild(ctx context.Context, htx HoldingTx, h *holding.Holding) (*Summary, error) {
	txs, err := htx.ListTransactions(ctx, h.ID)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}

	res, err := lot.Recompute(h.ID, txs, s.strategy)
	if err != nil {
		slog.Warn("holding recompute rejected", "holding_id", h.ID, "error", err)
		return nil, err
	}

	if err := htx.ReplaceMatches(ctx, h.ID, res.Matches); err != nil {
		return nil, fmt.Errorf("replace matches: %w", err)
	}

	for _, tx := range txs {
		if err := ledger.SyncTransactionFlow(ctx, htx, h.UserID, tx); err != nil {
			return nil, err
		}
	}

	return newSummary(res, historyVersion(txs)), nil
}

// Recompute rebuilds a holding's derived state from its transactions. It
// repairs matches or settlements written by an older version.
func (s *Service) Recompute(ctx context.Context, holdingID uuid.UUID) (*Summary, error) {
	h, err := s.repo.GetHolding(ctx, holdingID)
	if err != nil {
		return nil, err
	}

	unlock := s.holdings.Lock(holdingID)
	defer unlock()

	htx, err := s.repo.BeginHolding(ctx, holdingID)
	if err != nil {
		return nil, fmt.Errorf("begin holding update: %w", err)
	}
	defer htx.Rollback()

	sum, err := s.rebuild(ctx, htx, h)
	if err != nil {
		return nil, err
	}

	if err := htx.Commit(); err != nil {
		return nil, fmt.Errorf("commit holding update: %w", err)
	}

	s.publish(sum)

	return sum, nil
}

// Summary returns the holding's current summary. The published snapshot is
// reused only while the stored transactions still match its version, so
// writes committed by other processes are picked up on the next read.
func (s *Service) Summary(ctx context.Context, userID, holdingID uuid.UUID) (*Summary, error) {
	if _, err := s.ownedHolding(ctx, userID, holdingID); err != nil {
		return nil, err
	}

	txs, err := s.repo.ListTransactions(ctx, holdingID)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}

	version := historyVersion(txs)

	p := s.snapshot(holdingID)

	cur := p.Load()
	if cur != nil && cur.Version == version {
		return cur, nil
	}

	res, err := lot.Recompute(holdingID, txs, s.strategy)
	if err != nil {
		return nil, err
	}

	sum := newSummary(res, version)

	// Lose quietly to a writer that published meanwhile; the next read
	// revalidates either way.
	p.CompareAndSwap(cur, sum)

	return sum, nil
}

func (s *Service) Matches(ctx context.Context, userID, holdingID uuid.UUID) ([]lot.Match, error) {
	if _, err := s.ownedHolding(ctx, userID, holdingID); err != nil {
		return nil, err
	}

	return s.repo.ListMatches(ctx, holdingID)
}

// DeleteHolding removes the holding with its transactions, matches and
// settlements.
func (s *Service) DeleteHolding(ctx context.Context, userID, holdingID uuid.UUID) error {
	if _, err := s.ownedHolding(ctx, userID, holdingID); err != nil {
		return err
	}

	unlock := s.holdings.Lock(holdingID)
	defer unlock()

	htx, err := s.repo.BeginHolding(ctx, holdingID)
	if err != nil {
		return fmt.Errorf("begin holding update: %w", err)
	}
	defer htx.Rollback()

	if err := htx.DeleteHolding(ctx, holdingID); err != nil {
		return fmt.Errorf("delete holding: %w", err)
	}

	if err := htx.Commit(); err != nil {
		return fmt.Errorf("commit holding delete: %w", err)
	}

	s.snapshots.Delete(holdingID)

	slog.Info("holding deleted", "holding_id", holdingID)

	return nil
}

func (s *Service) snapshot(holdingID uuid.UUID) *atomic.Pointer[Summary] {
	p, _ := s.snapshots.LoadOrStore(holdingID, new(atomic.Pointer[Summary]))
	return p.(*atomic.Pointer[Summary])
}

func (s *Service) publish(sum *Summary) {
	s.snapshot(sum.HoldingID).Store(sum)
}
