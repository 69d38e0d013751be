package ledger

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/folio/internal/lock"
	"github.com/MrJamesThe3rd/folio/internal/sanitize"
	"github.com/MrJamesThe3rd/folio/internal/transaction"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=ledger
type Repository interface {
	ListEntries(ctx context.Context, userID uuid.UUID) ([]*Entry, error)
	GetEntry(ctx context.Context, id int64) (*Entry, error)

	// BeginUser opens a unit of work that holds the user's ledger lock.
	BeginUser(ctx context.Context, userID uuid.UUID) (UserTx, error)
}

type UserTx interface {
	ListEntries(ctx context.Context, userID uuid.UUID) ([]*Entry, error)
	CreateEntry(ctx context.Context, e *Entry) error
	DeleteEntry(ctx context.Context, id int64) error
	Commit() error
	Rollback() error
}

// FlowWriter persists trade settlement entries. The portfolio unit of work
// implements it so settlements commit with the lot matches.
type FlowWriter interface {
	UpsertTransactionFlow(ctx context.Context, e *Entry) error
	DeleteTransactionFlow(ctx context.Context, transactionID uuid.UUID) error
}

type Service struct {
	repo  Repository
	users *lock.Keyed[uuid.UUID]
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, users: lock.NewKeyed[uuid.UUID]()}
}

type FlowParams struct {
	UserID uuid.UUID
	Type   Type
	Amount decimal.Decimal
	Date   time.Time
	Note   string
}

// RecordExternalFlow appends a deposit or withdrawal after every entry of the
// same day. Amount is the positive magnitude; withdrawals are stored negated.
func (s *Service) RecordExternalFlow(ctx context.Context, params FlowParams) (*Entry, error) {
	if err := validateFlow(params); err != nil {
		return nil, err
	}

	amount := params.Amount
	if params.Type == TypeWithdrawal {
		amount = amount.Neg()
	}

	e := &Entry{
		UserID: params.UserID,
		Type:   params.Type,
		Amount: amount,
		Date:   params.Date,
		Note:   sanitize.Text(params.Note),
	}

	unlock := s.users.Lock(params.UserID)
	defer unlock()

	utx, err := s.repo.BeginUser(ctx, params.UserID)
	if err != nil {
		return nil, fmt.Errorf("begin ledger update: %w", err)
	}
	defer utx.Rollback()

	entries, err := utx.ListEntries(ctx, params.UserID)
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}

	Sort(entries)

	if err := checkBalance(entries, appendAfterSameDay(entries, e), e); err != nil {
		slog.Warn("cash flow rejected", "user_id", params.UserID, "type", params.Type, "amount", params.Amount, "error", err)
		return nil, err
	}

	if err := utx.CreateEntry(ctx, e); err != nil {
		return nil, fmt.Errorf("create entry: %w", err)
	}

	if err := utx.Commit(); err != nil {
		return nil, fmt.Errorf("commit ledger update: %w", err)
	}

	return e, nil
}

// DeleteExternalFlow removes a deposit or withdrawal if the ledger stays
// solvent without it.
func (s *Service) DeleteExternalFlow(ctx context.Context, userID uuid.UUID, entryID int64) error {
	unlock := s.users.Lock(userID)
	defer unlock()

	utx, err := s.repo.BeginUser(ctx, userID)
	if err != nil {
		return fmt.Errorf("begin ledger update: %w", err)
	}
	defer utx.Rollback()

	entries, err := utx.ListEntries(ctx, userID)
	if err != nil {
		return fmt.Errorf("list entries: %w", err)
	}

	Sort(entries)

	var target *Entry

	for _, e := range entries {
		if e.ID == entryID {
			target = e
			break
		}
	}

	if target == nil {
		return ErrNotFound
	}

	if !target.Type.External() {
		return ErrNotExternal
	}

	if err := checkBalance(entries, without(entries, entryID), nil); err != nil {
		return err
	}

	if err := utx.DeleteEntry(ctx, entryID); err != nil {
		return fmt.Errorf("delete entry: %w", err)
	}

	if err := utx.Commit(); err != nil {
		return fmt.Errorf("commit ledger update: %w", err)
	}

	return nil
}

func (s *Service) Get(ctx context.Context, userID uuid.UUID, id int64) (*Entry, error) {
	e, err := s.repo.GetEntry(ctx, id)
	if err != nil {
		return nil, err
	}

	if e.UserID != userID {
		return nil, ErrNotFound
	}

	return e, nil
}

func (s *Service) BalanceAsOf(ctx context.Context, userID uuid.UUID, date time.Time) (decimal.Decimal, error) {
	entries, err := s.repo.ListEntries(ctx, userID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("list entries: %w", err)
	}

	return BalanceAsOf(entries, date), nil
}

// Statement returns the lines dated in [from, to] with balances computed over
// the whole ledger. A zero bound is open.
func (s *Service) Statement(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]Line, error) {
	entries, err := s.repo.ListEntries(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}

	var lines []Line

	for _, l := range Running(entries) {
		if !from.IsZero() && l.Entry.Date.Before(from) {
			continue
		}

		if !to.IsZero() && l.Entry.Date.After(to) {
			continue
		}

		lines = append(lines, l)
	}

	return lines, nil
}

// SyncTransactionFlow writes the settlement entry for tx, replacing any
// previous one for the same transaction.
func SyncTransactionFlow(ctx context.Context, w FlowWriter, userID uuid.UUID, tx *transaction.Transaction) error {
	if err := w.UpsertTransactionFlow(ctx, FlowFor(userID, tx)); err != nil {
		return fmt.Errorf("syncing flow for transaction %s: %w", tx.ID, err)
	}

	return nil
}

func RemoveTransactionFlow(ctx context.Context, w FlowWriter, transactionID uuid.UUID) error {
	if err := w.DeleteTransactionFlow(ctx, transactionID); err != nil {
		return fmt.Errorf("removing flow for transaction %s: %w", transactionID, err)
	}

	return nil
}

func validateFlow(p FlowParams) error {
	switch {
	case p.UserID == uuid.Nil:
		return fmt.Errorf("%w: user is required", ErrInvalid)
	case !p.Type.External():
		return fmt.Errorf("%w: type must be INIT_DEPOSIT, DEPOSIT or WITHDRAWAL, got %q", ErrInvalid, p.Type)
	case !p.Amount.IsPositive():
		return fmt.Errorf("%w: amount must be positive", ErrInvalid)
	case p.Date.IsZero():
		return fmt.Errorf("%w: date is required", ErrInvalid)
	}

	return nil
}
