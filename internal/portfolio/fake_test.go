package portfolio_test

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/folio/internal/holding"
	"github.com/MrJamesThe3rd/folio/internal/ledger"
	"github.com/MrJamesThe3rd/folio/internal/lot"
	"github.com/MrJamesThe3rd/folio/internal/portfolio"
	"github.com/MrJamesThe3rd/folio/internal/transaction"
)

// memStore keeps committed state in maps. A holdingTx works on a private copy
// of one holding's rows and merges them back on Commit, so an aborted unit of
// work leaves no trace.
type memStore struct {
	mu       sync.Mutex
	seq      int64
	entryID  int64
	begins   int
	holdings map[uuid.UUID]holding.Holding
	txs      map[uuid.UUID]transaction.Transaction
	matches  map[uuid.UUID][]lot.Match
	flows    map[uuid.UUID]ledger.Entry
}

func newMemStore() *memStore {
	return &memStore{
		holdings: map[uuid.UUID]holding.Holding{},
		txs:      map[uuid.UUID]transaction.Transaction{},
		matches:  map[uuid.UUID][]lot.Match{},
		flows:    map[uuid.UUID]ledger.Entry{},
	}
}

func (s *memStore) addHolding(userID uuid.UUID, symbol string) uuid.UUID {
	s.mu.Lock()
	defer s.mu.Unlock()

	h := holding.Holding{ID: uuid.New(), UserID: userID, Symbol: symbol, Exchange: "NSE"}
	s.holdings[h.ID] = h

	return h.ID
}

func (s *memStore) GetHolding(_ context.Context, id uuid.UUID) (*holding.Holding, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	h, ok := s.holdings[id]
	if !ok {
		return nil, holding.ErrNotFound
	}

	return &h, nil
}

func (s *memStore) GetTransaction(_ context.Context, id uuid.UUID) (*transaction.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, ok := s.txs[id]
	if !ok {
		return nil, transaction.ErrNotFound
	}

	return &tx, nil
}

func (s *memStore) ListTransactions(_ context.Context, holdingID uuid.UUID) ([]*transaction.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return txsOf(s.txs, holdingID), nil
}

func (s *memStore) ListMatches(_ context.Context, holdingID uuid.UUID) ([]lot.Match, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return slices.Clone(s.matches[holdingID]), nil
}

func (s *memStore) BeginHolding(_ context.Context, holdingID uuid.UUID) (portfolio.HoldingTx, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.begins++

	tx := &memTx{
		store:     s,
		holdingID: holdingID,
		txs:       map[uuid.UUID]transaction.Transaction{},
		flows:     map[uuid.UUID]ledger.Entry{},
		matches:   slices.Clone(s.matches[holdingID]),
	}

	for id, t := range s.txs {
		if t.HoldingID != holdingID {
			continue
		}

		tx.txs[id] = t
		if f, ok := s.flows[id]; ok {
			tx.flows[id] = f
		}
	}

	return tx, nil
}

// flowsOf returns the committed settlements of a holding ordered by entry id.
func (s *memStore) flowsOf(holdingID uuid.UUID) []ledger.Entry {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []ledger.Entry

	for txID, f := range s.flows {
		if t, ok := s.txs[txID]; ok && t.HoldingID == holdingID {
			out = append(out, f)
		}
	}

	slices.SortFunc(out, func(a, b ledger.Entry) int { return int(a.ID - b.ID) })

	return out
}

func (s *memStore) counts() (txs, flows, begins int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.txs), len(s.flows), s.begins
}

func txsOf(m map[uuid.UUID]transaction.Transaction, holdingID uuid.UUID) []*transaction.Transaction {
	var out []*transaction.Transaction

	for _, t := range m {
		if t.HoldingID == holdingID {
			out = append(out, &t)
		}
	}

	return out
}

type memTx struct {
	store         *memStore
	holdingID     uuid.UUID
	txs           map[uuid.UUID]transaction.Transaction
	flows         map[uuid.UUID]ledger.Entry
	matches       []lot.Match
	deleteHolding bool
	done          bool
}

func (t *memTx) GetTransaction(_ context.Context, id uuid.UUID) (*transaction.Transaction, error) {
	tx, ok := t.txs[id]
	if !ok {
		return nil, transaction.ErrNotFound
	}

	return &tx, nil
}

func (t *memTx) CreateTransaction(_ context.Context, tx *transaction.Transaction) error {
	t.store.mu.Lock()
	t.store.seq++
	seq := t.store.seq
	t.store.mu.Unlock()

	tx.ID = uuid.New()
	tx.Seq = seq
	tx.CreatedAt = time.Now()
	t.txs[tx.ID] = *tx

	return nil
}

func (t *memTx) UpdateTransaction(_ context.Context, tx *transaction.Transaction) error {
	if _, ok := t.txs[tx.ID]; !ok {
		return transaction.ErrNotFound
	}

	now := time.Now()
	tx.UpdatedAt = &now
	t.txs[tx.ID] = *tx

	return nil
}

func (t *memTx) DeleteTransaction(_ context.Context, id uuid.UUID) error {
	if _, ok := t.txs[id]; !ok {
		return transaction.ErrNotFound
	}

	delete(t.txs, id)
	delete(t.flows, id)
	t.matches = slices.DeleteFunc(t.matches, func(m lot.Match) bool { return m.SellID == id || m.BuyID == id })

	return nil
}

func (t *memTx) ListTransactions(_ context.Context, holdingID uuid.UUID) ([]*transaction.Transaction, error) {
	return txsOf(t.txs, holdingID), nil
}

func (t *memTx) ReplaceMatches(_ context.Context, _ uuid.UUID, matches []lot.Match) error {
	t.matches = slices.Clone(matches)
	return nil
}

func (t *memTx) UpsertTransactionFlow(_ context.Context, e *ledger.Entry) error {
	txID := *e.TransactionID

	if prev, ok := t.flows[txID]; ok {
		e.ID = prev.ID
	} else {
		t.store.mu.Lock()
		t.store.entryID++
		e.ID = t.store.entryID
		t.store.mu.Unlock()
	}

	t.flows[txID] = *e

	return nil
}

func (t *memTx) DeleteTransactionFlow(_ context.Context, transactionID uuid.UUID) error {
	delete(t.flows, transactionID)
	return nil
}

func (t *memTx) DeleteHolding(context.Context, uuid.UUID) error {
	t.deleteHolding = true
	clear(t.txs)
	clear(t.flows)
	t.matches = nil

	return nil
}

func (t *memTx) Commit() error {
	s := t.store

	s.mu.Lock()
	defer s.mu.Unlock()

	for id, tx := range s.txs {
		if tx.HoldingID == t.holdingID {
			delete(s.txs, id)
			delete(s.flows, id)
		}
	}

	for id, tx := range t.txs {
		s.txs[id] = tx
	}

	for id, f := range t.flows {
		s.flows[id] = f
	}

	s.matches[t.holdingID] = t.matches

	if t.deleteHolding {
		delete(s.holdings, t.holdingID)
		delete(s.matches, t.holdingID)
	}

	t.done = true

	return nil
}

func (t *memTx) Rollback() error {
	t.done = true
	return nil
}
