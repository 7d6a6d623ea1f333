// Package ledger owns the two transaction ledgers: the general ledger
// driving the dashboard, savings and bill projection, and the
// per-account ledger driving balances. It loads and saves them through
// the key-value persistence capability, seeding defaults on first run.
package ledger

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/dromero/financepro/internal/domain"
	"github.com/dromero/financepro/internal/notify"
	"github.com/dromero/financepro/internal/storage"
)

// ErrTransactionNotFound is returned by update and delete operations
// when the id has no matching entry.
var ErrTransactionNotFound = errors.New("transaction not found")

// Store is the single owner of the in-memory ledgers. Every mutation
// is followed by an idempotent full-array write of the affected ledger;
// malformed stored payloads fail the load rather than being silently
// replaced.
type Store struct {
	mu   sync.Mutex
	kv   storage.KV
	sink notify.Sink
	log  zerolog.Logger
	now  func() time.Time

	transactions        []domain.Transaction
	accountTransactions []domain.AccountTransaction
	lastID              uint64
}

// NewStore creates a Store over the given persistence capability. A nil
// sink keeps the store silent.
func NewStore(kv storage.KV, sink notify.Sink, log zerolog.Logger) *Store {
	if sink == nil {
		sink = notify.Nop{}
	}
	return &Store{
		kv:   kv,
		sink: sink,
		log:  log,
		now:  time.Now,
	}
}

// Load populates both ledgers from persistence. On first run it seeds
// the default data and immediately persists it.
func (s *Store) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, ok, err := s.kv.Get(storage.KeyTransactions)
	if err != nil {
		return fmt.Errorf("load transactions: %w", err)
	}
	if ok {
		if err := json.Unmarshal(data, &s.transactions); err != nil {
			return fmt.Errorf("load transactions: %w", err)
		}
	} else {
		s.transactions = defaultTransactions()
		if err := s.saveTransactionsLocked(); err != nil {
			return err
		}
	}

	data, ok, err = s.kv.Get(storage.KeyAccountTransactions)
	if err != nil {
		return fmt.Errorf("load account transactions: %w", err)
	}
	if ok {
		if err := json.Unmarshal(data, &s.accountTransactions); err != nil {
			return fmt.Errorf("load account transactions: %w", err)
		}
	} else {
		s.accountTransactions = defaultAccountTransactions()
		if err := s.saveAccountTransactionsLocked(); err != nil {
			return err
		}
	}

	for _, t := range s.transactions {
		if t.ID > s.lastID {
			s.lastID = t.ID
		}
	}
	for _, t := range s.accountTransactions {
		if t.ID > s.lastID {
			s.lastID = t.ID
		}
	}

	s.log.Info().
		Int("transactions", len(s.transactions)).
		Int("account_transactions", len(s.accountTransactions)).
		Msg("ledgers loaded")
	return nil
}

func (s *Store) saveTransactionsLocked() error {
	data, err := json.Marshal(s.transactions)
	if err != nil {
		return fmt.Errorf("save transactions: %w", err)
	}
	return s.kv.Set(storage.KeyTransactions, data)
}

func (s *Store) saveAccountTransactionsLocked() error {
	data, err := json.Marshal(s.accountTransactions)
	if err != nil {
		return fmt.Errorf("save account transactions: %w", err)
	}
	return s.kv.Set(storage.KeyAccountTransactions, data)
}

// NextID returns a process-unique, monotonically increasing id seeded
// from wall-clock milliseconds.
func (s *Store) NextID() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.nextIDLocked()
}

func (s *Store) nextIDLocked() uint64 {
	id := uint64(s.now().UnixMilli())
	if id <= s.lastID {
		id = s.lastID + 1
	}
	s.lastID = id
	return id
}

// Transactions returns a copy of the general ledger.
func (s *Store) Transactions() []domain.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()

	copied := make([]domain.Transaction, len(s.transactions))
	copy(copied, s.transactions)
	return copied
}

// AccountTransactions returns a copy of the per-account ledger.
func (s *Store) AccountTransactions() []domain.AccountTransaction {
	s.mu.Lock()
	defer s.mu.Unlock()

	copied := make([]domain.AccountTransaction, len(s.accountTransactions))
	copy(copied, s.accountTransactions)
	return copied
}

// normalize forces the sign convention and derived fields of a general
// ledger entry: expenses are stored negative, everything else positive,
// the icon follows the category, and a bill always carries a frequency.
func normalize(t domain.Transaction) domain.Transaction {
	if t.Type == domain.TypeExpense {
		t.Amount = t.Amount.Abs().Neg()
	} else {
		t.Amount = t.Amount.Abs()
	}
	t.Icon = domain.IconFor(t.Category, t.Type)
	if t.IsBill {
		if t.Frequency == "" {
			t.Frequency = domain.FrequencyMonthly
		}
	} else {
		t.Frequency = ""
	}
	return t
}

// AddTransaction appends a new general ledger entry. The id, sign, icon
// and bill frequency are derived here; callers supply the rest.
func (s *Store) AddTransaction(t domain.Transaction) (domain.Transaction, error) {
	s.mu.Lock()
	t = normalize(t)
	t.ID = s.nextIDLocked()
	if t.Status == "" {
		t.Status = domain.StatusCompleted
	}
	s.transactions = append(s.transactions, t)
	err := s.saveTransactionsLocked()
	s.mu.Unlock()

	if err != nil {
		return domain.Transaction{}, err
	}
	s.sink.Push(fmt.Sprintf("Nueva transacción '%s' añadida.", t.Name), domain.NotifySuccess)
	return t, nil
}

// UpdateTransaction replaces the entry with t.ID in place. It returns
// ErrTransactionNotFound when no entry matches.
func (s *Store) UpdateTransaction(t domain.Transaction) (domain.Transaction, error) {
	s.mu.Lock()
	idx := -1
	for i := range s.transactions {
		if s.transactions[i].ID == t.ID {
			idx = i
			break
		}
	}
	if idx == -1 {
		s.mu.Unlock()
		return domain.Transaction{}, ErrTransactionNotFound
	}
	oldName := s.transactions[idx].Name
	t = normalize(t)
	s.transactions[idx] = t
	err := s.saveTransactionsLocked()
	s.mu.Unlock()

	if err != nil {
		return domain.Transaction{}, err
	}
	s.sink.Push(fmt.Sprintf("Transacción '%s' actualizada.", oldName), domain.NotifyInfo)
	return t, nil
}

// DeleteTransaction hard-deletes an entry.
func (s *Store) DeleteTransaction(id uint64) error {
	s.mu.Lock()
	idx := -1
	for i := range s.transactions {
		if s.transactions[i].ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		s.mu.Unlock()
		return ErrTransactionNotFound
	}
	name := s.transactions[idx].Name
	s.transactions = append(s.transactions[:idx], s.transactions[idx+1:]...)
	err := s.saveTransactionsLocked()
	s.mu.Unlock()

	if err != nil {
		return err
	}
	s.sink.Push(fmt.Sprintf("Transacción '%s' eliminada.", name), domain.NotifyWarning)
	return nil
}

// AppendAccountTransactions appends one or more per-account entries and
// persists once, so the two halves of a transfer land in a single write.
func (s *Store) AppendAccountTransactions(txs ...domain.AccountTransaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.accountTransactions = append(s.accountTransactions, txs...)
	return s.saveAccountTransactionsLocked()
}

// ReplaceAccountTransaction swaps the entry with t.ID for t.
func (s *Store) ReplaceAccountTransaction(t domain.AccountTransaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.accountTransactions {
		if s.accountTransactions[i].ID == t.ID {
			s.accountTransactions[i] = t
			return s.saveAccountTransactionsLocked()
		}
	}
	return ErrTransactionNotFound
}

// RemoveAccountTransaction deletes a per-account entry and returns it.
func (s *Store) RemoveAccountTransaction(id uint64) (domain.AccountTransaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.accountTransactions {
		if s.accountTransactions[i].ID == id {
			removed := s.accountTransactions[i]
			s.accountTransactions = append(s.accountTransactions[:i], s.accountTransactions[i+1:]...)
			return removed, s.saveAccountTransactionsLocked()
		}
	}
	return domain.AccountTransaction{}, ErrTransactionNotFound
}

// AccountHasTransactions reports whether any per-account entry
// references the account as payer, source or destination.
func (s *Store) AccountHasTransactions(accountID uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, t := range s.accountTransactions {
		if t.References(accountID) {
			return true
		}
	}
	return false
}
