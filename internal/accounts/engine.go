// Package accounts implements the account engine: account CRUD, the
// main-account invariant, balance derivation from the per-account
// ledger, transfers and net-worth totals.
package accounts

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/dromero/financepro/internal/domain"
	"github.com/dromero/financepro/internal/ledger"
	"github.com/dromero/financepro/internal/notify"
	"github.com/dromero/financepro/internal/storage"
)

var (
	// ErrAccountNotFound is returned when an id matches no account.
	ErrAccountNotFound = errors.New("account not found")
	// ErrAccountHasTransactions rejects deleting an account that is
	// referenced by the per-account ledger.
	ErrAccountHasTransactions = errors.New("account has transactions")
	// ErrSameAccount rejects a transfer whose source and destination match.
	ErrSameAccount = errors.New("cannot transfer to the same account")
	// ErrInvalidAmount rejects non-positive transfer amounts.
	ErrInvalidAmount = errors.New("amount must be positive")
	// ErrNameRequired rejects accounts without a name.
	ErrNameRequired = errors.New("account name is required")
	// ErrInvalidAccountType rejects unknown account types.
	ErrInvalidAccountType = errors.New("invalid account type")
)

const defaultCurrency = "PEN"

// AccountInput is the caller-supplied part of an account. Balance here
// is only an opening amount: the stored balance is always derived from
// the ledger, so a nonzero opening amount becomes an opening
// transaction instead.
type AccountInput struct {
	ID             uint64             `json:"id,omitempty"`
	Name           string             `json:"name"`
	Type           domain.AccountType `json:"type"`
	InitialBalance decimal.Decimal    `json:"balance"`
	Currency       string             `json:"currency"`
	Color          string             `json:"color"`
	IsMain         bool               `json:"isMain"`
	IsActive       *bool              `json:"isActive,omitempty"`
	Limit          *decimal.Decimal   `json:"limit,omitempty"`
}

// AccountTransactionInput is the caller-supplied part of a per-account
// ledger entry.
type AccountTransactionInput struct {
	ID                  uint64                   `json:"id,omitempty"`
	AccountID           uint64                   `json:"accountId"`
	Name                string                   `json:"name"`
	Amount              decimal.Decimal          `json:"amount"`
	Date                domain.Date              `json:"date"`
	Category            string                   `json:"category"`
	Type                domain.TransactionType   `json:"type"`
	Status              domain.TransactionStatus `json:"status"`
	TransferToAccountID uint64                   `json:"transferToAccountId,omitempty"`
	AffectsSavingsGoal  bool                     `json:"affectsSavingsGoal,omitempty"`
}

// Engine owns the account list and derives every balance from the
// ledger store.
type Engine struct {
	mu    sync.Mutex
	kv    storage.KV
	store *ledger.Store
	sink  notify.Sink
	log   zerolog.Logger
	now   func() time.Time

	accounts  []domain.Account
	currentID uint64
	lastID    uint64
}

// NewEngine creates an account engine. A nil sink keeps it silent.
func NewEngine(kv storage.KV, store *ledger.Store, sink notify.Sink, log zerolog.Logger) *Engine {
	if sink == nil {
		sink = notify.Nop{}
	}
	return &Engine{
		kv:    kv,
		store: store,
		sink:  sink,
		log:   log,
		now:   time.Now,
	}
}

// Load populates the account list, seeding defaults on first run, then
// recomputes every balance. Stored balances are never trusted directly.
func (e *Engine) Load() error {
	e.mu.Lock()
	data, ok, err := e.kv.Get(storage.KeyAccounts)
	if err != nil {
		e.mu.Unlock()
		return fmt.Errorf("load accounts: %w", err)
	}
	if ok {
		if err := json.Unmarshal(data, &e.accounts); err != nil {
			e.mu.Unlock()
			return fmt.Errorf("load accounts: %w", err)
		}
	} else {
		e.accounts = defaultAccounts()
		if err := e.persistLocked(); err != nil {
			e.mu.Unlock()
			return err
		}
	}

	for _, a := range e.accounts {
		if a.ID > e.lastID {
			e.lastID = a.ID
		}
	}
	e.currentID = 0
	for _, a := range e.accounts {
		if a.IsMain {
			e.currentID = a.ID
			break
		}
	}
	if e.currentID == 0 && len(e.accounts) > 0 {
		e.currentID = e.accounts[0].ID
	}
	e.mu.Unlock()

	return e.UpdateBalances()
}

func (e *Engine) persistLocked() error {
	data, err := json.Marshal(e.accounts)
	if err != nil {
		return fmt.Errorf("save accounts: %w", err)
	}
	return e.kv.Set(storage.KeyAccounts, data)
}

func (e *Engine) nextIDLocked() uint64 {
	id := uint64(e.now().UnixMilli())
	if id <= e.lastID {
		id = e.lastID + 1
	}
	e.lastID = id
	return id
}

// Accounts returns a copy of the account list.
func (e *Engine) Accounts() []domain.Account {
	e.mu.Lock()
	defer e.mu.Unlock()

	copied := make([]domain.Account, len(e.accounts))
	copy(copied, e.accounts)
	return copied
}

// AccountByID looks up one account.
func (e *Engine) AccountByID(id uint64) (domain.Account, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	for _, a := range e.accounts {
		if a.ID == id {
			return a, true
		}
	}
	return domain.Account{}, false
}

// AccountName resolves an account name for notification messages.
func (e *Engine) AccountName(id uint64) string {
	if a, ok := e.AccountByID(id); ok {
		return a.Name
	}
	return "Cuenta Desconocida"
}

// CurrentAccountID returns the account the UI is focused on.
func (e *Engine) CurrentAccountID() uint64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.currentID
}

// SetCurrentAccountID moves the UI focus; unknown ids are rejected.
func (e *Engine) SetCurrentAccountID(id uint64) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	for _, a := range e.accounts {
		if a.ID == id {
			e.currentID = id
			return true
		}
	}
	return false
}

// AddAccount creates an account. The balance always starts derived: a
// nonzero opening amount is recorded as an opening transaction so the
// ledger stays the single source of truth.
func (e *Engine) AddAccount(input AccountInput) (domain.Account, error) {
	if input.Name == "" {
		return domain.Account{}, ErrNameRequired
	}
	if !input.Type.Valid() {
		return domain.Account{}, ErrInvalidAccountType
	}

	e.mu.Lock()
	account := domain.Account{
		ID:        e.nextIDLocked(),
		Name:      input.Name,
		Type:      input.Type,
		Balance:   decimal.Zero,
		Currency:  input.Currency,
		Color:     input.Color,
		IsMain:    input.IsMain,
		IsActive:  true,
		CreatedAt: domain.DateOf(e.now()),
	}
	if account.Currency == "" {
		account.Currency = defaultCurrency
	}
	if input.Type == domain.AccountCredit {
		account.Limit = input.Limit
	}
	if len(e.accounts) == 0 {
		account.IsMain = true
	} else if account.IsMain {
		for i := range e.accounts {
			e.accounts[i].IsMain = false
		}
	}
	e.accounts = append(e.accounts, account)
	if len(e.accounts) == 1 {
		e.currentID = account.ID
	}
	err := e.persistLocked()
	e.mu.Unlock()
	if err != nil {
		return domain.Account{}, err
	}

	if !input.InitialBalance.IsZero() {
		opening := domain.AccountTransaction{
			ID:        e.store.NextID(),
			AccountID: account.ID,
			Name:      "Saldo inicial",
			Date:      account.CreatedAt,
			Category:  "Otros",
			Status:    domain.StatusCompleted,
		}
		if input.Type.IsLiability() {
			opening.Type = domain.TypeExpense
			opening.Amount = input.InitialBalance.Abs().Neg()
		} else {
			opening.Type = domain.TypeIncome
			opening.Amount = input.InitialBalance.Abs()
		}
		if err := e.store.AppendAccountTransactions(opening); err != nil {
			return domain.Account{}, err
		}
	}

	if err := e.UpdateBalances(); err != nil {
		return domain.Account{}, err
	}
	e.sink.Push(fmt.Sprintf("Nueva cuenta %q añadida.", account.Name), domain.NotifySuccess)

	account, _ = e.AccountByID(account.ID)
	return account, nil
}

// UpdateAccount merges the editable fields into an existing account.
// Demoting the main account promotes another active one, or is refused
// when no other active account exists.
func (e *Engine) UpdateAccount(input AccountInput) (domain.Account, error) {
	e.mu.Lock()
	idx := -1
	for i := range e.accounts {
		if e.accounts[i].ID == input.ID {
			idx = i
			break
		}
	}
	if idx == -1 {
		e.mu.Unlock()
		return domain.Account{}, ErrAccountNotFound
	}

	account := e.accounts[idx]
	if input.Name != "" {
		account.Name = input.Name
	}
	if input.Type.Valid() {
		account.Type = input.Type
	}
	if input.Currency != "" {
		account.Currency = input.Currency
	}
	if input.Color != "" {
		account.Color = input.Color
	}
	if input.IsActive != nil {
		account.IsActive = *input.IsActive
	}
	if account.Type == domain.AccountCredit {
		account.Limit = input.Limit
	} else {
		account.Limit = nil
	}

	switch {
	case e.accounts[idx].IsMain && !input.IsMain:
		promoted := false
		for i := range e.accounts {
			if e.accounts[i].ID != account.ID && e.accounts[i].IsActive {
				e.accounts[i].IsMain = true
				promoted = true
				break
			}
		}
		// No other active account: keep this one as main.
		account.IsMain = !promoted
	case input.IsMain:
		for i := range e.accounts {
			e.accounts[i].IsMain = false
		}
		account.IsMain = true
	}

	e.accounts[idx] = account
	err := e.persistLocked()
	e.mu.Unlock()
	if err != nil {
		return domain.Account{}, err
	}

	e.sink.Push(fmt.Sprintf("Cuenta %q actualizada.", account.Name), domain.NotifyInfo)
	return account, nil
}

// DeleteAccount removes an account without transaction history. If the
// deleted account was main, another active account is promoted.
func (e *Engine) DeleteAccount(id uint64) error {
	account, ok := e.AccountByID(id)
	if !ok {
		return ErrAccountNotFound
	}
	if e.store.AccountHasTransactions(id) {
		e.sink.Push(fmt.Sprintf("No se puede eliminar la cuenta %q porque tiene transacciones asociadas.", account.Name), domain.NotifyError)
		return ErrAccountHasTransactions
	}

	e.mu.Lock()
	if account.IsMain {
		e.currentID = 0
		for i := range e.accounts {
			if e.accounts[i].ID != id && e.accounts[i].IsActive {
				e.accounts[i].IsMain = true
				e.currentID = e.accounts[i].ID
				break
			}
		}
	}
	for i := range e.accounts {
		if e.accounts[i].ID == id {
			e.accounts = append(e.accounts[:i], e.accounts[i+1:]...)
			break
		}
	}
	err := e.persistLocked()
	e.mu.Unlock()
	if err != nil {
		return err
	}

	e.sink.Push(fmt.Sprintf("Cuenta %q eliminada.", account.Name), domain.NotifyWarning)
	return nil
}

// SetMainAccount makes the target the single main account.
func (e *Engine) SetMainAccount(id uint64) error {
	e.mu.Lock()
	idx := -1
	for i := range e.accounts {
		if e.accounts[i].ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		e.mu.Unlock()
		return ErrAccountNotFound
	}
	for i := range e.accounts {
		e.accounts[i].IsMain = false
	}
	e.accounts[idx].IsMain = true
	e.currentID = id
	name := e.accounts[idx].Name
	err := e.persistLocked()
	e.mu.Unlock()
	if err != nil {
		return err
	}

	e.sink.Push(fmt.Sprintf("%s establecida como cuenta principal.", name), domain.NotifyInfo)
	return nil
}

// UpdateBalances recomputes every balance from the completed entries of
// the per-account ledger and persists the result. Credit and loan
// accounts store the negated absolute value of their sum: they display
// as liabilities regardless of the raw sign.
func (e *Engine) UpdateBalances() error {
	txs := e.store.AccountTransactions()

	sums := make(map[uint64]decimal.Decimal)
	for _, t := range txs {
		if t.Status != domain.StatusCompleted {
			continue
		}
		sums[t.AccountID] = sums[t.AccountID].Add(t.Amount)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	for i := range e.accounts {
		sum := sums[e.accounts[i].ID]
		if e.accounts[i].Type.IsLiability() {
			e.accounts[i].Balance = sum.Abs().Neg()
		} else {
			e.accounts[i].Balance = sum
		}
	}
	return e.persistLocked()
}

// Totals aggregates active accounts into assets, liabilities and net
// worth.
func (e *Engine) Totals() domain.AccountsTotal {
	e.mu.Lock()
	defer e.mu.Unlock()

	total := domain.AccountsTotal{
		Assets:      decimal.Zero,
		Liabilities: decimal.Zero,
	}
	for _, a := range e.accounts {
		if !a.IsActive {
			continue
		}
		if a.Type.IsLiability() {
			total.Liabilities = total.Liabilities.Add(a.Balance.Abs())
		} else {
			total.Assets = total.Assets.Add(a.Balance)
		}
	}
	total.NetWorth = total.Assets.Sub(total.Liabilities)
	return total
}

// Transfer moves money between two accounts as a pair of linked ledger
// entries written in a single flush, then recomputes balances.
func (e *Engine) Transfer(fromID, toID uint64, amount decimal.Decimal, description string, date domain.Date) error {
	if fromID == toID {
		e.sink.Push("No se puede transferir a la misma cuenta.", domain.NotifyError)
		return ErrSameAccount
	}
	if amount.Sign() <= 0 {
		return ErrInvalidAmount
	}
	from, okFrom := e.AccountByID(fromID)
	to, okTo := e.AccountByID(toID)
	if !okFrom || !okTo {
		e.sink.Push("Una o ambas cuentas no existen.", domain.NotifyError)
		return ErrAccountNotFound
	}

	if date.IsZero() {
		date = domain.DateOf(e.now())
	}
	outName := description
	if outName == "" {
		outName = fmt.Sprintf("Transferencia a %s", to.Name)
	}
	inName := description
	if inName == "" {
		inName = fmt.Sprintf("Transferencia desde %s", from.Name)
	}

	out := domain.AccountTransaction{
		ID:                  e.store.NextID(),
		AccountID:           fromID,
		Name:                outName,
		Amount:              amount.Abs().Neg(),
		Date:                date,
		Category:            "Transferencia",
		Type:                domain.TypeTransfer,
		Status:              domain.StatusCompleted,
		TransferToAccountID: toID,
	}
	in := domain.AccountTransaction{
		ID:                    e.store.NextID(),
		AccountID:             toID,
		Name:                  inName,
		Amount:                amount.Abs(),
		Date:                  date,
		Category:              "Transferencia",
		Type:                  domain.TypeTransfer,
		Status:                domain.StatusCompleted,
		TransferFromAccountID: fromID,
	}

	if err := e.store.AppendAccountTransactions(out, in); err != nil {
		return err
	}
	if err := e.UpdateBalances(); err != nil {
		return err
	}

	e.sink.Push(fmt.Sprintf("Transferencia de %s realizada desde %s a %s.", amount.Abs().StringFixed(2), from.Name, to.Name), domain.NotifySuccess)
	return nil
}

// signAmount enforces the per-account ledger sign rule: expenses and
// outbound transfers are negative, everything else positive.
func signAmount(input AccountTransactionInput) decimal.Decimal {
	if input.Type == domain.TypeExpense || (input.Type == domain.TypeTransfer && input.TransferToAccountID == 0) {
		return input.Amount.Abs().Neg()
	}
	return input.Amount.Abs()
}

// AddAccountTransaction appends a per-account entry and recomputes
// balances. Entries flagged as affecting the savings goal mirror into
// the general ledger as savings contributions.
func (e *Engine) AddAccountTransaction(input AccountTransactionInput) (domain.AccountTransaction, error) {
	tx := domain.AccountTransaction{
		ID:                  e.store.NextID(),
		AccountID:           input.AccountID,
		Name:                input.Name,
		Amount:              signAmount(input),
		Date:                input.Date,
		Category:            input.Category,
		Type:                input.Type,
		Status:              input.Status,
		TransferToAccountID: input.TransferToAccountID,
		AffectsSavingsGoal:  input.AffectsSavingsGoal,
	}
	if tx.Date.IsZero() {
		tx.Date = domain.DateOf(e.now())
	}
	if tx.Status == "" {
		tx.Status = domain.StatusCompleted
	}

	if err := e.store.AppendAccountTransactions(tx); err != nil {
		return domain.AccountTransaction{}, err
	}
	if err := e.UpdateBalances(); err != nil {
		return domain.AccountTransaction{}, err
	}

	if input.AffectsSavingsGoal {
		_, err := e.store.AddTransaction(domain.Transaction{
			Name:                  tx.Name,
			Category:              tx.Category,
			Date:                  tx.Date,
			Amount:                tx.Amount,
			Status:                tx.Status,
			Type:                  tx.Type,
			IsSavingsContribution: true,
		})
		if err != nil {
			return domain.AccountTransaction{}, err
		}
	}

	e.sink.Push(fmt.Sprintf("Nueva transacción añadida a %s.", e.AccountName(tx.AccountID)), domain.NotifySuccess)
	return tx, nil
}

// UpdateAccountTransaction replaces an existing per-account entry,
// re-enforcing the sign rule, and recomputes balances.
func (e *Engine) UpdateAccountTransaction(input AccountTransactionInput) (domain.AccountTransaction, error) {
	tx := domain.AccountTransaction{
		ID:                  input.ID,
		AccountID:           input.AccountID,
		Name:                input.Name,
		Amount:              signAmount(input),
		Date:                input.Date,
		Category:            input.Category,
		Type:                input.Type,
		Status:              input.Status,
		TransferToAccountID: input.TransferToAccountID,
		AffectsSavingsGoal:  input.AffectsSavingsGoal,
	}
	if tx.Status == "" {
		tx.Status = domain.StatusCompleted
	}
	if err := e.store.ReplaceAccountTransaction(tx); err != nil {
		return domain.AccountTransaction{}, err
	}
	if err := e.UpdateBalances(); err != nil {
		return domain.AccountTransaction{}, err
	}

	e.sink.Push(fmt.Sprintf("Transacción actualizada en %s.", e.AccountName(tx.AccountID)), domain.NotifyInfo)
	return tx, nil
}

// DeleteAccountTransaction removes a per-account entry and recomputes
// balances. No referential guard applies: this is a leaf operation.
func (e *Engine) DeleteAccountTransaction(id uint64) error {
	removed, err := e.store.RemoveAccountTransaction(id)
	if err != nil {
		return err
	}
	if err := e.UpdateBalances(); err != nil {
		return err
	}

	e.sink.Push(fmt.Sprintf("Transacción eliminada de %s.", e.AccountName(removed.AccountID)), domain.NotifyWarning)
	return nil
}

// History returns an account's entries, most recent first, optionally
// bounded by dates and a limit.
func (e *Engine) History(accountID uint64, from, to *domain.Date, limit int) []domain.AccountTransaction {
	var result []domain.AccountTransaction
	for _, t := range e.store.AccountTransactions() {
		if t.AccountID != accountID {
			continue
		}
		if from != nil && t.Date.Before(from.Time) {
			continue
		}
		if to != nil && t.Date.After(to.Time) {
			continue
		}
		result = append(result, t)
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Date.After(result[j].Date.Time)
	})
	if limit > 0 && limit < len(result) {
		result = result[:limit]
	}
	return result
}
