package domain

import (
	"github.com/shopspring/decimal"
)

// TransactionStatus is the settlement state of a transaction. Only
// completed entries count toward balances and totals.
type TransactionStatus string

const (
	StatusCompleted TransactionStatus = "Completado"
	StatusPending   TransactionStatus = "Pendiente"
)

// TransactionType classifies the direction of a ledger entry.
type TransactionType string

const (
	TypeIncome   TransactionType = "income"
	TypeExpense  TransactionType = "expense"
	TypeTransfer TransactionType = "transfer"
)

// Transaction is one entry of the general ledger.
// Amount carries the authoritative sign: negative for expenses and
// outflows, positive for income.
type Transaction struct {
	ID                    uint64            `json:"id"`
	Icon                  string            `json:"icon"`
	Name                  string            `json:"name"`
	Category              string            `json:"category"`
	Date                  Date              `json:"date"`
	Amount                decimal.Decimal   `json:"amount"`
	Status                TransactionStatus `json:"status"`
	Type                  TransactionType   `json:"type"`
	IsSavingsContribution bool              `json:"isSavingsContribution"`
	IsBill                bool              `json:"isBill"`
	Frequency             Frequency         `json:"frequency,omitempty"`
}

// AccountTransaction is one entry of the per-account ledger. A transfer
// between accounts is represented as two linked entries: the outbound
// one carries TransferToAccountID, the inbound one TransferFromAccountID.
type AccountTransaction struct {
	ID                    uint64            `json:"id"`
	AccountID             uint64            `json:"accountId"`
	Name                  string            `json:"name"`
	Amount                decimal.Decimal   `json:"amount"`
	Date                  Date              `json:"date"`
	Category              string            `json:"category"`
	Type                  TransactionType   `json:"type"`
	Status                TransactionStatus `json:"status"`
	TransferToAccountID   uint64            `json:"transferToAccountId,omitempty"`
	TransferFromAccountID uint64            `json:"transferFromAccountId,omitempty"`
	AffectsSavingsGoal    bool              `json:"affectsSavingsGoal,omitempty"`
}

// References reports whether the entry touches the given account as
// payer, transfer source or transfer destination.
func (t AccountTransaction) References(accountID uint64) bool {
	return t.AccountID == accountID ||
		t.TransferToAccountID == accountID ||
		t.TransferFromAccountID == accountID
}
