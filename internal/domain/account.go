package domain

import (
	"github.com/shopspring/decimal"
)

// AccountType classifies an account. Credit and loan accounts are
// liabilities: their derived balance is always stored negative.
type AccountType string

const (
	AccountChecking   AccountType = "checking"
	AccountSavings    AccountType = "savings"
	AccountCredit     AccountType = "credit"
	AccountInvestment AccountType = "investment"
	AccountCash       AccountType = "cash"
	AccountLoan       AccountType = "loan"
)

// Valid reports whether t is a known account type.
func (t AccountType) Valid() bool {
	switch t {
	case AccountChecking, AccountSavings, AccountCredit, AccountInvestment, AccountCash, AccountLoan:
		return true
	}
	return false
}

// IsLiability reports whether balances of this type display as debt.
func (t AccountType) IsLiability() bool {
	return t == AccountCredit || t == AccountLoan
}

// AccountTypeInfo describes an account type for the presentation layer.
type AccountTypeInfo struct {
	Value AccountType `json:"value"`
	Label string      `json:"label"`
	Icon  string      `json:"icon"`
}

// AccountTypes is the catalog of account types offered by the UI.
var AccountTypes = []AccountTypeInfo{
	{AccountChecking, "Cuenta Corriente", "fas fa-wallet"},
	{AccountSavings, "Cuenta de Ahorro", "fas fa-piggy-bank"},
	{AccountCredit, "Tarjeta de Crédito", "fas fa-credit-card"},
	{AccountInvestment, "Inversión", "fas fa-chart-line"},
	{AccountCash, "Efectivo", "fas fa-money-bill-wave"},
	{AccountLoan, "Préstamo", "fas fa-hand-holding-usd"},
}

// Account is a money holding. Balance is derived from the account
// transaction ledger and recomputed on every load; it is never trusted
// as stored.
type Account struct {
	ID        uint64           `json:"id"`
	Name      string           `json:"name"`
	Type      AccountType      `json:"type"`
	Balance   decimal.Decimal  `json:"balance"`
	Currency  string           `json:"currency"`
	Color     string           `json:"color"`
	IsMain    bool             `json:"isMain"`
	IsActive  bool             `json:"isActive"`
	Limit     *decimal.Decimal `json:"limit,omitempty"`
	CreatedAt Date             `json:"createdAt"`
}

// AccountsTotal aggregates active account balances into assets,
// liabilities and net worth.
type AccountsTotal struct {
	Assets      decimal.Decimal `json:"assets"`
	Liabilities decimal.Decimal `json:"liabilities"`
	NetWorth    decimal.Decimal `json:"netWorth"`
}
