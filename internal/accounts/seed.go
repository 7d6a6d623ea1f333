package accounts

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/dromero/financepro/internal/domain"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// defaultAccounts is the account list seeded on first run. Balances
// here are placeholders: Load recomputes them from the ledger.
func defaultAccounts() []domain.Account {
	limit := dec("2000.00")
	return []domain.Account{
		{
			ID:        1,
			Name:      "Cuenta Principal",
			Type:      domain.AccountChecking,
			Balance:   dec("2500.00"),
			Currency:  "PEN",
			Color:     "#3b82f6",
			IsMain:    true,
			IsActive:  true,
			CreatedAt: domain.NewDate(2025, time.January, 1),
		},
		{
			ID:        2,
			Name:      "Ahorros",
			Type:      domain.AccountSavings,
			Balance:   dec("8500.00"),
			Currency:  "PEN",
			Color:     "#10b981",
			IsActive:  true,
			CreatedAt: domain.NewDate(2025, time.January, 5),
		},
		{
			ID:        3,
			Name:      "Tarjeta VISA",
			Type:      domain.AccountCredit,
			Balance:   dec("-350.50"),
			Currency:  "PEN",
			Color:     "#ef4444",
			IsActive:  true,
			Limit:     &limit,
			CreatedAt: domain.NewDate(2025, time.January, 10),
		},
	}
}
