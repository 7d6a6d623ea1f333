package ledger

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/dromero/financepro/internal/domain"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func day(year int, month time.Month, d int) domain.Date {
	return domain.NewDate(year, month, d)
}

// defaultTransactions is the general ledger seeded on first run.
func defaultTransactions() []domain.Transaction {
	return []domain.Transaction{
		{ID: 1, Icon: "fas fa-home", Name: "Alquiler Mensual", Category: "Vivienda", Date: day(2025, time.March, 15), Amount: dec("-1500.00"), Status: domain.StatusCompleted, Type: domain.TypeExpense, IsBill: true, Frequency: domain.FrequencyMonthly},
		{ID: 2, Icon: "fas fa-briefcase", Name: "Depósito de Salario", Category: "Ingresos", Date: day(2025, time.March, 10), Amount: dec("4300.00"), Status: domain.StatusCompleted, Type: domain.TypeIncome},
		{ID: 3, Icon: "fas fa-film", Name: "Suscripción Netflix", Category: "Entretenimiento", Date: day(2025, time.March, 8), Amount: dec("-14.99"), Status: domain.StatusCompleted, Type: domain.TypeExpense, IsBill: true, Frequency: domain.FrequencyMonthly},
		{ID: 4, Icon: "fas fa-shopping-cart", Name: "Compras Supermercado", Category: "Alimentación", Date: day(2025, time.March, 5), Amount: dec("-120.50"), Status: domain.StatusCompleted, Type: domain.TypeExpense},
		{ID: 5, Icon: "fas fa-chart-line", Name: "Inversión en Acciones", Category: "Inversión", Date: day(2025, time.March, 1), Amount: dec("-500.00"), Status: domain.StatusPending, Type: domain.TypeExpense},
		{ID: 6, Icon: "fas fa-utensils", Name: "Restaurante Cena", Category: "Alimentación", Date: day(2025, time.February, 18), Amount: dec("-65.00"), Status: domain.StatusCompleted, Type: domain.TypeExpense},
		{ID: 7, Icon: "fas fa-gas-pump", Name: "Gasolina", Category: "Transporte", Date: day(2025, time.February, 20), Amount: dec("-55.00"), Status: domain.StatusCompleted, Type: domain.TypeExpense},
		{ID: 8, Icon: "fas fa-file-invoice-dollar", Name: "Pago Freelance", Category: "Ingresos", Date: day(2025, time.February, 22), Amount: dec("850.00"), Status: domain.StatusCompleted, Type: domain.TypeIncome},
		{ID: 9, Icon: "fas fa-briefcase", Name: "Depósito de Salario", Category: "Ingresos", Date: day(2025, time.February, 10), Amount: dec("4300.00"), Status: domain.StatusCompleted, Type: domain.TypeIncome},
		{ID: 10, Icon: "fas fa-piggy-bank", Name: "Aportación a Ahorro", Category: "Ahorro", Date: day(2025, time.March, 10), Amount: dec("-500.00"), Status: domain.StatusCompleted, Type: domain.TypeExpense, IsSavingsContribution: true},
		{ID: 11, Icon: "fas fa-wifi", Name: "Internet y Teléfono", Category: "Servicios", Date: day(2025, time.March, 15), Amount: dec("-89.99"), Status: domain.StatusCompleted, Type: domain.TypeExpense, IsBill: true, Frequency: domain.FrequencyMonthly},
		{ID: 12, Icon: "fas fa-bolt", Name: "Agua y Electricidad", Category: "Servicios", Date: day(2025, time.March, 10), Amount: dec("-145.50"), Status: domain.StatusCompleted, Type: domain.TypeExpense, IsBill: true, Frequency: domain.FrequencyMonthly},
		{ID: 13, Icon: "fas fa-credit-card", Name: "Tarjeta de Crédito", Category: "Deudas", Date: day(2025, time.March, 5), Amount: dec("-1250.00"), Status: domain.StatusCompleted, Type: domain.TypeExpense, IsBill: true, Frequency: domain.FrequencyMonthly},
	}
}

// defaultAccountTransactions is the per-account ledger seeded on first
// run, including one linked transfer pair.
func defaultAccountTransactions() []domain.AccountTransaction {
	return []domain.AccountTransaction{
		{ID: 1, AccountID: 1, Name: "Depósito de Salario", Amount: dec("4300.00"), Date: day(2025, time.March, 10), Category: "Salario", Type: domain.TypeIncome, Status: domain.StatusCompleted},
		{ID: 2, AccountID: 1, Name: "Alquiler Mensual", Amount: dec("-1500.00"), Date: day(2025, time.March, 15), Category: "Vivienda", Type: domain.TypeExpense, Status: domain.StatusCompleted},
		{ID: 3, AccountID: 1, Name: "Transferencia a Ahorros", Amount: dec("-500.00"), Date: day(2025, time.March, 10), Category: "Transferencia", Type: domain.TypeTransfer, Status: domain.StatusCompleted, TransferToAccountID: 2},
		{ID: 4, AccountID: 2, Name: "Transferencia desde Principal", Amount: dec("500.00"), Date: day(2025, time.March, 10), Category: "Transferencia", Type: domain.TypeTransfer, Status: domain.StatusCompleted, TransferFromAccountID: 1},
		{ID: 5, AccountID: 3, Name: "Compra Electrónica", Amount: dec("-350.50"), Date: day(2025, time.March, 12), Category: "Tecnología", Type: domain.TypeExpense, Status: domain.StatusCompleted},
	}
}
