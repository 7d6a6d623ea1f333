package handlers

import (
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/dromero/financepro/internal/accounts"
	"github.com/dromero/financepro/internal/bills"
	"github.com/dromero/financepro/internal/domain"
	"github.com/dromero/financepro/internal/ledger"
	"github.com/dromero/financepro/internal/savings"
)

// DashboardHandler composes the landing-page summary out of the
// engines' derived aggregates.
type DashboardHandler struct {
	store    *ledger.Store
	accounts *accounts.Engine
	bills    *bills.Engine
	savings  *savings.Engine
	log      zerolog.Logger
	now      func() time.Time
}

// NewDashboardHandler creates a dashboard handler.
func NewDashboardHandler(store *ledger.Store, accountsEngine *accounts.Engine, billsEngine *bills.Engine, savingsEngine *savings.Engine, log zerolog.Logger) *DashboardHandler {
	return &DashboardHandler{
		store:    store,
		accounts: accountsEngine,
		bills:    billsEngine,
		savings:  savingsEngine,
		log:      log,
		now:      time.Now,
	}
}

// periodTotals sums completed entries falling inside [start, end]:
// income, expenses (absolute) and their net change.
func periodTotals(txs []domain.Transaction, start, end time.Time) (income, expenses, net decimal.Decimal) {
	for _, t := range txs {
		if t.Status != domain.StatusCompleted || t.Date.Before(start) || t.Date.After(end) {
			continue
		}
		if t.Amount.Sign() > 0 {
			income = income.Add(t.Amount)
		} else {
			expenses = expenses.Add(t.Amount.Abs())
		}
	}
	net = income.Sub(expenses)
	return income, expenses, net
}

// percentChange compares two period totals, reporting ±100 instead of
// infinity when the previous period was empty.
func percentChange(current, previous decimal.Decimal) float64 {
	if previous.IsZero() {
		switch {
		case current.Sign() > 0:
			return 100
		case current.Sign() < 0:
			return -100
		}
		return 0
	}
	delta, _ := current.Sub(previous).Div(previous.Abs()).Mul(decimal.NewFromInt(100)).Float64()
	return delta
}

// Summary handles GET /api/dashboard: overall balance, current-month
// income and expenses with month-over-month deltas, account totals,
// savings status and upcoming bills.
func (h *DashboardHandler) Summary(w http.ResponseWriter, r *http.Request) {
	now := h.now()
	txs := h.store.Transactions()

	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	monthEnd := monthStart.AddDate(0, 1, -1)
	prevStart := monthStart.AddDate(0, -1, 0)
	prevEnd := monthStart.AddDate(0, 0, -1)

	income, expenses, net := periodTotals(txs, monthStart, monthEnd)
	prevIncome, prevExpenses, _ := periodTotals(txs, prevStart, prevEnd)

	balance := decimal.Zero
	for _, t := range txs {
		if t.Status == domain.StatusCompleted && !t.Date.After(now) {
			balance = balance.Add(t.Amount)
		}
	}

	if _, err := h.savings.Recalculate(); err != nil {
		h.log.Error().Err(err).Msg("failed to recalculate savings")
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"balance":           balance,
		"income":            income,
		"expenses":          expenses,
		"netChange":         net,
		"incomeChangePct":   percentChange(income, prevIncome),
		"expensesChangePct": percentChange(expenses, prevExpenses),
		"accounts":          h.accounts.Totals(),
		"savings":           h.savings.Status(),
		"upcomingBills":     h.bills.Upcoming(now),
	})
}
