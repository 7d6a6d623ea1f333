package savings

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/dromero/financepro/internal/domain"
	"github.com/dromero/financepro/internal/logger"
	"github.com/dromero/financepro/internal/storage"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// mockKV is an in-memory key-value store.
type mockKV struct {
	data map[string][]byte
}

func newMockKV() *mockKV {
	return &mockKV{data: make(map[string][]byte)}
}

func (m *mockKV) Get(key string) ([]byte, bool, error) {
	value, ok := m.data[key]
	return value, ok, nil
}

func (m *mockKV) Set(key string, value []byte) error {
	m.data[key] = value
	return nil
}

// mockLedger serves a fixed transaction list.
type mockLedger struct {
	txs []domain.Transaction
}

func (m *mockLedger) Transactions() []domain.Transaction {
	return m.txs
}

func contributionTx(name string, date domain.Date, amount string, typ domain.TransactionType, status domain.TransactionStatus) domain.Transaction {
	return domain.Transaction{
		Name: name, Date: date, Amount: dec(amount), Type: typ,
		Status: status, IsSavingsContribution: true,
	}
}

var asOf = time.Date(2025, time.March, 15, 0, 0, 0, 0, time.UTC)

func newTestEngine(t *testing.T, kv storage.KV, ledger Ledger) *Engine {
	t.Helper()
	e := NewEngine(kv, ledger, nil, logger.New())
	if err := e.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	return e
}

func TestLoadSeedsDefaultGoal(t *testing.T) {
	kv := newMockKV()
	e := newTestEngine(t, kv, &mockLedger{})

	status := e.Status()
	if status.Goal.String() != "10000" {
		t.Errorf("Goal = %s, want seeded 10000", status.Goal)
	}
	if _, ok := kv.data[storage.KeySavings]; !ok {
		t.Error("default goal was not persisted")
	}
}

func TestLoadDerivesCurrentNotStored(t *testing.T) {
	kv := newMockKV()
	// The stored current is stale on purpose; only the goal is trusted.
	kv.data[storage.KeySavings] = []byte(`{"goal":"5000","current":"9999"}`)

	ledger := &mockLedger{txs: []domain.Transaction{
		contributionTx("Aporte", domain.NewDate(2025, time.March, 1), "500.00", domain.TypeIncome, domain.StatusCompleted),
	}}
	e := newTestEngine(t, kv, ledger)

	status := e.Status()
	if status.Goal.String() != "5000" {
		t.Errorf("Goal = %s, want stored 5000", status.Goal)
	}
	if status.Current.String() != "500" {
		t.Errorf("Current = %s, want 500 derived from the ledger", status.Current)
	}
}

func TestRecalculate(t *testing.T) {
	ledger := &mockLedger{txs: []domain.Transaction{
		// Income contributions add, expense contributions subtract,
		// regardless of the stored sign.
		contributionTx("Aporte", domain.NewDate(2025, time.March, 1), "500.00", domain.TypeIncome, domain.StatusCompleted),
		contributionTx("Aporte Nómina", domain.NewDate(2025, time.March, 5), "-300.00", domain.TypeIncome, domain.StatusCompleted),
		contributionTx("Retiro", domain.NewDate(2025, time.March, 10), "-200.00", domain.TypeExpense, domain.StatusCompleted),
		// Ignored: pending and unflagged.
		contributionTx("Pendiente", domain.NewDate(2025, time.March, 12), "900.00", domain.TypeIncome, domain.StatusPending),
		{Name: "Salario", Date: domain.NewDate(2025, time.March, 10), Amount: dec("4300.00"), Type: domain.TypeIncome, Status: domain.StatusCompleted},
	}}
	e := newTestEngine(t, newMockKV(), ledger)

	total, err := e.Recalculate()
	if err != nil {
		t.Fatalf("Recalculate failed: %v", err)
	}
	if total.String() != "600" {
		t.Errorf("Recalculate() = %s, want 600 (500 + 300 - 200)", total)
	}
}

func TestUpdateGoal(t *testing.T) {
	e := newTestEngine(t, newMockKV(), &mockLedger{})

	if err := e.UpdateGoal(dec("20000"), nil); err != nil {
		t.Fatalf("UpdateGoal failed: %v", err)
	}
	if got := e.Status().Goal.String(); got != "20000" {
		t.Errorf("Goal = %s, want 20000", got)
	}

	override := dec("1234.00")
	if err := e.UpdateGoal(dec("20000"), &override); err != nil {
		t.Fatalf("UpdateGoal with override failed: %v", err)
	}
	if got := e.Status().Current.String(); got != "1234" {
		t.Errorf("Current = %s, want overridden 1234", got)
	}
}

func TestStatusPercentCapped(t *testing.T) {
	ledger := &mockLedger{txs: []domain.Transaction{
		contributionTx("Aporte Grande", domain.NewDate(2025, time.March, 1), "15000.00", domain.TypeIncome, domain.StatusCompleted),
	}}
	e := newTestEngine(t, newMockKV(), ledger)

	status := e.Status()
	if status.Percent != 100 {
		t.Errorf("Percent = %v, want capped at 100", status.Percent)
	}
	if status.Remaining.String() != "0" {
		t.Errorf("Remaining = %s, want floored at 0", status.Remaining)
	}
}

func TestRecentContributionsWindow(t *testing.T) {
	ledger := &mockLedger{txs: []domain.Transaction{
		contributionTx("Reciente", domain.NewDate(2025, time.March, 1), "400.00", domain.TypeIncome, domain.StatusCompleted),
		contributionTx("Antiguo", domain.NewDate(2025, time.January, 1), "1000.00", domain.TypeIncome, domain.StatusCompleted),
	}}
	e := newTestEngine(t, newMockKV(), ledger)

	if got := e.RecentContributions(asOf); got.String() != "400" {
		t.Errorf("RecentContributions = %s, want 400 from the trailing 30 days", got)
	}
}

func TestProject(t *testing.T) {
	tests := []struct {
		name       string
		txs        []domain.Transaction
		goal       string
		wantState  ProjectionState
		wantMonths int
	}{
		{
			name: "estimate rounds up",
			txs: []domain.Transaction{
				contributionTx("Histórico", domain.NewDate(2025, time.January, 1), "1000.00", domain.TypeIncome, domain.StatusCompleted),
				contributionTx("Reciente", domain.NewDate(2025, time.March, 1), "400.00", domain.TypeIncome, domain.StatusCompleted),
			},
			goal:       "2400",
			wantState:  ProjectionEstimate,
			wantMonths: 3, // remaining 1000 at 400/month
		},
		{
			name: "reached",
			txs: []domain.Transaction{
				contributionTx("Aporte", domain.NewDate(2025, time.March, 1), "5000.00", domain.TypeIncome, domain.StatusCompleted),
			},
			goal:      "5000",
			wantState: ProjectionReached,
		},
		{
			name:      "no recent contributions",
			txs:       nil,
			goal:      "5000",
			wantState: ProjectionInsufficientData,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEngine(t, newMockKV(), &mockLedger{txs: tt.txs})
			if err := e.UpdateGoal(dec(tt.goal), nil); err != nil {
				t.Fatalf("UpdateGoal failed: %v", err)
			}

			projection := e.Project(asOf)
			if projection.State != tt.wantState {
				t.Errorf("State = %q, want %q", projection.State, tt.wantState)
			}
			if projection.MonthsRemaining != tt.wantMonths {
				t.Errorf("MonthsRemaining = %d, want %d", projection.MonthsRemaining, tt.wantMonths)
			}
		})
	}
}
