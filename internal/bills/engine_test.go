package bills

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/dromero/financepro/internal/domain"
	"github.com/dromero/financepro/internal/logger"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// mockLedger serves a fixed transaction list and records additions.
type mockLedger struct {
	txs   []domain.Transaction
	added []domain.Transaction
}

func (m *mockLedger) Transactions() []domain.Transaction {
	return m.txs
}

func (m *mockLedger) AddTransaction(t domain.Transaction) (domain.Transaction, error) {
	t.ID = uint64(1000 + len(m.added))
	if t.Type == domain.TypeExpense {
		t.Amount = t.Amount.Abs().Neg()
	}
	m.added = append(m.added, t)
	m.txs = append(m.txs, t)
	return t, nil
}

// mockAlert records warnings and simulates pending unread ones.
type mockAlert struct {
	pushed []string
	unread []string
}

func (m *mockAlert) Push(message string, _ domain.NotificationType) {
	m.pushed = append(m.pushed, message)
}

func (m *mockAlert) HasUnreadWarning(substr string) bool {
	for _, u := range m.unread {
		if strings.Contains(u, substr) {
			return true
		}
	}
	return false
}

func bill(name, category string, date domain.Date, amount string, frequency domain.Frequency) domain.Transaction {
	return domain.Transaction{
		Name:      name,
		Category:  category,
		Date:      date,
		Amount:    dec(amount).Neg(),
		Status:    domain.StatusCompleted,
		Type:      domain.TypeExpense,
		IsBill:    true,
		Frequency: frequency,
	}
}

var asOf = time.Date(2025, time.March, 11, 0, 0, 0, 0, time.UTC)

func TestTemplatesKeepLatestPerName(t *testing.T) {
	ledger := &mockLedger{txs: []domain.Transaction{
		bill("Netflix", "Entretenimiento", domain.NewDate(2025, time.February, 8), "12.99", domain.FrequencyMonthly),
		bill(" netflix ", "Entretenimiento", domain.NewDate(2025, time.March, 8), "14.99", domain.FrequencyMonthly),
		bill("Alquiler", "Vivienda", domain.NewDate(2025, time.March, 1), "1500.00", domain.FrequencyMonthly),
		// Not templates: income, non-bill, bill without frequency.
		{Name: "Salario", Amount: dec("4300.00"), Type: domain.TypeIncome, Status: domain.StatusCompleted, Date: domain.NewDate(2025, time.March, 10)},
		{Name: "Taxi", Amount: dec("-12.00"), Type: domain.TypeExpense, Status: domain.StatusCompleted, Date: domain.NewDate(2025, time.March, 9)},
	}}
	e := NewEngine(ledger, nil, logger.New())

	templates := e.templates()
	if len(templates) != 2 {
		t.Fatalf("templates() = %d entries, want 2", len(templates))
	}
	for _, tpl := range templates {
		if strings.EqualFold(strings.TrimSpace(tpl.Name), "netflix") && tpl.Amount.Abs().String() != "14.99" {
			t.Errorf("netflix template amount = %s, want the latest 14.99", tpl.Amount.Abs())
		}
	}
}

func TestUpcoming(t *testing.T) {
	ledger := &mockLedger{txs: []domain.Transaction{
		bill("Alquiler", "Vivienda", domain.NewDate(2025, time.March, 1), "1500.00", domain.FrequencyMonthly),
		bill("Netflix", "Entretenimiento", domain.NewDate(2025, time.February, 13), "14.99", domain.FrequencyMonthly),
		// Next occurrence already in the past: excluded.
		bill("Viejo", "Otros", domain.NewDate(2025, time.January, 1), "10.00", domain.FrequencyMonthly),
	}}
	alert := &mockAlert{}
	e := NewEngine(ledger, alert, logger.New())

	upcoming := e.Upcoming(asOf)
	if len(upcoming) != 2 {
		t.Fatalf("Upcoming() = %d bills, want 2", len(upcoming))
	}

	// Sorted by proximity: Netflix due Mar 13 (2 days), rent due Apr 1 (21 days).
	if upcoming[0].Name != "Netflix" || upcoming[0].DaysRemaining != 2 {
		t.Errorf("first = %s in %d days, want Netflix in 2", upcoming[0].Name, upcoming[0].DaysRemaining)
	}
	if upcoming[1].Name != "Alquiler" || upcoming[1].DaysRemaining != 21 {
		t.Errorf("second = %s in %d days, want Alquiler in 21", upcoming[1].Name, upcoming[1].DaysRemaining)
	}
	if upcoming[0].Amount.Sign() <= 0 {
		t.Errorf("Amount = %s, want positive", upcoming[0].Amount)
	}
	if upcoming[0].DueText != "vence en 2 días" {
		t.Errorf("DueText = %q, want vence en 2 días", upcoming[0].DueText)
	}

	// Only the due-soon bill warned.
	if len(alert.pushed) != 1 || !strings.Contains(alert.pushed[0], "Netflix") {
		t.Errorf("warnings = %v, want one for Netflix", alert.pushed)
	}
}

func TestUpcomingWarningDeduped(t *testing.T) {
	ledger := &mockLedger{txs: []domain.Transaction{
		bill("Netflix", "Entretenimiento", domain.NewDate(2025, time.February, 13), "14.99", domain.FrequencyMonthly),
	}}
	alert := &mockAlert{unread: []string{`Factura "Netflix" vence en 2 días.`}}
	e := NewEngine(ledger, alert, logger.New())

	e.Upcoming(asOf)
	if len(alert.pushed) != 0 {
		t.Errorf("warnings = %v, want none while one is still unread", alert.pushed)
	}
}

func TestDueText(t *testing.T) {
	due := domain.NewDate(2025, time.April, 25)

	tests := []struct {
		days int
		want string
	}{
		{0, "vence hoy"},
		{1, "vence mañana"},
		{5, "vence en 5 días"},
		{30, "vence en 30 días"},
		{45, "vence el 25 abr"},
	}
	for _, tt := range tests {
		if got := DueText(tt.days, due); got != tt.want {
			t.Errorf("DueText(%d) = %q, want %q", tt.days, got, tt.want)
		}
	}
}

func TestFutureMultiStep(t *testing.T) {
	ledger := &mockLedger{txs: []domain.Transaction{
		bill("Alquiler", "Vivienda", domain.NewDate(2025, time.March, 1), "1500.00", domain.FrequencyMonthly),
		bill("Seguro", "Seguros", domain.NewDate(2025, time.March, 5), "90.00", domain.FrequencyQuarterly),
	}}
	e := NewEngine(ledger, nil, logger.New())

	future := e.Future(3, 2025, asOf)

	// Horizon ends Jun 11: rent on Apr 1, May 1, Jun 1; insurance on Jun 5.
	if len(future) != 4 {
		t.Fatalf("Future() = %d occurrences, want 4", len(future))
	}
	rent := 0
	for _, b := range future {
		if b.Name == "Alquiler" {
			rent++
		}
	}
	if rent != 3 {
		t.Errorf("rent occurrences = %d, want 3", rent)
	}
	for i := 1; i < len(future); i++ {
		if future[i].Date.Before(future[i-1].Date.Time) {
			t.Error("Future is not ordered by date")
			break
		}
	}
}

func TestPeriodTotals(t *testing.T) {
	ledger := &mockLedger{txs: []domain.Transaction{
		bill("Alquiler", "Vivienda", domain.NewDate(2025, time.March, 1), "1500.00", domain.FrequencyMonthly),
	}}
	e := NewEngine(ledger, nil, logger.New())

	short := e.PeriodTotals(e.Future(3, 2025, asOf), 3, asOf)
	// Within 30 days (through Apr 10): only the Apr 1 rent.
	if short.Days30.String() != "1500" {
		t.Errorf("Days30 = %s, want 1500", short.Days30)
	}
	if short.TwoMonths.String() != "3000" {
		t.Errorf("TwoMonths = %s, want 3000", short.TwoMonths)
	}
	if short.ThreeMonths.String() != "4500" {
		t.Errorf("ThreeMonths = %s, want 4500", short.ThreeMonths)
	}
	if short.SixMonths != nil || short.Annual != nil {
		t.Error("six-month and annual totals should be nil on a 3-month horizon")
	}

	long := e.PeriodTotals(e.Future(12, 2025, asOf), 12, asOf)
	if long.SixMonths == nil || long.SixMonths.String() != "9000" {
		t.Errorf("SixMonths = %v, want 9000", long.SixMonths)
	}
	if long.Annual == nil || long.Annual.String() != "18000" {
		t.Errorf("Annual = %v, want 18000", long.Annual)
	}
}

func TestCategoryDistribution(t *testing.T) {
	e := NewEngine(&mockLedger{}, nil, logger.New())

	projected := []domain.ProjectedBill{
		{Name: "Alquiler", Category: "Vivienda", Amount: dec("1500.00")},
		{Name: "Netflix", Category: "Entretenimiento", Amount: dec("300.00")},
		{Name: "Spotify", Category: "Entretenimiento", Amount: dec("200.00")},
	}

	slices := e.CategoryDistribution(projected)
	if len(slices) != 2 {
		t.Fatalf("CategoryDistribution() = %d slices, want 2", len(slices))
	}
	if slices[0].Label != "Vivienda" {
		t.Errorf("first slice = %q, want Vivienda (largest amount)", slices[0].Label)
	}
	if slices[0].Percent != 75 {
		t.Errorf("Vivienda percent = %v, want 75", slices[0].Percent)
	}
	if slices[1].Count != 2 {
		t.Errorf("Entretenimiento count = %d, want 2", slices[1].Count)
	}
}

func TestFrequencyDistribution(t *testing.T) {
	e := NewEngine(&mockLedger{}, nil, logger.New())

	projected := []domain.ProjectedBill{
		{Name: "A", Amount: dec("10.00"), Frequency: domain.FrequencyMonthly},
		{Name: "B", Amount: dec("10.00"), Frequency: domain.FrequencyMonthly},
		{Name: "C", Amount: dec("10.00"), Frequency: domain.FrequencyAnnual},
	}

	slices := e.FrequencyDistribution(projected)
	if len(slices) != 2 {
		t.Fatalf("FrequencyDistribution() = %d slices, want 2", len(slices))
	}
	if slices[0].Label != "Mensual" || slices[0].Count != 2 {
		t.Errorf("first slice = %q x%d, want Mensual x2", slices[0].Label, slices[0].Count)
	}
}

func TestTrend(t *testing.T) {
	ledger := &mockLedger{txs: []domain.Transaction{
		bill("Alquiler", "Vivienda", domain.NewDate(2025, time.March, 1), "1000.00", domain.FrequencyMonthly),
	}}
	e := NewEngine(ledger, nil, logger.New())

	tests := []struct {
		name      string
		projected string
		want      domain.TrendDirection
	}{
		{"stable below threshold", "1040.00", domain.TrendStable},
		{"up", "1200.00", domain.TrendUp},
		{"down", "700.00", domain.TrendDown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			projected := []domain.ProjectedBill{
				{Name: "Alquiler", Amount: dec(tt.projected), Date: domain.NewDate(2025, time.April, 1)},
			}
			insight := e.Trend(projected, asOf)
			if insight.Direction != tt.want {
				t.Errorf("Direction = %q, want %q", insight.Direction, tt.want)
			}
			if !insight.HasHistory {
				t.Error("HasHistory = false, want true")
			}
			if insight.Historical.String() != "1000" {
				t.Errorf("Historical = %s, want 1000", insight.Historical)
			}
		})
	}
}

func TestTrendWithoutHistory(t *testing.T) {
	e := NewEngine(&mockLedger{}, nil, logger.New())

	insight := e.Trend(nil, asOf)
	if insight.HasHistory {
		t.Error("HasHistory = true with an empty ledger, want false")
	}
	if insight.Direction != domain.TrendStable {
		t.Errorf("Direction = %q, want stable", insight.Direction)
	}
}

func TestCalendar(t *testing.T) {
	e := NewEngine(&mockLedger{}, nil, logger.New())

	projected := []domain.ProjectedBill{
		{Name: "A", Date: domain.NewDate(2025, time.April, 1)},
		{Name: "B", Date: domain.NewDate(2025, time.April, 1)},
		{Name: "C", Date: domain.NewDate(2025, time.April, 15)},
	}

	calendar := e.Calendar(projected)
	if len(calendar["2025-04-01"]) != 2 {
		t.Errorf("bucket 2025-04-01 = %d bills, want 2", len(calendar["2025-04-01"]))
	}
	if len(calendar["2025-04-15"]) != 1 {
		t.Errorf("bucket 2025-04-15 = %d bills, want 1", len(calendar["2025-04-15"]))
	}
}

func TestCategoryFor(t *testing.T) {
	ledger := &mockLedger{txs: []domain.Transaction{
		bill("Netflix", "Entretenimiento", domain.NewDate(2025, time.March, 8), "14.99", domain.FrequencyMonthly),
	}}
	e := NewEngine(ledger, nil, logger.New())

	if got := e.CategoryFor("netflix"); got != "Entretenimiento" {
		t.Errorf("CategoryFor(netflix) = %q, want the prior transaction's Entretenimiento", got)
	}
	if got := e.CategoryFor("Seguro Hogar"); got != "Seguros" {
		t.Errorf("CategoryFor(Seguro Hogar) = %q, want keyword-inferred Seguros", got)
	}
	if got := e.CategoryFor("Club de Lectura"); got != "Otros" {
		t.Errorf("CategoryFor(Club de Lectura) = %q, want Otros", got)
	}
}

func TestPayMaterializesTransaction(t *testing.T) {
	ledger := &mockLedger{txs: []domain.Transaction{
		bill("Alquiler", "Vivienda", domain.NewDate(2025, time.March, 1), "1500.00", domain.FrequencyMonthly),
	}}
	alert := &mockAlert{}
	e := NewEngine(ledger, alert, logger.New())

	next := e.Upcoming(asOf)[0]
	paid, err := e.PayUpcoming(next)
	if err != nil {
		t.Fatalf("PayUpcoming failed: %v", err)
	}
	if paid.Date.String() != "2025-04-01" {
		t.Errorf("paid date = %s, want the occurrence date 2025-04-01", paid.Date)
	}
	if !paid.IsBill || paid.Frequency != domain.FrequencyMonthly {
		t.Error("paid entry lost its bill template fields")
	}
	if paid.Status != domain.StatusCompleted {
		t.Errorf("paid status = %q, want Completado", paid.Status)
	}

	// The payment becomes the latest template: next projection moves on.
	after := e.Upcoming(asOf)
	if after[0].DueDate.String() != "2025-05-01" {
		t.Errorf("next due after payment = %s, want 2025-05-01", after[0].DueDate)
	}
}

func TestSort(t *testing.T) {
	projected := []domain.ProjectedBill{
		{Name: "B", Amount: dec("300.00"), Date: domain.NewDate(2025, time.April, 2), Frequency: domain.FrequencyAnnual},
		{Name: "A", Amount: dec("100.00"), Date: domain.NewDate(2025, time.April, 3), Frequency: domain.FrequencyMonthly},
		{Name: "C", Amount: dec("200.00"), Date: domain.NewDate(2025, time.April, 1), Frequency: domain.FrequencyQuarterly},
	}

	Sort(projected, SortByAmount, true)
	if projected[0].Name != "A" || projected[2].Name != "B" {
		t.Errorf("ascending by amount = %s..%s, want A..B", projected[0].Name, projected[2].Name)
	}

	Sort(projected, SortByDate, false)
	if projected[0].Name != "A" {
		t.Errorf("descending by date starts with %s, want A", projected[0].Name)
	}

	Sort(projected, SortByFrequency, true)
	if projected[0].Frequency != domain.FrequencyMonthly || projected[2].Frequency != domain.FrequencyAnnual {
		t.Error("frequency sort did not order by period length")
	}
}
