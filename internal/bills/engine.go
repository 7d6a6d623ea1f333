// Package bills implements the recurring-bill projection engine: it
// detects recurring expense transactions, projects their future
// occurrences, and aggregates the projection into period totals,
// distributions, trend insight and calendar buckets. Everything here is
// a pure recomputation over the general ledger; nothing is persisted.
package bills

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/dromero/financepro/internal/domain"
)

// dueSoonDays is the window inside which an upcoming bill raises a
// warning notification.
const dueSoonDays = 5

// Engine projects recurring bills from the general ledger.
type Engine struct {
	ledger Ledger
	sink   AlertSink
	log    zerolog.Logger
}

// NewEngine creates a projection engine. A nil sink disables warnings.
func NewEngine(ledger Ledger, sink AlertSink, log zerolog.Logger) *Engine {
	if sink == nil {
		sink = nopAlertSink{}
	}
	return &Engine{ledger: ledger, sink: sink, log: log}
}

// templates selects the recurrence seeds: bill transactions grouped by
// case-insensitive trimmed name, keeping only the most recent
// occurrence of each.
func (e *Engine) templates() []domain.Transaction {
	groups := make(map[string]domain.Transaction)
	for _, t := range e.ledger.Transactions() {
		if !t.IsBill || t.Frequency == "" || t.Type != domain.TypeExpense {
			continue
		}
		key := strings.ToLower(strings.TrimSpace(t.Name))
		if current, ok := groups[key]; !ok || t.Date.After(current.Date.Time) {
			groups[key] = t
		}
	}

	result := make([]domain.Transaction, 0, len(groups))
	for _, t := range groups {
		result = append(result, t)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result
}

// daysUntil is the ceiling of the distance from asOf to the date, in
// days.
func daysUntil(asOf time.Time, d domain.Date) int {
	return int(math.Ceil(d.Sub(asOf).Hours() / 24))
}

// DueText phrases a due date the way the dashboard shows it.
func DueText(daysRemaining int, due domain.Date) string {
	switch {
	case daysRemaining == 0:
		return "vence hoy"
	case daysRemaining == 1:
		return "vence mañana"
	case daysRemaining <= 30:
		return fmt.Sprintf("vence en %d días", daysRemaining)
	}
	return fmt.Sprintf("vence el %d %s", due.Day(), shortMonth(due.Month()))
}

func shortMonth(m time.Month) string {
	names := [...]string{"ene", "feb", "mar", "abr", "may", "jun", "jul", "ago", "sept", "oct", "nov", "dic"}
	return names[m-1]
}

// Upcoming projects the single next occurrence of every recurring bill
// strictly after asOf, sorted by days remaining. Bills due within five
// days raise a warning notification unless an unread warning for that
// bill name is already pending.
func (e *Engine) Upcoming(asOf time.Time) []domain.UpcomingBill {
	var upcoming []domain.UpcomingBill
	for _, tpl := range e.templates() {
		next := tpl.Frequency.Advance(tpl.Date)
		if !next.After(asOf) {
			continue
		}
		days := daysUntil(asOf, next)
		upcoming = append(upcoming, domain.UpcomingBill{
			Name:          tpl.Name,
			Icon:          tpl.Icon,
			Amount:        tpl.Amount.Abs(),
			DueDate:       next,
			DueText:       DueText(days, next),
			DaysRemaining: days,
			Frequency:     tpl.Frequency,
			OriginalID:    tpl.ID,
		})
	}

	sort.SliceStable(upcoming, func(i, j int) bool {
		return upcoming[i].DaysRemaining < upcoming[j].DaysRemaining
	})

	for _, bill := range upcoming {
		if bill.DaysRemaining > 0 && bill.DaysRemaining <= dueSoonDays {
			if !e.sink.HasUnreadWarning(bill.Name) {
				e.sink.Push(fmt.Sprintf("Factura %q %s.", bill.Name, bill.DueText), domain.NotifyWarning)
			}
		}
	}
	return upcoming
}

// Future iterates every recurrence forward from its template date,
// collecting each occurrence strictly between asOf and the horizon:
// horizonMonths calendar months ahead, anchored in horizonYear.
func (e *Engine) Future(horizonMonths, horizonYear int, asOf time.Time) []domain.ProjectedBill {
	endDate := time.Date(horizonYear, asOf.Month()+time.Month(horizonMonths), asOf.Day(), 0, 0, 0, 0, time.UTC)

	var future []domain.ProjectedBill
	for _, tpl := range e.templates() {
		next := tpl.Frequency.Advance(tpl.Date)
		for !next.After(endDate) {
			if next.After(asOf) {
				future = append(future, domain.ProjectedBill{
					Name:          tpl.Name,
					Category:      tpl.Category,
					Icon:          tpl.Icon,
					Amount:        tpl.Amount.Abs(),
					Date:          next,
					DaysRemaining: daysUntil(asOf, next),
					Frequency:     tpl.Frequency,
					OriginalID:    tpl.ID,
				})
			}
			next = tpl.Frequency.Advance(next)
		}
	}

	sort.SliceStable(future, func(i, j int) bool {
		if !future[i].Date.Equal(future[j].Date.Time) {
			return future[i].Date.Before(future[j].Date.Time)
		}
		return future[i].Name < future[j].Name
	})
	return future
}

// PeriodTotals sums projected amounts falling within the fixed
// cutoffs. The six-month and annual totals are only applicable when the
// selected horizon reaches them.
func (e *Engine) PeriodTotals(projected []domain.ProjectedBill, horizonMonths int, asOf time.Time) domain.PeriodTotals {
	sumThrough := func(cutoff time.Time) decimal.Decimal {
		total := decimal.Zero
		for _, bill := range projected {
			if !bill.Date.After(cutoff) {
				total = total.Add(bill.Amount)
			}
		}
		return total
	}

	totals := domain.PeriodTotals{
		Days30:      sumThrough(asOf.AddDate(0, 0, 30)),
		TwoMonths:   sumThrough(asOf.AddDate(0, 2, 0)),
		ThreeMonths: sumThrough(asOf.AddDate(0, 3, 0)),
	}
	if horizonMonths >= 6 {
		sum := sumThrough(asOf.AddDate(0, 6, 0))
		totals.SixMonths = &sum
	}
	if horizonMonths >= 12 {
		sum := sumThrough(asOf.AddDate(1, 0, 0))
		totals.Annual = &sum
	}
	return totals
}

// CategoryDistribution groups projected bills by category, with each
// group's share of the grand total, sorted by amount descending.
func (e *Engine) CategoryDistribution(projected []domain.ProjectedBill) []domain.DistributionSlice {
	amounts := make(map[string]decimal.Decimal)
	counts := make(map[string]int)
	grand := decimal.Zero
	for _, bill := range projected {
		category := bill.Category
		if category == "" {
			category = "Sin Categoría"
		}
		amounts[category] = amounts[category].Add(bill.Amount)
		counts[category]++
		grand = grand.Add(bill.Amount)
	}

	slices := make([]domain.DistributionSlice, 0, len(amounts))
	for category, amount := range amounts {
		slice := domain.DistributionSlice{
			Label:  category,
			Amount: amount,
			Count:  counts[category],
		}
		if grand.Sign() > 0 {
			slice.Percent, _ = amount.Div(grand).Mul(decimal.NewFromInt(100)).Float64()
		}
		slices = append(slices, slice)
	}
	sort.SliceStable(slices, func(i, j int) bool {
		if !slices[i].Amount.Equal(slices[j].Amount) {
			return slices[i].Amount.GreaterThan(slices[j].Amount)
		}
		return slices[i].Label < slices[j].Label
	})
	return slices
}

// FrequencyDistribution groups projected bills by recurrence interval,
// sorted by occurrence count descending.
func (e *Engine) FrequencyDistribution(projected []domain.ProjectedBill) []domain.DistributionSlice {
	amounts := make(map[domain.Frequency]decimal.Decimal)
	counts := make(map[domain.Frequency]int)
	for _, bill := range projected {
		amounts[bill.Frequency] = amounts[bill.Frequency].Add(bill.Amount)
		counts[bill.Frequency]++
	}

	slices := make([]domain.DistributionSlice, 0, len(counts))
	for frequency, count := range counts {
		slice := domain.DistributionSlice{
			Label:   frequency.Label(),
			Amount:  amounts[frequency],
			Count:   count,
			Percent: float64(count) / float64(len(projected)) * 100,
		}
		slices = append(slices, slice)
	}
	sort.SliceStable(slices, func(i, j int) bool {
		if slices[i].Count != slices[j].Count {
			return slices[i].Count > slices[j].Count
		}
		return slices[i].Label < slices[j].Label
	})
	return slices
}

// Trend compares paid bills of the trailing 30 days against projected
// bills of the next 30 days. Deltas under five percent read as stable.
func (e *Engine) Trend(projected []domain.ProjectedBill, asOf time.Time) domain.TrendInsight {
	since := asOf.AddDate(0, 0, -30)
	historical := decimal.Zero
	historicalCount := 0
	for _, t := range e.ledger.Transactions() {
		if !t.IsBill || t.Type != domain.TypeExpense || t.Status != domain.StatusCompleted {
			continue
		}
		if t.Date.Before(since) || t.Date.After(asOf) {
			continue
		}
		historical = historical.Add(t.Amount.Abs())
		historicalCount++
	}

	cutoff := asOf.AddDate(0, 0, 30)
	next := decimal.Zero
	for _, bill := range projected {
		if !bill.Date.After(cutoff) {
			next = next.Add(bill.Amount)
		}
	}

	insight := domain.TrendInsight{
		Historical: historical,
		Projected:  next,
		Direction:  domain.TrendStable,
		HasHistory: historicalCount > 0,
	}
	if historical.Sign() > 0 {
		insight.DeltaPercent, _ = next.Sub(historical).Div(historical).Mul(decimal.NewFromInt(100)).Float64()
	}
	switch {
	case math.Abs(insight.DeltaPercent) < 5:
		insight.Direction = domain.TrendStable
	case insight.DeltaPercent > 0:
		insight.Direction = domain.TrendUp
	default:
		insight.Direction = domain.TrendDown
	}
	return insight
}

// Calendar indexes projected bills by their exact due date for the
// calendar grid. A day can hold several bills.
func (e *Engine) Calendar(projected []domain.ProjectedBill) map[string][]domain.ProjectedBill {
	buckets := make(map[string][]domain.ProjectedBill)
	for _, bill := range projected {
		key := bill.Date.String()
		buckets[key] = append(buckets[key], bill)
	}
	return buckets
}

// CategoryFor resolves the category for a bill name: the most recent
// prior bill transaction with the same name wins, otherwise keyword
// inference.
func (e *Engine) CategoryFor(name string) string {
	lower := strings.ToLower(name)
	var match *domain.Transaction
	for _, t := range e.ledger.Transactions() {
		if !t.IsBill || strings.ToLower(t.Name) != lower || t.Category == "" {
			continue
		}
		if match == nil || t.Date.After(match.Date.Time) {
			prior := t
			match = &prior
		}
	}
	if match != nil {
		return match.Category
	}
	return domain.CategoryForBillName(name)
}

// Categories lists the distinct categories carried by bill
// transactions, sorted alphabetically. The report filter offers them.
func (e *Engine) Categories() []string {
	seen := make(map[string]bool)
	for _, t := range e.ledger.Transactions() {
		if t.IsBill && t.Category != "" {
			seen[t.Category] = true
		}
	}
	categories := make([]string, 0, len(seen))
	for c := range seen {
		categories = append(categories, c)
	}
	sort.Strings(categories)
	return categories
}

// Pay materializes a projected occurrence as a completed bill
// transaction dated at the occurrence date. The new entry becomes the
// latest template, so the next projection pass starts one period later.
func (e *Engine) Pay(bill domain.ProjectedBill) (domain.Transaction, error) {
	category := bill.Category
	if category == "" {
		category = e.CategoryFor(bill.Name)
	}

	paid, err := e.ledger.AddTransaction(domain.Transaction{
		Name:      bill.Name,
		Category:  category,
		Date:      bill.Date,
		Amount:    bill.Amount,
		Status:    domain.StatusCompleted,
		Type:      domain.TypeExpense,
		IsBill:    true,
		Frequency: bill.Frequency,
	})
	if err != nil {
		return domain.Transaction{}, err
	}

	e.sink.Push(fmt.Sprintf("Factura %q pagada.", bill.Name), domain.NotifySuccess)
	e.log.Info().Str("bill", bill.Name).Str("date", bill.Date.String()).Msg("bill paid")
	return paid, nil
}

// PayUpcoming is the single-occurrence variant used by the dashboard
// list: it pays the next projected occurrence of an upcoming bill.
func (e *Engine) PayUpcoming(bill domain.UpcomingBill) (domain.Transaction, error) {
	return e.Pay(domain.ProjectedBill{
		Name:      bill.Name,
		Category:  e.CategoryFor(bill.Name),
		Icon:      bill.Icon,
		Amount:    bill.Amount,
		Date:      bill.DueDate,
		Frequency: bill.Frequency,
	})
}

// SortField selects the report table ordering.
type SortField string

const (
	SortByDate      SortField = "date"
	SortByName      SortField = "name"
	SortByCategory  SortField = "category"
	SortByAmount    SortField = "amount"
	SortByFrequency SortField = "frequency"
)

// Sort orders projected bills for the report table, ascending or
// descending by the given field. Frequency sorts by period length.
func Sort(projected []domain.ProjectedBill, field SortField, ascending bool) {
	less := func(i, j int) bool {
		a, b := projected[i], projected[j]
		switch field {
		case SortByName:
			return a.Name < b.Name
		case SortByCategory:
			return a.Category < b.Category
		case SortByAmount:
			return a.Amount.LessThan(b.Amount)
		case SortByFrequency:
			return a.Frequency.Weight() < b.Frequency.Weight()
		default:
			return a.Date.Before(b.Date.Time)
		}
	}
	if ascending {
		sort.SliceStable(projected, less)
	} else {
		sort.SliceStable(projected, func(i, j int) bool { return less(j, i) })
	}
}
