package domain

import (
	"github.com/shopspring/decimal"
)

// UpcomingBill is the single next occurrence of a recurring bill,
// derived on demand from the general ledger and never persisted.
type UpcomingBill struct {
	Name          string          `json:"name"`
	Icon          string          `json:"icon"`
	Amount        decimal.Decimal `json:"amount"` // always positive
	DueDate       Date            `json:"dueDate"`
	DueText       string          `json:"dueText"`
	DaysRemaining int             `json:"daysRemaining"`
	Frequency     Frequency       `json:"frequency"`
	OriginalID    uint64          `json:"originalId"`
}

// ProjectedBill is one projected future occurrence of a recurring bill,
// produced by the multi-step report projection.
type ProjectedBill struct {
	Name          string          `json:"name"`
	Category      string          `json:"category"`
	Icon          string          `json:"icon"`
	Amount        decimal.Decimal `json:"amount"` // always positive
	Date          Date            `json:"date"`
	DaysRemaining int             `json:"daysRemaining"`
	Frequency     Frequency       `json:"frequency"`
	OriginalID    uint64          `json:"originalId"`
}

// PeriodTotals sums projected bills due within fixed horizons. The
// six-month and annual totals are nil when the selected horizon is too
// short for them to be meaningful.
type PeriodTotals struct {
	Days30      decimal.Decimal  `json:"days30"`
	TwoMonths   decimal.Decimal  `json:"twoMonths"`
	ThreeMonths decimal.Decimal  `json:"threeMonths"`
	SixMonths   *decimal.Decimal `json:"sixMonths,omitempty"`
	Annual      *decimal.Decimal `json:"annual,omitempty"`
}

// DistributionSlice is one group of the category or frequency
// distribution of projected spend.
type DistributionSlice struct {
	Label   string          `json:"label"`
	Amount  decimal.Decimal `json:"amount"`
	Count   int             `json:"count"`
	Percent float64         `json:"percent"`
}

// TrendDirection summarizes where recurring spend is heading.
type TrendDirection string

const (
	TrendUp     TrendDirection = "up"
	TrendDown   TrendDirection = "down"
	TrendStable TrendDirection = "stable"
)

// TrendInsight compares historical recurring spend against the
// projected next period.
type TrendInsight struct {
	Historical   decimal.Decimal `json:"historical"`
	Projected    decimal.Decimal `json:"projected"`
	DeltaPercent float64         `json:"deltaPercent"`
	Direction    TrendDirection  `json:"direction"`
	HasHistory   bool            `json:"hasHistory"`
}
