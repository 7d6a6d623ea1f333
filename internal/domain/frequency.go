package domain

// Frequency is the recurrence interval of a bill.
type Frequency string

const (
	FrequencyMonthly    Frequency = "monthly"
	FrequencyBimonthly  Frequency = "bimonthly"
	FrequencyQuarterly  Frequency = "quarterly"
	FrequencySemiannual Frequency = "semiannual"
	FrequencyAnnual     Frequency = "annual"
)

// Frequencies lists every supported recurrence interval, in ascending
// period order.
var Frequencies = []Frequency{
	FrequencyMonthly,
	FrequencyBimonthly,
	FrequencyQuarterly,
	FrequencySemiannual,
	FrequencyAnnual,
}

// Valid reports whether f is one of the supported intervals.
func (f Frequency) Valid() bool {
	switch f {
	case FrequencyMonthly, FrequencyBimonthly, FrequencyQuarterly, FrequencySemiannual, FrequencyAnnual:
		return true
	}
	return false
}

// Advance moves a due date forward by exactly one period using calendar
// arithmetic, not fixed day counts.
func (f Frequency) Advance(d Date) Date {
	switch f {
	case FrequencyMonthly:
		return d.AddMonths(1)
	case FrequencyBimonthly:
		return d.AddMonths(2)
	case FrequencyQuarterly:
		return d.AddMonths(3)
	case FrequencySemiannual:
		return d.AddMonths(6)
	case FrequencyAnnual:
		return d.AddYears(1)
	}
	return d
}

// Label returns the human label used by the report views.
func (f Frequency) Label() string {
	switch f {
	case FrequencyMonthly:
		return "Mensual"
	case FrequencyBimonthly:
		return "Bimestral"
	case FrequencyQuarterly:
		return "Trimestral"
	case FrequencySemiannual:
		return "Semestral"
	case FrequencyAnnual:
		return "Anual"
	}
	return string(f)
}

// Weight orders frequencies by period length for report sorting.
func (f Frequency) Weight() int {
	switch f {
	case FrequencyMonthly:
		return 1
	case FrequencyBimonthly:
		return 2
	case FrequencyQuarterly:
		return 3
	case FrequencySemiannual:
		return 4
	case FrequencyAnnual:
		return 5
	}
	return 6
}
