package domain

import (
	"fmt"
	"time"
)

// dateLayout is the wire format for calendar dates, matching the
// YYYY-MM-DD strings the persistence layer stores.
const dateLayout = "2006-01-02"

// Date is a calendar day without a time-of-day component.
// It marshals to and from "YYYY-MM-DD".
type Date struct {
	time.Time
}

// NewDate builds a Date from year, month and day in UTC.
func NewDate(year int, month time.Month, day int) Date {
	return Date{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DateOf truncates t to its calendar day in UTC.
func DateOf(t time.Time) Date {
	return NewDate(t.Year(), t.Month(), t.Day())
}

// ParseDate parses a "YYYY-MM-DD" string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return Date{t}, nil
}

// String returns the date as "YYYY-MM-DD".
func (d Date) String() string {
	return d.Format(dateLayout)
}

// MarshalJSON implements json.Marshaler.
func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (d *Date) UnmarshalJSON(data []byte) error {
	s := string(data)
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return fmt.Errorf("invalid date literal %s", s)
	}
	parsed, err := ParseDate(s[1 : len(s)-1])
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// AddMonths advances the date by the given number of calendar months.
// Day-of-month overflow normalizes forward (Jan 31 + 1 month = Mar 2/3),
// the same behavior the projection engine relies on.
func (d Date) AddMonths(months int) Date {
	return Date{d.Time.AddDate(0, months, 0)}
}

// AddYears advances the date by whole calendar years.
func (d Date) AddYears(years int) Date {
	return Date{d.Time.AddDate(years, 0, 0)}
}

// AddDays advances the date by whole days.
func (d Date) AddDays(days int) Date {
	return Date{d.Time.AddDate(0, 0, days)}
}
