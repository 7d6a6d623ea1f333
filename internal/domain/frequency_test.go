package domain

import (
	"testing"
	"time"
)

func TestFrequencyAdvance(t *testing.T) {
	start := NewDate(2025, time.March, 15)

	tests := []struct {
		frequency Frequency
		want      string
	}{
		{FrequencyMonthly, "2025-04-15"},
		{FrequencyBimonthly, "2025-05-15"},
		{FrequencyQuarterly, "2025-06-15"},
		{FrequencySemiannual, "2025-09-15"},
		{FrequencyAnnual, "2026-03-15"},
		{Frequency("weekly"), "2025-03-15"}, // unknown: no movement
	}

	for _, tt := range tests {
		t.Run(string(tt.frequency), func(t *testing.T) {
			got := tt.frequency.Advance(start)
			if got.String() != tt.want {
				t.Errorf("Advance(%s) = %s, want %s", start, got, tt.want)
			}
		})
	}
}

func TestFrequencyValid(t *testing.T) {
	for _, f := range Frequencies {
		if !f.Valid() {
			t.Errorf("Valid(%q) = false, want true", f)
		}
	}
	if Frequency("daily").Valid() {
		t.Error("Valid(daily) = true, want false")
	}
	if Frequency("").Valid() {
		t.Error("Valid(\"\") = true, want false")
	}
}

func TestFrequencyWeightOrder(t *testing.T) {
	for i := 1; i < len(Frequencies); i++ {
		if Frequencies[i-1].Weight() >= Frequencies[i].Weight() {
			t.Errorf("Weight(%q) = %d not below Weight(%q) = %d",
				Frequencies[i-1], Frequencies[i-1].Weight(), Frequencies[i], Frequencies[i].Weight())
		}
	}
}
