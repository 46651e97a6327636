package engine

import (
	"testing"
	"time"
)

func TestDueOn(t *testing.T) {
	tests := []struct {
		name   string
		dueDay int
		day    time.Time
		want   bool
	}{
		{"exact_day", 15, date(2025, time.May, 15), true},
		{"other_day", 15, date(2025, time.May, 14), false},
		{"day_31_in_30_day_month", 31, date(2025, time.April, 30), true},
		{"day_31_not_on_29th", 31, date(2025, time.April, 29), false},
		{"day_31_in_february", 31, date(2025, time.February, 28), true},
		{"day_30_in_leap_february", 30, date(2024, time.February, 29), true},
		{"day_29_in_common_february", 29, date(2025, time.February, 28), true},
		{"day_29_in_leap_february_not_28th", 29, date(2024, time.February, 28), false},
		{"day_31_in_31_day_month", 31, date(2025, time.May, 31), true},
		{"day_31_not_on_30th_of_31_day_month", 31, date(2025, time.May, 30), false},
		{"zero_due_day", 0, date(2025, time.May, 1), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DueOn(tt.dueDay, tt.day); got != tt.want {
				t.Errorf("DueOn(%d, %s) = %v, want %v", tt.dueDay, tt.day.Format("2006-01-02"), got, tt.want)
			}
		})
	}
}

func TestOccursOn(t *testing.T) {
	tests := []struct {
		name   string
		freq   Frequency
		anchor time.Time
		day    time.Time
		want   bool
	}{
		{"one_time_on_anchor", FrequencyOneTime, date(2025, time.May, 3), date(2025, time.May, 3), true},
		{"one_time_next_month", FrequencyOneTime, date(2025, time.May, 3), date(2025, time.June, 3), false},
		{"monthly_on_anchor", FrequencyMonthly, date(2025, time.May, 3), date(2025, time.May, 3), true},
		{"monthly_before_anchor", FrequencyMonthly, date(2025, time.May, 3), date(2025, time.April, 3), false},
		{"monthly_next_month", FrequencyMonthly, date(2025, time.May, 3), date(2025, time.June, 3), true},
		{"monthly_wrong_day", FrequencyMonthly, date(2025, time.May, 3), date(2025, time.June, 4), false},
		{"monthly_31st_clips_to_february", FrequencyMonthly, date(2025, time.January, 31), date(2025, time.February, 28), true},
		{"monthly_31st_returns_in_march", FrequencyMonthly, date(2025, time.January, 31), date(2025, time.March, 31), true},
		{"monthly_31st_not_march_30", FrequencyMonthly, date(2025, time.January, 31), date(2025, time.March, 30), false},
		{"monthly_31st_clips_to_april_30", FrequencyMonthly, date(2025, time.January, 31), date(2025, time.April, 30), true},
		{"monthly_across_year", FrequencyMonthly, date(2024, time.December, 15), date(2025, time.January, 15), true},
		{"quarterly_three_months_on", FrequencyQuarterly, date(2025, time.January, 10), date(2025, time.April, 10), true},
		{"quarterly_two_months_on", FrequencyQuarterly, date(2025, time.January, 10), date(2025, time.March, 10), false},
		{"quarterly_31st_clips_to_june_30", FrequencyQuarterly, date(2025, time.March, 31), date(2025, time.June, 30), true},
		{"yearly_next_year", FrequencyYearly, date(2024, time.June, 1), date(2025, time.June, 1), true},
		{"yearly_after_six_months", FrequencyYearly, date(2024, time.June, 1), date(2024, time.December, 1), false},
		{"yearly_leap_day_in_common_year", FrequencyYearly, date(2024, time.February, 29), date(2025, time.February, 28), true},
		{"yearly_leap_day_in_next_leap_year", FrequencyYearly, date(2024, time.February, 29), date(2028, time.February, 29), true},
		{"yearly_leap_day_not_28th_in_leap_year", FrequencyYearly, date(2024, time.February, 29), date(2028, time.February, 28), false},
		{"unknown_frequency", Frequency("weekly"), date(2025, time.May, 3), date(2025, time.May, 3), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := OccursOn(tt.freq, tt.anchor, tt.day); got != tt.want {
				t.Errorf("OccursOn(%s, %s, %s) = %v, want %v", tt.freq,
					tt.anchor.Format("2006-01-02"), tt.day.Format("2006-01-02"), got, tt.want)
			}
		})
	}
}

func TestOccurrences(t *testing.T) {
	t.Run("monthly_range", func(t *testing.T) {
		got := Occurrences(FrequencyMonthly, date(2025, time.January, 31),
			date(2025, time.February, 1), date(2025, time.May, 31))
		want := []time.Time{
			date(2025, time.February, 28),
			date(2025, time.March, 31),
			date(2025, time.April, 30),
			date(2025, time.May, 31),
		}
		assertDates(t, got, want)
	})

	t.Run("starts_far_after_anchor", func(t *testing.T) {
		got := Occurrences(FrequencyQuarterly, date(2020, time.February, 29),
			date(2025, time.January, 1), date(2025, time.December, 31))
		want := []time.Time{
			date(2025, time.February, 28),
			date(2025, time.May, 29),
			date(2025, time.August, 29),
			date(2025, time.November, 29),
		}
		assertDates(t, got, want)
	})

	t.Run("range_before_anchor", func(t *testing.T) {
		got := Occurrences(FrequencyMonthly, date(2025, time.June, 1),
			date(2025, time.January, 1), date(2025, time.May, 31))
		if len(got) != 0 {
			t.Errorf("expected no occurrences, got %v", got)
		}
	})

	t.Run("one_time_inside_and_outside", func(t *testing.T) {
		inside := Occurrences(FrequencyOneTime, date(2025, time.May, 3),
			date(2025, time.May, 1), date(2025, time.May, 31))
		assertDates(t, inside, []time.Time{date(2025, time.May, 3)})

		outside := Occurrences(FrequencyOneTime, date(2025, time.April, 3),
			date(2025, time.May, 1), date(2025, time.May, 31))
		if len(outside) != 0 {
			t.Errorf("expected no occurrences, got %v", outside)
		}
	})

	t.Run("agrees_with_occurs_on", func(t *testing.T) {
		anchors := []time.Time{
			date(2024, time.January, 31), date(2024, time.February, 29),
			date(2024, time.March, 30), date(2024, time.November, 15),
		}
		freqs := []Frequency{
			FrequencyOneTime, FrequencyMonthly,
			FrequencyQuarterly, FrequencyYearly,
		}
		from, to := date(2024, time.January, 1), date(2026, time.December, 31)
		for _, anchor := range anchors {
			for _, freq := range freqs {
				occ := map[time.Time]bool{}
				for _, d := range Occurrences(freq, anchor, from, to) {
					occ[d] = true
				}
				for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
					if OccursOn(freq, anchor, d) != occ[d] {
						t.Fatalf("%s anchored %s disagrees on %s", freq,
							anchor.Format("2006-01-02"), d.Format("2006-01-02"))
					}
				}
			}
		}
	})
}

func assertDates(t *testing.T, got, want []time.Time) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("expected %d dates, got %d: %v", len(want), len(got), got)
	}
	for i := range want {
		if !got[i].Equal(want[i]) {
			t.Errorf("date %d: expected %s, got %s", i, want[i].Format("2006-01-02"), got[i].Format("2006-01-02"))
		}
	}
}
