package engine

import "time"

// Calendar policy for recurring dates:
//
//   - A day-of-month larger than the month fires on the month's last day, so
//     due day 31 lands on Apr 30 and Feb 28 (Feb 29 in leap years).
//   - Monthly, quarterly and yearly events recur every 1, 3 and 12 months from
//     the anchor month with the same clipping. The anchor day is kept, so a
//     Jan 31 anchor fires on Feb 28 and again on Mar 31.
//   - Nothing fires before the anchor. One-time events fire on the anchor only.

// stepMonths returns the recurrence interval in months, 0 for one-time
// events and -1 for an unknown frequency.
func stepMonths(freq Frequency) int {
	switch freq {
	case FrequencyOneTime:
		return 0
	case FrequencyMonthly:
		return 1
	case FrequencyQuarterly:
		return 3
	case FrequencyYearly:
		return 12
	}
	return -1
}

func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func monthsBetween(from, to time.Time) int {
	return (to.Year()-from.Year())*12 + int(to.Month()) - int(from.Month())
}

// shiftMonths moves anchor forward by n months, clipping the day to the
// target month's length.
func shiftMonths(anchor time.Time, n int) time.Time {
	first := time.Date(anchor.Year(), anchor.Month()+time.Month(n), 1, 0, 0, 0, 0, time.UTC)
	day := min(anchor.Day(), daysIn(first.Year(), first.Month()))
	return time.Date(first.Year(), first.Month(), day, 0, 0, 0, 0, time.UTC)
}

// DueOn reports whether a monthly obligation due on dueDay falls on day.
func DueOn(dueDay int, day time.Time) bool {
	if dueDay < 1 {
		return false
	}
	day = civil(day)
	return day.Day() == min(dueDay, daysIn(day.Year(), day.Month()))
}

// OccursOn reports whether an event with the given frequency, first
// occurring on anchor, fires on day.
func OccursOn(freq Frequency, anchor, day time.Time) bool {
	anchor, day = civil(anchor), civil(day)
	if day.Before(anchor) {
		return false
	}
	step := stepMonths(freq)
	switch {
	case step < 0:
		return false
	case step == 0:
		return day.Equal(anchor)
	}
	months := monthsBetween(anchor, day)
	if months%step != 0 {
		return false
	}
	return day.Equal(shiftMonths(anchor, months))
}

// Occurrences returns every date in [from, to] on which the event fires,
// in ascending order.
func Occurrences(freq Frequency, anchor, from, to time.Time) []time.Time {
	anchor, from, to = civil(anchor), civil(from), civil(to)
	if to.Before(from) || to.Before(anchor) {
		return nil
	}
	step := stepMonths(freq)
	switch {
	case step < 0:
		return nil
	case step == 0:
		if anchor.Before(from) {
			return nil
		}
		return []time.Time{anchor}
	}

	k := 0
	if from.After(anchor) {
		// Start one interval early; clipping can pull a date back into range.
		k = max(0, monthsBetween(anchor, from)/step-1)
	}
	var out []time.Time
	for ; ; k++ {
		d := shiftMonths(anchor, k*step)
		if d.After(to) {
			break
		}
		if !d.Before(from) {
			out = append(out, d)
		}
	}
	return out
}
