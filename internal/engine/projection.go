package engine

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	apperrors "finsight/internal/errors"
)

const (
	// MaxHorizonDays bounds a projection to one leap year.
	MaxHorizonDays = 366
	// DefaultSmoothingWindowDays is the trailing window used to estimate
	// variable spend on days without recorded history.
	DefaultSmoothingWindowDays = 30
)

// ProjectOptions tunes the projection.
type ProjectOptions struct {
	SmoothingWindowDays int
}

// DefaultProjectOptions returns the options Project uses.
func DefaultProjectOptions() ProjectOptions {
	return ProjectOptions{SmoothingWindowDays: DefaultSmoothingWindowDays}
}

// Project simulates the balance day by day for horizonDays days after the
// snapshot's AsOf date using the default options.
func Project(s Snapshot, horizonDays int) (Projection, error) {
	return ProjectWith(s, horizonDays, DefaultProjectOptions())
}

// ProjectWith is Project with explicit options.
//
// Day 0 is AsOf and carries the profile balance unchanged. On each later day
// income is injected, active fixed expenses due that day are subtracted and
// variable spend is applied: the recorded total while the day lies within
// recorded history, otherwise the trailing-window daily average.
func ProjectWith(s Snapshot, horizonDays int, opts ProjectOptions) (Projection, error) {
	if horizonDays < 0 || horizonDays > MaxHorizonDays {
		return Projection{}, apperrors.WithMessage(apperrors.ErrInvalidInput,
			fmt.Sprintf("horizon must be between 0 and %d days", MaxHorizonDays))
	}
	window := opts.SmoothingWindowDays
	if window <= 0 {
		window = DefaultSmoothingWindowDays
	}

	asOf := civil(s.AsOf)
	end := asOf.AddDate(0, 0, horizonDays)
	trailing := summarizeTrailing(s.Variable, s.HistoryStart, asOf, window)

	inflows := make(map[time.Time][]Inflow)
	recurringIncome := make([]int64, 0, len(s.Income))
	for _, e := range s.Income {
		recurring := e.Frequency != FrequencyOneTime
		if recurring && !civil(e.Date).After(end) {
			recurringIncome = append(recurringIncome, e.Amount)
		}
		for _, d := range Occurrences(e.Frequency, e.Date, asOf.AddDate(0, 0, 1), end) {
			inflows[d] = append(inflows[d], Inflow{Source: e.Source, Amount: e.Amount, Recurring: recurring})
		}
	}

	spent := make(map[time.Time]int64)
	var lastKnown time.Time
	for _, e := range s.Variable {
		d := civil(e.Date)
		spent[d] += e.Amount
		if d.After(lastKnown) {
			lastKnown = d
		}
	}

	points := make([]Point, 0, horizonDays+1)
	balance := s.Profile.CurrentBalance
	points = append(points, Point{Day: 0, Date: asOf, Balance: balance, Estimated: asOf.After(lastKnown)})

	var estimatedDays int64
	var estimatedSoFar int64
	for day := 1; day <= horizonDays; day++ {
		date := asOf.AddDate(0, 0, day)
		pt := Point{Day: day, Date: date}

		for _, in := range inflows[date] {
			pt.IncomeInjected += in.Amount
			pt.Inflows = append(pt.Inflows, in)
		}
		for _, f := range s.Fixed {
			if f.IsActive && DueOn(f.DueDay, date) {
				pt.FixedExpensesApplied += f.Amount
			}
		}
		if !date.After(lastKnown) {
			pt.VariableExpensesApplied = spent[date]
		} else {
			// Round the running total rather than each day so N estimated
			// days always sum to round(N * average).
			estimatedDays++
			total := trailing.average.Mul(decimal.NewFromInt(estimatedDays)).Round(0).IntPart()
			pt.VariableExpensesApplied = total - estimatedSoFar
			estimatedSoFar = total
			pt.Estimated = true
		}

		balance += pt.Delta()
		pt.Balance = balance
		points = append(points, pt)
	}

	return Projection{
		AsOf:              asOf,
		HorizonDays:       horizonDays,
		Points:            points,
		SpendByCategory:   trailing.byCategory,
		AverageDailySpend: trailing.average,
		RecurringIncome:   recurringIncome,
	}, nil
}

type trailingSpend struct {
	average    decimal.Decimal
	byCategory []CategorySpend
}

// summarizeTrailing totals variable spend over the window ending at asOf.
// When recorded history is shorter than the window, the average divides by
// the observed span instead. historyStart, when set, marks where history
// begins even if records only holds a recent slice of it.
func summarizeTrailing(records []VariableExpense, historyStart, asOf time.Time, window int) trailingSpend {
	start := asOf.AddDate(0, 0, -(window - 1))

	var earliest time.Time
	if !historyStart.IsZero() && !civil(historyStart).After(asOf) {
		earliest = civil(historyStart)
	}
	var total int64
	totals := make(map[Category]int64)
	for _, e := range records {
		d := civil(e.Date)
		if d.After(asOf) {
			continue
		}
		if earliest.IsZero() || d.Before(earliest) {
			earliest = d
		}
		if d.Before(start) {
			continue
		}
		total += e.Amount
		totals[e.Category] += e.Amount
	}

	out := trailingSpend{average: decimal.Zero, byCategory: make([]CategorySpend, 0, len(totals))}
	if earliest.IsZero() {
		return out
	}
	span := window
	if earliest.After(start) {
		span = int(asOf.Sub(earliest).Hours()/24) + 1
	}
	out.average = decimal.NewFromInt(total).Div(decimal.NewFromInt(int64(span)))

	for c, amt := range totals {
		out.byCategory = append(out.byCategory, CategorySpend{Category: c, Amount: amt})
	}
	sort.Slice(out.byCategory, func(i, j int) bool {
		a, b := out.byCategory[i], out.byCategory[j]
		if a.Amount != b.Amount {
			return a.Amount > b.Amount
		}
		return a.Category < b.Category
	})
	return out
}
