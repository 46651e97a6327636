package engine

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	apperrors "finsight/internal/errors"
)

// discretionaryCutRate is the share of monthly discretionary spend the
// savings rule suggests redirecting.
var discretionaryCutRate = decimal.NewFromFloat(0.2)

var priorityRank = map[Priority]int{
	PriorityHigh:     0,
	PriorityModerate: 1,
	PriorityLow:      2,
}

// Recommend derives prioritized actions from a snapshot, its projection and
// the projection's risk score. The result is never empty: when no rule
// fires a single positive recommendation is returned. Recommendations are
// ordered by priority, then by confidence descending.
func Recommend(s Snapshot, p Projection, r RiskScore) ([]Recommendation, error) {
	if p.Empty() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "projection has no points")
	}

	var recs []Recommendation
	if rec, ok := spendingRule(s, p, r); ok {
		recs = append(recs, rec)
	}
	if rec, ok := savingsRule(s, p, r); ok {
		recs = append(recs, rec)
	}
	recs = append(recs, goalRules(s)...)

	if len(recs) == 0 {
		recs = append(recs, Recommendation{
			Type:       RecommendationPositive,
			Priority:   PriorityLow,
			Title:      "Cash flow is on track",
			Confidence: 1,
			Actions: []string{
				"Keep your current spending pattern",
				"Consider raising contributions to your savings goals",
			},
		})
	}

	sort.SliceStable(recs, func(i, j int) bool {
		a, b := recs[i], recs[j]
		if priorityRank[a.Priority] != priorityRank[b.Priority] {
			return priorityRank[a.Priority] < priorityRank[b.Priority]
		}
		return a.Confidence > b.Confidence
	})
	return recs, nil
}

// spendingRule fires when any projected day dips below the minimum balance
// threshold. Confidence falls the further out the first breach lies.
func spendingRule(s Snapshot, p Projection, r RiskScore) (Recommendation, bool) {
	threshold := s.Profile.MinimumBalanceThreshold
	firstDay := -1
	for _, pt := range p.Points {
		if pt.Balance < threshold {
			firstDay = pt.Day
			break
		}
	}
	if firstDay < 0 {
		return Recommendation{}, false
	}

	minBal, _ := p.MinimumBalance()
	shortfall := threshold - minBal
	currency := s.Profile.Currency

	title := fmt.Sprintf("Balance falls below %s on day %d", FormatAmount(threshold, currency), firstDay)
	when := fmt.Sprintf("before day %d", firstDay)
	review := fmt.Sprintf("Review fixed expenses due in the next %d days", firstDay)
	if firstDay == 0 {
		title = fmt.Sprintf("Balance is already below %s", FormatAmount(threshold, currency))
		when = "now"
		review = "Review the fixed expenses due next"
	}

	var actions []string
	if c, ok := largestCategory(p.SpendByCategory); ok {
		actions = append(actions, fmt.Sprintf("Cut %s spending by %s %s", c, FormatAmount(shortfall, currency), when))
	}
	actions = append(actions, "Postpone non-essential purchases", review)

	return Recommendation{
		Type:     RecommendationSpending,
		Priority: PriorityHigh,
		Title:    title,
		Impact: Impact{
			BalanceChange: shortfall,
			RiskReduction: round2(MaxBalanceAdequacy - r.Breakdown.BalanceAdequacy),
		},
		Confidence: round2(clamp(1-float64(firstDay)/float64(p.HorizonDays+1), 0.1, 1)),
		Actions:    actions,
	}, true
}

// largestCategory picks the biggest trailing category. byCategory is sorted
// by amount descending.
func largestCategory(byCategory []CategorySpend) (Category, bool) {
	if len(byCategory) == 0 {
		return "", false
	}
	return byCategory[0].Category, true
}

// savingsRule fires when the balance at the end of the current month misses
// the emergency buffer target.
func savingsRule(s Snapshot, p Projection, r RiskScore) (Recommendation, bool) {
	target := s.Profile.EmergencyBufferTarget
	if target <= 0 {
		return Recommendation{}, false
	}
	monthEnd := p.Points[0]
	for _, pt := range p.Points {
		if pt.Date.Year() != p.AsOf.Year() || pt.Date.Month() != p.AsOf.Month() {
			break
		}
		monthEnd = pt
	}
	if monthEnd.Balance >= target {
		return Recommendation{}, false
	}

	gap := target - monthEnd.Balance
	redirect := max(monthlyDiscretionary(p).Mul(discretionaryCutRate).Round(0).IntPart(), s.Profile.MonthlySavingsFloor)
	redirect = min(redirect, gap)
	currency := s.Profile.Currency

	coverage := clamp(ratio(redirect, gap), 0, 1)
	recovered := MaxSafetyMargin * clamp(ratio(redirect, target), 0, 1)

	return Recommendation{
		Type:     RecommendationSavings,
		Priority: PriorityModerate,
		Title:    fmt.Sprintf("Emergency buffer is %s short", FormatAmount(gap, currency)),
		Impact: Impact{
			BalanceChange: redirect,
			RiskReduction: round2(min(MaxSafetyMargin-r.Breakdown.SafetyMargin, recovered)),
		},
		Confidence: round2(0.5 + 0.4*coverage),
		Actions: []string{
			fmt.Sprintf("Move %s a month from discretionary spending into savings", FormatAmount(redirect, currency)),
			"Set up an automatic transfer on payday",
		},
	}, true
}

// monthlyDiscretionary scales the discretionary share of the trailing daily
// average to a 30-day month.
func monthlyDiscretionary(p Projection) decimal.Decimal {
	var all, discretionary int64
	for _, cs := range p.SpendByCategory {
		all += cs.Amount
		if cs.Category.IsDiscretionary() {
			discretionary += cs.Amount
		}
	}
	if all == 0 {
		return decimal.Zero
	}
	return p.AverageDailySpend.Mul(decimal.NewFromInt(30)).
		Mul(decimal.NewFromInt(discretionary)).
		Div(decimal.NewFromInt(all))
}

// goalRules emits one recommendation per goal that will miss its target date.
func goalRules(s Snapshot) []Recommendation {
	var recs []Recommendation
	for _, g := range s.Goals {
		gp := AnalyzeGoal(g, s.AsOf)
		if gp.Remaining == 0 || gp.OnTrack {
			continue
		}
		currency := s.Profile.Currency

		rec := Recommendation{
			Type:       RecommendationGoals,
			Priority:   PriorityModerate,
			Title:      fmt.Sprintf("%q will miss its target date", g.Name),
			GoalID:     g.ID,
			Confidence: 0.5,
			Impact: Impact{
				BalanceChange: -(gp.SuggestedContribution - g.MonthlyContribution),
			},
			Actions: []string{
				fmt.Sprintf("Raise the monthly contribution to %s", FormatAmount(gp.SuggestedContribution, currency)),
			},
		}
		rec.SuggestedContribution = gp.SuggestedContribution
		if !gp.Achievable || *gp.MonthsNeeded > 2*gp.MonthsRemaining {
			rec.Priority = PriorityHigh
		}
		if gp.Achievable {
			rec.Confidence = round2(clamp(float64(gp.MonthsRemaining)/float64(*gp.MonthsNeeded), 0.3, 0.95))
			delay := int(gp.ProjectedCompletion.Sub(civil(g.TargetDate)).Hours() / 24)
			rec.Impact.GoalDelayDays = &delay
			rec.Actions = append(rec.Actions,
				fmt.Sprintf("Or move the target date to %s", gp.ProjectedCompletion.Format("2006-01-02")))
		} else {
			rec.Actions = append(rec.Actions, "Start a monthly contribution; the goal has none")
		}
		recs = append(recs, rec)
	}
	return recs
}
