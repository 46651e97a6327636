package engine

import (
	"time"

	"github.com/shopspring/decimal"
)

// GoalProgress summarizes whether a savings goal is on pace.
// MonthsNeeded is nil when the goal is open and has no contribution.
type GoalProgress struct {
	GoalID                string     `json:"goal_id"`
	Name                  string     `json:"name"`
	Remaining             int64      `json:"remaining"`
	MonthsNeeded          *int       `json:"months_needed"`
	MonthsRemaining       int        `json:"months_remaining"`
	OnTrack               bool       `json:"on_track"`
	Achievable            bool       `json:"achievable"`
	SuggestedContribution int64      `json:"suggested_contribution"`
	ProjectedCompletion   *time.Time `json:"projected_completion"`
}

// AnalyzeGoal measures a goal against its target date as seen from asOf.
func AnalyzeGoal(goal SavingsGoal, asOf time.Time) GoalProgress {
	asOf = civil(asOf)
	gp := GoalProgress{
		GoalID:          goal.ID,
		Name:            goal.Name,
		Remaining:       goal.Remaining(),
		MonthsRemaining: wholeMonths(asOf, civil(goal.TargetDate)),
	}

	if gp.Remaining == 0 {
		gp.MonthsNeeded = intPtr(0)
		gp.OnTrack = true
		gp.Achievable = true
		done := asOf
		gp.ProjectedCompletion = &done
		return gp
	}

	gp.SuggestedContribution = ceilDiv(gp.Remaining, int64(max(1, gp.MonthsRemaining)))
	if goal.MonthlyContribution <= 0 {
		return gp
	}

	needed := int(ceilDiv(gp.Remaining, goal.MonthlyContribution))
	gp.MonthsNeeded = &needed
	gp.Achievable = true
	gp.OnTrack = needed <= gp.MonthsRemaining
	done := shiftMonths(asOf, needed)
	gp.ProjectedCompletion = &done
	return gp
}

// wholeMonths counts complete calendar months from from to to, never negative.
func wholeMonths(from, to time.Time) int {
	if !to.After(from) {
		return 0
	}
	n := monthsBetween(from, to)
	if shiftMonths(from, n).After(to) {
		n--
	}
	return max(0, n)
}

func ceilDiv(num, den int64) int64 {
	return decimal.NewFromInt(num).Div(decimal.NewFromInt(den)).Ceil().IntPart()
}
