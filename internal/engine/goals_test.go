package engine

import (
	"testing"
	"time"
)

func TestAnalyzeGoal(t *testing.T) {
	asOf := date(2025, time.January, 15)

	t.Run("behind_schedule", func(t *testing.T) {
		goal := SavingsGoal{
			ID: "house", TargetAmount: 100000, CurrentAmount: 20000,
			MonthlyContribution: 10000, TargetDate: date(2025, time.June, 15),
		}

		gp := AnalyzeGoal(goal, asOf)

		if gp.Remaining != 80000 {
			t.Errorf("expected remaining 80000, got %d", gp.Remaining)
		}
		if gp.MonthsRemaining != 5 {
			t.Errorf("expected 5 months remaining, got %d", gp.MonthsRemaining)
		}
		if gp.MonthsNeeded == nil || *gp.MonthsNeeded != 8 {
			t.Fatalf("expected 8 months needed, got %v", gp.MonthsNeeded)
		}
		if gp.OnTrack {
			t.Error("expected goal to be off track")
		}
		if !gp.Achievable {
			t.Error("expected goal to be achievable")
		}
		if gp.SuggestedContribution != 16000 {
			t.Errorf("expected suggested contribution 16000, got %d", gp.SuggestedContribution)
		}
		if gp.ProjectedCompletion == nil || !gp.ProjectedCompletion.Equal(date(2025, time.September, 15)) {
			t.Errorf("expected completion 2025-09-15, got %v", gp.ProjectedCompletion)
		}
	})

	t.Run("on_schedule", func(t *testing.T) {
		goal := SavingsGoal{
			ID: "car", TargetAmount: 60000, CurrentAmount: 0,
			MonthlyContribution: 10000, TargetDate: date(2025, time.July, 15),
		}

		gp := AnalyzeGoal(goal, asOf)

		if gp.MonthsNeeded == nil || *gp.MonthsNeeded != 6 || !gp.OnTrack {
			t.Errorf("expected 6 months needed and on track, got %+v", gp)
		}
	})

	t.Run("partial_month_is_not_counted", func(t *testing.T) {
		goal := SavingsGoal{TargetAmount: 100, MonthlyContribution: 10, TargetDate: date(2025, time.June, 14)}

		if gp := AnalyzeGoal(goal, asOf); gp.MonthsRemaining != 4 {
			t.Errorf("expected 4 whole months, got %d", gp.MonthsRemaining)
		}
	})

	t.Run("no_contribution_is_not_achievable", func(t *testing.T) {
		goal := SavingsGoal{TargetAmount: 1000, TargetDate: date(2025, time.March, 15)}

		gp := AnalyzeGoal(goal, asOf)

		if gp.MonthsNeeded != nil {
			t.Errorf("expected nil months needed, got %d", *gp.MonthsNeeded)
		}
		if gp.Achievable || gp.OnTrack {
			t.Errorf("expected unachievable and off track, got %+v", gp)
		}
		if gp.SuggestedContribution != 500 {
			t.Errorf("expected 500 a month over 2 months, got %d", gp.SuggestedContribution)
		}
	})

	t.Run("overfunded_goal_is_complete", func(t *testing.T) {
		goal := SavingsGoal{TargetAmount: 1000, CurrentAmount: 1200, TargetDate: date(2025, time.March, 15)}

		gp := AnalyzeGoal(goal, asOf)

		if gp.Remaining != 0 || !gp.OnTrack || gp.MonthsNeeded == nil || *gp.MonthsNeeded != 0 {
			t.Errorf("expected complete goal, got %+v", gp)
		}
	})

	t.Run("past_target_suggests_whole_remainder", func(t *testing.T) {
		goal := SavingsGoal{TargetAmount: 1000, MonthlyContribution: 100, TargetDate: date(2025, time.January, 1)}

		gp := AnalyzeGoal(goal, asOf)

		if gp.MonthsRemaining != 0 || gp.OnTrack {
			t.Errorf("expected overdue goal, got %+v", gp)
		}
		if gp.SuggestedContribution != 1000 {
			t.Errorf("expected 1000, got %d", gp.SuggestedContribution)
		}
	})
}
