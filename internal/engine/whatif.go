package engine

import (
	"slices"

	"github.com/shopspring/decimal"

	apperrors "finsight/internal/errors"
)

// SimulationResult is the outcome of a what-if run. Nothing in it is persisted.
type SimulationResult struct {
	Overlay      Projection `json:"overlay"`
	Impact       Impact     `json:"impact"`
	BaselineRisk RiskScore  `json:"baseline_risk"`
	OverlayRisk  RiskScore  `json:"overlay_risk"`
}

// Simulate overlays a hypothetical one-off expense on a baseline projection.
// The overlay matches the baseline before TriggerDay; from TriggerDay on every
// balance is reduced by the scenario amount. The baseline is never modified.
// When goal is non-nil the impact includes how many days the balance change
// delays it at its current contribution.
func Simulate(profile FinancialProfile, baseline Projection, scenario WhatIfScenario, goal *SavingsGoal) (SimulationResult, error) {
	if baseline.Empty() {
		return SimulationResult{}, apperrors.WithMessage(apperrors.ErrInvalidInput, "baseline projection has no points")
	}
	if scenario.Amount <= 0 {
		return SimulationResult{}, apperrors.WithMessage(apperrors.ErrInvalidInput, "scenario amount must be greater than 0")
	}
	horizon := len(baseline.Points) - 1
	if scenario.HorizonDays < 0 || scenario.HorizonDays > horizon {
		return SimulationResult{}, apperrors.WithMessage(apperrors.ErrInvalidInput, "scenario horizon exceeds the baseline")
	}
	if scenario.HorizonDays > 0 {
		horizon = scenario.HorizonDays
	}
	if scenario.TriggerDay < 0 || scenario.TriggerDay > horizon {
		return SimulationResult{}, apperrors.WithMessage(apperrors.ErrInvalidInput, "trigger day is outside the projection")
	}

	base := truncate(baseline, horizon)
	overlay := truncate(baseline, horizon)
	pts := overlay.Points
	for i := range pts {
		if i == scenario.TriggerDay {
			pts[i].ScenarioApplied += scenario.Amount
		}
		if i == 0 {
			pts[0].Balance = base.Points[0].Balance + base.Points[0].ScenarioApplied - pts[0].ScenarioApplied
			continue
		}
		pts[i].Balance = pts[i-1].Balance + pts[i].Delta()
	}

	baseRisk, err := Score(profile, base)
	if err != nil {
		return SimulationResult{}, err
	}
	overlayRisk, err := Score(profile, overlay)
	if err != nil {
		return SimulationResult{}, err
	}

	change := overlay.FinalBalance() - base.FinalBalance()
	impact := Impact{
		BalanceChange: change,
		RiskReduction: round2(overlayRisk.Score - baseRisk.Score),
	}
	if goal != nil {
		impact.GoalDelayDays = goalDelayDays(*goal, change)
	}

	return SimulationResult{
		Overlay:      overlay,
		Impact:       impact,
		BaselineRisk: baseRisk,
		OverlayRisk:  overlayRisk,
	}, nil
}

// truncate returns a deep copy of p cut to horizon days.
func truncate(p Projection, horizon int) Projection {
	pts := make([]Point, horizon+1)
	copy(pts, p.Points[:horizon+1])
	for i := range pts {
		pts[i].Inflows = slices.Clone(pts[i].Inflows)
	}
	p.HorizonDays = horizon
	p.Points = pts
	p.SpendByCategory = slices.Clone(p.SpendByCategory)
	p.RecurringIncome = slices.Clone(p.RecurringIncome)
	return p
}

// goalDelayDays converts a balance change into days of contributions. It is
// nil when the goal has no contribution and is still open.
func goalDelayDays(goal SavingsGoal, change int64) *int {
	if goal.Remaining() == 0 {
		return intPtr(0)
	}
	if goal.MonthlyContribution <= 0 {
		return nil
	}
	if change < 0 {
		change = -change
	}
	// change / (contribution*12/365), kept in one division so exact multiples stay exact.
	perYear := decimal.NewFromInt(goal.MonthlyContribution).Mul(decimal.NewFromInt(12))
	days := decimal.NewFromInt(change).Mul(decimal.NewFromInt(365)).Div(perYear).Ceil().IntPart()
	return intPtr(int(days))
}

func intPtr(v int) *int { return &v }
