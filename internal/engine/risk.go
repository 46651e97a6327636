package engine

import (
	"math"

	"github.com/shopspring/decimal"

	apperrors "finsight/internal/errors"
)

// Component caps of the risk score. They sum to 100.
const (
	MaxBalanceAdequacy       = 40.0
	MaxIncomeStability       = 30.0
	MaxExpensePredictability = 20.0
	MaxSafetyMargin          = 10.0
)

// Score rates the financial health of a projection from 0 to 100. Higher is
// healthier. The breakdown components are each capped at their Max constant.
func Score(profile FinancialProfile, p Projection) (RiskScore, error) {
	if p.Empty() {
		return RiskScore{}, apperrors.WithMessage(apperrors.ErrInvalidInput, "projection has no points")
	}

	b := Breakdown{
		BalanceAdequacy:       round2(balanceAdequacy(profile, p)),
		IncomeStability:       round2(incomeStability(profile, p)),
		ExpensePredictability: round2(expensePredictability(p)),
		SafetyMargin:          round2(safetyMargin(profile, p)),
	}
	total := clamp(round2(b.BalanceAdequacy+b.IncomeStability+b.ExpensePredictability+b.SafetyMargin), 0, 100)

	return RiskScore{Score: total, Breakdown: b, Level: LevelFor(total)}, nil
}

// LevelFor maps a health score onto its stress level.
func LevelFor(score float64) StressLevel {
	switch {
	case score >= 75:
		return StressLow
	case score >= 50:
		return StressModerate
	case score >= 25:
		return StressElevated
	default:
		return StressHigh
	}
}

func balanceAdequacy(profile FinancialProfile, p Projection) float64 {
	minBal, _ := p.MinimumBalance()
	threshold := profile.MinimumBalanceThreshold
	if threshold <= 0 {
		if minBal >= 0 {
			return MaxBalanceAdequacy
		}
		return 0
	}
	return MaxBalanceAdequacy * clamp(ratio(minBal, threshold), 0, 1)
}

// incomeStability rewards recurring inflows of a consistent size, measured by
// their coefficient of variation. A horizon too short to see a payday falls
// back to the recurring streams themselves.
func incomeStability(profile FinancialProfile, p Projection) float64 {
	var amounts []float64
	for _, pt := range p.Points {
		for _, in := range pt.Inflows {
			if in.Recurring {
				amounts = append(amounts, float64(in.Amount))
			}
		}
	}
	if len(amounts) == 0 {
		for _, a := range p.RecurringIncome {
			amounts = append(amounts, float64(a))
		}
	}
	if len(amounts) == 0 {
		if profile.MonthlyIncome > 0 {
			return MaxIncomeStability / 2
		}
		return 0
	}

	var sum float64
	for _, a := range amounts {
		sum += a
	}
	mean := sum / float64(len(amounts))
	var sq float64
	for _, a := range amounts {
		sq += (a - mean) * (a - mean)
	}
	cv := math.Sqrt(sq/float64(len(amounts))) / mean
	return MaxIncomeStability * clamp(1-cv, 0, 1)
}

// expensePredictability is the share of outflow that is fixed. A what-if
// amount counts as unplanned spend.
func expensePredictability(p Projection) float64 {
	var fixed, variable int64
	for _, pt := range p.Points {
		fixed += pt.FixedExpensesApplied
		variable += pt.VariableExpensesApplied + pt.ScenarioApplied
	}
	if fixed+variable <= 0 {
		return MaxExpensePredictability
	}
	return MaxExpensePredictability * clamp(1-ratio(variable, fixed+variable), 0, 1)
}

func safetyMargin(profile FinancialProfile, p Projection) float64 {
	start := p.Points[0].Balance
	target := profile.EmergencyBufferTarget
	if target <= 0 {
		if start >= 0 {
			return MaxSafetyMargin
		}
		return 0
	}
	return MaxSafetyMargin * clamp(ratio(start, target), 0, 1)
}

func ratio(num, den int64) float64 {
	return decimal.NewFromInt(num).Div(decimal.NewFromInt(den)).InexactFloat64()
}

func round2(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
