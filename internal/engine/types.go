// Package engine implements the cash-flow simulation and risk-scoring core:
// record normalization, day-by-day balance projection, risk scoring,
// what-if overlays and recommendations.
//
// Every exported operation is a pure function of its arguments. Nothing in
// this package performs I/O, reads the wall clock or retains state between
// calls, so all operations are safe for concurrent use.
package engine

import (
	"time"

	"github.com/shopspring/decimal"
)

// RiskTolerance is the user's declared appetite for risk.
type RiskTolerance string

const (
	RiskToleranceLow    RiskTolerance = "low"
	RiskToleranceMedium RiskTolerance = "medium"
	RiskToleranceHigh   RiskTolerance = "high"
)

// Frequency is the recurrence schedule of an income event.
type Frequency string

const (
	FrequencyOneTime   Frequency = "one-time"
	FrequencyMonthly   Frequency = "monthly"
	FrequencyQuarterly Frequency = "quarterly"
	FrequencyYearly    Frequency = "yearly"
)

// GoalPriority ranks savings goals against each other.
type GoalPriority string

const (
	GoalPriorityHigh   GoalPriority = "high"
	GoalPriorityMedium GoalPriority = "medium"
	GoalPriorityLow    GoalPriority = "low"
)

// FinancialProfile holds the user's balance and safety thresholds.
// All amounts are in the currency's smallest unit.
type FinancialProfile struct {
	CurrentBalance          int64         `json:"current_balance"`
	MonthlyIncome           int64         `json:"monthly_income" validate:"gte=0"`
	Currency                string        `json:"currency" validate:"required,iso4217"`
	EmergencyBufferTarget   int64         `json:"emergency_buffer_target" validate:"gte=0"`
	MinimumBalanceThreshold int64         `json:"minimum_balance_threshold"`
	MonthlySavingsFloor     int64         `json:"monthly_savings_floor" validate:"gte=0"`
	RiskTolerance           RiskTolerance `json:"risk_tolerance" validate:"risk_tolerance"`
}

// IncomeEvent is a cash inflow, either one-off or recurring from Date on.
type IncomeEvent struct {
	ID        string    `json:"id"`
	Amount    int64     `json:"amount" validate:"gt=0"`
	Source    string    `json:"source"`
	Frequency Frequency `json:"frequency" validate:"frequency"`
	Date      time.Time `json:"date" validate:"required"`
}

// FixedExpense is a recurring monthly obligation due on DueDay.
type FixedExpense struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Amount   int64    `json:"amount" validate:"gt=0"`
	Category Category `json:"category"`
	DueDay   int      `json:"due_day" validate:"min=1,max=31"`
	IsActive bool     `json:"is_active"`
}

// VariableExpense is a single recorded spending transaction.
type VariableExpense struct {
	ID          string    `json:"id"`
	Amount      int64     `json:"amount" validate:"gt=0"`
	Category    Category  `json:"category"`
	Date        time.Time `json:"date" validate:"required"`
	Description string    `json:"description"`
}

// SavingsGoal is a target amount the user saves towards.
type SavingsGoal struct {
	ID                  string       `json:"id"`
	Name                string       `json:"name"`
	TargetAmount        int64        `json:"target_amount" validate:"gt=0"`
	CurrentAmount       int64        `json:"current_amount" validate:"gte=0"`
	MonthlyContribution int64        `json:"monthly_contribution" validate:"gte=0"`
	TargetDate          time.Time    `json:"target_date" validate:"required"`
	Priority            GoalPriority `json:"priority" validate:"goal_priority"`
	CreatedAt           time.Time    `json:"created_at"`
}

// Remaining returns the amount still to be saved, never negative.
func (g SavingsGoal) Remaining() int64 {
	if g.CurrentAmount >= g.TargetAmount {
		return 0
	}
	return g.TargetAmount - g.CurrentAmount
}

// Records is the raw, unvalidated input handed over by the persistence layer.
type Records struct {
	Profile  FinancialProfile
	Income   []IncomeEvent
	Fixed    []FixedExpense
	Variable []VariableExpense
	Goals    []SavingsGoal

	// HistoryStart is the date of the user's first variable expense when
	// Variable holds only a recent slice of history. Zero means Variable is
	// the whole history.
	HistoryStart time.Time
}

// Snapshot is an immutable, validated view of a user's finances at AsOf.
// It is produced by Normalize and passed by value into every engine call.
type Snapshot struct {
	Profile  FinancialProfile  `json:"profile"`
	Income   []IncomeEvent     `json:"income"`
	Fixed    []FixedExpense    `json:"fixed_expenses"`
	Variable []VariableExpense `json:"variable_expenses"`
	Goals    []SavingsGoal     `json:"goals"`
	AsOf     time.Time         `json:"as_of"`

	// HistoryStart is the first day of recorded variable spend, or zero
	// when there is none.
	HistoryStart time.Time `json:"history_start"`
}

// Inflow is one income injection on a projected day.
type Inflow struct {
	Source    string `json:"source"`
	Amount    int64  `json:"amount"`
	Recurring bool   `json:"recurring"`
}

// Point is the state of the balance at the end of one projected day.
type Point struct {
	Day                     int       `json:"day"`
	Date                    time.Time `json:"date"`
	Balance                 int64     `json:"balance"`
	IncomeInjected          int64     `json:"income_injected"`
	FixedExpensesApplied    int64     `json:"fixed_expenses_applied"`
	VariableExpensesApplied int64     `json:"variable_expenses_applied"`
	ScenarioApplied         int64     `json:"scenario_applied"`
	Estimated               bool      `json:"estimated"`
	Inflows                 []Inflow  `json:"inflows,omitempty"`
}

// Delta returns the net change this day applies to the previous balance.
func (p Point) Delta() int64 {
	return p.IncomeInjected - p.FixedExpensesApplied - p.VariableExpensesApplied - p.ScenarioApplied
}

// CategorySpend is the trailing-window variable spend of one category.
type CategorySpend struct {
	Category Category `json:"category"`
	Amount   int64    `json:"amount"`
}

// Projection is a day-by-day balance timeline starting at AsOf (day 0).
type Projection struct {
	AsOf              time.Time       `json:"as_of"`
	HorizonDays       int             `json:"horizon_days"`
	Points            []Point         `json:"points"`
	SpendByCategory   []CategorySpend `json:"spend_by_category"`
	AverageDailySpend decimal.Decimal `json:"average_daily_spend"`

	// RecurringIncome holds the amount of every recurring income stream that
	// has started by the horizon end, whether or not it pays inside it.
	RecurringIncome []int64 `json:"recurring_income"`
}

// Empty reports whether the projection has no points.
func (p Projection) Empty() bool { return len(p.Points) == 0 }

// FinalBalance returns the balance on the last projected day.
func (p Projection) FinalBalance() int64 {
	if p.Empty() {
		return 0
	}
	return p.Points[len(p.Points)-1].Balance
}

// MinimumBalance returns the lowest projected balance and the first day it occurs.
func (p Projection) MinimumBalance() (int64, int) {
	if p.Empty() {
		return 0, 0
	}
	minBal, minDay := p.Points[0].Balance, 0
	for _, pt := range p.Points[1:] {
		if pt.Balance < minBal {
			minBal, minDay = pt.Balance, pt.Day
		}
	}
	return minBal, minDay
}

// StressLevel buckets a risk score for display. Higher levels mean more stress.
type StressLevel string

const (
	StressLow      StressLevel = "low"
	StressModerate StressLevel = "moderate"
	StressElevated StressLevel = "elevated"
	StressHigh     StressLevel = "high"
)

// Breakdown holds the four capped sub-scores of a RiskScore.
type Breakdown struct {
	BalanceAdequacy       float64 `json:"balance_adequacy"`
	IncomeStability       float64 `json:"income_stability"`
	ExpensePredictability float64 `json:"expense_predictability"`
	SafetyMargin          float64 `json:"safety_margin"`
}

// RiskScore is a 0-100 financial health score. Higher is healthier; Level
// carries the inverse reading as a stress bucket.
type RiskScore struct {
	Score     float64     `json:"score"`
	Breakdown Breakdown   `json:"breakdown"`
	Level     StressLevel `json:"level"`
}

// WhatIfScenario is a hypothetical one-off expense. It is never persisted.
type WhatIfScenario struct {
	Amount      int64    `json:"amount"`
	Category    Category `json:"category"`
	TriggerDay  int      `json:"trigger_day"`
	HorizonDays int      `json:"horizon_days"`
}

// Impact quantifies the effect of a scenario or a recommendation.
// GoalDelayDays is nil when no goal applies or the goal cannot be reached.
type Impact struct {
	BalanceChange int64   `json:"balance_change"`
	RiskReduction float64 `json:"risk_reduction"`
	GoalDelayDays *int    `json:"goal_delay_days"`
}

// RecommendationType classifies a recommendation.
type RecommendationType string

const (
	RecommendationSpending RecommendationType = "spending"
	RecommendationSavings  RecommendationType = "savings"
	RecommendationGoals    RecommendationType = "goals"
	RecommendationPositive RecommendationType = "positive"
)

// Priority orders recommendations.
type Priority string

const (
	PriorityHigh     Priority = "high"
	PriorityModerate Priority = "moderate"
	PriorityLow      Priority = "low"
)

// Recommendation is a suggested action with its expected impact.
type Recommendation struct {
	Type       RecommendationType `json:"type"`
	Priority   Priority           `json:"priority"`
	Title      string             `json:"title"`
	Impact     Impact             `json:"impact"`
	Confidence float64            `json:"confidence"`
	Actions    []string           `json:"actions"`
	GoalID     string             `json:"goal_id,omitempty"`

	// SuggestedContribution is the monthly amount, in minor units, that keeps
	// a goal on schedule. Only goal recommendations set it.
	SuggestedContribution int64 `json:"suggested_contribution,omitempty"`
}
