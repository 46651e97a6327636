package engine

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	apperrors "finsight/internal/errors"
)

// RecordKind names the record type a RecordError refers to.
type RecordKind string

const (
	KindIncome   RecordKind = "income"
	KindFixed    RecordKind = "fixed_expense"
	KindVariable RecordKind = "variable_expense"
	KindGoal     RecordKind = "goal"
)

// RecordError describes a single record dropped during normalization.
type RecordError struct {
	Kind  RecordKind `json:"kind"`
	Index int        `json:"index"`
	ID    string     `json:"id,omitempty"`
	Err   error      `json:"-"`
}

func (e RecordError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("%s %s: %v", e.Kind, e.ID, e.Err)
	}
	return fmt.Sprintf("%s #%d: %v", e.Kind, e.Index, e.Err)
}

func (e RecordError) Unwrap() error { return e.Err }

// MarshalJSON adds the failure message to the encoded record reference.
func (e RecordError) MarshalJSON() ([]byte, error) {
	type plain RecordError
	msg := ""
	if e.Err != nil {
		msg = e.Err.Error()
	}
	return json.Marshal(struct {
		plain
		Message string `json:"message"`
	}{plain(e), msg})
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("iso4217", func(fl validator.FieldLevel) bool {
		return IsCurrency(fl.Field().String())
	})
	_ = v.RegisterValidation("frequency", func(fl validator.FieldLevel) bool {
		return Frequency(fl.Field().String()).Valid()
	})
	_ = v.RegisterValidation("risk_tolerance", func(fl validator.FieldLevel) bool {
		return RiskTolerance(fl.Field().String()).Valid()
	})
	_ = v.RegisterValidation("goal_priority", func(fl validator.FieldLevel) bool {
		return GoalPriority(fl.Field().String()).Valid()
	})
	return v
}

// Valid reports whether f is a known frequency.
func (f Frequency) Valid() bool {
	switch f {
	case FrequencyOneTime, FrequencyMonthly, FrequencyQuarterly, FrequencyYearly:
		return true
	}
	return false
}

// Valid reports whether r is a known risk tolerance.
func (r RiskTolerance) Valid() bool {
	switch r {
	case RiskToleranceLow, RiskToleranceMedium, RiskToleranceHigh:
		return true
	}
	return false
}

// Valid reports whether p is a known goal priority.
func (p GoalPriority) Valid() bool {
	switch p {
	case GoalPriorityHigh, GoalPriorityMedium, GoalPriorityLow:
		return true
	}
	return false
}

// Normalize validates raw records and builds the snapshot every other engine
// operation consumes. An invalid profile fails the call; an invalid income,
// expense or goal record is dropped and reported in the returned RecordErrors
// so one bad row never sinks the batch.
func Normalize(records Records, asOf time.Time) (Snapshot, []RecordError, error) {
	asOf = civil(asOf)

	profile, err := NormalizeProfile(records.Profile)
	if err != nil {
		return Snapshot{}, nil, err
	}

	snap := Snapshot{
		Profile:  profile,
		Income:   make([]IncomeEvent, 0, len(records.Income)),
		Fixed:    make([]FixedExpense, 0, len(records.Fixed)),
		Variable: make([]VariableExpense, 0, len(records.Variable)),
		Goals:    make([]SavingsGoal, 0, len(records.Goals)),
		AsOf:     asOf,
	}
	var rejected []RecordError

	for i, raw := range records.Income {
		e, err := NormalizeIncomeEvent(raw)
		if err != nil {
			rejected = append(rejected, RecordError{Kind: KindIncome, Index: i, ID: raw.ID, Err: err})
			continue
		}
		snap.Income = append(snap.Income, e)
	}
	for i, raw := range records.Fixed {
		e, err := NormalizeFixedExpense(raw)
		if err != nil {
			rejected = append(rejected, RecordError{Kind: KindFixed, Index: i, ID: raw.ID, Err: err})
			continue
		}
		snap.Fixed = append(snap.Fixed, e)
	}
	for i, raw := range records.Variable {
		e, err := NormalizeVariableExpense(raw)
		if err != nil {
			rejected = append(rejected, RecordError{Kind: KindVariable, Index: i, ID: raw.ID, Err: err})
			continue
		}
		snap.Variable = append(snap.Variable, e)
	}
	for i, raw := range records.Goals {
		g, err := NormalizeSavingsGoal(raw, asOf)
		if err != nil {
			rejected = append(rejected, RecordError{Kind: KindGoal, Index: i, ID: raw.ID, Err: err})
			continue
		}
		snap.Goals = append(snap.Goals, g)
	}

	sort.SliceStable(snap.Income, func(i, j int) bool {
		a, b := snap.Income[i], snap.Income[j]
		if !a.Date.Equal(b.Date) {
			return a.Date.Before(b.Date)
		}
		return a.ID < b.ID
	})
	sort.SliceStable(snap.Fixed, func(i, j int) bool {
		a, b := snap.Fixed[i], snap.Fixed[j]
		if a.DueDay != b.DueDay {
			return a.DueDay < b.DueDay
		}
		return a.ID < b.ID
	})
	sort.SliceStable(snap.Variable, func(i, j int) bool {
		a, b := snap.Variable[i], snap.Variable[j]
		if !a.Date.Equal(b.Date) {
			return a.Date.Before(b.Date)
		}
		return a.ID < b.ID
	})
	sort.SliceStable(snap.Goals, func(i, j int) bool {
		a, b := snap.Goals[i], snap.Goals[j]
		if !a.TargetDate.Equal(b.TargetDate) {
			return a.TargetDate.Before(b.TargetDate)
		}
		return a.ID < b.ID
	})

	if !records.HistoryStart.IsZero() {
		snap.HistoryStart = civil(records.HistoryStart)
	}
	if len(snap.Variable) > 0 {
		if first := civil(snap.Variable[0].Date); snap.HistoryStart.IsZero() || first.Before(snap.HistoryStart) {
			snap.HistoryStart = first
		}
	}

	return snap, rejected, nil
}

// NormalizeProfile coerces and validates a financial profile.
func NormalizeProfile(p FinancialProfile) (FinancialProfile, error) {
	p.Currency = strings.ToUpper(strings.TrimSpace(p.Currency))
	p.RiskTolerance = RiskTolerance(strings.ToLower(strings.TrimSpace(string(p.RiskTolerance))))
	if p.RiskTolerance == "" {
		p.RiskTolerance = RiskToleranceMedium
	}
	if err := check(p); err != nil {
		return FinancialProfile{}, err
	}
	return p, nil
}

// NormalizeIncomeEvent coerces and validates an income event.
func NormalizeIncomeEvent(e IncomeEvent) (IncomeEvent, error) {
	e.Source = strings.TrimSpace(e.Source)
	e.Frequency = ParseFrequency(string(e.Frequency))
	if err := check(e); err != nil {
		return IncomeEvent{}, err
	}
	e.Date = civil(e.Date)
	return e, nil
}

// NormalizeFixedExpense coerces and validates a fixed expense.
func NormalizeFixedExpense(e FixedExpense) (FixedExpense, error) {
	e.Name = strings.TrimSpace(e.Name)
	e.Category = NormalizeCategory(string(e.Category))
	if err := check(e); err != nil {
		return FixedExpense{}, err
	}
	return e, nil
}

// NormalizeVariableExpense coerces and validates a variable expense.
func NormalizeVariableExpense(e VariableExpense) (VariableExpense, error) {
	e.Category = NormalizeCategory(string(e.Category))
	e.Description = strings.TrimSpace(e.Description)
	if err := check(e); err != nil {
		return VariableExpense{}, err
	}
	e.Date = civil(e.Date)
	return e, nil
}

// NormalizeSavingsGoal coerces and validates a savings goal. The target date
// must not precede the goal's creation; when CreatedAt is unknown, asOf stands in.
func NormalizeSavingsGoal(g SavingsGoal, asOf time.Time) (SavingsGoal, error) {
	g.Name = strings.TrimSpace(g.Name)
	g.Priority = GoalPriority(strings.ToLower(strings.TrimSpace(string(g.Priority))))
	if g.Priority == "" {
		g.Priority = GoalPriorityMedium
	}
	if err := check(g); err != nil {
		return SavingsGoal{}, err
	}

	created := asOf
	if !g.CreatedAt.IsZero() {
		created = g.CreatedAt
	}
	g.TargetDate = civil(g.TargetDate)
	if g.TargetDate.Before(civil(created)) {
		return SavingsGoal{}, apperrors.WithMessage(apperrors.ErrValidation,
			"target_date must not be before the goal was created")
	}
	return g, nil
}

// ParseFrequency maps common spellings onto a Frequency. Unknown input is
// returned unchanged so validation can reject it.
func ParseFrequency(raw string) Frequency {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "one-time", "one_time", "onetime", "once":
		return FrequencyOneTime
	case "monthly", "month":
		return FrequencyMonthly
	case "quarterly", "quarter":
		return FrequencyQuarterly
	case "yearly", "annual", "annually":
		return FrequencyYearly
	}
	return Frequency(raw)
}

// check runs struct validation and converts failures into a ValidationError.
func check(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return apperrors.Wrap(apperrors.ErrValidation, err)
	}
	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msgs = append(msgs, describe(fe))
	}
	return apperrors.WithMessage(apperrors.ErrValidation, strings.Join(msgs, "; "))
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", fe.Field(), fe.Param())
	case "gte":
		return fmt.Sprintf("%s must not be negative", fe.Field())
	case "min", "max":
		return fmt.Sprintf("%s must be between 1 and 31", fe.Field())
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	default:
		return fmt.Sprintf("%s is not a valid %s", fe.Field(), fe.Tag())
	}
}

// civil strips the time of day, keeping the calendar date as written.
func civil(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
