package services

import (
	"time"

	"finsight/internal/engine"
	"finsight/internal/models"
	"finsight/internal/pagination"
)

// ProfileServicer defines the contract for financial profile persistence.
type ProfileServicer interface {
	GetProfile(userID string) (*models.FinancialProfile, error)
	UpsertProfile(userID string, input engine.FinancialProfile) (*models.FinancialProfile, error)
}

// IncomeServicer defines the contract for income event persistence.
type IncomeServicer interface {
	CreateIncomeEvent(userID string, amount int64, source string, frequency engine.Frequency, date time.Time) (*models.IncomeEvent, error)
	GetUserIncomeEvents(userID string, page pagination.PageRequest) (*pagination.PageResponse[models.IncomeEvent], error)
	GetIncomeEventByID(userID, eventID string) (*models.IncomeEvent, error)
	DeleteIncomeEvent(userID, eventID string) error
}

// ExpenseFilter holds optional filter parameters for listing variable expenses.
type ExpenseFilter struct {
	FromDate *time.Time
	ToDate   *time.Time
	Category *engine.Category
}

// ExpenseServicer defines the contract for fixed and variable expense persistence.
type ExpenseServicer interface {
	CreateFixedExpense(userID, name string, amount int64, category string, dueDay int) (*models.FixedExpense, error)
	GetUserFixedExpenses(userID string, page pagination.PageRequest, activeOnly bool) (*pagination.PageResponse[models.FixedExpense], error)
	SetFixedExpenseActive(userID, expenseID string, active bool) (*models.FixedExpense, error)
	DeleteFixedExpense(userID, expenseID string) error

	CreateVariableExpense(userID string, amount int64, category string, date time.Time, description string) (*models.VariableExpense, error)
	GetUserVariableExpenses(userID string, page pagination.PageRequest, filter ExpenseFilter) (*pagination.PageResponse[models.VariableExpense], error)
	DeleteVariableExpense(userID, expenseID string) error
}

// GoalServicer defines the contract for savings goal persistence.
type GoalServicer interface {
	CreateGoal(userID, name string, target, current, contribution int64, targetDate time.Time, priority engine.GoalPriority) (*models.SavingsGoal, error)
	GetUserGoals(userID string, page pagination.PageRequest, status *models.GoalStatus) (*pagination.PageResponse[models.SavingsGoal], error)
	GetGoalByID(userID, goalID string) (*models.SavingsGoal, error)
	Contribute(userID, goalID string, amount int64) (*models.SavingsGoal, error)
	AbandonGoal(userID, goalID string) (*models.SavingsGoal, error)
}

// LoadedSnapshot is a normalized snapshot plus the stored records the engine rejected.
type LoadedSnapshot struct {
	Snapshot engine.Snapshot
	Rejected []engine.RecordError
}

// SnapshotServicer reads a user's records and normalizes them for the engine.
type SnapshotServicer interface {
	LoadSnapshot(userID string, asOf time.Time) (*LoadedSnapshot, error)
}

// WhatIfInput describes a hypothetical expense. GoalID optionally names the
// goal whose delay should be reported.
type WhatIfInput struct {
	Amount      int64
	Category    string
	TriggerDay  int
	HorizonDays int
	GoalID      string
}

// Dashboard bundles every forecast view computed from one snapshot.
type Dashboard struct {
	AsOf            time.Time               `json:"as_of"`
	Projection      engine.Projection       `json:"projection"`
	Risk            engine.RiskScore        `json:"risk"`
	Recommendations []engine.Recommendation `json:"recommendations"`
	Goals           []engine.GoalProgress   `json:"goals"`
	Rejected        []engine.RecordError    `json:"rejected_records,omitempty"`
}

// ForecastServicer runs the engine over a user's stored records. It never writes.
type ForecastServicer interface {
	GetProjection(userID string, horizonDays int) (*engine.Projection, error)
	GetRiskScore(userID string, horizonDays int) (*engine.RiskScore, error)
	SimulateWhatIf(userID string, input WhatIfInput) (*engine.SimulationResult, error)
	GetRecommendations(userID string, horizonDays int) ([]engine.Recommendation, error)
	GetGoalProgress(userID string) ([]engine.GoalProgress, error)
	GetDashboard(userID string, horizonDays int) (*Dashboard, error)
}

// AuditServicer defines the contract for audit logging. What-if simulations
// and other reads are never audited.
type AuditServicer interface {
	Log(userID, action, resourceType, resourceID, ipAddress string, changes map[string]interface{})
	GetUserAuditLogs(userID string, page pagination.PageRequest, resourceType string) (*pagination.PageResponse[models.AuditLog], error)
}
