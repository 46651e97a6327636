package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"gorm.io/gorm"

	"finsight/internal/engine"
	"finsight/internal/models"
	"finsight/internal/uuid"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// NewUserID returns a fresh user ID. Users live in the identity provider, so
// there is no user row to create.
func NewUserID() string {
	return uuid.New()
}

// Date returns midnight UTC on the given day.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// CreateTestProfile creates a USD profile with the given balance (in cents).
func CreateTestProfile(t *testing.T, db *gorm.DB, userID string, balance int64) *models.FinancialProfile {
	t.Helper()

	profile := &models.FinancialProfile{
		UserID:         userID,
		CurrentBalance: balance,
		MonthlyIncome:  500000,
		Currency:       "USD",
		RiskTolerance:  engine.RiskToleranceMedium,
	}
	if err := db.Create(profile).Error; err != nil {
		t.Fatalf("failed to create test profile: %v", err)
	}
	return profile
}

// CreateTestIncomeEvent creates an income event anchored on date.
func CreateTestIncomeEvent(t *testing.T, db *gorm.DB, userID string, amount int64, freq engine.Frequency, date time.Time) *models.IncomeEvent {
	t.Helper()

	event := &models.IncomeEvent{
		UserID:    userID,
		Amount:    amount,
		Source:    fmt.Sprintf("Test Source %d", nextID()),
		Frequency: freq,
		Date:      date,
	}
	if err := db.Create(event).Error; err != nil {
		t.Fatalf("failed to create test income event: %v", err)
	}
	return event
}

// CreateTestFixedExpense creates an active housing expense due on dueDay.
func CreateTestFixedExpense(t *testing.T, db *gorm.DB, userID string, amount int64, dueDay int) *models.FixedExpense {
	t.Helper()

	expense := &models.FixedExpense{
		UserID:   userID,
		Name:     fmt.Sprintf("Test Expense %d", nextID()),
		Amount:   amount,
		Category: engine.CategoryHousing,
		DueDay:   dueDay,
		IsActive: true,
	}
	if err := db.Create(expense).Error; err != nil {
		t.Fatalf("failed to create test fixed expense: %v", err)
	}
	return expense
}

// CreateTestVariableExpense creates a variable expense on date.
func CreateTestVariableExpense(t *testing.T, db *gorm.DB, userID string, amount int64, category engine.Category, date time.Time) *models.VariableExpense {
	t.Helper()

	expense := &models.VariableExpense{
		UserID:      userID,
		Amount:      amount,
		Category:    category,
		Date:        date,
		Description: fmt.Sprintf("Test Purchase %d", nextID()),
	}
	if err := db.Create(expense).Error; err != nil {
		t.Fatalf("failed to create test variable expense: %v", err)
	}
	return expense
}

// CreateTestSavingsGoal creates an active goal.
func CreateTestSavingsGoal(t *testing.T, db *gorm.DB, userID string, target, current, contribution int64, targetDate time.Time) *models.SavingsGoal {
	t.Helper()

	goal := &models.SavingsGoal{
		UserID:              userID,
		Name:                fmt.Sprintf("Test Goal %d", nextID()),
		TargetAmount:        target,
		CurrentAmount:       current,
		MonthlyContribution: contribution,
		TargetDate:          targetDate,
		Priority:            engine.GoalPriorityMedium,
		Status:              models.GoalStatusActive,
	}
	if err := db.Create(goal).Error; err != nil {
		t.Fatalf("failed to create test savings goal: %v", err)
	}
	return goal
}
