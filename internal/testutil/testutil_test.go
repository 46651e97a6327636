package testutil_test

import (
	"testing"
	"time"

	"finsight/internal/engine"
	"finsight/internal/errors"
	"finsight/internal/testutil"
)

func TestSetupTestDB(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	// Verify all tables exist by doing a simple count query on each model.
	var count int64
	for _, table := range []string{"financial_profiles", "income_events", "fixed_expenses", "variable_expenses", "savings_goals", "audit_logs"} {
		if err := db.Table(table).Count(&count).Error; err != nil {
			t.Errorf("table %q should exist after migration: %v", table, err)
		}
	}
}

func TestFixtures(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	userID := testutil.NewUserID()

	profile := testutil.CreateTestProfile(t, db, userID, 5000)
	if profile.ID == "" {
		t.Fatal("profile should have an ID")
	}
	if profile.CurrentBalance != 5000 {
		t.Errorf("expected balance 5000, got %d", profile.CurrentBalance)
	}

	income := testutil.CreateTestIncomeEvent(t, db, userID, 1000, engine.FrequencyMonthly, testutil.Date(2025, time.May, 1))
	if income.Frequency != engine.FrequencyMonthly {
		t.Errorf("expected monthly, got %s", income.Frequency)
	}

	fixed := testutil.CreateTestFixedExpense(t, db, userID, 12000, 1)
	if !fixed.IsActive {
		t.Error("expected fixed expense to be active")
	}

	variable := testutil.CreateTestVariableExpense(t, db, userID, 350, engine.CategoryFood, testutil.Date(2025, time.May, 2))
	if variable.Amount != 350 {
		t.Errorf("expected amount 350, got %d", variable.Amount)
	}

	goal := testutil.CreateTestSavingsGoal(t, db, userID, 100000, 20000, 10000, testutil.Date(2026, time.May, 1))
	if goal.ToEngine().Remaining() != 80000 {
		t.Errorf("expected remaining 80000, got %d", goal.ToEngine().Remaining())
	}
}

func TestAssertAppError(t *testing.T) {
	err := errors.WithMessage(errors.ErrGoalNotFound, "custom message")
	testutil.AssertAppError(t, err, "GOAL_NOT_FOUND")
}

func TestAssertValidationError(t *testing.T) {
	err := errors.WithMessage(errors.ErrValidation, "amount must be greater than 0")
	testutil.AssertValidationError(t, err, "amount")
}

func TestAssertNoError(t *testing.T) {
	testutil.AssertNoError(t, nil)
}

func TestSetupTestDBIsolation(t *testing.T) {
	first := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, first)
	second := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, second)

	testutil.CreateTestProfile(t, first, testutil.NewUserID(), 1000)

	var count int64
	if err := second.Table("financial_profiles").Count(&count).Error; err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 0 {
		t.Errorf("expected an empty second database, got %d profiles", count)
	}
}
