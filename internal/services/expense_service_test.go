package services

import (
	"testing"
	"time"

	"finsight/internal/engine"
	"finsight/internal/models"
	"finsight/internal/pagination"
	"finsight/internal/testutil"
)

func TestCreateFixedExpense(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewExpenseService(db)

		expense, err := svc.CreateFixedExpense(testutil.NewUserID(), "Rent", 120000, "Rent", 1)
		testutil.AssertNoError(t, err)

		if expense.Category != engine.CategoryHousing {
			t.Errorf("expected category housing, got %s", expense.Category)
		}
		if !expense.IsActive {
			t.Error("expected expense to be active")
		}
	})

	t.Run("unknown_category_becomes_other", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewExpenseService(db)

		expense, err := svc.CreateFixedExpense(testutil.NewUserID(), "Gym", 4000, "fitness club", 10)
		testutil.AssertNoError(t, err)

		if expense.Category != engine.CategoryOther {
			t.Errorf("expected category other, got %s", expense.Category)
		}
	})

	tests := []struct {
		name   string
		title  string
		amount int64
		dueDay int
	}{
		{"empty_name", "  ", 1000, 1},
		{"zero_amount", "Rent", 0, 1},
		{"due_day_zero", "Rent", 1000, 0},
		{"due_day_past_month_end", "Rent", 1000, 32},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := testutil.SetupTestDB(t)
			defer testutil.TeardownTestDB(t, db)
			svc := NewExpenseService(db)

			_, err := svc.CreateFixedExpense(testutil.NewUserID(), tt.title, tt.amount, "housing", tt.dueDay)
			testutil.AssertAppError(t, err, "VALIDATION_ERROR")
		})
	}
}

func TestGetUserFixedExpenses(t *testing.T) {
	t.Run("orders_by_due_day", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewExpenseService(db)
		userID := testutil.NewUserID()

		late := testutil.CreateTestFixedExpense(t, db, userID, 1000, 28)
		early := testutil.CreateTestFixedExpense(t, db, userID, 1000, 3)
		testutil.CreateTestFixedExpense(t, db, testutil.NewUserID(), 1000, 1)

		result, err := svc.GetUserFixedExpenses(userID, pagination.PageRequest{}, false)
		testutil.AssertNoError(t, err)

		if result.TotalItems != 2 {
			t.Fatalf("expected 2 expenses, got %d", result.TotalItems)
		}
		if result.Data[0].ID != early.ID || result.Data[1].ID != late.ID {
			t.Error("expected expenses ordered by due day")
		}
	})

	t.Run("active_only", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewExpenseService(db)
		userID := testutil.NewUserID()

		active := testutil.CreateTestFixedExpense(t, db, userID, 1000, 5)
		paused := testutil.CreateTestFixedExpense(t, db, userID, 1000, 6)
		db.Model(paused).Update("is_active", false)

		result, err := svc.GetUserFixedExpenses(userID, pagination.PageRequest{}, true)
		testutil.AssertNoError(t, err)

		if result.TotalItems != 1 {
			t.Fatalf("expected 1 active expense, got %d", result.TotalItems)
		}
		if result.Data[0].ID != active.ID {
			t.Errorf("expected active expense %s, got %s", active.ID, result.Data[0].ID)
		}
	})
}

func TestSetFixedExpenseActive(t *testing.T) {
	t.Run("pauses_and_resumes", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewExpenseService(db)
		userID := testutil.NewUserID()
		created := testutil.CreateTestFixedExpense(t, db, userID, 1000, 5)

		expense, err := svc.SetFixedExpenseActive(userID, created.ID, false)
		testutil.AssertNoError(t, err)
		if expense.IsActive {
			t.Error("expected expense to be paused")
		}

		var stored models.FixedExpense
		db.First(&stored, "id = ?", created.ID)
		if stored.IsActive {
			t.Error("expected paused state to be persisted")
		}

		expense, err = svc.SetFixedExpenseActive(userID, created.ID, true)
		testutil.AssertNoError(t, err)
		if !expense.IsActive {
			t.Error("expected expense to be active again")
		}
	})

	t.Run("other_user", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewExpenseService(db)
		created := testutil.CreateTestFixedExpense(t, db, testutil.NewUserID(), 1000, 5)

		_, err := svc.SetFixedExpenseActive(testutil.NewUserID(), created.ID, false)
		testutil.AssertAppError(t, err, "FIXED_EXPENSE_NOT_FOUND")
	})
}

func TestDeleteFixedExpense(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewExpenseService(db)
	userID := testutil.NewUserID()
	created := testutil.CreateTestFixedExpense(t, db, userID, 1000, 5)

	testutil.AssertNoError(t, svc.DeleteFixedExpense(userID, created.ID))

	err := svc.DeleteFixedExpense(userID, created.ID)
	testutil.AssertAppError(t, err, "FIXED_EXPENSE_NOT_FOUND")

	var count int64
	db.Unscoped().Model(&models.FixedExpense{}).Where("id = ?", created.ID).Count(&count)
	if count != 1 {
		t.Errorf("expected soft-deleted row to remain, got %d rows", count)
	}
}

func TestCreateVariableExpense(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewExpenseService(db)

		expense, err := svc.CreateVariableExpense(testutil.NewUserID(), 4550, "Groceries", testutil.Date(2026, time.April, 12), " weekly shop ")
		testutil.AssertNoError(t, err)

		if expense.Category != engine.CategoryFood {
			t.Errorf("expected category food, got %s", expense.Category)
		}
		if expense.Description != "weekly shop" {
			t.Errorf("expected trimmed description, got %q", expense.Description)
		}
	})

	t.Run("negative_amount", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewExpenseService(db)

		_, err := svc.CreateVariableExpense(testutil.NewUserID(), -10, "food", testutil.Date(2026, time.April, 12), "")
		testutil.AssertAppError(t, err, "VALIDATION_ERROR")
	})

	t.Run("missing_date", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewExpenseService(db)

		_, err := svc.CreateVariableExpense(testutil.NewUserID(), 10, "food", time.Time{}, "")
		testutil.AssertAppError(t, err, "VALIDATION_ERROR")
	})
}

func TestGetUserVariableExpenses(t *testing.T) {
	t.Run("newest_first", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewExpenseService(db)
		userID := testutil.NewUserID()

		older := testutil.CreateTestVariableExpense(t, db, userID, 1000, engine.CategoryFood, testutil.Date(2026, time.April, 1))
		newer := testutil.CreateTestVariableExpense(t, db, userID, 2000, engine.CategoryFood, testutil.Date(2026, time.April, 20))

		result, err := svc.GetUserVariableExpenses(userID, pagination.PageRequest{}, ExpenseFilter{})
		testutil.AssertNoError(t, err)

		if len(result.Data) != 2 {
			t.Fatalf("expected 2 expenses, got %d", len(result.Data))
		}
		if result.Data[0].ID != newer.ID || result.Data[1].ID != older.ID {
			t.Error("expected expenses ordered newest first")
		}
	})

	t.Run("filters_by_date_range_and_category", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewExpenseService(db)
		userID := testutil.NewUserID()

		testutil.CreateTestVariableExpense(t, db, userID, 1000, engine.CategoryFood, testutil.Date(2026, time.March, 31))
		match := testutil.CreateTestVariableExpense(t, db, userID, 1000, engine.CategoryFood, testutil.Date(2026, time.April, 1))
		testutil.CreateTestVariableExpense(t, db, userID, 1000, engine.CategoryShopping, testutil.Date(2026, time.April, 10))
		testutil.CreateTestVariableExpense(t, db, userID, 1000, engine.CategoryFood, testutil.Date(2026, time.May, 1))

		from := testutil.Date(2026, time.April, 1)
		to := testutil.Date(2026, time.April, 30)
		category := engine.CategoryFood
		result, err := svc.GetUserVariableExpenses(userID, pagination.PageRequest{}, ExpenseFilter{
			FromDate: &from,
			ToDate:   &to,
			Category: &category,
		})
		testutil.AssertNoError(t, err)

		if result.TotalItems != 1 {
			t.Fatalf("expected 1 matching expense, got %d", result.TotalItems)
		}
		if result.Data[0].ID != match.ID {
			t.Errorf("expected expense %s, got %s", match.ID, result.Data[0].ID)
		}
	})
}

func TestDeleteVariableExpense(t *testing.T) {
	t.Run("deletes", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewExpenseService(db)
		userID := testutil.NewUserID()
		created := testutil.CreateTestVariableExpense(t, db, userID, 1000, engine.CategoryFood, testutil.Date(2026, time.April, 1))

		testutil.AssertNoError(t, svc.DeleteVariableExpense(userID, created.ID))

		result, err := svc.GetUserVariableExpenses(userID, pagination.PageRequest{}, ExpenseFilter{})
		testutil.AssertNoError(t, err)
		if result.TotalItems != 0 {
			t.Errorf("expected no expenses after delete, got %d", result.TotalItems)
		}
	})

	t.Run("other_user", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewExpenseService(db)
		created := testutil.CreateTestVariableExpense(t, db, testutil.NewUserID(), 1000, engine.CategoryFood, testutil.Date(2026, time.April, 1))

		err := svc.DeleteVariableExpense(testutil.NewUserID(), created.ID)
		testutil.AssertAppError(t, err, "VARIABLE_EXPENSE_NOT_FOUND")
	})
}
