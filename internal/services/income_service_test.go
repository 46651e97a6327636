package services

import (
	"testing"
	"time"

	"finsight/internal/engine"
	"finsight/internal/pagination"
	"finsight/internal/testutil"
)

func TestCreateIncomeEvent(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewIncomeService(db)
		userID := testutil.NewUserID()

		payday := time.Date(2026, time.May, 1, 15, 30, 0, 0, time.UTC)
		event, err := svc.CreateIncomeEvent(userID, 500000, " Salary ", "Monthly", payday)
		testutil.AssertNoError(t, err)

		if event.ID == "" {
			t.Fatal("expected event ID to be set")
		}
		if event.Frequency != engine.FrequencyMonthly {
			t.Errorf("expected frequency monthly, got %s", event.Frequency)
		}
		if event.Source != "Salary" {
			t.Errorf("expected trimmed source, got %q", event.Source)
		}
		if !event.Date.Equal(testutil.Date(2026, time.May, 1)) {
			t.Errorf("expected date truncated to the day, got %s", event.Date)
		}
	})

	t.Run("zero_amount", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewIncomeService(db)

		_, err := svc.CreateIncomeEvent(testutil.NewUserID(), 0, "Salary", engine.FrequencyMonthly, testutil.Date(2026, time.May, 1))
		testutil.AssertAppError(t, err, "VALIDATION_ERROR")
	})

	t.Run("unknown_frequency", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewIncomeService(db)

		_, err := svc.CreateIncomeEvent(testutil.NewUserID(), 1000, "Salary", "weekly", testutil.Date(2026, time.May, 1))
		testutil.AssertValidationError(t, err, "frequency")
	})
}

func TestGetUserIncomeEvents(t *testing.T) {
	t.Run("returns_user_events_in_date_order", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewIncomeService(db)
		user1 := testutil.NewUserID()
		user2 := testutil.NewUserID()

		later := testutil.CreateTestIncomeEvent(t, db, user1, 1000, engine.FrequencyOneTime, testutil.Date(2026, time.June, 1))
		earlier := testutil.CreateTestIncomeEvent(t, db, user1, 2000, engine.FrequencyMonthly, testutil.Date(2026, time.January, 1))
		testutil.CreateTestIncomeEvent(t, db, user2, 3000, engine.FrequencyMonthly, testutil.Date(2026, time.January, 1))

		result, err := svc.GetUserIncomeEvents(user1, pagination.PageRequest{})
		testutil.AssertNoError(t, err)

		if result.TotalItems != 2 {
			t.Fatalf("expected 2 events, got %d", result.TotalItems)
		}
		if result.Data[0].ID != earlier.ID || result.Data[1].ID != later.ID {
			t.Errorf("expected events ordered by date")
		}
		if result.Page != 1 || result.PageSize != 20 {
			t.Errorf("expected default paging 1/20, got %d/%d", result.Page, result.PageSize)
		}
	})

	t.Run("paginates", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewIncomeService(db)
		userID := testutil.NewUserID()
		for i := 1; i <= 3; i++ {
			testutil.CreateTestIncomeEvent(t, db, userID, 1000, engine.FrequencyOneTime, testutil.Date(2026, time.March, i))
		}

		result, err := svc.GetUserIncomeEvents(userID, pagination.PageRequest{Page: 2, PageSize: 2})
		testutil.AssertNoError(t, err)

		if len(result.Data) != 1 {
			t.Errorf("expected 1 event on page 2, got %d", len(result.Data))
		}
		if result.TotalPages != 2 {
			t.Errorf("expected 2 pages, got %d", result.TotalPages)
		}
	})
}

func TestGetIncomeEventByID(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewIncomeService(db)
		userID := testutil.NewUserID()
		created := testutil.CreateTestIncomeEvent(t, db, userID, 1000, engine.FrequencyYearly, testutil.Date(2026, time.March, 1))

		event, err := svc.GetIncomeEventByID(userID, created.ID)
		testutil.AssertNoError(t, err)

		if event.Amount != 1000 {
			t.Errorf("expected amount 1000, got %d", event.Amount)
		}
	})

	t.Run("other_user", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewIncomeService(db)
		created := testutil.CreateTestIncomeEvent(t, db, testutil.NewUserID(), 1000, engine.FrequencyYearly, testutil.Date(2026, time.March, 1))

		_, err := svc.GetIncomeEventByID(testutil.NewUserID(), created.ID)
		testutil.AssertAppError(t, err, "INCOME_EVENT_NOT_FOUND")
	})
}

func TestDeleteIncomeEvent(t *testing.T) {
	t.Run("soft_deletes", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewIncomeService(db)
		userID := testutil.NewUserID()
		created := testutil.CreateTestIncomeEvent(t, db, userID, 1000, engine.FrequencyMonthly, testutil.Date(2026, time.March, 1))

		testutil.AssertNoError(t, svc.DeleteIncomeEvent(userID, created.ID))

		_, err := svc.GetIncomeEventByID(userID, created.ID)
		testutil.AssertAppError(t, err, "INCOME_EVENT_NOT_FOUND")
	})

	t.Run("not_found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewIncomeService(db)

		err := svc.DeleteIncomeEvent(testutil.NewUserID(), testutil.NewUserID())
		testutil.AssertAppError(t, err, "INCOME_EVENT_NOT_FOUND")
	})
}
