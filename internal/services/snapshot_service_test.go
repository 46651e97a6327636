package services

import (
	"testing"
	"time"

	"finsight/internal/engine"
	"finsight/internal/models"
	"finsight/internal/testutil"
)

func TestLoadSnapshot(t *testing.T) {
	asOf := time.Date(2026, time.April, 30, 18, 45, 0, 0, time.UTC)

	t.Run("no_profile", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewSnapshotService(db, 30)

		_, err := svc.LoadSnapshot(testutil.NewUserID(), asOf)
		testutil.AssertAppError(t, err, "PROFILE_NOT_FOUND")
	})

	t.Run("assembles_user_records", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewSnapshotService(db, 30)
		userID := testutil.NewUserID()
		other := testutil.NewUserID()

		testutil.CreateTestProfile(t, db, userID, 300000)
		testutil.CreateTestIncomeEvent(t, db, userID, 500000, engine.FrequencyMonthly, testutil.Date(2026, time.January, 1))
		testutil.CreateTestIncomeEvent(t, db, other, 500000, engine.FrequencyMonthly, testutil.Date(2026, time.January, 1))
		testutil.CreateTestFixedExpense(t, db, userID, 120000, 1)
		testutil.CreateTestVariableExpense(t, db, userID, 2500, engine.CategoryFood, testutil.Date(2026, time.April, 20))
		testutil.CreateTestSavingsGoal(t, db, userID, 100000, 0, 10000, testutil.Date(2099, time.January, 1))

		loaded, err := svc.LoadSnapshot(userID, asOf)
		testutil.AssertNoError(t, err)

		snap := loaded.Snapshot
		if !snap.AsOf.Equal(testutil.Date(2026, time.April, 30)) {
			t.Errorf("expected as-of truncated to the day, got %s", snap.AsOf)
		}
		if snap.Profile.CurrentBalance != 300000 {
			t.Errorf("expected balance 300000, got %d", snap.Profile.CurrentBalance)
		}
		if len(snap.Income) != 1 || len(snap.Fixed) != 1 || len(snap.Variable) != 1 || len(snap.Goals) != 1 {
			t.Errorf("expected one record of each kind, got income=%d fixed=%d variable=%d goals=%d",
				len(snap.Income), len(snap.Fixed), len(snap.Variable), len(snap.Goals))
		}
		if len(loaded.Rejected) != 0 {
			t.Errorf("expected no rejected records, got %v", loaded.Rejected)
		}
	})

	t.Run("skips_history_outside_lookback", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewSnapshotService(db, 30)
		userID := testutil.NewUserID()

		testutil.CreateTestProfile(t, db, userID, 0)
		testutil.CreateTestVariableExpense(t, db, userID, 1000, engine.CategoryFood, testutil.Date(2026, time.February, 1))
		recent := testutil.CreateTestVariableExpense(t, db, userID, 1000, engine.CategoryFood, testutil.Date(2026, time.April, 1))
		future := testutil.CreateTestVariableExpense(t, db, userID, 1000, engine.CategoryFood, testutil.Date(2026, time.May, 3))

		loaded, err := svc.LoadSnapshot(userID, asOf)
		testutil.AssertNoError(t, err)

		got := loaded.Snapshot.Variable
		if len(got) != 2 {
			t.Fatalf("expected 2 variable expenses, got %d", len(got))
		}
		if got[0].ID != recent.ID || got[1].ID != future.ID {
			t.Error("expected recent and future expenses in date order")
		}
	})

	t.Run("history_before_lookback_keeps_full_window_average", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewSnapshotService(db, 30)
		userID := testutil.NewUserID()

		testutil.CreateTestProfile(t, db, userID, 300000)
		testutil.CreateTestVariableExpense(t, db, userID, 1000, engine.CategoryFood, testutil.Date(2026, time.January, 10))
		testutil.CreateTestVariableExpense(t, db, userID, 3000, engine.CategoryFood, testutil.Date(2026, time.April, 29))

		loaded, err := svc.LoadSnapshot(userID, asOf)
		testutil.AssertNoError(t, err)

		snap := loaded.Snapshot
		if !snap.HistoryStart.Equal(testutil.Date(2026, time.January, 10)) {
			t.Errorf("expected history start 2026-01-10, got %s", snap.HistoryStart)
		}
		if len(snap.Variable) != 1 {
			t.Fatalf("expected only the recent expense loaded, got %d", len(snap.Variable))
		}

		p, err := engine.Project(snap, 30)
		testutil.AssertNoError(t, err)
		if p.AverageDailySpend.IntPart() != 100 {
			t.Errorf("expected 3000 / 30 = 100 a day, got %s", p.AverageDailySpend)
		}
		if p.Points[1].VariableExpensesApplied != 100 {
			t.Errorf("expected 100 estimated on day 1, got %d", p.Points[1].VariableExpensesApplied)
		}
	})

	t.Run("short_history_starts_at_first_expense", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewSnapshotService(db, 30)
		userID := testutil.NewUserID()

		testutil.CreateTestProfile(t, db, userID, 0)
		testutil.CreateTestVariableExpense(t, db, userID, 1000, engine.CategoryFood, testutil.Date(2026, time.April, 21))

		loaded, err := svc.LoadSnapshot(userID, asOf)
		testutil.AssertNoError(t, err)

		if !loaded.Snapshot.HistoryStart.Equal(testutil.Date(2026, time.April, 21)) {
			t.Errorf("expected history start 2026-04-21, got %s", loaded.Snapshot.HistoryStart)
		}
	})

	t.Run("excludes_closed_goals", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewSnapshotService(db, 30)
		userID := testutil.NewUserID()

		testutil.CreateTestProfile(t, db, userID, 0)
		active := testutil.CreateTestSavingsGoal(t, db, userID, 1000, 0, 100, testutil.Date(2099, time.January, 1))
		done := testutil.CreateTestSavingsGoal(t, db, userID, 1000, 1000, 100, testutil.Date(2099, time.January, 1))
		db.Model(done).Update("status", models.GoalStatusCompleted)

		loaded, err := svc.LoadSnapshot(userID, asOf)
		testutil.AssertNoError(t, err)

		if len(loaded.Snapshot.Goals) != 1 || loaded.Snapshot.Goals[0].ID != active.ID {
			t.Errorf("expected only the active goal, got %v", loaded.Snapshot.Goals)
		}
	})

	t.Run("reports_invalid_rows", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewSnapshotService(db, 30)
		userID := testutil.NewUserID()

		testutil.CreateTestProfile(t, db, userID, 0)
		bad := testutil.CreateTestFixedExpense(t, db, userID, 1000, 5)
		db.Model(bad).Update("due_day", 40)

		loaded, err := svc.LoadSnapshot(userID, asOf)
		testutil.AssertNoError(t, err)

		if len(loaded.Snapshot.Fixed) != 0 {
			t.Errorf("expected invalid expense to be dropped, got %d", len(loaded.Snapshot.Fixed))
		}
		if len(loaded.Rejected) != 1 {
			t.Fatalf("expected 1 rejected record, got %d", len(loaded.Rejected))
		}
		if loaded.Rejected[0].Kind != engine.KindFixed || loaded.Rejected[0].ID != bad.ID {
			t.Errorf("unexpected rejection %v", loaded.Rejected[0])
		}
	})

	t.Run("invalid_profile", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewSnapshotService(db, 30)
		userID := testutil.NewUserID()

		profile := testutil.CreateTestProfile(t, db, userID, 0)
		db.Model(profile).Update("currency", "ZZZ")

		_, err := svc.LoadSnapshot(userID, asOf)
		testutil.AssertAppError(t, err, "VALIDATION_ERROR")
	})
}
