package services

import (
	"testing"

	"finsight/internal/engine"
	"finsight/internal/models"
	"finsight/internal/testutil"
)

func TestGetProfile(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewProfileService(db)
		userID := testutil.NewUserID()
		created := testutil.CreateTestProfile(t, db, userID, 250000)

		profile, err := svc.GetProfile(userID)
		testutil.AssertNoError(t, err)

		if profile.ID != created.ID {
			t.Errorf("expected profile ID %s, got %s", created.ID, profile.ID)
		}
		if profile.CurrentBalance != 250000 {
			t.Errorf("expected balance 250000, got %d", profile.CurrentBalance)
		}
	})

	t.Run("not_found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewProfileService(db)

		_, err := svc.GetProfile(testutil.NewUserID())
		testutil.AssertAppError(t, err, "PROFILE_NOT_FOUND")
	})

	t.Run("scoped_to_user", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewProfileService(db)
		testutil.CreateTestProfile(t, db, testutil.NewUserID(), 1000)

		_, err := svc.GetProfile(testutil.NewUserID())
		testutil.AssertAppError(t, err, "PROFILE_NOT_FOUND")
	})
}

func TestUpsertProfile(t *testing.T) {
	input := engine.FinancialProfile{
		CurrentBalance:          320000,
		MonthlyIncome:           450000,
		Currency:                " eur ",
		EmergencyBufferTarget:   900000,
		MinimumBalanceThreshold: 50000,
		MonthlySavingsFloor:     40000,
	}

	t.Run("creates_when_missing", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewProfileService(db)
		userID := testutil.NewUserID()

		profile, err := svc.UpsertProfile(userID, input)
		testutil.AssertNoError(t, err)

		if profile.ID == "" {
			t.Fatal("expected profile ID to be set")
		}
		if profile.Currency != "EUR" {
			t.Errorf("expected currency EUR, got %q", profile.Currency)
		}
		if profile.RiskTolerance != engine.RiskToleranceMedium {
			t.Errorf("expected default risk tolerance medium, got %s", profile.RiskTolerance)
		}
	})

	t.Run("replaces_existing", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewProfileService(db)
		userID := testutil.NewUserID()
		existing := testutil.CreateTestProfile(t, db, userID, 1000)

		update := input
		update.RiskTolerance = engine.RiskToleranceHigh
		profile, err := svc.UpsertProfile(userID, update)
		testutil.AssertNoError(t, err)

		if profile.ID != existing.ID {
			t.Errorf("expected same profile ID %s, got %s", existing.ID, profile.ID)
		}
		if profile.CurrentBalance != 320000 {
			t.Errorf("expected balance 320000, got %d", profile.CurrentBalance)
		}

		var count int64
		db.Model(&models.FinancialProfile{}).Where("user_id = ?", userID).Count(&count)
		if count != 1 {
			t.Errorf("expected 1 profile row, got %d", count)
		}
	})

	t.Run("invalid_currency", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewProfileService(db)

		bad := input
		bad.Currency = "XYZ"
		_, err := svc.UpsertProfile(testutil.NewUserID(), bad)
		testutil.AssertAppError(t, err, "VALIDATION_ERROR")
	})

	t.Run("negative_income", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewProfileService(db)

		bad := input
		bad.MonthlyIncome = -1
		_, err := svc.UpsertProfile(testutil.NewUserID(), bad)
		testutil.AssertAppError(t, err, "VALIDATION_ERROR")
	})
}
