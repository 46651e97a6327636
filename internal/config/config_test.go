package config

import "testing"

func TestLoad(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		t.Setenv("FORECAST_HORIZON_DAYS", "")
		t.Setenv("FORECAST_SMOOTHING_DAYS", "")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.ForecastHorizonDays != 90 || cfg.ForecastSmoothingDays != 30 {
			t.Errorf("expected 90/30 forecast defaults, got %d/%d", cfg.ForecastHorizonDays, cfg.ForecastSmoothingDays)
		}
	})

	t.Run("malformed_int_falls_back", func(t *testing.T) {
		t.Setenv("FORECAST_SMOOTHING_DAYS", "two weeks")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.ForecastSmoothingDays != 30 {
			t.Errorf("expected fallback 30, got %d", cfg.ForecastSmoothingDays)
		}
	})

	t.Run("horizon_beyond_a_year", func(t *testing.T) {
		t.Setenv("FORECAST_HORIZON_DAYS", "400")

		if _, err := Load(); err == nil {
			t.Fatal("expected error for horizon of 400 days")
		}
	})

	t.Run("production_requires_secret", func(t *testing.T) {
		t.Setenv("ENV", "production")
		t.Setenv("JWT_SECRET", "")

		if _, err := Load(); err == nil {
			t.Fatal("expected error without JWT_SECRET in production")
		}
	})
}
