package services

import (
	"time"

	"go.uber.org/zap"

	"finsight/internal/engine"
	apperrors "finsight/internal/errors"
	"finsight/internal/logger"
)

// ForecastOptions configures the forecast service.
type ForecastOptions struct {
	// DefaultHorizonDays applies when a caller passes a horizon of 0.
	DefaultHorizonDays  int
	SmoothingWindowDays int
}

// forecastService runs the engine over snapshots loaded from storage.
type forecastService struct {
	snapshots SnapshotServicer
	opts      ForecastOptions
	now       func() time.Time
	log       *zap.SugaredLogger
}

// NewForecastService creates a new ForecastServicer.
func NewForecastService(snapshots SnapshotServicer, opts ForecastOptions) ForecastServicer {
	return newForecastService(snapshots, opts, time.Now)
}

func newForecastService(snapshots SnapshotServicer, opts ForecastOptions, now func() time.Time) *forecastService {
	if opts.DefaultHorizonDays <= 0 {
		opts.DefaultHorizonDays = 90
	}
	if opts.SmoothingWindowDays <= 0 {
		opts.SmoothingWindowDays = engine.DefaultSmoothingWindowDays
	}
	return &forecastService{
		snapshots: snapshots,
		opts:      opts,
		now:       now,
		log:       logger.Named("forecast"),
	}
}

// load reads today's snapshot and logs any stored records the engine rejected.
func (s *forecastService) load(userID string) (*LoadedSnapshot, error) {
	start := time.Now()
	loaded, err := s.snapshots.LoadSnapshot(userID, s.now())
	if err != nil {
		return nil, err
	}
	s.log.Debugw("snapshot loaded",
		"user_id", userID,
		"income", len(loaded.Snapshot.Income),
		"fixed", len(loaded.Snapshot.Fixed),
		"variable", len(loaded.Snapshot.Variable),
		"goals", len(loaded.Snapshot.Goals),
		"duration", time.Since(start),
	)
	for _, rej := range loaded.Rejected {
		s.log.Warnw("record skipped", "user_id", userID, "kind", rej.Kind, "record_id", rej.ID, "error", rej.Err)
	}
	return loaded, nil
}

func (s *forecastService) horizon(days int) int {
	if days == 0 {
		return s.opts.DefaultHorizonDays
	}
	return days
}

func (s *forecastService) project(snap engine.Snapshot, horizonDays int) (engine.Projection, error) {
	start := time.Now()
	proj, err := engine.ProjectWith(snap, s.horizon(horizonDays), engine.ProjectOptions{
		SmoothingWindowDays: s.opts.SmoothingWindowDays,
	})
	if err != nil {
		return engine.Projection{}, err
	}
	s.log.Debugw("projection computed", "horizon_days", proj.HorizonDays, "duration", time.Since(start))
	return proj, nil
}

// GetProjection returns the day-by-day balance projection for the user.
func (s *forecastService) GetProjection(userID string, horizonDays int) (*engine.Projection, error) {
	loaded, err := s.load(userID)
	if err != nil {
		return nil, err
	}
	proj, err := s.project(loaded.Snapshot, horizonDays)
	if err != nil {
		return nil, err
	}
	return &proj, nil
}

// GetRiskScore scores the user's projection over the horizon.
func (s *forecastService) GetRiskScore(userID string, horizonDays int) (*engine.RiskScore, error) {
	loaded, err := s.load(userID)
	if err != nil {
		return nil, err
	}
	proj, err := s.project(loaded.Snapshot, horizonDays)
	if err != nil {
		return nil, err
	}
	score, err := engine.Score(loaded.Snapshot.Profile, proj)
	if err != nil {
		return nil, err
	}
	return &score, nil
}

// SimulateWhatIf overlays a hypothetical expense on the user's projection.
// Nothing is persisted.
func (s *forecastService) SimulateWhatIf(userID string, input WhatIfInput) (*engine.SimulationResult, error) {
	loaded, err := s.load(userID)
	if err != nil {
		return nil, err
	}

	var goal *engine.SavingsGoal
	if input.GoalID != "" {
		for i := range loaded.Snapshot.Goals {
			if loaded.Snapshot.Goals[i].ID == input.GoalID {
				goal = &loaded.Snapshot.Goals[i]
				break
			}
		}
		if goal == nil {
			return nil, apperrors.ErrGoalNotFound
		}
	}

	baseline, err := s.project(loaded.Snapshot, input.HorizonDays)
	if err != nil {
		return nil, err
	}

	result, err := engine.Simulate(loaded.Snapshot.Profile, baseline, engine.WhatIfScenario{
		Amount:      input.Amount,
		Category:    engine.NormalizeCategory(input.Category),
		TriggerDay:  input.TriggerDay,
		HorizonDays: baseline.HorizonDays,
	}, goal)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// GetRecommendations returns prioritized actions for the user.
func (s *forecastService) GetRecommendations(userID string, horizonDays int) ([]engine.Recommendation, error) {
	loaded, err := s.load(userID)
	if err != nil {
		return nil, err
	}
	proj, err := s.project(loaded.Snapshot, horizonDays)
	if err != nil {
		return nil, err
	}
	score, err := engine.Score(loaded.Snapshot.Profile, proj)
	if err != nil {
		return nil, err
	}
	return engine.Recommend(loaded.Snapshot, proj, score)
}

// GetGoalProgress analyzes every active goal as of today.
func (s *forecastService) GetGoalProgress(userID string) ([]engine.GoalProgress, error) {
	loaded, err := s.load(userID)
	if err != nil {
		return nil, err
	}
	return goalProgress(loaded.Snapshot), nil
}

// GetDashboard computes projection, risk, recommendations and goal progress
// from a single snapshot.
func (s *forecastService) GetDashboard(userID string, horizonDays int) (*Dashboard, error) {
	loaded, err := s.load(userID)
	if err != nil {
		return nil, err
	}
	snap := loaded.Snapshot

	proj, err := s.project(snap, horizonDays)
	if err != nil {
		return nil, err
	}
	start := time.Now()
	score, err := engine.Score(snap.Profile, proj)
	if err != nil {
		return nil, err
	}
	scored := time.Now()
	recs, err := engine.Recommend(snap, proj, score)
	if err != nil {
		return nil, err
	}
	s.log.Debugw("dashboard computed",
		"user_id", userID,
		"score", score.Score,
		"recommendations", len(recs),
		"score_duration", scored.Sub(start),
		"recommend_duration", time.Since(scored),
	)

	return &Dashboard{
		AsOf:            snap.AsOf,
		Projection:      proj,
		Risk:            score,
		Recommendations: recs,
		Goals:           goalProgress(snap),
		Rejected:        loaded.Rejected,
	}, nil
}

func goalProgress(snap engine.Snapshot) []engine.GoalProgress {
	progress := make([]engine.GoalProgress, 0, len(snap.Goals))
	for _, g := range snap.Goals {
		progress = append(progress, engine.AnalyzeGoal(g, snap.AsOf))
	}
	return progress
}
