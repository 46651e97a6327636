package services

import (
	"time"

	"gorm.io/gorm"

	"finsight/internal/engine"
	apperrors "finsight/internal/errors"
	"finsight/internal/models"
)

// snapshotService assembles engine snapshots from stored records.
type snapshotService struct {
	db           *gorm.DB
	lookbackDays int
}

// NewSnapshotService creates a new SnapshotServicer. Variable expenses older
// than lookbackDays before the snapshot date are not loaded; only the date of
// the oldest one is, as the snapshot's history start.
func NewSnapshotService(db *gorm.DB, lookbackDays int) SnapshotServicer {
	if lookbackDays <= 0 {
		lookbackDays = engine.DefaultSmoothingWindowDays
	}
	return &snapshotService{db: db, lookbackDays: lookbackDays}
}

// LoadSnapshot reads the user's profile and records and normalizes them as of
// asOf. Records the engine rejects are returned alongside the snapshot.
func (s *snapshotService) LoadSnapshot(userID string, asOf time.Time) (*LoadedSnapshot, error) {
	profile, err := NewProfileService(s.db).GetProfile(userID)
	if err != nil {
		return nil, err
	}

	var income []models.IncomeEvent
	if err := s.db.Where("user_id = ?", userID).Find(&income).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var fixed []models.FixedExpense
	if err := s.db.Where("user_id = ?", userID).Find(&fixed).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	day := time.Date(asOf.Year(), asOf.Month(), asOf.Day(), 0, 0, 0, 0, time.UTC)
	since := day.AddDate(0, 0, -s.lookbackDays)
	var variable []models.VariableExpense
	if err := s.db.Where("user_id = ? AND date >= ?", userID, since).Find(&variable).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	// The oldest row before the lookback tells the engine the history covers
	// the whole smoothing window.
	var first models.VariableExpense
	if err := s.db.Where("user_id = ? AND date < ?", userID, since).
		Order("date ASC").Limit(1).Find(&first).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var goals []models.SavingsGoal
	if err := s.db.Where("user_id = ? AND status = ?", userID, models.GoalStatusActive).Find(&goals).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	records := engine.Records{
		Profile:  profile.ToEngine(),
		Income:   make([]engine.IncomeEvent, 0, len(income)),
		Fixed:    make([]engine.FixedExpense, 0, len(fixed)),
		Variable: make([]engine.VariableExpense, 0, len(variable)),
		Goals:    make([]engine.SavingsGoal, 0, len(goals)),
	}
	if first.ID != "" {
		records.HistoryStart = first.Date
	}
	for _, e := range income {
		records.Income = append(records.Income, e.ToEngine())
	}
	for _, e := range fixed {
		records.Fixed = append(records.Fixed, e.ToEngine())
	}
	for _, e := range variable {
		records.Variable = append(records.Variable, e.ToEngine())
	}
	for _, g := range goals {
		records.Goals = append(records.Goals, g.ToEngine())
	}

	snap, rejected, err := engine.Normalize(records, day)
	if err != nil {
		return nil, err
	}

	return &LoadedSnapshot{Snapshot: snap, Rejected: rejected}, nil
}
