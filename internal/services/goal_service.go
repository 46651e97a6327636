package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"finsight/internal/engine"
	apperrors "finsight/internal/errors"
	"finsight/internal/models"
	"finsight/internal/pagination"
)

// goalService handles savings goal persistence and lifecycle.
type goalService struct {
	db  *gorm.DB
	now func() time.Time
}

// NewGoalService creates a new GoalServicer.
func NewGoalService(db *gorm.DB) GoalServicer {
	return &goalService{db: db, now: time.Now}
}

// CreateGoal validates and stores a new active goal. The target date must not
// be in the past.
func (s *goalService) CreateGoal(userID, name string, target, current, contribution int64, targetDate time.Time, priority engine.GoalPriority) (*models.SavingsGoal, error) {
	normalized, err := engine.NormalizeSavingsGoal(engine.SavingsGoal{
		Name:                name,
		TargetAmount:        target,
		CurrentAmount:       current,
		MonthlyContribution: contribution,
		TargetDate:          targetDate,
		Priority:            priority,
	}, s.now())
	if err != nil {
		return nil, err
	}
	if normalized.Name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrValidation, "name is required")
	}

	goal := &models.SavingsGoal{
		UserID:              userID,
		Name:                normalized.Name,
		TargetAmount:        normalized.TargetAmount,
		CurrentAmount:       normalized.CurrentAmount,
		MonthlyContribution: normalized.MonthlyContribution,
		TargetDate:          normalized.TargetDate,
		Priority:            normalized.Priority,
		Status:              models.GoalStatusActive,
	}
	if err := s.db.Create(goal).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return goal, nil
}

// GetUserGoals retrieves a paginated list of goals ordered by target date,
// optionally filtered by status.
func (s *goalService) GetUserGoals(userID string, page pagination.PageRequest, status *models.GoalStatus) (*pagination.PageResponse[models.SavingsGoal], error) {
	page.Defaults()

	base := s.db.Model(&models.SavingsGoal{}).Where("user_id = ?", userID)
	if status != nil {
		base = base.Where("status = ?", *status)
	}

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var goals []models.SavingsGoal
	if err := base.Order("target_date ASC, id ASC").Scopes(pagination.Paginate(page)).Find(&goals).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(goals, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetGoalByID retrieves a goal by ID for a specific user
func (s *goalService) GetGoalByID(userID, goalID string) (*models.SavingsGoal, error) {
	var goal models.SavingsGoal
	if err := s.db.Where("id = ? AND user_id = ?", goalID, userID).First(&goal).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrGoalNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &goal, nil
}

// Contribute adds amount to the goal's saved balance and completes the goal
// once the target is reached. Closed goals reject contributions.
func (s *goalService) Contribute(userID, goalID string, amount int64) (*models.SavingsGoal, error) {
	if amount <= 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "contribution amount must be greater than 0")
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var goal models.SavingsGoal
		if err := tx.Where("id = ? AND user_id = ?", goalID, userID).First(&goal).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrGoalNotFound
			}
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if goal.IsClosed() {
			return apperrors.ErrGoalClosed
		}

		// Increment in SQL so concurrent contributions are not lost.
		res := tx.Model(&models.SavingsGoal{}).
			Where("id = ? AND status = ?", goal.ID, models.GoalStatusActive).
			Update("current_amount", gorm.Expr("current_amount + ?", amount))
		if res.Error != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, res.Error)
		}
		if res.RowsAffected == 0 {
			return apperrors.ErrGoalClosed
		}

		completedAt := s.now()
		if err := tx.Model(&models.SavingsGoal{}).
			Where("id = ? AND status = ? AND current_amount >= target_amount", goal.ID, models.GoalStatusActive).
			Updates(map[string]interface{}{
				"status":       models.GoalStatusCompleted,
				"completed_at": &completedAt,
			}).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.GetGoalByID(userID, goalID)
}

// AbandonGoal closes an active goal without completing it.
func (s *goalService) AbandonGoal(userID, goalID string) (*models.SavingsGoal, error) {
	goal, err := s.GetGoalByID(userID, goalID)
	if err != nil {
		return nil, err
	}
	if goal.IsClosed() {
		return nil, apperrors.ErrGoalClosed
	}

	if err := s.db.Model(goal).Update("status", models.GoalStatusAbandoned).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	goal.Status = models.GoalStatusAbandoned

	return goal, nil
}
