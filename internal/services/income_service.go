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

// incomeService handles income event persistence.
type incomeService struct {
	db *gorm.DB
}

// NewIncomeService creates a new IncomeServicer.
func NewIncomeService(db *gorm.DB) IncomeServicer {
	return &incomeService{db: db}
}

// CreateIncomeEvent validates and stores a new income event.
func (s *incomeService) CreateIncomeEvent(userID string, amount int64, source string, frequency engine.Frequency, date time.Time) (*models.IncomeEvent, error) {
	normalized, err := engine.NormalizeIncomeEvent(engine.IncomeEvent{
		Amount:    amount,
		Source:    source,
		Frequency: frequency,
		Date:      date,
	})
	if err != nil {
		return nil, err
	}

	event := &models.IncomeEvent{
		UserID:    userID,
		Amount:    normalized.Amount,
		Source:    normalized.Source,
		Frequency: normalized.Frequency,
		Date:      normalized.Date,
	}
	if err := s.db.Create(event).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return event, nil
}

// GetUserIncomeEvents retrieves a paginated list of income events, oldest anchor first.
func (s *incomeService) GetUserIncomeEvents(userID string, page pagination.PageRequest) (*pagination.PageResponse[models.IncomeEvent], error) {
	page.Defaults()

	var totalItems int64
	base := s.db.Model(&models.IncomeEvent{}).Where("user_id = ?", userID)
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var events []models.IncomeEvent
	if err := base.Order("date ASC, id ASC").Scopes(pagination.Paginate(page)).Find(&events).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(events, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetIncomeEventByID retrieves an income event by ID for a specific user
func (s *incomeService) GetIncomeEventByID(userID, eventID string) (*models.IncomeEvent, error) {
	var event models.IncomeEvent
	if err := s.db.Where("id = ? AND user_id = ?", eventID, userID).First(&event).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrIncomeEventNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &event, nil
}

// DeleteIncomeEvent soft-deletes an income event.
func (s *incomeService) DeleteIncomeEvent(userID, eventID string) error {
	event, err := s.GetIncomeEventByID(userID, eventID)
	if err != nil {
		return err
	}

	if err := s.db.Delete(event).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}
