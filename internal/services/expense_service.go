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

// expenseService handles fixed and variable expense persistence.
type expenseService struct {
	db *gorm.DB
}

// NewExpenseService creates a new ExpenseServicer.
func NewExpenseService(db *gorm.DB) ExpenseServicer {
	return &expenseService{db: db}
}

// CreateFixedExpense validates and stores a new active fixed expense.
func (s *expenseService) CreateFixedExpense(userID, name string, amount int64, category string, dueDay int) (*models.FixedExpense, error) {
	normalized, err := engine.NormalizeFixedExpense(engine.FixedExpense{
		Name:     name,
		Amount:   amount,
		Category: engine.Category(category),
		DueDay:   dueDay,
		IsActive: true,
	})
	if err != nil {
		return nil, err
	}
	if normalized.Name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrValidation, "name is required")
	}

	expense := &models.FixedExpense{
		UserID:   userID,
		Name:     normalized.Name,
		Amount:   normalized.Amount,
		Category: normalized.Category,
		DueDay:   normalized.DueDay,
		IsActive: true,
	}
	if err := s.db.Create(expense).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return expense, nil
}

// GetUserFixedExpenses retrieves a paginated list of fixed expenses ordered by due day.
func (s *expenseService) GetUserFixedExpenses(userID string, page pagination.PageRequest, activeOnly bool) (*pagination.PageResponse[models.FixedExpense], error) {
	page.Defaults()

	base := s.db.Model(&models.FixedExpense{}).Where("user_id = ?", userID)
	if activeOnly {
		base = base.Where("is_active = ?", true)
	}

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var expenses []models.FixedExpense
	if err := base.Order("due_day ASC, id ASC").Scopes(pagination.Paginate(page)).Find(&expenses).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(expenses, page.Page, page.PageSize, totalItems)
	return &result, nil
}

func (s *expenseService) getFixedExpense(userID, expenseID string) (*models.FixedExpense, error) {
	var expense models.FixedExpense
	if err := s.db.Where("id = ? AND user_id = ?", expenseID, userID).First(&expense).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrFixedExpenseNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &expense, nil
}

// SetFixedExpenseActive pauses or resumes a fixed expense. Inactive expenses
// stay on record but are ignored by projections.
func (s *expenseService) SetFixedExpenseActive(userID, expenseID string, active bool) (*models.FixedExpense, error) {
	expense, err := s.getFixedExpense(userID, expenseID)
	if err != nil {
		return nil, err
	}

	if err := s.db.Model(expense).Update("is_active", active).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	expense.IsActive = active

	return expense, nil
}

// DeleteFixedExpense soft-deletes a fixed expense.
func (s *expenseService) DeleteFixedExpense(userID, expenseID string) error {
	expense, err := s.getFixedExpense(userID, expenseID)
	if err != nil {
		return err
	}

	if err := s.db.Delete(expense).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// CreateVariableExpense validates and stores a spending transaction.
func (s *expenseService) CreateVariableExpense(userID string, amount int64, category string, date time.Time, description string) (*models.VariableExpense, error) {
	normalized, err := engine.NormalizeVariableExpense(engine.VariableExpense{
		Amount:      amount,
		Category:    engine.Category(category),
		Date:        date,
		Description: description,
	})
	if err != nil {
		return nil, err
	}

	expense := &models.VariableExpense{
		UserID:      userID,
		Amount:      normalized.Amount,
		Category:    normalized.Category,
		Date:        normalized.Date,
		Description: normalized.Description,
	}
	if err := s.db.Create(expense).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return expense, nil
}

// GetUserVariableExpenses retrieves a paginated, filtered list of variable
// expenses, newest first.
func (s *expenseService) GetUserVariableExpenses(userID string, page pagination.PageRequest, filter ExpenseFilter) (*pagination.PageResponse[models.VariableExpense], error) {
	page.Defaults()

	base := s.db.Model(&models.VariableExpense{}).Where("user_id = ?", userID)
	if filter.FromDate != nil {
		base = base.Where("date >= ?", *filter.FromDate)
	}
	if filter.ToDate != nil {
		base = base.Where("date <= ?", *filter.ToDate)
	}
	if filter.Category != nil {
		base = base.Where("category = ?", *filter.Category)
	}

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var expenses []models.VariableExpense
	if err := base.Order("date DESC, id DESC").Scopes(pagination.Paginate(page)).Find(&expenses).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(expenses, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// DeleteVariableExpense soft-deletes a variable expense.
func (s *expenseService) DeleteVariableExpense(userID, expenseID string) error {
	var expense models.VariableExpense
	if err := s.db.Where("id = ? AND user_id = ?", expenseID, userID).First(&expense).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrVariableExpenseNotFound
		}
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if err := s.db.Delete(&expense).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}
