package services

import (
	"errors"

	"gorm.io/gorm"

	"finsight/internal/engine"
	apperrors "finsight/internal/errors"
	"finsight/internal/models"
)

// profileService handles financial profile persistence.
type profileService struct {
	db *gorm.DB
}

// NewProfileService creates a new ProfileServicer.
func NewProfileService(db *gorm.DB) ProfileServicer {
	return &profileService{db: db}
}

// GetProfile retrieves the profile for a user
func (s *profileService) GetProfile(userID string) (*models.FinancialProfile, error) {
	var profile models.FinancialProfile
	if err := s.db.Where("user_id = ?", userID).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrProfileNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &profile, nil
}

// UpsertProfile validates input and creates or replaces the user's profile.
func (s *profileService) UpsertProfile(userID string, input engine.FinancialProfile) (*models.FinancialProfile, error) {
	normalized, err := engine.NormalizeProfile(input)
	if err != nil {
		return nil, err
	}

	var profile models.FinancialProfile
	err = s.db.Transaction(func(tx *gorm.DB) error {
		err := tx.Where("user_id = ?", userID).First(&profile).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			profile = models.FinancialProfile{UserID: userID}
		case err != nil:
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		profile.CurrentBalance = normalized.CurrentBalance
		profile.MonthlyIncome = normalized.MonthlyIncome
		profile.Currency = normalized.Currency
		profile.EmergencyBufferTarget = normalized.EmergencyBufferTarget
		profile.MinimumBalanceThreshold = normalized.MinimumBalanceThreshold
		profile.MonthlySavingsFloor = normalized.MonthlySavingsFloor
		profile.RiskTolerance = normalized.RiskTolerance

		if err := tx.Save(&profile).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &profile, nil
}
