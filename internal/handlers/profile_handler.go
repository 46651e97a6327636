package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"finsight/internal/engine"
	apperrors "finsight/internal/errors"
	"finsight/internal/services"
)

// ProfileHandler handles financial profile requests.
type ProfileHandler struct {
	profileService services.ProfileServicer
	auditService   services.AuditServicer
}

// NewProfileHandler creates a new ProfileHandler.
func NewProfileHandler(profileService services.ProfileServicer, auditService services.AuditServicer) *ProfileHandler {
	return &ProfileHandler{profileService: profileService, auditService: auditService}
}

// UpsertProfileRequest represents the request payload for creating or replacing a profile.
type UpsertProfileRequest struct {
	CurrentBalance          int64  `json:"current_balance"`
	MonthlyIncome           int64  `json:"monthly_income" binding:"gte=0"`
	Currency                string `json:"currency" binding:"required,iso4217"`
	EmergencyBufferTarget   int64  `json:"emergency_buffer_target" binding:"gte=0"`
	MinimumBalanceThreshold int64  `json:"minimum_balance_threshold"`
	MonthlySavingsFloor     int64  `json:"monthly_savings_floor" binding:"gte=0"`
	RiskTolerance           string `json:"risk_tolerance" binding:"omitempty,risk_tolerance"`
}

// GetProfile handles retrieving the authenticated user's profile.
// @Summary     Get profile
// @Description Get the financial profile of the authenticated user
// @Tags        profile
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} models.FinancialProfile "Profile details"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Profile not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /profile [get]
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	profile, err := h.profileService.GetProfile(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"profile": profile})
}

// UpsertProfile handles creating or replacing the authenticated user's profile.
// @Summary     Save profile
// @Description Create or replace the financial profile of the authenticated user
// @Tags        profile
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body UpsertProfileRequest true "Profile details"
// @Success     200 {object} models.FinancialProfile "Saved profile"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     422 {object} ErrorResponse "Validation failed"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /profile [put]
func (h *ProfileHandler) UpsertProfile(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpsertProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	profile, err := h.profileService.UpsertProfile(userID, engine.FinancialProfile{
		CurrentBalance:          req.CurrentBalance,
		MonthlyIncome:           req.MonthlyIncome,
		Currency:                req.Currency,
		EmergencyBufferTarget:   req.EmergencyBufferTarget,
		MinimumBalanceThreshold: req.MinimumBalanceThreshold,
		MonthlySavingsFloor:     req.MonthlySavingsFloor,
		RiskTolerance:           engine.RiskTolerance(req.RiskTolerance),
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "UPSERT_PROFILE", "financial_profile", profile.ID, c.ClientIP(),
		map[string]interface{}{"current_balance": profile.CurrentBalance, "currency": profile.Currency})

	c.JSON(http.StatusOK, gin.H{"profile": profile})
}
