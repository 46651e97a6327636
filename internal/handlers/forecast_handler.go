package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "finsight/internal/errors"
	"finsight/internal/services"
)

// ForecastHandler serves projections, risk scores, what-if simulations,
// recommendations and goal progress. None of its endpoints write.
type ForecastHandler struct {
	forecastService services.ForecastServicer
}

// NewForecastHandler creates a new ForecastHandler.
func NewForecastHandler(forecastService services.ForecastServicer) *ForecastHandler {
	return &ForecastHandler{forecastService: forecastService}
}

// WhatIfRequest represents a hypothetical one-off expense.
type WhatIfRequest struct {
	Amount      int64  `json:"amount" binding:"required,gt=0"`
	Category    string `json:"category" binding:"max=50"`
	TriggerDay  int    `json:"trigger_day" binding:"gte=0"`
	HorizonDays int    `json:"horizon_days" binding:"gte=0"`
	GoalID      string `json:"goal_id" binding:"omitempty,uuid_id"`
}

// GetProjection handles the day-by-day balance projection.
// @Summary     Project balance
// @Description Simulate the balance day by day from today
// @Tags        forecast
// @Produce     json
// @Security    BearerAuth
// @Param       horizon query int false "Days to project (default from configuration, max 366)"
// @Success     200 {object} engine.Projection "Projection"
// @Failure     400 {object} ErrorResponse "Invalid horizon"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Profile not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /forecast/projection [get]
func (h *ForecastHandler) GetProjection(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	horizon, err := parseHorizon(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	projection, err := h.forecastService.GetProjection(userID, horizon)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"projection": projection})
}

// GetRiskScore handles the financial health score.
// @Summary     Score risk
// @Description Score financial health over the projection horizon (0-100, higher is healthier)
// @Tags        forecast
// @Produce     json
// @Security    BearerAuth
// @Param       horizon query int false "Days to project (default from configuration, max 366)"
// @Success     200 {object} engine.RiskScore "Risk score"
// @Failure     400 {object} ErrorResponse "Invalid horizon"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Profile not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /forecast/risk [get]
func (h *ForecastHandler) GetRiskScore(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	horizon, err := parseHorizon(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	score, err := h.forecastService.GetRiskScore(userID, horizon)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"risk": score})
}

// SimulateWhatIf handles a what-if simulation.
// @Summary     Simulate an expense
// @Description Overlay a hypothetical one-off expense on the projection. Nothing is saved.
// @Tags        forecast
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body WhatIfRequest true "Scenario"
// @Success     200 {object} engine.SimulationResult "Simulation result"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Profile or goal not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /forecast/what-if [post]
func (h *ForecastHandler) SimulateWhatIf(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req WhatIfRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result, err := h.forecastService.SimulateWhatIf(userID, services.WhatIfInput{
		Amount:      req.Amount,
		Category:    req.Category,
		TriggerDay:  req.TriggerDay,
		HorizonDays: req.HorizonDays,
		GoalID:      req.GoalID,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"simulation": result})
}

// GetRecommendations handles prioritized recommendations.
// @Summary     Get recommendations
// @Tags        forecast
// @Produce     json
// @Security    BearerAuth
// @Param       horizon query int false "Days to project (default from configuration, max 366)"
// @Success     200 {array}  engine.Recommendation "Recommendations"
// @Failure     400 {object} ErrorResponse "Invalid horizon"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Profile not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /forecast/recommendations [get]
func (h *ForecastHandler) GetRecommendations(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	horizon, err := parseHorizon(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	recs, err := h.forecastService.GetRecommendations(userID, horizon)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"recommendations": recs})
}

// GetGoalProgress handles goal progress analysis.
// @Summary     Get goal progress
// @Tags        forecast
// @Produce     json
// @Security    BearerAuth
// @Success     200 {array}  engine.GoalProgress "Goal progress"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Profile not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /forecast/goals [get]
func (h *ForecastHandler) GetGoalProgress(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	progress, err := h.forecastService.GetGoalProgress(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"goals": progress})
}

// GetDashboard handles the combined forecast view.
// @Summary     Get dashboard
// @Description Projection, risk score, recommendations and goal progress computed from one snapshot
// @Tags        forecast
// @Produce     json
// @Security    BearerAuth
// @Param       horizon query int false "Days to project (default from configuration, max 366)"
// @Success     200 {object} services.Dashboard "Dashboard"
// @Failure     400 {object} ErrorResponse "Invalid horizon"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Profile not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /forecast/dashboard [get]
func (h *ForecastHandler) GetDashboard(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	horizon, err := parseHorizon(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	dashboard, err := h.forecastService.GetDashboard(userID, horizon)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"dashboard": dashboard})
}
