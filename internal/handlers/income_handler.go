package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"finsight/internal/engine"
	apperrors "finsight/internal/errors"
	"finsight/internal/pagination"
	"finsight/internal/services"
)

// IncomeHandler handles income event requests.
type IncomeHandler struct {
	incomeService services.IncomeServicer
	auditService  services.AuditServicer
}

// NewIncomeHandler creates a new IncomeHandler.
func NewIncomeHandler(incomeService services.IncomeServicer, auditService services.AuditServicer) *IncomeHandler {
	return &IncomeHandler{incomeService: incomeService, auditService: auditService}
}

// CreateIncomeEventRequest represents the request payload for creating an income event.
type CreateIncomeEventRequest struct {
	Amount    int64     `json:"amount" binding:"required,gt=0"`
	Source    string    `json:"source" binding:"max=100"`
	Frequency string    `json:"frequency" binding:"required,frequency"`
	Date      time.Time `json:"date" binding:"required"`
}

// CreateIncomeEvent handles the creation of a new income event.
// @Summary     Create an income event
// @Description Record a one-off or recurring income
// @Tags        income
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateIncomeEventRequest true "Income details"
// @Success     201 {object} models.IncomeEvent "Income event created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     422 {object} ErrorResponse "Validation failed"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /income [post]
func (h *IncomeHandler) CreateIncomeEvent(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateIncomeEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	event, err := h.incomeService.CreateIncomeEvent(userID, req.Amount, req.Source, engine.Frequency(req.Frequency), req.Date)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "CREATE_INCOME_EVENT", "income_event", event.ID, c.ClientIP(),
		map[string]interface{}{"amount": event.Amount, "frequency": event.Frequency})

	c.JSON(http.StatusCreated, gin.H{"income_event": event})
}

// GetIncomeEvents handles listing income events for the authenticated user.
// @Summary     Get income events
// @Description Get a paginated list of income events
// @Tags        income
// @Produce     json
// @Security    BearerAuth
// @Param       page      query int false "Page number (default 1)"
// @Param       page_size query int false "Items per page (default 20, max 100)"
// @Success     200 {object} pagination.PageResponse[models.IncomeEvent] "Paginated income events"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /income [get]
func (h *IncomeHandler) GetIncomeEvents(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result, err := h.incomeService.GetUserIncomeEvents(userID, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetIncomeEvent handles retrieving a specific income event.
// @Summary     Get income event by ID
// @Tags        income
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Income event ID"
// @Success     200 {object} models.IncomeEvent "Income event details"
// @Failure     400 {object} ErrorResponse "Invalid income event ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Income event not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /income/{id} [get]
func (h *IncomeHandler) GetIncomeEvent(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	eventID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	event, err := h.incomeService.GetIncomeEventByID(userID, eventID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"income_event": event})
}

// DeleteIncomeEvent handles deleting an income event.
// @Summary     Delete income event
// @Tags        income
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Income event ID"
// @Success     200 {object} MessageResponse "Income event deleted"
// @Failure     400 {object} ErrorResponse "Invalid income event ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Income event not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /income/{id} [delete]
func (h *IncomeHandler) DeleteIncomeEvent(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	eventID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.incomeService.DeleteIncomeEvent(userID, eventID); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "DELETE_INCOME_EVENT", "income_event", eventID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"message": "Income event deleted successfully"})
}
