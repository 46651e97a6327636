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

// ExpenseHandler handles fixed and variable expense requests.
type ExpenseHandler struct {
	expenseService services.ExpenseServicer
	auditService   services.AuditServicer
}

// NewExpenseHandler creates a new ExpenseHandler.
func NewExpenseHandler(expenseService services.ExpenseServicer, auditService services.AuditServicer) *ExpenseHandler {
	return &ExpenseHandler{expenseService: expenseService, auditService: auditService}
}

// CreateFixedExpenseRequest represents the request payload for creating a fixed expense.
type CreateFixedExpenseRequest struct {
	Name     string `json:"name" binding:"required,min=1,max=100"`
	Amount   int64  `json:"amount" binding:"required,gt=0"`
	Category string `json:"category" binding:"max=50"`
	DueDay   int    `json:"due_day" binding:"required,min=1,max=31"`
}

// SetActiveRequest represents the request payload for pausing or resuming a fixed expense.
type SetActiveRequest struct {
	IsActive *bool `json:"is_active" binding:"required"`
}

// CreateVariableExpenseRequest represents the request payload for recording a variable expense.
type CreateVariableExpenseRequest struct {
	Amount      int64     `json:"amount" binding:"required,gt=0"`
	Category    string    `json:"category" binding:"max=50"`
	Date        time.Time `json:"date" binding:"required"`
	Description string    `json:"description" binding:"max=255"`
}

// CreateFixedExpense handles the creation of a new fixed expense.
// @Summary     Create a fixed expense
// @Description Create a recurring monthly obligation
// @Tags        expenses
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateFixedExpenseRequest true "Fixed expense details"
// @Success     201 {object} models.FixedExpense "Fixed expense created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     422 {object} ErrorResponse "Validation failed"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /expenses/fixed [post]
func (h *ExpenseHandler) CreateFixedExpense(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateFixedExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	expense, err := h.expenseService.CreateFixedExpense(userID, req.Name, req.Amount, req.Category, req.DueDay)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "CREATE_FIXED_EXPENSE", "fixed_expense", expense.ID, c.ClientIP(),
		map[string]interface{}{"name": expense.Name, "amount": expense.Amount, "due_day": expense.DueDay})

	c.JSON(http.StatusCreated, gin.H{"fixed_expense": expense})
}

// GetFixedExpenses handles listing fixed expenses for the authenticated user.
// @Summary     Get fixed expenses
// @Description Get a paginated list of fixed expenses ordered by due day
// @Tags        expenses
// @Produce     json
// @Security    BearerAuth
// @Param       active_only query bool false "Only return active expenses"
// @Param       page        query int  false "Page number (default 1)"
// @Param       page_size   query int  false "Items per page (default 20, max 100)"
// @Success     200 {object} pagination.PageResponse[models.FixedExpense] "Paginated fixed expenses"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /expenses/fixed [get]
func (h *ExpenseHandler) GetFixedExpenses(c *gin.Context) {
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

	activeOnly := false
	switch c.Query("active_only") {
	case "", "false":
	case "true":
		activeOnly = true
	default:
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "active_only must be 'true' or 'false'"))
		return
	}

	result, err := h.expenseService.GetUserFixedExpenses(userID, page, activeOnly)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// SetFixedExpenseActive handles pausing or resuming a fixed expense.
// @Summary     Pause or resume a fixed expense
// @Tags        expenses
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path string           true "Fixed expense ID"
// @Param       request body SetActiveRequest true "Active flag"
// @Success     200 {object} models.FixedExpense "Updated fixed expense"
// @Failure     400 {object} ErrorResponse "Invalid input or expense ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Fixed expense not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /expenses/fixed/{id}/active [patch]
func (h *ExpenseHandler) SetFixedExpenseActive(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	expenseID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req SetActiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	expense, err := h.expenseService.SetFixedExpenseActive(userID, expenseID, *req.IsActive)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "UPDATE_FIXED_EXPENSE", "fixed_expense", expense.ID, c.ClientIP(),
		map[string]interface{}{"is_active": *req.IsActive})

	c.JSON(http.StatusOK, gin.H{"fixed_expense": expense})
}

// DeleteFixedExpense handles deleting a fixed expense.
// @Summary     Delete fixed expense
// @Tags        expenses
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Fixed expense ID"
// @Success     200 {object} MessageResponse "Fixed expense deleted"
// @Failure     400 {object} ErrorResponse "Invalid expense ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Fixed expense not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /expenses/fixed/{id} [delete]
func (h *ExpenseHandler) DeleteFixedExpense(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	expenseID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.expenseService.DeleteFixedExpense(userID, expenseID); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "DELETE_FIXED_EXPENSE", "fixed_expense", expenseID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"message": "Fixed expense deleted successfully"})
}

// CreateVariableExpense handles recording a variable expense.
// @Summary     Record a variable expense
// @Description Record a single spending transaction
// @Tags        expenses
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateVariableExpenseRequest true "Variable expense details"
// @Success     201 {object} models.VariableExpense "Variable expense recorded"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     422 {object} ErrorResponse "Validation failed"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /expenses/variable [post]
func (h *ExpenseHandler) CreateVariableExpense(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateVariableExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	expense, err := h.expenseService.CreateVariableExpense(userID, req.Amount, req.Category, req.Date, req.Description)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "CREATE_VARIABLE_EXPENSE", "variable_expense", expense.ID, c.ClientIP(),
		map[string]interface{}{"amount": expense.Amount, "category": expense.Category})

	c.JSON(http.StatusCreated, gin.H{"variable_expense": expense})
}

// GetVariableExpenses handles listing variable expenses for the authenticated user.
// @Summary     Get variable expenses
// @Description Get a paginated list of variable expenses, newest first
// @Tags        expenses
// @Produce     json
// @Security    BearerAuth
// @Param       from_date query string false "Filter by start date (RFC3339 e.g. 2024-01-01T00:00:00Z, or YYYY-MM-DD)"
// @Param       to_date   query string false "Filter by end date (RFC3339 e.g. 2024-01-31T23:59:59Z, or YYYY-MM-DD)"
// @Param       category  query string false "Filter by category"
// @Param       page      query int    false "Page number (default 1)"
// @Param       page_size query int    false "Items per page (default 20, max 100)"
// @Success     200 {object} pagination.PageResponse[models.VariableExpense] "Paginated variable expenses"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /expenses/variable [get]
func (h *ExpenseHandler) GetVariableExpenses(c *gin.Context) {
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

	filter, err := parseExpenseFilter(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	result, err := h.expenseService.GetUserVariableExpenses(userID, page, filter)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func parseExpenseFilter(c *gin.Context) (services.ExpenseFilter, error) {
	var filter services.ExpenseFilter

	if v := c.Query("from_date"); v != "" {
		t, err := parseFlexibleTime(v)
		if err != nil {
			return filter, apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid from_date format, use RFC3339 or YYYY-MM-DD")
		}
		filter.FromDate = &t
	}

	if v := c.Query("to_date"); v != "" {
		t, err := parseFlexibleTime(v)
		if err != nil {
			return filter, apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid to_date format, use RFC3339 or YYYY-MM-DD")
		}
		filter.ToDate = &t
	}

	if filter.FromDate != nil && filter.ToDate != nil && filter.ToDate.Before(*filter.FromDate) {
		return filter, apperrors.WithMessage(apperrors.ErrInvalidInput, "to_date must not be before from_date")
	}

	if v := c.Query("category"); v != "" {
		category := engine.NormalizeCategory(v)
		filter.Category = &category
	}

	return filter, nil
}

// DeleteVariableExpense handles deleting a variable expense.
// @Summary     Delete variable expense
// @Tags        expenses
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Variable expense ID"
// @Success     200 {object} MessageResponse "Variable expense deleted"
// @Failure     400 {object} ErrorResponse "Invalid expense ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Variable expense not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /expenses/variable/{id} [delete]
func (h *ExpenseHandler) DeleteVariableExpense(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	expenseID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.expenseService.DeleteVariableExpense(userID, expenseID); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "DELETE_VARIABLE_EXPENSE", "variable_expense", expenseID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"message": "Variable expense deleted successfully"})
}
