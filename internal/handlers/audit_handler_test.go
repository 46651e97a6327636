package handlers

import (
	"errors"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	"finsight/internal/models"
	"finsight/internal/pagination"
)

func setupAuditRouter(handler *AuditHandler) *gin.Engine {
	r := gin.New()
	r.GET("/audit-logs-anon", handler.GetAuditLogs)
	auth := r.Group("", injectUserID(testUserID))
	auth.GET("/audit-logs", handler.GetAuditLogs)
	return r
}

func TestAuditHandler_GetAuditLogs(t *testing.T) {
	t.Run("passes filter and page through", func(t *testing.T) {
		var gotUser, gotType string
		var gotPage pagination.PageRequest
		svc := &mockAuditService{
			getUserAuditLogsFn: func(userID string, page pagination.PageRequest, resourceType string) (*pagination.PageResponse[models.AuditLog], error) {
				gotUser, gotPage, gotType = userID, page, resourceType
				resp := pagination.NewPageResponse([]models.AuditLog{
					{Base: models.Base{ID: testID}, UserID: userID, Action: "CREATE_GOAL", ResourceType: "savings_goal"},
				}, 2, 5, 6)
				return &resp, nil
			},
		}
		r := setupAuditRouter(NewAuditHandler(svc))

		rec := doRequest(r, "GET", "/audit-logs?resource_type=savings_goal&page=2&page_size=5", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if gotUser != testUserID || gotType != "savings_goal" {
			t.Errorf("unexpected arguments user=%q type=%q", gotUser, gotType)
		}
		if gotPage.Page != 2 || gotPage.PageSize != 5 {
			t.Errorf("unexpected page %+v", gotPage)
		}
		result := parseJSON(t, rec)
		if result["total_items"].(float64) != 6 {
			t.Errorf("expected 6 items, got %v", result["total_items"])
		}
		if len(result["data"].([]interface{})) != 1 {
			t.Errorf("expected one entry, got %v", result["data"])
		}
	})

	t.Run("rejects unknown resource type", func(t *testing.T) {
		r := setupAuditRouter(NewAuditHandler(&mockAuditService{}))

		rec := doRequest(r, "GET", "/audit-logs?resource_type=portfolio", "")

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INVALID_INPUT")
	})

	t.Run("rejects oversized page", func(t *testing.T) {
		r := setupAuditRouter(NewAuditHandler(&mockAuditService{}))

		rec := doRequest(r, "GET", "/audit-logs?page_size=500", "")

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("requires user", func(t *testing.T) {
		r := setupAuditRouter(NewAuditHandler(&mockAuditService{}))

		rec := doRequest(r, "GET", "/audit-logs-anon", "")

		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
	})

	t.Run("surfaces service failure", func(t *testing.T) {
		svc := &mockAuditService{
			getUserAuditLogsFn: func(string, pagination.PageRequest, string) (*pagination.PageResponse[models.AuditLog], error) {
				return nil, errors.New("connection reset")
			},
		}
		r := setupAuditRouter(NewAuditHandler(svc))

		rec := doRequest(r, "GET", "/audit-logs", "")

		if rec.Code != http.StatusInternalServerError {
			t.Fatalf("expected 500, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INTERNAL_ERROR")
	})
}
