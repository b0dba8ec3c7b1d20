package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/promptvault/promptvault-backend/internal/logger"
	"github.com/promptvault/promptvault-backend/internal/repos"
	"github.com/promptvault/promptvault-backend/internal/services"
)

// AdminHandler serves the role, user, audit-log and analytics views of the
// admin panel.
type AdminHandler struct {
	log              *logger.Logger
	rbacService      services.RBACService
	auditService     services.AuditService
	analyticsService services.AnalyticsService
}

func NewAdminHandler(log *logger.Logger, rbacService services.RBACService, auditService services.AuditService, analyticsService services.AnalyticsService) *AdminHandler {
	return &AdminHandler{
		log:              log.With("handler", "AdminHandler"),
		rbacService:      rbacService,
		auditService:     auditService,
		analyticsService: analyticsService,
	}
}

func (ah *AdminHandler) ListRoles(c *gin.Context) {
	roles, err := ah.rbacService.ListRoles(c.Request.Context())
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "roles_list_failed", err)
		return
	}
	RespondOK(c, gin.H{"roles": roles})
}

func (ah *AdminHandler) ListUsers(c *gin.Context) {
	users, err := ah.rbacService.ListUsersWithRoles(c.Request.Context())
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "users_list_failed", err)
		return
	}
	RespondOK(c, gin.H{"users": users})
}

func (ah *AdminHandler) AssignRole(c *gin.Context) {
	var req struct {
		UserID string `json:"user_id"`
		RoleID int    `json:"role_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user_id"})
		return
	}
	if err := ah.rbacService.AssignRole(c.Request.Context(), userID, req.RoleID); err != nil {
		RespondError(c, http.StatusInternalServerError, "role_assign_failed", err)
		return
	}
	RespondOK(c, gin.H{"message": "role assigned"})
}

func (ah *AdminHandler) RemoveRole(c *gin.Context) {
	var req struct {
		UserID string `json:"user_id"`
		RoleID int    `json:"role_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user_id"})
		return
	}
	if err := ah.rbacService.RemoveRole(c.Request.Context(), userID, req.RoleID); err != nil {
		RespondError(c, http.StatusInternalServerError, "role_remove_failed", err)
		return
	}
	RespondOK(c, gin.H{"message": "role removed"})
}

// ListAuditLogs filters on table, record_id, user_id and limit query params.
func (ah *AdminHandler) ListAuditLogs(c *gin.Context) {
	filter := repos.AuditLogFilter{
		Table:    c.Query("table"),
		RecordID: c.Query("record_id"),
	}
	if raw := c.Query("user_id"); raw != "" {
		userID, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user_id"})
			return
		}
		filter.UserID = &userID
	}
	if raw := c.Query("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit"})
			return
		}
		filter.Limit = limit
	}
	entries, err := ah.auditService.Query(c.Request.Context(), filter)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "audit_query_failed", err)
		return
	}
	RespondOK(c, gin.H{"audit_logs": entries})
}

// GetAnalytics returns usage events. With a prompt_id query param it narrows
// to that prompt and includes per-action counts; without one it returns the
// most recent events across all prompts.
func (ah *AdminHandler) GetAnalytics(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit"})
			return
		}
		limit = parsed
	}

	if promptID := c.Query("prompt_id"); promptID != "" {
		activity, err := ah.analyticsService.PromptActivity(c.Request.Context(), promptID, limit)
		if err != nil {
			RespondError(c, http.StatusInternalServerError, "analytics_query_failed", err)
			return
		}
		RespondOK(c, gin.H{"activity": activity})
		return
	}

	events, err := ah.analyticsService.RecentEvents(c.Request.Context(), limit)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "analytics_query_failed", err)
		return
	}
	RespondOK(c, gin.H{"events": events})
}
