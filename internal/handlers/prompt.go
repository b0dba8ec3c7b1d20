package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/promptvault/promptvault-backend/internal/library"
	"github.com/promptvault/promptvault-backend/internal/logger"
	"github.com/promptvault/promptvault-backend/internal/repos"
	"github.com/promptvault/promptvault-backend/internal/requestdata"
	"github.com/promptvault/promptvault-backend/internal/services"
)

type PromptHandler struct {
	log          *logger.Logger
	store        *library.Store
	promptRepo   repos.PromptRepo
	auditService services.AuditService
}

func NewPromptHandler(log *logger.Logger, store *library.Store, promptRepo repos.PromptRepo, auditService services.AuditService) *PromptHandler {
	return &PromptHandler{
		log:          log.With("handler", "PromptHandler"),
		store:        store,
		promptRepo:   promptRepo,
		auditService: auditService,
	}
}

func (ph *PromptHandler) Create(c *gin.Context) {
	var req library.Prompt
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if req.ID == "" || req.Title == "" || req.Content == "" || req.CategoryID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id, title, content and category_id are required"})
		return
	}
	if err := ph.store.AddPrompt(c.Request.Context(), req); err != nil {
		RespondError(c, http.StatusInternalServerError, "prompt_create_failed", err)
		return
	}
	ph.audit(c, "create", req.ID, nil, req)
	RespondOK(c, ph.store.Snapshot())
}

func (ph *PromptHandler) Update(c *gin.Context) {
	var req library.Prompt
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	req.ID = c.Param("id")
	if err := ph.store.UpdatePrompt(c.Request.Context(), req); err != nil {
		RespondError(c, http.StatusInternalServerError, "prompt_update_failed", err)
		return
	}
	ph.audit(c, "update", req.ID, nil, req)
	RespondOK(c, ph.store.Snapshot())
}

func (ph *PromptHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	if err := ph.store.DeletePrompt(c.Request.Context(), id); err != nil {
		RespondError(c, http.StatusInternalServerError, "prompt_delete_failed", err)
		return
	}
	ph.audit(c, "delete", id, nil, nil)
	RespondOK(c, ph.store.Snapshot())
}

// Approve flips a draft to approved, stamping the approving admin, then
// re-hydrates the store so the in-memory copy carries the new status.
func (ph *PromptHandler) Approve(c *gin.Context) {
	id := c.Param("id")
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil {
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
		return
	}
	if err := ph.promptRepo.Approve(c.Request.Context(), nil, id, rd.UserID); err != nil {
		RespondError(c, http.StatusInternalServerError, "prompt_approve_failed", err)
		return
	}
	if err := ph.store.FetchData(c.Request.Context()); err != nil {
		ph.log.Warn("Store refresh after approval failed", "prompt_id", id, "error", err)
	}
	ph.audit(c, "approve", id, nil, gin.H{"status": "approved"})
	RespondOK(c, gin.H{"message": "prompt approved"})
}

// TrackEvent records a usage action ("copy", "view", ...) against a prompt.
// Anonymous callers are recorded without a user id.
func (ph *PromptHandler) TrackEvent(c *gin.Context) {
	var req struct {
		Action string `json:"action"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Action == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "action is required"})
		return
	}
	var userID *uuid.UUID
	if rd := requestdata.GetRequestData(c.Request.Context()); rd != nil {
		userID = &rd.UserID
	}
	ph.store.TrackAction(c.Request.Context(), c.Param("id"), req.Action, userID)
	RespondOK(c, gin.H{"message": "recorded"})
}

func (ph *PromptHandler) audit(c *gin.Context, action, recordID string, oldData, newData interface{}) {
	var userID *uuid.UUID
	if rd := requestdata.GetRequestData(c.Request.Context()); rd != nil {
		userID = &rd.UserID
	}
	ph.auditService.Record(c.Request.Context(), services.AuditEntry{
		UserID:    userID,
		Action:    action,
		Table:     "prompts",
		RecordID:  recordID,
		OldData:   oldData,
		NewData:   newData,
		IPAddress: c.ClientIP(),
	})
}
