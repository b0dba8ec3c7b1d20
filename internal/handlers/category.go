package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/promptvault/promptvault-backend/internal/library"
	"github.com/promptvault/promptvault-backend/internal/logger"
	"github.com/promptvault/promptvault-backend/internal/requestdata"
	"github.com/promptvault/promptvault-backend/internal/services"
)

type CategoryHandler struct {
	log          *logger.Logger
	store        *library.Store
	auditService services.AuditService
}

func NewCategoryHandler(log *logger.Logger, store *library.Store, auditService services.AuditService) *CategoryHandler {
	return &CategoryHandler{
		log:          log.With("handler", "CategoryHandler"),
		store:        store,
		auditService: auditService,
	}
}

func (ch *CategoryHandler) Create(c *gin.Context) {
	var req struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.ID == "" || req.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id and name are required"})
		return
	}
	if err := ch.store.AddCategory(c.Request.Context(), library.Category{ID: req.ID, Name: req.Name}); err != nil {
		RespondError(c, http.StatusInternalServerError, "category_create_failed", err)
		return
	}
	ch.audit(c, "create", "categories", req.ID, req)
	RespondOK(c, ch.store.Snapshot())
}

func (ch *CategoryHandler) Update(c *gin.Context) {
	var req struct {
		Name string `json:"name"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name is required"})
		return
	}
	id := c.Param("id")
	if err := ch.store.UpdateCategory(c.Request.Context(), id, req.Name); err != nil {
		RespondError(c, http.StatusInternalServerError, "category_update_failed", err)
		return
	}
	ch.audit(c, "update", "categories", id, req)
	RespondOK(c, ch.store.Snapshot())
}

func (ch *CategoryHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	if err := ch.store.DeleteCategory(c.Request.Context(), id); err != nil {
		RespondError(c, http.StatusInternalServerError, "category_delete_failed", err)
		return
	}
	ch.audit(c, "delete", "categories", id, nil)
	RespondOK(c, ch.store.Snapshot())
}

func (ch *CategoryHandler) CreateSubcategory(c *gin.Context) {
	var req struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.ID == "" || req.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id and name are required"})
		return
	}
	parentID := c.Param("id")
	sub := library.Subcategory{ID: req.ID, Name: req.Name}
	if err := ch.store.AddSubcategory(c.Request.Context(), parentID, sub); err != nil {
		RespondError(c, http.StatusInternalServerError, "subcategory_create_failed", err)
		return
	}
	ch.audit(c, "create", "subcategories", req.ID, req)
	RespondOK(c, ch.store.Snapshot())
}

func (ch *CategoryHandler) UpdateSubcategory(c *gin.Context) {
	var req struct {
		Name string `json:"name"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name is required"})
		return
	}
	parentID := c.Param("id")
	subID := c.Param("subId")
	sub := library.Subcategory{ID: subID, Name: req.Name}
	if err := ch.store.UpdateSubcategory(c.Request.Context(), parentID, sub); err != nil {
		RespondError(c, http.StatusInternalServerError, "subcategory_update_failed", err)
		return
	}
	ch.audit(c, "update", "subcategories", subID, req)
	RespondOK(c, ch.store.Snapshot())
}

func (ch *CategoryHandler) DeleteSubcategory(c *gin.Context) {
	parentID := c.Param("id")
	subID := c.Param("subId")
	if err := ch.store.DeleteSubcategory(c.Request.Context(), parentID, subID); err != nil {
		RespondError(c, http.StatusInternalServerError, "subcategory_delete_failed", err)
		return
	}
	ch.audit(c, "delete", "subcategories", subID, nil)
	RespondOK(c, ch.store.Snapshot())
}

func (ch *CategoryHandler) audit(c *gin.Context, action, table, recordID string, newData interface{}) {
	var userID *uuid.UUID
	if rd := requestdata.GetRequestData(c.Request.Context()); rd != nil {
		userID = &rd.UserID
	}
	ch.auditService.Record(c.Request.Context(), services.AuditEntry{
		UserID:    userID,
		Action:    action,
		Table:     table,
		RecordID:  recordID,
		NewData:   newData,
		IPAddress: c.ClientIP(),
	})
}
