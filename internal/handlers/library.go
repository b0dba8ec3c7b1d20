package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/promptvault/promptvault-backend/internal/library"
	"github.com/promptvault/promptvault-backend/internal/logger"
	"github.com/promptvault/promptvault-backend/internal/requestdata"
)

// LibraryHandler exposes the prompt-library store over HTTP. The cache is
// optional; without it selections simply do not survive across sessions.
type LibraryHandler struct {
	log   *logger.Logger
	store *library.Store
	cache library.SelectionCache
}

func NewLibraryHandler(log *logger.Logger, store *library.Store, cache library.SelectionCache) *LibraryHandler {
	return &LibraryHandler{
		log:   log.With("handler", "LibraryHandler"),
		store: store,
		cache: cache,
	}
}

func (lh *LibraryHandler) GetLibrary(c *gin.Context) {
	RespondOK(c, lh.store.Snapshot())
}

func (lh *LibraryHandler) GetSeeded(c *gin.Context) {
	seeded, err := lh.store.CheckIfSeeded(c.Request.Context())
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "seeded_check_failed", err)
		return
	}
	RespondOK(c, gin.H{"is_seeded": seeded})
}

// Refresh re-hydrates the store from the database and, for signed-in
// callers, restores their persisted selection against the fresh collection.
func (lh *LibraryHandler) Refresh(c *gin.Context) {
	if err := lh.store.FetchData(c.Request.Context()); err != nil {
		RespondError(c, http.StatusBadGateway, "fetch_failed", err)
		return
	}
	if owner := callerID(c); owner != "" && lh.cache != nil {
		sel, err := lh.cache.Load(c.Request.Context(), owner)
		if err != nil {
			lh.log.Warn("Loading persisted selection failed", "owner_id", owner, "error", err)
		} else if sel != nil {
			lh.store.RestoreSelection(*sel)
		}
	}
	RespondOK(c, lh.store.Snapshot())
}

func (lh *LibraryHandler) Search(c *gin.Context) {
	var req struct {
		Query string `json:"query"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	lh.store.SearchPrompts(req.Query)
	RespondOK(c, gin.H{"prompts": lh.store.VisiblePrompts()})
}

func (lh *LibraryHandler) GetVisiblePrompts(c *gin.Context) {
	RespondOK(c, gin.H{"prompts": lh.store.VisiblePrompts()})
}

func (lh *LibraryHandler) SelectCategory(c *gin.Context) {
	var req struct {
		CategoryID string `json:"category_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	lh.store.SetSelectedCategory(req.CategoryID)
	lh.persistSelection(c)
	RespondOK(c, lh.store.Snapshot())
}

func (lh *LibraryHandler) SelectPrompt(c *gin.Context) {
	var req struct {
		Prompt *library.Prompt `json:"prompt"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	lh.store.SetSelectedPrompt(req.Prompt)
	lh.persistSelection(c)
	RespondOK(c, lh.store.Snapshot())
}

func (lh *LibraryHandler) persistSelection(c *gin.Context) {
	owner := callerID(c)
	if owner == "" || lh.cache == nil {
		return
	}
	sel := lh.store.CurrentSelection()
	if err := lh.cache.Save(c.Request.Context(), owner, sel); err != nil {
		lh.log.Warn("Persisting selection failed", "owner_id", owner, "error", err)
	}
}

func callerID(c *gin.Context) string {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil {
		return ""
	}
	return rd.UserID.String()
}
