package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/promptvault/promptvault-backend/internal/library"
	"github.com/promptvault/promptvault-backend/internal/logger"
	"github.com/promptvault/promptvault-backend/internal/services"
)

type SeedHandler struct {
	log         *logger.Logger
	seedService services.SeedService
	store       *library.Store
}

func NewSeedHandler(log *logger.Logger, seedService services.SeedService, store *library.Store) *SeedHandler {
	return &SeedHandler{
		log:         log.With("handler", "SeedHandler"),
		seedService: seedService,
		store:       store,
	}
}

func (sh *SeedHandler) Status(c *gin.Context) {
	status, err := sh.seedService.Status(c.Request.Context())
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "seed_status_failed", err)
		return
	}
	RespondOK(c, status)
}

// Seed populates the starter library and re-hydrates the store so the
// seeded content is immediately visible.
func (sh *SeedHandler) Seed(c *gin.Context) {
	var req struct {
		Force bool `json:"force"`
	}
	// Body is optional; an empty body means force=false.
	_ = c.ShouldBindJSON(&req)

	message, err := sh.seedService.Seed(c.Request.Context(), req.Force)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "seed_failed", err)
		return
	}
	if err := sh.store.FetchData(c.Request.Context()); err != nil {
		sh.log.Warn("Store refresh after seeding failed", "error", err)
	}
	RespondOK(c, gin.H{"success": true, "message": message})
}
