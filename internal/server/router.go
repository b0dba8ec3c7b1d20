package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/promptvault/promptvault-backend/internal/handlers"
	"github.com/promptvault/promptvault-backend/internal/middleware"
)

type RouterConfig struct {
	AuthHandler     *handlers.AuthHandler
	AuthMiddleware  *middleware.AuthMiddleware
	UserHandler     *handlers.UserHandler
	LibraryHandler  *handlers.LibraryHandler
	PromptHandler   *handlers.PromptHandler
	CategoryHandler *handlers.CategoryHandler
	AdminHandler    *handlers.AdminHandler
	SeedHandler     *handlers.SeedHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.Default()
	router.Use(otelgin.Middleware("promptvault-backend"))

	// Cors
	router.Use(cors.New(cors.Config{
		AllowOrigins: []string{
			"http://localhost:80",
			"http://localhost:3000",
			"http://localhost:5174",
		},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
	}))

	// ===============
	// || Public    ||
	// ===============
	router.GET("/healthcheck", handlers.HealthCheck)
	api := router.Group("/api")
	api.Use(cfg.AuthMiddleware.OptionalAuth())
	{
		api.POST("/register", cfg.AuthHandler.Register)
		api.POST("/login", cfg.AuthHandler.Login)
		api.POST("/refresh", cfg.AuthHandler.Refresh)

		// Library reads and selection
		api.GET("/library", cfg.LibraryHandler.GetLibrary)
		api.GET("/library/prompts", cfg.LibraryHandler.GetVisiblePrompts)
		api.GET("/library/seeded", cfg.LibraryHandler.GetSeeded)
		api.POST("/library/refresh", cfg.LibraryHandler.Refresh)
		api.POST("/library/search", cfg.LibraryHandler.Search)
		api.POST("/library/select/category", cfg.LibraryHandler.SelectCategory)
		api.POST("/library/select/prompt", cfg.LibraryHandler.SelectPrompt)

		// Analytics
		api.POST("/prompts/:id/events", cfg.PromptHandler.TrackEvent)
	}

	// ===============
	// || Protected ||
	// ===============
	protected := router.Group("/api")
	protected.Use(cfg.AuthMiddleware.RequireAuth())
	{
		protected.POST("/logout", cfg.AuthHandler.Logout)
		protected.GET("/user", cfg.UserHandler.GetMe)
	}

	// ===============
	// || Admin     ||
	// ===============
	admin := router.Group("/api/admin")
	admin.Use(cfg.AuthMiddleware.RequireAuth(), cfg.AuthMiddleware.RequireAdmin())
	{
		admin.POST("/categories", cfg.CategoryHandler.Create)
		admin.PUT("/categories/:id", cfg.CategoryHandler.Update)
		admin.DELETE("/categories/:id", cfg.CategoryHandler.Delete)
		admin.POST("/categories/:id/subcategories", cfg.CategoryHandler.CreateSubcategory)
		admin.PUT("/categories/:id/subcategories/:subId", cfg.CategoryHandler.UpdateSubcategory)
		admin.DELETE("/categories/:id/subcategories/:subId", cfg.CategoryHandler.DeleteSubcategory)

		admin.POST("/prompts", cfg.PromptHandler.Create)
		admin.PUT("/prompts/:id", cfg.PromptHandler.Update)
		admin.DELETE("/prompts/:id", cfg.PromptHandler.Delete)
		admin.POST("/prompts/:id/approve", cfg.PromptHandler.Approve)

		admin.GET("/roles", cfg.AdminHandler.ListRoles)
		admin.POST("/roles/assign", cfg.AdminHandler.AssignRole)
		admin.POST("/roles/remove", cfg.AdminHandler.RemoveRole)
		admin.GET("/users", cfg.AdminHandler.ListUsers)
		admin.GET("/audit-logs", cfg.AdminHandler.ListAuditLogs)
		admin.GET("/analytics", cfg.AdminHandler.GetAnalytics)

		admin.GET("/seed", cfg.SeedHandler.Status)
		admin.POST("/seed", cfg.SeedHandler.Seed)
	}

	return router
}
