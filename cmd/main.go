package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/promptvault/promptvault-backend/internal/cache"
	"github.com/promptvault/promptvault-backend/internal/db"
	"github.com/promptvault/promptvault-backend/internal/handlers"
	"github.com/promptvault/promptvault-backend/internal/library"
	"github.com/promptvault/promptvault-backend/internal/logger"
	"github.com/promptvault/promptvault-backend/internal/middleware"
	"github.com/promptvault/promptvault-backend/internal/observability"
	"github.com/promptvault/promptvault-backend/internal/repos"
	"github.com/promptvault/promptvault-backend/internal/server"
	"github.com/promptvault/promptvault-backend/internal/services"
	"github.com/promptvault/promptvault-backend/internal/utils"
)

func main() {
	// Logger
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	// Env
	log.Info("Loading environment variables from main...")
	jwtSecretKey := utils.GetEnv("JWT_SECRET_KEY", "defaultsecret", log)
	accessTokenTTL := utils.GetEnvAsInt("ACCESS_TOKEN_TTL", 3600, log)
	refreshTokenTTL := utils.GetEnvAsInt("REFRESH_TOKEN_TTL", 86400, log)

	// Tracing
	otelShutdown := observability.InitOTel(context.Background(), log, observability.OtelConfig{
		ServiceName: "promptvault-backend",
		Environment: utils.GetEnv("APP_ENV", "development", log),
		Version:     utils.GetEnv("APP_VERSION", "dev", log),
	})
	if otelShutdown != nil {
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = otelShutdown(ctx)
		}()
	}

	// Postgres
	postgresService, err := db.NewPostgresService(log)
	if err != nil {
		log.Error("Postgres init failed", "error", err)
		os.Exit(1)
	}
	if err = postgresService.AutoMigrateAll(); err != nil {
		log.Warn("Postgres auto migration failed", "error", err)
	}
	thePG := postgresService.DB()

	// Repos
	log.Info("Setting up Repos from main...")
	userRepo := repos.NewUserRepo(thePG, log)
	userTokenRepo := repos.NewUserTokenRepo(thePG, log)
	categoryRepo := repos.NewCategoryRepo(thePG, log)
	subcategoryRepo := repos.NewSubcategoryRepo(thePG, log)
	promptRepo := repos.NewPromptRepo(thePG, log)
	promptEventRepo := repos.NewPromptEventRepo(thePG, log)
	roleRepo := repos.NewRoleRepo(thePG, log)
	auditLogRepo := repos.NewAuditLogRepo(thePG, log)

	// Redis selection cache (optional)
	var selectionCache library.SelectionCache
	if os.Getenv("REDIS_ADDR") != "" {
		sc, scErr := cache.NewRedisSelectionCache(log)
		if scErr != nil {
			log.Warn("Could not init selection cache, selections will not persist", "error", scErr)
		} else {
			selectionCache = sc
		}
	}

	// Services
	log.Info("Setting up Services from main...")
	librarySource := services.NewLibrarySource(thePG, log, categoryRepo, subcategoryRepo, promptRepo, promptEventRepo)
	authService := services.NewAuthService(thePG, log, userRepo, userTokenRepo, jwtSecretKey, time.Duration(accessTokenTTL)*time.Second, time.Duration(refreshTokenTTL)*time.Second)
	rbacService := services.NewRBACService(thePG, log, userRepo, roleRepo)
	auditService := services.NewAuditService(log, auditLogRepo)
	analyticsService := services.NewAnalyticsService(log, promptRepo, promptEventRepo)
	seedService := services.NewSeedService(thePG, log, categoryRepo, subcategoryRepo, promptRepo)

	// Store
	store := library.NewStore(log, librarySource)
	if err := store.FetchData(context.Background()); err != nil {
		log.Warn("Initial library fetch failed, continuing with empty store", "error", err)
	}

	// Handlers
	log.Info("Setting up handlers from main...")
	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(userRepo)
	libraryHandler := handlers.NewLibraryHandler(log, store, selectionCache)
	promptHandler := handlers.NewPromptHandler(log, store, promptRepo, auditService)
	categoryHandler := handlers.NewCategoryHandler(log, store, auditService)
	adminHandler := handlers.NewAdminHandler(log, rbacService, auditService, analyticsService)
	seedHandler := handlers.NewSeedHandler(log, seedService, store)

	// Middleware
	log.Info("Setting up middleware from main...")
	authMiddleware := middleware.NewAuthMiddleware(log, authService)

	// Router
	log.Info("Setting up router from main...")
	router := server.NewRouter(server.RouterConfig{
		AuthHandler:     authHandler,
		AuthMiddleware:  authMiddleware,
		UserHandler:     userHandler,
		LibraryHandler:  libraryHandler,
		PromptHandler:   promptHandler,
		CategoryHandler: categoryHandler,
		AdminHandler:    adminHandler,
		SeedHandler:     seedHandler,
	})

	port := utils.GetEnv("PORT", "8080", log)
	fmt.Printf("Server listening on :%s\n", port)
	if err := router.Run(":" + port); err != nil {
		log.Error("Server failed", "error", err)
	}
}
