package main

import (
	"context"
	"log"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/justsurfingit/career-compass/internal/config"
	"github.com/justsurfingit/career-compass/internal/database"
	"github.com/justsurfingit/career-compass/internal/handlers"
	"github.com/justsurfingit/career-compass/internal/identity"
	"github.com/justsurfingit/career-compass/internal/services"
	"github.com/justsurfingit/career-compass/internal/store"
	"github.com/justsurfingit/career-compass/internal/tracker"
	"go.uber.org/zap"
)

func main() {
	// 1. Configuration (loads .env if present)
	cfg := config.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatal("Failed to create logger:", err)
	}
	defer logger.Sync()

	// 2. Database connection + migrations
	db, err := database.Connect(cfg.DatabaseDSN, logger)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}

	// 3. Core services
	recordStore := store.New(db)
	gate := identity.NewGate(db, cfg.JWTSecret, cfg.SessionTTL, logger)
	controller := tracker.NewController(recordStore, logger)

	// 4. View router: reacts to auth changes and loads jobs on sign-in
	router := tracker.NewRouter(controller, logger)
	router.Start(context.Background(), gate)

	// 5. Optional LLM extraction (disabled without an API key)
	extract, err := services.NewExtractService(context.Background(), cfg.GeminiAPIKey, logger)
	if err != nil {
		logger.Warn("extraction service unavailable", zap.Error(err))
	}

	// 6. Handlers
	authHandler := handlers.NewAuthHandler(gate, router)
	jobHandler := handlers.NewJobHandler(controller, extract)

	// 7. HTTP router & CORS
	r := gin.Default()
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true // For development only
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	r.Use(cors.New(corsConfig))

	// 8. Routes
	api := r.Group("/api/v1")
	{
		api.GET("/health", handlers.HealthCheck)

		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)
		api.POST("/auth/logout", authHandler.Logout)
		api.POST("/auth/reset-password", authHandler.ResetPassword)
		api.GET("/session", authHandler.Session)

		authed := api.Group("", handlers.RequireAuth(gate), handlers.RequireSession(controller))
		{
			authed.GET("/jobs", jobHandler.ListJobs)
			authed.POST("/jobs", jobHandler.CreateJob)
			authed.GET("/jobs/:id", jobHandler.GetJob)
			authed.PUT("/jobs/:id", jobHandler.UpdateJob)
			authed.DELETE("/jobs/:id", jobHandler.DeleteJob)
			authed.POST("/jobs/:id/interviews", jobHandler.AddInterview)
			authed.GET("/jobs/:id/analysis", jobHandler.Analysis)
			authed.GET("/insights", jobHandler.Insights)
			authed.PUT("/view", jobHandler.ViewState)
			if extract != nil {
				authed.POST("/extract", jobHandler.ParseJob)
			}
		}
	}

	logger.Info("server starting", zap.String("addr", cfg.ListenAddr))
	if err := r.Run(cfg.ListenAddr); err != nil {
		logger.Fatal("server failed to start", zap.Error(err))
	}
}
