package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"student-chapter-system/internal/ai"
	"student-chapter-system/internal/config"
	"student-chapter-system/internal/database"
	"student-chapter-system/internal/logger"
	"student-chapter-system/internal/telemetry"
	"student-chapter-system/middleware"
	"student-chapter-system/routes"
	"student-chapter-system/services"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	logger.InitLogger(cfg)

	if cfg.OTELEnabled {
		shutdown, err := telemetry.InitTracer("student-chapter-system", cfg.OTELEndpoint)
		if err != nil {
			logger.Warn("Tracing disabled", "error", err)
		} else {
			defer shutdown()
		}
	}

	// Open the content store. Schema init failure is logged and tolerated so
	// the read-only endpoints stay available.
	db, err := database.Open(cfg.DBPath)
	if err != nil {
		log.Fatal("Failed to open database:", err)
	}
	defer db.Close()
	database.InitSchema(context.Background(), db)

	// Without a Gemini key the generation endpoint reports the missing
	// credential; everything else keeps working.
	var generator services.TextGenerator
	if cfg.GeminiAPIKey != "" {
		geminiClient, err := ai.NewGeminiClient(cfg.GeminiAPIKey, cfg.GeminiModel, time.Duration(cfg.GeminiTimeout)*time.Second)
		if err != nil {
			log.Fatal("Failed to create Gemini client:", err)
		}
		defer geminiClient.Close()
		generator = geminiClient
	} else {
		logger.Warn("GEMINI_API_KEY not set, /generate-mcq is disabled")
	}

	contentService := services.NewContentService(db)
	mcqService := services.NewMCQService(db, contentService, generator)

	// Initialize Gin router
	if cfg.GinMode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.CORSMiddleware())
	if cfg.OTELEnabled {
		router.Use(middleware.TracingMiddleware())
		router.Use(middleware.EnrichTrace())
	}

	// Setup routes
	routes.SetupContentRoutes(router, contentService)
	routes.SetupMCQRoutes(router, mcqService)

	// Create HTTP server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("Server starting", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	logger.Info("Server exited")
}
