package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/casefile-ai/casefile/src/cache"
	"github.com/casefile-ai/casefile/src/config"
	"github.com/casefile-ai/casefile/src/dispatch"
	"github.com/casefile-ai/casefile/src/fixtures"
	"github.com/casefile-ai/casefile/src/handlers"
	"github.com/casefile-ai/casefile/src/inference"
	"github.com/casefile-ai/casefile/src/models"
	"github.com/casefile-ai/casefile/src/resilience"
	"github.com/casefile-ai/casefile/src/results"
	"github.com/casefile-ai/casefile/src/router"
	"github.com/casefile-ai/casefile/src/stages"
)

func init() {

	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  No .env file found, using system environment variables")
	} else {
		log.Println("✅ Loaded .env file")
	}
}

func main() {

	if os.Getenv("GROQ_API_KEY") == "" {
		log.Fatal("❌ GROQ_API_KEY not set in environment or .env file")
	}

	log.Println("✅ Environment variables loaded successfully")

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	log.Printf("✓ Config loaded successfully")

	// Redis when configured, in-process cache plus file-backed results
	// otherwise. Single-node demos run without any external services.
	var (
		answerCache models.AnswerCache
		store       models.ResultStore
	)

	if cfg.Redis.Address != "" {
		redisCache, err := cache.NewRedisCache(&cfg.Redis)
		if err != nil {
			log.Fatalf("Failed to initialize Redis: %v", err)
		}
		answerCache = redisCache
		store = results.NewRedisStore(redisCache.GetClient(), cfg.Results.TTL)
		log.Printf("✓ Redis connected: %s", cfg.Redis.Address)
	} else {
		fileStore, err := results.NewFileStore(cfg.Results.Dir)
		if err != nil {
			log.Fatalf("Failed to initialize results store: %v", err)
		}
		answerCache = cache.NewMemoryCache()
		store = fileStore
		log.Printf("✓ Redis not configured, using in-memory cache and %s for results", cfg.Results.Dir)
	}
	defer answerCache.Close()
	defer store.Close()

	groqClient, err := inference.NewGroqClient(&cfg.Groq)
	if err != nil {
		log.Fatalf("Failed to initialize Groq client: %v", err)
	}
	log.Printf("✓ Groq client ready: %s (escalation: %s)", cfg.Models.Standard, cfg.Models.Escalated)

	transcriber := inference.NewWhisperTranscriber(&cfg.Groq)
	log.Printf("✓ Whisper transcriber ready: %s", cfg.Groq.WhisperModel)

	breaker := resilience.NewBreaker()
	executor := resilience.NewExecutor(breaker, resilience.NewMessageClassifier(), cfg.Retry.MaxAttempts)
	log.Printf("✓ Retry executor ready (max %d attempts, quota breaker armed)", cfg.Retry.MaxAttempts)

	dispatcher := dispatch.NewDispatcher(
		answerCache,
		router.NewContentClassifier(),
		router.NewModelRouter(&cfg.Models),
		groqClient,
		executor,
		dispatch.NewSynthesizer(fixtures.Entities(fixtures.ScenarioPoisonedResearcher)...),
	)
	log.Printf("✓ Dispatcher initialized")

	audioPipeline := stages.NewAudioPipeline(transcriber, dispatcher, store)
	documentPipeline := stages.NewDocumentPipeline(dispatcher, store)
	reasoningPipeline := stages.NewReasoningPipeline(dispatcher, store)
	log.Printf("✓ Investigation pipelines initialized")

	gin.SetMode(gin.ReleaseMode)
	r := gin.Default()

	r.Use(gin.Recovery())
	r.Use(corsMiddleware())

	investigationHandler := handlers.NewInvestigationHandler(
		dispatcher,
		audioPipeline,
		documentPipeline,
		reasoningPipeline,
		store,
		cfg.Data,
	)
	adminHandler := handlers.NewAdminHandler(breaker, cfg.Data)

	v1 := r.Group("/api/v1")
	{
		v1.GET("/health", investigationHandler.HealthCheck)

		v1.POST("/answer", investigationHandler.HandleAnswer)
		v1.POST("/stage1/process", investigationHandler.HandleStage1)
		v1.POST("/stage2/analyze", investigationHandler.HandleStage2)
		v1.POST("/stage3/solve", investigationHandler.HandleStage3)
		v1.POST("/run-all", investigationHandler.HandleRunAll)

		v1.POST("/fixtures/generate", adminHandler.GenerateFixtures)

		admin := v1.Group("/admin")
		{
			admin.GET("/breaker", adminHandler.BreakerStatus)
			admin.POST("/breaker/reset", adminHandler.ResetBreaker)
		}
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	log.Printf("🚀 Casefile dispatch service running on port %s", cfg.Server.Port)
	log.Printf("📊 Routing tiers: standard=%s escalated=%s", cfg.Models.Standard, cfg.Models.Escalated)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited")
}

func corsMiddleware() gin.HandlerFunc {
	// Get allowed origins from environment variable
	// Default to localhost for development if not set
	allowedOriginsEnv := os.Getenv("ALLOWED_ORIGINS")
	var allowedOrigins []string

	if allowedOriginsEnv != "" {
		// Split by comma for multiple origins
		allowedOrigins = strings.Split(allowedOriginsEnv, ",")
		// Trim whitespace from each origin
		for i := range allowedOrigins {
			allowedOrigins[i] = strings.TrimSpace(allowedOrigins[i])
		}
	} else {
		// Default for local development
		allowedOrigins = []string{
			"http://localhost:3000",
			"http://localhost:3001",
		}
	}

	return func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")

		// Allow requests without Origin header (e.g., health checks, curl, Postman)
		if origin == "" {
			c.Next()
			return
		}

		// Check if the origin is allowed
		allowed := false
		for _, allowedOrigin := range allowedOrigins {
			if origin == allowedOrigin {
				allowed = true
				c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
				break
			}
		}

		// If origin is not allowed, don't set CORS headers
		if !allowed {
			c.AbortWithStatus(403)
			return
		}

		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
