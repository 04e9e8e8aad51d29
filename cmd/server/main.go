package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"riskscope/internal/cache"
	"riskscope/internal/config"
	"riskscope/internal/repository"
	"riskscope/internal/service"
	"riskscope/internal/transport/rest"
	"riskscope/internal/transport/ws"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func main() {
	log.Println("started")
	ctx := context.Background()

	cfg := config.Load()

	// Load AI config and log model settings
	aiConfig := config.DefaultAIConfig()
	log.Printf("AI Config:")
	log.Printf("  Question: %s", aiConfig.Models.Question)
	log.Printf("  Report:   %s", aiConfig.Models.Report)
	if aiConfig.IsEnabled() {
		log.Println("  API Key:  configured")
	} else {
		log.Println("  API Key:  NOT SET (static question bank only, report synthesis disabled)")
	}

	// MongoDB connection
	mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatal("Failed to connect to MongoDB:", err)
	}
	defer mongoClient.Disconnect(ctx)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := mongoClient.Ping(pingCtx, nil); err != nil {
		log.Fatal("Failed to ping MongoDB:", err)
	}
	log.Println("Connected to MongoDB")

	db := mongoClient.Database(cfg.MongoDatabase)

	// Redis connection
	rdb := redis.NewClient(&redis.Options{
		Addr: cfg.RedisAddr,
	})
	defer rdb.Close()

	if _, err := rdb.Ping(ctx).Result(); err != nil {
		log.Fatal("Failed to ping Redis:", err)
	}
	log.Println("Connected to Redis")

	// Initialize repositories
	profileRepo := repository.NewProfileRepo(db)
	assessmentRepo := repository.NewAssessmentRepo(db)

	// Initialize caches
	sessionCache := cache.NewSessionCache(rdb)
	assessmentCache := cache.NewAssessmentCache(rdb)

	// Initialize generation client (nil when unconfigured: question
	// generation degrades to the static bank, report synthesis fails
	// loudly instead of fabricating scores)
	var generator service.Generator
	if aiConfig.IsEnabled() {
		generator = service.NewGeminiClient(aiConfig)
	}

	// Initialize services
	reportSvc := service.NewReportService(profileRepo, assessmentRepo, assessmentCache, generator, aiConfig)
	assessmentSvc := service.NewAssessmentService(profileRepo, sessionCache, generator, aiConfig, reportSvc, cfg.QuestionCount)

	// Initialize dictation hub
	dictationHub := ws.NewHub()
	dictationHandler := ws.NewHandler(dictationHub, assessmentSvc)
	log.Println("Dictation hub started")

	// Create router with container
	container := &rest.Container{
		ProfileRepo:       profileRepo,
		AssessmentService: assessmentSvc,
		ReportService:     reportSvc,
		DictationHandler:  dictationHandler,
	}

	router := rest.NewRouter(container)

	// Start server
	srv := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: router,
	}

	go func() {
		log.Printf("Server starting on :%s", cfg.HTTPPort)
		log.Println("Endpoints:")
		log.Println("  POST/GET /v1/profiles")
		log.Println("  GET/PUT/DELETE /v1/profiles/{id}")
		log.Println("  POST /v1/assessments")
		log.Println("  GET/DELETE /v1/assessments/{id}")
		log.Println("  POST /v1/assessments/{id}/answers")
		log.Println("  PUT  /v1/assessments/{id}/draft")
		log.Println("  GET/POST /v1/assessments/{id}/report")
		log.Println("  GET  /v1/assessments/{id}/bundle")
		log.Println("  GET  /v1/assessments/{id}/profile")
		log.Println("  GET/POST /v1/assessments/{id}/decision")
		log.Println("  WS   /v1/ws/assessments/{id}/dictation")

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("ListenAndServe:", err)
		}
	}()

	// Wait for interrupt
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited")
}
