package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"mindscreen/internal/cache"
	"mindscreen/internal/config"
	"mindscreen/internal/registry"
	"mindscreen/internal/repository"
	"mindscreen/internal/service"
	"mindscreen/internal/transport/rest"
)

func main() {
	log.Println("started")
	ctx := context.Background()

	cfg := config.Load()
	aiCfg := config.DefaultAIConfig()
	log.Printf("AI Config:")
	log.Printf("  Model chain: %v", aiCfg.ModelChain())
	if aiCfg.IsEnabled() {
		log.Println("  API Key:     configured")
	} else {
		log.Println("  API Key:     NOT SET (reports use the deterministic generator)")
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

	db := mongoClient.Database(cfg.MongoDB)

	// Redis connection
	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr()})
	defer rdb.Close()
	if _, err := rdb.Ping(ctx).Result(); err != nil {
		log.Fatal("Failed to ping Redis:", err)
	}
	log.Println("Connected to Redis")

	// Catalog (panics on an invalid threshold table)
	reg := registry.New()
	log.Printf("Loaded %d instruments", len(reg.All()))

	// Repositories
	submissionRepo := repository.NewSubmissionRepo(db)
	cacheRepo := repository.NewReportCacheRepo(db)

	// Caches and limiter
	memoryCache := cache.NewMemoryReportCache(cfg.CacheMaxEntries)
	limiter := cache.NewRateLimiter(rdb, cfg.RateLimit, time.Duration(cfg.RateWindowSec)*time.Second)

	// Services
	llm := service.NewLLMClient(aiCfg)
	assessmentSvc := service.NewAssessmentService(reg, submissionRepo)
	reportSvc := service.NewReportService(
		aiCfg, llm, memoryCache, cacheRepo,
		time.Duration(cfg.CacheTTLHours)*time.Hour, cfg.IsProduction(),
	)

	router := rest.NewRouter(&rest.Container{
		AssessmentService: assessmentSvc,
		ReportService:     reportSvc,
		RateLimiter:       limiter,
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Printf("Server starting on :%s", cfg.Port)
		log.Println("Endpoints:")
		log.Println("  POST/GET /v1/assessments/full")
		log.Println("  POST/GET /v1/assessments/{instrument}")
		log.Println("  GET  /health")

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
