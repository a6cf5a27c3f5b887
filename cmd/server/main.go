package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"hooplogs/workout-service/internal/api"
	"hooplogs/workout-service/internal/cache"
	"hooplogs/workout-service/internal/catalog"
	"hooplogs/workout-service/internal/config"
	"hooplogs/workout-service/internal/logging"
	"hooplogs/workout-service/internal/planner"
	mongorepo "hooplogs/workout-service/internal/repository/mongo"
	"hooplogs/workout-service/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	log "github.com/sirupsen/logrus"
)

func main() {
	// --- Configuration ---
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("FATAL: Could not load config: %v", err)
	}

	logging.Setup(logging.LoggerSetupParams{
		LogFileName:   cfg.Log.FileName,
		LogToStdout:   cfg.Log.ToStdout,
		LogLevel:      cfg.Log.Level,
		LogFormatJSON: cfg.Log.JSON,
	})
	log.Println("Starting HoopLogs Workout Service...")
	log.Println("Configuration loaded.")

	if cfg.JWT.Secret == "" {
		log.Fatal("FATAL: JWT secret is not configured")
	}

	// --- Database Connection ---
	dbClient, err := mongorepo.ConnectDB(cfg.Database.URI)
	if err != nil {
		log.Fatalf("FATAL: Could not connect to MongoDB: %v", err)
	}
	defer func() {
		log.Println("Disconnecting MongoDB...")
		if err := mongorepo.DisconnectDB(dbClient); err != nil {
			log.Errorf("Failed to disconnect MongoDB: %v", err)
		}
	}()
	appDB := dbClient.Database(cfg.Database.Name)
	log.Println("Database connection established.")

	// --- Ensure Indexes ---
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 1*time.Minute)
		defer cancel()
		mongorepo.EnsureWorkoutPlanIndexes(ctx, appDB.Collection("workout_plans"))
	}()

	// --- Cache Connection ---
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	pingCtx, pingCancel := context.WithTimeout(context.Background(), 5*time.Second)
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		// Cache is a soft dependency: the service degrades to remote-only.
		log.Warnf("Redis unreachable at %s, cache tier degraded: %v", cfg.Redis.Addr, err)
	}
	pingCancel()
	defer func() {
		if err := rdb.Close(); err != nil {
			log.Errorf("Failed to close redis client: %v", err)
		}
	}()

	// --- Initialize Core Components ---
	drillCatalog := catalog.New()
	planGenerator := planner.New(drillCatalog)
	planRepo := mongorepo.NewMongoWorkoutPlanRepository(appDB)
	planCache := cache.NewPlanCache(rdb)

	workoutService := service.NewWorkoutService(planRepo, planCache, planGenerator, drillCatalog)
	defer workoutService.Close()

	// --- Initialize Gin Engine ---
	router := gin.Default()

	log.Println("Setting up API routes...")
	api.SetupRoutes(router, cfg.JWT.Secret, workoutService, drillCatalog)

	// --- Start HTTP Server ---
	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	log.Printf("Server starting on %s", cfg.Server.Address)

	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("FATAL: ListenAndServe Error: %v", err)
		}
	}()

	// --- Graceful Shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(ctxShutdown); err != nil {
		log.Fatalf("FATAL: Server forced to shutdown: %v", err)
	}

	log.Println("Server exiting.")
}
