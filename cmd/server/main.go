package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fitcal/fitness-calendar/internal/api"
	"fitcal/fitness-calendar/internal/config"
	"fitcal/fitness-calendar/internal/repository/mongo"
	"fitcal/fitness-calendar/internal/service"

	"github.com/gin-gonic/gin"
)

func main() {
	log.Println("Starting Fitness Calendar Server...")

	// --- Configuration ---
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("FATAL: Could not load config: %v", err)
	}
	log.Println("Configuration loaded.")

	plannerLocation, err := time.LoadLocation(cfg.Planner.Timezone)
	if err != nil {
		log.Fatalf("FATAL: Invalid planner timezone %q: %v", cfg.Planner.Timezone, err)
	}

	// --- Database Connection ---
	dbClient, err := mongo.ConnectDB(cfg.Database.URI)
	if err != nil {
		log.Fatalf("FATAL: Could not connect to MongoDB: %v", err)
	}
	defer func() {
		log.Println("Disconnecting MongoDB...")
		if err := mongo.DisconnectDB(dbClient); err != nil {
			log.Printf("ERROR: Failed to disconnect MongoDB: %v", err)
		}
	}()
	appDB := dbClient.Database(cfg.Database.Name)
	log.Println("Database connection established.")

	// --- Ensure Indexes ---
	// The unique {userId, date} index backs the one-workout-per-date
	// invariant, so startup fails hard if it cannot be created.
	log.Println("Ensuring database indexes...")
	indexCtx, cancelIndex := context.WithTimeout(context.Background(), 1*time.Minute)
	if err := mongo.EnsureWorkoutIndexes(indexCtx, appDB.Collection("workouts")); err != nil {
		cancelIndex()
		log.Fatalf("FATAL: Could not create workout indexes: %v", err)
	}
	cancelIndex()
	log.Println("Index creation process completed.")

	// --- Initialize Repositories ---
	log.Println("Initializing repositories...")
	workoutRepo := mongo.NewMongoWorkoutRepository(appDB)

	// --- Initialize Services ---
	log.Println("Initializing services...")
	calendarService := service.NewCalendarService(workoutRepo)
	plannerService := service.NewPlannerService(workoutRepo, cfg.Planner.EarlyCutoffHour, plannerLocation)
	scheduleService := service.NewScheduleService(workoutRepo)

	// --- Initialize Gin Engine ---
	// gin.SetMode(gin.ReleaseMode) // Uncomment for production
	router := gin.Default() // Includes Logger and Recovery middleware

	// --- Setup Routes ---
	log.Println("Setting up API routes...")
	api.SetupRoutes(router, cfg.JWT.Secret, calendarService, plannerService, scheduleService)

	// --- Start HTTP Server ---
	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	log.Printf("Server starting on %s", cfg.Server.Address)

	// --- Graceful Shutdown ---
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("FATAL: ListenAndServe Error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	// Give in-flight requests 5 seconds to finish.
	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(ctxShutdown); err != nil {
		log.Fatalf("FATAL: Server forced to shutdown: %v", err)
	}

	log.Println("Server exiting.")
}
