package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	gorillaHandlers "github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"growthTrackerAPI/handlers"
	"growthTrackerAPI/internal/period"
	"growthTrackerAPI/middleware"
	"growthTrackerAPI/services"
)

var (
	dbPool           *pgxpool.Pool
	trackingWindow   period.Window
	workoutService   *services.WorkoutService
	smokingService   *services.SmokingService
	dashboardService *services.DashboardService
	adminService     *services.AdminService
)

func init() {
	if err := godotenv.Load(); err != nil {
		log.Info("No .env file found")
	}

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL environment variable is not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	poolConfig, err := pgxpool.ParseConfig(dbURL)
	if err != nil {
		log.Fatal("Failed to parse database URL", "error", err)
	}

	poolConfig.MaxConns = 10
	poolConfig.MinConns = 2
	poolConfig.MaxConnLifetime = time.Hour
	poolConfig.MaxConnIdleTime = 30 * time.Minute
	poolConfig.HealthCheckPeriod = time.Minute

	dbPool, err = pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		log.Fatal("Failed to create connection pool", "error", err)
	}

	if err := dbPool.Ping(ctx); err != nil {
		log.Fatal("Failed to ping database", "error", err)
	}

	log.Info("Connected to database")

	trackingWindow, err = period.FromEnv(time.Now)
	if err != nil {
		log.Fatal("Failed to configure tracking period", "error", err)
	}
	log.Info("Tracking period configured",
		"start", trackingWindow.Start.Format("2006-01-02"),
		"end", trackingWindow.End.Format("2006-01-02"))

	workoutService = services.NewWorkoutService(dbPool)
	smokingService = services.NewSmokingService(dbPool)
	dashboardService = services.NewDashboardService(dbPool, trackingWindow, time.Now)
	adminService = services.NewAdminService(dbPool, os.Getenv("DATABASE_ADMIN_URL"))

	middleware.InitPrometheus()
}

func main() {
	defer func() {
		log.Info("Closing database connection pool")
		dbPool.Close()
	}()

	workoutHandler := handlers.NewWorkoutHandler(workoutService)
	smokingHandler := handlers.NewSmokingHandler(smokingService)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)
	healthHandler := handlers.NewHealthHandler(dbPool)
	adminHandler := handlers.NewAdminHandler(adminService)

	r := mux.NewRouter()

	go middleware.CleanupVisitors()

	r.Use(middleware.RequestIDMiddleware)
	r.Use(middleware.RateLimitMiddleware)
	r.Use(middleware.MonitorMiddleware)

	r.Handle("/metrics", middleware.BasicAuthMiddleware(promhttp.Handler()))

	r.HandleFunc("/", healthHandler.Liveness).Methods("GET")
	r.HandleFunc("/health", healthHandler.Liveness).Methods("GET")
	r.HandleFunc("/health/db", healthHandler.Readiness).Methods("GET")

	admin := r.PathPrefix("/admin/db").Subrouter()
	admin.HandleFunc("/create-database", adminHandler.CreateDatabase).Methods("POST")
	admin.HandleFunc("/create-tables", adminHandler.CreateTables).Methods("POST")

	api := r.PathPrefix("/api/v1").Subrouter()

	api.HandleFunc("/workouts", workoutHandler.Create).Methods("POST")
	api.HandleFunc("/workouts/upsert", workoutHandler.Upsert).Methods("POST")
	api.HandleFunc("/workouts/history", workoutHandler.History).Methods("GET")
	api.HandleFunc("/workouts/{date}", workoutHandler.Get).Methods("GET")
	api.HandleFunc("/workouts/{date}", workoutHandler.Update).Methods("PUT")
	api.HandleFunc("/workouts/{date}", workoutHandler.Delete).Methods("DELETE")

	api.HandleFunc("/smoking", smokingHandler.Create).Methods("POST")
	api.HandleFunc("/smoking/upsert", smokingHandler.Upsert).Methods("POST")
	api.HandleFunc("/smoking/history", smokingHandler.History).Methods("GET")
	api.HandleFunc("/smoking/{date}", smokingHandler.Get).Methods("GET")
	api.HandleFunc("/smoking/{date}", smokingHandler.Delete).Methods("DELETE")

	api.HandleFunc("/dashboard", dashboardHandler.GetDashboard).Methods("GET")

	corsHandler := gorillaHandlers.CORS(
		gorillaHandlers.AllowedOrigins([]string{"*"}),
		gorillaHandlers.AllowedMethods([]string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
		gorillaHandlers.AllowedHeaders([]string{"Content-Type", "X-Request-ID"}),
		gorillaHandlers.ExposedHeaders([]string{"Content-Length", "X-Request-ID"}),
	)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8000"
	}
	port = ":" + port

	server := http.Server{
		Addr:         port,
		Handler:      corsHandler(r),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Info("Starting server", "port", port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Error starting server", "error", err)
		}
	}()

	// Graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	sig := <-sigChan
	log.Info("Got signal", "signal", sig)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Server shutdown error", "error", err)
	}

	log.Info("Server shutdown complete")
}
