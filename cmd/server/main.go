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
	"workouttracker/app/internal/api"
	"workouttracker/app/internal/auth"
	"workouttracker/app/internal/catalog"
	"workouttracker/app/internal/config"
	"workouttracker/app/internal/database"
	"workouttracker/app/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/go-chi/cors"
)

// @title Workout Tracker API
// @version 1.0
// @description Exercise catalog and per-user workout plans.
// @host localhost:8080
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the session token.
func main() {
	log.Println("Starting Workout Tracker Server...")

	// --- Configuration ---
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("FATAL: Could not load config: %v", err)
	}
	log.Println("Configuration loaded.")

	// --- Database Connection ---
	repos, err := database.Open(context.Background(), cfg.Database)
	if err != nil {
		log.Fatalf("FATAL: %v", err)
	}
	defer func() {
		if err := repos.Close(); err != nil {
			log.Printf("ERROR: Failed to close database: %v", err)
		}
	}()
	log.Printf("Database connection established (driver %s).", cfg.Database.Driver)

	// --- Initialize Services ---
	log.Println("Initializing services...")
	tokens, err := auth.NewTokenManager(cfg.JWT.Secret, cfg.JWT.Expiration)
	if err != nil {
		log.Fatalf("FATAL: Invalid JWT configuration: %v", err)
	}
	authService := service.NewAuthService(repos.Users, tokens)
	exerciseService := service.NewExerciseService(repos.Exercises)
	workoutService := service.NewWorkoutService(repos.Workouts, repos.Exercises)

	if cfg.Database.Driver == config.DriverMemory {
		seedDefaultCatalog(exerciseService)
	}

	var identities auth.IdentityProvider
	if cfg.OAuth.Google.Enabled() {
		google, err := auth.NewGoogleProvider(cfg.OAuth.Google.ClientID, cfg.OAuth.Google.ClientSecret, cfg.OAuth.Google.RedirectURL)
		if err != nil {
			log.Fatalf("FATAL: Invalid Google OAuth configuration: %v", err)
		}
		identities = google
	} else {
		log.Println("WARN: Google OAuth is not configured; sign-in is disabled.")
	}
	sessions := auth.NewJWTSessionProvider(tokens, cfg.Session.CookieName)
	authHandler := api.NewAuthHandler(authService, identities, sessions, api.CookieSettings{
		Name:   cfg.Session.CookieName,
		Secure: cfg.Session.Secure,
	})

	// --- Initialize Gin Engine ---
	router := gin.Default() // Includes Logger and Recovery middleware

	// --- Setup Routes ---
	log.Println("Setting up API routes...")
	api.SetupRoutes(router, sessions, authHandler, exerciseService, workoutService)

	corsHandler := cors.Handler(cors.Options{
		AllowedOrigins:   cfg.Server.CORSOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	})

	// --- Start HTTP Server ---
	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      corsHandler(router),
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

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	// In-flight requests get 5 seconds to finish.
	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(ctxShutdown); err != nil {
		log.Printf("ERROR: Server forced to shutdown: %v", err)
	}

	log.Println("Server exiting.")
}

// seedDefaultCatalog loads the bundled catalog so an in-memory server is usable.
func seedDefaultCatalog(exercises service.ExerciseService) {
	defaults, err := catalog.Default()
	if err != nil {
		log.Fatalf("FATAL: Could not read bundled catalog: %v", err)
	}
	n, err := exercises.ImportCatalog(context.Background(), defaults)
	if err != nil {
		log.Fatalf("FATAL: Could not seed bundled catalog: %v", err)
	}
	log.Printf("INFO: Seeded %d exercises into the in-memory store.", n)
}
