package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"wordle/internal/config"
	"wordle/internal/database"
	"wordle/internal/dictionary"
	"wordle/internal/handlers"
	"wordle/internal/repository"
	"wordle/internal/security"
	"wordle/internal/service"
)

func main() {
	// Load configuration
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	startup := handlers.NewStartupStatus(
		handlers.StepDatabase,
		handlers.StepMigrations,
		handlers.StepBadWords,
		handlers.StepDictionary,
		handlers.StepServices,
	)

	// Serve health and metrics while the rest initializes
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", startup.Health)
	mux.Handle("GET /metrics", promhttp.Handler())

	addr := ":" + cfg.ServerPort
	server := &http.Server{
		Addr:         addr,
		Handler:      handlers.InFlight(handlers.Logging(mux)),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Server starting on http://localhost%s", addr)
		errCh <- server.ListenAndServe()
	}()

	apiHandlers, db, err := initialize(ctx, cfg, startup)
	if err != nil {
		log.Fatalf("Startup failed: %v", err)
	}
	defer db.Close()

	handlers.RegisterRoutes(mux, apiHandlers)
	startup.MarkReady()
	log.Println("Server ready")

	select {
	case <-ctx.Done():
		log.Println("Server shutting down...")
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Graceful shutdown failed: %v", err)
	}
}

// initialize opens the database and builds every service and handler
func initialize(ctx context.Context, cfg *config.Config, startup *handlers.StartupStatus) (handlers.Handlers, *database.DB, error) {
	startup.SetCurrentStep(handlers.StepDatabase)
	db, err := database.OpenFromConfig(ctx, cfg)
	if err != nil {
		return handlers.Handlers{}, nil, err
	}
	log.Printf("Database connection established (type: %s)", db.Dialect.Name())
	startup.CompleteStep(handlers.StepDatabase)

	startup.SetCurrentStep(handlers.StepMigrations)
	if err := db.RunMigrations(ctx); err != nil {
		db.Close()
		return handlers.Handlers{}, nil, err
	}
	log.Println("Migrations completed successfully")
	startup.CompleteStep(handlers.StepMigrations)

	startup.SetCurrentStep(handlers.StepBadWords)
	if cfg.SeedBadWords {
		if err := db.SeedBadWords(ctx); err != nil {
			log.Printf("Warning: Failed to seed bad words filter: %v", err)
		}
	}
	startup.CompleteStep(handlers.StepBadWords)

	startup.SetCurrentStep(handlers.StepDictionary)
	dict, err := loadDictionary(cfg)
	if err != nil {
		db.Close()
		return handlers.Handlers{}, nil, err
	}
	log.Printf("Dictionary loaded: %d words (%s mode)", dict.Len(), dict.Mode())
	startup.CompleteStep(handlers.StepDictionary)

	startup.SetCurrentStep(handlers.StepServices)

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	gameRepo := repository.NewGameRepository(db)

	// Initialize services
	tokens := security.NewTokenManager(cfg.JWTSecret, cfg.JWTIssuer, cfg.TokenTTL)
	authService := service.NewAuthService(userRepo, tokens, db)
	reportService, err := service.NewReportService(gameRepo, userRepo, cfg.ReportCacheSize, cfg.MaxAttempts)
	if err != nil {
		db.Close()
		return handlers.Handlers{}, nil, err
	}
	gameService := service.NewGameService(gameRepo, dict, reportService, service.GameConfig{
		MaxAttempts:    cfg.MaxAttempts,
		SessionsPerDay: cfg.SessionsPerDay,
		LockTimeout:    cfg.LockTimeout,
	})
	hintService := service.NewHintService(gameRepo)

	// Initialize handlers
	limiter := security.NewRateLimiter(ctx, cfg.RateLimitRequests, cfg.RateLimitWindow)
	h := handlers.Handlers{
		Middleware: handlers.NewMiddleware(authService, limiter),
		Auth:       handlers.NewAuthHandler(authService),
		Game:       handlers.NewGameHandler(gameService),
		Hint:       handlers.NewHintHandler(hintService),
		Admin:      handlers.NewAdminHandler(reportService),
	}
	startup.CompleteStep(handlers.StepServices)

	return h, db, nil
}

func loadDictionary(cfg *config.Config) (*dictionary.Provider, error) {
	mode := dictionary.Mode(cfg.WordSelection)
	if cfg.WordsPath != "" {
		return dictionary.Load(cfg.WordsPath, mode)
	}
	return dictionary.Default(mode)
}
