package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"

	database "github.com/travelwiz/travelwiz/app/db"
	appLogger "github.com/travelwiz/travelwiz/app/logger"
	"github.com/travelwiz/travelwiz/app/observability/metrics"
	"github.com/travelwiz/travelwiz/app/tracer"
	"github.com/travelwiz/travelwiz/config"
	"github.com/travelwiz/travelwiz/internal/api/auth"
	"github.com/travelwiz/travelwiz/internal/api/chat"
	"github.com/travelwiz/travelwiz/internal/api/itinerary"
	"github.com/travelwiz/travelwiz/internal/api/planner"
	"github.com/travelwiz/travelwiz/internal/router"
)

func main() {
	// Use standard log until slog is configured, in case godotenv fails.
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found or error loading:", err)
	}

	cfg, err := config.InitConfig()
	if err != nil {
		log.Fatalf("FATAL: Error initializing config: %v", err)
	}

	logger := setupLogger(cfg.Mode)
	slog.SetDefault(logger)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// --- Observability ---
	shutdownTelemetry, err := tracer.InitTracingAndMetrics(cfg.Server.MetricsPort, logger)
	if err != nil {
		logger.Error("Failed to initialize telemetry", slog.Any("error", err))
		os.Exit(1)
	}
	defer shutdownTelemetry(context.Background())
	metrics.InitAppMetrics()

	// --- Database ---
	dbConfig, err := database.NewDatabaseConfig(&cfg, logger)
	if err != nil {
		logger.Error("Failed to generate database config", slog.Any("error", err))
		os.Exit(1)
	}

	if err := database.RunMigrations(dbConfig.ConnectionURL, logger); err != nil {
		logger.Error("Failed to run database migrations", slog.Any("error", err))
		os.Exit(1)
	}

	pool, err := database.Init(dbConfig.ConnectionURL, logger)
	if err != nil {
		logger.Error("Failed to initialize database pool", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	if !database.WaitForDB(ctx, pool, logger) {
		logger.Error("Database not ready after waiting, exiting.")
		os.Exit(1)
	}

	// --- OAuth Providers ---
	auth.RegisterOAuthProviders(&cfg)

	// --- Dependency Injection ---
	authRepo := auth.NewRepository(pool, logger)
	authService := auth.NewService(authRepo, cfg.JWT, logger)
	authHandler := auth.NewHandler(authService, logger)

	itineraryRepo := itinerary.NewRepository(pool, logger)
	itineraryService := itinerary.NewService(itineraryRepo, logger)
	itineraryHandler := itinerary.NewHandler(itineraryService, logger)

	geocoder := planner.NewNominatimGeocoder(cfg.Geocoder, logger)
	poiFetcher := planner.NewOverpassClient(cfg.Overpass, logger)
	plannerService := planner.NewService(geocoder, poiFetcher, itineraryRepo, logger)
	plannerHandler := planner.NewHandler(plannerService, logger)

	chatService := chat.NewService(chat.NewDiceMatcher(), logger)
	chatHandler := chat.NewHandler(chatService, logger)

	// --- Router ---
	apiRouter := router.SetupRouter(&router.Config{
		AuthHandler:            authHandler,
		PlannerHandler:         plannerHandler,
		ItineraryHandler:       itineraryHandler,
		ChatHandler:            chatHandler,
		AuthenticateMiddleware: auth.Authenticate(logger, cfg.JWT),
	})

	mux := chi.NewMux()
	mux.Use(middleware.RequestID)
	mux.Use(middleware.RealIP)
	mux.Use(appLogger.StructuredLogger(logger))
	mux.Use(middleware.Recoverer)
	mux.Use(middleware.StripSlashes)
	mux.Use(middleware.Timeout(60 * time.Second))
	mux.Use(middleware.Compress(5, "application/json"))
	mux.Mount("/", apiRouter)

	// --- HTTP Server ---
	serverAddress := fmt.Sprintf(":%s", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         serverAddress,
		Handler:      mux,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	go func() {
		logger.Info("Starting HTTP server", slog.String("address", serverAddress))
		err := srv.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("HTTP server ListenAndServe error", slog.Any("error", err))
			cancel()
		}
	}()

	<-ctx.Done()

	logger.Info("Shutdown signal received, starting graceful shutdown...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server graceful shutdown failed", slog.Any("error", err))
	} else {
		logger.Info("HTTP server gracefully stopped")
	}

	logger.Info("Application shut down complete.")
}

// setupLogger configures the application logger: colored text in
// development, JSON elsewhere.
func setupLogger(mode string) *slog.Logger {
	if mode == "development" || mode == "" {
		tintOpts := &tint.Options{
			Level:      slog.LevelDebug,
			TimeFormat: time.Kitchen,
			AddSource:  true,
		}
		logger := slog.New(tint.NewHandler(os.Stdout, tintOpts))
		log.Println("Initialized development logger (tint)")
		return logger
	}

	jsonOpts := &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, jsonOpts))
	log.Println("Initialized production logger (JSON)")
	return logger
}
