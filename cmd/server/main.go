// Interview Labs - timed interview session server
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ashureev/interview-labs/internal/api"
	"github.com/ashureev/interview-labs/internal/candidate"
	"github.com/ashureev/interview-labs/internal/config"
	"github.com/ashureev/interview-labs/internal/domain"
	"github.com/ashureev/interview-labs/internal/interview"
	"github.com/ashureev/interview-labs/internal/live"
	"github.com/ashureev/interview-labs/internal/metrics"
	"github.com/ashureev/interview-labs/internal/middleware"
	"github.com/ashureev/interview-labs/internal/profile"
	"github.com/ashureev/interview-labs/internal/scoring"
	"github.com/ashureev/interview-labs/internal/store"
	"github.com/ashureev/interview-labs/web"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.Level(),
	}))
	slog.SetDefault(logger)

	slog.Info("Starting server", "addr", cfg.Addr(), "dev", cfg.IsDevelopment())

	// Initialize storage.
	kv, err := store.NewSQLite(cfg.DBPath)
	if err != nil {
		slog.Error("Failed to initialize database", "error", err)
		os.Exit(1)
	}
	defer func() {
		if closeErr := kv.Close(); closeErr != nil {
			slog.Error("Failed to close store", "error", closeErr)
		}
	}()

	if err := kv.Ping(context.Background()); err != nil {
		slog.Error("Database health check failed", "error", err)
		os.Exit(1)
	}
	slog.Info("Database connected", "path", cfg.DBPath)

	// Question lineup and scoring vocabulary.
	lineup := domain.DefaultLineup()
	var keywords []string
	if cfg.QuestionsPath != "" {
		lineup, keywords, err = config.LoadLineup(cfg.QuestionsPath)
		if err != nil {
			slog.Error("Failed to load question lineup", "error", err, "path", cfg.QuestionsPath)
			os.Exit(1)
		}
		slog.Info("Question lineup loaded", "path", cfg.QuestionsPath, "questions", len(lineup.Questions))
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(registry)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize services.
	hub := live.NewHub()
	profiles := profile.NewStore(kv)
	candidates := candidate.NewRepository(kv)

	engine, err := interview.New(interview.Config{
		Sessions:   store.NewSessionStore(kv),
		Candidates: candidates,
		Scorer:     scoring.NewHeuristic(keywords),
		Scheduler:  interview.NewTickerScheduler(ctx),
		Notifier:   hub,
		Metrics:    m,
		Lineup:     lineup,
		Interval:   cfg.TickInterval,
	})
	if err != nil {
		slog.Error("Failed to initialize interview engine", "error", err)
		os.Exit(1)
	}
	defer engine.Stop()

	// Initialize handlers.
	apiHandler := api.NewHandler(engine, profiles, candidates)
	healthHandler := api.NewHealthHandler(kv)
	wsHandler := live.NewHandler(hub, engine, cfg.OriginPatterns())

	// Setup router.
	r := chi.NewRouter()

	// Global middleware.
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(middleware.CORS(cfg.AllowedOrigins()))

	healthHandler.RegisterHealth(r)
	apiHandler.RegisterRoutes(r)

	// WebSocket endpoint.
	r.Get("/ws/interview", wsHandler.ServeHTTP)

	r.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	// Serve embedded frontend (SPA catch-all).
	r.Handle("/*", web.Handler())

	// WebSocket viewers are long-lived, so there is no write timeout.
	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 0,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		slog.Info("Server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server failed", "error", err)
			stop()
		}
	}()

	// Wait for shutdown signal.
	<-ctx.Done()
	stop()

	slog.Info("Shutting down gracefully...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
	}

	slog.Info("Server stopped successfully", "viewers", hub.Count())
}
