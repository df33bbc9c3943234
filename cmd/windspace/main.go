// Copyright (c) 2025-2026 Wind Space
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"

	"github.com/windspace/windspace-go/internal/config"
	"github.com/windspace/windspace-go/internal/handler"
	"github.com/windspace/windspace-go/internal/handler/api"
	"github.com/windspace/windspace-go/internal/logging"
	"github.com/windspace/windspace-go/internal/middleware"
	"github.com/windspace/windspace-go/internal/store"
	"github.com/windspace/windspace-go/internal/version"
)

// Version information - injected at build time via ldflags
var (
	appVersion   = "dev"
	appGitCommit = "unknown"
	appBuildTime = "unknown"
)

func main() {
	// Parse CLI flags
	showVersion := flag.Bool("version", false, "Show version information")
	flag.BoolVar(showVersion, "v", false, "Show version information (shorthand)")
	showHelp := flag.Bool("help", false, "Show help information")
	flag.BoolVar(showHelp, "h", false, "Show help information (shorthand)")

	flag.Usage = func() {
		_, _ = fmt.Fprintf(os.Stderr, "Wind Space - Content Publishing API\n\n")
		_, _ = fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		_, _ = fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		_, _ = fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		_, _ = fmt.Fprintf(os.Stderr, "  WINDSPACE_DB_PATH      SQLite database path (default: ./data/windspace.db)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  WINDSPACE_SERVER_HOST  Listen host (default: localhost)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  WINDSPACE_SERVER_PORT  Listen port (default: 8080)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  WINDSPACE_ENV          Environment: development|production (default: development)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  WINDSPACE_LOG_LEVEL    Log level: debug|info|warn|error (default: info)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  WINDSPACE_CLIENT_URL   Public client origin allowed by CORS (default: any)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  WINDSPACE_DO_SEED      Seed default categories on boot (default: false)\n")
	}

	flag.Parse()

	// Handle -h/-help flag
	if *showHelp {
		flag.Usage()
		os.Exit(0)
	}

	// Handle -v/-version flag
	if *showVersion {
		_, _ = fmt.Printf("windspace %s (commit: %s, built: %s)\n", appVersion, appGitCommit, appBuildTime)
		os.Exit(0)
	}

	if err := run(); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// Load .env file if present (development)
	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// Create version info from build-time injected values
	versionInfo := &version.Info{
		Version:   appVersion,
		GitCommit: appGitCommit,
		BuildTime: appBuildTime,
	}

	// Setup logger
	logLevel := slog.LevelInfo
	switch cfg.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)
	slog.Info("starting windspace",
		"version", versionInfo.Version,
		"commit", versionInfo.GitCommit,
		"built", versionInfo.BuildTime)

	// Ensure data directory exists
	dbDir := filepath.Dir(cfg.DBPath)
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	// Initialize database
	slog.Info("initializing database", "path", cfg.DBPath)
	db, err := store.NewDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("initializing database: %w", err)
	}
	defer func(db *sql.DB) {
		err = db.Close()
		if err != nil {
			slog.Error("error closing database connection", "error", err)
		}
	}(db)

	// Run migrations
	slog.Info("running database migrations")
	if err := store.Migrate(db); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}
	slog.Info("database ready")

	// Upgrade logger to also write WARN and ERROR logs to the events table
	textHandler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})
	eventLogHandler := logging.NewEventLogHandler(textHandler, db)
	logger = slog.New(eventLogHandler)
	slog.SetDefault(logger)
	slog.Info("event log integration enabled", "min_level", "warn")

	// Seed default data
	ctx := context.Background()
	if err := store.Seed(ctx, db, cfg.DoSeed); err != nil {
		return fmt.Errorf("seeding database: %w", err)
	}

	// Handlers
	healthHandler := handler.NewHealthHandler(db, cfg.Env)
	apiHandler := api.NewHandler(db, cfg.IsDevelopment())
	rateLimiter := middleware.NewGlobalRateLimiter(100, 200)

	// Router
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Compress(5))
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(middleware.CORS(cfg.ClientURL))

	r.Get("/", apiHandler.Root)
	r.Get("/health", healthHandler.Health)
	r.Get("/health/ready", healthHandler.Readiness)

	r.Route("/api", func(r chi.Router) {
		r.Use(rateLimiter.Middleware())

		r.Get("/", apiHandler.Index)

		r.Route("/articles", func(r chi.Router) {
			r.Get("/", apiHandler.ListArticles)
			r.Post("/", apiHandler.CreateArticle)
			r.Get("/{slug}", apiHandler.GetArticle)
			r.Put("/{id}", apiHandler.UpdateArticle)
			r.Delete("/{id}", apiHandler.DeleteArticle)
		})

		r.Route("/categories", func(r chi.Router) {
			r.Get("/", apiHandler.ListCategories)
			r.Post("/", apiHandler.CreateCategory)
			r.Get("/{slug}", apiHandler.GetCategory)
			r.Put("/{id}", apiHandler.UpdateCategory)
			r.Delete("/{id}", apiHandler.DeleteCategory)
		})

		r.Get("/tags", apiHandler.ListTags)
	})

	// Create server with appropriate timeouts
	srv := &http.Server{
		Addr:              cfg.ServerAddr(),
		Handler:           r,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20, // 1MB max header size
	}

	// Start server in goroutine
	go func() {
		slog.Info("starting server", "addr", cfg.ServerAddr(), "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server...")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	slog.Info("server stopped")
	return nil
}
