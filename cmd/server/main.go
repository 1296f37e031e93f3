package main

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/NYTimes/gziphandler"
	"github.com/benbjohnson/hashfs"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/DukeRupert/booking/internal"
	"github.com/DukeRupert/booking/internal/catalog"
	"github.com/DukeRupert/booking/internal/csrf"
	"github.com/DukeRupert/booking/internal/handler"
	"github.com/DukeRupert/booking/internal/metrics"
	"github.com/DukeRupert/booking/internal/middleware"
	"github.com/DukeRupert/booking/internal/service"
	"github.com/DukeRupert/booking/web"
)

func run() error {
	ctx := context.Background()

	// Load configuration
	cfg, err := internal.NewConfig()
	if err != nil {
		return fmt.Errorf("config initialization failed: %w", err)
	}

	// Configure logger
	logger := internal.NewLogger(os.Stdout, cfg.Env, cfg.LogLevel)

	// Initialize catalog
	repo, closeCatalog, err := openCatalog(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeCatalog()

	// Initialize template renderer
	var templates fs.FS = web.Templates
	if cfg.TemplatesDir != "" {
		templates = os.DirFS(cfg.TemplatesDir)
	}
	renderer, err := handler.NewRenderer(handler.RendererConfig{
		FS:     templates,
		Funcs:  handler.TemplateFuncs(web.Static),
		Logger: logger,
		IsDev:  cfg.IsDevelopment() && cfg.TemplatesDir != "",
	})
	if err != nil {
		return fmt.Errorf("renderer initialization failed: %w", err)
	}
	logger.Info("Templates loaded", "count", len(renderer.ListTemplates()))

	// Initialize services
	bookingService := service.NewBookingService(repo, service.NewBookingValidator(), cfg.Location, logger)

	// Initialize middleware
	isSecure := !cfg.IsDevelopment()
	requestLogging := middleware.NewRequestLoggingMiddleware(logger)
	securityHeaders := middleware.NewSecurityHeadersMiddleware(isSecure)
	metricsAuth := middleware.NewMetricsAuthMiddleware(cfg.MetricsUsername, cfg.MetricsPassword, logger)

	submitLimiter := middleware.NewRateLimiter(cfg.BookingRateLimit, cfg.BookingRateWindow, logger)
	defer submitLimiter.Stop()
	submitRateLimit := middleware.NewRateLimitMiddleware(submitLimiter, logger)

	protect := csrf.Protect(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger.Warn("csrf token mismatch", "path", r.URL.Path, "request_id", middleware.RequestID(r.Context()))
		handler.ForbiddenResponse(w, r, logger)
	}))

	// Initialize handlers
	integrationHandler := handler.NewIntegrationHandler(bookingService, renderer, logger)
	bookingHandler := handler.NewBookingHandler(bookingService, renderer, logger, isSecure)

	// ==========================================================================
	// Create router and register routes
	// ==========================================================================

	mux := http.NewServeMux()

	// Static files
	mux.Handle("GET /static/", http.StripPrefix("/static/", hashfs.FileServer(web.Static)))

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	// Prometheus metrics
	mux.Handle("GET /metrics", metricsAuth.Handler(promhttp.Handler()))

	integrationHandler.RegisterRoutes(mux)
	bookingHandler.RegisterRoutes(mux, protect, submitRateLimit.Limit)

	root := middleware.Stack(
		requestLogging.Handler,
		securityHeaders.Handler,
		metrics.Middleware,
	)(mux)

	// ==========================================================================
	// Start server
	// ==========================================================================

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: gziphandler.GzipHandler(root),
	}

	// Channel to listen for interrupt signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("Server started", "address", server.Addr, "env", cfg.Env, "catalog", cfg.CatalogSource)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	select {
	case err := <-serverErr:
		return fmt.Errorf("server failed: %w", err)
	case <-sigChan:
	}
	logger.Info("Shutdown signal received, initiating graceful shutdown...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown error", "error", err)
	}

	logger.Info("Graceful shutdown complete")
	return nil
}

// openCatalog returns the configured integration catalog and a cleanup func.
func openCatalog(ctx context.Context, cfg *internal.Config, logger *slog.Logger) (catalog.Repository, func(), error) {
	if cfg.CatalogSource != "postgres" {
		logger.Info("Using built-in catalog", "integrations", len(catalog.Default))
		return catalog.NewStatic(catalog.Default), func() {}, nil
	}

	db, err := sql.Open("pgx", cfg.DatabaseUrl)
	if err != nil {
		return nil, nil, fmt.Errorf("database connection failed: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("database ping failed: %w", err)
	}

	if err := internal.RunMigrations(db); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("migration failed: %w", err)
	}
	logger.Info("Database ready")

	return catalog.NewPostgres(db), func() { db.Close() }, nil
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}
