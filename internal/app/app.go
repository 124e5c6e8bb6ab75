// Package app assembles the bootstrap HTTP service: configuration, logging,
// tracing, router, and graceful lifecycle.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"bootcli/internal/config"
	"bootcli/internal/infrastructure"
	custommw "bootcli/internal/middleware"
	"bootcli/internal/services"
	handlers "bootcli/internal/transport/http"
)

// Application is the assembled service container.
type Application struct {
	cfg     *config.Config
	logger  *slog.Logger
	router  chi.Router
	server  *http.Server
	tracing *infrastructure.TracingProvider
}

// New builds the application from configuration: logger, tracing, services,
// handlers, and the router.
func New(cfg *config.Config) (*Application, error) {
	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	tracing, err := infrastructure.InitializeTracing(handlers.Version, logger)
	if err != nil {
		logger.Warn("tracing disabled", slog.String("error", err.Error()))
	}

	app := &Application{
		cfg:     cfg,
		logger:  logger,
		tracing: tracing,
	}
	app.router = app.buildRouter()
	app.server = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      app.router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	return app, nil
}

// Router exposes the assembled router, mainly for tests.
func (a *Application) Router() chi.Router {
	return a.router
}

func (a *Application) buildRouter() chi.Router {
	svc := services.NewBootstrapService(a.cfg.Engine, a.logger)

	bootstrapHandler := handlers.NewBootstrapHandler(svc, a.logger)
	statisticsHandler := handlers.NewStatisticsHandler()
	healthHandler := handlers.NewHealthHandler()
	streamHandler := handlers.NewStreamHandler(svc, a.logger)

	r := chi.NewRouter()

	r.Use(custommw.RequestID)
	r.Use(custommw.StructuredLogger(a.logger))
	r.Use(custommw.Recoverer(a.logger))
	r.Use(chimiddleware.RealIP)
	r.Use(render.SetContentType(render.ContentTypeJSON))
	if a.cfg.Server.RateLimit.Enabled {
		r.Use(custommw.RateLimit(a.cfg.Server.RateLimit.RPS, a.cfg.Server.RateLimit.Burst))
	}

	r.Route("/api", func(r chi.Router) {
		r.Post("/bootstrap", bootstrapHandler.Run)
		r.Get("/bootstrap/stream", streamHandler.Stream)
		r.Get("/statistics", statisticsHandler.List)

		r.Get("/health", healthHandler.HealthCheck)
		r.Get("/health/live", healthHandler.LivenessCheck)
		r.Get("/health/ready", healthHandler.ReadinessCheck)
		r.Get("/version", healthHandler.VersionInfo)
	})

	r.Handle("/metrics", promhttp.Handler())

	return r
}

// Run starts the HTTP server and blocks until the context is cancelled or
// SIGINT/SIGTERM arrives, then drains in-flight requests.
func (a *Application) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("server listening",
			slog.String("addr", a.server.Addr),
			slog.Int("default_replicates", a.cfg.Engine.Replicates),
		)
		if err := a.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	a.logger.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := a.server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	if err := a.tracing.Shutdown(shutdownCtx); err != nil {
		a.logger.Warn("tracing shutdown failed", slog.String("error", err.Error()))
	}
	infrastructure.CloseLogFile()

	a.logger.Info("server stopped")
	return nil
}

// Shutdown stops the server immediately with the given context deadline.
func (a *Application) Shutdown(ctx context.Context) error {
	return a.server.Shutdown(ctx)
}
