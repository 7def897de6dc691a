package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/octofit/dashboard/internal/api"
	"github.com/octofit/dashboard/internal/backend"
	"github.com/octofit/dashboard/internal/config"
	"github.com/octofit/dashboard/internal/dashboard"
	"github.com/octofit/dashboard/internal/endpoint"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	setupLogger(cfg.LogLevel)

	resolver := endpoint.NewResolver(cfg.CodespaceName, cfg.APIBaseURL)
	client := backend.NewClient(backend.WithTimeout(cfg.BackendTimeout))
	store := dashboard.NewStore(cfg.ViewTTL)
	service := dashboard.NewService(resolver, client, store)

	var csrfKey []byte
	if cfg.CSRFEnabled() {
		csrfKey = []byte(cfg.CSRFKey)
	} else {
		slog.Warn("CSRF_KEY not set; edit forms are not CSRF protected")
	}

	router, err := api.NewRouter(api.RouterDeps{
		Views:          service,
		Checker:        client,
		HealthProbeURL: service.Endpoint(dashboard.Users.Resource),
		Version:        cfg.Version,
		CSRFKey:        csrfKey,
		CSRFSecure:     cfg.CSRFSecure,
	})
	if err != nil {
		slog.Error("failed to create router", "error", err)
		os.Exit(1)
	}

	reaperCtx, stopReaper := context.WithCancel(context.Background())
	defer stopReaper()
	go store.Start(reaperCtx, cfg.ViewReapInterval)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("starting OctoFit dashboard", "port", cfg.Port, "version", cfg.Version,
			"backend", resolver.URL(dashboard.Users.Resource))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		slog.Info("shutting down server", "signal", sig.String())
	case err := <-serverErr:
		slog.Error("server error", "error", err)
		os.Exit(1)
	}

	stopReaper()

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped gracefully")
}

func setupLogger(level string) {
	var logLevel slog.Level
	switch level {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	})
	slog.SetDefault(slog.New(handler))
}
