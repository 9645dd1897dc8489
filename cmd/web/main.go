package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"time"

	"retail-dashboard/internal/config"
	"retail-dashboard/internal/dataset"
	"retail-dashboard/internal/middleware"
	"retail-dashboard/internal/observability"
	"retail-dashboard/internal/presentation"
	"retail-dashboard/internal/server"
	"retail-dashboard/internal/services"
)

const version = "1.0.0"

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg.Logger)
	slog.SetDefault(logger)

	logger.Info("starting application",
		"version", version,
		"addr", cfg.Address(),
		"csv_file", cfg.Data.CSVFile,
		"profile", cfg.Dashboard.Profile,
	)

	profile, err := presentation.Lookup(cfg.Dashboard.Profile)
	if err != nil {
		logger.Error("failed to select dashboard profile", "error", err)
		os.Exit(1)
	}

	source := dataset.NewSource(cfg.Data.CSVFile, dataset.NewLoader(logger))
	analytics := services.NewAnalytics(source, services.Options{
		ViewTTL:     cfg.Dashboard.ViewTTL,
		PreviewRows: cfg.Dashboard.PreviewRows,
		Logger:      logger,
	})

	// A bad data file is fatal: there is no degraded mode.
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Data.LoadTimeout)
	start := time.Now()
	err = analytics.Load(ctx)
	cancel()
	if err != nil {
		logger.Error("failed to load sales data", "error", err, "data_format", dataset.IsDataFormat(err))
		os.Exit(1)
	}
	logger.Info("sales data loaded", "duration", time.Since(start))

	srv := server.NewServer(analytics, profile, logger, version)

	rateLimiter := middleware.NewRateLimiter(cfg.Security)

	middlewareChain := middleware.Chain(
		middleware.Recovery(logger),
		middleware.RequestID(),
		middleware.Logger(logger),
		middleware.Tracing(),
		middleware.SecurityHeaders(),
		middleware.CORS(cfg.Security),
		middleware.TrustedProxy(cfg.Security),
		middleware.RateLimit(rateLimiter, logger),
	)

	httpServer := &http.Server{
		Addr:         cfg.Address(),
		Handler:      middlewareChain(srv),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	gracefulServer := server.NewGracefulServer(httpServer, logger, cfg)
	gracefulServer.RegisterShutdownHook("view-cache", func(ctx context.Context) error {
		logger.Info("dropping cached dashboard views", "stats", analytics.Stats())
		analytics.Flush()
		return nil
	})

	if err := gracefulServer.ListenAndServe(); err != nil {
		logger.Error("server failed", "error", err)
		os.Exit(1)
	}

	logger.Info("application stopped gracefully")
}
