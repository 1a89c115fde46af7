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

	"github.com/prometheus/client_golang/prometheus"

	"github.com/osse101/QuickCooking_Go/internal/bootstrap"
	"github.com/osse101/QuickCooking_Go/internal/concurrency"
	"github.com/osse101/QuickCooking_Go/internal/config"
	"github.com/osse101/QuickCooking_Go/internal/handler"
	"github.com/osse101/QuickCooking_Go/internal/invariant"
	"github.com/osse101/QuickCooking_Go/internal/server"
	"github.com/osse101/QuickCooking_Go/internal/session"
	"github.com/osse101/QuickCooking_Go/internal/sse"
	"github.com/osse101/QuickCooking_Go/internal/worker"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := config.ValidateEnv(); err != nil {
		slog.Error("Environment validation failed", "error", err)
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	logFile, err := bootstrap.SetupLogger(cfg)
	if err != nil {
		slog.Error("Failed to set up logging", "error", err)
		os.Exit(1)
	}
	if logFile != nil {
		defer logFile.Close()
	}

	if err := run(cfg); err != nil {
		slog.Error("Server exited with error", "error", err)
		if logFile != nil {
			_ = logFile.Close()
		}
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	warnings, err := config.ValidateEnvWithWarnings(cfg)
	if err != nil {
		return err
	}
	for _, w := range warnings {
		slog.Warn("Configuration warning", "warning", w)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	eventBus, resilientPublisher, err := bootstrap.InitializeEventSystem(cfg)
	if err != nil {
		return err
	}
	if err := bootstrap.RegisterEventHandlers(bootstrap.EventHandlerDependencies{EventBus: eventBus}); err != nil {
		return err
	}

	eventHub := sse.NewHub()
	eventHub.Start()
	sse.NewSubscriber(eventHub, eventBus).Subscribe()

	game, err := bootstrap.LoadGame(ctx, cfg)
	if err != nil {
		return err
	}

	reporter := invariant.NewReporter(resilientPublisher)
	sessions := session.NewManager(
		game.Catalog,
		resilientPublisher,
		reporter,
		game.Options,
		cfg.SessionCacheSize,
		cfg.SessionTTL,
		concurrency.NewLockManager(),
	)

	tickWorker := worker.NewTickWorker(sessions, cfg.AutoTickInterval, worker.DefaultTickWorkers)
	tickWorker.Start(ctx)

	srv := server.NewServer(server.Options{
		Port:           cfg.Port,
		APIKey:         cfg.APIKey,
		TrustedProxies: cfg.TrustedProxies,
	}, server.Dependencies{
		Sessions: sessions,
		Catalog:  game.Catalog,
		Gatherer: prometheus.DefaultGatherer,
		Checkers: map[string]handler.HealthChecker{
			"events": resilientPublisher,
		},
		Events: eventHub,
	})

	serverErr := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case <-ctx.Done():
		slog.Info("Shutdown signal received")
	case err = <-serverErr:
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	bootstrap.GracefulShutdown(shutdownCtx, bootstrap.ShutdownComponents{
		Server:             srv,
		TickWorker:         tickWorker,
		Sessions:           sessions,
		EventHub:           eventHub,
		ResilientPublisher: resilientPublisher,
	})

	return err
}
