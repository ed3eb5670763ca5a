package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"orcamento/internal/amqp"
	"orcamento/internal/config"
	apphttp "orcamento/internal/http"
	applog "orcamento/internal/log"
	"orcamento/internal/services"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	// Load .env for local development; real environment wins
	if err := config.LoadDotEnv(); err != nil {
		return err
	}

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return err
	}

	level, _ := applog.ParseLevel(cfg.LogLevel)
	logger := applog.New(applog.Config{
		Level:     level,
		Component: applog.ComponentApp,
		Format:    cfg.LogFormat,
		Output:    os.Stdout,
	})
	applog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var publisher services.EventPublisher
	if cfg.AMQPEnabled() {
		p, err := amqp.NewPublisher(ctx, cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue, amqp.DefaultDialOptions(), logger)
		if err != nil {
			// events are best effort, the API still works without them
			logger.Log(ctx, slog.LevelWarn, "AMQP unavailable, continuing without event publishing",
				applog.NewFields().
					WithOperation(applog.OpStartup).
					WithError(err).
					WithErrorType(applog.ErrorTypeNetwork))
		} else {
			publisher = p
		}
	}

	svc := services.NewBudgetService(services.Options{
		Publisher:   publisher,
		Logger:      logger,
		RecentLimit: cfg.RecentLimit,
	})
	defer func() {
		if err := svc.Close(); err != nil {
			logger.Error("Failed to close service", applog.FieldError, err)
		}
	}()

	srv, err := apphttp.NewServer(apphttp.ServerConfig{
		Addr:      ":" + cfg.Port,
		RateLimit: cfg.RateLimit,
	}, svc, logger)
	if err != nil {
		return fmt.Errorf("create server: %w", err)
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("Starting orcamento server",
			"port", cfg.Port,
			"amqp_enabled", publisher != nil,
			"recent_limit", cfg.RecentLimit)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutdown signal received")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Error("Server stopped with error", applog.FieldError, err)
		return err
	}
	logger.Info("Server stopped gracefully")
	return nil
}
