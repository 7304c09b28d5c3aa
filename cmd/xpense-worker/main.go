package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/deepmavani/XpenseTracer/internal/amqp"
	"github.com/deepmavani/XpenseTracer/internal/backend"
	"github.com/deepmavani/XpenseTracer/internal/cli"
	"github.com/deepmavani/XpenseTracer/internal/storage"
	"github.com/deepmavani/XpenseTracer/internal/worker"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger()

	logger.Info("Starting xpense-worker")

	cfg := cli.LoadAndValidateConfig(logger)

	// The archive always lives in SQLite, whatever backend the server uses.
	archiveRepo, err := storage.NewSQLiteRepository(cfg.SQLiteDBPath)
	if err != nil {
		logger.Error("Failed to initialize SQLite repository", "error", err, "path", cfg.SQLiteDBPath)
		os.Exit(1)
	}
	defer archiveRepo.Close()

	// Snapshot store for reconciliation, matching the server's backend.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	archiveWorker := worker.NewArchiveWorker(archiveRepo, archiveRepo)
	if cfg.DataBackend != string(backend.SQLiteBackend) {
		result := cli.InitBackend(ctx, logger, cfg)
		archiveWorker = worker.NewArchiveWorker(archiveRepo, result.Store)
		if result.Cleanup != nil {
			defer func() {
				if err := result.Cleanup(); err != nil {
					logger.Error("Backend cleanup failed", "error", err)
				}
			}()
		}
	}

	var amqpClient *amqp.Client
	if cfg.AMQPURL != "" {
		amqpClient, err = amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Error("Failed to initialize AMQP client", "error", err)
			os.Exit(1)
		}
		defer amqpClient.Close()
	} else {
		logger.Info("AMQP disabled - relying on periodic reconciliation only")
	}

	// On startup, archive anything the live stream may have missed.
	if err := archiveWorker.Reconcile(ctx); err != nil {
		logger.Error("Startup reconciliation failed", "error", err)
		// Don't exit - continue with normal operation
	}

	g, gctx := errgroup.WithContext(ctx)

	if amqpClient != nil {
		g.Go(func() error {
			err := amqpClient.ConsumeLedgerEvents(gctx, func(msg *amqp.LedgerEventMessage) error {
				return archiveWorker.HandleLedgerEvent(gctx, msg)
			})
			if err != nil && err != context.Canceled {
				logger.Error("Message consumption failed", "error", err)
				return err
			}
			return nil
		})
	}

	g.Go(func() error {
		ticker := time.NewTicker(cfg.ArchiveInterval)
		defer ticker.Stop()

		for {
			select {
			case <-gctx.Done():
				return nil
			case <-ticker.C:
				if err := archiveWorker.Reconcile(gctx); err != nil {
					logger.Error("Periodic reconciliation failed", "error", err)
				}
			}
		}
	})

	// Handle shutdown signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		logger.Info("Shutdown signal received", "signal", sig.String())
	case <-gctx.Done():
		logger.Info("Context cancelled")
	}

	logger.Info("Shutting down worker...")
	cancel()

	waitDone := make(chan error, 1)
	go func() { waitDone <- g.Wait() }()

	select {
	case err := <-waitDone:
		if err != nil && err != context.Canceled {
			logger.Error("Worker exited with error", "error", err)
		}
		logger.Info("Worker shutdown complete")
	case <-time.After(30 * time.Second):
		logger.Warn("Shutdown timeout reached")
	}
}
