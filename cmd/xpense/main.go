package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/deepmavani/XpenseTracer/internal/amqp"
	"github.com/deepmavani/XpenseTracer/internal/cli"
	apphttp "github.com/deepmavani/XpenseTracer/internal/http"
	"github.com/deepmavani/XpenseTracer/internal/services"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger()

	cfg := cli.LoadAndValidateConfig(logger)

	ctx := context.Background()
	backendResult := cli.InitBackend(ctx, logger, cfg)

	initialBalance, err := cfg.InitialBalanceMoney()
	if err != nil {
		logger.Error("Failed to parse initial balance", "error", err)
		os.Exit(1)
	}

	// AMQP is optional. Without a broker the wallet still runs, only the
	// archive stream goes dark.
	var events services.EventPublisher
	var amqpClient *amqp.Client
	if cfg.AMQPURL != "" {
		amqpClient, err = amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Error("Failed to initialize AMQP client", "error", err)
			os.Exit(1)
		}
		defer amqpClient.Close()
		events = amqpClient
		logger.Info("AMQP publisher initialized", "exchange", cfg.AMQPExchange)
	} else {
		logger.Info("AMQP disabled - no AMQP_URL provided")
	}

	wallet, err := services.NewWalletService(ctx, backendResult.Store, events, initialBalance)
	if err != nil {
		logger.Error("Failed to initialize wallet service", "error", err)
		os.Exit(1)
	}
	if backendResult.Cleanup != nil {
		wallet = wallet.WithCleanup(backendResult.Cleanup)
	}
	defer func() {
		if err := wallet.Close(); err != nil {
			logger.Error("Wallet cleanup failed", "error", err)
		}
	}()

	srv := apphttp.NewServer(":"+cfg.Port, wallet, cfg.PageSize)
	srv.MaxHeaderBytes = 1 << 16 // 64KB

	// Graceful shutdown handling
	shutdownCtx, done := cli.GracefulShutdown(logger, 30*time.Second, func() {
		sctx, cancel := context.WithTimeout(context.Background(), 25*time.Second)
		defer cancel()
		if err := srv.Shutdown(sctx); err != nil {
			logger.Error("Server shutdown error", "error", err)
		}
	})

	logger.Info("Starting xpense server", "port", cfg.Port, "backend", cfg.DataBackend)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("Server error", "error", err, "port", cfg.Port)
		os.Exit(1)
	}

	cli.WaitForShutdown(shutdownCtx, done)
	logger.Info("Server stopped gracefully")
}
