package main

import (
	"bank_ledger/internal/config"
	"bank_ledger/internal/processor"
	"bank_ledger/internal/repository/memory"
	"bank_ledger/internal/service"
	"bank_ledger/internal/shell"
	"bank_ledger/pkg/metrics"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
)

const (
	appName = "bank_ledger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	logger := setupLogger(cfg, os.Stderr)
	logger.Info("Starting application",
		slog.String("name", appName),
		slog.String("currency", cfg.Currency))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	metricsCollector := metrics.NewMetricsCollector(logger)
	clientRepo := memory.NewClientRepository()
	accountRepo := memory.NewAccountRepository()
	directory := service.NewDirectory(clientRepo, accountRepo, cfg.CheckingPolicy, metricsCollector, logger)
	txProcessor := processor.NewTransactionProcessor(clientRepo, accountRepo, metricsCollector, logger)

	var metricsServer *http.Server
	if cfg.MetricsAddr != "" {
		metricsServer = metricsCollector.StartMetricsServer(cfg.MetricsAddr)
	}

	sh := shell.New(directory, txProcessor, cfg.Currency, os.Stdout, logger)
	if err := sh.Run(ctx, os.Stdin); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("Shell stopped", slog.String("error", err.Error()))
	}

	shutdown(logger, metricsServer)
	logger.Info("Application shutdown complete")
}

func setupLogger(cfg *config.Config, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}

	var handler slog.Handler
	if cfg.LogFormat == "text" {
		handler = slog.NewTextHandler(w, opts)
	} else {
		handler = slog.NewJSONHandler(w, opts)
	}
	return slog.New(handler)
}

func shutdown(logger *slog.Logger, metricsServer *http.Server) {
	if metricsServer == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := metricsServer.Shutdown(ctx); err != nil {
		logger.Error("Metrics server shutdown failed", slog.String("error", err.Error()))
	}
}
