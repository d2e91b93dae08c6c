package main

import (
	"context"
	"errors"
	"os"
	"time"

	"expenselog/internal/cli"
	"expenselog/internal/log"
	"expenselog/internal/store/sqlite"
	"expenselog/internal/worker"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger(log.ComponentWorker)
	cfg := cli.LoadAndValidateConfig(logger)

	if cfg.AMQPURL == "" {
		logger.Error("AMQP_URL is required for the archive worker")
		os.Exit(1)
	}

	store, err := sqlite.New(cfg.SQLiteDBPath)
	if err != nil {
		logger.Error("Failed to initialize SQLite store", log.FieldError, err, log.FieldPath, cfg.SQLiteDBPath)
		os.Exit(1)
	}

	archiver := worker.NewArchiver(store, cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue, cfg.StatsInterval)

	ctx, done := cli.GracefulShutdown(logger, 30*time.Second, nil)

	logger.Info("Starting expenselog-worker",
		"queue", cfg.AMQPQueue,
		"stats_interval", cfg.StatsInterval)

	if err := archiver.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("Worker stopped", log.FieldError, err)
		os.Exit(1)
	}

	<-done
	if err := store.Close(); err != nil {
		logger.Error("Failed to close store", log.FieldError, err)
	}
	logger.Info("Worker stopped gracefully")
}
