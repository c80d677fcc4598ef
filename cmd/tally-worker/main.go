// tally-worker consumes record change events from the broker and appends
// them to the audit log. It runs alongside the web server and requires a
// reachable AMQP broker.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"tally/internal/amqp"
	"tally/internal/config"
	"tally/internal/log"
	"tally/internal/storage"
)

func main() {
	logger := log.New(log.Config{
		Level:     log.DefaultConfig().Level,
		Component: log.ComponentWorker,
	})
	log.SetDefault(logger)

	if err := godotenv.Load(); err == nil {
		logger.Info("Loaded environment from .env file")
	}

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Invalid configuration", log.FieldError, err)
		os.Exit(1)
	}
	if cfg.AMQPURL == "" {
		logger.Error("AMQP_URL is required for the worker")
		os.Exit(1)
	}

	store, err := storage.NewSQLiteRepository(cfg.SQLiteDBPath)
	if err != nil {
		logger.Error("Failed to open database", log.FieldError, err, "path", cfg.SQLiteDBPath)
		os.Exit(1)
	}
	defer store.Close()

	events, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		logger.Error("Failed to connect to AMQP broker", log.FieldError, err)
		os.Exit(1)
	}
	defer events.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigChan
		logger.Info("Shutdown signal received", "signal", sig.String())
		cancel()
	}()

	logger.Info("Audit worker started", "queue", cfg.AMQPQueue)

	err = events.ConsumeRecordEvents(ctx, func(ev *amqp.RecordEvent) error {
		if err := store.InsertAuditEntry(ctx, storage.AuditEntry{
			Entity:     ev.Entity,
			Action:     ev.Action,
			RecordID:   ev.RecordID,
			UserID:     ev.UserID,
			OccurredAt: ev.OccurredAt,
		}); err != nil {
			return err
		}
		logger.InfoContext(ctx, "Audit entry recorded",
			log.FieldEntity, ev.Entity,
			log.FieldAction, ev.Action,
			log.FieldRecordID, ev.RecordID,
			log.FieldUserID, ev.UserID)
		return nil
	})
	if err != nil && ctx.Err() == nil {
		logger.Error("Consumer stopped with error", log.FieldError, err)
		os.Exit(1)
	}

	logger.Info("Audit worker stopped gracefully")
}
