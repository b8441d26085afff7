package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"jobadmin/internal/amqp"
	"jobadmin/internal/config"
	applog "jobadmin/internal/log"
	"jobadmin/internal/mailer"
	"jobadmin/internal/sheets"
	gsheet "jobadmin/internal/sheets/google"
	"jobadmin/internal/storage"
	"jobadmin/internal/worker"
)

func main() {
	// Load .env file for local development (ignore errors in production/docker)
	_ = godotenv.Load()

	logger := applog.New(applog.Config{Component: applog.ComponentWorker})
	applog.SetDefault(logger)

	logger.Info("Starting jobadmin-worker")

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}

	repo, err := storage.NewSQLiteRepository(cfg.SQLiteDBPath)
	if err != nil {
		logger.Error("Failed to initialize SQLite repository", "error", err, "path", cfg.SQLiteDBPath)
		os.Exit(1)
	}
	defer repo.Close()

	// Ledger export is optional, the worker still delivers mail without it.
	var ledger sheets.Ledger
	if cfg.GoogleSpreadsheetID != "" {
		client, err := gsheet.NewFromEnv(context.Background())
		if err != nil {
			logger.Error("Failed to initialize Google Sheets client", "error", err)
			os.Exit(1)
		}
		ledger = client
		logger.Info("Google Sheets ledger initialized", "spreadsheet_id", cfg.GoogleSpreadsheetID)
	} else {
		logger.Info("Ledger export disabled - no GOOGLE_SPREADSHEET_ID provided")
	}

	var mail mailer.Mailer
	if cfg.MailAPIKey != "" {
		mail = mailer.NewAPIClient(cfg.MailAPIURL, cfg.MailAPIKey, cfg.MailFrom)
		logger.Info("Mail client initialized", "from", cfg.MailFrom)
	} else {
		logger.Info("Mail delivery disabled - no MAIL_API_KEY provided")
	}

	if cfg.AMQPURL == "" {
		logger.Error("AMQP_URL must be set for the worker")
		os.Exit(1)
	}
	amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPMailQueue, cfg.AMQPExportQueue)
	if err != nil {
		logger.Error("Failed to initialize AMQP client", "error", err)
		os.Exit(1)
	}
	defer amqpClient.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	w := worker.New(repo, ledger, mail, cfg.ResetBaseURL, cfg.SweepBatchSize)

	// Pick up entries whose export job was lost while the worker was down.
	logger.Info("Performing startup sweep...")
	if err := w.StartupSweep(ctx); err != nil {
		logger.Error("Startup sweep failed", "error", err)
		// Don't exit - continue with normal operation
	}

	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		return amqpClient.ConsumeResetMail(groupCtx, func(msg *amqp.ResetMailMessage) error {
			return w.HandleResetMail(groupCtx, msg)
		})
	})
	group.Go(func() error {
		return amqpClient.ConsumeEntryExport(groupCtx, func(msg *amqp.EntryExportMessage) error {
			return w.HandleEntryExport(groupCtx, msg)
		})
	})

	// Periodic sweep catches exports whose queue message never arrived.
	group.Go(func() error {
		ticker := time.NewTicker(cfg.SweepInterval)
		defer ticker.Stop()
		for {
			select {
			case <-groupCtx.Done():
				return groupCtx.Err()
			case <-ticker.C:
				if err := w.ProcessPending(groupCtx); err != nil {
					logger.Error("Periodic sweep failed", "error", err)
				}
			}
		}
	})

	go func() {
		if err := group.Wait(); err != nil && err != context.Canceled {
			logger.Error("Worker group failed", "error", err)
		}
		cancel()
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		logger.Info("Shutdown signal received", "signal", sig.String())
	case <-ctx.Done():
		logger.Info("Context cancelled")
	}

	logger.Info("Shutting down worker...")
	cancel()

	select {
	case <-time.After(5 * time.Second):
		logger.Warn("Shutdown timeout reached")
	case <-waitDone(group):
		logger.Info("Worker shutdown complete")
	}
}

func waitDone(group *errgroup.Group) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		_ = group.Wait()
		close(done)
	}()
	return done
}
