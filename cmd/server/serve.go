package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mamadbah2/stockdesk/internal/config"
	"github.com/mamadbah2/stockdesk/internal/repository/mongodb"
	"github.com/mamadbah2/stockdesk/internal/repository/sheets"
	"github.com/mamadbah2/stockdesk/internal/scheduler"
	"github.com/mamadbah2/stockdesk/internal/server/handlers"
	"github.com/mamadbah2/stockdesk/internal/server/router"
	"github.com/mamadbah2/stockdesk/internal/server/views"
	"github.com/mamadbah2/stockdesk/internal/service/activity"
	"github.com/mamadbah2/stockdesk/internal/service/session"
	"github.com/mamadbah2/stockdesk/pkg/clients/inventory"
	"github.com/mamadbah2/stockdesk/pkg/logger"
)

func newServeCmd(envFile *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the transaction form web server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServer(cmd.Context(), *envFile)
		},
	}
}

func runServer(parent context.Context, envFile string) error {
	if parent == nil {
		parent = context.Background()
	}

	cfg, err := config.Load(envFile)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	baseLogger := logger.Must(logger.New(cfg.App.Env))
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	journal := activity.NewJournal(logger.Named(baseLogger, "svc.activity"))

	if cfg.MongoDB.URI != "" {
		mongoRepo, err := mongodb.NewMongoDBRepository(parent, cfg.MongoDB.URI, cfg.MongoDB.DBName)
		if err != nil {
			return fmt.Errorf("init mongodb repository: %w", err)
		}
		defer func() {
			if err := mongoRepo.Close(context.Background()); err != nil {
				baseLogger.Error("failed to close mongodb connection", zap.Error(err))
			}
		}()
		journal.AddSink("mongodb", mongoRepo)
	} else {
		baseLogger.Warn("mongodb uri missing, activity journal disabled")
	}

	if cfg.Sheets.Enabled() {
		sheetsRepo, err := sheets.NewActivitySheetRepository(parent, cfg.Sheets, logger.Named(baseLogger, "repo.sheets"))
		if err != nil {
			return fmt.Errorf("init sheets repository: %w", err)
		}
		journal.AddSink("sheets", sheetsRepo)
	}

	inventoryClient := inventory.NewClient(cfg.Inventory)
	sessions := session.NewManager(inventoryClient, journal, logger.Named(baseLogger, "svc.session"))

	formHandler := handlers.NewFormHandler(sessions, journal, int(cfg.Session.IdleTimeout.Seconds()), logger.Named(baseLogger, "handlers.form"))
	engine := router.New(formHandler, views.Templates(), logger.Named(baseLogger, "router"))

	sched := scheduler.NewScheduler(cfg.Session, sessions, logger.Named(baseLogger, "scheduler"))
	if err := sched.Start(); err != nil {
		return err
	}
	defer sched.Stop()

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.Inventory.Timeout + 15*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	serverErr := make(chan error, 1)
	go func() {
		baseLogger.Info("server starting", zap.String("port", cfg.Server.Port), zap.String("inventory_api", cfg.Inventory.BaseURL))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case <-ctx.Done():
		baseLogger.Info("shutdown signal received")
	case err := <-serverErr:
		return fmt.Errorf("http server crashed: %w", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		baseLogger.Error("graceful shutdown failed", zap.Error(err))
	}
	return nil
}
