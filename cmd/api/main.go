package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"
	"github.com/sirupsen/logrus"

	"github.com/ObsidianSy/Monatary-Mind-sub000/internal/config"
	"github.com/ObsidianSy/Monatary-Mind-sub000/internal/handler"
	"github.com/ObsidianSy/Monatary-Mind-sub000/internal/integrations/keyrate"
	"github.com/ObsidianSy/Monatary-Mind-sub000/internal/middleware"
	"github.com/ObsidianSy/Monatary-Mind-sub000/internal/notify"
	"github.com/ObsidianSy/Monatary-Mind-sub000/internal/repository"
	"github.com/ObsidianSy/Monatary-Mind-sub000/internal/scheduler"
	"github.com/ObsidianSy/Monatary-Mind-sub000/internal/service"
)

func main() {
	// Initialize logger
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	// Load configuration
	cfg, err := config.NewConfig()
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}
	logLevel, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	// Initialize database
	db, err := sql.Open("postgres", cfg.DBConn)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize layers
	repo := repository.NewRepository(db)
	if err := repo.Ping(ctx); err != nil {
		logger.Fatalf("Failed to ping database: %v", err)
	}
	if err := repo.Migrate(ctx); err != nil {
		logger.Fatalf("Failed to migrate database: %v", err)
	}
	svc := service.NewService(repo, logger, service.WithLocation(cfg.SchedulerLocation))
	rates := keyrate.NewClient(cfg.KeyRateURL, cfg.KeyRateMargin, logger)
	h := handler.NewHandler(svc, rates, logger)

	if cfg.SchedulerEnabled {
		job := scheduler.NewInvoiceJob(svc, notify.NewSender(cfg, logger), rates, cfg.ReminderDays, logger)
		sched, err := scheduler.New(cfg.SchedulerSpec, cfg.SchedulerLocation, job, logger)
		if err != nil {
			logger.Fatalf("Failed to create scheduler: %v", err)
		}
		sched.Start()
		logger.Infof("Invoice job scheduled at %q (%s)", cfg.SchedulerSpec, cfg.SchedulerLocation)
		defer func() {
			stopCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			sched.Stop(stopCtx)
		}()
	}

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      h.Routes(middleware.Auth(cfg.JWTSecret)),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		logger.Infof("Starting server on %s", addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("Server failed: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("Server shutdown failed: %v", err)
	}
}
