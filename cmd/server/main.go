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

	"golang.org/x/sync/errgroup"

	"github.com/Simplici0/printstock/internal/config"
	"github.com/Simplici0/printstock/internal/db"
	"github.com/Simplici0/printstock/internal/inventory"
	"github.com/Simplici0/printstock/internal/logger"
	"github.com/Simplici0/printstock/internal/migrations"
	"github.com/Simplici0/printstock/internal/seed"
	"github.com/Simplici0/printstock/internal/store"
)

func main() {
	if err := run(); err != nil {
		logger.Error(context.Background(), "server stopped", logger.ErrorF(err))
		_ = logger.Sync()
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	if err := logger.Init(cfg.LogLevel, cfg.LogJSON); err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	for _, w := range cfg.Warnings() {
		logger.Warn(ctx, "configuration warning", logger.String("detail", w))
	}

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer database.Close()

	if err := migrations.Up(database); err != nil {
		return fmt.Errorf("run database migrations: %w", err)
	}

	stats, err := seed.Run(ctx, database, seed.Config{
		AdminEmail:    cfg.AdminEmail,
		AdminPassword: cfg.AdminPassword,
	})
	if err != nil {
		return err
	}
	logger.Info(ctx, "seed finished", logger.Int("inserts", stats.Inserts), logger.Int("updates", stats.Updates))

	st := store.New(database)
	auth, err := newAuthService(st, cfg.SessionSecret)
	if err != nil {
		return err
	}
	srv := &server{auth: auth, inv: inventory.NewService(st)}

	httpServer := &http.Server{
		Addr:              cfg.Address(),
		Handler:           srv.routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	eg, egCtx := errgroup.WithContext(ctx)

	eg.Go(func() error {
		logger.Info(egCtx, "listening",
			logger.String("address", httpServer.Addr),
			logger.String("env", cfg.AppEnv),
		)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	eg.Go(func() error {
		<-egCtx.Done()

		//nolint:contextcheck
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()

		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		logger.Info(shutdownCtx, "server stopped")
		return nil
	})

	return eg.Wait()
}
