package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/and161185/bookstore/internal/config"
	"github.com/and161185/bookstore/internal/limiter"
	"github.com/and161185/bookstore/internal/migrate"
	"github.com/and161185/bookstore/internal/repository/postgres"
	httpserver "github.com/and161185/bookstore/internal/server/http"
	"github.com/and161185/bookstore/internal/service"
)

func newServeCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(opts)
			if err != nil {
				return err
			}
			logger, err := newLogger(cfg.LogLevel)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return serve(ctx, cfg, logger)
		},
	}
}

// serve wires the store, services and HTTP server and blocks until ctx is done.
func serve(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	logger.Info("starting",
		zap.String("version", version),
		zap.String("buildDate", buildDate),
		zap.String("addr", cfg.HTTPAddr),
	)

	if cfg.MigrateOnStart {
		if err := migrate.Up(ctx, cfg.DatabaseURL); err != nil {
			logger.Error("migrate up", zap.Error(err))
			return err
		}
	}

	db, err := postgres.New(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Error("postgres.New", zap.Error(err))
		return err
	}
	defer db.Close()

	// Repositories
	accountRepo := postgres.NewAccountRepo(db)
	catalogRepo := postgres.NewCatalogRepo(db)

	lim := limiter.NewPG(db.Pool, cfg.LoginFailWindow, cfg.LoginMaxFails, cfg.LoginBlockFor)

	// Services
	svc := httpserver.Services{
		Accounts:  service.NewAccountService(accountRepo, catalogRepo, lim, cfg.BcryptCost),
		Catalog:   service.NewCatalogService(catalogRepo),
		Purchases: service.NewPurchaseService(postgres.NewPurchaseRepo(db), accountRepo),
		Addresses: service.NewAddressService(postgres.NewAddressRepo(db)),
		Feedback:  service.NewFeedbackService(postgres.NewFeedbackRepo(db)),
		Activity: service.NewActivityService(accountRepo, service.ActivityConfig{
			Window:            cfg.ActiveWindow,
			FrequentThreshold: cfg.FrequentLoginThreshold,
			InactiveRule:      service.InactiveRule(cfg.InactiveRule),
		}, time.Now),
	}

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           httpserver.New(svc, db, logger).Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", zap.String("addr", cfg.HTTPAddr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Warn("graceful shutdown timed out", zap.Error(err))
			_ = srv.Close()
		}
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", zap.Error(err))
			return err
		}
	}

	logger.Info("shutdown complete")
	return nil
}
