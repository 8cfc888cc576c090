package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ekaterinavoj/validity-view/internal/bootstrap"
	"github.com/ekaterinavoj/validity-view/internal/config"
	"github.com/ekaterinavoj/validity-view/internal/infrastructure/repository"
	"github.com/ekaterinavoj/validity-view/internal/logging"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	cfg, err := config.Load(config.DefaultEnvFiles...)
	logger := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		logger.WithError(err).Fatal("invalid configuration")
	}
	if err := cfg.RequireDatabase(); err != nil {
		logger.WithError(err).Fatal("invalid configuration")
	}

	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{})
	if err != nil {
		logger.WithError(err).Fatal("failed to connect database")
	}
	if cfg.AutoMigrate {
		if err := repository.Migrate(db); err != nil {
			logger.WithError(err).Fatal("failed to migrate database")
		}
	}

	pool, err := pgxpool.New(context.Background(), cfg.DatabaseURL)
	if err != nil {
		logger.WithError(err).Fatal("failed to create pgx pool")
	}
	defer pool.Close()

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	server, err := bootstrap.NewHTTPServer(bootstrap.Dependencies{
		DB:       db,
		Pool:     pool,
		Config:   cfg,
		Logger:   logger,
		Registry: registry,
	})
	if err != nil {
		logger.WithError(err).Fatal("failed to build server")
	}

	sweepCtx, stopSweep := context.WithCancel(context.Background())
	defer stopSweep()
	go server.Sessions.Run(sweepCtx, bootstrap.SessionSweepInterval)

	go func() {
		logger.WithField("port", cfg.Port).Info("http server listening")
		if err := server.Echo.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Fatal("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	stopSweep()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Echo.Shutdown(ctx); err != nil {
		logger.WithError(err).Fatal("graceful shutdown failed")
	}
}
