package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"github.com/vyrlabs/vyr/internal/baseline"
	"github.com/vyrlabs/vyr/internal/config"
	"github.com/vyrlabs/vyr/internal/migrations/postgres"
	xredis "github.com/vyrlabs/vyr/internal/redis"
	"github.com/vyrlabs/vyr/internal/repository"
	"github.com/vyrlabs/vyr/internal/server"
	"github.com/vyrlabs/vyr/internal/service/action"
	"github.com/vyrlabs/vyr/internal/service/ingest"
	"github.com/vyrlabs/vyr/internal/service/state"
	"github.com/vyrlabs/vyr/internal/service/user"
	"github.com/vyrlabs/vyr/internal/storage"
	"github.com/vyrlabs/vyr/internal/version"
	"github.com/vyrlabs/vyr/internal/xslog"
)

const keyPort = "port"

func main() {
	_ = godotenv.Load()

	logger := xslog.NewLoggerFromEnv(os.Stdout)
	slog.SetDefault(logger)

	ctx := context.Background()
	if err := run(ctx, logger); err != nil {
		logger.ErrorContext(ctx, "fatal error", xslog.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, logger *slog.Logger) error {
	cfg, err := config.Read()
	if err != nil {
		return fmt.Errorf("failed to read config: %w", err)
	}

	pool, err := initPostgres(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize postgres: %w", err)
	}
	defer pool.Close()

	redisClient, err := xredis.New(ctx, cfg.Redis)
	if err != nil {
		return fmt.Errorf("failed to initialize redis client: %w", err)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.ErrorContext(ctx, "failed to close redis client", xslog.Error(err))
		}
	}()

	repo := repository.NewPostgres(pool)
	snapshotCache := storage.NewRedisSnapshotCache(redisClient)
	baselineCache := storage.NewRedisBaselineCache(redisClient)

	baselines := baseline.NewProvider(repo.DailyMetrics, repo.PopulationRefs, baselineCache, baseline.DefaultCacheTTL)
	userService := user.NewPostgresService(pool, cfg.Auth.APIKeyPepper)
	stateService := state.NewService(repo.DailyMetrics, repo.Snapshots, repo.Actions, snapshotCache, baselines, nil)
	ingestService := ingest.NewService(repo.DailyMetrics, baselines, snapshotCache, stateService, nil)
	actionService := action.NewService(repo.Actions, nil)

	routes := server.Routes(server.Services{
		User:   userService,
		Ingest: ingestService,
		State:  stateService,
		Action: actionService,
	}, logger)

	httpServer := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           routes,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.InfoContext(ctx, "starting server",
			slog.String("version", version.Get()),
			slog.String(keyPort, cfg.Port))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.ErrorContext(ctx, "server error", xslog.Error(err))
		}
	}()

	<-done
	logger.InfoContext(ctx, "shutdown signal received, initiating graceful shutdown")

	shutdownCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	logger.InfoContext(ctx, "server stopped")
	return nil
}

func initPostgres(ctx context.Context, cfg config.Config, logger *slog.Logger) (*pgxpool.Pool, error) {
	logger.InfoContext(ctx, "initializing PostgreSQL")

	pool, err := pgxpool.New(ctx, cfg.Database.URL)
	if err != nil {
		return nil, fmt.Errorf("connect: %w", err)
	}

	if err := postgres.Apply(ctx, pool); err != nil {
		pool.Close()
		return nil, fmt.Errorf("migrations: %w", err)
	}

	return pool, nil
}
