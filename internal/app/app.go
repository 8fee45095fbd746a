package app

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/gokatarajesh/trivia-api/internal/config"
	"github.com/gokatarajesh/trivia-api/internal/db/repository"
	sqlcgen "github.com/gokatarajesh/trivia-api/internal/db/sqlc"
	"github.com/gokatarajesh/trivia-api/internal/db/sqlite"
	"github.com/gokatarajesh/trivia-api/internal/logging"
	"github.com/gokatarajesh/trivia-api/internal/metrics"
	"github.com/gokatarajesh/trivia-api/internal/question"
	"github.com/gokatarajesh/trivia-api/internal/ratelimit"
	"github.com/gokatarajesh/trivia-api/internal/server"
)

// Application aggregates shared infrastructure (store, cache, HTTP server).
type Application struct {
	cfg    *config.App
	logger zerolog.Logger

	store   question.Store
	closers []func()
	redis   *redis.Client
	http    *http.Server
}

// New bootstraps logger, the configured store, optional Redis and the
// HTTP server.
func New(ctx context.Context, cfg *config.App) (*Application, error) {
	logger := logging.New(cfg.Name, cfg.Env)
	logger.Info().Str("driver", cfg.Storage.Driver).Msg("starting application bootstrap")

	store, closeStore, err := OpenStore(ctx, cfg)
	if err != nil {
		return nil, err
	}
	a := &Application{
		cfg:     cfg,
		logger:  logger,
		store:   store,
		closers: []func(){closeStore},
	}

	var limiter *ratelimit.Limiter
	if cfg.Redis.Enabled() {
		a.redis = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			DB:       cfg.Redis.DB,
			PoolSize: cfg.Redis.PoolSize,
		})
		limiter = ratelimit.New(ratelimit.NewRedisCounter(a.redis), cfg.RateLimit.Requests, cfg.RateLimit.Window)
	} else {
		logger.Warn().Msg("REDIS_ADDR not set; rate limiting disabled")
	}

	reg := metrics.New("trivia")
	questionSvc := question.NewService(store, logger, question.ServiceOptions{
		PageSize: cfg.Pagination.QuestionsPerPage,
		Recorder: reg,
	})

	a.http = server.NewHTTPServer(cfg, logger, server.Dependencies{
		Questions: question.NewHTTPHandler(questionSvc, logger),
		Store:     store,
		Redis:     a.redis,
		Limiter:   limiter,
		Metrics:   reg,
	})
	return a, nil
}

// OpenStore connects the question store selected by DB_DRIVER and returns
// a function releasing it.
func OpenStore(ctx context.Context, cfg *config.App) (question.Store, func(), error) {
	switch cfg.Storage.Driver {
	case config.DriverSQLite:
		store, err := sqlite.Open(ctx, cfg.Storage.SQLitePath, cfg.Storage.SQLiteSeed)
		if err != nil {
			return nil, nil, fmt.Errorf("open sqlite: %w", err)
		}
		return store, func() { _ = store.Close() }, nil
	default:
		poolCfg, err := pgxpool.ParseConfig(cfg.Postgres.DSN())
		if err != nil {
			return nil, nil, fmt.Errorf("parse postgres config: %w", err)
		}
		poolCfg.MaxConns = cfg.Postgres.MaxConns
		pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
		if err != nil {
			return nil, nil, fmt.Errorf("connect postgres: %w", err)
		}
		return repository.NewStore(sqlcgen.New(pool), pool), pool.Close, nil
	}
}

// Run starts the HTTP server and waits for termination signals.
func (a *Application) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		a.logger.Info().Str("addr", a.cfg.HTTPAddr).Msg("http server listening")
		if err := a.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	var runErr error
	select {
	case sig := <-sigCh:
		a.logger.Info().Str("signal", sig.String()).Msg("shutdown signal received")
	case err := <-errCh:
		runErr = fmt.Errorf("http server error: %w", err)
	case <-ctx.Done():
		a.logger.Warn().Msg("context canceled")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.GracefulShutdownTimeout)
	defer cancel()

	if err := a.http.Shutdown(shutdownCtx); err != nil {
		a.logger.Error().Err(err).Msg("http shutdown error")
	}

	for _, closeFn := range a.closers {
		closeFn()
	}
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			a.logger.Error().Err(err).Msg("redis shutdown error")
		}
	}

	a.logger.Info().Msg("shutdown complete")
	return runErr
}
