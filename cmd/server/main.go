package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus"
	goredis "github.com/redis/go-redis/v9"

	"github.com/pscheid92/pollpulse/internal/adapter/httpserver"
	"github.com/pscheid92/pollpulse/internal/adapter/memory"
	"github.com/pscheid92/pollpulse/internal/adapter/metrics"
	"github.com/pscheid92/pollpulse/internal/adapter/postgres"
	"github.com/pscheid92/pollpulse/internal/adapter/redis"
	"github.com/pscheid92/pollpulse/internal/app"
	"github.com/pscheid92/pollpulse/internal/domain"
	"github.com/pscheid92/pollpulse/internal/platform/config"
	"github.com/pscheid92/pollpulse/internal/platform/logging"
	"github.com/pscheid92/pollpulse/internal/platform/retry"
	"github.com/pscheid92/pollpulse/internal/platform/version"
	"github.com/pscheid92/pollpulse/internal/sentiment"
)

const connectTimeout = 10 * time.Second

// storage bundles the repositories of one backend with its readiness probe and cleanup.
type storage struct {
	polls     domain.PollRepository
	responses domain.ResponseRepository
	ping      func(ctx context.Context) error
	close     func()
}

func setupConfig() *config.Config {
	cfg, err := config.Load()
	if err != nil {
		// Use log before slog is initialized
		log.Fatalf("Failed to load config: %v", err)
	}
	return cfg
}

func connectPolicy(cfg *config.Config, clock clockwork.Clock, target string) retry.Policy {
	return retry.Policy{
		MaxAttempts:    cfg.StartupConnectAttempts,
		InitialBackoff: 500 * time.Millisecond,
		MaxBackoff:     5 * time.Second,
		Clock:          clock,
		OnRetry: func(attempt int, err error, backoff time.Duration) {
			slog.Warn("Storage not reachable, retrying", "target", target, "attempt", attempt, "backoff", backoff, "error", err)
		},
	}
}

func setupMemory(clock clockwork.Clock) *storage {
	polls := memory.NewPollRepository(clock)
	return &storage{
		polls:     polls,
		responses: memory.NewResponseRepository(clock, polls),
		ping:      polls.Ping,
		close:     func() {},
	}
}

func setupPostgres(ctx context.Context, cfg *config.Config, clock clockwork.Clock, m *metrics.StorageMetrics) (*storage, error) {
	tracer := postgres.NewMetricsTracer(m)

	pool, err := retry.Do(ctx, connectPolicy(cfg, clock, "postgres"), func(ctx context.Context) (*pgxpool.Pool, error) {
		ctx, cancel := context.WithTimeout(ctx, connectTimeout)
		defer cancel()
		return postgres.Connect(ctx, cfg.DatabaseURL, tracer)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := postgres.RunMigrationsWithLock(ctx, pool); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	polls := postgres.NewPollRepo(pool)
	return &storage{
		polls:     polls,
		responses: postgres.NewResponseRepo(pool),
		ping:      polls.Ping,
		close:     pool.Close,
	}, nil
}

func setupRedis(ctx context.Context, cfg *config.Config, clock clockwork.Clock, m *metrics.StorageMetrics) (*storage, error) {
	hooks := []goredis.Hook{redis.NewMetricsHook(m), redis.NewCircuitBreakerHook(m)}

	client, err := retry.Do(ctx, connectPolicy(cfg, clock, "redis"), func(ctx context.Context) (*goredis.Client, error) {
		ctx, cancel := context.WithTimeout(ctx, connectTimeout)
		defer cancel()
		return redis.NewClient(ctx, cfg.RedisURL, hooks...)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	polls := redis.NewPollRepo(client, clock)
	return &storage{
		polls:     polls,
		responses: redis.NewResponseRepo(client, clock),
		ping:      polls.Ping,
		close:     func() { _ = client.Close() },
	}, nil
}

func setupStorage(ctx context.Context, cfg *config.Config, clock clockwork.Clock, reg prometheus.Registerer) (*storage, error) {
	switch cfg.StorageBackend {
	case config.BackendPostgres:
		return setupPostgres(ctx, cfg, clock, metrics.NewStorageMetrics(reg))
	case config.BackendRedis:
		return setupRedis(ctx, cfg, clock, metrics.NewStorageMetrics(reg))
	default:
		return setupMemory(clock), nil
	}
}

func runGracefulShutdown(srv *httpserver.Server, timeout time.Duration) <-chan struct{} {
	done := make(chan struct{})
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		slog.Info("Shutdown signal received, cleaning up...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("Server shutdown error", "error", err)
		}

		close(done)
	}()

	return done
}

func main() {
	clock := clockwork.NewRealClock()

	cfg := setupConfig()

	logging.InitLogger(cfg.LogLevel, cfg.LogFormat)
	v := version.Get()
	slog.Info("Application starting", "env", cfg.AppEnv, "port", cfg.Port, "version", v.Version, "commit", v.Commit)

	reg := metrics.NewRegistry()

	store, err := setupStorage(context.Background(), cfg, clock, reg)
	if err != nil {
		slog.Error("Failed to set up storage", "backend", cfg.StorageBackend, "error", err)
		os.Exit(1)
	}
	defer store.close()

	classifier := sentiment.NewClassifier(sentiment.NewVaderScorer())
	appSvc := app.NewService(store.polls, store.responses, classifier, metrics.NewPollMetrics(reg), clock)

	healthChecks := []httpserver.HealthCheck{{Name: "storage", Check: store.ping}}
	srv := httpserver.NewServer(cfg, appSvc, metrics.NewHTTPMetrics(reg), metrics.Handler(reg), healthChecks)

	done := runGracefulShutdown(srv, cfg.ShutdownTimeout)

	if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("Server error", "error", err)
		os.Exit(1)
	}

	<-done
}
