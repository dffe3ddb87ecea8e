// Package app wires configuration, storage and services into a runnable
// server.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"medipred/internal/cache"
	"medipred/internal/config"
	"medipred/internal/repository"
	"medipred/internal/risk"
	"medipred/internal/service"
	"medipred/internal/transport/rest"
	"medipred/internal/transport/ws"
)

const connectTimeout = 10 * time.Second

// App holds the long-lived dependencies of a running server
type App struct {
	Config      *config.Config
	Logger      zerolog.Logger
	Predictions repository.PredictionRepo
	History     cache.HistoryCache
	Auth        *service.AuthService
	Service     *service.PredictionService
	Hub         *ws.Hub

	closers []func(context.Context) error
}

// NewLogger builds the process logger: console output in development, JSON
// elsewhere.
func NewLogger(cfg *config.Config, out io.Writer) zerolog.Logger {
	if out == nil {
		out = os.Stdout
	}
	logger := zerolog.New(out).With().Timestamp().Logger()
	if cfg.IsDev() {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: out}).With().Timestamp().Logger()
	}
	return logger.Level(cfg.Level())
}

// New connects the configured store and cache and builds the services
func New(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (*App, error) {
	a := &App{Config: cfg, Logger: logger}

	repo, err := a.openStore(ctx)
	if err != nil {
		a.Close(context.Background())
		return nil, err
	}
	a.Predictions = repo

	history, err := a.openHistory(ctx)
	if err != nil {
		a.Close(context.Background())
		return nil, err
	}
	a.History = history

	a.Auth = service.NewAuthService(cfg.JWTSecret)
	a.Hub = ws.NewHub(logger)
	a.closers = append(a.closers, func(context.Context) error {
		a.Hub.Close()
		return nil
	})

	a.Service = service.NewPredictionService(
		repo,
		history,
		risk.NewRegistry(nil),
		service.NewLatency(cfg.ScoringDelay),
		logger.With().Str("component", "predictions").Logger(),
	)
	// Inject broadcaster (hub implements service.Broadcaster)
	a.Service.SetBroadcaster(a.Hub)

	return a, nil
}

// Container returns the router dependencies for the app
func (a *App) Container() *rest.Container {
	return &rest.Container{
		AuthService:       a.Auth,
		PredictionService: a.Service,
		WSHub:             a.Hub,
		CORSOrigins:       a.Config.CORSOrigins,
		Logger:            a.Logger,
	}
}

// Close releases every connection in reverse order of acquisition
func (a *App) Close(ctx context.Context) error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](ctx); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}

func (a *App) openStore(ctx context.Context) (repository.PredictionRepo, error) {
	switch a.Config.StoreDriver {
	case config.DriverPostgres:
		pool, err := OpenPostgres(ctx, a.Config)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, func(context.Context) error {
			pool.Close()
			return nil
		})
		if err := repository.MigratePG(ctx, pool); err != nil {
			return nil, fmt.Errorf("migrate predictions table: %w", err)
		}
		a.Logger.Info().Str("driver", config.DriverPostgres).Msg("connected to prediction store")
		return repository.NewPGPredictionRepo(pool), nil

	default:
		client, err := OpenMongo(ctx, a.Config)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, client.Disconnect)
		db := client.Database(a.Config.MongoDB)
		if err := repository.EnsurePredictionIndexes(ctx, db); err != nil {
			return nil, fmt.Errorf("ensure prediction indexes: %w", err)
		}
		a.Logger.Info().Str("driver", config.DriverMongo).Str("database", a.Config.MongoDB).Msg("connected to prediction store")
		return repository.NewPredictionRepo(db), nil
	}
}

func (a *App) openHistory(ctx context.Context) (cache.HistoryCache, error) {
	if a.Config.RedisURL == "" {
		a.Logger.Warn().Msg("REDIS_URL not set, history cache disabled")
		return cache.NewNoopHistoryCache(), nil
	}

	rdb, err := OpenRedis(ctx, a.Config.RedisURL)
	if err != nil {
		return nil, err
	}
	a.closers = append(a.closers, func(context.Context) error { return rdb.Close() })
	a.Logger.Info().Dur("ttl", a.Config.HistoryTTL).Msg("connected to redis history cache")
	return cache.NewHistoryCache(rdb, a.Config.HistoryTTL), nil
}

// OpenMongo connects to MongoDB and pings the primary
func OpenMongo(ctx context.Context, cfg *config.Config) (*mongo.Client, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		return nil, fmt.Errorf("connect to mongodb: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongodb: %w", err)
	}
	return client, nil
}

// OpenPostgres creates a pgx pool sized from DB_MAX_CONNS
func OpenPostgres(ctx context.Context, cfg *config.Config) (*pgxpool.Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse DATABASE_URL: %w", err)
	}
	if cfg.DBMaxConns > 0 {
		poolCfg.MaxConns = cfg.DBMaxConns
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("create postgres pool: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return pool, nil
}

// OpenRedis connects to Redis. Both redis:// URLs and bare host:port
// addresses are accepted.
func OpenRedis(ctx context.Context, rawURL string) (*redis.Client, error) {
	opts, err := RedisOptions(rawURL)
	if err != nil {
		return nil, err
	}
	rdb := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return rdb, nil
}

// RedisOptions parses REDIS_URL
func RedisOptions(rawURL string) (*redis.Options, error) {
	if !strings.Contains(rawURL, "://") {
		return &redis.Options{Addr: rawURL}, nil
	}
	opts, err := redis.ParseURL(rawURL)
	if err != nil {
		return nil, fmt.Errorf("parse REDIS_URL: %w", err)
	}
	return opts, nil
}
