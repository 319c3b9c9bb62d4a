package bootstrap

import (
	"fmt"
	"io"

	"fxrates-etl/internal/application"
	"fxrates-etl/internal/config"
	"fxrates-etl/internal/infrastructure/httpx"
	"fxrates-etl/internal/infrastructure/pg"
	"fxrates-etl/internal/infrastructure/provider"
	redisstore "fxrates-etl/internal/infrastructure/redis"
	"fxrates-etl/internal/infrastructure/sqlite"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// BuildStore picks the rate store from STORAGE.
func BuildStore(cfg config.Config, log *zap.Logger) (application.RateStore, error) {
	switch cfg.Storage {
	case "sqlite":
		return sqlite.NewStore(cfg.SQLitePath, log), nil
	case "pg":
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("%w: DATABASE_URL is required for STORAGE=pg", application.ErrConfiguration)
		}
		return pg.NewStore(cfg.DatabaseURL, log), nil
	default:
		return nil, fmt.Errorf("%w: unsupported STORAGE=%q", application.ErrConfiguration, cfg.Storage)
	}
}

// BuildFetcher returns the live provider, or the fixed one for dry runs.
func BuildFetcher(cfg config.Config, log *zap.Logger) (application.RateFetcher, error) {
	switch cfg.Provider {
	case "exchangeratehost":
		return &provider.ExchangeRateHostProvider{
			BaseURL: cfg.APIURL,
			APIKey:  cfg.APIKey,
			Source:  cfg.Source,
			Client:  httpx.New(cfg.HTTPTimeout),
			Log:     log,
		}, nil
	case "fake":
		return provider.NewFake(cfg.Source, nil), nil
	default:
		return nil, fmt.Errorf("%w: unsupported PROVIDER=%q", application.ErrConfiguration, cfg.Provider)
	}
}

// BuildRecorder builds the run status recorder if enabled (defaults to none).
func BuildRecorder(cfg config.Config) (application.RunRecorder, func(), error) {
	switch cfg.RunStatusBackend {
	case "", "none":
		return application.NoopRecorder{}, func() {}, nil
	case "redis":
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		store := redisstore.New(rdb, cfg.RunStatusKey, cfg.RunStatusTTL)
		return store, func() { _ = rdb.Close() }, nil
	default:
		return nil, func() {}, fmt.Errorf("%w: unsupported RUN_STATUS_BACKEND=%q", application.ErrConfiguration, cfg.RunStatusBackend)
	}
}

// BuildService wires the pipeline. The returned cleanup is always safe to call.
func BuildService(cfg config.Config, log *zap.Logger, out io.Writer) (*application.ETLService, func(), error) {
	if log == nil {
		log = zap.NewNop()
	}
	store, err := BuildStore(cfg, log)
	if err != nil {
		return nil, func() {}, err
	}
	fetcher, err := BuildFetcher(cfg, log)
	if err != nil {
		return nil, func() {}, err
	}
	recorder, cleanup, err := BuildRecorder(cfg)
	if err != nil {
		return nil, cleanup, err
	}
	svc := application.NewETLService(store, fetcher,
		application.WithLogger(log),
		application.WithOutput(out),
		application.WithRecorder(recorder),
	)
	return svc, cleanup, nil
}
