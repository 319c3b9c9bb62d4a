package config

import (
	"fmt"
	"time"

	infraconfig "fxrates-etl/internal/infrastructure/config"

	"github.com/spf13/viper"
)

type Config struct {
	// Common
	LogPath   string
	LogLevel  string
	LogFormat string
	// Provider
	Provider    string
	APIURL      string
	APIKey      string
	Source      string
	HTTPTimeout time.Duration
	// Storage
	Storage     string
	SQLitePath  string
	DatabaseURL string
	// Run status (redis)
	RunStatusBackend string
	RunStatusKey     string
	RunStatusTTL     time.Duration
	RedisAddr        string
	RedisPassword    string
	RedisDB          int
}

func ms(d time.Duration) int64 { return d.Milliseconds() }

// Load reads environment variables and applies defaults.
func Load() Config {
	v := viper.New()
	v.SetDefault("LOG_PATH", infraconfig.DefaultLogPath)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "console")
	v.SetDefault("PROVIDER", "exchangeratehost")
	v.SetDefault("FX_API_URL", infraconfig.DefaultAPIURL)
	v.SetDefault("FX_API_KEY", "")
	v.SetDefault("FX_SOURCE", infraconfig.DefaultSource)
	v.SetDefault("HTTP_TIMEOUT_MS", ms(infraconfig.DefaultHTTPTimeout))
	v.SetDefault("STORAGE", "sqlite")
	v.SetDefault("SQLITE_PATH", infraconfig.DefaultSQLitePath)
	v.SetDefault("DATABASE_URL", "")
	v.SetDefault("RUN_STATUS_BACKEND", "none")
	v.SetDefault("RUN_STATUS_KEY", infraconfig.DefaultRunStatusKey)
	v.SetDefault("RUN_STATUS_TTL_MS", ms(infraconfig.DefaultRunStatusTTL))
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)
	v.AutomaticEnv()

	return Config{
		LogPath:          v.GetString("LOG_PATH"),
		LogLevel:         v.GetString("LOG_LEVEL"),
		LogFormat:        v.GetString("LOG_FORMAT"),
		Provider:         v.GetString("PROVIDER"),
		APIURL:           v.GetString("FX_API_URL"),
		APIKey:           v.GetString("FX_API_KEY"),
		Source:           v.GetString("FX_SOURCE"),
		HTTPTimeout:      msDef(v.GetInt64("HTTP_TIMEOUT_MS"), infraconfig.DefaultHTTPTimeout),
		Storage:          v.GetString("STORAGE"),
		SQLitePath:       v.GetString("SQLITE_PATH"),
		DatabaseURL:      v.GetString("DATABASE_URL"),
		RunStatusBackend: v.GetString("RUN_STATUS_BACKEND"),
		RunStatusKey:     v.GetString("RUN_STATUS_KEY"),
		RunStatusTTL:     msDef(v.GetInt64("RUN_STATUS_TTL_MS"), infraconfig.DefaultRunStatusTTL),
		RedisAddr:        v.GetString("REDIS_ADDR"),
		RedisPassword:    v.GetString("REDIS_PASSWORD"),
		RedisDB:          v.GetInt("REDIS_DB"),
	}
}

func msDef(n int64, def time.Duration) time.Duration {
	if n <= 0 {
		return def
	}
	return time.Duration(n) * time.Millisecond
}

// Validate checks the enum settings and the settings a chosen backend depends on.
// The API key is deliberately not checked here; the fetcher reports it inside the run.
func (c Config) Validate() error {
	switch c.Provider {
	case "exchangeratehost", "fake":
	default:
		return fmt.Errorf("unsupported PROVIDER=%q", c.Provider)
	}
	switch c.Storage {
	case "sqlite":
		if c.SQLitePath == "" {
			return fmt.Errorf("SQLITE_PATH is required for STORAGE=sqlite")
		}
	case "pg":
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required for STORAGE=pg")
		}
	default:
		return fmt.Errorf("unsupported STORAGE=%q", c.Storage)
	}
	switch c.RunStatusBackend {
	case "none", "redis":
	default:
		return fmt.Errorf("unsupported RUN_STATUS_BACKEND=%q", c.RunStatusBackend)
	}
	switch c.LogFormat {
	case "console", "json":
	default:
		return fmt.Errorf("unsupported LOG_FORMAT=%q", c.LogFormat)
	}
	return nil
}
