package config

import "time"

const (
	DefaultAPIURL        = "http://api.exchangerate.host/live"
	DefaultSource        = "EUR"
	DefaultHTTPTimeout   = 15 * time.Second
	DefaultSQLitePath    = "fx.db"
	DefaultLogPath       = "fx.log"
	DefaultRunStatusKey  = "fxrates:etl:last_run"
	DefaultRunStatusTTL  = 7 * 24 * time.Hour
	DefaultPGMaxConns    = 1
	DefaultPGConnTimeout = 10 * time.Second
)
