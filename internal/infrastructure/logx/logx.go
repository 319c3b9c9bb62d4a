package logx

import (
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config describes where and how run logs are written.
type Config struct {
	// OutputPaths are zap sink URLs or file paths; files are opened for append.
	OutputPaths []string
	Level       string
	// Encoding is "console" (human-readable, " | " separated) or "json".
	Encoding string
}

// New builds a logger from cfg. Nothing here touches process-wide logging state.
func New(cfg Config) (*zap.Logger, error) {
	zapCfg := zap.NewProductionConfig()
	zapCfg.Sampling = nil
	zapCfg.DisableStacktrace = true
	zapCfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	zapCfg.ErrorOutputPaths = []string{"stderr"}

	if len(cfg.OutputPaths) > 0 {
		zapCfg.OutputPaths = cfg.OutputPaths
	}
	if cfg.Level != "" {
		if err := zapCfg.Level.UnmarshalText([]byte(strings.ToLower(cfg.Level))); err != nil {
			return nil, err
		}
	}
	if cfg.Encoding == "console" {
		zapCfg.Encoding = "console"
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
		zapCfg.EncoderConfig.ConsoleSeparator = " | "
		zapCfg.EncoderConfig.CallerKey = zapcore.OmitKey
	}
	return zapCfg.Build()
}
