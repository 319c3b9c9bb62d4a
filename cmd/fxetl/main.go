package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"fxrates-etl/internal/application"
	"fxrates-etl/internal/bootstrap"
	"fxrates-etl/internal/config"
	"fxrates-etl/internal/infrastructure/logx"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func init() {
	// a missing .env is fine; the environment may already carry everything
	_ = godotenv.Load()
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:           "fxetl",
		Short:         "Fetch today's FX rates and store them",
		Long:          "fxetl fetches the latest quotes for one base currency and inserts them into the rate table, keeping the first value stored per (date, symbol).",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		Run: func(cmd *cobra.Command, _ []string) {
			runOnce(cmd.Context(), stdout, stderr)
		},
	}
}

// runOnce never fails; a broken setup is reported like a failed run.
func runOnce(ctx context.Context, stdout, stderr io.Writer) {
	cfg := config.Load()

	// the logger comes first so a rejected config still reaches the log file
	encoding := cfg.LogFormat
	if encoding != "json" {
		encoding = "console"
	}
	log, err := logx.New(logx.Config{
		OutputPaths: []string{cfg.LogPath},
		Level:       cfg.LogLevel,
		Encoding:    encoding,
	})
	if err != nil {
		fmt.Fprintf(stderr, "logger: %v\n", err)
		fmt.Fprintln(stdout, application.FailureMessage)
		return
	}
	defer func() { _ = log.Sync() }()

	if err := cfg.Validate(); err != nil {
		log.Error("etl.config_invalid", zap.Error(err))
		fmt.Fprintf(stderr, "config: %v\n", err)
		fmt.Fprintln(stdout, application.FailureMessage)
		return
	}

	svc, cleanup, err := bootstrap.BuildService(cfg, log, stdout)
	defer cleanup()
	if err != nil {
		log.Error("etl.bootstrap_failed", zap.Error(err))
		fmt.Fprintln(stdout, application.FailureMessage)
		return
	}
	svc.Run(ctx)
}

func main() {
	if err := newRootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
