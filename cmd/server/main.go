// Command bookstore runs the bookstore back-office HTTP API and its schema migrations.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/and161185/bookstore/internal/config"
)

var (
	version   = "dev"
	buildDate = "unknown"
)

// options holds persistent flags; non-empty values override the environment.
type options struct {
	addr string
	dsn  string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:               "bookstore",
		Short:             "Bookstore back-office API",
		SilenceUsage:      true,
		Version:           fmt.Sprintf("%s (built %s)", version, buildDate),
		CompletionOptions: cobra.CompletionOptions{DisableDefaultCmd: true},
	}
	root.PersistentFlags().StringVar(&opts.addr, "addr", "", "listen address (overrides HTTP_ADDR)")
	root.PersistentFlags().StringVar(&opts.dsn, "dsn", "", "PostgreSQL DSN (overrides DATABASE_URL)")

	root.AddCommand(newServeCmd(opts), newMigrateCmd(opts))
	return root
}

// loadConfig reads .env and the environment, applies flag overrides and validates.
func loadConfig(opts *options) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if opts.addr != "" {
		cfg.HTTPAddr = opts.addr
	}
	if opts.dsn != "" {
		cfg.DatabaseURL = opts.dsn
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

// newLogger builds a development logger for "debug" and a production one otherwise.
func newLogger(level string) (*zap.Logger, error) {
	if strings.EqualFold(level, "debug") {
		return zap.NewDevelopment()
	}
	zc := zap.NewProductionConfig()
	if level != "" {
		lvl, err := zap.ParseAtomicLevel(level)
		if err != nil {
			return nil, fmt.Errorf("log level: %w", err)
		}
		zc.Level = lvl
	}
	return zc.Build()
}
