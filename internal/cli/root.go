// Package cli wires the planner command line.
package cli

import (
	"context"
	"diet-menu-planner/internal/config"
	"diet-menu-planner/internal/platform/logging"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"
)

const (
	name           = "planner"
	versionDefault = "dev"
)

var (
	// overridden during build with ldflags
	version = versionDefault
	commit  = "unknown"
	date    = "unknown"
)

type configKey struct{}

// withConfig stores the resolved base configuration for subcommands.
func withConfig(ctx context.Context, cfg config.Config) context.Context {
	return context.WithValue(ctx, configKey{}, cfg)
}

func configFrom(ctx context.Context) config.Config {
	if cfg, ok := ctx.Value(configKey{}).(config.Config); ok {
		return cfg
	}
	return config.Default()
}

// NewCommand builds the root command. Running it without a subcommand
// runs recommend.
func NewCommand() *cli.Command {
	return &cli.Command{
		Name:           name,
		Usage:          "Greedy diet menu planner (Closest First)",
		Version:        version,
		DefaultCommand: "recommend",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Usage:   "Path to a YAML config file",
				Sources: cli.EnvVars(config.EnvConfigFile),
			},
			&cli.StringFlag{
				Name:    "log-level",
				Value:   "info",
				Usage:   "Log level (debug, info, warn, error)",
				Sources: cli.EnvVars(config.EnvLogLevel),
			},
			&cli.StringFlag{
				Name:  "log-format",
				Value: string(logging.FormatJSON),
				Usage: "Log record format (json, text)",
			},
		},
		Before: initApp,
		Commands: []*cli.Command{
			recommendCmd(),
			catalogCmd(),
			versionCmd(),
		},
	}
}

// initApp loads configuration and installs the logger before any subcommand runs.
func initApp(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	cfg, err := config.Load(cmd.String("config"))
	if err != nil {
		return ctx, err
	}
	if cmd.IsSet("log-level") {
		cfg.LogLevel = cmd.String("log-level")
	}

	format := logging.Format(cmd.String("log-format"))
	slog.SetDefault(logging.NewStructuredLogger(os.Stderr, name, version, cfg.LogLevel, format))
	slog.Debug("starting",
		"name", name,
		"version", version,
		"commit", commit,
		"date", date,
		"logLevel", cfg.LogLevel)

	return withConfig(ctx, cfg), nil
}

// Execute runs the planner with os.Args and exits non-zero on failure.
func Execute() {
	config.LoadDotEnv()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := NewCommand().Run(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		if errors.Is(err, context.Canceled) {
			os.Exit(130)
		}
		os.Exit(1)
	}
}

func versionCmd() *cli.Command {
	return &cli.Command{
		Name:  "version",
		Usage: "Print build information",
		Action: func(_ context.Context, cmd *cli.Command) error {
			_, err := fmt.Fprintf(cmd.Root().Writer, "%s %s (commit %s, built %s)\n", name, version, commit, date)
			return err
		},
	}
}
