package cli

import (
	"context"
	"diet-menu-planner/internal/config"
	"diet-menu-planner/internal/report"
	"diet-menu-planner/internal/services"
	"fmt"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/urfave/cli/v3"
)

const (
	flagTarget      = "target"
	flagTrials      = "trials"
	flagMaxPicks    = "max-picks"
	flagChart       = "chart"
	flagMetricsFile = "metrics-file"
)

func recommendCmd() *cli.Command {
	return &cli.Command{
		Name:  "recommend",
		Usage: "Recommend a menu for a calorie target and compare both selector variants",
		Description: `Loads the food catalog and repeatedly picks the item whose calories are
closest to the remaining budget until the budget is used up. The same selection
runs as a loop and as a recursion; both are timed over several trials.

The result can be output in table, JSON or YAML format.`,
		Flags: append(sourceFlags(),
			&cli.IntFlag{
				Name:    flagTarget,
				Aliases: []string{"t"},
				Usage: fmt.Sprintf("Target calories in kcal (%d-%d)",
					config.MinTargetKcal, config.MaxTargetKcal),
				Sources: cli.EnvVars(config.EnvTargetKcal),
			},
			&cli.IntFlag{
				Name: flagTrials,
				Usage: fmt.Sprintf("Timing trials per variant (%d-%d)",
					config.MinTrials, config.MaxTrials),
				Sources: cli.EnvVars(config.EnvTrials),
			},
			&cli.IntFlag{
				Name:    flagMaxPicks,
				Usage:   "Abort a selection after this many picks",
				Sources: cli.EnvVars(config.EnvMaxPicks),
			},
			&cli.BoolFlag{
				Name:    flagChart,
				Usage:   "Draw a text chart comparing mean times (table format only)",
				Sources: cli.EnvVars(config.EnvShowChart),
			},
			&cli.StringFlag{
				Name:    flagMetricsFile,
				Usage:   "Write Prometheus metrics to this textfile after the run",
				Sources: cli.EnvVars(config.EnvMetricsFile),
			},
			formatFlag(),
			outputFlag(),
		),
		Action: runRecommend,
	}
}

func runRecommend(ctx context.Context, cmd *cli.Command) (err error) {
	cfg, err := resolveConfig(ctx, cmd)
	if err != nil {
		return err
	}

	outFormat, err := report.ParseFormat(cfg.OutputFormat)
	if err != nil {
		return err
	}

	provider, closeCatalog, err := openCatalog(cfg)
	if err != nil {
		return err
	}
	defer closeCatalog()

	if cfg.MetricsFile != "" {
		defer func() {
			if werr := prometheus.WriteToTextfile(cfg.MetricsFile, prometheus.DefaultGatherer); werr != nil {
				slog.Warn("failed to write metrics textfile", "path", cfg.MetricsFile, "error", werr)
			}
		}()
	}

	rep, err := services.RecommendMenu(ctx, services.RecommendRequest{
		Target:  cfg.TargetKcal,
		Trials:  cfg.Trials,
		Options: services.SelectOptions{MaxPicks: cfg.MaxPicks},
	}, provider)
	if err != nil {
		return err
	}

	w, err := newWriter(cmd, outFormat, cmd.String(flagOutput), report.Options{Chart: cfg.ShowChart})
	if err != nil {
		return err
	}
	defer func() {
		if cerr := w.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	return w.WriteReport(ctx, rep)
}

// newWriter writes to the output file when given, else to the command's writer.
func newWriter(cmd *cli.Command, format report.Format, path string, opts report.Options) (*report.Writer, error) {
	if path != "" {
		return report.NewFileWriterOrStdout(format, path, opts)
	}
	return report.NewWriter(format, cmd.Root().Writer, opts), nil
}
