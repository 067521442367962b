package cli

import (
	"context"
	"diet-menu-planner/internal/report"
	"fmt"

	"github.com/urfave/cli/v3"
)

func catalogCmd() *cli.Command {
	return &cli.Command{
		Name:  "catalog",
		Usage: "Preview the loaded food catalog",
		Flags: append(sourceFlags(),
			&cli.IntFlag{
				Name:  "limit",
				Value: 10,
				Usage: "Number of rows to show",
			},
			formatFlag(),
			outputFlag(),
		),
		Action: func(ctx context.Context, cmd *cli.Command) (err error) {
			cfg, err := resolveConfig(ctx, cmd)
			if err != nil {
				return err
			}

			outFormat, err := report.ParseFormat(cfg.OutputFormat)
			if err != nil {
				return err
			}

			limit := int(cmd.Int("limit"))
			if limit < 0 {
				return fmt.Errorf("limit must not be negative, got %d", limit)
			}

			provider, closeCatalog, err := openCatalog(cfg)
			if err != nil {
				return err
			}
			defer closeCatalog()

			c, err := provider.LoadCatalog(ctx)
			if err != nil {
				return err
			}

			w, err := newWriter(cmd, outFormat, cmd.String(flagOutput), report.Options{})
			if err != nil {
				return err
			}
			defer func() {
				if cerr := w.Close(); cerr != nil && err == nil {
					err = cerr
				}
			}()

			return w.WriteCatalog(ctx, report.NewCatalogPreview(c, limit))
		},
	}
}
