package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/okian/rollcall/internal/adapters/export"
	service "github.com/okian/rollcall/internal/app"
	"github.com/okian/rollcall/pkg/logger"
)

func newRunCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Run the full pipeline and export every table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := ctx.ensureConfig(cmd)
			if err != nil {
				return err
			}
			svc := service.New(cfg, service.WithLogger(logger.Named("service")))
			report, err := svc.Run(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprint(out, export.Summary(report.Results(), report.Season))
			if report.Scores != nil {
				fmt.Fprint(out, export.ScoreSummary(report.Scores))
			}
			fmt.Fprintf(out, "run %s: %d threads, %d failed, tables in %s\n",
				report.RunID, len(report.Threads), report.Failed(), cfg.OutputDir)
			return nil
		},
	}
}
