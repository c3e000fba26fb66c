package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/okian/rollcall/internal/adapters/export"
	"github.com/okian/rollcall/internal/adapters/tabular"
	"github.com/okian/rollcall/internal/domain/scoring"
	"github.com/okian/rollcall/pkg/logger"
)

func newScoreCommand(ctx *commandContext) *cobra.Command {
	var machinePath, truthPath string

	cmd := &cobra.Command{
		Use:   "score",
		Short: "Compare a comment-level mention table with a hand-coded one",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := ctx.ensureConfig(cmd)
			if err != nil {
				return err
			}
			if truthPath == "" {
				truthPath = cfg.GroundTruthPath
			}
			if machinePath == "" || truthPath == "" {
				return errors.New("score: --machine and --truth are required")
			}

			t, err := tabular.ReadFile(cmd.Context(), truthPath)
			if err != nil {
				return err
			}
			truth, err := tabular.LoadMatrix(t, nil)
			if err != nil {
				return err
			}
			if t, err = tabular.ReadFile(cmd.Context(), machinePath); err != nil {
				return err
			}
			machine, err := tabular.LoadMatrix(t, truth.Identities())
			if err != nil {
				return err
			}

			report, err := scoring.Score(machine, truth)
			if err != nil {
				return err
			}
			w := export.New(cfg.OutputDir, export.WithLogger(logger.Named("export")))
			if err := w.Scores(cmd.Context(), report); err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), export.ScoreSummary(report))
			return nil
		},
	}
	cmd.Flags().StringVar(&machinePath, "machine", "", "Comment-level mention table produced by a run")
	cmd.Flags().StringVar(&truthPath, "truth", "", "Hand-coded table (defaults to ground_truth_path)")
	return cmd
}
