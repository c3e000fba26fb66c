package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	service "github.com/okian/rollcall/internal/app"
	"github.com/okian/rollcall/pkg/logger"
)

func newOutcomeCommand(ctx *commandContext) *cobra.Command {
	var threadID int64

	cmd := &cobra.Command{
		Use:   "outcome",
		Short: "Look up the game a single thread discusses",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := ctx.ensureConfig(cmd)
			if err != nil {
				return err
			}
			svc := service.New(cfg, service.WithLogger(logger.Named("service")))
			in, err := svc.LoadGames(cmd.Context())
			if err != nil {
				return err
			}
			res, thread, err := svc.Outcome(cmd.Context(), in, threadID)

			out := cmd.OutOrStdout()
			if thread.ThreadID != 0 {
				fmt.Fprintf(out, "thread %d (%s): %s\n", thread.ThreadID, thread.Posted, thread.Title)
				refs := "none"
				if len(res.References) > 0 {
					refs = strings.Join(res.References, ", ")
				}
				fmt.Fprintf(out, "opponents referenced: %s\n", refs)
			}
			if res.Game != nil {
				fmt.Fprintf(out, "game %d on %s vs %s (%d days back)\n",
					res.Game.Game, res.Game.Date, res.Game.Opponent, res.Depth)
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "result: %s\n", res.Outcome)
			return nil
		},
	}
	cmd.Flags().Int64Var(&threadID, "thread", 0, "Thread ID (global_ID)")
	_ = cmd.MarkFlagRequired("thread")
	return cmd
}
