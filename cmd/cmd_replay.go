package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"text/tabwriter"

	"github.com/cockroachdb/errors"
	"github.com/mrfresh-network/fresh-program/internal/replay"
	"github.com/mrfresh-network/fresh-program/modules/fresh"
	"github.com/mrfresh-network/fresh-program/pkg/automaxprocs"
	"github.com/mrfresh-network/fresh-program/pkg/decimals"
	"github.com/mrfresh-network/fresh-program/pkg/logger"
	"github.com/mrfresh-network/fresh-program/pkg/logger/slogx"
	"github.com/spf13/cobra"
)

func NewReplayCommand() *cobra.Command {
	var validators int
	cmd := &cobra.Command{
		Use:     "replay <transcript>",
		Short:   "Replay a transcript on independent validators and check they agree",
		Args:    cobra.ExactArgs(1),
		Example: `fresh replay internal/replay/testdata/scenarios.yaml --validators 8`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if err := automaxprocs.Init(); err != nil {
				logger.WarnContext(ctx, "Failed to set GOMAXPROCS", slogx.Error(err))
			}
			defer automaxprocs.Undo()

			transcript, err := replay.Load(args[0])
			if err != nil {
				return errors.WithStack(err)
			}
			report, err := replay.Run(ctx, transcript, validators)
			if err != nil {
				return errors.WithStack(err)
			}
			logger.InfoContext(ctx, "Validators agree",
				slog.Int("validators", report.Validators),
				slog.Any("state", report.State),
			)
			printReport(cmd.OutOrStdout(), report)
			return errors.WithStack(report.Err())
		},
	}
	cmd.Flags().IntVar(&validators, "validators", 4, "number of validator replicas")
	return cmd
}

func printReport(w io.Writer, report replay.Report) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "STEP\tINSTRUCTION\tRESULT\tREWARD\tSUPPLY")
	for _, step := range report.Steps {
		result := "ok"
		if step.Error != "" {
			result = step.Error
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", step.Index, step.Instruction, result,
			decimals.Format(step.Reward, fresh.Decimals),
			decimals.Format(step.Supply, fresh.Decimals),
		)
	}
	_ = tw.Flush()

	fmt.Fprintf(w, "\n%d validators agree on state %x\n", report.Validators, report.StateBytes)
	for _, mismatch := range report.Mismatches {
		fmt.Fprintln(w, "mismatch:", mismatch)
	}
}
