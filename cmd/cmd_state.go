package cmd

import (
	"github.com/cockroachdb/errors"
	"github.com/mrfresh-network/fresh-program/internal/config"
	"github.com/mrfresh-network/fresh-program/internal/ledger"
	"github.com/samber/do/v2"
	"github.com/spf13/cobra"
)

func NewStateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "state",
		Short: "Show the program state",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			injector := newInjector(ctx, config.Load())
			defer shutdown(ctx, injector)

			deployment := do.MustInvoke[Deployment](injector)
			rt, err := do.Invoke[*ledger.Runtime](injector)
			if err != nil {
				return errors.WithStack(err)
			}
			state, err := rt.State(ctx, deployment.StateKey)
			if err != nil {
				return publicProgramError(err)
			}
			printState(cmd.OutOrStdout(), deployment.StateKey, state)
			return nil
		},
	}
}
