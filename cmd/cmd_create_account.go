package cmd

import (
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/mrfresh-network/fresh-program/internal/config"
	"github.com/mrfresh-network/fresh-program/internal/ledger"
	"github.com/mrfresh-network/fresh-program/modules/fresh"
	"github.com/samber/do/v2"
	"github.com/spf13/cobra"
)

func NewCreateAccountCommand() *cobra.Command {
	var size int
	cmd := &cobra.Command{
		Use:   "create-account",
		Short: "Allocate the program state account on the local ledger",
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
			account, err := rt.CreateAccount(ctx, deployment.StateKey, deployment.ProgramID, size)
			if err != nil {
				return errors.WithStack(err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "created %s (%d bytes) owned by %s\n", account.Key, len(account.Data), account.Owner)
			return nil
		},
	}
	cmd.Flags().IntVar(&size, "size", fresh.StateSize, "account data size in bytes")
	return cmd
}
