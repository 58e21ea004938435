package cmd

import (
	"fmt"

	"github.com/mrfresh-network/fresh-program/modules/fresh"
	"github.com/spf13/cobra"
)

func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show program version",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), fresh.Version)
		},
	}
}
