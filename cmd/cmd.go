package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/mrfresh-network/fresh-program/common/errs"
	"github.com/mrfresh-network/fresh-program/internal/config"
	"github.com/mrfresh-network/fresh-program/pkg/logger"
	"github.com/mrfresh-network/fresh-program/pkg/logger/slogx"
	"github.com/spf13/cobra"
)

var (
	// root command
	cmd = &cobra.Command{
		Use:           "fresh",
		Long:          `Mr. Fresh token-emission program and local ledger tooling`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// sub-commands
	cmds = []*cobra.Command{
		NewVersionCommand(),
		NewCreateAccountCommand(),
		NewExecCommand(),
		NewStateCommand(),
		NewReplayCommand(),
		NewMigrateCommand(),
	}
)

// Execute runs the root command.
func Execute(ctx context.Context) {
	var configFile string

	// Add global flags
	flags := cmd.PersistentFlags()
	flags.StringVar(&configFile, "config", "", "config file, E.g. `./config.yaml`")
	flags.String("network", "localnet", "network the ledger belongs to, E.g. `localnet` or `devnet`")
	flags.String("driver", "", "account store driver, E.g. `memory`, `badger` or `postgres`")
	flags.Bool("debug", false, "show program narration and debug logs")

	// Bind flags to configuration
	config.BindPFlag("config", flags.Lookup("config"))
	config.BindPFlag("network", flags.Lookup("network"))
	config.BindPFlag("ledger.driver", flags.Lookup("driver"))
	config.BindPFlag("logger.debug", flags.Lookup("debug"))

	// Initialize configuration and logger on start command
	cobra.OnInitialize(func() {
		conf := config.Load()
		if err := logger.Init(conf.Logger); err != nil {
			logger.PanicContext(ctx, "Failed to initialize logger", slogx.Error(err), slog.Any("config", conf.Logger))
		}
	})

	// Register sub-commands
	cmd.AddCommand(cmds...)

	if err := cmd.ExecuteContext(ctx); err != nil {
		printError(err)
		os.Exit(1)
	}
}

// printError shows public errors verbatim and everything else through the logger.
func printError(err error) {
	if publicErr, ok := errs.AsPublicError(err); ok {
		if code := publicErr.Code(); code != "" {
			fmt.Fprintf(os.Stderr, "Error: %s (code %s)\n", publicErr.Message(), code)
		} else {
			fmt.Fprintf(os.Stderr, "Error: %s\n", publicErr.Message())
		}
		return
	}
	logger.Error("Command failed", slogx.Error(errors.WithStack(err)))
}
