package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/mrfresh-network/fresh-program/common/errs"
	"github.com/mrfresh-network/fresh-program/core/types"
	"github.com/mrfresh-network/fresh-program/internal/config"
	"github.com/mrfresh-network/fresh-program/internal/ledger"
	"github.com/mrfresh-network/fresh-program/internal/replay"
	"github.com/mrfresh-network/fresh-program/modules/fresh"
	"github.com/mrfresh-network/fresh-program/pkg/decimals"
	"github.com/mrfresh-network/fresh-program/pkg/logger"
	"github.com/samber/do/v2"
	"github.com/spf13/cobra"
)

// slotDuration is the target slot time of the host ledger.
const slotDuration = 400 * time.Millisecond

type execCmdOptions struct {
	Time  int64
	Slot  uint64
	Miner string
}

// clock returns the clock the instruction runs at. Zero flags take the wall clock.
func (opts *execCmdOptions) clock(now time.Time) types.Clock {
	unix := opts.Time
	if unix == 0 {
		unix = now.Unix()
	}
	slot := opts.Slot
	if slot == 0 {
		slot = uint64(now.UnixMilli() / slotDuration.Milliseconds())
	}
	return types.NewClock(unix, slot)
}

func NewExecCommand() *cobra.Command {
	opts := &execCmdOptions{}
	cmd := &cobra.Command{
		Use:   "exec",
		Short: "Execute a program instruction on the local ledger",
	}

	flags := cmd.PersistentFlags()
	flags.Int64Var(&opts.Time, "time", 0, "unix timestamp of the clock account (default now)")
	flags.Uint64Var(&opts.Slot, "slot", 0, "slot of the clock account (default derived from now)")
	flags.StringVar(&opts.Miner, "miner", "", "miner account key (default the local miner)")

	cmd.AddCommand(
		&cobra.Command{
			Use:     "initialize <mining_difficulty> <energy_burst_duration>",
			Short:   "Initialize the program state",
			Args:    cobra.ExactArgs(2),
			Example: `fresh exec initialize 1000 100`,
			RunE: func(cmd *cobra.Command, args []string) error {
				difficulty, err := strconv.ParseUint(args[0], 10, 64)
				if err != nil {
					return errors.Wrap(errs.InvalidArgument, "mining_difficulty must be an unsigned integer")
				}
				duration, err := strconv.ParseUint(args[1], 10, 64)
				if err != nil {
					return errors.Wrap(errs.InvalidArgument, "energy_burst_duration must be an unsigned integer")
				}
				return execHandler(cmd, opts, fresh.NewInitializeInstruction(difficulty, duration))
			},
		},
		&cobra.Command{
			Use:   "mine",
			Short: "Mine FRESH",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return execHandler(cmd, opts, fresh.NewMineInstruction())
			},
		},
		&cobra.Command{
			Use:     "update-difficulty <new_difficulty>",
			Short:   "Change the mining difficulty",
			Args:    cobra.ExactArgs(1),
			Example: `fresh exec update-difficulty 2000`,
			RunE: func(cmd *cobra.Command, args []string) error {
				difficulty, err := strconv.ParseUint(args[0], 10, 64)
				if err != nil {
					return errors.Wrap(errs.InvalidArgument, "new_difficulty must be an unsigned integer")
				}
				return execHandler(cmd, opts, fresh.NewUpdateDifficultyInstruction(difficulty))
			},
		},
	)
	return cmd
}

func execHandler(cmd *cobra.Command, opts *execCmdOptions, instruction fresh.Instruction) error {
	ctx := cmd.Context()
	injector := newInjector(ctx, config.Load())
	defer shutdown(ctx, injector)

	deployment := do.MustInvoke[Deployment](injector)
	rt, err := do.Invoke[*ledger.Runtime](injector)
	if err != nil {
		return errors.WithStack(err)
	}
	miner, err := parseKeyOrDefault(opts.Miner, replay.DefaultMinerKey)
	if err != nil {
		return errors.Wrap(errs.InvalidArgument, "invalid miner key")
	}

	clock := opts.clock(time.Now())
	ctx = logger.WithContext(ctx,
		slog.String("instruction", instruction.Kind.String()),
		slog.Int64("unix_timestamp", clock.UnixTimestamp),
		slog.Uint64("slot", clock.Slot),
	)
	result, err := rt.Execute(ctx, clock, ledger.InstructionTx(instruction, deployment.StateKey, miner, deployment.ClockID))
	if err != nil {
		return publicProgramError(err)
	}

	state, err := rt.State(ctx, deployment.StateKey)
	if err != nil {
		return errors.WithStack(err)
	}
	out := cmd.OutOrStdout()
	if instruction.Kind == fresh.InstructionMine {
		printMineResult(out, result.Mine)
	}
	printState(out, deployment.StateKey, state)
	return nil
}

// publicProgramError exposes program and host failures to the caller with
// the code the host ledger would report.
func publicProgramError(err error) error {
	var programErr fresh.ProgramError
	if errors.As(err, &programErr) {
		return errs.WithPublicMessageCode(err, programErr.Name(), strconv.FormatUint(uint64(programErr.Code()), 10))
	}
	switch name := fresh.ErrorName(err); name {
	case "", "Unknown":
		return errors.WithStack(err)
	default:
		return errs.WithPublicMessageCode(err, name, "")
	}
}

func printMineResult(w io.Writer, r fresh.MineResult) {
	fmt.Fprintf(w, "reward:        %s FRESH\n", decimals.Format(r.Reward, fresh.Decimals))
	fmt.Fprintf(w, "base reward:   %s FRESH\n", decimals.Format(r.BaseReward, fresh.Decimals))
	fmt.Fprintf(w, "halving epoch: %d\n", r.HalvingEpoch)
	if r.EnergyBurst {
		fmt.Fprintln(w, "energy burst:  active")
	}
	if r.LuckyPurr {
		fmt.Fprintln(w, "lucky purr:    yes")
	}
	if r.Clamped {
		fmt.Fprintln(w, "max supply reached, reward clamped")
	}
}

func printState(w io.Writer, key types.Pubkey, s fresh.State) {
	fmt.Fprintf(w, "state account:           %s\n", key)
	fmt.Fprintf(w, "total supply:            %s FRESH\n", decimals.Format(s.TotalSupply, fresh.Decimals))
	fmt.Fprintf(w, "mining difficulty:       %d\n", s.MiningDifficulty)
	fmt.Fprintf(w, "last mining timestamp:   %d\n", s.LastMiningTimestamp)
	fmt.Fprintf(w, "total miners:            %d\n", s.TotalMiners)
	fmt.Fprintf(w, "total transactions:      %d\n", s.TotalTransactions)
	fmt.Fprintf(w, "last energy burst slot:  %d\n", s.LastEnergyBurstSlot)
	fmt.Fprintf(w, "energy burst duration:   %d\n", s.EnergyBurstDuration)
	fmt.Fprintf(w, "initialization time:     %d\n", s.InitializationTimestamp)
}
