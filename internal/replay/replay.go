// Package replay re-executes a transcript on independent validator replicas
// and checks that they agree byte for byte.
package replay

import (
	"bytes"
	"context"
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/mrfresh-network/fresh-program/common/errs"
	"github.com/mrfresh-network/fresh-program/core/types"
	"github.com/mrfresh-network/fresh-program/internal/accountstore"
	"github.com/mrfresh-network/fresh-program/internal/ledger"
	"github.com/mrfresh-network/fresh-program/modules/fresh"
	"github.com/mrfresh-network/fresh-program/pkg/logger"
	"github.com/mrfresh-network/fresh-program/pkg/logger/slogx"
	"golang.org/x/sync/errgroup"
)

var (
	DefaultProgramID = types.PubkeyFromSeed("MrFresh")
	DefaultStateKey  = types.PubkeyFromSeed("MrFreshState")
	DefaultMinerKey  = types.PubkeyFromSeed("MrFreshMiner")
)

var (
	ErrDivergence          = errs.ErrorKind("validators diverged")
	ErrExpectationMismatch = errs.ErrorKind("step outcome does not match expectation")
)

// StepOutcome is what one replica observed for one step.
type StepOutcome struct {
	Index       int
	Instruction string
	Error       string
	Reward      uint64
	Supply      uint64
}

// Replica is the full run of one validator.
type Replica struct {
	Steps      []StepOutcome
	State      fresh.State
	StateBytes []byte
}

// Report is the agreed outcome of a replay.
type Report struct {
	Validators int
	Steps      []StepOutcome
	State      fresh.State
	StateBytes []byte
	// Mismatches lists steps whose error differs from the transcript's expectation.
	Mismatches []string
}

// Run replays t on validators replicas concurrently. A divergence between
// replicas is returned as an error wrapping ErrDivergence.
func Run(ctx context.Context, t Transcript, validators int) (Report, error) {
	if validators < 1 {
		return Report{}, errors.Wrapf(errs.InvalidArgument, "validators must be at least 1, got %d", validators)
	}

	replicas := make([]Replica, validators)
	eg, ectx := errgroup.WithContext(ctx)
	for i := range replicas {
		eg.Go(func() error {
			replica, err := runReplica(logger.WithContext(ectx, slogx.Int("validator", i)), t)
			if err != nil {
				return errors.Wrapf(err, "validator %d", i)
			}
			replicas[i] = replica
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return Report{}, errors.WithStack(err)
	}

	reference := replicas[0]
	for i, replica := range replicas[1:] {
		if err := compare(reference, replica); err != nil {
			return Report{}, errors.Wrapf(err, "validator %d disagrees with validator 0", i+1)
		}
	}

	report := Report{
		Validators: validators,
		Steps:      reference.Steps,
		State:      reference.State,
		StateBytes: reference.StateBytes,
	}
	for i, step := range t.Steps {
		if got := reference.Steps[i].Error; got != step.ExpectError {
			report.Mismatches = append(report.Mismatches, fmt.Sprintf("step %d (%s): expected error %q, got %q", i, step.Instruction, step.ExpectError, got))
		}
	}
	return report, nil
}

// Err returns an error wrapping ErrExpectationMismatch if any step did not
// match the transcript.
func (r Report) Err() error {
	if len(r.Mismatches) == 0 {
		return nil
	}
	return errors.Wrapf(ErrExpectationMismatch, "%d of %d steps", len(r.Mismatches), len(r.Steps))
}

func runReplica(ctx context.Context, t Transcript) (Replica, error) {
	store := accountstore.NewMemory()
	defer store.Close()

	rt := ledger.New(store, t.ProgramID, fresh.NewProcessor(types.ClockSysvarID))
	if _, err := rt.CreateAccount(ctx, t.State, t.ProgramID, fresh.StateSize); err != nil {
		return Replica{}, errors.WithStack(err)
	}

	var replica Replica
	for i, step := range t.Steps {
		if err := ctx.Err(); err != nil {
			return Replica{}, errors.WithStack(err)
		}
		instruction, err := step.ToInstruction()
		if err != nil {
			return Replica{}, errors.WithStack(err)
		}
		result, execErr := rt.Execute(ctx, types.NewClock(step.Time, step.Slot), ledger.InstructionTx(instruction, t.State, DefaultMinerKey, rt.ClockID()))

		account, err := rt.Account(ctx, t.State)
		if err != nil {
			return Replica{}, errors.WithStack(err)
		}
		outcome := StepOutcome{
			Index:       i,
			Instruction: instruction.Kind.String(),
			Error:       fresh.ErrorName(execErr),
			Reward:      result.Mine.Reward,
		}
		if state, err := fresh.UnmarshalState(account.Data); err == nil {
			outcome.Supply = state.TotalSupply
		}
		replica.Steps = append(replica.Steps, outcome)
	}

	account, err := rt.Account(ctx, t.State)
	if err != nil {
		return Replica{}, errors.WithStack(err)
	}
	replica.StateBytes = account.Data
	replica.State, err = fresh.UnmarshalState(account.Data)
	if err != nil {
		return Replica{}, errors.WithStack(err)
	}
	return replica, nil
}

func compare(a, b Replica) error {
	if !bytes.Equal(a.StateBytes, b.StateBytes) {
		return errors.Wrapf(ErrDivergence, "final state %x != %x", a.StateBytes, b.StateBytes)
	}
	if len(a.Steps) != len(b.Steps) {
		return errors.Wrapf(ErrDivergence, "%d steps != %d steps", len(a.Steps), len(b.Steps))
	}
	for i := range a.Steps {
		if a.Steps[i] != b.Steps[i] {
			return errors.Wrapf(ErrDivergence, "step %d: %+v != %+v", i, a.Steps[i], b.Steps[i])
		}
	}
	return nil
}
