package fresh

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/mrfresh-network/fresh-program/core/types"
	"github.com/mrfresh-network/fresh-program/modules/fresh/datagateway"
	"github.com/mrfresh-network/fresh-program/pkg/logger"
	"github.com/mrfresh-network/fresh-program/pkg/logger/slogx"
)

// Processor is the program entry point. It holds no deployment state, so one
// Processor may serve any number of state accounts.
type Processor struct {
	clockID types.Pubkey
}

func NewProcessor(clockID types.Pubkey) *Processor {
	if clockID.IsZero() {
		clockID = types.ClockSysvarID
	}
	return &Processor{
		clockID: clockID,
	}
}

// ClockID returns the key the processor accepts as the clock account.
func (p *Processor) ClockID() types.Pubkey {
	return p.clockID
}

// Result is the outcome of a successfully executed instruction.
type Result struct {
	Instruction Instruction
	// Mine is set for Mine instructions only.
	Mine MineResult
}

// ProcessInstruction decodes data and executes it against accounts. Account
// order is [state, clock] for Initialize, [state, miner, clock] for Mine and
// [state] for UpdateDifficulty. The state account is written only on success.
func (p *Processor) ProcessInstruction(ctx context.Context, programID types.Pubkey, accounts []datagateway.Account, data []byte) error {
	_, err := p.Execute(ctx, programID, accounts, data)
	return err
}

// Execute is ProcessInstruction returning the result of the instruction.
func (p *Processor) Execute(ctx context.Context, programID types.Pubkey, accounts []datagateway.Account, data []byte) (Result, error) {
	instruction, err := DecodeInstruction(data)
	if err != nil {
		logger.DebugContext(ctx, "Invalid instruction data", slogx.Error(err))
		return Result{}, errors.WithStack(err)
	}

	ctx = logger.WithContext(ctx, slogx.Stringer("instruction", instruction.Kind))
	result := Result{Instruction: instruction}

	switch instruction.Kind {
	case InstructionInitialize:
		if instruction.MiningDifficulty < MinDifficulty {
			return Result{}, errors.WithStack(DifficultyTooLow)
		}
		if err := p.processInitialize(ctx, programID, accounts, instruction); err != nil {
			return Result{}, errors.WithStack(err)
		}
	case InstructionMine:
		mined, err := p.processMine(ctx, programID, accounts)
		if err != nil {
			return Result{}, errors.WithStack(err)
		}
		result.Mine = mined
	case InstructionUpdateDifficulty:
		if instruction.NewDifficulty < MinDifficulty {
			return Result{}, errors.WithStack(DifficultyTooLow)
		}
		if err := p.processUpdateDifficulty(ctx, programID, accounts, instruction); err != nil {
			return Result{}, errors.WithStack(err)
		}
	default:
		return Result{}, errors.Wrapf(InvalidInstruction, "unknown instruction tag %d", uint8(instruction.Kind))
	}
	return result, nil
}

func (p *Processor) processInitialize(ctx context.Context, programID types.Pubkey, accounts []datagateway.Account, instruction Instruction) error {
	if len(accounts) < 2 {
		return errors.Wrapf(ErrNotEnoughAccountKeys, "initialize needs 2 accounts, got %d", len(accounts))
	}
	stateAccount, clockAccount := accounts[0], accounts[1]

	if err := checkOwner(stateAccount, programID); err != nil {
		return errors.WithStack(err)
	}
	clock, err := p.loadClock(clockAccount)
	if err != nil {
		return errors.WithStack(err)
	}

	next, err := Initialize(instruction.MiningDifficulty, instruction.EnergyBurstDuration, clock.UnixTimestamp)
	if err != nil {
		return errors.WithStack(err)
	}
	if err := next.Validate(); err != nil {
		return errors.WithStack(err)
	}
	if err := storeState(stateAccount, next); err != nil {
		return errors.WithStack(err)
	}

	logger.InfoContext(ctx, "Mr. Fresh program initialized",
		slogx.Uint64("mining_difficulty", next.MiningDifficulty),
		slogx.Uint64("energy_burst_duration", next.EnergyBurstDuration),
		slogx.Int64("initialization_timestamp", next.InitializationTimestamp),
	)
	return nil
}

func (p *Processor) processMine(ctx context.Context, programID types.Pubkey, accounts []datagateway.Account) (MineResult, error) {
	if len(accounts) < 3 {
		return MineResult{}, errors.Wrapf(ErrNotEnoughAccountKeys, "mine needs 3 accounts, got %d", len(accounts))
	}
	stateAccount, minerAccount, clockAccount := accounts[0], accounts[1], accounts[2]

	if err := checkOwner(stateAccount, programID); err != nil {
		return MineResult{}, errors.WithStack(err)
	}
	if clockAccount.Key() != p.clockID {
		logger.DebugContext(ctx, "Expected Clock sysvar", slogx.Stringer("clock_account", clockAccount.Key()))
		return MineResult{}, errors.Wrapf(ErrInvalidArgument, "account %s is not the clock sysvar", clockAccount.Key())
	}

	state, err := loadState(stateAccount)
	if err != nil {
		return MineResult{}, errors.WithStack(err)
	}
	if state.MiningDifficulty < MinDifficulty {
		return MineResult{}, errors.Wrap(ErrInvalidAccountData, "state account is not initialized")
	}
	clock, err := p.loadClock(clockAccount)
	if err != nil {
		return MineResult{}, errors.WithStack(err)
	}

	ctx = logger.WithContext(ctx, slogx.Stringer("miner", minerAccount.Key()))
	next, result, err := Mine(ctx, state, clock)
	if err != nil {
		return MineResult{}, errors.WithStack(err)
	}
	if err := ValidateTransition(state, next); err != nil {
		return MineResult{}, errors.WithStack(err)
	}
	if err := storeState(stateAccount, next); err != nil {
		return MineResult{}, errors.WithStack(err)
	}
	return result, nil
}

func (p *Processor) processUpdateDifficulty(ctx context.Context, programID types.Pubkey, accounts []datagateway.Account, instruction Instruction) error {
	if len(accounts) < 1 {
		return errors.Wrap(ErrNotEnoughAccountKeys, "update difficulty needs 1 account, got 0")
	}
	stateAccount := accounts[0]

	if err := checkOwner(stateAccount, programID); err != nil {
		return errors.WithStack(err)
	}
	state, err := loadState(stateAccount)
	if err != nil {
		return errors.WithStack(err)
	}

	next, err := UpdateDifficulty(ctx, state, instruction.NewDifficulty)
	if err != nil {
		return errors.WithStack(err)
	}
	if err := ValidateTransition(state, next); err != nil {
		return errors.WithStack(err)
	}
	if err := storeState(stateAccount, next); err != nil {
		return errors.WithStack(err)
	}

	logger.InfoContext(ctx, "Mining difficulty updated", slogx.Uint64("mining_difficulty", next.MiningDifficulty))
	return nil
}

func checkOwner(account datagateway.Account, programID types.Pubkey) error {
	if account.Owner() != programID {
		return errors.Wrapf(ErrIncorrectProgramID, "account %s is owned by %s", account.Key(), account.Owner())
	}
	return nil
}

func (p *Processor) loadClock(account datagateway.Account) (types.Clock, error) {
	if account.Key() != p.clockID {
		return types.Clock{}, errors.Wrapf(ErrInvalidArgument, "account %s is not the clock sysvar", account.Key())
	}
	clock, err := types.UnmarshalClock(account.Data())
	if err != nil {
		return types.Clock{}, errors.Mark(errors.Wrap(err, "cannot read clock sysvar"), ErrInvalidArgument)
	}
	return clock, nil
}

func loadState(account datagateway.Account) (State, error) {
	state, err := UnmarshalState(account.Data())
	if err != nil {
		return State{}, errors.WithStack(err)
	}
	return state, nil
}

func storeState(account datagateway.Account, state State) error {
	data, err := state.Marshal()
	if err != nil {
		return errors.WithStack(err)
	}
	if err := account.SetData(data); err != nil {
		return errors.Mark(errors.Wrap(err, "cannot store state"), ErrAccountDataTooSmall)
	}
	return nil
}
