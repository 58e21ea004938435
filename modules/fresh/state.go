package fresh

import (
	"log/slog"

	"github.com/cockroachdb/errors"
	"github.com/mrfresh-network/fresh-program/pkg/logger/slogx"
	"github.com/near/borsh-go"
)

// StateSize is the length of the encoded program state.
const StateSize = 64

// State is the single persisted record of a deployment. Field order is the
// wire order and must not change.
type State struct {
	TotalSupply             uint64
	MiningDifficulty        uint64
	LastMiningTimestamp     int64 // 0 means never mined
	TotalMiners             uint64
	TotalTransactions       uint64
	LastEnergyBurstSlot     uint64 // 0 means never activated
	EnergyBurstDuration     uint64
	InitializationTimestamp int64
}

// Marshal encodes the state into its 64 byte wire form.
func (s State) Marshal() ([]byte, error) {
	data, err := borsh.Serialize(s)
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode state")
	}
	return data, nil
}

// UnmarshalState decodes state account data. The data must be exactly StateSize bytes.
func UnmarshalState(data []byte) (State, error) {
	if len(data) != StateSize {
		return State{}, errors.Wrapf(ErrInvalidAccountData, "state data length %d, expected %d", len(data), StateSize)
	}
	var s State
	if err := borsh.Deserialize(&s, data); err != nil {
		return State{}, errors.Wrapf(ErrInvalidAccountData, "cannot decode state: %v", err)
	}
	return s, nil
}

// Validate checks the invariants every persisted state must hold.
func (s State) Validate() error {
	if s.TotalSupply > MaxSupply {
		return errors.Wrapf(ErrInvariantViolation, "total supply %d exceeds max supply %d", s.TotalSupply, MaxSupply)
	}
	if s.MiningDifficulty < MinDifficulty {
		return errors.Wrapf(ErrInvariantViolation, "mining difficulty %d below minimum %d", s.MiningDifficulty, MinDifficulty)
	}
	return nil
}

// ValidateTransition checks the invariants linking a state to its successor.
func ValidateTransition(prev, next State) error {
	if next.TotalSupply < prev.TotalSupply {
		return errors.Wrapf(ErrInvariantViolation, "total supply decreased from %d to %d", prev.TotalSupply, next.TotalSupply)
	}
	if next.TotalTransactions < prev.TotalTransactions {
		return errors.Wrapf(ErrInvariantViolation, "total transactions decreased from %d to %d", prev.TotalTransactions, next.TotalTransactions)
	}
	if next.EnergyBurstDuration != prev.EnergyBurstDuration {
		return errors.Wrap(ErrInvariantViolation, "energy burst duration is immutable")
	}
	if next.InitializationTimestamp != prev.InitializationTimestamp {
		return errors.Wrap(ErrInvariantViolation, "initialization timestamp is immutable")
	}
	if next.TotalMiners != prev.TotalMiners {
		return errors.Wrap(ErrInvariantViolation, "total miners is not updated by any instruction")
	}
	return next.Validate()
}

// LogValue implements slog.LogValuer.
func (s State) LogValue() slog.Value {
	return slog.GroupValue(
		slogx.Uint64("total_supply", s.TotalSupply),
		slogx.Uint64("mining_difficulty", s.MiningDifficulty),
		slogx.Int64("last_mining_timestamp", s.LastMiningTimestamp),
		slogx.Uint64("total_miners", s.TotalMiners),
		slogx.Uint64("total_transactions", s.TotalTransactions),
		slogx.Uint64("last_energy_burst_slot", s.LastEnergyBurstSlot),
		slogx.Uint64("energy_burst_duration", s.EnergyBurstDuration),
		slogx.Int64("initialization_timestamp", s.InitializationTimestamp),
	)
}
