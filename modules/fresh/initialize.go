package fresh

import (
	"github.com/cockroachdb/errors"
)

// Initialize returns a fresh state. It does not look at any previous state,
// so initializing an existing deployment overwrites it.
func Initialize(miningDifficulty, energyBurstDuration uint64, now int64) (State, error) {
	if miningDifficulty < MinDifficulty {
		return State{}, errors.WithStack(DifficultyTooLow)
	}
	return State{
		TotalSupply:             0,
		MiningDifficulty:        miningDifficulty,
		LastMiningTimestamp:     0,
		TotalMiners:             0,
		TotalTransactions:       0,
		LastEnergyBurstSlot:     0,
		EnergyBurstDuration:     energyBurstDuration,
		InitializationTimestamp: now,
	}, nil
}
