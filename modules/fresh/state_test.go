package fresh

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStateEncoding(t *testing.T) {
	t.Parallel()

	state := State{
		TotalSupply:             1,
		MiningDifficulty:        2,
		LastMiningTimestamp:     -3,
		TotalMiners:             4,
		TotalTransactions:       5,
		LastEnergyBurstSlot:     6,
		EnergyBurstDuration:     7,
		InitializationTimestamp: 8,
	}
	data, err := state.Marshal()
	require.NoError(t, err)
	require.Len(t, data, StateSize)

	// fields are consecutive little-endian words in declaration order
	assert.Equal(t, uint64(1), binary.LittleEndian.Uint64(data[0:8]))
	assert.Equal(t, uint64(2), binary.LittleEndian.Uint64(data[8:16]))
	assert.Equal(t, int64(-3), int64(binary.LittleEndian.Uint64(data[16:24])))
	assert.Equal(t, uint64(8), binary.LittleEndian.Uint64(data[56:64]))

	decoded, err := UnmarshalState(data)
	require.NoError(t, err)
	assert.Equal(t, state, decoded)
}

func TestUnmarshalStateLength(t *testing.T) {
	t.Parallel()

	for _, size := range []int{0, StateSize - 1, StateSize + 1} {
		_, err := UnmarshalState(make([]byte, size))
		assert.ErrorIs(t, err, ErrInvalidAccountData, "size %d", size)
	}
}

func TestValidateTransition(t *testing.T) {
	t.Parallel()
	prev := mustInitialize(t, 1000, 100, testTime)
	prev.TotalSupply = 500
	prev.TotalTransactions = 5

	testCases := []struct {
		name   string
		mutate func(s *State)
		valid  bool
	}{
		{name: "unchanged", mutate: func(s *State) {}, valid: true},
		{name: "supply_up", mutate: func(s *State) { s.TotalSupply++ }, valid: true},
		{name: "supply_down", mutate: func(s *State) { s.TotalSupply-- }},
		{name: "supply_over_max", mutate: func(s *State) { s.TotalSupply = MaxSupply + 1 }},
		{name: "transactions_down", mutate: func(s *State) { s.TotalTransactions-- }},
		{name: "difficulty_below_min", mutate: func(s *State) { s.MiningDifficulty = MinDifficulty - 1 }},
		{name: "duration_changed", mutate: func(s *State) { s.EnergyBurstDuration++ }},
		{name: "init_timestamp_changed", mutate: func(s *State) { s.InitializationTimestamp++ }},
		{name: "miners_changed", mutate: func(s *State) { s.TotalMiners++ }},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			next := prev
			tc.mutate(&next)
			err := ValidateTransition(prev, next)
			if tc.valid {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrInvariantViolation)
			}
		})
	}
}
