package fresh

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsEnergyBurstActive(t *testing.T) {
	t.Parallel()
	ctx := testContext()

	testCases := []struct {
		name     string
		slot     uint64
		lastSlot uint64
		duration uint64
		expected bool
	}{
		{name: "never_activated", slot: 41, lastSlot: 0, duration: 100, expected: true},
		{name: "slot_zero_never_activated", slot: 0, lastSlot: 0, duration: 100, expected: true},
		{name: "not_divisible", slot: 42, lastSlot: 0, duration: 100, expected: false},
		{name: "too_soon", slot: 82, lastSlot: 41, duration: 100, expected: false},
		{name: "gap_reached", slot: 164, lastSlot: 41, duration: 100, expected: true},
		{name: "gap_exact", slot: 82, lastSlot: 41, duration: 41, expected: true},
		{name: "slot_behind_last", slot: 41, lastSlot: 82, duration: 0, expected: true},
		{name: "slot_behind_last_with_duration", slot: 41, lastSlot: 82, duration: 1, expected: false},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, IsEnergyBurstActive(ctx, tc.slot, tc.lastSlot, tc.duration))
		})
	}
}

func TestEvaluateBonuses(t *testing.T) {
	t.Parallel()
	ctx := testContext()

	t.Run("no_bonus", func(t *testing.T) {
		state := State{EnergyBurstDuration: 100}
		outcome := EvaluateBonuses(ctx, &state, 7, 10_000)
		assert.Equal(t, uint64(10_000), outcome.Reward)
		assert.False(t, outcome.EnergyBurst)
		assert.False(t, outcome.LuckyPurr)
		assert.Zero(t, state.LastEnergyBurstSlot)
	})
	t.Run("energy_burst", func(t *testing.T) {
		state := State{EnergyBurstDuration: 100}
		outcome := EvaluateBonuses(ctx, &state, 41, 10_000)
		assert.Equal(t, uint64(15_000), outcome.Reward)
		assert.True(t, outcome.EnergyBurst)
		assert.Equal(t, uint64(41), state.LastEnergyBurstSlot)
	})
	t.Run("lucky_purr", func(t *testing.T) {
		state := State{EnergyBurstDuration: 100}
		outcome := EvaluateBonuses(ctx, &state, 200, 10_000)
		assert.Equal(t, uint64(11_000), outcome.Reward)
		assert.True(t, outcome.LuckyPurr)
		assert.False(t, outcome.EnergyBurst)
	})
	t.Run("burst_then_lucky", func(t *testing.T) {
		state := State{EnergyBurstDuration: 100}
		outcome := EvaluateBonuses(ctx, &state, 4100, 10_000)
		assert.Equal(t, uint64(16_500), outcome.Reward)
		assert.Equal(t, uint64(10_000), outcome.PreBonusReward)
		assert.True(t, outcome.EnergyBurst)
		assert.True(t, outcome.LuckyPurr)
		assert.Equal(t, uint64(4100), state.LastEnergyBurstSlot)
	})
	t.Run("floor_division", func(t *testing.T) {
		state := State{EnergyBurstDuration: 100}
		outcome := EvaluateBonuses(ctx, &state, 41, 3)
		assert.Equal(t, uint64(4), outcome.Reward)
	})
}
