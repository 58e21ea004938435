package fresh

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/mrfresh-network/fresh-program/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMineFirstReward(t *testing.T) {
	t.Parallel()
	ctx := testContext()

	state := mustInitialize(t, 1000, 100, 0)
	assert.Zero(t, state.TotalSupply)
	assert.Zero(t, state.InitializationTimestamp)

	next, result, err := Mine(ctx, state, clockAt(0, 1))
	require.NoError(t, err)
	assert.Equal(t, uint64(10_000), result.Reward)
	assert.False(t, result.EnergyBurst)
	assert.False(t, result.LuckyPurr)
	assert.Equal(t, uint64(10_000), next.TotalSupply)
	assert.Equal(t, uint64(1), next.TotalTransactions)
	assert.Zero(t, next.TotalMiners)
}

func TestMineCooldown(t *testing.T) {
	t.Parallel()
	ctx := testContext()

	state := mustInitialize(t, 1000, 100, testTime)
	mined, _, err := Mine(ctx, state, clockAt(testTime, 1))
	require.NoError(t, err)

	t.Run("immediately", func(t *testing.T) {
		after, _, err := Mine(ctx, mined, clockAt(testTime, 2))
		assert.ErrorIs(t, err, CooldownActive)
		assert.Equal(t, mined, after)
	})
	t.Run("last_second", func(t *testing.T) {
		_, _, err := Mine(ctx, mined, clockAt(testTime+MiningCooldown-1, 3))
		assert.ErrorIs(t, err, CooldownActive)
	})
	t.Run("clock_went_backwards", func(t *testing.T) {
		_, _, err := Mine(ctx, mined, clockAt(testTime-100, 3))
		assert.ErrorIs(t, err, CooldownActive)
	})
	t.Run("elapsed", func(t *testing.T) {
		next, _, err := Mine(ctx, mined, clockAt(testTime+MiningCooldown, 3))
		require.NoError(t, err)
		assert.Equal(t, uint64(20_000), next.TotalSupply)
		assert.Equal(t, testTime+MiningCooldown, next.LastMiningTimestamp)
	})
}

func TestMineAtZeroTimestamp(t *testing.T) {
	t.Parallel()
	ctx := testContext()

	// a mine at unix time 0 stores the "never mined" sentinel
	state := mustInitialize(t, 1000, 100, 0)
	mined, _, err := Mine(ctx, state, clockAt(0, 1))
	require.NoError(t, err)

	next, _, err := Mine(ctx, mined, clockAt(0, 2))
	require.NoError(t, err)
	assert.Equal(t, uint64(2), next.TotalTransactions)
}

func TestMineAfterHalving(t *testing.T) {
	t.Parallel()
	ctx := testContext()
	state := mustInitialize(t, 1000, 100, 0)

	schedule, err := CalculateReward(ctx, state, HalvingInterval)
	require.NoError(t, err)
	assert.Equal(t, uint64(5_000), schedule.Reward)

	// slot 1e9 is a lucky slot but not a burst slot
	next, result, err := Mine(ctx, state, clockAt(HalvingInterval, 1_000_000_000))
	require.NoError(t, err)
	assert.Equal(t, uint64(1), result.HalvingEpoch)
	assert.Equal(t, uint64(5_000_000), result.BaseReward)
	assert.False(t, result.EnergyBurst)
	assert.True(t, result.LuckyPurr)
	assert.Equal(t, uint64(5_500), result.Reward)
	assert.Equal(t, uint64(5_500), next.TotalSupply)
}

func TestMinePoop(t *testing.T) {
	t.Parallel()
	ctx := testContext()
	state := mustInitialize(t, 1000, 100, testTime)

	for _, slot := range []uint64{10, 20, 500, 990} {
		next, _, err := Mine(ctx, state, clockAt(testTime, slot))
		assert.ErrorIs(t, err, PoopDiscovered, "slot %d", slot)
		assert.Equal(t, state, next)
	}

	t.Run("outside_window", func(t *testing.T) {
		for _, slot := range []uint64{0, 1, 11, 1000, 1010} {
			_, _, err := Mine(ctx, state, clockAt(testTime, slot))
			assert.NoError(t, err, "slot %d", slot)
		}
	})
}

func TestMineEnergyBurst(t *testing.T) {
	t.Parallel()
	ctx := testContext()
	state := mustInitialize(t, 1000, 100, testTime)

	next, result, err := Mine(ctx, state, clockAt(testTime, 41))
	require.NoError(t, err)
	assert.True(t, result.EnergyBurst)
	assert.Equal(t, uint64(15_000), result.Reward)
	assert.Equal(t, uint64(41), next.LastEnergyBurstSlot)

	next, result, err = Mine(ctx, next, clockAt(testTime+MiningCooldown, 82))
	require.NoError(t, err)
	assert.False(t, result.EnergyBurst)
	assert.Equal(t, uint64(10_000), result.Reward)
	assert.Equal(t, uint64(41), next.LastEnergyBurstSlot)
	assert.Equal(t, uint64(25_000), next.TotalSupply)
}

func TestMineBurstNotCommittedOnFailure(t *testing.T) {
	t.Parallel()
	ctx := testContext()

	state := mustInitialize(t, 100, 100, testTime)
	state.TotalSupply = MaxSupply

	next, _, err := Mine(ctx, state, clockAt(testTime, 41))
	assert.ErrorIs(t, err, MaxSupplyReached)
	assert.Zero(t, next.LastEnergyBurstSlot)
	assert.Equal(t, state, next)
}

func TestMineClampsToMaxSupply(t *testing.T) {
	t.Parallel()
	ctx := testContext()

	state := mustInitialize(t, 100, 100, testTime)
	state.TotalSupply = MaxSupply - 3

	next, result, err := Mine(ctx, state, clockAt(testTime, 1))
	require.NoError(t, err)
	assert.True(t, result.Clamped)
	assert.Equal(t, uint64(3), result.Reward)
	assert.Equal(t, MaxSupply, next.TotalSupply)
	require.NoError(t, ValidateTransition(state, next))

	_, _, err = Mine(ctx, next, clockAt(testTime+MiningCooldown, 2))
	assert.ErrorIs(t, err, MaxSupplyReached)
}

func TestMineNarrationDoesNotAffectResult(t *testing.T) {
	t.Parallel()
	state := mustInitialize(t, 1000, 100, testTime)
	clock := clockAt(testTime, 4100)

	var buf bytes.Buffer
	captured := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	loud := logger.NewContext(context.Background(), captured)

	quietState, quietResult, err := Mine(testContext(), state, clock)
	require.NoError(t, err)
	loudState, loudResult, err := Mine(loud, state, clock)
	require.NoError(t, err)

	assert.Equal(t, quietState, loudState)
	assert.Equal(t, quietResult, loudResult)
	assert.Contains(t, buf.String(), `"halving_epoch":0`)
	assert.Contains(t, buf.String(), `"pre_bonus_reward":10000`)
	assert.Contains(t, buf.String(), "Mining successful")
}
