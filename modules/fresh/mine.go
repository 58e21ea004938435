package fresh

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/cockroachdb/errors"
	"github.com/mrfresh-network/fresh-program/core/types"
	"github.com/mrfresh-network/fresh-program/pkg/logger"
	"github.com/mrfresh-network/fresh-program/pkg/logger/slogx"
	"github.com/mrfresh-network/fresh-program/pkg/saturating"
)

// MineResult summarizes a successful Mine.
type MineResult struct {
	Reward       uint64
	BaseReward   uint64
	HalvingEpoch uint64
	EnergyBurst  bool
	LuckyPurr    bool
	Clamped      bool
}

func (r MineResult) LogValue() slog.Value {
	return slog.GroupValue(
		slogx.Uint64("reward", r.Reward),
		slogx.Uint64("base_reward", r.BaseReward),
		slogx.Uint64("halving_epoch", r.HalvingEpoch),
		slogx.Bool("energy_burst", r.EnergyBurst),
		slogx.Bool("lucky_purr", r.LuckyPurr),
		slogx.Bool("clamped", r.Clamped),
	)
}

// IsCooldownActive reports whether a mine at now falls inside the cooldown
// window of the previous mine, and the seconds left in that window.
func IsCooldownActive(lastMiningTimestamp, now int64) (active bool, remaining int64) {
	if lastMiningTimestamp == 0 {
		return false, 0
	}
	elapsed := saturating.SubI64(now, lastMiningTimestamp)
	if elapsed >= MiningCooldown {
		return false, 0
	}
	return true, MiningCooldown - elapsed
}

// IsPoopSlot reports whether slot hits the poop gate.
func IsPoopSlot(slot uint64) bool {
	return slot != 0 && slot%PoopModulus == 0 && slot < PoopSlotLimit
}

// Mine runs one mining attempt against state. On error the returned state is
// the input state unchanged.
func Mine(ctx context.Context, state State, clock types.Clock) (State, MineResult, error) {
	now, slot := clock.UnixTimestamp, clock.Slot

	logger.DebugContext(ctx, "Mr. Fresh is checking",
		slogx.Int64("current_time", now),
		slogx.Int64("last_mining_timestamp", state.LastMiningTimestamp),
		slogx.Uint64("slot", slot),
	)

	if active, remaining := IsCooldownActive(state.LastMiningTimestamp, now); active {
		logger.InfoContext(ctx, "Mr. Fresh needs a break",
			slogx.String("minutes_remaining", fmt.Sprintf("%.1f", float64(remaining)/60)),
		)
		return state, MineResult{}, errors.WithStack(CooldownActive)
	}

	if IsPoopSlot(slot) {
		logger.InfoContext(ctx, "Oh no! Mr. Fresh found a surprise", slogx.Uint64("slot", slot))
		return state, MineResult{}, errors.WithStack(PoopDiscovered)
	}

	schedule, err := CalculateReward(ctx, state, now)
	if err != nil {
		return state, MineResult{}, errors.WithStack(err)
	}

	next := state
	bonus := EvaluateBonuses(ctx, &next, slot, schedule.Reward)
	reward := bonus.Reward

	clamped := false
	if saturating.AddU64(next.TotalSupply, reward) > MaxSupply {
		reward = MaxSupply - next.TotalSupply
		clamped = true
		logger.DebugContext(ctx, "Reward clamped to remaining supply", slogx.Uint64("reward", reward))
	}

	next.LastMiningTimestamp = now
	next.TotalSupply = saturating.AddU64(next.TotalSupply, reward)
	next.TotalTransactions = saturating.AddU64(next.TotalTransactions, 1)

	result := MineResult{
		Reward:       reward,
		BaseReward:   schedule.BaseReward,
		HalvingEpoch: schedule.HalvingEpoch,
		EnergyBurst:  bonus.EnergyBurst,
		LuckyPurr:    bonus.LuckyPurr,
		Clamped:      clamped,
	}

	logger.InfoContext(ctx, "Mining successful",
		slogx.Uint64("reward", reward),
		slogx.Uint64("total_supply", next.TotalSupply),
		slogx.Uint64("total_transactions", next.TotalTransactions),
	)
	return next, result, nil
}
