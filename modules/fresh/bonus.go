package fresh

import (
	"context"

	"github.com/mrfresh-network/fresh-program/pkg/logger"
	"github.com/mrfresh-network/fresh-program/pkg/logger/slogx"
	"github.com/mrfresh-network/fresh-program/pkg/saturating"
)

// BonusOutcome describes which bonuses applied to a reward.
type BonusOutcome struct {
	Reward         uint64
	EnergyBurst    bool
	LuckyPurr      bool
	PreBonusReward uint64
}

// IsEnergyBurstActive reports whether an energy burst triggers at slot.
// The burst needs both a slot divisible by EnergyBurstModulus and either no
// previous burst or at least energyBurstDuration slots since the last one.
func IsEnergyBurstActive(ctx context.Context, slot, lastEnergyBurstSlot, energyBurstDuration uint64) bool {
	slotsSinceLast := saturating.SubU64(slot, lastEnergyBurstSlot)
	modCheck := slot%EnergyBurstModulus == 0
	durationCheck := lastEnergyBurstSlot == 0 || slotsSinceLast >= energyBurstDuration
	active := durationCheck && modCheck

	logger.DebugContext(ctx, "Energy burst check",
		slogx.Uint64("slot", slot),
		slogx.Uint64("last_burst_slot", lastEnergyBurstSlot),
		slogx.Uint64("slots_since_last", slotsSinceLast),
		slogx.Uint64("duration_threshold", energyBurstDuration),
		slogx.Bool("modulo_check", modCheck),
		slogx.Bool("duration_check", durationCheck),
		slogx.Bool("active", active),
	)
	return active
}

// IsLuckyPurr reports whether the lucky bonus triggers at slot.
func IsLuckyPurr(slot uint64) bool {
	return slot%LuckyPurrChance == 0
}

// ApplyBonus scales reward by multiplier/100, multiplying first.
func ApplyBonus(reward, multiplier uint64) uint64 {
	return saturating.MulDivU64(reward, multiplier, BonusDenominator)
}

// EvaluateBonuses applies the energy burst and then the lucky bonus to reward.
// When a burst triggers, state.LastEnergyBurstSlot is moved to slot; the caller
// decides whether that state is committed.
func EvaluateBonuses(ctx context.Context, state *State, slot uint64, reward uint64) BonusOutcome {
	outcome := BonusOutcome{
		Reward:         reward,
		PreBonusReward: reward,
	}

	if IsEnergyBurstActive(ctx, slot, state.LastEnergyBurstSlot, state.EnergyBurstDuration) {
		before := outcome.Reward
		outcome.Reward = ApplyBonus(outcome.Reward, EnergyBurstBonus)
		outcome.EnergyBurst = true
		state.LastEnergyBurstSlot = slot
		logger.DebugContext(ctx, "Mr. Fresh is full of energy! Bonus rewards active",
			slogx.Uint64("pre_bonus_reward", before),
			slogx.Uint64("reward", outcome.Reward),
		)
	}

	if IsLuckyPurr(slot) {
		before := outcome.Reward
		outcome.Reward = ApplyBonus(outcome.Reward, LuckyPurrBonus)
		outcome.LuckyPurr = true
		logger.DebugContext(ctx, "Mr. Fresh is extra happy! Lucky bonus",
			slogx.Uint64("pre_purr_reward", before),
			slogx.Uint64("reward", outcome.Reward),
		)
	}

	return outcome
}
