package fresh

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/mrfresh-network/fresh-program/pkg/logger"
	"github.com/mrfresh-network/fresh-program/pkg/logger/slogx"
	"github.com/mrfresh-network/fresh-program/pkg/saturating"
)

// RewardSchedule is the outcome of the emission schedule for one point in time.
type RewardSchedule struct {
	TimeSinceStart int64
	HalvingEpoch   uint64
	BaseReward     uint64
	Reward         uint64
}

// HalvingEpoch returns the number of full halving intervals between the
// initialization timestamp and currentTime. Time before initialization counts as zero.
func HalvingEpoch(initializationTimestamp, currentTime int64) (timeSinceStart int64, epoch uint64) {
	timeSinceStart = max(saturating.SubI64(currentTime, initializationTimestamp), 0)
	return timeSinceStart, uint64(timeSinceStart / HalvingInterval)
}

// BaseRewardAt returns InitialBaseReward halved once per elapsed epoch.
func BaseRewardAt(epoch uint64) uint64 {
	return saturating.HalveU64(InitialBaseReward, epoch)
}

// CalculateReward computes the mining reward before bonuses for the given state at currentTime.
func CalculateReward(ctx context.Context, state State, currentTime int64) (RewardSchedule, error) {
	if state.TotalSupply >= MaxSupply {
		logger.InfoContext(ctx, "Maximum supply of 50 million FRESH tokens reached",
			slogx.Uint64("total_supply", state.TotalSupply),
		)
		return RewardSchedule{}, errors.WithStack(MaxSupplyReached)
	}

	timeSinceStart, epoch := HalvingEpoch(state.InitializationTimestamp, currentTime)
	baseReward := BaseRewardAt(epoch)
	if baseReward == 0 {
		logger.InfoContext(ctx, "Mining rewards have reached minimum threshold",
			slogx.Uint64("halving_epoch", epoch),
		)
		return RewardSchedule{}, errors.WithStack(MaxSupplyReached)
	}

	reward := saturating.DivU64(baseReward, state.MiningDifficulty)

	logger.DebugContext(ctx, "Reward calculation",
		slogx.Int64("time_since_start", timeSinceStart),
		slogx.Uint64("halving_epoch", epoch),
		slogx.Uint64("base_reward", baseReward),
		slogx.Uint64("mining_difficulty", state.MiningDifficulty),
		slogx.Uint64("reward", reward),
	)

	return RewardSchedule{
		TimeSinceStart: timeSinceStart,
		HalvingEpoch:   epoch,
		BaseReward:     baseReward,
		Reward:         reward,
	}, nil
}
