package fresh

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/mrfresh-network/fresh-program/pkg/logger"
	"github.com/mrfresh-network/fresh-program/pkg/logger/slogx"
)

// UpdateDifficulty replaces the mining difficulty. Any caller may change it.
func UpdateDifficulty(ctx context.Context, state State, newDifficulty uint64) (State, error) {
	if newDifficulty < MinDifficulty {
		return state, errors.WithStack(DifficultyTooLow)
	}

	logger.DebugContext(ctx, "Updating mining difficulty",
		slogx.Uint64("old_difficulty", state.MiningDifficulty),
		slogx.Uint64("new_difficulty", newDifficulty),
	)
	state.MiningDifficulty = newDifficulty
	return state, nil
}
