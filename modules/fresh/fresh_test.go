package fresh

import (
	"context"
	"testing"

	"github.com/mrfresh-network/fresh-program/core/types"
	"github.com/mrfresh-network/fresh-program/pkg/logger"
	"github.com/stretchr/testify/require"
)

// testTime is an arbitrary non-zero unix time used as a deployment start.
const testTime int64 = 1_700_000_000

func testContext() context.Context {
	return logger.NewContext(context.Background(), logger.NewDiscard())
}

func mustInitialize(t *testing.T, difficulty, duration uint64, now int64) State {
	t.Helper()
	state, err := Initialize(difficulty, duration, now)
	require.NoError(t, err)
	return state
}

func clockAt(now int64, slot uint64) types.Clock {
	return types.NewClock(now, slot)
}
