package cmd

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/mrfresh-network/fresh-program/common"
	"github.com/mrfresh-network/fresh-program/common/errs"
	"github.com/mrfresh-network/fresh-program/core/types"
	"github.com/mrfresh-network/fresh-program/internal/accountstore"
	"github.com/mrfresh-network/fresh-program/internal/config"
	"github.com/mrfresh-network/fresh-program/internal/ledger"
	"github.com/mrfresh-network/fresh-program/internal/replay"
	"github.com/mrfresh-network/fresh-program/modules/fresh"
	"github.com/mrfresh-network/fresh-program/pkg/logger"
	"github.com/samber/do/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const startTime int64 = 1_700_000_000

func testContext() context.Context {
	return logger.NewContext(context.Background(), logger.NewDiscard())
}

func deployOn(t *testing.T, injector do.Injector) {
	t.Helper()
	ctx := testContext()
	deployment := do.MustInvoke[Deployment](injector)
	rt := do.MustInvoke[*ledger.Runtime](injector)

	_, err := rt.CreateAccount(ctx, deployment.StateKey, deployment.ProgramID, fresh.StateSize)
	require.NoError(t, err)
	tx := ledger.InstructionTx(fresh.NewInitializeInstruction(1000, 100), deployment.StateKey, replay.DefaultMinerKey, deployment.ClockID)
	_, err = rt.Execute(ctx, types.NewClock(startTime, 1), tx)
	require.NoError(t, err)
}

func TestServices(t *testing.T) {
	t.Run("memory", func(t *testing.T) {
		ctx := testContext()
		injector := newInjector(ctx, config.Config{
			Network: common.NetworkLocalnet,
			Ledger:  config.Ledger{Driver: accountstore.DriverMemory},
		})
		defer shutdown(ctx, injector)

		deployOn(t, injector)
		state, err := do.MustInvoke[*ledger.Runtime](injector).State(ctx, replay.DefaultStateKey)
		require.NoError(t, err)
		assert.Equal(t, uint64(1000), state.MiningDifficulty)
	})

	t.Run("badger persists between injectors", func(t *testing.T) {
		ctx := testContext()
		conf := config.Config{
			Network: common.NetworkDevnet,
			Ledger: config.Ledger{
				Driver:     accountstore.DriverBadger,
				BadgerPath: t.TempDir(),
			},
		}

		injector := newInjector(ctx, conf)
		deployOn(t, injector)
		shutdown(ctx, injector)

		injector = newInjector(ctx, conf)
		defer shutdown(ctx, injector)
		state, err := do.MustInvoke[*ledger.Runtime](injector).State(ctx, replay.DefaultStateKey)
		require.NoError(t, err)
		assert.Equal(t, startTime, state.InitializationTimestamp)
	})

	t.Run("unsupported driver", func(t *testing.T) {
		ctx := testContext()
		injector := newInjector(ctx, config.Config{Ledger: config.Ledger{Driver: "leveldb"}})
		defer shutdown(ctx, injector)

		_, err := do.Invoke[*ledger.Runtime](injector)
		assert.Error(t, err)
	})

	t.Run("deployment keys from config", func(t *testing.T) {
		ctx := testContext()
		programID := types.PubkeyFromSeed("custom-program")
		injector := newInjector(ctx, config.Config{Program: config.Program{ProgramID: programID.String()}})
		defer shutdown(ctx, injector)

		deployment := do.MustInvoke[Deployment](injector)
		assert.Equal(t, programID, deployment.ProgramID)
		assert.Equal(t, replay.DefaultStateKey, deployment.StateKey)
		assert.Equal(t, types.ClockSysvarID, deployment.ClockID)
	})
}

func TestPublicProgramError(t *testing.T) {
	t.Parallel()

	t.Run("program error carries its code", func(t *testing.T) {
		err := publicProgramError(errors.Wrap(fresh.CooldownActive, "mine"))
		publicErr, ok := errs.AsPublicError(err)
		require.True(t, ok)
		assert.Equal(t, "0", publicErr.Code())
		assert.Contains(t, publicErr.Message(), "CooldownActive")
		assert.ErrorIs(t, err, fresh.CooldownActive)
	})

	t.Run("host error carries its name", func(t *testing.T) {
		err := publicProgramError(errors.Wrap(fresh.ErrIncorrectProgramID, "state account"))
		publicErr, ok := errs.AsPublicError(err)
		require.True(t, ok)
		assert.Empty(t, publicErr.Code())
		assert.Contains(t, publicErr.Message(), "IncorrectProgramId")
	})

	t.Run("other errors stay private", func(t *testing.T) {
		err := publicProgramError(errors.New("disk full"))
		_, ok := errs.AsPublicError(err)
		assert.False(t, ok)
	})
}

func TestExecClock(t *testing.T) {
	t.Parallel()

	now := time.Unix(startTime, 0)
	assert.Equal(t, types.NewClock(startTime, uint64(startTime*1000/400)), (&execCmdOptions{}).clock(now))
	assert.Equal(t, types.NewClock(42, 7), (&execCmdOptions{Time: 42, Slot: 7}).clock(now))
}

func TestReplayCommand(t *testing.T) {
	var out bytes.Buffer
	cmd := NewReplayCommand()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"../internal/replay/testdata/scenarios.yaml", "--validators", "3"})

	require.NoError(t, cmd.ExecuteContext(testContext()))
	assert.Contains(t, out.String(), "3 validators agree")
	assert.Contains(t, out.String(), "CooldownActive")
	assert.NotContains(t, out.String(), "mismatch")
}
