package replay

import (
	"context"
	"strings"
	"testing"

	"github.com/mrfresh-network/fresh-program/common/errs"
	"github.com/mrfresh-network/fresh-program/modules/fresh"
	"github.com/mrfresh-network/fresh-program/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const scenarioStart int64 = 1_700_000_000

func testContext() context.Context {
	return logger.NewContext(context.Background(), logger.NewDiscard())
}

func TestRunScenarios(t *testing.T) {
	transcript, err := Load("testdata/scenarios.yaml")
	require.NoError(t, err)
	assert.Equal(t, DefaultProgramID, transcript.ProgramID)
	assert.Equal(t, DefaultStateKey, transcript.State)

	report, err := Run(testContext(), transcript, 4)
	require.NoError(t, err)
	require.NoError(t, report.Err())
	assert.Equal(t, 4, report.Validators)

	rewards := make([]uint64, 0, len(report.Steps))
	for _, step := range report.Steps {
		rewards = append(rewards, step.Reward)
	}
	assert.Equal(t, []uint64{0, 10_000, 0, 0, 15_000, 0, 0, 8_250, 2_750}, rewards)

	assert.Equal(t, fresh.State{
		TotalSupply:             36_000,
		MiningDifficulty:        2000,
		LastMiningTimestamp:     scenarioStart + fresh.HalvingInterval,
		TotalMiners:             0,
		TotalTransactions:       4,
		LastEnergyBurstSlot:     4100,
		EnergyBurstDuration:     100,
		InitializationTimestamp: scenarioStart,
	}, report.State)
	assert.Len(t, report.StateBytes, fresh.StateSize)
}

func TestRunReportsMismatch(t *testing.T) {
	transcript, err := Parse(strings.NewReader(`
steps:
  - instruction: initialize
    args: {mining_difficulty: 100, energy_burst_duration: 1}
    time: 1700000000
  - instruction: mine
    time: 1700000000
    slot: 1
    expect_error: PoopDiscovered
`))
	require.NoError(t, err)

	report, err := Run(testContext(), transcript, 2)
	require.NoError(t, err)
	require.Len(t, report.Mismatches, 1)
	assert.Contains(t, report.Mismatches[0], `expected error "PoopDiscovered", got ""`)
	assert.ErrorIs(t, report.Err(), ErrExpectationMismatch)
}

func TestRunValidators(t *testing.T) {
	transcript, err := Load("testdata/scenarios.yaml")
	require.NoError(t, err)

	_, err = Run(testContext(), transcript, 0)
	assert.ErrorIs(t, err, errs.InvalidArgument)
}

func TestParseErrors(t *testing.T) {
	testCases := []struct {
		name string
		doc  string
	}{
		{name: "no_steps", doc: "steps: []"},
		{name: "unknown_field", doc: "steps:\n  - instruction: mine\n    burn: 1\n"},
		{name: "unknown_instruction", doc: "steps:\n  - instruction: burn\n"},
		{name: "bad_program_id", doc: "program_id: 0OIl\nsteps:\n  - instruction: mine\n"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tc.doc))
			assert.Error(t, err)
		})
	}
}

func TestCompare(t *testing.T) {
	a := Replica{
		Steps:      []StepOutcome{{Index: 0, Instruction: "mine", Reward: 10}},
		StateBytes: []byte{1, 2},
	}

	assert.NoError(t, compare(a, a))

	b := a
	b.StateBytes = []byte{1, 3}
	assert.ErrorIs(t, compare(a, b), ErrDivergence)

	c := a
	c.Steps = []StepOutcome{{Index: 0, Instruction: "mine", Reward: 11}}
	assert.ErrorIs(t, compare(a, c), ErrDivergence)

	d := a
	d.Steps = nil
	assert.ErrorIs(t, compare(a, d), ErrDivergence)
}
