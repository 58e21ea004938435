package fresh

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
)

func TestProgramErrorCodes(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		err     ProgramError
		code    uint32
		name    string
		message string
	}{
		{CooldownActive, 0, "CooldownActive", "Cooldown is still active"},
		{PoopDiscovered, 1, "PoopDiscovered", "Oh no! Poop discovered!"},
		{InvalidInstruction, 2, "InvalidInstruction", "Invalid instruction data"},
		{DifficultyTooLow, 3, "DifficultyTooLow", "Mining difficulty too low"},
		{MaxSupplyReached, 4, "MaxSupplyReached", "Maximum supply reached"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.code, tc.err.Code())
			assert.Equal(t, tc.name, tc.err.Name())
			assert.Equal(t, tc.message, tc.err.Error())
		})
	}
	assert.Equal(t, "Custom(9)", ProgramError(9).Name())
}

func TestErrorName(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "", ErrorName(nil))
	assert.Equal(t, "CooldownActive", ErrorName(errors.Wrap(CooldownActive, "mine")))
	assert.Equal(t, "IncorrectProgramId", ErrorName(errors.Wrap(ErrIncorrectProgramID, "owner")))
	assert.Equal(t, "AccountDataTooSmall", ErrorName(errors.Mark(errors.New("short"), ErrAccountDataTooSmall)))
	assert.Equal(t, "Unknown", ErrorName(errors.New("boom")))
}
