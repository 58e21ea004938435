package fresh

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeInstruction(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		data     []byte
		expected Instruction
	}{
		{
			name: "initialize",
			data: []byte{0, 0xe8, 0x03, 0, 0, 0, 0, 0, 0, 100, 0, 0, 0, 0, 0, 0, 0},
			expected: Instruction{
				Kind:                InstructionInitialize,
				MiningDifficulty:    1000,
				EnergyBurstDuration: 100,
			},
		},
		{
			name:     "mine",
			data:     []byte{1},
			expected: Instruction{Kind: InstructionMine},
		},
		{
			name:     "update_difficulty",
			data:     []byte{2, 50, 0, 0, 0, 0, 0, 0, 0},
			expected: Instruction{Kind: InstructionUpdateDifficulty, NewDifficulty: 50},
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			actual, err := DecodeInstruction(tc.data)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, actual)

			encoded, err := actual.Encode()
			require.NoError(t, err)
			assert.Equal(t, tc.data, encoded)
		})
	}
}

func TestDecodeInstructionMalformed(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name string
		data []byte
	}{
		{name: "empty", data: nil},
		{name: "unknown_tag", data: []byte{3}},
		{name: "initialize_short", data: []byte{0, 1, 2, 3}},
		{name: "initialize_trailing", data: append(EncodeInstruction(NewInitializeInstruction(100, 1)), 0)},
		{name: "mine_trailing", data: []byte{1, 0}},
		{name: "update_difficulty_short", data: []byte{2, 100}},
		{name: "update_difficulty_trailing", data: append(EncodeInstruction(NewUpdateDifficultyInstruction(100)), 9)},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := DecodeInstruction(tc.data)
			require.ErrorIs(t, err, InvalidInstruction)

			var programErr ProgramError
			require.ErrorAs(t, err, &programErr)
			assert.Equal(t, uint32(2), programErr.Code())
		})
	}
}

func TestParseInstructionKind(t *testing.T) {
	t.Parallel()

	for _, kind := range []InstructionKind{InstructionInitialize, InstructionMine, InstructionUpdateDifficulty} {
		parsed, err := ParseInstructionKind(kind.String())
		require.NoError(t, err)
		assert.Equal(t, kind, parsed)
	}

	_, err := ParseInstructionKind("burn")
	assert.ErrorIs(t, err, InvalidInstruction)
}
