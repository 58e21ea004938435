package fresh

import (
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/near/borsh-go"
)

type InstructionKind uint8

const (
	InstructionInitialize InstructionKind = iota
	InstructionMine
	InstructionUpdateDifficulty
)

func (k InstructionKind) String() string {
	switch k {
	case InstructionInitialize:
		return "initialize"
	case InstructionMine:
		return "mine"
	case InstructionUpdateDifficulty:
		return "update_difficulty"
	}
	return fmt.Sprintf("unknown(%d)", uint8(k))
}

// ParseInstructionKind parses the name returned by InstructionKind.String.
func ParseInstructionKind(s string) (InstructionKind, error) {
	switch s {
	case "initialize":
		return InstructionInitialize, nil
	case "mine":
		return InstructionMine, nil
	case "update_difficulty", "update-difficulty":
		return InstructionUpdateDifficulty, nil
	}
	return 0, errors.Wrapf(InvalidInstruction, "unknown instruction %q", s)
}

// Instruction is a decoded program instruction. Only the fields of Kind are meaningful.
type Instruction struct {
	Kind InstructionKind

	// Initialize
	MiningDifficulty    uint64
	EnergyBurstDuration uint64

	// UpdateDifficulty
	NewDifficulty uint64
}

func NewInitializeInstruction(miningDifficulty, energyBurstDuration uint64) Instruction {
	return Instruction{
		Kind:                InstructionInitialize,
		MiningDifficulty:    miningDifficulty,
		EnergyBurstDuration: energyBurstDuration,
	}
}

func NewMineInstruction() Instruction {
	return Instruction{Kind: InstructionMine}
}

func NewUpdateDifficultyInstruction(newDifficulty uint64) Instruction {
	return Instruction{
		Kind:          InstructionUpdateDifficulty,
		NewDifficulty: newDifficulty,
	}
}

type initializeArgs struct {
	MiningDifficulty    uint64
	EnergyBurstDuration uint64
}

type updateDifficultyArgs struct {
	NewDifficulty uint64
}

const (
	initializeArgsSize       = 16
	updateDifficultyArgsSize = 8
)

// DecodeInstruction decodes instruction data: a one byte variant tag followed
// by the variant's little-endian fields. Trailing bytes are rejected.
func DecodeInstruction(data []byte) (Instruction, error) {
	if len(data) == 0 {
		return Instruction{}, errors.Wrap(InvalidInstruction, "empty instruction data")
	}
	kind, payload := InstructionKind(data[0]), data[1:]

	switch kind {
	case InstructionInitialize:
		if len(payload) != initializeArgsSize {
			return Instruction{}, errors.Wrapf(InvalidInstruction, "initialize payload length %d, expected %d", len(payload), initializeArgsSize)
		}
		var args initializeArgs
		if err := borsh.Deserialize(&args, payload); err != nil {
			return Instruction{}, errors.Wrapf(InvalidInstruction, "cannot decode initialize payload: %v", err)
		}
		return NewInitializeInstruction(args.MiningDifficulty, args.EnergyBurstDuration), nil
	case InstructionMine:
		if len(payload) != 0 {
			return Instruction{}, errors.Wrapf(InvalidInstruction, "mine takes no payload, got %d bytes", len(payload))
		}
		return NewMineInstruction(), nil
	case InstructionUpdateDifficulty:
		if len(payload) != updateDifficultyArgsSize {
			return Instruction{}, errors.Wrapf(InvalidInstruction, "update difficulty payload length %d, expected %d", len(payload), updateDifficultyArgsSize)
		}
		var args updateDifficultyArgs
		if err := borsh.Deserialize(&args, payload); err != nil {
			return Instruction{}, errors.Wrapf(InvalidInstruction, "cannot decode update difficulty payload: %v", err)
		}
		return NewUpdateDifficultyInstruction(args.NewDifficulty), nil
	}
	return Instruction{}, errors.Wrapf(InvalidInstruction, "unknown instruction tag %d", uint8(kind))
}

// Encode returns the wire form accepted by DecodeInstruction.
func (i Instruction) Encode() ([]byte, error) {
	var payload any
	switch i.Kind {
	case InstructionInitialize:
		payload = initializeArgs{
			MiningDifficulty:    i.MiningDifficulty,
			EnergyBurstDuration: i.EnergyBurstDuration,
		}
	case InstructionMine:
		return []byte{byte(InstructionMine)}, nil
	case InstructionUpdateDifficulty:
		payload = updateDifficultyArgs{NewDifficulty: i.NewDifficulty}
	default:
		return nil, errors.Wrapf(InvalidInstruction, "unknown instruction tag %d", uint8(i.Kind))
	}

	body, err := borsh.Serialize(payload)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to encode %s payload", i.Kind)
	}
	return append([]byte{byte(i.Kind)}, body...), nil
}

// EncodeInstruction is like Encode but panics on error.
func EncodeInstruction(i Instruction) []byte {
	data, err := i.Encode()
	if err != nil {
		panic(err)
	}
	return data
}
