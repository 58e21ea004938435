package replay

import (
	"io"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/mrfresh-network/fresh-program/common/errs"
	"github.com/mrfresh-network/fresh-program/core/types"
	"github.com/mrfresh-network/fresh-program/modules/fresh"
	"gopkg.in/yaml.v3"
)

// Transcript is a recorded sequence of instructions against one state account.
type Transcript struct {
	ProgramID types.Pubkey `yaml:"program_id"`
	State     types.Pubkey `yaml:"state"`
	Steps     []Step       `yaml:"steps"`
}

type Step struct {
	Instruction string   `yaml:"instruction"`
	Args        StepArgs `yaml:"args"`
	Time        int64    `yaml:"time"`
	Slot        uint64   `yaml:"slot"`
	// ExpectError is the expected error name, empty when the step must succeed.
	ExpectError string `yaml:"expect_error"`
}

type StepArgs struct {
	MiningDifficulty    uint64 `yaml:"mining_difficulty"`
	EnergyBurstDuration uint64 `yaml:"energy_burst_duration"`
	NewDifficulty       uint64 `yaml:"new_difficulty"`
}

// ToInstruction builds the program instruction of the step.
func (s Step) ToInstruction() (fresh.Instruction, error) {
	kind, err := fresh.ParseInstructionKind(s.Instruction)
	if err != nil {
		return fresh.Instruction{}, errors.WithStack(err)
	}
	switch kind {
	case fresh.InstructionInitialize:
		return fresh.NewInitializeInstruction(s.Args.MiningDifficulty, s.Args.EnergyBurstDuration), nil
	case fresh.InstructionUpdateDifficulty:
		return fresh.NewUpdateDifficultyInstruction(s.Args.NewDifficulty), nil
	}
	return fresh.NewMineInstruction(), nil
}

// Parse reads a YAML transcript. Unknown fields are rejected.
func Parse(r io.Reader) (Transcript, error) {
	var t Transcript
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&t); err != nil {
		return Transcript{}, errors.Wrap(err, "failed to decode transcript")
	}
	if err := t.Validate(); err != nil {
		return Transcript{}, errors.WithStack(err)
	}
	return t, nil
}

// Load reads the transcript file at path.
func Load(path string) (Transcript, error) {
	f, err := os.Open(path)
	if err != nil {
		return Transcript{}, errors.Wrapf(err, "failed to open transcript %s", path)
	}
	defer f.Close()
	return Parse(f)
}

func (t *Transcript) Validate() error {
	if t.ProgramID.IsZero() {
		t.ProgramID = DefaultProgramID
	}
	if t.State.IsZero() {
		t.State = DefaultStateKey
	}
	if len(t.Steps) == 0 {
		return errors.Wrap(errs.InvalidArgument, "transcript has no steps")
	}
	for i, step := range t.Steps {
		if _, err := step.ToInstruction(); err != nil {
			return errors.Wrapf(errs.InvalidArgument, "step %d: %v", i, err)
		}
	}
	return nil
}
