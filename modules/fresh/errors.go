package fresh

import (
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/mrfresh-network/fresh-program/common/errs"
)

// ProgramError is a failure defined by the program. Its numeric value is the
// custom error code the host reports to the caller and must never be reordered.
type ProgramError uint32

const (
	CooldownActive ProgramError = iota
	PoopDiscovered
	InvalidInstruction
	DifficultyTooLow
	MaxSupplyReached
)

var programErrorMessages = map[ProgramError]string{
	CooldownActive:     "Cooldown is still active",
	PoopDiscovered:     "Oh no! Poop discovered!",
	InvalidInstruction: "Invalid instruction data",
	DifficultyTooLow:   "Mining difficulty too low",
	MaxSupplyReached:   "Maximum supply reached",
}

var programErrorNames = map[ProgramError]string{
	CooldownActive:     "CooldownActive",
	PoopDiscovered:     "PoopDiscovered",
	InvalidInstruction: "InvalidInstruction",
	DifficultyTooLow:   "DifficultyTooLow",
	MaxSupplyReached:   "MaxSupplyReached",
}

// Name returns the identifier of the error, e.g. "CooldownActive".
func (e ProgramError) Name() string {
	if name, ok := programErrorNames[e]; ok {
		return name
	}
	return fmt.Sprintf("Custom(%d)", uint32(e))
}

// Error satisfies the error interface and prints human-readable errors.
func (e ProgramError) Error() string {
	if msg, ok := programErrorMessages[e]; ok {
		return msg
	}
	return fmt.Sprintf("unknown program error %d", uint32(e))
}

// Code returns the custom error code reported by the host.
func (e ProgramError) Code() uint32 {
	return uint32(e)
}

// Host level failures. These mirror the generic errors the ledger runtime
// reports for malformed account lists or account data.
const (
	ErrIncorrectProgramID   = errs.ErrorKind("incorrect program id for instruction")
	ErrInvalidArgument      = errs.ErrorKind("invalid program argument")
	ErrNotEnoughAccountKeys = errs.ErrorKind("insufficient account keys for instruction")
	ErrInvalidAccountData   = errs.ErrorKind("invalid account data for instruction")
	ErrAccountDataTooSmall  = errs.ErrorKind("account data too small for instruction")
	ErrInvariantViolation   = errs.ErrorKind("program state invariant violated")
)

var hostErrorNames = []struct {
	kind errs.ErrorKind
	name string
}{
	{ErrIncorrectProgramID, "IncorrectProgramId"},
	{ErrInvalidArgument, "InvalidArgument"},
	{ErrNotEnoughAccountKeys, "NotEnoughAccountKeys"},
	{ErrInvalidAccountData, "InvalidAccountData"},
	{ErrAccountDataTooSmall, "AccountDataTooSmall"},
	{ErrInvariantViolation, "InvariantViolation"},
}

// ErrorName names the failure reported for err the way the host reports it:
// the program error name, the host error name, or "" for a nil error.
func ErrorName(err error) string {
	if err == nil {
		return ""
	}
	var programErr ProgramError
	if errors.As(err, &programErr) {
		return programErr.Name()
	}
	for _, host := range hostErrorNames {
		if errors.Is(err, host.kind) {
			return host.name
		}
	}
	return "Unknown"
}
