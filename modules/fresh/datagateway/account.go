package datagateway

import (
	"github.com/mrfresh-network/fresh-program/core/types"
)

// Account is the program's handle to a ledger account for the duration of one instruction.
type Account interface {
	Key() types.Pubkey
	Owner() types.Pubkey
	// Data returns the current account data. Callers must not retain or mutate it.
	Data() []byte
	// SetData writes data at the start of the account data.
	SetData(data []byte) error
}
