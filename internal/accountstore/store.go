// Package accountstore persists ledger accounts for the local runtime.
package accountstore

import (
	"bytes"
	"context"

	"github.com/mrfresh-network/fresh-program/core/types"
)

type Driver string

const (
	DriverMemory   Driver = "memory"
	DriverBadger   Driver = "badger"
	DriverPostgres Driver = "postgres"
)

// Account is a stored ledger account.
type Account struct {
	Key   types.Pubkey
	Owner types.Pubkey
	Data  []byte
}

// Clone returns a deep copy of the account.
func (a Account) Clone() Account {
	a.Data = bytes.Clone(a.Data)
	return a
}

// Store is a persistent account table. Get returns errs.NotFound for unknown keys.
// Implementations must be safe for concurrent use.
type Store interface {
	Get(ctx context.Context, key types.Pubkey) (Account, error)
	// PutBatch stores all accounts atomically.
	PutBatch(ctx context.Context, accounts []Account) error
	Has(ctx context.Context, key types.Pubkey) (bool, error)
	// List returns all accounts ordered by key.
	List(ctx context.Context) ([]Account, error)
	Close() error
}
