package accountstore

import (
	"bytes"
	"context"
	"slices"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/mrfresh-network/fresh-program/common/errs"
	"github.com/mrfresh-network/fresh-program/core/types"
	"github.com/samber/lo"
)

var _ Store = (*MemoryStore)(nil)

// MemoryStore keeps accounts in a map. Used by tests and replay replicas.
type MemoryStore struct {
	mu       sync.RWMutex
	accounts map[types.Pubkey]Account
}

func NewMemory() *MemoryStore {
	return &MemoryStore{
		accounts: make(map[types.Pubkey]Account),
	}
}

func (m *MemoryStore) Get(_ context.Context, key types.Pubkey) (Account, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	account, ok := m.accounts[key]
	if !ok {
		return Account{}, errors.Wrapf(errs.NotFound, "account %s", key)
	}
	return account.Clone(), nil
}

func (m *MemoryStore) PutBatch(_ context.Context, accounts []Account) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, account := range accounts {
		m.accounts[account.Key] = account.Clone()
	}
	return nil
}

func (m *MemoryStore) Has(_ context.Context, key types.Pubkey) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	_, ok := m.accounts[key]
	return ok, nil
}

func (m *MemoryStore) List(_ context.Context) ([]Account, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	accounts := lo.MapToSlice(m.accounts, func(_ types.Pubkey, account Account) Account {
		return account.Clone()
	})
	slices.SortFunc(accounts, func(a, b Account) int {
		return bytes.Compare(a.Key[:], b.Key[:])
	})
	return accounts, nil
}

func (m *MemoryStore) Close() error {
	return nil
}
