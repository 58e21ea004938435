package ledger

import (
	"bytes"
	"slices"
	"sync"

	"github.com/mrfresh-network/fresh-program/core/types"
	"github.com/samber/lo"
)

// keyLocker hands out one mutex per account key.
type keyLocker struct {
	mu    sync.Mutex
	locks map[types.Pubkey]*sync.Mutex
}

func newKeyLocker() *keyLocker {
	return &keyLocker{
		locks: make(map[types.Pubkey]*sync.Mutex),
	}
}

func (l *keyLocker) get(key types.Pubkey) *sync.Mutex {
	l.mu.Lock()
	defer l.mu.Unlock()

	m, ok := l.locks[key]
	if !ok {
		m = &sync.Mutex{}
		l.locks[key] = m
	}
	return m
}

// Lock locks every key in a fixed order and returns the unlock function.
func (l *keyLocker) Lock(keys []types.Pubkey) (unlock func()) {
	keys = lo.Uniq(keys)
	slices.SortFunc(keys, func(a, b types.Pubkey) int {
		return bytes.Compare(a[:], b[:])
	})

	held := make([]*sync.Mutex, 0, len(keys))
	for _, key := range keys {
		m := l.get(key)
		m.Lock()
		held = append(held, m)
	}
	return func() {
		for i := len(held) - 1; i >= 0; i-- {
			held[i].Unlock()
		}
	}
}
