// Package storetest holds the behaviour every accountstore.Store implementation must share.
package storetest

import (
	"context"
	"testing"

	"github.com/mrfresh-network/fresh-program/common/errs"
	"github.com/mrfresh-network/fresh-program/core/types"
	"github.com/mrfresh-network/fresh-program/internal/accountstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Run runs the shared store tests against stores returned by newStore. Each
// subtest gets its own empty store.
func Run(t *testing.T, newStore func(t *testing.T) accountstore.Store) {
	ctx := context.Background()
	programID := types.PubkeyFromSeed("program")

	t.Run("get_missing", func(t *testing.T) {
		store := newStore(t)
		_, err := store.Get(ctx, types.PubkeyFromSeed("missing"))
		assert.ErrorIs(t, err, errs.NotFound)

		has, err := store.Has(ctx, types.PubkeyFromSeed("missing"))
		require.NoError(t, err)
		assert.False(t, has)
	})
	t.Run("put_get", func(t *testing.T) {
		store := newStore(t)
		account := accountstore.Account{
			Key:   types.PubkeyFromSeed("state"),
			Owner: programID,
			Data:  []byte{1, 2, 3, 4},
		}
		require.NoError(t, store.PutBatch(ctx, []accountstore.Account{account}))

		got, err := store.Get(ctx, account.Key)
		require.NoError(t, err)
		assert.Equal(t, account, got)

		has, err := store.Has(ctx, account.Key)
		require.NoError(t, err)
		assert.True(t, has)
	})
	t.Run("get_returns_copy", func(t *testing.T) {
		store := newStore(t)
		account := accountstore.Account{Key: types.PubkeyFromSeed("state"), Owner: programID, Data: []byte{1}}
		require.NoError(t, store.PutBatch(ctx, []accountstore.Account{account}))

		got, err := store.Get(ctx, account.Key)
		require.NoError(t, err)
		got.Data[0] = 9

		again, err := store.Get(ctx, account.Key)
		require.NoError(t, err)
		assert.Equal(t, []byte{1}, again.Data)
	})
	t.Run("overwrite", func(t *testing.T) {
		store := newStore(t)
		key := types.PubkeyFromSeed("state")
		require.NoError(t, store.PutBatch(ctx, []accountstore.Account{{Key: key, Owner: programID, Data: []byte{1}}}))
		require.NoError(t, store.PutBatch(ctx, []accountstore.Account{{Key: key, Owner: programID, Data: []byte{2, 2}}}))

		got, err := store.Get(ctx, key)
		require.NoError(t, err)
		assert.Equal(t, []byte{2, 2}, got.Data)
	})
	t.Run("list_ordered", func(t *testing.T) {
		store := newStore(t)
		accounts := []accountstore.Account{
			{Key: types.PubkeyFromSeed("c"), Owner: programID, Data: []byte{3}},
			{Key: types.PubkeyFromSeed("a"), Owner: programID, Data: []byte{1}},
			{Key: types.PubkeyFromSeed("b"), Owner: programID, Data: []byte{}},
		}
		require.NoError(t, store.PutBatch(ctx, accounts))

		listed, err := store.List(ctx)
		require.NoError(t, err)
		require.Len(t, listed, 3)
		assert.Equal(t, accounts[1], listed[0])
		assert.Equal(t, accounts[2], listed[1])
		assert.Equal(t, accounts[0], listed[2])
	})
}
