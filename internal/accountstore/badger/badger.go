package badger

import (
	"bytes"
	"context"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/dgraph-io/badger/v4"
	"github.com/mrfresh-network/fresh-program/common/errs"
	"github.com/mrfresh-network/fresh-program/core/types"
	"github.com/mrfresh-network/fresh-program/internal/accountstore"
	"github.com/near/borsh-go"
)

var _ accountstore.Store = (*Store)(nil)

var accountPrefix = []byte("account/")

// record is the stored value of an account. The key is not repeated in the value.
type record struct {
	Owner types.Pubkey
	Data  []byte
}

// Store is an accountstore.Store backed by an embedded Badger database.
type Store struct {
	db *badger.DB
}

// Open opens or creates a database at path. An empty path opens an in-memory database.
func Open(path string) (*Store, error) {
	opts := badger.DefaultOptions(path)
	if path == "" {
		opts = opts.WithInMemory(true)
	}
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		if strings.Contains(err.Error(), "Cannot acquire directory lock") {
			return nil, errors.Wrapf(err, "database at %s is locked by another process", path)
		}
		return nil, errors.Wrapf(err, "failed to open database at %s", path)
	}
	return &Store{db: db}, nil
}

func accountKey(key types.Pubkey) []byte {
	return append(bytes.Clone(accountPrefix), key[:]...)
}

func decodeAccount(key, value []byte) (accountstore.Account, error) {
	var r record
	if err := borsh.Deserialize(&r, value); err != nil {
		return accountstore.Account{}, errors.Wrap(err, "failed to decode account record")
	}
	account := accountstore.Account{
		Owner: r.Owner,
		Data:  r.Data,
	}
	copy(account.Key[:], key[len(accountPrefix):])
	if account.Data == nil {
		account.Data = []byte{}
	}
	return account, nil
}

func (s *Store) Get(_ context.Context, key types.Pubkey) (accountstore.Account, error) {
	var account accountstore.Account
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(accountKey(key))
		if err != nil {
			return err
		}
		value, err := item.ValueCopy(nil)
		if err != nil {
			return err
		}
		account, err = decodeAccount(item.Key(), value)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return accountstore.Account{}, errors.Wrapf(errs.NotFound, "account %s", key)
	}
	if err != nil {
		return accountstore.Account{}, errors.Wrap(err, "badger get")
	}
	return account, nil
}

func (s *Store) PutBatch(_ context.Context, accounts []accountstore.Account) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		for _, account := range accounts {
			value, err := borsh.Serialize(record{Owner: account.Owner, Data: account.Data})
			if err != nil {
				return errors.Wrapf(err, "failed to encode account %s", account.Key)
			}
			if err := txn.Set(accountKey(account.Key), value); err != nil {
				return errors.WithStack(err)
			}
		}
		return nil
	})
	if err != nil {
		return errors.Wrap(err, "badger put")
	}
	return nil
}

func (s *Store) Has(_ context.Context, key types.Pubkey) (bool, error) {
	var exists bool
	err := s.db.View(func(txn *badger.Txn) error {
		_, err := txn.Get(accountKey(key))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		exists = true
		return nil
	})
	if err != nil {
		return false, errors.Wrap(err, "badger has")
	}
	return exists, nil
}

// List returns accounts in key order, which is Badger's iteration order.
func (s *Store) List(_ context.Context) ([]accountstore.Account, error) {
	var accounts []accountstore.Account
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = accountPrefix
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek(accountPrefix); it.ValidForPrefix(accountPrefix); it.Next() {
			item := it.Item()
			key := item.KeyCopy(nil)
			err := item.Value(func(value []byte) error {
				account, err := decodeAccount(key, value)
				if err != nil {
					return err
				}
				accounts = append(accounts, account.Clone())
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "badger list")
	}
	return accounts, nil
}

func (s *Store) Close() error {
	return errors.WithStack(s.db.Close())
}
