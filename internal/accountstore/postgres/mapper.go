package postgres

import (
	"github.com/cockroachdb/errors"
	"github.com/jackc/pgx/v5"
	"github.com/mrfresh-network/fresh-program/core/types"
	"github.com/mrfresh-network/fresh-program/internal/accountstore"
)

func mapPubkeyModelToType(src []byte) (types.Pubkey, error) {
	var key types.Pubkey
	if len(src) != len(key) {
		return types.Pubkey{}, errors.Errorf("invalid pubkey length %d", len(src))
	}
	copy(key[:], src)
	return key, nil
}

func mapAccountModelToType(key, owner, data []byte) (accountstore.Account, error) {
	k, err := mapPubkeyModelToType(key)
	if err != nil {
		return accountstore.Account{}, errors.Wrap(err, "failed to parse key")
	}
	o, err := mapPubkeyModelToType(owner)
	if err != nil {
		return accountstore.Account{}, errors.Wrap(err, "failed to parse owner")
	}
	if data == nil {
		data = []byte{}
	}
	return accountstore.Account{Key: k, Owner: o, Data: data}, nil
}

func scanAccount(row pgx.Row) (accountstore.Account, error) {
	var key, owner, data []byte
	if err := row.Scan(&key, &owner, &data); err != nil {
		return accountstore.Account{}, err
	}
	return mapAccountModelToType(key, owner, data)
}
