package types

import (
	"github.com/cockroachdb/errors"
)

// ErrAccountDataTooSmall is returned when an encoded value does not fit the account data.
var ErrAccountDataTooSmall = errors.New("account data too small for instruction")

// AccountInfo is the view of a ledger account handed to a program for one instruction.
// The data slice is owned by the caller; SetData writes into it in place.
type AccountInfo struct {
	key      Pubkey
	owner    Pubkey
	data     []byte
	signer   bool
	writable bool
}

func NewAccountInfo(key, owner Pubkey, data []byte, signer, writable bool) *AccountInfo {
	return &AccountInfo{
		key:      key,
		owner:    owner,
		data:     data,
		signer:   signer,
		writable: writable,
	}
}

func (a *AccountInfo) Key() Pubkey {
	return a.key
}

func (a *AccountInfo) Owner() Pubkey {
	return a.owner
}

func (a *AccountInfo) IsSigner() bool {
	return a.signer
}

func (a *AccountInfo) IsWritable() bool {
	return a.writable
}

// Data returns a copy of the account data.
func (a *AccountInfo) Data() []byte {
	return append([]byte(nil), a.data...)
}

// SetData writes data at the start of the account data. Bytes past len(data) are left untouched.
func (a *AccountInfo) SetData(data []byte) error {
	if len(data) > len(a.data) {
		return errors.Wrapf(ErrAccountDataTooSmall, "need %d bytes, account has %d", len(data), len(a.data))
	}
	copy(a.data, data)
	return nil
}
