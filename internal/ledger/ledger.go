// Package ledger is a local stand-in for the ledger runtime that hosts the program.
package ledger

import (
	"bytes"
	"context"

	"github.com/cockroachdb/errors"
	"github.com/mrfresh-network/fresh-program/common/errs"
	"github.com/mrfresh-network/fresh-program/core/types"
	"github.com/mrfresh-network/fresh-program/internal/accountstore"
	"github.com/mrfresh-network/fresh-program/modules/fresh"
	"github.com/mrfresh-network/fresh-program/modules/fresh/datagateway"
	"github.com/mrfresh-network/fresh-program/pkg/logger"
	"github.com/mrfresh-network/fresh-program/pkg/logger/slogx"
	"github.com/samber/lo"
)

const (
	ErrReadonlyDataModified        = errs.ErrorKind("instruction modified data of a read-only account")
	ErrExternalAccountDataModified = errs.ErrorKind("instruction modified data of an account it does not own")
)

// SystemProgramID owns accounts that do not exist in the store.
var SystemProgramID = types.Pubkey{}

// SysvarProgramID owns the clock account.
var SysvarProgramID = types.PubkeyFromSeed("Sysvar")

// AccountMeta references an account of a transaction.
type AccountMeta struct {
	Key      types.Pubkey
	Signer   bool
	Writable bool
}

// Tx is a single instruction addressed to the deployed program.
type Tx struct {
	Accounts []AccountMeta
	Data     []byte
}

// InstructionTx builds the transaction carrying instruction with the account
// list the program expects for it: [state, clock] for Initialize,
// [state, miner, clock] for Mine and [state] for UpdateDifficulty.
func InstructionTx(instruction fresh.Instruction, state, miner, clock types.Pubkey) Tx {
	accounts := []AccountMeta{{Key: state, Writable: true}}
	switch instruction.Kind {
	case fresh.InstructionInitialize:
		accounts = append(accounts, AccountMeta{Key: clock})
	case fresh.InstructionMine:
		accounts = append(accounts,
			AccountMeta{Key: miner, Signer: true},
			AccountMeta{Key: clock},
		)
	}
	return Tx{
		Accounts: accounts,
		Data:     fresh.EncodeInstruction(instruction),
	}
}

// Runtime executes transactions against a store. Transactions touching the
// same writable account are serialized; all others run in parallel.
type Runtime struct {
	store     accountstore.Store
	programID types.Pubkey
	processor *fresh.Processor
	locker    *keyLocker
}

func New(store accountstore.Store, programID types.Pubkey, processor *fresh.Processor) *Runtime {
	return &Runtime{
		store:     store,
		programID: programID,
		processor: processor,
		locker:    newKeyLocker(),
	}
}

func (r *Runtime) ProgramID() types.Pubkey {
	return r.programID
}

// ClockID returns the clock account key transactions must reference.
func (r *Runtime) ClockID() types.Pubkey {
	return r.processor.ClockID()
}

// CreateAccount allocates a zeroed account of size bytes owned by owner.
func (r *Runtime) CreateAccount(ctx context.Context, key, owner types.Pubkey, size int) (accountstore.Account, error) {
	if key == r.ClockID() {
		return accountstore.Account{}, errors.Wrap(errs.Conflict, "clock account is reserved")
	}
	if size < 0 {
		return accountstore.Account{}, errors.Wrapf(errs.InvalidArgument, "negative account size %d", size)
	}

	unlock := r.locker.Lock([]types.Pubkey{key})
	defer unlock()

	exists, err := r.store.Has(ctx, key)
	if err != nil {
		return accountstore.Account{}, errors.Wrap(err, "failed to check account")
	}
	if exists {
		return accountstore.Account{}, errors.Wrapf(errs.Conflict, "account %s already exists", key)
	}

	account := accountstore.Account{
		Key:   key,
		Owner: owner,
		Data:  make([]byte, size),
	}
	if err := r.store.PutBatch(ctx, []accountstore.Account{account}); err != nil {
		return accountstore.Account{}, errors.Wrap(err, "failed to store account")
	}
	logger.InfoContext(ctx, "Account created",
		slogx.Stringer("account", key),
		slogx.Stringer("owner", owner),
		slogx.Int("size", size),
	)
	return account, nil
}

// Account returns a stored account.
func (r *Runtime) Account(ctx context.Context, key types.Pubkey) (accountstore.Account, error) {
	account, err := r.store.Get(ctx, key)
	if err != nil {
		return accountstore.Account{}, errors.WithStack(err)
	}
	return account, nil
}

// State decodes the program state stored at key.
func (r *Runtime) State(ctx context.Context, key types.Pubkey) (fresh.State, error) {
	account, err := r.Account(ctx, key)
	if err != nil {
		return fresh.State{}, errors.WithStack(err)
	}
	state, err := fresh.UnmarshalState(account.Data)
	if err != nil {
		return fresh.State{}, errors.WithStack(err)
	}
	return state, nil
}

// Execute runs tx with clock as the current time. Account changes are stored
// only when the instruction succeeds, and then all at once.
func (r *Runtime) Execute(ctx context.Context, clock types.Clock, tx Tx) (fresh.Result, error) {
	writable := lo.FilterMap(tx.Accounts, func(meta AccountMeta, _ int) (types.Pubkey, bool) {
		return meta.Key, meta.Writable && meta.Key != r.ClockID()
	})
	unlock := r.locker.Lock(writable)
	defer unlock()

	infos, originals, err := r.loadAccounts(ctx, clock, tx.Accounts)
	if err != nil {
		return fresh.Result{}, errors.WithStack(err)
	}

	result, err := r.processor.Execute(ctx, r.programID, lo.Map(infos, func(info *types.AccountInfo, _ int) datagateway.Account {
		return info
	}), tx.Data)
	if err != nil {
		return fresh.Result{}, errors.WithStack(err)
	}

	changed := make([]accountstore.Account, 0, len(infos))
	for i, info := range infos {
		data := info.Data()
		if bytes.Equal(data, originals[i]) {
			continue
		}
		switch {
		case !tx.Accounts[i].Writable:
			return fresh.Result{}, errors.Wrapf(ErrReadonlyDataModified, "account %s", info.Key())
		case info.Owner() != r.programID:
			return fresh.Result{}, errors.Wrapf(ErrExternalAccountDataModified, "account %s", info.Key())
		}
		changed = append(changed, accountstore.Account{Key: info.Key(), Owner: info.Owner(), Data: data})
	}
	if len(changed) > 0 {
		if err := r.store.PutBatch(ctx, changed); err != nil {
			return fresh.Result{}, errors.Wrap(err, "failed to store accounts")
		}
	}
	return result, nil
}

func (r *Runtime) loadAccounts(ctx context.Context, clock types.Clock, metas []AccountMeta) ([]*types.AccountInfo, [][]byte, error) {
	infos := make([]*types.AccountInfo, 0, len(metas))
	originals := make([][]byte, 0, len(metas))
	for _, meta := range metas {
		if meta.Key == r.ClockID() {
			data, err := clock.Marshal()
			if err != nil {
				return nil, nil, errors.WithStack(err)
			}
			infos = append(infos, types.NewAccountInfo(meta.Key, SysvarProgramID, data, false, false))
			originals = append(originals, data)
			continue
		}

		account, err := r.store.Get(ctx, meta.Key)
		switch {
		case errors.Is(err, errs.NotFound):
			account = accountstore.Account{Key: meta.Key, Owner: SystemProgramID, Data: []byte{}}
		case err != nil:
			return nil, nil, errors.Wrapf(err, "failed to load account %s", meta.Key)
		}
		originals = append(originals, bytes.Clone(account.Data))
		infos = append(infos, types.NewAccountInfo(account.Key, account.Owner, account.Data, meta.Signer, meta.Writable))
	}
	return infos, originals, nil
}
