package postgres

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/jackc/pgx/v5"
	"github.com/mrfresh-network/fresh-program/common/errs"
	"github.com/mrfresh-network/fresh-program/core/types"
	"github.com/mrfresh-network/fresh-program/internal/accountstore"
	"github.com/mrfresh-network/fresh-program/internal/postgres"
	"github.com/mrfresh-network/fresh-program/pkg/logger"
	"github.com/mrfresh-network/fresh-program/pkg/logger/slogx"
)

var _ accountstore.Store = (*Repository)(nil)

const (
	getAccountQuery   = `SELECT "key", "owner", "data" FROM "accounts" WHERE "key" = $1`
	hasAccountQuery   = `SELECT EXISTS(SELECT 1 FROM "accounts" WHERE "key" = $1)`
	listAccountsQuery = `SELECT "key", "owner", "data" FROM "accounts" ORDER BY "key"`
	putAccountQuery   = `INSERT INTO "accounts" ("key", "owner", "data", "updated_at") VALUES ($1, $2, $3, NOW())
ON CONFLICT ("key") DO UPDATE SET "owner" = EXCLUDED."owner", "data" = EXCLUDED."data", "updated_at" = NOW()`
)

// Repository is an accountstore.Store on the "accounts" table.
type Repository struct {
	db     postgres.DB
	closer func()
}

func NewRepository(db postgres.DB) *Repository {
	return &Repository{
		db: db,
	}
}

// Open connects a pool with conf and returns a repository owning it.
func Open(ctx context.Context, conf postgres.Config) (*Repository, error) {
	pool, err := postgres.NewPool(ctx, conf)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	r := NewRepository(pool)
	r.closer = pool.Close
	return r, nil
}

func (r *Repository) Get(ctx context.Context, key types.Pubkey) (accountstore.Account, error) {
	account, err := scanAccount(r.db.QueryRow(ctx, getAccountQuery, key[:]))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return accountstore.Account{}, errors.Wrapf(errs.NotFound, "account %s", key)
		}
		return accountstore.Account{}, errors.Wrap(err, "error during query")
	}
	return account, nil
}

func (r *Repository) PutBatch(ctx context.Context, accounts []accountstore.Account) (err error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to begin transaction")
	}
	defer func() {
		if err == nil {
			return
		}
		if rbErr := tx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
			logger.WarnContext(ctx, "failed to rollback transaction", slogx.Error(rbErr))
		}
	}()

	batch := &pgx.Batch{}
	for _, account := range accounts {
		batch.Queue(putAccountQuery, account.Key[:], account.Owner[:], account.Data)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return errors.Wrap(err, "error during exec")
	}
	if err := tx.Commit(ctx); err != nil {
		return errors.Wrap(err, "failed to commit transaction")
	}
	return nil
}

func (r *Repository) Has(ctx context.Context, key types.Pubkey) (bool, error) {
	var exists bool
	if err := r.db.QueryRow(ctx, hasAccountQuery, key[:]).Scan(&exists); err != nil {
		return false, errors.Wrap(err, "error during query")
	}
	return exists, nil
}

func (r *Repository) List(ctx context.Context) ([]accountstore.Account, error) {
	rows, err := r.db.Query(ctx, listAccountsQuery)
	if err != nil {
		return nil, errors.Wrap(err, "error during query")
	}
	accounts, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (accountstore.Account, error) {
		return scanAccount(row)
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to scan accounts")
	}
	return accounts, nil
}

func (r *Repository) Close() error {
	if r.closer != nil {
		r.closer()
	}
	return nil
}
