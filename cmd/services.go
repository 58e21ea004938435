package cmd

import (
	"context"
	"log/slog"
	"path/filepath"

	"github.com/cockroachdb/errors"
	"github.com/mrfresh-network/fresh-program/common/errs"
	"github.com/mrfresh-network/fresh-program/core/types"
	"github.com/mrfresh-network/fresh-program/internal/accountstore"
	"github.com/mrfresh-network/fresh-program/internal/accountstore/badger"
	"github.com/mrfresh-network/fresh-program/internal/accountstore/postgres"
	"github.com/mrfresh-network/fresh-program/internal/config"
	"github.com/mrfresh-network/fresh-program/internal/ledger"
	"github.com/mrfresh-network/fresh-program/internal/replay"
	"github.com/mrfresh-network/fresh-program/modules/fresh"
	"github.com/mrfresh-network/fresh-program/pkg/logger"
	"github.com/samber/do/v2"
)

// Services are constructed on first use, so commands that never touch the
// ledger never open the store.
var Services = do.Package(
	do.Lazy(newDeployment),
	do.Lazy(newStore),
	do.Lazy(newProcessor),
	do.Lazy(newRuntime),
)

// Deployment names the accounts of one program deployment.
type Deployment struct {
	ProgramID types.Pubkey
	StateKey  types.Pubkey
	ClockID   types.Pubkey
}

// ledgerStore closes the underlying store when the injector shuts down.
type ledgerStore struct {
	accountstore.Store
}

func (s ledgerStore) Shutdown() error {
	return errors.WithStack(s.Close())
}

func newInjector(ctx context.Context, conf config.Config) *do.RootScope {
	injector := do.New(Services)
	do.ProvideValue(injector, conf)
	do.ProvideValue(injector, ctx)
	return injector
}

func shutdown(ctx context.Context, injector *do.RootScope) {
	if err := injector.Shutdown(); err != nil {
		logger.ErrorContext(ctx, "Failed to shutdown services", err)
	}
}

func newDeployment(i do.Injector) (Deployment, error) {
	conf := do.MustInvoke[config.Config](i)

	programID, err := parseKeyOrDefault(conf.Program.ProgramID, replay.DefaultProgramID)
	if err != nil {
		return Deployment{}, errors.Wrap(err, "invalid program.program_id")
	}
	stateKey, err := parseKeyOrDefault(conf.Program.StateKey, replay.DefaultStateKey)
	if err != nil {
		return Deployment{}, errors.Wrap(err, "invalid program.state_key")
	}
	clockID, err := parseKeyOrDefault(conf.Program.ClockID, types.ClockSysvarID)
	if err != nil {
		return Deployment{}, errors.Wrap(err, "invalid program.clock_id")
	}
	return Deployment{
		ProgramID: programID,
		StateKey:  stateKey,
		ClockID:   clockID,
	}, nil
}

func newStore(i do.Injector) (accountstore.Store, error) {
	ctx := do.MustInvoke[context.Context](i)
	conf := do.MustInvoke[config.Config](i)

	switch conf.Ledger.Driver {
	case accountstore.DriverMemory:
		return ledgerStore{accountstore.NewMemory()}, nil
	case accountstore.DriverBadger:
		path := filepath.Join(conf.Ledger.BadgerPath, conf.Network.String())
		store, err := badger.Open(path)
		if err != nil {
			return nil, errors.Wrapf(err, "can't open badger store at %s", path)
		}
		logger.DebugContext(ctx, "Opened badger account store", slog.String("path", path))
		return ledgerStore{store}, nil
	case accountstore.DriverPostgres:
		store, err := postgres.Open(ctx, conf.Ledger.Postgres)
		if err != nil {
			return nil, errors.Wrap(err, "can't connect to postgres account store")
		}
		return ledgerStore{store}, nil
	}
	return nil, errors.Wrapf(errs.Unsupported, "ledger driver %q", conf.Ledger.Driver)
}

func newProcessor(i do.Injector) (*fresh.Processor, error) {
	deployment := do.MustInvoke[Deployment](i)
	return fresh.NewProcessor(deployment.ClockID), nil
}

func newRuntime(i do.Injector) (*ledger.Runtime, error) {
	deployment := do.MustInvoke[Deployment](i)
	store, err := do.Invoke[accountstore.Store](i)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	processor := do.MustInvoke[*fresh.Processor](i)
	return ledger.New(store, deployment.ProgramID, processor), nil
}

func parseKeyOrDefault(s string, def types.Pubkey) (types.Pubkey, error) {
	if s == "" {
		return def, nil
	}
	key, err := types.ParsePubkey(s)
	if err != nil {
		return types.Pubkey{}, errors.WithStack(err)
	}
	return key, nil
}
