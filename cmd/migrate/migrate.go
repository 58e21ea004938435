package migrate

import (
	"net/url"
	"strconv"

	"github.com/cockroachdb/errors"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/mrfresh-network/fresh-program/common/errs"
)

const (
	accountsMigrationSource = "internal/accountstore/database/postgresql/migrations"
	accountsMigrationTable  = "accounts_schema_migrations"
)

var supportedDrivers = map[string]struct{}{
	"postgres":   {},
	"postgresql": {},
}

type migrateCmdOptions struct {
	DatabaseURL string
	Source      string
}

// parseSteps parses the optional [N] argument. Zero means all migrations.
func parseSteps(args []string) (int, error) {
	if len(args) == 0 {
		return 0, nil
	}
	n, err := strconv.Atoi(args[0])
	if err != nil {
		return 0, errors.Wrap(err, "failed to parse N")
	}
	if n < 0 {
		return 0, errors.Wrap(errs.InvalidArgument, "N must be a positive integer")
	}
	return n, nil
}

func cloneURLWithQuery(u *url.URL, newQuery url.Values) *url.URL {
	clone := *u
	query := clone.Query()
	for key, values := range newQuery {
		for _, value := range values {
			query.Add(key, value)
		}
	}
	clone.RawQuery = query.Encode()
	return &clone
}

func newMigrate(opts *migrateCmdOptions) (*migrate.Migrate, error) {
	if opts.DatabaseURL == "" {
		return nil, errors.Wrap(errs.InvalidArgument, "--database or ledger.postgres.url is required")
	}
	databaseURL, err := url.Parse(opts.DatabaseURL)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse database URL")
	}
	if _, ok := supportedDrivers[databaseURL.Scheme]; !ok {
		return nil, errors.Wrapf(errs.Unsupported, "database driver %q", databaseURL.Scheme)
	}

	databaseURL = cloneURLWithQuery(databaseURL, url.Values{"x-migrations-table": {accountsMigrationTable}})
	m, err := migrate.New("file://"+opts.Source, databaseURL.String())
	if err != nil {
		return nil, errors.Wrap(err, "failed to create Migrate instance")
	}
	m.Log = newMigrateLogger(opts.Source)
	return m, nil
}
