package postgres

import (
	"context"
	"os"
	"testing"

	"github.com/mrfresh-network/fresh-program/internal/accountstore"
	"github.com/mrfresh-network/fresh-program/internal/accountstore/storetest"
	"github.com/mrfresh-network/fresh-program/internal/postgres"
	"github.com/stretchr/testify/require"
)

// TestRepository needs a migrated database at FRESH_TEST_POSTGRES_URL.
func TestRepository(t *testing.T) {
	url := os.Getenv("FRESH_TEST_POSTGRES_URL")
	if url == "" {
		t.Skip("FRESH_TEST_POSTGRES_URL is not set")
	}
	ctx := context.Background()

	storetest.Run(t, func(t *testing.T) accountstore.Store {
		repo, err := Open(ctx, postgres.Config{URL: url})
		require.NoError(t, err)
		t.Cleanup(func() { _ = repo.Close() })

		_, err = repo.db.Exec(ctx, `TRUNCATE "accounts"`)
		require.NoError(t, err)
		return repo
	})
}
