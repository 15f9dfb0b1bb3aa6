package sqlite_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/aussiebroadwan/copilot/internal/copilot/store"
	"github.com/aussiebroadwan/copilot/internal/copilot/store/drivers/sqlite"
	"github.com/aussiebroadwan/copilot/internal/copilot/store/storetest"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T, dsn string) *sqlite.Store {
	t.Helper()

	st, err := sqlite.NewStore(dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	require.NoError(t, st.ApplyMigrations())
	return st
}

func TestStoreContract(t *testing.T) {
	storetest.Run(t, func(t *testing.T) store.Store { return newStore(t, ":memory:") })
}

func TestMigrationsAreIdempotent(t *testing.T) {
	st := newStore(t, ":memory:")
	require.NoError(t, st.ApplyMigrations())
}

func TestDocumentsSurviveReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "copilot.db")

	first, err := sqlite.NewStore(path)
	require.NoError(t, err)
	require.NoError(t, first.ApplyMigrations())
	require.NoError(t, first.Write(ctx, store.Clients, []byte(`[{"id":1}]`)))
	require.NoError(t, first.Close())

	second := newStore(t, path)
	got, err := second.Read(ctx, store.Clients)
	require.NoError(t, err)
	require.JSONEq(t, `[{"id":1}]`, string(got))
}
