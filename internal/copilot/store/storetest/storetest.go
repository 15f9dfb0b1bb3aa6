// Package storetest holds the behaviour every document Store driver must
// share. Driver tests call Run with a constructor for a fresh, empty store.
package storetest

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/aussiebroadwan/copilot/internal/copilot/store"
	"github.com/stretchr/testify/require"
)

// Run exercises the Store contract against stores built by open.
func Run(t *testing.T, open func(t *testing.T) store.Store) {
	t.Helper()

	t.Run("missing document is ErrNotFound", func(t *testing.T) {
		st := open(t)
		_, err := st.Read(context.Background(), "users")
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("write then read returns same bytes", func(t *testing.T) {
		st := open(t)
		ctx := context.Background()

		body := []byte("[\n  {\n    \"id\": 1\n  }\n]\n")
		require.NoError(t, st.Write(ctx, "clients", body))

		got, err := st.Read(ctx, "clients")
		require.NoError(t, err)
		require.JSONEq(t, string(body), string(got))
	})

	t.Run("write replaces the whole document", func(t *testing.T) {
		st := open(t)
		ctx := context.Background()

		require.NoError(t, st.Write(ctx, "clients", []byte(`[{"id":1},{"id":2}]`)))
		require.NoError(t, st.Write(ctx, "clients", []byte(`[{"id":3}]`)))

		got, err := st.Read(ctx, "clients")
		require.NoError(t, err)
		require.JSONEq(t, `[{"id":3}]`, string(got))
	})

	t.Run("documents are independent", func(t *testing.T) {
		st := open(t)
		ctx := context.Background()

		require.NoError(t, st.Write(ctx, "users", []byte(`[{"id":1}]`)))
		_, err := st.Read(ctx, "clients")
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("rejects unsafe names", func(t *testing.T) {
		st := open(t)
		ctx := context.Background()

		for _, name := range []string{"", "../users", "a/b", `a\b`} {
			require.ErrorIs(t, st.Write(ctx, name, []byte(`[]`)), store.ErrInvalidName, "name %q", name)
			_, err := st.Read(ctx, name)
			require.ErrorIs(t, err, store.ErrInvalidName, "name %q", name)
		}
	})

	t.Run("concurrent writers leave a whole document", func(t *testing.T) {
		st := open(t)
		ctx := context.Background()

		var wg sync.WaitGroup
		for i := range 8 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_ = st.Write(ctx, "clients", fmt.Appendf(nil, `[{"id":%d}]`, i))
			}()
		}
		wg.Wait()

		got, err := st.Read(ctx, "clients")
		require.NoError(t, err)
		require.Regexp(t, `^\[\s*\{\s*"id":\s*\d\s*\}\s*\]\s*$`, string(got))
	})

	t.Run("ping", func(t *testing.T) {
		require.NoError(t, open(t).Ping(context.Background()))
	})
}
