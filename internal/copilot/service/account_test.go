package service_test

import (
	"context"
	"testing"

	"github.com/aussiebroadwan/copilot/internal/copilot/domain"
	"github.com/aussiebroadwan/copilot/internal/copilot/service"
	"github.com/aussiebroadwan/copilot/internal/copilot/store"
	"github.com/stretchr/testify/require"
)

func TestSignup(t *testing.T) {
	t.Parallel()

	t.Run("creates account and hides password", func(t *testing.T) {
		f := newFixture(t)
		ctx := context.Background()

		acct, err := f.accounts.Signup(ctx, "a@x.io", "pw", "A")
		require.NoError(t, err)
		require.Equal(t, domain.PublicAccount{ID: 1_000, Email: "a@x.io", Name: "A"}, acct)

		stored, err := store.Load[domain.Account](ctx, f.store, store.Users)
		require.NoError(t, err)
		require.Equal(t, []domain.Account{{ID: 1_000, Email: "a@x.io", Password: "pw", Name: "A"}}, stored)
	})

	t.Run("duplicate email leaves collection unchanged", func(t *testing.T) {
		f := newFixture(t)
		ctx := context.Background()

		_, err := f.accounts.Signup(ctx, "a@x.io", "pw", "A")
		require.NoError(t, err)
		writes := f.store.writes.Load()

		_, err = f.accounts.Signup(ctx, "a@x.io", "other", "Someone Else")
		require.ErrorIs(t, err, service.ErrDuplicateAccount)
		require.Equal(t, writes, f.store.writes.Load(), "no write on duplicate")

		stored, err := store.Load[domain.Account](ctx, f.store, store.Users)
		require.NoError(t, err)
		require.Len(t, stored, 1)
	})

	t.Run("email match is case sensitive", func(t *testing.T) {
		f := newFixture(t)
		ctx := context.Background()

		_, err := f.accounts.Signup(ctx, "a@x.io", "pw", "A")
		require.NoError(t, err)
		_, err = f.accounts.Signup(ctx, "A@x.io", "pw", "A")
		require.NoError(t, err)
	})

	t.Run("blank email is stored as given", func(t *testing.T) {
		f := newFixture(t)
		ctx := context.Background()

		acct, err := f.accounts.Signup(ctx, "", "pw", "A")
		require.NoError(t, err)
		require.Empty(t, acct.Email)

		_, err = f.accounts.Signup(ctx, "", "other", "B")
		require.ErrorIs(t, err, service.ErrDuplicateAccount)

		stored, err := store.Load[domain.Account](ctx, f.store, store.Users)
		require.NoError(t, err)
		require.Len(t, stored, 1)
	})

	t.Run("name may be empty", func(t *testing.T) {
		f := newFixture(t)
		acct, err := f.accounts.Signup(context.Background(), "a@x.io", "pw", "")
		require.NoError(t, err)
		require.Empty(t, acct.Name)
	})
}

func TestLogin(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()

	created, err := f.accounts.Signup(ctx, "a@x.io", "pw", "A")
	require.NoError(t, err)
	writes := f.store.writes.Load()

	t.Run("matching credentials", func(t *testing.T) {
		acct, err := f.accounts.Login(ctx, "a@x.io", "pw")
		require.NoError(t, err)
		require.Equal(t, created, acct)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := f.accounts.Login(ctx, "a@x.io", "nope")
		require.ErrorIs(t, err, service.ErrInvalidCredentials)
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := f.accounts.Login(ctx, "b@x.io", "pw")
		require.ErrorIs(t, err, service.ErrInvalidCredentials)
	})

	t.Run("blank credentials match nothing", func(t *testing.T) {
		_, err := f.accounts.Login(ctx, "", "")
		require.ErrorIs(t, err, service.ErrInvalidCredentials)
	})

	require.Equal(t, writes, f.store.writes.Load(), "login never writes")
}

func TestLoginOnEmptyStore(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	_, err := f.accounts.Login(context.Background(), "a@x.io", "pw")
	require.ErrorIs(t, err, service.ErrInvalidCredentials)
}
