package session_test

import (
	"context"
	"errors"
	"testing"

	"github.com/jrsteele09/bursary-portal/session"
	"github.com/jrsteele09/bursary-portal/storage"
	"github.com/jrsteele09/bursary-portal/storage/storefake"
	"github.com/jrsteele09/bursary-portal/users"
	"github.com/stretchr/testify/require"
)

var errStorageDown = errors.New("storage unavailable")

func applicant() users.Snapshot {
	return users.Snapshot{Name: "A", Role: users.RoleApplicant, AdmissionNumber: "ADM-1"}
}

func TestStore_WriteThenRead(t *testing.T) {
	ctx := context.Background()
	items := storefake.NewFakeStore()
	store := session.NewStore(items)

	store.Write(ctx, applicant(), "tok1")

	got := store.Read(ctx)
	require.True(t, got.Present())
	require.Equal(t, "tok1", got.Token)
	require.Equal(t, "A", got.User.Name)
	require.Equal(t, users.RoleApplicant, got.User.Role)
	require.Equal(t, "ADM-1", got.User.AdmissionNumber)
}

func TestStore_ReadEmpty(t *testing.T) {
	items := storefake.NewFakeStore()
	got := session.NewStore(items).Read(context.Background())

	require.False(t, got.Present())
	require.Equal(t, session.Session{}, got)
	require.Zero(t, items.Removes, "nothing to purge")
}

func TestStore_ReadPurgesMalformedUser(t *testing.T) {
	for _, raw := range []string{
		"{bad json",
		"null",
		`"a string"`,
		`[{"name":"A"}]`,
		`{"name":"A","role":"superuser"}`,
		`{"name":true}`,
	} {
		t.Run(raw, func(t *testing.T) {
			items := storefake.NewFakeStore().Seed(map[string]string{
				session.TokenKey: "tok1",
				session.UserKey:  raw,
			})

			got := session.NewStore(items).Read(context.Background())

			require.Equal(t, session.Session{}, got)
			require.Zero(t, items.Len(), "both persisted fields are removed")
		})
	}
}

func TestStore_ReadPurgesPartialSession(t *testing.T) {
	t.Run("token only", func(t *testing.T) {
		items := storefake.NewFakeStore().Seed(map[string]string{session.TokenKey: "tok1"})
		require.False(t, session.NewStore(items).Read(context.Background()).Present())
		require.False(t, items.Has(session.TokenKey))
	})

	t.Run("user only", func(t *testing.T) {
		items := storefake.NewFakeStore().Seed(map[string]string{session.UserKey: `{"name":"A"}`})
		require.False(t, session.NewStore(items).Read(context.Background()).Present())
		require.False(t, items.Has(session.UserKey))
	})

	t.Run("empty token", func(t *testing.T) {
		items := storefake.NewFakeStore().Seed(map[string]string{
			session.TokenKey: "",
			session.UserKey:  `{"name":"A"}`,
		})
		require.False(t, session.NewStore(items).Read(context.Background()).Present())
		require.Zero(t, items.Len())
	})
}

func TestStore_ReadFailureIsAbsent(t *testing.T) {
	items := storefake.NewFakeStore().Seed(map[string]string{
		session.TokenKey: "tok1",
		session.UserKey:  `{"name":"A"}`,
	})
	items.GetErr = errStorageDown

	got := session.NewStore(items).Read(context.Background())

	require.False(t, got.Present())
	require.Zero(t, items.Removes, "an unavailable store is not purged")

	items.GetErr = nil
	require.True(t, session.NewStore(items).Read(context.Background()).Present(), "session survives the outage")
}

func TestStore_ReadCorruptItemIsAbsent(t *testing.T) {
	items := storefake.NewFakeStore().Seed(map[string]string{
		session.TokenKey: "tok1",
		session.UserKey:  `{"name":"A"}`,
	})
	items.GetErr = storage.ErrCorrupt

	require.False(t, session.NewStore(items).Read(context.Background()).Present())
	require.Equal(t, 2, items.Removes, "corrupt items are purged")
}

func TestStore_WriteFailureDoesNotPanic(t *testing.T) {
	ctx := context.Background()
	items := storefake.NewFakeStore()
	items.SetErr = storage.ErrQuotaExceeded
	store := session.NewStore(items)

	require.NotPanics(t, func() { store.Write(ctx, applicant(), "tok1") })
	require.Zero(t, items.Len())
}

func TestStore_WriteFailureClearsPriorSession(t *testing.T) {
	admin := users.Snapshot{Name: "Root", Role: users.RoleAdmin}
	seed := func() *storefake.FakeStore {
		items := storefake.NewFakeStore()
		session.NewStore(items).Write(context.Background(), admin, "tokA")
		return items
	}

	t.Run("every write fails", func(t *testing.T) {
		ctx := context.Background()
		items := seed()
		items.SetErr = errStorageDown
		store := session.NewStore(items)

		store.Write(ctx, applicant(), "tokB")

		require.Zero(t, items.Len())
		require.False(t, store.Read(ctx).Present())
	})

	t.Run("token write fails", func(t *testing.T) {
		ctx := context.Background()
		items := seed()
		items.SetErrFor = map[string]error{session.TokenKey: storage.ErrQuotaExceeded}
		store := session.NewStore(items)

		store.Write(ctx, applicant(), "tokB")

		require.False(t, items.Has(session.TokenKey))
		require.False(t, items.Has(session.UserKey))
		require.False(t, store.Read(ctx).Present())
	})
}

func TestStore_ClearIsIdempotent(t *testing.T) {
	ctx := context.Background()
	items := storefake.NewFakeStore()
	store := session.NewStore(items)
	store.Write(ctx, applicant(), "tok1")

	store.Clear(ctx)
	store.Clear(ctx)

	require.Zero(t, items.Len())
	require.False(t, store.Read(ctx).Present())
}

func TestStore_ClearFailureIsSwallowed(t *testing.T) {
	items := storefake.NewFakeStore()
	items.RemoveErr = errStorageDown
	require.NotPanics(t, func() { session.NewStore(items).Clear(context.Background()) })
}

func TestStore_HasToken(t *testing.T) {
	ctx := context.Background()

	items := storefake.NewFakeStore()
	_, ok := session.NewStore(items).HasToken(ctx)
	require.False(t, ok)

	items.Seed(map[string]string{session.TokenKey: "tok1"})
	token, ok := session.NewStore(items).HasToken(ctx)
	require.True(t, ok)
	require.Equal(t, "tok1", token)

	items.GetErr = errStorageDown
	_, ok = session.NewStore(items).HasToken(ctx)
	require.False(t, ok)
}
