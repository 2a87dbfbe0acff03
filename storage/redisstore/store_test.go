package redisstore_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/jrsteele09/bursary-portal/storage"
	"github.com/jrsteele09/bursary-portal/storage/redisstore"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func newProvider(t *testing.T) (*redisstore.Provider, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return redisstore.New(client, redisstore.Options{TTL: time.Hour}), mr
}

func TestStore_IssuesBrowserIDAndPersists(t *testing.T) {
	ctx := context.Background()
	p, mr := newProvider(t)

	r1 := httptest.NewRequest(http.MethodGet, "/", nil)
	rec1 := httptest.NewRecorder()
	s1 := p.For(rec1, r1)
	require.NoError(t, s1.SetItem(ctx, "token", "tok1"))

	cookies := rec1.Result().Cookies()
	require.Len(t, cookies, 1)
	require.Equal(t, redisstore.DefaultCookieName, cookies[0].Name)

	key := redisstore.DefaultKeyPrefix + cookies[0].Value
	require.Equal(t, "tok1", mr.HGet(key, "token"))
	require.Equal(t, time.Hour, mr.TTL(key))

	r2 := httptest.NewRequest(http.MethodGet, "/", nil)
	r2.AddCookie(&http.Cookie{Name: cookies[0].Name, Value: cookies[0].Value})
	rec2 := httptest.NewRecorder()
	s2 := p.For(rec2, r2)
	require.Empty(t, rec2.Result().Cookies(), "known browsers keep their id")

	v, err := s2.GetItem(ctx, "token")
	require.NoError(t, err)
	require.Equal(t, "tok1", v)
}

func TestStore_BrowsersAreIsolated(t *testing.T) {
	ctx := context.Background()
	p, _ := newProvider(t)

	a := p.For(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	b := p.For(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, a.SetItem(ctx, "token", "a-token"))

	_, err := b.GetItem(ctx, "token")
	require.ErrorIs(t, err, storage.ErrNotFound)
}

func TestStore_InvalidBrowserIDIsReplaced(t *testing.T) {
	p, _ := newProvider(t)

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(&http.Cookie{Name: redisstore.DefaultCookieName, Value: "../../etc"})
	rec := httptest.NewRecorder()
	s := p.For(rec, r).(*redisstore.Store)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	require.NotEqual(t, "../../etc", cookies[0].Value)
	require.Equal(t, redisstore.DefaultKeyPrefix+cookies[0].Value, s.Key())
}

func TestStore_RemoveAndExpiry(t *testing.T) {
	ctx := context.Background()
	p, mr := newProvider(t)
	s := p.For(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	require.NoError(t, s.SetItem(ctx, "token", "tok1"))
	require.NoError(t, s.SetItem(ctx, "user", `{"name":"A"}`))
	require.NoError(t, s.RemoveItem(ctx, "token"))
	require.NoError(t, s.RemoveItem(ctx, "token"))

	_, err := s.GetItem(ctx, "token")
	require.ErrorIs(t, err, storage.ErrNotFound)

	mr.FastForward(2 * time.Hour)
	_, err = s.GetItem(ctx, "user")
	require.ErrorIs(t, err, storage.ErrNotFound)
}

func TestStore_Unavailable(t *testing.T) {
	ctx := context.Background()
	p, mr := newProvider(t)
	s := p.For(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	mr.Close()

	_, err := s.GetItem(ctx, "token")
	require.Error(t, err)
	require.NotErrorIs(t, err, storage.ErrNotFound)
	require.Error(t, s.SetItem(ctx, "token", "tok1"))
}
