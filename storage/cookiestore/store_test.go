package cookiestore_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/jrsteele09/bursary-portal/storage"
	"github.com/jrsteele09/bursary-portal/storage/cookiestore"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func newProvider(t *testing.T, secret string) *cookiestore.Provider {
	t.Helper()
	sealer, err := cookiestore.NewSealer(secret)
	require.NoError(t, err)
	return cookiestore.New(sealer, cookiestore.Options{Prefix: "bp_", MaxAge: time.Hour})
}

// nextRequest carries the cookies set on rec into a fresh request, the way a browser would.
func nextRequest(rec *httptest.ResponseRecorder, prev *http.Request) *http.Request {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	kept := map[string]*http.Cookie{}
	for _, c := range prev.Cookies() {
		kept[c.Name] = c
	}
	for _, c := range rec.Result().Cookies() {
		if c.MaxAge < 0 {
			delete(kept, c.Name)
			continue
		}
		kept[c.Name] = c
	}
	for _, c := range kept {
		r.AddCookie(&http.Cookie{Name: c.Name, Value: c.Value})
	}
	return r
}

func TestStore_RoundTripAcrossRequests(t *testing.T) {
	ctx := context.Background()
	p := newProvider(t, testSecret)

	r1 := httptest.NewRequest(http.MethodGet, "/", nil)
	rec1 := httptest.NewRecorder()
	s1 := p.For(rec1, r1)
	require.NoError(t, s1.SetItem(ctx, "token", "tok1"))

	v, err := s1.GetItem(ctx, "token")
	require.NoError(t, err, "writes are visible within the same request")
	require.Equal(t, "tok1", v)

	cookies := rec1.Result().Cookies()
	require.Len(t, cookies, 1)
	require.Equal(t, "bp_token", cookies[0].Name)
	require.True(t, cookies[0].HttpOnly)
	require.Equal(t, 3600, cookies[0].MaxAge)
	require.NotContains(t, cookies[0].Value, "tok1")

	r2 := nextRequest(rec1, r1)
	s2 := p.For(httptest.NewRecorder(), r2)
	v, err = s2.GetItem(ctx, "token")
	require.NoError(t, err)
	require.Equal(t, "tok1", v)
}

func TestStore_MissingItem(t *testing.T) {
	p := newProvider(t, testSecret)
	s := p.For(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	_, err := s.GetItem(context.Background(), "user")
	require.ErrorIs(t, err, storage.ErrNotFound)
}

func TestStore_RemoveItem(t *testing.T) {
	ctx := context.Background()
	p := newProvider(t, testSecret)

	r1 := httptest.NewRequest(http.MethodGet, "/", nil)
	rec1 := httptest.NewRecorder()
	require.NoError(t, p.For(rec1, r1).SetItem(ctx, "token", "tok1"))

	r2 := nextRequest(rec1, r1)
	rec2 := httptest.NewRecorder()
	s2 := p.For(rec2, r2)
	require.NoError(t, s2.RemoveItem(ctx, "token"))
	require.NoError(t, s2.RemoveItem(ctx, "token"), "removal is idempotent")

	_, err := s2.GetItem(ctx, "token")
	require.ErrorIs(t, err, storage.ErrNotFound)

	r3 := nextRequest(rec2, r2)
	_, err = p.For(httptest.NewRecorder(), r3).GetItem(ctx, "token")
	require.ErrorIs(t, err, storage.ErrNotFound)
}

func TestStore_TamperedValuesAreCorrupt(t *testing.T) {
	ctx := context.Background()
	p := newProvider(t, testSecret)

	r1 := httptest.NewRequest(http.MethodGet, "/", nil)
	rec1 := httptest.NewRecorder()
	require.NoError(t, p.For(rec1, r1).SetItem(ctx, "user", `{"name":"A"}`))
	sealed := rec1.Result().Cookies()[0].Value

	t.Run("plain text", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.AddCookie(&http.Cookie{Name: "bp_user", Value: "{bad json"})
		_, err := p.For(httptest.NewRecorder(), r).GetItem(ctx, "user")
		require.ErrorIs(t, err, storage.ErrCorrupt)
	})

	t.Run("flipped byte", func(t *testing.T) {
		flipped := []byte(sealed)
		if flipped[10] == 'A' {
			flipped[10] = 'B'
		} else {
			flipped[10] = 'A'
		}
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.AddCookie(&http.Cookie{Name: "bp_user", Value: string(flipped)})
		_, err := p.For(httptest.NewRecorder(), r).GetItem(ctx, "user")
		require.ErrorIs(t, err, storage.ErrCorrupt)
	})

	t.Run("value moved to another key", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.AddCookie(&http.Cookie{Name: "bp_token", Value: sealed})
		_, err := p.For(httptest.NewRecorder(), r).GetItem(ctx, "token")
		require.ErrorIs(t, err, storage.ErrCorrupt)
	})

	t.Run("different secret", func(t *testing.T) {
		other := newProvider(t, "another-secret-another-secret-42")
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.AddCookie(&http.Cookie{Name: "bp_user", Value: sealed})
		_, err := other.For(httptest.NewRecorder(), r).GetItem(ctx, "user")
		require.ErrorIs(t, err, storage.ErrCorrupt)
	})
}

func TestStore_QuotaExceeded(t *testing.T) {
	p := newProvider(t, testSecret)
	rec := httptest.NewRecorder()
	s := p.For(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	err := s.SetItem(context.Background(), "user", strings.Repeat("x", 4096))
	require.ErrorIs(t, err, storage.ErrQuotaExceeded)
	require.Empty(t, rec.Result().Cookies())
}

func TestNewSealer_RequiresSecret(t *testing.T) {
	_, err := cookiestore.NewSealer("")
	require.Error(t, err)
}
