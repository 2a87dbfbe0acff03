package server

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/jrsteele09/bursary-portal/achievements"
	"github.com/jrsteele09/bursary-portal/bursaryapi"
	"github.com/jrsteele09/bursary-portal/internal/config"
	"github.com/jrsteele09/bursary-portal/storage/cookiestore"
	"github.com/stretchr/testify/require"
)

// browser replays cookies between requests.
type browser struct {
	cookies map[string]string
}

func (b *browser) send(s http.Handler, req *http.Request) *httptest.ResponseRecorder {
	for name, value := range b.cookies {
		req.AddCookie(&http.Cookie{Name: name, Value: value})
	}
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	for _, c := range rec.Result().Cookies() {
		if c.MaxAge < 0 {
			delete(b.cookies, c.Name)
			continue
		}
		b.cookies[c.Name] = c.Value
	}
	return rec
}

func TestCookieBackedSession(t *testing.T) {
	t.Setenv("ENV", "TEST")
	t.Setenv("COOKIE_SECRET", "0123456789abcdef0123456789abcdef")
	cfg, err := config.New()
	require.NoError(t, err)

	api := httptest.NewServer(jsonReply(`{"access_token":"tok1","user_data":{"id":7,"full_name":"Amina Hassan"}}`))
	t.Cleanup(api.Close)

	sealer, err := cookiestore.NewSealer(cfg.GetCookieSecret())
	require.NoError(t, err)
	provider := cookiestore.New(sealer, cookiestore.Options{Prefix: "bp_", MaxAge: time.Hour})

	s, err := New(cfg, provider, bursaryapi.New(api.URL, time.Second), achievements.NewMemoryRepo())
	require.NoError(t, err)

	b := &browser{cookies: map[string]string{}}

	form := url.Values{"email": {"a@example.com"}, "password": {"Secret123"}}
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := b.send(s, req)
	require.Equal(t, "/ApplicantDashboard", rec.Header().Get("Location"))
	require.Contains(t, b.cookies, "bp_token")
	require.Contains(t, b.cookies, "bp_user")
	require.NotContains(t, b.cookies["bp_token"], "tok1", "cookie values are sealed")

	rec = b.send(s, httptest.NewRequest(http.MethodGet, "/api/session", nil))
	require.Contains(t, rec.Body.String(), `"isAuthenticated":true`)
	require.Contains(t, rec.Body.String(), "Amina Hassan")

	b.cookies["bp_user"] = b.cookies["bp_user"][:len(b.cookies["bp_user"])-4] + "AAAA"
	rec = b.send(s, httptest.NewRequest(http.MethodGet, "/profile", nil))
	require.Equal(t, "/login", rec.Header().Get("Location"))
	require.Empty(t, b.cookies, "tampered session is purged")
}
