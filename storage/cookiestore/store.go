// Package cookiestore keeps browser storage in sealed cookies: every key is one
// cookie, so the data travels with the browser and nothing is held server side.
package cookiestore

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/jrsteele09/bursary-portal/storage"
)

// maxValueLength keeps a sealed value, its name and attributes under the 4KiB
// per-cookie limit browsers enforce.
const maxValueLength = 3800

type Options struct {
	Prefix string
	MaxAge time.Duration
	Secure bool
}

// Provider issues cookie backed stores.
type Provider struct {
	sealer *Sealer
	opts   Options
}

var _ storage.Provider = (*Provider)(nil)

func New(sealer *Sealer, opts Options) *Provider {
	return &Provider{sealer: sealer, opts: opts}
}

func (p *Provider) For(w http.ResponseWriter, r *http.Request) storage.Store {
	return &Store{
		p:       p,
		w:       w,
		r:       r,
		pending: make(map[string]*string),
	}
}

// Store reads from the request cookies and writes Set-Cookie headers. Writes are
// remembered so later reads in the same request see them.
type Store struct {
	p       *Provider
	w       http.ResponseWriter
	r       *http.Request
	pending map[string]*string // cookie name -> value, nil when removed
}

var _ storage.Store = (*Store)(nil)

func (s *Store) cookieName(key string) string {
	return s.p.opts.Prefix + key
}

func (s *Store) GetItem(_ context.Context, key string) (string, error) {
	name := s.cookieName(key)
	if v, ok := s.pending[name]; ok {
		if v == nil {
			return "", storage.ErrNotFound
		}
		return *v, nil
	}

	c, err := s.r.Cookie(name)
	if errors.Is(err, http.ErrNoCookie) {
		return "", storage.ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("read cookie %s: %w", name, err)
	}
	value, err := s.p.sealer.Open(name, c.Value)
	if err != nil {
		return "", fmt.Errorf("%w: cookie %s: %v", storage.ErrCorrupt, name, err)
	}
	return value, nil
}

func (s *Store) SetItem(_ context.Context, key, value string) error {
	if s.w == nil {
		return errors.New("cookie store is read only")
	}
	name := s.cookieName(key)
	sealed, err := s.p.sealer.Seal(name, value)
	if err != nil {
		return err
	}
	if len(sealed) > maxValueLength {
		return fmt.Errorf("%w: cookie %s is %d bytes", storage.ErrQuotaExceeded, name, len(sealed))
	}
	http.SetCookie(s.w, s.cookie(name, sealed, int(s.p.opts.MaxAge.Seconds())))
	s.pending[name] = &value
	return nil
}

func (s *Store) RemoveItem(_ context.Context, key string) error {
	if s.w == nil {
		return errors.New("cookie store is read only")
	}
	name := s.cookieName(key)
	http.SetCookie(s.w, s.cookie(name, "", -1))
	s.pending[name] = nil
	return nil
}

func (s *Store) cookie(name, value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.p.opts.Secure || s.r.TLS != nil,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   maxAge,
	}
}
