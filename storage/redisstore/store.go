// Package redisstore keeps browser storage in Redis. The browser is identified by
// a random id cookie; its items live in one hash that expires after the configured TTL.
package redisstore

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/jrsteele09/bursary-portal/storage"
	"github.com/redis/go-redis/v9"
)

const (
	DefaultKeyPrefix  = "bursary:storage:"
	DefaultCookieName = "bursary_bid"
)

type Options struct {
	KeyPrefix  string
	CookieName string
	TTL        time.Duration
	Secure     bool
}

type Provider struct {
	client redis.UniversalClient
	opts   Options
}

var _ storage.Provider = (*Provider)(nil)

func New(client redis.UniversalClient, opts Options) *Provider {
	if opts.KeyPrefix == "" {
		opts.KeyPrefix = DefaultKeyPrefix
	}
	if opts.CookieName == "" {
		opts.CookieName = DefaultCookieName
	}
	if opts.TTL <= 0 {
		opts.TTL = 30 * 24 * time.Hour
	}
	return &Provider{client: client, opts: opts}
}

// For issues a browser id cookie on first use.
func (p *Provider) For(w http.ResponseWriter, r *http.Request) storage.Store {
	id := ""
	if c, err := r.Cookie(p.opts.CookieName); err == nil {
		if parsed, err := uuid.Parse(c.Value); err == nil {
			id = parsed.String()
		}
	}
	if id == "" {
		id = uuid.NewString()
		if w != nil {
			http.SetCookie(w, &http.Cookie{
				Name:     p.opts.CookieName,
				Value:    id,
				Path:     "/",
				HttpOnly: true,
				Secure:   p.opts.Secure || r.TLS != nil,
				SameSite: http.SameSiteLaxMode,
				MaxAge:   int(p.opts.TTL.Seconds()),
			})
		}
	}
	return &Store{client: p.client, key: p.opts.KeyPrefix + id, ttl: p.opts.TTL}
}

// Store is the storage of one browser.
type Store struct {
	client redis.UniversalClient
	key    string
	ttl    time.Duration
}

var _ storage.Store = (*Store)(nil)

// Key returns the Redis hash holding this browser's items.
func (s *Store) Key() string {
	return s.key
}

func (s *Store) GetItem(ctx context.Context, key string) (string, error) {
	v, err := s.client.HGet(ctx, s.key, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", storage.ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("redis hget %s: %w", key, err)
	}
	return v, nil
}

func (s *Store) SetItem(ctx context.Context, key, value string) error {
	pipe := s.client.TxPipeline()
	pipe.HSet(ctx, s.key, key, value)
	pipe.Expire(ctx, s.key, s.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("redis hset %s: %w", key, err)
	}
	return nil
}

func (s *Store) RemoveItem(ctx context.Context, key string) error {
	if err := s.client.HDel(ctx, s.key, key).Err(); err != nil {
		return fmt.Errorf("redis hdel %s: %w", key, err)
	}
	return nil
}
