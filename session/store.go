package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jrsteele09/bursary-portal/storage"
	"github.com/jrsteele09/bursary-portal/users"
	"github.com/rs/zerolog/log"
)

// Store reads and writes the session in browser storage. It never returns errors:
// failures are logged and degrade to an absent session.
type Store struct {
	items storage.Store
}

func NewStore(items storage.Store) *Store {
	return &Store{items: items}
}

// Read returns the persisted session, or the absent session when either value is
// missing, unreadable or malformed. Partial, corrupt or malformed sessions are
// purged; an unavailable store is left untouched.
func (s *Store) Read(ctx context.Context) Session {
	token, tokenErr := s.items.GetItem(ctx, TokenKey)
	rawUser, userErr := s.items.GetItem(ctx, UserKey)

	tokenMissing := errors.Is(tokenErr, storage.ErrNotFound) || (tokenErr == nil && token == "")
	userMissing := errors.Is(userErr, storage.ErrNotFound) || (userErr == nil && rawUser == "")
	if tokenMissing && userMissing {
		return Session{}
	}

	for _, err := range []error{tokenErr, userErr} {
		if err != nil && !errors.Is(err, storage.ErrNotFound) && !errors.Is(err, storage.ErrCorrupt) {
			log.Warn().Err(err).Msg("session: storage unavailable, treating as logged out")
			return Session{}
		}
	}

	switch {
	case tokenErr != nil && !tokenMissing:
		log.Warn().Err(tokenErr).Msg("session: stored token is corrupt, clearing session")
	case userErr != nil && !userMissing:
		log.Warn().Err(userErr).Msg("session: stored user is corrupt, clearing session")
	case tokenMissing || userMissing:
		log.Warn().Bool("token_missing", tokenMissing).Bool("user_missing", userMissing).Msg("session: partial session, clearing")
	default:
		user, err := decodeUser(rawUser)
		if err == nil {
			return Session{Token: token, User: user}
		}
		log.Warn().Err(err).Msg("session: stored user is malformed, clearing session")
	}

	s.Clear(ctx)
	return Session{}
}

// Write persists user and token as a pair. On any failure whatever was stored
// before is cleared, so a later Read sees no session rather than a stale or mixed
// one. The caller carries on with its in-memory state.
func (s *Store) Write(ctx context.Context, user users.Snapshot, token string) {
	if err := s.write(ctx, user, token); err != nil {
		log.Error().Err(err).Msg("session: storing session failed, clearing")
		s.Clear(ctx)
	}
}

func (s *Store) write(ctx context.Context, user users.Snapshot, token string) error {
	data, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("encoding user: %w", err)
	}
	if err := s.items.SetItem(ctx, UserKey, string(data)); err != nil {
		return fmt.Errorf("storing user: %w", err)
	}
	if err := s.items.SetItem(ctx, TokenKey, token); err != nil {
		return fmt.Errorf("storing token: %w", err)
	}
	return nil
}

// Clear removes both values. It is safe to call on an empty store.
func (s *Store) Clear(ctx context.Context) {
	for _, key := range []string{TokenKey, UserKey} {
		if err := s.items.RemoveItem(ctx, key); err != nil {
			log.Error().Err(err).Str("key", key).Msg("session: removing item failed")
		}
	}
}

// HasToken reports whether a token is currently stored. Read errors count as absent.
func (s *Store) HasToken(ctx context.Context) (string, bool) {
	token, err := s.items.GetItem(ctx, TokenKey)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			log.Warn().Err(err).Msg("session: reading token failed")
		}
		return "", false
	}
	return token, token != ""
}

func decodeUser(raw string) (*users.Snapshot, error) {
	var user users.Snapshot
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		return nil, err
	}
	if err := user.Validate(); err != nil {
		return nil, err
	}
	return &user, nil
}
