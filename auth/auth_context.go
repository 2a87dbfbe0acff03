// Package auth holds the per-page-session authentication state.
//
// A Context is created for every page load, hydrated once from the session store
// and then carried through the request. Views read its State and call Login or
// Logout; the route guard decides on the same State. A Context is owned by one
// request goroutine and is not safe for concurrent use.
package auth

import (
	"context"
	"time"

	"github.com/jrsteele09/bursary-portal/session"
	"github.com/jrsteele09/bursary-portal/users"
	"github.com/rs/zerolog/log"
)

// Phase is the position of a Context in its state machine.
type Phase int

const (
	PhaseHydrating Phase = iota
	PhaseAuthenticated
	PhaseUnauthenticated
)

func (p Phase) String() string {
	switch p {
	case PhaseHydrating:
		return "hydrating"
	case PhaseAuthenticated:
		return "authenticated"
	case PhaseUnauthenticated:
		return "unauthenticated"
	default:
		return "unknown"
	}
}

// State is what views and the route guard see.
type State struct {
	IsAuthenticated bool            `json:"isAuthenticated"`
	User            *users.Snapshot `json:"user"`
	Loading         bool            `json:"loading"`
}

type Context struct {
	store *session.Store
	now   func() time.Time

	phase Phase
	user  *users.Snapshot
	token string
}

type Option func(*Context)

// WithClock replaces time.Now when checking token expiry.
func WithClock(now func() time.Time) Option {
	return func(c *Context) {
		c.now = now
	}
}

// New returns a Context in the hydrating phase.
func New(store *session.Store, opts ...Option) *Context {
	c := &Context{
		store: store,
		now:   time.Now,
		phase: PhaseHydrating,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Hydrate reads the persisted session once. Later calls, or calls after Login or
// Logout already resolved the state, return the current state without reading.
func (c *Context) Hydrate(ctx context.Context) State {
	if c.phase != PhaseHydrating {
		return c.State()
	}
	s := c.store.Read(ctx)
	if s.Present() {
		c.setAuthenticated(*s.User, s.Token)
	} else {
		c.setUnauthenticated()
	}
	log.Debug().Str("phase", c.phase.String()).Msg("auth: hydrated")
	return c.State()
}

// Login persists the session and marks the Context authenticated. The in-memory
// login holds even when persisting fails. Callers pass the pair returned by a
// successful remote login; other input is not checked.
func (c *Context) Login(ctx context.Context, user users.Snapshot, token string) {
	c.store.Write(ctx, user, token)
	c.setAuthenticated(user, token)
}

// Logout clears the persisted session and the in-memory user. Calling it when
// already signed out leaves the state unchanged.
func (c *Context) Logout(ctx context.Context) {
	c.store.Clear(ctx)
	c.setUnauthenticated()
}

// ValidateToken reports whether a token is persisted, logging out when it is not.
// A persisted JWT whose exp has passed counts as missing. Nothing is asked of the API.
func (c *Context) ValidateToken(ctx context.Context) bool {
	token, ok := c.store.HasToken(ctx)
	if ok && session.TokenExpired(token, c.now()) {
		log.Info().Msg("auth: stored token expired")
		ok = false
	}
	if !ok {
		c.Logout(ctx)
		return false
	}
	return true
}

// State returns a snapshot of the current authentication state.
func (c *Context) State() State {
	st := State{
		IsAuthenticated: c.phase == PhaseAuthenticated,
		Loading:         c.phase == PhaseHydrating,
	}
	if c.user != nil {
		u := *c.user
		st.User = &u
	}
	return st
}

func (c *Context) Phase() Phase {
	return c.phase
}

func (c *Context) IsAuthenticated() bool {
	return c.phase == PhaseAuthenticated
}

func (c *Context) Loading() bool {
	return c.phase == PhaseHydrating
}

// User returns a copy of the signed-in user, or nil.
func (c *Context) User() *users.Snapshot {
	return c.State().User
}

// Token returns the API token of the signed-in user.
func (c *Context) Token() (string, bool) {
	return c.token, c.phase == PhaseAuthenticated && c.token != ""
}

func (c *Context) setAuthenticated(user users.Snapshot, token string) {
	c.phase = PhaseAuthenticated
	c.user = &user
	c.token = token
}

func (c *Context) setUnauthenticated() {
	c.phase = PhaseUnauthenticated
	c.user = nil
	c.token = ""
}
